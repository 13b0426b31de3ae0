package jobs

import (
	"context"
	"errors"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"

	"github.com/2beens/repvision/internal/analysis"
	"github.com/2beens/repvision/internal/feedback"
	"github.com/2beens/repvision/internal/landmarks"
	"github.com/2beens/repvision/internal/telemetry/metrics"
	"github.com/2beens/repvision/internal/telemetry/tracing"
)

//go:generate mockgen -source=$GOFILE -destination=consumer_mocks_test.go -package=jobs_test

type jobSource interface {
	Pop(ctx context.Context) (*Job, error)
}

type landmarkFetcher interface {
	Fetch(ctx context.Context, url string) (*landmarks.Stream, error)
}

type analysisService interface {
	Supports(exerciseName string) bool
	AnalyzeAndStore(ctx context.Context, params analysis.AnalyzeParams) (*analysis.Record, error)
}

type resultDeliverer interface {
	Deliver(ctx context.Context, videoID string, result analysis.Result) error
}

const (
	JobStatusDone        = "done"
	JobStatusFailed      = "failed"
	JobStatusInvalid     = "invalid"
	JobStatusUnsupported = "unsupported"
	JobStatusUndelivered = "undelivered"

	popErrorBackoff = time.Second
)

type ConsumerParams struct {
	Source         jobSource
	Fetcher        landmarkFetcher
	Service        analysisService
	Deliverer      resultDeliverer
	MetricsManager *metrics.Manager
	Workers        int
}

// Consumer takes jobs off the queue and runs them on a fixed pool of workers.
// Every valid job ends with exactly one delivery attempt.
type Consumer struct {
	source         jobSource
	fetcher        landmarkFetcher
	service        analysisService
	deliverer      resultDeliverer
	metricsManager *metrics.Manager
	workers        int
}

func NewConsumer(params ConsumerParams) *Consumer {
	workers := params.Workers
	if workers <= 0 {
		workers = 1
	}
	return &Consumer{
		source:         params.Source,
		fetcher:        params.Fetcher,
		service:        params.Service,
		deliverer:      params.Deliverer,
		metricsManager: params.MetricsManager,
		workers:        workers,
	}
}

// Run blocks until ctx is done and every worker has returned.
func (c *Consumer) Run(ctx context.Context) {
	log.Printf("jobs consumer starting %d workers", c.workers)

	var wg sync.WaitGroup
	for i := 0; i < c.workers; i++ {
		wg.Add(1)
		go func(workerID int) {
			defer wg.Done()
			c.work(ctx, workerID)
		}(i)
	}
	wg.Wait()

	log.Println("jobs consumer stopped")
}

func (c *Consumer) work(ctx context.Context, workerID int) {
	for {
		if ctx.Err() != nil {
			return
		}

		job, err := c.source.Pop(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			if errors.Is(err, ErrInvalidJob) {
				log.Warnf("worker %d: dropping message: %s", workerID, err)
				c.countJob(JobStatusInvalid)
				continue
			}
			log.Errorf("worker %d: %s", workerID, err)
			select {
			case <-ctx.Done():
				return
			case <-time.After(popErrorBackoff):
			}
			continue
		}
		if job == nil {
			continue
		}

		c.metricsManager.GaugeBusyWorkers.Inc()
		c.countJob(c.Process(ctx, *job))
		c.metricsManager.GaugeBusyWorkers.Dec()
	}
}

// Process runs a single job and delivers its result. It returns the job status.
func (c *Consumer) Process(ctx context.Context, job Job) string {
	ctx, span := tracing.GlobalTracer.Start(ctx, "jobs.process")
	defer span.End()
	span.SetAttributes(
		attribute.String("video-id", job.VideoID),
		attribute.String("exercise", job.ExerciseName),
	)

	log.Debugf("processing video [%s], exercise [%s]", job.VideoID, job.ExerciseName)

	if !c.service.Supports(job.ExerciseName) {
		log.Warnf("video [%s]: unsupported exercise [%s]", job.VideoID, job.ExerciseName)
		result := analysis.Result{
			Feedback: feedback.Unsupported(job.ExerciseName),
		}
		return c.deliver(ctx, job.VideoID, result, JobStatusUnsupported)
	}

	record, err := c.analyze(ctx, job)
	if err != nil {
		log.Errorf("video [%s]: %s", job.VideoID, err)
		span.RecordError(err)
		result := analysis.Result{
			Feedback: feedback.CouldNotProcess(err),
		}
		return c.deliver(ctx, job.VideoID, result, JobStatusFailed)
	}

	return c.deliver(ctx, job.VideoID, record.Result(), JobStatusDone)
}

func (c *Consumer) analyze(ctx context.Context, job Job) (*analysis.Record, error) {
	stream, err := c.fetcher.Fetch(ctx, job.LandmarksURL)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := stream.Close(); err != nil {
			log.Warnf("close landmarks stream of video [%s]: %s", job.VideoID, err)
		}
	}()

	return c.service.AnalyzeAndStore(ctx, analysis.AnalyzeParams{
		VideoID:      job.VideoID,
		ExerciseName: job.ExerciseName,
		Stream:       stream,
	})
}

func (c *Consumer) deliver(ctx context.Context, videoID string, result analysis.Result, status string) string {
	if err := c.deliverer.Deliver(ctx, videoID, result); err != nil {
		log.Errorf("deliver results of video [%s]: %s", videoID, err)
		return JobStatusUndelivered
	}
	return status
}

func (c *Consumer) countJob(status string) {
	c.metricsManager.CounterJobs.WithLabelValues(status).Inc()
}
