package analysis

import (
	"context"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"

	"github.com/2beens/repvision/internal/exercise"
	"github.com/2beens/repvision/internal/feedback"
	"github.com/2beens/repvision/internal/pose"
	"github.com/2beens/repvision/internal/telemetry/metrics"
	"github.com/2beens/repvision/internal/telemetry/tracing"
)

// Analyzer runs analyses against a fixed exercise registry. It holds no
// per-run state and may be used from many goroutines at once.
type Analyzer struct {
	registry       *exercise.Registry
	metricsManager *metrics.Manager
	now            func() time.Time
}

func NewAnalyzer(registry *exercise.Registry, metricsManager *metrics.Manager) *Analyzer {
	return &Analyzer{
		registry:       registry,
		metricsManager: metricsManager,
		now:            time.Now,
	}
}

func (a *Analyzer) Registry() *exercise.Registry {
	return a.registry
}

// Analyze classifies the repetitions in stream. An unknown exercise is not an
// error: the report then has zero counts and says the exercise is not
// supported. A non-nil error means the stream broke or ctx ended before the
// last frame; the report still holds what was seen until then.
func (a *Analyzer) Analyze(
	ctx context.Context,
	exerciseName string,
	stream pose.Stream,
	observer Observer,
) (_ Report, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "analyzer.analyze")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("exercise", exerciseName))

	profile, found := a.registry.Lookup(exerciseName)
	if !found {
		log.Debugf("analyze: unsupported exercise [%s]", exerciseName)
		report := Report{
			Result: Result{
				Feedback: feedback.Unsupported(exerciseName),
			},
			Exercise: exerciseName,
			Outcome:  OutcomeUnsupported,
		}
		a.observeReport(report)
		return report, nil
	}

	start := a.now()
	pipeline := NewPipeline(profile)
	result, runErr := pipeline.Run(ctx, stream, observer)
	frames, detected := pipeline.Frames()

	report := Report{
		Result:         result,
		Exercise:       profile.Name,
		Outcome:        outcomeOf(result),
		Frames:         frames,
		DetectedFrames: detected,
		Duration:       a.now().Sub(start),
	}
	span.SetAttributes(
		attribute.Int("frames", frames),
		attribute.Int("correct", result.CorrectReps),
		attribute.Int("wrong", result.WrongReps),
	)

	if runErr != nil {
		report.Outcome = OutcomeFailed
		a.observeReport(report)
		return report, fmt.Errorf("analyze %s: %w", profile.Name, runErr)
	}

	log.Debugf(
		"analysis done [%s]: frames %d (detected %d), correct %d, wrong %d, took %s",
		profile.Name, frames, detected, result.CorrectReps, result.WrongReps, report.Duration,
	)
	a.observeReport(report)

	return report, nil
}

func (a *Analyzer) observeReport(report Report) {
	if a.metricsManager == nil {
		return
	}
	if report.Outcome == OutcomeUnsupported {
		// exercise names from clients are unbounded, keep them out of labels
		a.metricsManager.CounterAnalyses.WithLabelValues("unknown", report.Outcome.String()).Inc()
		return
	}
	a.metricsManager.CounterAnalyses.WithLabelValues(report.Exercise, report.Outcome.String()).Inc()
	a.metricsManager.CounterRepetitions.WithLabelValues(report.Exercise, "correct").Add(float64(report.CorrectReps))
	a.metricsManager.CounterRepetitions.WithLabelValues(report.Exercise, "wrong").Add(float64(report.WrongReps))
	a.metricsManager.HistAnalysisDuration.WithLabelValues(report.Exercise).Observe(report.Duration.Seconds())
	a.metricsManager.HistAnalysisFrames.Observe(float64(report.Frames))
}

func outcomeOf(result Result) Outcome {
	switch {
	case result.CorrectReps == 0 && result.WrongReps == 0:
		return OutcomeNotDetected
	case result.WrongReps == 0 && result.Feedback == feedback.GoodForm(result.CorrectReps):
		return OutcomeGoodForm
	default:
		return OutcomeWithFeedback
	}
}
