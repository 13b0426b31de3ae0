package analysis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/coocood/freecache"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"

	"github.com/2beens/repvision/internal/pose"
	"github.com/2beens/repvision/internal/telemetry/tracing"
)

//go:generate mockgen -source=$GOFILE -destination=service_mocks_test.go -package=analysis_test

type analysisRepo interface {
	Add(ctx context.Context, record Record) error
	Get(ctx context.Context, id uuid.UUID) (*Record, error)
	ListByVideo(ctx context.Context, videoID string) ([]Record, error)
	List(ctx context.Context, page, size int) (_ []Record, total int, err error)
}

const (
	megabyte          = 1024 * 1024
	DefaultCacheBytes = 16 * megabyte
	recordCacheExpire = int((6 * time.Hour) / time.Second)
)

type AnalyzeParams struct {
	VideoID      string
	ExerciseName string
	Stream       pose.Stream
	Observer     Observer
}

type Service struct {
	analyzer *Analyzer
	repo     analysisRepo
	cache    *freecache.Cache
	now      func() time.Time
}

func NewService(analyzer *Analyzer, repo analysisRepo, cacheBytes int) *Service {
	if cacheBytes <= 0 {
		cacheBytes = DefaultCacheBytes
	}
	return &Service{
		analyzer: analyzer,
		repo:     repo,
		cache:    freecache.NewCache(cacheBytes),
		now:      time.Now,
	}
}

func (s *Service) Analyzer() *Analyzer {
	return s.analyzer
}

func (s *Service) Supports(exerciseName string) bool {
	_, found := s.analyzer.registry.Lookup(exerciseName)
	return found
}

// AnalyzeAndStore runs one analysis and persists its record. Runs that did
// not reach the end of the stream are not stored.
func (s *Service) AnalyzeAndStore(ctx context.Context, params AnalyzeParams) (_ *Record, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.analysis.analyzeandstore")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("video-id", params.VideoID))

	report, err := s.analyzer.Analyze(ctx, params.ExerciseName, params.Stream, params.Observer)
	if err != nil {
		return nil, err
	}

	record := NewRecord(params.VideoID, report, s.now().UTC())
	if err := s.repo.Add(ctx, record); err != nil {
		return nil, fmt.Errorf("store analysis of video [%s]: %w", params.VideoID, err)
	}
	s.cacheRecord(&record)

	return &record, nil
}

// Get returns a stored record, from cache when possible.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (_ *Record, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.analysis.get")
	defer func() {
		if !errors.Is(err, ErrAnalysisNotFound) {
			tracing.EndSpanWithErrCheck(span, err)
			return
		}
		span.End()
	}()

	if recordBytes, err := s.cache.Get(recordCacheKey(id)); err == nil {
		record := &Record{}
		if err := json.Unmarshal(recordBytes, record); err != nil {
			log.Errorf("failed to unmarshal cached analysis record %s: %s", id, err)
		} else {
			log.Tracef("analysis record %s found in cache", id)
			span.SetAttributes(attribute.Bool("cache-hit", true))
			return record, nil
		}
	}

	record, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	s.cacheRecord(record)

	return record, nil
}

func (s *Service) ListByVideo(ctx context.Context, videoID string) (_ []Record, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.analysis.listbyvideo")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	records, err := s.repo.ListByVideo(ctx, videoID)
	if err != nil {
		return nil, fmt.Errorf("list analyses of video [%s]: %w", videoID, err)
	}
	return records, nil
}

func (s *Service) List(ctx context.Context, page, size int) (_ []Record, total int, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.analysis.list")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	records, total, err := s.repo.List(ctx, page, size)
	if err != nil {
		return nil, 0, fmt.Errorf("list analyses: %w", err)
	}
	return records, total, nil
}

func (s *Service) cacheRecord(record *Record) {
	recordBytes, err := json.Marshal(record)
	if err != nil {
		log.Errorf("failed to marshal analysis record %s for cache: %s", record.ID, err)
		return
	}
	if err := s.cache.Set(recordCacheKey(record.ID), recordBytes, recordCacheExpire); err != nil {
		log.Errorf("failed to cache analysis record %s: %s", record.ID, err)
	}
}

func recordCacheKey(id uuid.UUID) []byte {
	return []byte("record::" + id.String())
}
