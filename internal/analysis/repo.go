package analysis

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"

	"github.com/2beens/repvision/internal/telemetry/tracing"
)

const recordColumns = `
	id, video_id, exercise, outcome, correct_reps, wrong_reps, feedback,
	frames, detected_frames, duration_ms, created_at
`

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

func (r *Repo) Add(ctx context.Context, record Record) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.analysis.add")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	_, err = r.db.Exec(ctx, `
		INSERT INTO analysis_record (`+recordColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`,
		record.ID,
		record.VideoID,
		record.Exercise,
		record.Outcome,
		record.CorrectReps,
		record.WrongReps,
		record.Feedback,
		record.Frames,
		record.DetectedFrames,
		record.DurationMs,
		record.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert analysis record: %w", err)
	}
	return nil
}

func (r *Repo) Get(ctx context.Context, id uuid.UUID) (_ *Record, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.analysis.get")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("id", id.String()))

	row := r.db.QueryRow(ctx, `
		SELECT `+recordColumns+`
		FROM analysis_record
		WHERE id = $1
	`, id)
	record, err := scanRecord(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrAnalysisNotFound
		}
		return nil, err
	}
	return record, nil
}

func (r *Repo) ListByVideo(ctx context.Context, videoID string) (_ []Record, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.analysis.listbyvideo")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("video-id", videoID))

	rows, err := r.db.Query(ctx, `
		SELECT `+recordColumns+`
		FROM analysis_record
		WHERE video_id = $1
		ORDER BY created_at DESC
	`, videoID)
	if err != nil {
		return nil, err
	}
	return collectRecords(rows)
}

// List returns a page of records, newest first, with the total record count.
// Pages start at 1.
func (r *Repo) List(ctx context.Context, page, size int) (_ []Record, total int, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.analysis.list")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("page", page), attribute.Int("size", size))

	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM analysis_record`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count records: %w", err)
	}

	rows, err := r.db.Query(ctx, `
		SELECT `+recordColumns+`
		FROM analysis_record
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`, size, (page-1)*size)
	if err != nil {
		return nil, 0, err
	}
	records, err := collectRecords(rows)
	if err != nil {
		return nil, 0, err
	}
	return records, total, nil
}

func collectRecords(rows pgx.Rows) ([]Record, error) {
	defer rows.Close()

	records := make([]Record, 0)
	for rows.Next() {
		record, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, *record)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return records, nil
}

func scanRecord(row pgx.Row) (*Record, error) {
	record := &Record{}
	err := row.Scan(
		&record.ID,
		&record.VideoID,
		&record.Exercise,
		&record.Outcome,
		&record.CorrectReps,
		&record.WrongReps,
		&record.Feedback,
		&record.Frames,
		&record.DetectedFrames,
		&record.DurationMs,
		&record.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return record, nil
}
