package analysis

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrAnalysisNotFound = errors.New("analysis not found")

// Result is the summary delivered for one analyzed video.
type Result struct {
	CorrectReps int    `json:"correctReps"`
	WrongReps   int    `json:"wrongReps"`
	Feedback    string `json:"feedback"`
}

// Outcome classifies a finished analysis for metrics and storage.
type Outcome string

const (
	OutcomeGoodForm     Outcome = "good_form"
	OutcomeWithFeedback Outcome = "with_feedback"
	OutcomeNotDetected  Outcome = "not_detected"
	OutcomeUnsupported  Outcome = "unsupported"
	OutcomeFailed       Outcome = "failed"
)

func (o Outcome) String() string {
	return string(o)
}

// Report is a Result together with what it took to produce it.
type Report struct {
	Result
	Exercise       string        `json:"exercise"`
	Outcome        Outcome       `json:"outcome"`
	Frames         int           `json:"frames"`
	DetectedFrames int           `json:"detectedFrames"`
	Duration       time.Duration `json:"duration"`
}

// Record is a stored analysis.
type Record struct {
	ID             uuid.UUID `json:"id"`
	VideoID        string    `json:"videoId"`
	Exercise       string    `json:"exercise"`
	Outcome        Outcome   `json:"outcome"`
	CorrectReps    int       `json:"correctReps"`
	WrongReps      int       `json:"wrongReps"`
	Feedback       string    `json:"feedback"`
	Frames         int       `json:"frames"`
	DetectedFrames int       `json:"detectedFrames"`
	DurationMs     int64     `json:"durationMs"`
	CreatedAt      time.Time `json:"createdAt"`
}

func NewRecord(videoID string, report Report, createdAt time.Time) Record {
	return Record{
		ID:             uuid.New(),
		VideoID:        videoID,
		Exercise:       report.Exercise,
		Outcome:        report.Outcome,
		CorrectReps:    report.CorrectReps,
		WrongReps:      report.WrongReps,
		Feedback:       report.Feedback,
		Frames:         report.Frames,
		DetectedFrames: report.DetectedFrames,
		DurationMs:     report.Duration.Milliseconds(),
		CreatedAt:      createdAt,
	}
}

func (r Record) Result() Result {
	return Result{
		CorrectReps: r.CorrectReps,
		WrongReps:   r.WrongReps,
		Feedback:    r.Feedback,
	}
}
