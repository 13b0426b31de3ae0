package analysis

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/2beens/repvision/internal/exercise"
	"github.com/2beens/repvision/internal/feedback"
	"github.com/2beens/repvision/internal/pose"
	"github.com/2beens/repvision/internal/repcount"
)

// Telemetry describes one processed frame for renderers and recorders.
type Telemetry struct {
	Frame    int  `json:"frame"`
	Detected bool `json:"detected"`
	// AngleAvailable is false when no person was found or a primary joint
	// was missing. Angle is meaningless then.
	AngleAvailable bool    `json:"angleAvailable"`
	Angle          float64 `json:"angle"`
	// DisplayAngle is the last available angle, kept across skipped frames.
	DisplayAngle float64 `json:"displayAngle"`

	Phase      exercise.Phase `json:"phase"`
	PhaseLabel string         `json:"phaseLabel"`
	Event      repcount.Event `json:"event"`
	Correct    int            `json:"correctReps"`
	Wrong      int            `json:"wrongReps"`

	// Feedback is transient and only describes this frame.
	Feedback []string `json:"feedback,omitempty"`
}

// Observer receives per-frame telemetry. It is called synchronously.
type Observer interface {
	Observe(t Telemetry)
}

type ObserverFunc func(t Telemetry)

func (f ObserverFunc) Observe(t Telemetry) {
	f(t)
}

// Pipeline analyzes one frame sequence for one exercise. A pipeline owns its
// repetition state and must not be reused or shared.
type Pipeline struct {
	profile  exercise.Profile
	machine  *repcount.Machine
	feedback feedback.Set

	frames       int
	detected     int
	displayAngle float64
}

func NewPipeline(profile exercise.Profile) *Pipeline {
	return &Pipeline{
		profile: profile,
		machine: repcount.NewMachine(profile),
	}
}

// Step processes one frame. A nil snapshot marks a frame without a person.
func (p *Pipeline) Step(snapshot *pose.Snapshot) Telemetry {
	t := Telemetry{
		Frame:    p.frames,
		Detected: snapshot.Detected(),
	}
	p.frames++

	if !t.Detected {
		t.Feedback = append(t.Feedback, feedback.DetectionFailed)
		return p.finishTelemetry(t)
	}
	p.detected++

	angle, ok := pose.AngleAt(snapshot, p.profile.Primary, p.profile.Dimensionality)
	if !ok {
		return p.finishTelemetry(t)
	}
	t.AngleAvailable = true
	t.Angle = angle
	p.displayAngle = angle

	t.Event = p.machine.Update(angle)
	switch t.Event {
	case repcount.Correct:
		t.Feedback = append(t.Feedback, feedback.CorrectRepetition)
	case repcount.Wrong:
		p.feedback.Add(p.profile.InsufficientRangeFeedback)
		t.Feedback = append(t.Feedback, p.profile.InsufficientRangeFeedback)
	}

	if p.machine.State().Phase == exercise.Contracting {
		for _, check := range p.profile.Checks {
			violated, _ := check.Evaluate(snapshot, p.profile.Dimensionality, p.profile.VisibilityThreshold)
			if violated {
				p.feedback.Add(check.Feedback)
				t.Feedback = append(t.Feedback, check.Feedback)
			}
		}
	}

	return p.finishTelemetry(t)
}

func (p *Pipeline) finishTelemetry(t Telemetry) Telemetry {
	state := p.machine.State()
	t.DisplayAngle = p.displayAngle
	t.Phase = state.Phase
	t.PhaseLabel = p.profile.PhaseLabel(state.Phase)
	t.Correct = state.Correct
	t.Wrong = state.Wrong
	return t
}

// Result composes the summary of everything processed so far. Partial
// repetitions are not counted.
func (p *Pipeline) Result() Result {
	state := p.machine.State()
	return Result{
		CorrectReps: state.Correct,
		WrongReps:   state.Wrong,
		Feedback:    feedback.Summary(p.profile.DisplayName, state.Correct, state.Wrong, &p.feedback),
	}
}

func (p *Pipeline) Frames() (total, detected int) {
	return p.frames, p.detected
}

// Run consumes the stream until it ends. Cancellation or a broken stream
// stops the run early; the returned result then covers the frames seen so
// far and the error says why the run stopped. observer may be nil.
func (p *Pipeline) Run(ctx context.Context, stream pose.Stream, observer Observer) (Result, error) {
	for {
		if err := ctx.Err(); err != nil {
			return p.Result(), err
		}

		snapshot, err := stream.Next()
		if errors.Is(err, io.EOF) {
			return p.Result(), nil
		}
		if err != nil {
			return p.Result(), fmt.Errorf("read frame %d: %w", p.frames, err)
		}

		t := p.Step(snapshot)
		if observer != nil {
			observer.Observe(t)
		}
	}
}
