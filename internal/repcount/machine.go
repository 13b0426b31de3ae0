package repcount

import (
	"github.com/2beens/repvision/internal/exercise"
)

// Event is what a single angle update produced.
type Event int

const (
	None Event = iota
	// Started means the limb left the extended phase.
	Started
	// Qualified means the current repetition just reached the contract threshold.
	Qualified
	Correct
	Wrong
)

func (e Event) String() string {
	switch e {
	case None:
		return "none"
	case Started:
		return "started"
	case Qualified:
		return "qualified"
	case Correct:
		return "correct"
	case Wrong:
		return "wrong"
	default:
		return "unknown"
	}
}

func (e Event) MarshalText() ([]byte, error) {
	return []byte(e.String()), nil
}

// Counted reports whether the event completed a repetition.
func (e Event) Counted() bool {
	return e == Correct || e == Wrong
}

// State is a snapshot of a machine.
type State struct {
	Phase     exercise.Phase `json:"phase"`
	Qualified bool           `json:"qualified"`
	Correct   int            `json:"correctReps"`
	Wrong     int            `json:"wrongReps"`
}

func (s State) Total() int {
	return s.Correct + s.Wrong
}

// Machine is the two-phase repetition classifier of one analysis run. It is
// not safe for concurrent use.
type Machine struct {
	extend   float64
	contract float64
	margin   float64
	state    State
}

func NewMachine(profile exercise.Profile) *Machine {
	return &Machine{
		extend:   profile.ExtendThreshold,
		contract: profile.ContractThreshold,
		margin:   profile.Margin,
		state: State{
			Phase: profile.InitialPhase,
		},
	}
}

// Update feeds one available angle. Every comparison is strict, so an angle
// sitting exactly on a threshold never moves the machine.
//
// Entering the contracting phase and qualifying can happen on the same
// frame: an angle that drops straight past the contract threshold counts as
// having reached full depth.
func (m *Machine) Update(angle float64) Event {
	event := None

	if m.state.Phase == exercise.Extended {
		if angle >= m.extend-m.margin {
			return None
		}
		m.state.Phase = exercise.Contracting
		m.state.Qualified = false
		event = Started
	}

	if angle < m.contract && !m.state.Qualified {
		m.state.Qualified = true
		return Qualified
	}

	if angle > m.extend {
		m.state.Phase = exercise.Extended
		if m.state.Qualified {
			m.state.Correct++
			return Correct
		}
		m.state.Wrong++
		return Wrong
	}

	return event
}

func (m *Machine) State() State {
	return m.state
}
