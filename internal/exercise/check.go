package exercise

import (
	"fmt"
	"math"

	"github.com/2beens/repvision/internal/pose"
)

// Predicate selects how a secondary check reads its joints.
type Predicate int

const (
	// AngleBelow is violated when the angle of Triple drops below Threshold.
	AngleBelow Predicate = iota
	// AngleAbove is violated when the angle of Triple exceeds Threshold.
	AngleAbove
	// RisesAbove is violated when Pair[0] sits more than Threshold above
	// Pair[1] (image y grows downward).
	RisesAbove
	// DriftsApart is violated when Pair[0] and Pair[1] are more than
	// Threshold apart horizontally.
	DriftsApart
)

func (p Predicate) String() string {
	switch p {
	case AngleBelow:
		return "angle_below"
	case AngleAbove:
		return "angle_above"
	case RisesAbove:
		return "rises_above"
	case DriftsApart:
		return "drifts_apart"
	default:
		return fmt.Sprintf("predicate(%d)", int(p))
	}
}

func (p Predicate) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// Check is an advisory posture rule evaluated while a repetition is in its
// contracting phase. It never changes repetition counts. Gate must be
// visible above the profile's visibility threshold for the check to run.
type Check struct {
	Name      string        `json:"name"`
	Predicate Predicate     `json:"predicate"`
	Triple    pose.Triple   `json:"triple"`
	Pair      [2]pose.Joint `json:"pair"`
	Gate      pose.Joint    `json:"gate"`
	Threshold float64       `json:"threshold"`
	Feedback  string        `json:"feedback"`
}

func (c Check) usesTriple() bool {
	return c.Predicate == AngleBelow || c.Predicate == AngleAbove
}

// Evaluate reports whether the check ran and, if so, whether it was violated.
// Insufficient visibility or missing joints mean the check did not run.
func (c Check) Evaluate(s *pose.Snapshot, dim pose.Dimensionality, minVisibility float64) (violated, evaluated bool) {
	gate, ok := s.Landmark(c.Gate)
	if !ok || gate.Visibility <= minVisibility {
		return false, false
	}

	switch c.Predicate {
	case AngleBelow, AngleAbove:
		angle, ok := pose.AngleAt(s, c.Triple, dim)
		if !ok {
			return false, false
		}
		if c.Predicate == AngleBelow {
			return angle < c.Threshold, true
		}
		return angle > c.Threshold, true
	case RisesAbove, DriftsApart:
		first, ok := s.Landmark(c.Pair[0])
		if !ok {
			return false, false
		}
		second, ok := s.Landmark(c.Pair[1])
		if !ok {
			return false, false
		}
		if c.Predicate == RisesAbove {
			return first.Y < second.Y-c.Threshold, true
		}
		return math.Abs(first.X-second.X) > c.Threshold, true
	default:
		return false, false
	}
}

func (c Check) validate() error {
	if c.Feedback == "" {
		return fmt.Errorf("check %q: empty feedback", c.Name)
	}
	if !c.Gate.Valid() {
		return fmt.Errorf("check %q: invalid gate joint", c.Name)
	}
	if c.usesTriple() {
		if !c.Triple.A.Valid() || !c.Triple.Vertex.Valid() || !c.Triple.C.Valid() {
			return fmt.Errorf("check %q: invalid joint triple", c.Name)
		}
		return nil
	}
	switch c.Predicate {
	case RisesAbove, DriftsApart:
		if !c.Pair[0].Valid() || !c.Pair[1].Valid() {
			return fmt.Errorf("check %q: invalid joint pair", c.Name)
		}
		return nil
	default:
		return fmt.Errorf("check %q: unknown predicate %d", c.Name, int(c.Predicate))
	}
}
