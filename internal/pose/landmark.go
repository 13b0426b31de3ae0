package pose

import (
	"gonum.org/v1/gonum/spatial/r3"
)

// Landmark is one joint's estimated position in normalized image space
// (x, y in [0,1], y pointing down, z relative depth) with the estimator's
// visibility confidence in [0,1].
type Landmark struct {
	X          float64 `json:"x"`
	Y          float64 `json:"y"`
	Z          float64 `json:"z"`
	Visibility float64 `json:"visibility"`
}

func (l Landmark) Vec() r3.Vec {
	return r3.Vec{X: l.X, Y: l.Y, Z: l.Z}
}

// Snapshot holds the landmarks detected in one frame. A nil *Snapshot means
// no person was detected in that frame.
type Snapshot struct {
	Landmarks map[Joint]Landmark `json:"landmarks"`
}

func NewSnapshot() *Snapshot {
	return &Snapshot{
		Landmarks: make(map[Joint]Landmark),
	}
}

// Set stores a landmark and returns the snapshot to allow chaining.
func (s *Snapshot) Set(j Joint, l Landmark) *Snapshot {
	if s.Landmarks == nil {
		s.Landmarks = make(map[Joint]Landmark)
	}
	s.Landmarks[j] = l
	return s
}

// Landmark is the single accessor for joint data; ok is false when there is
// no snapshot or the joint was not reported in it.
func (s *Snapshot) Landmark(j Joint) (Landmark, bool) {
	if s == nil || s.Landmarks == nil {
		return Landmark{}, false
	}
	l, ok := s.Landmarks[j]
	return l, ok
}

// Triple returns the three landmarks of t, or ok=false if any is missing.
func (s *Snapshot) Triple(t Triple) (a, b, c Landmark, ok bool) {
	if a, ok = s.Landmark(t.A); !ok {
		return
	}
	if b, ok = s.Landmark(t.Vertex); !ok {
		return
	}
	c, ok = s.Landmark(t.C)
	return
}

// Detected reports whether the frame contains a person.
func (s *Snapshot) Detected() bool {
	return s != nil
}
