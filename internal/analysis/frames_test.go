package analysis_test

import (
	"math"

	"github.com/2beens/repvision/internal/pose"
)

var (
	knee  = pose.Landmark{X: 0.5, Y: 0.6, Visibility: 0.95}
	ankle = pose.Landmark{X: 0.5, Y: 0.9, Visibility: 0.95}
)

// squatFrame builds a side view whose knee angle is the given value. The
// ankle sits straight below the knee and the hip is rotated away from that
// ray. The torso continues the thigh line so no posture check fires.
func squatFrame(angle float64) *pose.Snapshot {
	rad := angle * math.Pi / 180
	hip := pose.Landmark{
		X:          knee.X - 0.3*math.Sin(rad),
		Y:          knee.Y + 0.3*math.Cos(rad),
		Visibility: 0.95,
	}
	shoulder := pose.Landmark{
		X:          hip.X + (hip.X - knee.X),
		Y:          hip.Y + (hip.Y - knee.Y),
		Visibility: 0.95,
	}
	return pose.NewSnapshot().
		Set(pose.LeftHip, hip).
		Set(pose.LeftKnee, knee).
		Set(pose.LeftAnkle, ankle).
		Set(pose.LeftShoulder, shoulder)
}

// withHeelsUp adds visible feet with the heel clearly above the toes.
func withHeelsUp(s *pose.Snapshot) *pose.Snapshot {
	return s.
		Set(pose.LeftHeel, pose.Landmark{X: 0.48, Y: 0.85, Visibility: 0.9}).
		Set(pose.LeftFootIndex, pose.Landmark{X: 0.58, Y: 0.93, Visibility: 0.9})
}

// withoutKnee drops a primary joint so the angle is unavailable.
func withoutKnee(s *pose.Snapshot) *pose.Snapshot {
	delete(s.Landmarks, pose.LeftKnee)
	return s
}

func squatFrames(angles ...float64) []*pose.Snapshot {
	frames := make([]*pose.Snapshot, 0, len(angles))
	for _, a := range angles {
		frames = append(frames, squatFrame(a))
	}
	return frames
}
