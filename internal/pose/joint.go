package pose

import (
	"fmt"
	"strings"
)

// Joint identifies a tracked body landmark. Values follow the MediaPipe pose
// landmark indices so snapshots produced by that model map one to one.
type Joint int

const (
	Nose Joint = iota
	LeftEyeInner
	LeftEye
	LeftEyeOuter
	RightEyeInner
	RightEye
	RightEyeOuter
	LeftEar
	RightEar
	MouthLeft
	MouthRight
	LeftShoulder
	RightShoulder
	LeftElbow
	RightElbow
	LeftWrist
	RightWrist
	LeftPinky
	RightPinky
	LeftIndex
	RightIndex
	LeftThumb
	RightThumb
	LeftHip
	RightHip
	LeftKnee
	RightKnee
	LeftAnkle
	RightAnkle
	LeftHeel
	RightHeel
	LeftFootIndex
	RightFootIndex

	NumJoints
)

var jointNames = [NumJoints]string{
	"nose",
	"left_eye_inner",
	"left_eye",
	"left_eye_outer",
	"right_eye_inner",
	"right_eye",
	"right_eye_outer",
	"left_ear",
	"right_ear",
	"mouth_left",
	"mouth_right",
	"left_shoulder",
	"right_shoulder",
	"left_elbow",
	"right_elbow",
	"left_wrist",
	"right_wrist",
	"left_pinky",
	"right_pinky",
	"left_index",
	"right_index",
	"left_thumb",
	"right_thumb",
	"left_hip",
	"right_hip",
	"left_knee",
	"right_knee",
	"left_ankle",
	"right_ankle",
	"left_heel",
	"right_heel",
	"left_foot_index",
	"right_foot_index",
}

var jointsByName = func() map[string]Joint {
	m := make(map[string]Joint, NumJoints)
	for i, name := range jointNames {
		m[name] = Joint(i)
	}
	return m
}()

func (j Joint) Valid() bool {
	return j >= 0 && j < NumJoints
}

func (j Joint) String() string {
	if !j.Valid() {
		return fmt.Sprintf("joint(%d)", int(j))
	}
	return jointNames[j]
}

// ParseJoint accepts the snake case joint name, case-insensitive.
// Upper case MediaPipe enum names (LEFT_SHOULDER) are accepted too.
func ParseJoint(name string) (Joint, error) {
	j, ok := jointsByName[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return 0, fmt.Errorf("unknown joint: %q", name)
	}
	return j, nil
}

func (j Joint) MarshalText() ([]byte, error) {
	if !j.Valid() {
		return nil, fmt.Errorf("invalid joint: %d", int(j))
	}
	return []byte(jointNames[j]), nil
}

func (j *Joint) UnmarshalText(text []byte) error {
	parsed, err := ParseJoint(string(text))
	if err != nil {
		return err
	}
	*j = parsed
	return nil
}

// Triple is an ordered (A, vertex B, C) joint triple defining an angle at B.
type Triple struct {
	A      Joint `json:"a"`
	Vertex Joint `json:"vertex"`
	C      Joint `json:"c"`
}

func (t Triple) String() string {
	return fmt.Sprintf("%s-%s-%s", t.A, t.Vertex, t.C)
}
