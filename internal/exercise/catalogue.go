package exercise

import "github.com/2beens/repvision/internal/pose"

// Names of the built-in exercises.
const (
	Squat       = "squat"
	BarbellCurl = "barbell_curl"
	PushUp      = "pushup"
)

// DefaultProfiles returns the built-in catalogue. All profiles track the
// left side of the body.
func DefaultProfiles() []Profile {
	return []Profile{
		{
			Name:        Squat,
			DisplayName: "squat",
			Primary: pose.Triple{
				A:      pose.LeftHip,
				Vertex: pose.LeftKnee,
				C:      pose.LeftAnkle,
			},
			Dimensionality:      pose.Planar,
			ExtendThreshold:     160,
			ContractThreshold:   100,
			Margin:              DefaultMargin,
			VisibilityThreshold: DefaultVisibilityThreshold,
			InitialPhase:        Extended,
			PhaseLabels: map[Phase]string{
				Extended:    "up",
				Contracting: "down",
			},
			InsufficientRangeFeedback: "squat not deep enough: bend your knees further",
			Checks: []Check{
				{
					Name:      "torso-lean",
					Predicate: AngleBelow,
					Triple: pose.Triple{
						A:      pose.LeftShoulder,
						Vertex: pose.LeftHip,
						C:      pose.LeftKnee,
					},
					Gate:      pose.LeftShoulder,
					Threshold: 45,
					Feedback:  "torso leaning too far forward: keep your chest up",
				},
				{
					Name:      "knee-travel",
					Predicate: DriftsApart,
					Pair:      [2]pose.Joint{pose.LeftKnee, pose.LeftAnkle},
					Gate:      pose.LeftKnee,
					Threshold: 0.12,
					Feedback:  "knees travelling too far past the toes",
				},
				{
					Name:      "heel-rise",
					Predicate: RisesAbove,
					Pair:      [2]pose.Joint{pose.LeftHeel, pose.LeftFootIndex},
					Gate:      pose.LeftHeel,
					Threshold: 0.03,
					Feedback:  "heels lifting off the floor: keep your weight on your heels",
				},
			},
		},
		{
			Name:        BarbellCurl,
			DisplayName: "barbell curl",
			Aliases:     []string{"curl", "barbell-curl", "barbell curl", "barbellcurl"},
			Primary: pose.Triple{
				A:      pose.LeftShoulder,
				Vertex: pose.LeftElbow,
				C:      pose.LeftWrist,
			},
			Dimensionality:      pose.Planar,
			ExtendThreshold:     140,
			ContractThreshold:   60,
			Margin:              DefaultMargin,
			VisibilityThreshold: DefaultVisibilityThreshold,
			InitialPhase:        Extended,
			PhaseLabels: map[Phase]string{
				Extended:    "down",
				Contracting: "up",
			},
			InsufficientRangeFeedback: "incomplete curl: bring the bar all the way up",
			Checks: []Check{
				{
					Name:      "shoulder-swing",
					Predicate: AngleAbove,
					Triple: pose.Triple{
						A:      pose.LeftHip,
						Vertex: pose.LeftShoulder,
						C:      pose.LeftElbow,
					},
					Gate:      pose.LeftHip,
					Threshold: 35,
					Feedback:  "using your shoulder to lift: keep your upper arm still",
				},
			},
		},
		{
			Name:        PushUp,
			DisplayName: "push-up",
			Aliases:     []string{"push-up", "push_up", "push up"},
			Primary: pose.Triple{
				A:      pose.LeftShoulder,
				Vertex: pose.LeftElbow,
				C:      pose.LeftWrist,
			},
			Dimensionality:      pose.Planar,
			ExtendThreshold:     160,
			ContractThreshold:   90,
			Margin:              DefaultMargin,
			VisibilityThreshold: DefaultVisibilityThreshold,
			InitialPhase:        Extended,
			PhaseLabels: map[Phase]string{
				Extended:    "up",
				Contracting: "down",
			},
			InsufficientRangeFeedback: "push-up not deep enough: lower your chest further",
			Checks: []Check{
				{
					Name:      "hip-sag",
					Predicate: AngleBelow,
					Triple: pose.Triple{
						A:      pose.LeftShoulder,
						Vertex: pose.LeftHip,
						C:      pose.LeftAnkle,
					},
					Gate:      pose.LeftHip,
					Threshold: 160,
					Feedback:  "hips sagging: keep your body in a straight line",
				},
			},
		},
	}
}
