package exercise

import (
	"errors"
	"fmt"

	"github.com/2beens/repvision/internal/pose"
)

const (
	DefaultMargin              = 10.0
	DefaultVisibilityThreshold = 0.5
)

// Profile is the immutable configuration of one exercise. It is created once
// and shared read-only by every analysis of that exercise.
type Profile struct {
	Name        string   `json:"name"`
	DisplayName string   `json:"displayName"`
	Aliases     []string `json:"aliases,omitempty"`

	Primary        pose.Triple         `json:"primary"`
	Dimensionality pose.Dimensionality `json:"dimensionality"`

	// ExtendThreshold is the angle above which the limb counts as open.
	ExtendThreshold float64 `json:"extendThreshold"`
	// ContractThreshold is the angle below which the repetition is deep enough.
	ContractThreshold float64 `json:"contractThreshold"`
	// Margin is subtracted from ExtendThreshold before leaving Extended.
	Margin              float64 `json:"margin"`
	VisibilityThreshold float64 `json:"visibilityThreshold"`

	InitialPhase Phase `json:"initialPhase"`
	// PhaseLabels names each phase the way a trainer would say it.
	PhaseLabels map[Phase]string `json:"phaseLabels"`

	InsufficientRangeFeedback string  `json:"insufficientRangeFeedback"`
	Checks                    []Check `json:"checks"`
}

// PhaseLabel returns the exercise-specific name of p.
func (p Profile) PhaseLabel(phase Phase) string {
	if label, ok := p.PhaseLabels[phase]; ok {
		return label
	}
	return phase.String()
}

func (p Profile) Validate() error {
	if p.Name == "" {
		return errors.New("profile name empty")
	}
	if !p.Primary.A.Valid() || !p.Primary.Vertex.Valid() || !p.Primary.C.Valid() {
		return fmt.Errorf("profile %s: invalid primary joint triple", p.Name)
	}
	if p.ContractThreshold <= 0 || p.ExtendThreshold > 180 {
		return fmt.Errorf("profile %s: thresholds must be within (0, 180]", p.Name)
	}
	if p.ContractThreshold >= p.ExtendThreshold {
		return fmt.Errorf(
			"profile %s: contract threshold %.1f must be below extend threshold %.1f",
			p.Name, p.ContractThreshold, p.ExtendThreshold,
		)
	}
	if p.Margin < 0 {
		return fmt.Errorf("profile %s: negative margin %.1f", p.Name, p.Margin)
	}
	if p.VisibilityThreshold < 0 || p.VisibilityThreshold > 1 {
		return fmt.Errorf("profile %s: visibility threshold must be between 0 and 1", p.Name)
	}
	if p.InitialPhase != Extended && p.InitialPhase != Contracting {
		return fmt.Errorf("profile %s: invalid initial phase %d", p.Name, int(p.InitialPhase))
	}
	if p.InsufficientRangeFeedback == "" {
		return fmt.Errorf("profile %s: insufficient range feedback empty", p.Name)
	}
	for _, c := range p.Checks {
		if err := c.validate(); err != nil {
			return fmt.Errorf("profile %s: %w", p.Name, err)
		}
	}
	return nil
}

// Override replaces selected tuning values of a profile. Nil fields keep the
// profile's value.
type Override struct {
	ExtendThreshold     *float64 `toml:"extend_threshold"`
	ContractThreshold   *float64 `toml:"contract_threshold"`
	Margin              *float64 `toml:"margin"`
	VisibilityThreshold *float64 `toml:"visibility_threshold"`
}

// Apply returns a copy of p with the override applied.
func (o Override) Apply(p Profile) Profile {
	if o.ExtendThreshold != nil {
		p.ExtendThreshold = *o.ExtendThreshold
	}
	if o.ContractThreshold != nil {
		p.ContractThreshold = *o.ContractThreshold
	}
	if o.Margin != nil {
		p.Margin = *o.Margin
	}
	if o.VisibilityThreshold != nil {
		p.VisibilityThreshold = *o.VisibilityThreshold
	}
	return p
}
