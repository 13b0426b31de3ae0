package exercise

import "fmt"

// Phase is the two-valued position of the tracked limb within a repetition.
type Phase int

const (
	// Extended means the limb is open (squat: standing, curl: arm down).
	Extended Phase = iota
	// Contracting means the limb is closing or closed (squat: down, curl: arm up).
	Contracting
)

func (p Phase) String() string {
	switch p {
	case Extended:
		return "extended"
	case Contracting:
		return "contracting"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

func (p Phase) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

func (p *Phase) UnmarshalText(text []byte) error {
	switch string(text) {
	case "extended":
		*p = Extended
	case "contracting":
		*p = Contracting
	default:
		return fmt.Errorf("unknown phase: %q", text)
	}
	return nil
}
