package pose

import (
	"fmt"
	"math"
	"strings"

	"gonum.org/v1/gonum/spatial/r3"
)

// Dimensionality selects the plane the angle is measured in.
type Dimensionality int

const (
	Planar Dimensionality = iota // x, y only
	Spatial                      // x, y, z
)

func (d Dimensionality) String() string {
	switch d {
	case Planar:
		return "2d"
	case Spatial:
		return "3d"
	default:
		return fmt.Sprintf("dimensionality(%d)", int(d))
	}
}

func ParseDimensionality(s string) (Dimensionality, error) {
	switch strings.ToLower(s) {
	case "2d", "planar":
		return Planar, nil
	case "3d", "spatial":
		return Spatial, nil
	default:
		return 0, fmt.Errorf("unknown dimensionality: %q", s)
	}
}

func (d Dimensionality) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func (d *Dimensionality) UnmarshalText(text []byte) error {
	parsed, err := ParseDimensionality(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// DegenerateAngle is reported in 3D mode when a ray has zero length.
const DegenerateAngle = 180.0

// Angle returns the interior angle at vertex b, in degrees within [0, 180].
func Angle(a, b, c Landmark, dim Dimensionality) float64 {
	if dim == Spatial {
		return angle3D(a, b, c)
	}
	return angle2D(a, b, c)
}

func angle2D(a, b, c Landmark) float64 {
	radiansBA := math.Atan2(a.Y-b.Y, a.X-b.X)
	radiansBC := math.Atan2(c.Y-b.Y, c.X-b.X)

	degrees := math.Abs((radiansBC - radiansBA) * 180.0 / math.Pi)
	if degrees > 180.0 {
		degrees = 360.0 - degrees
	}
	return degrees
}

func angle3D(a, b, c Landmark) float64 {
	ba := r3.Sub(a.Vec(), b.Vec())
	bc := r3.Sub(c.Vec(), b.Vec())

	normBA, normBC := r3.Norm(ba), r3.Norm(bc)
	if normBA == 0 || normBC == 0 {
		return DegenerateAngle
	}

	cos := r3.Dot(ba, bc) / (normBA * normBC)
	// rounding can push |cos| slightly past 1
	cos = math.Max(-1, math.Min(1, cos))

	return math.Acos(cos) * 180.0 / math.Pi
}

// AngleAt computes the angle for triple t in snapshot s. ok is false when the
// snapshot is absent or any joint of the triple is missing.
func AngleAt(s *Snapshot, t Triple, dim Dimensionality) (_ float64, ok bool) {
	a, b, c, ok := s.Triple(t)
	if !ok {
		return 0, false
	}
	return Angle(a, b, c, dim), true
}
