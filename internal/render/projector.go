// Package render implements the wireframe pipeline: perspective projection of
// mesh vertices, two-level anti-aliased line rasterization onto a character
// grid, and face outline drawing.
package render

import (
	"errors"
	"fmt"
	gomath "math"
	"strings"

	"github.com/Faultbox/wirespin/pkg/math"
)

// Projection errors.
var (
	ErrUnsetPoint   = errors.New("cannot project unset point")
	ErrBehindCamera = errors.New("point is behind the camera")
	ErrInvalidFOV   = errors.New("field of view must be positive")
	ErrNonFinite    = errors.New("point has a non-finite coordinate")
	ErrOutOfRange   = errors.New("projected point is outside the addressable range")
)

const (
	// nearEpsilon is the smallest depth (fov + z) a clamped point is moved to.
	nearEpsilon = 1.0
	// maxOffset bounds a projected offset so viewport arithmetic cannot overflow int.
	maxOffset = 1 << 30
)

// DepthPolicy decides what happens to a point whose depth fov+z is not positive,
// or whose projection lands beyond maxOffset from the centre.
type DepthPolicy int

const (
	// DepthCull skips the point; edges touching it are not drawn.
	DepthCull DepthPolicy = iota
	// DepthClamp moves the point forward to just in front of the camera and
	// pins far projections to maxOffset.
	DepthClamp
	// DepthFail reports ErrBehindCamera or ErrOutOfRange.
	DepthFail
)

// String returns the config name of the policy.
func (p DepthPolicy) String() string {
	switch p {
	case DepthCull:
		return "cull"
	case DepthClamp:
		return "clamp"
	case DepthFail:
		return "fail"
	default:
		return fmt.Sprintf("DepthPolicy(%d)", int(p))
	}
}

// ParseDepthPolicy converts a config name into a DepthPolicy.
func ParseDepthPolicy(s string) (DepthPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "cull", "":
		return DepthCull, nil
	case "clamp":
		return DepthClamp, nil
	case "fail":
		return DepthFail, nil
	default:
		return DepthCull, fmt.Errorf("unknown depth policy %q", s)
	}
}

// ScreenPoint is a projected vertex: integer offsets from the viewport
// centre plus the depth attenuation that produced them.
type ScreenPoint struct {
	X, Y  int
	Scale float64
}

// Projector maps model-space points to screen offsets with a simple
// perspective divide and a rotation about the vertical axis.
type Projector struct {
	FOV    float64
	Policy DepthPolicy
}

// NewProjector validates fov and returns a Projector.
func NewProjector(fov float64, policy DepthPolicy) (Projector, error) {
	if !(fov > 0) {
		return Projector{}, fmt.Errorf("%w: %v", ErrInvalidFOV, fov)
	}
	return Projector{FOV: fov, Policy: policy}, nil
}

// Project returns the screen offset of p seen at the given rotation.
// Depth uses the unrotated z. visible is false when the point was culled.
func (pr Projector) Project(p math.Vec3, rotation float64) (sp ScreenPoint, visible bool, err error) {
	if p.IsUnset() {
		return ScreenPoint{}, false, ErrUnsetPoint
	}
	if !finite(p.X) || !finite(p.Y) || !finite(p.Z) {
		return ScreenPoint{}, false, fmt.Errorf("%w: %+v", ErrNonFinite, p)
	}

	depth := pr.FOV + p.Z
	if depth <= 0 {
		switch pr.Policy {
		case DepthClamp:
			depth = nearEpsilon
		case DepthFail:
			return ScreenPoint{}, false, fmt.Errorf("%w: z=%g fov=%g", ErrBehindCamera, p.Z, pr.FOV)
		default:
			return ScreenPoint{}, false, nil
		}
	}

	scale := pr.FOV / depth
	x := p.RotateY(rotation).X * scale
	y := -p.Y * scale

	if !inRange(x) || !inRange(y) {
		switch pr.Policy {
		case DepthClamp:
			x, y = pin(x), pin(y)
		case DepthFail:
			return ScreenPoint{}, false, fmt.Errorf("%w: (%g, %g)", ErrOutOfRange, x, y)
		default:
			return ScreenPoint{}, false, nil
		}
	}

	// Go's float to int conversion truncates toward zero.
	return ScreenPoint{
		X:     int(x),
		Y:     int(y),
		Scale: scale,
	}, true, nil
}

func finite(f float64) bool {
	return !gomath.IsNaN(f) && !gomath.IsInf(f, 0)
}

func inRange(f float64) bool {
	return f >= -maxOffset && f <= maxOffset
}

// pin clamps f into [-maxOffset, maxOffset]. NaN pins to 0.
func pin(f float64) float64 {
	switch {
	case f > maxOffset:
		return maxOffset
	case f < -maxOffset:
		return -maxOffset
	case f != f:
		return 0
	}
	return f
}
