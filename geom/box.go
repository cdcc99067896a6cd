package geom

import (
	"math"

	"github.com/jakecoffman/cp"
)

// Box is an axis-aligned bounding box.
type Box struct {
	Center Vec3
	Half   Vec3
}

func NewBox(center, half Vec3) Box {
	return Box{Center: center, Half: half}
}

func (b Box) Min() Vec3 {
	return b.Center.Sub(b.Half)
}

func (b Box) Max() Vec3 {
	return b.Center.Add(b.Half)
}

// Footprint returns the box's floor rectangle as a chipmunk BB.
func (b Box) Footprint() cp.BB {
	return cp.NewBBForExtents(b.Center.XZ(), b.Half.X, b.Half.Z)
}

// Intersects reports overlap. Touching faces count as intersecting.
func (b Box) Intersects(o Box) bool {
	if math.Abs(b.Center.Y-o.Center.Y) > b.Half.Y+o.Half.Y {
		return false
	}
	return b.Footprint().Intersects(o.Footprint())
}

// OrientedBounds returns the axis-aligned box enclosing a box with the given
// half extents (X across, Y up, Z along) yawed by angle about Y.
func OrientedBounds(center, half Vec3, angle float64) Box {
	s, c := math.Sincos(angle)
	s, c = math.Abs(s), math.Abs(c)
	return Box{
		Center: center,
		Half: Vec3{
			X: s*half.Z + c*half.X,
			Y: half.Y,
			Z: c*half.Z + s*half.X,
		},
	}
}
