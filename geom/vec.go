// Package geom holds the vector and box primitives shared by the simulation.
//
// The arena floor is the XZ plane and Y points up. Headings are measured with
// atan2(x, z), so a positive rotation about Y is a left turn seen from above.
package geom

import (
	"math"

	"github.com/jakecoffman/cp"
)

// Vec3 is a value type; methods never mutate the receiver.
type Vec3 struct {
	X, Y, Z float64
}

func V(x, y, z float64) Vec3 {
	return Vec3{X: x, Y: y, Z: z}
}

func (v Vec3) Add(o Vec3) Vec3 {
	return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z}
}

func (v Vec3) Sub(o Vec3) Vec3 {
	return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z}
}

func (v Vec3) Scale(s float64) Vec3 {
	return Vec3{v.X * s, v.Y * s, v.Z * s}
}

func (v Vec3) Dot(o Vec3) float64 {
	return v.X*o.X + v.Y*o.Y + v.Z*o.Z
}

func (v Vec3) Length() float64 {
	return math.Sqrt(v.Dot(v))
}

func (v Vec3) Distance(o Vec3) float64 {
	return v.Sub(o).Length()
}

// Normalize returns the unit vector along v. The zero vector stays zero.
func (v Vec3) Normalize() Vec3 {
	l := v.Length()
	if l == 0 {
		return Vec3{}
	}
	return v.Scale(1 / l)
}

// Lerp blends linearly from v to o.
func (v Vec3) Lerp(o Vec3, t float64) Vec3 {
	return v.Add(o.Sub(v).Scale(t))
}

// RotateY rotates v by angle radians about the vertical axis.
func (v Vec3) RotateY(angle float64) Vec3 {
	s, c := math.Sincos(angle)
	return Vec3{
		X: v.X*c + v.Z*s,
		Y: v.Y,
		Z: -v.X*s + v.Z*c,
	}
}

// Heading is the yaw of v on the floor plane.
func (v Vec3) Heading() float64 {
	return math.Atan2(v.X, v.Z)
}

// HeadingVec is the unit floor vector with the given yaw.
func HeadingVec(heading float64) Vec3 {
	s, c := math.Sincos(heading)
	return Vec3{X: s, Z: c}
}

// XZ projects v onto the floor plane as a chipmunk vector (X→X, Z→Y).
func (v Vec3) XZ() cp.Vector {
	return cp.Vector{X: v.X, Y: v.Z}
}

// FromXZ lifts a floor vector back to 3D at height y.
func FromXZ(p cp.Vector, y float64) Vec3 {
	return Vec3{X: p.X, Y: y, Z: p.Y}
}

// ApproxEqual compares component-wise within eps.
func (v Vec3) ApproxEqual(o Vec3, eps float64) bool {
	return math.Abs(v.X-o.X) <= eps && math.Abs(v.Y-o.Y) <= eps && math.Abs(v.Z-o.Z) <= eps
}
