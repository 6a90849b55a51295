package deck

import "math"

// Vec2 is a 2D point or offset in surface distance units.
type Vec2 struct {
	X float64
	Y float64
}

func (v Vec2) Add(o Vec2) Vec2 { return Vec2{X: v.X + o.X, Y: v.Y + o.Y} }
func (v Vec2) Sub(o Vec2) Vec2 { return Vec2{X: v.X - o.X, Y: v.Y - o.Y} }

// Len returns the euclidean length of v.
func (v Vec2) Len() float64 { return math.Hypot(v.X, v.Y) }

// Transform is a 2D affine transform restricted to what cards need:
// translation, rotation (radians, clockwise positive) and uniform scale.
type Transform struct {
	TX       float64
	TY       float64
	Rotation float64
	Scale    float64
}

// Identity is the transform of a card at rest in the front slot.
func Identity() Transform { return Transform{Scale: 1} }

// IsIdentity reports whether t is (within float noise) the identity transform.
func (t Transform) IsIdentity() bool {
	return nearly(t.TX, 0) && nearly(t.TY, 0) && nearly(t.Rotation, 0) && nearly(t.Scale, 1)
}

// Translation returns the translation component of t.
func (t Transform) Translation() Vec2 { return Vec2{X: t.TX, Y: t.TY} }

// Pose is everything an animation can move on a card.
type Pose struct {
	Transform Transform
	Opacity   float64
}

// RestPose is the identity transform at full opacity.
func RestPose() Pose { return Pose{Transform: Identity(), Opacity: 1} }

func lerp(a, b, t float64) float64 { return a + (b-a)*t }

func lerpPose(from, to Pose, t float64) Pose {
	return Pose{
		Transform: Transform{
			TX:       lerp(from.Transform.TX, to.Transform.TX, t),
			TY:       lerp(from.Transform.TY, to.Transform.TY, t),
			Rotation: lerp(from.Transform.Rotation, to.Transform.Rotation, t),
			Scale:    lerp(from.Transform.Scale, to.Transform.Scale, t),
		},
		Opacity: clamp(lerp(from.Opacity, to.Opacity, t), 0, 1),
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func nearly(a, b float64) bool { return math.Abs(a-b) < 1e-9 }
