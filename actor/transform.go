package actor

import "github.com/go-gl/mathgl/mgl64"

// Transform is the world placement of a volume: a position and a unit orientation.
// It is supplied per query, nothing in this module stores it.
type Transform struct {
	Position mgl64.Vec3
	Rotation mgl64.Quat
}

// NewTransform creates an identity transform
func NewTransform() Transform {
	return Transform{
		Position: mgl64.Vec3{0, 0, 0},
		Rotation: mgl64.QuatIdent(),
	}
}

// NewTransformAt creates a transform at position with the given rotation.
func NewTransformAt(position mgl64.Vec3, rotation mgl64.Quat) Transform {
	return Transform{Position: position, Rotation: rotation}
}

// A zero quaternion (the zero value of Transform) is read as identity.
func (t Transform) rotation() mgl64.Quat {
	if t.Rotation.W == 0 && t.Rotation.V.LenSqr() == 0 {
		return mgl64.QuatIdent()
	}
	return t.Rotation
}

// WorldToLocal moves a world point into the transform's frame:
// translate by -Position, then rotate by the inverse orientation.
func (t Transform) WorldToLocal(point mgl64.Vec3) mgl64.Vec3 {
	return t.rotation().Conjugate().Rotate(point.Sub(t.Position))
}

// LocalToWorld is the inverse of WorldToLocal.
func (t Transform) LocalToWorld(point mgl64.Vec3) mgl64.Vec3 {
	return t.rotation().Rotate(point).Add(t.Position)
}

// DirectionToLocal rotates a world direction into the transform's frame, ignoring translation.
func (t Transform) DirectionToLocal(direction mgl64.Vec3) mgl64.Vec3 {
	return t.rotation().Conjugate().Rotate(direction)
}

// DirectionToWorld rotates a local direction into world space, ignoring translation.
func (t Transform) DirectionToWorld(direction mgl64.Vec3) mgl64.Vec3 {
	return t.rotation().Rotate(direction)
}

// Relative expresses other in the frame of t: the result placed under t yields other again.
func (t Transform) Relative(other Transform) Transform {
	inverse := t.rotation().Conjugate()
	return Transform{
		Position: t.WorldToLocal(other.Position),
		Rotation: inverse.Mul(other.rotation()),
	}
}
