package actor

import "github.com/go-gl/mathgl/mgl64"

// Object is a game object as seen by collision queries: an identity, its bounding volume
// and its world placement. Queries only read it; the caller must not mutate it while a
// query runs.
type Object struct {
	ID        string
	Volume    Volume
	Transform Transform
}

// NewObject creates an object with an identity rotation at position
func NewObject(id string, volume Volume, position mgl64.Vec3) *Object {
	return &Object{
		ID:     id,
		Volume: volume,
		Transform: Transform{
			Position: position,
			Rotation: mgl64.QuatIdent(),
		},
	}
}

// IsCollidable reports whether the object takes part in queries at all.
func (o *Object) IsCollidable() bool {
	return o != nil && o.Volume.Collidable
}

// ComputeAABB returns the world bounds of the object's volume.
func (o *Object) ComputeAABB() AABB {
	return o.Volume.ComputeAABB(o.Transform)
}
