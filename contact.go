package narrowphase

import (
	"github.com/akmonengine/narrowphase/actor"
	"github.com/go-gl/mathgl/mgl64"
)

// DefaultNormal is the contact normal reported when the direction between two
// contact features is undefined (coincident sphere centres).
var DefaultNormal = mgl64.Vec3{0, 1, 0}

// Contact describes how to separate two overlapping volumes A and B.
//
// Normal is unit length and points from A toward B: moving B by Normal*Penetration
// (or A by -Normal*Penetration) resolves the overlap. PointOnA and PointOnB are the
// contact points on each volume, as offsets from that object's position in world
// orientation, ready to be used as moment arms by a solver.
type Contact struct {
	PointOnA    mgl64.Vec3
	PointOnB    mgl64.Vec3
	Normal      mgl64.Vec3
	Penetration float64
}

// Flip returns the same contact seen with A and B swapped.
func (c Contact) Flip() Contact {
	return Contact{
		PointOnA:    c.PointOnB,
		PointOnB:    c.PointOnA,
		Normal:      c.Normal.Mul(-1),
		Penetration: c.Penetration,
	}
}

// WorldPoints returns the contact points in world space.
func (c Contact) WorldPoints(transformA, transformB actor.Transform) (mgl64.Vec3, mgl64.Vec3) {
	return transformA.Position.Add(c.PointOnA), transformB.Position.Add(c.PointOnB)
}

// rotated moves a contact computed in a local frame back to world orientation.
func (c Contact) rotated(frame actor.Transform) Contact {
	return Contact{
		PointOnA:    frame.DirectionToWorld(c.PointOnA),
		PointOnB:    frame.DirectionToWorld(c.PointOnB),
		Normal:      frame.DirectionToWorld(c.Normal),
		Penetration: c.Penetration,
	}
}
