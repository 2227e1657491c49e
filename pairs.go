package narrowphase

import (
	"math"

	"github.com/akmonengine/narrowphase/actor"
	"github.com/akmonengine/narrowphase/geometry"
	"github.com/go-gl/mathgl/mgl64"
)

// Every pair test reduces to one of two numeric cores:
//   - sphereSphere: two points with radii
//   - boxSphere: a point with a radius against a box centred at the origin of its frame
//
// Capsules collapse to the point of their axis closest to the other volume, and boxes
// are handled in their own frame (identity rotation for AABBs, the object rotation for
// OBBs), so each adapter is a few lines of frame bookkeeping around a core.

// sphereSphere returns a contact whose points are relative to each sphere centre.
// Touching spheres collide with a zero penetration.
func sphereSphere(centerA mgl64.Vec3, radiusA float64, centerB mgl64.Vec3, radiusB float64) (Contact, bool) {
	radii := radiusA + radiusB
	delta := centerB.Sub(centerA)
	deltaLength := delta.Len()

	if deltaLength > radii {
		return Contact{}, false
	}

	normal := geometry.SafeNormalize(delta, DefaultNormal)

	return Contact{
		PointOnA:    normal.Mul(radiusA),
		PointOnB:    normal.Mul(-radiusB),
		Normal:      normal,
		Penetration: radii - deltaLength,
	}, true
}

// boxSphere tests a sphere given in the box frame against the box.
// PointOnA is relative to the box centre, PointOnB relative to the sphere centre.
//
// When the centre lies inside the box the clamped point is the centre itself and gives
// no direction, the sphere is then pushed out through the nearest face.
func boxSphere(halfExtents, localCenter mgl64.Vec3, radius float64) (Contact, bool) {
	if geometry.PointInBox(localCenter, halfExtents) {
		normal, depth := geometry.NearestFace(localCenter, halfExtents)
		return Contact{
			PointOnA:    localCenter.Add(normal.Mul(depth)),
			PointOnB:    normal.Mul(-radius),
			Normal:      normal,
			Penetration: radius + depth,
		}, true
	}

	closest := geometry.ClampPointToBox(localCenter, halfExtents)
	delta := localCenter.Sub(closest)
	distance := delta.Len()

	if distance > radius {
		return Contact{}, false
	}

	normal := delta.Mul(1 / distance)

	return Contact{
		PointOnA:    closest,
		PointOnB:    normal.Mul(-radius),
		Normal:      normal,
		Penetration: radius - distance,
	}, true
}

// boxFrame is the frame a box volume is tested in: AABBs ignore the placement rotation.
func boxFrame(volume actor.Volume, transform actor.Transform) actor.Transform {
	if volume.Kind == actor.KindAABB {
		return actor.Transform{Position: transform.Position, Rotation: mgl64.QuatIdent()}
	}
	return transform
}

// boxBoxAligned tests two axis-aligned boxes.
// On overlap the penetration along each of the 6 face normals is computed and the
// smallest wins, the first one found on ties. The contact points are the centre of the
// overlap region.
func boxBoxAligned(a actor.Volume, ta actor.Transform, b actor.Volume, tb actor.Transform) (Contact, bool) {
	delta := tb.Position.Sub(ta.Position)
	totalSize := a.HalfExtents.Add(b.HalfExtents)

	if math.Abs(delta.X()) > totalSize.X() ||
		math.Abs(delta.Y()) > totalSize.Y() ||
		math.Abs(delta.Z()) > totalSize.Z() {
		return Contact{}, false
	}

	faces := [6]mgl64.Vec3{
		{-1, 0, 0}, {1, 0, 0},
		{0, -1, 0}, {0, 1, 0},
		{0, 0, -1}, {0, 0, 1},
	}

	maxA := ta.Position.Add(a.HalfExtents)
	minA := ta.Position.Sub(a.HalfExtents)
	maxB := tb.Position.Add(b.HalfExtents)
	minB := tb.Position.Sub(b.HalfExtents)

	distances := [6]float64{
		maxB.X() - minA.X(),
		maxA.X() - minB.X(),
		maxB.Y() - minA.Y(),
		maxA.Y() - minB.Y(),
		maxB.Z() - minA.Z(),
		maxA.Z() - minB.Z(),
	}

	penetration := math.MaxFloat64
	var bestAxis mgl64.Vec3
	for i := 0; i < 6; i++ {
		if distances[i] < penetration {
			penetration = distances[i]
			bestAxis = faces[i]
		}
	}

	boundsA := actor.AABB{Min: minA, Max: maxA}
	center := boundsA.Intersection(actor.AABB{Min: minB, Max: maxB}).Center()

	return Contact{
		PointOnA:    center.Sub(ta.Position),
		PointOnB:    center.Sub(tb.Position),
		Normal:      bestAxis,
		Penetration: penetration,
	}, true
}

// boxSphereWorld tests a box (A) against a sphere of radius centred at center (B) by
// moving the sphere into the box frame.
func boxSphereWorld(halfExtents mgl64.Vec3, frame actor.Transform, center mgl64.Vec3, radius float64) (Contact, bool) {
	contact, ok := boxSphere(halfExtents, frame.WorldToLocal(center), radius)
	if !ok {
		return Contact{}, false
	}
	return contact.rotated(frame), true
}

func boxSphereTest(a actor.Volume, ta actor.Transform, b actor.Volume, tb actor.Transform) (Contact, bool) {
	return boxSphereWorld(a.HalfExtents, boxFrame(a, ta), tb.Position, b.Radius)
}

// boxCapsuleTest tests a box (A) against a capsule (B).
//
// In the box frame, the two capsule endpoints and its midpoint are clamped into the box;
// each clamped point is projected back onto the capsule axis and the closest
// (axis point, box point) pair is kept. The capsule then stands in as a sphere of its
// radius at that axis point.
func boxCapsuleTest(a actor.Volume, ta actor.Transform, b actor.Volume, tb actor.Transform) (Contact, bool) {
	frame := boxFrame(a, ta)

	local := frame.Relative(tb)
	bottom, top := b.CapsuleSegment(local)
	center := local.Position

	axisPoint := closestCapsulePointToBox(a.HalfExtents, bottom, top, center)

	contact, ok := boxSphere(a.HalfExtents, axisPoint, b.Radius)
	if !ok {
		return Contact{}, false
	}

	// PointOnB is relative to the axis point, move it to the capsule position
	contact.PointOnB = contact.PointOnB.Add(axisPoint.Sub(center))
	return contact.rotated(frame), true
}

func closestCapsulePointToBox(halfExtents, bottom, top, center mgl64.Vec3) mgl64.Vec3 {
	testPoints := [3]mgl64.Vec3{bottom, top, center}

	best := math.MaxFloat64
	capsulePoint := center
	for _, p := range testPoints {
		boxPoint := geometry.ClampPointToBox(p, halfExtents)
		ratio := geometry.ClosestPointOnSegment(boxPoint, bottom, top)
		candidate := geometry.PointOnSegment(bottom, top, ratio)

		if dist := candidate.Sub(boxPoint).Len(); dist < best {
			best = dist
			capsulePoint = candidate
		}
	}

	return capsulePoint
}

func sphereSphereTest(a actor.Volume, ta actor.Transform, b actor.Volume, tb actor.Transform) (Contact, bool) {
	return sphereSphere(ta.Position, a.Radius, tb.Position, b.Radius)
}

// sphereCapsuleTest projects the sphere (A) centre onto the capsule (B) axis and tests
// two spheres.
func sphereCapsuleTest(a actor.Volume, ta actor.Transform, b actor.Volume, tb actor.Transform) (Contact, bool) {
	bottom, top := b.CapsuleSegment(tb)
	ratio := geometry.ClosestPointOnSegment(ta.Position, bottom, top)
	axisPoint := geometry.PointOnSegment(bottom, top, ratio)

	contact, ok := sphereSphere(ta.Position, a.Radius, axisPoint, b.Radius)
	if !ok {
		return Contact{}, false
	}

	contact.PointOnB = contact.PointOnB.Add(axisPoint.Sub(tb.Position))
	return contact, true
}

// capsuleCapsuleTest finds the closest points of the two capsule axes and tests two
// spheres there.
//
// The two-line solution is not guaranteed to be the true minimum when the closest points
// sit at an endpoint (and it falls back to a fixed choice for parallel axes), so each
// endpoint is also projected on the other axis and the closest of the five candidate
// pairs is kept.
func capsuleCapsuleTest(a actor.Volume, ta actor.Transform, b actor.Volume, tb actor.Transform) (Contact, bool) {
	bottomA, topA := a.CapsuleSegment(ta)
	bottomB, topB := b.CapsuleSegment(tb)

	best, pointA, pointB := geometry.SegmentDistance(bottomA, topA, bottomB, topB)

	for _, end := range [2]mgl64.Vec3{bottomA, topA} {
		ratio := geometry.ClosestPointOnSegment(end, bottomB, topB)
		candidate := geometry.PointOnSegment(bottomB, topB, ratio)
		if dist := candidate.Sub(end).Len(); dist < best {
			best = dist
			pointA = end
			pointB = candidate
		}
	}

	for _, end := range [2]mgl64.Vec3{bottomB, topB} {
		ratio := geometry.ClosestPointOnSegment(end, bottomA, topA)
		candidate := geometry.PointOnSegment(bottomA, topA, ratio)
		if dist := candidate.Sub(end).Len(); dist < best {
			best = dist
			pointA = candidate
			pointB = end
		}
	}

	contact, ok := sphereSphere(pointA, a.Radius, pointB, b.Radius)
	if !ok {
		return Contact{}, false
	}

	contact.PointOnA = contact.PointOnA.Add(pointA.Sub(ta.Position))
	contact.PointOnB = contact.PointOnB.Add(pointB.Sub(tb.Position))
	return contact, true
}
