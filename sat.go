package narrowphase

import (
	"math"

	"github.com/akmonengine/narrowphase/actor"
	"github.com/go-gl/mathgl/mgl64"
)

// crossAxisEpsilon skips edge-edge axes of nearly parallel edges, which are already
// covered by a face axis.
const crossAxisEpsilon = 1e-9

// boxAxes returns the three world axes of a box frame.
func boxAxes(frame actor.Transform) [3]mgl64.Vec3 {
	return [3]mgl64.Vec3{
		frame.DirectionToWorld(mgl64.Vec3{1, 0, 0}),
		frame.DirectionToWorld(mgl64.Vec3{0, 1, 0}),
		frame.DirectionToWorld(mgl64.Vec3{0, 0, 1}),
	}
}

// projectedRadius is the half length of the box projected on axis.
func projectedRadius(axes [3]mgl64.Vec3, halfExtents, axis mgl64.Vec3) float64 {
	return math.Abs(axes[0].Dot(axis))*halfExtents.X() +
		math.Abs(axes[1].Dot(axis))*halfExtents.Y() +
		math.Abs(axes[2].Dot(axis))*halfExtents.Z()
}

// boxSupport returns the box vertex furthest along direction.
func boxSupport(axes [3]mgl64.Vec3, halfExtents, center, direction mgl64.Vec3) mgl64.Vec3 {
	point := center
	for i := 0; i < 3; i++ {
		extent := halfExtents[i]
		if axes[i].Dot(direction) < 0 {
			extent = -extent
		}
		point = point.Add(axes[i].Mul(extent))
	}
	return point
}

// orientedBoxesSAT tests two boxes with the separating axis theorem over the 15 candidate
// axes: 3 face normals of each box and the 9 cross products of their edges.
//
// The axis with the smallest overlap becomes the contact normal, oriented from A toward B,
// the first one found on ties. The contact point is the vertex of B deepest inside A.
func orientedBoxesSAT(a actor.Volume, ta actor.Transform, b actor.Volume, tb actor.Transform) (Contact, bool) {
	frameA := boxFrame(a, ta)
	frameB := boxFrame(b, tb)
	axesA := boxAxes(frameA)
	axesB := boxAxes(frameB)
	delta := tb.Position.Sub(ta.Position)

	candidates := make([]mgl64.Vec3, 0, 15)
	candidates = append(candidates, axesA[:]...)
	candidates = append(candidates, axesB[:]...)
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			cross := axesA[i].Cross(axesB[j])
			if cross.Len() < crossAxisEpsilon {
				continue
			}
			candidates = append(candidates, cross.Normalize())
		}
	}

	penetration := math.MaxFloat64
	var normal mgl64.Vec3
	for _, axis := range candidates {
		distance := delta.Dot(axis)
		overlap := projectedRadius(axesA, a.HalfExtents, axis) +
			projectedRadius(axesB, b.HalfExtents, axis) -
			math.Abs(distance)

		if overlap < 0 {
			return Contact{}, false
		}
		if overlap < penetration {
			penetration = overlap
			if distance < 0 {
				normal = axis.Mul(-1)
			} else {
				normal = axis
			}
		}
	}

	deepestB := boxSupport(axesB, b.HalfExtents, tb.Position, normal.Mul(-1))
	pointOnA := deepestB.Add(normal.Mul(penetration))

	return Contact{
		PointOnA:    pointOnA.Sub(ta.Position),
		PointOnB:    deepestB.Sub(tb.Position),
		Normal:      normal,
		Penetration: penetration,
	}, true
}
