package geometry

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// ClampPointToBox clamps a point expressed in the box's local frame into
// [-halfExtents, halfExtents] on each axis, giving the closest point of the box.
func ClampPointToBox(localPoint, halfExtents mgl64.Vec3) mgl64.Vec3 {
	return mgl64.Vec3{
		mgl64.Clamp(localPoint.X(), -halfExtents.X(), halfExtents.X()),
		mgl64.Clamp(localPoint.Y(), -halfExtents.Y(), halfExtents.Y()),
		mgl64.Clamp(localPoint.Z(), -halfExtents.Z(), halfExtents.Z()),
	}
}

// PointInBox reports whether a local point lies inside the box, boundary included.
func PointInBox(localPoint, halfExtents mgl64.Vec3) bool {
	return math.Abs(localPoint.X()) <= halfExtents.X() &&
		math.Abs(localPoint.Y()) <= halfExtents.Y() &&
		math.Abs(localPoint.Z()) <= halfExtents.Z()
}

// NearestFace returns the outward normal of the box face nearest to a local point inside
// the box, and the distance from the point to that face.
// Ties are resolved in X, Y, Z order; on an axis where the point is centred the positive
// face is chosen.
func NearestFace(localPoint, halfExtents mgl64.Vec3) (mgl64.Vec3, float64) {
	bestAxis := 0
	bestDist := math.MaxFloat64

	for i := 0; i < 3; i++ {
		dist := halfExtents[i] - math.Abs(localPoint[i])
		if dist < bestDist {
			bestDist = dist
			bestAxis = i
		}
	}

	var normal mgl64.Vec3
	if localPoint[bestAxis] < 0 {
		normal[bestAxis] = -1
	} else {
		normal[bestAxis] = 1
	}

	return normal, bestDist
}

// SafeNormalize returns v normalized, or fallback when v has zero length.
func SafeNormalize(v, fallback mgl64.Vec3) mgl64.Vec3 {
	l := v.Len()
	if l == 0 {
		return fallback
	}
	return v.Mul(1 / l)
}
