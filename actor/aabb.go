package actor

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// AABB is a world axis-aligned bounding box, as produced by Volume.ComputeAABB for a
// broad phase, and the overlap region of two axis-aligned boxes.
type AABB struct {
	Min mgl64.Vec3
	Max mgl64.Vec3
}

// ContainsPoint checks if a point is inside the AABB, boundary included
func (a AABB) ContainsPoint(point mgl64.Vec3) bool {
	return point.X() >= a.Min.X() && point.X() <= a.Max.X() &&
		point.Y() >= a.Min.Y() && point.Y() <= a.Max.Y() &&
		point.Z() >= a.Min.Z() && point.Z() <= a.Max.Z()
}

// Overlaps checks if two AABBs overlap; touching boxes overlap
func (a AABB) Overlaps(other AABB) bool {
	return a.Max.X() >= other.Min.X() && a.Min.X() <= other.Max.X() &&
		a.Max.Y() >= other.Min.Y() && a.Min.Y() <= other.Max.Y() &&
		a.Max.Z() >= other.Min.Z() && a.Min.Z() <= other.Max.Z()
}

// Intersection returns the common region of two overlapping boxes.
// The result is meaningless when the boxes do not overlap.
func (a AABB) Intersection(other AABB) AABB {
	return AABB{
		Min: mgl64.Vec3{math.Max(a.Min.X(), other.Min.X()), math.Max(a.Min.Y(), other.Min.Y()), math.Max(a.Min.Z(), other.Min.Z())},
		Max: mgl64.Vec3{math.Min(a.Max.X(), other.Max.X()), math.Min(a.Max.Y(), other.Max.Y()), math.Min(a.Max.Z(), other.Max.Z())},
	}
}

func (a AABB) Center() mgl64.Vec3 {
	return a.Min.Add(a.Max).Mul(0.5)
}

func (a AABB) HalfExtents() mgl64.Vec3 {
	return a.Max.Sub(a.Min).Mul(0.5)
}
