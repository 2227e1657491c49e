package narrowphase

import (
	"math"

	"github.com/akmonengine/narrowphase/actor"
	"github.com/akmonengine/narrowphase/geometry"
	"github.com/go-gl/mathgl/mgl64"
)

// rayBoxEpsilon tolerates the rounding of the slab entry point against the box faces.
const rayBoxEpsilon = 0.0001

// Ray is a half line. Direction must be unit length; NewRay normalizes it.
type Ray struct {
	Origin    mgl64.Vec3
	Direction mgl64.Vec3
}

// NewRay creates a ray with a normalized direction. A zero direction stays zero,
// and such a ray never hits anything.
func NewRay(origin, direction mgl64.Vec3) Ray {
	return Ray{
		Origin:    origin,
		Direction: geometry.SafeNormalize(direction, mgl64.Vec3{}),
	}
}

// PointAt returns the point at distance t along the ray.
func (r Ray) PointAt(t float64) mgl64.Vec3 {
	return r.Origin.Add(r.Direction.Mul(t))
}

// RayHit is the first intersection of a ray with a volume. Distance is never negative.
type RayHit struct {
	Point    mgl64.Vec3
	Distance float64
}

// RayAABBIntersection tests a ray against an axis-aligned box. The orientation of the
// transform is ignored.
//
// For every axis the entry parameter is taken on the near face given the direction sign;
// an axis the ray does not move along contributes -1. The largest entry parameter is the
// candidate hit, which is rejected when negative or when the entry point falls outside
// the box on another axis. A ray starting inside the box does not report a hit.
//
// On a miss, hit is left untouched and false is returned.
func RayAABBIntersection(ray Ray, volume actor.Volume, transform actor.Transform, hit *RayHit) bool {
	return rayBox(ray, transform.Position, volume.HalfExtents, hit)
}

func rayBox(ray Ray, boxPos, halfExtents mgl64.Vec3, hit *RayHit) bool {
	boxMin := boxPos.Sub(halfExtents)
	boxMax := boxPos.Add(halfExtents)

	tVals := mgl64.Vec3{-1, -1, -1}
	for i := 0; i < 3; i++ {
		if ray.Direction[i] > 0 {
			tVals[i] = (boxMin[i] - ray.Origin[i]) / ray.Direction[i]
		} else if ray.Direction[i] < 0 {
			tVals[i] = (boxMax[i] - ray.Origin[i]) / ray.Direction[i]
		}
	}

	bestT := math.Max(tVals[0], math.Max(tVals[1], tVals[2]))
	if bestT < 0 {
		return false
	}

	intersection := ray.PointAt(bestT)
	for i := 0; i < 3; i++ {
		if intersection[i]+rayBoxEpsilon < boxMin[i] || intersection[i]-rayBoxEpsilon > boxMax[i] {
			return false
		}
	}

	hit.Point = intersection
	hit.Distance = bestT
	return true
}

// RayOBBIntersection moves the ray into the box's frame, runs the axis-aligned test
// there and moves the hit point back to world space.
func RayOBBIntersection(ray Ray, volume actor.Volume, transform actor.Transform, hit *RayHit) bool {
	localRay := Ray{
		Origin:    transform.WorldToLocal(ray.Origin),
		Direction: transform.DirectionToLocal(ray.Direction),
	}

	var localHit RayHit
	if !rayBox(localRay, mgl64.Vec3{}, volume.HalfExtents, &localHit) {
		return false
	}

	hit.Point = transform.LocalToWorld(localHit.Point)
	hit.Distance = localHit.Distance
	return true
}

// RaySphereIntersection tests a ray against a sphere.
// A sphere whose centre projects behind the origin is never hit; a ray grazing the
// sphere at exactly the radius is. When the origin is inside the sphere the hit is
// reported at the origin with a zero distance.
func RaySphereIntersection(ray Ray, volume actor.Volume, transform actor.Transform, hit *RayHit) bool {
	return raySphere(ray, transform.Position, volume.Radius, hit)
}

func raySphere(ray Ray, center mgl64.Vec3, radius float64, hit *RayHit) bool {
	sphereProj := center.Sub(ray.Origin).Dot(ray.Direction)
	if sphereProj < 0 {
		return false
	}

	closest := ray.PointAt(sphereProj)
	sphereDist := closest.Sub(center).Len()
	if sphereDist > radius {
		return false
	}

	offset := math.Sqrt(math.Max(0, radius*radius-sphereDist*sphereDist))
	distance := math.Max(0, sphereProj-offset)

	hit.Point = ray.PointAt(distance)
	hit.Distance = distance
	return true
}

// RayCapsuleIntersection tests a ray against a capsule, the ray being bounded to
// DefaultMaxRayLength.
func RayCapsuleIntersection(ray Ray, volume actor.Volume, transform actor.Transform, hit *RayHit) bool {
	return rayCapsule(ray, volume, transform, DefaultMaxRayLength, hit)
}

// rayCapsule finds the point of the capsule axis closest to the ray, approximated by a
// segment of maxLength, and tests the ray against a sphere of the capsule radius there.
func rayCapsule(ray Ray, volume actor.Volume, transform actor.Transform, maxLength float64, hit *RayHit) bool {
	bottom, top := volume.CapsuleSegment(transform)
	rayEnd := ray.PointAt(maxLength)

	ratio, _ := geometry.ClosestPointsOnSegments(bottom, top, ray.Origin, rayEnd)
	axisPoint := geometry.PointOnSegment(bottom, top, ratio)

	return raySphere(ray, axisPoint, volume.Radius, hit)
}
