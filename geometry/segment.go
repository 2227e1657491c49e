// Package geometry implements the closest-point primitives the narrow phase is built from.
//
// The functions are pure and know nothing about volume kinds. Results are expressed as
// interpolation ratios in [0,1] along a segment; PointOnSegment turns a ratio back into a point.
//
// References:
//   - Ericson: "Real-Time Collision Detection" (2005), 5.1.2 and 5.1.9
package geometry

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// ClosestPointsOnSegments finds the ratios along segment A and segment B at which the
// two segments come closest.
//
// The general case solves the 2x2 system obtained by setting the derivatives of
// |A(s) - B(t)|² to zero, then clamps both ratios into [0,1].
//
// When the system is singular (denominator exactly zero: parallel segments, or at least one
// zero-length segment) a fixed fallback is used instead:
//   - both segments are points: (0, 0)
//   - A is a point: A's point projected onto B
//   - B is a point: B's point projected onto A
//   - parallel: B's start projected onto A, then that point projected onto B
//
// The fallback is always defined but is not guaranteed to be the optimal pair for every
// parallel configuration; callers needing the true minimum test the endpoints as well.
func ClosestPointsOnSegments(aStart, aEnd, bStart, bEnd mgl64.Vec3) (ratioA, ratioB float64) {
	dirA := aEnd.Sub(aStart)
	dirB := bEnd.Sub(bStart)
	startDelta := bStart.Sub(aStart)

	dotAA := dirA.Dot(dirA)
	dotBB := dirB.Dot(dirB)
	dotAB := dirA.Dot(dirB)
	dotDA := startDelta.Dot(dirA)
	dotDB := startDelta.Dot(dirB)

	denom := dotAB*dotAB - dotAA*dotBB

	if denom != 0 {
		ratioA = (dotDB*dotAB - dotBB*dotDA) / denom
		ratioB = (dotAA*dotDB - dotAB*dotDA) / denom
		return clamp01(ratioA), clamp01(ratioB)
	}

	return singularClosestPoints(aStart, dirA, bStart, dirB, dotAA, dotBB, dotDA, dotDB)
}

func singularClosestPoints(aStart, dirA, bStart, dirB mgl64.Vec3, dotAA, dotBB, dotDA, dotDB float64) (float64, float64) {
	switch {
	case dotAA == 0 && dotBB == 0:
		return 0, 0
	case dotAA == 0:
		return 0, clamp01(-dotDB / dotBB)
	case dotBB == 0:
		return clamp01(dotDA / dotAA), 0
	}

	ratioA := clamp01(dotDA / dotAA)
	pointA := aStart.Add(dirA.Mul(ratioA))
	ratioB := clamp01(pointA.Sub(bStart).Dot(dirB) / dotBB)

	return ratioA, ratioB
}

// ClosestPointOnSegment projects point onto the segment and returns the clamped ratio.
// A zero-length segment returns 0.
func ClosestPointOnSegment(point, segStart, segEnd mgl64.Vec3) float64 {
	heading := segEnd.Sub(segStart)
	lenSqr := heading.LenSqr()
	if lenSqr == 0 {
		return 0
	}

	return clamp01(point.Sub(segStart).Dot(heading) / lenSqr)
}

// PointOnSegment interpolates between start and end.
func PointOnSegment(start, end mgl64.Vec3, ratio float64) mgl64.Vec3 {
	return start.Add(end.Sub(start).Mul(ratio))
}

// SegmentDistance returns the distance between the two closest points of the segments,
// along with the points themselves.
func SegmentDistance(aStart, aEnd, bStart, bEnd mgl64.Vec3) (float64, mgl64.Vec3, mgl64.Vec3) {
	ratioA, ratioB := ClosestPointsOnSegments(aStart, aEnd, bStart, bEnd)
	pointA := PointOnSegment(aStart, aEnd, ratioA)
	pointB := PointOnSegment(bStart, bEnd, ratioB)

	return pointA.Sub(pointB).Len(), pointA, pointB
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
