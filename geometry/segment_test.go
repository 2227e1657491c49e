package geometry

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
)

const tolerance = 1e-9

func TestClosestPointsOnSegments(t *testing.T) {
	tests := []struct {
		name       string
		aStart     mgl64.Vec3
		aEnd       mgl64.Vec3
		bStart     mgl64.Vec3
		bEnd       mgl64.Vec3
		wantRatioA float64
		wantRatioB float64
	}{
		{
			name:   "crossing above",
			aStart: mgl64.Vec3{-1, 0, 0}, aEnd: mgl64.Vec3{1, 0, 0},
			bStart: mgl64.Vec3{0, -1, 1}, bEnd: mgl64.Vec3{0, 1, 1},
			wantRatioA: 0.5, wantRatioB: 0.5,
		},
		{
			name:   "intersecting off centre",
			aStart: mgl64.Vec3{0, 0, 0}, aEnd: mgl64.Vec3{4, 0, 0},
			bStart: mgl64.Vec3{1, -1, 0}, bEnd: mgl64.Vec3{1, 3, 0},
			wantRatioA: 0.25, wantRatioB: 0.25,
		},
		{
			name:   "clamped past the ends",
			aStart: mgl64.Vec3{0, 0, 0}, aEnd: mgl64.Vec3{1, 0, 0},
			bStart: mgl64.Vec3{3, 1, 0}, bEnd: mgl64.Vec3{3, 2, 0},
			wantRatioA: 1, wantRatioB: 0,
		},
		{
			name:   "both points",
			aStart: mgl64.Vec3{1, 1, 1}, aEnd: mgl64.Vec3{1, 1, 1},
			bStart: mgl64.Vec3{2, 2, 2}, bEnd: mgl64.Vec3{2, 2, 2},
			wantRatioA: 0, wantRatioB: 0,
		},
		{
			name:   "A is a point",
			aStart: mgl64.Vec3{1, 5, 0}, aEnd: mgl64.Vec3{1, 5, 0},
			bStart: mgl64.Vec3{0, 0, 0}, bEnd: mgl64.Vec3{4, 0, 0},
			wantRatioA: 0, wantRatioB: 0.25,
		},
		{
			name:   "B is a point",
			aStart: mgl64.Vec3{0, 0, 0}, aEnd: mgl64.Vec3{0, 2, 0},
			bStart: mgl64.Vec3{3, 1.5, 0}, bEnd: mgl64.Vec3{3, 1.5, 0},
			wantRatioA: 0.75, wantRatioB: 0,
		},
		{
			name:   "parallel overlapping",
			aStart: mgl64.Vec3{0, 0, 0}, aEnd: mgl64.Vec3{0, 2, 0},
			bStart: mgl64.Vec3{1, 1, 0}, bEnd: mgl64.Vec3{1, 3, 0},
			wantRatioA: 0.5, wantRatioB: 0,
		},
		{
			name:   "parallel disjoint",
			aStart: mgl64.Vec3{0, 0, 0}, aEnd: mgl64.Vec3{0, 1, 0},
			bStart: mgl64.Vec3{1, 3, 0}, bEnd: mgl64.Vec3{1, 5, 0},
			wantRatioA: 1, wantRatioB: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ratioA, ratioB := ClosestPointsOnSegments(tt.aStart, tt.aEnd, tt.bStart, tt.bEnd)
			assert.InDelta(t, tt.wantRatioA, ratioA, tolerance)
			assert.InDelta(t, tt.wantRatioB, ratioB, tolerance)
		})
	}
}

func TestClosestPointsOnSegments_AlwaysInRange(t *testing.T) {
	segments := [][4]mgl64.Vec3{
		{{0, 0, 0}, {0, 0, 0}, {0, 0, 0}, {0, 0, 0}},
		{{0, 0, 0}, {1, 1, 1}, {2, 2, 2}, {3, 3, 3}},
		{{0, 0, 0}, {1, 1, 1}, {1, 1, 1}, {0, 0, 0}},
		{{-5, 2, 1}, {7, -3, 0}, {0.1, 0.1, 0.1}, {0.1, 0.1, 0.1}},
		{{1e-8, 0, 0}, {0, 0, 0}, {0, 1e8, 0}, {0, -1e8, 0}},
	}

	for _, s := range segments {
		ratioA, ratioB := ClosestPointsOnSegments(s[0], s[1], s[2], s[3])
		assert.False(t, math.IsNaN(ratioA) || math.IsNaN(ratioB), "%v", s)
		assert.GreaterOrEqual(t, ratioA, 0.0)
		assert.LessOrEqual(t, ratioA, 1.0)
		assert.GreaterOrEqual(t, ratioB, 0.0)
		assert.LessOrEqual(t, ratioB, 1.0)
	}
}

func TestClosestPointOnSegment(t *testing.T) {
	start := mgl64.Vec3{0, 0, 0}
	end := mgl64.Vec3{0, 0, 10}

	assert.InDelta(t, 0.5, ClosestPointOnSegment(mgl64.Vec3{3, -2, 5}, start, end), tolerance)
	assert.Equal(t, 0.0, ClosestPointOnSegment(mgl64.Vec3{0, 0, -4}, start, end))
	assert.Equal(t, 1.0, ClosestPointOnSegment(mgl64.Vec3{1, 1, 40}, start, end))
	assert.Equal(t, 0.0, ClosestPointOnSegment(mgl64.Vec3{1, 1, 1}, start, start), "zero length")
}

func TestSegmentDistance(t *testing.T) {
	dist, pointA, pointB := SegmentDistance(
		mgl64.Vec3{-1, 0, 0}, mgl64.Vec3{1, 0, 0},
		mgl64.Vec3{0, -1, 2}, mgl64.Vec3{0, 1, 2},
	)

	assert.InDelta(t, 2.0, dist, tolerance)
	assert.Equal(t, mgl64.Vec3{0, 0, 0}, pointA)
	assert.Equal(t, mgl64.Vec3{0, 0, 2}, pointB)
	assert.Equal(t, mgl64.Vec3{0.5, 1, 1.5}, PointOnSegment(mgl64.Vec3{0, 0, 0}, mgl64.Vec3{1, 2, 3}, 0.5))
}
