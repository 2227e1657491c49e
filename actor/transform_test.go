package actor

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
)

func TestTransform_RoundTrip(t *testing.T) {
	transforms := map[string]Transform{
		"identity":   NewTransform(),
		"zero value": {},
		"translated": NewTransformAt(mgl64.Vec3{3, -2, 7}, mgl64.QuatIdent()),
		"rotated":    NewTransformAt(mgl64.Vec3{}, mgl64.QuatRotate(0.7, mgl64.Vec3{1, 1, 0}.Normalize())),
		"both":       NewTransformAt(mgl64.Vec3{-1, 4, 2}, mgl64.QuatRotate(2.1, mgl64.Vec3{0.2, -1, 0.5}.Normalize())),
	}
	points := []mgl64.Vec3{
		{0, 0, 0},
		{1, 0, 0},
		{-3.5, 2, 10},
		{0.001, -7, 0.25},
	}

	for name, transform := range transforms {
		t.Run(name, func(t *testing.T) {
			for _, p := range points {
				assertVecNear(t, p, transform.WorldToLocal(transform.LocalToWorld(p)))
				assertVecNear(t, p, transform.LocalToWorld(transform.WorldToLocal(p)))
				assertVecNear(t, p, transform.DirectionToLocal(transform.DirectionToWorld(p)))
			}
		})
	}
}

func TestTransform_WorldToLocal(t *testing.T) {
	transform := NewTransformAt(mgl64.Vec3{1, 0, 0}, mgl64.QuatRotate(math.Pi/2, mgl64.Vec3{0, 0, 1}))

	// world +Y from the position is the local +X axis
	assertVecNear(t, mgl64.Vec3{1, 0, 0}, transform.WorldToLocal(mgl64.Vec3{1, 1, 0}))
	assertVecNear(t, mgl64.Vec3{0, 1, 0}, transform.DirectionToWorld(mgl64.Vec3{1, 0, 0}))
	assertVecNear(t, mgl64.Vec3{1, 0, 0}, transform.DirectionToLocal(mgl64.Vec3{0, 1, 0}))
}

func TestTransform_Relative(t *testing.T) {
	a := NewTransformAt(mgl64.Vec3{1, 2, 3}, mgl64.QuatRotate(0.4, mgl64.Vec3{0, 1, 0}))
	b := NewTransformAt(mgl64.Vec3{-2, 0, 5}, mgl64.QuatRotate(1.3, mgl64.Vec3{1, 0, 0}))

	rel := a.Relative(b)

	// placing b's local point through rel then a must land where b puts it
	p := mgl64.Vec3{0.5, -1, 2}
	assertVecNear(t, b.LocalToWorld(p), a.LocalToWorld(rel.LocalToWorld(p)))
}

func TestTransform_ZeroRotationIsIdentity(t *testing.T) {
	transform := Transform{Position: mgl64.Vec3{1, 1, 1}}
	assert.Equal(t, mgl64.Vec3{2, 3, 4}, transform.LocalToWorld(mgl64.Vec3{1, 2, 3}))
}
