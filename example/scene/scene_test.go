package main

import (
	"os"
	"strings"
	"testing"

	"github.com/akmonengine/narrowphase"
	"github.com/akmonengine/narrowphase/actor"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type captureReporter struct {
	collisions []narrowphase.Collision
	rays       map[int]string
}

func (r *captureReporter) ReportCollision(c narrowphase.Collision) {
	r.collisions = append(r.collisions, c)
}

func (r *captureReporter) ReportRay(index int, result narrowphase.RaycastResult, hit bool) {
	if r.rays == nil {
		r.rays = make(map[int]string)
	}
	if hit {
		r.rays[index] = result.Object.ID
	}
}

func (r *captureReporter) pairs() []string {
	ids := make([]string, len(r.collisions))
	for i, c := range r.collisions {
		ids[i] = c.A.ID + "/" + c.B.ID
	}
	return ids
}

func loadBundledScene(t *testing.T) *Scene {
	t.Helper()
	f, err := os.Open("scene.yaml")
	require.NoError(t, err)
	defer f.Close()

	scene, err := LoadScene(f)
	require.NoError(t, err)
	return scene
}

func TestLoadScene(t *testing.T) {
	scene := loadBundledScene(t)

	assert.Equal(t, narrowphase.OrientedBoxDisabled, scene.Config.OrientedBoxPairs)
	assert.Equal(t, 2, scene.Config.Workers)
	assert.Len(t, scene.Objects, 5)
	assert.Len(t, scene.Rays, 3)

	objects, err := scene.BuildObjects()
	require.NoError(t, err)
	require.Len(t, objects, 5)

	assert.Equal(t, actor.KindOBB, objects[0].Volume.Kind)
	assert.Equal(t, actor.LayerTerrain, objects[0].Volume.Layer)
	assert.Equal(t, actor.KindCapsule, objects[3].Volume.Kind)
	assert.Equal(t, 0.5, objects[3].Volume.HalfHeight)

	ramp := objects[4]
	assert.InDelta(t, 1.0, ramp.Transform.Rotation.Len(), 1e-9)
	assert.NotEqual(t, mgl64.QuatIdent(), ramp.Transform.Rotation)
}

func TestLoadScene_Invalid(t *testing.T) {
	_, err := LoadScene(strings.NewReader("config:\n  workers: -1\n"))
	assert.ErrorIs(t, err, narrowphase.ErrInvalidConfig)

	_, err = LoadScene(strings.NewReader("objects: {"))
	assert.Error(t, err)

	scene, err := LoadScene(strings.NewReader("objects:\n  - id: thing\n    kind: torus\n"))
	require.NoError(t, err)
	_, err = scene.BuildObjects()
	assert.ErrorContains(t, err, "object thing")

	scene, err = LoadScene(strings.NewReader("objects:\n  - id: ball\n    kind: sphere\n    radius: -1\n"))
	require.NoError(t, err)
	_, err = scene.BuildObjects()
	assert.ErrorIs(t, err, actor.ErrInvalidDimensions)
}

func TestCandidatePairs(t *testing.T) {
	objects := []*actor.Object{
		actor.NewObject("a", actor.NewSphere(1), mgl64.Vec3{0, 0, 0}),
		actor.NewObject("b", actor.NewAABB(mgl64.Vec3{1, 1, 1}), mgl64.Vec3{1.5, 0, 0}),
		actor.NewObject("c", actor.NewSphere(1), mgl64.Vec3{10, 0, 0}),
		actor.NewObject("d", actor.NewSphere(1), mgl64.Vec3{0, 0.5, 0}),
	}
	objects[3].Volume.Collidable = false

	pairs := CandidatePairs(objects)
	require.Len(t, pairs, 1)
	assert.Equal(t, "a", pairs[0].A.ID)
	assert.Equal(t, "b", pairs[0].B.ID)
}

func TestSceneRay_RaycastOptions(t *testing.T) {
	objects := []*actor.Object{
		actor.NewObject("a", actor.NewSphere(1), mgl64.Vec3{}),
		actor.NewObject("b", actor.NewSphere(1), mgl64.Vec3{}),
	}

	opts := SceneRay{Layers: []actor.Layer{actor.LayerPlayer}, Ignore: []string{"b", "missing"}}.RaycastOptions(objects)
	assert.Equal(t, actor.Mask(actor.LayerPlayer), opts.Mask)
	require.Len(t, opts.Ignore, 1)
	assert.Same(t, objects[1], opts.Ignore[0])

	assert.Equal(t, actor.LayerMask(0), SceneRay{}.RaycastOptions(objects).Mask)
}

func TestRun(t *testing.T) {
	tests := []struct {
		name      string
		args      []string
		wantPairs []string
	}{
		{
			name:      "oriented box pairs disabled",
			args:      []string{"scene", "--scene", "scene.yaml"},
			wantPairs: []string{"floor/ball", "floor/player", "crate/ball", "crate/player"},
		},
		{
			name:      "separating axis test",
			args:      []string{"scene", "-s", "scene.yaml", "--sat", "-w", "3", "-v"},
			wantPairs: []string{"floor/crate", "floor/ball", "floor/player", "floor/ramp", "crate/ball", "crate/player"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reporter := &captureReporter{}
			require.NoError(t, newApp(reporter).Run(tt.args))

			assert.Equal(t, tt.wantPairs, reporter.pairs())
			assert.Equal(t, map[int]string{0: "crate", 1: "floor", 2: "crate"}, reporter.rays)
		})
	}
}

func TestRun_MissingScene(t *testing.T) {
	err := newApp(&captureReporter{}).Run([]string{"scene", "--scene", "does-not-exist.yaml"})
	assert.Error(t, err)
}
