package main

import (
	"io"

	"github.com/akmonengine/narrowphase"
	"github.com/akmonengine/narrowphase/actor"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/pkg/errors"
	"github.com/samber/lo"
	"gopkg.in/yaml.v3"
)

// Scene is a set of objects and rays described in YAML.
type Scene struct {
	Config  narrowphase.Config `yaml:"config"`
	Objects []SceneObject      `yaml:"objects"`
	Rays    []SceneRay         `yaml:"rays"`
}

type SceneObject struct {
	ID          string         `yaml:"id"`
	Kind        string         `yaml:"kind"`
	HalfExtents [3]float64     `yaml:"half_extents"`
	Radius      float64        `yaml:"radius"`
	HalfHeight  float64        `yaml:"half_height"`
	Position    [3]float64     `yaml:"position"`
	Rotation    *SceneRotation `yaml:"rotation"`
	Layer       actor.Layer    `yaml:"layer"`
	Disabled    bool           `yaml:"disabled"`
}

// SceneRotation is an axis and an angle in degrees.
type SceneRotation struct {
	Axis  [3]float64 `yaml:"axis"`
	Angle float64    `yaml:"angle"`
}

type SceneRay struct {
	Origin    [3]float64    `yaml:"origin"`
	Direction [3]float64    `yaml:"direction"`
	Layers    []actor.Layer `yaml:"layers"`
	Ignore    []string      `yaml:"ignore"`
}

// LoadScene decodes a scene, starting from the default detector configuration.
func LoadScene(r io.Reader) (*Scene, error) {
	scene := Scene{Config: narrowphase.DefaultConfig()}

	if err := yaml.NewDecoder(r).Decode(&scene); err != nil {
		return nil, errors.Wrap(err, "failed to decode scene")
	}
	if err := scene.Config.Validate(); err != nil {
		return nil, err
	}

	return &scene, nil
}

// BuildObjects converts the scene objects, failing on the first unknown kind.
func (s *Scene) BuildObjects() ([]*actor.Object, error) {
	objects := make([]*actor.Object, 0, len(s.Objects))

	for _, o := range s.Objects {
		kind, err := actor.ParseVolumeKind(o.Kind)
		if err != nil {
			return nil, errors.Wrapf(err, "object %s", o.ID)
		}

		var volume actor.Volume
		switch kind {
		case actor.KindAABB:
			volume = actor.NewAABB(mgl64.Vec3(o.HalfExtents))
		case actor.KindOBB:
			volume = actor.NewOBB(mgl64.Vec3(o.HalfExtents))
		case actor.KindSphere:
			volume = actor.NewSphere(o.Radius)
		case actor.KindCapsule:
			volume = actor.NewCapsule(o.HalfHeight, o.Radius)
		}
		volume = volume.WithLayer(o.Layer)
		volume.Collidable = !o.Disabled

		if err := volume.Validate(); err != nil {
			return nil, errors.Wrapf(err, "object %s", o.ID)
		}

		object := actor.NewObject(o.ID, volume, mgl64.Vec3(o.Position))
		if o.Rotation != nil {
			axis := mgl64.Vec3(o.Rotation.Axis).Normalize()
			object.Transform.Rotation = mgl64.QuatRotate(mgl64.DegToRad(o.Rotation.Angle), axis)
		}

		objects = append(objects, object)
	}

	return objects, nil
}

// RaycastOptions resolves the ignore list of a scene ray against the built objects.
func (r SceneRay) RaycastOptions(objects []*actor.Object) narrowphase.RaycastOptions {
	ignore := lo.Filter(objects, func(o *actor.Object, _ int) bool {
		return lo.Contains(r.Ignore, o.ID)
	})

	return narrowphase.RaycastOptions{Mask: actor.Mask(r.Layers...), Ignore: ignore}
}

// CandidatePairs stands in for a broad phase: every unordered pair of collidable objects
// whose world bounds overlap.
func CandidatePairs(objects []*actor.Object) []narrowphase.Pair {
	bounds := lo.Map(objects, func(o *actor.Object, _ int) actor.AABB {
		return o.ComputeAABB()
	})

	var pairs []narrowphase.Pair
	for i := 0; i < len(objects); i++ {
		if !objects[i].IsCollidable() {
			continue
		}
		for j := i + 1; j < len(objects); j++ {
			if objects[j].IsCollidable() && bounds[i].Overlaps(bounds[j]) {
				pairs = append(pairs, narrowphase.Pair{A: objects[i], B: objects[j]})
			}
		}
	}
	return pairs
}
