package narrowphase

import (
	"github.com/akmonengine/narrowphase/actor"
	"github.com/pkg/errors"
	"github.com/samber/lo"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// RaycastOptions filters the objects a world raycast considers.
type RaycastOptions struct {
	// Mask selects the layers to test. A zero mask tests every layer.
	Mask actor.LayerMask
	// Ignore lists objects never reported, typically the caster itself.
	Ignore []*actor.Object
}

// RaycastResult is the closest object hit by a world raycast.
type RaycastResult struct {
	Object *actor.Object
	Hit    RayHit
}

// Raycast casts ray against objects and returns the closest hit, as used for picking,
// line of sight and grapple points. Non-collidable, masked out and ignored objects are
// skipped. Ties keep the object listed first.
//
// An object with an invalid volume does not stop the query: its error is collected and
// returned alongside the best hit among the valid objects.
func (d *Detector) Raycast(ray Ray, objects []*actor.Object, opts RaycastOptions) (RaycastResult, bool, error) {
	mask := opts.Mask
	if mask == 0 {
		mask = actor.MaskAll
	}

	var result RaycastResult
	var found bool
	var errs error

	for _, object := range objects {
		if !object.IsCollidable() || !mask.Has(object.Volume.Layer) || lo.Contains(opts.Ignore, object) {
			continue
		}

		hit, ok, err := d.RayIntersects(ray, object.Volume, object.Transform)
		if err != nil {
			d.logger.Warn("raycast skipped object", zap.String("object", object.ID), zap.Error(err))
			errs = multierr.Append(errs, errors.Wrapf(err, "object %s", object.ID))
			continue
		}
		if !ok {
			continue
		}

		if !found || hit.Distance < result.Hit.Distance {
			result = RaycastResult{Object: object, Hit: hit}
			found = true
		}
	}

	return result, found, errs
}

// Raycast casts a ray against objects with the default configuration.
func Raycast(ray Ray, objects []*actor.Object, opts RaycastOptions) (RaycastResult, bool, error) {
	return defaultDetector.Raycast(ray, objects, opts)
}
