package narrowphase

import (
	"context"

	"github.com/akmonengine/narrowphase/actor"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// Detector runs ray and pair queries with a given configuration.
// It holds no per-query state: a single Detector may be used from many goroutines.
type Detector struct {
	config Config
	logger *zap.Logger
}

var defaultDetector = &Detector{config: DefaultConfig(), logger: zap.NewNop()}

// NewDetector validates config and creates a Detector. A nil logger disables logging.
func NewDetector(config Config, logger *zap.Logger) (*Detector, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Detector{config: config, logger: logger}, nil
}

// Config returns the configuration the detector was created with.
func (d *Detector) Config() Config {
	return d.config
}

// RayIntersects tests a ray against a volume with the default configuration.
func RayIntersects(ray Ray, volume actor.Volume, transform actor.Transform) (RayHit, bool, error) {
	return defaultDetector.RayIntersects(ray, volume, transform)
}

// VolumesIntersect tests two volumes with the default configuration.
func VolumesIntersect(a actor.Volume, ta actor.Transform, b actor.Volume, tb actor.Transform) (Contact, bool, error) {
	return defaultDetector.VolumesIntersect(a, ta, b, tb)
}

// RayIntersects dispatches a ray test on the volume kind.
// An invalid kind is an error, never a miss. A ray with a zero direction never hits.
func (d *Detector) RayIntersects(ray Ray, volume actor.Volume, transform actor.Transform) (RayHit, bool, error) {
	if err := volume.Validate(); err != nil {
		return RayHit{}, false, err
	}
	if ray.Direction.LenSqr() == 0 {
		return RayHit{}, false, nil
	}

	var hit RayHit
	var collided bool

	switch volume.Kind {
	case actor.KindAABB:
		collided = RayAABBIntersection(ray, volume, transform, &hit)
	case actor.KindOBB:
		collided = RayOBBIntersection(ray, volume, transform, &hit)
	case actor.KindSphere:
		collided = RaySphereIntersection(ray, volume, transform, &hit)
	case actor.KindCapsule:
		collided = rayCapsule(ray, volume, transform, d.config.MaxRayLength, &hit)
	}

	return hit, collided, nil
}

// pairTest tests A against B where A's kind does not come after B's.
type pairTest func(a actor.Volume, ta actor.Transform, b actor.Volume, tb actor.Transform) (Contact, bool)

// VolumesIntersect tests two volumes and describes the overlap with a Contact whose
// normal points from A toward B.
//
// Only one implementation exists per unordered kind pair. The operands are put in a
// canonical order (kind, position, dimensions, rotation) before testing and the contact
// is flipped back, so swapping A and B yields the same result with A and B exchanged.
func (d *Detector) VolumesIntersect(a actor.Volume, ta actor.Transform, b actor.Volume, tb actor.Transform) (Contact, bool, error) {
	if err := a.Validate(); err != nil {
		return Contact{}, false, errors.Wrap(err, "volume A")
	}
	if err := b.Validate(); err != nil {
		return Contact{}, false, errors.Wrap(err, "volume B")
	}

	if precedes(b, tb, a, ta) {
		contact, ok := d.collideOrdered(b, tb, a, ta)
		if !ok {
			return Contact{}, false, nil
		}
		return contact.Flip(), true, nil
	}

	contact, ok := d.collideOrdered(a, ta, b, tb)
	return contact, ok, nil
}

func (d *Detector) collideOrdered(a actor.Volume, ta actor.Transform, b actor.Volume, tb actor.Transform) (Contact, bool) {
	test := d.selectTest(a.Kind, b.Kind)
	if test == nil {
		return Contact{}, false
	}
	return test(a, ta, b, tb)
}

// selectTest returns the test for an ordered pair, nil when the pair is not tested.
func (d *Detector) selectTest(kindA, kindB actor.VolumeKind) pairTest {
	switch kindA {
	case actor.KindAABB:
		switch kindB {
		case actor.KindAABB:
			return boxBoxAligned
		case actor.KindOBB:
			return d.orientedBoxTest(kindA, kindB)
		case actor.KindSphere:
			return boxSphereTest
		case actor.KindCapsule:
			return boxCapsuleTest
		}
	case actor.KindOBB:
		switch kindB {
		case actor.KindOBB:
			return d.orientedBoxTest(kindA, kindB)
		case actor.KindSphere:
			return boxSphereTest
		case actor.KindCapsule:
			return boxCapsuleTest
		}
	case actor.KindSphere:
		switch kindB {
		case actor.KindSphere:
			return sphereSphereTest
		case actor.KindCapsule:
			return sphereCapsuleTest
		}
	case actor.KindCapsule:
		if kindB == actor.KindCapsule {
			return capsuleCapsuleTest
		}
	}
	return nil
}

// orientedBoxTest handles OBB-OBB and AABB-OBB. Unless the SAT is enabled these pairs
// are a known gap and always report no collision.
func (d *Detector) orientedBoxTest(kindA, kindB actor.VolumeKind) pairTest {
	if d.config.OrientedBoxPairs == OrientedBoxSAT {
		return orientedBoxesSAT
	}
	if ce := d.logger.Check(zap.DebugLevel, "oriented box pair not tested"); ce != nil {
		ce.Write(zap.Stringer("kindA", kindA), zap.Stringer("kindB", kindB))
	}
	return nil
}

// precedes orders volumes by kind, then position, dimensions and rotation. Only
// identical volumes under identical transforms have no order.
func precedes(a actor.Volume, ta actor.Transform, b actor.Volume, tb actor.Transform) bool {
	if a.Kind != b.Kind {
		return a.Kind < b.Kind
	}

	keyA, keyB := orderKey(a, ta), orderKey(b, tb)
	for i := range keyA {
		if keyA[i] != keyB[i] {
			return keyA[i] < keyB[i]
		}
	}
	return false
}

func orderKey(v actor.Volume, t actor.Transform) [12]float64 {
	return [12]float64{
		t.Position.X(), t.Position.Y(), t.Position.Z(),
		v.Radius, v.HalfHeight,
		v.HalfExtents.X(), v.HalfExtents.Y(), v.HalfExtents.Z(),
		t.Rotation.W, t.Rotation.V.X(), t.Rotation.V.Y(), t.Rotation.V.Z(),
	}
}

// Pair represents a pair of objects a broad phase considers potentially colliding
type Pair struct {
	A *actor.Object
	B *actor.Object
}

// Collision is a pair of objects found overlapping and their contact
type Collision struct {
	A       *actor.Object
	B       *actor.Object
	Contact Contact
}

// Collide tests two objects. Objects that are not collidable never collide.
func (d *Detector) Collide(a, b *actor.Object) (Collision, bool, error) {
	if a == nil || b == nil {
		return Collision{}, false, ErrNilObject
	}
	if !a.IsCollidable() || !b.IsCollidable() {
		return Collision{}, false, nil
	}

	contact, ok, err := d.VolumesIntersect(a.Volume, a.Transform, b.Volume, b.Transform)
	if err != nil {
		return Collision{}, false, errors.Wrapf(err, "pair %s/%s", a.ID, b.ID)
	}
	if !ok {
		return Collision{}, false, nil
	}

	return Collision{A: a, B: b, Contact: contact}, true, nil
}

// NarrowPhase tests the candidate pairs handed over by a broad phase on workersCount
// goroutines (the configured count when workersCount is not positive). Collisions are
// returned in the order of pairs. The first error cancels the remaining work.
//
// The objects must not be mutated until NarrowPhase returns.
func (d *Detector) NarrowPhase(ctx context.Context, pairs []Pair, workersCount int) ([]Collision, error) {
	if workersCount <= 0 {
		workersCount = max(DEFAULT_WORKERS, d.config.Workers)
	}

	type slot struct {
		collision Collision
		ok        bool
	}
	slots := make([]slot, len(pairs))

	err := task(ctx, workersCount, pairs, func(i int, pair Pair) error {
		collision, ok, err := d.Collide(pair.A, pair.B)
		if err != nil {
			d.logger.Warn("narrow phase pair failed", zap.Int("index", i), zap.Error(err))
			return err
		}
		slots[i] = slot{collision: collision, ok: ok}
		return nil
	})
	if err != nil {
		return nil, err
	}

	collisions := make([]Collision, 0)
	for _, s := range slots {
		if s.ok {
			collisions = append(collisions, s.collision)
		}
	}

	return collisions, nil
}
