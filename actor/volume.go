package actor

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/pkg/errors"
)

// VolumeKind is the closed tag set of supported bounding volumes.
// The values match the bit tags the volumes were historically serialized with.
type VolumeKind int

const (
	KindAABB    VolumeKind = 1
	KindOBB     VolumeKind = 2
	KindSphere  VolumeKind = 4
	KindCapsule VolumeKind = 16
)

// Valid reports whether k belongs to the supported tag set.
func (k VolumeKind) Valid() bool {
	switch k {
	case KindAABB, KindOBB, KindSphere, KindCapsule:
		return true
	}
	return false
}

func (k VolumeKind) String() string {
	switch k {
	case KindAABB:
		return "aabb"
	case KindOBB:
		return "obb"
	case KindSphere:
		return "sphere"
	case KindCapsule:
		return "capsule"
	}
	return fmt.Sprintf("VolumeKind(%d)", int(k))
}

// ParseVolumeKind maps the textual name used in scene files to a kind.
func ParseVolumeKind(name string) (VolumeKind, error) {
	switch name {
	case "aabb":
		return KindAABB, nil
	case "obb":
		return KindOBB, nil
	case "sphere":
		return KindSphere, nil
	case "capsule":
		return KindCapsule, nil
	}
	return 0, errors.Errorf("unknown volume kind %q", name)
}

// ErrInvalidDimensions is returned for volumes with negative extents, radius or half height.
var ErrInvalidDimensions = errors.New("invalid volume dimensions")

// InvalidVolumeKindError is returned whenever a volume carries a tag outside the supported set.
// An invalid tag is never treated as "no collision".
type InvalidVolumeKindError struct {
	Kind VolumeKind
}

func (e *InvalidVolumeKindError) Error() string {
	return fmt.Sprintf("invalid volume kind %d", int(e.Kind))
}

// Volume is a tagged bounding volume descriptor.
// Only the fields relevant to Kind are read:
//   - KindAABB, KindOBB: HalfExtents
//   - KindSphere: Radius
//   - KindCapsule: HalfHeight (half length of the central segment) and Radius
type Volume struct {
	Kind        VolumeKind
	HalfExtents mgl64.Vec3
	Radius      float64
	HalfHeight  float64

	// Layer is carried for callers' filtering, pair and ray tests never read it.
	Layer      Layer
	Collidable bool
}

func NewAABB(halfExtents mgl64.Vec3) Volume {
	return Volume{Kind: KindAABB, HalfExtents: halfExtents, Collidable: true}
}

func NewOBB(halfExtents mgl64.Vec3) Volume {
	return Volume{Kind: KindOBB, HalfExtents: halfExtents, Collidable: true}
}

func NewSphere(radius float64) Volume {
	return Volume{Kind: KindSphere, Radius: radius, Collidable: true}
}

// NewCapsule creates a capsule whose central segment runs along the local Y axis,
// from -halfHeight to +halfHeight.
func NewCapsule(halfHeight, radius float64) Volume {
	return Volume{Kind: KindCapsule, HalfHeight: halfHeight, Radius: radius, Collidable: true}
}

// WithLayer returns a copy of the volume assigned to layer.
func (v Volume) WithLayer(layer Layer) Volume {
	v.Layer = layer
	return v
}

// Validate checks the tag and the dimensions read for that tag.
func (v Volume) Validate() error {
	if !v.Kind.Valid() {
		return &InvalidVolumeKindError{Kind: v.Kind}
	}

	switch v.Kind {
	case KindAABB, KindOBB:
		if v.HalfExtents.X() < 0 || v.HalfExtents.Y() < 0 || v.HalfExtents.Z() < 0 {
			return errors.Wrapf(ErrInvalidDimensions, "%s half extents %v", v.Kind, v.HalfExtents)
		}
	case KindSphere:
		if v.Radius < 0 {
			return errors.Wrapf(ErrInvalidDimensions, "sphere radius %v", v.Radius)
		}
	case KindCapsule:
		if v.Radius < 0 || v.HalfHeight < 0 {
			return errors.Wrapf(ErrInvalidDimensions, "capsule radius %v half height %v", v.Radius, v.HalfHeight)
		}
	}
	return nil
}

// CapsuleAxis is the local direction of a capsule's central segment.
var CapsuleAxis = mgl64.Vec3{0, 1, 0}

// CapsuleSegment returns the world-space endpoints of the capsule central segment.
// bottom is at -HalfHeight along the rotated axis, top at +HalfHeight.
func (v Volume) CapsuleSegment(transform Transform) (bottom, top mgl64.Vec3) {
	offset := transform.DirectionToWorld(CapsuleAxis).Mul(v.HalfHeight)
	return transform.Position.Sub(offset), transform.Position.Add(offset)
}

// ComputeAABB calculates the world axis-aligned bounds of the volume, as used by a broad phase.
func (v Volume) ComputeAABB(transform Transform) AABB {
	var half mgl64.Vec3

	switch v.Kind {
	case KindAABB:
		half = v.HalfExtents
	case KindOBB:
		// |R| * halfExtents
		m := transform.rotation().Mat4().Mat3()
		for i := 0; i < 3; i++ {
			half[i] = math.Abs(m.At(i, 0))*v.HalfExtents.X() +
				math.Abs(m.At(i, 1))*v.HalfExtents.Y() +
				math.Abs(m.At(i, 2))*v.HalfExtents.Z()
		}
	case KindSphere:
		half = mgl64.Vec3{v.Radius, v.Radius, v.Radius}
	case KindCapsule:
		offset := transform.DirectionToWorld(CapsuleAxis).Mul(v.HalfHeight)
		half = mgl64.Vec3{
			math.Abs(offset.X()) + v.Radius,
			math.Abs(offset.Y()) + v.Radius,
			math.Abs(offset.Z()) + v.Radius,
		}
	}

	return AABB{
		Min: transform.Position.Sub(half),
		Max: transform.Position.Add(half),
	}
}
