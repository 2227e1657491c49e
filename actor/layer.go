package actor

// Layer is a small collision layer index. The collision core never interprets it,
// callers use it to filter queries through a LayerMask.
type Layer uint8

const (
	LayerDefault Layer = iota
	LayerTerrain
	LayerPlayer
	LayerEnemy
	LayerItem
)

// LayerMask is a set of layers, one bit per layer.
type LayerMask uint32

// MaskAll accepts every layer.
const MaskAll LayerMask = ^LayerMask(0)

// Mask builds a mask containing the given layers.
func Mask(layers ...Layer) LayerMask {
	var m LayerMask
	for _, l := range layers {
		m |= 1 << l
	}
	return m
}

// Has reports whether layer is in the mask.
func (m LayerMask) Has(layer Layer) bool {
	return m&(1<<layer) != 0
}

// Without returns the mask with the given layers removed.
func (m LayerMask) Without(layers ...Layer) LayerMask {
	return m &^ Mask(layers...)
}
