package scene

// Layer partitions objects for camera and light culling.
type Layer uint8

// MaxLayer is the highest usable layer.
const MaxLayer Layer = 31

// DefaultLayer is assigned to new objects.
const DefaultLayer Layer = 0

// LayerMask is a set of layers.
type LayerMask uint32

// Everything contains every layer.
const Everything LayerMask = ^LayerMask(0)

// MaskOf returns the mask containing exactly the given layers.
func MaskOf(layers ...Layer) LayerMask {
	var m LayerMask
	for _, l := range layers {
		m |= 1 << (l & MaxLayer)
	}
	return m
}

// Contains reports whether l is in the mask.
func (m LayerMask) Contains(l Layer) bool {
	return m&(1<<(l&MaxLayer)) != 0
}
