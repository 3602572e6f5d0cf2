package render

import (
	"errors"
	"image"

	"github.com/hashicorp/golang-lru/v2/simplelru"
)

// Pool bounds for released targets. At most PoolSizes distinct sizes are
// kept, least recently used first out, each holding up to PoolPerSize
// targets.
const (
	PoolSizes   = 8
	PoolPerSize = 4
)

// ErrNoTarget is returned by ReadPixels when no render target is active.
var ErrNoTarget = errors.New("render: no active render target")

// Device owns offscreen render targets and the active-target slot.
//
// A Device is not safe for concurrent use; it belongs to the host thread.
type Device struct {
	active  *RenderTexture
	free    *simplelru.LRU[image.Point, []*RenderTexture]
	live    int
	dropped int
}

// NewDevice creates an empty device.
func NewDevice() *Device {
	d := &Device{}
	free, err := simplelru.NewLRU[image.Point, []*RenderTexture](PoolSizes, d.evict)
	if err != nil {
		panic(err) // PoolSizes is positive
	}
	d.free = free
	return d
}

func (d *Device) evict(_ image.Point, list []*RenderTexture) {
	d.dropped += len(list)
}

// GetTemporary returns a transparent render target of the given size,
// reusing a released one when possible. Every target must be handed back
// with ReleaseTemporary.
func (d *Device) GetTemporary(width, height int) (*RenderTexture, error) {
	key := image.Pt(width, height)
	if list, _ := d.free.Get(key); len(list) > 0 {
		rt := list[len(list)-1]
		list[len(list)-1] = nil
		d.free.Add(key, list[:len(list)-1])
		rt.released = false
		clear(rt.pix.Pix)
		d.live++
		return rt, nil
	}
	rt, err := NewRenderTexture(width, height)
	if err != nil {
		return nil, err
	}
	d.live++
	return rt, nil
}

// ReleaseTemporary returns a target obtained from GetTemporary.
// Releasing nil or an already released target is a no-op. Targets beyond
// the pool bounds are dropped for the garbage collector.
func (d *Device) ReleaseTemporary(rt *RenderTexture) {
	if rt == nil || rt.released {
		return
	}
	rt.released = true
	if d.active == rt {
		d.active = nil
	}
	d.live--

	key := image.Pt(rt.Width(), rt.Height())
	list, _ := d.free.Get(key)
	if len(list) >= PoolPerSize {
		d.dropped++
		return
	}
	d.free.Add(key, append(list, rt))
}

// Pooled returns the number of released targets kept for reuse.
func (d *Device) Pooled() int {
	n := 0
	for _, list := range d.free.Values() {
		n += len(list)
	}
	return n
}

// Dropped returns how many released targets fell out of the pool.
func (d *Device) Dropped() int {
	return d.dropped
}

// Live returns the number of temporaries handed out and not yet released.
func (d *Device) Live() int {
	return d.live
}

// Active returns the active render target, or nil.
func (d *Device) Active() *RenderTexture {
	return d.active
}

// SetActive makes rt the active render target. nil clears the slot.
func (d *Device) SetActive(rt *RenderTexture) {
	d.active = rt
}

// ReadPixels copies the active target into a new densely packed RGBA8
// buffer, top row first.
func (d *Device) ReadPixels() ([]byte, error) {
	rt := d.active
	if rt == nil {
		return nil, ErrNoTarget
	}
	if rt.released {
		return nil, ErrReleased
	}
	buf := make([]byte, len(rt.pix.Pix))
	copy(buf, rt.pix.Pix)
	return buf, nil
}
