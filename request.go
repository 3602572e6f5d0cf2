package preview

import (
	"fmt"
	"image"
	"math"

	"github.com/gogpu/preview/geom"
	"github.com/gogpu/preview/scene"
)

// Request defaults applied to zero-valued fields.
const (
	DefaultSize               = 128
	DefaultFieldOfView        = 0.5
	DefaultDistanceMultiplier = 1.0

	// MaxSize bounds Width and Height.
	MaxSize = 4096
)

// Request describes one preview to render.
type Request struct {
	// Target is the object to preview. It is cloned, never modified.
	Target *scene.Object

	// Width and Height of the image in pixels. Zero means DefaultSize.
	// Neither may exceed MaxSize.
	Width, Height int

	// Rotation applied to the clone. The zero value means identity.
	Rotation geom.Quat

	// FieldOfView of the camera in degrees. Zero means DefaultFieldOfView.
	// Narrow angles give an almost orthographic look.
	FieldOfView float64

	// DistanceMultiplier scales the framing distance. Zero means
	// DefaultDistanceMultiplier.
	DistanceMultiplier float64

	// Callback receives the image, or nil if the preview failed. It is
	// called exactly once for every accepted request, on the host thread.
	Callback func(*image.RGBA)
}

// normalized returns r with defaults applied to zero-valued fields.
func (r Request) normalized() Request {
	if r.Width == 0 {
		r.Width = DefaultSize
	}
	if r.Height == 0 {
		r.Height = DefaultSize
	}
	if r.Rotation.IsZero() {
		r.Rotation = geom.Identity()
	}
	if r.FieldOfView == 0 {
		r.FieldOfView = DefaultFieldOfView
	}
	if r.DistanceMultiplier == 0 {
		r.DistanceMultiplier = DefaultDistanceMultiplier
	}
	return r
}

// validate checks a normalized request.
func (r Request) validate() error {
	switch {
	case r.Callback == nil:
		return ErrNilCallback
	case r.Target == nil:
		return fmt.Errorf("%w: nil target", ErrInvalidRequest)
	case r.Width < 0 || r.Height < 0 || r.Width > MaxSize || r.Height > MaxSize:
		return fmt.Errorf("%w: size %dx%d", ErrInvalidRequest, r.Width, r.Height)
	case !(r.FieldOfView > 0 && r.FieldOfView < 180):
		return fmt.Errorf("%w: field of view %v", ErrInvalidRequest, r.FieldOfView)
	case !(r.DistanceMultiplier > 0) || math.IsInf(r.DistanceMultiplier, 1):
		return fmt.Errorf("%w: distance multiplier %v", ErrInvalidRequest, r.DistanceMultiplier)
	}
	return nil
}
