package preview

import (
	"time"

	"github.com/gogpu/preview/geom"
	"github.com/gogpu/preview/render"
	"github.com/gogpu/preview/scene"
)

// Option configures a Service during creation.
//
// Example:
//
//	svc := preview.New(sc,
//	    preview.WithIsolationLayer(7),
//	    preview.WithFallbackDelay(2*time.Second),
//	)
type Option func(*options)

// Defaults for Service options.
const (
	DefaultIsolationLayer scene.Layer = 3
	DefaultFallbackDelay              = time.Second
	DefaultFarClip                    = 100000
)

// DefaultParkedPosition is where clones are placed, far from any live content.
var DefaultParkedPosition = geom.V3(10000, 10000, 10000)

type options struct {
	parked      geom.Vec3
	layer       scene.Layer
	fallback    time.Duration
	supersample int
	farClip     float64
	ambient     float64
}

func defaultOptions() options {
	return options{
		parked:      DefaultParkedPosition,
		layer:       DefaultIsolationLayer,
		fallback:    DefaultFallbackDelay,
		supersample: render.DefaultSupersample,
		farClip:     DefaultFarClip,
		ambient:     render.DefaultAmbient,
	}
}

// WithParkedPosition sets the world position clones are rendered at.
func WithParkedPosition(p geom.Vec3) Option {
	return func(o *options) {
		o.parked = p
	}
}

// WithIsolationLayer sets the layer clones, camera and light are moved to.
// The live scene should not use this layer.
func WithIsolationLayer(l scene.Layer) Option {
	return func(o *options) {
		o.layer = l & scene.MaxLayer
	}
}

// WithFallbackDelay sets how long a spawned clone may live before it is
// deleted even if it was never rendered. Non-positive values are ignored.
func WithFallbackDelay(d time.Duration) Option {
	return func(o *options) {
		if d > 0 {
			o.fallback = d
		}
	}
}

// WithSupersample renders previews at n times their size and filters them
// down. 1 disables supersampling.
func WithSupersample(n int) Option {
	return func(o *options) {
		o.supersample = max(n, 1)
	}
}

// WithFarClip sets the far clip distance of the preview camera. It must
// reach the parked position from any framing distance in use.
func WithFarClip(d float64) Option {
	return func(o *options) {
		if d > 0 {
			o.farClip = d
		}
	}
}

// WithAmbient sets the light level every face receives, clamped to [0, 1].
func WithAmbient(a float64) Option {
	return func(o *options) {
		o.ambient = min(max(a, 0), 1)
	}
}
