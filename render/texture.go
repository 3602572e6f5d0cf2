package render

import (
	"errors"
	"fmt"
	"image"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
)

var (
	// ErrInvalidSize is returned for non-positive texture dimensions.
	ErrInvalidSize = errors.New("render: invalid texture size")

	// ErrSizeMismatch is returned when uploaded data does not match the texture size.
	ErrSizeMismatch = errors.New("render: pixel data size mismatch")

	// ErrReleased is returned when a released render texture is used.
	ErrReleased = errors.New("render: render texture released")
)

// bytesPerPixel is the stride of RGBA8 pixel data.
const bytesPerPixel = 4

var (
	_ gpucontext.Texture        = (*RenderTexture)(nil)
	_ gpucontext.TextureUpdater = (*RenderTexture)(nil)
	_ gpucontext.Texture        = (*Texture)(nil)
	_ gpucontext.TextureUpdater = (*Texture)(nil)
)

// RenderTexture is an offscreen RGBA8 color target.
type RenderTexture struct {
	desc     gputypes.TextureDescriptor
	pix      *image.RGBA
	released bool
}

// NewRenderTexture allocates a transparent render target.
func NewRenderTexture(width, height int) (*RenderTexture, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidSize, width, height)
	}
	return &RenderTexture{
		desc: gputypes.TextureDescriptor{
			Label:         "preview render target",
			Size:          gputypes.NewExtent2D(uint32(width), uint32(height)),
			MipLevelCount: 1,
			SampleCount:   1,
			Dimension:     gputypes.TextureDimension2D,
			Format:        gputypes.TextureFormatRGBA8Unorm,
			Usage:         gputypes.TextureUsageRenderAttachment | gputypes.TextureUsageCopySrc,
		},
		pix: image.NewRGBA(image.Rect(0, 0, width, height)),
	}, nil
}

// Width returns the width of the target in pixels.
func (t *RenderTexture) Width() int {
	return int(t.desc.Size.Width)
}

// Height returns the height of the target in pixels.
func (t *RenderTexture) Height() int {
	return int(t.desc.Size.Height)
}

// Descriptor returns the texture description of the target.
func (t *RenderTexture) Descriptor() gputypes.TextureDescriptor {
	return t.desc
}

// Released reports whether the target has been returned to its device.
func (t *RenderTexture) Released() bool {
	return t.released
}

// Clear fills the whole target with c.
func (t *RenderTexture) Clear(c gputypes.Color) {
	r, g, b, a := toRGBA8(c.Premultiplied())
	p := t.pix.Pix
	for i := 0; i < len(p); i += bytesPerPixel {
		p[i+0] = r
		p[i+1] = g
		p[i+2] = b
		p[i+3] = a
	}
}

// UpdateData replaces the target contents with premultiplied RGBA8 data.
func (t *RenderTexture) UpdateData(data []byte) error {
	if t.released {
		return ErrReleased
	}
	if len(data) != len(t.pix.Pix) {
		return fmt.Errorf("%w: got %d bytes, want %d", ErrSizeMismatch, len(data), len(t.pix.Pix))
	}
	copy(t.pix.Pix, data)
	return nil
}

// image exposes the backing store to the rasterizer.
func (t *RenderTexture) image() *image.RGBA {
	return t.pix
}

// Texture is a CPU-side RGBA8 image decoded from a render target.
type Texture struct {
	width  int
	height int
	img    *image.RGBA
}

// NewTexture creates an empty texture with the given dimensions.
func NewTexture(width, height int) (*Texture, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidSize, width, height)
	}
	return &Texture{
		width:  width,
		height: height,
		img:    image.NewRGBA(image.Rect(0, 0, width, height)),
	}, nil
}

// Width returns the width of the texture.
func (t *Texture) Width() int {
	return t.width
}

// Height returns the height of the texture.
func (t *Texture) Height() int {
	return t.height
}

// UpdateData decodes densely packed RGBA8 rows into the texture.
func (t *Texture) UpdateData(data []byte) error {
	if len(data) != t.width*t.height*bytesPerPixel {
		return fmt.Errorf("%w: got %d bytes, want %d", ErrSizeMismatch, len(data), t.width*t.height*bytesPerPixel)
	}
	copy(t.img.Pix, data)
	return nil
}

// Image returns the decoded pixels. The image is owned by the caller.
func (t *Texture) Image() *image.RGBA {
	return t.img
}

func toRGBA8(c gputypes.Color) (r, g, b, a uint8) {
	return unorm8(c.R), unorm8(c.G), unorm8(c.B), unorm8(c.A)
}

func unorm8(v float64) uint8 {
	switch {
	case v <= 0:
		return 0
	case v >= 1:
		return 255
	default:
		return uint8(v*255 + 0.5)
	}
}
