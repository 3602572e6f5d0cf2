package render

import (
	"errors"
	"testing"

	"github.com/gogpu/gputypes"
)

func TestNewRenderTexture(t *testing.T) {
	rt, err := NewRenderTexture(64, 32)
	if err != nil {
		t.Fatalf("NewRenderTexture() error = %v", err)
	}
	if rt.Width() != 64 || rt.Height() != 32 {
		t.Errorf("size = %dx%d, want 64x32", rt.Width(), rt.Height())
	}
	d := rt.Descriptor()
	if d.Format != gputypes.TextureFormatRGBA8Unorm {
		t.Errorf("Format = %v, want RGBA8Unorm", d.Format)
	}
	if !d.Usage.Contains(gputypes.TextureUsageRenderAttachment) {
		t.Error("Usage does not contain RenderAttachment")
	}
	for i, v := range rt.image().Pix {
		if v != 0 {
			t.Fatalf("new target not transparent at byte %d", i)
		}
	}
}

func TestNewRenderTextureInvalidSize(t *testing.T) {
	for _, sz := range [][2]int{{0, 1}, {1, 0}, {-5, 10}} {
		if _, err := NewRenderTexture(sz[0], sz[1]); !errors.Is(err, ErrInvalidSize) {
			t.Errorf("NewRenderTexture(%d, %d) error = %v, want ErrInvalidSize", sz[0], sz[1], err)
		}
	}
}

func TestRenderTextureClear(t *testing.T) {
	rt, _ := NewRenderTexture(2, 2)
	rt.Clear(gputypes.Color{R: 1, G: 0, B: 0, A: 0.5})
	p := rt.image().Pix
	// premultiplied: red 0.5 -> 128
	if p[0] != 128 || p[1] != 0 || p[2] != 0 || p[3] != 128 {
		t.Errorf("Clear() pixel = %v, want [128 0 0 128]", p[:4])
	}
}

func TestTextureUpdateData(t *testing.T) {
	tex, err := NewTexture(2, 1)
	if err != nil {
		t.Fatal(err)
	}
	data := []byte{1, 2, 3, 4, 5, 6, 7, 8}
	if err := tex.UpdateData(data); err != nil {
		t.Fatalf("UpdateData() error = %v", err)
	}
	img := tex.Image()
	if img.Bounds().Dx() != 2 || img.Bounds().Dy() != 1 {
		t.Errorf("Image() bounds = %v, want 2x1", img.Bounds())
	}
	if got := img.RGBAAt(1, 0); got.R != 5 || got.A != 8 {
		t.Errorf("RGBAAt(1, 0) = %v, want {5 6 7 8}", got)
	}
	if err := tex.UpdateData(data[:4]); !errors.Is(err, ErrSizeMismatch) {
		t.Errorf("UpdateData(short) error = %v, want ErrSizeMismatch", err)
	}
}
