package render

import (
	"errors"
	"testing"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/preview/geom"
)

func quad(z, half float64, c gputypes.Color) []Triangle {
	a := geom.V3(-half, -half, z)
	b := geom.V3(half, -half, z)
	cc := geom.V3(half, half, z)
	d := geom.V3(-half, half, z)
	return []Triangle{
		{A: a, B: cc, C: b, Color: c, Mask: 1},
		{A: a, B: d, C: cc, Color: c, Mask: 1},
	}
}

func testView() View {
	return View{
		Position:    geom.V3(0, 0, -10),
		Rotation:    geom.Identity(),
		FieldOfView: 60,
		Near:        0.1,
		Far:         100,
		Background:  gputypes.ColorTransparent,
		Clear:       gputypes.LoadOpClear,
	}
}

func TestRasterizerDrawsCenteredQuad(t *testing.T) {
	for _, ss := range []int{1, 2, 3} {
		rt, _ := NewRenderTexture(32, 32)
		r := &Rasterizer{Supersample: ss, Ambient: 0.2}
		lights := []DirectionalLight{{Direction: geom.Forward, Color: gputypes.ColorWhite, Intensity: 1, Mask: 1}}

		stats, err := r.Draw(rt, testView(), quad(0, 2, gputypes.ColorRed), lights)
		if err != nil {
			t.Fatalf("ss=%d: Draw() error = %v", ss, err)
		}
		if stats.Drawn != 2 || stats.Culled != 0 {
			t.Errorf("ss=%d: stats = %+v, want 2 drawn", ss, stats)
		}
		inside := rt.image().RGBAAt(18, 18)
		if inside.A < 250 || inside.R < 200 || inside.G > 10 {
			t.Errorf("ss=%d: inside pixel = %v, want opaque lit red", ss, inside)
		}
		if corner := rt.image().RGBAAt(0, 0); corner.A != 0 {
			t.Errorf("ss=%d: corner pixel = %v, want transparent", ss, corner)
		}
	}
}

func TestRasterizerLightMask(t *testing.T) {
	rt, _ := NewRenderTexture(16, 16)
	r := &Rasterizer{Supersample: 1, Ambient: 0.2}
	lights := []DirectionalLight{{Direction: geom.Forward, Color: gputypes.ColorWhite, Intensity: 1, Mask: 2}}

	if _, err := r.Draw(rt, testView(), quad(0, 2, gputypes.ColorWhite), lights); err != nil {
		t.Fatal(err)
	}
	// Only ambient reaches the face: 0.2 * 255 ~ 51.
	if c := rt.image().RGBAAt(8, 8); c.R > 60 {
		t.Errorf("center = %v, want ambient-only shading", c)
	}
}

func TestRasterizerCulling(t *testing.T) {
	rt, _ := NewRenderTexture(16, 16)
	r := NewRasterizer()
	tris := append(quad(-20, 2, gputypes.ColorRed), quad(500, 2, gputypes.ColorRed)...)
	tris = append(tris, Triangle{A: geom.Zero, B: geom.Zero, C: geom.Up, Color: gputypes.ColorRed, Mask: 1})

	stats, err := r.Draw(rt, testView(), tris, nil)
	if err != nil {
		t.Fatal(err)
	}
	if stats.Drawn != 0 || stats.Culled != 5 {
		t.Errorf("stats = %+v, want 5 culled", stats)
	}
}

func TestRasterizerNearClipKeepsVisiblePart(t *testing.T) {
	rt, _ := NewRenderTexture(16, 16)
	r := &Rasterizer{Supersample: 1}
	// Straddles the near plane of a camera at z=-10.
	tri := Triangle{A: geom.V3(-1, -1, -11), B: geom.V3(1, -1, 0), C: geom.V3(0, 1, 0), Color: gputypes.ColorGreen, Mask: 1}
	stats, err := r.Draw(rt, testView(), []Triangle{tri}, nil)
	if err != nil {
		t.Fatal(err)
	}
	if stats.Drawn != 1 {
		t.Errorf("stats = %+v, want 1 drawn", stats)
	}
}

func TestClipNear(t *testing.T) {
	poly := []geom.Vec3{geom.V3(0, 0, -1), geom.V3(1, 0, 1), geom.V3(0, 1, 1)}
	got := clipNear(poly, 0)
	if len(got) != 4 {
		t.Fatalf("clipNear() returned %d points, want 4", len(got))
	}
	for _, p := range got {
		if p.Z < 0 {
			t.Errorf("clipNear() kept point %v behind near plane", p)
		}
	}
}

func TestRasterizerErrors(t *testing.T) {
	r := NewRasterizer()
	if _, err := r.Draw(nil, testView(), nil, nil); !errors.Is(err, ErrNoTarget) {
		t.Errorf("Draw(nil target) error = %v, want ErrNoTarget", err)
	}

	rt, _ := NewRenderTexture(4, 4)
	bad := testView()
	bad.FieldOfView = 180
	if _, err := r.Draw(rt, bad, nil, nil); !errors.Is(err, ErrBadView) {
		t.Errorf("Draw(fov=180) error = %v, want ErrBadView", err)
	}

	d := NewDevice()
	tmp, _ := d.GetTemporary(4, 4)
	d.ReleaseTemporary(tmp)
	if _, err := r.Draw(tmp, testView(), nil, nil); !errors.Is(err, ErrReleased) {
		t.Errorf("Draw(released) error = %v, want ErrReleased", err)
	}
}

func TestRasterizerLoadKeepsContents(t *testing.T) {
	rt, _ := NewRenderTexture(8, 8)
	rt.Clear(gputypes.ColorBlue)
	v := testView()
	v.Clear = gputypes.LoadOpLoad
	r := &Rasterizer{Supersample: 1}
	if _, err := r.Draw(rt, v, nil, nil); err != nil {
		t.Fatal(err)
	}
	if c := rt.image().RGBAAt(0, 0); c.B != 255 || c.A != 255 {
		t.Errorf("LoadOpLoad lost contents: %v", c)
	}
}
