package render

import (
	"cmp"
	"errors"
	"fmt"
	"image"
	"math"
	"slices"

	"github.com/gogpu/gg"
	"github.com/gogpu/gputypes"
	xdraw "golang.org/x/image/draw"

	"github.com/gogpu/preview/geom"
)

// ErrBadView is returned for a view that cannot project anything.
var ErrBadView = errors.New("render: invalid view")

// Default rasterizer settings.
const (
	DefaultSupersample = 2
	DefaultAmbient     = 0.35
)

// seamPad grows every face by this many canvas pixels so that adjacent
// anti-aliased edges do not leave a translucent seam.
const seamPad = 0.5

// Rasterizer draws shaded triangles into a render target.
//
// Faces are sorted back to front and filled as polygons, so intersecting
// geometry is resolved per face rather than per pixel. This is adequate for
// single-object previews.
type Rasterizer struct {
	// Supersample renders at N times the target size and filters down.
	// Values below 1 are treated as 1.
	Supersample int

	// Ambient is the light level applied to every face, in [0, 1].
	Ambient float64

	// Filter downsamples supersampled frames. nil uses CatmullRom.
	Filter xdraw.Interpolator
}

// NewRasterizer returns a rasterizer with default settings.
func NewRasterizer() *Rasterizer {
	return &Rasterizer{
		Supersample: DefaultSupersample,
		Ambient:     DefaultAmbient,
	}
}

// face is a clipped, projected and shaded polygon ready to fill.
type face struct {
	points []gg.Point
	depth  float64
	color  gg.RGBA
}

// Draw renders tris as seen from view into target.
func (r *Rasterizer) Draw(target *RenderTexture, view View, tris []Triangle, lights []DirectionalLight) (Stats, error) {
	stats := Stats{Submitted: len(tris)}
	if target == nil {
		return stats, ErrNoTarget
	}
	if target.released {
		return stats, ErrReleased
	}
	if view.FieldOfView <= 0 || view.FieldOfView >= 180 || view.Near <= 0 || view.Far <= view.Near {
		return stats, fmt.Errorf("%w: fov=%v near=%v far=%v", ErrBadView, view.FieldOfView, view.Near, view.Far)
	}

	ss := max(r.Supersample, 1)
	w, h := target.Width()*ss, target.Height()*ss

	faces := make([]face, 0, len(tris))
	for _, t := range tris {
		f, ok := r.project(view, t, lights, w, h)
		if !ok {
			stats.Culled++
			continue
		}
		faces = append(faces, f)
	}
	slices.SortStableFunc(faces, func(a, b face) int {
		return cmp.Compare(b.depth, a.depth)
	})

	dc := r.newCanvas(target, view, w, h)
	defer func() { _ = dc.Close() }()

	for _, f := range faces {
		dc.SetRGBA(f.color.R, f.color.G, f.color.B, f.color.A)
		dc.MoveTo(f.points[0].X, f.points[0].Y)
		for _, p := range f.points[1:] {
			dc.LineTo(p.X, p.Y)
		}
		dc.ClosePath()
		if err := dc.Fill(); err != nil {
			return stats, fmt.Errorf("render: fill face: %w", err)
		}
		stats.Drawn++
	}

	r.resolve(target, dc.Image())
	gg.Logger().Debug("render: frame drawn",
		"width", target.Width(), "height", target.Height(),
		"submitted", stats.Submitted, "drawn", stats.Drawn)
	return stats, nil
}

// newCanvas prepares a gg context at supersampled resolution, either cleared
// to the background or seeded with the current target contents.
func (r *Rasterizer) newCanvas(target *RenderTexture, view View, w, h int) *gg.Context {
	if view.Clear == gputypes.LoadOpLoad {
		seed := image.NewRGBA(image.Rect(0, 0, w, h))
		xdraw.NearestNeighbor.Scale(seed, seed.Bounds(), target.image(), target.image().Bounds(), xdraw.Src, nil)
		return gg.NewContextForImage(seed)
	}
	dc := gg.NewContext(w, h)
	bg := view.Background
	dc.ClearWithColor(gg.RGBA2(bg.R, bg.G, bg.B, bg.A))
	return dc
}

// resolve writes the canvas back into the target, filtering it down when
// supersampling.
func (r *Rasterizer) resolve(target *RenderTexture, frame image.Image) {
	dst := target.image()
	if frame.Bounds().Size() == dst.Bounds().Size() {
		xdraw.Draw(dst, dst.Bounds(), frame, frame.Bounds().Min, xdraw.Src)
		return
	}
	filter := r.Filter
	if filter == nil {
		filter = xdraw.CatmullRom
	}
	filter.Scale(dst, dst.Bounds(), frame, frame.Bounds(), xdraw.Src, nil)
}

// project clips t against the near plane, projects it to pixel space and
// shades it. ok is false when nothing of t is visible.
func (r *Rasterizer) project(view View, t Triangle, lights []DirectionalLight, w, h int) (face, bool) {
	normal := t.B.Sub(t.A).Cross(t.C.Sub(t.A))
	if normal.Length() == 0 {
		return face{}, false
	}

	world := view.worldToView()
	poly := []geom.Vec3{toView(world, t.A), toView(world, t.B), toView(world, t.C)}
	if poly[0].Z > view.Far && poly[1].Z > view.Far && poly[2].Z > view.Far {
		return face{}, false
	}
	poly = clipNear(poly, view.Near)
	if len(poly) < 3 {
		return face{}, false
	}

	proj := view.projection(float64(w) / float64(h))
	out := face{points: make([]gg.Point, len(poly))}
	for i, p := range poly {
		ndc := toNDC(proj, p)
		out.points[i] = gg.Pt((ndc.X+1)*0.5*float64(w), (1-ndc.Y)*0.5*float64(h))
		out.depth += p.Z
	}
	out.depth /= float64(len(poly))
	dilate(out.points, seamPad)

	centroid := t.A.Add(t.B).Add(t.C).Div(3)
	out.color = r.shade(t, normal.Normalize(), view.Position.Sub(centroid), lights)
	return out, true
}

// shade applies two-sided Lambert lighting. The normal is flipped to face
// the camera so winding order does not matter.
func (r *Rasterizer) shade(t Triangle, n, toCamera geom.Vec3, lights []DirectionalLight) gg.RGBA {
	if n.Dot(toCamera) < 0 {
		n = n.Neg()
	}
	lr, lg, lb := r.Ambient, r.Ambient, r.Ambient
	for _, l := range lights {
		if l.Mask&t.Mask == 0 {
			continue
		}
		d := n.Dot(l.Direction.Normalize().Neg())
		if d <= 0 {
			continue
		}
		d *= l.Intensity
		lr += d * l.Color.R
		lg += d * l.Color.G
		lb += d * l.Color.B
	}
	return gg.RGBA{
		R: math.Min(t.Color.R*lr, 1),
		G: math.Min(t.Color.G*lg, 1),
		B: math.Min(t.Color.B*lb, 1),
		A: t.Color.A,
	}
}

// dilate pushes every vertex away from the polygon centroid by pad.
func dilate(points []gg.Point, pad float64) {
	var cx, cy float64
	for _, p := range points {
		cx += p.X
		cy += p.Y
	}
	cx /= float64(len(points))
	cy /= float64(len(points))
	for i, p := range points {
		dx, dy := p.X-cx, p.Y-cy
		n := math.Hypot(dx, dy)
		if n == 0 {
			continue
		}
		points[i] = gg.Pt(p.X+dx/n*pad, p.Y+dy/n*pad)
	}
}

// clipNear clips a convex view-space polygon to z >= near.
func clipNear(poly []geom.Vec3, near float64) []geom.Vec3 {
	out := make([]geom.Vec3, 0, len(poly)+1)
	for i, cur := range poly {
		prev := poly[(i+len(poly)-1)%len(poly)]
		curIn, prevIn := cur.Z >= near, prev.Z >= near
		if curIn != prevIn {
			s := (near - prev.Z) / (cur.Z - prev.Z)
			out = append(out, prev.Lerp(cur, s))
		}
		if curIn {
			out = append(out, cur)
		}
	}
	return out
}
