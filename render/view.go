package render

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/gogpu/gputypes"

	"github.com/gogpu/preview/geom"
)

// View describes a perspective camera.
type View struct {
	// Position and Rotation place the camera in world space. The camera
	// looks along Rotation.Forward() with Rotation.Up() pointing up.
	Position geom.Vec3
	Rotation geom.Quat

	// FieldOfView is the vertical field of view in degrees.
	FieldOfView float64

	// Near and Far bound the visible depth range.
	Near, Far float64

	// Background is written to the whole target when Clear is LoadOpClear.
	Background gputypes.Color

	// Clear selects whether the target is cleared or drawn over.
	Clear gputypes.LoadOp
}

// Triangle is one world-space face with a straight-alpha base color.
type Triangle struct {
	A, B, C geom.Vec3
	Color   gputypes.Color

	// Mask selects which lights affect the face.
	Mask uint32
}

// DirectionalLight is a light at infinity shining along Direction.
type DirectionalLight struct {
	Direction geom.Vec3
	Color     gputypes.Color
	Intensity float64

	// Mask selects which faces the light affects.
	Mask uint32
}

// Stats reports what a Draw call did.
type Stats struct {
	Submitted int // triangles passed in
	Culled    int // triangles outside the depth range or degenerate
	Drawn     int // polygons filled
}

// worldToView returns the matrix taking world points into camera space:
// +X right, +Y up, +Z forward.
func (v View) worldToView() mgl64.Mat4 {
	p := v.Position
	return v.Rotation.Normalize().Inverse().Mat4().Mul4(mgl64.Translate3D(-p.X, -p.Y, -p.Z))
}

// toView maps a world point through m.
func toView(m mgl64.Mat4, p geom.Vec3) geom.Vec3 {
	return geom.FromMgl(m.Mul4x1(p.Mgl().Vec4(1)).Vec3())
}

// projection returns the perspective matrix for the view. mgl64 looks down
// -Z, so toNDC mirrors camera-space depth before applying it.
func (v View) projection(aspect float64) mgl64.Mat4 {
	return mgl64.Perspective(mgl64.DegToRad(v.FieldOfView), aspect, v.Near, v.Far)
}

// toNDC projects a camera-space point with positive depth to normalized
// device coordinates.
func toNDC(proj mgl64.Mat4, p geom.Vec3) geom.Vec3 {
	clip := proj.Mul4x1(mgl64.Vec4{p.X, p.Y, -p.Z, 1})
	return geom.V3(clip[0]/clip[3], clip[1]/clip[3], clip[2]/clip[3])
}
