package scene

import (
	"errors"
	"fmt"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/preview/render"
)

// ErrNotInScene is returned when rendering from a camera outside a scene.
var ErrNotInScene = errors.New("scene: camera not in a scene")

// Camera renders the objects on its culling layers into a render target.
type Camera struct {
	Base

	// FieldOfView is the vertical field of view in degrees.
	FieldOfView float64
	Near, Far   float64

	Background  gputypes.Color
	ClearFlags  gputypes.LoadOp
	CullingMask LayerMask

	// Target receives the frame. nil renders into the device's active target.
	Target *render.RenderTexture

	// Rasterizer overrides the scene's rasterizer when set.
	Rasterizer *render.Rasterizer
}

// NewCamera returns a camera with a 60 degree field of view that sees
// every layer and clears to transparent.
func NewCamera() *Camera {
	return &Camera{
		FieldOfView: 60,
		Near:        0.3,
		Far:         1000,
		Background:  gputypes.ColorTransparent,
		ClearFlags:  gputypes.LoadOpClear,
		CullingMask: Everything,
	}
}

// Clone returns an unattached copy rendering into the same target.
func (c *Camera) Clone() Component {
	cc := *c
	cc.Base = Base{}
	return &cc
}

// Render draws one frame. Active mesh renderers on the culling layers are
// drawn, lit by every active light whose culling mask contains their layer.
func (c *Camera) Render() (render.Stats, error) {
	o := c.Object()
	if o == nil || o.scene == nil {
		return render.Stats{}, ErrNotInScene
	}
	s := o.scene
	target := c.Target
	if target == nil {
		target = s.graphics.Active()
	}
	if target == nil {
		return render.Stats{}, render.ErrNoTarget
	}

	view := render.View{
		Position:    o.WorldPosition(),
		Rotation:    o.WorldRotation(),
		FieldOfView: c.FieldOfView,
		Near:        c.Near,
		Far:         c.Far,
		Background:  c.Background,
		Clear:       c.ClearFlags,
	}

	var (
		tris   []render.Triangle
		lights []render.DirectionalLight
	)
	for _, root := range s.roots {
		if !root.activeSelf {
			continue
		}
		root.walk(false, func(n *Object) {
			if l, ok := GetComponent[*Light](n); ok {
				lights = append(lights, l.directional())
			}
			if !c.CullingMask.Contains(n.layer) {
				return
			}
			tris = appendTriangles(tris, n)
		})
	}

	r := c.Rasterizer
	if r == nil {
		r = s.rasterizer
	}
	stats, err := r.Draw(target, view, tris, lights)
	if err != nil {
		return stats, fmt.Errorf("camera %q: %w", o.Name, err)
	}
	return stats, nil
}

// appendTriangles adds the world-space faces drawn by n.
func appendTriangles(tris []render.Triangle, n *Object) []render.Triangle {
	mesh := n.renderableMesh()
	if mesh == nil {
		return tris
	}
	mr, _ := GetComponent[*MeshRenderer](n)
	mask := uint32(MaskOf(n.layer))
	for i := 0; i < mesh.TriangleCount(); i++ {
		a, b, cc := mesh.Triangle(i)
		tris = append(tris, render.Triangle{
			A:     n.TransformPoint(a),
			B:     n.TransformPoint(b),
			C:     n.TransformPoint(cc),
			Color: mr.Color,
			Mask:  mask,
		})
	}
	return tris
}

// Light is a directional light shining along its object's forward axis.
type Light struct {
	Base
	Color       gputypes.Color
	Intensity   float64
	CullingMask LayerMask
}

// NewLight returns a white light of intensity 1 affecting every layer.
func NewLight() *Light {
	return &Light{Color: gputypes.ColorWhite, Intensity: 1, CullingMask: Everything}
}

// Clone returns an unattached copy.
func (l *Light) Clone() Component {
	return &Light{Color: l.Color, Intensity: l.Intensity, CullingMask: l.CullingMask}
}

func (l *Light) directional() render.DirectionalLight {
	return render.DirectionalLight{
		Direction: l.Object().WorldRotation().Forward(),
		Color:     l.Color,
		Intensity: l.Intensity,
		Mask:      uint32(l.CullingMask),
	}
}
