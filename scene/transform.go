package scene

import "github.com/gogpu/preview/geom"

// Transform positions an object relative to its parent.
type Transform struct {
	Position geom.Vec3
	Rotation geom.Quat
	Scale    geom.Vec3
}

// IdentityTransform returns a transform that changes nothing.
func IdentityTransform() Transform {
	return Transform{Rotation: geom.Identity(), Scale: geom.One}
}

// Apply maps a point from local space into parent space:
// scale, then rotate, then translate.
func (t Transform) Apply(p geom.Vec3) geom.Vec3 {
	return t.Position.Add(t.rotation().Rotate(p.Scale(t.Scale)))
}

func (t Transform) rotation() geom.Quat {
	if t.Rotation.IsZero() {
		return geom.Identity()
	}
	return t.Rotation
}
