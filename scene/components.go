package scene

import (
	"github.com/gogpu/gputypes"

	"github.com/gogpu/preview/geom"
)

// MeshFilter holds the geometry of an object. The mesh is shared between
// clones.
type MeshFilter struct {
	Base
	Mesh *geom.Mesh
}

// Clone returns an unattached copy sharing the same mesh.
func (m *MeshFilter) Clone() Component {
	return &MeshFilter{Mesh: m.Mesh}
}

// MeshRenderer draws the MeshFilter on the same object.
type MeshRenderer struct {
	Base
	Color    gputypes.Color
	Disabled bool
}

// Clone returns an unattached copy.
func (m *MeshRenderer) Clone() Component {
	return &MeshRenderer{Color: m.Color, Disabled: m.Disabled}
}

// Rigidbody is a physics body.
type Rigidbody struct {
	Base
	Mass float64
}

// Clone returns an unattached copy.
func (r *Rigidbody) Clone() Component {
	return &Rigidbody{Mass: r.Mass}
}

// Joint links the Rigidbody on its own object to an optional connected body.
type Joint struct {
	Base
	Connected *Rigidbody
}

// Clone returns an unattached copy still connected to the original body.
func (j *Joint) Clone() Component {
	return &Joint{Connected: j.Connected}
}

// Dependencies returns the body on the joint's object and the connected body.
func (j *Joint) Dependencies() []Component {
	var deps []Component
	if j.obj != nil {
		if rb, ok := GetComponent[*Rigidbody](j.obj); ok {
			deps = append(deps, rb)
		}
	}
	if j.Connected != nil {
		deps = append(deps, j.Connected)
	}
	return deps
}

// Remap points the joint at the cloned connected body.
func (j *Joint) Remap(lookup func(Component) Component) {
	if j.Connected == nil {
		return
	}
	if rb, ok := lookup(j.Connected).(*Rigidbody); ok {
		j.Connected = rb
	}
}

// Behavior is a scripted component. OnStart runs the first time the object
// becomes active in a scene; OnDestroy runs when the component is finally
// removed.
type Behavior struct {
	Base
	Name      string
	Requires  []Component
	OnStart   func(b *Behavior)
	OnDestroy func(b *Behavior)
}

// Clone returns an unattached copy with the same hooks and requirements.
func (b *Behavior) Clone() Component {
	return &Behavior{
		Name:      b.Name,
		Requires:  append([]Component(nil), b.Requires...),
		OnStart:   b.OnStart,
		OnDestroy: b.OnDestroy,
	}
}

// Dependencies returns the required components.
func (b *Behavior) Dependencies() []Component {
	return b.Requires
}

// Remap points requirements at their clones.
func (b *Behavior) Remap(lookup func(Component) Component) {
	for i, c := range b.Requires {
		b.Requires[i] = lookup(c)
	}
}

// Started reports whether OnStart has run.
func (b *Behavior) Started() bool {
	return b.started
}

func (b *Behavior) start() {
	if b.OnStart != nil {
		b.OnStart(b)
	}
}

func (b *Behavior) destroyed() {
	if b.OnDestroy != nil {
		b.OnDestroy(b)
	}
}
