package scene

import (
	"slices"

	"github.com/gogpu/preview/geom"
)

// Object is a node in the scene tree.
type Object struct {
	Name      string
	Transform Transform

	layer      Layer
	activeSelf bool
	parent     *Object
	children   []*Object
	components []Component

	scene     *Scene
	destroyed bool
	finalized bool
}

// NewObject creates an active, unattached object with an identity transform.
func NewObject(name string) *Object {
	return &Object{
		Name:       name,
		Transform:  IdentityTransform(),
		activeSelf: true,
	}
}

// Scene returns the scene the object lives in, or nil for templates.
func (o *Object) Scene() *Scene {
	return o.scene
}

// Parent returns the parent object, or nil for a root.
func (o *Object) Parent() *Object {
	return o.parent
}

// Root returns the topmost ancestor.
func (o *Object) Root() *Object {
	for o.parent != nil {
		o = o.parent
	}
	return o
}

// Children returns the direct children. The slice must not be modified.
func (o *Object) Children() []*Object {
	return o.children
}

// AddChild attaches child under o, detaching it from any previous parent.
// A child added to an object that lives in a scene joins that scene.
func (o *Object) AddChild(child *Object) *Object {
	if child.parent != nil {
		child.parent.removeChild(child)
	} else if child.scene != nil {
		child.scene.removeRoot(child)
	}
	child.parent = o
	o.children = append(o.children, child)
	child.setScene(o.scene)
	if o.scene != nil && child.ActiveInHierarchy() {
		child.startComponents()
	}
	return child
}

func (o *Object) removeChild(child *Object) {
	if i := slices.Index(o.children, child); i >= 0 {
		o.children = slices.Delete(o.children, i, i+1)
	}
	child.parent = nil
}

func (o *Object) setScene(s *Scene) {
	o.scene = s
	for _, c := range o.children {
		c.setScene(s)
	}
}

// AddComponent attaches c to o and returns it. The component starts
// immediately if o is active in a scene.
func (o *Object) AddComponent(c Component) Component {
	b := c.base()
	b.obj = o
	o.components = append(o.components, c)
	if o.scene != nil && o.ActiveInHierarchy() {
		startComponent(c)
	}
	return c
}

// Components returns the attached components, including those pending
// destruction. The slice must not be modified.
func (o *Object) Components() []Component {
	return o.components
}

// Layer returns the object's layer.
func (o *Object) Layer() Layer {
	return o.layer
}

// SetLayer sets the layer of o only.
func (o *Object) SetLayer(l Layer) {
	o.layer = l & MaxLayer
}

// SetLayerRecursive sets the layer of o and every descendant.
func (o *Object) SetLayerRecursive(l Layer) {
	o.walk(true, func(n *Object) { n.SetLayer(l) })
}

// ActiveSelf returns the object's own active flag.
func (o *Object) ActiveSelf() bool {
	return o.activeSelf
}

// ActiveInHierarchy reports whether o and all its ancestors are active.
func (o *Object) ActiveInHierarchy() bool {
	for n := o; n != nil; n = n.parent {
		if !n.activeSelf {
			return false
		}
	}
	return true
}

// SetActive sets the object's own active flag. Activating an object that
// lives in a scene starts every component that has not started yet,
// including components already scheduled for destruction.
func (o *Object) SetActive(active bool) {
	if o.activeSelf == active {
		return
	}
	o.activeSelf = active
	if active && o.scene != nil && o.ActiveInHierarchy() {
		o.startComponents()
	}
}

func (o *Object) startComponents() {
	o.walk(false, func(n *Object) {
		for _, c := range n.components {
			startComponent(c)
		}
	})
}

func startComponent(c Component) {
	b := c.base()
	if b.started {
		return
	}
	b.started = true
	if s, ok := c.(starter); ok {
		s.start()
	}
}

// IsDestroyed reports whether o or an ancestor has been scheduled for
// destruction. Destroyed objects are removed from the scene at the end of
// the frame.
func (o *Object) IsDestroyed() bool {
	for n := o; n != nil; n = n.parent {
		if n.destroyed {
			return true
		}
	}
	return false
}

// walk visits o and its descendants depth-first. Inactive descendants and
// their subtrees are skipped unless includeInactive is set.
func (o *Object) walk(includeInactive bool, fn func(*Object)) {
	fn(o)
	for _, c := range o.children {
		if !includeInactive && !c.activeSelf {
			continue
		}
		c.walk(includeInactive, fn)
	}
}

// Walk visits o and every descendant depth-first.
func (o *Object) Walk(fn func(*Object)) {
	o.walk(true, fn)
}

// TransformPoint maps a point from o's local space into world space.
func (o *Object) TransformPoint(p geom.Vec3) geom.Vec3 {
	for n := o; n != nil; n = n.parent {
		p = n.Transform.Apply(p)
	}
	return p
}

// WorldPosition returns the object's origin in world space.
func (o *Object) WorldPosition() geom.Vec3 {
	return o.TransformPoint(geom.Zero)
}

// WorldRotation returns the object's accumulated rotation.
func (o *Object) WorldRotation() geom.Quat {
	q := geom.Identity()
	for n := o; n != nil; n = n.parent {
		q = n.Transform.rotation().Mul(q)
	}
	return q
}

// HasGeometry reports whether o or an active descendant carries a visual
// component.
func (o *Object) HasGeometry() bool {
	found := false
	o.walk(false, func(n *Object) {
		if found {
			return
		}
		for _, c := range n.components {
			if IsVisual(c) {
				found = true
				return
			}
		}
	})
	return found
}

// RendererBounds returns the world-space box enclosing every renderable mesh
// on o and its active descendants. The box is empty if nothing renders.
func (o *Object) RendererBounds() geom.AABB {
	b := geom.EmptyAABB()
	o.walk(false, func(n *Object) {
		mesh := n.renderableMesh()
		if mesh == nil {
			return
		}
		b = b.Union(mesh.Bounds().Transform(n.TransformPoint))
	})
	return b
}

// renderableMesh returns the mesh drawn by o, or nil if o draws nothing.
func (o *Object) renderableMesh() *geom.Mesh {
	mr, ok := GetComponent[*MeshRenderer](o)
	if !ok || mr.Disabled {
		return nil
	}
	mf, ok := GetComponent[*MeshFilter](o)
	if !ok || mf.Mesh == nil || mf.Mesh.TriangleCount() == 0 {
		return nil
	}
	return mf.Mesh
}

// clone deep-copies o's subtree. Components are recorded in mapping so that
// references can be remapped once the whole tree exists.
func (o *Object) clone(mapping map[Component]Component) *Object {
	n := &Object{
		Name:       o.Name,
		Transform:  o.Transform,
		layer:      o.layer,
		activeSelf: o.activeSelf,
	}
	for _, c := range o.components {
		if c.base().destroying {
			continue
		}
		cc := c.Clone()
		cc.base().obj = n
		n.components = append(n.components, cc)
		mapping[c] = cc
	}
	for _, child := range o.children {
		cc := child.clone(mapping)
		cc.parent = n
		n.children = append(n.children, cc)
	}
	return n
}
