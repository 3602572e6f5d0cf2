package scene

// Component is a behavior or attachment on an Object.
//
// Implementations embed Base, which binds the component to its object and
// tracks pending destruction.
type Component interface {
	// Object returns the object the component is attached to.
	Object() *Object

	// Dependencies returns the components this one requires to exist.
	// A dependency cannot be destroyed while a live dependent remains.
	Dependencies() []Component

	// Clone returns an unattached copy. References to other components
	// still point at the originals until remapped.
	Clone() Component

	base() *Base
}

// Remapper is implemented by components that reference other components,
// so that a cloned tree points at its own copies.
type Remapper interface {
	Remap(lookup func(Component) Component)
}

// starter is implemented by components with start-up logic.
type starter interface {
	start()
}

// destroyer is implemented by components with teardown logic.
type destroyer interface {
	destroyed()
}

// Base carries the state every component shares.
type Base struct {
	obj        *Object
	destroying bool
	started    bool
}

// Object returns the object the component is attached to.
func (b *Base) Object() *Object {
	return b.obj
}

// Destroying reports whether the component has been scheduled for destruction.
func (b *Base) Destroying() bool {
	return b.destroying
}

func (b *Base) base() *Base {
	return b
}

// Dependencies returns nil; components with requirements override it.
func (b *Base) Dependencies() []Component {
	return nil
}

// IsVisual reports whether c is pure visual geometry.
func IsVisual(c Component) bool {
	switch c.(type) {
	case *MeshFilter, *MeshRenderer:
		return true
	}
	return false
}

// GetComponent returns the first live component of type T on o.
func GetComponent[T Component](o *Object) (T, bool) {
	for _, c := range o.components {
		if t, ok := c.(T); ok && !c.base().destroying {
			return t, true
		}
	}
	var zero T
	return zero, false
}

// ComponentsInChildren returns all components of type T on o and its
// descendants in depth-first order. Inactive descendants are skipped unless
// includeInactive is set; o itself is always searched.
func ComponentsInChildren[T Component](o *Object, includeInactive bool) []T {
	var out []T
	o.walk(includeInactive, func(n *Object) {
		for _, c := range n.components {
			if t, ok := c.(T); ok {
				out = append(out, t)
			}
		}
	})
	return out
}
