package scene

import (
	"cmp"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/gogpu/preview/geom"
	"github.com/gogpu/preview/render"
)

var (
	// ErrDestroyed is returned when operating on a destroyed object.
	ErrDestroyed = errors.New("scene: object destroyed")

	// ErrComponentInUse is returned when destroying a component that a
	// live component still depends on.
	ErrComponentInUse = errors.New("scene: component required by another component")

	// ErrDetached is returned for components not attached to an object.
	ErrDetached = errors.New("scene: component not attached")
)

// Scene is the host world.
type Scene struct {
	roots []*Object

	frame uint64
	now   time.Duration

	timers []*Timer
	hooks  []func()

	mu     sync.Mutex
	posted []func()

	doomedObjects    []*Object
	doomedComponents []Component

	graphics   *render.Device
	rasterizer *render.Rasterizer
}

// New creates an empty scene with its own graphics device.
func New() *Scene {
	return &Scene{
		graphics:   render.NewDevice(),
		rasterizer: render.NewRasterizer(),
	}
}

// Graphics returns the scene's graphics device.
func (s *Scene) Graphics() *render.Device {
	return s.graphics
}

// Rasterizer returns the rasterizer cameras in this scene draw with.
func (s *Scene) Rasterizer() *render.Rasterizer {
	return s.rasterizer
}

// Frame returns the number of completed frames.
func (s *Scene) Frame() uint64 {
	return s.frame
}

// Now returns the scene clock.
func (s *Scene) Now() time.Duration {
	return s.now
}

// Roots returns the root objects. The slice must not be modified.
func (s *Scene) Roots() []*Object {
	return s.roots
}

// Add places o in the scene as a root. Active components start.
func (s *Scene) Add(o *Object) *Object {
	if o.parent != nil {
		o.parent.removeChild(o)
	} else if o.scene != nil {
		o.scene.removeRoot(o)
	}
	s.roots = append(s.roots, o)
	o.setScene(s)
	if o.ActiveInHierarchy() {
		o.startComponents()
	}
	return o
}

func (s *Scene) removeRoot(o *Object) {
	if i := slices.Index(s.roots, o); i >= 0 {
		s.roots = slices.Delete(s.roots, i, i+1)
	}
}

// Contains reports whether o is in the scene and not destroyed.
func (s *Scene) Contains(o *Object) bool {
	return o != nil && o.scene == s && !o.finalized && !o.IsDestroyed()
}

// Find returns the first live root object with the given name.
func (s *Scene) Find(name string) (*Object, bool) {
	for _, o := range s.roots {
		if o.Name == name && !o.IsDestroyed() {
			return o, true
		}
	}
	return nil, false
}

// Walk visits every object in the scene, including inactive ones.
func (s *Scene) Walk(fn func(*Object)) {
	for _, r := range s.roots {
		r.walk(true, fn)
	}
}

// Instantiate copies src and its subtree into the scene as a new root at
// the given world position and rotation. Component references inside the
// subtree are remapped to the copies. The copy keeps src's active flag and
// starts its components if it is active.
func (s *Scene) Instantiate(src *Object, pos geom.Vec3, rot geom.Quat) (*Object, error) {
	if src.IsDestroyed() {
		return nil, fmt.Errorf("instantiate %q: %w", src.Name, ErrDestroyed)
	}
	mapping := make(map[Component]Component)
	o := src.clone(mapping)
	lookup := func(c Component) Component {
		if cc, ok := mapping[c]; ok {
			return cc
		}
		return c
	}
	for _, cc := range mapping {
		if r, ok := cc.(Remapper); ok {
			r.Remap(lookup)
		}
	}
	o.Transform.Position = pos
	o.Transform.Rotation = rot
	return s.Add(o), nil
}

// Destroy schedules o and its subtree for removal at the end of the frame.
// Until then the objects stay in the tree but report IsDestroyed.
func (s *Scene) Destroy(o *Object) {
	if o == nil || o.IsDestroyed() {
		return
	}
	o.destroyed = true
	s.doomedObjects = append(s.doomedObjects, o)
}

// DestroyComponent schedules c for removal at the end of the frame.
// Components that others depend on must be destroyed after their
// dependents; otherwise ErrComponentInUse is returned and nothing changes.
func (s *Scene) DestroyComponent(c Component) error {
	b := c.base()
	if b.obj == nil {
		return ErrDetached
	}
	if b.destroying {
		return nil
	}
	var blocker Component
	b.obj.Root().walk(true, func(n *Object) {
		if blocker != nil {
			return
		}
		for _, other := range n.components {
			if other == c || other.base().destroying {
				continue
			}
			if slices.Contains(other.Dependencies(), c) {
				blocker = other
				return
			}
		}
	})
	if blocker != nil {
		return fmt.Errorf("%w: %T on %q needs %T", ErrComponentInUse, blocker, blocker.Object().Name, c)
	}
	b.destroying = true
	s.doomedComponents = append(s.doomedComponents, c)
	return nil
}

// After arms a timer that calls fn once d of scene time has passed.
func (s *Scene) After(d time.Duration, fn func()) *Timer {
	t := &Timer{at: s.now + d, fn: fn}
	s.timers = append(s.timers, t)
	return t
}

// OnTick registers fn to run once per frame, after timers and before
// deferred destruction is carried out.
func (s *Scene) OnTick(fn func()) {
	s.hooks = append(s.hooks, fn)
}

// Post queues fn to run on the host thread at the start of the next frame.
// Post is safe for concurrent use.
func (s *Scene) Post(fn func()) {
	s.mu.Lock()
	s.posted = append(s.posted, fn)
	s.mu.Unlock()
}

// Step advances the scene by one frame of length dt: posted work runs, due
// timers fire, tick hooks run, then scheduled destruction is carried out.
func (s *Scene) Step(dt time.Duration) {
	s.now += dt

	s.mu.Lock()
	posted := s.posted
	s.posted = nil
	s.mu.Unlock()
	for _, fn := range posted {
		fn()
	}

	s.fireTimers()

	for _, fn := range s.hooks {
		fn()
	}

	s.finalize()
	s.frame++
}

func (s *Scene) fireTimers() {
	var due []*Timer
	kept := s.timers[:0]
	for _, t := range s.timers {
		switch {
		case t.stopped:
		case t.at <= s.now:
			due = append(due, t)
		default:
			kept = append(kept, t)
		}
	}
	clear(s.timers[len(kept):])
	s.timers = kept
	slices.SortStableFunc(due, func(a, b *Timer) int { return cmp.Compare(a.at, b.at) })
	for _, t := range due {
		if t.stopped {
			continue
		}
		t.fired = true
		t.fn()
	}
}

// PendingTimers returns the number of armed timers.
func (s *Scene) PendingTimers() int {
	n := 0
	for _, t := range s.timers {
		if !t.stopped && !t.fired {
			n++
		}
	}
	return n
}

// finalize removes everything scheduled for destruction this frame.
func (s *Scene) finalize() {
	comps := s.doomedComponents
	s.doomedComponents = nil
	for _, c := range comps {
		o := c.Object()
		if i := slices.Index(o.components, c); i >= 0 {
			o.components = slices.Delete(o.components, i, i+1)
		}
		if d, ok := c.(destroyer); ok {
			d.destroyed()
		}
	}

	objs := s.doomedObjects
	s.doomedObjects = nil
	for _, o := range objs {
		if o.finalized {
			continue
		}
		o.walk(true, func(n *Object) {
			n.finalized = true
			for _, c := range n.components {
				if d, ok := c.(destroyer); ok {
					d.destroyed()
				}
			}
		})
		if o.parent != nil {
			o.parent.removeChild(o)
		} else if o.scene == s {
			s.removeRoot(o)
		}
	}
}
