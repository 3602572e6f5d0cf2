package scene

import (
	"errors"
	"slices"
	"testing"
	"time"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/preview/geom"
)

func TestDestroyIsDeferred(t *testing.T) {
	s := New()
	parent := s.Add(NewEmpty("parent"))
	child := parent.AddChild(NewCube("child", geom.One, gputypes.ColorRed))

	s.Destroy(parent)
	if !child.IsDestroyed() {
		t.Error("child.IsDestroyed() = false after parent destroyed, want true")
	}
	if len(s.Roots()) != 1 {
		t.Fatalf("len(Roots()) = %d before Step, want 1", len(s.Roots()))
	}
	if s.Contains(parent) {
		t.Error("Contains(parent) = true for pending destroy, want false")
	}

	s.Step(time.Millisecond)
	if len(s.Roots()) != 0 {
		t.Errorf("len(Roots()) = %d after Step, want 0", len(s.Roots()))
	}
	if _, ok := s.Find("parent"); ok {
		t.Error("Find(parent) found a destroyed object")
	}
}

func TestDestroyCallsOnDestroyOnce(t *testing.T) {
	s := New()
	o := NewEmpty("o")
	calls := 0
	b := &Behavior{Name: "script", OnDestroy: func(*Behavior) { calls++ }}
	o.AddComponent(b)
	s.Add(o)

	if err := s.DestroyComponent(b); err != nil {
		t.Fatalf("DestroyComponent() error = %v", err)
	}
	s.Destroy(o)
	s.Step(time.Millisecond)
	if calls != 1 {
		t.Errorf("OnDestroy calls = %d, want 1", calls)
	}
}

func TestDestroyComponentOrder(t *testing.T) {
	s := New()
	o := NewEmpty("body")
	rb := o.AddComponent(&Rigidbody{Mass: 1})
	joint := o.AddComponent(&Joint{})
	s.Add(o)

	err := s.DestroyComponent(rb)
	if !errors.Is(err, ErrComponentInUse) {
		t.Fatalf("DestroyComponent(rigidbody) error = %v, want ErrComponentInUse", err)
	}
	if rb.base().destroying {
		t.Fatal("rigidbody marked destroying after refused destroy")
	}

	if err := s.DestroyComponent(joint); err != nil {
		t.Fatalf("DestroyComponent(joint) error = %v", err)
	}
	if err := s.DestroyComponent(rb); err != nil {
		t.Fatalf("DestroyComponent(rigidbody) after joint error = %v", err)
	}
	if got := len(o.Components()); got != 2 {
		t.Errorf("len(Components()) = %d before Step, want 2", got)
	}
	s.Step(time.Millisecond)
	if got := len(o.Components()); got != 0 {
		t.Errorf("len(Components()) = %d after Step, want 0", got)
	}
}

func TestDestroyComponentDetached(t *testing.T) {
	s := New()
	if err := s.DestroyComponent(&Rigidbody{}); !errors.Is(err, ErrDetached) {
		t.Errorf("DestroyComponent(detached) error = %v, want ErrDetached", err)
	}
}

func TestTimers(t *testing.T) {
	s := New()
	var fired []string
	s.After(30*time.Millisecond, func() { fired = append(fired, "late") })
	s.After(10*time.Millisecond, func() { fired = append(fired, "early") })
	stopped := s.After(10*time.Millisecond, func() { fired = append(fired, "stopped") })
	if !stopped.Stop() {
		t.Fatal("Stop() = false on armed timer, want true")
	}
	if stopped.Stop() {
		t.Error("second Stop() = true, want false")
	}

	s.Step(20 * time.Millisecond)
	if !slices.Equal(fired, []string{"early"}) {
		t.Fatalf("fired after 20ms = %v, want [early]", fired)
	}
	if got := s.PendingTimers(); got != 1 {
		t.Errorf("PendingTimers() = %d, want 1", got)
	}
	s.Step(20 * time.Millisecond)
	if !slices.Equal(fired, []string{"early", "late"}) {
		t.Errorf("fired after 40ms = %v, want [early late]", fired)
	}
}

func TestStepOrder(t *testing.T) {
	s := New()
	var order []string
	o := s.Add(NewEmpty("o"))

	s.OnTick(func() {
		order = append(order, "tick")
		s.Destroy(o)
		if o.finalized {
			t.Error("object finalized before tick hook returned")
		}
	})
	s.After(0, func() { order = append(order, "timer") })
	s.Post(func() { order = append(order, "posted") })

	s.Step(time.Millisecond)
	want := []string{"posted", "timer", "tick"}
	if !slices.Equal(order, want) {
		t.Errorf("order = %v, want %v", order, want)
	}
	if !o.finalized {
		t.Error("object not finalized at end of frame")
	}
	if s.Frame() != 1 {
		t.Errorf("Frame() = %d, want 1", s.Frame())
	}
	if s.Now() != time.Millisecond {
		t.Errorf("Now() = %v, want 1ms", s.Now())
	}
}

func TestPostConcurrent(t *testing.T) {
	s := New()
	const n = 50
	done := make(chan struct{})
	for range n {
		go func() {
			s.Post(func() {})
			done <- struct{}{}
		}()
	}
	for range n {
		<-done
	}
	count := 0
	s.Post(func() { count++ })
	s.Step(time.Millisecond)
	if count != 1 {
		t.Errorf("posted func ran %d times, want 1", count)
	}
}

func TestInstantiateRemapsReferences(t *testing.T) {
	s := New()
	prefab := NewEmpty("rope")
	anchor := prefab.AddChild(NewEmpty("anchor"))
	body := anchor.AddComponent(&Rigidbody{Mass: 2}).(*Rigidbody)
	link := prefab.AddChild(NewEmpty("link"))
	link.AddComponent(&Rigidbody{Mass: 1})
	joint := link.AddComponent(&Joint{Connected: body}).(*Joint)
	script := prefab.AddComponent(&Behavior{Name: "swing", Requires: []Component{joint}}).(*Behavior)

	clone, err := s.Instantiate(prefab, geom.V3(1, 2, 3), geom.Euler(0, 90, 0))
	if err != nil {
		t.Fatalf("Instantiate() error = %v", err)
	}
	if clone == prefab || clone.Name != "rope" {
		t.Fatalf("Instantiate() = %p %q, want a new object named rope", clone, clone.Name)
	}
	if clone.Transform.Position != geom.V3(1, 2, 3) {
		t.Errorf("Position = %v, want (1,2,3)", clone.Transform.Position)
	}

	cj, ok := GetComponent[*Joint](clone.Children()[1])
	if !ok {
		t.Fatal("clone has no joint")
	}
	cb, _ := GetComponent[*Rigidbody](clone.Children()[0])
	if cj.Connected != cb || cj.Connected == body {
		t.Error("cloned joint still connected to the prefab body")
	}
	cs, _ := GetComponent[*Behavior](clone)
	if cs == script || cs.Requires[0] != cj {
		t.Error("cloned behavior requirement not remapped")
	}
	if script.Requires[0] != joint {
		t.Error("prefab behavior requirement changed by clone")
	}
}

func TestInstantiateDestroyed(t *testing.T) {
	s := New()
	o := s.Add(NewEmpty("gone"))
	s.Destroy(o)
	if _, err := s.Instantiate(o, geom.Zero, geom.Identity()); !errors.Is(err, ErrDestroyed) {
		t.Errorf("Instantiate(destroyed) error = %v, want ErrDestroyed", err)
	}
}

func TestBehaviorStartsOnActivation(t *testing.T) {
	s := New()
	starts := 0
	o := NewEmpty("o")
	o.SetActive(false)
	b := o.AddComponent(&Behavior{OnStart: func(*Behavior) { starts++ }}).(*Behavior)
	s.Add(o)
	if starts != 0 {
		t.Fatalf("starts = %d while inactive, want 0", starts)
	}

	// Pending destruction does not prevent start.
	if err := s.DestroyComponent(b); err != nil {
		t.Fatal(err)
	}
	o.SetActive(true)
	if starts != 1 || !b.Started() {
		t.Errorf("starts = %d, Started() = %v after activation, want 1, true", starts, b.Started())
	}
	o.SetActive(false)
	o.SetActive(true)
	if starts != 1 {
		t.Errorf("starts = %d after reactivation, want 1", starts)
	}
}

func TestRendererBounds(t *testing.T) {
	root := NewEmpty("root")
	root.Transform.Position = geom.V3(10, 0, 0)
	a := root.AddChild(NewCube("a", geom.V3(2, 2, 2), gputypes.ColorRed))
	a.Transform.Position = geom.V3(-1, 0, 0)
	hidden := root.AddChild(NewCube("hidden", geom.V3(100, 100, 100), gputypes.ColorRed))
	hidden.SetActive(false)

	b := root.RendererBounds()
	want := geom.AABB{Min: geom.V3(8, -1, -1), Max: geom.V3(10, 1, 1)}
	if !b.Min.Approx(want.Min, 1e-9) || !b.Max.Approx(want.Max, 1e-9) {
		t.Errorf("RendererBounds() = %v, want %v", b, want)
	}
	if !root.HasGeometry() {
		t.Error("HasGeometry() = false, want true")
	}
	if NewEmpty("e").HasGeometry() {
		t.Error("HasGeometry() on empty = true, want false")
	}
	if !NewEmpty("e").RendererBounds().IsEmpty() {
		t.Error("RendererBounds() on empty not empty")
	}
}

func TestLayerMask(t *testing.T) {
	m := MaskOf(0, 3)
	tests := []struct {
		layer Layer
		want  bool
	}{
		{0, true},
		{1, false},
		{3, true},
		{31, false},
	}
	for _, tt := range tests {
		if got := m.Contains(tt.layer); got != tt.want {
			t.Errorf("MaskOf(0,3).Contains(%d) = %v, want %v", tt.layer, got, tt.want)
		}
	}
	o := NewEmpty("o")
	o.AddChild(NewEmpty("c")).AddChild(NewEmpty("g"))
	o.SetLayerRecursive(3)
	o.Walk(func(n *Object) {
		if n.Layer() != 3 {
			t.Errorf("%s.Layer() = %d, want 3", n.Name, n.Layer())
		}
	})
}
