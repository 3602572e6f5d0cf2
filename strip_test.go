package preview

import (
	"errors"
	"testing"

	"github.com/gogpu/preview/scene"
)

func TestStripOrder(t *testing.T) {
	o := scene.NewEmpty("o")
	rb := o.AddComponent(&scene.Rigidbody{})
	joint := o.AddComponent(&scene.Joint{})
	script := o.AddComponent(&scene.Behavior{Name: "s", Requires: []scene.Component{joint}})
	free := o.AddComponent(&scene.Behavior{Name: "free"})

	got, err := stripOrder([]scene.Component{rb, joint, script, free})
	if err != nil {
		t.Fatalf("stripOrder() error = %v", err)
	}
	pos := make(map[scene.Component]int)
	for i, c := range got {
		pos[c] = i
	}
	if len(got) != 4 {
		t.Fatalf("len(stripOrder()) = %d, want 4", len(got))
	}
	if !(pos[script] < pos[joint] && pos[joint] < pos[rb]) {
		t.Errorf("order = %v, want behavior before joint before rigidbody", got)
	}
}

func TestStripOrderIgnoresOutsideDeps(t *testing.T) {
	mr := &scene.MeshRenderer{}
	b := &scene.Behavior{Requires: []scene.Component{mr}}
	got, err := stripOrder([]scene.Component{b})
	if err != nil || len(got) != 1 {
		t.Errorf("stripOrder() = %v, %v, want [behavior], nil", got, err)
	}
}

func TestStripOrderCycle(t *testing.T) {
	a := &scene.Behavior{Name: "a"}
	b := &scene.Behavior{Name: "b", Requires: []scene.Component{a}}
	a.Requires = []scene.Component{b}
	if _, err := stripOrder([]scene.Component{a, b}); !errors.Is(err, ErrStripCycle) {
		t.Errorf("stripOrder() error = %v, want ErrStripCycle", err)
	}
}

func TestStripKeepsVisuals(t *testing.T) {
	sc := scene.New()
	o := sc.Add(crate())
	o.AddComponent(&scene.Rigidbody{})
	o.AddChild(scene.NewEmpty("child")).AddComponent(&scene.Behavior{})

	if err := strip(sc, o); err != nil {
		t.Fatalf("strip() error = %v", err)
	}
	sc.Step(frame)
	o.Walk(func(n *scene.Object) {
		for _, c := range n.Components() {
			if !scene.IsVisual(c) {
				t.Errorf("%s has %T after strip", n.Name, c)
			}
		}
	})
	if got := len(o.Components()); got != 2 {
		t.Errorf("len(Components()) = %d, want 2 visuals", got)
	}
}
