package preview

import (
	"fmt"
	"slices"

	"github.com/gogpu/preview/scene"
)

// strip schedules every non-visual component in root's subtree for
// destruction. Dependents are destroyed before what they depend on.
func strip(sc *scene.Scene, root *scene.Object) error {
	var doomed []scene.Component
	root.Walk(func(o *scene.Object) {
		for _, c := range o.Components() {
			if !scene.IsVisual(c) {
				doomed = append(doomed, c)
			}
		}
	})
	order, err := stripOrder(doomed)
	if err != nil {
		return err
	}
	for _, c := range order {
		if err := sc.DestroyComponent(c); err != nil {
			return fmt.Errorf("strip %T on %q: %w", c, c.Object().Name, err)
		}
	}
	return nil
}

// stripOrder sorts comps so every component comes before the components it
// depends on. Dependencies outside comps are ignored. Ties keep the input
// order.
func stripOrder(comps []scene.Component) ([]scene.Component, error) {
	index := make(map[scene.Component]int, len(comps))
	for i, c := range comps {
		index[c] = i
	}
	// dependents[i] counts members of comps that depend on comps[i].
	dependents := make([]int, len(comps))
	for _, c := range comps {
		for _, d := range c.Dependencies() {
			if j, ok := index[d]; ok {
				dependents[j]++
			}
		}
	}

	var ready []int
	for i, n := range dependents {
		if n == 0 {
			ready = append(ready, i)
		}
	}
	order := make([]scene.Component, 0, len(comps))
	for len(ready) > 0 {
		i := ready[0]
		ready = ready[1:]
		order = append(order, comps[i])

		var freed []int
		for _, d := range comps[i].Dependencies() {
			if j, ok := index[d]; ok {
				dependents[j]--
				if dependents[j] == 0 {
					freed = append(freed, j)
				}
			}
		}
		slices.Sort(freed)
		ready = append(ready, freed...)
	}
	if len(order) != len(comps) {
		return nil, fmt.Errorf("%w: %d of %d components ordered", ErrStripCycle, len(order), len(comps))
	}
	return order, nil
}
