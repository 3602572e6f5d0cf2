// Package catalog holds the demo locations rendered by the preview commands.
package catalog

import (
	"slices"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/preview/geom"
	"github.com/gogpu/preview/scene"
)

// Biome is a bit set of biomes a location spawns in.
type Biome uint32

// Biomes.
const (
	Meadows Biome = 1 << iota
	BlackForest
	Swamp
	Mountain
	Plains
	Ocean
)

var biomeNames = []struct {
	b    Biome
	name string
}{
	{Meadows, "Meadows"},
	{BlackForest, "BlackForest"},
	{Swamp, "Swamp"},
	{Mountain, "Mountain"},
	{Plains, "Plains"},
	{Ocean, "Ocean"},
}

// Names returns the names of the biomes in b.
func (b Biome) Names() []string {
	var out []string
	for _, bn := range biomeNames {
		if b&bn.b != 0 {
			out = append(out, bn.name)
		}
	}
	return out
}

// Entry is one location.
type Entry struct {
	Name           string
	Biome          Biome
	Quantity       int
	ExteriorRadius float64
	Unique         bool

	build func() *scene.Object
}

// Prefab builds a fresh template of the location. Templates live outside
// any scene.
func (e Entry) Prefab() *scene.Object {
	return e.build()
}

var entries = []Entry{
	{Name: "stone_tower", Biome: Meadows | BlackForest, Quantity: 50, ExteriorRadius: 8, build: stoneTower},
	{Name: "runestone", Biome: Meadows | Plains, Quantity: 30, ExteriorRadius: 3, build: runestone},
	{Name: "sunken_crypt", Biome: Swamp, Quantity: 400, ExteriorRadius: 12, build: sunkenCrypt},
	{Name: "dragon_altar", Biome: Mountain, Quantity: 3, ExteriorRadius: 10, Unique: true, build: dragonAltar},
	{Name: "spawn_marker", Biome: Ocean, Quantity: 1, build: spawnMarker},
}

// All returns every location in catalog order.
func All() []Entry {
	return slices.Clone(entries)
}

// Lookup returns the location with the given name.
func Lookup(name string) (Entry, bool) {
	i := slices.IndexFunc(entries, func(e Entry) bool { return e.Name == name })
	if i < 0 {
		return Entry{}, false
	}
	return entries[i], true
}

var (
	stone = gputypes.Color{R: 0.55, G: 0.55, B: 0.6, A: 1}
	wood  = gputypes.Color{R: 0.45, G: 0.3, B: 0.15, A: 1}
	moss  = gputypes.Color{R: 0.3, G: 0.45, B: 0.25, A: 1}
	ember = gputypes.Color{R: 0.9, G: 0.35, B: 0.1, A: 1}
)

func at(o *scene.Object, x, y, z float64) *scene.Object {
	o.Transform.Position = geom.V3(x, y, z)
	return o
}

func stoneTower() *scene.Object {
	root := scene.NewEmpty("stone_tower")
	root.AddChild(at(scene.NewCube("foundation", geom.V3(5, 1, 5), stone), 0, 0.5, 0))
	root.AddChild(at(scene.NewCube("keep", geom.V3(3, 6, 3), stone), 0, 4, 0))
	root.AddChild(at(scene.NewPyramid("roof", 4, 2.5, wood), 0, 7, 0))
	root.AddComponent(&scene.Behavior{Name: "ZoneArea"})
	return root
}

func runestone() *scene.Object {
	root := scene.NewEmpty("runestone")
	slab := root.AddChild(at(scene.NewCube("slab", geom.V3(1.2, 3, 0.4), stone), 0, 1.5, 0))
	slab.Transform.Rotation = geom.Euler(0, 0, 4)
	glow := slab.AddComponent(scene.NewLight()).(*scene.Light)
	glow.Color = gputypes.ColorBlue
	slab.AddComponent(&scene.Behavior{Name: "RuneStone", Requires: []scene.Component{glow}})
	return root
}

func sunkenCrypt() *scene.Object {
	root := scene.NewEmpty("sunken_crypt")
	root.AddChild(at(scene.NewCube("hall", geom.V3(8, 4, 10), moss), 0, 2, 0))
	root.AddChild(at(scene.NewPyramid("gable", 8, 2, stone), 0, 4, 0))

	door := root.AddChild(at(scene.NewCube("door", geom.V3(2, 3, 0.3), wood), 0, 1.5, 5.2))
	frame := root.AddChild(at(scene.NewEmpty("frame"), 0, 1.5, 5))
	anchor := frame.AddComponent(&scene.Rigidbody{Mass: 0}).(*scene.Rigidbody)
	door.AddComponent(&scene.Rigidbody{Mass: 40})
	hinge := door.AddComponent(&scene.Joint{Connected: anchor})
	door.AddComponent(&scene.Behavior{Name: "Door", Requires: []scene.Component{hinge}})
	return root
}

func dragonAltar() *scene.Object {
	root := scene.NewEmpty("dragon_altar")
	root.AddChild(at(scene.NewCube("dais", geom.V3(6, 0.6, 6), stone), 0, 0.3, 0))
	for _, x := range []float64{-2, 2} {
		for _, z := range []float64{-2, 2} {
			root.AddChild(at(scene.NewCube("pillar", geom.V3(0.6, 3, 0.6), stone), x, 2.1, z))
		}
	}
	root.AddChild(at(scene.NewCube("offering", geom.V3(1, 1, 1), ember), 0, 1.1, 0))
	return root
}

// spawnMarker carries no geometry and cannot be previewed.
func spawnMarker() *scene.Object {
	root := scene.NewEmpty("spawn_marker")
	root.AddComponent(&scene.Behavior{Name: "SpawnPoint"})
	return root
}
