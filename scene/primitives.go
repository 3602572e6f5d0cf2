package scene

import (
	"github.com/gogpu/gputypes"

	"github.com/gogpu/preview/geom"
)

// NewEmpty creates an object with no components.
func NewEmpty(name string) *Object {
	return NewObject(name)
}

// NewMeshObject creates an object that draws mesh in color.
func NewMeshObject(name string, mesh *geom.Mesh, color gputypes.Color) *Object {
	o := NewObject(name)
	o.AddComponent(&MeshFilter{Mesh: mesh})
	o.AddComponent(&MeshRenderer{Color: color})
	return o
}

// NewCube creates a box of the given size centered on its origin.
func NewCube(name string, size geom.Vec3, color gputypes.Color) *Object {
	return NewMeshObject(name, geom.Box(size), color)
}

// NewPyramid creates a square pyramid standing on its origin.
func NewPyramid(name string, base, height float64, color gputypes.Color) *Object {
	return NewMeshObject(name, geom.Pyramid(base, height), color)
}

// NewQuad creates a flat rectangle in the XY plane.
func NewQuad(name string, width, height float64, color gputypes.Color) *Object {
	return NewMeshObject(name, geom.Quad(width, height), color)
}
