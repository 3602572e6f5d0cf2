package geom

import (
	"errors"
	"fmt"
)

// ErrBadIndex is returned when a mesh index refers to a missing vertex.
var ErrBadIndex = errors.New("geom: triangle index out of range")

// Mesh is an indexed triangle list in local coordinates.
// Every three consecutive indices form one triangle.
type Mesh struct {
	Vertices []Vec3
	Indices  []int
}

// TriangleCount returns the number of complete triangles.
func (m *Mesh) TriangleCount() int {
	if m == nil {
		return 0
	}
	return len(m.Indices) / 3
}

// Triangle returns the vertices of triangle i.
func (m *Mesh) Triangle(i int) (a, b, c Vec3) {
	return m.Vertices[m.Indices[3*i]], m.Vertices[m.Indices[3*i+1]], m.Vertices[m.Indices[3*i+2]]
}

// Bounds returns the local-space box of the referenced vertices.
func (m *Mesh) Bounds() AABB {
	b := EmptyAABB()
	if m == nil {
		return b
	}
	for i := 0; i < m.TriangleCount(); i++ {
		x, y, z := m.Triangle(i)
		b = b.Extend(x).Extend(y).Extend(z)
	}
	return b
}

// Validate checks that every index refers to an existing vertex.
func (m *Mesh) Validate() error {
	for i, idx := range m.Indices {
		if idx < 0 || idx >= len(m.Vertices) {
			return fmt.Errorf("%w: index %d = %d, %d vertices", ErrBadIndex, i, idx, len(m.Vertices))
		}
	}
	return nil
}

// Clone returns a deep copy of the mesh.
func (m *Mesh) Clone() *Mesh {
	if m == nil {
		return nil
	}
	return &Mesh{
		Vertices: append([]Vec3(nil), m.Vertices...),
		Indices:  append([]int(nil), m.Indices...),
	}
}

// Box returns a closed box mesh of the given size centered on the origin.
func Box(size Vec3) *Mesh {
	h := size.Mul(0.5)
	v := []Vec3{
		{X: -h.X, Y: -h.Y, Z: -h.Z}, {X: h.X, Y: -h.Y, Z: -h.Z},
		{X: h.X, Y: h.Y, Z: -h.Z}, {X: -h.X, Y: h.Y, Z: -h.Z},
		{X: -h.X, Y: -h.Y, Z: h.Z}, {X: h.X, Y: -h.Y, Z: h.Z},
		{X: h.X, Y: h.Y, Z: h.Z}, {X: -h.X, Y: h.Y, Z: h.Z},
	}
	idx := []int{
		0, 2, 1, 0, 3, 2, // back
		4, 5, 6, 4, 6, 7, // front
		0, 1, 5, 0, 5, 4, // bottom
		3, 7, 6, 3, 6, 2, // top
		0, 4, 7, 0, 7, 3, // left
		1, 2, 6, 1, 6, 5, // right
	}
	return &Mesh{Vertices: v, Indices: idx}
}

// Pyramid returns a square-based pyramid with its base centered on the origin.
func Pyramid(base, height float64) *Mesh {
	h := base / 2
	v := []Vec3{
		{X: -h, Z: -h}, {X: h, Z: -h}, {X: h, Z: h}, {X: -h, Z: h},
		{Y: height},
	}
	idx := []int{
		0, 1, 2, 0, 2, 3,
		0, 4, 1, 1, 4, 2, 2, 4, 3, 3, 4, 0,
	}
	return &Mesh{Vertices: v, Indices: idx}
}

// Quad returns a single-sided rectangle in the XY plane facing -Z.
func Quad(width, height float64) *Mesh {
	w, h := width/2, height/2
	return &Mesh{
		Vertices: []Vec3{{X: -w, Y: -h}, {X: w, Y: -h}, {X: w, Y: h}, {X: -w, Y: h}},
		Indices:  []int{0, 2, 1, 0, 3, 2},
	}
}
