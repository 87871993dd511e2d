// Package models provides the triangle mesh types and the mesh file
// loaders for painter.
package models

import (
	"cmp"
	"slices"

	"github.com/taigrr/painter/pkg/math3d"
)

// Mesh is an ordered list of triangles.
type Mesh struct {
	Name      string
	Triangles []Triangle

	// Bounding box (calculated on load)
	BoundsMin math3d.Vec3
	BoundsMax math3d.Vec3
}

// NewMesh creates an empty mesh.
func NewMesh(name string) *Mesh {
	return &Mesh{
		Name:      name,
		Triangles: make([]Triangle, 0),
	}
}

// Add appends triangles in order.
func (m *Mesh) Add(tris ...Triangle) {
	m.Triangles = append(m.Triangles, tris...)
}

// Reset empties the mesh while keeping its backing storage.
func (m *Mesh) Reset() {
	m.Triangles = m.Triangles[:0]
}

// Sort orders triangles by descending average z so that the farthest
// triangle comes first. Equal keys end up in no particular order.
func (m *Mesh) Sort() {
	slices.SortFunc(m.Triangles, func(a, b Triangle) int {
		return cmp.Compare(b.AvgZ(), a.AvgZ())
	})
}

// CalculateBounds computes the axis-aligned bounding box.
func (m *Mesh) CalculateBounds() {
	if len(m.Triangles) == 0 {
		m.BoundsMin, m.BoundsMax = math3d.Zero3(), math3d.Zero3()
		return
	}

	m.BoundsMin = m.Triangles[0].P[0].Vec3()
	m.BoundsMax = m.BoundsMin

	for _, t := range m.Triangles {
		for _, p := range t.P {
			m.BoundsMin = m.BoundsMin.Min(p.Vec3())
			m.BoundsMax = m.BoundsMax.Max(p.Vec3())
		}
	}
}

// Center returns the center of the bounding box.
func (m *Mesh) Center() math3d.Vec3 {
	return m.BoundsMin.Add(m.BoundsMax).Scale(0.5)
}

// Size returns the dimensions of the bounding box.
func (m *Mesh) Size() math3d.Vec3 {
	return m.BoundsMax.Sub(m.BoundsMin)
}

// TriangleCount returns the number of triangles.
func (m *Mesh) TriangleCount() int {
	return len(m.Triangles)
}

// Transform applies a transformation matrix to every triangle in place.
func (m *Mesh) Transform(mat math3d.Mat4) {
	for i := range m.Triangles {
		m.Triangles[i] = m.Triangles[i].Transform(mat)
	}
	m.CalculateBounds()
}

// Normalize recenters the mesh on the origin and scales it so that its
// largest dimension equals size.
func (m *Mesh) Normalize(size float64) {
	extent := m.Size()
	largest := max(extent.X, extent.Y, extent.Z)
	if largest == 0 {
		return
	}
	m.Transform(math3d.ScaleUniform(size / largest).Mul(math3d.Translate(m.Center().Negate())))
}

// Clone creates a deep copy of the mesh.
func (m *Mesh) Clone() *Mesh {
	return &Mesh{
		Name:      m.Name,
		Triangles: slices.Clone(m.Triangles),
		BoundsMin: m.BoundsMin,
		BoundsMax: m.BoundsMax,
	}
}
