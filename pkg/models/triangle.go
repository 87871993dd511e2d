package models

import (
	"fmt"
	"image/color"

	"github.com/taigrr/painter/pkg/math3d"
)

// Triangle is three homogeneous points plus a flat color.
//
// Color is only meaningful once Shaded is set; triangles produced by the
// loaders start unshaded.
type Triangle struct {
	P      [3]math3d.Vec4
	Color  color.RGBA
	Shaded bool
}

// Tri builds an unshaded triangle from three object-space points.
func Tri(a, b, c math3d.Vec3) Triangle {
	return Triangle{P: [3]math3d.Vec4{math3d.Point(a), math3d.Point(b), math3d.Point(c)}}
}

// Normal returns the unit normal normalize((p1-p0) × (p2-p0)), computed on
// the x, y and z components only.
func (t Triangle) Normal() (math3d.Vec3, error) {
	p0 := t.P[0].Vec3()
	e1 := t.P[1].Vec3().Sub(p0)
	e2 := t.P[2].Vec3().Sub(p0)
	n, err := e1.Cross(e2).Unit()
	if err != nil {
		return math3d.Vec3{}, fmt.Errorf("triangle normal: %w", err)
	}
	return n, nil
}

// Centroid returns the arithmetic mean of the three vertices.
func (t Triangle) Centroid() math3d.Vec3 {
	return t.P[0].Vec3().Add(t.P[1].Vec3()).Add(t.P[2].Vec3()).Scale(1.0 / 3)
}

// AvgZ returns the mean z of the three vertices. It is the depth sort key.
func (t Triangle) AvgZ() float64 {
	return (t.P[0].Z + t.P[1].Z + t.P[2].Z) / 3
}

// Transform applies m to every vertex, preserving color.
func (t Triangle) Transform(m math3d.Mat4) Triangle {
	for i := range t.P {
		t.P[i] = m.MulVec4(t.P[i])
	}
	return t
}

// Translate offsets every vertex by d, preserving color.
func (t Triangle) Translate(d math3d.Vec3) Triangle {
	for i := range t.P {
		t.P[i] = t.P[i].Translate(d)
	}
	return t
}

// WithColor returns a shaded copy of t painted c.
func (t Triangle) WithColor(c color.RGBA) Triangle {
	t.Color = c
	t.Shaded = true
	return t
}

// Degenerate reports whether the triangle has (near) zero area.
func (t Triangle) Degenerate() bool {
	_, err := t.Normal()
	return err != nil
}
