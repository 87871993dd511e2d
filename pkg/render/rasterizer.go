package render

import (
	"errors"
	"fmt"
	"image"
	"image/color"

	"github.com/taigrr/painter/pkg/math3d"
	"github.com/taigrr/painter/pkg/models"
)

// ErrUnshaded is returned when a triangle reaches the rasterizer before a
// color was assigned to it.
var ErrUnshaded = errors.New("triangle has no color")

// Mode selects which parts of a triangle are drawn.
type Mode int

const (
	ModeFill        Mode = iota // Filled interior only
	ModeOutline                 // Edges only
	ModeFillOutline             // Filled interior with edges on top
)

// String returns the mode name as used in configuration files.
func (m Mode) String() string {
	switch m {
	case ModeFill:
		return "fill"
	case ModeOutline:
		return "outline"
	case ModeFillOutline:
		return "both"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// Next cycles fill, outline, both.
func (m Mode) Next() Mode {
	return (m + 1) % (ModeFillOutline + 1)
}

// ParseMode parses "fill", "outline" or "both".
func ParseMode(s string) (Mode, error) {
	switch s {
	case "fill", "":
		return ModeFill, nil
	case "outline", "wireframe":
		return ModeOutline, nil
	case "both", "fill+outline":
		return ModeFillOutline, nil
	default:
		return 0, fmt.Errorf("unknown draw mode %q", s)
	}
}

// Style is the paint applied to one triangle.
type Style struct {
	Mode    Mode
	Fill    color.RGBA
	Outline color.RGBA
}

// Rasterizer converts screen-space triangles into pixels on a Surface
// using Bresenham edge tracing and a per-row scanline fill.
type Rasterizer struct {
	surf Surface

	// scratch space reused between triangles
	outline []image.Point
	spans   []Span
}

// NewRasterizer creates a rasterizer drawing to surf.
func NewRasterizer(surf Surface) *Rasterizer {
	return &Rasterizer{surf: surf}
}

// SetSurface switches the draw target, e.g. after a resize.
func (r *Rasterizer) SetSurface(surf Surface) {
	r.surf = surf
}

// Draw rasterizes a screen-space triangle in its own color. Vertex
// coordinates are truncated to whole pixels; only X and Y are used.
func (r *Rasterizer) Draw(tri models.Triangle, mode Mode, outline color.RGBA) error {
	if !tri.Shaded {
		return ErrUnshaded
	}
	var pts [3]image.Point
	for i, p := range tri.P {
		pts[i] = image.Pt(int(p.X), int(p.Y))
	}
	return r.DrawTriangle(pts, Style{Mode: mode, Fill: tri.Color, Outline: outline})
}

// DrawTriangle rasterizes the triangle pts with style. Triangles whose
// corners are collinear are rejected with math3d.ErrDegenerateGeometry and
// nothing is drawn.
func (r *Rasterizer) DrawTriangle(pts [3]image.Point, style Style) error {
	if area2(pts) == 0 {
		return fmt.Errorf("rasterize %v: %w", pts, math3d.ErrDegenerateGeometry)
	}

	if style.Mode != ModeOutline {
		r.fill(pts, style.Fill)
	}
	if style.Mode != ModeFill {
		r.surf.DrawLine(pts[0], pts[1], style.Outline)
		r.surf.DrawLine(pts[1], pts[2], style.Outline)
		r.surf.DrawLine(pts[2], pts[0], style.Outline)
	}
	return nil
}

// fill traces the three edges and draws one span per covered row.
func (r *Rasterizer) fill(pts [3]image.Point, c color.RGBA) {
	r.outline = AppendLine(r.outline[:0], pts[0], pts[1])
	r.outline = AppendLine(r.outline, pts[1], pts[2])
	r.outline = AppendLine(r.outline, pts[2], pts[0])

	r.spans = AppendSpans(r.spans[:0], r.outline)
	for _, s := range r.spans {
		r.surf.DrawSpan(s.X0, s.X1, s.Y, c)
	}
}

// area2 returns twice the signed area of the triangle.
func area2(pts [3]image.Point) int {
	a := pts[1].Sub(pts[0])
	b := pts[2].Sub(pts[0])
	return a.X*b.Y - a.Y*b.X
}
