package render

import (
	"image"
	"image/color"
)

// Surface is the pixel target the rasterizer draws into.
//
// Draw calls land on a hidden buffer; nothing becomes visible to the
// consumer of the surface until Present. Pixels stay until the next Clear.
type Surface interface {
	// Clear fills the whole drawing buffer with c.
	Clear(c color.RGBA)
	// DrawLine draws a straight line between p0 and p1, both inclusive.
	DrawLine(p0, p1 image.Point, c color.RGBA)
	// DrawSpan draws the horizontal run x0..x1 (inclusive) on row y.
	DrawSpan(x0, x1, y int, c color.RGBA)
	// Present makes the drawn frame visible.
	Present() error
}
