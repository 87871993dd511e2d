// Package render rasterizes screen-space triangles onto pixel surfaces and
// presents finished frames to terminals and image files.
package render

import (
	"image"
	"image/color"
)

// Framebuffer is a double-buffered RGBA pixel surface.
//
// Draw calls write into Pixels (the back buffer). Present copies the back
// buffer into the front image, which is what presenters read. When shown in
// a terminal, two pixel rows share one cell using half-block characters.
type Framebuffer struct {
	Width  int          // Width in pixels (same as terminal columns)
	Height int          // Height in pixels (2x terminal rows due to half-blocks)
	Pixels []color.RGBA // Row-major back buffer

	front *image.RGBA
}

var _ Surface = (*Framebuffer)(nil)

// NewFramebuffer creates a new framebuffer with the given dimensions.
// Height should be 2x the desired terminal rows for half-block rendering.
func NewFramebuffer(width, height int) *Framebuffer {
	width, height = max(width, 0), max(height, 0)
	return &Framebuffer{
		Width:  width,
		Height: height,
		Pixels: make([]color.RGBA, width*height),
		front:  image.NewRGBA(image.Rect(0, 0, width, height)),
	}
}

// Resize reallocates both buffers. Previous contents are discarded.
func (fb *Framebuffer) Resize(width, height int) {
	*fb = *NewFramebuffer(width, height)
}

// Clear fills the back buffer with a solid color.
func (fb *Framebuffer) Clear(c color.RGBA) {
	if len(fb.Pixels) == 0 {
		return
	}
	// Use copy-doubling for faster clearing
	fb.Pixels[0] = c
	for filled := 1; filled < len(fb.Pixels); filled *= 2 {
		copy(fb.Pixels[filled:], fb.Pixels[:filled])
	}
}

// SetPixel sets a back buffer pixel at (x, y) to the given color.
// Bounds checking is performed.
func (fb *Framebuffer) SetPixel(x, y int, c color.RGBA) {
	if x < 0 || x >= fb.Width || y < 0 || y >= fb.Height {
		return
	}
	fb.Pixels[y*fb.Width+x] = c
}

// GetPixel returns the back buffer color at (x, y).
// Returns transparent black if out of bounds.
func (fb *Framebuffer) GetPixel(x, y int) color.RGBA {
	if x < 0 || x >= fb.Width || y < 0 || y >= fb.Height {
		return color.RGBA{}
	}
	return fb.Pixels[y*fb.Width+x]
}

// DrawLine draws a line from p0 to p1 using Bresenham's algorithm.
// Pixels outside the framebuffer are skipped.
func (fb *Framebuffer) DrawLine(p0, p1 image.Point, c color.RGBA) {
	bresenham(p0, p1, func(p image.Point) {
		fb.SetPixel(p.X, p.Y, c)
	})
}

// DrawSpan fills row y from x0 to x1 inclusive, clamped to the framebuffer.
func (fb *Framebuffer) DrawSpan(x0, x1, y int, c color.RGBA) {
	if y < 0 || y >= fb.Height {
		return
	}
	if x0 > x1 {
		x0, x1 = x1, x0
	}
	x0 = max(x0, 0)
	x1 = min(x1, fb.Width-1)
	if x0 > x1 {
		return
	}
	row := fb.Pixels[y*fb.Width:]
	for x := x0; x <= x1; x++ {
		row[x] = c
	}
}

// Present copies the back buffer to the front image.
func (fb *Framebuffer) Present() error {
	pix := fb.front.Pix
	for i, c := range fb.Pixels {
		pix[i*4] = c.R
		pix[i*4+1] = c.G
		pix[i*4+2] = c.B
		pix[i*4+3] = c.A
	}
	return nil
}

// Front returns the last presented frame. The image is overwritten by the
// next Present.
func (fb *Framebuffer) Front() *image.RGBA {
	return fb.front
}

// FrontPixel returns the presented color at (x, y).
// Returns transparent black if out of bounds.
func (fb *Framebuffer) FrontPixel(x, y int) color.RGBA {
	if x < 0 || x >= fb.Width || y < 0 || y >= fb.Height {
		return color.RGBA{}
	}
	return fb.front.RGBAAt(x, y)
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
