package render

import (
	"image"
	"slices"
)

// Span is one horizontal run of a filled polygon, X0..X1 inclusive.
type Span struct {
	Y, X0, X1 int
}

// TraceLine returns every pixel on the line from p0 to p1, both endpoints
// included, in order from p0.
func TraceLine(p0, p1 image.Point) []image.Point {
	return AppendLine(nil, p0, p1)
}

// AppendLine appends the pixels of the line from p0 to p1 to dst.
func AppendLine(dst []image.Point, p0, p1 image.Point) []image.Point {
	bresenham(p0, p1, func(p image.Point) {
		dst = append(dst, p)
	})
	return dst
}

// bresenham walks the line from p0 to p1 with integer error accumulation,
// calling plot for each pixel.
func bresenham(p0, p1 image.Point, plot func(image.Point)) {
	dx := abs(p1.X - p0.X)
	dy := abs(p1.Y - p0.Y)
	sx := 1
	if p0.X > p1.X {
		sx = -1
	}
	sy := 1
	if p0.Y > p1.Y {
		sy = -1
	}
	err := dx - dy

	x, y := p0.X, p0.Y
	for {
		plot(image.Pt(x, y))
		if x == p1.X && y == p1.Y {
			return
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x += sx
		}
		if e2 < dx {
			err += dx
			y += sy
		}
	}
}

// Spans groups outline pixels by row and returns the min..max x run of
// every row that has at least one pixel, in ascending y order.
func Spans(outline []image.Point) []Span {
	return AppendSpans(nil, outline)
}

// AppendSpans is Spans appending to dst.
func AppendSpans(dst []Span, outline []image.Point) []Span {
	if len(outline) == 0 {
		return dst
	}

	start := len(dst)
	for _, p := range outline {
		dst = append(dst, Span{Y: p.Y, X0: p.X, X1: p.X})
	}
	run := dst[start:]
	slices.SortFunc(run, func(a, b Span) int {
		return a.Y - b.Y
	})

	// Merge rows in place
	n := 0
	for _, s := range run {
		if n > 0 && run[n-1].Y == s.Y {
			run[n-1].X0 = min(run[n-1].X0, s.X0)
			run[n-1].X1 = max(run[n-1].X1, s.X1)
			continue
		}
		run[n] = s
		n++
	}
	return dst[:start+n]
}
