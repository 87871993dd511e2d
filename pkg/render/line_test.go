package render

import (
	"image"
	"slices"
	"testing"
)

func pts(xy ...int) []image.Point {
	out := make([]image.Point, 0, len(xy)/2)
	for i := 0; i+1 < len(xy); i += 2 {
		out = append(out, image.Pt(xy[i], xy[i+1]))
	}
	return out
}

func TestTraceLine(t *testing.T) {
	tests := []struct {
		name   string
		p0, p1 image.Point
		want   []image.Point
	}{
		{"horizontal", image.Pt(0, 0), image.Pt(4, 0), pts(0, 0, 1, 0, 2, 0, 3, 0, 4, 0)},
		{"vertical", image.Pt(0, 0), image.Pt(0, 4), pts(0, 0, 0, 1, 0, 2, 0, 3, 0, 4)},
		{"diagonal", image.Pt(0, 0), image.Pt(4, 4), pts(0, 0, 1, 1, 2, 2, 3, 3, 4, 4)},
		{"shallow", image.Pt(0, 0), image.Pt(4, 2), pts(0, 0, 1, 0, 2, 1, 3, 1, 4, 2)},
		{"steep", image.Pt(0, 0), image.Pt(2, 4), pts(0, 0, 0, 1, 1, 2, 1, 3, 2, 4)},
		{"single point", image.Pt(3, 3), image.Pt(3, 3), pts(3, 3)},
		{"leftward", image.Pt(4, 0), image.Pt(0, 0), pts(4, 0, 3, 0, 2, 0, 1, 0, 0, 0)},
		{"upward", image.Pt(0, 4), image.Pt(0, 0), pts(0, 4, 0, 3, 0, 2, 0, 1, 0, 0)},
		{"anti-diagonal", image.Pt(0, 4), image.Pt(4, 0), pts(0, 4, 1, 3, 2, 2, 3, 1, 4, 0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TraceLine(tt.p0, tt.p1)
			if !slices.Equal(got, tt.want) {
				t.Errorf("TraceLine(%v, %v) = %v, want %v", tt.p0, tt.p1, got, tt.want)
			}
		})
	}
}

func TestTraceLineAllOctants(t *testing.T) {
	ends := pts(7, 3, 3, 7, -3, 7, -7, 3, -7, -3, -3, -7, 3, -7, 7, -3)

	for _, end := range ends {
		got := TraceLine(image.Pt(0, 0), end)

		if got[0] != image.Pt(0, 0) || got[len(got)-1] != end {
			t.Errorf("TraceLine to %v: endpoints %v..%v", end, got[0], got[len(got)-1])
		}

		// One pixel per step along the major axis
		if want := max(abs(end.X), abs(end.Y)) + 1; len(got) != want {
			t.Errorf("TraceLine to %v: %d pixels, want %d", end, len(got), want)
		}

		// Consecutive pixels are 8-connected
		for i := 1; i < len(got); i++ {
			d := got[i].Sub(got[i-1])
			if abs(d.X) > 1 || abs(d.Y) > 1 || d == (image.Point{}) {
				t.Errorf("TraceLine to %v: gap between %v and %v", end, got[i-1], got[i])
			}
		}
	}
}

func TestSpans(t *testing.T) {
	// Outline covering rows 0..2 plus a detached pixel on row 5
	outline := pts(
		2, 0, 5, 0, 3, 0,
		1, 1, 6, 1,
		0, 2, 4, 2, 7, 2,
		3, 5,
	)

	got := Spans(outline)
	want := []Span{
		{Y: 0, X0: 2, X1: 5},
		{Y: 1, X0: 1, X1: 6},
		{Y: 2, X0: 0, X1: 7},
		{Y: 5, X0: 3, X1: 3},
	}

	if !slices.Equal(got, want) {
		t.Errorf("Spans() = %v, want %v", got, want)
	}

	if got := Spans(nil); len(got) != 0 {
		t.Errorf("Spans(nil) = %v", got)
	}
}

func BenchmarkTraceLine(b *testing.B) {
	dst := make([]image.Point, 0, 256)
	for b.Loop() {
		dst = AppendLine(dst[:0], image.Pt(0, 0), image.Pt(200, 73))
	}
}
