package pixel

// Symmetry holds the mirror axes. HorizontalAxis is a row index (mirroring
// flips y), VerticalAxis is a column index (mirroring flips x).
type Symmetry struct {
	Horizontal     bool
	Vertical       bool
	HorizontalAxis int
	VerticalAxis   int
}

// CenteredSymmetry returns inactive axes through the middle of the grid.
func CenteredSymmetry(width, height int) Symmetry {
	return Symmetry{
		HorizontalAxis: height / 2,
		VerticalAxis:   width / 2,
	}
}

func (s *Symmetry) ToggleHorizontal() {
	s.Horizontal = !s.Horizontal
}

func (s *Symmetry) ToggleVertical() {
	s.Vertical = !s.Vertical
}

// SetAxisAt moves every active axis onto the clicked cell, clamped to the
// grid. Inactive axes are left alone.
func (s *Symmetry) SetAxisAt(x, y, width, height int) {
	if s.Horizontal {
		s.HorizontalAxis = clampIndex(y, height)
	}
	if s.Vertical {
		s.VerticalAxis = clampIndex(x, width)
	}
}

// Clamp pulls both axes back inside a grid of the given size.
func (s *Symmetry) Clamp(width, height int) {
	s.HorizontalAxis = clampIndex(s.HorizontalAxis, height)
	s.VerticalAxis = clampIndex(s.VerticalAxis, width)
}

// Targets returns the cells an edit at (x,y) applies to: the primary cell
// first, then the horizontal, vertical and diagonal reflections that land
// inside the grid. No cell appears twice.
func (s Symmetry) Targets(x, y, width, height int) []Point {
	out := make([]Point, 0, 4)
	add := func(p Point) {
		if p.X < 0 || p.X >= width || p.Y < 0 || p.Y >= height {
			return
		}
		for _, q := range out {
			if q == p {
				return
			}
		}
		out = append(out, p)
	}

	add(Point{X: x, Y: y})
	my := 2*s.HorizontalAxis - y
	mx := 2*s.VerticalAxis - x
	if s.Horizontal {
		add(Point{X: x, Y: my})
	}
	if s.Vertical {
		add(Point{X: mx, Y: y})
	}
	if s.Horizontal && s.Vertical {
		add(Point{X: mx, Y: my})
	}
	return out
}

func clampIndex(v, n int) int {
	if v >= n {
		v = n - 1
	}
	if v < 0 {
		v = 0
	}
	return v
}
