package pixel

import (
	"reflect"
	"testing"
)

func TestTargetsBothAxes(t *testing.T) {
	s := Symmetry{Horizontal: true, Vertical: true, HorizontalAxis: 8, VerticalAxis: 8}
	got := s.Targets(2, 3, 16, 16)
	want := []Point{{2, 3}, {2, 13}, {14, 3}, {14, 13}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Targets = %v, want %v", got, want)
	}
}

func TestTargetsSingleAxis(t *testing.T) {
	tests := []struct {
		name string
		sym  Symmetry
		x, y int
		want []Point
	}{
		{
			name: "none",
			sym:  Symmetry{HorizontalAxis: 8, VerticalAxis: 8},
			x:    1, y: 1,
			want: []Point{{1, 1}},
		},
		{
			name: "horizontal",
			sym:  Symmetry{Horizontal: true, HorizontalAxis: 4},
			x:    1, y: 1,
			want: []Point{{1, 1}, {1, 7}},
		},
		{
			name: "vertical",
			sym:  Symmetry{Vertical: true, VerticalAxis: 4},
			x:    1, y: 1,
			want: []Point{{1, 1}, {7, 1}},
		},
		{
			name: "on the axis",
			sym:  Symmetry{Horizontal: true, HorizontalAxis: 5},
			x:    2, y: 5,
			want: []Point{{2, 5}},
		},
		{
			name: "mirror out of bounds",
			sym:  Symmetry{Horizontal: true, HorizontalAxis: 14},
			x:    0, y: 2,
			want: []Point{{0, 2}},
		},
		{
			name: "diagonal collapses on both axes",
			sym:  Symmetry{Horizontal: true, Vertical: true, HorizontalAxis: 3, VerticalAxis: 3},
			x:    3, y: 3,
			want: []Point{{3, 3}},
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := tc.sym.Targets(tc.x, tc.y, 16, 16)
			if !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("Targets = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestTargetsStayInBoundsAndUnique(t *testing.T) {
	for w := 1; w <= 7; w++ {
		for h := 1; h <= 7; h++ {
			for ha := -2; ha <= h+2; ha++ {
				for va := -2; va <= w+2; va++ {
					s := Symmetry{Horizontal: true, Vertical: true, HorizontalAxis: ha, VerticalAxis: va}
					for x := 0; x < w; x++ {
						for y := 0; y < h; y++ {
							got := s.Targets(x, y, w, h)
							if len(got) == 0 || len(got) > 4 {
								t.Fatalf("%dx%d axes(%d,%d) at (%d,%d): %d targets", w, h, ha, va, x, y, len(got))
							}
							seen := map[Point]bool{}
							for _, p := range got {
								if p.X < 0 || p.X >= w || p.Y < 0 || p.Y >= h {
									t.Fatalf("%dx%d: target %v out of bounds", w, h, p)
								}
								if seen[p] {
									t.Fatalf("%dx%d: duplicate target %v", w, h, p)
								}
								seen[p] = true
							}
						}
					}
				}
			}
		}
	}
}

func TestSetAxisAtClampsActiveAxes(t *testing.T) {
	s := Symmetry{Horizontal: true, HorizontalAxis: 2, VerticalAxis: 2}
	s.SetAxisAt(30, 30, 16, 10)
	if s.HorizontalAxis != 9 {
		t.Fatalf("HorizontalAxis = %d, want 9", s.HorizontalAxis)
	}
	if s.VerticalAxis != 2 {
		t.Fatalf("inactive VerticalAxis moved to %d", s.VerticalAxis)
	}
	s.Vertical = true
	s.SetAxisAt(-4, 3, 16, 10)
	if s.VerticalAxis != 0 || s.HorizontalAxis != 3 {
		t.Fatalf("axes = (%d,%d), want (3,0)", s.HorizontalAxis, s.VerticalAxis)
	}
}

func TestClampAfterResize(t *testing.T) {
	s := CenteredSymmetry(32, 32)
	if s.HorizontalAxis != 16 || s.VerticalAxis != 16 {
		t.Fatalf("centered axes = (%d,%d)", s.HorizontalAxis, s.VerticalAxis)
	}
	s.Clamp(8, 4)
	if s.HorizontalAxis != 3 || s.VerticalAxis != 7 {
		t.Fatalf("clamped axes = (%d,%d), want (3,7)", s.HorizontalAxis, s.VerticalAxis)
	}
}
