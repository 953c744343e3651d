package pixel

import (
	"math/rand"
	"reflect"
	"testing"
)

func TestReplayMatchesIncrementalRaster(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	palette := []string{"#FF0000", "#00FF00", "#0000FF", "#123", "#FFFFFF"}

	for run := 0; run < 20; run++ {
		s := NewSurface(0)
		incremental := map[Point]Action{}
		for i := 0; i < 200; i++ {
			a := Action{
				X:     rng.Intn(8),
				Y:     rng.Intn(8),
				Color: palette[rng.Intn(len(palette))],
				Alpha: float64(rng.Intn(11)) / 10,
			}
			s.Paint(a.X, a.Y, a.Color, a.Alpha)
			incremental[a.At()] = a
		}
		if got := s.Pixels(); !reflect.DeepEqual(got, incremental) {
			t.Fatalf("run %d: replayed raster differs from incremental raster", run)
		}
	}
}

func TestUndoRedoRestoresActions(t *testing.T) {
	s := NewSurface(0)
	s.Paint(0, 0, "#FF0000", 1)
	s.Paint(1, 0, "#00FF00", 0.5)
	s.Paint(0, 0, "#0000FF", 1)
	before := s.Actions()

	if !s.Undo() {
		t.Fatal("expected undo to change the surface")
	}
	if s.Len() != 2 || s.RedoLen() != 1 {
		t.Fatalf("after undo: len=%d redo=%d", s.Len(), s.RedoLen())
	}
	if !s.Redo() {
		t.Fatal("expected redo to change the surface")
	}
	if got := s.Actions(); !reflect.DeepEqual(got, before) {
		t.Fatalf("undo+redo = %v, want %v", got, before)
	}
}

func TestPaintAfterUndoDropsRedo(t *testing.T) {
	s := NewSurface(0)
	s.Paint(0, 0, "#FF0000", 1)
	s.Undo()
	s.Paint(1, 1, "#00FF00", 1)
	if s.Redo() {
		t.Fatal("redo should be a no-op after a new paint")
	}
	if s.Len() != 1 {
		t.Fatalf("len = %d, want 1", s.Len())
	}
}

func TestEraseAfterUndoDropsRedo(t *testing.T) {
	s := NewSurface(0)
	s.Paint(0, 0, "#FF0000", 1)
	s.Paint(1, 1, "#FF0000", 1)
	s.Undo()
	if !s.EraseAt(0, 0) {
		t.Fatal("expected erase to remove an action")
	}
	if s.RedoLen() != 0 {
		t.Fatalf("redo len = %d, want 0", s.RedoLen())
	}
}

func TestEmptyUndoRedoAreNoops(t *testing.T) {
	s := NewSurface(0)
	if s.Undo() || s.Redo() {
		t.Fatal("undo/redo on an empty surface should report no change")
	}
}

func TestEraseRemovesOnlyNewestAtCell(t *testing.T) {
	s := NewSurface(0)
	s.Paint(2, 2, "#FF0000", 1)
	s.Paint(3, 3, "#00FF00", 1)
	s.Paint(2, 2, "#0000FF", 1)

	if !s.EraseAt(2, 2) {
		t.Fatal("expected erase to find (2,2)")
	}
	px := s.Pixels()
	if got := px[Point{2, 2}].Color; got != "#FF0000" {
		t.Fatalf("after erase (2,2) shows %q, want older #FF0000", got)
	}
	if s.EraseAt(9, 9) {
		t.Fatal("erase of an unpainted cell should be a no-op")
	}
	if s.Len() != 2 {
		t.Fatalf("len = %d, want 2", s.Len())
	}
}

func TestHistoryCapDropsOldest(t *testing.T) {
	s := NewSurface(1000)
	for i := 0; i < 1001; i++ {
		s.Paint(i%50, i/50, "#FFFFFF", 1)
	}
	got := s.Actions()
	if len(got) != 1000 {
		t.Fatalf("len = %d, want 1000", len(got))
	}
	if got[0].X == 0 && got[0].Y == 0 {
		t.Fatal("first appended action should have been evicted")
	}
	last := got[len(got)-1]
	if last.X != 1000%50 || last.Y != 1000/50 {
		t.Fatalf("newest action = %+v, want the 1001st", last)
	}
}

func TestActionsIsACopy(t *testing.T) {
	s := NewSurface(0)
	s.Paint(0, 0, "#FF0000", 1)
	a := s.Actions()
	a[0].Color = "#000000"
	if s.Actions()[0].Color != "#FF0000" {
		t.Fatal("mutating Actions() result changed the surface")
	}
}

func TestLoadReplacesContents(t *testing.T) {
	s := NewSurface(3)
	s.Paint(9, 9, "#FFFFFF", 1)
	s.Load([]Action{
		{X: 0, Y: 0, Color: "#000", Alpha: 1},
		{X: 1, Y: 0, Color: "#000", Alpha: 1},
		{X: 2, Y: 0, Color: "#000", Alpha: 1},
		{X: 3, Y: 0, Color: "#000", Alpha: 1},
	}, []Action{{X: 5, Y: 5, Color: "#fff", Alpha: 1}})

	if s.Len() != 3 {
		t.Fatalf("len = %d, want cap 3", s.Len())
	}
	if s.Actions()[0].X != 1 {
		t.Fatalf("oldest kept action = %+v, want x=1", s.Actions()[0])
	}
	if s.RedoLen() != 1 {
		t.Fatalf("redo len = %d, want 1", s.RedoLen())
	}
}

func TestCloneIsIndependent(t *testing.T) {
	s := NewSurface(0)
	s.Paint(0, 0, "#FF0000", 1)
	c := s.Clone()
	c.Paint(1, 1, "#00FF00", 1)
	if s.Len() != 1 || c.Len() != 2 {
		t.Fatalf("source len=%d clone len=%d", s.Len(), c.Len())
	}
}
