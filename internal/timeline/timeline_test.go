package timeline

import (
	"errors"
	"testing"
)

func TestNewTimelineHasOneFrameOneLayer(t *testing.T) {
	tl := New(0)
	if tl.Len() != 1 {
		t.Fatalf("frames = %d, want 1", tl.Len())
	}
	f := tl.CurrentFrame()
	if f.Name != "Frame 1" || len(f.Layers) != 1 || f.Layers[0].Name != "Layer 1" {
		t.Fatalf("unexpected initial frame %q with %d layers", f.Name, len(f.Layers))
	}
	if !f.Layers[0].Visible {
		t.Fatal("new layers should be visible")
	}
}

func TestAddFrameAppendsAndSelects(t *testing.T) {
	tl := New(0)
	tl.AddLayer()
	tl.CurrentLayer().Paint(0, 0, "#FFF", 1)

	i := tl.AddFrame()
	if i != 1 || tl.FrameIndex() != 1 || tl.LayerIndex() != 0 {
		t.Fatalf("cursor = (%d,%d), want (1,0)", tl.FrameIndex(), tl.LayerIndex())
	}
	f := tl.CurrentFrame()
	if f.Name != "Frame 2" || len(f.Layers) != 1 || f.Layers[0].Name != "Layer 1" {
		t.Fatalf("new frame = %q with %d layers", f.Name, len(f.Layers))
	}
	if f.Layers[0].Len() != 0 {
		t.Fatal("new frame layer should be empty")
	}
}

func TestSelectDoesNotMutateSurfaces(t *testing.T) {
	tl := New(0)
	tl.CurrentLayer().Paint(1, 1, "#F00", 1)
	tl.AddFrame()
	tl.CurrentLayer().Paint(2, 2, "#0F0", 1)

	if err := tl.SelectFrame(0); err != nil {
		t.Fatalf("select frame: %v", err)
	}
	if tl.ActionCount() != 2 {
		t.Fatalf("action count = %d, want 2", tl.ActionCount())
	}
	if got := tl.CurrentLayer().Actions()[0].Color; got != "#F00" {
		t.Fatalf("frame 0 layer shows %q", got)
	}
}

func TestSelectFrameClampsLayerCursor(t *testing.T) {
	tl := New(0)
	tl.AddLayer()
	tl.AddLayer()
	if tl.LayerIndex() != 2 {
		t.Fatalf("layer cursor = %d, want 2", tl.LayerIndex())
	}
	tl.AddFrame()
	if err := tl.SelectFrame(0); err != nil {
		t.Fatal(err)
	}
	if err := tl.SelectLayer(2); err != nil {
		t.Fatal(err)
	}
	if err := tl.SelectFrame(1); err != nil {
		t.Fatal(err)
	}
	if tl.LayerIndex() != 0 {
		t.Fatalf("layer cursor = %d, want clamped 0", tl.LayerIndex())
	}
}

func TestSelectOutOfRange(t *testing.T) {
	tl := New(0)
	if err := tl.SelectFrame(3); !errors.Is(err, ErrOutOfRange) {
		t.Fatalf("SelectFrame(3) err = %v", err)
	}
	if err := tl.SelectLayer(-1); !errors.Is(err, ErrOutOfRange) {
		t.Fatalf("SelectLayer(-1) err = %v", err)
	}
}

func TestRemoveKeepsInvariants(t *testing.T) {
	tl := New(0)
	if err := tl.RemoveLayer(0); !errors.Is(err, ErrLastLayer) {
		t.Fatalf("removing the only layer: err = %v", err)
	}
	if err := tl.RemoveFrame(0); !errors.Is(err, ErrLastFrame) {
		t.Fatalf("removing the only frame: err = %v", err)
	}

	tl.AddFrame()
	tl.AddFrame()
	if err := tl.RemoveFrame(2); err != nil {
		t.Fatal(err)
	}
	if tl.FrameIndex() != 1 {
		t.Fatalf("frame cursor = %d, want 1", tl.FrameIndex())
	}

	tl.AddLayer()
	if err := tl.RemoveLayer(1); err != nil {
		t.Fatal(err)
	}
	if tl.LayerIndex() != 0 {
		t.Fatalf("layer cursor = %d, want 0", tl.LayerIndex())
	}
}

func TestMoveLayerChangesZOrder(t *testing.T) {
	tl := New(0)
	tl.AddLayer()
	tl.AddLayer()
	if err := tl.SelectLayer(0); err != nil {
		t.Fatal(err)
	}
	if err := tl.MoveLayer(5); err != nil {
		t.Fatal(err)
	}
	names := []string{}
	for _, l := range tl.CurrentFrame().Layers {
		names = append(names, l.Name)
	}
	if names[0] != "Layer 2" || names[1] != "Layer 3" || names[2] != "Layer 1" {
		t.Fatalf("order = %v", names)
	}
	if tl.LayerIndex() != 2 {
		t.Fatalf("layer cursor = %d, want 2", tl.LayerIndex())
	}
}

func TestToggleVisibleAndVisibleLayers(t *testing.T) {
	f := NewFrame("f", 0)
	f.AddLayer()
	if err := f.ToggleVisible(0); err != nil {
		t.Fatal(err)
	}
	vis := f.VisibleLayers()
	if len(vis) != 1 || vis[0].Name != "Layer 2" {
		t.Fatalf("visible layers = %d", len(vis))
	}
}

func TestDuplicateFrameCopiesHistory(t *testing.T) {
	tl := New(0)
	tl.CurrentLayer().Paint(3, 3, "#ABC", 1)
	tl.DuplicateFrame()
	if tl.Len() != 2 || tl.FrameIndex() != 1 {
		t.Fatalf("len=%d cursor=%d", tl.Len(), tl.FrameIndex())
	}
	tl.CurrentLayer().Paint(4, 4, "#ABC", 1)
	if tl.Frames()[0].Layers[0].Len() != 1 {
		t.Fatal("duplicate shares history with its source")
	}
}

func TestNextPrevFrame(t *testing.T) {
	tl := New(0)
	tl.AddFrame()
	if tl.NextFrame() {
		t.Fatal("NextFrame at the end should report false")
	}
	if !tl.PrevFrame() || tl.FrameIndex() != 0 {
		t.Fatal("PrevFrame should move to frame 0")
	}
	if tl.PrevFrame() {
		t.Fatal("PrevFrame at the start should report false")
	}
}

func TestClearAll(t *testing.T) {
	tl := New(0)
	tl.CurrentLayer().Paint(0, 0, "#FFF", 1)
	tl.AddFrame()
	tl.CurrentLayer().Paint(0, 0, "#FFF", 1)
	tl.ClearAll()
	if tl.ActionCount() != 0 || tl.Len() != 2 {
		t.Fatalf("after ClearAll: actions=%d frames=%d", tl.ActionCount(), tl.Len())
	}
}

func TestFromFramesRejectsEmpty(t *testing.T) {
	if _, err := FromFrames(nil, 0); !errors.Is(err, ErrLastFrame) {
		t.Fatalf("err = %v", err)
	}
	if _, err := FromFrames([]*Frame{{Name: "x"}}, 0); !errors.Is(err, ErrLastLayer) {
		t.Fatalf("err = %v", err)
	}
}
