package editor

import (
	"bytes"
	"errors"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"pixelpainter/internal/pixel"
	"pixelpainter/internal/project"
	"pixelpainter/internal/render"
	"pixelpainter/internal/ticker"
)

func newTestSession(t *testing.T) (*Session, *ticker.Fake) {
	t.Helper()
	clock := ticker.NewFake()
	opts := DefaultOptions()
	opts.Clock = clock
	return New(opts), clock
}

func points(actions []pixel.Action) []pixel.Point {
	out := make([]pixel.Point, len(actions))
	for i, a := range actions {
		out[i] = a.At()
	}
	return out
}

func TestSymmetricPaint(t *testing.T) {
	s, _ := newTestSession(t)
	s.ToggleHorizontal()
	s.ToggleVertical()
	s.SetAxis(8, 8)
	s.SetColor("#FF0000")
	if !s.Paint(2, 3) {
		t.Fatal("paint reported no change")
	}
	got := points(s.Timeline().CurrentLayer().Actions())
	want := []pixel.Point{{X: 2, Y: 3}, {X: 2, Y: 13}, {X: 14, Y: 3}, {X: 14, Y: 13}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("painted %v, want %v", got, want)
	}
}

func TestSymmetricEraseAndPartialUndo(t *testing.T) {
	s, _ := newTestSession(t)
	s.ToggleVertical()
	s.Paint(2, 2)
	layer := s.Timeline().CurrentLayer()
	if layer.Len() != 2 {
		t.Fatalf("actions = %d, want 2", layer.Len())
	}
	if !s.Undo() || layer.Len() != 1 {
		t.Fatalf("undo should remove one mirrored cell, have %d", layer.Len())
	}
	s.Redo()
	if !s.Erase(2, 2) || layer.Len() != 0 {
		t.Fatalf("erase left %d actions", layer.Len())
	}
	if s.Erase(2, 2) {
		t.Fatal("erasing empty cells should report no change")
	}
}

func TestPaintOutsideGridIgnored(t *testing.T) {
	s, _ := newTestSession(t)
	if s.Paint(-1, 0) || s.Paint(16, 0) || s.Erase(0, 99) {
		t.Fatal("out-of-grid edits should be ignored")
	}
	if s.Timeline().ActionCount() != 0 {
		t.Fatal("no actions expected")
	}
}

func TestDragSkipsLastCell(t *testing.T) {
	s, _ := newTestSession(t)
	s.Press(1, 1, ToolPaint)
	if s.Drag(1, 1) {
		t.Fatal("drag within the same cell should not paint")
	}
	s.Drag(2, 1)
	s.Drag(2, 1)
	s.Drag(1, 1)
	s.Release()
	if s.Drag(5, 5) {
		t.Fatal("drag after release should do nothing")
	}
	if n := s.Timeline().CurrentLayer().Len(); n != 3 {
		t.Fatalf("actions = %d, want 3", n)
	}
}

func TestPressErase(t *testing.T) {
	s, _ := newTestSession(t)
	s.Paint(4, 4)
	s.Paint(5, 4)
	s.Press(4, 4, ToolErase)
	s.Drag(5, 4)
	s.Release()
	if n := s.Timeline().CurrentLayer().Len(); n != 0 {
		t.Fatalf("actions = %d, want 0", n)
	}
}

func TestPressSetAxis(t *testing.T) {
	s, _ := newTestSession(t)
	s.ToggleHorizontal()
	s.Press(3, 5, ToolSetAxis)
	sym := s.Symmetry()
	if sym.HorizontalAxis != 5 || sym.VerticalAxis != 8 {
		t.Fatalf("axes = %d,%d", sym.HorizontalAxis, sym.VerticalAxis)
	}
	if s.Drawing() || s.Timeline().ActionCount() != 0 {
		t.Fatal("set-axis must not paint")
	}
}

func TestColorHistory(t *testing.T) {
	s, _ := newTestSession(t)
	for _, c := range []string{"#f00", "#0F0", "#FF0000", "#00F"} {
		s.SetColor(c)
		s.Paint(0, 0)
	}
	want := []string{"#000000", "#00FF00", "#FF0000", "#0000FF"}
	if got := s.ColorHistory(); !reflect.DeepEqual(got, want) {
		t.Fatalf("history = %v, want %v", got, want)
	}
	for i := 0; i < 20; i++ {
		s.SetColor(pixel.NormalizeHex(string(rune('0'+i%10)) + "00"))
		s.Paint(0, 0)
	}
	if n := len(s.ColorHistory()); n != MaxColorHistory {
		t.Fatalf("history length = %d", n)
	}
}

func TestUndoRepeat(t *testing.T) {
	s, clock := newTestSession(t)
	for i := 0; i < 10; i++ {
		s.Paint(i, 0)
	}
	layer := s.Timeline().CurrentLayer()

	if !s.StartUndoRepeat() {
		t.Fatal("first undo should change the canvas")
	}
	if layer.Len() != 9 {
		t.Fatalf("after press: %d actions", layer.Len())
	}
	clock.Advance(80 * time.Millisecond * 3)
	if layer.Len() != 6 {
		t.Fatalf("after three intervals: %d actions", layer.Len())
	}
	if s.StartUndoRepeat() {
		t.Fatal("starting twice should be a no-op")
	}
	s.StopUndoRepeat()
	clock.Advance(time.Second)
	if layer.Len() != 6 || s.UndoRepeating() {
		t.Fatalf("repeat continued after stop: %d actions", layer.Len())
	}
}

func TestPlaybackStopsAtLastFrame(t *testing.T) {
	s, clock := newTestSession(t)
	tl := s.Timeline()
	tl.AddFrame()
	tl.AddFrame()
	if tl.FrameIndex() != 2 {
		t.Fatal("expected cursor on the last frame")
	}
	if !s.StartPlayback() {
		t.Fatal("playback should start")
	}
	if tl.FrameIndex() != 0 {
		t.Fatalf("playback should rewind, at %d", tl.FrameIndex())
	}
	clock.Advance(125 * time.Millisecond)
	if tl.FrameIndex() != 1 {
		t.Fatalf("after one tick at frame %d", tl.FrameIndex())
	}
	clock.Advance(time.Second)
	if tl.FrameIndex() != 2 || s.Playing() {
		t.Fatalf("frame %d playing %v", tl.FrameIndex(), s.Playing())
	}
}

func TestPlaybackNeedsTwoFrames(t *testing.T) {
	s, _ := newTestSession(t)
	if s.StartPlayback() || s.Playing() {
		t.Fatal("a single frame cannot play")
	}
}

func TestTogglePlayback(t *testing.T) {
	s, clock := newTestSession(t)
	s.Timeline().AddFrame()
	s.Timeline().AddFrame()
	_ = s.Timeline().SelectFrame(0)
	if !s.TogglePlayback() {
		t.Fatal("toggle should start")
	}
	if s.TogglePlayback() {
		t.Fatal("toggle should stop")
	}
	clock.Advance(time.Second)
	if s.Timeline().FrameIndex() != 0 {
		t.Fatal("stopped playback advanced")
	}
}

func TestResizeClearsAndClamps(t *testing.T) {
	s, _ := newTestSession(t)
	s.ToggleHorizontal()
	s.ToggleVertical()
	s.SetAxis(15, 15)
	s.Paint(1, 1)
	s.Timeline().AddFrame()
	s.Paint(2, 2)

	if err := s.Resize(8, 4); err != nil {
		t.Fatal(err)
	}
	if s.Timeline().ActionCount() != 0 || s.Timeline().Len() != 2 {
		t.Fatal("resize should clear surfaces and keep frames")
	}
	sym := s.Symmetry()
	if sym.VerticalAxis != 7 || sym.HorizontalAxis != 3 {
		t.Fatalf("axes = %d,%d", sym.VerticalAxis, sym.HorizontalAxis)
	}
	if err := s.Resize(0, 4); !errors.Is(err, ErrInvalidSize) {
		t.Fatalf("err = %v", err)
	}
	if s.Width() != 8 || s.Height() != 4 {
		t.Fatal("failed resize changed the grid")
	}
}

func TestImportIsAllOrNothing(t *testing.T) {
	s, _ := newTestSession(t)
	s.Paint(3, 3)
	before, err := s.ExportProject()
	if err != nil {
		t.Fatal(err)
	}
	if err := s.ImportProject([]byte(`{"format":"PixelPainterPP v2","frames":[]}`)); !errors.Is(err, project.ErrMalformedProject) {
		t.Fatalf("err = %v", err)
	}
	if err := s.ImportProject([]byte(`{"format":"PixelPainterPP v2","width":9999,"height":2,"frames":[{"name":"a","layers":[{"name":"b"}]}]}`)); !errors.Is(err, project.ErrMalformedProject) {
		t.Fatalf("oversized grid err = %v", err)
	}
	after, err := s.ExportProject()
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(before, after) {
		t.Fatal("failed import changed the session")
	}
}

func TestImportAdoptsGeometry(t *testing.T) {
	src, _ := newTestSession(t)
	if err := src.Resize(4, 6); err != nil {
		t.Fatal(err)
	}
	src.Paint(3, 5)
	data, err := src.ExportProject()
	if err != nil {
		t.Fatal(err)
	}

	dst, _ := newTestSession(t)
	if err := dst.ImportProject(data); err != nil {
		t.Fatal(err)
	}
	if dst.Width() != 4 || dst.Height() != 6 {
		t.Fatalf("grid = %dx%d", dst.Width(), dst.Height())
	}
	if dst.Timeline().ActionCount() != 1 {
		t.Fatal("imported history missing")
	}
}

func TestImportV1KeepsGrid(t *testing.T) {
	s, _ := newTestSession(t)
	err := s.ImportProject([]byte(`{"format":"PixelPainterPP v1","pixels":[{"x":1,"y":1,"color":"#00FF00"}]}`))
	if err != nil {
		t.Fatal(err)
	}
	if s.Width() != 16 || s.Timeline().Len() != 1 || s.Timeline().ActionCount() != 1 {
		t.Fatal("v1 import should yield one frame with one action on the same grid")
	}
}

func TestExportImageFullRedSquare(t *testing.T) {
	opts := DefaultOptions()
	opts.Width, opts.Height = 1, 1
	opts.Clock = ticker.NewFake()
	s := New(opts)
	s.SetColor("#FF0000")
	s.Paint(0, 0)

	data, err := s.ExportImage("out.png", 16, 16)
	if err != nil {
		t.Fatal(err)
	}
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatal(err)
	}
	if img.Bounds() != image.Rect(0, 0, 16, 16) {
		t.Fatalf("bounds = %v", img.Bounds())
	}
	for y := 0; y < 16; y++ {
		for x := 0; x < 16; x++ {
			r, g, b, a := img.At(x, y).RGBA()
			if r>>8 != 255 || g != 0 || b != 0 || a>>8 != 255 {
				t.Fatalf("pixel (%d,%d) = %d,%d,%d,%d", x, y, r>>8, g>>8, b>>8, a>>8)
			}
		}
	}
}

func TestSnapshotIsIndependentOfLaterEdits(t *testing.T) {
	s, _ := newTestSession(t)
	snap := s.SnapshotImage(filepath.Join(t.TempDir(), "a.jpg"), 32, 32)
	if snap.Format != render.FormatJPEG {
		t.Fatalf("format = %v", snap.Format)
	}
	s.Paint(0, 0)
	if snap.Image.RGBAAt(0, 0).A != 0 {
		t.Fatal("snapshot changed after a later paint")
	}
	if err := snap.Write(); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(snap.Path); err != nil {
		t.Fatal(err)
	}
}

func TestExportSpriteSheetDefaultsColumnsToFPS(t *testing.T) {
	s, _ := newTestSession(t)
	s.Timeline().AddFrame()
	s.Timeline().AddFrame()
	data, err := s.ExportSpriteSheet(16, 16, 0)
	if err != nil {
		t.Fatal(err)
	}
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatal(err)
	}
	if img.Bounds().Dx() != 48 || img.Bounds().Dy() != 16 {
		t.Fatalf("sheet bounds = %v", img.Bounds())
	}
}

func TestExportFrameBundle(t *testing.T) {
	s, _ := newTestSession(t)
	s.Timeline().AddFrame()
	files, err := s.ExportFrameBundle("walk", 8, 8)
	if err != nil {
		t.Fatal(err)
	}
	if len(files) != 3 || files[0].Name != "walk.json" {
		t.Fatalf("files = %d first = %s", len(files), files[0].Name)
	}
	b, err := project.DecodeBundle(files[0].Data)
	if err != nil {
		t.Fatal(err)
	}
	if b.FrameCount != 2 || b.Frames[1].Name != "Frame 2" {
		t.Fatalf("manifest = %+v", b)
	}
}

func TestRenderUsesOnionSkin(t *testing.T) {
	s, _ := newTestSession(t)
	s.Paint(0, 0)
	s.Timeline().AddFrame()
	if s.Cells().RGBAAt(0, 0).A != 0 {
		t.Fatal("onion skin is off by default")
	}
	s.ToggleOnion()
	if a := s.Cells().RGBAAt(0, 0).A; a < 49 || a > 53 {
		t.Fatalf("ghost alpha = %d", a)
	}
	if s.Render().Bounds().Dx() != 16*16 {
		t.Fatal("render should use the pixel size")
	}
	if s.Snapshot("Frame 2").RGBAAt(200, 10).A != 255 {
		t.Fatal("display snapshot should be opaque")
	}
}
