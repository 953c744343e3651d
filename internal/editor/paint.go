package editor

import (
	"time"

	"pixelpainter/internal/pixel"
	"pixelpainter/internal/ticker"
)

// Press starts a pointer gesture at cell (x,y). It reports whether the
// canvas changed.
func (s *Session) Press(x, y int, tool Tool) bool {
	if tool == ToolSetAxis {
		s.SetAxis(x, y)
		return true
	}
	s.drawing = true
	s.tool = tool
	s.lastCell = pixel.Point{X: x, Y: y}
	s.hasLast = true
	return s.apply(x, y)
}

// Drag continues the gesture. The cell handled last is skipped so that
// pointer jitter inside one cell does not stack duplicate actions.
func (s *Session) Drag(x, y int) bool {
	if !s.drawing {
		return false
	}
	p := pixel.Point{X: x, Y: y}
	if s.hasLast && s.lastCell == p {
		return false
	}
	s.lastCell = p
	s.hasLast = true
	return s.apply(x, y)
}

// Release ends the gesture.
func (s *Session) Release() {
	s.drawing = false
	s.hasLast = false
}

func (s *Session) apply(x, y int) bool {
	if s.tool == ToolErase {
		return s.Erase(x, y)
	}
	return s.Paint(x, y)
}

// Paint sets (x,y) and its symmetry reflections on the current layer to
// the current color. Cells outside the grid are ignored.
func (s *Session) Paint(x, y int) bool {
	if !s.InBounds(x, y) {
		return false
	}
	layer := s.tl.CurrentLayer()
	for _, p := range s.sym.Targets(x, y, s.width, s.height) {
		layer.Paint(p.X, p.Y, s.color, s.alpha)
	}
	s.rememberColor(s.color)
	return true
}

// Erase removes the newest action at (x,y) and at each reflection.
func (s *Session) Erase(x, y int) bool {
	if !s.InBounds(x, y) {
		return false
	}
	layer := s.tl.CurrentLayer()
	changed := false
	for _, p := range s.sym.Targets(x, y, s.width, s.height) {
		if layer.EraseAt(p.X, p.Y) {
			changed = true
		}
	}
	return changed
}

// Undo reverts the newest action of the current layer. Mirrored strokes
// come back one cell at a time.
func (s *Session) Undo() bool {
	return s.tl.CurrentLayer().Undo()
}

func (s *Session) Redo() bool {
	return s.tl.CurrentLayer().Redo()
}

// ClearLayer empties the current layer, history and redo included.
func (s *Session) ClearLayer() {
	s.tl.CurrentLayer().Clear()
}

// StartUndoRepeat undoes once, then keeps undoing every repeat interval
// until StopUndoRepeat. Calling it while already repeating does nothing.
func (s *Session) StartUndoRepeat() bool {
	if s.undoTask.Active() {
		return false
	}
	changed := s.Undo()
	s.undoTask = ticker.Start(s.clock, s.undoRepeat, func() bool {
		s.Undo()
		return true
	})
	return changed
}

func (s *Session) StopUndoRepeat() {
	s.undoTask.Cancel()
	s.undoTask = nil
}

func (s *Session) UndoRepeating() bool {
	return s.undoTask.Active()
}

// StartPlayback steps the frame cursor forward at the playback rate and
// stops on the last frame. Starting on the last frame rewinds to the first.
// It reports false when there is nothing to play.
func (s *Session) StartPlayback() bool {
	if s.playTask.Active() {
		return true
	}
	if s.tl.Len() < 2 {
		return false
	}
	if s.tl.FrameIndex() == s.tl.Len()-1 {
		_ = s.tl.SelectFrame(0)
	}
	s.log.Debug("playback started", "fps", s.fps, "frames", s.tl.Len())
	s.playTask = ticker.Start(s.clock, time.Second/time.Duration(s.fps), func() bool {
		if !s.tl.NextFrame() {
			return false
		}
		return s.tl.FrameIndex() < s.tl.Len()-1
	})
	return true
}

func (s *Session) StopPlayback() {
	s.playTask.Cancel()
	s.playTask = nil
}

func (s *Session) Playing() bool {
	return s.playTask.Active()
}

// TogglePlayback starts or stops playback and reports whether it is now
// playing.
func (s *Session) TogglePlayback() bool {
	if s.Playing() {
		s.StopPlayback()
		return false
	}
	return s.StartPlayback()
}
