package pixel

import "image/color"

// DefaultHistoryCap bounds how many actions a surface keeps.
const DefaultHistoryCap = 1000

// Point is a grid cell coordinate.
type Point struct {
	X, Y int
}

// Action records that cell (X,Y) was set to Color at opacity Alpha.
type Action struct {
	X     int     `json:"x"`
	Y     int     `json:"y"`
	Color string  `json:"color"`
	Alpha float64 `json:"alpha"`
}

func (a Action) At() Point {
	return Point{X: a.X, Y: a.Y}
}

// RGBA decodes the action's color with its opacity applied.
func (a Action) RGBA() color.NRGBA {
	return ToRGBA(a.Color, a.Alpha)
}

// Surface is one independently undoable grid of paint history (a layer's
// contents). Later actions at the same cell win when the surface is
// replayed oldest to newest.
type Surface struct {
	actions []Action
	redo    []Action
	limit   int
}

// NewSurface returns an empty surface keeping at most limit actions.
// A non-positive limit selects DefaultHistoryCap.
func NewSurface(limit int) *Surface {
	if limit <= 0 {
		limit = DefaultHistoryCap
	}
	return &Surface{
		actions: []Action{},
		redo:    []Action{},
		limit:   limit,
	}
}

func (s *Surface) Limit() int {
	return s.limit
}

// Paint appends an action and invalidates redo history. When the cap is
// exceeded the oldest actions are dropped first.
func (s *Surface) Paint(x, y int, hex string, alpha float64) {
	s.actions = append(s.actions, Action{X: x, Y: y, Color: hex, Alpha: ClampAlpha(alpha)})
	s.redo = s.redo[:0]
	s.trim()
}

// EraseAt removes the most recent action at (x,y), leaving older history at
// that cell in place. It reports whether anything was removed. Erase is not
// recorded anywhere, so it cannot be undone.
func (s *Surface) EraseAt(x, y int) bool {
	for i := len(s.actions) - 1; i >= 0; i-- {
		if s.actions[i].X == x && s.actions[i].Y == y {
			s.actions = append(s.actions[:i], s.actions[i+1:]...)
			s.redo = s.redo[:0]
			return true
		}
	}
	return false
}

// Undo moves the newest action onto the redo stack. It reports whether the
// surface changed and needs a redraw.
func (s *Surface) Undo() bool {
	if len(s.actions) == 0 {
		return false
	}
	last := len(s.actions) - 1
	s.redo = append(s.redo, s.actions[last])
	s.actions = s.actions[:last]
	return true
}

// Redo restores the most recently undone action.
func (s *Surface) Redo() bool {
	if len(s.redo) == 0 {
		return false
	}
	last := len(s.redo) - 1
	s.actions = append(s.actions, s.redo[last])
	s.redo = s.redo[:last]
	s.trim()
	return true
}

func (s *Surface) Clear() {
	s.actions = []Action{}
	s.redo = []Action{}
}

func (s *Surface) Len() int {
	return len(s.actions)
}

func (s *Surface) RedoLen() int {
	return len(s.redo)
}

// Actions returns a copy of the history, oldest first.
func (s *Surface) Actions() []Action {
	out := make([]Action, len(s.actions))
	copy(out, s.actions)
	return out
}

// RedoActions returns a copy of the redo stack, bottom first.
func (s *Surface) RedoActions() []Action {
	out := make([]Action, len(s.redo))
	copy(out, s.redo)
	return out
}

// Load replaces the surface contents. redo may be nil.
func (s *Surface) Load(actions, redo []Action) {
	s.actions = make([]Action, len(actions))
	copy(s.actions, actions)
	s.redo = make([]Action, len(redo))
	copy(s.redo, redo)
	s.trim()
}

// Pixels replays the history and returns the visible action per cell.
func (s *Surface) Pixels() map[Point]Action {
	out := make(map[Point]Action, len(s.actions))
	for _, a := range s.actions {
		out[a.At()] = a
	}
	return out
}

// Clone returns an independent copy including redo history.
func (s *Surface) Clone() *Surface {
	c := NewSurface(s.limit)
	c.Load(s.actions, s.redo)
	return c
}

func (s *Surface) trim() {
	if over := len(s.actions) - s.limit; over > 0 {
		s.actions = append([]Action(nil), s.actions[over:]...)
	}
}
