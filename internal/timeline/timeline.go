package timeline

import "fmt"

// Timeline is the ordered frame sequence plus the editing cursor. It always
// holds at least one frame and the cursor always points at an existing
// frame and layer.
type Timeline struct {
	frames     []*Frame
	frame      int
	layer      int
	historyCap int
}

// New returns a timeline with one empty frame.
func New(historyCap int) *Timeline {
	return &Timeline{
		frames:     []*Frame{NewFrame(frameName(1), historyCap)},
		historyCap: historyCap,
	}
}

// FromFrames wraps decoded frames, cursor on the first frame and layer.
func FromFrames(frames []*Frame, historyCap int) (*Timeline, error) {
	if len(frames) == 0 {
		return nil, ErrLastFrame
	}
	for i, f := range frames {
		if len(f.Layers) == 0 {
			return nil, fmt.Errorf("frame %d: %w", i, ErrLastLayer)
		}
	}
	return &Timeline{frames: frames, historyCap: historyCap}, nil
}

func (t *Timeline) HistoryCap() int {
	return t.historyCap
}

// Frames returns the frame slice. Callers must not reorder it.
func (t *Timeline) Frames() []*Frame {
	return t.frames
}

func (t *Timeline) Len() int {
	return len(t.frames)
}

func (t *Timeline) FrameIndex() int {
	return t.frame
}

func (t *Timeline) LayerIndex() int {
	return t.layer
}

func (t *Timeline) CurrentFrame() *Frame {
	return t.frames[t.frame]
}

func (t *Timeline) CurrentLayer() *Layer {
	return t.frames[t.frame].Layers[t.layer]
}

// AddFrame appends a frame with one empty layer and moves the cursor to it.
func (t *Timeline) AddFrame() int {
	t.frames = append(t.frames, NewFrame(frameName(len(t.frames)+1), t.historyCap))
	t.frame = len(t.frames) - 1
	t.layer = 0
	return t.frame
}

// DuplicateFrame inserts a copy of the current frame after it and selects
// the copy.
func (t *Timeline) DuplicateFrame() int {
	src := t.CurrentFrame()
	dup := src.Clone(src.Name + " copy")
	i := t.frame + 1
	t.frames = append(t.frames[:i], append([]*Frame{dup}, t.frames[i:]...)...)
	t.frame = i
	t.clampLayer()
	return t.frame
}

// RemoveFrame deletes frame i unless it is the only one left.
func (t *Timeline) RemoveFrame(i int) error {
	if i < 0 || i >= len(t.frames) {
		return fmt.Errorf("frame %d: %w", i, ErrOutOfRange)
	}
	if len(t.frames) == 1 {
		return ErrLastFrame
	}
	t.frames = append(t.frames[:i], t.frames[i+1:]...)
	if t.frame > i || t.frame >= len(t.frames) {
		t.frame--
	}
	t.clampLayer()
	return nil
}

// SelectFrame moves the cursor. The layer cursor is kept when the target
// frame has that many layers.
func (t *Timeline) SelectFrame(i int) error {
	if i < 0 || i >= len(t.frames) {
		return fmt.Errorf("frame %d: %w", i, ErrOutOfRange)
	}
	t.frame = i
	t.clampLayer()
	return nil
}

// NextFrame advances the cursor; it reports false at the last frame.
func (t *Timeline) NextFrame() bool {
	if t.frame+1 >= len(t.frames) {
		return false
	}
	t.frame++
	t.clampLayer()
	return true
}

// PrevFrame moves the cursor back; it reports false at the first frame.
func (t *Timeline) PrevFrame() bool {
	if t.frame == 0 {
		return false
	}
	t.frame--
	t.clampLayer()
	return true
}

// AddLayer appends a layer to the current frame and selects it.
func (t *Timeline) AddLayer() int {
	t.layer = t.CurrentFrame().AddLayer()
	return t.layer
}

func (t *Timeline) SelectLayer(i int) error {
	if _, err := t.CurrentFrame().Layer(i); err != nil {
		return err
	}
	t.layer = i
	return nil
}

// RemoveLayer deletes layer i of the current frame.
func (t *Timeline) RemoveLayer(i int) error {
	if err := t.CurrentFrame().RemoveLayer(i); err != nil {
		return err
	}
	if t.layer > i {
		t.layer--
	}
	t.clampLayer()
	return nil
}

// MoveLayer shifts the current layer in the z-order, keeping it selected.
func (t *Timeline) MoveLayer(delta int) error {
	j, err := t.CurrentFrame().MoveLayer(t.layer, delta)
	if err != nil {
		return err
	}
	t.layer = j
	return nil
}

// ClearAll empties every surface, keeping frames and layers.
func (t *Timeline) ClearAll() {
	for _, f := range t.frames {
		f.clearAll()
	}
}

// ActionCount sums the history length of every layer.
func (t *Timeline) ActionCount() int {
	n := 0
	for _, f := range t.frames {
		for _, l := range f.Layers {
			n += l.Len()
		}
	}
	return n
}

func (t *Timeline) clampLayer() {
	if n := len(t.frames[t.frame].Layers); t.layer >= n {
		t.layer = n - 1
	}
	if t.layer < 0 {
		t.layer = 0
	}
}
