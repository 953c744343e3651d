package timeline

import (
	"errors"
	"fmt"

	"pixelpainter/internal/pixel"
)

var (
	ErrLastLayer  = errors.New("a frame must keep at least one layer")
	ErrLastFrame  = errors.New("a timeline must keep at least one frame")
	ErrOutOfRange = errors.New("index out of range")
)

// Layer is a named, independently undoable paint surface.
type Layer struct {
	Name    string
	Visible bool
	*pixel.Surface
}

func NewLayer(name string, historyCap int) *Layer {
	return &Layer{Name: name, Visible: true, Surface: pixel.NewSurface(historyCap)}
}

func (l *Layer) Clone() *Layer {
	return &Layer{Name: l.Name, Visible: l.Visible, Surface: l.Surface.Clone()}
}

// Frame is one animation timestep. Layers are ordered bottom to top.
type Frame struct {
	Name       string
	Layers     []*Layer
	historyCap int
}

// NewFrame returns a frame holding a single empty "Layer 1".
func NewFrame(name string, historyCap int) *Frame {
	f := &Frame{Name: name, historyCap: historyCap}
	f.Layers = []*Layer{NewLayer(layerName(1), historyCap)}
	return f
}

// NewFrameWithLayers builds a frame from decoded layers. At least one layer
// is required.
func NewFrameWithLayers(name string, historyCap int, layers []*Layer) (*Frame, error) {
	if len(layers) == 0 {
		return nil, ErrLastLayer
	}
	return &Frame{Name: name, Layers: layers, historyCap: historyCap}, nil
}

// AddLayer appends an empty layer on top and returns its index.
func (f *Frame) AddLayer() int {
	f.Layers = append(f.Layers, NewLayer(layerName(len(f.Layers)+1), f.historyCap))
	return len(f.Layers) - 1
}

func (f *Frame) Layer(i int) (*Layer, error) {
	if i < 0 || i >= len(f.Layers) {
		return nil, fmt.Errorf("layer %d: %w", i, ErrOutOfRange)
	}
	return f.Layers[i], nil
}

func (f *Frame) ToggleVisible(i int) error {
	l, err := f.Layer(i)
	if err != nil {
		return err
	}
	l.Visible = !l.Visible
	return nil
}

func (f *Frame) ClearLayer(i int) error {
	l, err := f.Layer(i)
	if err != nil {
		return err
	}
	l.Clear()
	return nil
}

// RemoveLayer deletes layer i unless it is the only one left.
func (f *Frame) RemoveLayer(i int) error {
	if _, err := f.Layer(i); err != nil {
		return err
	}
	if len(f.Layers) == 1 {
		return ErrLastLayer
	}
	f.Layers = append(f.Layers[:i], f.Layers[i+1:]...)
	return nil
}

// MoveLayer shifts layer i by delta positions in the z-order and returns
// its new index. Moves past either end stop at the end.
func (f *Frame) MoveLayer(i, delta int) (int, error) {
	if _, err := f.Layer(i); err != nil {
		return i, err
	}
	j := i + delta
	if j < 0 {
		j = 0
	}
	if j >= len(f.Layers) {
		j = len(f.Layers) - 1
	}
	l := f.Layers[i]
	f.Layers = append(f.Layers[:i], f.Layers[i+1:]...)
	f.Layers = append(f.Layers[:j], append([]*Layer{l}, f.Layers[j:]...)...)
	return j, nil
}

// VisibleLayers returns the visible layers bottom to top.
func (f *Frame) VisibleLayers() []*Layer {
	out := make([]*Layer, 0, len(f.Layers))
	for _, l := range f.Layers {
		if l.Visible {
			out = append(out, l)
		}
	}
	return out
}

func (f *Frame) Clone(name string) *Frame {
	c := &Frame{Name: name, historyCap: f.historyCap}
	for _, l := range f.Layers {
		c.Layers = append(c.Layers, l.Clone())
	}
	return c
}

func (f *Frame) clearAll() {
	for _, l := range f.Layers {
		l.Clear()
	}
}

func layerName(n int) string {
	return fmt.Sprintf("Layer %d", n)
}

func frameName(n int) string {
	return fmt.Sprintf("Frame %d", n)
}
