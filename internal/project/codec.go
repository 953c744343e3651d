package project

import (
	"encoding/json"
	"errors"
	"fmt"

	"pixelpainter/internal/pixel"
	"pixelpainter/internal/timeline"
)

const (
	FormatV1 = "PixelPainterPP v1"
	FormatV2 = "PixelPainterPP v2"
)

// ErrMalformedProject is returned for unparseable or unrecognized project
// files. Decoding never touches existing editor state.
var ErrMalformedProject = errors.New("malformed project file")

// Geometry is the grid size recorded in v2 files. Zero when absent.
type Geometry struct {
	Width  int
	Height int
}

func (g Geometry) Known() bool {
	return g.Width > 0 && g.Height > 0
}

// Project is a decoded project file.
type Project struct {
	Format   string
	Geometry Geometry
	Timeline *timeline.Timeline
}

type wireAction struct {
	X     int      `json:"x"`
	Y     int      `json:"y"`
	Color string   `json:"color"`
	Alpha *float64 `json:"alpha,omitempty"`
}

type wireLayer struct {
	Name      string       `json:"name"`
	Visible   *bool        `json:"visible,omitempty"`
	History   []wireAction `json:"history"`
	RedoStack []wireAction `json:"redoStack"`
}

type wireFrame struct {
	Name   string      `json:"name"`
	Layers []wireLayer `json:"layers"`
}

type fileV2 struct {
	Format string      `json:"format"`
	Width  int         `json:"width,omitempty"`
	Height int         `json:"height,omitempty"`
	Frames []wireFrame `json:"frames"`
}

type fileV1 struct {
	Format string       `json:"format"`
	Pixels []wireAction `json:"pixels"`
}

// Encode writes tl as a v2 project, indented with two spaces. geo is
// recorded when known.
func Encode(tl *timeline.Timeline, geo Geometry) ([]byte, error) {
	doc := fileV2{Format: FormatV2, Frames: make([]wireFrame, 0, tl.Len())}
	if geo.Known() {
		doc.Width, doc.Height = geo.Width, geo.Height
	}
	for _, f := range tl.Frames() {
		wf := wireFrame{Name: f.Name, Layers: make([]wireLayer, 0, len(f.Layers))}
		for _, l := range f.Layers {
			visible := l.Visible
			wf.Layers = append(wf.Layers, wireLayer{
				Name:      l.Name,
				Visible:   &visible,
				History:   toWire(l.Actions(), true),
				RedoStack: toWire(l.RedoActions(), true),
			})
		}
		doc.Frames = append(doc.Frames, wf)
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode project: %w", err)
	}
	return data, nil
}

// EncodeV1 writes a single surface in the legacy format. Alpha is only
// written when it is not fully opaque.
func EncodeV1(s *pixel.Surface) ([]byte, error) {
	doc := fileV1{Format: FormatV1, Pixels: toWire(s.Actions(), false)}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode v1 project: %w", err)
	}
	return data, nil
}

// Decode parses a v1 or v2 project. Surfaces get historyCap; longer
// histories keep their newest actions.
func Decode(data []byte, historyCap int) (*Project, error) {
	var head struct {
		Format string `json:"format"`
	}
	if err := json.Unmarshal(data, &head); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedProject, err)
	}
	switch head.Format {
	case FormatV1:
		return decodeV1(data, historyCap)
	case FormatV2:
		return decodeV2(data, historyCap)
	case "":
		return nil, fmt.Errorf("%w: missing format", ErrMalformedProject)
	default:
		return nil, fmt.Errorf("%w: unknown format %q", ErrMalformedProject, head.Format)
	}
}

func decodeV1(data []byte, historyCap int) (*Project, error) {
	var doc fileV1
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedProject, err)
	}
	if doc.Pixels == nil {
		return nil, fmt.Errorf("%w: pixels must be an array", ErrMalformedProject)
	}
	actions, err := fromWire(doc.Pixels)
	if err != nil {
		return nil, fmt.Errorf("pixels: %w", err)
	}
	layer := timeline.NewLayer("Layer 1", historyCap)
	layer.Load(actions, nil)
	frame, err := timeline.NewFrameWithLayers("Frame 1", historyCap, []*timeline.Layer{layer})
	if err != nil {
		return nil, err
	}
	tl, err := timeline.FromFrames([]*timeline.Frame{frame}, historyCap)
	if err != nil {
		return nil, err
	}
	return &Project{Format: FormatV1, Timeline: tl}, nil
}

func decodeV2(data []byte, historyCap int) (*Project, error) {
	var doc fileV2
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedProject, err)
	}
	if len(doc.Frames) == 0 {
		return nil, fmt.Errorf("%w: no frames", ErrMalformedProject)
	}
	if doc.Width < 0 || doc.Height < 0 {
		return nil, fmt.Errorf("%w: negative geometry", ErrMalformedProject)
	}

	frames := make([]*timeline.Frame, 0, len(doc.Frames))
	for i, wf := range doc.Frames {
		if len(wf.Layers) == 0 {
			return nil, fmt.Errorf("frame %d: %w: no layers", i, ErrMalformedProject)
		}
		layers := make([]*timeline.Layer, 0, len(wf.Layers))
		for j, wl := range wf.Layers {
			history, err := fromWire(wl.History)
			if err != nil {
				return nil, fmt.Errorf("frame %d layer %d history: %w", i, j, err)
			}
			redo, err := fromWire(wl.RedoStack)
			if err != nil {
				return nil, fmt.Errorf("frame %d layer %d redo: %w", i, j, err)
			}
			l := timeline.NewLayer(wl.Name, historyCap)
			if wl.Visible != nil {
				l.Visible = *wl.Visible
			}
			l.Load(history, redo)
			layers = append(layers, l)
		}
		f, err := timeline.NewFrameWithLayers(wf.Name, historyCap, layers)
		if err != nil {
			return nil, err
		}
		frames = append(frames, f)
	}
	tl, err := timeline.FromFrames(frames, historyCap)
	if err != nil {
		return nil, err
	}
	return &Project{
		Format:   FormatV2,
		Geometry: Geometry{Width: doc.Width, Height: doc.Height},
		Timeline: tl,
	}, nil
}

func toWire(actions []pixel.Action, alwaysAlpha bool) []wireAction {
	out := make([]wireAction, len(actions))
	for i, a := range actions {
		out[i] = wireAction{X: a.X, Y: a.Y, Color: a.Color}
		if alwaysAlpha || a.Alpha != 1 {
			alpha := a.Alpha
			out[i].Alpha = &alpha
		}
	}
	return out
}

func fromWire(in []wireAction) ([]pixel.Action, error) {
	out := make([]pixel.Action, len(in))
	for i, w := range in {
		if w.X < 0 || w.Y < 0 {
			return nil, fmt.Errorf("%w: action %d at (%d,%d)", ErrMalformedProject, i, w.X, w.Y)
		}
		alpha := 1.0
		if w.Alpha != nil {
			alpha = pixel.ClampAlpha(*w.Alpha)
		}
		out[i] = pixel.Action{X: w.X, Y: w.Y, Color: w.Color, Alpha: alpha}
	}
	return out, nil
}
