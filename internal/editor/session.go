// Package editor holds one editing session: the timeline being painted,
// the pointer and tool state, symmetry, playback and the export entry
// points the shell and CLI call.
package editor

import (
	"errors"
	"fmt"
	"image/color"
	"io"
	"time"

	"pkt.systems/pslog"

	"pixelpainter/internal/pixel"
	"pixelpainter/internal/render"
	"pixelpainter/internal/ticker"
	"pixelpainter/internal/timeline"
)

// MaxColorHistory is how many recently used colors are remembered.
const MaxColorHistory = 8

// MaxGridSize bounds both grid dimensions.
const MaxGridSize = 256

var ErrInvalidSize = errors.New("invalid grid size")

// Tool is what a pointer press does.
type Tool int

const (
	ToolPaint Tool = iota
	ToolErase
	ToolSetAxis
)

func (t Tool) String() string {
	switch t {
	case ToolErase:
		return "erase"
	case ToolSetAxis:
		return "axis"
	default:
		return "paint"
	}
}

// Options configures a new session. Zero values pick defaults.
type Options struct {
	Width        int
	Height       int
	PixelSize    int
	HistoryCap   int
	Color        string
	Alpha        float64
	ColorHistory []string
	FPS          int
	Onion        render.OnionSkin
	GhostAlpha   float64
	UndoRepeat   time.Duration
	JPEGQuality  int
	Background   color.Color
	Clock        ticker.Clock
	Logger       pslog.Logger
}

// DefaultOptions mirrors the built-in configuration.
func DefaultOptions() Options {
	return Options{
		Width:        16,
		Height:       16,
		PixelSize:    16,
		HistoryCap:   pixel.DefaultHistoryCap,
		Color:        "#000000",
		Alpha:        1,
		ColorHistory: []string{"#000000"},
		FPS:          8,
		Onion:        render.OnionSkin{Depth: 1},
		GhostAlpha:   render.DefaultGhostAlpha,
		UndoRepeat:   80 * time.Millisecond,
		JPEGQuality:  90,
	}
}

// Session is the editing state the rest of the program acts on. It is not
// safe for concurrent use; timer ticks must be delivered on the goroutine
// that owns the session.
type Session struct {
	width      int
	height     int
	pixelSize  int
	historyCap int

	tl    *timeline.Timeline
	sym   pixel.Symmetry
	comp  *render.Compositor
	onion render.OnionSkin

	color  string
	alpha  float64
	colors []string

	fps        int
	undoRepeat time.Duration
	encode     render.EncodeOptions

	clock ticker.Clock
	log   pslog.Logger

	drawing  bool
	tool     Tool
	lastCell pixel.Point
	hasLast  bool

	undoTask *ticker.Handle
	playTask *ticker.Handle
}

func New(opts Options) *Session {
	def := DefaultOptions()
	if opts.Width <= 0 || opts.Width > MaxGridSize {
		opts.Width = def.Width
	}
	if opts.Height <= 0 || opts.Height > MaxGridSize {
		opts.Height = def.Height
	}
	if opts.PixelSize <= 0 {
		opts.PixelSize = def.PixelSize
	}
	if opts.HistoryCap <= 0 {
		opts.HistoryCap = def.HistoryCap
	}
	if opts.Color == "" {
		opts.Color = def.Color
	}
	if opts.FPS <= 0 {
		opts.FPS = def.FPS
	}
	if opts.GhostAlpha <= 0 {
		opts.GhostAlpha = def.GhostAlpha
	}
	if opts.UndoRepeat <= 0 {
		opts.UndoRepeat = def.UndoRepeat
	}
	if opts.JPEGQuality <= 0 {
		opts.JPEGQuality = def.JPEGQuality
	}
	if opts.Clock == nil {
		opts.Clock = ticker.System()
	}
	if opts.Logger == nil {
		opts.Logger = pslog.NewWithOptions(io.Discard, pslog.Options{Mode: pslog.ModeStructured, NoColor: true})
	}

	s := &Session{
		width:      opts.Width,
		height:     opts.Height,
		pixelSize:  opts.PixelSize,
		historyCap: opts.HistoryCap,
		tl:         timeline.New(opts.HistoryCap),
		sym:        pixel.CenteredSymmetry(opts.Width, opts.Height),
		comp:       render.NewCompositor(opts.Width, opts.Height),
		onion:      opts.Onion,
		color:      opts.Color,
		alpha:      pixel.ClampAlpha(opts.Alpha),
		fps:        opts.FPS,
		undoRepeat: opts.UndoRepeat,
		encode:     render.EncodeOptions{Quality: opts.JPEGQuality, Background: opts.Background},
		clock:      opts.Clock,
		log:        opts.Logger,
	}
	s.comp.GhostAlpha = opts.GhostAlpha
	for _, c := range opts.ColorHistory {
		s.rememberColor(c)
	}
	if len(s.colors) == 0 {
		s.rememberColor(s.color)
	}
	return s
}

func (s *Session) Width() int { return s.width }
func (s *Session) Height() int { return s.height }
func (s *Session) PixelSize() int { return s.pixelSize }
func (s *Session) Timeline() *timeline.Timeline { return s.tl }
func (s *Session) Symmetry() pixel.Symmetry { return s.sym }
func (s *Session) Onion() render.OnionSkin { return s.onion }
func (s *Session) Compositor() *render.Compositor { return s.comp }
func (s *Session) FPS() int { return s.fps }
func (s *Session) Color() string { return s.color }
func (s *Session) Alpha() float64 { return s.alpha }
func (s *Session) Drawing() bool { return s.drawing }

// InBounds reports whether (x,y) is a cell of the grid.
func (s *Session) InBounds(x, y int) bool {
	return x >= 0 && x < s.width && y >= 0 && y < s.height
}

// SetColor selects the paint color. The color is kept as given; malformed
// colors paint black.
func (s *Session) SetColor(hex string) {
	s.color = hex
}

func (s *Session) SetAlpha(alpha float64) {
	s.alpha = pixel.ClampAlpha(alpha)
}

// ColorHistory returns the recently used colors, most recent last.
func (s *Session) ColorHistory() []string {
	out := make([]string, len(s.colors))
	copy(out, s.colors)
	return out
}

func (s *Session) rememberColor(hex string) {
	hex = pixel.NormalizeHex(hex)
	if n := len(s.colors); n > 0 && s.colors[n-1] == hex {
		return
	}
	kept := s.colors[:0]
	for _, c := range s.colors {
		if c != hex {
			kept = append(kept, c)
		}
	}
	s.colors = append(kept, hex)
	if over := len(s.colors) - MaxColorHistory; over > 0 {
		s.colors = append([]string(nil), s.colors[over:]...)
	}
}

func (s *Session) ToggleHorizontal() { s.sym.ToggleHorizontal() }
func (s *Session) ToggleVertical() { s.sym.ToggleVertical() }

// SetAxis moves the active symmetry axes onto (x,y).
func (s *Session) SetAxis(x, y int) {
	s.sym.SetAxisAt(x, y, s.width, s.height)
}

func (s *Session) ToggleOnion() {
	s.onion.Enabled = !s.onion.Enabled
}

func (s *Session) SetOnionDepth(depth int) {
	if depth < 0 {
		depth = 0
	}
	s.onion.Depth = depth
}

// Resize changes the grid. Every surface of every frame is cleared and the
// symmetry axes are pulled back inside the new bounds.
func (s *Session) Resize(width, height int) error {
	if width < 1 || height < 1 || width > MaxGridSize || height > MaxGridSize {
		return fmt.Errorf("%dx%d: %w", width, height, ErrInvalidSize)
	}
	s.StopPlayback()
	s.StopUndoRepeat()
	s.Release()
	s.width, s.height = width, height
	s.comp.Width, s.comp.Height = width, height
	s.tl.ClearAll()
	s.sym.Clamp(width, height)
	s.log.Info("canvas resized", "width", width, "height", height)
	return nil
}

// SetPixelSize changes the on-screen cell size only.
func (s *Session) SetPixelSize(size int) {
	if size < 1 {
		size = 1
	}
	s.pixelSize = size
}
