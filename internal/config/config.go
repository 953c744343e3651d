package config

import (
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"time"

	"pixelpainter/internal/pixel"
)

// CurrentConfigVersion marks the supported config version.
const CurrentConfigVersion = 1

// MaxCanvasSize bounds both grid dimensions.
const MaxCanvasSize = 256

// Config is the top-level editor configuration.
type Config struct {
	ConfigVersion int             `mapstructure:"config_version" yaml:"config_version"`
	Canvas        CanvasConfig    `mapstructure:"canvas" yaml:"canvas"`
	History       HistoryConfig   `mapstructure:"history" yaml:"history"`
	Animation     AnimationConfig `mapstructure:"animation" yaml:"animation"`
	Input         InputConfig     `mapstructure:"input" yaml:"input"`
	Export        ExportConfig    `mapstructure:"export" yaml:"export"`
	Editor        EditorConfig    `mapstructure:"editor" yaml:"editor"`
}

// CanvasConfig is the grid a new session starts with.
type CanvasConfig struct {
	Width     int `mapstructure:"width" yaml:"width"`
	Height    int `mapstructure:"height" yaml:"height"`
	PixelSize int `mapstructure:"pixel_size" yaml:"pixel_size"`
}

type HistoryConfig struct {
	Cap int `mapstructure:"cap" yaml:"cap"`
}

// AnimationConfig controls playback and onion skinning. FPS also sets the
// default sprite-sheet column count.
type AnimationConfig struct {
	FPS        int     `mapstructure:"fps" yaml:"fps"`
	OnionSkin  bool    `mapstructure:"onion_skin" yaml:"onion_skin"`
	OnionDepth int     `mapstructure:"onion_depth" yaml:"onion_depth"`
	GhostAlpha float64 `mapstructure:"ghost_alpha" yaml:"ghost_alpha"`
}

type InputConfig struct {
	UndoRepeatMS int `mapstructure:"undo_repeat_ms" yaml:"undo_repeat_ms"`
}

// ExportConfig holds export defaults. A zero width or height means the
// grid size times the pixel size.
type ExportConfig struct {
	Width       int    `mapstructure:"width" yaml:"width"`
	Height      int    `mapstructure:"height" yaml:"height"`
	Directory   string `mapstructure:"directory" yaml:"directory"`
	JPEGQuality int    `mapstructure:"jpeg_quality" yaml:"jpeg_quality"`
	Background  string `mapstructure:"background" yaml:"background"`
}

type EditorConfig struct {
	Color        string   `mapstructure:"color" yaml:"color"`
	Alpha        float64  `mapstructure:"alpha" yaml:"alpha"`
	ColorHistory []string `mapstructure:"color_history" yaml:"color_history"`
}

// DefaultConfig returns a config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		ConfigVersion: CurrentConfigVersion,
		Canvas: CanvasConfig{
			Width:     16,
			Height:    16,
			PixelSize: 16,
		},
		History: HistoryConfig{
			Cap: pixel.DefaultHistoryCap,
		},
		Animation: AnimationConfig{
			FPS:        8,
			OnionSkin:  false,
			OnionDepth: 1,
			GhostAlpha: 0.2,
		},
		Input: InputConfig{
			UndoRepeatMS: 80,
		},
		Export: ExportConfig{
			Width:       0,
			Height:      0,
			Directory:   "",
			JPEGQuality: 90,
			Background:  "",
		},
		Editor: EditorConfig{
			Color:        "#000000",
			Alpha:        1,
			ColorHistory: []string{"#000000"},
		},
	}
}

// DefaultConfigPath returns $XDG_CONFIG_HOME/pixelpainter/config.yaml, or
// the platform equivalent.
func DefaultConfigPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "pixelpainter", "config.yaml"), nil
}

func (c Config) UndoRepeat() time.Duration {
	return time.Duration(c.Input.UndoRepeatMS) * time.Millisecond
}

// ExportSize resolves the configured export size against the canvas.
func (c Config) ExportSize() (int, int) {
	w, h := c.Export.Width, c.Export.Height
	if w <= 0 {
		w = c.Canvas.Width * c.Canvas.PixelSize
	}
	if h <= 0 {
		h = c.Canvas.Height * c.Canvas.PixelSize
	}
	return w, h
}

// BackgroundColor is nil when exports keep transparency.
func (c Config) BackgroundColor() color.Color {
	if strings.TrimSpace(c.Export.Background) == "" {
		return nil
	}
	col, _ := pixel.ParseHex(c.Export.Background)
	return col
}

// SavePath places a bare file name in the export directory. Paths that
// already name a directory are returned unchanged.
func (c Config) SavePath(filename string) string {
	if c.Export.Directory == "" || filepath.IsAbs(filename) || strings.ContainsRune(filename, filepath.Separator) {
		return filename
	}
	return filepath.Join(c.Export.Directory, filename)
}

func expandHome(value string) string {
	if !strings.HasPrefix(value, "~") {
		return value
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return value
	}
	return filepath.Join(home, strings.TrimPrefix(value, "~"))
}
