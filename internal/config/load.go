package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"pixelpainter/internal/pixel"
)

// Load reads configuration from the provided path. If path is empty, uses
// DefaultConfigPath. A missing file yields the defaults.
func Load(path string) (Config, error) {
	if path == "" {
		defaultPath, err := DefaultConfigPath()
		if err != nil {
			return Config{}, err
		}
		path = defaultPath
	}

	cfg := DefaultConfig()

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.SetDefault("config_version", cfg.ConfigVersion)
	v.SetDefault("canvas.width", cfg.Canvas.Width)
	v.SetDefault("canvas.height", cfg.Canvas.Height)
	v.SetDefault("canvas.pixel_size", cfg.Canvas.PixelSize)
	v.SetDefault("history.cap", cfg.History.Cap)
	v.SetDefault("animation.fps", cfg.Animation.FPS)
	v.SetDefault("animation.onion_skin", cfg.Animation.OnionSkin)
	v.SetDefault("animation.onion_depth", cfg.Animation.OnionDepth)
	v.SetDefault("animation.ghost_alpha", cfg.Animation.GhostAlpha)
	v.SetDefault("input.undo_repeat_ms", cfg.Input.UndoRepeatMS)
	v.SetDefault("export.width", cfg.Export.Width)
	v.SetDefault("export.height", cfg.Export.Height)
	v.SetDefault("export.directory", cfg.Export.Directory)
	v.SetDefault("export.jpeg_quality", cfg.Export.JPEGQuality)
	v.SetDefault("export.background", cfg.Export.Background)
	v.SetDefault("editor.color", cfg.Editor.Color)
	v.SetDefault("editor.alpha", cfg.Editor.Alpha)
	v.SetDefault("editor.color_history", cfg.Editor.ColorHistory)

	configLoaded := false
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, err
		}
	} else {
		configLoaded = true
	}

	if configLoaded {
		if !v.IsSet("config_version") {
			return Config{}, fmt.Errorf("config_version is required; expected %d", CurrentConfigVersion)
		}
		if v.GetInt("config_version") != CurrentConfigVersion {
			return Config{}, fmt.Errorf("unsupported config_version %d; expected %d", v.GetInt("config_version"), CurrentConfigVersion)
		}
	}

	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, err
	}
	cfg.Export.Directory = expandHome(cfg.Export.Directory)
	if err := Validate(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports the first out-of-range setting.
func Validate(cfg Config) error {
	if cfg.Canvas.Width < 1 || cfg.Canvas.Width > MaxCanvasSize {
		return fmt.Errorf("canvas.width must be between 1 and %d", MaxCanvasSize)
	}
	if cfg.Canvas.Height < 1 || cfg.Canvas.Height > MaxCanvasSize {
		return fmt.Errorf("canvas.height must be between 1 and %d", MaxCanvasSize)
	}
	if cfg.Canvas.PixelSize < 1 || cfg.Canvas.PixelSize > 64 {
		return fmt.Errorf("canvas.pixel_size must be between 1 and 64")
	}
	if cfg.History.Cap < 1 {
		return fmt.Errorf("history.cap must be positive")
	}
	if cfg.Animation.FPS < 1 || cfg.Animation.FPS > 60 {
		return fmt.Errorf("animation.fps must be between 1 and 60")
	}
	if cfg.Animation.OnionDepth < 0 || cfg.Animation.OnionDepth > 10 {
		return fmt.Errorf("animation.onion_depth must be between 0 and 10")
	}
	if cfg.Animation.GhostAlpha <= 0 || cfg.Animation.GhostAlpha > 1 {
		return fmt.Errorf("animation.ghost_alpha must be in (0, 1]")
	}
	if cfg.Input.UndoRepeatMS < 10 {
		return fmt.Errorf("input.undo_repeat_ms must be at least 10")
	}
	if cfg.Export.Width < 0 || cfg.Export.Height < 0 {
		return fmt.Errorf("export.width and export.height must not be negative")
	}
	if cfg.Export.JPEGQuality < 1 || cfg.Export.JPEGQuality > 100 {
		return fmt.Errorf("export.jpeg_quality must be between 1 and 100")
	}
	if cfg.Export.Background != "" {
		if _, ok := pixel.ParseHex(cfg.Export.Background); !ok {
			return fmt.Errorf("export.background %q is not a hex color", cfg.Export.Background)
		}
	}
	if _, ok := pixel.ParseHex(cfg.Editor.Color); !ok {
		return fmt.Errorf("editor.color %q is not a hex color", cfg.Editor.Color)
	}
	if cfg.Editor.Alpha < 0 || cfg.Editor.Alpha > 1 {
		return fmt.Errorf("editor.alpha must be in [0, 1]")
	}
	for _, c := range cfg.Editor.ColorHistory {
		if _, ok := pixel.ParseHex(c); !ok {
			return fmt.Errorf("editor.color_history entry %q is not a hex color", c)
		}
	}
	return nil
}

// WriteDefault writes the default config to the target path.
func WriteDefault(path string, overwrite bool) (string, error) {
	if path == "" {
		defaultPath, err := DefaultConfigPath()
		if err != nil {
			return "", err
		}
		path = defaultPath
	}

	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return "", fmt.Errorf("config already exists at %s", path)
		}
	}

	data, err := yaml.Marshal(DefaultConfig())
	if err != nil {
		return "", err
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return "", err
	}
	return path, nil
}
