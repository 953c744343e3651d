package main

import (
	"pkt.systems/pslog"

	"pixelpainter/internal/config"
	"pixelpainter/internal/editor"
	"pixelpainter/internal/render"
	"pixelpainter/internal/ticker"
)

// sessionOptions maps the loaded configuration onto a new editing session.
func sessionOptions(cfg config.Config, clock ticker.Clock, logger pslog.Logger) editor.Options {
	return editor.Options{
		Width:        cfg.Canvas.Width,
		Height:       cfg.Canvas.Height,
		PixelSize:    cfg.Canvas.PixelSize,
		HistoryCap:   cfg.History.Cap,
		Color:        cfg.Editor.Color,
		Alpha:        cfg.Editor.Alpha,
		ColorHistory: cfg.Editor.ColorHistory,
		FPS:          cfg.Animation.FPS,
		Onion: render.OnionSkin{
			Enabled: cfg.Animation.OnionSkin,
			Depth:   cfg.Animation.OnionDepth,
		},
		GhostAlpha:  cfg.Animation.GhostAlpha,
		UndoRepeat:  cfg.UndoRepeat(),
		JPEGQuality: cfg.Export.JPEGQuality,
		Background:  cfg.BackgroundColor(),
		Clock:       clock,
		Logger:      logger,
	}
}

func newModel(cfg config.Config, session *editor.Session, clock *teaClock, logger pslog.Logger) model {
	return model{
		session:           session,
		cfg:               cfg,
		log:               logger,
		clock:             clock,
		mode:              ModeNormal,
		selectedFileIndex: -1,
		heldButton:        btnNone,
	}
}

// exportSize is the configured export size, falling back to the
// on-screen size of the current grid.
func (m *model) exportSize() (int, int) {
	return m.session.ExportSize(m.cfg.Export.Width, m.cfg.Export.Height)
}
