package render

import (
	"image"

	"github.com/fogleman/gg"

	"pixelpainter/internal/timeline"
)

// NamedImage is one frame of a frame bundle.
type NamedImage struct {
	Name  string
	Image *image.RGBA
}

// SheetColumns is the default sprite-sheet width in frames: the playback
// rate, but never more than the number of frames and never less than one.
func SheetColumns(rate, frameCount int) int {
	cols := rate
	if frameCount < cols {
		cols = frameCount
	}
	if cols < 1 {
		cols = 1
	}
	return cols
}

// SpriteSheet tiles every frame, left to right and top to bottom, into one
// buffer of frameWidth*columns x frameHeight*rows. columns is clamped to the
// frame count.
func SpriteSheet(c *Compositor, frames []*timeline.Frame, frameWidth, frameHeight, columns int) *image.RGBA {
	columns = SheetColumns(columns, len(frames))
	rows := (len(frames) + columns - 1) / columns

	dc := gg.NewContext(frameWidth*columns, frameHeight*rows)
	if c.Width <= 0 || c.Height <= 0 {
		return dc.Image().(*image.RGBA)
	}
	cellW := float64(frameWidth) / float64(c.Width)
	cellH := float64(frameHeight) / float64(c.Height)
	for i, f := range frames {
		dc.Push()
		dc.Translate(float64((i%columns)*frameWidth), float64((i/columns)*frameHeight))
		dc.DrawRectangle(0, 0, float64(frameWidth), float64(frameHeight))
		dc.Clip()
		drawFrame(dc, f, cellW, cellH, 1)
		dc.ResetClip()
		dc.Pop()
	}
	return dc.Image().(*image.RGBA)
}

// FrameBundle renders every frame separately at frameWidth x frameHeight.
func FrameBundle(c *Compositor, frames []*timeline.Frame, frameWidth, frameHeight int) []NamedImage {
	out := make([]NamedImage, 0, len(frames))
	for _, f := range frames {
		out = append(out, NamedImage{Name: f.Name, Image: c.RenderScaled(f, frameWidth, frameHeight)})
	}
	return out
}
