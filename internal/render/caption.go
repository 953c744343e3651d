package render

import (
	"image/color"
	"sync"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"
)

const captionSize = 12.0

var (
	captionOnce sync.Once
	captionFont *truetype.Font
)

func captionFace() font.Face {
	captionOnce.Do(func() {
		f, err := truetype.Parse(gomono.TTF)
		if err == nil {
			captionFont = f
		}
	})
	if captionFont == nil {
		return nil
	}
	return truetype.NewFace(captionFont, &truetype.Options{
		Size:    captionSize,
		DPI:     72,
		Hinting: font.HintingFull,
	})
}

// drawCaption writes text in the bottom-left corner on a translucent strip.
func drawCaption(dc *gg.Context, text string) {
	face := captionFace()
	if face == nil {
		return
	}
	dc.Push()
	defer dc.Pop()

	dc.SetFontFace(face)
	tw, th := dc.MeasureString(text)
	pad := 3.0
	h := float64(dc.Height())
	dc.SetColor(color.NRGBA{A: 0x99})
	dc.DrawRectangle(0, h-th-2*pad, tw+2*pad, th+2*pad)
	dc.Fill()
	dc.SetColor(color.White)
	dc.DrawStringAnchored(text, pad, h-pad, 0, 0)
}
