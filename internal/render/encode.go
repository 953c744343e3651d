package render

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"path/filepath"
	"strings"

	"github.com/fogleman/gg"
	"golang.org/x/image/bmp"
)

// ErrEncoding is returned when an encoder produced no usable output.
var ErrEncoding = errors.New("encoding failed")

type Format int

const (
	FormatPNG Format = iota
	FormatJPEG
	FormatBMP
)

func (f Format) String() string {
	switch f {
	case FormatJPEG:
		return "jpeg"
	case FormatBMP:
		return "bmp"
	default:
		return "png"
	}
}

func (f Format) MIME() string {
	return "image/" + f.String()
}

func (f Format) Ext() string {
	switch f {
	case FormatJPEG:
		return ".jpg"
	case FormatBMP:
		return ".bmp"
	default:
		return ".png"
	}
}

// FormatForPath picks the encoder from the file extension; anything that is
// not a JPEG or BMP name is written as PNG.
func FormatForPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".jpg", ".jpeg":
		return FormatJPEG
	case ".bmp":
		return FormatBMP
	default:
		return FormatPNG
	}
}

// ParseFormat accepts png, jpg, jpeg and bmp.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimPrefix(name, ".")) {
	case "png":
		return FormatPNG, nil
	case "jpg", "jpeg":
		return FormatJPEG, nil
	case "bmp":
		return FormatBMP, nil
	}
	return FormatPNG, fmt.Errorf("unknown image format %q", name)
}

type EncodeOptions struct {
	// Quality is the JPEG quality, 1-100. Zero means jpeg.DefaultQuality.
	Quality int
	// Background is painted under the image. JPEG always gets one (white
	// when nil); PNG and BMP only when set.
	Background color.Color
}

// Encode serializes img. The input is never modified.
func Encode(img image.Image, format Format, opts EncodeOptions) ([]byte, error) {
	if img == nil || img.Bounds().Empty() {
		return nil, fmt.Errorf("%s: empty image: %w", format, ErrEncoding)
	}

	var buf bytes.Buffer
	var err error
	switch format {
	case FormatJPEG:
		bg := opts.Background
		if bg == nil {
			bg = color.White
		}
		q := opts.Quality
		if q <= 0 || q > 100 {
			q = jpeg.DefaultQuality
		}
		err = jpeg.Encode(&buf, Flatten(img, bg), &jpeg.Options{Quality: q})
	case FormatBMP:
		src := img
		if opts.Background != nil {
			src = Flatten(img, opts.Background)
		}
		err = bmp.Encode(&buf, src)
	default:
		var dc *gg.Context
		if opts.Background != nil {
			dc = gg.NewContextForRGBA(Flatten(img, opts.Background))
		} else {
			dc = gg.NewContextForImage(img)
		}
		err = dc.EncodePNG(&buf)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %v: %w", format, err, ErrEncoding)
	}
	if buf.Len() == 0 {
		return nil, fmt.Errorf("%s: no output: %w", format, ErrEncoding)
	}
	return buf.Bytes(), nil
}

// Flatten composites img over an opaque background into a new buffer.
func Flatten(img image.Image, bg color.Color) *image.RGBA {
	b := img.Bounds()
	dc := gg.NewContext(b.Dx(), b.Dy())
	dc.SetColor(bg)
	dc.Clear()
	dc.DrawImage(img, -b.Min.X, -b.Min.Y)
	return dc.Image().(*image.RGBA)
}

// DataURL wraps encoded bytes as a base64 data: URL.
func DataURL(mime string, data []byte) string {
	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(data)
}

// DecodeDataURL is the inverse of DataURL.
func DecodeDataURL(s string) (string, []byte, error) {
	rest, ok := strings.CutPrefix(s, "data:")
	if !ok {
		return "", nil, errors.New("not a data URL")
	}
	meta, payload, ok := strings.Cut(rest, ",")
	if !ok {
		return "", nil, errors.New("data URL has no payload")
	}
	mime, ok := strings.CutSuffix(meta, ";base64")
	if !ok {
		return "", nil, errors.New("data URL is not base64")
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", nil, fmt.Errorf("data URL payload: %w", err)
	}
	return mime, data, nil
}
