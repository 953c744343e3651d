package project

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"pixelpainter/internal/render"
)

const BundleFormat = "PixelPainterFrames v1"

// Bundle is the manifest written next to the per-frame PNGs of an
// animation export.
type Bundle struct {
	Format     string        `json:"format"`
	FrameCount int           `json:"frameCount"`
	Width      int           `json:"width"`
	Height     int           `json:"height"`
	Frames     []BundleFrame `json:"frames"`
}

type BundleFrame struct {
	Name    string `json:"name"`
	File    string `json:"file,omitempty"`
	DataURL string `json:"dataUrl"`
}

// BundleFile is one encoded output of a bundle export.
type BundleFile struct {
	Name string
	Data []byte
}

// BuildBundle encodes every image as PNG and returns the files to write:
// the manifest "<base>.json" first, then "<base>_NNN.png" per frame.
// Nothing is returned unless every frame encoded.
func BuildBundle(base string, width, height int, images []render.NamedImage) ([]BundleFile, error) {
	base = filepath.Base(strings.TrimSuffix(base, filepath.Ext(base)))
	manifest := Bundle{
		Format:     BundleFormat,
		FrameCount: len(images),
		Width:      width,
		Height:     height,
		Frames:     make([]BundleFrame, 0, len(images)),
	}
	files := make([]BundleFile, 0, len(images)+1)
	for i, img := range images {
		data, err := render.Encode(img.Image, render.FormatPNG, render.EncodeOptions{})
		if err != nil {
			return nil, fmt.Errorf("frame %d: %w", i, err)
		}
		name := fmt.Sprintf("%s_%03d.png", base, i+1)
		manifest.Frames = append(manifest.Frames, BundleFrame{
			Name:    img.Name,
			File:    name,
			DataURL: render.DataURL(render.FormatPNG.MIME(), data),
		})
		files = append(files, BundleFile{Name: name, Data: data})
	}
	data, err := json.MarshalIndent(manifest, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode bundle manifest: %w", err)
	}
	return append([]BundleFile{{Name: base + ".json", Data: data}}, files...), nil
}

// WriteBundle builds the bundle and writes it into dir. It returns the
// manifest path.
func WriteBundle(dir, base string, width, height int, images []render.NamedImage) (string, error) {
	files, err := BuildBundle(base, width, height, images)
	if err != nil {
		return "", err
	}
	for _, f := range files {
		if err := WriteFile(filepath.Join(dir, f.Name), f.Data); err != nil {
			return "", err
		}
	}
	return filepath.Join(dir, files[0].Name), nil
}

// DecodeBundle parses a manifest.
func DecodeBundle(data []byte) (Bundle, error) {
	var b Bundle
	if err := json.Unmarshal(data, &b); err != nil {
		return Bundle{}, fmt.Errorf("%w: %v", ErrMalformedProject, err)
	}
	if b.Format != BundleFormat {
		return Bundle{}, fmt.Errorf("%w: unknown bundle format %q", ErrMalformedProject, b.Format)
	}
	if b.FrameCount != len(b.Frames) {
		return Bundle{}, fmt.Errorf("%w: frameCount %d but %d frames", ErrMalformedProject, b.FrameCount, len(b.Frames))
	}
	return b, nil
}
