package editor

import (
	"fmt"
	"image"

	"pixelpainter/internal/project"
	"pixelpainter/internal/render"
)

// Export is a raster captured from the session, waiting to be encoded.
// The session never touches Image again, so encoding may run elsewhere.
type Export struct {
	Path    string
	Format  render.Format
	Image   *image.RGBA
	Options render.EncodeOptions
}

func (e Export) Encode() ([]byte, error) {
	return render.Encode(e.Image, e.Format, e.Options)
}

// Write encodes the export and replaces Path with it. Nothing is written
// when encoding fails.
func (e Export) Write() error {
	data, err := e.Encode()
	if err != nil {
		return err
	}
	return project.WriteFile(e.Path, data)
}

// ExportSize resolves a requested export size; non-positive dimensions
// fall back to the on-screen size.
func (s *Session) ExportSize(width, height int) (int, int) {
	if width <= 0 {
		width = s.width * s.pixelSize
	}
	if height <= 0 {
		height = s.height * s.pixelSize
	}
	return width, height
}

// SnapshotImage renders the current frame at width x height for path. The
// encoder is picked from the file extension.
func (s *Session) SnapshotImage(path string, width, height int) Export {
	width, height = s.ExportSize(width, height)
	return Export{
		Path:    path,
		Format:  render.FormatForPath(path),
		Image:   s.comp.RenderScaled(s.tl.CurrentFrame(), width, height),
		Options: s.encode,
	}
}

// ExportImage returns the encoded current frame.
func (s *Session) ExportImage(path string, width, height int) ([]byte, error) {
	data, err := s.SnapshotImage(path, width, height).Encode()
	if err != nil {
		s.log.Warn("image export failed", "path", path, "err", err)
		return nil, err
	}
	s.log.Info("image exported", "path", path, "bytes", len(data))
	return data, nil
}

// SheetColumns is the default sprite-sheet column count.
func (s *Session) SheetColumns() int {
	return render.SheetColumns(s.fps, s.tl.Len())
}

// SnapshotSpriteSheet tiles every frame at width x height per frame.
// Non-positive columns use SheetColumns.
func (s *Session) SnapshotSpriteSheet(path string, width, height, columns int) Export {
	width, height = s.ExportSize(width, height)
	if columns <= 0 {
		columns = s.SheetColumns()
	}
	return Export{
		Path:    path,
		Format:  render.FormatForPath(path),
		Image:   render.SpriteSheet(s.comp, s.tl.Frames(), width, height, columns),
		Options: s.encode,
	}
}

// ExportSpriteSheet returns the sprite sheet as PNG.
func (s *Session) ExportSpriteSheet(width, height, columns int) ([]byte, error) {
	data, err := s.SnapshotSpriteSheet("", width, height, columns).Encode()
	if err != nil {
		s.log.Warn("sprite sheet export failed", "err", err)
		return nil, err
	}
	return data, nil
}

// SnapshotFrameBundle renders every frame separately.
func (s *Session) SnapshotFrameBundle(width, height int) []render.NamedImage {
	width, height = s.ExportSize(width, height)
	return render.FrameBundle(s.comp, s.tl.Frames(), width, height)
}

// ExportFrameBundle returns the manifest and per-frame PNGs for base.
func (s *Session) ExportFrameBundle(base string, width, height int) ([]project.BundleFile, error) {
	width, height = s.ExportSize(width, height)
	files, err := project.BuildBundle(base, width, height, s.SnapshotFrameBundle(width, height))
	if err != nil {
		s.log.Warn("frame bundle export failed", "err", err)
		return nil, err
	}
	return files, nil
}

// ExportProject serializes the whole timeline in the current format.
func (s *Session) ExportProject() ([]byte, error) {
	return project.Encode(s.tl, project.Geometry{Width: s.width, Height: s.height})
}

// ExportProjectV1 writes only the current layer in the legacy format.
func (s *Session) ExportProjectV1() ([]byte, error) {
	return project.EncodeV1(s.tl.CurrentLayer().Surface)
}

// ImportProject replaces the timeline with a decoded project file. On any
// error the session is left exactly as it was.
func (s *Session) ImportProject(data []byte) error {
	p, err := project.Decode(data, s.historyCap)
	if err != nil {
		s.log.Warn("project import failed", "err", err)
		return err
	}
	width, height := s.width, s.height
	if p.Geometry.Known() {
		if p.Geometry.Width > MaxGridSize || p.Geometry.Height > MaxGridSize {
			err := fmt.Errorf("%w: grid %dx%d exceeds %d", project.ErrMalformedProject, p.Geometry.Width, p.Geometry.Height, MaxGridSize)
			s.log.Warn("project import failed", "err", err)
			return err
		}
		width, height = p.Geometry.Width, p.Geometry.Height
	}

	s.StopPlayback()
	s.StopUndoRepeat()
	s.Release()
	s.tl = p.Timeline
	s.width, s.height = width, height
	s.comp.Width, s.comp.Height = width, height
	s.sym.Clamp(width, height)
	s.log.Info("project imported", "format", p.Format, "frames", s.tl.Len(), "width", width, "height", height)
	return nil
}

// Render composes the current frame, with onion skinning, at the
// on-screen pixel size.
func (s *Session) Render() *image.RGBA {
	return s.comp.RenderFrame(s.tl.Frames(), s.tl.FrameIndex(), s.pixelSize, s.onion)
}

// Cells composes the current frame at one pixel per cell.
func (s *Session) Cells() *image.RGBA {
	return s.comp.RenderFrame(s.tl.Frames(), s.tl.FrameIndex(), 1, s.onion)
}

// Snapshot renders what the editor shows, guides and caption included.
func (s *Session) Snapshot(caption string) *image.RGBA {
	return s.comp.RenderDisplay(s.tl.Frames(), s.tl.FrameIndex(), s.pixelSize, s.onion, render.Overlay{
		Grid:     true,
		Symmetry: s.sym,
		Caption:  caption,
	})
}
