// Package raster implements a render.Backend that paints into an RGBA image
// and exports PNG or JPEG.
package raster

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/fogleman/gg"
	"go.uber.org/zap"
	"golang.org/x/image/font"

	"github.com/inodb/plasmidcanvas/internal/geometry"
	"github.com/inodb/plasmidcanvas/internal/render"
)

const (
	DefaultSize = 1800
	DefaultDPI  = 300.0

	lineWidthPoints = 1.5
	jpegQuality     = 95
)

// ErrNotStarted is returned by Export before Begin has been called.
var ErrNotStarted = errors.New("raster: export before begin")

type faceKey struct {
	px     float64
	bold   bool
	italic bool
}

// Backend paints shapes with gg.
type Backend struct {
	size   int
	dpi    float64
	logger *zap.Logger

	frame render.Frame
	dc    *gg.Context
	faces map[faceKey]font.Face
}

// New returns a backend producing size x size pixel images.
func New(size int, dpi float64) *Backend {
	if size <= 0 {
		size = DefaultSize
	}
	if dpi <= 0 {
		dpi = DefaultDPI
	}
	return &Backend{
		size:   size,
		dpi:    dpi,
		logger: zap.NewNop(),
		faces:  make(map[faceKey]font.Face),
	}
}

// SetLogger sets the logger for export messages.
func (b *Backend) SetLogger(l *zap.Logger) { b.logger = l }

// Begin clears the image and fixes the visible region.
func (b *Backend) Begin(v render.Viewport) {
	b.frame = render.Frame{Viewport: v, Size: b.size, DPI: b.dpi}
	b.dc = gg.NewContext(b.size, b.size)
	b.dc.SetColor(color.White)
	b.dc.Clear()
}

// Image returns the painted image, or nil before Begin.
func (b *Backend) Image() image.Image {
	if b.dc == nil {
		return nil
	}
	return b.dc.Image()
}

// TextHeight returns the line height of text at size points, in scene
// units.
func (b *Backend) TextHeight(_ string, size float64) float64 {
	f := b.frame
	if f.Size == 0 {
		f = render.Frame{Viewport: render.Viewport{HalfExtent: float64(b.size) / 2}, Size: b.size, DPI: b.dpi}
	}
	return f.SceneLength(render.LineHeightPixels(f.FontPixels(size)))
}

func (b *Backend) face(points float64, bold, italic bool) font.Face {
	key := faceKey{px: b.frame.FontPixels(points), bold: bold, italic: italic}
	if f, ok := b.faces[key]; ok {
		return f
	}
	ttf, err := render.Font(bold, italic)
	if err != nil {
		b.logger.Warn("font unavailable, text skipped", zap.Error(err))
		return nil
	}
	f := render.NewFace(ttf, key.px)
	b.faces[key] = f
	return f
}

func rad(deg float64) float64 { return deg * math.Pi / 180 }

func (b *Backend) DrawBand(band render.Band) {
	sweep := band.Sweep()
	if sweep == 0 || band.Width <= 0 {
		return
	}
	s := b.frame.Scale()
	cx, cy := b.frame.ToPixel(band.Center)
	outer := band.Radius * s
	inner := math.Max(band.InnerRadius(), 0) * s

	b.dc.SetColor(render.NRGBA(band.Color, band.Alpha))
	if sweep >= 360 {
		b.dc.SetFillRuleEvenOdd()
		b.dc.DrawCircle(cx, cy, outer)
		if inner > 0 {
			b.dc.DrawCircle(cx, cy, inner)
		}
		b.dc.Fill()
		b.dc.SetFillRuleWinding()
		return
	}

	// Pixel angles run clockwise, so counter-clockwise scene angles negate.
	a1, a2 := rad(render.PixelAngle(band.Theta1)), rad(render.PixelAngle(band.Theta1))-rad(sweep)
	b.dc.NewSubPath()
	b.dc.DrawArc(cx, cy, outer, a1, a2)
	if inner > 0 {
		b.dc.DrawArc(cx, cy, inner, a2, a1)
	} else {
		b.dc.LineTo(cx, cy)
	}
	b.dc.ClosePath()
	b.dc.Fill()
}

func (b *Backend) DrawPolygon(p render.Polygon) {
	if len(p.Points) < 3 {
		return
	}
	b.dc.NewSubPath()
	for i, pt := range p.Points {
		x, y := b.frame.ToPixel(pt)
		if i == 0 {
			b.dc.MoveTo(x, y)
			continue
		}
		b.dc.LineTo(x, y)
	}
	b.dc.ClosePath()
	b.dc.SetColor(render.NRGBA(p.Color, p.Alpha))
	b.dc.Fill()
}

func (b *Backend) DrawLine(l render.Line) {
	x1, y1 := b.frame.ToPixel(l.From)
	x2, y2 := b.frame.ToPixel(l.To)
	b.dc.SetColor(render.NRGBA(l.Color, l.Alpha))
	b.dc.SetLineWidth(b.frame.FontPixels(lineWidthPoints))
	b.dc.DrawLine(x1, y1, x2, y2)
	b.dc.Stroke()
}

func (b *Backend) DrawText(t render.Text) {
	face := b.face(t.Size, t.Bold, t.Italic)
	if t.Content == "" || face == nil {
		return
	}
	ax := 0.5
	switch t.HAlign {
	case render.AlignLeft:
		ax = 0
	case render.AlignRight:
		ax = 1
	}
	ay := 0.0
	if t.VAlign == render.VAlignCenter {
		ay = 0.5
	}
	x, y := b.frame.ToPixel(t.At)
	b.dc.SetFontFace(face)
	b.dc.SetColor(render.NRGBA(t.Color, t.Alpha))
	b.dc.DrawStringAnchored(t.Content, x, y, ax, ay)
}

func (b *Backend) DrawCurvedText(t render.CurvedText) {
	face := b.face(t.Size, false, false)
	if t.Content == "" || len(t.Curve) < 2 || face == nil {
		return
	}
	pts := make([]geometry.Point, len(t.Curve))
	for i, p := range t.Curve {
		x, y := b.frame.ToPixel(p)
		pts[i] = geometry.Pt(x, y)
	}
	path := newArcPath(pts)

	// Bottom alignment hangs glyphs to the right of the direction of travel.
	ay := 0.0
	if t.Align == render.CurveBottom {
		ay = 1
	}

	b.dc.SetFontFace(face)
	b.dc.SetColor(render.NRGBA(t.Color, 1))
	offset := 0.0
	for _, r := range t.Content {
		glyph := string(r)
		w, _ := b.dc.MeasureString(glyph)
		at, angle := path.at(offset + w/2)
		offset += w

		b.dc.Push()
		b.dc.RotateAbout(angle, at.X, at.Y)
		b.dc.DrawStringAnchored(glyph, at.X, at.Y, 0.5, ay)
		b.dc.Pop()
	}
}

// Export writes the image to path. The extension selects the format: .png
// (the default when missing), .jpg or .jpeg.
func (b *Backend) Export(path string) error {
	if b.dc == nil {
		return ErrNotStarted
	}
	ext := strings.ToLower(filepath.Ext(path))
	if ext == "" {
		ext = ".png"
		path += ext
	}

	switch ext {
	case ".png":
		if err := b.dc.SavePNG(path); err != nil {
			return fmt.Errorf("export %s: %w", path, err)
		}
	case ".jpg", ".jpeg":
		if err := saveJPEG(path, b.dc.Image()); err != nil {
			return fmt.Errorf("export %s: %w", path, err)
		}
	default:
		return fmt.Errorf("export %s: unsupported format %q", path, ext)
	}
	b.logger.Info("wrote map", zap.String("path", path))
	return nil
}

func saveJPEG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := jpeg.Encode(f, img, &jpeg.Options{Quality: jpegQuality}); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
