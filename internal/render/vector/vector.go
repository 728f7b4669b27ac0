// Package vector implements a render.Backend that writes SVG. PNG and JPEG
// export rasterize the SVG in headless Chrome.
package vector

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	svg "github.com/ajstarks/svgo"
	"go.uber.org/zap"

	"github.com/inodb/plasmidcanvas/internal/geometry"
	"github.com/inodb/plasmidcanvas/internal/render"
)

const (
	DefaultSize = 1800
	DefaultDPI  = 300.0
	// DefaultExportTimeout bounds a headless Chrome export.
	DefaultExportTimeout = 60 * time.Second

	lineWidthPoints = 1.5
)

// ErrNotStarted is returned by Export before Begin has been called.
var ErrNotStarted = errors.New("vector: export before begin")

// Backend draws shapes into an in-memory SVG document.
type Backend struct {
	size       int
	dpi        float64
	chromePath string
	timeout    time.Duration
	logger     *zap.Logger

	frame  render.Frame
	buf    bytes.Buffer
	canvas *svg.SVG
	ended  bool
	nextID int
}

// New returns a backend producing size x size pixel documents.
func New(size int, dpi float64) *Backend {
	if size <= 0 {
		size = DefaultSize
	}
	if dpi <= 0 {
		dpi = DefaultDPI
	}
	return &Backend{
		size:    size,
		dpi:     dpi,
		timeout: DefaultExportTimeout,
		logger:  zap.NewNop(),
	}
}

// SetLogger sets the logger for export messages.
func (b *Backend) SetLogger(l *zap.Logger) { b.logger = l }

// SetChromePath sets the Chrome binary used for PNG and JPEG export. Empty
// uses chromedp's lookup.
func (b *Backend) SetChromePath(path string) { b.chromePath = path }

// SetExportTimeout bounds raster export.
func (b *Backend) SetExportTimeout(d time.Duration) { b.timeout = d }

// Begin starts a new document covering v.
func (b *Backend) Begin(v render.Viewport) {
	b.frame = render.Frame{Viewport: v, Size: b.size, DPI: b.dpi}
	b.buf.Reset()
	b.canvas = svg.New(&b.buf)
	b.ended = false
	b.nextID = 0

	b.canvas.Start(b.size, b.size)
	b.canvas.Rect(0, 0, b.size, b.size, "fill:white")
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

func (b *Backend) px(p geometry.Point) (float64, float64) { return b.frame.ToPixel(p) }

func num(v float64) string { return strconv.FormatFloat(v, 'f', 2, 64) }

func fill(color string, alpha float64) string {
	return fmt.Sprintf("fill:%s;fill-opacity:%s;stroke:none", render.HexColor(color), num(alpha))
}

// arcPoint is a point at angle deg counter-clockwise from 3 o'clock.
func arcPoint(c geometry.Point, r, deg float64) geometry.Point {
	rad := deg * math.Pi / 180
	return geometry.Pt(c.X+r*math.Cos(rad), c.Y+r*math.Sin(rad))
}

func (b *Backend) DrawBand(band render.Band) {
	sweep := band.Sweep()
	if sweep == 0 || band.Width <= 0 {
		return
	}
	outer := band.Radius * b.frame.Scale()
	inner := math.Max(band.InnerRadius(), 0) * b.frame.Scale()

	var d strings.Builder
	if sweep >= 360 {
		cx, cy := b.px(band.Center)
		for _, r := range []float64{outer, inner} {
			if r <= 0 {
				continue
			}
			fmt.Fprintf(&d, "M%s,%s A%s,%s 0 1 0 %s,%s A%s,%s 0 1 0 %s,%s Z ",
				num(cx+r), num(cy), num(r), num(r), num(cx-r), num(cy), num(r), num(r), num(cx+r), num(cy))
		}
		b.canvas.Path(strings.TrimSpace(d.String()), fill(band.Color, band.Alpha)+";fill-rule:evenodd")
		return
	}

	t1, t2 := band.Theta1, band.Theta1+sweep
	large := 0
	if sweep > 180 {
		large = 1
	}
	x1, y1 := b.px(arcPoint(band.Center, band.Radius, t1))
	x2, y2 := b.px(arcPoint(band.Center, band.Radius, t2))
	// Counter-clockwise on screen is the negative sweep direction in SVG.
	fmt.Fprintf(&d, "M%s,%s A%s,%s 0 %d 0 %s,%s ", num(x1), num(y1), num(outer), num(outer), large, num(x2), num(y2))
	if inner > 0 {
		x3, y3 := b.px(arcPoint(band.Center, band.InnerRadius(), t2))
		x4, y4 := b.px(arcPoint(band.Center, band.InnerRadius(), t1))
		fmt.Fprintf(&d, "L%s,%s A%s,%s 0 %d 1 %s,%s Z", num(x3), num(y3), num(inner), num(inner), large, num(x4), num(y4))
	} else {
		cx, cy := b.px(band.Center)
		fmt.Fprintf(&d, "L%s,%s Z", num(cx), num(cy))
	}
	b.canvas.Path(d.String(), fill(band.Color, band.Alpha))
}

func (b *Backend) polyline(points []geometry.Point, closed bool) string {
	var d strings.Builder
	for i, p := range points {
		x, y := b.px(p)
		if i == 0 {
			fmt.Fprintf(&d, "M%s,%s", num(x), num(y))
			continue
		}
		fmt.Fprintf(&d, " L%s,%s", num(x), num(y))
	}
	if closed {
		d.WriteString(" Z")
	}
	return d.String()
}

func (b *Backend) DrawPolygon(p render.Polygon) {
	if len(p.Points) < 3 {
		return
	}
	b.canvas.Path(b.polyline(p.Points, true), fill(p.Color, p.Alpha))
}

func (b *Backend) DrawLine(l render.Line) {
	b.canvas.Path(b.polyline([]geometry.Point{l.From, l.To}, false),
		fmt.Sprintf("fill:none;stroke:%s;stroke-opacity:%s;stroke-width:%s",
			render.HexColor(l.Color), num(l.Alpha), num(b.frame.FontPixels(lineWidthPoints))))
}

func (b *Backend) textStyle(color string, size, alpha float64, bold, italic bool) string {
	style := fmt.Sprintf("font-family:%s;font-size:%spx;fill:%s;fill-opacity:%s",
		render.FontFamily, num(b.frame.FontPixels(size)), render.HexColor(color), num(alpha))
	if bold {
		style += ";font-weight:bold"
	}
	if italic {
		style += ";font-style:italic"
	}
	return style
}

func (b *Backend) DrawText(t render.Text) {
	if t.Content == "" {
		return
	}
	anchor := "middle"
	switch t.HAlign {
	case render.AlignLeft:
		anchor = "start"
	case render.AlignRight:
		anchor = "end"
	}
	style := b.textStyle(t.Color, t.Size, t.Alpha, t.Bold, t.Italic) + ";text-anchor:" + anchor
	if t.VAlign == render.VAlignCenter {
		style += ";dominant-baseline:central"
	}
	x, y := b.px(t.At)
	b.canvas.Text(int(math.Round(x)), int(math.Round(y)), t.Content, style)
}

func (b *Backend) DrawCurvedText(t render.CurvedText) {
	if t.Content == "" || len(t.Curve) < 2 {
		return
	}
	b.nextID++
	id := fmt.Sprintf("curve%d", b.nextID)

	b.canvas.Def()
	b.canvas.Path(b.polyline(t.Curve, false), `id="`+id+`"`, "fill:none")
	b.canvas.DefEnd()

	style := b.textStyle(t.Color, t.Size, 1, false, false)
	if t.Align == render.CurveBottom {
		style += ";dominant-baseline:hanging"
	}
	b.canvas.Textpath(t.Content, "#"+id, style)
}

// SVG returns the finished document.
func (b *Backend) SVG() ([]byte, error) {
	if b.canvas == nil {
		return nil, ErrNotStarted
	}
	if !b.ended {
		b.canvas.End()
		b.ended = true
	}
	return bytes.Clone(b.buf.Bytes()), nil
}

// Export writes the document to path. The extension selects the format:
// .svg (the default when missing), .png, .jpg or .jpeg.
func (b *Backend) Export(path string) error {
	ctx, cancel := context.WithTimeout(context.Background(), b.timeout)
	defer cancel()
	return b.ExportContext(ctx, path)
}

// ExportContext is Export with a caller-supplied context for the headless
// browser.
func (b *Backend) ExportContext(ctx context.Context, path string) error {
	doc, err := b.SVG()
	if err != nil {
		return err
	}

	ext := strings.ToLower(filepath.Ext(path))
	if ext == "" {
		ext = ".svg"
		path += ext
	}

	var out []byte
	switch ext {
	case ".svg":
		out = doc
	case ".png", ".jpg", ".jpeg":
		out, err = rasterize(ctx, doc, b.chromePath, ext != ".png")
		if err != nil {
			return fmt.Errorf("export %s: %w", path, err)
		}
	default:
		return fmt.Errorf("export %s: unsupported format %q", path, ext)
	}

	if err := os.WriteFile(path, out, 0o644); err != nil {
		return fmt.Errorf("export %s: %w", path, err)
	}
	b.logger.Info("wrote map", zap.String("path", path), zap.Int("bytes", len(out)))
	return nil
}
