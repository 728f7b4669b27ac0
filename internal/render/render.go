// Package render holds the backend-agnostic shape descriptors produced by the
// layout pass and the Backend interface that turns them into pixels or
// vectors.
//
// Scene coordinates have y growing upwards. Band angles use the arc
// primitive convention: degrees counter-clockwise from 3 o'clock.
package render

import (
	"math"

	"github.com/inodb/plasmidcanvas/internal/geometry"
)

// HAlign is the horizontal anchor of a text shape.
type HAlign int

const (
	AlignCenter HAlign = iota
	AlignLeft
	AlignRight
)

func (a HAlign) String() string {
	switch a {
	case AlignLeft:
		return "left"
	case AlignRight:
		return "right"
	default:
		return "center"
	}
}

// VAlign is the vertical anchor of a text shape.
type VAlign int

const (
	VAlignCenter VAlign = iota
	VAlignBaseline
)

// CurveAlign selects which side of a sampled curve glyphs are snapped to.
type CurveAlign int

const (
	// CurveBottom hangs glyphs below the curve, tops touching it.
	CurveBottom CurveAlign = iota
	// CurveTop stands glyphs on top of the curve.
	CurveTop
)

func (a CurveAlign) String() string {
	if a == CurveTop {
		return "top"
	}
	return "bottom"
}

// Shape is one of Band, Polygon, Line, Text or CurvedText.
type Shape interface {
	drawOn(b Backend)
}

// Band is an annular sector: outer radius Radius, extending Width inwards,
// swept counter-clockwise from Theta1 to Theta2.
type Band struct {
	Center geometry.Point
	Radius float64
	Width  float64
	Theta1 float64
	Theta2 float64
	Color  string
	Alpha  float64
}

// Sweep returns the counter-clockwise extent in degrees. Equal angles sweep
// nothing; a difference of exactly 360 is a full ring.
func (b Band) Sweep() float64 {
	d := b.Theta2 - b.Theta1
	if d == 0 {
		return 0
	}
	if math.Abs(d-360) < 1e-12 {
		return 360
	}
	return geometry.Mod(d, 360)
}

// InnerRadius returns Radius - Width.
func (b Band) InnerRadius() float64 { return b.Radius - b.Width }

// Polygon is a filled closed polygon.
type Polygon struct {
	Points []geometry.Point
	Color  string
	Alpha  float64
}

// Line is a straight segment.
type Line struct {
	From  geometry.Point
	To    geometry.Point
	Color string
	Alpha float64
}

// Text is a single line of text anchored at At.
type Text struct {
	At      geometry.Point
	Content string
	HAlign  HAlign
	VAlign  VAlign
	Color   string
	Size    float64
	Alpha   float64
	Bold    bool
	Italic  bool
}

// CurvedText is text laid out along a sampled curve.
type CurvedText struct {
	Curve   []geometry.Point
	Content string
	Align   CurveAlign
	Color   string
	Size    float64
}

func (s Band) drawOn(b Backend) { b.DrawBand(s) }
func (s Polygon) drawOn(b Backend) { b.DrawPolygon(s) }
func (s Line) drawOn(b Backend) { b.DrawLine(s) }
func (s Text) drawOn(b Backend) { b.DrawText(s) }
func (s CurvedText) drawOn(b Backend) { b.DrawCurvedText(s) }

// Viewport is the square region of scene space a backend maps onto its
// output.
type Viewport struct {
	Center     geometry.Point
	HalfExtent float64
}

// TextMeasurer reports the rendered height of text in scene units.
type TextMeasurer interface {
	TextHeight(text string, size float64) float64
}

// Backend draws shapes and exports the result.
type Backend interface {
	TextMeasurer

	// Begin resets the backend and fixes the visible region.
	Begin(v Viewport)
	DrawBand(b Band)
	DrawPolygon(p Polygon)
	DrawLine(l Line)
	DrawText(t Text)
	DrawCurvedText(t CurvedText)
	// Export writes everything drawn since Begin to path.
	Export(path string) error
}

// Scene is an ordered list of shapes; later shapes draw on top.
type Scene struct {
	Viewport Viewport
	Shapes   []Shape
}

// Add appends shapes to the scene.
func (s *Scene) Add(shapes ...Shape) {
	s.Shapes = append(s.Shapes, shapes...)
}

// Len returns the number of shapes.
func (s *Scene) Len() int { return len(s.Shapes) }

// Replay draws every shape in order on b.
func (s *Scene) Replay(b Backend) {
	for _, shape := range s.Shapes {
		shape.drawOn(b)
	}
}
