package feature

import (
	"fmt"
	"math"
	"slices"

	"github.com/inodb/plasmidcanvas/internal/geometry"
)

// Shape selects how an interval is drawn.
type Shape int

const (
	ShapeRectangle Shape = iota
	ShapeArrow
)

func (s Shape) String() string {
	switch s {
	case ShapeRectangle:
		return "rectangle"
	case ShapeArrow:
		return "arrow"
	default:
		return "unknown"
	}
}

// Direction is the strand an arrow points along.
type Direction int

const (
	Clockwise        Direction = 1
	CounterClockwise Direction = -1
)

// ParseDirection validates a raw direction value.
func ParseDirection(d int) (Direction, error) {
	switch Direction(d) {
	case Clockwise, CounterClockwise:
		return Direction(d), nil
	}
	return 0, ConfigError("feature.direction", d,
		"direction can only be 1 (clockwise) or -1 (anti-clockwise)")
}

// LabelStyle selects how an interval's name is shown.
type LabelStyle string

const (
	LabelOnCircle  LabelStyle = "on-circle"
	LabelOffCircle LabelStyle = "off-circle"
)

// SupportedLabelStyles lists every accepted label style.
var SupportedLabelStyles = []LabelStyle{LabelOnCircle, LabelOffCircle}

// ParseLabelStyle validates a label style string.
func ParseLabelStyle(s string) (LabelStyle, error) {
	style := LabelStyle(s)
	if slices.Contains(SupportedLabelStyles, style) {
		return style, nil
	}
	return "", ConfigError("feature.label_style", s,
		"label style %q is not supported, supported styles are %v", s, SupportedLabelStyles)
}

// Interval is a span annotation from Start to End. End < Start denotes a span
// that crosses the origin.
type Interval struct {
	attachment

	name      string
	start     int
	end       int
	shape     Shape
	direction Direction

	color          string
	lineWidthScale float64
	labelFontSize  int
	labelStyles    []LabelStyle

	orbit int
}

func newInterval(name string, start, end int, shape Shape) *Interval {
	return &Interval{
		name:           name,
		start:          start,
		end:            end,
		shape:          shape,
		direction:      Clockwise,
		color:          DefaultColor,
		lineWidthScale: DefaultLineWidthScale,
		labelFontSize:  DefaultLabelFontSize,
		labelStyles:    []LabelStyle{LabelOffCircle},
	}
}

// NewRectangle returns a plain span drawn as an arc band.
func NewRectangle(name string, start, end int) *Interval {
	return newInterval(name, start, end, ShapeRectangle)
}

// NewArrow returns a directional span drawn as an arc band with a head.
func NewArrow(name string, start, end int, direction int) (*Interval, error) {
	d, err := ParseDirection(direction)
	if err != nil {
		return nil, err
	}
	iv := newInterval(name, start, end, ShapeArrow)
	iv.direction = d
	return iv, nil
}

// Kind implements Feature.
func (iv *Interval) Kind() Kind { return KindInterval }

// Name implements Feature.
func (iv *Interval) Name() string { return iv.name }

// Start returns the first position of the span.
func (iv *Interval) Start() int { return iv.start }

// End returns the last position of the span. End < Start crosses the origin.
func (iv *Interval) End() int { return iv.end }

// Shape returns how the span is drawn.
func (iv *Interval) Shape() Shape { return iv.shape }

// Direction returns the strand of an arrow; rectangles report Clockwise.
func (iv *Interval) Direction() Direction { return iv.direction }

// Color returns the fill colour.
func (iv *Interval) Color() string { return iv.color }

// LineWidthScale returns the band width relative to the canvas line width.
func (iv *Interval) LineWidthScale() float64 { return iv.lineWidthScale }

// LabelFontSize returns the font size of the span's labels.
func (iv *Interval) LabelFontSize() int { return iv.labelFontSize }

// Orbit returns the concentric layer assigned by the last layout pass.
func (iv *Interval) Orbit() int { return iv.orbit }

// SetOrbit is called by the orbit planner during a layout pass.
func (iv *Interval) SetOrbit(orbit int) { iv.orbit = orbit }

// Wraps reports whether the span crosses the domain origin.
func (iv *Interval) Wraps() bool { return iv.end < iv.start }

// Length returns the clockwise extent from Start to End on a domain of total
// positions. A span from 0 to total covers the whole ring.
func (iv *Interval) Length(total int) int {
	if iv.end >= iv.start {
		return iv.end - iv.start
	}
	return int(geometry.ClockwiseDistance(float64(iv.start), float64(iv.end), total))
}

// SetDirection validates and sets the arrow direction.
func (iv *Interval) SetDirection(direction int) error {
	d, err := ParseDirection(direction)
	if err != nil {
		return err
	}
	iv.direction = d
	return nil
}

// SetColor sets the fill colour.
func (iv *Interval) SetColor(color string) { iv.color = color }

// SetLineWidthScale scales the band width relative to the plasmid line.
func (iv *Interval) SetLineWidthScale(sf float64) error {
	if sf <= 0 || math.IsNaN(sf) || math.IsInf(sf, 0) {
		return ConfigError("feature.line_width_scale", sf, "scale factor must be positive")
	}
	iv.lineWidthScale = sf
	return nil
}

// SetLabelFontSize validates and sets the label font size.
func (iv *Interval) SetLabelFontSize(size int) error {
	if size <= 0 {
		return ConfigError("feature.label_font_size", size, "font size must be positive")
	}
	iv.labelFontSize = size
	return nil
}

// LabelStyles returns a copy of the configured label styles.
func (iv *Interval) LabelStyles() []LabelStyle {
	return slices.Clone(iv.labelStyles)
}

// SetLabelStyles replaces the label styles. Duplicates are collapsed and an
// empty list disables labelling. Nothing changes if any style is invalid.
func (iv *Interval) SetLabelStyles(styles ...string) error {
	parsed := make([]LabelStyle, 0, len(styles))
	for _, s := range styles {
		style, err := ParseLabelStyle(s)
		if err != nil {
			return err
		}
		if !slices.Contains(parsed, style) {
			parsed = append(parsed, style)
		}
	}
	iv.labelStyles = parsed
	return nil
}

// HasLabelStyle reports whether style is enabled.
func (iv *Interval) HasLabelStyle(style LabelStyle) bool {
	return slices.Contains(iv.labelStyles, style)
}

// OffCircleLabel derives the leader-line label anchored at the span's
// circular midpoint.
func (iv *Interval) OffCircleLabel(total int, fontSize int) *Point {
	mid := int(math.RoundToEven(geometry.CircularMidpoint(float64(iv.start), float64(iv.end), total)))
	p := NewPointLabel(fmt.Sprintf("%s (%d - %d)", iv.name, iv.start, iv.end), mid)
	p.name = iv.name
	p.Label.FontColor = iv.color
	p.Label.FontSize = fontSize
	p.lineColor = iv.color
	p.orbitOffset = iv.orbit
	return p
}

// OnCircleLabel derives the curved label that follows the span.
func (iv *Interval) OnCircleLabel(fontSize int) *CurvedLabel {
	l := NewLabel(iv.name)
	l.FontSize = fontSize
	return &CurvedLabel{
		Label: l,
		Start: iv.start,
		End:   iv.end,
		Orbit: iv.orbit,
	}
}

// CurvedLabel is label text that follows an arc from Start to End.
type CurvedLabel struct {
	Label
	Start int
	End   int
	Orbit int
}
