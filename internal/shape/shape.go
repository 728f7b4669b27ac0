// Package shape turns features into render shapes. Each builder knows the
// geometry of one drawing variant; the canvas picks the builder with For and
// hands it the orbit radius the feature was placed at.
package shape

import (
	"fmt"
	"math"

	"github.com/inodb/plasmidcanvas/internal/feature"
	"github.com/inodb/plasmidcanvas/internal/geometry"
	"github.com/inodb/plasmidcanvas/internal/render"
)

// Variant tags the drawing variant a builder produces.
type Variant int

const (
	VariantRectangle Variant = iota + 1
	VariantArrow
	VariantOffCircleLabel
	VariantOnCircleLabel
)

func (v Variant) String() string {
	switch v {
	case VariantRectangle:
		return "rectangle"
	case VariantArrow:
		return "arrow"
	case VariantOffCircleLabel:
		return "off-circle-label"
	case VariantOnCircleLabel:
		return "on-circle-label"
	default:
		return fmt.Sprintf("Variant(%d)", int(v))
	}
}

const (
	// LeaderLineAlpha is the opacity of off-circle label lines.
	LeaderLineAlpha = 0.3
	// CurveSamples is the number of points sampled along a curved label.
	CurveSamples = 50
	// MaxHeadFraction caps the arrow head at half the span.
	MaxHeadFraction = 0.5
	// HeadCapFraction caps the arrow head at 1.5% of the whole ring.
	HeadCapFraction = 0.015
)

// Context is the ring geometry a builder draws against.
type Context struct {
	Total     int
	Center    geometry.Point
	Radius    float64
	LineWidth float64
	// LabelFontSize overrides the feature's own label size when positive.
	LabelFontSize int
	Measurer      render.TextMeasurer
}

// Output separates feature bodies from their labels so labels can be drawn
// above every body.
type Output struct {
	Body   []render.Shape
	Labels []render.Shape
}

func (o *Output) merge(other Output) {
	o.Body = append(o.Body, other.Body...)
	o.Labels = append(o.Labels, other.Labels...)
}

// Builder produces shapes for one feature.
type Builder interface {
	Variant() Variant
	Build(ctx Context) Output
}

// For returns the builder for f.
func For(f feature.Feature) (Builder, error) {
	switch v := f.(type) {
	case *feature.Interval:
		if v.Shape() == feature.ShapeArrow {
			return Arrow{Feature: v}, nil
		}
		return Rectangle{Feature: v, Start: float64(v.Start()), End: float64(v.End())}, nil
	case *feature.Point:
		return OffCircleLabel{Label: v}, nil
	default:
		return nil, fmt.Errorf("no shape builder for %T", f)
	}
}

// Rectangle draws [Start, End] of an interval as a band. Start and End may
// differ from the feature's when an arrow delegates its body.
type Rectangle struct {
	Feature        *feature.Interval
	Start          float64
	End            float64
	SuppressLabels bool
}

func (r Rectangle) Variant() Variant { return VariantRectangle }

// Build implements Builder.
func (r Rectangle) Build(ctx Context) Output {
	iv := r.Feature
	startAngle := geometry.PositionToAngle(r.Start, ctx.Total)

	var span float64
	if r.End >= r.Start {
		span = r.End - r.Start
	} else {
		span = geometry.ClockwiseDistance(r.Start, r.End, ctx.Total)
	}
	sweep := geometry.PositionToAngle(span, ctx.Total)

	// Bands sweep counter-clockwise, so the band runs from the render angle
	// of the end back to the render angle of the start.
	theta2 := geometry.AngleToRenderAngle(startAngle)
	theta1 := geometry.AngleToRenderAngle(startAngle + sweep)
	if sweep >= 360 {
		theta1 = theta2 - 360
	}

	width := ctx.LineWidth * iv.LineWidthScale()
	adjust := (width - ctx.LineWidth) / 2

	out := Output{Body: []render.Shape{render.Band{
		Center: ctx.Center,
		Radius: ctx.Radius + adjust,
		Width:  width,
		Theta1: theta1,
		Theta2: theta2,
		Color:  iv.Color(),
		Alpha:  1,
	}}}
	if !r.SuppressLabels {
		out.Labels = intervalLabels(iv, ctx)
	}
	return out
}

// Arrow draws an interval as a band capped by a triangular head pointing in
// the feature's direction.
type Arrow struct {
	Feature *feature.Interval
}

func (a Arrow) Variant() Variant { return VariantArrow }

// HeadLength returns the arrow head length in positions.
func HeadLength(start, end float64, total int) float64 {
	return math.Min(geometry.CircularLength(start, end, total)*MaxHeadFraction, float64(total)*HeadCapFraction)
}

// Build implements Builder.
func (a Arrow) Build(ctx Context) Output {
	iv := a.Feature
	start, end := float64(iv.Start()), float64(iv.End())
	head := HeadLength(start, end, ctx.Total)

	var headStart, headEnd float64
	var body Rectangle
	if iv.Direction() == feature.CounterClockwise {
		headStart = geometry.Mod(start+head, float64(ctx.Total))
		headEnd = start
		body = Rectangle{Feature: iv, Start: headStart, End: end, SuppressLabels: true}
	} else {
		headStart = geometry.Mod(end-head, float64(ctx.Total))
		headEnd = end
		body = Rectangle{Feature: iv, Start: start, End: headStart, SuppressLabels: true}
	}

	backAngle := geometry.PositionToAngle(headStart, ctx.Total)
	tipAngle := geometry.PositionToAngle(headEnd, ctx.Total)
	adjust := (ctx.LineWidth*iv.LineWidthScale() - ctx.LineWidth) / 2

	triangle := render.Polygon{
		Points: []geometry.Point{
			geometry.PolarToPoint(ctx.Center, ctx.Radius-ctx.LineWidth/2, tipAngle),
			geometry.PolarToPoint(ctx.Center, ctx.Radius-ctx.LineWidth-adjust, backAngle),
			geometry.PolarToPoint(ctx.Center, ctx.Radius+adjust, backAngle),
		},
		Color: iv.Color(),
		Alpha: 1,
	}

	out := Output{Body: []render.Shape{triangle}}
	out.merge(body.Build(ctx))
	out.Labels = intervalLabels(iv, ctx)
	return out
}

// OffCircleLabel draws a leader line out from the ring with text at its
// outer end.
type OffCircleLabel struct {
	Label *feature.Point
}

func (l OffCircleLabel) Variant() Variant { return VariantOffCircleLabel }

// Build implements Builder.
func (l OffCircleLabel) Build(ctx Context) Output {
	p := l.Label
	deg := geometry.PositionToAngle(float64(p.Position()), ctx.Total)

	outer := ctx.Radius + ctx.LineWidth*float64(2+p.OrbitOffset())*p.LineLengthScale()
	from := geometry.PolarToPoint(ctx.Center, ctx.Radius, deg)
	to := geometry.PolarToPoint(ctx.Center, outer, deg)

	align := render.AlignLeft
	if deg > 180 {
		align = render.AlignRight
	}

	return Output{Labels: []render.Shape{
		render.Line{From: from, To: to, Color: p.LineColor(), Alpha: LeaderLineAlpha},
		render.Text{
			At:      to,
			Content: p.Text(),
			HAlign:  align,
			VAlign:  render.VAlignCenter,
			Color:   p.Label.FontColor,
			Size:    float64(p.Label.FontSize),
			Alpha:   1,
		},
	}}
}

// OnCircleLabel draws text that follows the arc of its span, just inside
// the band.
type OnCircleLabel struct {
	Label *feature.CurvedLabel
}

func (l OnCircleLabel) Variant() Variant { return VariantOnCircleLabel }

// Build implements Builder.
func (l OnCircleLabel) Build(ctx Context) Output {
	lbl := l.Label
	startAngle := geometry.PositionToAngle(float64(lbl.Start), ctx.Total)
	endAngle := geometry.PositionToAngle(float64(lbl.End), ctx.Total)
	mid := math.RoundToEven(geometry.CircularMidpoint(float64(lbl.Start), float64(lbl.End), ctx.Total))
	midAngle := geometry.PositionToAngle(mid, ctx.Total)

	var height float64
	if ctx.Measurer != nil {
		height = ctx.Measurer.TextHeight(lbl.Text, float64(lbl.FontSize))
	}
	radius := ctx.Radius - ctx.LineWidth/2 - height

	var angles []float64
	align := render.CurveBottom
	switch {
	case 90 < midAngle && midAngle < 270:
		// Bottom half reads left to right only when walked backwards.
		angles = geometry.Linspace(endAngle, startAngle, CurveSamples)
		align = render.CurveTop
	case endAngle < startAngle:
		angles = append(geometry.Linspace(startAngle, 360, CurveSamples), geometry.Linspace(0, endAngle, CurveSamples)...)
	default:
		angles = geometry.Linspace(startAngle, endAngle, CurveSamples)
	}

	curve := make([]geometry.Point, len(angles))
	for i, a := range angles {
		curve[i] = geometry.PolarToPoint(ctx.Center, radius, a)
	}

	return Output{Labels: []render.Shape{render.CurvedText{
		Curve:   curve,
		Content: lbl.Text,
		Align:   align,
		Color:   lbl.FontColor,
		Size:    float64(lbl.FontSize),
	}}}
}

func intervalLabels(iv *feature.Interval, ctx Context) []render.Shape {
	size := iv.LabelFontSize()
	if ctx.LabelFontSize > 0 {
		size = ctx.LabelFontSize
	}

	var labels []render.Shape
	for _, style := range iv.LabelStyles() {
		switch style {
		case feature.LabelOnCircle:
			labels = append(labels, OnCircleLabel{Label: iv.OnCircleLabel(size)}.Build(ctx).Labels...)
		case feature.LabelOffCircle:
			labels = append(labels, OffCircleLabel{Label: iv.OffCircleLabel(ctx.Total, size)}.Build(ctx).Labels...)
		}
	}
	return labels
}
