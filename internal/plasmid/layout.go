package plasmid

import (
	"fmt"
	"math"
	"strconv"

	"go.uber.org/zap"

	"github.com/inodb/plasmidcanvas/internal/feature"
	"github.com/inodb/plasmidcanvas/internal/geometry"
	"github.com/inodb/plasmidcanvas/internal/orbit"
	"github.com/inodb/plasmidcanvas/internal/render"
	"github.com/inodb/plasmidcanvas/internal/shape"
)

// Layout computes the scene for the current features. Orbits are
// reassigned from scratch on every call. Shapes are ordered ring and title
// first, then spans, points, ticks and markers, and finally every label.
func (p *Plasmid) Layout(m render.TextMeasurer) (*render.Scene, error) {
	scene := &render.Scene{Viewport: p.Viewport()}
	var labels []render.Shape

	scene.Add(p.ringShapes(m)...)

	maxOrbit := 0
	for _, pl := range p.Placements() {
		iv := pl.Interval
		ctx := p.shapeContext(m)
		ctx.Radius = pl.Radius
		if iv.LabelFontSize() == feature.DefaultLabelFontSize {
			ctx.LabelFontSize = p.labelFontSize
		}

		out, err := p.build(iv, ctx)
		if err != nil {
			return nil, err
		}
		scene.Add(out.Body...)
		labels = append(labels, out.Labels...)

		maxOrbit = max(maxOrbit, pl.Orbit)
		p.logger.Debug("placed interval",
			zap.String("feature", iv.Name()),
			zap.Int("start", iv.Start()),
			zap.Int("end", iv.End()),
			zap.Int("orbit", pl.Orbit),
			zap.Float64("radius", pl.Radius))
	}

	for _, pt := range p.points {
		out, err := p.build(pt, p.shapeContext(m))
		if err != nil {
			return nil, err
		}
		scene.Add(out.Body...)
		labels = append(labels, out.Labels...)
	}

	scene.Add(p.tickShapes()...)
	scene.Add(p.markerShapes()...)
	scene.Add(labels...)

	p.logger.Info("layout complete",
		zap.String("plasmid", p.name),
		zap.Int("base_pairs", p.basePairs),
		zap.Int("intervals", len(p.intervals)),
		zap.Int("points", len(p.points)),
		zap.Int("orbits", maxOrbit+1),
		zap.Int("shapes", scene.Len()))
	return scene, nil
}

// Placement is an interval with the orbit and radius it is drawn at.
type Placement struct {
	Interval *feature.Interval
	Orbit    int
	Radius   float64
}

// Placements reassigns orbits and returns every interval in placement
// order.
func (p *Plasmid) Placements() []Placement {
	placed := orbit.Assign(p.intervals)
	out := make([]Placement, len(placed))
	for i, iv := range placed {
		out[i] = Placement{Interval: iv, Orbit: iv.Orbit(), Radius: p.OrbitRadius(iv.Orbit())}
	}
	return out
}

// Plot fixes the backend viewport, lays the map out and draws it.
func (p *Plasmid) Plot(b render.Backend) error {
	b.Begin(p.Viewport())
	scene, err := p.Layout(b)
	if err != nil {
		return err
	}
	scene.Replay(b)
	return nil
}

// SaveToFile plots onto b and exports the result to path. Backend errors
// are returned as is.
func (p *Plasmid) SaveToFile(b render.Backend, path string) error {
	if err := p.Plot(b); err != nil {
		return err
	}
	if err := b.Export(path); err != nil {
		return err
	}
	p.logger.Info("plasmid map saved", zap.String("path", path))
	return nil
}

func (p *Plasmid) build(f feature.Feature, ctx shape.Context) (shape.Output, error) {
	b, err := shape.For(f)
	if err != nil {
		return shape.Output{}, fmt.Errorf("layout %s: %w", f.Name(), err)
	}
	return b.Build(ctx), nil
}

func (p *Plasmid) shapeContext(m render.TextMeasurer) shape.Context {
	return shape.Context{
		Total:     p.basePairs,
		Center:    p.center,
		Radius:    p.radius,
		LineWidth: p.LineWidth(),
		Measurer:  m,
	}
}

func (p *Plasmid) ringShapes(m render.TextMeasurer) []render.Shape {
	ring := render.Band{
		Center: p.center,
		Radius: p.radius,
		Width:  p.LineWidth(),
		Theta1: 0,
		Theta2: 360,
		Color:  p.color,
		Alpha:  RingAlpha,
	}

	// Two centred lines: the bold name above the length.
	var gap float64
	if m != nil {
		gap = m.TextHeight(p.name, TitleFontSize) * 0.6
	}
	name := render.Text{
		At:      geometry.Pt(p.center.X, p.center.Y+gap),
		Content: p.name,
		HAlign:  render.AlignCenter,
		VAlign:  render.VAlignCenter,
		Color:   feature.DefaultFontColor,
		Size:    TitleFontSize,
		Alpha:   1,
		Bold:    true,
	}
	length := name
	length.At = geometry.Pt(p.center.X, p.center.Y-gap)
	length.Content = strconv.Itoa(p.basePairs) + "bp"
	length.Bold = false

	return []render.Shape{ring, name, length}
}

func (p *Plasmid) tickShapes() []render.Shape {
	var shapes []render.Shape
	for _, deg := range p.tickAngles() {
		shapes = append(shapes, render.Line{
			From:  geometry.PolarToPoint(p.center, p.radius, deg),
			To:    geometry.PolarToPoint(p.center, p.radius*tickLengthScale, deg),
			Color: p.tickColor,
			Alpha: tickAlpha,
		})
	}
	return shapes
}

func (p *Plasmid) markerShapes() []render.Shape {
	var shapes []render.Shape
	for _, deg := range p.markerAngles() {
		shapes = append(shapes, render.Text{
			At:      geometry.PolarToPoint(p.center, p.radius*p.markerDistanceScale, deg),
			Content: strconv.Itoa(geometry.AngleToPosition(deg, p.basePairs)),
			HAlign:  render.AlignCenter,
			VAlign:  render.VAlignBaseline,
			Color:   feature.DefaultFontColor,
			Size:    markerFontSize,
			Alpha:   markerAlpha,
			Italic:  true,
		})
	}
	return shapes
}

// magnitude returns 10^(digits(n)-1).
func magnitude(n int) int {
	return int(math.Pow10(len(strconv.Itoa(n)) - 1))
}

// markerAngles returns the clockwise angles of the numeric markers.
func (p *Plasmid) markerAngles() []float64 {
	switch p.markerStyle {
	case MarkerAuto:
		step := magnitude(p.basePairs)
		for step > 1 && p.basePairs <= 2*step {
			step /= 2
		}
		step = max(step, 1)

		var positions []int
		for pos := 0; pos < p.basePairs; pos += step {
			positions = append(positions, pos)
		}
		if n := len(positions); n > 1 && float64(positions[n-1]) >= float64(p.basePairs)-float64(step)*markerCrowding {
			positions = positions[:n-1]
		}

		angles := make([]float64, len(positions))
		for i, pos := range positions {
			angles[i] = geometry.PositionToAngle(float64(pos), p.basePairs)
		}
		return angles
	case MarkerNMarkers:
		angles := make([]float64, p.numberOfMarkers)
		for i := range angles {
			angles[i] = 360 * float64(i) / float64(p.numberOfMarkers)
		}
		return angles
	default:
		return nil
	}
}

// tickAngles returns the clockwise angles of the ring ticks, one per tenth
// of the position magnitude.
func (p *Plasmid) tickAngles() []float64 {
	if p.tickStyle != TickAuto {
		return nil
	}
	step := max(int(math.RoundToEven(float64(magnitude(p.basePairs))/10)), 1)

	var angles []float64
	for pos := 0; pos < p.basePairs; pos += step {
		angles = append(angles, geometry.PositionToAngle(float64(pos), p.basePairs))
	}
	return angles
}
