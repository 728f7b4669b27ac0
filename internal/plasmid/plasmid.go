// Package plasmid provides the Canvas that owns a circular map's features
// and lays them out into a render scene.
package plasmid

import (
	"fmt"
	"math"

	"go.uber.org/zap"

	"github.com/inodb/plasmidcanvas/internal/feature"
	"github.com/inodb/plasmidcanvas/internal/geometry"
	"github.com/inodb/plasmidcanvas/internal/orbit"
	"github.com/inodb/plasmidcanvas/internal/render"
)

// MarkerStyle selects how numeric position markers are placed.
type MarkerStyle string

const (
	MarkerAuto     MarkerStyle = "auto"
	MarkerNMarkers MarkerStyle = "n_markers"
	MarkerNone     MarkerStyle = "none"
)

// TickStyle selects whether ring ticks are drawn.
type TickStyle string

const (
	TickAuto TickStyle = "auto"
	TickNone TickStyle = "none"
)

// Supported style values.
var (
	SupportedMarkerStyles = []MarkerStyle{MarkerAuto, MarkerNMarkers, MarkerNone}
	SupportedTickStyles   = []TickStyle{TickAuto, TickNone}
)

const (
	DefaultRadius              = 1000.0
	DefaultLineWidthFraction   = 0.10
	DefaultLineWidthScale      = 1.0
	DefaultName                = "Untitled Plasmid"
	DefaultColor               = "grey"
	DefaultMarkerDistanceScale = 1.10
	DefaultNumberOfMarkers     = 16

	// ViewportScale is the visible half extent in multiples of the radius.
	ViewportScale = 1.6
	// RingAlpha is the opacity of the backbone ring.
	RingAlpha = 0.5
	// TitleFontSize is the size of the centre title.
	TitleFontSize = 10.0

	tickLengthScale = 1.03
	tickAlpha       = 0.3
	markerAlpha     = 0.5
	markerFontSize  = 7.0
	// Drop the final auto marker when it sits this close (as a fraction of
	// the marker interval) to the origin marker.
	markerCrowding = 0.15
)

// Plasmid is a circular map canvas. Each Plasmid owns its features
// exclusively; a feature added here cannot be added to another Plasmid.
type Plasmid struct {
	name      string
	basePairs int

	center              geometry.Point
	radius              float64
	lineWidth           float64
	lineWidthScale      float64
	color               string
	tickColor           string
	markerStyle         MarkerStyle
	markerDistanceScale float64
	numberOfMarkers     int
	tickStyle           TickStyle
	labelFontSize       int

	features  []feature.Feature
	intervals []*feature.Interval
	points    []*feature.Point

	logger *zap.Logger
}

// New returns an empty canvas over basePairs positions.
func New(name string, basePairs int) (*Plasmid, error) {
	if basePairs <= 0 {
		return nil, feature.ConfigError("plasmid.new", basePairs, "base pairs must be positive")
	}
	if name == "" {
		name = DefaultName
	}
	return &Plasmid{
		name:                name,
		basePairs:           basePairs,
		radius:              DefaultRadius,
		lineWidth:           DefaultRadius * DefaultLineWidthFraction,
		lineWidthScale:      DefaultLineWidthScale,
		color:               DefaultColor,
		tickColor:           DefaultColor,
		markerStyle:         MarkerAuto,
		markerDistanceScale: DefaultMarkerDistanceScale,
		numberOfMarkers:     DefaultNumberOfMarkers,
		tickStyle:           TickAuto,
		labelFontSize:       feature.DefaultLabelFontSize,
		logger:              zap.NewNop(),
	}, nil
}

// SetLogger sets the logger for layout messages.
func (p *Plasmid) SetLogger(l *zap.Logger) {
	p.logger = l
}

// Name returns the title drawn in the ring centre.
func (p *Plasmid) Name() string { return p.name }

// SetName replaces the title.
func (p *Plasmid) SetName(name string) { p.name = name }

// BasePairs returns the length of the circular domain.
func (p *Plasmid) BasePairs() int { return p.basePairs }

// Center returns the ring centre in scene coordinates.
func (p *Plasmid) Center() geometry.Point { return p.center }

// SetCenter moves the ring centre.
func (p *Plasmid) SetCenter(c geometry.Point) { p.center = c }

// Radius returns the outer radius of the ring.
func (p *Plasmid) Radius() float64 { return p.radius }

// LineWidth returns the ring width after scaling.
func (p *Plasmid) LineWidth() float64 { return p.lineWidth * p.lineWidthScale }

// SetLineWidth sets the unscaled ring width.
func (p *Plasmid) SetLineWidth(w float64) error {
	if !(w > 0) || math.IsInf(w, 0) {
		return feature.ConfigError("plasmid.line_width", w, "line width must be positive")
	}
	p.lineWidth = w
	return nil
}

// LineWidthScale returns the factor applied to the ring width.
func (p *Plasmid) LineWidthScale() float64 { return p.lineWidthScale }

// SetLineWidthScale sets the factor applied to the ring width.
func (p *Plasmid) SetLineWidthScale(sf float64) error {
	if !(sf > 0) || math.IsInf(sf, 0) {
		return feature.ConfigError("plasmid.line_width_scale", sf, "scale must be positive")
	}
	p.lineWidthScale = sf
	return nil
}

// Color returns the ring colour.
func (p *Plasmid) Color() string { return p.color }

// SetColor sets the ring colour.
func (p *Plasmid) SetColor(color string) { p.color = color }

// TickColor returns the colour of the ring ticks.
func (p *Plasmid) TickColor() string { return p.tickColor }

// SetTickColor sets the colour of the ring ticks.
func (p *Plasmid) SetTickColor(c string) { p.tickColor = c }

// MarkerStyle returns how position markers are placed.
func (p *Plasmid) MarkerStyle() MarkerStyle { return p.markerStyle }

// TickStyle returns whether ticks are drawn.
func (p *Plasmid) TickStyle() TickStyle { return p.tickStyle }

// SetMarkerStyle accepts "auto", "n_markers" or "none".
func (p *Plasmid) SetMarkerStyle(style string) error {
	for _, s := range SupportedMarkerStyles {
		if string(s) == style {
			p.markerStyle = s
			return nil
		}
	}
	return feature.ConfigError("plasmid.marker_style", style,
		"unsupported marker style, supported: %v", SupportedMarkerStyles)
}

// SetTickStyle accepts "auto" or "none".
func (p *Plasmid) SetTickStyle(style string) error {
	for _, s := range SupportedTickStyles {
		if string(s) == style {
			p.tickStyle = s
			return nil
		}
	}
	return feature.ConfigError("plasmid.tick_style", style,
		"unsupported tick style, supported: %v", SupportedTickStyles)
}

// MarkerDistanceScale returns the marker radius as a multiple of the ring radius.
func (p *Plasmid) MarkerDistanceScale() float64 { return p.markerDistanceScale }

// SetMarkerDistanceScale sets the marker radius as a multiple of the ring radius.
func (p *Plasmid) SetMarkerDistanceScale(sf float64) error {
	if !(sf > 0) || math.IsInf(sf, 0) {
		return feature.ConfigError("plasmid.marker_distance_scale", sf, "scale must be positive")
	}
	p.markerDistanceScale = sf
	return nil
}

// NumberOfMarkers returns the marker count used by the n_markers style.
func (p *Plasmid) NumberOfMarkers() int { return p.numberOfMarkers }

// SetNumberOfMarkers sets the marker count used by the n_markers style.
func (p *Plasmid) SetNumberOfMarkers(n int) error {
	if n <= 0 {
		return feature.ConfigError("plasmid.number_of_markers", n, "marker count must be positive")
	}
	p.numberOfMarkers = n
	return nil
}

// FeatureLabelFontSize returns the default size of span labels.
func (p *Plasmid) FeatureLabelFontSize() int { return p.labelFontSize }

// SetFeatureLabelFontSize sets the label size applied to intervals that
// still use the library default.
func (p *Plasmid) SetFeatureLabelFontSize(size int) error {
	if size <= 0 {
		return feature.ConfigError("plasmid.label_font_size", size, "font size must be positive")
	}
	p.labelFontSize = size
	return nil
}

// Add validates f against the domain and attaches it to the canvas.
func (p *Plasmid) Add(f feature.Feature) error {
	switch v := f.(type) {
	case *feature.Interval:
		if err := p.checkPosition("plasmid.add", v.Name(), "start", v.Start()); err != nil {
			return err
		}
		if err := p.checkPosition("plasmid.add", v.Name(), "end", v.End()); err != nil {
			return err
		}
		if err := v.Attach(p); err != nil {
			return err
		}
		p.intervals = append(p.intervals, v)
	case *feature.Point:
		if err := p.checkPosition("plasmid.add", v.Name(), "position", v.Position()); err != nil {
			return err
		}
		if err := v.Attach(p); err != nil {
			return err
		}
		p.points = append(p.points, v)
	default:
		return feature.ConfigError("plasmid.add", fmt.Sprintf("%T", f), "unsupported feature type")
	}
	p.features = append(p.features, f)
	return nil
}

func (p *Plasmid) checkPosition(op, name, field string, pos int) error {
	if pos < 0 || pos > p.basePairs {
		return feature.BoundsError(op, pos, "%s %d of %q outside [0, %d]", field, pos, name, p.basePairs)
	}
	return nil
}

// Features returns every feature in insertion order.
func (p *Plasmid) Features() []feature.Feature {
	return append([]feature.Feature(nil), p.features...)
}

// Intervals returns the span features in insertion order.
func (p *Plasmid) Intervals() []*feature.Interval {
	return append([]*feature.Interval(nil), p.intervals...)
}

// Points returns the point features in insertion order.
func (p *Plasmid) Points() []*feature.Point {
	return append([]*feature.Point(nil), p.points...)
}

// FeaturesAt returns the spans covering pos, ordered by start, followed by
// the points sitting exactly at pos. Positions wrap around the ring.
func (p *Plasmid) FeaturesAt(pos int) []feature.Feature {
	var out []feature.Feature
	for _, iv := range feature.BuildCircularIndex(p.basePairs, p.intervals).FindOverlaps(pos) {
		out = append(out, iv)
	}
	at := int(geometry.Mod(float64(pos), float64(p.basePairs)))
	for _, pt := range p.points {
		if pt.Position()%p.basePairs == at {
			out = append(out, pt)
		}
	}
	return out
}

// Viewport returns the visible region: the ring plus room for labels.
func (p *Plasmid) Viewport() render.Viewport {
	return render.Viewport{Center: p.center, HalfExtent: p.radius * ViewportScale}
}

// OrbitRadius returns the radius spans on the given orbit are drawn at.
func (p *Plasmid) OrbitRadius(o int) float64 {
	return orbit.Radius(p.radius, p.LineWidth(), o)
}
