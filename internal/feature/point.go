package feature

import (
	"fmt"
	"math"
)

// Point is an annotation at a single domain position, drawn as a leader-line
// label outside the ring.
type Point struct {
	attachment

	name     string
	position int

	Label Label

	lineColor       string
	lineLengthScale float64
	// orbitOffset lengthens the leader line of labels derived from spans
	// placed on inner orbits.
	orbitOffset int
}

// NewPointLabel returns a standalone label at pos.
func NewPointLabel(text string, pos int) *Point {
	return &Point{
		name:            text,
		position:        pos,
		Label:           NewLabel(text),
		lineColor:       DefaultLineColor,
		lineLengthScale: DefaultLineLengthSF,
	}
}

// NewRestrictionSite returns a point labelled "<name> (<pos>)".
func NewRestrictionSite(name string, pos int) *Point {
	p := NewPointLabel(name, pos)
	p.Label.Text = fmt.Sprintf("%s (%d)", name, pos)
	return p
}

// Kind implements Feature.
func (p *Point) Kind() Kind { return KindPoint }

// Name implements Feature.
func (p *Point) Name() string { return p.name }

// Position returns the anchored domain position.
func (p *Point) Position() int { return p.position }

// Text returns the label text.
func (p *Point) Text() string { return p.Label.Text }

// LineColor returns the leader line colour.
func (p *Point) LineColor() string { return p.lineColor }

// SetLineColor sets the leader line colour.
func (p *Point) SetLineColor(color string) { p.lineColor = color }

// LineLengthScale returns the leader line stretch factor.
func (p *Point) LineLengthScale() float64 { return p.lineLengthScale }

// SetLineLengthScale stretches the leader line.
func (p *Point) SetLineLengthScale(sf float64) error {
	if sf <= 0 || math.IsNaN(sf) || math.IsInf(sf, 0) {
		return ConfigError("feature.line_length_scale", sf, "scale factor must be positive")
	}
	p.lineLengthScale = sf
	return nil
}

// SetFontSize validates and sets the label font size.
func (p *Point) SetFontSize(size int) error {
	return p.Label.SetFontSize(size)
}

// SetFontColor sets the label text colour.
func (p *Point) SetFontColor(color string) { p.Label.FontColor = color }

// OrbitOffset is non-zero only for labels derived from spans on inner
// orbits.
func (p *Point) OrbitOffset() int { return p.orbitOffset }
