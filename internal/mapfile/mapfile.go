// Package mapfile reads plasmid map definitions from YAML and builds
// canvases from them.
package mapfile

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/inodb/plasmidcanvas/internal/feature"
	"github.com/inodb/plasmidcanvas/internal/plasmid"
	"github.com/inodb/plasmidcanvas/internal/render"
)

// Feature kinds accepted in a definition.
const (
	KindRectangle = "rectangle"
	KindArrow     = "arrow"
	KindSite      = "site"
	KindLabel     = "label"
)

// Definition is a map definition as written in YAML.
type Definition struct {
	Name      string       `yaml:"name"`
	BasePairs int          `yaml:"base_pairs"`
	Style     Style        `yaml:"style,omitempty"`
	Features  []FeatureDef `yaml:"features"`
}

// Style holds the optional canvas styling.
type Style struct {
	Color               string   `yaml:"color,omitempty"`
	TickColor           string   `yaml:"tick_color,omitempty"`
	MarkerStyle         string   `yaml:"marker_style,omitempty"`
	TickStyle           string   `yaml:"tick_style,omitempty"`
	NumberOfMarkers     *int     `yaml:"number_of_markers,omitempty"`
	MarkerDistanceScale *float64 `yaml:"marker_distance_scale,omitempty"`
	LineWidthScale      *float64 `yaml:"line_width_scale,omitempty"`
	LabelFontSize       *int     `yaml:"label_font_size,omitempty"`
}

// FeatureDef is one feature entry. Which fields apply depends on Kind.
type FeatureDef struct {
	Kind      string `yaml:"kind"`
	Name      string `yaml:"name"`
	Start     *int   `yaml:"start,omitempty"`
	End       *int   `yaml:"end,omitempty"`
	Position  *int   `yaml:"position,omitempty"`
	Direction *int   `yaml:"direction,omitempty"`

	Color          string   `yaml:"color,omitempty"`
	LineWidthScale *float64 `yaml:"line_width_scale,omitempty"`
	// LabelStyles left out keeps the default; an empty list disables labels.
	LabelStyles   *[]string `yaml:"label_styles,omitempty"`
	LabelFontSize *int      `yaml:"label_font_size,omitempty"`

	LineColor       string   `yaml:"line_color,omitempty"`
	LineLengthScale *float64 `yaml:"line_length_scale,omitempty"`
	FontColor       string   `yaml:"font_color,omitempty"`
	FontSize        *int     `yaml:"font_size,omitempty"`
}

// Load reads and builds the definition at path.
func Load(path string) (*plasmid.Plasmid, Definition, error) {
	def, err := Read(path)
	if err != nil {
		return nil, Definition{}, err
	}
	p, err := def.Build()
	if err != nil {
		return nil, Definition{}, fmt.Errorf("%s: %w", path, err)
	}
	return p, def, nil
}

// Read parses the definition at path without building it.
func Read(path string) (Definition, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Definition{}, fmt.Errorf("read map definition: %w", err)
	}
	def, err := Decode(b)
	if err != nil {
		return Definition{}, fmt.Errorf("%s: %w", path, err)
	}
	return def, nil
}

// Decode parses YAML into a Definition.
func Decode(b []byte) (Definition, error) {
	var def Definition
	if err := yaml.Unmarshal(b, &def); err != nil {
		return Definition{}, &feature.Error{Op: "mapfile.decode", Kind: feature.KindConfiguration, Err: err}
	}
	return def, nil
}

// Encode renders a Definition as YAML.
func Encode(def Definition) ([]byte, error) {
	b, err := yaml.Marshal(def)
	if err != nil {
		return nil, fmt.Errorf("encode map definition: %w", err)
	}
	return b, nil
}

// Build validates the definition and returns the populated canvas. The
// first invalid field aborts the build.
func (d Definition) Build() (*plasmid.Plasmid, error) {
	p, err := plasmid.New(d.Name, d.BasePairs)
	if err != nil {
		return nil, err
	}
	if err := d.Style.apply(p); err != nil {
		return nil, err
	}
	for i, fd := range d.Features {
		f, err := fd.build()
		if err != nil {
			return nil, fmt.Errorf("features[%d]: %w", i, err)
		}
		if err := p.Add(f); err != nil {
			return nil, fmt.Errorf("features[%d]: %w", i, err)
		}
	}
	return p, nil
}

// checkColor rejects colours neither backend can resolve.
func checkColor(field, color string) error {
	if color == "" {
		return nil
	}
	if _, err := render.ParseColor(color); err != nil {
		return feature.ConfigError("mapfile.validate", color, "%s: unknown colour", field)
	}
	return nil
}

func (s Style) apply(p *plasmid.Plasmid) error {
	for field, c := range map[string]string{"color": s.Color, "tick_color": s.TickColor} {
		if err := checkColor(field, c); err != nil {
			return err
		}
	}
	if s.Color != "" {
		p.SetColor(s.Color)
	}
	if s.TickColor != "" {
		p.SetTickColor(s.TickColor)
	}
	if s.MarkerStyle != "" {
		if err := p.SetMarkerStyle(s.MarkerStyle); err != nil {
			return err
		}
	}
	if s.TickStyle != "" {
		if err := p.SetTickStyle(s.TickStyle); err != nil {
			return err
		}
	}
	if s.NumberOfMarkers != nil {
		if err := p.SetNumberOfMarkers(*s.NumberOfMarkers); err != nil {
			return err
		}
	}
	if s.MarkerDistanceScale != nil {
		if err := p.SetMarkerDistanceScale(*s.MarkerDistanceScale); err != nil {
			return err
		}
	}
	if s.LineWidthScale != nil {
		if err := p.SetLineWidthScale(*s.LineWidthScale); err != nil {
			return err
		}
	}
	if s.LabelFontSize != nil {
		if err := p.SetFeatureLabelFontSize(*s.LabelFontSize); err != nil {
			return err
		}
	}
	return nil
}

func missing(field, kind string) error {
	return feature.ConfigError("mapfile.validate", field, "%s is required for kind %q", field, kind)
}

func (fd FeatureDef) build() (feature.Feature, error) {
	kind := strings.ToLower(strings.TrimSpace(fd.Kind))
	switch kind {
	case KindRectangle, KindArrow:
		return fd.buildInterval(kind)
	case KindSite, KindLabel:
		return fd.buildPoint(kind)
	default:
		return nil, feature.ConfigError("mapfile.validate", fd.Kind,
			"unsupported feature kind, supported: %s, %s, %s, %s", KindRectangle, KindArrow, KindSite, KindLabel)
	}
}

func (fd FeatureDef) buildInterval(kind string) (*feature.Interval, error) {
	if fd.Start == nil {
		return nil, missing("start", kind)
	}
	if fd.End == nil {
		return nil, missing("end", kind)
	}

	var iv *feature.Interval
	if kind == KindArrow {
		dir := int(feature.Clockwise)
		if fd.Direction != nil {
			dir = *fd.Direction
		}
		var err error
		if iv, err = feature.NewArrow(fd.Name, *fd.Start, *fd.End, dir); err != nil {
			return nil, err
		}
	} else {
		iv = feature.NewRectangle(fd.Name, *fd.Start, *fd.End)
	}

	if err := checkColor("color", fd.Color); err != nil {
		return nil, err
	}
	if fd.Color != "" {
		iv.SetColor(fd.Color)
	}
	if fd.LineWidthScale != nil {
		if err := iv.SetLineWidthScale(*fd.LineWidthScale); err != nil {
			return nil, err
		}
	}
	if fd.LabelStyles != nil {
		if err := iv.SetLabelStyles(*fd.LabelStyles...); err != nil {
			return nil, err
		}
	}
	if fd.LabelFontSize != nil {
		if err := iv.SetLabelFontSize(*fd.LabelFontSize); err != nil {
			return nil, err
		}
	}
	return iv, nil
}

func (fd FeatureDef) buildPoint(kind string) (*feature.Point, error) {
	if fd.Position == nil {
		return nil, missing("position", kind)
	}

	var pt *feature.Point
	if kind == KindSite {
		pt = feature.NewRestrictionSite(fd.Name, *fd.Position)
	} else {
		pt = feature.NewPointLabel(fd.Name, *fd.Position)
	}

	for field, c := range map[string]string{"line_color": fd.LineColor, "font_color": fd.FontColor} {
		if err := checkColor(field, c); err != nil {
			return nil, err
		}
	}
	if fd.LineColor != "" {
		pt.SetLineColor(fd.LineColor)
	}
	if fd.LineLengthScale != nil {
		if err := pt.SetLineLengthScale(*fd.LineLengthScale); err != nil {
			return nil, err
		}
	}
	if fd.FontColor != "" {
		pt.SetFontColor(fd.FontColor)
	}
	if fd.FontSize != nil {
		if err := pt.SetFontSize(*fd.FontSize); err != nil {
			return nil, err
		}
	}
	return pt, nil
}
