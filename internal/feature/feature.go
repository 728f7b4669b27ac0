// Package feature describes the annotations drawn on a plasmid map: spans
// (intervals) and single-position markers (points), plus the labels derived
// from them at render time.
package feature

// Library defaults shared by every feature.
const (
	DefaultColor          = "#069AF3"
	DefaultFontColor      = "black"
	DefaultLineColor      = "black"
	DefaultLabelFontSize  = 7
	DefaultLineWidthScale = 1.0
	DefaultLineLengthSF   = 1.0
)

// Kind tags the variant a Feature belongs to.
type Kind int

const (
	KindInterval Kind = iota + 1
	KindPoint
)

func (k Kind) String() string {
	switch k {
	case KindInterval:
		return "interval"
	case KindPoint:
		return "point"
	default:
		return "unknown"
	}
}

// Feature is either an *Interval or a *Point.
type Feature interface {
	Kind() Kind
	Name() string
	// Attach records owner as the feature's exclusive canvas.
	Attach(owner any) error
}

// attachment enforces that a feature belongs to at most one canvas.
type attachment struct {
	owner any
}

func (a *attachment) Attach(owner any) error {
	if a.owner != nil {
		return &Error{Op: "feature.attach", Kind: KindConfiguration, Err: ErrAlreadyAttached}
	}
	a.owner = owner
	return nil
}

// Attached reports whether the feature already belongs to a canvas.
func (a *attachment) Attached() bool {
	return a.owner != nil
}

// Label is the text capability carried by features that can be labelled.
type Label struct {
	Text      string
	FontColor string
	FontSize  int
}

// NewLabel returns a label with the library font defaults.
func NewLabel(text string) Label {
	return Label{
		Text:      text,
		FontColor: DefaultFontColor,
		FontSize:  DefaultLabelFontSize,
	}
}

// SetFontSize validates and sets the font size.
func (l *Label) SetFontSize(size int) error {
	if size <= 0 {
		return ConfigError("label.font_size", size, "font size must be positive")
	}
	l.FontSize = size
	return nil
}
