package shape

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inodb/plasmidcanvas/internal/feature"
	"github.com/inodb/plasmidcanvas/internal/geometry"
	"github.com/inodb/plasmidcanvas/internal/render"
)

type fixedHeight float64

func (h fixedHeight) TextHeight(string, float64) float64 { return float64(h) }

func ring(total int) Context {
	return Context{
		Total:     total,
		Radius:    1000,
		LineWidth: 100,
		Measurer:  fixedHeight(10),
	}
}

func assertPoint(t *testing.T, want, got geometry.Point) {
	t.Helper()
	assert.InDelta(t, want.X, got.X, 1e-6, "x of %v", got)
	assert.InDelta(t, want.Y, got.Y, 1e-6, "y of %v", got)
}

func TestFor(t *testing.T) {
	arrow, err := feature.NewArrow("a", 0, 10, 1)
	require.NoError(t, err)

	cases := []struct {
		f    feature.Feature
		want Variant
	}{
		{feature.NewRectangle("r", 0, 10), VariantRectangle},
		{arrow, VariantArrow},
		{feature.NewRestrictionSite("EcoRI", 4359), VariantOffCircleLabel},
	}
	for _, c := range cases {
		b, err := For(c.f)
		require.NoError(t, err)
		assert.Equal(t, c.want, b.Variant(), c.want.String())
	}
}

func TestFor_Unknown(t *testing.T) {
	_, err := For(nil)
	assert.Error(t, err)
}

func TestRectangle_Band(t *testing.T) {
	iv := feature.NewRectangle("r", 0, 90)
	require.NoError(t, iv.SetLabelStyles())
	b, _ := For(iv)

	out := b.Build(ring(360))
	require.Len(t, out.Body, 1)
	assert.Empty(t, out.Labels)

	band := out.Body[0].(render.Band)
	assert.Equal(t, 1000.0, band.Radius)
	assert.Equal(t, 100.0, band.Width)
	assert.InDelta(t, 0, band.Theta1, 1e-9)
	assert.InDelta(t, 90, band.Theta2, 1e-9)
	assert.InDelta(t, 90, band.Sweep(), 1e-9)
	assert.Equal(t, feature.DefaultColor, band.Color)
}

func TestRectangle_WidthScaleShiftsRadius(t *testing.T) {
	iv := feature.NewRectangle("r", 0, 90)
	require.NoError(t, iv.SetLineWidthScale(2))

	band := Rectangle{Feature: iv, Start: 0, End: 90}.Build(ring(360)).Body[0].(render.Band)
	assert.Equal(t, 200.0, band.Width)
	assert.Equal(t, 1050.0, band.Radius)
}

func TestRectangle_Wraps(t *testing.T) {
	iv := feature.NewRectangle("wrap", 350, 10)
	band := Rectangle{Feature: iv, Start: 350, End: 10}.Build(ring(360)).Body[0].(render.Band)

	assert.InDelta(t, 80, band.Theta1, 1e-9)
	assert.InDelta(t, 100, band.Theta2, 1e-9)
	assert.InDelta(t, 20, band.Sweep(), 1e-9)
}

func TestRectangle_WholeRing(t *testing.T) {
	iv := feature.NewRectangle("all", 0, 360)
	band := Rectangle{Feature: iv, Start: 0, End: 360}.Build(ring(360)).Body[0].(render.Band)
	assert.InDelta(t, 360, band.Sweep(), 1e-9)
}

func TestHeadLength(t *testing.T) {
	assert.Equal(t, 150.0, HeadLength(0, 1000, 10000))
	assert.Equal(t, 50.0, HeadLength(0, 100, 10000))
}

func TestArrow_Clockwise(t *testing.T) {
	iv, err := feature.NewArrow("ori", 0, 1000, 1)
	require.NoError(t, err)

	out := Arrow{Feature: iv}.Build(ring(10000))
	require.Len(t, out.Body, 2)

	tri := out.Body[0].(render.Polygon)
	require.Len(t, tri.Points, 3)
	assertPoint(t, geometry.PolarToPoint(geometry.Point{}, 950, 36), tri.Points[0])
	assertPoint(t, geometry.PolarToPoint(geometry.Point{}, 900, 30.6), tri.Points[1])
	assertPoint(t, geometry.PolarToPoint(geometry.Point{}, 1000, 30.6), tri.Points[2])

	band := out.Body[1].(render.Band)
	assert.InDelta(t, 30.6, band.Sweep(), 1e-9)
	assert.InDelta(t, 90, band.Theta2, 1e-9)

	require.Len(t, out.Labels, 2, "one leader line and its text")
	text := out.Labels[1].(render.Text)
	assert.Equal(t, "ori (0 - 1000)", text.Content)
}

func TestArrow_CounterClockwise(t *testing.T) {
	iv, err := feature.NewArrow("ampr", 0, 1000, -1)
	require.NoError(t, err)

	out := Arrow{Feature: iv}.Build(ring(10000))
	tri := out.Body[0].(render.Polygon)
	assertPoint(t, geometry.Point{X: 0, Y: 950}, tri.Points[0])
	assertPoint(t, geometry.PolarToPoint(geometry.Point{}, 900, 5.4), tri.Points[1])

	band := out.Body[1].(render.Band)
	assert.InDelta(t, geometry.AngleToRenderAngle(5.4), band.Theta2, 1e-9)
	assert.InDelta(t, 30.6, band.Sweep(), 1e-9)
}

func TestArrow_ScaledHeadBack(t *testing.T) {
	iv, err := feature.NewArrow("wide", 0, 1000, 1)
	require.NoError(t, err)
	require.NoError(t, iv.SetLineWidthScale(3))

	tri := Arrow{Feature: iv}.Build(ring(10000)).Body[0].(render.Polygon)
	assertPoint(t, geometry.PolarToPoint(geometry.Point{}, 800, 30.6), tri.Points[1])
	assertPoint(t, geometry.PolarToPoint(geometry.Point{}, 1100, 30.6), tri.Points[2])
}

func TestOffCircleLabel_Geometry(t *testing.T) {
	site := feature.NewRestrictionSite("PstI", 90)
	out := OffCircleLabel{Label: site}.Build(ring(360))

	assert.Empty(t, out.Body)
	require.Len(t, out.Labels, 2)

	line := out.Labels[0].(render.Line)
	assertPoint(t, geometry.Point{X: 1000}, line.From)
	assertPoint(t, geometry.Point{X: 1200}, line.To)
	assert.Equal(t, LeaderLineAlpha, line.Alpha)
	assert.Equal(t, feature.DefaultLineColor, line.Color)

	text := out.Labels[1].(render.Text)
	assert.Equal(t, "PstI (90)", text.Content)
	assert.Equal(t, render.AlignLeft, text.HAlign)
	assert.Equal(t, render.VAlignCenter, text.VAlign)
	assert.Equal(t, float64(feature.DefaultLabelFontSize), text.Size)
	assertPoint(t, line.To, text.At)
}

func TestOffCircleLabel_Alignment(t *testing.T) {
	cases := []struct {
		pos  int
		want render.HAlign
	}{
		{0, render.AlignLeft},
		{180, render.AlignLeft},
		{181, render.AlignRight},
		{359, render.AlignRight},
	}
	for _, c := range cases {
		out := OffCircleLabel{Label: feature.NewPointLabel("x", c.pos)}.Build(ring(360))
		assert.Equal(t, c.want, out.Labels[1].(render.Text).HAlign, "position %d", c.pos)
	}
}

func TestOffCircleLabel_OffsetAndScale(t *testing.T) {
	iv := feature.NewRectangle("inner", 80, 100)
	iv.SetOrbit(2)
	lbl := iv.OffCircleLabel(360, 7)

	line := OffCircleLabel{Label: lbl}.Build(ring(360)).Labels[0].(render.Line)
	assertPoint(t, geometry.Point{X: 1400}, line.To)

	p := feature.NewPointLabel("far", 90)
	require.NoError(t, p.SetLineLengthScale(2))
	line = OffCircleLabel{Label: p}.Build(ring(360)).Labels[0].(render.Line)
	assertPoint(t, geometry.Point{X: 1400}, line.To)
}

func TestOffCircleLabel_ScaleOnlyStretchesLeader(t *testing.T) {
	iv := feature.NewRectangle("inner", 80, 100)
	iv.SetOrbit(2)
	lbl := iv.OffCircleLabel(360, 7)
	require.NoError(t, lbl.SetLineLengthScale(1.5))

	out := OffCircleLabel{Label: lbl}.Build(ring(360))
	line := out.Labels[0].(render.Line)
	// The ring radius is fixed; only lw*(2+offset) grows with the scale.
	assertPoint(t, geometry.Point{X: 1000}, line.From)
	assertPoint(t, geometry.Point{X: 1600}, line.To)
	assert.Equal(t, line.To, out.Labels[1].(render.Text).At)
}

func TestOnCircleLabel_TopHalf(t *testing.T) {
	lbl := feature.NewRectangle("rop", 10, 50).OnCircleLabel(8)
	out := OnCircleLabel{Label: lbl}.Build(ring(360))

	require.Len(t, out.Labels, 1)
	ct := out.Labels[0].(render.CurvedText)
	assert.Equal(t, render.CurveBottom, ct.Align)
	assert.Equal(t, "rop", ct.Content)
	assert.Equal(t, 8.0, ct.Size)
	require.Len(t, ct.Curve, CurveSamples)
	assertPoint(t, geometry.PolarToPoint(geometry.Point{}, 940, 10), ct.Curve[0])
	assertPoint(t, geometry.PolarToPoint(geometry.Point{}, 940, 50), ct.Curve[CurveSamples-1])
}

func TestOnCircleLabel_BottomHalfReversed(t *testing.T) {
	lbl := feature.NewRectangle("bom", 150, 210).OnCircleLabel(7)
	ct := OnCircleLabel{Label: lbl}.Build(ring(360)).Labels[0].(render.CurvedText)

	assert.Equal(t, render.CurveTop, ct.Align)
	require.Len(t, ct.Curve, CurveSamples)
	assertPoint(t, geometry.PolarToPoint(geometry.Point{}, 940, 210), ct.Curve[0])
	assertPoint(t, geometry.PolarToPoint(geometry.Point{}, 940, 150), ct.Curve[CurveSamples-1])
}

func TestOnCircleLabel_WrapsInTwoPieces(t *testing.T) {
	lbl := feature.NewRectangle("wrap", 350, 10).OnCircleLabel(7)
	ct := OnCircleLabel{Label: lbl}.Build(ring(360)).Labels[0].(render.CurvedText)

	assert.Equal(t, render.CurveBottom, ct.Align)
	require.Len(t, ct.Curve, 2*CurveSamples)
	assertPoint(t, geometry.PolarToPoint(geometry.Point{}, 940, 350), ct.Curve[0])
	assertPoint(t, geometry.PolarToPoint(geometry.Point{}, 940, 10), ct.Curve[2*CurveSamples-1])
}

func TestOnCircleLabel_NoMeasurer(t *testing.T) {
	ctx := ring(360)
	ctx.Measurer = nil
	lbl := feature.NewRectangle("r", 10, 50).OnCircleLabel(7)
	ct := OnCircleLabel{Label: lbl}.Build(ctx).Labels[0].(render.CurvedText)
	assertPoint(t, geometry.PolarToPoint(geometry.Point{}, 950, 10), ct.Curve[0])
}

func TestIntervalLabels_FontOverride(t *testing.T) {
	iv := feature.NewRectangle("tet", 86, 1276)
	require.NoError(t, iv.SetLabelStyles("on-circle", "off-circle"))

	ctx := ring(4361)
	ctx.LabelFontSize = 11
	out := Rectangle{Feature: iv, Start: 86, End: 1276}.Build(ctx)

	require.Len(t, out.Labels, 3)
	assert.Equal(t, 11.0, out.Labels[0].(render.CurvedText).Size)
	assert.Equal(t, 11.0, out.Labels[2].(render.Text).Size)

	ctx.LabelFontSize = 0
	out = Rectangle{Feature: iv, Start: 86, End: 1276}.Build(ctx)
	assert.Equal(t, float64(feature.DefaultLabelFontSize), out.Labels[0].(render.CurvedText).Size)
	assert.Equal(t, feature.DefaultLabelFontSize, iv.LabelFontSize(), "feature is not mutated")
}
