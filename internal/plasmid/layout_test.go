package plasmid

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inodb/plasmidcanvas/internal/feature"
	"github.com/inodb/plasmidcanvas/internal/geometry"
	"github.com/inodb/plasmidcanvas/internal/render"
)

func quietPlasmid(t *testing.T) *Plasmid {
	t.Helper()
	p := newPBR322(t)
	require.NoError(t, p.SetMarkerStyle("none"))
	require.NoError(t, p.SetTickStyle("none"))
	return p
}

func TestLayout_DrawOrder(t *testing.T) {
	p := quietPlasmid(t)

	a := feature.NewRectangle("A", 0, 100)
	require.NoError(t, a.SetLabelStyles())
	b, err := feature.NewArrow("B", 50, 150, 1)
	require.NoError(t, err)
	site := feature.NewRestrictionSite("EcoRI", 4359)

	require.NoError(t, p.Add(site))
	require.NoError(t, p.Add(b))
	require.NoError(t, p.Add(a))

	scene, err := p.Layout(&recorder{})
	require.NoError(t, err)
	require.Equal(t, 10, scene.Len())

	ring := scene.Shapes[0].(render.Band)
	assert.Equal(t, RingAlpha, ring.Alpha)
	assert.InDelta(t, 360, ring.Sweep(), 1e-9)
	assert.Equal(t, DefaultColor, ring.Color)

	title := scene.Shapes[1].(render.Text)
	assert.Equal(t, "pBR322", title.Content)
	assert.True(t, title.Bold)
	assert.Equal(t, "4361bp", scene.Shapes[2].(render.Text).Content)

	// A sorts first and stays on orbit 0; B overlaps it and moves inwards.
	aBand := scene.Shapes[3].(render.Band)
	assert.Equal(t, 1000.0, aBand.Radius)
	assert.IsType(t, render.Polygon{}, scene.Shapes[4])
	bBand := scene.Shapes[5].(render.Band)
	assert.Equal(t, 875.0, bBand.Radius)

	assert.IsType(t, render.Line{}, scene.Shapes[6])
	assert.Equal(t, "B (50 - 150)", scene.Shapes[7].(render.Text).Content)
	assert.IsType(t, render.Line{}, scene.Shapes[8])
	assert.Equal(t, "EcoRI (4359)", scene.Shapes[9].(render.Text).Content)
}

func TestLayout_LabelsDrawnAfterTicksAndMarkers(t *testing.T) {
	p := newPBR322(t)
	require.NoError(t, p.Add(feature.NewRectangle("tet", 86, 1276)))

	scene, err := p.Layout(&recorder{})
	require.NoError(t, err)

	last := scene.Shapes[scene.Len()-1].(render.Text)
	assert.Equal(t, "tet (86 - 1276)", last.Content)

	marker := scene.Shapes[scene.Len()-3].(render.Text)
	assert.True(t, marker.Italic)
	assert.Equal(t, "4000", marker.Content)
	assert.Equal(t, markerAlpha, marker.Alpha)
}

func TestLayout_FontBackfill(t *testing.T) {
	p := quietPlasmid(t)
	require.NoError(t, p.SetFeatureLabelFontSize(12))

	plain := feature.NewRectangle("plain", 0, 100)
	custom := feature.NewRectangle("custom", 2000, 2100)
	require.NoError(t, custom.SetLabelFontSize(9))
	require.NoError(t, p.Add(plain))
	require.NoError(t, p.Add(custom))

	scene, err := p.Layout(&recorder{})
	require.NoError(t, err)

	sizes := map[string]float64{}
	for _, s := range scene.Shapes {
		if txt, ok := s.(render.Text); ok && txt.Content != "pBR322" && txt.Content != "4361bp" {
			sizes[txt.Content] = txt.Size
		}
	}
	assert.Equal(t, 12.0, sizes["plain (0 - 100)"])
	assert.Equal(t, 9.0, sizes["custom (2000 - 2100)"])
	assert.Equal(t, feature.DefaultLabelFontSize, plain.LabelFontSize(), "backfill does not persist")
}

func TestLayout_Idempotent(t *testing.T) {
	p := quietPlasmid(t)
	spans := []*feature.Interval{
		feature.NewRectangle("A", 0, 100),
		feature.NewRectangle("B", 50, 150),
		feature.NewRectangle("C", 120, 200),
	}
	for _, s := range spans {
		require.NoError(t, p.Add(s))
	}

	first, err := p.Layout(&recorder{})
	require.NoError(t, err)
	spans[2].SetOrbit(9)
	second, err := p.Layout(&recorder{})
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 2, spans[2].Orbit())
}

func TestLayout_EmptyCanvas(t *testing.T) {
	p := quietPlasmid(t)
	scene, err := p.Layout(nil)
	require.NoError(t, err)
	assert.Equal(t, 3, scene.Len())
	assert.Equal(t, geometry.Pt(0, 0), scene.Shapes[1].(render.Text).At)
}

func TestPlot_BeginsBeforeDrawing(t *testing.T) {
	p := quietPlasmid(t)
	require.NoError(t, p.Add(feature.NewRectangle("A", 0, 100)))

	b := &recorder{}
	require.NoError(t, p.Plot(b))
	require.NoError(t, p.Plot(b))

	require.Len(t, b.viewports, 2)
	assert.Equal(t, 1600.0, b.viewports[0].HalfExtent)
	assert.Len(t, b.shapes, 6, "second plot starts from a clean backend")
}

func TestMarkerAngles_Auto(t *testing.T) {
	cases := []struct {
		bp   int
		want []int
	}{
		{4361, []int{0, 1000, 2000, 3000, 4000}},
		{2100, []int{0, 1000}},
		{1500, []int{0, 500, 1000}},
		{5, []int{0, 1, 2, 3, 4}},
	}
	for _, c := range cases {
		p, err := New("p", c.bp)
		require.NoError(t, err)

		var got []int
		for _, deg := range p.markerAngles() {
			got = append(got, geometry.AngleToPosition(deg, c.bp))
		}
		assert.Equal(t, c.want, got, "base pairs %d", c.bp)
	}
}

func TestMarkerAngles_NMarkersAndNone(t *testing.T) {
	p := newPBR322(t)
	require.NoError(t, p.SetMarkerStyle("n_markers"))
	require.NoError(t, p.SetNumberOfMarkers(4))
	assert.Equal(t, []float64{0, 90, 180, 270}, p.markerAngles())

	require.NoError(t, p.SetMarkerStyle("none"))
	assert.Empty(t, p.markerAngles())
	assert.Empty(t, p.markerShapes())
}

func TestTickAngles(t *testing.T) {
	p := newPBR322(t)
	assert.Len(t, p.tickAngles(), 44)

	small, err := New("tiny", 5)
	require.NoError(t, err)
	assert.Len(t, small.tickAngles(), 5)

	require.NoError(t, p.SetTickStyle("none"))
	assert.Empty(t, p.tickShapes())
}

func TestTickShapes(t *testing.T) {
	p := newPBR322(t)
	p.SetTickColor("black")
	tick := p.tickShapes()[0].(render.Line)
	assert.InDelta(t, 1000, tick.From.Y, 1e-9)
	assert.InDelta(t, 1030, tick.To.Y, 1e-9)
	assert.Equal(t, "black", tick.Color)
	assert.Equal(t, tickAlpha, tick.Alpha)
}

func TestPlacements(t *testing.T) {
	p := quietPlasmid(t)
	require.NoError(t, p.Add(feature.NewRectangle("C", 120, 200)))
	require.NoError(t, p.Add(feature.NewRectangle("A", 0, 100)))
	require.NoError(t, p.Add(feature.NewRectangle("B", 50, 150)))

	got := p.Placements()
	require.Len(t, got, 3)
	names := []string{got[0].Interval.Name(), got[1].Interval.Name(), got[2].Interval.Name()}
	assert.Equal(t, []string{"A", "B", "C"}, names)
	assert.Equal(t, []int{0, 1, 2}, []int{got[0].Orbit, got[1].Orbit, got[2].Orbit})
	assert.Equal(t, 1000.0, got[0].Radius)
	assert.Equal(t, 750.0, got[2].Radius)
}
