package mapfile

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inodb/plasmidcanvas/internal/feature"
	"github.com/inodb/plasmidcanvas/internal/plasmid"
)

func TestLoad_PBR322(t *testing.T) {
	p, def, err := Load(filepath.Join("testdata", "pBR322.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "pBR322", p.Name())
	assert.Equal(t, 4361, p.BasePairs())
	assert.Equal(t, plasmid.MarkerAuto, p.MarkerStyle())
	assert.Equal(t, 1.25, p.LineWidthScale())
	assert.Len(t, p.Intervals(), 6)
	assert.Len(t, p.Points(), 5)
	assert.Len(t, def.Features, 11)

	rop := p.Intervals()[1]
	assert.Equal(t, "rop", rop.Name())
	assert.Equal(t, feature.ShapeArrow, rop.Shape())
	assert.Equal(t, feature.Clockwise, rop.Direction())
	assert.Equal(t, "purple", rop.Color())
	assert.Equal(t, 1.5, rop.LineWidthScale())
	assert.Equal(t, []feature.LabelStyle{feature.LabelOnCircle}, rop.LabelStyles())

	ori := p.Intervals()[3]
	assert.Equal(t, feature.CounterClockwise, ori.Direction())

	promoter := p.Intervals()[5]
	assert.Equal(t, []feature.LabelStyle{feature.LabelOffCircle}, promoter.LabelStyles(), "default kept when omitted")

	assert.Equal(t, "BfuAI - BspMI (1054)", p.Points()[1].Text())
}

func TestRead_MissingFile(t *testing.T) {
	_, err := Read(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestDecode_Malformed(t *testing.T) {
	_, err := Decode([]byte("name: [unterminated"))
	require.Error(t, err)
	assert.ErrorIs(t, err, feature.ErrConfiguration)
}

func build(t *testing.T, doc string) (*plasmid.Plasmid, error) {
	t.Helper()
	def, err := Decode([]byte(doc))
	require.NoError(t, err)
	return def.Build()
}

func TestBuild_Errors(t *testing.T) {
	cases := []struct {
		name    string
		doc     string
		kind    error
		message string
	}{
		{
			name:    "zero base pairs",
			doc:     "name: x\nbase_pairs: 0\n",
			kind:    feature.ErrConfiguration,
			message: "base pairs must be positive",
		},
		{
			name:    "bad marker style",
			doc:     "name: x\nbase_pairs: 100\nstyle:\n  marker_style: sparse\n",
			kind:    feature.ErrConfiguration,
			message: "sparse",
		},
		{
			name:    "unknown kind",
			doc:     "name: x\nbase_pairs: 100\nfeatures:\n  - kind: hexagon\n    name: h\n",
			kind:    feature.ErrConfiguration,
			message: "features[0]",
		},
		{
			name:    "missing end",
			doc:     "name: x\nbase_pairs: 100\nfeatures:\n  - kind: rectangle\n    name: r\n    start: 1\n",
			kind:    feature.ErrConfiguration,
			message: "end is required",
		},
		{
			name:    "missing position",
			doc:     "name: x\nbase_pairs: 100\nfeatures:\n  - kind: site\n    name: s\n",
			kind:    feature.ErrConfiguration,
			message: "position is required",
		},
		{
			name:    "bad direction",
			doc:     "name: x\nbase_pairs: 100\nfeatures:\n  - kind: arrow\n    name: a\n    start: 1\n    end: 5\n    direction: 0\n",
			kind:    feature.ErrConfiguration,
			message: "features[0]",
		},
		{
			name:    "bad label style",
			doc:     "name: x\nbase_pairs: 100\nfeatures:\n  - kind: rectangle\n    name: r\n    start: 1\n    end: 5\n    label_styles: [sideways]\n",
			kind:    feature.ErrConfiguration,
			message: "sideways",
		},
		{
			name:    "unknown canvas colour",
			doc:     "name: x\nbase_pairs: 100\nstyle:\n  color: blurple\n",
			kind:    feature.ErrConfiguration,
			message: "blurple",
		},
		{
			name:    "unknown feature colour",
			doc:     "name: x\nbase_pairs: 100\nfeatures:\n  - kind: arrow\n    name: a\n    start: 1\n    end: 5\n    color: reddish\n",
			kind:    feature.ErrConfiguration,
			message: "features[0]",
		},
		{
			name:    "unknown leader colour",
			doc:     "name: x\nbase_pairs: 100\nfeatures:\n  - kind: site\n    name: s\n    position: 5\n    line_color: \"#zzz\"\n",
			kind:    feature.ErrConfiguration,
			message: "line_color",
		},
		{
			name:    "out of bounds",
			doc:     "name: x\nbase_pairs: 100\nfeatures:\n  - kind: rectangle\n    name: ok\n    start: 1\n    end: 5\n  - kind: rectangle\n    name: r\n    start: 1\n    end: 101\n",
			kind:    feature.ErrBounds,
			message: "features[1]",
		},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := build(t, c.doc)
			require.Error(t, err)
			assert.ErrorIs(t, err, c.kind)
			assert.Contains(t, err.Error(), c.message)
		})
	}
}

func TestBuild_EmptyLabelStylesDisableLabels(t *testing.T) {
	p, err := build(t, "name: x\nbase_pairs: 100\nfeatures:\n  - kind: rectangle\n    name: r\n    start: 1\n    end: 5\n    label_styles: []\n")
	require.NoError(t, err)
	assert.Empty(t, p.Intervals()[0].LabelStyles())
}

func TestBuild_PointStyling(t *testing.T) {
	p, err := build(t, `
name: x
base_pairs: 100
features:
  - kind: label
    name: promoter
    position: 40
    line_color: blue
    line_length_scale: 1.5
    font_color: green
    font_size: 11
`)
	require.NoError(t, err)
	pt := p.Points()[0]
	assert.Equal(t, "promoter", pt.Text())
	assert.Equal(t, "blue", pt.LineColor())
	assert.Equal(t, 1.5, pt.LineLengthScale())
	assert.Equal(t, "green", pt.Label.FontColor)
	assert.Equal(t, 11, pt.Label.FontSize)
}

func TestEncode_RoundTrip(t *testing.T) {
	def, err := Read(filepath.Join("testdata", "pBR322.yaml"))
	require.NoError(t, err)

	out, err := Encode(def)
	require.NoError(t, err)
	again, err := Decode(out)
	require.NoError(t, err)
	assert.Equal(t, def, again)
}
