package report

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inodb/plasmidcanvas/internal/feature"
	"github.com/inodb/plasmidcanvas/internal/plasmid"
)

func TestTabWriter_WriteHeader(t *testing.T) {
	var buf bytes.Buffer
	w := NewTabWriter(&buf)

	require.NoError(t, w.WriteHeader())
	require.NoError(t, w.Flush())

	header := buf.String()
	for _, col := range []string{"#Feature", "Kind", "Start", "End", "Orbit", "Radius"} {
		assert.Contains(t, header, col)
	}
}

func TestWrite_PBR322(t *testing.T) {
	p, err := plasmid.New("pBR322", 4361)
	require.NoError(t, err)

	ampr, err := feature.NewArrow("ampr", 3293, 4153, -1)
	require.NoError(t, err)
	tcr, err := feature.NewArrow("tcr", 86, 1276, 1)
	require.NoError(t, err)
	wrap := feature.NewRectangle("wrap", 4300, 50)
	require.NoError(t, wrap.SetLabelStyles())

	require.NoError(t, p.Add(ampr))
	require.NoError(t, p.Add(tcr))
	require.NoError(t, p.Add(wrap))
	require.NoError(t, p.Add(feature.NewRestrictionSite("BamHI", 375)))

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, p))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 5)
	assert.True(t, strings.HasPrefix(lines[0], "#Feature\t"))
	assert.Equal(t, "tcr\tarrow\t86\t1276\t1190\t+1\t0\t1000.00\toff-circle", lines[1])
	assert.Equal(t, "ampr\tarrow\t3293\t4153\t860\t-1\t0\t1000.00\toff-circle", lines[2])
	assert.Equal(t, "wrap\trectangle\t4300\t50\t111\t-\t0\t1000.00\t-", lines[3])
	assert.Equal(t, "BamHI\tpoint\t375\t375\t0\t-\t-\t-\tBamHI (375)", lines[4])
}

func TestWrite_Orbits(t *testing.T) {
	p, err := plasmid.New("", 1000)
	require.NoError(t, err)
	require.NoError(t, p.Add(feature.NewRectangle("A", 0, 100)))
	require.NoError(t, p.Add(feature.NewRectangle("B", 50, 150)))

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, p))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 3)
	fields := strings.Split(lines[2], "\t")
	assert.Equal(t, "B", fields[0])
	assert.Equal(t, "1", fields[6])
	assert.Equal(t, "875.00", fields[7])
}
