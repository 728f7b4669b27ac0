package feature

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func names(ivs []*Interval) []string {
	out := make([]string, len(ivs))
	for i, iv := range ivs {
		out[i] = iv.Name()
	}
	return out
}

func TestBuildCircularIndex_Empty(t *testing.T) {
	idx := BuildCircularIndex(1000, nil)
	assert.Empty(t, idx.FindOverlaps(100))
}

func TestCircularIndex_SingleSpan(t *testing.T) {
	idx := BuildCircularIndex(1000, []*Interval{NewRectangle("A", 100, 200)})

	assert.Equal(t, []string{"A"}, names(idx.FindOverlaps(150)))
	assert.Len(t, idx.FindOverlaps(100), 1, "start boundary inclusive")
	assert.Len(t, idx.FindOverlaps(200), 1, "end boundary inclusive")
	assert.Empty(t, idx.FindOverlaps(99), "before start")
	assert.Empty(t, idx.FindOverlaps(201), "after end")
}

func TestCircularIndex_Overlapping(t *testing.T) {
	idx := BuildCircularIndex(1000, []*Interval{
		NewRectangle("C", 200, 400),
		NewRectangle("A", 100, 300),
		NewRectangle("B", 150, 250),
	})

	assert.Equal(t, []string{"A", "B"}, names(idx.FindOverlaps(175)))
	assert.Equal(t, []string{"A", "B", "C"}, names(idx.FindOverlaps(250)))
	assert.Equal(t, []string{"C"}, names(idx.FindOverlaps(350)))
}

func TestCircularIndex_LongSpanBeforeShortOne(t *testing.T) {
	idx := BuildCircularIndex(1000, []*Interval{
		NewRectangle("long", 0, 900),
		NewRectangle("short", 10, 20),
	})
	assert.Equal(t, []string{"long"}, names(idx.FindOverlaps(500)))
}

func TestCircularIndex_Wraparound(t *testing.T) {
	idx := BuildCircularIndex(4361, []*Interval{
		NewRectangle("origin", 4200, 100),
		NewRectangle("tcr", 86, 1276),
	})

	assert.Equal(t, []string{"origin"}, names(idx.FindOverlaps(4300)))
	assert.Equal(t, []string{"origin"}, names(idx.FindOverlaps(0)))
	assert.Equal(t, []string{"tcr", "origin"}, names(idx.FindOverlaps(90)))
	assert.Equal(t, []string{"tcr"}, names(idx.FindOverlaps(500)))
	assert.Equal(t, []string{"origin"}, names(idx.FindOverlaps(4361+50)), "positions are taken modulo the domain")
}
