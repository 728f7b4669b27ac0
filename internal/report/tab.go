// Package report writes layout reports for a plasmid map.
package report

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/inodb/plasmidcanvas/internal/feature"
	"github.com/inodb/plasmidcanvas/internal/plasmid"
)

// TabWriter writes the placement of each feature in tab-delimited format.
type TabWriter struct {
	w       *bufio.Writer
	columns []string
}

// NewTabWriter creates a new tab-delimited writer.
func NewTabWriter(w io.Writer) *TabWriter {
	return &TabWriter{
		w: bufio.NewWriter(w),
		columns: []string{
			"#Feature",
			"Kind",
			"Start",
			"End",
			"Length",
			"Direction",
			"Orbit",
			"Radius",
			"Label",
		},
	}
}

// WriteHeader writes the header line.
func (tw *TabWriter) WriteHeader() error {
	_, err := tw.w.WriteString(strings.Join(tw.columns, "\t") + "\n")
	return err
}

// WritePlacement writes one laid-out interval.
func (tw *TabWriter) WritePlacement(pl plasmid.Placement, total int) error {
	iv := pl.Interval

	direction := "-"
	if iv.Shape() == feature.ShapeArrow {
		if iv.Direction() == feature.CounterClockwise {
			direction = "-1"
		} else {
			direction = "+1"
		}
	}

	labels := make([]string, 0, 2)
	for _, s := range iv.LabelStyles() {
		labels = append(labels, string(s))
	}
	label := "-"
	if len(labels) > 0 {
		label = strings.Join(labels, ",")
	}

	return tw.row(
		iv.Name(),
		iv.Shape().String(),
		strconv.Itoa(iv.Start()),
		strconv.Itoa(iv.End()),
		strconv.Itoa(iv.Length(total)),
		direction,
		strconv.Itoa(pl.Orbit),
		fmt.Sprintf("%.2f", pl.Radius),
		label,
	)
}

// WritePoint writes a point label. Points sit on the ring and have no orbit.
func (tw *TabWriter) WritePoint(pt *feature.Point) error {
	pos := strconv.Itoa(pt.Position())
	return tw.row(pt.Name(), "point", pos, pos, "0", "-", "-", "-", pt.Text())
}

func (tw *TabWriter) row(values ...string) error {
	for i, v := range values {
		if v == "" {
			values[i] = "-"
		}
	}
	_, err := tw.w.WriteString(strings.Join(values, "\t") + "\n")
	return err
}

// Flush flushes any buffered data to the underlying writer.
func (tw *TabWriter) Flush() error {
	return tw.w.Flush()
}

// Write lays out p and writes the full report to w: a header, every interval
// in placement order, then every point.
func Write(w io.Writer, p *plasmid.Plasmid) error {
	tw := NewTabWriter(w)
	if err := tw.WriteHeader(); err != nil {
		return err
	}
	for _, pl := range p.Placements() {
		if err := tw.WritePlacement(pl, p.BasePairs()); err != nil {
			return err
		}
	}
	for _, pt := range p.Points() {
		if err := tw.WritePoint(pt); err != nil {
			return err
		}
	}
	return tw.Flush()
}
