// Package orbit assigns concentric layers ("orbits") to span annotations so
// that overlapping spans are drawn at different radii. Orbit 0 is the
// outermost layer; larger orbits sit closer to the center.
package orbit

import (
	"sort"

	"github.com/inodb/plasmidcanvas/internal/feature"
)

// GapScale is the orbit spacing in multiples of the plasmid line width.
const GapScale = 1.25

// Assign sets the orbit of every span and returns the spans in placement
// order (ascending start, stable on input order).
//
// The running orbit is carried over from one span to the next rather than
// restarting at zero. Placed spans are swept once, in start order, and every
// placed span on the running orbit whose range contains the new span's start
// pushes the running orbit out by one. If the sweep leaves the orbit
// unchanged the span drops back to orbit 0. This cascades a start-ordered
// chain of overlapping spans across successive orbits.
func Assign(spans []*feature.Interval) []*feature.Interval {
	sorted := make([]*feature.Interval, len(spans))
	copy(sorted, spans)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Start() < sorted[j].Start()
	})

	placed := make([]*feature.Interval, 0, len(sorted))
	orbit := 0
	for _, f := range sorted {
		prePlacement := orbit

		// placed is appended in start order, so it is already sorted.
		for _, p := range placed {
			if p.Orbit() == orbit && p.Start() <= f.Start() && f.Start() <= p.End() {
				orbit++
			}
		}

		if orbit == prePlacement {
			orbit = 0
		}

		f.SetOrbit(orbit)
		placed = append(placed, f)
	}
	return placed
}

// Radius returns the render radius of an orbit.
func Radius(domainRadius, lineWidth float64, orbit int) float64 {
	return domainRadius - float64(orbit)*lineWidth*GapScale
}
