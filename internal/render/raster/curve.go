package raster

import (
	"math"
	"sort"

	"github.com/inodb/plasmidcanvas/internal/geometry"
)

// arcPath is a polyline parameterised by distance travelled along it.
type arcPath struct {
	points []geometry.Point
	// cum[i] is the length of the path up to points[i].
	cum []float64
}

func newArcPath(points []geometry.Point) arcPath {
	cum := make([]float64, len(points))
	for i := 1; i < len(points); i++ {
		cum[i] = cum[i-1] + points[i-1].Distance(points[i])
	}
	return arcPath{points: points, cum: cum}
}

func (a arcPath) length() float64 { return a.cum[len(a.cum)-1] }

// at returns the point s along the path and the tangent angle there in
// radians. Distances past either end extend the end segment.
func (a arcPath) at(s float64) (geometry.Point, float64) {
	n := len(a.points)
	// First segment whose end lies at or past s.
	i := sort.SearchFloat64s(a.cum, s)
	switch {
	case i <= 0:
		i = 1
	case i >= n:
		i = n - 1
	}
	// Skip zero-length segments so the tangent is defined.
	for i < n-1 && a.cum[i] == a.cum[i-1] {
		i++
	}

	p0, p1 := a.points[i-1], a.points[i]
	seg := a.cum[i] - a.cum[i-1]
	angle := math.Atan2(p1.Y-p0.Y, p1.X-p0.X)
	if seg == 0 {
		return p0, angle
	}
	t := (s - a.cum[i-1]) / seg
	return geometry.Pt(p0.X+(p1.X-p0.X)*t, p0.Y+(p1.Y-p0.Y)*t), angle
}
