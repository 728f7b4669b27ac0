// Package geometry converts positions on a circular domain to angles and
// angles to points on a circle.
//
// Angles are in degrees, measured clockwise from the top of the circle
// ("12 o'clock"). Positions increase in the same direction.
package geometry

import (
	"fmt"
	"math"
)

// Point is a location in scene coordinates (y grows upwards).
type Point struct {
	X float64
	Y float64
}

// Pt returns the point (x, y).
func Pt(x, y float64) Point {
	return Point{X: x, Y: y}
}

// String implements fmt.Stringer.
func (p Point) String() string {
	return fmt.Sprintf("(%g, %g)", p.X, p.Y)
}

// Distance returns the Euclidean distance between p and o.
func (p Point) Distance(o Point) float64 {
	return math.Hypot(o.X-p.X, o.Y-p.Y)
}

// Mod returns a modulo m with the sign of m, so Mod(-10, 360) == 350.
func Mod(a, m float64) float64 {
	r := math.Mod(a, m)
	if r != 0 && (r < 0) != (m < 0) {
		r += m
	}
	return r
}

func mustPositive(total int) {
	if total <= 0 {
		panic(fmt.Sprintf("geometry: domain size must be positive, got %d", total))
	}
}

// PositionToAngle converts a domain position to a clockwise-from-top angle.
func PositionToAngle(pos float64, total int) float64 {
	mustPositive(total)
	return pos / float64(total) * 360
}

// AngleToPosition is the inverse of PositionToAngle, rounded half to even.
func AngleToPosition(deg float64, total int) int {
	mustPositive(total)
	return int(math.RoundToEven(deg / 360 * float64(total)))
}

// AngleToRenderAngle converts a clockwise-from-top angle to the
// counter-clockwise-from-3-o'clock convention used by arc primitives.
// The result is in [0, 360).
func AngleToRenderAngle(cw float64) float64 {
	return Mod(90-cw, 360)
}

// PolarToPoint returns the point at radius and clockwise-from-top angle deg
// around center. Sine and cosine are swapped relative to the usual math
// convention to realise the clockwise-from-top orientation.
func PolarToPoint(center Point, radius, deg float64) Point {
	sin, cos := math.Sincos(deg * math.Pi / 180)
	return Point{
		X: center.X + radius*sin,
		Y: center.Y + radius*cos,
	}
}

// ClockwiseDistance returns how far b lies clockwise from a.
func ClockwiseDistance(a, b float64, total int) float64 {
	mustPositive(total)
	return Mod(b-a, float64(total))
}

// CircularLength returns the shortest arc distance between a and b,
// independent of direction.
func CircularLength(a, b float64, total int) float64 {
	mustPositive(total)
	t := float64(total)
	return math.Min(Mod(b-a, t), Mod(a-b, t))
}

// CircularMidpoint returns the point halfway along the shorter arc between a
// and b. Ties go to the clockwise arc.
//
//	CircularMidpoint(350, 10, 360) == 0
func CircularMidpoint(a, b float64, total int) float64 {
	mustPositive(total)
	t := float64(total)
	cw := Mod(b-a, t)
	ccw := Mod(a-b, t)
	if cw <= ccw {
		return Mod(a+cw/2, t)
	}
	return Mod(a-ccw/2, t)
}

// Linspace returns n evenly spaced samples from start to stop inclusive.
func Linspace(start, stop float64, n int) []float64 {
	if n <= 0 {
		return nil
	}
	if n == 1 {
		return []float64{start}
	}
	out := make([]float64, n)
	step := (stop - start) / float64(n-1)
	for i := range out {
		out[i] = start + step*float64(i)
	}
	out[n-1] = stop
	return out
}
