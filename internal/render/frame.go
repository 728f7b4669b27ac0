package render

import "github.com/inodb/plasmidcanvas/internal/geometry"

// Frame maps a scene viewport onto a square output of Size pixels. Pixel y
// grows downwards.
type Frame struct {
	Viewport Viewport
	Size     int
	DPI      float64
}

// Scale returns pixels per scene unit.
func (f Frame) Scale() float64 {
	if f.Viewport.HalfExtent <= 0 {
		return 1
	}
	return float64(f.Size) / (2 * f.Viewport.HalfExtent)
}

// ToPixel converts a scene point to output pixel coordinates.
func (f Frame) ToPixel(p geometry.Point) (float64, float64) {
	s := f.Scale()
	h := f.Viewport.HalfExtent
	return (p.X - f.Viewport.Center.X + h) * s, (f.Viewport.Center.Y + h - p.Y) * s
}

// FontPixels converts a font size in points to pixels.
func (f Frame) FontPixels(points float64) float64 {
	return points * f.DPI / 72
}

// SceneLength converts a pixel length back to scene units.
func (f Frame) SceneLength(px float64) float64 {
	return px / f.Scale()
}

// PixelAngle converts a counter-clockwise band angle to the clockwise
// convention of y-down pixel space.
func PixelAngle(deg float64) float64 {
	return geometry.Mod(-deg, 360)
}
