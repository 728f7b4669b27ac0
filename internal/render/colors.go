package render

import (
	"fmt"
	"image/color"
	"math"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// namedColors covers the single-letter and CSS colour names accepted by the
// map definitions, plus the tab10 palette.
var namedColors = map[string]string{
	"b": "#0000ff", "g": "#008000", "r": "#ff0000", "c": "#00bfbf",
	"m": "#bf00bf", "y": "#bfbf00", "k": "#000000", "w": "#ffffff",

	"black":      "#000000",
	"white":      "#ffffff",
	"grey":       "#808080",
	"gray":       "#808080",
	"lightgrey":  "#d3d3d3",
	"lightgray":  "#d3d3d3",
	"darkgrey":   "#a9a9a9",
	"darkgray":   "#a9a9a9",
	"silver":     "#c0c0c0",
	"red":        "#ff0000",
	"darkred":    "#8b0000",
	"maroon":     "#800000",
	"salmon":     "#fa8072",
	"coral":      "#ff7f50",
	"orange":     "#ffa500",
	"darkorange": "#ff8c00",
	"gold":       "#ffd700",
	"yellow":     "#ffff00",
	"khaki":      "#f0e68c",
	"olive":      "#808000",
	"lime":       "#00ff00",
	"green":      "#008000",
	"darkgreen":  "#006400",
	"lightgreen": "#90ee90",
	"teal":       "#008080",
	"cyan":       "#00ffff",
	"turquoise":  "#40e0d0",
	"skyblue":    "#87ceeb",
	"lightblue":  "#add8e6",
	"blue":       "#0000ff",
	"darkblue":   "#00008b",
	"navy":       "#000080",
	"indigo":     "#4b0082",
	"purple":     "#800080",
	"violet":     "#ee82ee",
	"magenta":    "#ff00ff",
	"pink":       "#ffc0cb",
	"brown":      "#a52a2a",
	"tan":        "#d2b48c",

	"tab:blue":   "#1f77b4",
	"tab:orange": "#ff7f0e",
	"tab:green":  "#2ca02c",
	"tab:red":    "#d62728",
	"tab:purple": "#9467bd",
	"tab:brown":  "#8c564b",
	"tab:pink":   "#e377c2",
	"tab:gray":   "#7f7f7f",
	"tab:olive":  "#bcbd22",
	"tab:cyan":   "#17becf",
}

// ParseColor resolves a colour name or a #rgb / #rrggbb hex string.
func ParseColor(s string) (colorful.Color, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	if hex, ok := namedColors[key]; ok {
		key = hex
	}
	if !strings.HasPrefix(key, "#") {
		key = "#" + key
	}
	c, err := colorful.Hex(key)
	if err != nil {
		return colorful.Color{}, fmt.Errorf("parse color %q: %w", s, err)
	}
	return c, nil
}

// MustColor is ParseColor falling back to black for unknown colours.
func MustColor(s string) colorful.Color {
	c, err := ParseColor(s)
	if err != nil {
		return colorful.Color{}
	}
	return c
}

// NRGBA returns the colour with alpha applied, clamped to [0, 1].
func NRGBA(s string, alpha float64) color.NRGBA {
	r, g, b := MustColor(s).RGB255()
	a := math.Max(0, math.Min(1, alpha))
	return color.NRGBA{R: r, G: g, B: b, A: uint8(math.Round(a * 255))}
}

// HexColor returns the canonical #rrggbb form of s.
func HexColor(s string) string {
	return MustColor(s).Hex()
}
