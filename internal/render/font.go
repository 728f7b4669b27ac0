package render

import (
	"sync"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gobolditalic"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/goregular"
)

// FontFamily is the family name written into vector output for the faces
// returned by Font.
const FontFamily = "Go, DejaVu Sans, sans-serif"

var (
	fontsOnce sync.Once
	fonts     [4]*truetype.Font
	fontsErr  error
)

func loadFonts() {
	for i, ttf := range [][]byte{goregular.TTF, gobold.TTF, goitalic.TTF, gobolditalic.TTF} {
		f, err := truetype.Parse(ttf)
		if err != nil {
			fontsErr = err
			return
		}
		fonts[i] = f
	}
}

// Font returns the embedded Go font for the given style.
func Font(bold, italic bool) (*truetype.Font, error) {
	fontsOnce.Do(loadFonts)
	if fontsErr != nil {
		return nil, fontsErr
	}
	i := 0
	if bold {
		i |= 1
	}
	if italic {
		i |= 2
	}
	return fonts[i], nil
}

// NewFace returns a face of the given pixel size.
func NewFace(f *truetype.Font, px float64) font.Face {
	return truetype.NewFace(f, &truetype.Options{Size: px, DPI: 72, Hinting: font.HintingNone})
}

// LineHeightPixels returns ascent plus descent of the regular face at px
// pixels.
func LineHeightPixels(px float64) float64 {
	f, err := Font(false, false)
	if err != nil || px <= 0 {
		return px
	}
	face := NewFace(f, px)
	defer face.Close()
	m := face.Metrics()
	return float64(m.Ascent+m.Descent) / 64
}
