package vector

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"image/jpeg"
	"image/png"

	"github.com/chromedp/chromedp"
)

const jpegQuality = 95

// rasterize loads the SVG document in headless Chrome and screenshots the
// root element.
func rasterize(ctx context.Context, doc []byte, chromePath string, asJPEG bool) ([]byte, error) {
	dataURI := "data:image/svg+xml;base64," + base64.StdEncoding.EncodeToString(doc)

	opts := append(chromedp.DefaultExecAllocatorOptions[:], chromedp.Headless)
	if chromePath != "" {
		opts = append(opts, chromedp.ExecPath(chromePath))
	}
	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, opts...)
	defer cancelAlloc()

	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)
	defer cancelBrowser()

	var shot []byte
	tasks := chromedp.Tasks{
		chromedp.Navigate(dataURI),
		chromedp.WaitVisible(`svg`, chromedp.ByQuery),
		chromedp.Screenshot(`svg`, &shot, chromedp.ByQuery),
	}
	if err := chromedp.Run(browserCtx, tasks); err != nil {
		return nil, fmt.Errorf("headless chrome: %w", err)
	}
	if len(shot) == 0 {
		return nil, errors.New("headless chrome returned an empty screenshot")
	}
	if !asJPEG {
		return shot, nil
	}

	img, err := png.Decode(bytes.NewReader(shot))
	if err != nil {
		return nil, fmt.Errorf("decode screenshot: %w", err)
	}
	var out bytes.Buffer
	if err := jpeg.Encode(&out, img, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return nil, fmt.Errorf("encode jpeg: %w", err)
	}
	return out.Bytes(), nil
}
