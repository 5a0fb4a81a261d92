// Package theme derives the report accent colour from the brand logo.
package theme

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	_ "image/gif"  // register decoder
	_ "image/jpeg" // register decoder
	_ "image/png"  // register decoder
	"os"
)

// Accent is the colour used for section headers.
type Accent struct {
	R, G, B int
	// LogoPath is set when the logo decoded and can be drawn.
	LogoPath string
	// LogoType is the decoded image format ("png", "jpeg" or "gif").
	LogoType string
}

// DefaultAccent is used whenever the logo cannot be sampled.
var DefaultAccent = Accent{R: 200, G: 16, B: 46}

// ErrNoColor is returned when the logo has no opaque, non-white pixel.
var ErrNoColor = errors.New("logo has no qualifying pixel")

// sampleStep is the pixel stride on both axes.
const sampleStep = 2

// minAlpha is the lowest 8-bit alpha still counted as visible.
const minAlpha = 2

// Sample returns the most frequent visible, non-white colour of the logo at
// path. On any failure it returns DefaultAccent together with the error;
// the returned Accent is always usable.
func Sample(path string) (Accent, error) {
	file, err := os.Open(path) // #nosec G304 -- logo path comes from configuration
	if err != nil {
		return DefaultAccent, fmt.Errorf("error opening logo: %w", err)
	}
	defer func() {
		_ = file.Close()
	}()

	img, format, err := image.Decode(file)
	if err != nil {
		return DefaultAccent, fmt.Errorf("error decoding logo: %w", err)
	}

	c, ok := DominantColor(img)
	if !ok {
		return Accent{R: DefaultAccent.R, G: DefaultAccent.G, B: DefaultAccent.B, LogoPath: path, LogoType: format}, ErrNoColor
	}
	return Accent{R: int(c.R), G: int(c.G), B: int(c.B), LogoPath: path, LogoType: format}, nil
}

// DominantColor counts every second pixel on both axes, column by column,
// skipping near transparent and pure white pixels. Ties go to the colour
// seen first.
func DominantColor(img image.Image) (color.NRGBA, bool) {
	type rgb struct{ r, g, b uint8 }

	counts := make(map[rgb]int)
	var order []rgb

	bounds := img.Bounds()
	for x := bounds.Min.X; x < bounds.Max.X; x += sampleStep {
		for y := bounds.Min.Y; y < bounds.Max.Y; y += sampleStep {
			c := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
			if c.A < minAlpha {
				continue
			}
			if c.R == 255 && c.G == 255 && c.B == 255 {
				continue
			}
			key := rgb{c.R, c.G, c.B}
			if counts[key] == 0 {
				order = append(order, key)
			}
			counts[key]++
		}
	}

	if len(order) == 0 {
		return color.NRGBA{}, false
	}

	best := order[0]
	for _, key := range order[1:] {
		if counts[key] > counts[best] {
			best = key
		}
	}
	return color.NRGBA{R: best.r, G: best.g, B: best.b, A: 255}, true
}
