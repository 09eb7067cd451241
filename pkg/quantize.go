package pkg

import (
	"fmt"
	"image"
	"image/color"

	"github.com/ericpauley/go-quantize/quantize"
	"github.com/hansbonini/zsprtools/pkg/snes"
)

// GeneratePalette builds a one-mail palette for img. Index 0 is the color of
// the top-left pixel (the transparent background); indices 1-15 come from a
// median-cut quantization of the image. Missing slots repeat index 0.
func GeneratePalette(img image.Image, round bool) ([]snes.Color, error) {
	b := img.Bounds()
	if b.Empty() {
		return nil, fmt.Errorf("cannot generate a palette from an empty image")
	}

	background := snes.ColorFromRGBA(img.At(b.Min.X, b.Min.Y))
	if round {
		background = background.Round()
	}

	colors := make([]snes.Color, 0, snes.MailColors)
	colors = append(colors, background)
	seen := map[snes.Color]bool{background: true}

	q := quantize.MedianCutQuantizer{}
	for _, c := range q.Quantize(make(color.Palette, 0, snes.MailColors), img) {
		sc := snes.ColorFromRGBA(c)
		if round {
			sc = sc.Round()
		}
		if seen[sc] || len(colors) == snes.MailColors {
			continue
		}
		seen[sc] = true
		colors = append(colors, sc)
	}

	for len(colors) < snes.MailColors {
		colors = append(colors, background)
	}
	return colors, nil
}
