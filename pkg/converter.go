// Package pkg provides the palette, tile and ZSPR container processing for
// converting sprite sheets into SNES 4bpp sprites.
// This file contains the conversion pipeline from image to ZSPR container.
package pkg

import (
	"fmt"
	"image"
	"image/png"
	"os"

	"github.com/hansbonini/zsprtools/pkg/common"
	"github.com/hansbonini/zsprtools/pkg/snes"
)

// ConversionRequest holds everything a single conversion needs.
// It is passed by value and never modified by the converter.
type ConversionRequest struct {
	Image         image.Image
	Palette       PaletteSource
	SpriteName    string
	AuthorName    string
	AuthorNameROM string
	Round         bool // Truncate raster and palette to 15-bit precision
	Strict        bool // Fail on pixels whose color is not in the palette
}

// ConversionResult is the outcome of a successful conversion
type ConversionResult struct {
	Sprite  *ZSPRFile
	Palette snes.Palette
	Stats   snes.IndexStats
}

// Converter turns sprite sheet images into ZSPR containers.
// A Converter holds no per-conversion state and may be shared between goroutines.
type Converter struct {
	Palettes PaletteReader
}

// NewConverter creates a converter that reads palettes with the default reader
func NewConverter() *Converter {
	return &Converter{Palettes: NewPaletteReader()}
}

// Convert validates the image dimensions, reads the palette, indexes the
// tiles and builds the container.
func (c *Converter) Convert(req ConversionRequest) (*ConversionResult, error) {
	if req.Image == nil {
		return nil, fmt.Errorf("%w: no image", common.ErrBadDimensions)
	}
	raster, err := snes.RasterFromImage(req.Image)
	if err != nil {
		return nil, err
	}

	if req.Palette == nil {
		return nil, fmt.Errorf("%w: no palette source", common.ErrMalformedPalette)
	}

	// the raster is rounded before in-band extraction sees it
	if req.Round {
		raster = raster.Round()
	}
	pal, err := c.Palettes.Read(req.Palette, raster)
	if err != nil {
		return nil, err
	}
	common.LogInfo(common.InfoPaletteLoaded, req.Palette.Kind(), snes.PaletteSize)

	if req.Round {
		pal = pal.Round()
		common.LogDebug(common.DebugRasterRounded)
	}

	sheet, stats, err := snes.NewTileIndexer(req.Strict).Index(raster, pal)
	if err != nil {
		return nil, err
	}
	if stats.Unmatched > 0 {
		common.LogWarn(common.WarnUnmatchedPixels, stats.Unmatched, stats.FirstX, stats.FirstY, stats.FirstColor)
	}
	common.LogDebug(common.InfoTilesIndexed, sheet.Len())

	sprite := NewZSPRFile(sheet, pal)
	sprite.SetSpriteName(req.SpriteName)
	sprite.SetAuthorName(req.AuthorName)
	sprite.SetAuthorNameROM(req.AuthorNameROM)

	return &ConversionResult{Sprite: sprite, Palette: pal, Stats: stats}, nil
}

// LoadImage decodes the PNG image at path
func LoadImage(path string) (image.Image, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, common.FormatError(common.ErrFailedToLoadImage, err)
	}
	defer file.Close()

	img, err := png.Decode(file)
	if err != nil {
		return nil, common.FormatError(common.ErrFailedToDecodeImage, err)
	}
	return img, nil
}
