package snes

import (
	"fmt"
	"image"

	"github.com/hansbonini/zsprtools/pkg/common"
	"golang.org/x/image/draw"
)

// Sprite sheet geometry
const (
	Width         = 128
	Height        = 448
	BytesPerPixel = 4 // A, B, G, R
	RasterSize    = Width * Height * BytesPerPixel

	// PaletteBlockX and PaletteBlockY locate the 8x8 block holding an in-band palette
	PaletteBlockX = Width - TileWidth
	PaletteBlockY = Height - TileHeight
)

// Raster is a validated 128x448 sprite sheet stored as A,B,G,R bytes per pixel
type Raster struct {
	pix []byte
}

// NewRaster validates the dimensions and byte length of an ABGR pixel buffer.
// The buffer is copied.
func NewRaster(width, height int, pix []byte) (*Raster, error) {
	if width != Width || height != Height {
		return nil, fmt.Errorf("%w: got %dx%d", common.ErrBadDimensions, width, height)
	}
	if len(pix) != width*height*BytesPerPixel {
		return nil, fmt.Errorf("%w: raster holds %d bytes, want %d", common.ErrBadDimensions, len(pix), RasterSize)
	}

	r := &Raster{pix: make([]byte, len(pix))}
	copy(r.pix, pix)
	return r, nil
}

// RasterFromImage converts an image into an ABGR raster.
// The image must be exactly 128x448; its origin may be anywhere.
func RasterFromImage(img image.Image) (*Raster, error) {
	b := img.Bounds()
	if b.Dx() != Width || b.Dy() != Height {
		return nil, fmt.Errorf("%w: got %dx%d", common.ErrBadDimensions, b.Dx(), b.Dy())
	}

	nrgba, ok := img.(*image.NRGBA)
	if !ok || nrgba.Rect.Min != (image.Point{}) {
		nrgba = image.NewNRGBA(image.Rect(0, 0, Width, Height))
		draw.Draw(nrgba, nrgba.Bounds(), img, b.Min, draw.Src)
	}

	r := &Raster{pix: make([]byte, RasterSize)}
	for y := 0; y < Height; y++ {
		for x := 0; x < Width; x++ {
			s := nrgba.PixOffset(x, y)
			d := (y*Width + x) * BytesPerPixel
			r.pix[d+0] = nrgba.Pix[s+3]
			r.pix[d+1] = nrgba.Pix[s+2]
			r.pix[d+2] = nrgba.Pix[s+1]
			r.pix[d+3] = nrgba.Pix[s+0]
		}
	}
	return r, nil
}

// Bytes returns the raw ABGR buffer
func (r *Raster) Bytes() []byte {
	return r.pix
}

// At returns the packed color of pixel (x, y); alpha is ignored
func (r *Raster) At(x, y int) Color {
	i := (y*Width + x) * BytesPerPixel
	return NewColor(int(r.pix[i+3]), int(r.pix[i+2]), int(r.pix[i+1]))
}

// Set stores an opaque color at pixel (x, y)
func (r *Raster) Set(x, y int, c Color) {
	i := (y*Width + x) * BytesPerPixel
	red, green, blue := c.RGB()
	r.pix[i+0] = 0xFF
	r.pix[i+1] = common.ClampToUint8(blue)
	r.pix[i+2] = common.ClampToUint8(green)
	r.pix[i+3] = common.ClampToUint8(red)
}

// Round returns a copy of the raster with every channel truncated to a multiple of 8.
// Alpha is kept as is.
func (r *Raster) Round() *Raster {
	out := &Raster{pix: make([]byte, len(r.pix))}
	for i, v := range r.pix {
		if i%BytesPerPixel == 0 {
			out.pix[i] = v
			continue
		}
		out.pix[i] = v &^ 7
	}
	return out
}

// PaletteBlock reads the bottom-right 8x8 block row by row as 64 colors
func (r *Raster) PaletteBlock() [BaseColors]Color {
	var block [BaseColors]Color
	for row := 0; row < TileHeight; row++ {
		for col := 0; col < TileWidth; col++ {
			block[row*TileWidth+col] = r.At(PaletteBlockX+col, PaletteBlockY+row)
		}
	}
	return block
}

// SetPaletteBlock writes 64 colors into the bottom-right 8x8 block row by row
func (r *Raster) SetPaletteBlock(block [BaseColors]Color) {
	for row := 0; row < TileHeight; row++ {
		for col := 0; col < TileWidth; col++ {
			r.Set(PaletteBlockX+col, PaletteBlockY+row, block[row*TileWidth+col])
		}
	}
}

// Image returns the raster as an NRGBA image
func (r *Raster) Image() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, Width, Height))
	for y := 0; y < Height; y++ {
		for x := 0; x < Width; x++ {
			s := (y*Width + x) * BytesPerPixel
			d := img.PixOffset(x, y)
			img.Pix[d+0] = r.pix[s+3]
			img.Pix[d+1] = r.pix[s+2]
			img.Pix[d+2] = r.pix[s+1]
			img.Pix[d+3] = r.pix[s+0]
		}
	}
	return img
}
