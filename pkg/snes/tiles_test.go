package snes

import (
	"testing"

	"github.com/hansbonini/zsprtools/pkg/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testPalette returns a palette whose mail m index i is NewColor(m*16+i, i*8, 100+m)
func testPalette() Palette {
	var pal Palette
	for i := 0; i < BaseColors; i++ {
		pal[i] = NewColor(i, (i%16)*8, 100+i/16)
	}
	pal.DeriveGloves()
	return pal
}

func blankRaster(t *testing.T, c Color) *Raster {
	t.Helper()
	r, err := NewRaster(Width, Height, make([]byte, RasterSize))
	require.NoError(t, err)
	for y := 0; y < Height; y++ {
		for x := 0; x < Width; x++ {
			r.Set(x, y, c)
		}
	}
	return r
}

func TestTileID(t *testing.T) {
	assert.Equal(t, 0, TileID(0, 0))
	assert.Equal(t, 15, TileID(0, 15))
	assert.Equal(t, 16, TileID(1, 0))
	assert.Equal(t, NumTiles-1, TileID(TilesY-1, TilesX-1))
}

func TestTileIndexer_Placement(t *testing.T) {
	pal := testPalette()
	r := blankRaster(t, pal[0])

	// One marker pixel per interesting tile, each with a distinct index
	markers := []struct {
		x, y  int
		index uint8
		tile  int
		row   int
		col   int
	}{
		{0, 0, 1, 0, 0, 0},
		{7, 0, 2, 0, 0, 7},
		{8, 0, 3, 1, 0, 0},
		{127, 0, 4, 15, 0, 7},
		{0, 8, 5, 16, 0, 0},
		{13, 21, 6, TileID(2, 1), 5, 5},
		{127, 447, 7, NumTiles - 1, 7, 7},
	}
	for _, m := range markers {
		r.Set(m.x, m.y, pal[m.index])
	}

	sheet, stats, err := NewTileIndexer(true).Index(r, pal)
	require.NoError(t, err)
	assert.Zero(t, stats.Unmatched)

	for _, m := range markers {
		assert.Equal(t, m.index, sheet.TileAt(m.tile)[m.row][m.col], "pixel (%d,%d)", m.x, m.y)
		assert.Equal(t, m.index, sheet.PixelIndex(m.x, m.y))
	}
}

func TestTileIndexer_OtherMailResolvesModulo16(t *testing.T) {
	pal := testPalette()
	r := blankRaster(t, pal[0])
	r.Set(3, 3, pal[16*2+9]) // red mail, index 9

	sheet, _, err := NewTileIndexer(true).Index(r, pal)
	require.NoError(t, err)
	assert.Equal(t, uint8(9), sheet.PixelIndex(3, 3))
}

func TestTileIndexer_FirstMatchWins(t *testing.T) {
	pal := testPalette()
	dup := NewColor(1, 2, 3)
	pal[20] = dup // blue mail index 4
	pal[5] = dup  // green mail index 5, earlier in the scan

	r := blankRaster(t, pal[0])
	r.Set(0, 0, dup)

	sheet, _, err := NewTileIndexer(true).Index(r, pal)
	require.NoError(t, err)
	assert.Equal(t, uint8(5), sheet.PixelIndex(0, 0))
}

func TestTileIndexer_Unmatched(t *testing.T) {
	pal := testPalette()
	stray := NewColor(255, 255, 255)

	t.Run("lenient falls back to zero", func(t *testing.T) {
		r := blankRaster(t, pal[3])
		r.Set(10, 20, stray)
		r.Set(11, 20, stray)

		sheet, stats, err := NewTileIndexer(false).Index(r, pal)
		require.NoError(t, err)
		assert.Equal(t, 2, stats.Unmatched)
		assert.Equal(t, 10, stats.FirstX)
		assert.Equal(t, 20, stats.FirstY)
		assert.Equal(t, stray, stats.FirstColor)
		assert.Equal(t, uint8(0), sheet.PixelIndex(10, 20))
		assert.Equal(t, uint8(3), sheet.PixelIndex(12, 20))
	})

	t.Run("strict rejects", func(t *testing.T) {
		r := blankRaster(t, pal[3])
		r.Set(10, 20, stray)

		_, _, err := NewTileIndexer(true).Index(r, pal)
		assert.ErrorIs(t, err, common.ErrUnmatchedColor)
	})
}

func TestTileIndexer_IgnoresAlpha(t *testing.T) {
	pal := testPalette()
	r := blankRaster(t, pal[2])
	r.Bytes()[0] = 0x00 // alpha of pixel (0,0)

	sheet, stats, err := NewTileIndexer(true).Index(r, pal)
	require.NoError(t, err)
	assert.Zero(t, stats.Unmatched)
	assert.Equal(t, uint8(2), sheet.PixelIndex(0, 0))
}
