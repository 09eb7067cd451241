package snes

import (
	"fmt"

	"github.com/hansbonini/zsprtools/pkg/common"
)

// Tile geometry
const (
	TileWidth  = 8
	TileHeight = 8
	TilesX     = Width / TileWidth   // 16
	TilesY     = Height / TileHeight // 56
	NumTiles   = TilesX * TilesY     // 896
)

// IndexTile is an 8x8 grid of 4-bit palette indices, addressed [row][column]
type IndexTile [TileHeight][TileWidth]uint8

// TileSheet holds all tiles of a sprite sheet in a flat arena.
// Tile (row, col) lives at row*TilesX+col, left to right then top to bottom.
type TileSheet struct {
	tiles [NumTiles]IndexTile
}

// NewTileSheet returns an all-zero sheet
func NewTileSheet() *TileSheet {
	return &TileSheet{}
}

// TileID returns the arena index of the tile at (row, col)
func TileID(row, col int) int {
	return row*TilesX + col
}

// Tile returns the tile at (row, col)
func (s *TileSheet) Tile(row, col int) *IndexTile {
	return &s.tiles[TileID(row, col)]
}

// TileAt returns the tile with arena index id
func (s *TileSheet) TileAt(id int) *IndexTile {
	return &s.tiles[id]
}

// Len returns the number of tiles
func (s *TileSheet) Len() int {
	return NumTiles
}

// PixelIndex returns the palette index of sheet pixel (x, y)
func (s *TileSheet) PixelIndex(x, y int) uint8 {
	return s.Tile(y/TileHeight, x/TileWidth)[y%TileHeight][x%TileWidth]
}

// SetPixelIndex sets the palette index of sheet pixel (x, y)
func (s *TileSheet) SetPixelIndex(x, y int, index uint8) {
	s.Tile(y/TileHeight, x/TileWidth)[y%TileHeight][x%TileWidth] = index & 0x0F
}

// IndexStats describes pixels that had no palette match
type IndexStats struct {
	Unmatched  int   // Number of pixels without a match
	FirstX     int   // Column of the first unmatched pixel
	FirstY     int   // Row of the first unmatched pixel
	FirstColor Color // Color of the first unmatched pixel
}

// TileIndexer maps raster pixels to palette indices
type TileIndexer struct {
	// Strict rejects pixels whose color is not in the palette instead of using index 0
	Strict bool
}

// NewTileIndexer creates a new tile indexer
func NewTileIndexer(strict bool) *TileIndexer {
	return &TileIndexer{Strict: strict}
}

// Index splits the raster into 896 tiles of palette indices.
// Each pixel takes the position of the first equal palette entry modulo 16.
func (ix *TileIndexer) Index(r *Raster, pal Palette) (*TileSheet, IndexStats, error) {
	lookup := pal.Lookup()
	sheet := NewTileSheet()
	var stats IndexStats

	for y := 0; y < Height; y++ {
		for x := 0; x < Width; x++ {
			c := r.At(x, y)
			index, ok := lookup[c]
			if !ok {
				if ix.Strict {
					return nil, stats, fmt.Errorf("%w: pixel (%d,%d) color %s", common.ErrUnmatchedColor, x, y, c)
				}
				if stats.Unmatched == 0 {
					stats.FirstX, stats.FirstY, stats.FirstColor = x, y, c
				}
				stats.Unmatched++
				index = 0
			}
			sheet.SetPixelIndex(x, y, index)
		}
	}

	return sheet, stats, nil
}
