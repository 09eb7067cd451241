package snes

import (
	"fmt"

	"github.com/hansbonini/zsprtools/pkg/common"
)

// Planar tile sizes
const (
	PlaneTileSize = 32                       // Bytes per 4bpp tile
	SheetSize     = NumTiles * PlaneTileSize // 0x7000
)

// BPPI maps each of the 32 bytes of a 4bpp tile to its {row, bit plane}.
// Planes 0 and 1 are interleaved in the first 16 bytes, planes 2 and 3 in the last 16.
var BPPI = [PlaneTileSize][2]int{
	{0, 0}, {0, 1}, {1, 0}, {1, 1}, {2, 0}, {2, 1}, {3, 0}, {3, 1},
	{4, 0}, {4, 1}, {5, 0}, {5, 1}, {6, 0}, {6, 1}, {7, 0}, {7, 1},
	{0, 2}, {0, 3}, {1, 2}, {1, 3}, {2, 2}, {2, 3}, {3, 2}, {3, 3},
	{4, 2}, {4, 3}, {5, 2}, {5, 3}, {6, 2}, {6, 3}, {7, 2}, {7, 3},
}

// EncodeTile converts an index tile into its 32-byte bit-plane form.
// Bit 7 of each byte is column 0.
func EncodeTile(t *IndexTile) [PlaneTileSize]byte {
	var out [PlaneTileSize]byte
	for i, rp := range BPPI {
		row, plane := rp[0], rp[1]
		var b byte
		for col := 0; col < TileWidth; col++ {
			b <<= 1
			b |= t[row][col] >> plane & 1
		}
		out[i] = b
	}
	return out
}

// DecodeTile converts 32 bit-plane bytes back into an index tile
func DecodeTile(data [PlaneTileSize]byte) IndexTile {
	var t IndexTile
	for i, rp := range BPPI {
		row, plane := rp[0], rp[1]
		for col := 0; col < TileWidth; col++ {
			if data[i]&(0x80>>col) != 0 {
				t[row][col] |= 1 << plane
			}
		}
	}
	return t
}

// EncodeSheet converts every tile of the sheet, in tile order, into 0x7000 bytes
func EncodeSheet(s *TileSheet) []byte {
	out := make([]byte, 0, SheetSize)
	for id := 0; id < s.Len(); id++ {
		block := EncodeTile(s.TileAt(id))
		out = append(out, block[:]...)
	}
	return out
}

// DecodeSheet converts 0x7000 bit-plane bytes back into a tile sheet
func DecodeSheet(data []byte) (*TileSheet, error) {
	if len(data) != SheetSize {
		return nil, fmt.Errorf("%w: sprite data is %d bytes, want %d", common.ErrNotContainerFormat, len(data), SheetSize)
	}

	sheet := NewTileSheet()
	for id := 0; id < NumTiles; id++ {
		var block [PlaneTileSize]byte
		copy(block[:], data[id*PlaneTileSize:])
		*sheet.TileAt(id) = DecodeTile(block)
	}
	return sheet, nil
}
