package snes

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeTile_KnownBytes(t *testing.T) {
	tests := []struct {
		name  string
		row   int
		col   int
		value uint8
		byteN int
		want  byte
	}{
		{"plane 0 top-left", 0, 0, 0x1, 0, 0x80},
		{"plane 1 top-left", 0, 0, 0x2, 1, 0x80},
		{"plane 2 top-left", 0, 0, 0x4, 16, 0x80},
		{"plane 3 top-left", 0, 0, 0x8, 17, 0x80},
		{"plane 1 row 1 last column", 1, 7, 0x2, 3, 0x01},
		{"plane 3 bottom-right", 7, 7, 0x8, 31, 0x01},
		{"plane 0 row 4 column 3", 4, 3, 0x1, 8, 0x10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var tile IndexTile
			tile[tt.row][tt.col] = tt.value

			encoded := EncodeTile(&tile)
			for i, b := range encoded {
				if i == tt.byteN {
					assert.Equal(t, tt.want, b, "byte %d", i)
				} else {
					assert.Zero(t, b, "byte %d", i)
				}
			}
		})
	}
}

func TestEncodeTile_AllFifteen(t *testing.T) {
	var tile IndexTile
	for r := range tile {
		for c := range tile[r] {
			tile[r][c] = 15
		}
	}

	encoded := EncodeTile(&tile)
	for i, b := range encoded {
		assert.Equal(t, byte(0xFF), b, "byte %d", i)
	}
}

func TestTileRoundTrip_Boundary(t *testing.T) {
	var zero, fifteen, checker, ramp IndexTile
	for r := 0; r < TileHeight; r++ {
		for c := 0; c < TileWidth; c++ {
			fifteen[r][c] = 15
			if (r+c)%2 == 0 {
				checker[r][c] = 15
			}
			ramp[r][c] = uint8((r*TileWidth + c) % 16)
		}
	}

	for name, tile := range map[string]IndexTile{
		"all zero":     zero,
		"all fifteen":  fifteen,
		"checkerboard": checker,
		"ramp":         ramp,
	} {
		t.Run(name, func(t *testing.T) {
			tile := tile
			assert.Equal(t, tile, DecodeTile(EncodeTile(&tile)))
		})
	}
}

func TestTileRoundTrip_Random(t *testing.T) {
	rng := rand.New(rand.NewSource(4))
	for n := 0; n < 2000; n++ {
		var tile IndexTile
		for r := range tile {
			for c := range tile[r] {
				tile[r][c] = uint8(rng.Intn(16))
			}
		}
		require.Equal(t, tile, DecodeTile(EncodeTile(&tile)), "iteration %d", n)
	}
}

func TestSheetRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	sheet := NewTileSheet()
	for y := 0; y < Height; y++ {
		for x := 0; x < Width; x++ {
			sheet.SetPixelIndex(x, y, uint8(rng.Intn(16)))
		}
	}

	data := EncodeSheet(sheet)
	require.Len(t, data, SheetSize)

	decoded, err := DecodeSheet(data)
	require.NoError(t, err)
	assert.Equal(t, sheet, decoded)
}

func TestEncodeSheet_TileOrder(t *testing.T) {
	sheet := NewTileSheet()
	// second tile of the second tile row
	sheet.SetPixelIndex(8, 8, 1)

	data := EncodeSheet(sheet)
	offset := TileID(1, 1) * PlaneTileSize
	assert.Equal(t, byte(0x80), data[offset])

	for i, b := range data {
		if i != offset {
			require.Zero(t, b, "byte %d", i)
		}
	}
}

func TestDecodeSheet_WrongLength(t *testing.T) {
	_, err := DecodeSheet(make([]byte, SheetSize-1))
	assert.Error(t, err)
}
