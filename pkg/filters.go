package pkg

import (
	"fmt"
	"math/rand"
	"strings"

	"github.com/hansbonini/zsprtools/pkg/common"
	"github.com/hansbonini/zsprtools/pkg/snes"
)

// SpriteFilter names an index transformation applied to every tile
type SpriteFilter string

// Available sprite filters
const (
	FilterSwap   SpriteFilter = "swap"   // v -> 16-v for every opaque index
	FilterStatic SpriteFilter = "static" // random opaque index
)

// ParseSpriteFilter resolves a filter by name
func ParseSpriteFilter(name string) (SpriteFilter, error) {
	switch f := SpriteFilter(strings.ToLower(name)); f {
	case FilterSwap, FilterStatic:
		return f, nil
	}
	return "", fmt.Errorf("%w: %q", common.ErrUnknownFilter, name)
}

// SwapFilter mirrors every non-transparent index: 1<->15, 2<->14 and so on
func SwapFilter(sheet *snes.TileSheet) {
	for id := 0; id < sheet.Len(); id++ {
		tile := sheet.TileAt(id)
		for row := range tile {
			for col, v := range tile[row] {
				if v != 0 {
					tile[row][col] = snes.MailColors - v
				}
			}
		}
	}
}

// StaticFilter replaces every non-transparent index with a random index 1-15
func StaticFilter(sheet *snes.TileSheet, rng *rand.Rand) {
	for id := 0; id < sheet.Len(); id++ {
		tile := sheet.TileAt(id)
		for row := range tile {
			for col, v := range tile[row] {
				if v != 0 {
					tile[row][col] = uint8(1 + rng.Intn(snes.StoredColor))
				}
			}
		}
	}
}

// ApplyFilter runs filter over the sprite data of zspr.
// seed only affects FilterStatic; the same seed gives the same result.
func ApplyFilter(zspr *ZSPRFile, filter SpriteFilter, seed int64) error {
	sheet, err := zspr.Sheet()
	if err != nil {
		return err
	}

	switch filter {
	case FilterSwap:
		SwapFilter(sheet)
	case FilterStatic:
		StaticFilter(sheet, rand.New(rand.NewSource(seed)))
	default:
		return fmt.Errorf("%w: %q", common.ErrUnknownFilter, filter)
	}

	zspr.SpriteData = snes.EncodeSheet(sheet)
	common.LogInfo(common.InfoFilterApplied, filter, sheet.Len())
	return nil
}
