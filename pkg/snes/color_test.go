package snes

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestColor_Packing(t *testing.T) {
	tests := []struct {
		name    string
		r, g, b int
		want    Color
	}{
		{"black", 0, 0, 0, 0},
		{"white", 255, 255, 255, 255255255},
		{"red", 255, 0, 0, 255000000},
		{"green", 0, 255, 0, 255000},
		{"blue", 0, 0, 255, 255},
		{"mixed", 12, 34, 56, 12034056},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewColor(tt.r, tt.g, tt.b)
			assert.Equal(t, tt.want, c)

			r, g, b := c.RGB()
			assert.Equal(t, []int{tt.r, tt.g, tt.b}, []int{r, g, b})
		})
	}
}

func TestColor_BGR15(t *testing.T) {
	tests := []struct {
		name  string
		color Color
		word  uint16
	}{
		{"black", NewColor(0, 0, 0), 0x0000},
		{"white", NewColor(248, 248, 248), 0x7FFF},
		{"red", NewColor(248, 0, 0), 0x001F},
		{"green", NewColor(0, 248, 0), 0x03E0},
		{"blue", NewColor(0, 0, 248), 0x7C00},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.word, tt.color.BGR15())
			assert.Equal(t, tt.color, ColorFromBGR15(tt.word))
		})
	}
}

func TestColor_BGR15DropsLowBits(t *testing.T) {
	c := NewColor(255, 129, 7)
	assert.Equal(t, c.Round(), ColorFromBGR15(c.BGR15()))
	assert.Equal(t, NewColor(248, 128, 0), c.Round())
}

func TestColorFromRGBA(t *testing.T) {
	assert.Equal(t, NewColor(10, 20, 30), ColorFromRGBA(color.NRGBA{R: 10, G: 20, B: 30, A: 0xFF}))
	assert.Equal(t, NewColor(10, 20, 30), ColorFromRGBA(color.RGBA{R: 10, G: 20, B: 30, A: 0xFF}))
}

func TestColor_String(t *testing.T) {
	assert.Equal(t, "#0A141E", NewColor(10, 20, 30).String())
}

func TestPalette_DeriveGloves(t *testing.T) {
	var pal Palette
	pal[16] = NewColor(200, 100, 50)
	pal[32] = 0
	pal.DeriveGloves()

	assert.Equal(t, pal[16], pal[64])
	assert.Equal(t, Color(0), pal[65])

	pal[32] = NewColor(1, 2, 3)
	pal.DeriveGloves()
	assert.Equal(t, NewColor(1, 2, 3), pal[65])
}

func TestPalette_Mail(t *testing.T) {
	pal := testPalette()
	mail := pal.Mail(2)
	assert.Equal(t, pal[32], mail[0])
	assert.Equal(t, pal[47], mail[15])
}
