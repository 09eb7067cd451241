// Package snes provides Super Nintendo specific color, raster and tile handling.
// This file contains the packed color representation and the 15-bit BGR
// conversions used by the hardware palette.
package snes

import (
	"fmt"
	"image/color"
)

// Palette geometry
const (
	MailColors  = 16                       // Colors per mail palette
	Mails       = 4                        // Green, blue, red and bunny mail
	BaseColors  = MailColors * Mails       // 64
	GlovesCount = 2                        // Auxiliary glove colors
	PaletteSize = BaseColors + GlovesCount // 66
	GlovesStart = BaseColors               // Index of the first glove color
	StoredColor = MailColors - 1           // Colors stored per mail, index 0 is transparent
	PaletteData = Mails * StoredColor * 2  // 0x78 bytes of BGR15 mail colors
	GlovesData  = GlovesCount * 2          // 4 bytes of BGR15 glove colors
)

// GlovesSourceIndices are the transparent slots of the blue and red mails
// that carry the two glove colors.
var GlovesSourceIndices = [GlovesCount]int{16, 32}

// Color packs a 24-bit color as r*1000000 + g*1000 + b.
// Equality of two Colors is equality of all three channels.
type Color int

// NewColor packs r, g, b (each 0-255) into a Color
func NewColor(r, g, b int) Color {
	return Color(r*1000000 + g*1000 + b)
}

// ColorFromRGBA converts any color.Color to a packed Color, ignoring alpha
func ColorFromRGBA(c color.Color) Color {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return NewColor(int(n.R), int(n.G), int(n.B))
}

// ColorFromBGR15 expands a SNES 0bbbbbgggggrrrrr word into a Color
func ColorFromBGR15(w uint16) Color {
	r := int(w&0x1F) << 3
	g := int(w>>5&0x1F) << 3
	b := int(w>>10&0x1F) << 3
	return NewColor(r, g, b)
}

// RGB unpacks the three channels
func (c Color) RGB() (r, g, b int) {
	v := int(c)
	return v / 1000000, v / 1000 % 1000, v % 1000
}

// BGR15 packs the color into a SNES 0bbbbbgggggrrrrr word, dropping the low 3 bits of each channel
func (c Color) BGR15() uint16 {
	r, g, b := c.RGB()
	return uint16(b>>3)<<10 | uint16(g>>3)<<5 | uint16(r>>3)
}

// Round truncates every channel to a multiple of 8, the precision the hardware keeps
func (c Color) Round() Color {
	r, g, b := c.RGB()
	return NewColor(r&^7, g&^7, b&^7)
}

// NRGBA returns the color as an opaque color.NRGBA
func (c Color) NRGBA() color.NRGBA {
	r, g, b := c.RGB()
	return color.NRGBA{R: uint8(r), G: uint8(g), B: uint8(b), A: 0xFF}
}

// String returns the color as #RRGGBB
func (c Color) String() string {
	r, g, b := c.RGB()
	return fmt.Sprintf("#%02X%02X%02X", r, g, b)
}

// Palette is the 64 mail colors followed by the two glove colors
type Palette [PaletteSize]Color

// DeriveGloves copies the non-zero colors at GlovesSourceIndices into the glove slots.
// A zero source leaves its glove slot at zero.
func (p *Palette) DeriveGloves() {
	for i, src := range GlovesSourceIndices {
		if p[src] != 0 {
			p[GlovesStart+i] = p[src]
		} else {
			p[GlovesStart+i] = 0
		}
	}
}

// Mail returns the 16 colors of mail m (0-3)
func (p *Palette) Mail(m int) [MailColors]Color {
	var mail [MailColors]Color
	copy(mail[:], p[m*MailColors:(m+1)*MailColors])
	return mail
}

// Round returns a copy of the palette with every color rounded
func (p Palette) Round() Palette {
	for i := range p {
		p[i] = p[i].Round()
	}
	return p
}

// Lookup maps each color to the first palette position holding it, modulo 16.
// The first match wins, so a color in several mails resolves through the lowest one.
func (p *Palette) Lookup() map[Color]uint8 {
	lookup := make(map[Color]uint8, PaletteSize)
	for i, c := range p {
		if _, ok := lookup[c]; !ok {
			lookup[c] = uint8(i % MailColors)
		}
	}
	return lookup
}
