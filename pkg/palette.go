// Package pkg provides the palette, tile and ZSPR container processing for
// converting sprite sheets into SNES 4bpp sprites.
// This file contains the palette readers for the four supported sources.
package pkg

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/hansbonini/zsprtools/pkg/common"
	"github.com/hansbonini/zsprtools/pkg/snes"
)

var (
	nonDigits = regexp.MustCompile(`\D+`)
	hexLine   = regexp.MustCompile(`^[0-9A-F]{8}$`)
)

// minimumColors is the size of one mail; anything shorter cannot be used
const minimumColors = snes.MailColors

// rawColor is one scanned palette slot before validation.
// A channel that failed to parse holds -1.
type rawColor struct {
	r, g, b int
	line    int
}

// PaletteFileReader implements the PaletteReader interface
type PaletteFileReader struct{}

// NewPaletteReader creates a new palette reader instance
func NewPaletteReader() *PaletteFileReader {
	return &PaletteFileReader{}
}

// Read produces the finished 66-color palette for src.
// The glove colors are derived from indices 16 and 32 for every source kind.
func (p *PaletteFileReader) Read(src PaletteSource, raster *snes.Raster) (snes.Palette, error) {
	var (
		base [snes.BaseColors]snes.Color
		err  error
	)

	switch s := src.(type) {
	case AsciiList:
		base, err = p.readASCII(s.Data)
	case HexList:
		base, err = p.readHex(s.Data)
	case BinaryTriplets:
		base, err = p.readBinary(s.Data)
	case InBandExtract:
		base, err = p.extract(raster)
	default:
		err = fmt.Errorf("%w: %w %T", common.ErrMalformedPalette, common.ErrUnknownPaletteKind, src)
	}
	if err != nil {
		return snes.Palette{}, err
	}

	var pal snes.Palette
	copy(pal[:], base[:])
	pal.DeriveGloves()

	for i, c := range pal {
		common.LogDebug(common.DebugPaletteColor, i, c)
	}
	return pal, nil
}

// readASCII scans GIMP/Graphics Gale style text: the first three numbers of any
// line holding at least three numbers form one color.
func (p *PaletteFileReader) readASCII(data []byte) ([snes.BaseColors]snes.Color, error) {
	var scanned []rawColor

	scanner := bufio.NewScanner(bytes.NewReader(data))
	lineNo := 0
	for scanner.Scan() && len(scanned) < snes.BaseColors {
		lineNo++
		tokens := splitNonDigits(scanner.Text())
		if len(tokens) < 3 {
			continue
		}

		var channels [3]int
		for i := range channels {
			v, err := strconv.Atoi(tokens[i])
			if err != nil {
				v = -1
			}
			channels[i] = v
		}
		scanned = append(scanned, rawColor{r: channels[0], g: channels[1], b: channels[2], line: lineNo})
	}
	if err := scanner.Err(); err != nil {
		return [snes.BaseColors]snes.Color{}, fmt.Errorf("%w: %v", common.ErrMalformedPalette, err)
	}

	return fillPalette(scanned)
}

// readHex scans Paint.NET style text: AARRGGBB per line, alpha ignored
func (p *PaletteFileReader) readHex(data []byte) ([snes.BaseColors]snes.Color, error) {
	var scanned []rawColor

	scanner := bufio.NewScanner(bytes.NewReader(data))
	lineNo := 0
	for scanner.Scan() && len(scanned) < snes.BaseColors {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if !hexLine.MatchString(line) {
			continue
		}

		scanned = append(scanned, rawColor{
			r:    parseHexByte(line[2:4]),
			g:    parseHexByte(line[4:6]),
			b:    parseHexByte(line[6:8]),
			line: lineNo,
		})
	}
	if err := scanner.Err(); err != nil {
		return [snes.BaseColors]snes.Color{}, fmt.Errorf("%w: %v", common.ErrMalformedPalette, err)
	}

	return fillPalette(scanned)
}

// readBinary reads 64 r,g,b triplets; trailing bytes are ignored
func (p *PaletteFileReader) readBinary(data []byte) ([snes.BaseColors]snes.Color, error) {
	var base [snes.BaseColors]snes.Color

	if len(data) < snes.BaseColors*3 {
		return base, fmt.Errorf("%w: binary palette is %d bytes, want at least %d", common.ErrMalformedPalette, len(data), snes.BaseColors*3)
	}

	for i := range base {
		pos := i * 3
		base[i] = snes.NewColor(int(data[pos]), int(data[pos+1]), int(data[pos+2]))
	}
	return base, nil
}

// extract reads the palette stored in the bottom-right 8x8 block of the raster.
// Slots of the last three mails that repeat the transparent color are filled
// from the same index of the first mail.
func (p *PaletteFileReader) extract(raster *snes.Raster) ([snes.BaseColors]snes.Color, error) {
	if raster == nil {
		return [snes.BaseColors]snes.Color{}, fmt.Errorf("%w: in-band extraction needs the image raster", common.ErrMalformedPalette)
	}

	base := raster.PaletteBlock()
	for i := snes.MailColors; i < snes.BaseColors; i++ {
		if base[i] == base[0] {
			base[i] = base[i%snes.MailColors]
		}
	}
	return base, nil
}

// fillPalette validates the scanned slots, rounds their count down to whole
// mails and repeats the first mail over the missing ones.
func fillPalette(scanned []rawColor) ([snes.BaseColors]snes.Color, error) {
	var base [snes.BaseColors]snes.Color

	if len(scanned) < minimumColors {
		return base, fmt.Errorf("%w: only %d colors were found", common.ErrShortPalette, len(scanned))
	}

	kept := snes.MailColors * (len(scanned) / snes.MailColors)
	if kept > snes.BaseColors {
		kept = snes.BaseColors
	}

	colors := make([]snes.Color, kept)
	for i := 0; i < kept; i++ {
		c, err := scanned[i].color()
		if err != nil {
			return base, err
		}
		colors[i] = c
	}

	for i := range base {
		if i < kept {
			base[i] = colors[i]
		} else {
			base[i] = colors[i%snes.MailColors]
		}
	}
	return base, nil
}

// color packs the slot, rejecting channels outside 0-255
func (c rawColor) color() (snes.Color, error) {
	var channels [3]uint8
	for i, v := range []int{c.r, c.g, c.b} {
		u, err := common.SafeIntToUint8(v)
		if err != nil {
			return 0, fmt.Errorf("%w: line %d: %v", common.ErrMalformedPalette, c.line, err)
		}
		channels[i] = u
	}
	return snes.NewColor(int(channels[0]), int(channels[1]), int(channels[2])), nil
}

// splitNonDigits splits on runs of non-digits. A leading separator yields an
// empty first token; trailing empty tokens are dropped.
func splitNonDigits(line string) []string {
	tokens := nonDigits.Split(strings.TrimSpace(line), -1)
	for len(tokens) > 0 && tokens[len(tokens)-1] == "" {
		tokens = tokens[:len(tokens)-1]
	}
	return tokens
}

func parseHexByte(s string) int {
	v, err := strconv.ParseUint(s, 16, 8)
	if err != nil {
		return -1
	}
	return int(v)
}

// ParsePaletteKind resolves a palette kind by name. "auto" and "" pick the
// kind from the palette file extension.
func ParsePaletteKind(name, path string) (PaletteKind, error) {
	switch PaletteKind(strings.ToLower(name)) {
	case PaletteASCII:
		return PaletteASCII, nil
	case PaletteHex:
		return PaletteHex, nil
	case PaletteBinary:
		return PaletteBinary, nil
	case PaletteExtract:
		return PaletteExtract, nil
	case "", "auto":
		return PaletteKindFromExtension(path)
	}
	return "", fmt.Errorf("%w: %q", common.ErrUnknownPaletteKind, name)
}

// PaletteKindFromExtension maps Paint.NET .txt files to the hex reader and
// .gpl/.pal files to the ASCII reader. An empty path means in-band extraction.
func PaletteKindFromExtension(path string) (PaletteKind, error) {
	switch {
	case path == "":
		return PaletteExtract, nil
	case common.HasExtension(path, "txt"):
		return PaletteHex, nil
	case common.HasExtension(path, TextPaletteExts...):
		return PaletteASCII, nil
	}
	return "", fmt.Errorf("%w: cannot tell palette format of %s", common.ErrUnknownPaletteKind, path)
}

// LoadPaletteSource reads the palette file for kind. The file is closed on every path.
func LoadPaletteSource(kind PaletteKind, path string) (PaletteSource, error) {
	if kind == PaletteExtract {
		return InBandExtract{}, nil
	}
	if path == "" {
		return nil, fmt.Errorf("%w: %s (%s)", common.ErrMalformedPalette, common.ErrPaletteSourceRequiresPath, kind)
	}

	exts := TextPaletteExts
	if kind == PaletteBinary {
		exts = BinaryPaletteExts
	}
	if !common.HasExtension(path, exts...) {
		common.LogWarn(common.WarnExtensionMismatch, path, kind, exts)
	}

	data, err := readPaletteFile(path)
	if err != nil {
		return nil, err
	}

	switch kind {
	case PaletteASCII:
		return AsciiList{Data: data}, nil
	case PaletteHex:
		return HexList{Data: data}, nil
	case PaletteBinary:
		return BinaryTriplets{Data: data}, nil
	}
	return nil, fmt.Errorf("%w: %q", common.ErrUnknownPaletteKind, kind)
}

func readPaletteFile(path string) ([]byte, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrMalformedPalette, err)
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", common.ErrMalformedPalette, path, err)
	}
	return data, nil
}
