// Package pkg provides the palette, tile and ZSPR container processing for
// converting sprite sheets into SNES 4bpp sprites.
// This file contains exporters for turning ZSPR data back into PNG images,
// YAML summaries and GIMP palettes.
package pkg

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"strings"
	"unicode"

	"github.com/hansbonini/zsprtools/pkg/common"
	"github.com/hansbonini/zsprtools/pkg/snes"
	"golang.org/x/image/draw"
	"gopkg.in/yaml.v3"
)

// MailNames names the four mails in palette order
var MailNames = [snes.Mails]string{"green", "blue", "red", "bunny"}

// ZSPRFileExporter exports ZSPR data to external formats (PNG, YAML, GPL)
type ZSPRFileExporter struct{}

// NewZSPRExporter creates a new ZSPR exporter instance
func NewZSPRExporter() *ZSPRFileExporter {
	return &ZSPRFileExporter{}
}

// TransparentColor picks the color drawn for index 0: the first BGR15 color
// that no stored mail color (indices 1-15) and no non-zero glove uses.
func TransparentColor(pal snes.Palette) snes.Color {
	used := make(map[snes.Color]bool, snes.PaletteSize)
	for i := 0; i < snes.BaseColors; i++ {
		if i%snes.MailColors != 0 {
			used[pal[i]] = true
		}
	}
	for _, c := range pal[snes.GlovesStart:] {
		if c != 0 {
			used[c] = true
		}
	}

	for w := 0; w <= 0x7FFF; w++ {
		if c := snes.ColorFromBGR15(uint16(w)); !used[c] {
			return c
		}
	}
	// 66 colors cannot cover all 32768 words
	return 0
}

// EmbedPalette writes the palette into the bottom-right 8x8 block of the raster
// so that in-band extraction reads it back. Index 0 of every mail holds
// TransparentColor; the glove colors then take the index 0 slots of the blue
// and red mails.
func EmbedPalette(raster *snes.Raster, pal snes.Palette) {
	var block [snes.BaseColors]snes.Color
	copy(block[:], pal[:snes.BaseColors])
	transparent := TransparentColor(pal)
	for m := 0; m < snes.Mails; m++ {
		block[m*snes.MailColors] = transparent
	}
	for i, src := range snes.GlovesSourceIndices {
		block[src] = pal[snes.GlovesStart+i]
	}
	raster.SetPaletteBlock(block)
}

// RenderImage draws the sprite sheet with the colors of the given mail and
// embeds the full palette.
func (e *ZSPRFileExporter) RenderImage(zspr *ZSPRFile, mail int) (*snes.Raster, error) {
	if mail < 0 || mail >= snes.Mails {
		return nil, fmt.Errorf("mail %d out of range (0-%d)", mail, snes.Mails-1)
	}

	sheet, err := zspr.Sheet()
	if err != nil {
		return nil, err
	}

	pal := zspr.Palette()
	colors := pal.Mail(mail)
	colors[0] = TransparentColor(pal)

	raster, err := snes.NewRaster(snes.Width, snes.Height, make([]byte, snes.RasterSize))
	if err != nil {
		return nil, err
	}
	for y := 0; y < snes.Height; y++ {
		for x := 0; x < snes.Width; x++ {
			raster.Set(x, y, colors[sheet.PixelIndex(x, y)])
		}
	}

	EmbedPalette(raster, pal)
	return raster, nil
}

// ExportImage writes the rendered sheet as a PNG. A scale above 1 enlarges
// the image with nearest-neighbour sampling for previews.
func (e *ZSPRFileExporter) ExportImage(zspr *ZSPRFile, mail, scale int, outputFile string) error {
	raster, err := e.RenderImage(zspr, mail)
	if err != nil {
		return err
	}

	var img image.Image = raster.Image()
	if scale > 1 {
		img = scaleImage(img, scale)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return common.FormatError(common.ErrFailedToEncodePNG, err)
	}
	if err := os.WriteFile(outputFile, buf.Bytes(), 0o644); err != nil {
		return common.FormatError(common.ErrFailedToCreateOutputFile, err)
	}

	common.LogInfo(common.InfoImageExported, mail, outputFile)
	return nil
}

func scaleImage(src image.Image, scale int) *image.NRGBA {
	b := src.Bounds()
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx()*scale, b.Dy()*scale))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), src, b, draw.Src, nil)
	return dst
}

// PaletteYAML is the YAML view of a palette
type PaletteYAML struct {
	Green  []string `yaml:"green"`
	Blue   []string `yaml:"blue"`
	Red    []string `yaml:"red"`
	Bunny  []string `yaml:"bunny"`
	Gloves []string `yaml:"gloves"`
}

// NewPaletteYAML lists every mail and the glove colors as #RRGGBB strings
func NewPaletteYAML(pal snes.Palette) PaletteYAML {
	mails := make([][]string, snes.Mails)
	for m := range mails {
		for _, c := range pal.Mail(m) {
			mails[m] = append(mails[m], c.String())
		}
	}

	gloves := make([]string, 0, snes.GlovesCount)
	for _, c := range pal[snes.GlovesStart:] {
		gloves = append(gloves, c.String())
	}

	return PaletteYAML{Green: mails[0], Blue: mails[1], Red: mails[2], Bunny: mails[3], Gloves: gloves}
}

// ZSPRInfo is the YAML summary of a ZSPR file
type ZSPRInfo struct {
	Version       uint8       `yaml:"version"`
	SpriteType    uint16      `yaml:"sprite_type"`
	Checksum      string      `yaml:"checksum"`
	SpriteName    string      `yaml:"sprite_name"`
	AuthorName    string      `yaml:"author_name"`
	AuthorNameROM string      `yaml:"author_name_rom"`
	SpriteOffset  uint32      `yaml:"sprite_offset"`
	SpriteLength  uint16      `yaml:"sprite_length"`
	PaletteOffset uint32      `yaml:"palette_offset"`
	PaletteLength uint16      `yaml:"palette_length"`
	Palette       PaletteYAML `yaml:"palette"`
}

// NewZSPRInfo combines the raw header with the decoded container
func NewZSPRInfo(header *ZSPRHeader, zspr *ZSPRFile) ZSPRInfo {
	return ZSPRInfo{
		Version:       header.Version,
		SpriteType:    zspr.SpriteType,
		Checksum:      fmt.Sprintf("%04X/%04X", header.Checksum, header.Complement),
		SpriteName:    zspr.SpriteName(),
		AuthorName:    zspr.AuthorName(),
		AuthorNameROM: zspr.AuthorNameROM(),
		SpriteOffset:  header.SpriteOffset,
		SpriteLength:  header.SpriteLength,
		PaletteOffset: header.PaletteOffset,
		PaletteLength: header.PaletteLength,
		Palette:       NewPaletteYAML(zspr.Palette()),
	}
}

// WriteYAML encodes v as YAML with two-space indentation
func WriteYAML(v interface{}, writer io.Writer) error {
	encoder := yaml.NewEncoder(writer)
	encoder.SetIndent(2)
	if err := encoder.Encode(v); err != nil {
		return common.FormatError(common.ErrFailedToParseYAML, err)
	}
	return encoder.Close()
}

// WriteGPL writes colors as a GIMP palette that the ASCII palette reader accepts
func WriteGPL(colors []snes.Color, name string, writer io.Writer) error {
	// digits in the name line would be read back as a color
	name = strings.Map(func(r rune) rune {
		if unicode.IsDigit(r) {
			return -1
		}
		return r
	}, name)

	var sb strings.Builder
	sb.WriteString("GIMP Palette\n")
	fmt.Fprintf(&sb, "Name: %s\n", strings.TrimSpace(name))
	sb.WriteString("#\n")
	for i, c := range colors {
		r, g, b := c.RGB()
		fmt.Fprintf(&sb, "%3d %3d %3d\tIndex %d\n", r, g, b, i)
	}

	_, err := io.WriteString(writer, sb.String())
	return err
}

// WriteGPLFile writes colors as a GIMP palette file. Nothing is written when
// encoding fails.
func WriteGPLFile(colors []snes.Color, name, outputFile string) error {
	var buf bytes.Buffer
	if err := WriteGPL(colors, name, &buf); err != nil {
		return err
	}
	if err := os.WriteFile(outputFile, buf.Bytes(), 0o644); err != nil {
		return common.FormatError(common.ErrFailedToCreateOutputFile, err)
	}
	return nil
}

// ZSPRFileProcessor combines decoder and exporter functionality
type ZSPRFileProcessor struct {
	*ZSPRFileDecoder
	*ZSPRFileExporter
}

// NewZSPRProcessor creates a new ZSPR processor with both decoder and exporter
func NewZSPRProcessor() *ZSPRFileProcessor {
	return &ZSPRFileProcessor{
		ZSPRFileDecoder:  NewZSPRDecoder(),
		ZSPRFileExporter: NewZSPRExporter(),
	}
}

// Process decodes a ZSPR file and exports it as a PNG image
func (p *ZSPRFileProcessor) Process(inputFile, outputFile string, mail, scale int) error {
	file, err := os.Open(inputFile)
	if err != nil {
		return fmt.Errorf("failed to open input file: %w", err)
	}
	defer file.Close()

	zspr, err := p.Decode(file)
	if err != nil {
		return fmt.Errorf("failed to decode ZSPR file: %w", err)
	}

	if err := p.ExportImage(zspr, mail, scale, outputFile); err != nil {
		return fmt.Errorf("failed to export image: %w", err)
	}
	return nil
}

// Info reads a ZSPR file and returns its YAML summary
func (p *ZSPRFileProcessor) Info(inputFile string) (ZSPRInfo, error) {
	data, err := os.ReadFile(inputFile)
	if err != nil {
		return ZSPRInfo{}, common.FormatError(common.ErrFailedToReadZSPR, err)
	}

	zspr, err := UnmarshalZSPR(data)
	if err != nil {
		return ZSPRInfo{}, err
	}
	header, err := p.DecodeHeader(bytes.NewReader(data))
	if err != nil {
		return ZSPRInfo{}, err
	}

	return NewZSPRInfo(header, zspr), nil
}
