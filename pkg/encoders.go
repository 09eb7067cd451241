// Package pkg provides the palette, tile and ZSPR container processing for
// converting sprite sheets into SNES 4bpp sprites.
// This file contains the ZSPR container builder and encoder.
package pkg

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode"

	"github.com/hansbonini/zsprtools/pkg/common"
	"github.com/hansbonini/zsprtools/pkg/snes"
	"golang.org/x/text/encoding"
	xunicode "golang.org/x/text/encoding/unicode"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
)

// utf16LE is the encoding of the sprite and author name fields
var utf16LE encoding.Encoding = xunicode.UTF16(xunicode.LittleEndian, xunicode.IgnoreBOM)

// romNameFilter drops NUL and every non-ASCII rune
var romNameFilter = runes.Remove(runes.Predicate(func(r rune) bool {
	return r == 0 || r > unicode.MaxASCII
}))

// ZSPRFileEncoder implements the ZSPREncoder interface
type ZSPRFileEncoder struct{}

// NewZSPREncoder creates a new ZSPR encoder instance
func NewZSPREncoder() *ZSPRFileEncoder {
	return &ZSPRFileEncoder{}
}

// NewZSPRFile builds a player sprite container from an indexed sheet and its palette.
// All names start out as DefaultMetadata.
func NewZSPRFile(sheet *snes.TileSheet, pal snes.Palette) *ZSPRFile {
	z := &ZSPRFile{
		SpriteType:  ZSPRSpriteType,
		SpriteData:  snes.EncodeSheet(sheet),
		PaletteData: encodeMailColors(pal),
		GlovesData:  encodeGloves(pal),
	}
	z.SetSpriteName("")
	z.SetAuthorName("")
	z.SetAuthorNameROM("")
	return z
}

// encodeMailColors stores indices 1-15 of every mail as BGR15 words
func encodeMailColors(pal snes.Palette) []byte {
	out := make([]byte, 0, snes.PaletteData)
	for m := 0; m < snes.Mails; m++ {
		mail := pal.Mail(m)
		for i := 1; i < snes.MailColors; i++ {
			out = binary.LittleEndian.AppendUint16(out, mail[i].BGR15())
		}
	}
	return out
}

func encodeGloves(pal snes.Palette) []byte {
	out := make([]byte, 0, snes.GlovesData)
	for i := 0; i < snes.GlovesCount; i++ {
		out = binary.LittleEndian.AppendUint16(out, pal[snes.GlovesStart+i].BGR15())
	}
	return out
}

// cleanName strips NUL characters; an empty result falls back to DefaultMetadata
func cleanName(name string) string {
	name = strings.ReplaceAll(name, "\x00", "")
	if name == "" {
		return DefaultMetadata
	}
	return name
}

// SetSpriteName sets the display name of the sprite
func (z *ZSPRFile) SetSpriteName(name string) {
	z.spriteName = cleanName(name)
}

// SetAuthorName sets the full author name
func (z *ZSPRFile) SetAuthorName(name string) {
	z.authorName = cleanName(name)
}

// SetAuthorNameROM sets the author name shown in the ROM credits.
// Non-ASCII characters are dropped and the result is cut to MaxAuthorROMLength.
func (z *ZSPRFile) SetAuthorNameROM(name string) {
	ascii, _, err := transform.String(romNameFilter, name)
	if err != nil {
		ascii = ""
	}
	ascii = cleanName(ascii)
	if len(ascii) > MaxAuthorROMLength {
		ascii = ascii[:MaxAuthorROMLength]
		common.LogWarn(common.WarnAuthorROMTrimmed, ascii)
	}
	z.authorNameROM = ascii
}

// SpriteName returns the display name of the sprite
func (z *ZSPRFile) SpriteName() string { return z.spriteName }

// AuthorName returns the full author name
func (z *ZSPRFile) AuthorName() string { return z.authorName }

// AuthorNameROM returns the ASCII author name
func (z *ZSPRFile) AuthorNameROM() string { return z.authorNameROM }

// Payload returns the bytes written into a ROM: sprite data followed by the mail colors
func (z *ZSPRFile) Payload() []byte {
	out := make([]byte, 0, len(z.SpriteData)+len(z.PaletteData))
	out = append(out, z.SpriteData...)
	out = append(out, z.PaletteData...)
	return out
}

// Palette decodes the stored colors. Index 0 of every mail is not stored and reads as 0.
func (z *ZSPRFile) Palette() snes.Palette {
	var pal snes.Palette
	for m := 0; m < snes.Mails; m++ {
		for i := 1; i < snes.MailColors; i++ {
			pos := (m*snes.StoredColor + i - 1) * 2
			if pos+2 > len(z.PaletteData) {
				continue
			}
			pal[m*snes.MailColors+i] = snes.ColorFromBGR15(binary.LittleEndian.Uint16(z.PaletteData[pos:]))
		}
	}
	for i := 0; i < snes.GlovesCount; i++ {
		pos := i * 2
		if pos+2 > len(z.GlovesData) {
			continue
		}
		pal[snes.GlovesStart+i] = snes.ColorFromBGR15(binary.LittleEndian.Uint16(z.GlovesData[pos:]))
	}
	return pal
}

// Sheet decodes the stored sprite data back into indexed tiles
func (z *ZSPRFile) Sheet() (*snes.TileSheet, error) {
	return snes.DecodeSheet(z.SpriteData)
}

// MarshalBinary serializes the container, including its checksum.
// The output depends only on the container contents.
func (z *ZSPRFile) MarshalBinary() ([]byte, error) {
	if err := z.validateRegions(); err != nil {
		return nil, common.FormatError(common.ErrFailedToBuildZSPR, err)
	}

	spriteName, err := encodeUTF16Name(z.spriteName)
	if err != nil {
		return nil, common.FormatError(common.ErrFailedToBuildZSPR, err)
	}
	authorName, err := encodeUTF16Name(z.authorName)
	if err != nil {
		return nil, common.FormatError(common.ErrFailedToBuildZSPR, err)
	}
	authorNameROM := append([]byte(z.authorNameROM), 0x00)

	spriteOffset, err := common.SafeIntToUint32(ZSPRHeaderSize + len(spriteName) + len(authorName) + len(authorNameROM))
	if err != nil {
		return nil, common.FormatError(common.ErrFailedToBuildZSPR, err)
	}
	paletteOffset, err := common.SafeIntToUint32(int(spriteOffset) + len(z.SpriteData))
	if err != nil {
		return nil, common.FormatError(common.ErrFailedToBuildZSPR, err)
	}
	spriteLength, err := common.SafeIntToUint16(len(z.SpriteData))
	if err != nil {
		return nil, common.FormatError(common.ErrFailedToBuildZSPR, err)
	}
	paletteLength, err := common.SafeIntToUint16(len(z.PaletteData) + len(z.GlovesData))
	if err != nil {
		return nil, common.FormatError(common.ErrFailedToBuildZSPR, err)
	}

	header := ZSPRHeader{
		Version:       ZSPRVersion,
		SpriteOffset:  spriteOffset,
		SpriteLength:  spriteLength,
		PaletteOffset: paletteOffset,
		PaletteLength: paletteLength,
		SpriteType:    z.SpriteType,
	}
	copy(header.Magic[:], common.ZSPRMagic)

	var buf bytes.Buffer
	if err := binary.Write(&buf, binary.LittleEndian, &header); err != nil {
		return nil, common.FormatError(common.ErrFailedToBuildZSPR, err)
	}
	buf.Write(spriteName)
	buf.Write(authorName)
	buf.Write(authorNameROM)
	buf.Write(z.SpriteData)
	buf.Write(z.PaletteData)
	buf.Write(z.GlovesData)

	out := buf.Bytes()
	sum := common.Checksum16(out, ZSPRChecksumOffset, ZSPRChecksumOffset+ZSPRChecksumSize)
	binary.LittleEndian.PutUint16(out[ZSPRChecksumOffset:], sum)
	binary.LittleEndian.PutUint16(out[ZSPRChecksumOffset+2:], sum^0xFFFF)

	common.LogDebug(common.DebugHeaderInfo, common.ZSPRMagic, header.Version, sum, sum^0xFFFF)
	common.LogDebug(common.DebugRegionInfo, "sprite", spriteOffset, spriteLength)
	common.LogDebug(common.DebugRegionInfo, "palette", paletteOffset, paletteLength)
	return out, nil
}

// validateRegions checks the fixed region sizes of a player sprite
func (z *ZSPRFile) validateRegions() error {
	switch {
	case len(z.SpriteData) != snes.SheetSize:
		return fmt.Errorf("sprite data is %d bytes, want %d", len(z.SpriteData), snes.SheetSize)
	case len(z.PaletteData) != snes.PaletteData:
		return fmt.Errorf("palette data is %d bytes, want %d", len(z.PaletteData), snes.PaletteData)
	case len(z.GlovesData) != snes.GlovesData:
		return fmt.Errorf("gloves data is %d bytes, want %d", len(z.GlovesData), snes.GlovesData)
	}
	return nil
}

// encodeUTF16Name returns the UTF-16LE bytes of name followed by a NUL unit
func encodeUTF16Name(name string) ([]byte, error) {
	encoded, err := utf16LE.NewEncoder().Bytes([]byte(name))
	if err != nil {
		return nil, err
	}
	return append(encoded, 0x00, 0x00), nil
}

// Encode serializes zspr and writes it to writer
func (e *ZSPRFileEncoder) Encode(zspr *ZSPRFile, writer io.Writer) error {
	data, err := zspr.MarshalBinary()
	if err != nil {
		return err
	}

	common.LogDebug(common.DebugMetadata, zspr.spriteName, zspr.authorName, zspr.authorNameROM)
	if _, err := writer.Write(data); err != nil {
		return common.FormatError(common.ErrFailedToWriteZSPR, err)
	}
	return nil
}

// WriteZSPRFile serializes zspr completely before creating outputFile
func WriteZSPRFile(zspr *ZSPRFile, outputFile string) error {
	data, err := zspr.MarshalBinary()
	if err != nil {
		return err
	}

	if err := os.WriteFile(outputFile, data, 0o644); err != nil {
		return common.FormatError(common.ErrFailedToWriteZSPR, err)
	}

	common.LogInfo(common.InfoZSPRWritten, outputFile)
	return nil
}
