package pkg

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/hansbonini/zsprtools/pkg/common"
	"github.com/hansbonini/zsprtools/pkg/snes"
)

// ZSPRFileDecoder implements the ZSPRDecoder interface
type ZSPRFileDecoder struct{}

// NewZSPRDecoder creates a new ZSPR decoder instance
func NewZSPRDecoder() *ZSPRFileDecoder {
	return &ZSPRFileDecoder{}
}

// Decode reads and parses a complete ZSPR file
func (d *ZSPRFileDecoder) Decode(reader io.Reader) (*ZSPRFile, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, common.FormatError(common.ErrFailedToReadZSPR, err)
	}
	return UnmarshalZSPR(data)
}

// DecodeHeader reads and validates the fixed header only
func (d *ZSPRFileDecoder) DecodeHeader(reader io.Reader) (*ZSPRHeader, error) {
	header := &ZSPRHeader{}
	copy(header.Magic[:], common.ZSPRMagic)

	if err := common.IsValidZSPRFile(reader); err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrNotContainerFormat, err)
	}

	// Read the remaining fields in file order
	version, err := common.ReadBytes(reader, 1)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read version: %v", common.ErrNotContainerFormat, err)
	}
	header.Version = version[0]

	for _, field := range []struct {
		name string
		u16  *uint16
		u32  *uint32
	}{
		{name: "checksum", u16: &header.Checksum},
		{name: "complement", u16: &header.Complement},
		{name: "sprite offset", u32: &header.SpriteOffset},
		{name: "sprite length", u16: &header.SpriteLength},
		{name: "palette offset", u32: &header.PaletteOffset},
		{name: "palette length", u16: &header.PaletteLength},
		{name: "sprite type", u16: &header.SpriteType},
	} {
		if field.u16 != nil {
			*field.u16, err = common.ReadUint16LE(reader)
		} else {
			*field.u32, err = common.ReadUint32LE(reader)
		}
		if err != nil {
			return nil, fmt.Errorf("%w: failed to read %s: %v", common.ErrNotContainerFormat, field.name, err)
		}
	}

	reserved, err := common.ReadBytes(reader, len(header.Reserved))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read reserved bytes: %v", common.ErrNotContainerFormat, err)
	}
	copy(header.Reserved[:], reserved)

	if header.Version != ZSPRVersion {
		return nil, fmt.Errorf("%w: unsupported version %d", common.ErrNotContainerFormat, header.Version)
	}

	common.LogDebug(common.DebugHeaderInfo, string(header.Magic[:]), header.Version, header.Checksum, header.Complement)
	return header, nil
}

// UnmarshalZSPR parses a serialized container.
// Structural problems fail with ErrNotContainerFormat; a checksum that does
// not match the contents fails with ErrBadChecksum.
func UnmarshalZSPR(data []byte) (*ZSPRFile, error) {
	header, err := NewZSPRDecoder().DecodeHeader(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}

	if err := checkRegions(header, len(data)); err != nil {
		return nil, err
	}

	names, err := decodeNames(data[ZSPRHeaderSize:header.SpriteOffset])
	if err != nil {
		return nil, err
	}

	sum := common.Checksum16(data, ZSPRChecksumOffset, ZSPRChecksumOffset+ZSPRChecksumSize)
	if header.Checksum != sum || header.Complement != sum^0xFFFF {
		return nil, fmt.Errorf("%w: stored %04X/%04X, computed %04X/%04X",
			common.ErrBadChecksum, header.Checksum, header.Complement, sum, sum^0xFFFF)
	}

	spriteEnd := header.SpriteOffset + uint32(header.SpriteLength)
	paletteEnd := header.PaletteOffset + snes.PaletteData

	zspr := &ZSPRFile{
		SpriteType:  header.SpriteType,
		SpriteData:  append([]byte(nil), data[header.SpriteOffset:spriteEnd]...),
		PaletteData: append([]byte(nil), data[header.PaletteOffset:paletteEnd]...),
		GlovesData:  append([]byte(nil), data[paletteEnd:paletteEnd+snes.GlovesData]...),
	}
	zspr.SetSpriteName(names[0])
	zspr.SetAuthorName(names[1])
	zspr.SetAuthorNameROM(names[2])

	common.LogDebug(common.DebugMetadata, zspr.spriteName, zspr.authorName, zspr.authorNameROM)
	return zspr, nil
}

// checkRegions validates the region offsets and lengths against the file size
func checkRegions(header *ZSPRHeader, size int) error {
	common.LogDebug(common.DebugRegionInfo, "sprite", header.SpriteOffset, header.SpriteLength)
	common.LogDebug(common.DebugRegionInfo, "palette", header.PaletteOffset, header.PaletteLength)

	if header.SpriteLength != snes.SheetSize {
		return fmt.Errorf("%w: sprite length 0x%X, want 0x%X", common.ErrNotContainerFormat, header.SpriteLength, snes.SheetSize)
	}
	if header.PaletteLength != ZSPRPaletteLength {
		return fmt.Errorf("%w: palette length 0x%X, want 0x%X", common.ErrNotContainerFormat, header.PaletteLength, ZSPRPaletteLength)
	}

	regions := []struct {
		name           string
		offset, length uint64
	}{
		{"sprite", uint64(header.SpriteOffset), uint64(header.SpriteLength)},
		{"palette", uint64(header.PaletteOffset), uint64(header.PaletteLength)},
	}
	for _, r := range regions {
		if r.offset < ZSPRHeaderSize || r.offset+r.length > uint64(size) {
			return fmt.Errorf("%w: %s region 0x%X+0x%X outside file of 0x%X bytes",
				common.ErrNotContainerFormat, r.name, r.offset, r.length, size)
		}
	}
	return nil
}

// decodeNames splits the metadata block into the sprite name, author name
// and ROM author name.
func decodeNames(block []byte) ([3]string, error) {
	var names [3]string

	for i, width := range []int{2, 2, 1} {
		end := common.IndexTerminator(block, width)
		if end < 0 {
			return names, fmt.Errorf("%w: metadata field %d is not terminated", common.ErrNotContainerFormat, i)
		}

		if width == 2 {
			decoded, err := utf16LE.NewDecoder().Bytes(block[:end])
			if err != nil {
				return names, fmt.Errorf("%w: metadata field %d: %v", common.ErrNotContainerFormat, i, err)
			}
			names[i] = string(decoded)
		} else {
			names[i] = string(block[:end])
		}
		block = block[end+width:]
	}
	return names, nil
}

// ReadZSPRFile loads and parses the ZSPR file at path
func ReadZSPRFile(path string) (*ZSPRFile, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, common.FormatError(common.ErrFailedToReadZSPR, err)
	}
	defer file.Close()

	return NewZSPRDecoder().Decode(file)
}
