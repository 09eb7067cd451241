package pkg

import (
	"io"

	"github.com/hansbonini/zsprtools/pkg/snes"
)

// ZSPR layout constants
const (
	ZSPRVersion        = 1
	ZSPRSpriteType     = 1  // Player sprite
	ZSPRHeaderSize     = 29 // Fixed part before the name fields
	ZSPRChecksumOffset = 5  // Sum (2 bytes) + complement (2 bytes)
	ZSPRChecksumSize   = 4
	ZSPRPaletteLength  = snes.PaletteData + snes.GlovesData // 0x7C
	ROMPayloadSize     = snes.SheetSize + snes.PaletteData  // 0x7078
	MaxAuthorROMLength = 20
	DefaultMetadata    = "Unknown"
)

// ZSPRHeader represents the fixed 29-byte header of a ZSPR file
type ZSPRHeader struct {
	Magic         [4]byte // Always "ZSPR"
	Version       uint8
	Checksum      uint16 // Sum of every byte outside the checksum field
	Complement    uint16 // Checksum ^ 0xFFFF
	SpriteOffset  uint32
	SpriteLength  uint16
	PaletteOffset uint32
	PaletteLength uint16
	SpriteType    uint16
	Reserved      [6]byte
}

// ZSPRFile represents a complete ZSPR sprite container.
// Names are set through the setters so empty values fall back to DefaultMetadata.
type ZSPRFile struct {
	SpriteType    uint16
	SpriteData    []byte // snes.SheetSize bytes of 4bpp tiles
	PaletteData   []byte // snes.PaletteData bytes of BGR15 mail colors
	GlovesData    []byte // snes.GlovesData bytes of BGR15 glove colors
	spriteName    string
	authorName    string
	authorNameROM string
}

// PaletteKind names one of the supported palette sources
type PaletteKind string

// Palette source kinds
const (
	PaletteASCII   PaletteKind = "ascii"   // GIMP .gpl / Graphics Gale .pal text
	PaletteHex     PaletteKind = "hex"     // Paint.NET .txt
	PaletteBinary  PaletteKind = "binary"  // YY-CHR .pal
	PaletteExtract PaletteKind = "extract" // bottom-right 8x8 block of the image
)

// Recognised file extensions
var (
	ImageExts         = []string{"png"}
	TextPaletteExts   = []string{"gpl", "pal", "txt"}
	BinaryPaletteExts = []string{"pal"}
	SpriteExts        = []string{"zspr", "spr"}
	ROMExts           = []string{"sfc"}
)

// PaletteSource is one of AsciiList, HexList, BinaryTriplets or InBandExtract
type PaletteSource interface {
	Kind() PaletteKind
	isPaletteSource()
}

// AsciiList holds line-oriented text with three decimal channels per color
type AsciiList struct {
	Data []byte
}

// HexList holds one AARRGGBB hex line per color
type HexList struct {
	Data []byte
}

// BinaryTriplets holds 64 raw r,g,b byte triplets
type BinaryTriplets struct {
	Data []byte
}

// InBandExtract reads the palette from the image itself
type InBandExtract struct{}

func (AsciiList) Kind() PaletteKind      { return PaletteASCII }
func (HexList) Kind() PaletteKind        { return PaletteHex }
func (BinaryTriplets) Kind() PaletteKind { return PaletteBinary }
func (InBandExtract) Kind() PaletteKind  { return PaletteExtract }

func (AsciiList) isPaletteSource()      {}
func (HexList) isPaletteSource()        {}
func (BinaryTriplets) isPaletteSource() {}
func (InBandExtract) isPaletteSource()  {}

// PaletteReader turns a palette source into a finished 66-color palette.
// raster is only consulted by InBandExtract.
type PaletteReader interface {
	Read(src PaletteSource, raster *snes.Raster) (snes.Palette, error)
}

// ZSPRDecoder interface defines methods for decoding ZSPR files
type ZSPRDecoder interface {
	Decode(reader io.Reader) (*ZSPRFile, error)
	DecodeHeader(reader io.Reader) (*ZSPRHeader, error)
}

// ZSPREncoder interface defines methods for encoding ZSPR files
type ZSPREncoder interface {
	Encode(zspr *ZSPRFile, writer io.Writer) error
}
