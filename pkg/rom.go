package pkg

import (
	"fmt"
	"os"

	"github.com/hansbonini/zsprtools/pkg/common"
)

// RomPatcher writes a sprite payload into the player sprite window of a ROM
type RomPatcher struct{}

// NewRomPatcher creates a new ROM patcher instance
func NewRomPatcher() *RomPatcher {
	return &RomPatcher{}
}

// Patch overwrites rom[offset:offset+ROMPayloadSize] with payload and returns rom.
// On error the ROM is left untouched.
func (p *RomPatcher) Patch(rom []byte, offset int, payload []byte) ([]byte, error) {
	if len(payload) != ROMPayloadSize {
		return nil, fmt.Errorf("%w: payload is %d bytes, want %d", common.ErrSizeMismatch, len(payload), ROMPayloadSize)
	}
	if offset < 0 || offset > len(rom)-ROMPayloadSize {
		return nil, fmt.Errorf("%w: window 0x%X+0x%X, ROM is 0x%X bytes", common.ErrPatchOutOfBounds, offset, ROMPayloadSize, len(rom))
	}

	common.LogDebug(common.DebugPatchWindow, offset, offset+ROMPayloadSize, len(rom))
	copy(rom[offset:offset+ROMPayloadSize], payload)
	return rom, nil
}

// PatchFile patches the payload of sprite into the ROM at romPath and writes
// the result to outputFile, keeping the file mode of the source ROM.
// An empty outputFile patches the ROM in place.
func (p *RomPatcher) PatchFile(romPath, outputFile string, offset int, sprite *ZSPRFile) error {
	info, err := os.Stat(romPath)
	if err != nil {
		return common.FormatError(common.ErrFailedToReadROM, err)
	}

	rom, err := os.ReadFile(romPath)
	if err != nil {
		return common.FormatError(common.ErrFailedToReadROM, err)
	}

	if _, err := p.Patch(rom, offset, sprite.Payload()); err != nil {
		return err
	}

	if outputFile == "" {
		outputFile = romPath
	}
	if err := os.WriteFile(outputFile, rom, info.Mode().Perm()); err != nil {
		return common.FormatError(common.ErrFailedToWriteROM, err)
	}

	common.LogInfo(common.InfoROMPatched, outputFile, offset, ROMPayloadSize)
	return nil
}
