package common

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"path/filepath"
	"strings"
)

// ZSPRMagic is the signature at the start of every ZSPR file
const ZSPRMagic = "ZSPR"

// ValidateZSPRMagic checks if the given bytes represent a ZSPR signature
func ValidateZSPRMagic(magic [4]byte) error {
	if string(magic[:]) != ZSPRMagic {
		return fmt.Errorf("invalid ZSPR header: expected '%s', got '%s'", ZSPRMagic, string(magic[:]))
	}
	return nil
}

// IsValidZSPRFile reads the first four bytes of reader and validates the signature
func IsValidZSPRFile(reader io.Reader) error {
	var magic [4]byte
	if _, err := io.ReadFull(reader, magic[:]); err != nil {
		return fmt.Errorf("invalid ZSPR header: %w", err)
	}
	return ValidateZSPRMagic(magic)
}

// ReadUint16LE reads a uint16 in little-endian format
func ReadUint16LE(reader io.Reader) (uint16, error) {
	var value uint16
	err := binary.Read(reader, binary.LittleEndian, &value)
	return value, err
}

// ReadUint32LE reads a uint32 in little-endian format
func ReadUint32LE(reader io.Reader) (uint32, error) {
	var value uint32
	err := binary.Read(reader, binary.LittleEndian, &value)
	return value, err
}

// ReadBytes reads a specified number of bytes
func ReadBytes(reader io.Reader, count int) ([]byte, error) {
	buffer := make([]byte, count)
	n, err := io.ReadFull(reader, buffer)
	if err != nil {
		return nil, err
	}
	if n != count {
		return nil, fmt.Errorf("expected to read %d bytes, got %d", count, n)
	}
	return buffer, nil
}

// IndexTerminator returns the offset of the first terminator of the given
// unit width (1 for ASCII, 2 for UTF-16) in data, or -1.
// UTF-16 terminators are only recognised on even offsets.
func IndexTerminator(data []byte, width int) int {
	switch width {
	case 1:
		return bytes.IndexByte(data, 0x00)
	case 2:
		for i := 0; i+1 < len(data); i += 2 {
			if data[i] == 0x00 && data[i+1] == 0x00 {
				return i
			}
		}
	}
	return -1
}

// Checksum16 sums every byte of data, skipping the half-open range [skipFrom, skipTo).
func Checksum16(data []byte, skipFrom, skipTo int) uint16 {
	var sum uint16
	for i, b := range data {
		if i >= skipFrom && i < skipTo {
			continue
		}
		sum += uint16(b)
	}
	return sum
}

// HasExtension reports whether the file name ends in one of the given extensions (case-insensitive, no dot)
func HasExtension(fileName string, exts ...string) bool {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(fileName)), ".")
	for _, e := range exts {
		if ext == e {
			return true
		}
	}
	return false
}

// ChangeExtension replaces the extension of fileName with ext (no dot)
func ChangeExtension(fileName, ext string) string {
	return strings.TrimSuffix(fileName, filepath.Ext(fileName)) + "." + ext
}

// BaseName returns the file name of path without directory or extension
func BaseName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
