package common

import (
	"bytes"
	"encoding/binary"
	"strings"
	"testing"
)

func TestIsValidZSPRFile_Valid(t *testing.T) {
	reader := bytes.NewReader([]byte("ZSPR\x01"))
	if err := IsValidZSPRFile(reader); err != nil {
		t.Errorf("IsValidZSPRFile() failed with valid header: %v", err)
	}
}

func TestIsValidZSPRFile_Invalid(t *testing.T) {
	testCases := []struct {
		name string
		data []byte
	}{
		{"empty", []byte{}},
		{"truncated", []byte("ZSP")},
		{"zeroes", []byte{0, 0, 0, 0}},
		{"wrong format", []byte("GIF8")},
		{"case sensitive", []byte("zspr")},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := IsValidZSPRFile(bytes.NewReader(tc.data))
			if err == nil {
				t.Fatalf("IsValidZSPRFile() should fail with header %q", tc.data)
			}

			expectedMsg := "invalid ZSPR header"
			if !strings.Contains(err.Error(), expectedMsg) {
				t.Errorf("Error message %q should contain %q", err.Error(), expectedMsg)
			}
		})
	}
}

func TestReadUint16LE(t *testing.T) {
	testCases := []struct {
		name     string
		data     []byte
		expected uint16
		hasError bool
	}{
		{"normal value", []byte{0x34, 0x12}, 0x1234, false},
		{"zero value", []byte{0x00, 0x00}, 0x0000, false},
		{"max value", []byte{0xFF, 0xFF}, 0xFFFF, false},
		{"incomplete data", []byte{0x34}, 0, true},
		{"empty data", []byte{}, 0, true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			reader := bytes.NewReader(tc.data)
			result, err := ReadUint16LE(reader)

			if tc.hasError {
				if err == nil {
					t.Errorf("ReadUint16LE() should fail with data %v", tc.data)
				}
			} else {
				if err != nil {
					t.Errorf("ReadUint16LE() failed: %v", err)
				}
				if result != tc.expected {
					t.Errorf("ReadUint16LE() = 0x%04X, want 0x%04X", result, tc.expected)
				}
			}
		})
	}
}

func TestReadUint32LE(t *testing.T) {
	testCases := []struct {
		name     string
		data     []byte
		expected uint32
		hasError bool
	}{
		{"normal value", []byte{0x78, 0x56, 0x34, 0x12}, 0x12345678, false},
		{"zero value", []byte{0x00, 0x00, 0x00, 0x00}, 0x00000000, false},
		{"max value", []byte{0xFF, 0xFF, 0xFF, 0xFF}, 0xFFFFFFFF, false},
		{"incomplete data", []byte{0x78, 0x56, 0x34}, 0, true},
		{"empty data", []byte{}, 0, true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			reader := bytes.NewReader(tc.data)
			result, err := ReadUint32LE(reader)

			if tc.hasError {
				if err == nil {
					t.Errorf("ReadUint32LE() should fail with data %v", tc.data)
				}
			} else {
				if err != nil {
					t.Errorf("ReadUint32LE() failed: %v", err)
				}
				if result != tc.expected {
					t.Errorf("ReadUint32LE() = 0x%08X, want 0x%08X", result, tc.expected)
				}
			}
		})
	}
}

func TestReadBytes(t *testing.T) {
	testCases := []struct {
		name     string
		data     []byte
		count    int
		expected []byte
		hasError bool
	}{
		{"normal read", []byte{0x01, 0x02, 0x03, 0x04}, 3, []byte{0x01, 0x02, 0x03}, false},
		{"exact read", []byte{0x01, 0x02}, 2, []byte{0x01, 0x02}, false},
		{"zero read", []byte{0x01, 0x02}, 0, []byte{}, false},
		{"insufficient data", []byte{0x01, 0x02}, 3, nil, true},
		{"empty source", []byte{}, 1, nil, true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			reader := bytes.NewReader(tc.data)
			result, err := ReadBytes(reader, tc.count)

			if tc.hasError {
				if err == nil {
					t.Errorf("ReadBytes() should fail when requesting %d bytes from %v", tc.count, tc.data)
				}
			} else {
				if err != nil {
					t.Errorf("ReadBytes() failed: %v", err)
				}
				if len(result) != len(tc.expected) {
					t.Errorf("ReadBytes() returned %d bytes, want %d", len(result), len(tc.expected))
				} else {
					for i, expected := range tc.expected {
						if result[i] != expected {
							t.Errorf("ReadBytes()[%d] = 0x%02X, want 0x%02X", i, result[i], expected)
						}
					}
				}
			}
		})
	}
}

func TestIndexTerminator(t *testing.T) {
	testCases := []struct {
		name     string
		data     []byte
		width    int
		expected int
	}{
		{"ascii", []byte{'a', 'b', 0, 'c'}, 1, 2},
		{"ascii missing", []byte{'a', 'b'}, 1, -1},
		{"utf16", []byte{'a', 0, 'b', 0, 0, 0}, 2, 4},
		{"utf16 odd offset ignored", []byte{0x41, 0x00, 0x00, 0x42, 0x00, 0x00}, 2, 4},
		{"utf16 empty string", []byte{0, 0, 'x', 0}, 2, 0},
		{"utf16 missing", []byte{'a', 0, 'b'}, 2, -1},
		{"unknown width", []byte{0, 0}, 3, -1},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := IndexTerminator(tc.data, tc.width); got != tc.expected {
				t.Errorf("IndexTerminator(%v, %d) = %d, want %d", tc.data, tc.width, got, tc.expected)
			}
		})
	}
}

func TestChecksum16(t *testing.T) {
	data := []byte{0x01, 0x02, 0xFF, 0xFF, 0x03}

	if got := Checksum16(data, 0, 0); got != 0x0204 {
		t.Errorf("Checksum16() without skip = 0x%04X, want 0x0204", got)
	}
	if got := Checksum16(data, 2, 4); got != 0x0006 {
		t.Errorf("Checksum16() skipping [2,4) = 0x%04X, want 0x0006", got)
	}

	big := bytes.Repeat([]byte{0xFF}, 300)
	if got := Checksum16(big, 0, 0); got != 0x2AD4 { // 300*0xFF mod 0x10000
		t.Errorf("Checksum16() should wrap at 16 bits, got 0x%04X", got)
	}
}

func TestHasExtension(t *testing.T) {
	testCases := []struct {
		file     string
		exts     []string
		expected bool
	}{
		{"link.png", []string{"png"}, true},
		{"LINK.PNG", []string{"png"}, true},
		{"link.gpl", []string{"gpl", "pal"}, true},
		{"link.txt", []string{"gpl", "pal"}, false},
		{"link", []string{"png"}, false},
		{"dir.png/link", []string{"png"}, false},
	}

	for _, tc := range testCases {
		t.Run(tc.file, func(t *testing.T) {
			if got := HasExtension(tc.file, tc.exts...); got != tc.expected {
				t.Errorf("HasExtension(%q, %v) = %v, want %v", tc.file, tc.exts, got, tc.expected)
			}
		})
	}
}

func TestChangeExtension(t *testing.T) {
	if got := ChangeExtension("sprites/link.png", "zspr"); got != "sprites/link.zspr" {
		t.Errorf("ChangeExtension() = %q, want %q", got, "sprites/link.zspr")
	}
	if got := ChangeExtension("link", "gpl"); got != "link.gpl" {
		t.Errorf("ChangeExtension() = %q, want %q", got, "link.gpl")
	}
}

func TestBaseName(t *testing.T) {
	if got := BaseName("sprites/link.v2.png"); got != "link.v2" {
		t.Errorf("BaseName() = %q, want %q", got, "link.v2")
	}
}

// Test reading from binary data created with the same endianness
func TestReadFunctions_BinaryCompatibility(t *testing.T) {
	var buffer bytes.Buffer

	// Write test data using binary.Write
	test16 := uint16(0x1234)
	test32 := uint32(0x12345678)

	binary.Write(&buffer, binary.LittleEndian, test16)
	binary.Write(&buffer, binary.LittleEndian, test32)

	reader := bytes.NewReader(buffer.Bytes())

	// Read back using our functions
	read16, err := ReadUint16LE(reader)
	if err != nil {
		t.Fatalf("ReadUint16LE() failed: %v", err)
	}

	if read16 != test16 {
		t.Errorf("ReadUint16LE() = 0x%04X, want 0x%04X", read16, test16)
	}

	read32, err := ReadUint32LE(reader)
	if err != nil {
		t.Fatalf("ReadUint32LE() failed: %v", err)
	}

	if read32 != test32 {
		t.Errorf("ReadUint32LE() = 0x%08X, want 0x%08X", read32, test32)
	}
}
