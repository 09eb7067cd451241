// Package common provides shared utilities for the ZSPR sprite tools.
// This file defines the error kinds returned by the conversion core.
package common

import "errors"

// Error kinds. Every failure returned by the core wraps exactly one of these,
// so callers can branch with errors.Is.
var (
	// ErrBadDimensions reports a raster that is not 128x448 pixels.
	ErrBadDimensions = errors.New("image dimensions must be 128x448")
	// ErrShortPalette reports a text palette with fewer than 16 colors.
	ErrShortPalette = errors.New("unable to find 16 colors")
	// ErrMalformedPalette reports an unreadable or structurally invalid palette source.
	ErrMalformedPalette = errors.New("malformed palette")
	// ErrNotContainerFormat reports bytes that do not have the ZSPR shape.
	ErrNotContainerFormat = errors.New("not a ZSPR file")
	// ErrBadChecksum reports a well-formed ZSPR file whose checksum does not match.
	ErrBadChecksum = errors.New("bad checksum; file may be corrupted")
	// ErrSizeMismatch reports a ROM payload whose length differs from the patch window.
	ErrSizeMismatch = errors.New("payload size does not match patch window")
	// ErrPatchOutOfBounds reports a patch window that does not fit inside the ROM.
	ErrPatchOutOfBounds = errors.New("patch window outside ROM")
	// ErrUnmatchedColor reports a pixel whose color is absent from the palette (strict mode).
	ErrUnmatchedColor = errors.New("pixel color not found in palette")
	// ErrUnknownPaletteKind reports a palette source name or file extension that maps to no reader.
	ErrUnknownPaletteKind = errors.New("unknown palette source kind")
	// ErrUnknownFilter reports a sprite filter name that is not supported.
	ErrUnknownFilter = errors.New("unknown sprite filter")
)
