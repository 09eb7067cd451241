package common

import (
	"fmt"
	"log"
)

// Global variable to control debug output
var VerboseMode bool = false

// SetVerboseMode enables or disables verbose/debug output
func SetVerboseMode(verbose bool) {
	VerboseMode = verbose
}

// Error messages
const (
	ErrFailedToLoadImage         = "failed to load image"
	ErrFailedToDecodeImage       = "failed to decode image"
	ErrFailedToReadPalette       = "failed to read palette"
	ErrFailedToBuildZSPR         = "failed to build ZSPR file"
	ErrFailedToWriteZSPR         = "failed to write ZSPR file"
	ErrFailedToReadZSPR          = "failed to read ZSPR file"
	ErrFailedToReadROM           = "failed to read ROM file"
	ErrFailedToWriteROM          = "failed to write ROM file"
	ErrFailedToCreateOutputFile  = "failed to create output file"
	ErrFailedToEncodePNG         = "failed to encode PNG"
	ErrFailedToReadConfig        = "failed to read config file"
	ErrFailedToParseYAML         = "failed to parse YAML"
	ErrFailedToReadManifest      = "failed to read batch manifest"
	ErrPaletteSourceRequiresPath = "palette source requires a file path"
)

// Info messages
const (
	InfoPaletteLoaded      = "Loaded palette (%s): %d colors"
	InfoTilesIndexed       = "Indexed %d tiles"
	InfoZSPRWritten        = "Sprite file successfully written to: %s"
	InfoROMPatched         = "Sprite file successfully patched to: %s (offset 0x%X, %d bytes)"
	InfoImageExported      = "Exported sprite image (mail %d) to: %s"
	InfoFilterApplied      = "Applied %s filter to %d tiles"
	InfoPaletteGenerated   = "Generated %d-color palette to: %s"
	InfoBatchJobDone       = "Batch job %d done: %s -> %s"
	InfoBatchFinished      = "Batch finished: %d jobs"
	InfoConfigLoaded       = "Loaded config from: %s"
	InfoLegacyAuthorLoaded = "Loaded author names from: %s"
)

// Debug messages
const (
	DebugPaletteColor     = "Palette[%02d] = %s"
	DebugRasterRounded    = "Rounded raster and palette to 15-bit precision"
	DebugHeaderInfo       = "Header: Magic=%s, Version=%d, Checksum=%04X/%04X"
	DebugRegionInfo       = "Region %s: offset=0x%X length=0x%X"
	DebugMetadata         = "Names: sprite=%q author=%q rom=%q"
	DebugPatchWindow      = "Patch window: 0x%X-0x%X of 0x%X"
	DebugBatchJobStarting = "Batch job %d starting: %s"
)

// Warning messages
const (
	WarnUnmatchedPixels   = "%d pixels had no palette match and were set to index 0 (first at %d,%d color %s)"
	WarnAuthorROMTrimmed  = "Author ROM name trimmed to %q"
	WarnExtensionMismatch = "File %s does not use a recognised %s extension (%v)"
)

// LogInfo logs an informational message
func LogInfo(message string, args ...interface{}) {
	if len(args) > 0 {
		log.Printf("[INFO] "+message, args...)
	} else {
		log.Printf("[INFO] %s", message)
	}
}

// LogWarn logs a warning message
func LogWarn(message string, args ...interface{}) {
	if len(args) > 0 {
		log.Printf("[WARN] "+message, args...)
	} else {
		log.Printf("[WARN] %s", message)
	}
}

// LogError logs an error message
func LogError(message string, args ...interface{}) {
	if len(args) > 0 {
		log.Printf("[ERROR] "+message, args...)
	} else {
		log.Printf("[ERROR] %s", message)
	}
}

// LogDebug logs a debug message (only if VerboseMode is enabled)
func LogDebug(message string, args ...interface{}) {
	if !VerboseMode {
		return
	}

	if len(args) > 0 {
		log.Printf("[DEBUG] "+message, args...)
	} else {
		log.Printf("[DEBUG] %s", message)
	}
}

// FormatError creates a formatted error with additional context
func FormatError(baseMessage string, details interface{}) error {
	if err, ok := details.(error); ok {
		return fmt.Errorf("%s: %w", baseMessage, err)
	}
	return fmt.Errorf("%s: %v", baseMessage, details)
}

// FormatErrorString creates a formatted error with string details
func FormatErrorString(baseMessage, details string, args ...interface{}) error {
	if len(args) > 0 {
		return fmt.Errorf("%s: "+details, append([]interface{}{baseMessage}, args...)...)
	}
	return fmt.Errorf("%s: %s", baseMessage, details)
}
