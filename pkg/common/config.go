package common

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// ConfigFileName is the default config file name inside the user config directory
const ConfigFileName = "zsprtools.yaml"

// LegacyAuthorFile is the author file written by older sprite tools: "name\0romname"
const LegacyAuthorFile = "myname.txt"

// DefaultROMOffset is the start of the player sprite sheet in the ROM
const DefaultROMOffset = 0x80000

// Config holds user defaults applied when the matching flag is not given
type Config struct {
	AuthorName    string `yaml:"author_name"`
	AuthorNameROM string `yaml:"author_name_rom"`
	Round         bool   `yaml:"round"`
	Strict        bool   `yaml:"strict"`
	ROMOffset     int    `yaml:"rom_offset"`
}

// DefaultConfig returns the built-in configuration
func DefaultConfig() Config {
	return Config{
		Round:     true,
		ROMOffset: DefaultROMOffset,
	}
}

// DefaultConfigPath returns the config file path inside the user config directory
func DefaultConfigPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ConfigFileName
	}
	return filepath.Join(dir, "zsprtools", ConfigFileName)
}

// LoadConfig reads a YAML config file on top of DefaultConfig.
// A missing file is not an error; the defaults are returned.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return cfg, FormatError(ErrFailedToReadConfig, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, FormatError(ErrFailedToParseYAML, err)
	}
	if cfg.ROMOffset == 0 {
		cfg.ROMOffset = DefaultROMOffset
	}

	LogDebug(InfoConfigLoaded, path)
	return cfg, nil
}

// LoadLegacyAuthor fills empty author names from a legacy author file.
// A missing file leaves cfg unchanged.
func LoadLegacyAuthor(cfg *Config, path string) error {
	if cfg.AuthorName != "" && cfg.AuthorNameROM != "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return FormatError(ErrFailedToReadConfig, err)
	}

	line, _, _ := strings.Cut(string(data), "\n")
	line = strings.TrimRight(line, "\r")
	name, romName, found := strings.Cut(line, "\x00")

	if cfg.AuthorName == "" {
		cfg.AuthorName = name
	}
	if found && cfg.AuthorNameROM == "" {
		cfg.AuthorNameROM = romName
	}

	LogDebug(InfoLegacyAuthorLoaded, path)
	return nil
}
