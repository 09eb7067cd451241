package common

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfig_MissingFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("LoadConfig() with missing file failed: %v", err)
	}
	if cfg != DefaultConfig() {
		t.Errorf("LoadConfig() = %+v, want defaults %+v", cfg, DefaultConfig())
	}
}

func TestLoadConfig_Values(t *testing.T) {
	path := filepath.Join(t.TempDir(), ConfigFileName)
	data := "author_name: Jane\nauthor_name_rom: JANE\nround: false\nstrict: true\nrom_offset: 589824\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() failed: %v", err)
	}

	expected := Config{AuthorName: "Jane", AuthorNameROM: "JANE", Round: false, Strict: true, ROMOffset: 0x90000}
	if cfg != expected {
		t.Errorf("LoadConfig() = %+v, want %+v", cfg, expected)
	}
}

func TestLoadConfig_KeepsDefaultsForUnsetKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), ConfigFileName)
	if err := os.WriteFile(path, []byte("author_name: Jane\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() failed: %v", err)
	}
	if !cfg.Round {
		t.Error("Round should keep its default of true")
	}
	if cfg.ROMOffset != DefaultROMOffset {
		t.Errorf("ROMOffset = 0x%X, want 0x%X", cfg.ROMOffset, DefaultROMOffset)
	}
}

func TestLoadConfig_InvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), ConfigFileName)
	if err := os.WriteFile(path, []byte("round: [unclosed\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := LoadConfig(path); err == nil {
		t.Error("LoadConfig() should fail on invalid YAML")
	}
}

func TestLoadLegacyAuthor(t *testing.T) {
	path := filepath.Join(t.TempDir(), LegacyAuthorFile)
	if err := os.WriteFile(path, []byte("Jane Doe\x00JANE\r\nignored\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	t.Run("fills empty names", func(t *testing.T) {
		cfg := DefaultConfig()
		if err := LoadLegacyAuthor(&cfg, path); err != nil {
			t.Fatalf("LoadLegacyAuthor() failed: %v", err)
		}
		if cfg.AuthorName != "Jane Doe" || cfg.AuthorNameROM != "JANE" {
			t.Errorf("LoadLegacyAuthor() gave %q / %q", cfg.AuthorName, cfg.AuthorNameROM)
		}
	})

	t.Run("config wins", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.AuthorName = "Configured"
		if err := LoadLegacyAuthor(&cfg, path); err != nil {
			t.Fatalf("LoadLegacyAuthor() failed: %v", err)
		}
		if cfg.AuthorName != "Configured" {
			t.Errorf("AuthorName = %q, want %q", cfg.AuthorName, "Configured")
		}
		if cfg.AuthorNameROM != "JANE" {
			t.Errorf("AuthorNameROM = %q, want %q", cfg.AuthorNameROM, "JANE")
		}
	})

	t.Run("missing file", func(t *testing.T) {
		cfg := DefaultConfig()
		if err := LoadLegacyAuthor(&cfg, filepath.Join(t.TempDir(), LegacyAuthorFile)); err != nil {
			t.Errorf("LoadLegacyAuthor() with missing file failed: %v", err)
		}
	})
}

func TestSafeIntToUint8(t *testing.T) {
	testCases := []struct {
		value    int
		hasError bool
	}{
		{0, false},
		{255, false},
		{-1, true},
		{256, true},
	}

	for _, tc := range testCases {
		got, err := SafeIntToUint8(tc.value)
		if tc.hasError {
			if err == nil {
				t.Errorf("SafeIntToUint8(%d) should fail", tc.value)
			}
			continue
		}
		if err != nil || int(got) != tc.value {
			t.Errorf("SafeIntToUint8(%d) = %d, %v", tc.value, got, err)
		}
	}
}
