package cmd

import (
	"testing"

	"github.com/spf13/cobra"
)

func TestParseMail(t *testing.T) {
	testCases := []struct {
		input    string
		expected int
		wantErr  bool
	}{
		{"green", 0, false},
		{"Blue", 1, false},
		{"RED", 2, false},
		{"bunny", 3, false},
		{"3", 3, false},
		{"4", 0, true},
		{"-1", 0, true},
		{"purple", 0, true},
	}

	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			got, err := parseMail(tc.input)
			if tc.wantErr {
				if err == nil {
					t.Errorf("parseMail(%q) should fail", tc.input)
				}
				return
			}
			if err != nil {
				t.Fatalf("parseMail(%q) failed: %v", tc.input, err)
			}
			if got != tc.expected {
				t.Errorf("parseMail(%q) = %d, want %d", tc.input, got, tc.expected)
			}
		})
	}
}

func TestOffsetFlag(t *testing.T) {
	testCases := []struct {
		value    string
		expected int
		wantErr  bool
	}{
		{"", 0x80000, false},
		{"0x80000", 0x80000, false},
		{"524288", 0x80000, false},
		{"0X100", 0x100, false},
		{"-5", 0, true},
		{"banana", 0, true},
	}

	for _, tc := range testCases {
		t.Run(tc.value, func(t *testing.T) {
			c := &cobra.Command{}
			c.Flags().String("offset", "", "")
			if err := c.Flags().Set("offset", tc.value); err != nil {
				t.Fatalf("Set() failed: %v", err)
			}

			got, err := offsetFlag(c, "offset", 0x80000)
			if tc.wantErr {
				if err == nil {
					t.Errorf("offsetFlag(%q) should fail", tc.value)
				}
				return
			}
			if err != nil {
				t.Fatalf("offsetFlag(%q) failed: %v", tc.value, err)
			}
			if got != tc.expected {
				t.Errorf("offsetFlag(%q) = 0x%X, want 0x%X", tc.value, got, tc.expected)
			}
		})
	}
}

func TestBoolOverride(t *testing.T) {
	c := &cobra.Command{}
	c.Flags().Bool("round", true, "")

	got, err := boolOverride(c, "round", false)
	if err != nil || got {
		t.Errorf("boolOverride() without flag = %v, %v; want config value false", got, err)
	}

	if err := c.Flags().Set("round", "true"); err != nil {
		t.Fatalf("Set() failed: %v", err)
	}
	got, err = boolOverride(c, "round", false)
	if err != nil || !got {
		t.Errorf("boolOverride() with flag = %v, %v; want true", got, err)
	}
}
