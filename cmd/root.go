// Package cmd provides command-line interface functionality for ZSPRTools.
// ZSPRTools converts 128x448 sprite sheets into SNES 4bpp ZSPR sprite files
// and patches them into A Link to the Past ROM images.
package cmd

import (
	"fmt"
	"os"
	"strconv"

	"github.com/hansbonini/zsprtools/pkg/common"
	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands.
// It provides the main entry point for the ZSPRTools application.
var rootCmd = &cobra.Command{
	Use:   "zsprtools",
	Short: "Tools for building SNES ZSPR player sprites",
	Long: `ZSPRTools - Convert 128x448 sprite sheets into SNES 4bpp ZSPR sprite
files and patch them into ROM images.

Currently supports:
  - PNG sprite sheets with GIMP, Graphics Gale, Paint.NET or YY-CHR palettes
  - Palettes embedded in the bottom-right 8x8 block of the image
  - ZSPR inspection, export back to PNG and index filters
  - Batch conversion from a YAML manifest

Examples:
  zsprtools convert link.png link.zspr -p link.gpl
  zsprtools convert link.png --palette-kind extract --name "Link"
  zsprtools rom patch alttp.sfc link.zspr -o alttp_link.sfc
  zsprtools zspr info link.zspr
  zsprtools zspr export link.zspr link_red.png --mail red
  zsprtools palette generate link.png link.gpl
  zsprtools batch sprites.yaml --jobs 4

Use 'zsprtools [command] --help' for more information about a command.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		verbose, err := cmd.Flags().GetBool("verbose")
		if err != nil {
			return fmt.Errorf("error getting verbose flag: %w", err)
		}
		common.SetVerboseMode(verbose)
		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main() and serves as the entry point for command execution.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		common.LogError("%v", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().String("config", "", fmt.Sprintf("Config file (default %s)", common.DefaultConfigPath()))
}

// loadConfig reads the YAML config named by --config, falling back to the
// default location, then fills missing author names from a legacy myname.txt.
func loadConfig(cmd *cobra.Command) (common.Config, error) {
	path, err := cmd.Flags().GetString("config")
	if err != nil {
		return common.Config{}, fmt.Errorf("error getting config flag: %w", err)
	}
	if path == "" {
		path = common.DefaultConfigPath()
	}

	cfg, err := common.LoadConfig(path)
	if err != nil {
		return cfg, err
	}
	if err := common.LoadLegacyAuthor(&cfg, common.LegacyAuthorFile); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// boolOverride returns the flag value when the user set it, otherwise fallback
func boolOverride(cmd *cobra.Command, name string, fallback bool) (bool, error) {
	if !cmd.Flags().Changed(name) {
		return fallback, nil
	}
	value, err := cmd.Flags().GetBool(name)
	if err != nil {
		return fallback, fmt.Errorf("error getting %s flag: %w", name, err)
	}
	return value, nil
}

// stringOverride returns the flag value when it is not empty, otherwise fallback
func stringOverride(cmd *cobra.Command, name, fallback string) (string, error) {
	value, err := cmd.Flags().GetString(name)
	if err != nil {
		return fallback, fmt.Errorf("error getting %s flag: %w", name, err)
	}
	if value == "" {
		return fallback, nil
	}
	return value, nil
}

// offsetFlag parses a decimal or 0x-prefixed ROM offset, defaulting to fallback
func offsetFlag(cmd *cobra.Command, name string, fallback int) (int, error) {
	value, err := cmd.Flags().GetString(name)
	if err != nil {
		return 0, fmt.Errorf("error getting %s flag: %w", name, err)
	}
	if value == "" {
		return fallback, nil
	}

	offset, err := strconv.ParseInt(value, 0, 64)
	if err != nil || offset < 0 {
		return 0, fmt.Errorf("invalid ROM offset %q", value)
	}
	return int(offset), nil
}
