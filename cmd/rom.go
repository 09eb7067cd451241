// Package cmd provides command-line interface for ROM patching.
package cmd

import (
	"fmt"

	"github.com/hansbonini/zsprtools/pkg"
	"github.com/hansbonini/zsprtools/pkg/common"
	"github.com/spf13/cobra"
)

// romCmd represents the parent command for ROM operations
var romCmd = &cobra.Command{
	Use:   "rom",
	Short: "Patch ZSPR sprites into ROM images",
	Long: `Patch ZSPR sprites into ROM images.

Commands:
  patch     Write the sprite and palette data of a ZSPR file into a ROM

Examples:
  zsprtools rom patch alttp.sfc link.zspr
  zsprtools rom patch alttp.sfc link.zspr -o alttp_link.sfc --offset 0x80000`,
}

// romPatchCmd writes the 0x7078-byte payload of a ZSPR file into a ROM
var romPatchCmd = &cobra.Command{
	Use:   "patch [rom_file] [zspr_file]",
	Short: "Patch a ZSPR sprite into a ROM",
	Long: `Patch a ZSPR sprite into a ROM.

The sprite data (0x7000 bytes) and mail palettes (0x78 bytes) are written
at the sprite window offset. The ROM is left untouched if the window does
not fit.

Example:
  zsprtools rom patch alttp.sfc link.zspr -o alttp_link.sfc`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		romFile := args[0]
		spriteFile := args[1]

		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		offset, err := offsetFlag(cmd, "offset", cfg.ROMOffset)
		if err != nil {
			return err
		}
		outputFile, err := cmd.Flags().GetString("output")
		if err != nil {
			return fmt.Errorf("error getting output flag: %w", err)
		}

		if !common.HasExtension(romFile, pkg.ROMExts...) {
			common.LogWarn(common.WarnExtensionMismatch, romFile, "ROM", pkg.ROMExts)
		}
		if !common.HasExtension(spriteFile, pkg.SpriteExts...) {
			common.LogWarn(common.WarnExtensionMismatch, spriteFile, "sprite", pkg.SpriteExts)
		}

		sprite, err := pkg.ReadZSPRFile(spriteFile)
		if err != nil {
			return fmt.Errorf("failed to read ZSPR file: %w", err)
		}

		fmt.Printf("Patching ROM: %s\n", romFile)
		fmt.Printf("Sprite: %s (%s)\n", spriteFile, sprite.SpriteName())

		if err := pkg.NewRomPatcher().PatchFile(romFile, outputFile, offset, sprite); err != nil {
			return fmt.Errorf("failed to patch ROM: %w", err)
		}

		fmt.Println("ROM patched successfully!")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(romCmd)
	romCmd.AddCommand(romPatchCmd)

	romPatchCmd.Flags().StringP("output", "o", "", "Output ROM file (default: patch in place)")
	romPatchCmd.Flags().String("offset", "", "ROM offset of the sprite window (default 0x80000)")
}
