package cmd

import (
	"fmt"

	"github.com/hansbonini/zsprtools/pkg"
	"github.com/hansbonini/zsprtools/pkg/common"
	"github.com/hansbonini/zsprtools/pkg/snes"
	"github.com/spf13/cobra"
)

// paletteCmd represents the parent command for palette operations
var paletteCmd = &cobra.Command{
	Use:   "palette",
	Short: "Inspect and generate sprite palettes",
	Long: `Inspect and generate sprite palettes.

Commands:
  show      Print the finished 66-color palette as YAML
  generate  Build a 16-color GIMP palette from an image

Examples:
  zsprtools palette show link.gpl
  zsprtools palette show link.png --palette-kind extract
  zsprtools palette generate link.png link.gpl`,
}

// paletteShowCmd reads any palette source and prints the finished palette
var paletteShowCmd = &cobra.Command{
	Use:   "show [palette_or_image_file]",
	Short: "Print a palette as YAML",
	Long: `Print a palette as YAML after mail backfill and glove derivation.

With --palette-kind extract the argument is a 128x448 PNG whose
bottom-right 8x8 block holds the palette.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		inputFile := args[0]

		kindName, err := cmd.Flags().GetString("palette-kind")
		if err != nil {
			return fmt.Errorf("error getting palette-kind flag: %w", err)
		}
		kind, err := pkg.ParsePaletteKind(kindName, inputFile)
		if err != nil {
			return err
		}

		var raster *snes.Raster
		paletteFile := inputFile
		if kind == pkg.PaletteExtract {
			img, err := pkg.LoadImage(inputFile)
			if err != nil {
				return err
			}
			if raster, err = snes.RasterFromImage(img); err != nil {
				return err
			}
			paletteFile = ""
		}

		src, err := pkg.LoadPaletteSource(kind, paletteFile)
		if err != nil {
			return fmt.Errorf("%s: %w", common.ErrFailedToReadPalette, err)
		}
		pal, err := pkg.NewPaletteReader().Read(src, raster)
		if err != nil {
			return fmt.Errorf("%s: %w", common.ErrFailedToReadPalette, err)
		}

		return pkg.WriteYAML(pkg.NewPaletteYAML(pal), cmd.OutOrStdout())
	},
}

// paletteGenerateCmd quantizes an image into a 16-color GIMP palette
var paletteGenerateCmd = &cobra.Command{
	Use:   "generate [image_file] [output_file]",
	Short: "Generate a 16-color GIMP palette from an image",
	Long: `Generate a 16-color GIMP palette from an image.

Index 0 is the color of the top-left pixel (the transparent background);
the other 15 colors come from median-cut quantization. The output can be
passed to 'convert -p'.

Example:
  zsprtools palette generate link.png link.gpl`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		imageFile := args[0]
		outputFile := common.ChangeExtension(imageFile, "gpl")
		if len(args) > 1 {
			outputFile = args[1]
		}

		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		round, err := boolOverride(cmd, "round", cfg.Round)
		if err != nil {
			return err
		}

		img, err := pkg.LoadImage(imageFile)
		if err != nil {
			return err
		}
		colors, err := pkg.GeneratePalette(img, round)
		if err != nil {
			return fmt.Errorf("failed to generate palette: %w", err)
		}

		if err := pkg.WriteGPLFile(colors, common.BaseName(imageFile), outputFile); err != nil {
			return fmt.Errorf("failed to write palette: %w", err)
		}

		common.LogInfo(common.InfoPaletteGenerated, len(colors), outputFile)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(paletteCmd)
	paletteCmd.AddCommand(paletteShowCmd)
	paletteCmd.AddCommand(paletteGenerateCmd)

	paletteShowCmd.Flags().String("palette-kind", "auto", "Palette source: auto, ascii, hex, binary or extract")
	paletteGenerateCmd.Flags().Bool("round", true, "Truncate colors to SNES 15-bit precision")
}
