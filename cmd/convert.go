package cmd

import (
	"fmt"

	"github.com/hansbonini/zsprtools/pkg"
	"github.com/hansbonini/zsprtools/pkg/common"
	"github.com/spf13/cobra"
)

// convertCmd converts a sprite sheet image into a ZSPR file,
// optionally patching the result straight into a ROM.
var convertCmd = &cobra.Command{
	Use:   "convert [image_file] [output_file]",
	Short: "Convert a 128x448 PNG sprite sheet into a ZSPR file",
	Long: `Convert a 128x448 PNG sprite sheet into a ZSPR file.

Palette sources (--palette-kind):
  auto      Pick by palette file extension (.txt = hex, .gpl/.pal = ascii),
            or extract from the image when no palette file is given
  ascii     GIMP .gpl / Graphics Gale .pal, three numbers per color line
  hex       Paint.NET .txt, one AARRGGBB line per color
  binary    YY-CHR .pal, 64 raw r,g,b triplets
  extract   Bottom-right 8x8 block of the image

The output file defaults to the image name with a .zspr extension.

Examples:
  zsprtools convert link.png link.zspr -p link.gpl
  zsprtools convert link.png -p link.pal --palette-kind binary
  zsprtools convert link.png --name "Link" --author "Nintendo" --rom alttp.sfc`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		imageFile := args[0]
		outputFile := common.ChangeExtension(imageFile, pkg.SpriteExts[0])
		if len(args) > 1 {
			outputFile = args[1]
		}

		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}

		req, err := buildConversionRequest(cmd, cfg, imageFile)
		if err != nil {
			return err
		}

		fmt.Printf("Converting sprite sheet: %s\n", imageFile)
		fmt.Printf("Palette source: %s\n", req.Palette.Kind())

		result, err := pkg.NewConverter().Convert(req)
		if err != nil {
			return fmt.Errorf("failed to convert sprite sheet: %w", err)
		}

		if err := pkg.WriteZSPRFile(result.Sprite, outputFile); err != nil {
			return fmt.Errorf("failed to write ZSPR file: %w", err)
		}
		fmt.Printf("ZSPR file written to: %s\n", outputFile)

		romFile, err := cmd.Flags().GetString("rom")
		if err != nil {
			return fmt.Errorf("error getting rom flag: %w", err)
		}
		if romFile == "" {
			return nil
		}

		offset, err := offsetFlag(cmd, "offset", cfg.ROMOffset)
		if err != nil {
			return err
		}
		romOutput, err := cmd.Flags().GetString("rom-output")
		if err != nil {
			return fmt.Errorf("error getting rom-output flag: %w", err)
		}

		if err := pkg.NewRomPatcher().PatchFile(romFile, romOutput, offset, result.Sprite); err != nil {
			return fmt.Errorf("failed to patch ROM: %w", err)
		}
		fmt.Println("ROM patched successfully!")
		return nil
	},
}

// buildConversionRequest resolves the palette source and metadata from
// flags, falling back to the config file values.
func buildConversionRequest(cmd *cobra.Command, cfg common.Config, imageFile string) (pkg.ConversionRequest, error) {
	var req pkg.ConversionRequest

	if !common.HasExtension(imageFile, pkg.ImageExts...) {
		common.LogWarn(common.WarnExtensionMismatch, imageFile, "image", pkg.ImageExts)
	}
	img, err := pkg.LoadImage(imageFile)
	if err != nil {
		return req, err
	}

	paletteFile, err := cmd.Flags().GetString("palette")
	if err != nil {
		return req, fmt.Errorf("error getting palette flag: %w", err)
	}
	kindName, err := cmd.Flags().GetString("palette-kind")
	if err != nil {
		return req, fmt.Errorf("error getting palette-kind flag: %w", err)
	}
	kind, err := pkg.ParsePaletteKind(kindName, paletteFile)
	if err != nil {
		return req, err
	}
	src, err := pkg.LoadPaletteSource(kind, paletteFile)
	if err != nil {
		return req, fmt.Errorf("%s: %w", common.ErrFailedToReadPalette, err)
	}

	name, err := stringOverride(cmd, "name", common.BaseName(imageFile))
	if err != nil {
		return req, err
	}
	author, err := stringOverride(cmd, "author", cfg.AuthorName)
	if err != nil {
		return req, err
	}
	authorROM, err := stringOverride(cmd, "author-rom", cfg.AuthorNameROM)
	if err != nil {
		return req, err
	}
	round, err := boolOverride(cmd, "round", cfg.Round)
	if err != nil {
		return req, err
	}
	strict, err := boolOverride(cmd, "strict", cfg.Strict)
	if err != nil {
		return req, err
	}

	return pkg.ConversionRequest{
		Image:         img,
		Palette:       src,
		SpriteName:    name,
		AuthorName:    author,
		AuthorNameROM: authorROM,
		Round:         round,
		Strict:        strict,
	}, nil
}

func init() {
	rootCmd.AddCommand(convertCmd)

	convertCmd.Flags().StringP("palette", "p", "", "Palette file (omit to extract from the image)")
	convertCmd.Flags().String("palette-kind", "auto", "Palette source: auto, ascii, hex, binary or extract")
	convertCmd.Flags().StringP("name", "n", "", "Sprite name (default: image file name)")
	convertCmd.Flags().StringP("author", "a", "", "Author name")
	convertCmd.Flags().String("author-rom", "", "Author name shown in the ROM credits (ASCII, 20 characters)")
	convertCmd.Flags().Bool("round", true, "Truncate colors to SNES 15-bit precision")
	convertCmd.Flags().Bool("strict", false, "Fail on pixels whose color is not in the palette")
	convertCmd.Flags().String("rom", "", "Also patch the sprite into this ROM")
	convertCmd.Flags().String("rom-output", "", "Patched ROM output file (default: patch in place)")
	convertCmd.Flags().String("offset", "", "ROM offset of the sprite window (default 0x80000)")
}
