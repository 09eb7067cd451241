// Package cmd provides command-line interface for ZSPR file inspection.
// This file contains commands for printing, exporting and filtering
// existing ZSPR sprite files.
package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/hansbonini/zsprtools/pkg"
	"github.com/hansbonini/zsprtools/pkg/common"
	"github.com/hansbonini/zsprtools/pkg/snes"
	"github.com/spf13/cobra"
)

// zsprCmd represents the parent command for all ZSPR file operations
var zsprCmd = &cobra.Command{
	Use:   "zspr",
	Short: "Inspect and modify ZSPR sprite files",
	Long: `Inspect and modify ZSPR sprite files.

Commands:
  info      Print the header, names and palette as YAML
  export    Render the sprite back into a 128x448 PNG
  filter    Apply an index filter (swap, static)

Examples:
  zsprtools zspr info link.zspr
  zsprtools zspr export link.zspr link.png --mail blue
  zsprtools zspr filter link.zspr link_swap.zspr --filter swap`,
}

// zsprInfoCmd prints a YAML summary of a ZSPR file
var zsprInfoCmd = &cobra.Command{
	Use:   "info [zspr_file]",
	Short: "Print ZSPR metadata as YAML",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		info, err := pkg.NewZSPRProcessor().Info(args[0])
		if err != nil {
			return fmt.Errorf("failed to read ZSPR file: %w", err)
		}
		return pkg.WriteYAML(info, cmd.OutOrStdout())
	},
}

// zsprExportCmd renders a ZSPR file into a PNG sprite sheet.
// The palette block is embedded so the PNG converts back with --palette-kind extract.
var zsprExportCmd = &cobra.Command{
	Use:   "export [zspr_file] [output_file]",
	Short: "Export a ZSPR file as a PNG sprite sheet",
	Long: `Export a ZSPR file as a PNG sprite sheet.

The sheet is drawn with the colors of one mail (green, blue, red, bunny or
0-3). The full palette is embedded in the bottom-right 8x8 block, so the
PNG converts back with --palette-kind extract. A --scale above 1 produces
an enlarged preview that cannot be converted back.

Example:
  zsprtools zspr export link.zspr link.png --mail red`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		inputFile := args[0]
		outputFile := common.ChangeExtension(inputFile, "png")
		if len(args) > 1 {
			outputFile = args[1]
		}

		mailName, err := cmd.Flags().GetString("mail")
		if err != nil {
			return fmt.Errorf("error getting mail flag: %w", err)
		}
		mail, err := parseMail(mailName)
		if err != nil {
			return err
		}
		scale, err := cmd.Flags().GetInt("scale")
		if err != nil {
			return fmt.Errorf("error getting scale flag: %w", err)
		}

		fmt.Printf("Processing ZSPR file: %s\n", inputFile)
		fmt.Printf("Output file: %s\n", outputFile)

		if err := pkg.NewZSPRProcessor().Process(inputFile, outputFile, mail, scale); err != nil {
			return fmt.Errorf("failed to export ZSPR file: %w", err)
		}

		fmt.Println("ZSPR file exported successfully!")
		return nil
	},
}

// zsprFilterCmd applies an index filter to the sprite data of a ZSPR file
var zsprFilterCmd = &cobra.Command{
	Use:   "filter [zspr_file] [output_file]",
	Short: "Apply an index filter to a ZSPR file",
	Long: `Apply an index filter to a ZSPR file.

Filters:
  swap      Mirror every opaque index (1<->15, 2<->14, ...)
  static    Replace every opaque index with a random one (see --seed)

Example:
  zsprtools zspr filter link.zspr link_static.zspr --filter static --seed 42`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		inputFile := args[0]
		outputFile := args[1]

		filterName, err := cmd.Flags().GetString("filter")
		if err != nil {
			return fmt.Errorf("error getting filter flag: %w", err)
		}
		filter, err := pkg.ParseSpriteFilter(filterName)
		if err != nil {
			return err
		}
		seed, err := cmd.Flags().GetInt64("seed")
		if err != nil {
			return fmt.Errorf("error getting seed flag: %w", err)
		}

		sprite, err := pkg.ReadZSPRFile(inputFile)
		if err != nil {
			return fmt.Errorf("failed to read ZSPR file: %w", err)
		}
		if err := pkg.ApplyFilter(sprite, filter, seed); err != nil {
			return fmt.Errorf("failed to apply filter: %w", err)
		}
		if err := pkg.WriteZSPRFile(sprite, outputFile); err != nil {
			return fmt.Errorf("failed to write ZSPR file: %w", err)
		}

		fmt.Printf("Filtered sprite written to: %s\n", outputFile)
		return nil
	},
}

// parseMail accepts a mail name or its number
func parseMail(name string) (int, error) {
	for i, mail := range pkg.MailNames {
		if strings.EqualFold(name, mail) {
			return i, nil
		}
	}
	if n, err := strconv.Atoi(name); err == nil && n >= 0 && n < snes.Mails {
		return n, nil
	}
	return 0, fmt.Errorf("unknown mail %q (want one of %v or 0-%d)", name, pkg.MailNames, snes.Mails-1)
}

func init() {
	rootCmd.AddCommand(zsprCmd)
	zsprCmd.AddCommand(zsprInfoCmd)
	zsprCmd.AddCommand(zsprExportCmd)
	zsprCmd.AddCommand(zsprFilterCmd)

	zsprExportCmd.Flags().StringP("mail", "m", "green", "Mail colors to draw with")
	zsprExportCmd.Flags().Int("scale", 1, "Enlarge the image for previews")

	zsprFilterCmd.Flags().StringP("filter", "f", "swap", "Filter to apply: swap or static")
	zsprFilterCmd.Flags().Int64("seed", 0, "Random seed for the static filter")
}
