package cmd

import (
	"fmt"

	"github.com/hansbonini/zsprtools/pkg"
	"github.com/spf13/cobra"
)

// batchCmd converts every job listed in a YAML manifest
var batchCmd = &cobra.Command{
	Use:   "batch [manifest_file]",
	Short: "Convert several sprite sheets from a YAML manifest",
	Long: `Convert several sprite sheets from a YAML manifest.

Paths are relative to the manifest. Every job writes its own ZSPR file;
ROM patching is left to 'rom patch'.

Manifest example:
  author_name: Nintendo
  round: true
  jobs:
    - image: link.png
      palette: link.gpl
    - image: bunny.png
      palette_kind: extract
      output: out/bunny.zspr
      sprite_name: Bunny

Example:
  zsprtools batch sprites.yaml --jobs 4`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		manifestFile := args[0]

		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		jobs, err := cmd.Flags().GetInt("jobs")
		if err != nil {
			return fmt.Errorf("error getting jobs flag: %w", err)
		}

		manifest, err := pkg.LoadBatchManifest(manifestFile)
		if err != nil {
			return err
		}

		fmt.Printf("Processing manifest: %s (%d jobs)\n", manifestFile, len(manifest.Jobs))

		if err := pkg.NewBatchRunner(cfg, jobs).Run(cmd.Context(), manifest); err != nil {
			return fmt.Errorf("batch conversion failed: %w", err)
		}

		fmt.Println("Batch conversion finished successfully!")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().IntP("jobs", "j", 0, "Concurrent conversions (default: number of CPUs)")
}
