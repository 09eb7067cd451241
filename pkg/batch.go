package pkg

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/hansbonini/zsprtools/pkg/common"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"
)

// BatchJob describes one image to convert
type BatchJob struct {
	Image         string `yaml:"image"`
	Palette       string `yaml:"palette,omitempty"`      // Palette file, empty for in-band extraction
	PaletteKind   string `yaml:"palette_kind,omitempty"` // ascii, hex, binary, extract or auto
	Output        string `yaml:"output,omitempty"`       // Defaults to the image name with a .zspr extension
	SpriteName    string `yaml:"sprite_name,omitempty"`
	AuthorName    string `yaml:"author_name,omitempty"`
	AuthorNameROM string `yaml:"author_name_rom,omitempty"`
}

// BatchManifest is the YAML document read by the batch command.
// Manifest-level values apply to every job that does not set its own.
type BatchManifest struct {
	AuthorName    string     `yaml:"author_name,omitempty"`
	AuthorNameROM string     `yaml:"author_name_rom,omitempty"`
	Round         *bool      `yaml:"round,omitempty"`
	Strict        *bool      `yaml:"strict,omitempty"`
	Jobs          []BatchJob `yaml:"jobs"`
}

// LoadBatchManifest reads a manifest and resolves its relative paths against
// the manifest directory.
func LoadBatchManifest(path string) (*BatchManifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, common.FormatError(common.ErrFailedToReadManifest, err)
	}

	manifest := &BatchManifest{}
	if err := yaml.Unmarshal(data, manifest); err != nil {
		return nil, common.FormatError(common.ErrFailedToParseYAML, err)
	}

	base := filepath.Dir(path)
	for i := range manifest.Jobs {
		job := &manifest.Jobs[i]
		if job.Image == "" {
			return nil, common.FormatErrorString(common.ErrFailedToReadManifest, "job %d has no image", i)
		}
		if job.Output == "" {
			job.Output = common.ChangeExtension(job.Image, SpriteExts[0])
		}
		job.Image = resolvePath(base, job.Image)
		job.Palette = resolvePath(base, job.Palette)
		job.Output = resolvePath(base, job.Output)
	}

	return manifest, nil
}

func resolvePath(base, path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(base, path)
}

// BatchRunner converts the jobs of a manifest concurrently
type BatchRunner struct {
	Converter *Converter
	Defaults  common.Config
	Jobs      int // Concurrent conversions, NumCPU when not positive
}

// NewBatchRunner creates a batch runner around the default converter
func NewBatchRunner(defaults common.Config, jobs int) *BatchRunner {
	return &BatchRunner{Converter: NewConverter(), Defaults: defaults, Jobs: jobs}
}

// Run converts every job. The first failing job cancels the ones not yet started.
func (r *BatchRunner) Run(ctx context.Context, manifest *BatchManifest) error {
	if err := checkDistinctOutputs(manifest.Jobs); err != nil {
		return err
	}

	limit := r.Jobs
	if limit <= 0 {
		limit = runtime.NumCPU()
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)

	for i, job := range manifest.Jobs {
		i, job := i, job
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			common.LogDebug(common.DebugBatchJobStarting, i, job.Image)
			if err := r.runJob(manifest, job); err != nil {
				return fmt.Errorf("job %d (%s): %w", i, job.Image, err)
			}
			common.LogInfo(common.InfoBatchJobDone, i, job.Image, job.Output)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}

	common.LogInfo(common.InfoBatchFinished, len(manifest.Jobs))
	return nil
}

func (r *BatchRunner) runJob(manifest *BatchManifest, job BatchJob) error {
	img, err := LoadImage(job.Image)
	if err != nil {
		return err
	}

	kind, err := ParsePaletteKind(job.PaletteKind, job.Palette)
	if err != nil {
		return err
	}
	src, err := LoadPaletteSource(kind, job.Palette)
	if err != nil {
		return err
	}

	req := ConversionRequest{
		Image:         img,
		Palette:       src,
		SpriteName:    job.SpriteName,
		AuthorName:    firstNonEmpty(job.AuthorName, manifest.AuthorName, r.Defaults.AuthorName),
		AuthorNameROM: firstNonEmpty(job.AuthorNameROM, manifest.AuthorNameROM, r.Defaults.AuthorNameROM),
		Round:         r.Defaults.Round,
		Strict:        r.Defaults.Strict,
	}
	if manifest.Round != nil {
		req.Round = *manifest.Round
	}
	if manifest.Strict != nil {
		req.Strict = *manifest.Strict
	}
	if req.SpriteName == "" {
		req.SpriteName = common.BaseName(job.Image)
	}

	result, err := r.Converter.Convert(req)
	if err != nil {
		return err
	}
	return WriteZSPRFile(result.Sprite, job.Output)
}

// checkDistinctOutputs rejects manifests where two jobs write the same file
func checkDistinctOutputs(jobs []BatchJob) error {
	seen := make(map[string]int, len(jobs))
	for i, job := range jobs {
		out := filepath.Clean(job.Output)
		if prev, ok := seen[out]; ok {
			return common.FormatErrorString(common.ErrFailedToReadManifest, "jobs %d and %d both write %s", prev, i, out)
		}
		seen[out] = i
	}
	return nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
