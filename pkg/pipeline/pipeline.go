// Package pipeline is the public facade over the download-segment-tag-upload
// flow. One call processes every URL found in the input text; a failure on
// one source never stops the next.
package pipeline

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/Hariprajwal/TenorGIFUploader/internal/automation"
	"github.com/Hariprajwal/TenorGIFUploader/internal/config"
	"github.com/Hariprajwal/TenorGIFUploader/internal/download"
	"github.com/Hariprajwal/TenorGIFUploader/internal/input"
	"github.com/Hariprajwal/TenorGIFUploader/internal/platform"
	"github.com/Hariprajwal/TenorGIFUploader/internal/producer"
	"github.com/Hariprajwal/TenorGIFUploader/internal/tagger"
	"github.com/Hariprajwal/TenorGIFUploader/internal/uploader"
)

// Result summarises the outcome for one source URL.
type Result struct {
	URL              string
	Title            string
	ArtifactDir      string
	Artifacts        int
	Tags             []string
	TotalBatches     int
	CompletedBatches int
	Err              error // nil on full success
}

// GetSupportedTargets returns the registered upload target names.
func GetSupportedTargets() []string {
	return platform.GetSupportedTargets()
}

// Run processes every URL extracted from opts.Input. The returned results
// are in input order, one per URL. The error is non-nil only for run-level
// problems (no URLs, unknown target, missing external tools).
func Run(ctx context.Context, opts *config.PipelineOptions) ([]Result, error) {
	urls := input.ExtractURLs(opts.Input)
	if len(urls) == 0 {
		return nil, fmt.Errorf("no URLs found in input")
	}

	target, err := resolveTarget(opts)
	if err != nil {
		return nil, err
	}

	if err := download.CheckDependencies(); err != nil {
		return nil, err
	}

	runID := uuid.NewString()
	logger := log.With().Str("run_id", runID).Logger()
	logger.Info().
		Int("urls", len(urls)).
		Str("target", target.GetName()).
		Int("batch_size", target.GetBatchSize()).
		Msg("Starting pipeline run")

	completer := newCompleter(ctx, opts.CompleterKey)
	tagCount := opts.TagCount
	if tagCount <= 0 {
		tagCount = target.GetTagCount()
	}
	generator := tagger.NewGenerator(completer, tagCount)

	downloadDir := opts.DownloadDir
	if downloadDir == "" {
		downloadDir = filepath.Join(opts.OutputRoot, config.DefaultDownloadDirName)
	}
	client := download.NewClient(downloadDir)

	results := make([]Result, 0, len(urls))
	for i, url := range urls {
		logger.Info().Str("url", url).Msgf("Processing source %d/%d", i+1, len(urls))

		result := processOne(ctx, url, client, generator, target, opts)
		results = append(results, result)

		if result.Err != nil {
			logger.Warn().Err(result.Err).Str("url", url).
				Msg("Source abandoned, continuing with remaining sources")
		}
		if ctx.Err() != nil {
			break
		}
	}

	logger.Info().Int("sources", len(results)).Msg("Pipeline run finished")
	return results, nil
}

// processOne runs the full per-media flow. Every returned error is a
// *StageError; none of them stop the overall run.
func processOne(
	ctx context.Context,
	url string,
	client *download.Client,
	generator *tagger.Generator,
	target platform.Target,
	opts *config.PipelineOptions,
) Result {
	result := Result{URL: url}

	info, err := client.FetchInfo(ctx, url)
	if err != nil {
		result.Err = stageErr("acquisition", FatalToSession, err)
		return result
	}
	result.Title = info.Title
	result.ArtifactDir = filepath.Join(opts.OutputRoot, producer.ArtifactDirName(info.Title))

	// Idempotence: artifacts already on disk mean segmentation (and the
	// download feeding it) can be skipped entirely.
	count := producer.ExistingArtifacts(result.ArtifactDir)
	if count > 0 {
		log.Info().Int("artifacts", count).Str("dir", result.ArtifactDir).
			Msg("Reusing existing artifacts, skipping segmentation")
	} else {
		videoPath, err := client.Download(ctx, url)
		if err != nil {
			result.Err = stageErr("acquisition", FatalToSession, err)
			return result
		}

		prod := producer.NewProducer(opts.Verbose)
		count, err = prod.Produce(ctx, videoPath, result.ArtifactDir, producer.Options{
			ClipLength: opts.ClipLength,
			FrameRate:  opts.FrameRate,
			TrimHead:   opts.TrimHead,
			TrimTail:   opts.TrimTail,
			Verbose:    opts.Verbose,
		})
		if err != nil {
			result.Artifacts = count
			result.Err = stageErr("segmentation", FatalToSession, err)
			return result
		}
	}
	result.Artifacts = count

	if count == 0 {
		result.Err = stageErr("segmentation", FatalToSession,
			fmt.Errorf("no artifacts produced"))
		return result
	}

	// Tags are computed once per media and reused across every batch.
	// Generate never fails; a backend error only degrades tag quality.
	result.Tags = generator.Generate(ctx, tagger.Context{
		Title:       info.Title,
		Description: info.Description,
		Hints:       info.Tags,
	})

	batches := uploader.Plan(count, target.GetBatchSize())
	result.TotalBatches = len(batches)

	session := uploader.NewSession(newDriver(opts, target, result.ArtifactDir))
	report, err := session.Run(ctx, batches, result.Tags)
	result.CompletedBatches = report.CompletedBatches
	if err != nil {
		result.Err = stageErr("upload", FatalToSession, err)
	}
	return result
}

// resolveTarget looks up the configured target and applies CLI overrides on
// top of its defaults.
func resolveTarget(opts *config.PipelineOptions) (platform.Target, error) {
	name := opts.Target
	if name == "" {
		name = "tenor"
	}
	target, err := platform.Get(name)
	if err != nil {
		return nil, err
	}
	if opts.BatchSize > 0 || opts.TagSlots > 0 {
		target = &overriddenTarget{
			Target:    target,
			batchSize: opts.BatchSize,
			tagSlots:  opts.TagSlots,
		}
	}
	return target, nil
}

// overriddenTarget layers CLI batch-size/tag-slot overrides over a
// registered target.
type overriddenTarget struct {
	platform.Target
	batchSize int
	tagSlots  int
}

func (o *overriddenTarget) GetBatchSize() int {
	if o.batchSize > 0 {
		return o.batchSize
	}
	return o.Target.GetBatchSize()
}

func (o *overriddenTarget) GetTagSlots() int {
	if o.tagSlots > 0 {
		return o.tagSlots
	}
	return o.Target.GetTagSlots()
}

// newCompleter builds the configured completion backend. Backend setup
// problems are recoverable: the generator falls back to derived tags.
func newCompleter(ctx context.Context, key string) tagger.Completer {
	switch key {
	case "", "none":
		return nil
	case "gemini":
		c, err := tagger.NewGeminiCompleter(ctx)
		if err != nil {
			log.Warn().Err(err).Msg("Gemini unavailable, tags will use fallbacks")
			return nil
		}
		return c
	case "cerebras":
		c, err := tagger.NewCerebrasCompleter()
		if err != nil {
			log.Warn().Err(err).Msg("Cerebras unavailable, tags will use fallbacks")
			return nil
		}
		return c
	default:
		log.Warn().Str("completer", key).Msg("Unknown completion backend, tags will use fallbacks")
		return nil
	}
}

// newDriver picks the automation driver: an external helper program when
// configured, otherwise the logging dry-run driver.
func newDriver(opts *config.PipelineOptions, target platform.Target, artifactDir string) uploader.Driver {
	if opts.DriverCmd != "" {
		return &automation.CommandDriver{
			Cmd:         opts.DriverCmd,
			Target:      target,
			ArtifactDir: artifactDir,
		}
	}
	return &automation.DryRunDriver{Target: target, ArtifactDir: artifactDir}
}

// Convert segments a local video file into artifacts without uploading.
func Convert(ctx context.Context, opts *config.ConvertOptions) (int, error) {
	prod := producer.NewProducer(opts.Verbose)
	return prod.Produce(ctx, opts.InputPath, opts.OutputDir, producer.Options{
		ClipLength: opts.ClipLength,
		FrameRate:  opts.FrameRate,
		TrimHead:   opts.TrimHead,
		TrimTail:   opts.TrimTail,
		Verbose:    opts.Verbose,
	})
}

// GenerateTags produces a tag set from explicit metadata without touching
// any video.
func GenerateTags(ctx context.Context, opts *config.TagOptions) []string {
	generator := tagger.NewGenerator(newCompleter(ctx, opts.CompleterKey), opts.TagCount)
	return generator.Generate(ctx, tagger.Context{
		Title:       opts.Title,
		Description: opts.Description,
		Hints:       opts.Hints,
	})
}
