package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/Hariprajwal/TenorGIFUploader/internal/config"
	"github.com/Hariprajwal/TenorGIFUploader/internal/logging"
	"github.com/Hariprajwal/TenorGIFUploader/pkg/pipeline"
)

var (
	rootCmd = &cobra.Command{
		Use:   "tenor-uploader",
		Short: "A pipeline for turning videos into tagged GIF uploads",
		Long: `tenor-uploader downloads videos, slices them into short looping GIF clips,
generates descriptive hashtags with a hosted language model, and drives an
external automation helper to upload the clips in batches.

Examples:
  # Full pipeline for one video, dry-run upload
  tenor-uploader run -i "https://youtube.com/watch?v=abc" -o ./out

  # Upload through an external input-injection helper
  tenor-uploader run -i "https://youtube.com/watch?v=abc" -o ./out --driver-cmd ./injector.sh

  # Just slice a local file into GIF artifacts
  tenor-uploader convert -i input.mp4 -o ./out/clips.gifs`,
	}

	runCmd = &cobra.Command{
		Use:   "run",
		Short: "Download, convert, tag, and upload one or more videos",
		Long: fmt.Sprintf(`Run the full pipeline for every URL found in the input text.

Supported upload targets:
%s
Tag generation backends: gemini (GEMINI_API_KEY), cerebras (CEREBRAS_API_KEY),
none (deterministic fallback tags).`,
			formatSupportedTargets()),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := &config.PipelineOptions{}

			opts.Input, _ = cmd.Flags().GetString("input")
			opts.OutputRoot, _ = cmd.Flags().GetString("output")
			opts.DownloadDir, _ = cmd.Flags().GetString("download-dir")
			opts.Target, _ = cmd.Flags().GetString("target")
			opts.CompleterKey, _ = cmd.Flags().GetString("completer")
			opts.DriverCmd, _ = cmd.Flags().GetString("driver-cmd")
			opts.BatchSize, _ = cmd.Flags().GetInt("batch-size")
			opts.TagSlots, _ = cmd.Flags().GetInt("tag-slots")
			opts.TagCount, _ = cmd.Flags().GetInt("tag-count")
			opts.ClipLength, _ = cmd.Flags().GetInt("clip-length")
			opts.FrameRate, _ = cmd.Flags().GetInt("fps")
			opts.TrimHead, _ = cmd.Flags().GetInt("trim-head")
			opts.TrimTail, _ = cmd.Flags().GetInt("trim-tail")
			opts.Verbose, _ = cmd.Flags().GetBool("verbose")

			logging.Init(opts.Verbose)

			if opts.Input == "" || opts.OutputRoot == "" {
				return fmt.Errorf("input and output directory are required")
			}

			results, err := pipeline.Run(cmd.Context(), opts)
			if err != nil {
				return err
			}

			failed := 0
			for _, r := range results {
				if r.Err != nil {
					failed++
					log.Error().Err(r.Err).Str("url", r.URL).Msg("Source failed")
					continue
				}
				log.Info().
					Str("url", r.URL).
					Str("title", r.Title).
					Int("artifacts", r.Artifacts).
					Int("batches", r.CompletedBatches).
					Msg("Source completed")
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d sources failed", failed, len(results))
			}
			return nil
		},
	}

	convertCmd = &cobra.Command{
		Use:   "convert",
		Short: "Slice a local video file into GIF artifacts",
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := &config.ConvertOptions{}

			opts.InputPath, _ = cmd.Flags().GetString("input")
			opts.OutputDir, _ = cmd.Flags().GetString("output")
			opts.ClipLength, _ = cmd.Flags().GetInt("clip-length")
			opts.FrameRate, _ = cmd.Flags().GetInt("fps")
			opts.TrimHead, _ = cmd.Flags().GetInt("trim-head")
			opts.TrimTail, _ = cmd.Flags().GetInt("trim-tail")
			opts.Verbose, _ = cmd.Flags().GetBool("verbose")

			logging.Init(opts.Verbose)

			if opts.InputPath == "" || opts.OutputDir == "" {
				return fmt.Errorf("input path and output directory are required")
			}

			count, err := pipeline.Convert(cmd.Context(), opts)
			if err != nil {
				return err
			}
			log.Info().Int("artifacts", count).Str("dir", opts.OutputDir).Msg("Conversion complete")
			return nil
		},
	}

	tagsCmd = &cobra.Command{
		Use:   "tags",
		Short: "Generate a hashtag set from title/description metadata",
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := &config.TagOptions{}

			opts.Title, _ = cmd.Flags().GetString("title")
			opts.Description, _ = cmd.Flags().GetString("description")
			opts.Hints, _ = cmd.Flags().GetStringSlice("hints")
			opts.CompleterKey, _ = cmd.Flags().GetString("completer")
			opts.TagCount, _ = cmd.Flags().GetInt("tag-count")
			opts.Verbose, _ = cmd.Flags().GetBool("verbose")

			logging.Init(opts.Verbose)

			if opts.Title == "" {
				return fmt.Errorf("title is required")
			}

			tags := pipeline.GenerateTags(cmd.Context(), opts)
			fmt.Println(strings.Join(tags, " "))
			return nil
		},
	}
)

func formatSupportedTargets() string {
	var sb strings.Builder
	for _, target := range pipeline.GetSupportedTargets() {
		sb.WriteString(fmt.Sprintf("- %s\n", target))
	}
	return sb.String()
}

func init() {
	// Run command flags
	runCmd.Flags().StringP("input", "i", "", "Free text containing one or more video URLs")
	runCmd.Flags().StringP("output", "o", "", "Root directory for artifact directories")
	runCmd.Flags().String("download-dir", "", "Directory for downloaded videos (default: <output>/downloads)")
	runCmd.Flags().StringP("target", "t", "tenor",
		fmt.Sprintf("Upload target (%s)", strings.Join(pipeline.GetSupportedTargets(), ", ")))
	runCmd.Flags().String("completer", "gemini", "Tag generation backend (gemini, cerebras, none)")
	runCmd.Flags().String("driver-cmd", "", "External automation helper; empty logs a dry run")
	runCmd.Flags().Int("batch-size", 0, "Artifacts per upload batch (0 = target default)")
	runCmd.Flags().Int("tag-slots", 0, "Tag input slots to broadcast into (0 = target default)")
	runCmd.Flags().Int("tag-count", 0, "Hashtags per tag set (0 = target default)")
	runCmd.Flags().IntP("clip-length", "d", config.DefaultClipLength, "Seconds per GIF clip")
	runCmd.Flags().Int("fps", config.DefaultFrameRate, "GIF frame rate")
	runCmd.Flags().Int("trim-head", 0, "Seconds to drop from the start of the video")
	runCmd.Flags().Int("trim-tail", 0, "Seconds to drop from the end of the video")
	runCmd.Flags().BoolP("verbose", "v", false, "Enable verbose logging")

	runCmd.MarkFlagRequired("input")
	runCmd.MarkFlagRequired("output")

	// Convert command flags
	convertCmd.Flags().StringP("input", "i", "", "Input video file")
	convertCmd.Flags().StringP("output", "o", "", "Output directory for artifacts")
	convertCmd.Flags().IntP("clip-length", "d", config.DefaultClipLength, "Seconds per GIF clip")
	convertCmd.Flags().Int("fps", config.DefaultFrameRate, "GIF frame rate")
	convertCmd.Flags().Int("trim-head", 0, "Seconds to drop from the start of the video")
	convertCmd.Flags().Int("trim-tail", 0, "Seconds to drop from the end of the video")
	convertCmd.Flags().BoolP("verbose", "v", false, "Enable verbose logging")

	convertCmd.MarkFlagRequired("input")
	convertCmd.MarkFlagRequired("output")

	// Tags command flags
	tagsCmd.Flags().String("title", "", "Video title")
	tagsCmd.Flags().String("description", "", "Video description")
	tagsCmd.Flags().StringSlice("hints", nil, "Existing tags to derive from")
	tagsCmd.Flags().String("completer", "gemini", "Tag generation backend (gemini, cerebras, none)")
	tagsCmd.Flags().Int("tag-count", config.DefaultTagCount, "Hashtags per tag set")
	tagsCmd.Flags().BoolP("verbose", "v", false, "Enable verbose logging")

	tagsCmd.MarkFlagRequired("title")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(convertCmd)
	rootCmd.AddCommand(tagsCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
