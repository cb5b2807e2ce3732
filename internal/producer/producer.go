// Package producer turns a downloaded video into the numbered GIF artifacts
// the upload session consumes.
package producer

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/Hariprajwal/TenorGIFUploader/internal/config"
	ffmpegWrap "github.com/Hariprajwal/TenorGIFUploader/internal/ffmpeg"
)

// Options controls segmentation of one source video.
type Options struct {
	ClipLength int // seconds per artifact
	FrameRate  int
	TrimHead   int // seconds dropped from the start
	TrimTail   int // seconds dropped from the end
	Verbose    bool
}

func (o Options) withDefaults() Options {
	if o.ClipLength <= 0 {
		o.ClipLength = config.DefaultClipLength
	}
	if o.FrameRate <= 0 {
		o.FrameRate = config.DefaultFrameRate
	}
	return o
}

// Producer slices videos into GIF artifacts via ffmpeg.
type Producer struct {
	ffmpeg *ffmpegWrap.Processor
}

// NewProducer creates a producer.
func NewProducer(verbose bool) *Producer {
	return &Producer{ffmpeg: ffmpegWrap.NewProcessor(verbose)}
}

// Produce writes artifact_1.gif .. artifact_N.gif for the video into outDir
// and returns N. N is ceil(usable/clipLength) where usable is the probed
// duration minus head and tail trims. Zero usable duration is an error and
// produces no artifacts.
func (p *Producer) Produce(ctx context.Context, videoPath, outDir string, opts Options) (int, error) {
	opts = opts.withDefaults()

	if err := os.MkdirAll(outDir, 0755); err != nil {
		return 0, errors.Wrap(err, "creating output directory")
	}

	metadata, err := ffmpegWrap.GetVideoMetadata(videoPath)
	if err != nil {
		return 0, errors.Wrap(err, "probing video duration")
	}

	usable := metadata.Duration - float64(opts.TrimHead) - float64(opts.TrimTail)
	if usable <= 0 {
		return 0, fmt.Errorf("video too short: %.2fs after trimming %ds head and %ds tail",
			metadata.Duration, opts.TrimHead, opts.TrimTail)
	}

	numClips := ClipCount(usable, opts.ClipLength)
	log.Info().
		Float64("duration", metadata.Duration).
		Float64("usable", usable).
		Int("clips", numClips).
		Int("clip_length", opts.ClipLength).
		Str("dir", outDir).
		Msg("Segmenting video into GIF artifacts")

	for i := 0; i < numClips; i++ {
		if err := ctx.Err(); err != nil {
			return i, errors.WithStack(err)
		}

		outputPath := filepath.Join(outDir, ArtifactName(i+1))
		err := p.ffmpeg.ExtractGIF(videoPath, outputPath, ffmpegWrap.GIFOptions{
			StartSeconds: float64(i*opts.ClipLength + opts.TrimHead),
			Duration:     opts.ClipLength,
			FrameRate:    opts.FrameRate,
			ScaleWidth:   config.GIFScaleWidth,
		})
		if err != nil {
			return i, errors.Wrapf(err, "extracting artifact %d/%d", i+1, numClips)
		}
		log.Debug().Str("path", outputPath).Msgf("Saved artifact %d/%d", i+1, numClips)
	}

	return numClips, nil
}

// ClipCount returns ceil(usableSeconds / clipLength).
func ClipCount(usableSeconds float64, clipLength int) int {
	if usableSeconds <= 0 || clipLength <= 0 {
		return 0
	}
	n := int(usableSeconds) / clipLength
	if usableSeconds > float64(n*clipLength) {
		n++
	}
	return n
}

// ArtifactName returns the file name for the artifact with the given
// 1-based index.
func ArtifactName(index int) string {
	return fmt.Sprintf(config.ArtifactNameFormat, index)
}

// ExistingArtifacts counts the contiguous run artifact_1..N already present
// in dir. A gap ends the run: the count must match the invariant that
// indices are gapless, so stale partial output past a gap is ignored.
// Returns 0 when the directory does not exist.
func ExistingArtifacts(dir string) int {
	n := 0
	for {
		if _, err := os.Stat(filepath.Join(dir, ArtifactName(n+1))); err != nil {
			return n
		}
		n++
	}
}

// ArtifactDirName derives the per-video artifact directory name from the
// video title: invalid filename characters removed, spaces dropped, length
// capped, with the artifact dir suffix appended.
func ArtifactDirName(title string) string {
	name := SanitizeTitle(strings.ReplaceAll(title, " ", ""))
	if name == "" {
		name = "untitled"
	}
	return name + config.ArtifactDirSuffix
}

var invalidTitleChars = regexp.MustCompile(`[<>:"/\\|?*]`)

// SanitizeTitle strips characters that are invalid in file names and caps
// the length so deep output roots stay under path limits.
func SanitizeTitle(title string) string {
	sanitized := invalidTitleChars.ReplaceAllString(title, "")
	if len(sanitized) > config.MaxArtifactDirTitle {
		sanitized = sanitized[:config.MaxArtifactDirTitle]
	}
	return strings.Trim(strings.TrimSpace(sanitized), ".")
}
