package ffmpeg

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	ffmpeg "github.com/u2takey/ffmpeg-go"
)

// VideoMetadata contains metadata about a video file
type VideoMetadata struct {
	Duration float64
	Width    int
	Height   int
	Codec    string
}

// GIFOptions controls a single clip extraction
type GIFOptions struct {
	StartSeconds float64
	Duration     int // seconds
	FrameRate    int
	ScaleWidth   int // height follows the aspect ratio
}

// Processor wraps FFmpeg functionality
type Processor struct {
	verbose bool
}

// NewProcessor creates a new FFmpeg processor
func NewProcessor(verbose bool) *Processor {
	return &Processor{
		verbose: verbose,
	}
}

// GetVideoMetadata retrieves metadata about a video file
func GetVideoMetadata(inputPath string) (*VideoMetadata, error) {
	probe, err := ffmpeg.Probe(inputPath)
	if err != nil {
		return nil, fmt.Errorf("error probing video: %v", err)
	}

	var data map[string]interface{}
	if err := json.Unmarshal([]byte(probe), &data); err != nil {
		return nil, errors.WithStack(err)
	}

	streams, ok := data["streams"].([]interface{})
	if !ok || len(streams) == 0 {
		return nil, fmt.Errorf("no streams found in video")
	}

	metadata := &VideoMetadata{}

	for _, s := range streams {
		stream, ok := s.(map[string]interface{})
		if !ok {
			continue
		}
		if codecType, _ := stream["codec_type"].(string); codecType != "video" {
			continue
		}
		if w, ok := stream["width"].(float64); ok {
			metadata.Width = int(w)
		}
		if h, ok := stream["height"].(float64); ok {
			metadata.Height = int(h)
		}
		if codec, ok := stream["codec_name"].(string); ok {
			metadata.Codec = codec
		}
		break
	}

	format, ok := data["format"].(map[string]interface{})
	if !ok {
		return nil, fmt.Errorf("no format section in probe output")
	}
	durationStr, ok := format["duration"].(string)
	if !ok {
		return nil, fmt.Errorf("could not read video duration")
	}
	duration, err := strconv.ParseFloat(durationStr, 64)
	if err != nil {
		return nil, errors.Wrap(err, "parsing video duration")
	}
	metadata.Duration = duration

	return metadata, nil
}

// ExtractGIF renders one clip of the input video as a GIF. The scale filter
// fixes the width and lets the height follow the source aspect ratio.
func (p *Processor) ExtractGIF(inputPath, outputPath string, opts GIFOptions) error {
	vf := fmt.Sprintf("fps=%d,scale=%d:-1:flags=lanczos", opts.FrameRate, opts.ScaleWidth)

	if p.verbose {
		log.Debug().
			Str("input", inputPath).
			Str("output", outputPath).
			Float64("start", opts.StartSeconds).
			Int("duration", opts.Duration).
			Str("vf", vf).
			Msg("Extracting GIF clip")
	}

	stream := ffmpeg.Input(inputPath, ffmpeg.KwArgs{
		"ss": fmt.Sprintf("%.3f", opts.StartSeconds),
		"t":  strconv.Itoa(opts.Duration),
	}).Output(outputPath, ffmpeg.KwArgs{
		"vf": vf,
	}).OverWriteOutput()

	if p.verbose {
		stream = stream.ErrorToStdOut()
	}

	if err := stream.Run(); err != nil {
		// Remove any partial output so idempotence scans stay accurate.
		os.Remove(outputPath)
		return errors.Wrapf(err, "extracting gif %s", outputPath)
	}
	return nil
}
