// Package download acquires source videos with yt-dlp.
package download

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/rs/zerolog/log"
)

// Format selects best mp4 video+audio with sane fallbacks, matching what
// the GIF extraction step can always decode.
const defaultFormat = "bestvideo[ext=mp4]+bestaudio[ext=m4a]/best[ext=mp4]/best"

// VideoInfo is the source-video metadata the tagger builds its prompt from.
type VideoInfo struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Tags        []string `json:"tags"`
}

// DependencyReport lists the external tools the pipeline shells out to.
type DependencyReport struct {
	YTDLPFound  bool   `json:"yt_dlp_found"`
	YTDLPPath   string `json:"yt_dlp_path,omitempty"`
	FFmpegFound bool   `json:"ffmpeg_found"`
	FFmpegPath  string `json:"ffmpeg_path,omitempty"`
}

// DependencyStatus probes PATH for yt-dlp and ffmpeg.
func DependencyStatus() DependencyReport {
	report := DependencyReport{}
	if path, err := exec.LookPath("yt-dlp"); err == nil {
		report.YTDLPFound = true
		report.YTDLPPath = path
	}
	if path, err := exec.LookPath("ffmpeg"); err == nil {
		report.FFmpegFound = true
		report.FFmpegPath = path
	}
	return report
}

// CheckDependencies fails when a required external tool is missing.
func CheckDependencies() error {
	report := DependencyStatus()
	if !report.YTDLPFound {
		return fmt.Errorf("missing dependency: yt-dlp is not installed or not on PATH")
	}
	if !report.FFmpegFound {
		return fmt.Errorf("missing dependency: ffmpeg is not installed or not on PATH")
	}
	return nil
}

// Client downloads videos into a fixed directory.
type Client struct {
	downloadDir string
}

// NewClient creates a download client writing into downloadDir.
func NewClient(downloadDir string) *Client {
	return &Client{downloadDir: downloadDir}
}

// FetchInfo retrieves metadata for the URL without downloading anything.
func (c *Client) FetchInfo(ctx context.Context, videoURL string) (*VideoInfo, error) {
	if strings.TrimSpace(videoURL) == "" {
		return nil, fmt.Errorf("video URL is required")
	}

	cmd := exec.CommandContext(ctx, "yt-dlp", infoArgs(videoURL)...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("yt-dlp info fetch failed: %w: %s", err, strings.TrimSpace(stderr.String()))
	}

	var info VideoInfo
	if err := json.Unmarshal(stdout.Bytes(), &info); err != nil {
		return nil, fmt.Errorf("parsing yt-dlp metadata: %w", err)
	}
	if info.Title == "" {
		info.Title = "Unknown_Title"
	}
	return &info, nil
}

// Download fetches the best available video and returns the path of the
// downloaded file.
func (c *Client) Download(ctx context.Context, videoURL string) (string, error) {
	if strings.TrimSpace(videoURL) == "" {
		return "", fmt.Errorf("video URL is required")
	}
	if err := os.MkdirAll(c.downloadDir, 0755); err != nil {
		return "", fmt.Errorf("creating download directory: %w", err)
	}

	args := downloadArgs(videoURL, c.downloadDir)
	log.Info().Str("url", videoURL).Str("dir", c.downloadDir).Msg("Downloading video")
	log.Debug().Strs("args", args).Msg("yt-dlp invocation")

	cmd := exec.CommandContext(ctx, "yt-dlp", args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("yt-dlp download failed: %w: %s", err, strings.TrimSpace(stderr.String()))
	}

	// --print after_move:filepath emits the final path, one line per video;
	// --no-playlist guarantees a single line.
	path := strings.TrimSpace(stdout.String())
	if path == "" {
		return "", fmt.Errorf("yt-dlp did not report a downloaded file path")
	}
	if lines := strings.Split(path, "\n"); len(lines) > 1 {
		path = strings.TrimSpace(lines[len(lines)-1])
	}
	if _, err := os.Stat(path); err != nil {
		return "", fmt.Errorf("downloaded file missing: %w", err)
	}

	log.Info().Str("path", path).Msg("Download complete")
	return path, nil
}

func infoArgs(videoURL string) []string {
	return []string{"-J", "--no-playlist", videoURL}
}

func downloadArgs(videoURL, downloadDir string) []string {
	return []string{
		"-f", defaultFormat,
		"--no-playlist",
		"--no-simulate",
		"--print", "after_move:filepath",
		"-o", downloadDir + string(os.PathSeparator) + "%(title)s [%(id)s].%(ext)s",
		videoURL,
	}
}
