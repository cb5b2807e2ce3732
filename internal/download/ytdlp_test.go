package download

import (
	"strings"
	"testing"
)

func TestInfoArgs(t *testing.T) {
	args := infoArgs("https://youtube.com/watch?v=x")
	joined := strings.Join(args, " ")
	if !strings.Contains(joined, "-J") {
		t.Error("info args missing -J")
	}
	if !strings.Contains(joined, "--no-playlist") {
		t.Error("info args missing --no-playlist")
	}
	if args[len(args)-1] != "https://youtube.com/watch?v=x" {
		t.Errorf("URL must be the final argument, got %q", args[len(args)-1])
	}
}

func TestDownloadArgs(t *testing.T) {
	args := downloadArgs("https://youtube.com/watch?v=x", "/tmp/dl")
	joined := strings.Join(args, " ")

	for _, want := range []string{
		"-f", "--no-playlist", "--no-simulate",
		"after_move:filepath", "%(title)s [%(id)s].%(ext)s",
	} {
		if !strings.Contains(joined, want) {
			t.Errorf("download args missing %q: %v", want, args)
		}
	}
	if args[len(args)-1] != "https://youtube.com/watch?v=x" {
		t.Errorf("URL must be the final argument, got %q", args[len(args)-1])
	}
}

func TestFetchInfoEmptyURL(t *testing.T) {
	c := NewClient(t.TempDir())
	if _, err := c.FetchInfo(t.Context(), "  "); err == nil {
		t.Fatal("expected error for empty URL")
	}
}

func TestDownloadEmptyURL(t *testing.T) {
	c := NewClient(t.TempDir())
	if _, err := c.Download(t.Context(), ""); err == nil {
		t.Fatal("expected error for empty URL")
	}
}
