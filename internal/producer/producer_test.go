package producer

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestClipCount(t *testing.T) {
	tests := []struct {
		usable     float64
		clipLength int
		want       int
	}{
		{9, 3, 3},
		{10, 3, 4},
		{0.5, 3, 1},
		{3, 3, 1},
		{2.9, 3, 1},
		{3.1, 3, 2},
		{0, 3, 0},
		{-5, 3, 0},
		{10, 0, 0},
	}
	for _, tt := range tests {
		if got := ClipCount(tt.usable, tt.clipLength); got != tt.want {
			t.Errorf("ClipCount(%v, %d) = %d, want %d", tt.usable, tt.clipLength, got, tt.want)
		}
	}
}

func TestArtifactName(t *testing.T) {
	if got := ArtifactName(1); got != "artifact_1.gif" {
		t.Errorf("ArtifactName(1) = %q", got)
	}
	if got := ArtifactName(12); got != "artifact_12.gif" {
		t.Errorf("ArtifactName(12) = %q", got)
	}
}

func touch(t *testing.T, dir, name string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte("gif"), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestExistingArtifacts(t *testing.T) {
	dir := t.TempDir()
	if got := ExistingArtifacts(dir); got != 0 {
		t.Errorf("empty dir: got %d", got)
	}

	touch(t, dir, "artifact_1.gif")
	touch(t, dir, "artifact_2.gif")
	touch(t, dir, "artifact_3.gif")
	if got := ExistingArtifacts(dir); got != 3 {
		t.Errorf("contiguous run: got %d, want 3", got)
	}

	// A gap ends the run even when later indices exist.
	touch(t, dir, "artifact_5.gif")
	if got := ExistingArtifacts(dir); got != 3 {
		t.Errorf("run with gap: got %d, want 3", got)
	}
}

func TestExistingArtifactsMissingDir(t *testing.T) {
	if got := ExistingArtifacts(filepath.Join(t.TempDir(), "nope")); got != 0 {
		t.Errorf("missing dir: got %d", got)
	}
}

func TestSanitizeTitle(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{`Funny <Cats> | Part 2: "Best"?`, "Funny Cats  Part 2 Best"},
		{"normal title", "normal title"},
		{"ends with dots...", "ends with dots"},
		{" padded ", "padded"},
	}
	for _, tt := range tests {
		if got := SanitizeTitle(tt.in); got != tt.want {
			t.Errorf("SanitizeTitle(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}

	long := SanitizeTitle(strings.Repeat("a", 150))
	if len(long) != 100 {
		t.Errorf("long title not capped: len = %d", len(long))
	}
}

func TestArtifactDirName(t *testing.T) {
	if got := ArtifactDirName("My Cool Video"); got != "MyCoolVideo.gifs" {
		t.Errorf("ArtifactDirName = %q", got)
	}
	if got := ArtifactDirName("???"); got != "untitled.gifs" {
		t.Errorf("ArtifactDirName for unusable title = %q", got)
	}
}
