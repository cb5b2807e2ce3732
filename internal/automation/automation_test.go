package automation

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/Hariprajwal/TenorGIFUploader/internal/platform"
	"github.com/Hariprajwal/TenorGIFUploader/internal/uploader"
)

func TestFormatTags(t *testing.T) {
	got := FormatTags([]string{"#a", "#b", "#c"})
	if got != "#a #b #c" {
		t.Errorf("FormatTags = %q", got)
	}
	if FormatTags(nil) != "" {
		t.Error("FormatTags(nil) should be empty")
	}
}

func TestBatchFileNames(t *testing.T) {
	got := batchFileNames(uploader.Batch{Ordinal: 1, Start: 4, End: 6})
	want := []string{"artifact_4.gif", "artifact_5.gif", "artifact_6.gif"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("batchFileNames = %v, want %v", got, want)
	}
}

// writeHelper creates a shell script that appends each step name to logPath
// and exits with the given code for the select step.
func writeHelper(t *testing.T, logPath string, selectExit int) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell helper script")
	}
	script := fmt.Sprintf(`#!/bin/sh
echo "$1" >> %q
cat > /dev/null
if [ "$1" = "select" ]; then exit %d; fi
exit 0
`, logPath, selectExit)
	path := filepath.Join(t.TempDir(), "helper.sh")
	if err := os.WriteFile(path, []byte(script), 0755); err != nil {
		t.Fatal(err)
	}
	return path
}

func helperSteps(t *testing.T, logPath string) []string {
	t.Helper()
	data, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatal(err)
	}
	return strings.Fields(string(data))
}

func TestCommandDriverSteps(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "steps.log")
	target, err := platform.Get("tenor")
	if err != nil {
		t.Fatal(err)
	}
	driver := &CommandDriver{
		Cmd:         writeHelper(t, logPath, 0),
		Target:      target,
		ArtifactDir: "/tmp/video.gifs",
	}
	ctx := context.Background()

	if err := driver.SelectFiles(ctx, uploader.Batch{Ordinal: 0, Start: 1, End: 3}); err != nil {
		t.Fatalf("SelectFiles: %v", err)
	}
	if err := driver.ApplyTags(ctx, []string{"#a", "#b"}); err != nil {
		t.Fatalf("ApplyTags: %v", err)
	}
	if err := driver.Advance(ctx); err != nil {
		t.Fatalf("Advance: %v", err)
	}

	steps := helperSteps(t, logPath)
	// select and advance are each followed by at least one ready probe.
	want := []string{"select", "ready", "tags", "advance", "ready"}
	if !reflect.DeepEqual(steps, want) {
		t.Errorf("helper steps = %v, want %v", steps, want)
	}
}

func TestCommandDriverSelectFailure(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "steps.log")
	target, err := platform.Get("tenor")
	if err != nil {
		t.Fatal(err)
	}
	driver := &CommandDriver{
		Cmd:         writeHelper(t, logPath, 3),
		Target:      target,
		ArtifactDir: "/tmp/video.gifs",
	}

	if err := driver.SelectFiles(context.Background(), uploader.Batch{Start: 1, End: 2}); err == nil {
		t.Fatal("expected error when helper select step exits nonzero")
	}
	if steps := helperSteps(t, logPath); len(steps) != 1 || steps[0] != "select" {
		t.Errorf("steps after failure = %v, want [select]", steps)
	}
}

func TestWaitUntilImmediate(t *testing.T) {
	err := WaitUntil(context.Background(), time.Second, time.Millisecond, func() (bool, error) {
		return true, nil
	})
	if err != nil {
		t.Fatal(err)
	}
}

func TestWaitUntilEventually(t *testing.T) {
	calls := 0
	err := WaitUntil(context.Background(), time.Second, time.Millisecond, func() (bool, error) {
		calls++
		return calls >= 3, nil
	})
	if err != nil {
		t.Fatal(err)
	}
	if calls < 3 {
		t.Errorf("cond called %d times, want >= 3", calls)
	}
}

func TestWaitUntilTimeout(t *testing.T) {
	err := WaitUntil(context.Background(), 10*time.Millisecond, time.Millisecond, func() (bool, error) {
		return false, nil
	})
	if err == nil {
		t.Fatal("expected timeout error")
	}
}

func TestWaitUntilCondError(t *testing.T) {
	boom := errors.New("window vanished")
	err := WaitUntil(context.Background(), time.Second, time.Millisecond, func() (bool, error) {
		return false, boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("err = %v, want %v", err, boom)
	}
}

func TestWaitUntilCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := WaitUntil(ctx, time.Second, 10*time.Millisecond, func() (bool, error) {
		return false, nil
	})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
}
