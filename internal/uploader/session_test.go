package uploader

import (
	"context"
	"errors"
	"testing"
)

// recordingDriver records the call sequence and can be told to fail
// selection from a given batch ordinal on.
type recordingDriver struct {
	calls        []string
	failSelectAt int // ordinal at which SelectFiles starts failing; -1 never
}

func newRecordingDriver() *recordingDriver {
	return &recordingDriver{failSelectAt: -1}
}

func (d *recordingDriver) SelectFiles(_ context.Context, b Batch) error {
	d.calls = append(d.calls, "select")
	if d.failSelectAt >= 0 && b.Ordinal >= d.failSelectAt {
		return errors.New("file dialog not found")
	}
	return nil
}

func (d *recordingDriver) ApplyTags(_ context.Context, _ []string) error {
	d.calls = append(d.calls, "tags")
	return nil
}

func (d *recordingDriver) Advance(_ context.Context) error {
	d.calls = append(d.calls, "advance")
	return nil
}

func (d *recordingDriver) count(call string) int {
	n := 0
	for _, c := range d.calls {
		if c == call {
			n++
		}
	}
	return n
}

var testTags = []string{"#gif", "#funny", "#meme"}

func TestSessionAdvanceCount(t *testing.T) {
	for _, numBatches := range []int{1, 2, 3, 5} {
		driver := newRecordingDriver()
		session := NewSession(driver)
		batches := Plan(numBatches*2, 2)

		report, err := session.Run(context.Background(), batches, testTags)
		if err != nil {
			t.Fatalf("Run with %d batches: %v", numBatches, err)
		}
		if report.CompletedBatches != numBatches {
			t.Errorf("completed = %d, want %d", report.CompletedBatches, numBatches)
		}
		if got := driver.count("advance"); got != numBatches-1 {
			t.Errorf("%d batches: advance called %d times, want %d", numBatches, got, numBatches-1)
		}
		// Never advance after the final tag application.
		if driver.calls[len(driver.calls)-1] != "tags" {
			t.Errorf("last call = %q, want tags", driver.calls[len(driver.calls)-1])
		}
	}
}

func TestSessionCallOrder(t *testing.T) {
	driver := newRecordingDriver()
	session := NewSession(driver)

	if _, err := session.Run(context.Background(), Plan(5, 2), testTags); err != nil {
		t.Fatal(err)
	}

	want := []string{"select", "tags", "advance", "select", "tags", "advance", "select", "tags"}
	if len(driver.calls) != len(want) {
		t.Fatalf("calls = %v, want %v", driver.calls, want)
	}
	for i := range want {
		if driver.calls[i] != want[i] {
			t.Fatalf("call %d = %q, want %q (full: %v)", i, driver.calls[i], want[i], driver.calls)
		}
	}
}

func TestSessionHaltsOnSelectFailure(t *testing.T) {
	driver := newRecordingDriver()
	driver.failSelectAt = 1 // second batch fails
	session := NewSession(driver)

	report, err := session.Run(context.Background(), Plan(9, 3), testTags)

	var selErr *SelectError
	if !errors.As(err, &selErr) {
		t.Fatalf("err = %v, want *SelectError", err)
	}
	if selErr.Batch.Ordinal != 1 {
		t.Errorf("failed batch ordinal = %d, want 1", selErr.Batch.Ordinal)
	}
	if report.CompletedBatches != 1 {
		t.Errorf("completed = %d, want 1", report.CompletedBatches)
	}
	if got := driver.count("tags"); got != 1 {
		t.Errorf("tags applied %d times after failure, want 1", got)
	}
	if got := driver.count("advance"); got != 1 {
		t.Errorf("advance called %d times after failure, want 1", got)
	}
}

func TestSessionImmediateFailure(t *testing.T) {
	driver := newRecordingDriver()
	driver.failSelectAt = 0
	session := NewSession(driver)

	report, err := session.Run(context.Background(), Plan(4, 2), testTags)
	if err == nil {
		t.Fatal("expected error")
	}
	if report.CompletedBatches != 0 {
		t.Errorf("completed = %d, want 0", report.CompletedBatches)
	}
	if driver.count("tags") != 0 || driver.count("advance") != 0 {
		t.Errorf("no tags/advance expected after first-batch failure, got %v", driver.calls)
	}
}

func TestSessionContextCancellation(t *testing.T) {
	driver := newRecordingDriver()
	session := NewSession(driver)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	report, err := session.Run(ctx, Plan(6, 2), testTags)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
	if report.CompletedBatches != 0 {
		t.Errorf("completed = %d, want 0", report.CompletedBatches)
	}
	if len(driver.calls) != 0 {
		t.Errorf("driver calls after cancellation: %v", driver.calls)
	}
}

func TestSessionEmptyPlan(t *testing.T) {
	driver := newRecordingDriver()
	session := NewSession(driver)

	report, err := session.Run(context.Background(), nil, testTags)
	if err != nil {
		t.Fatal(err)
	}
	if report.TotalBatches != 0 || report.CompletedBatches != 0 {
		t.Errorf("report = %+v, want zero", report)
	}
}
