package automation

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/Hariprajwal/TenorGIFUploader/internal/platform"
	"github.com/Hariprajwal/TenorGIFUploader/internal/producer"
	"github.com/Hariprajwal/TenorGIFUploader/internal/uploader"
)

// CommandDriver delegates each upload step to an external helper program:
//
//	<cmd> select  — payload: directory, file names, first-batch flag
//	<cmd> tags    — payload: formatted tag string, slot counts
//	<cmd> advance — payload: upload URL
//
// The payload is JSON on stdin. A nonzero exit from `select` is terminal
// for the session; the helper owns all window, focus, and coordinate
// handling.
type CommandDriver struct {
	Cmd         string
	Target      platform.Target
	ArtifactDir string
}

// Readiness ceiling. Helpers that implement a `ready` step confirm sooner;
// helpers that don't absorb the full timeout, which then acts as the
// post-navigation delay.
const (
	readyTimeout  = 10 * time.Second
	readyInterval = 500 * time.Millisecond
)

type selectPayload struct {
	Directory  string   `json:"directory"`
	Files      []string `json:"files"`
	FirstBatch bool     `json:"first_batch"`
	BatchIndex int      `json:"batch_index"`
}

type tagsPayload struct {
	Tags        string `json:"tags"`
	TagSlots    int    `json:"tag_slots"`
	SafetySlots int    `json:"safety_slots"`
}

type advancePayload struct {
	UploadURL string `json:"upload_url"`
}

func (d *CommandDriver) SelectFiles(ctx context.Context, batch uploader.Batch) error {
	err := d.invoke(ctx, "select", selectPayload{
		Directory:  d.ArtifactDir,
		Files:      batchFileNames(batch),
		FirstBatch: batch.Ordinal == 0,
		BatchIndex: batch.Ordinal,
	})
	if err != nil {
		return err
	}
	d.awaitReady(ctx)
	return nil
}

func (d *CommandDriver) ApplyTags(ctx context.Context, tags []string) error {
	return d.invoke(ctx, "tags", tagsPayload{
		Tags:        FormatTags(tags),
		TagSlots:    d.Target.GetTagSlots(),
		SafetySlots: d.Target.GetSafetySlots(),
	})
}

func (d *CommandDriver) Advance(ctx context.Context) error {
	err := d.invoke(ctx, "advance", advancePayload{
		UploadURL: d.Target.GetUploadURL(),
	})
	if err != nil {
		return err
	}
	d.awaitReady(ctx)
	return nil
}

// awaitReady polls the helper's optional `ready` step until it exits zero.
// Readiness is advisory: on timeout the session proceeds anyway, so the
// ceiling degrades to a fixed delay rather than a failure.
func (d *CommandDriver) awaitReady(ctx context.Context) {
	err := WaitUntil(ctx, readyTimeout, readyInterval, func() (bool, error) {
		if err := ctx.Err(); err != nil {
			return false, err
		}
		return exec.CommandContext(ctx, d.Cmd, "ready").Run() == nil, nil
	})
	if err != nil {
		log.Debug().Err(err).Msg("Ready probe did not confirm, proceeding")
	}
}

func (d *CommandDriver) invoke(ctx context.Context, step string, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal %s payload: %w", step, err)
	}

	log.Debug().Str("cmd", d.Cmd).Str("step", step).RawJSON("payload", body).
		Msg("Invoking automation helper")

	cmd := exec.CommandContext(ctx, d.Cmd, step)
	cmd.Stdin = bytes.NewReader(body)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("automation helper %s step failed: %w: %s",
			step, err, strings.TrimSpace(stderr.String()))
	}
	return nil
}

// batchFileNames lists the artifact file names in the batch's index range.
func batchFileNames(batch uploader.Batch) []string {
	files := make([]string, 0, batch.Size())
	for i := batch.Start; i <= batch.End; i++ {
		files = append(files, producer.ArtifactName(i))
	}
	return files
}
