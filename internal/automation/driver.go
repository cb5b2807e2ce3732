// Package automation holds the bridge to the external input-injection
// facility. The repo never touches screen coordinates itself: a driver
// either narrates what would happen (dry run) or hands each step to a
// user-supplied helper program.
package automation

import (
	"context"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/Hariprajwal/TenorGIFUploader/internal/platform"
	"github.com/Hariprajwal/TenorGIFUploader/internal/uploader"
)

// FormatTags renders the tag set the way it is pasted into a tag slot:
// space-separated, one string for the whole set.
func FormatTags(tags []string) string {
	return strings.Join(tags, " ")
}

// DryRunDriver logs every upload step without driving any UI. It is the
// default driver, useful for verifying batch plans and tag sets before
// pointing a real injector at a browser.
type DryRunDriver struct {
	Target      platform.Target
	ArtifactDir string
}

func (d *DryRunDriver) SelectFiles(_ context.Context, batch uploader.Batch) error {
	event := log.Info().
		Int("batch", batch.Ordinal+1).
		Int("start", batch.Start).
		Int("end", batch.End)
	if batch.Ordinal == 0 {
		event = event.Str("navigate_to", d.ArtifactDir)
	}
	event.Msg("[dry-run] Would select artifact files")
	return nil
}

func (d *DryRunDriver) ApplyTags(_ context.Context, tags []string) error {
	log.Info().
		Int("slots", d.Target.GetTagSlots()).
		Int("safety_slots", d.Target.GetSafetySlots()).
		Str("tags", FormatTags(tags)).
		Msg("[dry-run] Would paste full tag set into every slot")
	return nil
}

func (d *DryRunDriver) Advance(_ context.Context) error {
	log.Info().
		Str("url", d.Target.GetUploadURL()).
		Msg("[dry-run] Would navigate back to upload page")
	return nil
}
