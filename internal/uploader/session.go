package uploader

import (
	"context"
	"fmt"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

// Driver is the seam to the external UI-automation collaborator. The driver
// owns every site- and input-injection-specific detail; the session only
// sequences the calls.
type Driver interface {
	// SelectFiles makes exactly the artifacts in the batch's index range
	// selected in the target application. On the first batch it also
	// navigates to the artifact directory; later batches reuse the
	// directory context the application retains.
	SelectFiles(ctx context.Context, batch Batch) error

	// ApplyTags broadcasts the entire tag set into every designated tag
	// slot for the current batch, safety slots included.
	ApplyTags(ctx context.Context, tags []string) error

	// Advance returns the target application to an upload-ready state.
	// Called between batches only, never after the last one.
	Advance(ctx context.Context) error
}

// SelectError marks a failed file selection. Selection failures usually mean
// the external application has desynchronized from the script, so they are
// terminal for the session.
type SelectError struct {
	Batch Batch
	Err   error
}

func (e *SelectError) Error() string {
	return fmt.Sprintf("selecting artifacts %d-%d (batch %d): %v",
		e.Batch.Start, e.Batch.End, e.Batch.Ordinal+1, e.Err)
}

func (e *SelectError) Unwrap() error {
	return e.Err
}

// Report summarises a finished or aborted session.
type Report struct {
	TotalBatches     int
	CompletedBatches int
}

// Session drives one upload run: SELECT -> TAG -> [ADVANCE]* until the plan
// is exhausted or a selection fails.
type Session struct {
	driver Driver
}

// NewSession creates a session over the given automation driver.
func NewSession(driver Driver) *Session {
	return &Session{driver: driver}
}

// Run processes the planned batches in order. The tag set is applied
// unmodified to every batch. The first SelectFiles failure aborts the
// session with a *SelectError; the report counts only fully tagged batches.
// Context cancellation aborts immediately with no cleanup.
func (s *Session) Run(ctx context.Context, batches []Batch, tags []string) (Report, error) {
	report := Report{TotalBatches: len(batches)}

	for _, batch := range batches {
		if err := ctx.Err(); err != nil {
			return report, errors.WithStack(err)
		}

		log.Info().
			Int("batch", batch.Ordinal+1).
			Int("total_batches", len(batches)).
			Int("start", batch.Start).
			Int("end", batch.End).
			Msg("Processing batch")

		if err := s.driver.SelectFiles(ctx, batch); err != nil {
			log.Error().Err(err).
				Int("batch", batch.Ordinal+1).
				Int("completed", report.CompletedBatches).
				Msg("File selection failed, abandoning session")
			return report, &SelectError{Batch: batch, Err: err}
		}

		if err := s.driver.ApplyTags(ctx, tags); err != nil {
			// Tag application is best effort: a missed slot degrades
			// discoverability, it does not desynchronize the page.
			log.Warn().Err(err).
				Int("batch", batch.Ordinal+1).
				Msg("Tag application reported an error")
		}
		report.CompletedBatches++

		if batch.Ordinal < len(batches)-1 {
			if err := s.driver.Advance(ctx); err != nil {
				log.Error().Err(err).
					Int("batch", batch.Ordinal+1).
					Msg("Failed to advance to next upload cycle")
				return report, errors.Wrap(err, "advancing to next batch")
			}
		}
	}

	log.Info().
		Int("batches", report.CompletedBatches).
		Msg("All batches processed")
	return report, nil
}
