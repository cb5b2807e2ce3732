// Package tagger produces the fixed-cardinality hashtag set attached to
// every artifact in a run. Generation goes through a hosted completion
// backend when one is configured; any failure degrades to hint-derived or
// default tags instead of aborting the pipeline.
package tagger

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/slices"

	"github.com/Hariprajwal/TenorGIFUploader/internal/config"
)

// Completer is one outbound call to a hosted text-generation service.
type Completer interface {
	// Complete sends the prompt and returns the raw response text.
	Complete(ctx context.Context, prompt string) (string, error)

	// Name identifies the backend in logs.
	Name() string
}

// Context carries the source-video metadata the prompt is built from.
type Context struct {
	Title       string
	Description string
	Hints       []string // tags already attached to the source video
}

// Generator wraps a Completer and guarantees a usable tag set.
type Generator struct {
	completer Completer // nil means defaults-only
	count     int
}

// NewGenerator creates a Generator targeting exactly count tags per set.
// A nil completer skips the outbound call entirely. A non-positive count
// falls back to the default cardinality.
func NewGenerator(completer Completer, count int) *Generator {
	if count <= 0 {
		count = config.DefaultTagCount
	}
	return &Generator{completer: completer, count: count}
}

// Generate returns exactly g.count non-empty tags for the given context.
// It never returns an error: a failed or malformed completion only changes
// where the tags come from (generated > hint-derived > defaults, with
// defaults appended last when padding is needed).
func (g *Generator) Generate(ctx context.Context, c Context) []string {
	var tags []string

	if g.completer != nil {
		raw, err := g.completer.Complete(ctx, buildPrompt(c, g.count))
		if err != nil {
			log.Warn().Err(err).
				Str("backend", g.completer.Name()).
				Msg("Tag generation failed, falling back to derived tags")
		} else {
			tags = parseTags(raw)
			if len(tags) == 0 {
				log.Warn().
					Str("backend", g.completer.Name()).
					Msg("Tag generation returned no usable tags")
			}
		}
	}

	if len(tags) == 0 {
		tags = tagsFromHints(c.Hints)
	}

	return g.normalize(tags)
}

// normalize pads with default tags (skipping duplicates) until the target
// cardinality is reached, or truncates past it.
func (g *Generator) normalize(tags []string) []string {
	out := make([]string, 0, g.count)
	for _, tag := range tags {
		if len(out) == g.count {
			break
		}
		if tag == "" || slices.Contains(out, tag) {
			continue
		}
		out = append(out, tag)
	}

	for _, tag := range config.DefaultTags {
		if len(out) == g.count {
			break
		}
		if !slices.Contains(out, tag) {
			out = append(out, tag)
		}
	}

	// The default list covers a full set; this only triggers for
	// unusually large custom cardinalities.
	for i := 1; len(out) < g.count; i++ {
		candidate := fmt.Sprintf("%s%d", config.DefaultTags[(i-1)%len(config.DefaultTags)], i)
		if !slices.Contains(out, candidate) {
			out = append(out, candidate)
		}
	}

	return out
}

// parseTags splits a comma-delimited completion response into clean tags.
func parseTags(raw string) []string {
	raw = strings.ReplaceAll(raw, "\n", "")
	var tags []string
	for _, part := range strings.Split(raw, ",") {
		if tag := cleanTag(part); tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags
}

// tagsFromHints turns source-video tags into hashtags.
func tagsFromHints(hints []string) []string {
	var tags []string
	for _, hint := range hints {
		if tag := cleanTag(hint); tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags
}

func cleanTag(s string) string {
	s = strings.TrimSpace(s)
	s = strings.Trim(s, "\"'`")
	s = strings.ReplaceAll(s, " ", "")
	if s == "" || s == "#" {
		return ""
	}
	if !strings.HasPrefix(s, "#") {
		s = "#" + s
	}
	return s
}
