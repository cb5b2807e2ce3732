package tagger

import (
	"fmt"
	"strings"
)

// Descriptions are clipped to keep the prompt inside token limits.
const maxDescriptionLen = 500

// Hints beyond the first few add noise, not signal.
const maxPromptHints = 10

// buildPrompt assembles the completion prompt from the source-video
// metadata. The response contract is strict: exactly count comma-separated
// hashtags and nothing else, so parseTags stays trivial.
func buildPrompt(c Context, count int) string {
	var sb strings.Builder

	sb.WriteString("Based on this video content:\n")
	fmt.Fprintf(&sb, "Video Title: %s\n", c.Title)

	if c.Description != "" {
		desc := c.Description
		if len(desc) > maxDescriptionLen {
			desc = desc[:maxDescriptionLen] + "..."
		}
		fmt.Fprintf(&sb, "Video Description: %s\n", desc)
	}

	if len(c.Hints) > 0 {
		hints := c.Hints
		if len(hints) > maxPromptHints {
			hints = hints[:maxPromptHints]
		}
		fmt.Fprintf(&sb, "Video Tags: %s\n", strings.Join(hints, ", "))
	}

	fmt.Fprintf(&sb, `
Generate %d short, SEO-friendly hashtags specifically relevant to this video's content.
Focus on tags that would be appropriate for GIF clips from this video.
Include a mix of:
- Specific tags related to the video content
- Trending/viral tags
- Entertainment/comedy tags
- Popular culture tags

Only output the tags separated by commas, no other text.
`, count)

	return sb.String()
}
