// Package input handles the free-text source list typed or pasted by the
// user: one or more video URLs, space- or comma-delimited.
package input

import (
	"regexp"
	"strings"
)

var urlPattern = regexp.MustCompile(`https?://[^\s,]+`)

// ExtractURLs pulls every HTTP(S) URL out of free text. If nothing matches
// the URL pattern, the text is split on commas and whitespace and tokens
// that still look URL-like (contain a dot and no spaces) are kept, so that
// inputs like "youtube.com/watch?v=x, vimeo.com/123" are not silently
// dropped.
func ExtractURLs(text string) []string {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}

	if urls := urlPattern.FindAllString(text, -1); len(urls) > 0 {
		return dedupe(urls)
	}

	tokens := strings.FieldsFunc(text, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n' || r == '\r'
	})

	var urls []string
	for _, tok := range tokens {
		if looksLikeURL(tok) {
			urls = append(urls, tok)
		}
	}
	return dedupe(urls)
}

func looksLikeURL(token string) bool {
	if !strings.Contains(token, ".") {
		return false
	}
	// Reject tokens that are just punctuation or a trailing file name.
	host := token
	if i := strings.Index(host, "/"); i >= 0 {
		host = host[:i]
	}
	return strings.Count(host, ".") >= 1 && !strings.HasPrefix(host, ".") && !strings.HasSuffix(host, ".")
}

func dedupe(urls []string) []string {
	seen := make(map[string]struct{}, len(urls))
	out := make([]string, 0, len(urls))
	for _, u := range urls {
		u = strings.TrimRight(u, ".,;")
		if u == "" {
			continue
		}
		if _, ok := seen[u]; ok {
			continue
		}
		seen[u] = struct{}{}
		out = append(out, u)
	}
	return out
}
