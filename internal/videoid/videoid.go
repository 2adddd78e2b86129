// Package videoid normalizes free-form YouTube video references (bare IDs,
// watch/short/embed/shorts URLs, or text containing a v= parameter) into
// canonical 11-character video IDs.
package videoid

import (
	"net/url"
	"regexp"
	"strings"
)

// idPattern is the strict shape of a YouTube video ID.
var idPattern = regexp.MustCompile(`^[A-Za-z0-9_-]{11}$`)

// Fallback patterns for inputs that are not well-formed URLs. The leading
// ?/& anchor and the trailing boundary keep the match to exactly 11
// characters and avoid hits inside other parameter values.
var (
	queryParamPattern = regexp.MustCompile(`[?&]v=([A-Za-z0-9_-]{11})(?:[^A-Za-z0-9_-]|$)`)
	embedPathPattern  = regexp.MustCompile(`embed/([A-Za-z0-9_-]{11})(?:[^A-Za-z0-9_-]|$)`)
)

// Valid reports whether s is a strict 11-character YouTube video ID.
// Tool boundaries use this to reject references Normalize could not reduce.
func Valid(s string) bool {
	return idPattern.MatchString(s)
}

// Normalize reduces a free-form video reference to a canonical video ID.
// It is a best-effort transform, not a validator: when no known shape
// matches it returns the trimmed input with ok=false and never errors.
// Matchers are tried in a fixed priority order, first match wins.
func Normalize(input string) (string, bool) {
	trimmed := strings.TrimSpace(input)

	// Already a bare ID.
	if Valid(trimmed) {
		return trimmed, true
	}

	// Well-formed URL. A parse failure (or a URL with no host, e.g.
	// "youtube.com/watch?v=..." without a scheme) is not fatal; such
	// inputs fall through to the pattern search below.
	if u, err := url.Parse(trimmed); err == nil && u.Host != "" {
		if id, ok := fromURL(u); ok {
			return id, true
		}
	}

	// Pattern fallback for non-standard or partially malformed URLs.
	if m := queryParamPattern.FindStringSubmatch(trimmed); m != nil {
		return m[1], true
	}
	if m := embedPathPattern.FindStringSubmatch(trimmed); m != nil {
		return m[1], true
	}

	return trimmed, false
}

// fromURL extracts a video ID from a parsed URL.
func fromURL(u *url.URL) (string, bool) {
	if v := u.Query().Get("v"); Valid(v) {
		return v, true
	}

	if !strings.Contains(u.Host, "youtu") {
		return "", false
	}

	segments := strings.Split(strings.Trim(u.Path, "/"), "/")

	switch {
	case u.Host == "youtu.be" && len(segments) > 0 && Valid(segments[0]):
		return segments[0], true
	case len(segments) > 1 && segments[0] == "embed" && Valid(segments[1]):
		return segments[1], true
	case len(segments) > 1 && segments[0] == "shorts" && Valid(segments[1]):
		return segments[1], true
	}

	return "", false
}
