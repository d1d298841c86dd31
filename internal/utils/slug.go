package utils

import (
	"regexp"
	"strings"
)

var (
	slugWhitespace = regexp.MustCompile(`\s+`)
	slugInvalid    = regexp.MustCompile(`[^a-z0-9_-]`)
)

// Slugify derives a URL-safe slug from a tag name: lowercase, runs of
// whitespace become a single hyphen, and everything outside [a-z0-9_-]
// is stripped.
func Slugify(name string) string {
	slug := strings.ToLower(strings.TrimSpace(name))
	slug = slugWhitespace.ReplaceAllString(slug, "-")
	return slugInvalid.ReplaceAllString(slug, "")
}
