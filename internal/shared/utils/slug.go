package utils

import (
	"regexp"
	"strings"
)

var (
	nonWordRe      = regexp.MustCompile(`[^\w\s-]+`)
	nonWordCJKRe   = regexp.MustCompile(`[^\w\s\x{4e00}-\x{9fa5}-]+`)
	separatorRunRe = regexp.MustCompile(`[\s_]+`)
	hyphenRunRe    = regexp.MustCompile(`-+`)
)

// GenerateSlug derives a URL-safe slug from a display name.
// Lowercase, strip non-word characters, collapse whitespace/underscore runs
// to a single hyphen, trim leading/trailing hyphens.
// "Action  Games" -> "action-games"
func GenerateSlug(input string) string {
	return slugify(input, nonWordRe)
}

// GenerateTitleSlug is GenerateSlug with the CJK range kept in the
// pre-strip character class. Used for game titles, which may be Chinese.
func GenerateTitleSlug(input string) string {
	return slugify(input, nonWordCJKRe)
}

func slugify(input string, strip *regexp.Regexp) string {
	s := strings.ToLower(strings.TrimSpace(input))
	s = strip.ReplaceAllString(s, "")
	s = separatorRunRe.ReplaceAllString(s, "-")
	s = hyphenRunRe.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}
