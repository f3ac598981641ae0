package services

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"kicau/internal/models"
)

var hashtagPattern = regexp.MustCompile(`#[^\s#]+`)

// ExtractHashtags returns the normalized hashtags of content in order of first
// appearance, without duplicates. Names longer than models.MaxHashtagLength
// runes are dropped.
func ExtractHashtags(content string) []string {
	matches := hashtagPattern.FindAllString(content, -1)
	tags := make([]string, 0, len(matches))
	seen := make(map[string]bool, len(matches))
	for _, m := range matches {
		name := NormalizeHashtag(m)
		if name == "" || seen[name] || utf8.RuneCountInString(name) > models.MaxHashtagLength {
			continue
		}
		seen[name] = true
		tags = append(tags, name)
	}
	return tags
}

// NormalizeHashtag strips surrounding space and one leading '#', and lowercases.
func NormalizeHashtag(s string) string {
	return strings.ToLower(strings.TrimPrefix(strings.TrimSpace(s), "#"))
}
