// Package util provides utility functions for the application.
package util

import (
	"regexp"
	"strings"
)

var slugPattern = regexp.MustCompile(`^[a-z0-9-]+$`)

// NormalizeSlug ensures slugs are always lowercase and trimmed.
// Use this function whenever accepting slugs from external sources.
func NormalizeSlug(slug string) string {
	return strings.ToLower(strings.TrimSpace(slug))
}

// IsValidSlug reports whether the slug contains only lowercase letters,
// numbers and hyphens
func IsValidSlug(slug string) bool {
	return slugPattern.MatchString(slug)
}
