package problems

import (
	"os"
	"strings"
)

// Base returns the base URL for problem type identifiers (RFC 7807).
// Order of precedence:
// 1. PROBLEM_BASE_URL (exact base, e.g. https://clubgate.app/problems)
// 2. https://clubgate.app/problems (fallback)
func Base() string {
	if b := os.Getenv("PROBLEM_BASE_URL"); b != "" {
		return strings.TrimRight(b, "/")
	}
	return "https://clubgate.app/problems"
}

// Type builds a full problem type URL for the given slug.
func Type(slug string) string { return Base() + "/" + slug }
