package matching

import (
	"net/http"
	"strings"
)

// MatchHeaderPattern checks if a header matches a pattern.
// Header names are case-insensitive. Patterns support exact values, prefix
// (value*), suffix (*value) and contains (*value*) forms.
func MatchHeaderPattern(name, pattern string, headers http.Header) bool {
	actual := headers.Get(name)
	if actual == "" {
		return false
	}

	starPrefix := strings.HasPrefix(pattern, "*")
	starSuffix := strings.HasSuffix(pattern, "*")

	switch {
	case !strings.Contains(pattern, "*"):
		return actual == pattern
	case starPrefix && starSuffix:
		return strings.Contains(actual, strings.Trim(pattern, "*"))
	case starSuffix:
		return strings.HasPrefix(actual, strings.TrimSuffix(pattern, "*"))
	case starPrefix:
		return strings.HasSuffix(actual, strings.TrimPrefix(pattern, "*"))
	default:
		return matchWildcard(pattern, actual)
	}
}
