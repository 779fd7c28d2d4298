package matching

import "strings"

// MatchPath checks if the request path matches the pattern.
// Returns a score > 0 if matched, 0 if not matched.
// Supports:
//   - Exact match: "/api/users" matches "/api/users"
//   - Named params: "/api/users/{id}" matches "/api/users/123"
//   - Trailing wildcard: "/api/users/*" matches "/api/users" and "/api/users/1/orders"
//   - Inline wildcard: "/api/*/orders" matches "/api/users/orders"
func MatchPath(pattern, path string) int {
	if pattern == path {
		return ScorePathExact
	}

	if strings.Contains(pattern, "{") && strings.Contains(pattern, "}") && matchNamedParams(pattern, path) {
		return ScorePathNamedParams
	}

	if prefix, ok := strings.CutSuffix(pattern, "/*"); ok {
		if path == prefix || strings.HasPrefix(path, prefix+"/") {
			return ScorePathWildcard
		}
	}

	if strings.Contains(pattern, "*") && matchWildcard(pattern, path) {
		return ScorePathWildcard
	}

	return 0
}

// maxPathScore returns the best score a pattern can produce.
func maxPathScore(pattern string) int {
	switch {
	case strings.Contains(pattern, "{"):
		return ScorePathNamedParams
	case strings.Contains(pattern, "*"):
		return ScorePathWildcard
	default:
		return ScorePathExact
	}
}

// matchNamedParams checks segment by segment; {name} segments match anything.
func matchNamedParams(pattern, path string) bool {
	patternParts := strings.Split(strings.Trim(pattern, "/"), "/")
	pathParts := strings.Split(strings.Trim(path, "/"), "/")
	if len(patternParts) != len(pathParts) {
		return false
	}

	for i, part := range patternParts {
		if strings.HasPrefix(part, "{") && strings.HasSuffix(part, "}") {
			continue
		}
		if part != pathParts[i] {
			return false
		}
	}
	return true
}

// matchWildcard matches * against any sequence of characters.
func matchWildcard(pattern, value string) bool {
	parts := strings.Split(pattern, "*")
	if len(parts) == 1 {
		return pattern == value
	}

	if !strings.HasPrefix(value, parts[0]) {
		return false
	}
	pos := len(parts[0])

	last := len(parts) - 1
	for _, part := range parts[1:last] {
		if part == "" {
			continue
		}
		idx := strings.Index(value[pos:], part)
		if idx == -1 {
			return false
		}
		pos += idx + len(part)
	}

	return strings.HasSuffix(value[pos:], parts[last])
}
