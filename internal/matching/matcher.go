package matching

import (
	"net/http"
	"strings"

	"github.com/getmockd/jsonmatch/pkg/jsonmatch"
)

// Request is the view of a recorded request that criteria are evaluated on.
type Request struct {
	Method string
	Path   string
	Header http.Header
	Body   []byte
}

// Criteria describe the requests a verification is looking for.
// Empty fields are not checked.
type Criteria struct {
	Method  string
	Path    string
	Headers map[string]string
	Body    []jsonmatch.Matcher
}

// MatchScore calculates the match score for a request against criteria.
// Returns 0 if there's no match, higher scores indicate better matches.
// Fields are checked cheapest first; body matchers run only when the routing
// fields already match.
func MatchScore(c *Criteria, r *Request) int {
	if c == nil || r == nil {
		return 0
	}

	score := 0

	if c.Method != "" {
		if !MatchMethod(c.Method, r.Method) {
			return 0
		}
		score += ScoreMethod
	}

	if c.Path != "" {
		pathScore := MatchPath(c.Path, r.Path)
		if pathScore == 0 {
			return 0
		}
		score += pathScore
	}

	for name, value := range c.Headers {
		if !MatchHeaderPattern(name, value, r.Header) {
			return 0
		}
		score += ScoreHeader
	}

	if len(c.Body) > 0 {
		bodyScore, _ := MatchBody(c.Body, r.Body)
		if bodyScore == 0 {
			return 0
		}
		score += bodyScore
	}

	// Criteria with nothing specified match every request.
	if score == 0 {
		return 1
	}
	return score
}

// MatchMethod checks if the request method matches.
// An expected method of "ANY" or "*" matches every method.
func MatchMethod(expected, actual string) bool {
	if expected == "*" || strings.EqualFold(expected, "ANY") {
		return true
	}
	return strings.EqualFold(expected, actual)
}
