package matching

import "github.com/getmockd/jsonmatch/pkg/jsonmatch"

// BodyResult is the outcome of one body matcher.
type BodyResult struct {
	Matcher string
	Outcome jsonmatch.Outcome
}

// MatchBody runs every matcher against the body.
// Returns ScoreBodyMatcher per matcher if all of them match, 0 otherwise,
// along with each matcher's outcome in order.
func MatchBody(matchers []jsonmatch.Matcher, body []byte) (int, []BodyResult) {
	results := make([]BodyResult, 0, len(matchers))
	allMatched := true
	for _, m := range matchers {
		out := m.Match(body)
		if !out.IsMatch() {
			allMatched = false
		}
		results = append(results, BodyResult{Matcher: m.Name(), Outcome: out})
	}

	if !allMatched {
		return 0, results
	}
	return len(matchers) * ScoreBodyMatcher, results
}
