package matching

// Match score constants for path matching.
// Higher scores indicate more specific/precise matches.
const (
	// ScorePathExact is the score for an exact path match.
	ScorePathExact = 15

	// ScorePathNamedParams is the score for a path with named parameters match.
	ScorePathNamedParams = 12

	// ScorePathWildcard is the score for a wildcard path match.
	ScorePathWildcard = 10
)

// Match score constants for method and header matching.
const (
	// ScoreMethod is the score for a method match.
	ScoreMethod = 10

	// ScoreHeader is the score for each header match.
	ScoreHeader = 10
)

// Match score constants for body matching.
const (
	// ScoreBodyMatcher is the score for each body matcher that reports a match.
	ScoreBodyMatcher = 25
)
