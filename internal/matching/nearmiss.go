package matching

import (
	"fmt"
	"sort"
	"strings"
)

// FieldResult describes whether a single criteria field matched the request.
type FieldResult struct {
	Field    string      `json:"field"`
	Matched  bool        `json:"matched"`
	Score    int         `json:"score"`
	MaxScore int         `json:"maxScore"`
	Expected interface{} `json:"expected,omitempty"`
	Actual   interface{} `json:"actual,omitempty"`
	Details  interface{} `json:"details,omitempty"`
}

// HeaderDetail describes the match result for a single header.
type HeaderDetail struct {
	Key      string `json:"key"`
	Expected string `json:"expected"`
	Actual   string `json:"actual"`
	Matched  bool   `json:"matched"`
}

// NearMiss is a recorded request that partially satisfied the criteria.
type NearMiss struct {
	RequestID        string        `json:"requestId"`
	Score            int           `json:"score"`
	MaxPossibleScore int           `json:"maxPossibleScore"`
	MatchPercentage  int           `json:"matchPercentage"`
	Fields           []FieldResult `json:"fields"`
	Reason           string        `json:"reason"`
}

// FirstBodyFailure returns the first body matcher that did not match, if any.
func (nm *NearMiss) FirstBodyFailure() (BodyResult, bool) {
	for _, f := range nm.Fields {
		if f.Field != "body" {
			continue
		}
		results, _ := f.Details.([]BodyResult)
		for _, r := range results {
			if !r.Outcome.IsMatch() {
				return r, true
			}
		}
	}
	return BodyResult{}, false
}

// MatchBreakdown evaluates every field in the criteria against the request
// without short-circuiting, returning per-field match/mismatch results.
// Only fields that the criteria specify are included in the breakdown.
func MatchBreakdown(c *Criteria, r *Request) *NearMiss {
	result := &NearMiss{}
	if c == nil || r == nil {
		return result
	}

	if c.Method != "" {
		matched := MatchMethod(c.Method, r.Method)
		result.add(FieldResult{
			Field:    "method",
			Matched:  matched,
			Score:    scoreIf(matched, ScoreMethod),
			MaxScore: ScoreMethod,
			Expected: c.Method,
			Actual:   r.Method,
		})
	}

	if c.Path != "" {
		pathScore := MatchPath(c.Path, r.Path)
		result.add(FieldResult{
			Field:    "path",
			Matched:  pathScore > 0,
			Score:    pathScore,
			MaxScore: maxPathScore(c.Path),
			Expected: c.Path,
			Actual:   r.Path,
		})
	}

	if len(c.Headers) > 0 {
		names := make([]string, 0, len(c.Headers))
		for name := range c.Headers {
			names = append(names, name)
		}
		sort.Strings(names)

		allMatched := true
		headerScore := 0
		details := make([]HeaderDetail, 0, len(names))
		for _, name := range names {
			expected := c.Headers[name]
			matched := MatchHeaderPattern(name, expected, r.Header)
			actual := r.Header.Get(name)
			if actual == "" {
				actual = "(missing)"
			}
			if matched {
				headerScore += ScoreHeader
			} else {
				allMatched = false
			}
			details = append(details, HeaderDetail{
				Key:      name,
				Expected: expected,
				Actual:   actual,
				Matched:  matched,
			})
		}
		result.add(FieldResult{
			Field:    "headers",
			Matched:  allMatched,
			Score:    headerScore,
			MaxScore: len(c.Headers) * ScoreHeader,
			Details:  details,
		})
	}

	if len(c.Body) > 0 {
		_, bodyResults := MatchBody(c.Body, r.Body)
		bodyScore := 0
		allMatched := true
		for _, br := range bodyResults {
			if br.Outcome.IsMatch() {
				bodyScore += ScoreBodyMatcher
			} else {
				allMatched = false
			}
		}
		result.add(FieldResult{
			Field:    "body",
			Matched:  allMatched,
			Score:    bodyScore,
			MaxScore: len(c.Body) * ScoreBodyMatcher,
			Actual:   truncate(string(r.Body), 200),
			Details:  bodyResults,
		})
	}

	if result.MaxPossibleScore > 0 {
		result.MatchPercentage = (result.Score * 100) / result.MaxPossibleScore
	}
	result.Reason = GenerateReason(result.Fields)

	return result
}

func (nm *NearMiss) add(f FieldResult) {
	nm.Fields = append(nm.Fields, f)
	nm.Score += f.Score
	nm.MaxPossibleScore += f.MaxScore
}

// RankNearMisses orders near misses by score, then percentage, and keeps the
// top N. Entries with a zero score are dropped; nothing about them matched.
func RankNearMisses(misses []NearMiss, topN int) []NearMiss {
	if topN <= 0 {
		topN = 3
	}

	candidates := make([]NearMiss, 0, len(misses))
	for _, nm := range misses {
		if nm.Score > 0 {
			candidates = append(candidates, nm)
		}
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].Score != candidates[j].Score {
			return candidates[i].Score > candidates[j].Score
		}
		return candidates[i].MatchPercentage > candidates[j].MatchPercentage
	})

	if len(candidates) > topN {
		candidates = candidates[:topN]
	}
	return candidates
}

// GenerateReason creates a human-readable explanation of why a request
// partially matched but ultimately failed.
func GenerateReason(fields []FieldResult) string {
	if len(fields) == 0 {
		return "no fields to compare"
	}

	var matched []string
	var firstMismatch *FieldResult

	for i := range fields {
		if fields[i].Matched {
			matched = append(matched, fields[i].Field)
		} else if firstMismatch == nil {
			firstMismatch = &fields[i]
		}
	}

	if firstMismatch == nil {
		return "all specified fields matched"
	}

	if len(matched) == 0 {
		return formatMismatch(firstMismatch)
	}
	return joinFields(matched) + " matched, but " + formatMismatch(firstMismatch)
}

// formatMismatch formats a single field mismatch into a human-readable string.
func formatMismatch(f *FieldResult) string {
	switch f.Field {
	case "method":
		return fmt.Sprintf("method expected %q, got %q", f.Expected, f.Actual)
	case "path":
		return fmt.Sprintf("path expected %q, got %q", f.Expected, f.Actual)
	case "headers":
		if details, ok := f.Details.([]HeaderDetail); ok {
			for _, d := range details {
				if !d.Matched {
					return fmt.Sprintf("header %s expected %q, got %q", d.Key, d.Expected, d.Actual)
				}
			}
		}
		return "header mismatch"
	case "body":
		if results, ok := f.Details.([]BodyResult); ok {
			for _, r := range results {
				if !r.Outcome.IsMatch() {
					return fmt.Sprintf("body %s [%s]: %s", r.Matcher, r.Outcome.Category(), r.Outcome.Message())
				}
			}
		}
		return "body mismatch"
	default:
		return f.Field + " did not match"
	}
}

// joinFields joins field names with commas and "and".
func joinFields(fields []string) string {
	switch len(fields) {
	case 0:
		return ""
	case 1:
		return fields[0]
	case 2:
		return fields[0] + " and " + fields[1]
	default:
		return strings.Join(fields[:len(fields)-1], ", ") + ", and " + fields[len(fields)-1]
	}
}

func scoreIf(matched bool, score int) int {
	if matched {
		return score
	}
	return 0
}

// truncate shortens a string to maxLen, appending "..." if truncated.
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
