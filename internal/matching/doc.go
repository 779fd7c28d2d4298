// Package matching scores recorded requests against verification criteria.
//
// Criteria combine an HTTP method, a path pattern, header patterns and any
// number of body matchers (see pkg/jsonmatch). A request satisfies the
// criteria only when every specified field matches:
//
//   - Method matching: case-insensitive comparison
//   - Path matching: exact paths, trailing and inline wildcards, named parameters
//   - Header matching: exact values and prefix/suffix/contains wildcards
//   - Body matching: each jsonmatch.Matcher must report a match
//
// More specific matches receive higher scores. When no request satisfies the
// criteria, MatchBreakdown evaluates every field without short-circuiting so
// that the closest request (the near miss) can be reported with the reason it
// failed. Score constants are defined in scores.go.
package matching
