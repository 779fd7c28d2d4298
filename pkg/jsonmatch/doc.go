// Package jsonmatch provides a structural JSON-equality matcher for request
// bodies.
//
// A StructuralMatcher parses its expected document once, at construction, and
// compares every candidate against it structurally:
//
//   - Objects are compared by key set and per-key value; key order is ignored
//   - Arrays are compared element by element; order matters
//   - Numbers are compared by numeric value, so 1, 1.0 and 1e0 are equal
//   - Strings, booleans and null are compared by value
//   - A difference in type (object vs array, number vs string) never matches
//
// Match never returns an error. A candidate that is not valid JSON yields an
// Outcome of kind ParseFailed; a valid candidate that differs yields
// ValueMismatch carrying the path of the first divergence, a one-line detail,
// both documents pretty-printed and a line diff between them.
//
// Usage:
//
//	m, err := jsonmatch.New([]byte(`{"name":"bar"}`))
//	if err != nil {
//	    return err // fixture is not valid JSON
//	}
//	out := m.Match(body)
//	switch out.Kind {
//	case jsonmatch.Matched:
//	case jsonmatch.ParseFailed:
//	    log.Printf("not json: %s", out.Reason)
//	case jsonmatch.ValueMismatch:
//	    log.Printf("%s: %s", out.Mismatch.Path, out.Mismatch.Detail)
//	}
//
// A matcher holds no mutable state after construction and may be shared by
// any number of goroutines.
package jsonmatch
