package jsonmatch

import (
	"fmt"
	"strings"

	"github.com/ohler55/ojg/jp"
)

// OutcomeKind classifies the result of a match.
type OutcomeKind int

// Outcome kinds.
const (
	// Matched means the candidate is structurally equal to the expected document.
	Matched OutcomeKind = iota

	// ParseFailed means the candidate is not valid JSON.
	ParseFailed

	// ValueMismatch means the candidate is valid JSON but differs from the
	// expected document.
	ValueMismatch
)

// String returns a short label for the outcome kind.
func (k OutcomeKind) String() string {
	switch k {
	case Matched:
		return "matched"
	case ParseFailed:
		return "parse failed"
	case ValueMismatch:
		return "value mismatch"
	default:
		return fmt.Sprintf("OutcomeKind(%d)", int(k))
	}
}

// Sub-event categories attached to non-matching outcomes. Hosts use them to
// group failures in verification reports.
const (
	CategoryJSONError    = "JSON_ERROR"
	CategoryNonMatchType = "NON_MATCH_TYPE"
)

// Outcome is the result of matching one candidate.
type Outcome struct {
	Kind OutcomeKind

	// Reason describes why the candidate could not be parsed (ParseFailed only).
	Reason string

	// Mismatch carries diagnostics (ValueMismatch only).
	Mismatch *Mismatch
}

// IsMatch reports whether the candidate matched.
func (o Outcome) IsMatch() bool {
	return o.Kind == Matched
}

// Category returns the sub-event category for a non-match, or "" for a match.
func (o Outcome) Category() string {
	switch o.Kind {
	case ParseFailed:
		return CategoryJSONError
	case ValueMismatch:
		return CategoryNonMatchType
	default:
		return ""
	}
}

// Message returns a one-line description suitable for a failure report.
func (o Outcome) Message() string {
	switch o.Kind {
	case Matched:
		return "matched"
	case ParseFailed:
		return "candidate is not valid JSON: " + o.Reason
	case ValueMismatch:
		if o.Mismatch == nil {
			return "value mismatch"
		}
		return o.Mismatch.Summary()
	default:
		return o.Kind.String()
	}
}

// Difference is one point where the candidate diverges from the expected
// document.
type Difference struct {
	// Path locates the divergent node, e.g. "timestamp" or "items[0].id".
	// The document root is "$".
	Path string

	// Expr is Path as an evaluable JSONPath expression rooted at "$".
	Expr jp.Expr

	// Detail is a one-line description, e.g. `expected number, got string`.
	Detail string
}

// String formats the difference as "path: detail".
func (d Difference) String() string {
	return d.Path + ": " + d.Detail
}

// Mismatch holds the diagnostics for a ValueMismatch outcome.
type Mismatch struct {
	// Path locates the first divergence.
	Path string

	// Expected is the pretty-printed expected document.
	Expected string

	// Actual is the pretty-printed candidate document.
	Actual string

	// Detail describes the first divergence.
	Detail string

	// Diff is a line diff from Expected to Actual.
	Diff string

	// Differences lists every divergence found. It holds only the first one
	// unless the matcher was built with WithAllDifferences.
	Differences []Difference
}

// Summary formats the first divergence as "path: detail".
func (m *Mismatch) Summary() string {
	return m.Path + ": " + m.Detail
}

// Report renders the full diagnostic as multi-line text.
func (m *Mismatch) Report() string {
	var sb strings.Builder
	if len(m.Differences) > 1 {
		fmt.Fprintf(&sb, "%d differences found:\n", len(m.Differences))
		for _, d := range m.Differences {
			sb.WriteString("  ")
			sb.WriteString(d.String())
			sb.WriteByte('\n')
		}
	} else {
		fmt.Fprintf(&sb, "field %s differs: %s\n", m.Path, m.Detail)
	}
	sb.WriteString("\nExpected:\n")
	sb.WriteString(m.Expected)
	sb.WriteString("\n\nActual:\n")
	sb.WriteString(m.Actual)
	if m.Diff != "" {
		sb.WriteString("\n\nDiff:\n")
		sb.WriteString(m.Diff)
	}
	return sb.String()
}
