package jsonmatch

import (
	"errors"
	"fmt"

	"github.com/andreyvit/diff"
	json "github.com/goccy/go-json"
)

// DefaultName identifies StructuralMatcher in aggregated reports.
const DefaultName = "structural json matcher"

// Matcher decides whether a request body satisfies an expectation.
// Hosts accept any implementation; StructuralMatcher is one.
type Matcher interface {
	// Match classifies a candidate body. It must be safe for concurrent use.
	Match(candidate []byte) Outcome

	// Name identifies the matcher kind in failure reports.
	Name() string
}

// ErrInvalidExpected is matched by errors.Is for every ConstructionError.
var ErrInvalidExpected = errors.New("expected document is not valid JSON")

// ConstructionError reports an expected fixture that could not be parsed.
type ConstructionError struct {
	Err error
}

func (e *ConstructionError) Error() string {
	return ErrInvalidExpected.Error() + ": " + e.Err.Error()
}

// Unwrap returns the underlying parse error.
func (e *ConstructionError) Unwrap() error {
	return e.Err
}

// Is reports whether target is ErrInvalidExpected.
func (e *ConstructionError) Is(target error) bool {
	return target == ErrInvalidExpected
}

// Option configures a StructuralMatcher.
type Option func(*StructuralMatcher)

// WithName overrides the name reported by Name.
func WithName(name string) Option {
	return func(m *StructuralMatcher) {
		if name != "" {
			m.name = name
		}
	}
}

// WithAllDifferences makes mismatches list every divergence instead of only
// the first.
func WithAllDifferences() Option {
	return func(m *StructuralMatcher) {
		m.allDifferences = true
	}
}

// StructuralMatcher matches candidates structurally against one expected
// document. It is immutable after New returns.
type StructuralMatcher struct {
	expected       Value
	pretty         string
	name           string
	allDifferences bool
}

var _ Matcher = (*StructuralMatcher)(nil)

// New parses the expected document and returns a matcher for it.
// It returns a *ConstructionError if expected is not valid JSON.
func New(expected []byte, opts ...Option) (*StructuralMatcher, error) {
	v, err := Parse(expected)
	if err != nil {
		return nil, &ConstructionError{Err: err}
	}

	m := &StructuralMatcher{
		expected: v,
		pretty:   v.Pretty(),
		name:     DefaultName,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m, nil
}

// NewString is New for a string fixture.
func NewString(expected string, opts ...Option) (*StructuralMatcher, error) {
	return New([]byte(expected), opts...)
}

// NewFromValue marshals v to JSON and uses the result as the expected document.
func NewFromValue(v interface{}, opts ...Option) (*StructuralMatcher, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, &ConstructionError{Err: fmt.Errorf("marshal %T: %w", v, err)}
	}
	return New(data, opts...)
}

// MustNew is like New but panics on an invalid fixture.
// It is intended for test setup where the fixture is a literal.
func MustNew(expected string, opts ...Option) *StructuralMatcher {
	m, err := NewString(expected, opts...)
	if err != nil {
		panic(err)
	}
	return m
}

// Match parses the candidate and compares it with the expected document.
func (m *StructuralMatcher) Match(candidate []byte) Outcome {
	actual, err := Parse(candidate)
	if err != nil {
		return Outcome{Kind: ParseFailed, Reason: err.Error()}
	}

	return m.MatchValue(actual)
}

// MatchString is Match for a string candidate.
func (m *StructuralMatcher) MatchString(candidate string) Outcome {
	return m.Match([]byte(candidate))
}

// MatchValue compares an already parsed candidate.
func (m *StructuralMatcher) MatchValue(actual Value) Outcome {
	diffs := Compare(m.expected, actual, m.allDifferences)
	if len(diffs) == 0 {
		return Outcome{Kind: Matched}
	}
	actualPretty := actual.Pretty()
	return Outcome{
		Kind: ValueMismatch,
		Mismatch: &Mismatch{
			Path:        diffs[0].Path,
			Expected:    m.pretty,
			Actual:      actualPretty,
			Detail:      diffs[0].Detail,
			Diff:        diff.LineDiff(m.pretty, actualPretty),
			Differences: diffs,
		},
	}
}

// Expected returns the parsed expected document.
func (m *StructuralMatcher) Expected() Value {
	return m.expected
}

// ExpectedDescription returns the pretty-printed expected document.
func (m *StructuralMatcher) ExpectedDescription() string {
	return m.pretty
}

// Name returns the matcher's name.
func (m *StructuralMatcher) Name() string {
	return m.name
}

func (m *StructuralMatcher) String() string {
	return m.name + " " + m.expected.String()
}
