package recorder

import (
	"errors"
	"fmt"
	"strings"

	"github.com/getmockd/jsonmatch/internal/matching"
)

// ErrNotRequested is matched by errors.Is for every VerificationError.
var ErrNotRequested = errors.New("no request matched")

// VerificationError reports that the journal did not hold the expected
// requests.
type VerificationError struct {
	// Pattern describes what was looked for.
	Pattern string

	// Want is the expected number of matches; negative means at least one.
	Want int

	// Got is the number of entries that matched.
	Got int

	// Recorded is the total number of entries in the journal.
	Recorded int

	// NearMiss is the closest partial match, if any entry satisfied some
	// criteria. Only set when nothing matched.
	NearMiss *matching.NearMiss

	// Entry is the request behind NearMiss.
	Entry *Entry
}

// BodyFailure returns the first body matcher that rejected the near miss.
func (e *VerificationError) BodyFailure() (matching.BodyResult, bool) {
	if e.NearMiss == nil {
		return matching.BodyResult{}, false
	}
	return e.NearMiss.FirstBodyFailure()
}

func (e *VerificationError) Error() string {
	var sb strings.Builder
	if e.Want < 0 {
		fmt.Fprintf(&sb, "%s %s (%d requests recorded)", ErrNotRequested, e.Pattern, e.Recorded)
	} else {
		fmt.Fprintf(&sb, "expected %d requests matching %s, got %d (%d requests recorded)",
			e.Want, e.Pattern, e.Got, e.Recorded)
	}

	if e.NearMiss == nil {
		return sb.String()
	}

	fmt.Fprintf(&sb, "\nclosest request %s (%d%% match): %s",
		e.NearMiss.RequestID, e.NearMiss.MatchPercentage, e.NearMiss.Reason)
	if e.Entry != nil {
		fmt.Fprintf(&sb, "\n\n%s %s\n\n%s", e.Entry.Method, e.Entry.Path, e.Entry.Body)
	}

	if failure, ok := e.BodyFailure(); ok && failure.Outcome.Mismatch != nil {
		sb.WriteString("\n\n")
		sb.WriteString(failure.Outcome.Mismatch.Report())
	}
	return sb.String()
}

// Unwrap returns ErrNotRequested.
func (e *VerificationError) Unwrap() error {
	return ErrNotRequested
}
