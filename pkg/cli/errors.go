package cli

import (
	"errors"
	"strconv"
)

// Exit codes
const (
	ExitOK       = 0
	ExitMismatch = 1
	ExitUsage    = 2
)

// ErrNoCandidates is returned when candidate arguments expand to no files.
var ErrNoCandidates = errors.New("no candidate files matched")

// ExitError carries a specific exit code out of a command.
// Err, if set, is printed to stderr.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return "exit status " + strconv.Itoa(e.Code)
}

func (e *ExitError) Unwrap() error {
	return e.Err
}
