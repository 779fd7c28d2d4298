package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/getmockd/jsonmatch/pkg/cli/internal/output"
	"github.com/getmockd/jsonmatch/pkg/jsonmatch"
)

// stdinName is the candidate argument that reads standard input.
const stdinName = "-"

// Candidate statuses reported by compare.
const (
	StatusMatch      = "match"
	StatusParseError = "parse_error"
	StatusMismatch   = "mismatch"
)

var (
	compareAllDifferences bool
	compareConcurrency    int
)

// CompareResult is the outcome for one candidate.
type CompareResult struct {
	Candidate   string       `json:"candidate"`
	Status      string       `json:"status"`
	Category    string       `json:"category,omitempty"`
	Reason      string       `json:"reason,omitempty"`
	Path        string       `json:"path,omitempty"`
	Detail      string       `json:"detail,omitempty"`
	Differences []Difference `json:"differences,omitempty"`
	Diff        string       `json:"diff,omitempty"`

	report string
}

// Difference is one divergence in JSON output.
type Difference struct {
	Path   string `json:"path"`
	Detail string `json:"detail"`
}

// CompareOutput is the JSON document written by compare --json.
type CompareOutput struct {
	Expected   string          `json:"expected"`
	Matcher    string          `json:"matcher"`
	Total      int             `json:"total"`
	Matched    int             `json:"matched"`
	Candidates []CompareResult `json:"candidates"`
}

var compareCmd = &cobra.Command{
	Use:   "compare EXPECTED CANDIDATE...",
	Short: "Compare candidate JSON documents against an expected document",
	Long: `Compare one or more candidate JSON documents against an expected document.

EXPECTED is a file path. Each CANDIDATE is a file path, a glob pattern
(** matches any number of directories) or "-" for standard input.

Candidates are compared concurrently. The exit status is 0 when every
candidate matches, 1 when any candidate is not valid JSON or differs, and 2
on usage or I/O errors.`,
	Example: `  jsonmatch compare expected.json actual.json
  jsonmatch compare expected.json 'captures/**/*.json'
  curl -s localhost:8080/api | jsonmatch compare expected.json -
  jsonmatch compare --all-differences --json expected.json actual.json`,
	Args: cobra.MinimumNArgs(2),
	RunE: runCompare,
}

func runCompare(cmd *cobra.Command, args []string) error {
	if cmd.Flags().Changed("all-differences") {
		cfg.AllDifferences = compareAllDifferences
	}
	if cmd.Flags().Changed("concurrency") {
		cfg.Concurrency = compareConcurrency
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	matcher, err := loadExpected(args[0])
	if err != nil {
		return err
	}

	candidates, err := expandCandidates(args[1:])
	if err != nil {
		return err
	}
	log.Debug("comparing candidates", "expected", args[0], "count", len(candidates), "concurrency", cfg.Concurrency)

	results, err := compareAll(cmd.Context(), matcher, candidates, cmd.InOrStdin())
	if err != nil {
		return err
	}

	matched := 0
	for _, r := range results {
		if r.Status == StatusMatch {
			matched++
		}
	}

	w := cmd.OutOrStdout()
	out := CompareOutput{
		Expected:   args[0],
		Matcher:    matcher.Name(),
		Total:      len(results),
		Matched:    matched,
		Candidates: results,
	}
	if err := printResult(w, out, func() { printCompareText(w, results) }); err != nil {
		return err
	}

	if matched < len(results) {
		return &ExitError{
			Code: ExitMismatch,
			Err:  fmt.Errorf("%d of %d candidates did not match", len(results)-matched, len(results)),
		}
	}
	return nil
}

func loadExpected(path string) (*jsonmatch.StructuralMatcher, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read expected: %w", err)
	}

	var opts []jsonmatch.Option
	if cfg.AllDifferences {
		opts = append(opts, jsonmatch.WithAllDifferences())
	}
	m, err := jsonmatch.New(data, opts...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return m, nil
}

// expandCandidates resolves candidate arguments to file names in argument
// order. Glob matches are sorted and deduplicated; "-" may appear once.
func expandCandidates(args []string) ([]string, error) {
	seen := make(map[string]bool)
	var out []string
	add := func(name string) {
		if !seen[name] {
			seen[name] = true
			out = append(out, name)
		}
	}

	for _, arg := range args {
		if arg == stdinName {
			add(arg)
			continue
		}
		if !hasMeta(arg) {
			add(arg)
			continue
		}

		matches, err := doublestar.FilepathGlob(arg, doublestar.WithFilesOnly())
		if err != nil {
			return nil, fmt.Errorf("expanding glob pattern %q: %w", arg, err)
		}
		if len(matches) == 0 {
			return nil, fmt.Errorf("%w: %s", ErrNoCandidates, arg)
		}
		sort.Strings(matches)
		for _, m := range matches {
			add(m)
		}
	}
	return out, nil
}

func hasMeta(s string) bool {
	return strings.ContainsAny(s, "*?[{")
}

// compareAll matches every candidate, at most cfg.Concurrency at a time.
// Results keep candidate order.
func compareAll(ctx context.Context, m jsonmatch.Matcher, candidates []string, stdin io.Reader) ([]CompareResult, error) {
	results := make([]CompareResult, len(candidates))

	g, ctx := errgroup.WithContext(ctx)
	if cfg.Concurrency > 0 {
		g.SetLimit(cfg.Concurrency)
	}

	for i, name := range candidates {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			data, err := readCandidate(name, stdin)
			if err != nil {
				return err
			}
			results[i] = newCompareResult(name, m.Match(data))
			log.Debug("candidate compared", "candidate", name, "status", results[i].Status)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func readCandidate(name string, stdin io.Reader) ([]byte, error) {
	if name == stdinName {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}
		return data, nil
	}
	data, err := os.ReadFile(name)
	if err != nil {
		return nil, fmt.Errorf("read candidate: %w", err)
	}
	return data, nil
}

func newCompareResult(name string, o jsonmatch.Outcome) CompareResult {
	r := CompareResult{Candidate: name, Category: o.Category()}
	switch o.Kind {
	case jsonmatch.Matched:
		r.Status = StatusMatch
	case jsonmatch.ParseFailed:
		r.Status = StatusParseError
		r.Reason = o.Reason
	case jsonmatch.ValueMismatch:
		r.Status = StatusMismatch
		if mm := o.Mismatch; mm != nil {
			r.Path = mm.Path
			r.Detail = mm.Detail
			r.Diff = mm.Diff
			r.report = mm.Report()
			for _, d := range mm.Differences {
				r.Differences = append(r.Differences, Difference{Path: d.Path, Detail: d.Detail})
			}
		}
	}
	return r
}

func printCompareText(w io.Writer, results []CompareResult) {
	for _, r := range results {
		switch r.Status {
		case StatusMatch:
			fmt.Fprintf(w, "MATCH       %s\n", r.Candidate)
		case StatusParseError:
			fmt.Fprintf(w, "PARSE ERROR %s [%s]: %s\n", r.Candidate, r.Category, r.Reason)
		case StatusMismatch:
			fmt.Fprintf(w, "MISMATCH    %s [%s]\n", r.Candidate, r.Category)
			fmt.Fprintln(w, output.Indent(r.report, "    "))
		}
	}
}

func init() {
	compareCmd.Flags().BoolVar(&compareAllDifferences, "all-differences", false, "Report every difference instead of only the first")
	compareCmd.Flags().IntVarP(&compareConcurrency, "concurrency", "c", 0, "Maximum candidates compared at once (default: GOMAXPROCS)")
	rootCmd.AddCommand(compareCmd)
}
