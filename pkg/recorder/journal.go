package recorder

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/getmockd/jsonmatch/internal/matching"
	"github.com/getmockd/jsonmatch/pkg/logging"
)

// Defaults for a new Journal.
const (
	DefaultMaxEntries = 1000
	DefaultMaxBody    = 1 << 20
)

// Journal records HTTP requests and verifies them against patterns.
// It is safe for concurrent use.
type Journal struct {
	mu      sync.RWMutex
	entries []*Entry

	maxEntries  int
	maxBody     int
	status      int
	body        []byte
	contentType string
	log         *slog.Logger
}

// Option configures a Journal.
type Option func(*Journal)

// WithLogger sets the logger used for per-request debug lines.
func WithLogger(log *slog.Logger) Option {
	return func(j *Journal) {
		if log != nil {
			j.log = log
		}
	}
}

// WithStatus sets the status code returned for every request.
func WithStatus(status int) Option {
	return func(j *Journal) {
		j.status = status
	}
}

// WithResponseBody sets the body and content type returned for every request.
func WithResponseBody(contentType string, body []byte) Option {
	return func(j *Journal) {
		j.contentType = contentType
		j.body = body
	}
}

// WithMaxEntries caps how many entries are kept. The oldest entry is evicted
// first.
func WithMaxEntries(n int) Option {
	return func(j *Journal) {
		if n > 0 {
			j.maxEntries = n
		}
	}
}

// WithMaxBody caps how many body bytes Entry.Body exposes.
// Patterns are always evaluated against the complete body.
func WithMaxBody(n int) Option {
	return func(j *Journal) {
		if n > 0 {
			j.maxBody = n
		}
	}
}

// New creates an empty Journal that answers 200 with no body.
func New(opts ...Option) *Journal {
	j := &Journal{
		maxEntries: DefaultMaxEntries,
		maxBody:    DefaultMaxBody,
		status:     http.StatusOK,
		log:        logging.Nop(),
	}
	for _, opt := range opts {
		opt(j)
	}
	return j
}

// ServeHTTP records the request and writes the configured response.
func (j *Journal) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if _, err := j.Record(r); err != nil {
		j.log.Warn("failed to record request", "method", r.Method, "path", r.URL.Path, "error", err)
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if j.contentType != "" {
		w.Header().Set("Content-Type", j.contentType)
	}
	w.WriteHeader(j.status)
	if len(j.body) > 0 {
		_, _ = w.Write(j.body)
	}
}

// Record reads the request body and appends an entry for the request.
func (j *Journal) Record(r *http.Request) (*Entry, error) {
	var body []byte
	if r.Body != nil {
		var err error
		body, err = io.ReadAll(r.Body)
		if err != nil {
			return nil, fmt.Errorf("read request body: %w", err)
		}
	}

	entry := &Entry{
		ID:          uuid.New().String(),
		Timestamp:   time.Now(),
		Method:      r.Method,
		Path:        r.URL.Path,
		QueryString: r.URL.RawQuery,
		Headers:     r.Header.Clone(),
		BodySize:    len(body),
		RemoteAddr:  r.RemoteAddr,
		raw:         body,
	}
	if len(body) > j.maxBody {
		entry.Body = string(body[:j.maxBody])
	} else {
		entry.Body = string(body)
	}

	j.mu.Lock()
	if len(j.entries) >= j.maxEntries {
		j.entries = j.entries[1:]
	}
	j.entries = append(j.entries, entry)
	j.mu.Unlock()

	j.log.Debug("request recorded",
		"id", entry.ID,
		"method", entry.Method,
		"path", entry.Path,
		"bodySize", entry.BodySize,
	)
	return entry, nil
}

// Requests returns the recorded entries, oldest first.
func (j *Journal) Requests() []*Entry {
	j.mu.RLock()
	defer j.mu.RUnlock()

	out := make([]*Entry, len(j.entries))
	copy(out, j.entries)
	return out
}

// Count returns the number of recorded entries.
func (j *Journal) Count() int {
	j.mu.RLock()
	defer j.mu.RUnlock()
	return len(j.entries)
}

// Reset removes all recorded entries.
func (j *Journal) Reset() {
	j.mu.Lock()
	j.entries = nil
	j.mu.Unlock()
}

// Find returns the entries that satisfy the pattern, oldest first.
func (j *Journal) Find(p *RequestPattern) []*Entry {
	c := p.criteria()
	var out []*Entry
	for _, e := range j.Requests() {
		if matching.MatchScore(c, e.request()) > 0 {
			out = append(out, e)
		}
	}
	return out
}

// NearMisses returns up to topN entries that partially satisfy the pattern,
// best first. Entries that fully satisfy it are not near misses.
func (j *Journal) NearMisses(p *RequestPattern, topN int) []matching.NearMiss {
	c := p.criteria()
	var misses []matching.NearMiss
	for _, e := range j.Requests() {
		nm := matching.MatchBreakdown(c, e.request())
		if nm.MaxPossibleScore > 0 && nm.Score == nm.MaxPossibleScore {
			continue
		}
		nm.RequestID = e.ID
		misses = append(misses, *nm)
	}
	return matching.RankNearMisses(misses, topN)
}

// Verify returns nil if at least one entry satisfies the pattern and a
// *VerificationError otherwise.
func (j *Journal) Verify(p *RequestPattern) error {
	return j.VerifyCount(p, -1)
}

// VerifyCount checks that exactly n entries satisfy the pattern. A negative n
// means at least one.
func (j *Journal) VerifyCount(p *RequestPattern, n int) error {
	found := j.Find(p)
	if (n < 0 && len(found) > 0) || len(found) == n {
		return nil
	}

	verr := &VerificationError{
		Pattern:  p.String(),
		Want:     n,
		Got:      len(found),
		Recorded: j.Count(),
	}
	if len(found) == 0 {
		if misses := j.NearMisses(p, 1); len(misses) > 0 {
			nm := misses[0]
			verr.NearMiss = &nm
			verr.Entry = j.entry(nm.RequestID)
		}
	}

	j.log.Debug("verification failed", "pattern", verr.Pattern, "want", n, "got", verr.Got)
	return verr
}

func (j *Journal) entry(id string) *Entry {
	j.mu.RLock()
	defer j.mu.RUnlock()
	for _, e := range j.entries {
		if e.ID == id {
			return e
		}
	}
	return nil
}
