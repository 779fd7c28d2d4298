package recorder

import (
	"net/http"
	"time"

	"github.com/getmockd/jsonmatch/internal/matching"
)

// Entry captures a request received by a Journal.
type Entry struct {
	// ID is a unique identifier for the entry.
	ID string `json:"id"`

	// Timestamp is when the request was received.
	Timestamp time.Time `json:"timestamp"`

	// Method is the HTTP method.
	Method string `json:"method"`

	// Path is the request URL path.
	Path string `json:"path"`

	// QueryString is the raw query string.
	QueryString string `json:"queryString,omitempty"`

	// Headers are the request headers (multi-value).
	Headers map[string][]string `json:"headers,omitempty"`

	// Body is the request body content, truncated to the journal's body limit
	// when BodySize exceeds it.
	Body string `json:"body,omitempty"`

	// BodySize is the original body size in bytes.
	BodySize int `json:"bodySize"`

	// RemoteAddr is the client address.
	RemoteAddr string `json:"remoteAddr"`

	// raw is the complete body; criteria are evaluated against it.
	raw []byte
}

// request converts the entry to the form criteria are evaluated on.
func (e *Entry) request() *matching.Request {
	body := e.raw
	if body == nil {
		body = []byte(e.Body)
	}
	return &matching.Request{
		Method: e.Method,
		Path:   e.Path,
		Header: http.Header(e.Headers),
		Body:   body,
	}
}
