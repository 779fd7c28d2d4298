package recorder

import (
	"net/http"
	"sort"
	"strings"

	"github.com/getmockd/jsonmatch/internal/matching"
	"github.com/getmockd/jsonmatch/pkg/jsonmatch"
)

// RequestPattern describes the request a verification is looking for.
// Empty fields are not checked. Every body matcher must match.
type RequestPattern struct {
	Method   string
	Path     string
	Headers  map[string]string
	Matchers []jsonmatch.Matcher
}

// RequestedFor starts a pattern for the given method and path.
// Paths support {name} segments and * wildcards.
func RequestedFor(method, path string) *RequestPattern {
	return &RequestPattern{Method: method, Path: path}
}

// GetRequestedFor is RequestedFor(http.MethodGet, path).
func GetRequestedFor(path string) *RequestPattern {
	return RequestedFor(http.MethodGet, path)
}

// PostRequestedFor is RequestedFor(http.MethodPost, path).
func PostRequestedFor(path string) *RequestPattern {
	return RequestedFor(http.MethodPost, path)
}

// PutRequestedFor is RequestedFor(http.MethodPut, path).
func PutRequestedFor(path string) *RequestPattern {
	return RequestedFor(http.MethodPut, path)
}

// PatchRequestedFor is RequestedFor(http.MethodPatch, path).
func PatchRequestedFor(path string) *RequestPattern {
	return RequestedFor(http.MethodPatch, path)
}

// DeleteRequestedFor is RequestedFor(http.MethodDelete, path).
func DeleteRequestedFor(path string) *RequestPattern {
	return RequestedFor(http.MethodDelete, path)
}

// AnyRequestedFor matches the path with any method.
func AnyRequestedFor(path string) *RequestPattern {
	return RequestedFor("ANY", path)
}

// WithHeader requires a header. The value supports the prefix*, *suffix and
// *contains* forms.
func (p *RequestPattern) WithHeader(name, value string) *RequestPattern {
	if p.Headers == nil {
		p.Headers = make(map[string]string)
	}
	p.Headers[name] = value
	return p
}

// AndMatching adds a body matcher.
func (p *RequestPattern) AndMatching(m jsonmatch.Matcher) *RequestPattern {
	p.Matchers = append(p.Matchers, m)
	return p
}

func (p *RequestPattern) criteria() *matching.Criteria {
	return &matching.Criteria{
		Method:  p.Method,
		Path:    p.Path,
		Headers: p.Headers,
		Body:    p.Matchers,
	}
}

// String describes the pattern, e.g. `POST /foo with structural json matcher`.
func (p *RequestPattern) String() string {
	method := p.Method
	if method == "" {
		method = "ANY"
	}
	path := p.Path
	if path == "" {
		path = "*"
	}

	var sb strings.Builder
	sb.WriteString(strings.ToUpper(method))
	sb.WriteByte(' ')
	sb.WriteString(path)

	if len(p.Headers) > 0 {
		names := make([]string, 0, len(p.Headers))
		for name := range p.Headers {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			sb.WriteString(" [")
			sb.WriteString(name)
			sb.WriteString(": ")
			sb.WriteString(p.Headers[name])
			sb.WriteByte(']')
		}
	}

	if len(p.Matchers) > 0 {
		names := make([]string, len(p.Matchers))
		for i, m := range p.Matchers {
			names[i] = m.Name()
		}
		sb.WriteString(" with ")
		sb.WriteString(strings.Join(names, ", "))
	}
	return sb.String()
}
