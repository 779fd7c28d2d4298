package recorder

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/getmockd/jsonmatch/pkg/jsonmatch"
)

type bar struct {
	Name      string    `json:"name"`
	Timestamp time.Time `json:"timestamp"`
}

func post(t *testing.T, url, body string) {
	t.Helper()
	resp, err := http.Post(url, "application/json", strings.NewReader(body))
	require.NoError(t, err)
	_, _ = io.Copy(io.Discard, resp.Body)
	require.NoError(t, resp.Body.Close())
}

func newServer(t *testing.T, opts ...Option) (*Journal, *httptest.Server) {
	t.Helper()
	j := New(opts...)
	srv := httptest.NewServer(j)
	t.Cleanup(srv.Close)
	return j, srv
}

func TestJournal_RecordsRequests(t *testing.T) {
	j, srv := newServer(t)

	post(t, srv.URL+"/foo?x=1", `{"name":"bar"}`)

	require.Equal(t, 1, j.Count())
	e := j.Requests()[0]
	assert.NotEmpty(t, e.ID)
	assert.False(t, e.Timestamp.IsZero())
	assert.Equal(t, http.MethodPost, e.Method)
	assert.Equal(t, "/foo", e.Path)
	assert.Equal(t, "x=1", e.QueryString)
	assert.Equal(t, `{"name":"bar"}`, e.Body)
	assert.Equal(t, 14, e.BodySize)
	assert.Equal(t, []string{"application/json"}, e.Headers["Content-Type"])

	j.Reset()
	assert.Equal(t, 0, j.Count())
	assert.Empty(t, j.Requests())
}

func TestJournal_Response(t *testing.T) {
	_, srv := newServer(t,
		WithStatus(http.StatusAccepted),
		WithResponseBody("application/json", []byte(`{"ok":true}`)),
	)

	resp, err := http.Get(srv.URL + "/anything")
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, http.StatusAccepted, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))
	assert.Equal(t, `{"ok":true}`, string(body))
}

func TestJournal_Limits(t *testing.T) {
	j := New(WithMaxEntries(2), WithMaxBody(4))

	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodPost, fmt.Sprintf("/n/%d", i), strings.NewReader("abcdef"))
		_, err := j.Record(req)
		require.NoError(t, err)
	}

	entries := j.Requests()
	require.Len(t, entries, 2)
	assert.Equal(t, "/n/1", entries[0].Path)
	assert.Equal(t, "/n/2", entries[1].Path)
	assert.Equal(t, "abcd", entries[1].Body)
	assert.Equal(t, 6, entries[1].BodySize)
}

func TestJournal_MaxBodyStillMatchesFullBody(t *testing.T) {
	j := New(WithMaxBody(16))
	body := `{"name":"bar","tags":["a","b"],"count":3}`

	req := httptest.NewRequest(http.MethodPost, "/foo", strings.NewReader(body))
	e, err := j.Record(req)
	require.NoError(t, err)
	assert.Equal(t, body[:16], e.Body)
	assert.Equal(t, len(body), e.BodySize)

	m := jsonmatch.MustNew(body)
	require.NoError(t, j.Verify(PostRequestedFor("/foo").AndMatching(m)))
	assert.Len(t, j.Find(PostRequestedFor("/foo").AndMatching(m)), 1)
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("boom") }

func TestJournal_ReadFailure(t *testing.T) {
	j := New()
	req := httptest.NewRequest(http.MethodPost, "/foo", failingReader{})
	rec := httptest.NewRecorder()

	j.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, 0, j.Count())
}

func TestJournal_Find(t *testing.T) {
	j, srv := newServer(t)
	post(t, srv.URL+"/foo", `{"name":"bar","n":1}`)
	post(t, srv.URL+"/foo", `{"n":1.0,"name":"bar"}`)
	post(t, srv.URL+"/foo", `{"name":"baz","n":1}`)
	post(t, srv.URL+"/other", `{"name":"bar","n":1}`)

	m := jsonmatch.MustNew(`{"name":"bar","n":1}`)

	assert.Len(t, j.Find(PostRequestedFor("/foo").AndMatching(m)), 2)
	assert.Len(t, j.Find(PostRequestedFor("/foo")), 3)
	assert.Len(t, j.Find(AnyRequestedFor("/*").AndMatching(m)), 3)
	assert.Empty(t, j.Find(GetRequestedFor("/foo")))
}

func TestJournal_VerifyMatch(t *testing.T) {
	j, srv := newServer(t)

	ts := time.Date(2024, 9, 7, 14, 4, 39, 465193000, time.UTC)
	body := fmt.Sprintf(`{"name":"bar","timestamp":%q}`, ts.Format(time.RFC3339Nano))
	post(t, srv.URL+"/foo", body)

	m, err := jsonmatch.NewFromValue(bar{Name: "bar", Timestamp: ts})
	require.NoError(t, err)

	require.NoError(t, j.Verify(PostRequestedFor("/foo").AndMatching(m)))
	j.AssertRequested(t, PostRequestedFor("/foo").AndMatching(m))
	j.AssertRequestedTimes(t, PostRequestedFor("/foo"), 1)
	j.AssertNotRequested(t, PutRequestedFor("/foo"))
}

func TestJournal_VerifyTimestampMismatch(t *testing.T) {
	j, srv := newServer(t)

	ts := time.Date(2024, 9, 7, 14, 4, 39, 465193000, time.UTC)
	sent := bar{Name: "bar", Timestamp: ts}
	wanted := bar{Name: "bar", Timestamp: ts.Add(5 * time.Second)}

	post(t, srv.URL+"/foo", fmt.Sprintf(`{"name":%q,"timestamp":%q}`,
		sent.Name, sent.Timestamp.Format(time.RFC3339Nano)))

	m, err := jsonmatch.NewFromValue(wanted)
	require.NoError(t, err)

	err = j.Verify(PostRequestedFor("/foo").AndMatching(m))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotRequested))

	var verr *VerificationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "POST /foo with structural json matcher", verr.Pattern)
	assert.Equal(t, 0, verr.Got)
	assert.Equal(t, 1, verr.Recorded)
	require.NotNil(t, verr.NearMiss)
	require.NotNil(t, verr.Entry)
	assert.Equal(t, verr.Entry.ID, verr.NearMiss.RequestID)
	assert.Equal(t, 50, verr.NearMiss.MatchPercentage)

	failure, ok := verr.BodyFailure()
	require.True(t, ok)
	assert.Equal(t, jsonmatch.DefaultName, failure.Matcher)
	assert.Equal(t, jsonmatch.CategoryNonMatchType, failure.Outcome.Category())
	require.NotNil(t, failure.Outcome.Mismatch)
	assert.Equal(t, "timestamp", failure.Outcome.Mismatch.Path)
	assert.Contains(t, failure.Outcome.Mismatch.Detail, "2024-09-07T14:04:44.465193Z")
	assert.Contains(t, failure.Outcome.Mismatch.Detail, "2024-09-07T14:04:39.465193Z")

	msg := err.Error()
	assert.Contains(t, msg, "no request matched POST /foo")
	assert.Contains(t, msg, "method and path matched, but body structural json matcher [NON_MATCH_TYPE]")
	assert.Contains(t, msg, "field timestamp differs")
	assert.Contains(t, msg, "Diff:")
}

func TestJournal_VerifyParseFailure(t *testing.T) {
	j, srv := newServer(t)
	post(t, srv.URL+"/foo", `name=bar`)

	err := j.Verify(PostRequestedFor("/foo").AndMatching(jsonmatch.MustNew(`{"name":"bar"}`)))

	var verr *VerificationError
	require.True(t, errors.As(err, &verr))
	failure, ok := verr.BodyFailure()
	require.True(t, ok)
	assert.Equal(t, jsonmatch.ParseFailed, failure.Outcome.Kind)
	assert.Contains(t, err.Error(), "[JSON_ERROR]")
}

func TestJournal_VerifyEmpty(t *testing.T) {
	j := New()

	err := j.Verify(PostRequestedFor("/foo"))
	var verr *VerificationError
	require.True(t, errors.As(err, &verr))
	assert.Nil(t, verr.NearMiss)
	assert.Equal(t, "no request matched POST /foo (0 requests recorded)", err.Error())

	_, ok := verr.BodyFailure()
	assert.False(t, ok)
}

func TestJournal_VerifyCount(t *testing.T) {
	j, srv := newServer(t)
	post(t, srv.URL+"/foo", `{}`)
	post(t, srv.URL+"/foo", `{}`)

	assert.NoError(t, j.VerifyCount(PostRequestedFor("/foo"), 2))
	assert.NoError(t, j.VerifyCount(GetRequestedFor("/foo"), 0))

	err := j.VerifyCount(PostRequestedFor("/foo"), 1)
	require.Error(t, err)
	assert.Equal(t, "expected 1 requests matching POST /foo, got 2 (2 requests recorded)", err.Error())
}

func TestJournal_NearMissesRanked(t *testing.T) {
	j, srv := newServer(t)
	post(t, srv.URL+"/other", `{"a":1}`)
	post(t, srv.URL+"/foo", `{"a":2}`)
	post(t, srv.URL+"/foo", `{"a":1}`)

	p := PostRequestedFor("/foo").AndMatching(jsonmatch.MustNew(`{"a":1}`))
	misses := j.NearMisses(p, 5)

	// The body matcher outweighs the path, so the /other request ranks first.
	require.Len(t, misses, 2)
	assert.Equal(t, 70, misses[0].MatchPercentage)
	assert.Equal(t, 50, misses[1].MatchPercentage)
	assert.Equal(t, "/other", j.entry(misses[0].RequestID).Path)
}

type recordingT struct {
	testing.TB
	errors []string
}

func (r *recordingT) Helper() {}

func (r *recordingT) Errorf(format string, args ...any) {
	r.errors = append(r.errors, fmt.Sprintf(format, args...))
}

func TestJournal_AssertFailures(t *testing.T) {
	j, srv := newServer(t)
	post(t, srv.URL+"/foo", `{"a":1}`)

	rt := &recordingT{TB: t}
	j.AssertRequested(rt, PostRequestedFor("/bar"))
	j.AssertRequestedTimes(rt, PostRequestedFor("/foo"), 3)
	j.AssertNotRequested(rt, PostRequestedFor("/foo"))

	require.Len(t, rt.errors, 3)
	assert.Contains(t, rt.errors[0], "no request matched POST /bar")
	assert.Contains(t, rt.errors[1], "expected 3 requests")
	assert.Equal(t, "expected no requests matching POST /foo, got 1", rt.errors[2])
}

func TestJournal_Concurrent(t *testing.T) {
	j := New()
	m := jsonmatch.MustNew(`{"n":1}`)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			req := httptest.NewRequest(http.MethodPost, "/n", bytes.NewReader([]byte(`{"n":1}`)))
			j.ServeHTTP(httptest.NewRecorder(), req)
			_ = j.Find(PostRequestedFor("/n").AndMatching(m))
		}()
	}
	wg.Wait()

	assert.Equal(t, 20, j.Count())
	assert.Len(t, j.Find(PostRequestedFor("/n").AndMatching(m)), 20)
}
