package recorder

import "testing"

// AssertRequested fails the test unless at least one entry satisfies the
// pattern. The failure message carries the closest near miss.
func (j *Journal) AssertRequested(t testing.TB, p *RequestPattern) {
	t.Helper()

	if err := j.Verify(p); err != nil {
		t.Errorf("%v", err)
	}
}

// AssertRequestedTimes fails the test unless exactly n entries satisfy the
// pattern.
func (j *Journal) AssertRequestedTimes(t testing.TB, p *RequestPattern, n int) {
	t.Helper()

	if err := j.VerifyCount(p, n); err != nil {
		t.Errorf("%v", err)
	}
}

// AssertNotRequested fails the test if any entry satisfies the pattern.
func (j *Journal) AssertNotRequested(t testing.TB, p *RequestPattern) {
	t.Helper()

	if found := j.Find(p); len(found) > 0 {
		t.Errorf("expected no requests matching %s, got %d", p, len(found))
	}
}
