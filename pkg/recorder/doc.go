// Package recorder provides an HTTP request journal that can be verified
// against body matchers.
//
// A Journal is an http.Handler. It records every request it receives and
// answers with a fixed response. Tests point the code under test at the
// journal, then verify that a matching request arrived:
//
//	journal := recorder.New()
//	srv := httptest.NewServer(journal)
//	defer srv.Close()
//
//	// ... exercise code that POSTs to srv.URL + "/foo" ...
//
//	journal.AssertRequested(t, recorder.PostRequestedFor("/foo").
//	    AndMatching(jsonmatch.MustNew(`{"name":"bar"}`)))
//
// # Verification Failures
//
// When no recorded request satisfies a pattern, Verify returns a
// *VerificationError describing the closest near miss: the request that
// satisfied the most criteria, which body matcher rejected it, the outcome
// category (JSON_ERROR or NON_MATCH_TYPE) and the structural diff.
package recorder
