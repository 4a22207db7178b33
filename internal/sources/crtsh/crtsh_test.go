// internal/sources/crtsh/crtsh_test.go
package crtsh

import (
	"context"
	"net/http"
	"sort"
	"testing"
	"time"

	"passivemap/internal/core/domain"
	"passivemap/internal/platform/errors"
	"passivemap/internal/platform/logx"
	"passivemap/internal/testutil"
)

func newTestCRT(t *testing.T, baseURL string) *CRT {
	t.Helper()
	crt, err := New(Options{BaseURL: baseURL, Timeout: 2 * time.Second}, logx.NewNop())
	testutil.AssertNoError(t, err, "new")
	return crt
}

func mustTarget(t *testing.T, raw string) domain.Target {
	t.Helper()
	target, err := domain.NewTarget(raw)
	testutil.AssertNoError(t, err, "target")
	return target
}

func names(subs []domain.Subdomain) []string {
	out := make([]string, 0, len(subs))
	for _, s := range subs {
		out = append(out, s.Name)
	}
	sort.Strings(out)
	return out
}

func TestNew(t *testing.T) {
	crt, err := New(Options{}, logx.NewNop())
	testutil.AssertNoError(t, err, "defaults")
	testutil.AssertEqual(t, crt.Name(), "crtsh", "name")
	testutil.AssertEqual(t, crt.Type(), domain.SourceTypeAPI, "type")
	testutil.AssertEqual(t, crt.baseURL, defaultBaseURL, "default base url")

	_, err = New(Options{ProxyURL: "::bad"}, logx.NewNop())
	testutil.AssertTrue(t, errors.IsInternalFault(err), "bad proxy is a local fault")
}

func TestScan_AcceptanceScenario(t *testing.T) {
	payload := `[
		{"name_value": "*.example.com"},
		{"name_value": "foo.example.com"},
		{"name_value": "example.com"},
		{"name_value": "bar.evil.com"}
	]`
	srv := testutil.NewJSONServer(t, func(r *http.Request) (int, any) {
		if r.URL.Query().Get("q") == "%.example.com" {
			return http.StatusOK, payload
		}
		return http.StatusOK, `[]`
	})

	result, err := newTestCRT(t, srv.URL).Scan(context.Background(), mustTarget(t, "example.com"))

	testutil.AssertNoError(t, err, "scan")
	testutil.AssertEqual(t, names(result.Subdomains), []string{"example.com", "foo.example.com"}, "accepted subdomains")
	testutil.AssertLen(t, result.Subdomains, 2, "wildcard collapses into the apex")
}

func TestScan_IssuesThreeQueryVariants(t *testing.T) {
	srv := testutil.NewJSONServer(t, func(r *http.Request) (int, any) { return http.StatusOK, `[]` })

	_, err := newTestCRT(t, srv.URL).Scan(context.Background(), mustTarget(t, "example.com"))
	testutil.AssertNoError(t, err, "scan")

	var raw []string
	for _, r := range srv.Requests() {
		raw = append(raw, r.URL.RawQuery)
		testutil.AssertEqual(t, r.URL.Query().Get("output"), "json", "json output requested")
	}
	sort.Strings(raw)
	testutil.AssertEqual(t, raw, []string{
		"q=%25.%25.example.com&output=json",
		"q=%25.example.com&output=json",
		"q=%25.example.com&output=json",
	}, "wildcard is encoded exactly once on the wire")

	got := srv.Queries("q")
	sort.Strings(got)
	testutil.AssertEqual(t, got, []string{"%.%.example.com", "%.example.com", "%.example.com"}, "every variant decodes to a wildcard pattern")
}

func TestScan_MultiNameRecordsAndTimestamps(t *testing.T) {
	srv := testutil.NewJSONServer(t, func(r *http.Request) (int, any) {
		return http.StatusOK, testutil.FixtureCrtshPayload
	})

	result, err := newTestCRT(t, srv.URL).Scan(context.Background(), mustTarget(t, "example.com"))
	testutil.AssertNoError(t, err, "scan")
	testutil.AssertEqual(t, names(result.Subdomains), []string{"bar.example.com", "example.com", "foo.example.com"}, "newline separated names split")

	byName := map[string]domain.Subdomain{}
	for _, s := range result.Subdomains {
		byName[s.Name] = s
		testutil.AssertEqual(t, s.Source, "crtsh", "provenance")
	}

	apex := byName["example.com"]
	testutil.AssertEqual(t, *apex.FirstSeen, time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC), "first record wins for the apex")
	testutil.AssertEqual(t, *apex.LastSeen, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), "not_after parsed")

	foo := byName["foo.example.com"]
	testutil.AssertEqual(t, *foo.FirstSeen, time.Date(2023, 2, 1, 10, 20, 30, 0, time.UTC), "not_before parsed as UTC")
	testutil.AssertNil(t, foo.LastSeen, "unparsable not_after becomes absent")
}

func TestScan_PartialFailureDegrades(t *testing.T) {
	srv := testutil.NewJSONServer(t, func(r *http.Request) (int, any) {
		if r.URL.Query().Get("q") == "%.%.example.com" {
			return http.StatusOK, `<html>not json</html>`
		}
		return http.StatusOK, `[{"name_value": "a.example.com"}]`
	})

	result, err := newTestCRT(t, srv.URL).Scan(context.Background(), mustTarget(t, "example.com"))

	testutil.AssertNoError(t, err, "upstream failures never surface as errors")
	testutil.AssertEqual(t, names(result.Subdomains), []string{"a.example.com"}, "surviving queries kept")
	testutil.AssertLen(t, result.Warnings, 1, "one warning per failed query")
}

func TestScan_AllQueriesFail(t *testing.T) {
	srv := testutil.NewJSONServer(t, func(r *http.Request) (int, any) { return http.StatusServiceUnavailable, nil })

	result, err := newTestCRT(t, srv.URL).Scan(context.Background(), mustTarget(t, "example.com"))

	testutil.AssertNoError(t, err, "no error")
	testutil.AssertTrue(t, result.IsEmpty(), "empty contribution")
}

func TestAcceptName(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{"example.com", true},
		{"foo.example.com", true},
		{"a.b.example.com", true},
		{"notexample.com", false},
		{"example.com.evil.com", false},
		{"bar.evil.com", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			testutil.AssertEqual(t, acceptName(tt.name, "example.com"), tt.want, "acceptance")
		})
	}
}

func TestParseTimestamp(t *testing.T) {
	got := parseTimestamp("2023-06-15T12:00:00")
	testutil.AssertNotNil(t, got, "valid timestamp")
	testutil.AssertEqual(t, *got, time.Date(2023, 6, 15, 12, 0, 0, 0, time.UTC), "UTC instant")

	for _, bad := range []string{"", "2023-06-15", "2023-06-15 12:00:00", "20230615120000", "2023-13-01T00:00:00"} {
		testutil.AssertNil(t, parseTimestamp(bad), bad)
	}
}
