// internal/sources/wayback/wayback_test.go
package wayback

import (
	"context"
	"net/http"
	"testing"
	"time"

	"passivemap/internal/core/domain"
	"passivemap/internal/platform/errors"
	"passivemap/internal/platform/logx"
	"passivemap/internal/testutil"
)

func newTestWayback(t *testing.T, baseURL string) *Wayback {
	t.Helper()
	w, err := New(Options{BaseURL: baseURL, Timeout: 2 * time.Second}, logx.NewNop())
	testutil.AssertNoError(t, err, "new")
	return w
}

func mustTarget(t *testing.T, raw string) domain.Target {
	t.Helper()
	target, err := domain.NewTarget(raw)
	testutil.AssertNoError(t, err, "target")
	return target
}

func TestScan_ParsesCDXTable(t *testing.T) {
	srv := testutil.NewJSONServer(t, func(r *http.Request) (int, any) {
		return http.StatusOK, testutil.FixtureCDXPayload
	})

	result, err := newTestWayback(t, srv.URL).Scan(context.Background(), mustTarget(t, "example.com"))
	testutil.AssertNoError(t, err, "scan")
	testutil.AssertLen(t, result.URLs, 2, "invalid url dropped")

	a, b := result.URLs[0], result.URLs[1]
	testutil.AssertEqual(t, a.URL, "https://example.com/a", "sorted by url")
	testutil.AssertNil(t, a.StatusCode, "dash status is absent")
	testutil.AssertEqual(t, *a.FirstSeen, time.Date(2022, 1, 1, 0, 0, 0, 0, time.UTC), "timestamp parsed")
	testutil.AssertEqual(t, *a.LastSeen, *a.FirstSeen, "first seen equals last seen")

	testutil.AssertEqual(t, b.URL, "https://example.com/b", "second url")
	testutil.AssertEqual(t, *b.StatusCode, uint16(200), "status parsed")
	testutil.AssertEqual(t, b.Source, "wayback", "provenance")

	reqs := srv.Requests()
	testutil.AssertLen(t, reqs, 1, "single request")
	q := reqs[0].URL.Query()
	testutil.AssertEqual(t, reqs[0].URL.Path, "/cdx/search/cdx", "endpoint")
	testutil.AssertEqual(t, q.Get("url"), "*.example.com", "url pattern")
	testutil.AssertEqual(t, q.Get("output"), "json", "output")
	testutil.AssertEqual(t, q.Get("collapse"), "urlkey", "collapse")
	testutil.AssertEqual(t, q.Get("limit"), "500", "limit")
}

func TestScan_DegradesToEmpty(t *testing.T) {
	tests := []struct {
		name         string
		status       int
		body         string
		wantWarnings int
	}{
		{"non-2xx", http.StatusServiceUnavailable, `[]`, 1},
		{"malformed", http.StatusOK, `{"oops": true}`, 1},
		{"empty table", http.StatusOK, `[]`, 0},
		{"header only", http.StatusOK, `[["urlkey","timestamp","original"]]`, 0},
		{"missing original column", http.StatusOK, `[["urlkey","timestamp"],["k","20230101000000"]]`, 1},
		{"missing timestamp column", http.StatusOK, `[["original"],["https://example.com/"]]`, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := testutil.NewJSONServer(t, func(r *http.Request) (int, any) { return tt.status, tt.body })

			result, err := newTestWayback(t, srv.URL).Scan(context.Background(), mustTarget(t, "example.com"))

			testutil.AssertNoError(t, err, "never an error")
			testutil.AssertTrue(t, result.IsEmpty(), "empty contribution")
			testutil.AssertLen(t, result.Warnings, tt.wantWarnings, "warnings")
		})
	}
}

func TestRecordsFrom(t *testing.T) {
	w := newTestWayback(t, "http://unused")

	t.Run("status column optional", func(t *testing.T) {
		recs, err := w.recordsFrom([][]string{
			{"original", "timestamp"},
			{"https://example.com/x", "20230101000000"},
		})
		testutil.AssertNoError(t, err, "no status column is fine")
		testutil.AssertLen(t, recs, 1, "kept")
		testutil.AssertNil(t, recs[0].StatusCode, "absent status")
	})

	t.Run("short rows skipped", func(t *testing.T) {
		recs, err := w.recordsFrom([][]string{
			{"timestamp", "statuscode", "original"},
			{"20230101000000", "200"},
			{"20230101000000", "200", "https://example.com/ok"},
		})
		testutil.AssertNoError(t, err, "parse")
		testutil.AssertLen(t, recs, 1, "short row dropped")
	})

	t.Run("identical records collapse", func(t *testing.T) {
		recs, err := w.recordsFrom([][]string{
			{"original", "timestamp", "statuscode"},
			{"https://example.com/z", "20230101000000", "301"},
			{"https://example.com/z", "20230101000000", "301"},
			{"https://example.com/z", "20230101000000", "200"},
		})
		testutil.AssertNoError(t, err, "parse")
		testutil.AssertLen(t, recs, 2, "distinct status keeps both")
		testutil.AssertEqual(t, *recs[0].StatusCode, uint16(200), "sorted by status")
	})

	t.Run("missing column is malformed", func(t *testing.T) {
		_, err := w.recordsFrom([][]string{{"urlkey"}, {"x"}})
		testutil.AssertTrue(t, errors.IsUpstreamMalformed(err), "malformed")
	})
}

func TestParseStatus(t *testing.T) {
	testutil.AssertEqual(t, *parseStatus("404"), uint16(404), "numeric")
	testutil.AssertEqual(t, *parseStatus("0"), uint16(0), "zero")
	for _, bad := range []string{"-", "", "65536", "-1", "2xx", " 200"} {
		testutil.AssertNil(t, parseStatus(bad), bad)
	}
}

func TestParseCDXTimestamp(t *testing.T) {
	got := parseCDXTimestamp("20230615120000")
	testutil.AssertNotNil(t, got, "valid")
	testutil.AssertEqual(t, *got, time.Date(2023, 6, 15, 12, 0, 0, 0, time.UTC), "UTC")

	for _, bad := range []string{"2023", "202306151200000", "2023061512000a", "20231345120000", "+0230615120000"} {
		testutil.AssertNil(t, parseCDXTimestamp(bad), bad)
	}
}

func TestURLPattern(t *testing.T) {
	testutil.AssertEqual(t, urlPattern(mustTarget(t, "example.com")), "*.example.com", "domain wildcard")
	testutil.AssertEqual(t, urlPattern(mustTarget(t, "8.8.8.8")), "8.8.8.8/*", "ip prefix")
}
