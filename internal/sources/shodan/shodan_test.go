// internal/sources/shodan/shodan_test.go
package shodan

import (
	"context"
	"fmt"
	"net/http"
	"sort"
	"strings"
	"testing"

	"passivemap/internal/core/domain"
	"passivemap/internal/platform/logx"
	"passivemap/internal/testutil"
)

func newTestSource(t *testing.T, baseURL, key string, maxHosts int) *Source {
	t.Helper()
	src, err := New(Options{APIKey: key, BaseURL: baseURL, MaxHosts: maxHosts}, logx.NewNop())
	testutil.AssertNoError(t, err, "new")
	return src
}

func mustTarget(t *testing.T, raw string) domain.Target {
	t.Helper()
	target, err := domain.NewTarget(raw)
	testutil.AssertNoError(t, err, "target")
	return target
}

// shodanAPI simula /shodan/host/search y /shodan/host/{ip}.
func shodanAPI(search func(query string) (int, any), host func(ip string) (int, any)) func(r *http.Request) (int, any) {
	return func(r *http.Request) (int, any) {
		if r.URL.Query().Get("key") != "test-key" {
			return http.StatusUnauthorized, `{"error":"invalid key"}`
		}
		if r.URL.Path == endpointHostSearch {
			return search(r.URL.Query().Get("query"))
		}
		if ip, ok := strings.CutPrefix(r.URL.Path, endpointHostInfo); ok {
			return host(ip)
		}
		return http.StatusNotFound, nil
	}
}

func TestScan_MissingAPIKeyDegrades(t *testing.T) {
	srv := testutil.NewJSONServer(t, func(r *http.Request) (int, any) { return http.StatusOK, `{}` })

	result, err := newTestSource(t, srv.URL, "  ", 0).Scan(context.Background(), mustTarget(t, "example.com"))

	testutil.AssertNoError(t, err, "missing key is not an error")
	testutil.AssertTrue(t, result.IsEmpty(), "no findings")
	testutil.AssertLen(t, result.Warnings, 1, "one warning")
	testutil.AssertLen(t, srv.Requests(), 0, "no upstream calls without a key")
}

func TestSearchQueries(t *testing.T) {
	testutil.AssertEqual(t, searchQueries(mustTarget(t, "example.com")), []string{
		"hostname:example.com",
		"hostname:example.com port:80,443,8080,8443",
		"hostname:example.com has:web",
	}, "domain queries")

	testutil.AssertEqual(t, searchQueries(mustTarget(t, "93.184.216.34"))[0], "ip:93.184.216.34", "ip query")
}

func TestScan_MergesSearchAndDetails(t *testing.T) {
	search := func(query string) (int, any) {
		if query != "hostname:example.com" {
			return http.StatusOK, searchResponse{Total: 1, Matches: []match{
				{IPStr: "1.1.1.1", Port: 443, Product: "nginx", Hostnames: []string{"www.example.com"}},
			}}
		}
		return http.StatusOK, searchResponse{Total: 2, Matches: []match{
			{IPStr: "1.1.1.1", Port: 80, Product: "nginx", Version: "1.25", Data: "HTTP/1.1 200 OK", Hostnames: []string{"WWW.example.com", "example.com"}},
			{IPStr: "2.2.2.2", Port: 22, Transport: "tcp", Hostnames: []string{"mail.example.com"}},
			{IPStr: "3.3.3.3", Port: 70000, Product: "bogus"},
		}}
	}
	host := func(ip string) (int, any) {
		switch ip {
		case "2.2.2.2":
			return http.StatusNotFound, `{"error":"no information"}`
		case "3.3.3.3":
			return http.StatusOK, hostResponse{IPStr: ip}
		}
		return http.StatusOK, hostResponse{IPStr: ip, Hostnames: []string{"api.example.com"}, Data: []serviceDetail{
			{Port: 80, Product: "nginx", Version: "1.25", Data: "HTTP/1.1 200 OK\r\nServer: nginx"},
			{Port: 8443},
		}}
	}
	srv := testutil.NewJSONServer(t, shodanAPI(search, host))

	result, err := newTestSource(t, srv.URL, "test-key", 0).Scan(context.Background(), mustTarget(t, "example.com"))
	testutil.AssertNoError(t, err, "scan")

	testutil.AssertEqual(t, result.IPs, []string{"1.1.1.1", "2.2.2.2", "3.3.3.3"}, "distinct ips in first-seen order")

	labels := make([]string, 0, len(result.Services))
	for _, svc := range result.Services {
		labels = append(labels, fmt.Sprintf("%s:%d %s", svc.IP, svc.Port, svc.Service))
	}
	testutil.AssertEqual(t, labels, []string{
		"1.1.1.1:80 nginx 1.25",
		"1.1.1.1:8443 unknown",
		"2.2.2.2:22 tcp",
		"1.1.1.1:443 nginx",
	}, "details first, then search matches, deduplicated")
	testutil.AssertEqual(t, *result.Services[0].Banner, "HTTP/1.1 200 OK\r\nServer: nginx", "detail banner wins")
	testutil.AssertNil(t, result.Services[1].Banner, "empty banner is absent")

	names := make([]string, 0, len(result.Subdomains))
	for _, sub := range result.Subdomains {
		names = append(names, sub.Name+"@"+*sub.IP)
	}
	sort.Strings(names)
	testutil.AssertEqual(t, names, []string{
		"api.example.com@1.1.1.1",
		"mail.example.com@2.2.2.2",
		"www.example.com@1.1.1.1",
	}, "hostnames become subdomains; the target itself is excluded")

	testutil.AssertLen(t, result.Warnings, 1, "failed detail produces a warning")
	for _, w := range result.Warnings {
		testutil.AssertFalse(t, strings.Contains(w, "test-key"), "api key never appears in warnings")
	}
}

func TestScan_EnrichesAtMostMaxHosts(t *testing.T) {
	var matches []match
	for i := 1; i <= 5; i++ {
		matches = append(matches, match{IPStr: fmt.Sprintf("10.0.0.%d", i), Port: 80})
	}
	srv := testutil.NewJSONServer(t, shodanAPI(
		func(string) (int, any) { return http.StatusOK, searchResponse{Matches: matches} },
		func(ip string) (int, any) { return http.StatusOK, hostResponse{IPStr: ip} },
	))

	result, err := newTestSource(t, srv.URL, "test-key", 2).Scan(context.Background(), mustTarget(t, "example.com"))
	testutil.AssertNoError(t, err, "scan")
	testutil.AssertLen(t, result.IPs, 5, "all ips reported")

	var detailed []string
	for _, r := range srv.Requests() {
		if ip, ok := strings.CutPrefix(r.URL.Path, endpointHostInfo); ok {
			detailed = append(detailed, ip)
		}
	}
	sort.Strings(detailed)
	testutil.AssertEqual(t, detailed, []string{"10.0.0.1", "10.0.0.2"}, "first two distinct ips enriched")
}

func TestScan_AllSearchesFail(t *testing.T) {
	srv := testutil.NewJSONServer(t, func(r *http.Request) (int, any) { return http.StatusUnauthorized, nil })

	result, err := newTestSource(t, srv.URL, "wrong-key", 0).Scan(context.Background(), mustTarget(t, "example.com"))

	testutil.AssertNoError(t, err, "upstream failures are not errors")
	testutil.AssertTrue(t, result.IsEmpty(), "empty contribution")
	testutil.AssertLen(t, result.Warnings, 3, "one warning per search")
	for _, w := range result.Warnings {
		testutil.AssertFalse(t, strings.Contains(w, "wrong-key"), "api key redacted")
	}
}

func TestNewService(t *testing.T) {
	svc, ok := newService(" 1.1.1.1 ", 65535, "", "", "", "")
	testutil.AssertTrue(t, ok, "upper bound accepted")
	testutil.AssertEqual(t, svc.Service, "unknown", "fallback label")
	testutil.AssertNil(t, svc.Banner, "no banner")

	_, ok = newService("1.1.1.1", 65536, "x", "", "", "")
	testutil.AssertFalse(t, ok, "out of range port skipped")

	_, ok = newService("", 80, "x", "", "", "")
	testutil.AssertFalse(t, ok, "empty ip skipped")
}

func TestScan_KeepsEveryMatchPerIP(t *testing.T) {
	search := func(query string) (int, any) {
		if query != "hostname:example.com" {
			return http.StatusOK, searchResponse{}
		}
		return http.StatusOK, searchResponse{Total: 3, Matches: []match{
			{IPStr: "1.1.1.1", Port: 80, Product: "nginx"},
			{IPStr: "1.1.1.1", Port: 443, Product: "nginx"},
			{IPStr: "1.1.1.1", Port: 22, Product: "OpenSSH"},
		}}
	}
	host := func(string) (int, any) { return http.StatusNotFound, `{"error":"no information"}` }
	srv := testutil.NewJSONServer(t, shodanAPI(search, host))

	result, err := newTestSource(t, srv.URL, "test-key", 0).Scan(context.Background(), mustTarget(t, "example.com"))
	testutil.AssertNoError(t, err, "scan")

	testutil.AssertEqual(t, result.IPs, []string{"1.1.1.1"}, "one ip")
	ports := make([]uint16, 0, len(result.Services))
	for _, svc := range result.Services {
		ports = append(ports, svc.Port)
	}
	testutil.AssertEqual(t, ports, []uint16{80, 443, 22}, "every match on the same ip becomes a service")
}
