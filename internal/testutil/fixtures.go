// internal/testutil/fixtures.go
package testutil

// Fixture data para tests (valores primitivos solamente, sin dependencias de domain)

// FixtureDomains contiene dominios de prueba válidos.
var FixtureDomains = []string{
	"example.com",
	"test.example.com",
	"subdomain.example.com",
	"acme.co",
	"xn--bcher-kva.example",
}

// FixtureInvalidTargets no son ni dominio ni IP.
var FixtureInvalidTargets = []string{
	"not a domain",
	"-invalid.com",
	"invalid-.com",
	".example.com",
	"example..com",
	"http://example.com",
	"example.com/path",
}

// FixtureIPs contiene IPs de prueba.
var FixtureIPs = []string{
	"192.168.1.1",
	"10.0.0.1",
	"8.8.8.8",
	"2001:db8::1",
}

// FixtureURLs contiene URLs de prueba.
var FixtureURLs = []string{
	"https://example.com",
	"https://example.com/path",
	"https://subdomain.example.com/api/v1",
	"http://test.example.com:8080",
}

// FixtureCrtshPayload reproduce la forma de una respuesta de crt.sh.
const FixtureCrtshPayload = `[
  {"name_value": "*.example.com", "not_before": "2023-01-01T00:00:00", "not_after": "2024-01-01T00:00:00"},
  {"name_value": "foo.example.com\nbar.example.com", "not_before": "2023-02-01T10:20:30", "not_after": "bogus"},
  {"name_value": "example.com", "not_before": "", "not_after": ""},
  {"name_value": "bar.evil.com", "not_before": "2023-01-01T00:00:00", "not_after": "2024-01-01T00:00:00"}
]`

// FixtureCDXPayload reproduce una tabla CDX con cabecera en orden no estándar.
const FixtureCDXPayload = `[
  ["urlkey", "timestamp", "original", "mimetype", "statuscode", "digest", "length"],
  ["com,example)/b", "20230615120000", "https://example.com/b", "text/html", "200", "X", "1"],
  ["com,example)/a", "20220101000000", "https://example.com/a", "text/html", "-", "Y", "2"],
  ["com,example)/bad", "2023", "not a url", "text/html", "404", "Z", "3"]
]`
