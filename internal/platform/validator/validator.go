// internal/platform/validator/validator.go
package validator

import (
	"net"
	"net/url"
	"regexp"
	"strings"
)

// Labels LDH de hasta 63 caracteres; la IDN debe llegar ya en punycode.
var domainRegex = regexp.MustCompile(`^([a-z0-9]([a-z0-9\-]{0,61}[a-z0-9])?\.)*[a-z0-9]([a-z0-9\-]{0,61}[a-z0-9])?$`)

// Domain validators

// IsDomain verifica si un string es un dominio sintácticamente válido.
// Las IPs literales no cuentan como dominio.
func IsDomain(domain string) bool {
	if len(domain) == 0 || len(domain) > 253 {
		return false
	}
	if !domainRegex.MatchString(strings.ToLower(domain)) {
		return false
	}
	return net.ParseIP(domain) == nil
}

// NormalizeDomain devuelve el nombre en minúsculas, sin espacios ni punto final.
func NormalizeDomain(domain string) string {
	domain = strings.ToLower(strings.TrimSpace(domain))
	return strings.TrimSuffix(domain, ".")
}

// StripWildcard quita un prefijo "*." de un nombre de certificado.
func StripWildcard(name string) string {
	return strings.TrimPrefix(name, "*.")
}

// Network validators

// IsIP verifica si un string es una dirección IP válida (v4 o v6).
func IsIP(ip string) bool {
	return net.ParseIP(strings.TrimSpace(ip)) != nil
}

// NormalizeIP devuelve la forma canónica de una IP.
// Si no parsea, devuelve el valor recortado para no perder el dato.
func NormalizeIP(ip string) string {
	ip = strings.TrimSpace(ip)
	if parsed := net.ParseIP(ip); parsed != nil {
		return parsed.String()
	}
	return strings.ToLower(ip)
}

// IsPort acepta el rango completo de un uint16.
func IsPort(port int) bool {
	return port >= 0 && port <= 65535
}

// URL validators

// IsURL verifica si un string es una URL absoluta (con scheme y host).
func IsURL(urlStr string) bool {
	if len(urlStr) == 0 || strings.ContainsAny(urlStr, " \t\r\n") {
		return false
	}
	parsed, err := url.Parse(urlStr)
	if err != nil {
		return false
	}
	return parsed.Scheme != "" && parsed.Host != ""
}
