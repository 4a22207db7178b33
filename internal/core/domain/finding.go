// internal/core/domain/finding.go
package domain

import (
	"fmt"
	"strings"
	"time"

	"passivemap/internal/platform/validator"
)

// Subdomain es un nombre descubierto bajo el target.
type Subdomain struct {
	Name      string     `json:"name"`
	IP        *string    `json:"ip"`
	FirstSeen *time.Time `json:"first_seen"`
	LastSeen  *time.Time `json:"last_seen"`
	Source    string     `json:"source"`
}

// Key es la clave de dedup entre fuentes: el nombre normalizado.
func (s Subdomain) Key() string {
	return validator.NormalizeDomain(s.Name)
}

// Clone copia también los campos opcionales.
func (s Subdomain) Clone() Subdomain {
	s.IP = cloneString(s.IP)
	s.FirstSeen = cloneTime(s.FirstSeen)
	s.LastSeen = cloneTime(s.LastSeen)
	return s
}

// Service es un puerto expuesto en una IP.
type Service struct {
	IP      string  `json:"ip"`
	Port    uint16  `json:"port"`
	Service string  `json:"service"`
	Banner  *string `json:"banner"`
	Source  string  `json:"source"`
}

// Key combina ip, puerto y etiqueta.
func (s Service) Key() string {
	return fmt.Sprintf("%s|%d|%s", validator.NormalizeIP(s.IP), s.Port, s.Service)
}

func (s Service) Clone() Service {
	s.Banner = cloneString(s.Banner)
	return s
}

// ServiceLabel deriva la etiqueta de un servicio: "producto versión",
// producto, transporte o "unknown", en ese orden.
func ServiceLabel(product, version, transport string) string {
	product = strings.TrimSpace(product)
	version = strings.TrimSpace(version)
	transport = strings.TrimSpace(transport)

	switch {
	case product != "" && version != "":
		return product + " " + version
	case product != "":
		return product
	case transport != "":
		return transport
	default:
		return "unknown"
	}
}

// URLRecord es una URL histórica observada para el target.
type URLRecord struct {
	URL        string     `json:"url"`
	StatusCode *uint16    `json:"status_code"`
	FirstSeen  *time.Time `json:"first_seen"`
	LastSeen   *time.Time `json:"last_seen"`
	Source     string     `json:"source"`
}

func (u URLRecord) Clone() URLRecord {
	if u.StatusCode != nil {
		code := *u.StatusCode
		u.StatusCode = &code
	}
	u.FirstSeen = cloneTime(u.FirstSeen)
	u.LastSeen = cloneTime(u.LastSeen)
	return u
}

// Dork es una consulta de buscador generada para el target.
// Results queda sin fijar al generarse.
type Dork struct {
	Query       string `json:"query"`
	Description string `json:"description"`
	Results     *int   `json:"results"`
	Category    string `json:"category"`
	Source      string `json:"source"`
}

func (d Dork) Clone() Dork {
	if d.Results != nil {
		n := *d.Results
		d.Results = &n
	}
	return d
}

// StringPtr y TimePtr ayudan a construir campos opcionales.
func StringPtr(s string) *string { return &s }

func TimePtr(t time.Time) *time.Time { return &t }

func cloneString(p *string) *string {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func cloneTime(p *time.Time) *time.Time {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
