// internal/core/domain/enums.go
package domain

// TargetKind distingue dominios de IPs literales.
type TargetKind string

const (
	TargetKindDomain TargetKind = "domain"
	TargetKindIP     TargetKind = "ip"
)

// SourceType clasifica fuentes por su tipo de implementación.
type SourceType string

const (
	// SourceTypeAPI fuentes que consumen APIs HTTP/REST
	SourceTypeAPI SourceType = "api"

	// SourceTypeBuiltin fuentes puramente computacionales, sin red
	SourceTypeBuiltin SourceType = "builtin"
)

// IsValid verifica si el tipo de fuente es válido.
func (t SourceType) IsValid() bool {
	switch t {
	case SourceTypeAPI, SourceTypeBuiltin:
		return true
	default:
		return false
	}
}

func (t SourceType) String() string {
	return string(t)
}

// Category es una de las cinco familias de hallazgos.
type Category string

const (
	CategorySubdomains Category = "subdomains"
	CategoryIPs        Category = "ips"
	CategoryServices   Category = "services"
	CategoryURLs       Category = "urls"
	CategoryDorks      Category = "dorks"
)

// AllCategories en el orden en que aparecen en el documento final.
func AllCategories() []Category {
	return []Category{CategorySubdomains, CategoryIPs, CategoryServices, CategoryURLs, CategoryDorks}
}

// SourceStatus es el desenlace de una fuente dentro de una agregación.
type SourceStatus string

const (
	SourceStatusOK     SourceStatus = "ok"
	SourceStatusFailed SourceStatus = "failed"
)
