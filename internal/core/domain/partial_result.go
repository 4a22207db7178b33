// internal/core/domain/partial_result.go
package domain

// PartialResult es la salida de una única fuente para un escaneo.
// Se consume en el merge y no se conserva.
type PartialResult struct {
	Source     string
	Subdomains []Subdomain
	IPs        []string
	Services   []Service
	URLs       []URLRecord
	Dorks      []Dork

	// Warnings recoge degradaciones que no son error (credencial ausente, subconsulta fallida)
	Warnings []string
}

// NewPartialResult crea un resultado vacío atribuido a source.
func NewPartialResult(source string) *PartialResult {
	return &PartialResult{
		Source:     source,
		Subdomains: []Subdomain{},
		IPs:        []string{},
		Services:   []Service{},
		URLs:       []URLRecord{},
		Dorks:      []Dork{},
		Warnings:   []string{},
	}
}

func (p *PartialResult) AddWarning(msg string) {
	p.Warnings = append(p.Warnings, msg)
}

// Count devuelve el total de hallazgos de todas las categorías.
func (p *PartialResult) Count() int {
	if p == nil {
		return 0
	}
	return len(p.Subdomains) + len(p.IPs) + len(p.Services) + len(p.URLs) + len(p.Dorks)
}

func (p *PartialResult) IsEmpty() bool {
	return p.Count() == 0
}
