// internal/core/domain/aggregate.go
package domain

import "time"

// AggregateResult es el documento final de una agregación.
// Todas las listas se serializan como [] aunque estén vacías.
type AggregateResult struct {
	ID         string         `json:"id"`
	Target     string         `json:"target"`
	Timestamp  time.Time      `json:"timestamp"`
	Subdomains []Subdomain    `json:"subdomains"`
	IPs        []string       `json:"ips"`
	Services   []Service      `json:"services"`
	URLs       []URLRecord    `json:"urls"`
	Dorks      []Dork         `json:"dorks"`
	Sources    []SourceReport `json:"sources"`
}

// SourceReport resume el desenlace de una fuente.
type SourceReport struct {
	Name       string       `json:"name"`
	Status     SourceStatus `json:"status"`
	Findings   int          `json:"findings"`
	DurationMS int64        `json:"duration_ms"`
	Error      string       `json:"error,omitempty"`
	Warnings   []string     `json:"warnings,omitempty"`
}

// NewAggregateResult crea un documento vacío para target.
func NewAggregateResult(target string) *AggregateResult {
	return &AggregateResult{
		Target:     target,
		Subdomains: []Subdomain{},
		IPs:        []string{},
		Services:   []Service{},
		URLs:       []URLRecord{},
		Dorks:      []Dork{},
		Sources:    []SourceReport{},
	}
}

// Counts devuelve el número de hallazgos por categoría.
func (r *AggregateResult) Counts() map[Category]int {
	return map[Category]int{
		CategorySubdomains: len(r.Subdomains),
		CategoryIPs:        len(r.IPs),
		CategoryServices:   len(r.Services),
		CategoryURLs:       len(r.URLs),
		CategoryDorks:      len(r.Dorks),
	}
}

// TotalFindings suma todas las categorías.
func (r *AggregateResult) TotalFindings() int {
	total := 0
	for _, n := range r.Counts() {
		total += n
	}
	return total
}

// FailedSources lista las fuentes que no aportaron por error.
func (r *AggregateResult) FailedSources() []string {
	var out []string
	for _, s := range r.Sources {
		if s.Status == SourceStatusFailed {
			out = append(out, s.Name)
		}
	}
	return out
}
