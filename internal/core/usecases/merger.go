// internal/core/usecases/merger.go
package usecases

import (
	"sort"

	"passivemap/internal/core/domain"
	"passivemap/internal/platform/validator"
)

// Merger combina los resultados parciales de una invocación en un único
// documento. Es una función pura de los outcomes y de su orden.
type Merger struct{}

// NewMerger crea una nueva instancia del servicio.
func NewMerger() *Merger {
	return &Merger{}
}

// Merge concatena cada categoría en orden de invocación y deduplica:
//   - subdominios por nombre normalizado; la primera aparición se queda
//     entera, con su fuente, y los duplicados se descartan
//   - IPs por valor normalizado
//   - servicios por (ip, puerto, etiqueta), gana el primero
//   - URLs y dorks por cadena exacta, gana el primero
//
// Un outcome fallido no aporta nada, igual que uno vacío.
func (m *Merger) Merge(target string, outcomes []Outcome) *domain.AggregateResult {
	result := domain.NewAggregateResult(target)

	var (
		subSeen  = make(map[string]struct{})
		ipSeen   = make(map[string]struct{})
		svcSeen  = make(map[string]struct{})
		urlSeen  = make(map[string]struct{})
		dorkSeen = make(map[string]struct{})
	)

	for _, o := range outcomes {
		result.Sources = append(result.Sources, sourceReport(o))
		if o.Failed() || o.Result == nil {
			continue
		}
		p := o.Result

		for _, s := range p.Subdomains {
			s = s.Clone()
			s.Name = s.Key()
			if s.Name == "" {
				continue
			}
			s.Source = provenance(s.Source, o.Source)
			if _, ok := subSeen[s.Name]; ok {
				continue
			}
			subSeen[s.Name] = struct{}{}
			result.Subdomains = append(result.Subdomains, s)
		}

		for _, ip := range p.IPs {
			ip = validator.NormalizeIP(ip)
			if ip == "" {
				continue
			}
			if _, ok := ipSeen[ip]; ok {
				continue
			}
			ipSeen[ip] = struct{}{}
			result.IPs = append(result.IPs, ip)
		}

		for _, svc := range p.Services {
			key := svc.Key()
			if _, ok := svcSeen[key]; ok {
				continue
			}
			svcSeen[key] = struct{}{}
			svc = svc.Clone()
			svc.Source = provenance(svc.Source, o.Source)
			result.Services = append(result.Services, svc)
		}

		for _, u := range p.URLs {
			if _, ok := urlSeen[u.URL]; ok {
				continue
			}
			urlSeen[u.URL] = struct{}{}
			u = u.Clone()
			u.Source = provenance(u.Source, o.Source)
			result.URLs = append(result.URLs, u)
		}

		for _, d := range p.Dorks {
			if _, ok := dorkSeen[d.Query]; ok {
				continue
			}
			dorkSeen[d.Query] = struct{}{}
			d = d.Clone()
			d.Source = provenance(d.Source, o.Source)
			result.Dorks = append(result.Dorks, d)
		}
	}

	// Orden estable para subdominios e IPs; el resto conserva la primera aparición
	sort.SliceStable(result.Subdomains, func(i, j int) bool {
		return result.Subdomains[i].Name < result.Subdomains[j].Name
	})
	sort.Strings(result.IPs)

	return result
}

func provenance(findingSource, outcomeSource string) string {
	if findingSource != "" {
		return findingSource
	}
	return outcomeSource
}

func sourceReport(o Outcome) domain.SourceReport {
	report := domain.SourceReport{
		Name:       o.Source,
		Status:     domain.SourceStatusOK,
		DurationMS: o.Duration.Milliseconds(),
	}
	if o.Failed() {
		report.Status = domain.SourceStatusFailed
		report.Error = o.Err.Error()
		return report
	}
	if o.Result != nil {
		report.Findings = o.Result.Count()
		if len(o.Result.Warnings) > 0 {
			report.Warnings = append([]string(nil), o.Result.Warnings...)
		}
	}
	return report
}
