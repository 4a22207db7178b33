// internal/adapters/output/table.go
package output

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/pterm/pterm"

	"passivemap/internal/core/domain"
)

// TableExporter imprime el documento como tablas pterm por categoría.
type TableExporter struct{}

func (TableExporter) Name() string { return "table" }

func (TableExporter) Export(w io.Writer, result *domain.AggregateResult) error {
	return RenderTable(w, result)
}

// RenderTable escribe una sección por categoría no vacía y el estado de fuentes.
func RenderTable(w io.Writer, result *domain.AggregateResult) error {
	if result == nil {
		return fmt.Errorf("nil aggregate result")
	}

	fmt.Fprintln(w, pterm.DefaultSection.Sprint("PassiveMap results for "+result.Target))
	if result.TotalFindings() == 0 {
		fmt.Fprintln(w, "No findings.")
	}

	sections := []struct {
		title string
		rows  [][]string
	}{
		{"Subdomains", subdomainRows(result.Subdomains)},
		{"IPs", ipRows(result.IPs)},
		{"Services", serviceRows(result.Services)},
		{"URLs", urlRows(result.URLs)},
		{"Dorks", dorkRows(result.Dorks)},
		{"Sources", sourceRows(result.Sources)},
	}

	for _, s := range sections {
		if len(s.rows) <= 1 {
			continue
		}
		out, err := pterm.DefaultTable.WithHasHeader().WithData(s.rows).Srender()
		if err != nil {
			return fmt.Errorf("render %s table: %w", strings.ToLower(s.title), err)
		}
		fmt.Fprintf(w, "\n%s (%d)\n%s\n", s.title, len(s.rows)-1, out)
	}
	return nil
}

func subdomainRows(items []domain.Subdomain) [][]string {
	rows := [][]string{{"NAME", "IP", "FIRST SEEN", "LAST SEEN", "SOURCE"}}
	for _, s := range items {
		rows = append(rows, []string{s.Name, deref(s.IP), date(s.FirstSeen), date(s.LastSeen), s.Source})
	}
	return rows
}

func ipRows(items []string) [][]string {
	rows := [][]string{{"IP"}}
	for _, ip := range items {
		rows = append(rows, []string{ip})
	}
	return rows
}

func serviceRows(items []domain.Service) [][]string {
	rows := [][]string{{"IP", "PORT", "SERVICE", "SOURCE"}}
	for _, s := range items {
		rows = append(rows, []string{s.IP, strconv.Itoa(int(s.Port)), s.Service, s.Source})
	}
	return rows
}

func urlRows(items []domain.URLRecord) [][]string {
	rows := [][]string{{"URL", "STATUS", "SEEN", "SOURCE"}}
	for _, u := range items {
		status := "-"
		if u.StatusCode != nil {
			status = strconv.Itoa(int(*u.StatusCode))
		}
		rows = append(rows, []string{u.URL, status, date(u.FirstSeen), u.Source})
	}
	return rows
}

func dorkRows(items []domain.Dork) [][]string {
	rows := [][]string{{"CATEGORY", "QUERY", "DESCRIPTION"}}
	for _, d := range items {
		rows = append(rows, []string{d.Category, d.Query, d.Description})
	}
	return rows
}

func sourceRows(items []domain.SourceReport) [][]string {
	rows := [][]string{{"SOURCE", "STATUS", "FINDINGS", "DURATION", "DETAIL"}}
	for _, s := range items {
		detail := s.Error
		if detail == "" && len(s.Warnings) > 0 {
			detail = fmt.Sprintf("%d warnings", len(s.Warnings))
		}
		rows = append(rows, []string{s.Name, string(s.Status), strconv.Itoa(s.Findings), fmt.Sprintf("%dms", s.DurationMS), detail})
	}
	return rows
}

func deref(p *string) string {
	if p == nil {
		return "-"
	}
	return *p
}

func date(p *time.Time) string {
	if p == nil {
		return "-"
	}
	return p.UTC().Format("2006-01-02")
}
