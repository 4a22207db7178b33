// Package dorker genera consultas de buscador (dorks) para el target.
// No hace I/O de red.
package dorker

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/net/publicsuffix"

	"passivemap/internal/core/domain"
	"passivemap/internal/core/ports"
	"passivemap/internal/platform/logx"
	"passivemap/internal/platform/registry"
)

const sourceName = "dorker"

func init() {
	if err := registry.Global().Register(
		sourceName,
		func(_ ports.SourceConfig, logger logx.Logger) (ports.Source, error) {
			return New(logger), nil
		},
		ports.SourceMetadata{
			Description:  "Search-engine dork generation for the target",
			Type:         domain.SourceTypeBuiltin,
			RequiresAuth: false,
			Priority:     10,
			Categories:   []domain.Category{domain.CategoryDorks},
		},
	); err != nil {
		logx.New().Warn("failed to register dorker source", "error", err.Error())
	}
}

// Dorker implementa ports.Source sin estado.
type Dorker struct {
	logger logx.Logger
}

func New(logger logx.Logger) *Dorker {
	return &Dorker{logger: logger.With("source", sourceName)}
}

func (d *Dorker) Name() string            { return sourceName }
func (d *Dorker) Type() domain.SourceType { return domain.SourceTypeBuiltin }

// Scan nunca falla; solo respeta la cancelación del contexto.
func (d *Dorker) Scan(ctx context.Context, target domain.Target) (*domain.PartialResult, error) {
	result := domain.NewPartialResult(sourceName)
	if err := ctx.Err(); err != nil {
		result.AddWarning(fmt.Sprintf("dork generation skipped: %v", err))
		return result, nil
	}

	var all []domain.Dork
	all = append(all, expand(target.Root, CategorySecurity, securityTemplates)...)
	all = append(all, expand(target.Root, CategoryFiles, filesTemplates)...)
	all = append(all, expand(target.Root, CategoryTechnology, technologyTemplates)...)
	all = append(all, targeted(target)...)

	seen := make(map[string]struct{}, len(all))
	for _, dork := range all {
		if _, dup := seen[dork.Query]; dup {
			continue
		}
		seen[dork.Query] = struct{}{}
		result.Dorks = append(result.Dorks, dork)
	}

	d.logger.Info("dork generation completed", "target", target.Root, "dorks", len(result.Dorks))
	return result, nil
}

func expand(root, category string, templates []template) []domain.Dork {
	out := make([]domain.Dork, 0, len(templates))
	for _, tpl := range templates {
		out = append(out, newDork(strings.ReplaceAll(tpl.query, placeholder, root), tpl.description, category))
	}
	return out
}

// targeted genera los dorks de organización y de directorios.
func targeted(target domain.Target) []domain.Dork {
	root := target.Root
	var out []domain.Dork

	if org := OrganizationLabel(target); org != "" {
		out = append(out,
			newDork(fmt.Sprintf("intext:%s -site:%s", org, root), "Other sites related to the same organization", CategoryOrganization),
			newDork(fmt.Sprintf("site:linkedin.com intext:%s", org), "LinkedIn profiles related to the organization", CategoryOrganization),
		)
	}

	out = append(out,
		newDork(fmt.Sprintf("site:github.com intext:%s", root), "GitHub repositories mentioning the domain", CategoryOrganization),
		newDork(fmt.Sprintf("site:gitlab.com intext:%s", root), "GitLab repositories mentioning the domain", CategoryOrganization),
		newDork(fmt.Sprintf("site:pastebin.com | site:paste.ee | site:paste.org | site:pastie.org intext:%s", root), "Pastes mentioning the domain", CategoryOrganization),
	)

	for _, dir := range interestingDirs {
		out = append(out, newDork(
			fmt.Sprintf("site:%s inurl:%s", root, dir),
			fmt.Sprintf("Potentially sensitive '%s' directory", dir),
			CategoryDirectories,
		))
	}
	return out
}

// OrganizationLabel devuelve la etiqueta registrable del dominio
// (acme en shop.acme.co.uk). Para IPs devuelve "".
func OrganizationLabel(target domain.Target) string {
	if target.IsIP() {
		return ""
	}
	if etld1, err := publicsuffix.EffectiveTLDPlusOne(target.Root); err == nil {
		label, _, _ := strings.Cut(etld1, ".")
		return label
	}

	// sin sufijo público reconocible: penúltima etiqueta
	parts := strings.Split(target.Root, ".")
	if len(parts) < 2 {
		return ""
	}
	return parts[len(parts)-2]
}

func newDork(query, description, category string) domain.Dork {
	return domain.Dork{
		Query:       query,
		Description: description,
		Category:    category,
		Source:      sourceName,
	}
}
