// internal/core/domain/target.go
package domain

import (
	"fmt"
	"strings"

	"passivemap/internal/platform/validator"
)

// Target es el objetivo normalizado de una agregación. Se construye con
// NewTarget y no cambia durante el pipeline.
type Target struct {
	// Root es el dominio o la IP en minúsculas, sin espacios ni punto final
	Root string

	// Kind indica si Root es un dominio o una IP literal
	Kind TargetKind
}

// NewTarget normaliza raw y lo valida como dominio o IP.
func NewTarget(raw string) (Target, error) {
	root := validator.NormalizeDomain(raw)
	if root == "" {
		return Target{}, ErrEmptyTarget
	}

	if validator.IsIP(root) {
		return Target{Root: validator.NormalizeIP(root), Kind: TargetKindIP}, nil
	}
	if !validator.IsDomain(root) {
		return Target{}, fmt.Errorf("%w: %q", ErrInvalidTarget, root)
	}
	return Target{Root: root, Kind: TargetKindDomain}, nil
}

// IsIP reports whether the target is an IP literal.
func (t Target) IsIP() bool {
	return t.Kind == TargetKindIP
}

// IsInScope reports whether name is the target itself or one of its subdomains.
func (t Target) IsInScope(name string) bool {
	name = validator.NormalizeDomain(name)
	if name == "" || t.Root == "" {
		return false
	}
	return name == t.Root || strings.HasSuffix(name, "."+t.Root)
}

func (t Target) String() string {
	return t.Root
}
