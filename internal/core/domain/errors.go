// internal/core/domain/errors.go
package domain

import (
	"fmt"

	"passivemap/internal/platform/errors"
)

// Errores de target; ambos se clasifican como ErrInvalidInput.
var (
	ErrEmptyTarget   = fmt.Errorf("%w: target cannot be empty", errors.ErrInvalidInput)
	ErrInvalidTarget = fmt.Errorf("%w: target is neither a domain nor an IP", errors.ErrInvalidInput)
)

// ErrNoSources se devuelve al construir un agregador sin fuentes.
var ErrNoSources = fmt.Errorf("%w: no sources configured", errors.ErrInternalFault)
