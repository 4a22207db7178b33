// internal/core/ports/exporter.go
package ports

import (
	"io"

	"passivemap/internal/core/domain"
)

// Exporter es el port para volcar un AggregateResult en un formato concreto.
type Exporter interface {
	// Name retorna el nombre del formato (ej: "json", "table")
	Name() string

	// Export escribe el documento en w
	Export(w io.Writer, result *domain.AggregateResult) error
}
