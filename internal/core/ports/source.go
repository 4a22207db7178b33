// internal/core/ports/source.go
package ports

import (
	"context"
	"time"

	"passivemap/internal/core/domain"
)

// Source es el port primario para todas las fuentes de inteligencia.
// Cada fuente consulta un único proveedor y devuelve un PartialResult atómico.
type Source interface {
	// Name retorna el nombre único de la fuente (ej: "crtsh", "shodan")
	Name() string

	// Type retorna el tipo de implementación (api, builtin)
	Type() domain.SourceType

	// Scan ejecuta la fuente contra el target. Los fallos esperables del
	// proveedor (HTTP no-2xx, payload inválido, timeout) degradan a un
	// resultado vacío; el error se reserva para fallos locales.
	Scan(ctx context.Context, target domain.Target) (*domain.PartialResult, error)
}

// SourceConfig contiene la configuración específica de una fuente.
type SourceConfig struct {
	// Enabled indica si la fuente está habilitada
	Enabled bool `yaml:"enabled"`

	// Timeout acota cada llamada al proveedor (0 = valor propio de la fuente)
	Timeout time.Duration `yaml:"timeout"`

	// RateLimit límite de peticiones por segundo hacia el proveedor (0 = sin límite)
	RateLimit float64 `yaml:"rate_limit"`

	// Priority orden de invocación (mayor = antes)
	Priority int `yaml:"priority"`

	// Custom configuración específica de la fuente (api_key, base_url, proxy_url...)
	Custom map[string]interface{} `yaml:"custom"`
}

// DefaultSourceConfig retorna una configuración por defecto.
func DefaultSourceConfig() SourceConfig {
	return SourceConfig{
		Enabled: true,
		Custom:  make(map[string]interface{}),
	}
}

// SourceMetadata contiene metadatos sobre una fuente.
type SourceMetadata struct {
	Name         string
	Description  string
	Type         domain.SourceType
	RequiresAuth bool

	// Priority por defecto cuando la configuración no fija otra
	Priority int

	// Categories que la fuente puede producir
	Categories []domain.Category
}
