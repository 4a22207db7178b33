// internal/adapters/output/exporter.go
package output

import (
	"passivemap/internal/core/ports"
	"passivemap/internal/platform/errors"
)

// ForFormat devuelve el exporter de un formato de salida ("json" o "table").
func ForFormat(format string) (ports.Exporter, error) {
	switch format {
	case "", "json":
		return JSONExporter{}, nil
	case "table":
		return TableExporter{}, nil
	default:
		return nil, errors.Wrapf(errors.ErrInvalidInput, "unknown output format %q", format)
	}
}

var (
	_ ports.Exporter = JSONExporter{}
	_ ports.Exporter = TableExporter{}
)
