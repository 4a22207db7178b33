// internal/adapters/output/json.go
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"passivemap/internal/core/domain"
	"passivemap/internal/platform/errors"
)

// JSONExporter serializa el documento agregado con indentación de dos espacios.
type JSONExporter struct{}

func (JSONExporter) Name() string { return "json" }

func (JSONExporter) Export(w io.Writer, result *domain.AggregateResult) error {
	return WriteJSON(w, result)
}

// WriteJSON codifica result en w. Un resultado nil es un fallo interno.
func WriteJSON(w io.Writer, result *domain.AggregateResult) error {
	if result == nil {
		return errors.Mark(errors.ErrInternalFault, errors.New("nil aggregate result"))
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(result); err != nil {
		return errors.Mark(errors.ErrInternalFault, fmt.Errorf("encode JSON: %w", err))
	}
	return nil
}

// sanitizeDomainName convierte un nombre de dominio en un nombre de carpeta válido.
// Ejemplo: "example.com" -> "example_com"
func sanitizeDomainName(name string) string {
	return strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '_' || r == '-' {
			return r
		}
		return '_'
	}, name)
}

// WriteFile guarda result en dir/<target>/passivemap_<target>_<ts>.json
// y devuelve la ruta escrita.
func WriteFile(dir string, result *domain.AggregateResult) (string, error) {
	if result == nil {
		return "", errors.Mark(errors.ErrInternalFault, errors.New("nil aggregate result"))
	}
	if dir == "" {
		dir = "."
	}

	name := sanitizeDomainName(result.Target)
	fullDir := filepath.Join(dir, name)
	if err := os.MkdirAll(fullDir, 0o755); err != nil {
		return "", errors.Mark(errors.ErrInternalFault, fmt.Errorf("create output directory: %w", err))
	}

	ts := result.Timestamp
	if ts.IsZero() {
		ts = time.Now()
	}
	path := filepath.Join(fullDir, fmt.Sprintf("passivemap_%s_%s.json", name, ts.UTC().Format("20060102_150405")))

	f, err := os.Create(path)
	if err != nil {
		return "", errors.Mark(errors.ErrInternalFault, fmt.Errorf("create output file: %w", err))
	}
	defer f.Close()

	if err := WriteJSON(f, result); err != nil {
		return "", err
	}
	return path, nil
}
