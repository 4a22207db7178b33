// internal/sources/wayback/cdx.go
package wayback

import (
	"strconv"
	"time"

	"passivemap/internal/platform/errors"
)

const (
	colOriginal   = "original"
	colTimestamp  = "timestamp"
	colStatusCode = "statuscode"

	// Formato de timestamp del CDX: YYYYMMDDhhmmss en UTC.
	cdxTimestampLayout = "20060102150405"
)

// columns guarda la posición de cada campo según la cabecera de la tabla.
// status vale -1 si la cabecera no trae statuscode.
type columns struct {
	original  int
	timestamp int
	status    int
}

// errMissingColumn indica una cabecera sin original o timestamp.
var errMissingColumn = errors.Mark(errors.ErrUpstreamMalformed, errors.New("cdx header lacks a required column"))

// lookupColumns busca las columnas por nombre. Sin original o timestamp la
// tabla no es interpretable y se descarta entera.
func lookupColumns(header []string) (columns, error) {
	cols := columns{original: -1, timestamp: -1, status: -1}
	for i, name := range header {
		switch name {
		case colOriginal:
			cols.original = i
		case colTimestamp:
			cols.timestamp = i
		case colStatusCode:
			cols.status = i
		}
	}
	if cols.original < 0 || cols.timestamp < 0 {
		return cols, errors.Wrapf(errMissingColumn, "header %v", header)
	}
	return cols, nil
}

// minRowLen es la longitud mínima de una fila para leer los campos obligatorios.
func (c columns) minRowLen() int {
	return max(c.original, c.timestamp) + 1
}

// parseStatus acepta solo enteros sin signo de 16 bits; "-" y similares quedan ausentes.
func parseStatus(s string) *uint16 {
	n, err := strconv.ParseUint(s, 10, 16)
	if err != nil {
		return nil
	}
	code := uint16(n)
	return &code
}

// parseCDXTimestamp exige exactamente 14 dígitos ASCII.
func parseCDXTimestamp(s string) *time.Time {
	if len(s) != len(cdxTimestampLayout) {
		return nil
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return nil
		}
	}
	t, err := time.ParseInLocation(cdxTimestampLayout, s, time.UTC)
	if err != nil {
		return nil
	}
	return &t
}
