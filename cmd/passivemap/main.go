// cmd/passivemap/main.go
package main

import (
	"fmt"
	"os"

	"passivemap/internal/platform/errors"

	// Import sources for auto-registration via init()
	_ "passivemap/internal/sources/crtsh"
	_ "passivemap/internal/sources/dorker"
	_ "passivemap/internal/sources/shodan"
	_ "passivemap/internal/sources/wayback"
)

var (
	// Rellenables con -ldflags en build
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(exitCode(err))
	}
}

// exitCode: 2 para entrada o configuración inválidas, 1 para el resto.
func exitCode(err error) int {
	switch errors.KindOf(err) {
	case errors.KindInvalidInput, errors.KindConfigurationMissing:
		return 2
	default:
		return 1
	}
}
