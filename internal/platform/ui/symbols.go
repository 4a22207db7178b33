// internal/platform/ui/symbols.go
package ui

import "github.com/pterm/pterm"

// Status representa el estado de una fuente en pantalla
type Status int

const (
	StatusPending Status = iota
	StatusRunning
	StatusSuccess
	StatusWarning
	StatusError
)

func (s Status) String() string {
	switch s {
	case StatusPending:
		return "pending"
	case StatusRunning:
		return "running"
	case StatusSuccess:
		return "success"
	case StatusWarning:
		return "warning"
	case StatusError:
		return "error"
	default:
		return "unknown"
	}
}

// Symbol retorna el símbolo Unicode para cada estado
func (s Status) Symbol() string {
	switch s {
	case StatusPending:
		return "⏸"
	case StatusRunning:
		return "⣾"
	case StatusSuccess:
		return "✓"
	case StatusWarning:
		return "⚠"
	case StatusError:
		return "✗"
	default:
		return "?"
	}
}

// Style retorna el estilo pterm de cada estado
func (s Status) Style() *pterm.Style {
	switch s {
	case StatusSuccess:
		return pterm.NewStyle(pterm.FgGreen)
	case StatusWarning:
		return pterm.NewStyle(pterm.FgYellow)
	case StatusError:
		return pterm.NewStyle(pterm.FgRed)
	case StatusRunning:
		return pterm.NewStyle(pterm.FgCyan)
	default:
		return pterm.NewStyle(pterm.FgGray)
	}
}

var (
	IconTarget   = "🎯"
	IconSources  = "🔌"
	IconTime     = "⏱"
	IconFindings = "📦"

	// IconWarningPrefix precede a cada warning de fuente
	IconWarningPrefix = "↳ "
)

var (
	SeparatorHeavy = "━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━"
	SeparatorLight = "────────────────────────────────────────────"
)
