// internal/platform/ui/colors.go
package ui

import "github.com/pterm/pterm"

// Paleta de la terminal
var (
	// SignalCyan - elementos principales, éxito
	SignalCyan = pterm.NewRGB(0, 206, 209)

	// AmberGold - warnings, fuentes degradadas
	AmberGold = pterm.NewRGB(255, 182, 39)

	// AlertRed - fuentes fallidas
	AlertRed = pterm.NewRGB(215, 38, 56)

	// SlateGray - texto secundario, pendientes
	SlateGray = pterm.NewRGB(110, 110, 110)
)

// Estilos preconfigurados
var (
	StyleSuccess   = SignalCyan.ToRGBStyle()
	StyleWarning   = AmberGold.ToRGBStyle()
	StyleError     = AlertRed.ToRGBStyle()
	StyleSecondary = SlateGray.ToRGBStyle()
)
