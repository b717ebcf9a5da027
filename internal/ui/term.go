package ui

import (
	"os"

	"github.com/fatih/color"
	"golang.org/x/term"
)

// Color definitions for consistent styling across the UI.
var (
	// Guide lane headers: bold cyan
	colorGuide = color.New(color.FgCyan, color.Bold)

	// Charter runs: magenta to flag the exclusive vehicle
	colorCharter = color.New(color.FgMagenta, color.Bold)

	// Unassigned pool: yellow so it is never overlooked
	colorPool = color.New(color.FgYellow, color.Bold)

	// Headers: bold
	colorHeader = color.New(color.Bold)

	// Positive results: green
	colorOk = color.New(color.FgGreen)

	// Errors and denials: red
	colorDenied = color.New(color.FgRed, color.Bold)

	// Muted: for secondary information
	colorMuted = color.New(color.FgWhite, color.Faint)
)

// termWidth returns the terminal width, or a default if detection fails.
func termWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return 80 // sensible default
	}
	return width
}

// DisableColor disables all color output.
func DisableColor() {
	color.NoColor = true
}

// EnableColor enables color output (if terminal supports it).
func EnableColor() {
	color.NoColor = false
}
