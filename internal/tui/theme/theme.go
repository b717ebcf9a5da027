// Package theme provides color themes for the TUI.
package theme

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Theme holds all colors for a TUI theme. The role names follow the board:
// shared runs, charters, the unassigned pool, and drop feedback.
type Theme struct {
	Name        string
	Bg          string // base background
	BgHighlight string // run blocks, subtle highlight
	BgSelection string // cursor, selection
	Fg          string // primary foreground
	FgMuted     string // empty slots, muted elements
	Accent      string // title, borders
	Shared      string // shared tour runs
	Charter     string // charter runs
	Pool        string // unassigned pool column
	Ok          string // allowed drop target
	Danger      string // denied drop target, errors
	Warning     string // capacity override, pending mutation
}

// Catppuccin variants plus a plain light theme, same set the config accepts.
var themes = map[string]Theme{
	"mocha": {
		Name: "mocha",
		Bg:   "#1e1e2e", BgHighlight: "#313244", BgSelection: "#45475a",
		Fg: "#cdd6f4", FgMuted: "#6c7086", Accent: "#cba6f7",
		Shared: "#89b4fa", Charter: "#f5c2e7", Pool: "#94e2d5",
		Ok: "#a6e3a1", Danger: "#f38ba8", Warning: "#f9e2af",
	},
	"macchiato": {
		Name: "macchiato",
		Bg:   "#24273a", BgHighlight: "#363a4f", BgSelection: "#494d64",
		Fg: "#cad3f5", FgMuted: "#6e738d", Accent: "#c6a0f6",
		Shared: "#8aadf4", Charter: "#f5bde6", Pool: "#8bd5ca",
		Ok: "#a6da95", Danger: "#ed8796", Warning: "#eed49f",
	},
	"frappe": {
		Name: "frappe",
		Bg:   "#303446", BgHighlight: "#414559", BgSelection: "#51576d",
		Fg: "#c6d0f5", FgMuted: "#737994", Accent: "#ca9ee6",
		Shared: "#8caaee", Charter: "#f4b8e4", Pool: "#81c8be",
		Ok: "#a6d189", Danger: "#e78284", Warning: "#e5c890",
	},
	"latte": {
		Name: "latte",
		Bg:   "#eff1f5", BgHighlight: "#ccd0da", BgSelection: "#bcc0cc",
		Fg: "#4c4f69", FgMuted: "#8c8fa1", Accent: "#8839ef",
		Shared: "#1e66f5", Charter: "#ea76cb", Pool: "#179299",
		Ok: "#40a02b", Danger: "#d20f39", Warning: "#df8e1d",
	},
}

// Load returns a theme by name. Unknown names fall back to frappe.
func Load(name string) (*Theme, error) {
	if name == "" {
		name = "frappe"
	}
	t, ok := themes[strings.ToLower(name)]
	if !ok {
		if d, ok := themes["frappe"]; ok {
			return &d, nil
		}
		return nil, fmt.Errorf("unknown theme %q", name)
	}
	return &t, nil
}

// Available returns a list of available theme names.
func Available() []string {
	return []string{"mocha", "macchiato", "frappe", "latte"}
}

// IsAvailable reports whether a theme name is available.
func IsAvailable(name string) bool {
	_, ok := themes[strings.ToLower(name)]
	return ok
}

// Color returns a lipgloss.Color for the given hex string.
func Color(hex string) lipgloss.Color {
	return lipgloss.Color(hex)
}
