package tui

import "github.com/charmbracelet/lipgloss"

// Color constants for the taskfold TUI theme
const (
	// Base Colors
	ColorAppBackground  = ""        // Use terminal default background
	ColorCardBackground = "#1B1530" // Dark purple
	ColorBorder         = "#3A3F55" // Grey-blue

	// Text Colors
	ColorPrimaryText   = "#E6EAF2" // Primary text (field labels, user input, titles)
	ColorSecondaryText = "#B1B8C7" // Secondary text - subtle purple-tinted grey
	ColorDisabledText  = "#6D7383" // Disabled/muted text
	ColorPlaceholder   = "#B1B8C7" // Same as secondary
	ColorHelpText      = "240"     // Dark grey for help text

	// Accent Colors (Purple theme)
	ColorAccentMain   = "#7C3AED" // Logo, accent elements, active borders
	ColorAccentBright = "#A78BFA" // Hover, highlights, current step

	// State Colors
	ColorError   = "#EF4444" // Validation errors
	ColorSuccess = "#22C55E" // Success, confirmations
	ColorWarning = "#F59E0B" // Warnings
)

// FolderColorHex maps the folder palette to terminal colors
var FolderColorHex = map[string]string{
	"purple": "#7C3AED",
	"blue":   "#3B82F6",
	"green":  "#22C55E",
	"yellow": "#EAB308",
	"orange": "#F59E0B",
	"red":    "#EF4444",
	"pink":   "#EC4899",
	"grey":   "#6D7383",
}

// FolderLabel renders a folder name in its palette color
func FolderLabel(name, color string) string {
	hex, ok := FolderColorHex[color]
	if !ok {
		return name
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(hex)).Render(name)
}
