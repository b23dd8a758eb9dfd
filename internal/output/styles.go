package output

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Color palette. Never use inline lipgloss.Color literals outside this block.
var (
	// ColorCyan is used for identifiable nouns: module names, paths, URLs.
	ColorCyan = lipgloss.Color("14")

	// ColorGreen is used for the success tone.
	ColorGreen = lipgloss.Color("82")

	// ColorYellow is used for the warning tone.
	ColorYellow = lipgloss.Color("220")

	// ColorBoldRed is used for the danger tone (matches ERROR level).
	ColorBoldRed = lipgloss.Color("204")

	// ColorBlue is used for the informational tone and table headers.
	ColorBlue = lipgloss.Color("12")

	// ColorGreenCheck is used for the completion checkmark.
	ColorGreenCheck = lipgloss.Color("10")

	// ColorDimGray is used for borders and other structural chrome.
	ColorDimGray = lipgloss.Color("240")
)

// Semantic styles.
var (
	// StyleNoun styles identifiable nouns (module names, paths, URLs).
	StyleNoun = lipgloss.NewStyle().Foreground(ColorCyan)

	// StyleAction styles action verbs.
	StyleAction = lipgloss.NewStyle().Bold(true)

	// StyleDim styles structural chrome (prefixes, separators, placeholders).
	StyleDim = lipgloss.NewStyle().Faint(true)
)

// Tone names shared with the alert store's color values.
const (
	ToneInfo    = "info"
	ToneSuccess = "success"
	ToneWarning = "warning"
	ToneDanger  = "danger"
)

// ToneStyle returns the style for a tone. Unknown tones are unstyled.
func ToneStyle(tone string) lipgloss.Style {
	switch tone {
	case ToneInfo:
		return lipgloss.NewStyle().Foreground(ColorBlue)
	case ToneSuccess:
		return lipgloss.NewStyle().Foreground(ColorGreen)
	case ToneWarning:
		return lipgloss.NewStyle().Foreground(ColorYellow)
	case ToneDanger:
		return lipgloss.NewStyle().Bold(true).Foreground(ColorBoldRed)
	default:
		return lipgloss.NewStyle()
	}
}

// minModuleColumnWidth keeps the value column aligned across module lines.
const minModuleColumnWidth = 24

// FormatModuleLine renders "m:<name>  <value>" with the name in cyan.
func FormatModuleLine(name, value string) string {
	padding := minModuleColumnWidth - len(name)
	if padding < 2 {
		padding = 2
	}
	return StyleDim.Render("m:") + StyleNoun.Render(name) + strings.Repeat(" ", padding) + value
}

// FormatAlert renders a one-line alert summary: "[tone] title: content".
func FormatAlert(tone, title, content string) string {
	label := ToneStyle(tone).Render(fmt.Sprintf("[%s]", tone))
	return fmt.Sprintf("%s %s: %s", label, StyleAction.Render(title), content)
}

// FormatCheckmark renders a green checkmark with a message for stdout output.
func FormatCheckmark(msg string) string {
	check := lipgloss.NewStyle().Foreground(ColorGreenCheck).Render("✔")
	return check + " " + msg
}

// Placeholder renders "-" dimmed for empty values in tables and lines.
func Placeholder(s string) string {
	if s == "" {
		return StyleDim.Render("-")
	}
	return s
}
