package output

import "github.com/charmbracelet/lipgloss"

// Color palette — named constants for all ANSI 256 colors used in the CLI.
// These are the single source of truth; never use inline lipgloss.Color literals.
var (
	// ColorCyan is used for identifiable nouns: bundle names, module names, paths.
	ColorCyan = lipgloss.Color("14")

	// ColorGreen is used for the "built" target status.
	ColorGreen = lipgloss.Color("82")

	// ColorYellow is used for the "cached" target status.
	ColorYellow = lipgloss.Color("220")

	// ColorBoldRed is used for the "failed" status (matches ERROR level).
	ColorBoldRed = lipgloss.Color("204")

	// ColorGreenCheck is used for the completion checkmark (✔).
	ColorGreenCheck = lipgloss.Color("10")

	// ColorDimGray is used for borders and other structural chrome.
	ColorDimGray = lipgloss.Color("240")
)

// Semantic styles — map domain concepts to visual presentation.
var (
	// StyleNoun styles identifiable nouns (bundle names, module names, paths).
	StyleNoun = lipgloss.NewStyle().Foreground(ColorCyan)

	// StyleAction styles action verbs (resolving, compiling, building).
	StyleAction = lipgloss.NewStyle().Bold(true)

	// StyleDim styles structural chrome (separators, counts, timestamps).
	StyleDim = lipgloss.NewStyle().Faint(true)

	// StyleSummary styles completion and summary lines.
	StyleSummary = lipgloss.NewStyle().Bold(true)
)

// Target status constants for build summaries.
const (
	StatusBuilt  = "built"
	StatusCached = "cached"
	StatusNoOp   = "no-op"
	StatusFailed = "failed"
)

// StatusStyle returns the lipgloss style for a given target status.
// Unknown statuses return an unstyled default.
func StatusStyle(status string) lipgloss.Style {
	switch status {
	case StatusBuilt:
		return lipgloss.NewStyle().Foreground(ColorGreen)
	case StatusCached:
		return lipgloss.NewStyle().Foreground(ColorYellow)
	case StatusNoOp:
		return StyleDim
	case StatusFailed:
		return lipgloss.NewStyle().Foreground(ColorBoldRed)
	default:
		return lipgloss.NewStyle()
	}
}

// Checkmark returns a styled completion checkmark.
func Checkmark() string {
	return lipgloss.NewStyle().Foreground(ColorGreenCheck).Render("✔")
}
