package ui

import "github.com/charmbracelet/lipgloss"

// Palette colors.
var (
	Cyan    = lipgloss.Color("#00E5FF")
	Magenta = lipgloss.Color("#FF1B6B")
	Yellow  = lipgloss.Color("#FFB500")
	Green   = lipgloss.Color("#2AFFAA")
	Red     = lipgloss.Color("#FF5555")
	Muted   = lipgloss.Color("#6C7280")
	Text    = lipgloss.Color("#ECEFF4")
)

// Styles groups every style the screens use.
type Styles struct {
	Title    lipgloss.Style
	Label    lipgloss.Style
	Focused  lipgloss.Style
	Value    lipgloss.Style
	Muted    lipgloss.Style
	Error    lipgloss.Style
	Panel    lipgloss.Style
	Good     lipgloss.Style
	Moderate lipgloss.Style
	Negative lipgloss.Style
	Badge    lipgloss.Style
	NoBadge  lipgloss.Style
	Help     lipgloss.Style
}

// DefaultStyles returns the default styles.
func DefaultStyles() Styles {
	return Styles{
		Title: lipgloss.NewStyle().
			Foreground(Cyan).
			Bold(true).
			MarginBottom(1),
		Label: lipgloss.NewStyle().
			Foreground(Text).
			Width(labelWidth),
		Focused: lipgloss.NewStyle().
			Foreground(Cyan).
			Bold(true).
			Width(labelWidth),
		Value:    lipgloss.NewStyle().Foreground(Text),
		Muted:    lipgloss.NewStyle().Foreground(Muted),
		Error:    lipgloss.NewStyle().Foreground(Red).MarginTop(1),
		Good:     lipgloss.NewStyle().Foreground(Green).Bold(true),
		Moderate: lipgloss.NewStyle().Foreground(Yellow).Bold(true),
		Negative: lipgloss.NewStyle().Foreground(Red).Bold(true),
		Panel: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Magenta).
			Padding(0, 2).
			MarginTop(1),
		Badge: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#1B1D23")).
			Background(Green).
			Bold(true).
			Padding(0, 1),
		NoBadge: lipgloss.NewStyle().
			Foreground(Text).
			Background(Red).
			Bold(true).
			Padding(0, 1),
		Help: lipgloss.NewStyle().
			Foreground(Muted).
			Italic(true).
			MarginTop(1),
	}
}
