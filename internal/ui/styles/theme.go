package styles

import (
	"github.com/charmbracelet/lipgloss"
)

// Theme is the color scheme for the interactive view.
type Theme struct {
	Name string

	Foreground    lipgloss.Color
	ForegroundDim lipgloss.Color

	Current   lipgloss.Color
	Completed lipgloss.Color
	Pending   lipgloss.Color

	PriorityHigh   lipgloss.Color
	PriorityMedium lipgloss.Color
	PriorityLow    lipgloss.Color

	Accent lipgloss.Color
	Error  lipgloss.Color
}

// TokyoNight is the default color theme.
var TokyoNight = Theme{
	Name: "Tokyo Night",

	Foreground:    lipgloss.Color("#c0caf5"),
	ForegroundDim: lipgloss.Color("#565f89"),

	Current:   lipgloss.Color("#e0af68"),
	Completed: lipgloss.Color("#9ece6a"),
	Pending:   lipgloss.Color("#c0caf5"),

	PriorityHigh:   lipgloss.Color("#f7768e"),
	PriorityMedium: lipgloss.Color("#e0af68"),
	PriorityLow:    lipgloss.Color("#9ece6a"),

	Accent: lipgloss.Color("#7dcfff"),
	Error:  lipgloss.Color("#f7768e"),
}

// Current holds the active theme.
var Current = TokyoNight

// Pre-built styles over the active theme.
var (
	Normal    = lipgloss.NewStyle()
	Title     = lipgloss.NewStyle().Bold(true).Foreground(Current.Accent)
	Dim       = lipgloss.NewStyle().Foreground(Current.ForegroundDim)
	CurrentT  = lipgloss.NewStyle().Bold(true).Foreground(Current.Current)
	Done      = lipgloss.NewStyle().Foreground(Current.Completed)
	Time      = lipgloss.NewStyle().Foreground(Current.Accent)
	Selected  = lipgloss.NewStyle().Bold(true).Underline(true)
	ErrorText = lipgloss.NewStyle().Foreground(Current.Error)
)

// ForPriority returns the style for a priority badge.
func ForPriority(priority string) lipgloss.Style {
	switch priority {
	case "high":
		return lipgloss.NewStyle().Foreground(Current.PriorityHigh)
	case "low":
		return lipgloss.NewStyle().Foreground(Current.PriorityLow)
	default:
		return lipgloss.NewStyle().Foreground(Current.PriorityMedium)
	}
}
