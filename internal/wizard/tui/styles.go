package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const AppName = "HOME SERVICE BOOKING"

// Color palette
var (
	PrimaryColor   = lipgloss.Color("#7D56F4")
	SecondaryColor = lipgloss.Color("#43BF6D")
	ErrorColor     = lipgloss.Color("#FF5F5F")
	TextColor      = lipgloss.Color("#FFFFFF")
	SubtleColor    = lipgloss.Color("#626262")
)

var (
	TitleStyle = lipgloss.NewStyle().
			Foreground(PrimaryColor).
			Bold(true).
			MarginBottom(1)

	StepStyle = lipgloss.NewStyle().
			Foreground(SubtleColor).
			Italic(true)

	LabelStyle = lipgloss.NewStyle().
			Foreground(TextColor)

	FocusedLabelStyle = lipgloss.NewStyle().
				Foreground(SecondaryColor).
				Bold(true)

	ValueStyle = lipgloss.NewStyle().
			PaddingLeft(4).
			Foreground(TextColor)

	PlaceholderStyle = lipgloss.NewStyle().
				PaddingLeft(4).
				Foreground(SubtleColor)

	FieldErrorStyle = lipgloss.NewStyle().
			PaddingLeft(4).
			Foreground(ErrorColor)

	ErrorBoxStyle = lipgloss.NewStyle().
			Foreground(ErrorColor).
			Bold(true).
			Padding(0, 2).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ErrorColor)

	SuccessBoxStyle = lipgloss.NewStyle().
			Foreground(SecondaryColor).
			Bold(true).
			Padding(0, 2).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(SecondaryColor)

	ContainerStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(PrimaryColor).
			Padding(1, 2)
)

// RenderProgress draws one dot per step, filled up to current.
func RenderProgress(current, total int) string {
	var b strings.Builder
	for i := 1; i <= total; i++ {
		if i <= current {
			b.WriteString(lipgloss.NewStyle().Foreground(PrimaryColor).Render("●"))
		} else {
			b.WriteString(lipgloss.NewStyle().Foreground(SubtleColor).Render("○"))
		}
		if i < total {
			b.WriteString(" ")
		}
	}
	return b.String()
}
