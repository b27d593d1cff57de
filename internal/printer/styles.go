package printer

import (
	"github.com/charmbracelet/lipgloss"
)

// Colors used across printed output.
var (
	ColorBlue   = lipgloss.Color("39")
	ColorGreen  = lipgloss.Color("82")
	ColorYellow = lipgloss.Color("228")
	ColorCyan   = lipgloss.Color("45")
	ColorRed    = lipgloss.Color("196")
	ColorGray   = lipgloss.Color("245")
)

var (
	TitleStyle = lipgloss.NewStyle().
			Foreground(ColorCyan).
			Bold(true)

	SectionStyle = lipgloss.NewStyle().Bold(true)

	IDStyle = lipgloss.NewStyle().Foreground(ColorBlue)

	LabelStyle = lipgloss.NewStyle().Foreground(ColorBlue)

	NameStyle = lipgloss.NewStyle().Bold(true)

	VerifiedStyle = lipgloss.NewStyle().Foreground(ColorGreen)

	HintStyle = lipgloss.NewStyle().Foreground(ColorGray)

	CommandStyle = lipgloss.NewStyle().Foreground(ColorCyan)

	SuccessStyle = lipgloss.NewStyle().Foreground(ColorGreen)

	WarningStyle = lipgloss.NewStyle().Foreground(ColorYellow)

	ErrorStyle = lipgloss.NewStyle().Foreground(ColorRed)
)

// Title styles a top-level heading.
func Title(text string) string {
	return TitleStyle.Render(text)
}

// Section styles a section heading.
func Section(text string) string {
	return SectionStyle.Render(text)
}

// ID styles a server ID.
func ID(id string) string {
	return IDStyle.Render(id)
}

// Label styles a field label.
func Label(text string) string {
	return LabelStyle.Render(text)
}

// Hint styles secondary, explanatory text.
func Hint(text string) string {
	return HintStyle.Render(text)
}

// Command styles an example command line.
func Command(text string) string {
	return CommandStyle.Render(text)
}

// Success styles a successful outcome.
func Success(text string) string {
	return SuccessStyle.Render(text)
}

// Warning styles a warning.
func Warning(text string) string {
	return WarningStyle.Render(text)
}

// Error styles an error or cancellation.
func Error(text string) string {
	return ErrorStyle.Render(text)
}
