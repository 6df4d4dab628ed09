package styles

import "github.com/charmbracelet/lipgloss"

var (
	// Color palette
	Primary    = lipgloss.Color("#2E9E6B")
	Secondary  = lipgloss.Color("#D4AF37")
	Success    = lipgloss.Color("#C3E88D")
	Warning    = lipgloss.Color("#FFCB6B")
	Error      = lipgloss.Color("#F07178")
	Info       = lipgloss.Color("#82AAFF")
	Muted      = lipgloss.Color("#546E7A")
	Foreground = lipgloss.Color("#EEFFFF")
)

// Base styles
var (
	TitleStyle = lipgloss.NewStyle().
			Foreground(Primary).
			Bold(true).
			MarginBottom(1)

	TextStyle = lipgloss.NewStyle().
			Foreground(Foreground)

	MutedStyle = lipgloss.NewStyle().
			Foreground(Muted)

	// Selected row in a list
	SelectedStyle = lipgloss.NewStyle().
			Foreground(Primary).
			Bold(true)

	// Arabic verse text, right aligned
	VerseStyle = lipgloss.NewStyle().
			Foreground(Foreground).
			Align(lipgloss.Right)

	VerseNumberStyle = lipgloss.NewStyle().
				Foreground(Secondary)

	SajdaStyle = lipgloss.NewStyle().
			Foreground(Warning).
			Bold(true)

	// Status styles
	StatusActive = lipgloss.NewStyle().
			Foreground(Info).
			Bold(true)

	StatusCompleted = lipgloss.NewStyle().
			Foreground(Success).
			Bold(true)

	StatusError = lipgloss.NewStyle().
			Foreground(Error).
			Bold(true)

	ProgressBarStyle = lipgloss.NewStyle().
				Foreground(Primary)

	ProgressEmptyStyle = lipgloss.NewStyle().
				Foreground(Muted)

	HelpStyle = lipgloss.NewStyle().
			Foreground(Muted).
			Italic(true).
			MarginTop(1)

	// Table header cells
	HeaderStyle = lipgloss.NewStyle().
			Foreground(Secondary).
			Bold(true).
			Padding(0, 1)

	CellStyle = lipgloss.NewStyle().
			Padding(0, 1)
)

// StatusStyle picks the style for a fetch or load status.
func StatusStyle(status string) lipgloss.Style {
	switch status {
	case "fetching", "loading":
		return StatusActive
	case "done", "ok":
		return StatusCompleted
	case "skipped", "error", "failed":
		return StatusError
	default:
		return MutedStyle
	}
}

// RevelationStyle colours Meccan and Medinan surahs apart.
func RevelationStyle(revelationType string) lipgloss.Style {
	if revelationType == "Medinan" {
		return lipgloss.NewStyle().Foreground(Info)
	}
	return lipgloss.NewStyle().Foreground(Secondary)
}
