package styles

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/thenoetrevino/tally/internal/models"
)

// Palette colors, adapting to light and dark terminals
var (
	accent  = lipgloss.AdaptiveColor{Light: "#5A56E0", Dark: "#7D79F6"}
	subtle  = lipgloss.AdaptiveColor{Light: "#8A8A8A", Dark: "#6C6C6C"}
	normal  = lipgloss.AdaptiveColor{Light: "#1A1A1A", Dark: "#DDDDDD"}
	good    = lipgloss.AdaptiveColor{Light: "#2E7D32", Dark: "#66BB6A"}
	warning = lipgloss.AdaptiveColor{Light: "#B26A00", Dark: "#FFB74D"}
	bad     = lipgloss.AdaptiveColor{Light: "#C62828", Dark: "#EF5350"}
)

var (
	// Card styles
	CardWidth = 72
	CardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(accent).
			Padding(1, 2).
			Width(CardWidth)

	// Text styles
	TitleStyle    = lipgloss.NewStyle().Bold(true).Foreground(accent)
	SubtitleStyle = lipgloss.NewStyle().Foreground(subtle)
	LabelStyle    = lipgloss.NewStyle().Bold(true).Foreground(accent) // For field labels like "Budget:"
	ValueStyle    = lipgloss.NewStyle().Foreground(normal)            // For field values
	SectionStyle  = lipgloss.NewStyle().Bold(true).Foreground(accent).MarginTop(1)

	// Status styles
	SuccessStyle = lipgloss.NewStyle().Bold(true).Foreground(good)
	WarningStyle = lipgloss.NewStyle().Bold(true).Foreground(warning)
	ErrorStyle   = lipgloss.NewStyle().Bold(true).Foreground(bad)
)

// Field renders a "Label: value" line
func Field(label, value string) string {
	return LabelStyle.Render(label+":") + " " + ValueStyle.Render(value)
}

// TaskStatus renders a task status in its color
func TaskStatus(s models.TaskStatus) string {
	switch s {
	case models.TaskStatusCompleted:
		return SuccessStyle.Render(string(s))
	case models.TaskStatusInProgress:
		return WarningStyle.Render(string(s))
	}
	return SubtitleStyle.Render(string(s))
}

// Priority renders a priority in its color
func Priority(p models.Priority) string {
	switch p {
	case models.PriorityHigh:
		return ErrorStyle.Render(string(p))
	case models.PriorityMedium:
		return WarningStyle.Render(string(p))
	}
	return SubtitleStyle.Render(string(p))
}

// ProjectStatus renders a project status in its color
func ProjectStatus(s models.ProjectStatus) string {
	switch s {
	case models.ProjectStatusCompleted:
		return SuccessStyle.Render(string(s))
	case models.ProjectStatusInProgress:
		return WarningStyle.Render(string(s))
	case models.ProjectStatusOnHold:
		return ErrorStyle.Render(string(s))
	}
	return SubtitleStyle.Render(string(s))
}

// Remaining renders a remaining budget, red once it goes negative
func Remaining(text string, negative bool) string {
	if negative {
		return ErrorStyle.Render(text)
	}
	return SuccessStyle.Render(text)
}

// ProgressBar renders pct as a bar of width cells followed by the percentage
func ProgressBar(pct, width int) string {
	if pct < 0 {
		pct = 0
	}
	if pct > 100 {
		pct = 100
	}
	filled := pct * width / 100

	bar := ""
	for i := 0; i < width; i++ {
		if i < filled {
			bar += "█"
		} else {
			bar += "░"
		}
	}
	return lipgloss.NewStyle().Foreground(good).Render(bar) + fmt.Sprintf(" %d%%", pct)
}

// RenderCard wraps content in a styled card border
func RenderCard(content string) string {
	return CardStyle.Render(content)
}
