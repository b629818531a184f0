package dashboard

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/runtara/runtop/internal/client"
)

// Dashboard color palette
const (
	ColorBorder = lipgloss.Color("#3A3A5C")

	ColorTextPrimary   = lipgloss.Color("#FFFFFF")
	ColorTextSecondary = lipgloss.Color("#B8B8D0")
	ColorTextMuted     = lipgloss.Color("#6E6E8F")

	ColorAccent = lipgloss.Color("#00D7FF")

	// Status colors
	ColorPending   = lipgloss.Color("#FFD700")
	ColorRunning   = lipgloss.Color("#00AFFF")
	ColorSuspended = lipgloss.Color("#FF5FFF")
	ColorCompleted = lipgloss.Color("#5FFF87")
	ColorFailed    = lipgloss.Color("#FF5F5F")
	ColorCancelled = lipgloss.Color("#808080")
)

// Success-rate thresholds for metrics coloring
const (
	RateGoodThreshold = 95.0
	RateWarnThreshold = 80.0
)

var (
	HeaderStyle = lipgloss.NewStyle().
			Foreground(ColorTextPrimary).
			Bold(true).
			Padding(0, 1)

	FooterStyle = lipgloss.NewStyle().
			Foreground(ColorTextMuted).
			Padding(0, 1)

	TabActiveStyle = lipgloss.NewStyle().
			Foreground(ColorAccent).
			Bold(true).
			Padding(0, 1)

	TabInactiveStyle = lipgloss.NewStyle().
				Foreground(ColorTextMuted).
				Padding(0, 1)

	TableHeaderStyle = lipgloss.NewStyle().
				Foreground(ColorTextSecondary).
				Bold(true)

	RowStyle = lipgloss.NewStyle().
			Foreground(ColorTextSecondary)

	RowSelectedStyle = lipgloss.NewStyle().
				Foreground(ColorTextPrimary).
				Bold(true)

	LabelStyle = lipgloss.NewStyle().
			Foreground(ColorTextMuted)

	ValueStyle = lipgloss.NewStyle().
			Foreground(ColorTextPrimary)

	ConnectedStyle = lipgloss.NewStyle().
			Foreground(ColorCompleted)

	DisconnectedStyle = lipgloss.NewStyle().
				Foreground(ColorFailed)

	ModalStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder).
			Padding(1, 2)

	ErrorModalStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorFailed).
			Padding(1, 2)

	ModalTitleStyle = lipgloss.NewStyle().
			Foreground(ColorAccent).
			Bold(true)
)

// StatusColor returns the display color for an instance status.
func StatusColor(status client.InstanceStatus) lipgloss.Color {
	switch status {
	case client.StatusPending:
		return ColorPending
	case client.StatusRunning:
		return ColorRunning
	case client.StatusSuspended:
		return ColorSuspended
	case client.StatusCompleted:
		return ColorCompleted
	case client.StatusFailed:
		return ColorFailed
	case client.StatusCancelled:
		return ColorCancelled
	default:
		return ColorTextMuted
	}
}

// StatusStyle returns a style colored for the given instance status.
func StatusStyle(status client.InstanceStatus) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(StatusColor(status))
}

// RateColor returns the display color for a success-rate percentage.
func RateColor(percent float64) lipgloss.Color {
	switch {
	case percent >= RateGoodThreshold:
		return ColorCompleted
	case percent >= RateWarnThreshold:
		return ColorPending
	default:
		return ColorFailed
	}
}

// RateStyle returns a style colored for a success-rate percentage.
func RateStyle(percent float64) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(RateColor(percent))
}
