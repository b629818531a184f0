package dashboard

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// helpEntry is one row of the help overlay.
type helpEntry struct {
	key  string
	desc string
}

var helpSections = []struct {
	title   string
	entries []helpEntry
}{
	{
		title: "Overview",
		entries: []helpEntry{
			{"q / Ctrl+C", "quit"},
			{"r", "refresh now"},
			{"tab / shift+tab", "rotate tabs"},
			{"1-4", "jump to tab"},
			{"j / k", "move selection"},
			{"f", "cycle status filter (instances)"},
			{"g", "toggle hourly/daily (metrics)"},
			{"enter", "open selected instance"},
		},
	},
	{
		title: "Detail views",
		entries: []helpEntry{
			{"esc", "go back one level"},
			{"c", "open checkpoints (instance detail)"},
			{"enter", "open selected checkpoint"},
			{"j / k", "scroll / move"},
		},
	},
}

var (
	helpKeyStyle = lipgloss.NewStyle().
			Foreground(ColorTextPrimary).
			Bold(true).
			Width(18)

	helpDescStyle = lipgloss.NewStyle().
			Foreground(ColorTextSecondary)
)

func (m Model) renderHelp() string {
	var lines []string
	lines = append(lines, ModalTitleStyle.Render("Keyboard shortcuts"), "")

	for _, section := range helpSections {
		lines = append(lines, LabelStyle.Render(section.title))
		for _, e := range section.entries {
			lines = append(lines, helpKeyStyle.Render(e.key)+helpDescStyle.Render(e.desc))
		}
		lines = append(lines, "")
	}

	lines = append(lines, LabelStyle.Render("press ? or esc to close"))

	return ModalStyle.Render(strings.Join(lines, "\n"))
}
