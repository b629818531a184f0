package dashboard

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// keyMap defines every binding the dashboard understands. Which bindings are
// live depends on the current frame and tab; handleKey is the single
// dispatch table.
type keyMap struct {
	Quit        key.Binding
	Refresh     key.Binding
	NextTab     key.Binding
	PrevTab     key.Binding
	Tab1        key.Binding
	Tab2        key.Binding
	Tab3        key.Binding
	Tab4        key.Binding
	Up          key.Binding
	Down        key.Binding
	Filter      key.Binding
	Granularity key.Binding
	Open        key.Binding
	Checkpoints key.Binding
	Back        key.Binding
	Help        key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "refresh"),
		),
		NextTab: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next tab"),
		),
		PrevTab: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("shift+tab", "previous tab"),
		),
		Tab1: key.NewBinding(key.WithKeys("1"), key.WithHelp("1", "instances")),
		Tab2: key.NewBinding(key.WithKeys("2"), key.WithHelp("2", "images")),
		Tab3: key.NewBinding(key.WithKeys("3"), key.WithHelp("3", "metrics")),
		Tab4: key.NewBinding(key.WithKeys("4"), key.WithHelp("4", "health")),
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/↑", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/↓", "down"),
		),
		Filter: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "cycle status filter"),
		),
		Granularity: key.NewBinding(
			key.WithKeys("g"),
			key.WithHelp("g", "toggle granularity"),
		),
		Open: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "open"),
		),
		Checkpoints: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "checkpoints"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
	}
}

// shortHelp returns the footer bindings for the current frame and tab.
func (m Model) shortHelp() []key.Binding {
	switch m.state.CurrentFrame() {
	case FrameInstanceDetail:
		return []key.Binding{m.keys.Back, m.keys.Checkpoints, m.keys.Down, m.keys.Up}
	case FrameCheckpointsList:
		return []key.Binding{m.keys.Back, m.keys.Open, m.keys.Down, m.keys.Up}
	case FrameCheckpointDetail:
		return []key.Binding{m.keys.Back, m.keys.Down, m.keys.Up}
	}

	bindings := []key.Binding{m.keys.Quit, m.keys.Refresh, m.keys.NextTab}
	switch m.state.Tab {
	case TabInstances:
		bindings = append(bindings, m.keys.Filter, m.keys.Open)
	case TabMetrics:
		bindings = append(bindings, m.keys.Granularity)
	}
	return append(bindings, m.keys.Help)
}

// handleKey maps one key press plus the current frame to an action. Keys
// with no mapping for the current frame fall through as no-ops.
func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch m.state.CurrentFrame() {
	case FrameList:
		return m.handleListKey(msg)
	case FrameInstanceDetail:
		return m.handleInstanceDetailKey(msg)
	case FrameCheckpointsList:
		return m.handleCheckpointsKey(msg)
	case FrameCheckpointDetail:
		return m.handleCheckpointDetailKey(msg)
	}
	return m, nil
}

func (m Model) handleListKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Refresh):
		return m.startRefresh()

	case key.Matches(msg, m.keys.NextTab):
		m.state.AdvanceTab()

	case key.Matches(msg, m.keys.PrevTab):
		m.state.RetreatTab()

	case key.Matches(msg, m.keys.Tab1):
		m.state.SelectTab(0)
	case key.Matches(msg, m.keys.Tab2):
		m.state.SelectTab(1)
	case key.Matches(msg, m.keys.Tab3):
		m.state.SelectTab(2)
	case key.Matches(msg, m.keys.Tab4):
		m.state.SelectTab(3)

	case key.Matches(msg, m.keys.Down):
		m.state.MoveSelection(1)
	case key.Matches(msg, m.keys.Up):
		m.state.MoveSelection(-1)

	case key.Matches(msg, m.keys.Filter):
		if m.state.Tab == TabInstances {
			m.state.CycleStatusFilter()
		}

	case key.Matches(msg, m.keys.Granularity):
		if m.state.Tab == TabMetrics {
			m.state.ToggleGranularity()
			return m.startRefresh()
		}

	case key.Matches(msg, m.keys.Open):
		if m.state.Tab == TabInstances {
			return m.startOpenInstance()
		}

	case key.Matches(msg, m.keys.Help):
		m.showHelp = !m.showHelp
	}

	return m, nil
}

func (m Model) handleInstanceDetailKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Back):
		m.state.PopFrame()

	case key.Matches(msg, m.keys.Checkpoints):
		return m.startOpenCheckpoints()

	case key.Matches(msg, m.keys.Down):
		m.state.ScrollBy(1)
	case key.Matches(msg, m.keys.Up):
		m.state.ScrollBy(-1)
	}

	return m, nil
}

func (m Model) handleCheckpointsKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Back):
		m.state.PopFrame()

	case key.Matches(msg, m.keys.Open):
		return m.startOpenCheckpoint()

	case key.Matches(msg, m.keys.Down):
		m.state.MoveCheckpointSelection(1)
	case key.Matches(msg, m.keys.Up):
		m.state.MoveCheckpointSelection(-1)
	}

	return m, nil
}

func (m Model) handleCheckpointDetailKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Back):
		m.state.PopFrame()

	case key.Matches(msg, m.keys.Down):
		m.state.ScrollBy(1)
	case key.Matches(msg, m.keys.Up):
		m.state.ScrollBy(-1)
	}

	return m, nil
}
