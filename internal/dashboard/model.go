package dashboard

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/runtara/runtop/internal/client"
	"github.com/runtara/runtop/internal/config"
)

// dueCheckInterval is how often the auto-refresh due-check runs. It is
// deliberately finer than the refresh interval so a due refresh starts
// within a second of becoming due.
const dueCheckInterval = time.Second

// Model is the Bubble Tea model for the dashboard. It wraps the view-model
// State, the refresh Orchestrator, and the transient program state (window
// size, in-flight guard, help overlay).
type Model struct {
	state *State
	orch  *Orchestrator
	cfg   *config.Config

	width  int
	height int

	// fetching guards the single-remote-operation invariant: refreshes and
	// drill-down fetches never overlap.
	fetching bool
	quitting bool
	showHelp bool

	keys keyMap
	help help.Model
}

// NewModel builds the dashboard model for one session.
func NewModel(orch *Orchestrator, cfg *config.Config) Model {
	return Model{
		state: NewState(),
		orch:  orch,
		cfg:   cfg,
		keys:  defaultKeyMap(),
		help:  help.New(),
	}
}

// tickMsg drives the periodic auto-refresh due-check.
type tickMsg time.Time

// refreshDoneMsg carries a finished refresh cycle back to the update loop.
type refreshDoneMsg RefreshOutcome

// instanceOpenedMsg carries a drill-down instance fetch result.
type instanceOpenedMsg struct {
	detail *client.InstanceDetail
	err    error
}

// checkpointsOpenedMsg carries a drill-down checkpoint list fetch result.
type checkpointsOpenedMsg struct {
	page *client.CheckpointPage
	err  error
}

// checkpointOpenedMsg carries a drill-down checkpoint fetch result.
type checkpointOpenedMsg struct {
	checkpoint *client.Checkpoint
	err        error
}

// Init starts the due-check ticker. The first tick finds the
// never-refreshed state due and begins the initial refresh through the
// fetching guard, so even the startup cycle cannot overlap another one.
func (m Model) Init() tea.Cmd {
	return m.tickCmd()
}

// Update handles messages and mutates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		// A visible error is dismissed by any key; the key still acts.
		if m.state.Err != nil {
			m.state.ClearError()
		}

		// When the help overlay is open, ? and esc close it and nothing
		// else gets through.
		if m.showHelp {
			if msg.String() == "?" || msg.String() == "esc" {
				m.showHelp = false
			}
			return m, nil
		}

		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width

	case tickMsg:
		if !m.fetching && m.state.RefreshDue(m.cfg.RefreshInterval, time.Time(msg)) {
			next, cmd := m.startRefresh()
			return next, tea.Batch(cmd, next.tickCmd())
		}
		return m, m.tickCmd()

	case refreshDoneMsg:
		m.fetching = false
		ApplyRefresh(m.state, RefreshOutcome(msg))

	case instanceOpenedMsg:
		m.fetching = false
		if msg.err != nil {
			m.state.SetError(msg.err)
		} else {
			m.state.PushInstanceDetail(msg.detail)
		}

	case checkpointsOpenedMsg:
		m.fetching = false
		if msg.err != nil {
			m.state.SetError(msg.err)
		} else {
			m.state.PushCheckpoints(msg.page.Checkpoints, msg.page.TotalCount)
		}

	case checkpointOpenedMsg:
		m.fetching = false
		if msg.err != nil {
			m.state.SetError(msg.err)
		} else {
			m.state.PushCheckpointDetail(msg.checkpoint)
		}
	}

	return m, nil
}

// View renders the current state.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	return m.render()
}

// tickCmd schedules the next auto-refresh due-check.
func (m Model) tickCmd() tea.Cmd {
	return tea.Tick(dueCheckInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// startRefresh begins a refresh cycle unless one remote operation is
// already in flight. The error slot is cleared the moment the cycle
// starts, not when its outcome lands, so a stale overlay never lingers
// for the whole in-flight window.
func (m Model) startRefresh() (Model, tea.Cmd) {
	if m.fetching {
		return m, nil
	}
	m.fetching = true
	m.state.ClearError()
	return m, m.refreshCmd()
}

// refreshCmd snapshots the filter and granularity, then runs a full cycle
// off the update loop.
func (m Model) refreshCmd() tea.Cmd {
	filter := m.state.Filter
	granularity := m.state.Granularity
	orch := m.orch
	return func() tea.Msg {
		return refreshDoneMsg(orch.Refresh(context.Background(), filter, granularity))
	}
}

// startOpenInstance begins the instance drill-down fetch for the selected
// row, if any.
func (m Model) startOpenInstance() (Model, tea.Cmd) {
	if m.fetching {
		return m, nil
	}
	selected := m.state.SelectedInstance()
	if selected == nil {
		return m, nil
	}

	m.fetching = true
	id := selected.InstanceID
	orch := m.orch
	return m, func() tea.Msg {
		detail, err := orch.OpenInstance(context.Background(), id)
		return instanceOpenedMsg{detail: detail, err: err}
	}
}

// startOpenCheckpoints begins the checkpoint list fetch for the open
// instance.
func (m Model) startOpenCheckpoints() (Model, tea.Cmd) {
	if m.fetching || m.state.Detail == nil {
		return m, nil
	}

	m.fetching = true
	id := m.state.Detail.InstanceID
	orch := m.orch
	return m, func() tea.Msg {
		page, err := orch.OpenCheckpoints(context.Background(), id)
		return checkpointsOpenedMsg{page: page, err: err}
	}
}

// startOpenCheckpoint begins the checkpoint detail fetch for the selected
// checkpoint row, if any.
func (m Model) startOpenCheckpoint() (Model, tea.Cmd) {
	if m.fetching {
		return m, nil
	}
	selected := m.state.SelectedCheckpoint()
	if selected == nil {
		return m, nil
	}

	m.fetching = true
	instanceID := selected.InstanceID
	checkpointID := selected.CheckpointID
	orch := m.orch
	return m, func() tea.Msg {
		cp, err := orch.OpenCheckpoint(context.Background(), instanceID, checkpointID)
		return checkpointOpenedMsg{checkpoint: cp, err: err}
	}
}

// Run starts the dashboard against the given API and blocks until the user
// quits.
func Run(api client.API, cfg *config.Config) error {
	orch := NewOrchestrator(api, cfg)
	program := tea.NewProgram(NewModel(orch, cfg), tea.WithAltScreen())
	_, err := program.Run()
	return err
}
