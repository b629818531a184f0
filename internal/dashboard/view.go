package dashboard

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// Fallback dimensions used before the first WindowSizeMsg arrives.
const (
	fallbackWidth  = 100
	fallbackHeight = 30
)

func (m Model) viewWidth() int {
	if m.width > 0 {
		return m.width
	}
	return fallbackWidth
}

func (m Model) viewHeight() int {
	if m.height > 0 {
		return m.height
	}
	return fallbackHeight
}

// render draws the base frame, then stacks whatever overlay the current
// navigation frame, error slot, or help toggle calls for.
func (m Model) render() string {
	base := lipgloss.JoinVertical(lipgloss.Left,
		m.renderHeader(),
		m.renderContent(),
		m.renderFooter(),
	)

	switch m.state.CurrentFrame() {
	case FrameInstanceDetail:
		base = m.overlay(m.renderInstanceDetail())
	case FrameCheckpointsList:
		base = m.overlay(m.renderCheckpointsList())
	case FrameCheckpointDetail:
		base = m.overlay(m.renderCheckpointDetail())
	}

	if m.state.Err != nil {
		base = m.overlay(m.renderError())
	}
	if m.showHelp {
		base = m.overlay(m.renderHelp())
	}

	return base
}

// overlay centers a box in the viewport, replacing the base frame content.
func (m Model) overlay(box string) string {
	return lipgloss.Place(
		m.viewWidth(),
		m.viewHeight(),
		lipgloss.Center,
		lipgloss.Center,
		box,
	)
}

func (m Model) renderHeader() string {
	var tabs []string
	for i := 0; i < tabCount; i++ {
		t := Tab(i)
		label := fmt.Sprintf("%d %s", i+1, t)
		if t == m.state.Tab {
			tabs = append(tabs, TabActiveStyle.Render(label))
		} else {
			tabs = append(tabs, TabInactiveStyle.Render(label))
		}
	}

	conn := DisconnectedStyle.Render("● offline")
	if m.state.Connected {
		conn = ConnectedStyle.Render("● connected")
	}
	if m.fetching {
		conn += LabelStyle.Render(" · fetching")
	}

	left := HeaderStyle.Render("runtop") + strings.Join(tabs, "")
	gap := m.viewWidth() - lipgloss.Width(left) - lipgloss.Width(conn) - 1
	if gap < 1 {
		gap = 1
	}

	return left + strings.Repeat(" ", gap) + conn
}

func (m Model) renderContent() string {
	switch m.state.Tab {
	case TabImages:
		return m.renderImages()
	case TabMetrics:
		return m.renderMetrics()
	case TabHealth:
		return m.renderHealth()
	default:
		return m.renderInstances()
	}
}

// visibleRows is the table row budget after header, column header, and
// footer lines.
func (m Model) visibleRows() int {
	rows := m.viewHeight() - 6
	if rows < 3 {
		rows = 3
	}
	return rows
}

// rowWindow returns the half-open slice bounds that keep the selected row
// visible within a budget of visible rows.
func rowWindow(selected, total, visible int) (int, int) {
	if total <= visible {
		return 0, total
	}
	start := selected - visible/2
	if start < 0 {
		start = 0
	}
	if start+visible > total {
		start = total - visible
	}
	return start, start + visible
}

func (m Model) renderInstances() string {
	s := m.state

	title := fmt.Sprintf("Instances (%d of %d)  filter: %s", len(s.Instances), s.InstancesTotal, s.Filter)
	lines := []string{
		LabelStyle.Render(title),
		TableHeaderStyle.Render("  " + pad("INSTANCE", 26) + pad("STATUS", 11) + pad("TENANT", 14) + pad("IMAGE", 26) + pad("CREATED", 20) + pad("FINISHED", 20)),
	}

	if len(s.Instances) == 0 {
		lines = append(lines, LabelStyle.Render("  no instances"))
		return strings.Join(lines, "\n")
	}

	start, end := rowWindow(s.InstanceSelected, len(s.Instances), m.visibleRows())
	for i := start; i < end; i++ {
		inst := s.Instances[i]
		row := pad(inst.InstanceID, 26) +
			StatusStyle(inst.Status).Render(pad(inst.Status.String(), 11)) +
			pad(inst.TenantID, 14) +
			pad(inst.ImageID, 26) +
			pad(formatDateTime(inst.CreatedAt), 20) +
			pad(formatOptTime(inst.FinishedAt), 20)

		if i == s.InstanceSelected {
			lines = append(lines, RowSelectedStyle.Render("▸ ")+row)
		} else {
			lines = append(lines, RowStyle.Render("  ")+row)
		}
	}

	return strings.Join(lines, "\n")
}

func (m Model) renderImages() string {
	s := m.state

	title := fmt.Sprintf("Images (%d of %d)", len(s.Images), s.ImagesTotal)
	lines := []string{
		LabelStyle.Render(title),
		TableHeaderStyle.Render("  " + pad("IMAGE", 26) + pad("NAME", 22) + pad("TENANT", 14) + pad("RUNNER", 12) + pad("CREATED", 20) + pad("DESCRIPTION", 24)),
	}

	if len(s.Images) == 0 {
		lines = append(lines, LabelStyle.Render("  no images"))
		return strings.Join(lines, "\n")
	}

	start, end := rowWindow(s.ImageSelected, len(s.Images), m.visibleRows())
	for i := start; i < end; i++ {
		img := s.Images[i]
		desc := "-"
		if img.Description != nil {
			desc = *img.Description
		}
		row := pad(img.ImageID, 26) +
			pad(img.Name, 22) +
			pad(img.TenantID, 14) +
			pad(img.RunnerType, 12) +
			pad(formatDateTime(img.CreatedAt), 20) +
			pad(desc, 24)

		if i == s.ImageSelected {
			lines = append(lines, RowSelectedStyle.Render("▸ ")+row)
		} else {
			lines = append(lines, RowStyle.Render("  ")+row)
		}
	}

	return strings.Join(lines, "\n")
}

func (m Model) renderMetrics() string {
	s := m.state

	if m.cfg.Tenant == "" {
		return LabelStyle.Render("Metrics require a tenant. Start with --tenant or set one in the config file.")
	}
	if s.Metrics == nil {
		return LabelStyle.Render("Metrics (" + s.Granularity.String() + ")\n  no data yet")
	}

	title := fmt.Sprintf("Metrics for %s (%s, %s to %s)",
		m.cfg.Tenant, s.Granularity,
		formatDateTime(s.Metrics.StartTime), formatDateTime(s.Metrics.EndTime))
	lines := []string{
		LabelStyle.Render(title),
		TableHeaderStyle.Render("  " + pad("BUCKET", 20) + pad("CALLS", 9) + pad("OK", 9) + pad("FAIL", 9) + pad("RATE", 9) + pad("AVG TIME", 11) + pad("AVG MEM", 11)),
	}

	if len(s.Metrics.Buckets) == 0 {
		lines = append(lines, LabelStyle.Render("  no buckets in range"))
		return strings.Join(lines, "\n")
	}

	start, end := rowWindow(s.MetricsSelected, len(s.Metrics.Buckets), m.visibleRows())
	for i := start; i < end; i++ {
		b := s.Metrics.Buckets[i]

		rate := pad("-", 9)
		if b.SuccessRatePercent != nil {
			rate = RateStyle(*b.SuccessRatePercent).Render(pad(fmt.Sprintf("%.1f%%", *b.SuccessRatePercent), 9))
		}
		avgDur := "-"
		if b.AvgDurationSeconds != nil {
			avgDur = formatDuration(time.Duration(*b.AvgDurationSeconds * float64(time.Second)))
		}
		avgMem := "-"
		if b.AvgMemoryBytes != nil {
			avgMem = formatBytes(*b.AvgMemoryBytes)
		}

		row := pad(formatDateTime(b.BucketTime), 20) +
			pad(fmt.Sprintf("%d", b.InvocationCount), 9) +
			pad(fmt.Sprintf("%d", b.SuccessCount), 9) +
			pad(fmt.Sprintf("%d", b.FailureCount), 9) +
			rate +
			pad(avgDur, 11) +
			pad(avgMem, 11)

		if i == s.MetricsSelected {
			lines = append(lines, RowSelectedStyle.Render("▸ ")+row)
		} else {
			lines = append(lines, RowStyle.Render("  ")+row)
		}
	}

	return strings.Join(lines, "\n")
}

func (m Model) renderHealth() string {
	s := m.state

	lines := []string{LabelStyle.Render("Server health")}
	kv := func(label, value string) string {
		return "  " + LabelStyle.Render(pad(label, 20)) + ValueStyle.Render(value)
	}

	lines = append(lines, kv("Server", m.cfg.Server))
	if s.Connected {
		lines = append(lines, kv("Connection", ConnectedStyle.Render("connected")))
	} else {
		lines = append(lines, kv("Connection", DisconnectedStyle.Render("offline")))
	}

	if s.Health == nil {
		lines = append(lines, kv("Status", "-"))
	} else {
		status := DisconnectedStyle.Render("unhealthy")
		if s.Health.Healthy {
			status = ConnectedStyle.Render("healthy")
		}
		lines = append(lines,
			kv("Status", status),
			kv("Version", s.Health.Version),
			kv("Uptime", formatDuration(time.Duration(s.Health.UptimeMS)*time.Millisecond)),
			kv("Active instances", fmt.Sprintf("%d", s.Health.ActiveInstances)),
		)
	}

	if !s.LastRefresh.IsZero() {
		lines = append(lines, kv("Last refresh", fmt.Sprintf("%ds ago", int(time.Since(s.LastRefresh).Seconds()))))
	}

	return strings.Join(lines, "\n")
}

func (m Model) renderFooter() string {
	hints := m.help.ShortHelpView(m.shortHelp())

	right := ""
	if m.cfg.Tenant != "" {
		right = "tenant: " + m.cfg.Tenant + "  "
	}
	if m.state.LastRefresh.IsZero() {
		right += "refreshing…"
	} else {
		remaining := m.cfg.RefreshInterval - time.Since(m.state.LastRefresh)
		if remaining < 0 {
			remaining = 0
		}
		right += fmt.Sprintf("next refresh in %ds", int(remaining.Seconds())+1)
	}
	right = LabelStyle.Render(right)

	gap := m.viewWidth() - lipgloss.Width(hints) - lipgloss.Width(right) - 2
	if gap < 1 {
		gap = 1
	}

	return FooterStyle.Render(hints + strings.Repeat(" ", gap) + right)
}
