package dashboard

import (
	"bytes"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"strings"
	"time"

	"github.com/runtara/runtop/internal/errors"
)

// modalHeight is the content line budget inside a detail modal before the
// scroll offset starts clipping.
func (m Model) modalHeight() int {
	h := m.viewHeight() - 8
	if h < 5 {
		h = 5
	}
	return h
}

// applyScroll clips content to height lines starting at offset. The offset
// saturates against the content length so scrolling past the end shows the
// final window rather than a blank pane.
func applyScroll(content string, offset, height int) string {
	lines := strings.Split(content, "\n")
	if len(lines) <= height {
		return content
	}
	if offset > len(lines)-height {
		offset = len(lines) - height
	}
	if offset < 0 {
		offset = 0
	}
	return strings.Join(lines[offset:offset+height], "\n")
}

// prettyJSON indents a raw JSON payload for display, falling back to the
// raw bytes when they do not parse.
func prettyJSON(raw []byte) string {
	if len(raw) == 0 {
		return "-"
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, raw, "", "  "); err != nil {
		return string(raw)
	}
	return buf.String()
}

func detailLine(label, value string) string {
	return LabelStyle.Render(pad(label, 14)) + ValueStyle.Render(value)
}

func (m Model) renderInstanceDetail() string {
	d := m.state.Detail
	if d == nil {
		return ModalStyle.Render("no instance loaded")
	}

	lines := []string{
		detailLine("Instance", d.InstanceID),
		LabelStyle.Render(pad("Status", 14)) + StatusStyle(d.Status).Render(d.Status.String()),
		detailLine("Tenant", d.TenantID),
		detailLine("Image", fmt.Sprintf("%s (%s)", d.ImageName, d.ImageID)),
		detailLine("Created", formatDateTime(d.CreatedAt)),
		detailLine("Started", formatOptTime(d.StartedAt)),
		detailLine("Heartbeat", formatOptTime(d.HeartbeatAt)),
		detailLine("Finished", formatOptTime(d.FinishedAt)),
		detailLine("Retries", fmt.Sprintf("%d / %d", d.RetryCount, d.MaxRetries)),
	}

	if d.StartedAt != nil {
		end := time.Now()
		if d.FinishedAt != nil {
			end = *d.FinishedAt
		}
		lines = append(lines, detailLine("Duration", formatDuration(end.Sub(*d.StartedAt))))
	}
	if d.CheckpointID != nil {
		lines = append(lines, detailLine("Checkpoint", *d.CheckpointID))
	}
	if d.Error != nil {
		lines = append(lines, LabelStyle.Render(pad("Error", 14))+DisconnectedStyle.Render(*d.Error))
	}

	lines = append(lines, "", LabelStyle.Render("Input"), prettyJSON(d.Input))
	lines = append(lines, "", LabelStyle.Render("Output"), prettyJSON(d.Output))

	body := applyScroll(strings.Join(lines, "\n"), m.state.Scroll, m.modalHeight())
	title := ModalTitleStyle.Render("Instance detail")
	footer := LabelStyle.Render("esc back · c checkpoints · j/k scroll")

	return ModalStyle.Render(title + "\n\n" + body + "\n\n" + footer)
}

func (m Model) renderCheckpointsList() string {
	s := m.state

	title := ModalTitleStyle.Render(fmt.Sprintf("Checkpoints (%d of %d)", len(s.Checkpoints), s.CheckpointsTotal))

	if len(s.Checkpoints) == 0 {
		body := LabelStyle.Render("no checkpoints for this instance")
		footer := LabelStyle.Render("esc back")
		return ModalStyle.Render(title + "\n\n" + body + "\n\n" + footer)
	}

	header := TableHeaderStyle.Render("  " + pad("CHECKPOINT", 26) + pad("CREATED", 20) + pad("SIZE", 10))
	lines := []string{header}

	start, end := rowWindow(s.CheckpointSelected, len(s.Checkpoints), m.modalHeight())
	for i := start; i < end; i++ {
		cp := s.Checkpoints[i]
		row := pad(cp.CheckpointID, 26) +
			pad(formatDateTime(cp.CreatedAt), 20) +
			pad(formatBytes(cp.DataSizeBytes), 10)

		if i == s.CheckpointSelected {
			lines = append(lines, RowSelectedStyle.Render("▸ ")+row)
		} else {
			lines = append(lines, RowStyle.Render("  ")+row)
		}
	}

	footer := LabelStyle.Render("esc back · enter open · j/k move")
	return ModalStyle.Render(title + "\n\n" + strings.Join(lines, "\n") + "\n\n" + footer)
}

func (m Model) renderCheckpointDetail() string {
	cp := m.state.Checkpoint
	if cp == nil {
		return ModalStyle.Render("no checkpoint loaded")
	}

	lines := []string{
		detailLine("Checkpoint", cp.CheckpointID),
		detailLine("Instance", cp.InstanceID),
		detailLine("Created", formatDateTime(cp.CreatedAt)),
		"",
		LabelStyle.Render("Data"),
		prettyJSON(cp.Data),
	}

	body := applyScroll(strings.Join(lines, "\n"), m.state.Scroll, m.modalHeight())
	title := ModalTitleStyle.Render("Checkpoint detail")
	footer := LabelStyle.Render("esc back · j/k scroll")

	return ModalStyle.Render(title + "\n\n" + body + "\n\n" + footer)
}

func (m Model) renderError() string {
	msg := "unknown error"
	if m.state.Err != nil {
		msg = shortError(m.state.Err)
	}

	title := ModalTitleStyle.Render("Error")
	footer := LabelStyle.Render("press any key to dismiss")

	width := m.viewWidth() * 2 / 3
	if width < 30 {
		width = 30
	}

	return ErrorModalStyle.Width(width).Render(title + "\n\n" + msg + "\n\n" + footer)
}

// shortError renders an error on a single line, preferring the structured
// short form over the multi-line CLI format.
func shortError(err error) string {
	var structured *errors.Error
	if stderrors.As(err, &structured) {
		return structured.Short()
	}
	return err.Error()
}
