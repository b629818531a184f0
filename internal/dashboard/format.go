package dashboard

import (
	"fmt"
	"time"
)

// formatDateTime renders a timestamp in the dashboard's fixed layout.
func formatDateTime(t time.Time) string {
	return t.Local().Format("2006-01-02 15:04:05")
}

// formatOptTime renders an optional timestamp, with a dash placeholder.
func formatOptTime(t *time.Time) string {
	if t == nil {
		return "-"
	}
	return formatDateTime(*t)
}

// formatDuration renders a duration as its two most significant units,
// e.g. "1d 2h", "3h 4m", "5m 6s", "7s".
func formatDuration(d time.Duration) string {
	if d < 0 {
		d = 0
	}

	days := int(d.Hours()) / 24
	hours := int(d.Hours()) % 24
	minutes := int(d.Minutes()) % 60
	seconds := int(d.Seconds()) % 60

	switch {
	case days > 0:
		return fmt.Sprintf("%dd %dh", days, hours)
	case hours > 0:
		return fmt.Sprintf("%dh %dm", hours, minutes)
	case minutes > 0:
		return fmt.Sprintf("%dm %ds", minutes, seconds)
	default:
		return fmt.Sprintf("%ds", seconds)
	}
}

// formatBytes renders a byte count with a binary-ish unit, one decimal.
func formatBytes(n int64) string {
	const (
		kb = 1024
		mb = kb * 1024
		gb = mb * 1024
	)

	switch {
	case n >= gb:
		return fmt.Sprintf("%.1f GB", float64(n)/float64(gb))
	case n >= mb:
		return fmt.Sprintf("%.1f MB", float64(n)/float64(mb))
	case n >= kb:
		return fmt.Sprintf("%.1f KB", float64(n)/float64(kb))
	default:
		return fmt.Sprintf("%d B", n)
	}
}

// truncate shortens s to max runes, replacing the tail with an ellipsis.
func truncate(s string, max int) string {
	if max <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	if max == 1 {
		return "…"
	}
	return string(runes[:max-1]) + "…"
}

// pad right-pads or truncates s to exactly width display columns. Assumes
// single-width runes, which holds for the IDs, names, and timestamps the
// tables show.
func pad(s string, width int) string {
	s = truncate(s, width)
	for len([]rune(s)) < width {
		s += " "
	}
	return s
}
