package dashboard

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		name string
		d    time.Duration
		want string
	}{
		{name: "days and hours", d: 26 * time.Hour, want: "1d 2h"},
		{name: "hours and minutes", d: 3*time.Hour + 4*time.Minute, want: "3h 4m"},
		{name: "minutes and seconds", d: 5*time.Minute + 6*time.Second, want: "5m 6s"},
		{name: "seconds only", d: 7 * time.Second, want: "7s"},
		{name: "zero", d: 0, want: "0s"},
		{name: "negative clamps to zero", d: -3 * time.Second, want: "0s"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, formatDuration(tt.d))
		})
	}
}

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		n    int64
		want string
	}{
		{n: 0, want: "0 B"},
		{n: 512, want: "512 B"},
		{n: 2048, want: "2.0 KB"},
		{n: 5 * 1024 * 1024, want: "5.0 MB"},
		{n: 3 * 1024 * 1024 * 1024, want: "3.0 GB"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, formatBytes(tt.n))
	}
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "hello", truncate("hello", 10))
	assert.Equal(t, "hell…", truncate("hello world", 5))
	assert.Equal(t, "…", truncate("hello", 1))
	assert.Equal(t, "", truncate("hello", 0))
}

func TestPad(t *testing.T) {
	assert.Equal(t, "ab   ", pad("ab", 5))
	assert.Equal(t, "abcd…", pad("abcdefgh", 5))
	assert.Len(t, []rune(pad("x", 8)), 8)
}

func TestFormatOptTime(t *testing.T) {
	assert.Equal(t, "-", formatOptTime(nil))

	ts := time.Date(2026, 8, 20, 10, 0, 0, 0, time.UTC)
	assert.NotEqual(t, "-", formatOptTime(&ts))
}

func TestApplyScroll(t *testing.T) {
	content := "a\nb\nc\nd\ne"

	assert.Equal(t, content, applyScroll(content, 0, 10), "short content passes through")
	assert.Equal(t, "a\nb\nc", applyScroll(content, 0, 3))
	assert.Equal(t, "b\nc\nd", applyScroll(content, 1, 3))
	assert.Equal(t, "c\nd\ne", applyScroll(content, 99, 3), "offset saturates at the last window")
}

func TestPrettyJSON(t *testing.T) {
	assert.Equal(t, "-", prettyJSON(nil))
	assert.Equal(t, "{not json", prettyJSON([]byte("{not json")))

	out := prettyJSON([]byte(`{"a":1}`))
	assert.True(t, strings.Contains(out, "\"a\": 1"))
}
