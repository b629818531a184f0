package dashboard

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runtara/runtop/internal/client"
)

func summaries(ids ...string) []client.InstanceSummary {
	out := make([]client.InstanceSummary, len(ids))
	for i, id := range ids {
		out[i] = client.InstanceSummary{
			InstanceID: id,
			Status:     client.StatusRunning,
			TenantID:   "acme",
			CreatedAt:  time.Date(2026, 8, 20, 10, 0, 0, 0, time.UTC),
		}
	}
	return out
}

func TestNewState(t *testing.T) {
	s := NewState()

	assert.Equal(t, TabInstances, s.Tab)
	assert.Equal(t, FrameList, s.CurrentFrame())
	assert.Equal(t, 1, s.Depth())
	assert.Equal(t, FilterAll, s.Filter)
	assert.Equal(t, client.GranularityHourly, s.Granularity)
	assert.False(t, s.Connected)
}

func TestTabRotation(t *testing.T) {
	s := NewState()

	for i := 0; i < tabCount; i++ {
		s.AdvanceTab()
	}
	assert.Equal(t, TabInstances, s.Tab, "full forward rotation returns to start")

	s.RetreatTab()
	assert.Equal(t, TabHealth, s.Tab, "retreat from first tab wraps to last")
}

func TestSelectTab(t *testing.T) {
	s := NewState()

	s.SelectTab(2)
	assert.Equal(t, TabMetrics, s.Tab)

	s.SelectTab(99)
	assert.Equal(t, TabInstances, s.Tab, "out-of-range index falls back to Instances")

	s.SelectTab(-1)
	assert.Equal(t, TabInstances, s.Tab)
}

func TestMoveSelection_Cyclic(t *testing.T) {
	s := NewState()
	s.SetInstances(summaries("a", "b", "c"), 3)

	s.MoveSelection(1)
	assert.Equal(t, 1, s.InstanceSelected)

	s.MoveSelection(-2)
	assert.Equal(t, 2, s.InstanceSelected, "moving past the start wraps to the end")

	// A full lap lands back where it started.
	for i := 0; i < 3; i++ {
		s.MoveSelection(1)
	}
	assert.Equal(t, 2, s.InstanceSelected)
}

func TestMoveSelection_EmptyIsNoop(t *testing.T) {
	s := NewState()

	s.MoveSelection(1)
	assert.Equal(t, 0, s.InstanceSelected)

	s.Tab = TabMetrics
	s.MoveSelection(1)
	assert.Equal(t, 0, s.MetricsSelected)

	s.Tab = TabHealth
	s.MoveSelection(1)
}

func TestMoveSelection_PerTab(t *testing.T) {
	s := NewState()
	s.SetInstances(summaries("a", "b"), 2)
	s.SetImages([]client.ImageSummary{{ImageID: "i1"}, {ImageID: "i2"}, {ImageID: "i3"}}, 3)

	s.Tab = TabImages
	s.MoveSelection(1)

	assert.Equal(t, 1, s.ImageSelected)
	assert.Equal(t, 0, s.InstanceSelected, "image cursor moves independently")
}

func TestSelectionClamp(t *testing.T) {
	tests := []struct {
		name     string
		selected int
		newLen   int
		want     int
	}{
		{name: "shrink past cursor", selected: 2, newLen: 1, want: 0},
		{name: "shrink to cursor", selected: 2, newLen: 3, want: 2},
		{name: "shrink to empty", selected: 2, newLen: 0, want: 0},
		{name: "grow keeps cursor", selected: 1, newLen: 5, want: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewState()
			s.SetInstances(summaries("a", "b", "c"), 3)
			s.InstanceSelected = tt.selected

			ids := make([]string, tt.newLen)
			for i := range ids {
				ids[i] = "x"
			}
			s.SetInstances(summaries(ids...), tt.newLen)

			assert.Equal(t, tt.want, s.InstanceSelected)
		})
	}
}

func TestCycleStatusFilter_WrapsAfterSix(t *testing.T) {
	s := NewState()

	seen := map[StatusFilter]bool{s.Filter: true}
	for i := 0; i < filterCount-1; i++ {
		s.CycleStatusFilter()
		seen[s.Filter] = true
	}
	assert.Len(t, seen, filterCount, "every filter value is reachable")

	s.CycleStatusFilter()
	assert.Equal(t, FilterAll, s.Filter, "sixth cycle returns to All")
}

func TestStatusFilter_Status(t *testing.T) {
	assert.Nil(t, FilterAll.Status())

	require.NotNil(t, FilterSuspended.Status())
	assert.Equal(t, client.StatusSuspended, *FilterSuspended.Status())
}

func TestToggleGranularity_ResetsSelection(t *testing.T) {
	s := NewState()
	s.SetMetrics(&client.MetricsResult{
		Granularity: client.GranularityHourly,
		Buckets:     make([]client.MetricsBucket, 5),
	})
	s.MetricsSelected = 4

	s.ToggleGranularity()

	assert.Equal(t, client.GranularityDaily, s.Granularity)
	assert.Equal(t, 0, s.MetricsSelected)
}

func TestFrameTransitions(t *testing.T) {
	s := NewState()

	// Pop at the base frame is a no-op.
	s.PopFrame()
	assert.Equal(t, 1, s.Depth())

	// Frames can only be entered in order.
	s.PushCheckpoints(nil, 0)
	assert.Equal(t, 1, s.Depth(), "checkpoints cannot open without an instance detail")
	s.PushCheckpointDetail(&client.Checkpoint{CheckpointID: "cp-1"})
	assert.Equal(t, 1, s.Depth())

	s.PushInstanceDetail(&client.InstanceDetail{InstanceID: "wi-1"})
	assert.Equal(t, FrameInstanceDetail, s.CurrentFrame())

	s.PushInstanceDetail(&client.InstanceDetail{InstanceID: "wi-2"})
	assert.Equal(t, 2, s.Depth(), "detail cannot be pushed twice")
	assert.Equal(t, "wi-1", s.Detail.InstanceID)

	s.PushCheckpoints([]client.CheckpointSummary{{CheckpointID: "cp-1", InstanceID: "wi-1"}}, 1)
	assert.Equal(t, FrameCheckpointsList, s.CurrentFrame())

	s.PushCheckpointDetail(&client.Checkpoint{CheckpointID: "cp-1"})
	assert.Equal(t, FrameCheckpointDetail, s.CurrentFrame())
	assert.Equal(t, 4, s.Depth())
}

func TestPopFrame_ReleasesFrameData(t *testing.T) {
	s := NewState()
	s.PushInstanceDetail(&client.InstanceDetail{InstanceID: "wi-1"})
	s.PushCheckpoints([]client.CheckpointSummary{{CheckpointID: "cp-1"}}, 1)
	s.PushCheckpointDetail(&client.Checkpoint{CheckpointID: "cp-1"})

	s.PopFrame()
	assert.Nil(t, s.Checkpoint)
	assert.NotEmpty(t, s.Checkpoints, "popping checkpoint detail keeps the list")

	s.PopFrame()
	assert.Empty(t, s.Checkpoints)
	assert.NotNil(t, s.Detail, "popping the checkpoint list keeps the instance detail")

	s.PopFrame()
	assert.Nil(t, s.Detail)
	assert.Equal(t, FrameList, s.CurrentFrame())
}

func TestPushResetsScroll(t *testing.T) {
	s := NewState()
	s.ScrollBy(10)

	s.PushInstanceDetail(&client.InstanceDetail{InstanceID: "wi-1"})
	assert.Equal(t, 0, s.Scroll)

	s.ScrollBy(5)
	s.PopFrame()
	assert.Equal(t, 0, s.Scroll)
}

func TestScrollBy_FloorsAtZero(t *testing.T) {
	s := NewState()

	s.ScrollBy(-3)
	assert.Equal(t, 0, s.Scroll)

	s.ScrollBy(7)
	s.ScrollBy(-100)
	assert.Equal(t, 0, s.Scroll)
}

func TestSelectedInstance(t *testing.T) {
	s := NewState()
	assert.Nil(t, s.SelectedInstance())

	s.SetInstances(summaries("a", "b"), 2)
	s.InstanceSelected = 1
	require.NotNil(t, s.SelectedInstance())
	assert.Equal(t, "b", s.SelectedInstance().InstanceID)
}

func TestSelectedCheckpoint(t *testing.T) {
	s := NewState()
	assert.Nil(t, s.SelectedCheckpoint())

	s.PushInstanceDetail(&client.InstanceDetail{InstanceID: "wi-1"})
	s.PushCheckpoints([]client.CheckpointSummary{
		{CheckpointID: "cp-1"},
		{CheckpointID: "cp-2"},
	}, 2)
	s.MoveCheckpointSelection(1)

	require.NotNil(t, s.SelectedCheckpoint())
	assert.Equal(t, "cp-2", s.SelectedCheckpoint().CheckpointID)

	s.MoveCheckpointSelection(1)
	assert.Equal(t, 0, s.CheckpointSelected, "checkpoint cursor wraps")
}

func TestRefreshDue(t *testing.T) {
	s := NewState()
	now := time.Now()

	assert.True(t, s.RefreshDue(5*time.Second, now), "due when never refreshed")

	s.LastRefresh = now.Add(-2 * time.Second)
	assert.False(t, s.RefreshDue(5*time.Second, now))

	s.LastRefresh = now.Add(-5 * time.Second)
	assert.True(t, s.RefreshDue(5*time.Second, now))
}

func TestErrorSlot(t *testing.T) {
	s := NewState()

	s.SetError(assert.AnError)
	assert.Equal(t, assert.AnError, s.Err)

	s.ClearError()
	assert.Nil(t, s.Err)
}
