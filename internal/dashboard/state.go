package dashboard

import (
	"time"

	"github.com/runtara/runtop/internal/client"
)

// Tab is one of the four top-level data categories.
type Tab int

const (
	TabInstances Tab = iota
	TabImages
	TabMetrics
	TabHealth
)

const tabCount = 4

// String returns the tab's display label.
func (t Tab) String() string {
	switch t {
	case TabInstances:
		return "Instances"
	case TabImages:
		return "Images"
	case TabMetrics:
		return "Metrics"
	case TabHealth:
		return "Health"
	default:
		return "Instances"
	}
}

// FrameKind identifies one level of the drill-down navigation stack.
type FrameKind int

const (
	FrameList FrameKind = iota
	FrameInstanceDetail
	FrameCheckpointsList
	FrameCheckpointDetail
)

// StatusFilter restricts the instance list fetch to one lifecycle status.
type StatusFilter int

const (
	FilterAll StatusFilter = iota
	FilterRunning
	FilterCompleted
	FilterFailed
	FilterPending
	FilterSuspended
)

const filterCount = 6

// Next cycles to the next filter, wrapping to All after the last one.
func (f StatusFilter) Next() StatusFilter {
	return StatusFilter((int(f) + 1) % filterCount)
}

// String returns the filter's display label.
func (f StatusFilter) String() string {
	switch f {
	case FilterRunning:
		return "Running"
	case FilterCompleted:
		return "Completed"
	case FilterFailed:
		return "Failed"
	case FilterPending:
		return "Pending"
	case FilterSuspended:
		return "Suspended"
	default:
		return "All"
	}
}

// Status returns the wire status to request, or nil for All.
func (f StatusFilter) Status() *client.InstanceStatus {
	var s client.InstanceStatus
	switch f {
	case FilterRunning:
		s = client.StatusRunning
	case FilterCompleted:
		s = client.StatusCompleted
	case FilterFailed:
		s = client.StatusFailed
	case FilterPending:
		s = client.StatusPending
	case FilterSuspended:
		s = client.StatusSuspended
	default:
		return nil
	}
	return &s
}

// State is the view model: everything the dashboard displays and the cursors
// into it. All mutation happens on the single Bubble Tea update loop, so no
// locking is needed. Collections are replaced wholesale by refresh cycles;
// selection indices are re-clamped on every replacement so they never dangle.
type State struct {
	Tab    Tab
	frames []FrameKind

	Instances        []client.InstanceSummary
	InstancesTotal   int
	InstanceSelected int

	Images        []client.ImageSummary
	ImagesTotal   int
	ImageSelected int

	Metrics         *client.MetricsResult
	MetricsSelected int
	Granularity     client.MetricsGranularity

	Health *client.HealthStatus

	// Drill-down data, scoped to the frame that owns it and released on pop.
	Detail             *client.InstanceDetail
	Checkpoints        []client.CheckpointSummary
	CheckpointsTotal   int
	CheckpointSelected int
	Checkpoint         *client.Checkpoint

	Filter StatusFilter

	Scroll      int
	Err         error
	Connected   bool
	LastRefresh time.Time
}

// NewState returns the empty startup state: base List frame, Instances tab,
// hourly metrics, no data.
func NewState() *State {
	return &State{
		frames:      []FrameKind{FrameList},
		Granularity: client.GranularityHourly,
	}
}

// CurrentFrame returns the innermost navigation frame.
func (s *State) CurrentFrame() FrameKind {
	return s.frames[len(s.frames)-1]
}

// Depth returns the navigation stack depth (1 at the base List frame).
func (s *State) Depth() int {
	return len(s.frames)
}

// AdvanceTab rotates to the next tab, wrapping around.
func (s *State) AdvanceTab() {
	s.Tab = Tab((int(s.Tab) + 1) % tabCount)
}

// RetreatTab rotates to the previous tab, wrapping around.
func (s *State) RetreatTab() {
	s.Tab = Tab((int(s.Tab) + tabCount - 1) % tabCount)
}

// SelectTab jumps to the tab at index, falling back to Instances when the
// index is out of range.
func (s *State) SelectTab(index int) {
	if index < 0 || index >= tabCount {
		s.Tab = TabInstances
		return
	}
	s.Tab = Tab(index)
}

// MoveSelection moves the cursor of the collection backing the active tab by
// delta, cyclically. No-op on an empty collection and on the Health tab.
func (s *State) MoveSelection(delta int) {
	switch s.Tab {
	case TabInstances:
		s.InstanceSelected = cycle(s.InstanceSelected, delta, len(s.Instances))
	case TabImages:
		s.ImageSelected = cycle(s.ImageSelected, delta, len(s.Images))
	case TabMetrics:
		if s.Metrics != nil {
			s.MetricsSelected = cycle(s.MetricsSelected, delta, len(s.Metrics.Buckets))
		}
	}
}

// MoveCheckpointSelection moves the checkpoint list cursor by delta,
// cyclically. No-op when the list is empty.
func (s *State) MoveCheckpointSelection(delta int) {
	s.CheckpointSelected = cycle(s.CheckpointSelected, delta, len(s.Checkpoints))
}

// CycleStatusFilter advances the instance status filter to the next value.
// The new filter takes effect at the next refresh.
func (s *State) CycleStatusFilter() {
	s.Filter = s.Filter.Next()
}

// ToggleGranularity flips the metrics granularity and resets the bucket
// cursor, since buckets from the old granularity no longer line up.
func (s *State) ToggleGranularity() {
	s.Granularity = s.Granularity.Toggle()
	s.MetricsSelected = 0
}

// PushInstanceDetail enters the instance detail frame. Legal only from the
// base List frame; otherwise a no-op.
func (s *State) PushInstanceDetail(detail *client.InstanceDetail) {
	if s.CurrentFrame() != FrameList || detail == nil {
		return
	}
	s.Detail = detail
	s.Scroll = 0
	s.frames = append(s.frames, FrameInstanceDetail)
}

// PushCheckpoints enters the checkpoint list frame for the open instance.
// Legal only from the InstanceDetail frame; otherwise a no-op.
func (s *State) PushCheckpoints(checkpoints []client.CheckpointSummary, total int) {
	if s.CurrentFrame() != FrameInstanceDetail {
		return
	}
	s.Checkpoints = checkpoints
	s.CheckpointsTotal = total
	s.CheckpointSelected = 0
	s.frames = append(s.frames, FrameCheckpointsList)
}

// PushCheckpointDetail enters the checkpoint detail frame. Legal only from
// the CheckpointsList frame; otherwise a no-op.
func (s *State) PushCheckpointDetail(cp *client.Checkpoint) {
	if s.CurrentFrame() != FrameCheckpointsList || cp == nil {
		return
	}
	s.Checkpoint = cp
	s.Scroll = 0
	s.frames = append(s.frames, FrameCheckpointDetail)
}

// PopFrame leaves the current frame and releases the data it owns. No-op at
// the base List frame.
func (s *State) PopFrame() {
	top := s.CurrentFrame()
	if top == FrameList {
		return
	}

	switch top {
	case FrameInstanceDetail:
		s.Detail = nil
	case FrameCheckpointsList:
		s.Checkpoints = nil
		s.CheckpointsTotal = 0
		s.CheckpointSelected = 0
	case FrameCheckpointDetail:
		s.Checkpoint = nil
	}

	s.frames = s.frames[:len(s.frames)-1]
	s.Scroll = 0
}

// ScrollBy adjusts the detail pane scroll offset, flooring at zero. The
// renderer clips the top end to the content length.
func (s *State) ScrollBy(delta int) {
	s.Scroll += delta
	if s.Scroll < 0 {
		s.Scroll = 0
	}
}

// SetError records err in the single error slot, replacing any prior one.
func (s *State) SetError(err error) {
	s.Err = err
}

// ClearError empties the error slot.
func (s *State) ClearError() {
	s.Err = nil
}

// SetInstances replaces the instance collection and re-clamps its cursor.
func (s *State) SetInstances(items []client.InstanceSummary, total int) {
	s.Instances = items
	s.InstancesTotal = total
	s.InstanceSelected = clamp(s.InstanceSelected, len(items))
}

// SetImages replaces the image collection and re-clamps its cursor.
func (s *State) SetImages(items []client.ImageSummary, total int) {
	s.Images = items
	s.ImagesTotal = total
	s.ImageSelected = clamp(s.ImageSelected, len(items))
}

// SetMetrics replaces the metrics result and re-clamps the bucket cursor.
func (s *State) SetMetrics(result *client.MetricsResult) {
	s.Metrics = result
	n := 0
	if result != nil {
		n = len(result.Buckets)
	}
	s.MetricsSelected = clamp(s.MetricsSelected, n)
}

// SelectedInstance returns the instance under the cursor, or nil when the
// list is empty.
func (s *State) SelectedInstance() *client.InstanceSummary {
	if len(s.Instances) == 0 {
		return nil
	}
	return &s.Instances[clamp(s.InstanceSelected, len(s.Instances))]
}

// SelectedCheckpoint returns the checkpoint under the cursor, or nil when
// the list is empty.
func (s *State) SelectedCheckpoint() *client.CheckpointSummary {
	if len(s.Checkpoints) == 0 {
		return nil
	}
	return &s.Checkpoints[clamp(s.CheckpointSelected, len(s.Checkpoints))]
}

// RefreshDue reports whether an auto-refresh should start: true when no
// refresh has ever completed, or the interval has elapsed since the last.
func (s *State) RefreshDue(interval time.Duration, now time.Time) bool {
	if s.LastRefresh.IsZero() {
		return true
	}
	return now.Sub(s.LastRefresh) >= interval
}

// clamp keeps a selection index valid for a collection of length n: it is
// pulled back to the last valid index when the collection shrank past it,
// and pinned to 0 when the collection is empty.
func clamp(selected, n int) int {
	if n == 0 {
		return 0
	}
	if selected >= n {
		return n - 1
	}
	if selected < 0 {
		return 0
	}
	return selected
}

// cycle moves a selection index by delta modulo n, so movement wraps at both
// ends. Returns the index unchanged when n is 0.
func cycle(selected, delta, n int) int {
	if n == 0 {
		return selected
	}
	return ((selected+delta)%n + n) % n
}
