package client

import (
	"encoding/json"
	"time"
)

// InstanceStatus is the lifecycle state of an instance as reported by the
// management server.
type InstanceStatus string

const (
	StatusPending   InstanceStatus = "pending"
	StatusRunning   InstanceStatus = "running"
	StatusSuspended InstanceStatus = "suspended"
	StatusCompleted InstanceStatus = "completed"
	StatusFailed    InstanceStatus = "failed"
	StatusCancelled InstanceStatus = "cancelled"
)

// String returns the display label for the status.
func (s InstanceStatus) String() string {
	switch s {
	case StatusPending:
		return "Pending"
	case StatusRunning:
		return "Running"
	case StatusSuspended:
		return "Suspended"
	case StatusCompleted:
		return "Completed"
	case StatusFailed:
		return "Failed"
	case StatusCancelled:
		return "Cancelled"
	default:
		return "Unknown"
	}
}

// MetricsGranularity selects the bucket width for tenant metrics.
type MetricsGranularity string

const (
	GranularityHourly MetricsGranularity = "hourly"
	GranularityDaily  MetricsGranularity = "daily"
)

// String returns the display label for the granularity.
func (g MetricsGranularity) String() string {
	if g == GranularityDaily {
		return "Daily"
	}
	return "Hourly"
}

// Toggle flips between hourly and daily.
func (g MetricsGranularity) Toggle() MetricsGranularity {
	if g == GranularityHourly {
		return GranularityDaily
	}
	return GranularityHourly
}

// InstanceSummary is one row of the instance list.
type InstanceSummary struct {
	InstanceID string         `json:"instance_id"`
	Status     InstanceStatus `json:"status"`
	TenantID   string         `json:"tenant_id"`
	ImageID    string         `json:"image_id"`
	CreatedAt  time.Time      `json:"created_at"`
	FinishedAt *time.Time     `json:"finished_at,omitempty"`
}

// InstanceDetail is the full record for one instance.
type InstanceDetail struct {
	InstanceID   string          `json:"instance_id"`
	Status       InstanceStatus  `json:"status"`
	TenantID     string          `json:"tenant_id"`
	ImageID      string          `json:"image_id"`
	ImageName    string          `json:"image_name"`
	CreatedAt    time.Time       `json:"created_at"`
	StartedAt    *time.Time      `json:"started_at,omitempty"`
	FinishedAt   *time.Time      `json:"finished_at,omitempty"`
	HeartbeatAt  *time.Time      `json:"heartbeat_at,omitempty"`
	CheckpointID *string         `json:"checkpoint_id,omitempty"`
	RetryCount   int             `json:"retry_count"`
	MaxRetries   int             `json:"max_retries"`
	Input        json.RawMessage `json:"input,omitempty"`
	Output       json.RawMessage `json:"output,omitempty"`
	Error        *string         `json:"error,omitempty"`
}

// ImageSummary is one row of the image list.
type ImageSummary struct {
	ImageID     string    `json:"image_id"`
	Name        string    `json:"name"`
	TenantID    string    `json:"tenant_id"`
	RunnerType  string    `json:"runner_type"`
	CreatedAt   time.Time `json:"created_at"`
	Description *string   `json:"description,omitempty"`
}

// CheckpointSummary is one row of an instance's checkpoint list.
type CheckpointSummary struct {
	CheckpointID  string    `json:"checkpoint_id"`
	InstanceID    string    `json:"instance_id"`
	CreatedAt     time.Time `json:"created_at"`
	DataSizeBytes int64     `json:"data_size_bytes"`
}

// Checkpoint is a full checkpoint record including its opaque payload.
type Checkpoint struct {
	CheckpointID string          `json:"checkpoint_id"`
	InstanceID   string          `json:"instance_id"`
	CreatedAt    time.Time       `json:"created_at"`
	Data         json.RawMessage `json:"data"`
}

// HealthStatus is the server's self-reported health.
type HealthStatus struct {
	Healthy         bool   `json:"healthy"`
	Version         string `json:"version"`
	UptimeMS        int64  `json:"uptime_ms"`
	ActiveInstances int    `json:"active_instances"`
}

// MetricsBucket is one aggregated time window of tenant metrics.
type MetricsBucket struct {
	BucketTime         time.Time `json:"bucket_time"`
	InvocationCount    int64     `json:"invocation_count"`
	SuccessCount       int64     `json:"success_count"`
	FailureCount       int64     `json:"failure_count"`
	SuccessRatePercent *float64  `json:"success_rate_percent,omitempty"`
	AvgDurationSeconds *float64  `json:"avg_duration_seconds,omitempty"`
	AvgMemoryBytes     *int64    `json:"avg_memory_bytes,omitempty"`
}

// MetricsResult is the aggregated metrics for one tenant over a time range.
type MetricsResult struct {
	StartTime   time.Time          `json:"start_time"`
	EndTime     time.Time          `json:"end_time"`
	Granularity MetricsGranularity `json:"granularity"`
	Buckets     []MetricsBucket    `json:"buckets"`
}

// InstancePage is a page of instance summaries plus the server-side total,
// which may exceed the number of fetched items.
type InstancePage struct {
	Instances  []InstanceSummary `json:"instances"`
	TotalCount int               `json:"total_count"`
}

// ImagePage is a page of image summaries plus the server-side total.
type ImagePage struct {
	Images     []ImageSummary `json:"images"`
	TotalCount int            `json:"total_count"`
}

// CheckpointPage is a page of checkpoint summaries plus the server-side total.
type CheckpointPage struct {
	Checkpoints []CheckpointSummary `json:"checkpoints"`
	TotalCount  int                 `json:"total_count"`
}

// ListInstancesOptions filters the instance list fetch.
type ListInstancesOptions struct {
	// TenantID restricts the list to one tenant when non-empty.
	TenantID string
	// Status restricts the list to one status when non-nil.
	Status *InstanceStatus
	// Limit caps the page size.
	Limit int
}

// ListImagesOptions filters the image list fetch.
type ListImagesOptions struct {
	// TenantID restricts the list to one tenant when non-empty.
	TenantID string
	// Limit caps the page size.
	Limit int
}
