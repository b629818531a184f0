package dashboard

import (
	"context"
	"time"

	"github.com/runtara/runtop/internal/client"
	"github.com/runtara/runtop/internal/config"
	"github.com/runtara/runtop/internal/errors"
	"github.com/runtara/runtop/internal/logger"
)

// Orchestrator runs the remote call sequences that populate the view model:
// full refresh cycles and the on-demand drill-down fetches. It holds no view
// state itself; results are carried back as values and merged into State on
// the update loop.
type Orchestrator struct {
	api client.API
	cfg *config.Config
	log logger.Logger
}

// NewOrchestrator builds an orchestrator over the given API.
func NewOrchestrator(api client.API, cfg *config.Config) *Orchestrator {
	return &Orchestrator{
		api: api,
		cfg: cfg,
		log: logger.Default(),
	}
}

// RefreshOutcome is everything one refresh cycle produced. Nil data fields
// mean that fetch failed or was skipped; the corresponding view data is left
// as it was.
type RefreshOutcome struct {
	Connected bool
	Health    *client.HealthStatus
	Instances *client.InstancePage
	Images    *client.ImagePage
	Metrics   *client.MetricsResult

	// Err is the last failure of the cycle. When Connected is false it is
	// the connect failure and nothing else was attempted.
	Err error

	FinishedAt time.Time
}

// Refresh runs one full cycle: connect, then health, instances, images, and
// (with a tenant configured) metrics, in that order. The connect step gates
// everything; each later fetch fails independently without stopping the
// rest. The filter and granularity are snapshotted by the caller so a cycle
// is unaffected by input arriving while it runs.
func (o *Orchestrator) Refresh(ctx context.Context, filter StatusFilter, granularity client.MetricsGranularity) RefreshOutcome {
	out := RefreshOutcome{}

	if err := o.api.Connect(ctx); err != nil {
		o.log.Debug("refresh: connect failed: %v", err)
		out.Err = err
		out.FinishedAt = time.Now()
		return out
	}
	out.Connected = true

	health, err := o.api.HealthCheck(ctx)
	if err != nil {
		out.Err = errors.Wrap(err, "Health check failed")
	} else {
		out.Health = health
	}

	instances, err := o.api.ListInstances(ctx, client.ListInstancesOptions{
		TenantID: o.cfg.Tenant,
		Status:   filter.Status(),
		Limit:    o.cfg.PageLimit,
	})
	if err != nil {
		out.Err = errors.Wrap(err, "Instance list fetch failed")
	} else {
		out.Instances = instances
	}

	images, err := o.api.ListImages(ctx, client.ListImagesOptions{
		TenantID: o.cfg.Tenant,
		Limit:    o.cfg.PageLimit,
	})
	if err != nil {
		out.Err = errors.Wrap(err, "Image list fetch failed")
	} else {
		out.Images = images
	}

	if o.cfg.Tenant != "" {
		metrics, err := o.api.GetTenantMetrics(ctx, o.cfg.Tenant, granularity)
		if err != nil {
			out.Err = errors.Wrap(err, "Tenant metrics fetch failed")
		} else {
			out.Metrics = metrics
		}
	}

	out.FinishedAt = time.Now()
	return out
}

// ApplyRefresh merges a cycle's outcome into the state. Successful fetches
// commit; failed ones leave the previously displayed data untouched. The
// last-refresh stamp is taken from the outcome unconditionally so the
// auto-refresh timer restarts even after a failed cycle.
func ApplyRefresh(s *State, out RefreshOutcome) {
	s.ClearError()
	s.Connected = out.Connected
	s.LastRefresh = out.FinishedAt

	if !out.Connected {
		s.SetError(out.Err)
		return
	}

	if out.Health != nil {
		s.Health = out.Health
	}
	if out.Instances != nil {
		s.SetInstances(out.Instances.Instances, out.Instances.TotalCount)
	}
	if out.Images != nil {
		s.SetImages(out.Images.Images, out.Images.TotalCount)
	}
	if out.Metrics != nil {
		s.SetMetrics(out.Metrics)
	}

	if out.Err != nil {
		s.SetError(out.Err)
	}
}

// OpenInstance fetches the full record for one instance, with its own
// connect check. The caller pushes the detail frame only on success.
func (o *Orchestrator) OpenInstance(ctx context.Context, instanceID string) (*client.InstanceDetail, error) {
	if err := o.api.Connect(ctx); err != nil {
		return nil, err
	}
	return o.api.GetInstance(ctx, instanceID)
}

// OpenCheckpoints fetches the checkpoint list for one instance, with its own
// connect check.
func (o *Orchestrator) OpenCheckpoints(ctx context.Context, instanceID string) (*client.CheckpointPage, error) {
	if err := o.api.Connect(ctx); err != nil {
		return nil, err
	}
	return o.api.ListCheckpoints(ctx, instanceID, o.cfg.PageLimit)
}

// OpenCheckpoint fetches one checkpoint with its payload, with its own
// connect check. A checkpoint pruned since the list was fetched comes back
// as a not-found error rather than (nil, nil), so the caller has one error
// path to surface.
func (o *Orchestrator) OpenCheckpoint(ctx context.Context, instanceID, checkpointID string) (*client.Checkpoint, error) {
	if err := o.api.Connect(ctx); err != nil {
		return nil, err
	}

	cp, err := o.api.GetCheckpoint(ctx, instanceID, checkpointID)
	if err != nil {
		return nil, err
	}
	if cp == nil {
		return nil, errors.New(errors.ErrNotFound,
			"Checkpoint "+checkpointID+" no longer exists",
			"It was likely pruned by the server. Refresh the checkpoint list.")
	}
	return cp, nil
}
