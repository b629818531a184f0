package client

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/runtara/runtop/internal/config"
	"github.com/runtara/runtop/internal/errors"
	"github.com/runtara/runtop/internal/logger"
)

// API is the read-only surface of the management server the dashboard
// consumes. Implementations must be safe for use from a single goroutine;
// the dashboard never issues concurrent calls.
type API interface {
	// Connect verifies the server is reachable.
	Connect(ctx context.Context) error

	// HealthCheck fetches the server's self-reported health.
	HealthCheck(ctx context.Context) (*HealthStatus, error)

	// ListInstances fetches a page of instances, most recent first.
	ListInstances(ctx context.Context, opts ListInstancesOptions) (*InstancePage, error)

	// GetInstance fetches the full record for one instance.
	GetInstance(ctx context.Context, instanceID string) (*InstanceDetail, error)

	// ListCheckpoints fetches a page of an instance's checkpoints.
	ListCheckpoints(ctx context.Context, instanceID string, limit int) (*CheckpointPage, error)

	// GetCheckpoint fetches one checkpoint including its payload. A
	// checkpoint that no longer exists yields (nil, nil), not an error,
	// since checkpoints are pruned server-side at any time.
	GetCheckpoint(ctx context.Context, instanceID, checkpointID string) (*Checkpoint, error)

	// ListImages fetches a page of registered images.
	ListImages(ctx context.Context, opts ListImagesOptions) (*ImagePage, error)

	// GetTenantMetrics fetches aggregated metrics for one tenant.
	GetTenantMetrics(ctx context.Context, tenantID string, granularity MetricsGranularity) (*MetricsResult, error)
}

// Client talks to the management server's REST API over HTTPS.
type Client struct {
	baseURL string
	http    *http.Client
	log     logger.Logger
}

var _ API = (*Client)(nil)

// New builds a Client for the given session config. The server's TLS
// certificate is not verified when cfg.Insecure is set, which is the default
// because local servers run with self-signed certificates.
func New(cfg *config.Config) *Client {
	transport := &http.Transport{
		DialContext: (&net.Dialer{
			Timeout: cfg.ConnectTimeout,
		}).DialContext,
		TLSHandshakeTimeout: cfg.ConnectTimeout,
	}
	if cfg.Insecure {
		transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: true}
	}

	return &Client{
		baseURL: "https://" + cfg.Server + "/api/v1",
		http: &http.Client{
			Transport: transport,
			Timeout:   cfg.RequestTimeout,
		},
		log: logger.Default(),
	}
}

// NewWithBaseURL builds a Client against an explicit base URL. Used by tests
// to point at a local httptest server.
func NewWithBaseURL(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: config.DefaultRequestTimeout}
	}
	return &Client{
		baseURL: baseURL,
		http:    httpClient,
		log:     logger.Default(),
	}
}

func (c *Client) Connect(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/ping", nil)
	if err != nil {
		return errors.WrapWithCode(err, errors.ErrConnect,
			"Failed to build ping request", "")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return errors.WrapWithCode(err, errors.ErrConnect,
			"Cannot reach server",
			"Check the server address and that the server is running")
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode != http.StatusOK {
		return errors.New(errors.ErrConnect,
			fmt.Sprintf("Server refused connection (HTTP %d)", resp.StatusCode),
			"Check the server address and that the server is running")
	}

	c.log.Debug("connected to %s", c.baseURL)
	return nil
}

func (c *Client) HealthCheck(ctx context.Context) (*HealthStatus, error) {
	var health HealthStatus
	if err := c.getJSON(ctx, "/health", nil, &health); err != nil {
		return nil, err
	}
	return &health, nil
}

func (c *Client) ListInstances(ctx context.Context, opts ListInstancesOptions) (*InstancePage, error) {
	q := url.Values{}
	if opts.TenantID != "" {
		q.Set("tenant_id", opts.TenantID)
	}
	if opts.Status != nil {
		q.Set("status", string(*opts.Status))
	}
	if opts.Limit > 0 {
		q.Set("limit", strconv.Itoa(opts.Limit))
	}

	var page InstancePage
	if err := c.getJSON(ctx, "/instances", q, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

func (c *Client) GetInstance(ctx context.Context, instanceID string) (*InstanceDetail, error) {
	var detail InstanceDetail
	path := "/instances/" + url.PathEscape(instanceID)
	if err := c.getJSON(ctx, path, nil, &detail); err != nil {
		return nil, err
	}
	return &detail, nil
}

func (c *Client) ListCheckpoints(ctx context.Context, instanceID string, limit int) (*CheckpointPage, error) {
	q := url.Values{}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}

	var page CheckpointPage
	path := "/instances/" + url.PathEscape(instanceID) + "/checkpoints"
	if err := c.getJSON(ctx, path, q, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

func (c *Client) GetCheckpoint(ctx context.Context, instanceID, checkpointID string) (*Checkpoint, error) {
	var cp Checkpoint
	path := "/instances/" + url.PathEscape(instanceID) + "/checkpoints/" + url.PathEscape(checkpointID)
	err := c.getJSON(ctx, path, nil, &cp)
	if err != nil {
		if errors.IsCode(err, errors.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &cp, nil
}

func (c *Client) ListImages(ctx context.Context, opts ListImagesOptions) (*ImagePage, error) {
	q := url.Values{}
	if opts.TenantID != "" {
		q.Set("tenant_id", opts.TenantID)
	}
	if opts.Limit > 0 {
		q.Set("limit", strconv.Itoa(opts.Limit))
	}

	var page ImagePage
	if err := c.getJSON(ctx, "/images", q, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

func (c *Client) GetTenantMetrics(ctx context.Context, tenantID string, granularity MetricsGranularity) (*MetricsResult, error) {
	q := url.Values{}
	q.Set("granularity", string(granularity))

	var result MetricsResult
	path := "/tenants/" + url.PathEscape(tenantID) + "/metrics"
	if err := c.getJSON(ctx, path, q, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// getJSON performs a GET against path (relative to the base URL) and decodes
// the JSON response body into out.
func (c *Client) getJSON(ctx context.Context, path string, query url.Values, out any) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	start := time.Now()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return errors.Wrap(err, "Failed to build request for "+path)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return errors.WrapWithCode(err, errors.ErrConnect,
			"Request to "+path+" failed",
			"Check the server is still reachable")
	}
	defer resp.Body.Close()

	c.log.Debug("GET %s -> %d (%s)", path, resp.StatusCode, time.Since(start).Round(time.Millisecond))

	switch {
	case resp.StatusCode == http.StatusNotFound:
		io.Copy(io.Discard, resp.Body)
		return errors.New(errors.ErrNotFound,
			"Resource not found: "+path, "")
	case resp.StatusCode != http.StatusOK:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return errors.New(errors.ErrRequest,
			fmt.Sprintf("Server returned HTTP %d for %s: %s", resp.StatusCode, path, string(body)),
			"")
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return errors.Wrap(err, "Failed to decode response from "+path)
	}
	return nil
}
