package config

import (
	"net"
	"strconv"
	"time"

	"github.com/runtara/runtop/internal/errors"
)

const (
	// DefaultServer is used when no address is given or the given one
	// cannot be parsed.
	DefaultServer = "127.0.0.1:8002"

	// DefaultRefreshInterval is how often the dashboard re-polls the server.
	DefaultRefreshInterval = 5 * time.Second

	// DefaultPageLimit caps every list fetch (instances, images, checkpoints).
	DefaultPageLimit = 100

	// DefaultConnectTimeout bounds connection establishment.
	DefaultConnectTimeout = 5 * time.Second

	// DefaultRequestTimeout bounds each request/response round trip.
	DefaultRequestTimeout = 10 * time.Second
)

// Config is the session configuration for a dashboard run. It is built once
// at startup from flags, environment, and an optional config file, and never
// mutated afterwards.
type Config struct {
	// Server is the management server address (host:port).
	Server string `yaml:"server" mapstructure:"server"`

	// Tenant optionally scopes instance/image lists and enables the
	// metrics tab.
	Tenant string `yaml:"tenant" mapstructure:"tenant"`

	// RefreshInterval is the auto-refresh period.
	RefreshInterval time.Duration `yaml:"refresh_interval" mapstructure:"refresh_interval"`

	// Insecure skips TLS certificate verification. Defaults to true
	// because local dev servers use self-signed certificates.
	Insecure bool `yaml:"insecure" mapstructure:"insecure"`

	// PageLimit caps every list fetch.
	PageLimit int `yaml:"page_limit" mapstructure:"page_limit"`

	// ConnectTimeout bounds connection establishment.
	ConnectTimeout time.Duration `yaml:"connect_timeout" mapstructure:"connect_timeout"`

	// RequestTimeout bounds each request/response round trip.
	RequestTimeout time.Duration `yaml:"request_timeout" mapstructure:"request_timeout"`
}

// Default returns a Config populated with default values.
func Default() *Config {
	return &Config{
		Server:          DefaultServer,
		RefreshInterval: DefaultRefreshInterval,
		Insecure:        true,
		PageLimit:       DefaultPageLimit,
		ConnectTimeout:  DefaultConnectTimeout,
		RequestTimeout:  DefaultRequestTimeout,
	}
}

// NormalizeServer validates addr as host:port and returns it. An empty or
// unparsable address falls back to DefaultServer rather than failing
// startup; the returned error describes the fallback and is safe to log
// and otherwise ignore.
func NormalizeServer(addr string) (string, error) {
	if addr == "" {
		return DefaultServer, nil
	}

	host, port, err := net.SplitHostPort(addr)
	if err != nil {
		return DefaultServer, errors.WrapWithCode(err, errors.ErrConfig,
			"Invalid server address: "+addr,
			"Use host:port, e.g. "+DefaultServer+". Falling back to the default.")
	}
	if host == "" {
		return DefaultServer, errors.New(errors.ErrConfig,
			"Invalid server address: "+addr,
			"Host part is empty. Falling back to the default.")
	}
	if p, convErr := strconv.Atoi(port); convErr != nil || p < 1 || p > 65535 {
		return DefaultServer, errors.New(errors.ErrConfig,
			"Invalid server port in address: "+addr,
			"Port must be 1-65535. Falling back to the default.")
	}

	return addr, nil
}

// Validate checks invariants that cannot be repaired by falling back.
func Validate(cfg *Config) error {
	if cfg.RefreshInterval < time.Second {
		return errors.New(errors.ErrConfig,
			"Refresh interval too short",
			"Minimum interval is 1s to avoid overwhelming the server")
	}
	if cfg.PageLimit < 1 {
		return errors.New(errors.ErrConfig,
			"Page limit must be positive",
			"Use a limit between 1 and 1000")
	}
	return nil
}
