package config

import (
	"os"
	"path/filepath"

	"github.com/runtara/runtop/internal/errors"
	"github.com/spf13/viper"
)

const (
	// ConfigDir is the directory under the user home for runtop config.
	ConfigDir = ".config/runtop"
	// ConfigFile is the config file name inside ConfigDir.
	ConfigFile = "config.yaml"
)

// Env variable names recognized for the two connection settings. These
// predate the config file and are kept for compatibility with the server
// tooling, which exports them.
const (
	EnvServer   = "RUNTARA_ENV_ADDR"
	EnvInsecure = "RUNTARA_SKIP_CERT_VERIFICATION"
	EnvTenant   = "RUNTARA_TENANT"
)

// Load builds the session config. Precedence, lowest to highest:
// defaults, config file, environment variables. Flag values are merged by
// the caller afterwards since only it knows which flags were set.
//
// explicit is the --config flag value; when empty the default location is
// tried and silently skipped if absent.
func Load(explicit string) (*Config, error) {
	v := viper.New()

	v.SetDefault("server", DefaultServer)
	v.SetDefault("refresh_interval", DefaultRefreshInterval)
	v.SetDefault("insecure", true)
	v.SetDefault("page_limit", DefaultPageLimit)
	v.SetDefault("connect_timeout", DefaultConnectTimeout)
	v.SetDefault("request_timeout", DefaultRequestTimeout)

	_ = v.BindEnv("server", EnvServer)
	_ = v.BindEnv("insecure", EnvInsecure)
	_ = v.BindEnv("tenant", EnvTenant)

	path := explicit
	if path == "" {
		path = DefaultPath()
		if _, err := os.Stat(path); err != nil {
			path = ""
		}
	}

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			if os.IsNotExist(err) {
				return nil, errors.WrapWithCode(err, errors.ErrConfig,
					"Config file not found: "+path,
					"Run 'runtop init' to create one, or check the --config path")
			}
			return nil, errors.WrapWithCode(err, errors.ErrConfig,
				"Failed to read config file: "+path,
				"Check the file exists and is valid YAML")
		}
	}

	cfg := Default()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrConfig,
			"Invalid config format",
			"Check the YAML syntax in "+path)
	}

	return cfg, nil
}

// DefaultPath returns the default config file location under the user home.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(ConfigDir, ConfigFile)
	}
	return filepath.Join(home, ConfigDir, ConfigFile)
}
