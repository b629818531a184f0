package cli

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runtara/runtop/internal/config"
)

func testFlags(t *testing.T) *pflag.FlagSet {
	t.Helper()
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	addDashboardFlags(flags)
	return flags
}

func TestBuildConfig_Defaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	os.Unsetenv(config.EnvServer)
	os.Unsetenv(config.EnvTenant)

	cfg, err := buildConfig(testFlags(t))
	require.NoError(t, err)

	assert.Equal(t, config.DefaultServer, cfg.Server)
	assert.Equal(t, config.DefaultRefreshInterval, cfg.RefreshInterval)
	assert.Empty(t, cfg.Tenant)
}

func TestBuildConfig_FlagOverrides(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	flags := testFlags(t)
	require.NoError(t, flags.Set("server", "10.0.0.9:9000"))
	require.NoError(t, flags.Set("tenant", "acme"))
	require.NoError(t, flags.Set("refresh", "9"))
	require.NoError(t, flags.Set("insecure", "false"))

	cfg, err := buildConfig(flags)
	require.NoError(t, err)

	assert.Equal(t, "10.0.0.9:9000", cfg.Server)
	assert.Equal(t, "acme", cfg.Tenant)
	assert.Equal(t, 9*time.Second, cfg.RefreshInterval)
	assert.False(t, cfg.Insecure)
}

func TestBuildConfig_FlagBeatsEnv(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv(config.EnvServer, "192.168.0.2:8002")

	flags := testFlags(t)
	require.NoError(t, flags.Set("server", "10.0.0.9:9000"))

	cfg, err := buildConfig(flags)
	require.NoError(t, err)

	assert.Equal(t, "10.0.0.9:9000", cfg.Server)
}

func TestBuildConfig_BadAddressFallsBack(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	os.Unsetenv(config.EnvServer)

	flags := testFlags(t)
	require.NoError(t, flags.Set("server", "not an address"))

	cfg, err := buildConfig(flags)
	require.NoError(t, err, "an unparsable address never fails startup")
	assert.Equal(t, config.DefaultServer, cfg.Server)
}

func TestBuildConfig_InvalidRefreshRejected(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	flags := testFlags(t)
	require.NoError(t, flags.Set("refresh", "0"))

	_, err := buildConfig(flags)
	require.Error(t, err)
}

func TestFormatVersion(t *testing.T) {
	assert.Equal(t, "dev", formatVersion("dev"))
	assert.Equal(t, "", formatVersion(""))
	assert.Equal(t, "v1.2.3", formatVersion("1.2.3"))
	assert.Equal(t, "v1.2.3", formatVersion("v1.2.3"))
}

func TestRenderConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Server = "10.1.2.3:9900"
	cfg.Tenant = "acme"
	cfg.RefreshInterval = 10 * time.Second

	data, err := renderConfig(cfg)
	require.NoError(t, err)

	out := string(data)
	assert.Contains(t, out, "# runtop configuration")
	assert.Contains(t, out, "server: 10.1.2.3:9900")
	assert.Contains(t, out, "tenant: acme")
	assert.Contains(t, out, "refresh_interval: 10s")

	// The rendered file round-trips through the loader.
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, data, 0644))

	os.Unsetenv(config.EnvServer)
	os.Unsetenv(config.EnvTenant)
	loaded, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "10.1.2.3:9900", loaded.Server)
	assert.Equal(t, 10*time.Second, loaded.RefreshInterval)
}

func TestRenderConfig_OmitsEmptyTenant(t *testing.T) {
	data, err := renderConfig(config.Default())
	require.NoError(t, err)
	assert.NotContains(t, string(data), "tenant:")
}
