package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	// Point HOME at an empty dir so no real config file leaks in.
	t.Setenv("HOME", t.TempDir())
	os.Unsetenv(EnvServer)
	os.Unsetenv(EnvInsecure)
	os.Unsetenv(EnvTenant)

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, DefaultServer, cfg.Server)
	assert.Equal(t, DefaultRefreshInterval, cfg.RefreshInterval)
	assert.True(t, cfg.Insecure)
}

func TestLoad_ConfigFile(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	os.Unsetenv(EnvServer)
	os.Unsetenv(EnvTenant)

	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `server: 10.1.2.3:9900
tenant: acme
refresh_interval: 10s
insecure: false
page_limit: 50
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "10.1.2.3:9900", cfg.Server)
	assert.Equal(t, "acme", cfg.Tenant)
	assert.Equal(t, 10*time.Second, cfg.RefreshInterval)
	assert.False(t, cfg.Insecure)
	assert.Equal(t, 50, cfg.PageLimit)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server: 10.1.2.3:9900\n"), 0644))

	t.Setenv(EnvServer, "192.168.1.50:8002")
	t.Setenv(EnvTenant, "env-tenant")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "192.168.1.50:8002", cfg.Server)
	assert.Equal(t, "env-tenant", cfg.Tenant)
}

func TestLoad_ExplicitMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

func TestLoad_InvalidYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server: [unclosed\n"), 0644))

	_, err := Load(path)
	require.Error(t, err)
}

func TestDefaultPath(t *testing.T) {
	t.Setenv("HOME", "/home/tester")
	assert.Equal(t, filepath.Join("/home/tester", ConfigDir, ConfigFile), DefaultPath())
}
