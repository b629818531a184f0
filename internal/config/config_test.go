package config

import (
	"testing"
	"time"

	"github.com/runtara/runtop/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, DefaultServer, cfg.Server)
	assert.Equal(t, DefaultRefreshInterval, cfg.RefreshInterval)
	assert.True(t, cfg.Insecure)
	assert.Equal(t, DefaultPageLimit, cfg.PageLimit)
	assert.Equal(t, DefaultConnectTimeout, cfg.ConnectTimeout)
	assert.Equal(t, DefaultRequestTimeout, cfg.RequestTimeout)
	assert.Empty(t, cfg.Tenant)
}

func TestNormalizeServer(t *testing.T) {
	tests := []struct {
		name      string
		addr      string
		want      string
		wantError bool
	}{
		{
			name: "valid address",
			addr: "10.0.0.5:9000",
			want: "10.0.0.5:9000",
		},
		{
			name: "valid hostname address",
			addr: "runtara.internal:8002",
			want: "runtara.internal:8002",
		},
		{
			name: "empty falls back silently",
			addr: "",
			want: DefaultServer,
		},
		{
			name:      "missing port falls back",
			addr:      "10.0.0.5",
			want:      DefaultServer,
			wantError: true,
		},
		{
			name:      "garbage falls back",
			addr:      "not an address",
			want:      DefaultServer,
			wantError: true,
		},
		{
			name:      "empty host falls back",
			addr:      ":8002",
			want:      DefaultServer,
			wantError: true,
		},
		{
			name:      "non-numeric port falls back",
			addr:      "localhost:http",
			want:      DefaultServer,
			wantError: true,
		},
		{
			name:      "out of range port falls back",
			addr:      "localhost:99999",
			want:      DefaultServer,
			wantError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NormalizeServer(tt.addr)
			assert.Equal(t, tt.want, got)

			if tt.wantError {
				require.Error(t, err)
				assert.True(t, errors.IsCode(err, errors.ErrConfig))
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{
			name:   "defaults are valid",
			mutate: func(c *Config) {},
		},
		{
			name:    "sub-second refresh rejected",
			mutate:  func(c *Config) { c.RefreshInterval = 500 * time.Millisecond },
			wantErr: true,
		},
		{
			name:    "zero page limit rejected",
			mutate:  func(c *Config) { c.PageLimit = 0 },
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)

			err := Validate(cfg)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.IsCode(err, errors.ErrConfig))
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
