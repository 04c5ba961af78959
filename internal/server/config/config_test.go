package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/gamekeeper/internal/configx"
)

func defaults() *Config {
	c := &Config{}
	c.LoadDefaults()
	return c
}

func TestLoadDefaults(t *testing.T) {
	c := defaults()

	assert.Equal(t, ":50051", c.EndpointAddrGRPC)
	assert.Equal(t, ":8080", c.EndpointAddrHTTP)
	assert.Equal(t, StorageLocal, c.StorageBackend)
	assert.True(t, c.RequireConfirmation)
	assert.Equal(t, 15*time.Minute, c.AccessTokenValidityDuration)
}

func TestParseFlags(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		mutate  func(c *Config)
		wantErr bool
	}{
		{
			name: "addresses and storage",
			args: []string{"-a", ":6000", "-h", ":6001", "-S", "s3", "-e", "http://minio:9000", "-x", "ignored"},
			mutate: func(c *Config) {
				c.EndpointAddrGRPC = ":6000"
				c.EndpointAddrHTTP = ":6001"
				c.StorageBackend = StorageS3
				c.S3BaseEndpoint = "http://minio:9000"
			},
		},
		{
			name: "durations in minutes and confirmation off",
			args: []string{"-t", "5", "-r", "60", "-C=false"},
			mutate: func(c *Config) {
				c.AccessTokenValidityDuration = 5 * time.Minute
				c.RefreshTokenValidityDuration = time.Hour
				c.RequireConfirmation = false
			},
		},
		{
			name:    "bad duration",
			args:    []string{"-t", "abc"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := defaults()
			err := parseFlags(got, tt.args)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)

			want := defaults()
			tt.mutate(want)
			assert.Empty(t, cmp.Diff(want, got))
		})
	}
}

func TestParseFlags_KeepsSubMinuteDurationsWhenUnset(t *testing.T) {
	c := defaults()
	c.AccessTokenValidityDuration = 90 * time.Second

	require.NoError(t, parseFlags(c, []string{"-a", ":1"}))
	assert.Equal(t, 90*time.Second, c.AccessTokenValidityDuration)
}

func TestParseFile_YAMLOverlaysOnlySetFields(t *testing.T) {
	p := filepath.Join(t.TempDir(), "server.yaml")
	require.NoError(t, os.WriteFile(p, []byte(`
database_dsn: postgres://db/gk
access_token_validity_duration: 30s
require_confirmation: false
storage_backend: s3
s3_public_base_url: https://cdn.example
`), 0o600))

	got := defaults()
	require.NoError(t, parseFile(got, []string{"-c", p}))

	want := defaults()
	want.DatabaseDSN = "postgres://db/gk"
	want.AccessTokenValidityDuration = 30 * time.Second
	want.RequireConfirmation = false
	want.StorageBackend = StorageS3
	want.S3PublicBaseURL = "https://cdn.example"
	assert.Empty(t, cmp.Diff(want, got))
}

func TestParseFile_JSON(t *testing.T) {
	p := filepath.Join(t.TempDir(), "server.json")
	require.NoError(t, os.WriteFile(p, []byte(`{"api_key":"k1","public_base_url":"https://gk.example"}`), 0o600))

	got := defaults()
	require.NoError(t, parseFile(got, []string{"-config", p}))
	assert.Equal(t, "k1", got.APIKey)
	assert.Equal(t, "https://gk.example", got.PublicBaseURL)
	assert.True(t, got.RequireConfirmation)
}

func TestParseFile_NoFlagAndMissingFile(t *testing.T) {
	c := defaults()
	require.NoError(t, parseFile(c, []string{"-a", ":1"}))
	assert.Empty(t, cmp.Diff(defaults(), c))

	require.Error(t, parseFile(c, []string{"-c", filepath.Join(t.TempDir(), "nope.yaml")}))
}

func TestParseEnv(t *testing.T) {
	c := defaults()
	env := configx.NewEnvFromMap(map[string]string{
		"GAMEKEEPER_API_KEY":                         "from-env",
		"GAMEKEEPER_REFRESH_TOKEN_VALIDITY_DURATION": "48h",
		"GAMEKEEPER_REQUIRE_CONFIRMATION":            "0",
	})

	require.NoError(t, parseEnv(c, env))
	assert.Equal(t, "from-env", c.APIKey)
	assert.Equal(t, 48*time.Hour, c.RefreshTokenValidityDuration)
	assert.False(t, c.RequireConfirmation)

	bad := configx.NewEnvFromMap(map[string]string{"GAMEKEEPER_ACCESS_TOKEN_VALIDITY_DURATION": "soon"})
	require.Error(t, parseEnv(defaults(), bad))
}
