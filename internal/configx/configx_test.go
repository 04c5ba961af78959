package configx

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/gamekeeper/internal/timex"
)

type fileConfig struct {
	Addr     string         `json:"addr" yaml:"addr"`
	Interval timex.Duration `json:"interval" yaml:"interval"`
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(p, []byte(content), 0o600))
	return p
}

func TestLoadFile_JSON(t *testing.T) {
	p := writeFile(t, "client.json", `{"addr":"127.0.0.1:50051","interval":"5s"}`)

	var c fileConfig
	require.NoError(t, LoadFile(p, &c))
	assert.Equal(t, "127.0.0.1:50051", c.Addr)
	assert.Equal(t, 5*time.Second, c.Interval.Duration)
}

func TestLoadFile_YAML(t *testing.T) {
	p := writeFile(t, "client.yml", "addr: example.org:443\ninterval: 1m\n")

	var c fileConfig
	require.NoError(t, LoadFile(p, &c))
	assert.Equal(t, "example.org:443", c.Addr)
	assert.Equal(t, time.Minute, c.Interval.Duration)
}

func TestLoadFile_Errors(t *testing.T) {
	var c fileConfig
	assert.Error(t, LoadFile(filepath.Join(t.TempDir(), "missing.json"), &c))

	p := writeFile(t, "bad.json", `{"addr":`)
	assert.Error(t, LoadFile(p, &c))
}

func TestLoadDotEnv(t *testing.T) {
	p := writeFile(t, ".env", "GAMEKEEPER_TEST_DOTENV=from-file\n")
	t.Setenv("GAMEKEEPER_TEST_DOTENV_KEEP", "process")

	require.NoError(t, LoadDotEnv(filepath.Join(t.TempDir(), "nope.env"), p))
	t.Cleanup(func() { _ = os.Unsetenv("GAMEKEEPER_TEST_DOTENV") })

	assert.Equal(t, "from-file", os.Getenv("GAMEKEEPER_TEST_DOTENV"))
	assert.Equal(t, "process", os.Getenv("GAMEKEEPER_TEST_DOTENV_KEEP"))
}

func TestEnv_Overlay(t *testing.T) {
	env := NewEnvFromMap(map[string]string{
		"GAMEKEEPER_ADDR":     "10.0.0.1:50051",
		"GAMEKEEPER_INTERVAL": "2s",
		"GAMEKEEPER_CONFIRM":  "true",
		"GAMEKEEPER_EMPTY":    "",
	})

	addr := "default"
	env.String("ADDR", &addr)
	assert.Equal(t, "10.0.0.1:50051", addr)

	empty := "keep"
	env.String("EMPTY", &empty)
	assert.Equal(t, "keep", empty)

	var d time.Duration
	require.NoError(t, env.Duration("INTERVAL", &d))
	assert.Equal(t, 2*time.Second, d)

	var b bool
	require.NoError(t, env.Bool("CONFIRM", &b))
	assert.True(t, b)

	bad := NewEnvFromMap(map[string]string{"GAMEKEEPER_INTERVAL": "x", "GAMEKEEPER_CONFIRM": "maybe"})
	assert.Error(t, bad.Duration("INTERVAL", &d))
	assert.Error(t, bad.Bool("CONFIRM", &b))
}
