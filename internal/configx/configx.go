// Package configx reads the optional config file and environment overlays
// shared by the server and client config packages.
package configx

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// EnvPrefix is prepended to every environment key looked up by Env.
const EnvPrefix = "GAMEKEEPER_"

// LoadFile decodes the file at path into dst. Files ending in .yaml or .yml
// are read as YAML, everything else as JSON.
func LoadFile(path string, dst any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, dst)
	default:
		err = json.Unmarshal(data, dst)
	}
	if err != nil {
		return fmt.Errorf("decode config %s: %w", path, err)
	}
	return nil
}

// LoadDotEnv loads KEY=VALUE pairs from the given files into the process
// environment without overriding variables that are already set. Missing
// files are skipped.
func LoadDotEnv(files ...string) error {
	for _, f := range files {
		if err := godotenv.Load(f); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("load %s: %w", f, err)
		}
	}
	return nil
}

// Env looks up values under EnvPrefix and overlays them onto config fields.
type Env struct {
	lookup func(string) (string, bool)
}

func NewEnv() *Env {
	return &Env{lookup: os.LookupEnv}
}

// NewEnvFromMap is used by tests to avoid touching the process environment.
func NewEnvFromMap(m map[string]string) *Env {
	return &Env{lookup: func(k string) (string, bool) {
		v, ok := m[k]
		return v, ok
	}}
}

func (e *Env) String(key string, dst *string) {
	if v, ok := e.lookup(EnvPrefix + key); ok && v != "" {
		*dst = v
	}
}

func (e *Env) Duration(key string, dst *time.Duration) error {
	v, ok := e.lookup(EnvPrefix + key)
	if !ok || v == "" {
		return nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fmt.Errorf("%s%s: %w", EnvPrefix, key, err)
	}
	*dst = d
	return nil
}

func (e *Env) Bool(key string, dst *bool) error {
	v, ok := e.lookup(EnvPrefix + key)
	if !ok || v == "" {
		return nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fmt.Errorf("%s%s: %w", EnvPrefix, key, err)
	}
	*dst = b
	return nil
}
