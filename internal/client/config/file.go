package config

import (
	"github.com/dmitrijs2005/gamekeeper/internal/configx"
	"github.com/dmitrijs2005/gamekeeper/internal/flagx"
	"github.com/dmitrijs2005/gamekeeper/internal/timex"
)

// FileConfig is the on-disk shape of the client config. Intervals accept
// "3s" or integer nanoseconds.
type FileConfig struct {
	ServerEndpointAddr  string         `json:"server_endpoint_addr" yaml:"server_endpoint_addr"`
	APIKey              string         `json:"api_key" yaml:"api_key"`
	OnlineCheckInterval timex.Duration `json:"online_check_interval" yaml:"online_check_interval"`
	DataDir             string         `json:"data_dir" yaml:"data_dir"`
	LogLevel            string         `json:"log_level" yaml:"log_level"`
}

func parseFile(cfg *Config, args []string) error {
	path := flagx.ConfigFileFlag(args)
	if path == "" {
		return nil
	}

	fc := &FileConfig{}
	if err := configx.LoadFile(path, fc); err != nil {
		return err
	}

	if fc.ServerEndpointAddr != "" {
		cfg.ServerEndpointAddr = fc.ServerEndpointAddr
	}
	if fc.APIKey != "" {
		cfg.APIKey = fc.APIKey
	}
	if fc.OnlineCheckInterval.Duration > 0 {
		cfg.OnlineCheckInterval = fc.OnlineCheckInterval.Duration
	}
	if fc.DataDir != "" {
		cfg.DataDir = fc.DataDir
	}
	if fc.LogLevel != "" {
		cfg.LogLevel = fc.LogLevel
	}
	return nil
}
