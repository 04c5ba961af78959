package config

import (
	"os"
	"time"
)

// Config holds runtime settings for the GameKeeper client.
//
// APIKey is the public project key sent with every call. DataDir holds the
// on-device SQLite store with the persisted session.
type Config struct {
	ServerEndpointAddr  string
	APIKey              string
	OnlineCheckInterval time.Duration
	DataDir             string
	LogLevel            string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerEndpointAddr = "127.0.0.1:50051"
	c.APIKey = "anon-key"
	c.OnlineCheckInterval = 3 * time.Second
	c.DataDir = defaultDataDir()
	c.LogLevel = "warn"
}

func defaultDataDir() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return dir + string(os.PathSeparator) + "gamekeeper"
	}
	return ".gamekeeper"
}

// LoadConfig applies defaults, the config file, the environment and then
// flags. Later sources take precedence. It panics on malformed input.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	args := os.Args[1:]

	if err := parseFile(cfg, args); err != nil {
		panic(err)
	}
	if err := parseEnv(cfg, nil); err != nil {
		panic(err)
	}
	if err := parseFlags(cfg, args); err != nil {
		panic(err)
	}
	return cfg
}
