package config

import "github.com/dmitrijs2005/gamekeeper/internal/configx"

// parseEnv loads .env (if present) and overlays GAMEKEEPER_* variables.
func parseEnv(cfg *Config, env *configx.Env) error {
	if env == nil {
		if err := configx.LoadDotEnv(".env"); err != nil {
			return err
		}
		env = configx.NewEnv()
	}

	env.String("SERVER_ENDPOINT_ADDR", &cfg.ServerEndpointAddr)
	env.String("API_KEY", &cfg.APIKey)
	env.String("DATA_DIR", &cfg.DataDir)
	env.String("LOG_LEVEL", &cfg.LogLevel)
	return env.Duration("ONLINE_CHECK_INTERVAL", &cfg.OnlineCheckInterval)
}
