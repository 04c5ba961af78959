package config

import (
	"github.com/dmitrijs2005/gamekeeper/internal/configx"
)

// parseEnv loads .env (if present) and overlays GAMEKEEPER_* variables.
// A nil env reads the process environment.
func parseEnv(config *Config, env *configx.Env) error {
	if env == nil {
		if err := configx.LoadDotEnv(".env"); err != nil {
			return err
		}
		env = configx.NewEnv()
	}

	env.String("ENDPOINT_ADDR_GRPC", &config.EndpointAddrGRPC)
	env.String("ENDPOINT_ADDR_HTTP", &config.EndpointAddrHTTP)
	env.String("DATABASE_DSN", &config.DatabaseDSN)
	env.String("SECRET_KEY", &config.SecretKey)
	env.String("API_KEY", &config.APIKey)
	env.String("STORAGE_BACKEND", &config.StorageBackend)
	env.String("STORAGE_DIR", &config.StorageDir)
	env.String("PUBLIC_BASE_URL", &config.PublicBaseURL)
	env.String("S3_ROOT_USER", &config.S3RootUser)
	env.String("S3_ROOT_PASSWORD", &config.S3RootPassword)
	env.String("S3_REGION", &config.S3Region)
	env.String("S3_BASE_ENDPOINT", &config.S3BaseEndpoint)
	env.String("S3_PUBLIC_BASE_URL", &config.S3PublicBaseURL)
	env.String("LOG_LEVEL", &config.LogLevel)

	if err := env.Duration("ACCESS_TOKEN_VALIDITY_DURATION", &config.AccessTokenValidityDuration); err != nil {
		return err
	}
	if err := env.Duration("REFRESH_TOKEN_VALIDITY_DURATION", &config.RefreshTokenValidityDuration); err != nil {
		return err
	}
	return env.Bool("REQUIRE_CONFIRMATION", &config.RequireConfirmation)
}
