package config

import (
	"github.com/dmitrijs2005/gamekeeper/internal/configx"
	"github.com/dmitrijs2005/gamekeeper/internal/flagx"
	"github.com/dmitrijs2005/gamekeeper/internal/timex"
)

// FileConfig is the on-disk shape of the config file. Zero values mean
// "not set" and leave the previous layer untouched. Bool fields are
// pointers so that an explicit false can be told apart.
type FileConfig struct {
	EndpointAddrGRPC             string         `json:"endpoint_addr_grpc" yaml:"endpoint_addr_grpc"`
	EndpointAddrHTTP             string         `json:"endpoint_addr_http" yaml:"endpoint_addr_http"`
	DatabaseDSN                  string         `json:"database_dsn" yaml:"database_dsn"`
	SecretKey                    string         `json:"secret_key" yaml:"secret_key"`
	APIKey                       string         `json:"api_key" yaml:"api_key"`
	AccessTokenValidityDuration  timex.Duration `json:"access_token_validity_duration" yaml:"access_token_validity_duration"`
	RefreshTokenValidityDuration timex.Duration `json:"refresh_token_validity_duration" yaml:"refresh_token_validity_duration"`
	RequireConfirmation          *bool          `json:"require_confirmation" yaml:"require_confirmation"`
	StorageBackend               string         `json:"storage_backend" yaml:"storage_backend"`
	StorageDir                   string         `json:"storage_dir" yaml:"storage_dir"`
	PublicBaseURL                string         `json:"public_base_url" yaml:"public_base_url"`
	MaxUploadSize                int64          `json:"max_upload_size" yaml:"max_upload_size"`
	S3RootUser                   string         `json:"s3_root_user" yaml:"s3_root_user"`
	S3RootPassword               string         `json:"s3_root_password" yaml:"s3_root_password"`
	S3Region                     string         `json:"s3_region" yaml:"s3_region"`
	S3BaseEndpoint               string         `json:"s3_base_endpoint" yaml:"s3_base_endpoint"`
	S3PublicBaseURL              string         `json:"s3_public_base_url" yaml:"s3_public_base_url"`
	LogLevel                     string         `json:"log_level" yaml:"log_level"`
}

func parseFile(config *Config, args []string) error {
	path := flagx.ConfigFileFlag(args)
	if path == "" {
		return nil
	}

	c := &FileConfig{}
	if err := configx.LoadFile(path, c); err != nil {
		return err
	}

	c.apply(config)
	return nil
}

func (c *FileConfig) apply(config *Config) {
	setString(&config.EndpointAddrGRPC, c.EndpointAddrGRPC)
	setString(&config.EndpointAddrHTTP, c.EndpointAddrHTTP)
	setString(&config.DatabaseDSN, c.DatabaseDSN)
	setString(&config.SecretKey, c.SecretKey)
	setString(&config.APIKey, c.APIKey)
	if c.AccessTokenValidityDuration.Duration > 0 {
		config.AccessTokenValidityDuration = c.AccessTokenValidityDuration.Duration
	}
	if c.RefreshTokenValidityDuration.Duration > 0 {
		config.RefreshTokenValidityDuration = c.RefreshTokenValidityDuration.Duration
	}
	if c.RequireConfirmation != nil {
		config.RequireConfirmation = *c.RequireConfirmation
	}
	setString(&config.StorageBackend, c.StorageBackend)
	setString(&config.StorageDir, c.StorageDir)
	setString(&config.PublicBaseURL, c.PublicBaseURL)
	if c.MaxUploadSize > 0 {
		config.MaxUploadSize = c.MaxUploadSize
	}
	setString(&config.S3RootUser, c.S3RootUser)
	setString(&config.S3RootPassword, c.S3RootPassword)
	setString(&config.S3Region, c.S3Region)
	setString(&config.S3BaseEndpoint, c.S3BaseEndpoint)
	setString(&config.S3PublicBaseURL, c.S3PublicBaseURL)
	setString(&config.LogLevel, c.LogLevel)
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
