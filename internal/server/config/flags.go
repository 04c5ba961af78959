package config

import (
	"flag"
	"io"
	"time"

	"github.com/dmitrijs2005/gamekeeper/internal/flagx"
)

// parseFlags overlays Config fields from command-line flags.
//
//	-a string   gRPC bind address (e.g. ":50051")
//	-h string   HTTP gateway bind address (e.g. ":8080")
//	-d string   PostgreSQL DSN
//	-s string   JWT HMAC secret key
//	-k string   API key clients must send
//	-t int      access token validity, minutes
//	-r int      refresh token validity, minutes
//	-C bool     require email confirmation before sign-in
//	-S string   storage backend: "local" or "s3"
//	-L string   local storage directory
//	-P string   public base URL used to build object URLs
//	-u string   S3 root user
//	-p string   S3 root password
//	-g string   S3 region
//	-e string   S3 base endpoint
//	-l string   log level
//
// Only the flags above are considered; everything else in args is dropped
// by flagx.FilterArgs first.
func parseFlags(config *Config, args []string) error {
	args = flagx.FilterArgs(args, []string{
		"-a", "-h", "-d", "-s", "-k", "-t", "-r", "-C", "-S", "-L", "-P", "-u", "-p", "-g", "-e", "-l",
	})

	fs := flag.NewFlagSet("server", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&config.EndpointAddrGRPC, "a", config.EndpointAddrGRPC, "address and port to run gRPC server")
	fs.StringVar(&config.EndpointAddrHTTP, "h", config.EndpointAddrHTTP, "address and port to run HTTP gateway")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "secret key")
	fs.StringVar(&config.APIKey, "k", config.APIKey, "api key")

	accessMinutes := fs.Int("t", int(config.AccessTokenValidityDuration.Minutes()), "access token validity (in minutes)")
	refreshMinutes := fs.Int("r", int(config.RefreshTokenValidityDuration.Minutes()), "refresh token validity (in minutes)")

	fs.BoolVar(&config.RequireConfirmation, "C", config.RequireConfirmation, "require email confirmation")
	fs.StringVar(&config.StorageBackend, "S", config.StorageBackend, "storage backend (local|s3)")
	fs.StringVar(&config.StorageDir, "L", config.StorageDir, "local storage directory")
	fs.StringVar(&config.PublicBaseURL, "P", config.PublicBaseURL, "public base URL")
	fs.StringVar(&config.S3RootUser, "u", config.S3RootUser, "S3 root user")
	fs.StringVar(&config.S3RootPassword, "p", config.S3RootPassword, "S3 root password")
	fs.StringVar(&config.S3Region, "g", config.S3Region, "S3 region")
	fs.StringVar(&config.S3BaseEndpoint, "e", config.S3BaseEndpoint, "S3 base endpoint")
	fs.StringVar(&config.LogLevel, "l", config.LogLevel, "log level")

	if err := fs.Parse(args); err != nil {
		return err
	}

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "t":
			config.AccessTokenValidityDuration = time.Duration(*accessMinutes) * time.Minute
		case "r":
			config.RefreshTokenValidityDuration = time.Duration(*refreshMinutes) * time.Minute
		}
	})
	return nil
}
