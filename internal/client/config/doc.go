// Package config loads runtime configuration for the GameKeeper client.
//
// Sources, later ones winning:
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON or YAML file selected with -c or -config.
//  3. .env and GAMEKEEPER_* environment variables.
//  4. Command-line flags.
//
// Example file:
//
//	{
//	  "server_endpoint_addr": "127.0.0.1:50051",
//	  "api_key": "anon-key",
//	  "online_check_interval": "3s",
//	  "data_dir": "/home/me/.config/gamekeeper"
//	}
package config
