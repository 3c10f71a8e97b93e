// Package config loads runtime configuration for the ForkVault CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON or YAML file selected with -c or -config.
//  3. Command-line flags, which override earlier values.
//
// Example file:
//
//	server_endpoint_addr: 127.0.0.1:50051
//	api_key: change-me
//	online_check_interval: 3s
//	log_level: warn
package config
