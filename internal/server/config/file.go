package config

import (
	"github.com/dmitrijs2005/forkvault/internal/flagx"
	"github.com/dmitrijs2005/forkvault/internal/timex"
)

// FileConfig is the on-disk shape of the server configuration. Durations
// accept "30s" style strings or integer nanoseconds.
type FileConfig struct {
	EndpointAddrGRPC string         `json:"endpoint_addr_grpc" yaml:"endpoint_addr_grpc"`
	DatabaseDSN      string         `json:"database_dsn" yaml:"database_dsn"`
	APIKey           string         `json:"api_key" yaml:"api_key"`
	BlobBackend      string         `json:"blob_backend" yaml:"blob_backend"`
	S3RootUser       string         `json:"s3_root_user" yaml:"s3_root_user"`
	S3RootPassword   string         `json:"s3_root_password" yaml:"s3_root_password"`
	S3Bucket         string         `json:"s3_bucket" yaml:"s3_bucket"`
	S3Region         string         `json:"s3_region" yaml:"s3_region"`
	S3BaseEndpoint   string         `json:"s3_base_endpoint" yaml:"s3_base_endpoint"`
	MaxUploadSize    int64          `json:"max_upload_size" yaml:"max_upload_size"`
	StartupTimeout   timex.Duration `json:"startup_timeout" yaml:"startup_timeout"`
	LogLevel         string         `json:"log_level" yaml:"log_level"`
}

// parseFile overlays the file named by -c/-config onto config. Keys that
// are absent or zero keep their current value. A file that cannot be read
// or decoded panics.
func parseFile(config *Config) {
	path := flagx.ConfigFileFlag()

	// nothing to load
	if path == "" {
		return
	}

	c := &FileConfig{}
	if err := flagx.DecodeConfigFile(path, c); err != nil {
		panic(err)
	}

	setString(&config.EndpointAddrGRPC, c.EndpointAddrGRPC)
	setString(&config.DatabaseDSN, c.DatabaseDSN)
	setString(&config.APIKey, c.APIKey)
	setString(&config.BlobBackend, c.BlobBackend)
	setString(&config.S3RootUser, c.S3RootUser)
	setString(&config.S3RootPassword, c.S3RootPassword)
	setString(&config.S3Bucket, c.S3Bucket)
	setString(&config.S3Region, c.S3Region)
	setString(&config.S3BaseEndpoint, c.S3BaseEndpoint)
	setString(&config.LogLevel, c.LogLevel)
	if c.MaxUploadSize > 0 {
		config.MaxUploadSize = c.MaxUploadSize
	}
	if c.StartupTimeout.Duration > 0 {
		config.StartupTimeout = c.StartupTimeout.Duration
	}
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
