package config

import (
	"github.com/dmitrijs2005/forkvault/internal/flagx"
	"github.com/dmitrijs2005/forkvault/internal/timex"
)

// FileConfig is the on-disk shape of the client configuration, JSON or YAML.
type FileConfig struct {
	ServerEndpointAddr  string         `json:"server_endpoint_addr" yaml:"server_endpoint_addr"`
	APIKey              string         `json:"api_key" yaml:"api_key"`
	ProductKey          string         `json:"product_key" yaml:"product_key"`
	AdminProductKey     string         `json:"admin_product_key" yaml:"admin_product_key"`
	MaxUploadSize       int64          `json:"max_upload_size" yaml:"max_upload_size"`
	OnlineCheckInterval timex.Duration `json:"online_check_interval" yaml:"online_check_interval"`
	LogLevel            string         `json:"log_level" yaml:"log_level"`
}

// parseFile overlays the file named by -c/-config onto cfg. Absent keys
// keep their current value; a file that cannot be read or decoded panics.
func parseFile(cfg *Config) {
	path := flagx.ConfigFileFlag()
	if path == "" {
		return
	}

	var fc FileConfig
	if err := flagx.DecodeConfigFile(path, &fc); err != nil {
		panic(err)
	}

	if fc.ServerEndpointAddr != "" {
		cfg.ServerEndpointAddr = fc.ServerEndpointAddr
	}
	if fc.APIKey != "" {
		cfg.APIKey = fc.APIKey
	}
	if fc.ProductKey != "" {
		cfg.ProductKey = fc.ProductKey
	}
	if fc.AdminProductKey != "" {
		cfg.AdminProductKey = fc.AdminProductKey
	}
	if fc.MaxUploadSize > 0 {
		cfg.MaxUploadSize = fc.MaxUploadSize
	}
	if fc.OnlineCheckInterval.Duration > 0 {
		cfg.OnlineCheckInterval = fc.OnlineCheckInterval.Duration
	}
	if fc.LogLevel != "" {
		cfg.LogLevel = fc.LogLevel
	}
}
