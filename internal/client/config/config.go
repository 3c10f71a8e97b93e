package config

import (
	"time"

	"github.com/dmitrijs2005/forkvault/internal/common"
)

// Config holds runtime settings for the ForkVault CLI.
//
// ProductKey is a saved credential used for unattended unlock; it only
// takes effect for accounts that turned off the product key prompt.
// AdminProductKey is the credential that opens the admin console.
type Config struct {
	ServerEndpointAddr  string
	APIKey              string
	ProductKey          string
	AdminProductKey     string
	MaxUploadSize       int64
	OnlineCheckInterval time.Duration
	LogLevel            string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerEndpointAddr = "127.0.0.1:50051"
	c.APIKey = ""
	c.ProductKey = ""
	c.AdminProductKey = "FORKS-ADMIN-ROOT"
	c.MaxUploadSize = common.DefaultMaxUploadSize
	c.OnlineCheckInterval = 3 * time.Second
	c.LogLevel = "warn"
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// a config file (if present) and command-line flags (if present). Later
// sources take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseFile(cfg)
	parseFlags(cfg)
	return cfg
}
