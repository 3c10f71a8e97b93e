package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/forkvault/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   address and port of the gateway
//	-t string   gateway api key
//	-k string   saved product key
//	-x string   admin product key
//	-m int      max upload size, bytes
//	-i int      online check interval, seconds
//	-l string   log level
//
// os.Args is filtered with flagx.FilterArgs first, so cobra flags and the
// config file flag do not reach this parser.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-t", "-k", "-x", "-m", "-i", "-l"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.ServerEndpointAddr, "a", cfg.ServerEndpointAddr, "address and port to access gateway")
	fs.StringVar(&cfg.APIKey, "t", cfg.APIKey, "gateway api key")
	fs.StringVar(&cfg.ProductKey, "k", cfg.ProductKey, "saved product key")
	fs.StringVar(&cfg.AdminProductKey, "x", cfg.AdminProductKey, "admin product key")
	fs.Int64Var(&cfg.MaxUploadSize, "m", cfg.MaxUploadSize, "max upload size (bytes)")
	onlineCheckInterval := fs.Int("i", int(cfg.OnlineCheckInterval.Seconds()), "online check interval (in seconds)")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.OnlineCheckInterval = time.Duration(*onlineCheckInterval) * time.Second
}
