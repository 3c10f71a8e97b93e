package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/forkvault/internal/flagx"
)

// parseFlags populates selected server Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   gRPC bind address (e.g., ":50051")
//	-d string   database DSN (postgres://... or sqlite:path)
//	-k string   gateway API key
//	-o string   blob backend: s3, minio or memory
//	-u string   S3 root user
//	-p string   S3 root password
//	-b string   S3 bucket name
//	-g string   S3 region
//	-e string   S3 base endpoint (e.g., "http://127.0.0.1:9000/")
//	-m int      max upload size, bytes
//	-s int      startup timeout, seconds
//	-l string   log level
//
// The function first filters os.Args to only the flags it recognizes using
// flagx.FilterArgs, so the config file flag does not trip the parser.
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-d", "-k", "-o", "-u", "-p", "-b", "-g", "-e", "-m", "-s", "-l"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.EndpointAddrGRPC, "a", config.EndpointAddrGRPC, "address and port to run server")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.APIKey, "k", config.APIKey, "gateway api key")
	fs.StringVar(&config.BlobBackend, "o", config.BlobBackend, "blob backend (s3|minio|memory)")

	fs.StringVar(&config.S3RootUser, "u", config.S3RootUser, "S3 root user")
	fs.StringVar(&config.S3RootPassword, "p", config.S3RootPassword, "S3 root password")
	fs.StringVar(&config.S3Bucket, "b", config.S3Bucket, "S3 root bucket")
	fs.StringVar(&config.S3Region, "g", config.S3Region, "S3 root region")
	fs.StringVar(&config.S3BaseEndpoint, "e", config.S3BaseEndpoint, "S3 base endpoint")

	fs.Int64Var(&config.MaxUploadSize, "m", config.MaxUploadSize, "max upload size (bytes)")
	startupTimeout := fs.Int("s", int(config.StartupTimeout.Seconds()), "startup timeout (in seconds)")
	fs.StringVar(&config.LogLevel, "l", config.LogLevel, "log level")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	config.StartupTimeout = time.Duration(*startupTimeout) * time.Second
}
