package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/poetrykeeper/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags:
//
//	-r string   remote driver (grpc|s3|none)
//	-a string   address and port of the document-store server
//	-k string   shared auth secret
//	-t int      request timeout in seconds
//	-i int      online check interval in seconds
//	-p string   collection path
//	-f string   local SQLite file
//	-s bool     seed sample poems into an empty collection (use -s=false)
//	-l string   log level
//	-b string   S3 bucket
//	-e string   S3 endpoint
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-r", "-a", "-k", "-t", "-i", "-p", "-f", "-s", "-l", "-b", "-e"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.RemoteDriver, "r", cfg.RemoteDriver, "remote driver (grpc|s3|none)")
	fs.StringVar(&cfg.ServerEndpointAddr, "a", cfg.ServerEndpointAddr, "address and port to access server")
	fs.StringVar(&cfg.AuthSecret, "k", cfg.AuthSecret, "shared auth secret")
	requestTimeout := fs.Int("t", int(cfg.RequestTimeout.Seconds()), "request timeout (in seconds)")
	onlineCheckInterval := fs.Int("i", int(cfg.OnlineCheckInterval.Seconds()), "online check interval (in seconds)")
	fs.StringVar(&cfg.CollectionPath, "p", cfg.CollectionPath, "collection path")
	fs.StringVar(&cfg.LocalDBPath, "f", cfg.LocalDBPath, "local database file")
	fs.BoolVar(&cfg.SeedSamples, "s", cfg.SeedSamples, "seed sample poems")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level")
	fs.StringVar(&cfg.S3Bucket, "b", cfg.S3Bucket, "S3 bucket")
	fs.StringVar(&cfg.S3Endpoint, "e", cfg.S3Endpoint, "S3 endpoint")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.RequestTimeout = time.Duration(*requestTimeout) * time.Second
	cfg.OnlineCheckInterval = time.Duration(*onlineCheckInterval) * time.Second
}
