package config

import (
	"flag"
	"os"

	"github.com/dmitrijs2005/poetrykeeper/internal/flagx"
)

// parseFlags populates Config fields from command-line flags.
//
// Supported flags:
//
//	-a string   gRPC bind address (e.g., ":50051")
//	-m string   admin HTTP bind address
//	-s string   storage driver (postgres|memory)
//	-d string   PostgreSQL DSN
//	-k string   JWT HMAC secret key
//	-l string   log level
//
// os.Args is filtered with flagx.FilterArgs first, so the config-file flag
// does not trip the parser.
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-m", "-s", "-d", "-k", "-l"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.EndpointAddrGRPC, "a", config.EndpointAddrGRPC, "address and port to run gRPC server")
	fs.StringVar(&config.AdminAddr, "m", config.AdminAddr, "address and port to run admin HTTP server")
	fs.StringVar(&config.StorageDriver, "s", config.StorageDriver, "storage driver (postgres|memory)")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.SecretKey, "k", config.SecretKey, "secret key")
	fs.StringVar(&config.LogLevel, "l", config.LogLevel, "log level")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}
}
