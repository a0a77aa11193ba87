package config

import (
	"time"

	"github.com/dmitrijs2005/poetrykeeper/internal/common"
)

// Remote drivers.
const (
	RemoteGRPC = "grpc"
	RemoteS3   = "s3"
	RemoteNone = "none"
)

// Config holds runtime settings for the CLI.
//
// Fields:
//   - RemoteDriver: which remote store to use (grpc, s3, none).
//   - ServerEndpointAddr: host:port of the document-store gRPC endpoint.
//   - AuthSecret: shared HMAC secret used to mint per-call tokens.
//   - RequestTimeout: deadline applied to every remote call.
//   - OnlineCheckInterval: how often the prompt's online indicator refreshes.
//   - CollectionPath: document-store collection holding poems.
//   - LocalDBPath: SQLite file backing the local fallback snapshot.
//   - SeedSamples: insert the two bootstrap poems into an empty collection.
//   - LogLevel: zap level name.
//   - S3*: bucket settings for the s3 driver.
type Config struct {
	RemoteDriver        string
	ServerEndpointAddr  string
	AuthSecret          string
	RequestTimeout      time.Duration
	OnlineCheckInterval time.Duration
	CollectionPath      string
	LocalDBPath         string
	SeedSamples         bool
	LogLevel            string

	S3Bucket    string
	S3Region    string
	S3Endpoint  string
	S3Prefix    string
	S3AccessKey string
	S3SecretKey string
}

// LoadDefaults populates c with development defaults.
func (c *Config) LoadDefaults() {
	c.RemoteDriver = RemoteGRPC
	c.ServerEndpointAddr = "127.0.0.1:50051"
	c.AuthSecret = "secretKey"
	c.RequestTimeout = 5 * time.Second
	c.OnlineCheckInterval = 3 * time.Second
	c.CollectionPath = common.DefaultCollectionPath
	c.LocalDBPath = "poetry.db"
	c.SeedSamples = true
	c.LogLevel = "warn"
	c.S3Region = "us-east-1"
	c.S3Prefix = "poems"
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// a config file (if given) and command-line flags. Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseFile(cfg)
	parseFlags(cfg)
	return cfg
}
