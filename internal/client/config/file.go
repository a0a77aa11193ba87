package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/dmitrijs2005/poetrykeeper/internal/flagx"
	"github.com/dmitrijs2005/poetrykeeper/internal/timex"
	"gopkg.in/yaml.v3"
)

// FileConfig is the on-disk shape of the CLI configuration. Only keys present
// in the file override the current values.
type FileConfig struct {
	RemoteDriver        *string         `json:"remote_driver" yaml:"remote_driver"`
	ServerEndpointAddr  *string         `json:"server_endpoint_addr" yaml:"server_endpoint_addr"`
	AuthSecret          *string         `json:"auth_secret" yaml:"auth_secret"`
	RequestTimeout      *timex.Duration `json:"request_timeout" yaml:"request_timeout"`
	OnlineCheckInterval *timex.Duration `json:"online_check_interval" yaml:"online_check_interval"`
	CollectionPath      *string         `json:"collection_path" yaml:"collection_path"`
	LocalDBPath         *string         `json:"local_db_path" yaml:"local_db_path"`
	SeedSamples         *bool           `json:"seed_samples" yaml:"seed_samples"`
	LogLevel            *string         `json:"log_level" yaml:"log_level"`
	S3Bucket            *string         `json:"s3_bucket" yaml:"s3_bucket"`
	S3Region            *string         `json:"s3_region" yaml:"s3_region"`
	S3Endpoint          *string         `json:"s3_endpoint" yaml:"s3_endpoint"`
	S3Prefix            *string         `json:"s3_prefix" yaml:"s3_prefix"`
	S3AccessKey         *string         `json:"s3_access_key" yaml:"s3_access_key"`
	S3SecretKey         *string         `json:"s3_secret_key" yaml:"s3_secret_key"`
}

// parseFile loads values from the file named by -c / -config. YAML is used
// for .yaml and .yml files, JSON otherwise. If the file cannot be read or
// decoded, the function panics.
func parseFile(cfg *Config) {
	path := flagx.ConfigFileFlag(os.Args[1:])
	if path == "" {
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	c := &FileConfig{}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, c)
	default:
		err = json.Unmarshal(data, c)
	}
	if err != nil {
		panic(err)
	}

	c.apply(cfg)
}

func setIf[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}

func (c *FileConfig) apply(cfg *Config) {
	setIf(&cfg.RemoteDriver, c.RemoteDriver)
	setIf(&cfg.ServerEndpointAddr, c.ServerEndpointAddr)
	setIf(&cfg.AuthSecret, c.AuthSecret)
	if c.RequestTimeout != nil {
		cfg.RequestTimeout = c.RequestTimeout.Duration
	}
	if c.OnlineCheckInterval != nil {
		cfg.OnlineCheckInterval = c.OnlineCheckInterval.Duration
	}
	setIf(&cfg.CollectionPath, c.CollectionPath)
	setIf(&cfg.LocalDBPath, c.LocalDBPath)
	setIf(&cfg.SeedSamples, c.SeedSamples)
	setIf(&cfg.LogLevel, c.LogLevel)
	setIf(&cfg.S3Bucket, c.S3Bucket)
	setIf(&cfg.S3Region, c.S3Region)
	setIf(&cfg.S3Endpoint, c.S3Endpoint)
	setIf(&cfg.S3Prefix, c.S3Prefix)
	setIf(&cfg.S3AccessKey, c.S3AccessKey)
	setIf(&cfg.S3SecretKey, c.S3SecretKey)
}
