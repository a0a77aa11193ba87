package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/dmitrijs2005/poetrykeeper/internal/flagx"
	"gopkg.in/yaml.v3"
)

// FileConfig is the on-disk shape of the server configuration. Pointer
// fields distinguish "absent" from "empty" so a file only overrides the keys
// it names.
type FileConfig struct {
	EndpointAddrGRPC *string `json:"endpoint_addr_grpc" yaml:"endpoint_addr_grpc"`
	AdminAddr        *string `json:"admin_addr" yaml:"admin_addr"`
	StorageDriver    *string `json:"storage_driver" yaml:"storage_driver"`
	DatabaseDSN      *string `json:"database_dsn" yaml:"database_dsn"`
	SecretKey        *string `json:"secret_key" yaml:"secret_key"`
	LogLevel         *string `json:"log_level" yaml:"log_level"`
}

// parseFile loads values from the file named by -c / -config. YAML is used
// for .yaml and .yml files, JSON otherwise. A missing or malformed file
// panics, as a misconfigured server must not start.
func parseFile(config *Config) {
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

	c.apply(config)
}

func (c *FileConfig) apply(config *Config) {
	set := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}
	set(&config.EndpointAddrGRPC, c.EndpointAddrGRPC)
	set(&config.AdminAddr, c.AdminAddr)
	set(&config.StorageDriver, c.StorageDriver)
	set(&config.DatabaseDSN, c.DatabaseDSN)
	set(&config.SecretKey, c.SecretKey)
	set(&config.LogLevel, c.LogLevel)
}
