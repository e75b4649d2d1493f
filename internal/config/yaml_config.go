package config

import (
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// YAMLConfig is the optional config file. Env vars provide the base values;
// anything set here overrides them.
type YAMLConfig struct {
	Server struct {
		Addr        string `yaml:"addr,omitempty"`
		CORSOrigins string `yaml:"cors_origins,omitempty"`
	} `yaml:"server"`

	API struct {
		Endpoint  string `yaml:"endpoint,omitempty"`
		UserAgent string `yaml:"user_agent,omitempty"`
	} `yaml:"api"`

	Cache struct {
		Backend    string `yaml:"backend,omitempty"` // file, sqlite, redis
		Dir        string `yaml:"dir,omitempty"`
		SQLitePath string `yaml:"sqlite_path,omitempty"`
		RedisURL   string `yaml:"redis_url,omitempty"`
	} `yaml:"cache"`

	Defaults struct {
		Top             int    `yaml:"top,omitempty"`
		PolitenessDelay string `yaml:"politeness_delay,omitempty"` // e.g. "500ms"
	} `yaml:"defaults"`
}

// LoadYAMLConfig loads the YAML configuration file. Path comes from the
// WIKIFREQ_CONFIG_FILE env var, defaulting to "wikifreq.yaml". Returns nil
// without error if the file doesn't exist.
func LoadYAMLConfig() (*YAMLConfig, error) {
	path := getEnv("WIKIFREQ_CONFIG_FILE", "wikifreq.yaml")
	return LoadYAMLFile(path)
}

// LoadYAMLFile loads the YAML configuration from an explicit path. A missing
// file yields nil without error.
func LoadYAMLFile(path string) (*YAMLConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			// Config file is optional
			return nil, nil
		}
		return nil, err
	}

	var cfg YAMLConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Apply overlays the YAML values onto an env-derived Config.
func (y *YAMLConfig) Apply(c *Config) {
	if y == nil {
		return
	}
	if y.Server.Addr != "" {
		c.ServerAddr = y.Server.Addr
	}
	if y.Server.CORSOrigins != "" {
		c.CORSOrigins = y.Server.CORSOrigins
	}
	if y.API.Endpoint != "" {
		c.APIEndpoint = y.API.Endpoint
	}
	if y.API.UserAgent != "" {
		c.UserAgent = y.API.UserAgent
	}
	if y.Cache.Backend != "" {
		c.CacheBackend = y.Cache.Backend
	}
	if y.Cache.Dir != "" {
		c.CacheDir = y.Cache.Dir
	}
	if y.Cache.SQLitePath != "" {
		c.SQLitePath = y.Cache.SQLitePath
	}
	if y.Cache.RedisURL != "" {
		c.RedisURL = y.Cache.RedisURL
	}
	if y.Defaults.Top > 0 {
		c.DefaultTopN = y.Defaults.Top
	}
	if y.Defaults.PolitenessDelay != "" {
		if d, err := time.ParseDuration(y.Defaults.PolitenessDelay); err == nil && d >= 0 {
			c.PolitenessDelay = d
		}
	}
}
