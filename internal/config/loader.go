package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/hashicorp/hcl/v2/hclsimple"
	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"sigd/internal/common/fsutil"
	"sigd/internal/hooks"
)

// Defaults applied by WithDefaults.
const (
	DefaultAddr         = ":8080"
	DefaultLogLevel     = "info"
	DefaultLogFormat    = "console"
	DefaultMaxBodyBytes = int64(1 << 20)
)

// Config holds runtime parameters for the daemon and the declarative hooks
// installed at startup. Zero values mean "unspecified".
type Config struct {
	Addr         string       `json:"addr" yaml:"addr" toml:"addr" hcl:"addr,optional"`
	LogLevel     string       `json:"log_level" yaml:"log_level" toml:"log_level" hcl:"log_level,optional"`
	LogFormat    string       `json:"log_format" yaml:"log_format" toml:"log_format" hcl:"log_format,optional"`
	MaxBodyBytes int64        `json:"max_body_bytes" yaml:"max_body_bytes" toml:"max_body_bytes" hcl:"max_body_bytes,optional"`
	CORS         *CORS        `json:"cors,omitempty" yaml:"cors,omitempty" toml:"cors,omitempty" hcl:"cors,block"`
	Hooks        []hooks.Spec `json:"hooks" yaml:"hooks" toml:"hooks" hcl:"hook,block"`
}

// CORS configures the optional CORS middleware of the HTTP API.
type CORS struct {
	Enabled        bool     `json:"enabled" yaml:"enabled" toml:"enabled" hcl:"enabled,optional"`
	AllowedOrigins []string `json:"allowed_origins" yaml:"allowed_origins" toml:"allowed_origins" hcl:"allowed_origins,optional"`
	AllowedMethods []string `json:"allowed_methods" yaml:"allowed_methods" toml:"allowed_methods" hcl:"allowed_methods,optional"`
	AllowedHeaders []string `json:"allowed_headers" yaml:"allowed_headers" toml:"allowed_headers" hcl:"allowed_headers,optional"`
}

// WithDefaults returns a copy of c with unspecified fields filled in.
func (c Config) WithDefaults() Config {
	if c.Addr == "" {
		c.Addr = DefaultAddr
	}
	if c.LogLevel == "" {
		c.LogLevel = DefaultLogLevel
	}
	if c.LogFormat == "" {
		c.LogFormat = DefaultLogFormat
	}
	if c.MaxBodyBytes <= 0 {
		c.MaxBodyBytes = DefaultMaxBodyBytes
	}
	return c
}

// Load reads a configuration file based on its extension.
// Supports: .yaml/.yml, .json, .toml, .hcl
func Load(path string) (Config, error) {
	var cfg Config
	if path == "" {
		return cfg, fmt.Errorf("empty config path")
	}
	path, err := fsutil.ExpandHome(path)
	if err != nil {
		return cfg, err
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return cfg, fmt.Errorf("parse yaml: %w", err)
		}
	case ".json":
		if err := json.Unmarshal(b, &cfg); err != nil {
			return cfg, fmt.Errorf("parse json: %w", err)
		}
	case ".toml":
		if err := toml.Unmarshal(b, &cfg); err != nil {
			return cfg, fmt.Errorf("parse toml: %w", err)
		}
	case ".hcl":
		if err := hclsimple.Decode(filepath.Base(path), b, nil, &cfg); err != nil {
			return cfg, fmt.Errorf("parse hcl: %w", err)
		}
	default:
		return cfg, fmt.Errorf("unsupported config extension: %s", ext)
	}
	return cfg, nil
}
