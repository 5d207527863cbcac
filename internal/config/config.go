package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/Flyrell/shopsum/internal/secret"
	"github.com/Flyrell/shopsum/internal/shopify"
	"gopkg.in/yaml.v3"
)

const (
	DefaultStoreLabel     = "default"
	DefaultTimeout        = 30 * time.Second
	DefaultServerAddr     = ":8002"
	DefaultAuthSecretName = "SHOPSUM_SERVER_SECRET"
)

// ServerConfig configures the HTTP worker.
type ServerConfig struct {
	Addr string `yaml:"addr"`
	// AuthSecretName is the secret holding the shared Authorization value.
	// When it does not resolve, requests are not authenticated.
	AuthSecretName string `yaml:"auth_secret_name"`
}

// Config is the global shopsum configuration.
type Config struct {
	APIVersion   string        `yaml:"api_version"`
	SecretPrefix string        `yaml:"secret_prefix"`
	DefaultStore string        `yaml:"default_store"`
	Timeout      time.Duration `yaml:"timeout"`
	Fields       []string      `yaml:"fields"`
	Server       ServerConfig  `yaml:"server"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		APIVersion:   shopify.DefaultAPIVersion,
		SecretPrefix: secret.DefaultPrefix,
		DefaultStore: DefaultStoreLabel,
		Timeout:      DefaultTimeout,
		Fields:       append([]string(nil), shopify.DefaultFields...),
		Server: ServerConfig{
			Addr:           DefaultServerAddr,
			AuthSecretName: DefaultAuthSecretName,
		},
	}
}

// Dir returns the global shopsum directory.
func Dir(homeDir string) string {
	return filepath.Join(homeDir, ".shopsum")
}

// Path returns the path to config.yaml.
func Path(homeDir string) string {
	return filepath.Join(Dir(homeDir), "config.yaml")
}

// ReadConfig reads the global config. Returns defaults if the file does not
// exist; keys missing from the file keep their defaults.
func ReadConfig(homeDir string) (*Config, error) {
	data, err := os.ReadFile(Path(homeDir))
	if errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// Parse decodes YAML on top of the defaults.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config YAML: %w", err)
	}
	applyDefaults(cfg)
	return cfg, nil
}

func applyDefaults(cfg *Config) {
	def := Default()
	if cfg.APIVersion == "" {
		cfg.APIVersion = def.APIVersion
	}
	if cfg.SecretPrefix == "" {
		cfg.SecretPrefix = def.SecretPrefix
	}
	if cfg.DefaultStore == "" {
		cfg.DefaultStore = def.DefaultStore
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = def.Timeout
	}
	if len(cfg.Fields) == 0 {
		cfg.Fields = def.Fields
	}
	if cfg.Server.Addr == "" {
		cfg.Server.Addr = def.Server.Addr
	}
}

// WriteConfig writes the global config, creating the directory if needed.
func WriteConfig(homeDir string, cfg *Config) error {
	if err := os.MkdirAll(Dir(homeDir), 0755); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	return os.WriteFile(Path(homeDir), data, 0644)
}

// keys maps each settable key to its getter and setter.
var keys = map[string]struct {
	get func(c *Config) string
	set func(c *Config, v string) error
}{
	"api_version": {
		get: func(c *Config) string { return c.APIVersion },
		set: func(c *Config, v string) error {
			if _, err := time.Parse("2006-01", v); err != nil {
				return fmt.Errorf("invalid api_version %q (expected YYYY-MM)", v)
			}
			c.APIVersion = v
			return nil
		},
	},
	"secret_prefix": {
		get: func(c *Config) string { return c.SecretPrefix },
		set: func(c *Config, v string) error {
			if strings.TrimSpace(v) == "" {
				return fmt.Errorf("secret_prefix cannot be empty")
			}
			c.SecretPrefix = v
			return nil
		},
	},
	"default_store": {
		get: func(c *Config) string { return c.DefaultStore },
		set: func(c *Config, v string) error {
			if strings.TrimSpace(v) == "" {
				return fmt.Errorf("default_store cannot be empty")
			}
			c.DefaultStore = v
			return nil
		},
	},
	"timeout": {
		get: func(c *Config) string { return c.Timeout.String() },
		set: func(c *Config, v string) error {
			d, err := time.ParseDuration(v)
			if err != nil || d <= 0 {
				return fmt.Errorf("invalid timeout %q (expected a positive duration like 30s)", v)
			}
			c.Timeout = d
			return nil
		},
	},
	"fields": {
		get: func(c *Config) string { return strings.Join(c.Fields, ",") },
		set: func(c *Config, v string) error {
			var fields []string
			for _, f := range strings.Split(v, ",") {
				if f = strings.TrimSpace(f); f != "" {
					fields = append(fields, f)
				}
			}
			if len(fields) == 0 {
				return fmt.Errorf("fields cannot be empty")
			}
			c.Fields = fields
			return nil
		},
	},
	"server.addr": {
		get: func(c *Config) string { return c.Server.Addr },
		set: func(c *Config, v string) error {
			if !strings.Contains(v, ":") {
				return fmt.Errorf("invalid server.addr %q (expected host:port or :port)", v)
			}
			c.Server.Addr = v
			return nil
		},
	},
	"server.auth_secret_name": {
		get: func(c *Config) string { return c.Server.AuthSecretName },
		set: func(c *Config, v string) error {
			c.Server.AuthSecretName = v
			return nil
		},
	},
}

// Keys returns all settable keys in sorted order.
func Keys() []string {
	out := make([]string, 0, len(keys))
	for k := range keys {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Get returns the string form of a key.
func (c *Config) Get(key string) (string, error) {
	k, ok := keys[key]
	if !ok {
		return "", fmt.Errorf("unknown config key %q (valid: %s)", key, strings.Join(Keys(), ", "))
	}
	return k.get(c), nil
}

// Set validates and assigns a key.
func (c *Config) Set(key, value string) error {
	k, ok := keys[key]
	if !ok {
		return fmt.Errorf("unknown config key %q (valid: %s)", key, strings.Join(Keys(), ", "))
	}
	return k.set(c, value)
}
