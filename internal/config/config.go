package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the root configuration for the noise tools and the SSH explorer.
type Config struct {
	Server ServerConfig `yaml:"server"`
	Field  FieldConfig  `yaml:"field"`
}

// ServerConfig controls the SSH explorer.
type ServerConfig struct {
	Addr        string `yaml:"addr"`
	HostKey     string `yaml:"host_key"`
	MetricsAddr string `yaml:"metrics_addr"` // empty disables /metrics
}

// FieldConfig controls how a noise field is sampled.
type FieldConfig struct {
	Seed      int64   `yaml:"seed"` // 0 = derive from the clock
	ScaleX    float64 `yaml:"scale_x"`
	ScaleY    float64 `yaml:"scale_y"`
	Threshold float64 `yaml:"threshold"`
}

const (
	DefaultAddr      = ":2222"
	DefaultHostKey   = "host_key"
	DefaultScaleX    = 1.0 / 20
	DefaultScaleY    = 1.0 / 10
	DefaultThreshold = 0.5

	// EnvConfig names the config file used when Load is given no path.
	EnvConfig = "PERLIN2_CONFIG"
)

// Default returns a config with every field set to its default.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// GetAddr returns the listen address: config, then $PORT, then DefaultAddr.
func (s *ServerConfig) GetAddr() string {
	if s.Addr != "" {
		return s.Addr
	}
	if port := os.Getenv("PORT"); port != "" {
		return ":" + port
	}
	return DefaultAddr
}

func (c *Config) applyDefaults() {
	if c.Server.HostKey == "" {
		c.Server.HostKey = DefaultHostKey
	}
	if c.Field.ScaleX == 0 {
		c.Field.ScaleX = DefaultScaleX
	}
	if c.Field.ScaleY == 0 {
		c.Field.ScaleY = DefaultScaleY
	}
	if c.Field.Threshold == 0 {
		c.Field.Threshold = DefaultThreshold
	}
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	if c.Field.ScaleX <= 0 || c.Field.ScaleY <= 0 {
		return fmt.Errorf("field scale must be positive, got %gx%g", c.Field.ScaleX, c.Field.ScaleY)
	}
	if c.Field.Threshold < 0 || c.Field.Threshold > 1 {
		return fmt.Errorf("field threshold %g outside [0, 1]", c.Field.Threshold)
	}
	return nil
}

// Load reads a YAML config file and fills in defaults.
// If path is empty, $PERLIN2_CONFIG is used; if that is also empty the
// defaults are returned.
func Load(path string) (*Config, error) {
	if path == "" {
		path = os.Getenv(EnvConfig)
		if path == "" {
			return Default(), nil
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, errors.Join(fmt.Errorf("invalid config %s", path), err)
	}
	return &cfg, nil
}
