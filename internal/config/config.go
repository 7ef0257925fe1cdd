// Package config loads and validates the service configuration.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the root service configuration.
type Config struct {
	Server struct {
		Port                 int `yaml:"port"`
		MetricsPort          int `yaml:"metrics_port"`
		ReadTimeoutSecs      int `yaml:"read_timeout_seconds"`
		WriteTimeoutSecs     int `yaml:"write_timeout_seconds"`
		ShutdownTimeoutSecs  int `yaml:"shutdown_timeout_seconds"`
		SimulateTimeoutSecs  int `yaml:"simulate_timeout_seconds"`
		AggregateTimeoutSecs int `yaml:"montecarlo_timeout_seconds"`
		RateLimitPerMinute   int `yaml:"rate_limit_per_minute"`
	} `yaml:"server"`

	Simulation struct {
		MaxRuns int `yaml:"max_runs"`
		Workers int `yaml:"workers"`
	} `yaml:"simulation"`

	Game struct {
		StateTTLSecs int `yaml:"state_ttl_seconds"`
	} `yaml:"game"`

	OpenAI struct {
		APIKey      string `yaml:"api_key"`
		Model       string `yaml:"model"`
		TimeoutSecs int    `yaml:"timeout_seconds"`
		MaxRetries  int    `yaml:"max_retries"`
	} `yaml:"openai"`

	Logging struct {
		Level string `yaml:"level"`
	} `yaml:"logging"`
}

// Default returns the configuration used when no file is supplied.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// Load reads a YAML configuration file, expands ${ENV_VAR} references,
// validates it and fills defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	expanded := expandEnvVars(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config YAML: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// Validate rejects out-of-range values and fills defaults for the rest.
func (c *Config) Validate() error {
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be between 0 and 65535, got %d", c.Server.Port)
	}
	if c.Server.MetricsPort < 0 || c.Server.MetricsPort > 65535 {
		return fmt.Errorf("server.metrics_port must be between 0 and 65535, got %d", c.Server.MetricsPort)
	}
	if c.Server.RateLimitPerMinute < 0 {
		return fmt.Errorf("server.rate_limit_per_minute cannot be negative")
	}
	if c.Simulation.MaxRuns < 0 {
		return fmt.Errorf("simulation.max_runs cannot be negative")
	}
	if c.Simulation.Workers < 0 {
		return fmt.Errorf("simulation.workers cannot be negative")
	}
	if c.Game.StateTTLSecs < 0 {
		return fmt.Errorf("game.state_ttl_seconds cannot be negative")
	}
	if c.OpenAI.MaxRetries < 0 {
		return fmt.Errorf("openai.max_retries cannot be negative")
	}

	c.applyDefaults()
	return nil
}

func (c *Config) applyDefaults() {
	if c.Server.Port == 0 {
		c.Server.Port = 4000
	}
	if c.Server.MetricsPort == 0 {
		c.Server.MetricsPort = 9090
	}
	if c.Server.ReadTimeoutSecs <= 0 {
		c.Server.ReadTimeoutSecs = 15
	}
	if c.Server.WriteTimeoutSecs <= 0 {
		c.Server.WriteTimeoutSecs = 75
	}
	if c.Server.ShutdownTimeoutSecs <= 0 {
		c.Server.ShutdownTimeoutSecs = 10
	}
	if c.Server.SimulateTimeoutSecs <= 0 {
		c.Server.SimulateTimeoutSecs = 15
	}
	if c.Server.AggregateTimeoutSecs <= 0 {
		c.Server.AggregateTimeoutSecs = 60
	}
	if c.Server.RateLimitPerMinute == 0 {
		c.Server.RateLimitPerMinute = 120
	}
	if c.Simulation.MaxRuns == 0 {
		c.Simulation.MaxRuns = 10000
	}
	if c.Simulation.Workers == 0 {
		c.Simulation.Workers = 8
	}
	if c.Game.StateTTLSecs == 0 {
		c.Game.StateTTLSecs = 3600
	}
	if c.OpenAI.Model == "" {
		c.OpenAI.Model = "gpt-4o-mini"
	}
	if c.OpenAI.TimeoutSecs <= 0 {
		c.OpenAI.TimeoutSecs = 20
	}
	if c.OpenAI.MaxRetries == 0 {
		c.OpenAI.MaxRetries = 2
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
}

// Duration accessors for the seconds-as-int fields.

func (c *Config) ReadTimeout() time.Duration  { return secs(c.Server.ReadTimeoutSecs) }
func (c *Config) WriteTimeout() time.Duration { return secs(c.Server.WriteTimeoutSecs) }
func (c *Config) ShutdownTimeout() time.Duration {
	return secs(c.Server.ShutdownTimeoutSecs)
}
func (c *Config) SimulateTimeout() time.Duration  { return secs(c.Server.SimulateTimeoutSecs) }
func (c *Config) AggregateTimeout() time.Duration { return secs(c.Server.AggregateTimeoutSecs) }
func (c *Config) GameStateTTL() time.Duration     { return secs(c.Game.StateTTLSecs) }
func (c *Config) OpenAITimeout() time.Duration    { return secs(c.OpenAI.TimeoutSecs) }

func secs(n int) time.Duration { return time.Duration(n) * time.Second }

// expandEnvVars replaces ${VAR} references with environment values, leaving
// unset references untouched.
func expandEnvVars(input string) string {
	return os.Expand(input, func(key string) string {
		if value := os.Getenv(key); value != "" {
			return value
		}
		return "${" + key + "}"
	})
}
