package config

import (
	"fmt"
	"os"
	"time"

	"github.com/HIMANSHUIPE/HSClassification/internal/completion"
	"github.com/HIMANSHUIPE/HSClassification/pkg/database"
	"github.com/pelletier/go-toml/v2"
)

const (
	BaseConfigFile       = "config.toml"
	OverlayConfigPattern = "config.%s.toml"

	EnvHSCEnv             = "HSC_ENV"
	EnvHSCShutdownTimeout = "HSC_SHUTDOWN_TIMEOUT"
	EnvHSCVersion         = "HSC_VERSION"
)

var databaseEnv = &database.Env{
	Host:            "HSC_DB_HOST",
	Port:            "HSC_DB_PORT",
	Name:            "HSC_DB_NAME",
	User:            "HSC_DB_USER",
	Password:        "HSC_DB_PASSWORD",
	SSLMode:         "HSC_DB_SSL_MODE",
	MaxOpenConns:    "HSC_DB_MAX_OPEN_CONNS",
	MaxIdleConns:    "HSC_DB_MAX_IDLE_CONNS",
	ConnMaxLifetime: "HSC_DB_CONN_MAX_LIFETIME",
	ConnTimeout:     "HSC_DB_CONN_TIMEOUT",
}

var completionEnv = &completion.Env{
	Provider:  "HSC_COMPLETION_PROVIDER",
	APIKey:    "HSC_COMPLETION_API_KEY",
	BaseURL:   "HSC_COMPLETION_BASE_URL",
	Model:     "HSC_COMPLETION_MODEL",
	MaxTokens: "HSC_COMPLETION_MAX_TOKENS",
}

// Config is the root configuration for the classification service.
type Config struct {
	Server          ServerConfig      `toml:"server"`
	Database        database.Config   `toml:"database"`
	Completion      completion.Config `toml:"completion"`
	API             APIConfig         `toml:"api"`
	ShutdownTimeout string            `toml:"shutdown_timeout"`
	Version         string            `toml:"version"`
}

// Env returns the HSC_ENV value, defaulting to "local".
func (c *Config) Env() string {
	if env := os.Getenv(EnvHSCEnv); env != "" {
		return env
	}
	return "local"
}

// ShutdownTimeoutDuration returns ShutdownTimeout as a time.Duration.
func (c *Config) ShutdownTimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.ShutdownTimeout)
	return d
}

// Load reads the base config (if present), applies any environment overlay,
// and finalizes all values. If no config.toml exists, defaults and environment
// variables provide all configuration.
func Load() (*Config, error) {
	cfg := &Config{}

	if _, err := os.Stat(BaseConfigFile); err == nil {
		loaded, err := load(BaseConfigFile)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if path := overlayPath(); path != "" {
		overlay, err := load(path)
		if err != nil {
			return nil, fmt.Errorf("load overlay %s: %w", path, err)
		}
		cfg.Merge(overlay)
	}

	if err := cfg.finalize(); err != nil {
		return nil, fmt.Errorf("finalize config: %w", err)
	}

	return cfg, nil
}

// Merge overwrites non-zero fields from overlay across all sub-configs.
func (c *Config) Merge(overlay *Config) {
	if overlay.ShutdownTimeout != "" {
		c.ShutdownTimeout = overlay.ShutdownTimeout
	}
	if overlay.Version != "" {
		c.Version = overlay.Version
	}
	c.Server.Merge(&overlay.Server)
	c.Database.Merge(&overlay.Database)
	c.Completion.Merge(&overlay.Completion)
	c.API.Merge(&overlay.API)
}

func (c *Config) finalize() error {
	c.loadDefaults()
	c.loadEnv()

	if err := c.validate(); err != nil {
		return err
	}
	if err := c.Server.Finalize(); err != nil {
		return fmt.Errorf("server: %w", err)
	}
	if err := c.Database.Finalize(databaseEnv); err != nil {
		return fmt.Errorf("database: %w", err)
	}
	if err := c.Completion.Finalize(completionEnv); err != nil {
		return fmt.Errorf("completion: %w", err)
	}
	if err := c.API.Finalize(); err != nil {
		return fmt.Errorf("api: %w", err)
	}
	return nil
}

func (c *Config) loadDefaults() {
	if c.ShutdownTimeout == "" {
		c.ShutdownTimeout = "30s"
	}
	if c.Version == "" {
		c.Version = "0.1.0"
	}
}

func (c *Config) loadEnv() {
	if v := os.Getenv(EnvHSCShutdownTimeout); v != "" {
		c.ShutdownTimeout = v
	}
	if v := os.Getenv(EnvHSCVersion); v != "" {
		c.Version = v
	}
}

func (c *Config) validate() error {
	if _, err := time.ParseDuration(c.ShutdownTimeout); err != nil {
		return fmt.Errorf("invalid shutdown_timeout: %w", err)
	}
	return nil
}

func load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	return &cfg, nil
}

func overlayPath() string {
	if env := os.Getenv(EnvHSCEnv); env != "" {
		path := fmt.Sprintf(OverlayConfigPattern, env)
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}
