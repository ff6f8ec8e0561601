package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config represents the application configuration
type Config struct {
	Snapshots SnapshotsConfig `yaml:"snapshots"`
	Server    ServerConfig    `yaml:"server"`
	Scheduler SchedulerConfig `yaml:"scheduler"`
	LogLevel  string          `yaml:"log_level"`
}

// SnapshotsConfig controls where snapshot files come from and how they are
// fetched. Dir takes precedence over BaseURL when both are set.
type SnapshotsConfig struct {
	BaseURL           string        `yaml:"base_url"`
	Dir               string        `yaml:"dir,omitempty"`
	MaxRetries        int           `yaml:"max_retries"`
	RetryDelay        time.Duration `yaml:"retry_delay"`
	RequestsPerSecond float64       `yaml:"requests_per_second,omitempty"`
	Timeout           time.Duration `yaml:"timeout"`
}

// ServerConfig represents the API server configuration
type ServerConfig struct {
	Host       string `yaml:"host"`
	Port       int    `yaml:"port"`
	CORSOrigin string `yaml:"cors_origin,omitempty"`
}

// SchedulerConfig represents the snapshot reload schedule
type SchedulerConfig struct {
	Enabled  bool   `yaml:"enabled"`
	CronExpr string `yaml:"cron_expr"`
}

// DefaultConfig returns a default configuration
func DefaultConfig() *Config {
	return &Config{
		Snapshots: SnapshotsConfig{
			BaseURL:    "http://localhost:8000",
			MaxRetries: 3,
			RetryDelay: time.Second,
			Timeout:    30 * time.Second,
		},
		Server: ServerConfig{
			Host: "0.0.0.0",
			Port: 8080,
		},
		Scheduler: SchedulerConfig{
			Enabled:  true,
			CronExpr: "*/15 * * * *",
		},
		LogLevel: "info",
	}
}

// Load loads configuration from file and applies environment overrides
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	config.applyEnv()
	return config, nil
}

// applyEnv overlays TUBEDASH_* environment variables, loading a local .env
// file first when present.
func (c *Config) applyEnv() {
	_ = godotenv.Load()

	if v := os.Getenv("TUBEDASH_BASE_URL"); v != "" {
		c.Snapshots.BaseURL = v
	}
	if v := os.Getenv("TUBEDASH_SNAPSHOT_DIR"); v != "" {
		c.Snapshots.Dir = v
	}
	if v := os.Getenv("TUBEDASH_HOST"); v != "" {
		c.Server.Host = v
	}
	if v := os.Getenv("TUBEDASH_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			c.Server.Port = port
		}
	}
	if v := os.Getenv("TUBEDASH_CORS_ORIGIN"); v != "" {
		c.Server.CORSOrigin = v
	}
	if v := os.Getenv("TUBEDASH_CRON"); v != "" {
		c.Scheduler.CronExpr = v
	}
	if v := os.Getenv("TUBEDASH_LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
}

// Save saves configuration to file
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	// Create directory if it doesn't exist
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// GetConfigPath returns the default config file path
func GetConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".tubedash/config.yaml"
	}
	return filepath.Join(home, ".tubedash", "config.yaml")
}

// Exists checks if config file exists
func Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
