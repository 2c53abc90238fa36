// Package config loads application configuration from a YAML file overlaid
// with environment variables.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/appydave/appydaveapp/internal/platform/database"
	"github.com/appydave/appydaveapp/pkg/logger"
)

// ServerConfig holds HTTP listener settings.
type ServerConfig struct {
	Host         string `yaml:"host"`
	Port         int    `yaml:"port"`
	ReadTimeout  int    `yaml:"read_timeout"`  // seconds
	WriteTimeout int    `yaml:"write_timeout"` // seconds
}

// LoggingConfig mirrors logger.LoggingConfig for YAML decoding.
type LoggingConfig struct {
	Level      string `yaml:"level"`
	Format     string `yaml:"format"`
	Output     string `yaml:"output"`
	FilePrefix string `yaml:"file_prefix"`
}

// RateLimitConfig holds request throttling settings.
type RateLimitConfig struct {
	RequestsPerSecond int `yaml:"requests_per_second"`
	Burst             int `yaml:"burst"`
}

// Config is the root application configuration.
type Config struct {
	Server         ServerConfig    `yaml:"server"`
	Database       database.Config `yaml:"database"`
	Logging        LoggingConfig   `yaml:"logging"`
	RateLimit      RateLimitConfig `yaml:"rate_limit"`
	AllowedOrigins []string        `yaml:"allowed_origins"`
	Seed           bool            `yaml:"seed"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Host:         "0.0.0.0",
			Port:         3000,
			ReadTimeout:  15,
			WriteTimeout: 15,
		},
		Database: database.Config{
			Driver:          "postgres",
			MaxOpenConns:    10,
			MaxIdleConns:    5,
			ConnMaxLifetime: 300,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
			Output: "stdout",
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: 50,
			Burst:             100,
		},
		AllowedOrigins: []string{"*"},
	}
}

// Load reads configuration from CONFIG_PATH (default config/config.yaml) when
// the file exists, then applies environment overrides. A .env file is honored
// for local runs.
func Load() (*Config, error) {
	_ = godotenv.Load()

	path := os.Getenv("CONFIG_PATH")
	if path == "" {
		path = filepath.Join("config", "config.yaml")
	}
	return LoadFromPath(path)
}

// LoadFromPath reads configuration from a specific file. A missing file is
// not an error; defaults plus environment overrides are used instead.
func LoadFromPath(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	case os.IsNotExist(err):
		// fall through to defaults
	default:
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	applyEnv(cfg)

	if cfg.Server.Port <= 0 || cfg.Server.Port > 65535 {
		return nil, fmt.Errorf("invalid server port %d", cfg.Server.Port)
	}
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = port
		}
	}
	if v := os.Getenv("HOST"); v != "" {
		cfg.Server.Host = v
	}
	if v := os.Getenv("DATABASE_URL"); v != "" {
		cfg.Database.DSN = v
	}
	if v := os.Getenv("DATABASE_DRIVER"); v != "" {
		cfg.Database.Driver = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
	if v := os.Getenv("LOG_FORMAT"); v != "" {
		cfg.Logging.Format = v
	}
	if v := os.Getenv("SEED_ON_START"); v != "" {
		if seed, err := strconv.ParseBool(v); err == nil {
			cfg.Seed = seed
		}
	}
}

// LoggerConfig converts the YAML logging section into the logger package's
// configuration type.
func (c *Config) LoggerConfig() logger.LoggingConfig {
	return logger.LoggingConfig{
		Level:      c.Logging.Level,
		Format:     c.Logging.Format,
		Output:     c.Logging.Output,
		FilePrefix: c.Logging.FilePrefix,
	}
}
