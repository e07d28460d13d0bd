package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// StoreSample is the logical name of the sample order database connection
const StoreSample = "StoreSample"

// ErrMissingConnectionString is returned when a named connection string is not configured
var ErrMissingConnectionString = errors.New("missing connection string")

const defaultConfigFile = "config.yaml"

// Config holds all application configuration
type Config struct {
	ConnectionStrings map[string]string `yaml:"connection_strings"`
	API               APIConfig         `yaml:"api"`
	Queue             QueueConfig       `yaml:"queue"`
	Worker            WorkerConfig      `yaml:"worker"`
	CORS              CORSConfig        `yaml:"cors"`
	Log               LogConfig         `yaml:"log"`
}

// APIConfig holds API server configuration
type APIConfig struct {
	Port int `yaml:"port"`
}

// QueueConfig holds queue configuration (Redis). An empty URL disables publishing.
type QueueConfig struct {
	RedisURL  string `yaml:"redis_url"`
	QueueName string `yaml:"queue_name"`
}

// WorkerConfig holds worker configuration
type WorkerConfig struct {
	Concurrency int `yaml:"concurrency"`
}

// CORSConfig holds the single origin allowed to call the API from a browser
type CORSConfig struct {
	AllowedOrigin string `yaml:"allowed_origin"`
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level string `yaml:"level"`
}

// SlogLevel parses Level ("debug", "info", "warn", "error"), falling back to info
func (l LogConfig) SlogLevel() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(l.Level)); err != nil {
		return slog.LevelInfo
	}
	return level
}

// Load reads configuration from the optional YAML file and environment variables.
// Environment variables take precedence over the file.
func Load() (*Config, error) {
	cfg := defaults()

	path := os.Getenv("CONFIG_FILE")
	explicit := path != ""
	if !explicit {
		path = defaultConfigFile
	}

	if err := cfg.loadFile(path, explicit); err != nil {
		return nil, err
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}

	if _, err := cfg.ConnectionString(StoreSample); err != nil {
		return nil, err
	}

	return cfg, nil
}

// ConnectionString returns the connection string registered under name
func (c *Config) ConnectionString(name string) (string, error) {
	cs := c.ConnectionStrings[name]
	if cs == "" {
		return "", fmt.Errorf("%w '%s'", ErrMissingConnectionString, name)
	}
	return cs, nil
}

// QueueEnabled reports whether a Redis queue is configured
func (c *Config) QueueEnabled() bool {
	return c.Queue.RedisURL != ""
}

func defaults() *Config {
	return &Config{
		ConnectionStrings: map[string]string{},
		API:               APIConfig{Port: 8080},
		Queue:             QueueConfig{QueueName: "order_events"},
		Worker:            WorkerConfig{Concurrency: 5},
		CORS:              CORSConfig{AllowedOrigin: "http://localhost:4200"},
		Log:               LogConfig{Level: "info"},
	}
}

// loadFile merges the YAML file at path into c. A missing file is only an error
// when the path was given explicitly.
func (c *Config) loadFile(path string, explicit bool) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) && !explicit {
			return nil
		}
		return fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	if c.ConnectionStrings == nil {
		c.ConnectionStrings = map[string]string{}
	}

	return nil
}

func (c *Config) applyEnv() error {
	if cs := os.Getenv("CONNECTION_STRING_STORESAMPLE"); cs != "" {
		c.ConnectionStrings[StoreSample] = cs
	}

	if v := os.Getenv("API_PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid API_PORT: %w", err)
		}
		c.API.Port = port
	}

	if v := os.Getenv("WORKER_CONCURRENCY"); v != "" {
		concurrency, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid WORKER_CONCURRENCY: %w", err)
		}
		c.Worker.Concurrency = concurrency
	}

	c.Queue.RedisURL = getEnv("REDIS_URL", c.Queue.RedisURL)
	c.Queue.QueueName = getEnv("QUEUE_NAME", c.Queue.QueueName)
	c.CORS.AllowedOrigin = getEnv("CORS_ALLOWED_ORIGIN", c.CORS.AllowedOrigin)
	c.Log.Level = getEnv("LOG_LEVEL", c.Log.Level)

	return nil
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
