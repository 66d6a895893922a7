// Package config loads settings from an optional YAML file with
// environment variable overrides.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// DefaultPath is read when no explicit config path is given and the file
// exists in the working directory.
const DefaultPath = "vidblueprint.yaml"

type Config struct {
	Output  OutputConfig  `yaml:"output"`
	Catalog CatalogConfig `yaml:"catalog"`
	Server  ServerConfig  `yaml:"server"`
	Log     LogConfig     `yaml:"log"`
	Tracing TracingConfig `yaml:"tracing"`
}

type OutputConfig struct {
	Dir    string `yaml:"dir"`
	Format string `yaml:"format"`
}

type CatalogConfig struct {
	TableName  string `yaml:"table_name"`
	Bucket     string `yaml:"bucket"`
	CDNBaseURL string `yaml:"cdn_base_url"`
	Region     string `yaml:"region"`
}

// Enabled reports whether enough is configured to publish.
func (c CatalogConfig) Enabled() bool {
	return c.TableName != "" && c.Bucket != ""
}

type ServerConfig struct {
	Port            int           `yaml:"port"`
	CacheTTL        time.Duration `yaml:"cache_ttl"`
	CacheCleanup    time.Duration `yaml:"cache_cleanup"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

type TracingConfig struct {
	Enabled     bool   `yaml:"enabled"`
	ServiceName string `yaml:"service_name"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Output: OutputConfig{
			Dir:    ".",
			Format: "json",
		},
		Catalog: CatalogConfig{
			TableName:  "vidblueprint-blueprints",
			CDNBaseURL: "",
			Region:     "us-east-1",
		},
		Server: ServerConfig{
			Port:            8000,
			CacheTTL:        30 * time.Minute,
			CacheCleanup:    10 * time.Minute,
			ShutdownTimeout: 8 * time.Second,
		},
		Log: LogConfig{
			Level: "info",
		},
		Tracing: TracingConfig{
			Enabled:     true,
			ServiceName: "vidblueprint",
		},
	}
}

// LoadDotEnv loads variables from .env files into the environment without
// overriding values already set. Missing files are ignored.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("load env file %s: %w", f, err)
		}
	}
	return nil
}

// Load builds a Config from defaults, the YAML file at path and then the
// environment. An empty path falls back to DefaultPath when it exists.
func Load(path string) (*Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = DefaultPath
	}
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	case errors.Is(err, fs.ErrNotExist) && !explicit:
	default:
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) applyEnv() error {
	c.Output.Dir = envOr("BLUEPRINT_OUTPUT_DIR", c.Output.Dir)
	c.Output.Format = envOr("BLUEPRINT_FORMAT", c.Output.Format)
	c.Catalog.TableName = envOr("DYNAMODB_TABLE", c.Catalog.TableName)
	c.Catalog.Bucket = envOr("S3_BUCKET", c.Catalog.Bucket)
	c.Catalog.CDNBaseURL = envOr("CDN_BASE_URL", c.Catalog.CDNBaseURL)
	c.Catalog.Region = envOr("AWS_REGION", c.Catalog.Region)
	c.Log.Level = envOr("LOG_LEVEL", c.Log.Level)
	c.Tracing.ServiceName = envOr("OTEL_SERVICE_NAME", c.Tracing.ServiceName)

	var err error
	if c.Server.Port, err = envIntOr("PORT", c.Server.Port); err != nil {
		return err
	}
	if c.Server.CacheTTL, err = envDurationOr("BLUEPRINT_CACHE_TTL", c.Server.CacheTTL); err != nil {
		return err
	}
	if v := os.Getenv("TRACING_ENABLED"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("TRACING_ENABLED: %w", err)
		}
		c.Tracing.Enabled = b
	}
	return nil
}

// Validate rejects values no component can work with.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server port %d out of range", c.Server.Port)
	}
	if c.Server.CacheTTL < 0 {
		return fmt.Errorf("cache ttl must not be negative")
	}
	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown log level %q", c.Log.Level)
	}
	return nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envIntOr(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return n, nil
}

func envDurationOr(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return d, nil
}
