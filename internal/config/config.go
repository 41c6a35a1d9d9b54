// Package config loads the runtime configuration: built-in defaults, an
// optional YAML file, a .env file and FORMWIZARD_* environment variables, in
// increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Environment variables read by Load.
const (
	EnvAddr         = "FORMWIZARD_ADDR"
	EnvLogLevel     = "FORMWIZARD_LOG_LEVEL"
	EnvLogFormat    = "FORMWIZARD_LOG_FORMAT"
	EnvCatalog      = "FORMWIZARD_CATALOG"
	EnvSessionTTL   = "FORMWIZARD_SESSION_TTL"
	EnvTheme        = "FORMWIZARD_THEME"
	EnvThemeVariant = "FORMWIZARD_THEME_VARIANT"
	EnvCORSOrigins  = "FORMWIZARD_CORS_ORIGINS"
)

// ErrInvalidConfig wraps every validation failure.
var ErrInvalidConfig = errors.New("config: invalid")

// LogConfig selects the logger output.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// ThemeConfig points at a go-theme manifest on disk.
type ThemeConfig struct {
	Manifest string `yaml:"manifest"`
	Variant  string `yaml:"variant"`
}

// Config is the full runtime configuration.
type Config struct {
	Addr       string        `yaml:"addr"`
	Log        LogConfig     `yaml:"log"`
	Catalog    string        `yaml:"catalog"`
	SessionTTL time.Duration `yaml:"session_ttl"`
	Theme      ThemeConfig   `yaml:"theme"`
	// CORSOrigins enables CORS on the JSON API for the listed origins.
	CORSOrigins []string `yaml:"cors_origins"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Addr: ":8080",
		Log: LogConfig{
			Level:  "info",
			Format: "console",
		},
		SessionTTL: 30 * time.Minute,
	}
}

// Load builds the configuration. path may be empty; envFiles default to
// ".env" and missing env files are ignored.
func Load(path string, envFiles ...string) (Config, error) {
	if err := loadEnvFiles(envFiles...); err != nil {
		return Config{}, err
	}

	cfg := Default()
	if strings.TrimSpace(path) != "" {
		if err := cfg.mergeFile(path); err != nil {
			return Config{}, err
		}
	}
	if err := cfg.mergeEnv(os.LookupEnv); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func loadEnvFiles(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, file := range files {
		if err := godotenv.Load(file); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("config: load %s: %w", file, err)
		}
	}
	return nil
}

func (c *Config) mergeFile(path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(raw, c); err != nil {
		return fmt.Errorf("config: decode %s: %w", path, err)
	}
	return nil
}

func (c *Config) mergeEnv(lookup func(string) (string, bool)) error {
	set := func(key string, dst *string) {
		if v, ok := lookup(key); ok && strings.TrimSpace(v) != "" {
			*dst = strings.TrimSpace(v)
		}
	}
	set(EnvAddr, &c.Addr)
	set(EnvLogLevel, &c.Log.Level)
	set(EnvLogFormat, &c.Log.Format)
	set(EnvCatalog, &c.Catalog)
	set(EnvTheme, &c.Theme.Manifest)
	set(EnvThemeVariant, &c.Theme.Variant)

	if v, ok := lookup(EnvCORSOrigins); ok && strings.TrimSpace(v) != "" {
		c.CORSOrigins = splitList(v)
	}

	if v, ok := lookup(EnvSessionTTL); ok && strings.TrimSpace(v) != "" {
		ttl, err := time.ParseDuration(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("%w: %s: %v", ErrInvalidConfig, EnvSessionTTL, err)
		}
		c.SessionTTL = ttl
	}
	return nil
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// Validate reports every problem at once.
func (c Config) Validate() error {
	var errs []error
	if strings.TrimSpace(c.Addr) == "" {
		errs = append(errs, fmt.Errorf("%w: addr is empty", ErrInvalidConfig))
	}
	if c.SessionTTL <= 0 {
		errs = append(errs, fmt.Errorf("%w: session_ttl must be positive", ErrInvalidConfig))
	}
	switch strings.ToLower(c.Log.Format) {
	case "console", "json":
	default:
		errs = append(errs, fmt.Errorf("%w: log.format %q, want console or json", ErrInvalidConfig, c.Log.Format))
	}
	return errors.Join(errs...)
}
