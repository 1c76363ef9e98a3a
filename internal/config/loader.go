// Package config loads service configuration from an optional YAML file with
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

	"gopkg.in/yaml.v3"
)

// Duration wraps time.Duration so YAML values like "90m" parse naturally.
type Duration time.Duration

// UnmarshalYAML parses either a Go duration string or a plain nanosecond count.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var raw string
	if err := value.Decode(&raw); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(raw)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", raw, err)
	}
	*d = Duration(parsed)
	return nil
}

// Std returns the wrapped standard library duration.
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

func (d Duration) String() string {
	return time.Duration(d).String()
}

// Config captures the runtime configuration of the booking service.
type Config struct {
	HTTP struct {
		Port            int      `yaml:"port"`
		ShutdownTimeout Duration `yaml:"shutdown_timeout"`
	} `yaml:"http"`

	Database struct {
		Path string `yaml:"path"`
	} `yaml:"database"`

	Session struct {
		TTL Duration `yaml:"ttl"`
	} `yaml:"session"`

	Redis struct {
		Address  string `yaml:"address"`
		Password string `yaml:"password"`
		DB       int    `yaml:"db"`
	} `yaml:"redis"`

	StatusCache struct {
		TTL Duration `yaml:"ttl"`
	} `yaml:"status_cache"`

	RateLimit struct {
		RequestsPerSecond float64 `yaml:"requests_per_second"`
		Burst             int     `yaml:"burst"`
	} `yaml:"rate_limit"`

	Admin struct {
		Email    string `yaml:"email"`
		Password string `yaml:"password"`
	} `yaml:"admin"`
}

// Load reads the YAML file at path, expands ${ENV_VAR} placeholders, applies
// ROOMBOOK_* environment overrides, and validates the result. A missing file
// is not an error; defaults and the environment then fully define the config.
func Load(path string) (Config, error) {
	cfg := defaults()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			data = []byte(os.ExpandEnv(string(data)))
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return Config{}, fmt.Errorf("parse config %s: %w", path, err)
			}
		case errors.Is(err, fs.ErrNotExist):
			// Fall through to env and defaults.
		default:
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	if err := applyEnvOverrides(&cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func defaults() Config {
	var cfg Config
	cfg.HTTP.Port = 8080
	cfg.HTTP.ShutdownTimeout = Duration(10 * time.Second)
	cfg.Database.Path = "data/roombook.db"
	cfg.Session.TTL = Duration(24 * time.Hour)
	cfg.StatusCache.TTL = Duration(30 * time.Second)
	cfg.RateLimit.RequestsPerSecond = 20
	cfg.RateLimit.Burst = 40
	return cfg
}

func applyEnvOverrides(cfg *Config) error {
	var invalid []string

	if value := strings.TrimSpace(os.Getenv("ROOMBOOK_HTTP_PORT")); value != "" {
		port, err := strconv.Atoi(value)
		if err != nil || port <= 0 {
			invalid = append(invalid, "ROOMBOOK_HTTP_PORT")
		} else {
			cfg.HTTP.Port = port
		}
	}

	if value := strings.TrimSpace(os.Getenv("ROOMBOOK_DB_PATH")); value != "" {
		cfg.Database.Path = value
	}

	if value := strings.TrimSpace(os.Getenv("ROOMBOOK_SESSION_TTL")); value != "" {
		ttl, err := time.ParseDuration(value)
		if err != nil || ttl <= 0 {
			invalid = append(invalid, "ROOMBOOK_SESSION_TTL")
		} else {
			cfg.Session.TTL = Duration(ttl)
		}
	}

	if value := strings.TrimSpace(os.Getenv("ROOMBOOK_REDIS_ADDR")); value != "" {
		cfg.Redis.Address = value
	}
	if value := strings.TrimSpace(os.Getenv("ROOMBOOK_REDIS_PASSWORD")); value != "" {
		cfg.Redis.Password = value
	}

	if value := strings.TrimSpace(os.Getenv("ROOMBOOK_STATUS_CACHE_TTL")); value != "" {
		ttl, err := time.ParseDuration(value)
		if err != nil || ttl <= 0 {
			invalid = append(invalid, "ROOMBOOK_STATUS_CACHE_TTL")
		} else {
			cfg.StatusCache.TTL = Duration(ttl)
		}
	}

	if value := strings.TrimSpace(os.Getenv("ROOMBOOK_ADMIN_EMAIL")); value != "" {
		cfg.Admin.Email = value
	}
	if value := strings.TrimSpace(os.Getenv("ROOMBOOK_ADMIN_PASSWORD")); value != "" {
		cfg.Admin.Password = value
	}

	if len(invalid) > 0 {
		return fmt.Errorf("invalid environment values: %s", strings.Join(invalid, ", "))
	}
	return nil
}

func (c Config) validate() error {
	var problems []string

	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		problems = append(problems, "http.port must be between 1 and 65535")
	}
	if strings.TrimSpace(c.Database.Path) == "" {
		problems = append(problems, "database.path is required")
	}
	if c.Session.TTL <= 0 {
		problems = append(problems, "session.ttl must be positive")
	}
	if c.RateLimit.RequestsPerSecond < 0 {
		problems = append(problems, "rate_limit.requests_per_second must not be negative")
	}
	if c.Admin.Email != "" && c.Admin.Password == "" {
		problems = append(problems, "admin.password is required when admin.email is set")
	}

	if len(problems) > 0 {
		return fmt.Errorf("invalid configuration: %s", strings.Join(problems, "; "))
	}
	return nil
}
