// v1
// internal/config/config.go
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/ini.v1"
)

// Config captures all runtime settings required by the stats board
// service. Values can be provided by environment variables, a properties
// file, or fall back to sensible defaults so the service can boot with
// minimal setup.
type Config struct {
	// ListenAddress defines the TCP address used by the HTTP server.
	ListenAddress string
	// LogFilePath is the absolute or relative path to the log file.
	LogFilePath string
	// HTTPReadTimeout bounds the time to read incoming requests.
	HTTPReadTimeout time.Duration
	// HTTPWriteTimeout bounds the time to write responses.
	HTTPWriteTimeout time.Duration
	// ShutdownTimeout limits graceful shutdown attempts.
	ShutdownTimeout time.Duration
	// PropertiesPath records the path used to load property values.
	PropertiesPath string
	// AllowedOrigins lists the browser origins allowed by CORS.
	AllowedOrigins []string
}

const (
	defaultListenAddress = ":8000"
	defaultLogFile       = "logs/statsboard.log"
	defaultReadTimeout   = 5 * time.Second
	defaultWriteTimeout  = 10 * time.Second
	defaultShutdown      = 5 * time.Second
	defaultPropsPath     = "statsboard.properties"
	defaultOrigins       = "*"
)

// Load resolves configuration by layering defaults, an optional
// properties file, and finally environment variables. The properties
// file location can be overridden with STATSBOARD_PROPERTIES_PATH.
func Load() (Config, error) {
	cfg := Config{
		ListenAddress:    defaultListenAddress,
		LogFilePath:      filepath.Clean(defaultLogFile),
		HTTPReadTimeout:  defaultReadTimeout,
		HTTPWriteTimeout: defaultWriteTimeout,
		ShutdownTimeout:  defaultShutdown,
		AllowedOrigins:   splitAndTrim(defaultOrigins),
	}

	propsPath := strings.TrimSpace(os.Getenv("STATSBOARD_PROPERTIES_PATH"))
	if propsPath == "" {
		propsPath = defaultPropsPath
	}
	cfg.PropertiesPath = propsPath

	if err := applyProperties(&cfg, propsPath); err != nil {
		return Config{}, err
	}

	if err := applyEnv(&cfg); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// applyProperties reads section-less key = value pairs. A missing file is
// not an error.
func applyProperties(cfg *Config, path string) error {
	if strings.TrimSpace(path) == "" {
		return nil
	}

	file, err := ini.LoadSources(ini.LoadOptions{Loose: true}, path)
	if err != nil {
		return fmt.Errorf("read properties: %w", err)
	}
	for _, key := range file.Section(ini.DefaultSection).Keys() {
		if err := setProperty(cfg, key.Name(), strings.TrimSpace(key.String())); err != nil {
			return fmt.Errorf("property %s: %w", key.Name(), err)
		}
	}
	return nil
}

func setProperty(cfg *Config, key, value string) error {
	switch key {
	case "listen_address":
		if value == "" {
			return errors.New("listen_address cannot be empty")
		}
		cfg.ListenAddress = value
	case "log_path":
		if value == "" {
			return errors.New("log_path cannot be empty")
		}
		cfg.LogFilePath = filepath.Clean(value)
	case "http_read_timeout_ms":
		d, err := parsePositiveMillis(value)
		if err != nil {
			return err
		}
		cfg.HTTPReadTimeout = d
	case "http_write_timeout_ms":
		d, err := parsePositiveMillis(value)
		if err != nil {
			return err
		}
		cfg.HTTPWriteTimeout = d
	case "shutdown_timeout_ms":
		d, err := parsePositiveMillis(value)
		if err != nil {
			return err
		}
		cfg.ShutdownTimeout = d
	case "cors_allowed_origins":
		origins := splitAndTrim(value)
		if len(origins) == 0 {
			return errors.New("cors_allowed_origins cannot be empty")
		}
		cfg.AllowedOrigins = origins
	default:
		// Unknown keys are ignored to keep the loader forward-compatible.
	}
	return nil
}

// envKeys maps environment variables onto property keys so both layers
// share validation.
var envKeys = []struct {
	env string
	key string
}{
	{"STATSBOARD_LISTEN_ADDRESS", "listen_address"},
	{"STATSBOARD_LOG_PATH", "log_path"},
	{"STATSBOARD_HTTP_READ_TIMEOUT_MS", "http_read_timeout_ms"},
	{"STATSBOARD_HTTP_WRITE_TIMEOUT_MS", "http_write_timeout_ms"},
	{"STATSBOARD_SHUTDOWN_TIMEOUT_MS", "shutdown_timeout_ms"},
	{"STATSBOARD_CORS_ALLOWED_ORIGINS", "cors_allowed_origins"},
}

func applyEnv(cfg *Config) error {
	for _, pair := range envKeys {
		v, ok := lookupEnvTrimmed(pair.env)
		if !ok {
			continue
		}
		if err := setProperty(cfg, pair.key, v); err != nil {
			return fmt.Errorf("%s: %w", pair.env, err)
		}
	}
	return nil
}

func lookupEnvTrimmed(key string) (string, bool) {
	v, ok := os.LookupEnv(key)
	if !ok {
		return "", false
	}
	return strings.TrimSpace(v), true
}

func splitAndTrim(raw string) []string {
	fields := strings.Split(raw, ",")
	out := make([]string, 0, len(fields))
	for _, field := range fields {
		trimmed := strings.TrimSpace(field)
		if trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func parsePositiveMillis(v string) (time.Duration, error) {
	if strings.TrimSpace(v) == "" {
		return 0, errors.New("value cannot be empty")
	}
	ms, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid integer: %w", err)
	}
	if ms <= 0 {
		return 0, errors.New("value must be greater than zero")
	}
	return time.Duration(ms) * time.Millisecond, nil
}
