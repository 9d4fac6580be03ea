// Package config loads portal settings from the environment, an optional
// .env file and an optional YAML file.
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
	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"
)

// App holds the runtime configuration.
type App struct {
	Env             string
	HTTPPort        string
	APIBaseURL      string
	APIPublicURL    string
	APITimeout      time.Duration
	SessionBackend  string
	SessionSecret   string
	SessionMaxAge   time.Duration
	RedisAddr       string
	CSRFKey         string
	RateLimitPerMin int
	LogLevel        string
	LogFormat       string
	CampusctlHome   string
}

// Production reports whether the portal runs with production settings.
func (a App) Production() bool {
	return a.Env == "production" || a.Env == "prod"
}

// Load reads .env (when present), then the YAML file named by CONFIG_FILE,
// then the process environment. Later sources win.
func Load() (App, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return App{}, fmt.Errorf("config: load .env: %w", err)
	}
	file, err := readFile(os.Getenv("CONFIG_FILE"))
	if err != nil {
		return App{}, err
	}
	return load(source{file: file}), nil
}

func load(src source) App {
	home, _ := os.UserHomeDir()
	return App{
		Env:             src.getEnv("APP_ENV", "dev"),
		HTTPPort:        src.getEnv("HTTP_PORT", "8080"),
		APIBaseURL:      src.getEnv("API_BASE_URL", "http://localhost:5000/api"),
		APIPublicURL:    src.getEnv("API_PUBLIC_URL", ""),
		APITimeout:      src.durationEnv("API_TIMEOUT", 0),
		SessionBackend:  src.getEnv("SESSION_BACKEND", "cookie"),
		SessionSecret:   src.getEnv("SESSION_SECRET", "dev-session-secret-change-me-32b!"),
		SessionMaxAge:   src.durationEnv("SESSION_MAX_AGE", 24*time.Hour),
		RedisAddr:       src.getEnv("REDIS_ADDR", "localhost:6379"),
		CSRFKey:         src.getEnv("CSRF_KEY", "dev-csrf-key-change-me-32-bytes!"),
		RateLimitPerMin: src.intEnv("RATE_LIMIT_PER_MIN", 20),
		LogLevel:        src.getEnv("LOG_LEVEL", "info"),
		LogFormat:       src.getEnv("LOG_FORMAT", "json"),
		CampusctlHome:   src.getEnv("CAMPUSCTL_HOME", home+"/.campusctl"),
	}
}

// readFile parses a flat YAML mapping of setting names to values.
func readFile(path string) (map[string]string, error) {
	if path == "" {
		return nil, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	var doc map[string]any
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	out := make(map[string]string, len(doc))
	for k, v := range doc {
		if v == nil {
			continue
		}
		out[strings.ToUpper(k)] = fmt.Sprint(v)
	}
	return out, nil
}

type source struct {
	file map[string]string
}

func (s source) lookup(key string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return s.file[key]
}

func (s source) getEnv(key, fallback string) string {
	if val := s.lookup(key); val != "" {
		return val
	}
	return fallback
}

func (s source) durationEnv(key string, fallback time.Duration) time.Duration {
	if val := s.lookup(key); val != "" {
		d, err := time.ParseDuration(val)
		if err != nil {
			log.Warn().Err(err).Str("key", key).Dur("fallback", fallback).Msg("invalid duration, using fallback")
			return fallback
		}
		return d
	}
	return fallback
}

func (s source) intEnv(key string, fallback int) int {
	if val := s.lookup(key); val != "" {
		parsed, err := strconv.Atoi(val)
		if err == nil {
			return parsed
		}
		log.Warn().Str("key", key).Int("fallback", fallback).Msg("invalid int, using fallback")
	}
	return fallback
}
