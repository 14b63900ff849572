package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

const envPrefix = "PORTAL_"

const (
	SessionBackendMemory = "memory"
	SessionBackendRedis  = "redis"
)

var ErrInvalidConfig = errors.New("config: invalid configuration")

type Config struct {
	Server    ServerConfig    `toml:"server"`
	Logs      LogsConfig      `toml:"logs"`
	Metrics   MetricsConfig   `toml:"metrics"`
	Database  DatabaseConfig  `toml:"database"`
	OpsAPI    OpsAPIConfig    `toml:"opsapi"`
	Session   SessionConfig   `toml:"session"`
	Redis     RedisConfig     `toml:"redis"`
	RateLimit RateLimitConfig `toml:"ratelimit"`
	Calendar  CalendarConfig  `toml:"calendar"`
}

// ServerConfig timeouts are in seconds
type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`
	WriteTimeout    int `toml:"write_timeout"`
	IdleTimeout     int `toml:"idle_timeout"`
	ShutdownTimeout int `toml:"shutdown_timeout"`
}

type LogsConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

type DatabaseConfig struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"`
}

// DSN builds a lib/pq connection string
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

// OpsAPIConfig points at the remote operations API; Timeout is in seconds
type OpsAPIConfig struct {
	URL     string `toml:"url"`
	Timeout int    `toml:"timeout"`
}

type SessionConfig struct {
	Backend      string `toml:"backend"`
	TTLMinutes   int    `toml:"ttl_minutes"`
	CookieName   string `toml:"cookie_name"`
	CookieSecure bool   `toml:"cookie_secure"`
	// SweepInterval in seconds between idle session and limiter cleanups
	SweepInterval int `toml:"sweep_interval"`
}

func (s SessionConfig) TTL() time.Duration {
	return time.Duration(s.TTLMinutes) * time.Minute
}

type RedisConfig struct {
	Addr      string `toml:"addr"`
	Password  string `toml:"password"`
	DB        int    `toml:"db"`
	KeyPrefix string `toml:"key_prefix"`
}

type RateLimitConfig struct {
	PerMinute float64 `toml:"per_minute"`
	Burst     int     `toml:"burst"`
}

type CalendarConfig struct {
	Timezone string `toml:"timezone"`
}

// Location resolves the calendar time zone
func (c CalendarConfig) Location() (*time.Location, error) {
	return time.LoadLocation(c.Timezone)
}

// Load reads the TOML file, applies PORTAL_* environment overrides (a .env file next
// to the process is loaded first when present) and validates the result.
func Load(path string) (*Config, error) {
	cfg := Default()

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", path, err)
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}
	if err := cfg.applyEnv(os.LookupEnv); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Default returns the configuration used for keys missing from the file
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPPort:        8080,
			ReadTimeout:     10,
			WriteTimeout:    15,
			IdleTimeout:     60,
			ShutdownTimeout: 10,
		},
		Logs: LogsConfig{Level: "info"},
		Metrics: MetricsConfig{
			Enabled:     true,
			Path:        "/metrics",
			ServiceName: "booking-portal",
		},
		Database: DatabaseConfig{
			Host:            "localhost",
			Port:            5432,
			SSLMode:         "disable",
			MaxOpenConns:    10,
			MaxIdleConns:    5,
			ConnMaxLifetime: 300,
		},
		OpsAPI: OpsAPIConfig{Timeout: 10},
		Session: SessionConfig{
			Backend:       SessionBackendMemory,
			TTLMinutes:    120,
			CookieName:    "portal_session",
			SweepInterval: 60,
		},
		Redis:     RedisConfig{Addr: "localhost:6379", KeyPrefix: "portal:draft:"},
		RateLimit: RateLimitConfig{PerMinute: 20, Burst: 5},
		Calendar:  CalendarConfig{Timezone: "Europe/London"},
	}
}

func (c *Config) Validate() error {
	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		return fmt.Errorf("%w: server.http_port out of range", ErrInvalidConfig)
	}
	if strings.TrimSpace(c.OpsAPI.URL) == "" {
		return fmt.Errorf("%w: opsapi.url is required", ErrInvalidConfig)
	}
	if c.OpsAPI.Timeout <= 0 {
		return fmt.Errorf("%w: opsapi.timeout must be positive", ErrInvalidConfig)
	}
	switch c.Session.Backend {
	case SessionBackendMemory:
	case SessionBackendRedis:
		if c.Redis.Addr == "" {
			return fmt.Errorf("%w: redis.addr is required for the redis session backend", ErrInvalidConfig)
		}
	default:
		return fmt.Errorf("%w: unknown session.backend %q", ErrInvalidConfig, c.Session.Backend)
	}
	if c.Session.TTLMinutes <= 0 {
		return fmt.Errorf("%w: session.ttl_minutes must be positive", ErrInvalidConfig)
	}
	if c.Session.CookieName == "" {
		return fmt.Errorf("%w: session.cookie_name is required", ErrInvalidConfig)
	}
	if c.Session.SweepInterval <= 0 {
		return fmt.Errorf("%w: session.sweep_interval must be positive", ErrInvalidConfig)
	}
	if c.RateLimit.PerMinute <= 0 || c.RateLimit.Burst <= 0 {
		return fmt.Errorf("%w: ratelimit values must be positive", ErrInvalidConfig)
	}
	if _, err := c.Calendar.Location(); err != nil {
		return fmt.Errorf("%w: calendar.timezone: %v", ErrInvalidConfig, err)
	}
	return nil
}

type lookupFunc func(key string) (string, bool)

// applyEnv overrides the settings that differ between deployments
func (c *Config) applyEnv(lookup lookupFunc) error {
	strs := map[string]*string{
		"LOG_LEVEL":       &c.Logs.Level,
		"LOG_FILE":        &c.Logs.File,
		"DB_HOST":         &c.Database.Host,
		"DB_USER":         &c.Database.User,
		"DB_PASSWORD":     &c.Database.Password,
		"DB_NAME":         &c.Database.DBName,
		"DB_SSLMODE":      &c.Database.SSLMode,
		"OPSAPI_URL":      &c.OpsAPI.URL,
		"SESSION_BACKEND": &c.Session.Backend,
		"REDIS_ADDR":      &c.Redis.Addr,
		"REDIS_PASSWORD":  &c.Redis.Password,
		"TIMEZONE":        &c.Calendar.Timezone,
	}
	for key, dst := range strs {
		if v, ok := lookup(envPrefix + key); ok {
			*dst = v
		}
	}

	ints := map[string]*int{
		"HTTP_PORT":      &c.Server.HTTPPort,
		"DB_PORT":        &c.Database.Port,
		"OPSAPI_TIMEOUT": &c.OpsAPI.Timeout,
		"REDIS_DB":       &c.Redis.DB,
	}
	for key, dst := range ints {
		if v, ok := lookup(envPrefix + key); ok {
			n, err := strconv.Atoi(v)
			if err != nil {
				return fmt.Errorf("%w: %s%s: %v", ErrInvalidConfig, envPrefix, key, err)
			}
			*dst = n
		}
	}

	bools := map[string]*bool{
		"METRICS_ENABLED": &c.Metrics.Enabled,
		"COOKIE_SECURE":   &c.Session.CookieSecure,
	}
	for key, dst := range bools {
		if v, ok := lookup(envPrefix + key); ok {
			b, err := strconv.ParseBool(v)
			if err != nil {
				return fmt.Errorf("%w: %s%s: %v", ErrInvalidConfig, envPrefix, key, err)
			}
			*dst = b
		}
	}
	return nil
}
