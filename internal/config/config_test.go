package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad_FileAndDefaults(t *testing.T) {
	path := writeConfig(t, `
[server]
http_port = 9090

[opsapi]
url = "http://ops.local"

[session]
backend = "redis"

[redis]
addr = "redis:6379"
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.HTTPPort)
	assert.Equal(t, "http://ops.local", cfg.OpsAPI.URL)
	assert.Equal(t, 10, cfg.OpsAPI.Timeout)
	assert.Equal(t, SessionBackendRedis, cfg.Session.Backend)
	assert.Equal(t, "redis:6379", cfg.Redis.Addr)
	assert.Equal(t, "portal_session", cfg.Session.CookieName)
	assert.Equal(t, "Europe/London", cfg.Calendar.Timezone)

	loc, err := cfg.Calendar.Location()
	require.NoError(t, err)
	assert.Equal(t, "Europe/London", loc.String())
}

func TestLoad_EnvOverrides(t *testing.T) {
	path := writeConfig(t, `
[opsapi]
url = "http://ops.local"
`)
	t.Setenv("PORTAL_OPSAPI_URL", "http://ops.prod")
	t.Setenv("PORTAL_HTTP_PORT", "8181")
	t.Setenv("PORTAL_COOKIE_SECURE", "true")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "http://ops.prod", cfg.OpsAPI.URL)
	assert.Equal(t, 8181, cfg.Server.HTTPPort)
	assert.True(t, cfg.Session.CookieSecure)
}

func TestLoad_BadEnvValue(t *testing.T) {
	path := writeConfig(t, `
[opsapi]
url = "http://ops.local"
`)
	t.Setenv("PORTAL_HTTP_PORT", "eighty")

	_, err := Load(path)
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Config)
	}{
		{"missing opsapi url", func(c *Config) { c.OpsAPI.URL = "" }},
		{"unknown session backend", func(c *Config) { c.Session.Backend = "memcached" }},
		{"redis backend without addr", func(c *Config) { c.Session.Backend = SessionBackendRedis; c.Redis.Addr = "" }},
		{"zero ttl", func(c *Config) { c.Session.TTLMinutes = 0 }},
		{"zero rate", func(c *Config) { c.RateLimit.PerMinute = 0 }},
		{"unknown timezone", func(c *Config) { c.Calendar.Timezone = "Mars/Olympus" }},
		{"port out of range", func(c *Config) { c.Server.HTTPPort = 70000 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			cfg.OpsAPI.URL = "http://ops.local"
			tt.mutate(cfg)
			assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)
		})
	}
}

func TestDSN(t *testing.T) {
	d := DatabaseConfig{Host: "db", Port: 5432, User: "portal", Password: "secret", DBName: "portal", SSLMode: "disable"}
	assert.Equal(t, "host=db port=5432 user=portal password=secret dbname=portal sslmode=disable", d.DSN())
}
