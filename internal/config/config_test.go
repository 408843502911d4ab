package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()

	vars := map[string]string{
		"PRIMARY.ENV":                 "test",
		"SERVER.PORT":                 "8080",
		"SERVER.READ_TIMEOUT":         "30",
		"SERVER.WRITE_TIMEOUT":        "30",
		"SERVER.IDLE_TIMEOUT":         "60",
		"SERVER.CORS_ALLOWED_ORIGINS": "http://localhost:3000,http://localhost:5173",
		"DATABASE.HOST":               "localhost",
		"DATABASE.PORT":               "5432",
		"DATABASE.USER":               "postgres",
		"DATABASE.PASSWORD":           "postgres",
		"DATABASE.NAME":               "showtracker",
		"DATABASE.SSL_MODE":           "disable",
		"DATABASE.MAX_OPEN_CONNS":     "25",
		"DATABASE.CONN_MAX_LIFETIME":  "300",
		"DATABASE.CONN_MAX_IDLE_TIME": "300",
		"REDIS.ADDRESS":               "localhost:6379",
	}
	for key, value := range vars {
		t.Setenv(EnvPrefix+key, value)
	}
}

func TestLoadConfig(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "test", cfg.Primary.Env)
	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, []string{"http://localhost:3000", "http://localhost:5173"}, cfg.Server.CORSAllowedOrigins)
	assert.Equal(t, float64(DefaultRateLimit), cfg.Server.RateLimit)
	assert.NotEmpty(t, cfg.Integration.EmailFrom)

	require.NotNil(t, cfg.Observability)
	assert.Equal(t, ServiceName, cfg.Observability.ServiceName)
	assert.Equal(t, "test", cfg.Observability.Environment)
	assert.Equal(t, "info", cfg.Observability.Logging.Level)
	assert.False(t, cfg.IsLocal())
}

func TestLoadConfig_MissingRequired(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv(EnvPrefix+"DATABASE.HOST", "")

	_, err := LoadConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "config validation failed")
}

func TestLoadConfig_ObservabilityOverride(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv(EnvPrefix+"OBSERVABILITY.SERVICE_NAME", "something-else")
	t.Setenv(EnvPrefix+"OBSERVABILITY.LOGGING.LEVEL", "debug")
	t.Setenv(EnvPrefix+"OBSERVABILITY.LOGGING.FORMAT", "console")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, ServiceName, cfg.Observability.ServiceName)
	assert.Equal(t, "debug", cfg.Observability.Logging.Level)
	assert.Equal(t, "console", cfg.Observability.Logging.Format)
}

func TestLoadConfig_InvalidLogLevel(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv(EnvPrefix+"OBSERVABILITY.LOGGING.LEVEL", "verbose")
	t.Setenv(EnvPrefix+"OBSERVABILITY.LOGGING.FORMAT", "json")

	_, err := LoadConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid logging level")
}

func TestObservabilityConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *ObservabilityConfig)
		wantErr bool
	}{
		{name: "defaults", mutate: func(c *ObservabilityConfig) {}},
		{name: "missing service name", mutate: func(c *ObservabilityConfig) { c.ServiceName = "" }, wantErr: true},
		{name: "bad level", mutate: func(c *ObservabilityConfig) { c.Logging.Level = "trace" }, wantErr: true},
		{name: "negative threshold", mutate: func(c *ObservabilityConfig) { c.Logging.SlowQueryThreshold = -time.Second }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := DefaultObservabilityConfig()
			tt.mutate(c)
			err := c.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestObservabilityConfig_HealthChecks(t *testing.T) {
	c := DefaultObservabilityConfig()
	assert.True(t, c.HealthCheckEnabled("database"))
	assert.True(t, c.HealthCheckEnabled("redis"))
	assert.False(t, c.HealthCheckEnabled("queue"))
	assert.Equal(t, 5*time.Second, c.HealthCheckTimeout())

	c.HealthChecks.Checks = nil
	c.HealthChecks.Timeout = 0
	assert.True(t, c.HealthCheckEnabled("queue"))
	assert.Equal(t, 5*time.Second, c.HealthCheckTimeout())
}

func TestObservabilityConfig_GetLogLevel(t *testing.T) {
	c := DefaultObservabilityConfig()
	c.Logging.Level = ""

	c.Environment = "production"
	assert.Equal(t, "info", c.GetLogLevel())

	c.Environment = "development"
	assert.Equal(t, "debug", c.GetLogLevel())

	c.Logging.Level = "warn"
	assert.Equal(t, "warn", c.GetLogLevel())
}
