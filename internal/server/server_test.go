package server

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/deppfellow/showtracker/internal/config"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupHTTPServer_AppliesTimeouts(t *testing.T) {
	s := &Server{Config: &config.Config{Server: config.ServerConfig{
		Port:         "9090",
		ReadTimeout:  5,
		WriteTimeout: 10,
		IdleTimeout:  60,
	}}}

	s.SetupHTTPServer(nil)

	require.NotNil(t, s.httpServer)
	assert.Equal(t, ":9090", s.httpServer.Addr)
	assert.Equal(t, 5*time.Second, s.httpServer.ReadTimeout)
	assert.Equal(t, 10*time.Second, s.httpServer.WriteTimeout)
	assert.Equal(t, time.Minute, s.httpServer.IdleTimeout)
}

func TestStart_RequiresSetup(t *testing.T) {
	logger := zerolog.Nop()
	s := &Server{Config: &config.Config{}, Logger: &logger}

	assert.EqualError(t, s.Start(), "HTTP server not initialized")
}

func TestShutdown_ClosesRedis(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	require.NoError(t, client.Ping(context.Background()).Err())

	s := &Server{Redis: client}
	require.NoError(t, s.Shutdown(context.Background()))

	assert.ErrorIs(t, client.Ping(context.Background()).Err(), redis.ErrClosed)
}

func TestNewMetricsRegistry(t *testing.T) {
	families, err := NewMetricsRegistry().Gather()
	require.NoError(t, err)
	assert.NotEmpty(t, families)
}
