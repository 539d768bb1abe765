package config_test

import (
	"os"
	"testing"
	"time"

	"github.com/swiftbus/api/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfigDefaults(t *testing.T) {
	os.Clearenv()

	cfg, err := config.NewConfig()
	require.NoError(t, err)

	assert.Equal(t, ":5000", cfg.Server.Address)
	assert.Equal(t, 15*time.Second, cfg.Server.WriteTimeout)
	assert.Equal(t, 15*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, 30*time.Second, cfg.Server.IdleTimeout)

	assert.Equal(t, "localhost", cfg.Database.Host)
	assert.Equal(t, "5432", cfg.Database.Port)
	assert.Equal(t, "swiftbus", cfg.Database.Name)
	assert.Equal(t, 99, cfg.Database.MaxPoolConns)

	assert.Equal(t, 24*time.Hour, cfg.Auth.TokenTTL)
	assert.NotEmpty(t, cfg.Auth.JWTSecret)

	assert.Equal(t, "http://localhost:5000", cfg.Client.BaseURL)
	assert.Empty(t, cfg.Client.TokenPath)
}

func TestNewConfigFromEnv(t *testing.T) {
	os.Clearenv()
	t.Setenv("SERVER_ADDRESS", ":8080")
	t.Setenv("SERVER_WRITE_TIMEOUT", "30s")
	t.Setenv("POSTGRES_HOST", "db.internal")
	t.Setenv("POSTGRES_DB", "swiftbus_test")
	t.Setenv("MAX_CONNS", "10")
	t.Setenv("JWT_SECRET", "env-secret")
	t.Setenv("TOKEN_TTL", "1h")
	t.Setenv("API_URL", "https://api.swiftbus.dev")
	t.Setenv("TOKEN_PATH", "/tmp/token")

	cfg, err := config.NewConfig()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Server.Address)
	assert.Equal(t, 30*time.Second, cfg.Server.WriteTimeout)
	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.Equal(t, "swiftbus_test", cfg.Database.Name)
	assert.Equal(t, 10, cfg.Database.MaxPoolConns)
	assert.Equal(t, "env-secret", cfg.Auth.JWTSecret)
	assert.Equal(t, time.Hour, cfg.Auth.TokenTTL)
	assert.Equal(t, "https://api.swiftbus.dev", cfg.Client.BaseURL)
	assert.Equal(t, "/tmp/token", cfg.Client.TokenPath)
}

func TestNewConfigInvalidValues(t *testing.T) {
	t.Run("bad duration", func(t *testing.T) {
		os.Clearenv()
		t.Setenv("SERVER_WRITE_TIMEOUT", "not-a-duration")

		_, err := config.NewConfig()
		assert.Error(t, err)
	})

	t.Run("bad max conns", func(t *testing.T) {
		os.Clearenv()
		t.Setenv("MAX_CONNS", "lots")

		_, err := config.NewConfig()
		assert.Error(t, err)
	})
}

func TestDSN(t *testing.T) {
	dc := config.DatabaseConfig{
		Host:         "localhost",
		Port:         "5432",
		Name:         "swiftbus",
		User:         "postgres",
		Password:     "secret",
		MaxPoolConns: 5,
	}
	assert.Equal(t,
		"host=localhost port=5432 dbname=swiftbus user=postgres password=secret pool_max_conns=5",
		dc.DSN())
}
