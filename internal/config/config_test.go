package config

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{
		"DATABASE_PATH", "DB_MAX_OPEN_CONNS", "HTTP_ADDR", "HTTP_READ_TIMEOUT",
		"REGISTRATION_BONUS", "LOG_DEVELOPMENT", "CORS_ALLOWED_ORIGIN",
	} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "lumina.db", cfg.Database.Path)
	assert.Equal(t, 25, cfg.Database.MaxOpenConns)
	assert.Equal(t, ":8080", cfg.Http.Addr)
	assert.Equal(t, 10*time.Second, cfg.Http.ReadTimeout)
	assert.Equal(t, "*", cfg.Http.AllowedOrigin)
	assert.True(t, cfg.Bonus.RegistrationAmount.Equal(decimal.NewFromInt(100)))
	assert.False(t, cfg.Log.Development)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("DATABASE_PATH", "/tmp/ledger.db")
	t.Setenv("HTTP_ADDR", "127.0.0.1:9000")
	t.Setenv("HTTP_SHUTDOWN_TIMEOUT", "5s")
	t.Setenv("REGISTRATION_BONUS", "250.5")
	t.Setenv("LOG_DEVELOPMENT", "true")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "/tmp/ledger.db", cfg.Database.Path)
	assert.Equal(t, "127.0.0.1:9000", cfg.Http.Addr)
	assert.Equal(t, 5*time.Second, cfg.Http.ShutdownTimeout)
	assert.True(t, cfg.Bonus.RegistrationAmount.Equal(decimal.RequireFromString("250.5")))
	assert.True(t, cfg.Log.Development)
}

func TestLoad_InvalidValues(t *testing.T) {
	cases := map[string][2]string{
		"bad duration":      {"DB_PING_TIMEOUT", "soon"},
		"bad decimal":       {"REGISTRATION_BONUS", "lots"},
		"negative bonus":    {"REGISTRATION_BONUS", "-5"},
		"bad http duration": {"HTTP_WRITE_TIMEOUT", "10"},
	}
	for name, kv := range cases {
		t.Run(name, func(t *testing.T) {
			t.Setenv(kv[0], kv[1])
			_, err := Load()
			assert.Error(t, err)
		})
	}
}
