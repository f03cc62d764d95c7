package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("STORE", StoreMemory)
	t.Setenv("SEED_DEMO", "false")
	t.Setenv("DISPLAY_TIMEZONE", "Europe/Zagreb")
	t.Setenv("LOG_FORMAT", "text")

	cfg := Load()
	assert.Equal(t, "9090", cfg.ServerPort)
	assert.Equal(t, StoreMemory, cfg.Store)
	assert.False(t, cfg.SeedDemo)
	assert.Equal(t, "text", cfg.LogFormat)
	require.NoError(t, cfg.Validate())

	loc, err := cfg.Location()
	require.NoError(t, err)
	assert.Equal(t, "Europe/Zagreb", loc.String())
}

func TestGetEnvBoolFallback(t *testing.T) {
	t.Setenv("SEED_DEMO", "not-a-bool")
	assert.True(t, getEnvBool("SEED_DEMO", true))

	t.Setenv("SEED_DEMO", "0")
	assert.False(t, getEnvBool("SEED_DEMO", true))
}

func TestDSN(t *testing.T) {
	cfg := &Config{DBUser: "u", DBPassword: "p", DBHost: "db", DBPort: "5433", DBName: "n"}
	assert.Equal(t, "postgres://u:p@db:5433/n?sslmode=disable", cfg.DSN())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"ok", Config{Store: StorePostgres, JWTSecret: "s", DisplayTimezone: "UTC"}, false},
		{"bad store", Config{Store: "redis", JWTSecret: "s", DisplayTimezone: "UTC"}, true},
		{"no secret", Config{Store: StoreMemory, DisplayTimezone: "UTC"}, true},
		{"bad zone", Config{Store: StoreMemory, JWTSecret: "s", DisplayTimezone: "Mars/Olympus"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
