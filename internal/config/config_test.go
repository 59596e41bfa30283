package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	for _, key := range []string{"DB_DRIVER", "DATABASE_URL", "MIGRATIONS_PATH", "SERVER_PORT", "BYE_AUTO_ADVANCE", "SHUTDOWN_TIMEOUT"} {
		t.Setenv(key, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "sqlite3", cfg.DBDriver)
	assert.NotEmpty(t, cfg.DatabaseURL)
	assert.Equal(t, "file://migrations", cfg.MigrationsPath)
	assert.Equal(t, ":8080", cfg.Addr())
	assert.True(t, cfg.ByeAutoAdvance)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
}

func TestLoad_Overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("DB_DRIVER", "postgres")
	t.Setenv("DATABASE_URL", "postgres://localhost/brackets?sslmode=disable")
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("BYE_AUTO_ADVANCE", "false")
	t.Setenv("SHUTDOWN_TIMEOUT", "3s")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "postgres", cfg.DBDriver)
	assert.Equal(t, 9090, cfg.ServerPort)
	assert.False(t, cfg.ByeAutoAdvance)
	assert.Equal(t, 3*time.Second, cfg.ShutdownTimeout)
}

func TestLoad_Invalid(t *testing.T) {
	testCases := []struct {
		name string
		key  string
		val  string
	}{
		{"Unknown driver", "DB_DRIVER", "mysql"},
		{"Port is not a number", "SERVER_PORT", "http"},
		{"Port out of range", "SERVER_PORT", "70000"},
		{"Bad bye flag", "BYE_AUTO_ADVANCE", "sometimes"},
		{"Bad timeout", "SHUTDOWN_TIMEOUT", "soon"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(tc.key, tc.val)

			_, err := Load()
			assert.Error(t, err)
		})
	}

	t.Run("Postgres needs a URL", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("DB_DRIVER", "postgres")

		_, err := Load()
		assert.Error(t, err)
	})
}
