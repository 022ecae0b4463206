package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearEnv pins every variable LoadConfig reads so the host environment cannot leak in.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"STORE_DRIVER", "DATABASE_URL", "DB_POOL_SIZE", "RUN_MIGRATIONS", "JWT_SECRET",
		"BCRYPT_COST", "BOOTSTRAP_ADMIN_PASSWORD", "PORT", "CORS_ALLOWED_ORIGINS",
		"LOG_LEVEL", "LOG_FORMAT",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadConfig_Defaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("STORE_DRIVER", "postgres")
	t.Setenv("DATABASE_URL", "postgres://u:p@localhost:5432/portal?sslmode=disable")
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("DB_POOL_SIZE", "10")
	t.Setenv("RUN_MIGRATIONS", "true")
	t.Setenv("BCRYPT_COST", "10")
	t.Setenv("BOOTSTRAP_ADMIN_PASSWORD", "123")
	t.Setenv("PORT", "8080")
	t.Setenv("CORS_ALLOWED_ORIGINS", "*")
	t.Setenv("LOG_LEVEL", "info")
	t.Setenv("LOG_FORMAT", "json")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, StoreDriverPostgres, cfg.StoreDriver)
	assert.Equal(t, "s3cret", cfg.Auth.JWTSecret)
	assert.Equal(t, 10, cfg.Auth.BcryptCost)
	assert.Equal(t, "123", cfg.Auth.BootstrapAdminPassword)
	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, []string{"*"}, cfg.Server.CORSAllowedOrigins)
	assert.Equal(t, 10, cfg.Database.MaxSize)
	assert.True(t, cfg.Database.RunMigrations)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestLoadConfig_MissingSecretFails(t *testing.T) {
	clearEnv(t)
	t.Setenv("STORE_DRIVER", "memory")
	t.Setenv("DB_POOL_SIZE", "10")
	t.Setenv("RUN_MIGRATIONS", "false")
	t.Setenv("BCRYPT_COST", "10")
	t.Setenv("BOOTSTRAP_ADMIN_PASSWORD", "123")
	t.Setenv("LOG_LEVEL", "info")
	t.Setenv("LOG_FORMAT", "json")

	_, err := LoadConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JWT_SECRET")
}

func TestLoadConfig_CollectsAllErrors(t *testing.T) {
	clearEnv(t)
	t.Setenv("STORE_DRIVER", "postgres")
	t.Setenv("DB_POOL_SIZE", "abc")
	t.Setenv("RUN_MIGRATIONS", "maybe")
	t.Setenv("BCRYPT_COST", "2")
	t.Setenv("BOOTSTRAP_ADMIN_PASSWORD", "123")
	t.Setenv("LOG_LEVEL", "loud")
	t.Setenv("LOG_FORMAT", "xml")

	_, err := LoadConfig()
	require.Error(t, err)
	msg := err.Error()
	for _, want := range []string{"DATABASE_URL", "JWT_SECRET", "DB_POOL_SIZE", "RUN_MIGRATIONS", "BCRYPT_COST", "LOG_LEVEL", "LOG_FORMAT"} {
		assert.Contains(t, msg, want)
	}
}

func TestLoadConfig_MemoryDriverNeedsNoDatabase(t *testing.T) {
	clearEnv(t)
	t.Setenv("STORE_DRIVER", "memory")
	t.Setenv("JWT_SECRET", "k")
	t.Setenv("DB_POOL_SIZE", "500")
	t.Setenv("RUN_MIGRATIONS", "false")
	t.Setenv("BCRYPT_COST", "4")
	t.Setenv("BOOTSTRAP_ADMIN_PASSWORD", "changeme")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example ,")
	t.Setenv("LOG_LEVEL", "DEBUG")
	t.Setenv("LOG_FORMAT", "text")

	_, err := LoadConfig()
	require.Error(t, err, "pool size above 100 is reported")

	t.Setenv("DB_POOL_SIZE", "20")
	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, StoreDriverMemory, cfg.StoreDriver)
	assert.Empty(t, cfg.Database.URL)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.Server.CORSAllowedOrigins)
	assert.Equal(t, "debug", cfg.Log.Level)
}
