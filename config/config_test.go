package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("SERVER_PORT", "8081")
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("CORS_ORIGINS", "http://localhost:3000, https://eazyvenue.app")
	t.Setenv("JWT_TTL", "2h")
	t.Setenv("CONFIG_PATH", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8081", cfg.Server.Port)
	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.Equal(t, []string{"http://localhost:3000", "https://eazyvenue.app"}, cfg.Server.AllowedOrigins)
	assert.Equal(t, 2*time.Hour, cfg.Auth.TokenTTL)
	assert.Equal(t, 30, cfg.Booking.HorizonDays)
	assert.Equal(t, "venues", cfg.RabbitMQ.Exchange)
	assert.Contains(t, cfg.DSN(), "host=db.internal")
}

func TestLoad_YAMLOverlayExpandsEnv(t *testing.T) {
	t.Setenv("JWT_SECRET", "from-env")
	t.Setenv("TEST_REDIS_HOST", "cache:6379")

	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
database:
  driver: sqlite
  path: /tmp/venues.db
redis:
  address: ${TEST_REDIS_HOST}
  ttl: 30s
booking:
  horizon_days: 60
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	t.Setenv("CONFIG_PATH", path)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, "/tmp/venues.db", cfg.Database.Path)
	assert.Equal(t, "cache:6379", cfg.Redis.Address)
	assert.Equal(t, 30*time.Second, cfg.Redis.TTL)
	assert.Equal(t, 60, cfg.Booking.HorizonDays)
	assert.Equal(t, "from-env", cfg.Auth.JWTSecret)
}

func TestLoad_MissingFile(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("CONFIG_PATH", filepath.Join(t.TempDir(), "missing.yaml"))

	_, err := Load()
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	cfg := fromEnv()
	cfg.Auth.JWTSecret = ""
	cfg.Database.Driver = "mysql"
	cfg.applyDefaults()

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JWT_SECRET is required")
	assert.Contains(t, err.Error(), `unsupported database driver "mysql"`)
}

func TestValidate_HorizonTooLong(t *testing.T) {
	cfg := fromEnv()
	cfg.Auth.JWTSecret = "secret"
	cfg.Booking.HorizonDays = 400

	assert.Error(t, cfg.Validate())
}
