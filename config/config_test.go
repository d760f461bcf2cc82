package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testConfig = `
http:
  address: ":8080"
  jwt_secret: "from-yaml"
database:
  host: "localhost"
  port: 5432
  user: "aerovia"
  password: "from-yaml"
  name: "aerovia"
  ssl_mode: "disable"
redis:
  addr: "localhost:6379"
kafka:
  brokers: ["localhost:9092"]
  booking_events_topic: "booking_events"
booking:
  draft_ttl_minutes: 30
  pnr_commit_attempts: 5
`

func writeTestConfig(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(testConfig), 0o600))
	return path
}

func TestLoadConfig(t *testing.T) {
	t.Setenv("DB_PASSWORD", "")
	t.Setenv("JWT_SECRET", "")

	cfg, err := LoadConfig(writeTestConfig(t))

	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.HTTP.Address)
	assert.Equal(t, []string{"localhost:9092"}, cfg.Kafka.Brokers)
	assert.Equal(t, 30, cfg.Booking.DraftTTLMinutes)
	assert.Equal(t, 5, cfg.Booking.PNRCommitAttempts)
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	t.Setenv("DB_PASSWORD", "from-env")
	t.Setenv("JWT_SECRET", "also-from-env")

	cfg, err := LoadConfig(writeTestConfig(t))

	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.Database.Password)
	assert.Equal(t, "also-from-env", cfg.HTTP.JWTSecret)
}

func TestLoadConfig_MissingFile(t *testing.T) {
	_, err := LoadConfig("/nonexistent/config.yaml")
	assert.Error(t, err)
}

func TestDatabaseConfig_DSN(t *testing.T) {
	t.Setenv("DB_PASSWORD", "")

	cfg, err := LoadConfig(writeTestConfig(t))
	require.NoError(t, err)

	assert.Equal(t, "host=localhost port=5432 user=aerovia password=from-yaml dbname=aerovia sslmode=disable", cfg.Database.DSN())
}
