package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"go-nexushr/internal/shared/config"

	"github.com/stretchr/testify/assert"
)

func setBaseEnv(t *testing.T) {
	t.Helper()
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("DB_USER", "postgres")
	t.Setenv("DB_NAME", "nexushr")
	t.Setenv("JWT_SECRET", "secret")
}

func TestLoad_EnvOnly(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("CORS_ORIGINS", "http://a.test, http://b.test")

	cfg, err := config.Load("")

	assert.NoError(t, err)
	assert.Equal(t, "3000", cfg.App.Port)
	assert.Equal(t, "5432", cfg.Database.Port)
	assert.Equal(t, "disable", cfg.Database.SSLMode)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.App.AllowedOrigins)
	assert.True(t, cfg.App.EnforceCatalog)
	assert.Equal(t, 3*time.Second, cfg.Kafka.PollInterval)
	assert.Equal(t, time.Hour, cfg.Auth.AccessTTL)
	assert.False(t, cfg.IsProduction())
}

func TestLoad_YAMLWithEnvOverride(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("PORT", "8081")

	dir := t.TempDir()
	path := filepath.Join(dir, "local.yaml")
	content := `
app:
  port: "9000"
  env: production
  enforce_catalog: false
database:
  host: ignored-by-env
kafka:
  poll_interval: 500ms
auth:
  access_ttl: 15m
`
	assert.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := config.Load(path)

	assert.NoError(t, err)
	assert.Equal(t, "8081", cfg.App.Port)
	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.True(t, cfg.IsProduction())
	assert.False(t, cfg.App.EnforceCatalog)
	assert.Equal(t, 500*time.Millisecond, cfg.Kafka.PollInterval)
	assert.Equal(t, 15*time.Minute, cfg.Auth.AccessTTL)
}

func TestLoad_MissingFileIsIgnored(t *testing.T) {
	setBaseEnv(t)
	_, err := config.Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.NoError(t, err)
}

func TestLoad_Validation(t *testing.T) {
	t.Setenv("DB_HOST", "db")
	t.Setenv("DB_USER", "u")
	t.Setenv("DB_NAME", "n")
	t.Setenv("JWT_SECRET", "")

	_, err := config.Load("")
	assert.ErrorContains(t, err, "JWT_SECRET")

	t.Setenv("JWT_SECRET", "s")
	t.Setenv("ACCESS_TOKEN_TTL", "soon")
	_, err = config.Load("")
	assert.ErrorContains(t, err, "access_ttl")
}

func TestDatabaseConfig_URL(t *testing.T) {
	d := config.DatabaseConfig{Host: "h", Port: "5432", User: "u", Password: "p", Name: "n", SSLMode: "disable"}
	assert.Equal(t, "postgres://u:p@h:5432/n?sslmode=disable", d.URL())
	assert.Equal(t, "host=h user=u password=p dbname=n port=5432 sslmode=disable", d.DSN())
}

func TestLoadDatabase_NoAuthRequired(t *testing.T) {
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("DB_USER", "postgres")
	t.Setenv("DB_PASSWORD", "pw")
	t.Setenv("DB_NAME", "nexushr")
	t.Setenv("JWT_SECRET", "")

	db, err := config.LoadDatabase("")

	assert.NoError(t, err)
	assert.Equal(t, "postgres://postgres:pw@db.internal:5432/nexushr?sslmode=disable", db.URL())
}
