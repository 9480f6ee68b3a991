package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "simontok.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, `
port: 9090
database:
  type: sqlite
  dbname: data/test.db
jwt:
  secret_key: test-secret-key-of-at-least-32-chars!
  duration: 2h
`)

	cfg, cfgPath, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, path, cfgPath)
	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, "sqlite", cfg.Database.Type)
	assert.Equal(t, "data/test.db", cfg.Database.DBName)
	assert.Equal(t, 2*time.Hour, cfg.JWT.Duration)
}

func TestLoadConfigDefaults(t *testing.T) {
	path := writeConfig(t, `
database:
  type: sqlite
  dbname: ":memory:"
`)

	cfg, _, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 8370, cfg.Port)
	assert.Equal(t, "web/templates/*.tmpl", cfg.Web.TemplateGlob)
	assert.Equal(t, "memory", cfg.Session.Type)
	assert.Equal(t, 12*time.Hour, cfg.JWT.Duration)
	assert.Equal(t, "configs/i18n", cfg.I18n.Dir)
	assert.Equal(t, "id", cfg.I18n.DefaultLang)
	assert.Equal(t, "simontok", cfg.Metrics.Namespace)
}

func TestLoadConfigEnvExpansion(t *testing.T) {
	t.Setenv("SIMONTOK_DB_NAME", "from-env.db")

	path := writeConfig(t, `
database:
  type: ${SIMONTOK_DB_TYPE:sqlite}
  dbname: ${SIMONTOK_DB_NAME:fallback.db}
session:
  type: ${SIMONTOK_SESSION_TYPE:memory}
`)

	cfg, _, err := LoadConfig(path)
	require.NoError(t, err)
	// Set variables win, unset ones fall back to the default after the colon.
	assert.Equal(t, "from-env.db", cfg.Database.DBName)
	assert.Equal(t, "sqlite", cfg.Database.Type)
	assert.Equal(t, "memory", cfg.Session.Type)
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, _, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestLoadConfigMalformedYAML(t *testing.T) {
	path := writeConfig(t, "port: [not a number")

	_, _, err := LoadConfig(path)
	assert.Error(t, err)
}
