package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"table-sales/internal/config"
)

func write(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadFull(t *testing.T) {
	path := write(t, `
# comment
database:
  host: db.local
  port: 5432
  user: pos
  password: "secret"
  database: table_sales

rabbitmq:
  host: mq.local
  port: 5672
  user: guest
  password: guest

store:
  id: 2
  operator: "Ana"
`)
	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.True(t, cfg.BackendConfigured())
	assert.True(t, cfg.BrokerConfigured())
	assert.Equal(t, "db.local", cfg.Database.Host)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, "secret", cfg.Database.Pass)
	assert.Equal(t, 2, cfg.Store.ID)
	assert.Equal(t, "Ana", cfg.Store.Operator)
}

func TestLoadDemoMode(t *testing.T) {
	path := write(t, `
store:
  id: 1
`)
	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.False(t, cfg.BackendConfigured())
	assert.False(t, cfg.BrokerConfigured())
}

func TestLoadRejectsBadStoreID(t *testing.T) {
	path := write(t, `
store:
  id: 7
`)
	_, err := config.Load(path)
	assert.Error(t, err)
}
