package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMustInitReadsFileAndEnv(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
storage:
  driver: sqlite
graphql:
  max_page_size: 25
jobs:
  heartbeat:
    interval: 1m
`), 0o600))

	t.Setenv("CRM_JOBS_ENDPOINT", "http://crm:8000/graphql")

	MustInit(path)

	assert.Equal(t, "sqlite", viper.GetString("storage.driver"))
	assert.Equal(t, 25, viper.GetInt("graphql.max_page_size"))
	assert.Equal(t, time.Minute, viper.GetDuration("jobs.heartbeat.interval"))
	assert.Equal(t, "http://crm:8000/graphql", viper.GetString("jobs.endpoint"))
	assert.Equal(t, "/tmp/order_reminders_log.txt", viper.GetString("jobs.order_reminders.log_path"))
	assert.Equal(t, 7, viper.GetInt("jobs.order_reminders.lookback_days"))
}

func TestMustInitPanicsOnMissingExplicitFile(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	assert.Panics(t, func() {
		MustInit(filepath.Join(t.TempDir(), "missing.yaml"))
	})
}
