package services

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cmcshell/internal/context"
)

func TestConfigDefaults(t *testing.T) {
	setupServices(t)
	cfg, err := GetGlobalConfigService()
	require.NoError(t, err)

	value, ok := cfg.Get("ssl_verify")
	require.True(t, ok)
	assert.Equal(t, true, value)

	value, ok = cfg.Get("batch")
	require.True(t, ok)
	assert.Equal(t, false, value)

	_, ok = cfg.Get("nonexistent")
	assert.False(t, ok)
}

func TestConfigSetParsesValues(t *testing.T) {
	setupServices(t)
	cfg, err := GetGlobalConfigService()
	require.NoError(t, err)

	tests := []struct {
		raw  string
		want any
	}{
		{"on", true},
		{"off", false},
		{"true", true},
		{"42", 42},
		{"hello", "hello"},
	}
	for _, tt := range tests {
		require.NoError(t, cfg.Set("probe", tt.raw))
		value, ok := cfg.Get("probe")
		require.True(t, ok)
		assert.Equal(t, tt.want, value, "raw %q", tt.raw)
	}
}

func TestConfigSetAppliesFlagsToSession(t *testing.T) {
	setupServices(t)
	cfg, err := GetGlobalConfigService()
	require.NoError(t, err)

	flags := context.GetGlobalContext().Flags()
	assert.False(t, flags.Batch())

	require.NoError(t, cfg.Set("batch", "on"))
	assert.True(t, flags.Batch())

	require.NoError(t, cfg.Set("ssl_verify", "off"))
	assert.False(t, flags.SSLVerify())
}

func TestConfigSnapshotRestore(t *testing.T) {
	setupServices(t)
	cfg, err := GetGlobalConfigService()
	require.NoError(t, err)

	before := cfg.Snapshot()
	require.NoError(t, cfg.Set("batch", "on"))
	require.NoError(t, cfg.Set("editor", "vim"))

	require.NoError(t, cfg.Restore(before))
	value, _ := cfg.Get("batch")
	assert.Equal(t, false, value)
	_, ok := cfg.Get("editor")
	assert.False(t, ok, "extension key dropped by restore")
	assert.False(t, context.GetGlobalContext().Flags().Batch())
}

func TestConfigPersistFlags(t *testing.T) {
	setupServices(t)
	cfg, err := GetGlobalConfigService()
	require.NoError(t, err)

	context.GetGlobalContext().Flags().SetDryRun(true)
	require.NoError(t, cfg.PersistFlags())

	data, err := os.ReadFile(filepath.Join(ConfigDir(), "config.yaml"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "dry_run: true")
}
