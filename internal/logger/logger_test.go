package logger

import (
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigureLevels(t *testing.T) {
	tests := []struct {
		level string
		want  log.Level
	}{
		{"debug", log.DebugLevel},
		{"info", log.InfoLevel},
		{"warn", log.WarnLevel},
		{"error", log.ErrorLevel},
		{"fatal", log.FatalLevel},
		{"bogus", log.InfoLevel},
		{"", log.InfoLevel},
	}
	for _, tt := range tests {
		t.Run("level_"+tt.level, func(t *testing.T) {
			require.NoError(t, Configure(tt.level, ""))
			assert.Equal(t, tt.want, Logger.GetLevel())
		})
	}
}

func TestNewStyledLoggerFollowsGlobalLevel(t *testing.T) {
	require.NoError(t, Configure("debug", ""))
	scoped := NewStyledLogger("router")
	assert.Equal(t, "router ", scoped.GetPrefix())
	assert.Equal(t, log.DebugLevel, scoped.GetLevel())
}
