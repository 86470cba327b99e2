package logger

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestSetup_Levels(t *testing.T) {
	log, err := Setup("debug", "json", "")
	require.NoError(t, err)
	assert.True(t, log.Core().Enabled(zap.DebugLevel))

	log, err = Setup("WARN", "console", "")
	require.NoError(t, err)
	assert.False(t, log.Core().Enabled(zap.InfoLevel))
	assert.Same(t, log, zap.L())
}

func TestSetup_InvalidLevel(t *testing.T) {
	_, err := Setup("loud", "console", "")
	assert.Error(t, err)
}

func TestSetup_WithFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "dashboard.log")
	log, err := Setup("info", "console", file)
	require.NoError(t, err)
	log.Info("hello")
	assert.FileExists(t, file)
}
