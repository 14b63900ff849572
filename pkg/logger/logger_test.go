package logger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_Levels(t *testing.T) {
	for _, level := range []string{"debug", "info", "warn", "error", ""} {
		log, err := New("", level)
		require.NoError(t, err, level)
		require.NoError(t, log.Close())
	}

	_, err := New("", "verbose")
	assert.Error(t, err)
}

func TestNew_WritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "portal.log")

	log, err := New(path, "info")
	require.NoError(t, err)

	log.Info("booking flow started for session=%s", "abc")
	log.Debug("not written at info level")
	require.NoError(t, log.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "booking flow started for session=abc")
	assert.NotContains(t, string(data), "not written")
}
