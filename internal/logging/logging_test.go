package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "tasklist.log")
	logger, closer, err := New(path, "info")
	require.NoError(t, err)

	logger.Debug("hidden")
	logger.Info("saved tasks", "count", 3)
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	out := string(data)
	assert.Contains(t, out, "saved tasks")
	assert.Contains(t, out, "count=3")
	assert.Contains(t, out, prefix)
	assert.NotContains(t, out, "hidden")
}

func TestNewRejectsBadLevel(t *testing.T) {
	_, _, err := New("", "loud")
	assert.Error(t, err)
}

func TestNewWithWriterLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithWriter(&buf, log.WarnLevel)
	logger.Info("skip")
	logger.Error("save failed", "err", "disk full")

	assert.NotContains(t, buf.String(), "skip")
	assert.Contains(t, buf.String(), "save failed")
}
