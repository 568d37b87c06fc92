package config

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func TestCreateLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := CreateLogger(false, true, &buf)
	logger.Info("hidden")
	logger.Error("shown", nil)

	out := buf.String()
	assert.False(t, strings.Contains(out, "hidden"))
	assert.True(t, strings.Contains(out, "shown"))

	buf.Reset()
	logger = CreateLogger(true, true, &buf)
	logger.Debug("exec")
	assert.True(t, strings.Contains(buf.String(), "exec"))
}

func TestLogOutput(t *testing.T) {
	w, closeLog, err := LogOutput(false, "")
	assert.NoError(t, err)
	assert.True(t, w == nil)
	assert.NoError(t, closeLog())

	w, closeLog, err = LogOutput(true, "")
	assert.NoError(t, err)
	assert.True(t, w == io.Discard)
	assert.NoError(t, closeLog())
}

func TestLogOutputFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trace.log")

	w, closeLog, err := LogOutput(true, path)
	assert.NoError(t, err)

	logger := CreateLogger(true, false, w)
	logger.Debug("exec")
	assert.NoError(t, closeLog())

	data, err := os.ReadFile(path)
	assert.NoError(t, err)
	assert.True(t, strings.Contains(string(data), "exec"))
}

func TestLogOutputInvalidPath(t *testing.T) {
	_, _, err := LogOutput(true, filepath.Join(t.TempDir(), "missing", "trace.log"))
	assert.True(t, err != nil)
}
