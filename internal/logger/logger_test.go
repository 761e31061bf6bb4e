package logger

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, DEBUG, ParseLevel("debug"))
	assert.Equal(t, WARN, ParseLevel("WARNING"))
	assert.Equal(t, ERROR, ParseLevel(" ERROR "))
	assert.Equal(t, INFO, ParseLevel("bogus"))
}

func TestLoggerLevelsAndFields(t *testing.T) {
	var buf bytes.Buffer
	l, err := New(Config{Level: INFO, Output: &buf})
	require.NoError(t, err)

	l.Debug("hidden")
	l.WithFields(F("request_id", "abc")).Info("login ok", F("email", "ana@example.com"))

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "INFO")
	assert.Contains(t, out, "login ok | request_id=abc email=ana@example.com")
}

func TestLoggerRedactsSecrets(t *testing.T) {
	var buf bytes.Buffer
	l, err := New(Config{Level: DEBUG, Output: &buf})
	require.NoError(t, err)

	l.Info("auth", F("token", "eyJhbGciOi"), F("senha", "hunter2"), F("Authorization", "Bearer x"))

	out := buf.String()
	assert.NotContains(t, out, "eyJhbGciOi")
	assert.NotContains(t, out, "hunter2")
	assert.Equal(t, 3, strings.Count(out, "[redacted]"))
}

func TestLoggerRotatesBySize(t *testing.T) {
	path := filepath.Join(t.TempDir(), "medshare.log")
	l, err := New(Config{Level: DEBUG, FilePath: path, MaxSize: 64, MaxBackups: 2})
	require.NoError(t, err)
	defer l.Close()

	for i := 0; i < 5; i++ {
		l.Info("a line that is long enough to trigger rotation quickly")
	}

	_, err = os.Stat(path + ".1")
	assert.NoError(t, err)
}

func TestDiscard(t *testing.T) {
	assert.NotPanics(t, func() {
		Discard().Error("nothing")
		Discard().WithFields(F("k", "v")).Info("nothing")
	})
}
