package logger

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggerRespectsMinLevel(t *testing.T) {
	var buf bytes.Buffer
	l := New(Options{Terminal: &buf, MinLevel: WARN, NoColor: true})

	l.Info("API", "should be dropped")
	l.Warn("API", "should be kept")

	out := buf.String()
	assert.NotContains(t, out, "should be dropped")
	assert.Contains(t, out, "should be kept")
	assert.Contains(t, out, "[API       ]")
}

func TestLoggerWritesJSONFile(t *testing.T) {
	dir := t.TempDir()
	var buf bytes.Buffer
	l := New(Options{Dir: dir, Service: "test", Terminal: &buf, NoColor: true})
	l.LogBookmark("client-1", "evt-001", true)
	l.Close()

	files, err := filepath.Glob(filepath.Join(dir, "test-*.log"))
	require.NoError(t, err)
	require.Len(t, files, 1)

	raw, err := os.ReadFile(files[0])
	require.NoError(t, err)

	var found bool
	for _, line := range strings.Split(strings.TrimSpace(string(raw)), "\n") {
		var entry LogEntry
		require.NoError(t, json.Unmarshal([]byte(line), &entry))
		if entry.Category == "BOOKMARK" {
			found = true
			assert.Equal(t, "INFO", entry.Level)
			assert.Equal(t, "[client-1] added evt-001", entry.Message)
		}
	}
	assert.True(t, found, "bookmark entry should be in the log file")
}

func TestLogEnvFile(t *testing.T) {
	var buf bytes.Buffer
	l := New(Options{Terminal: &buf, NoColor: true})

	l.LogEnvFile(os.ErrNotExist)
	l.LogEnvFile(nil)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "WARN")
	assert.Contains(t, lines[0], "file does not exist")
	assert.Contains(t, lines[1], "Loaded environment variables from .env file")
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, DEBUG, ParseLevel("debug"))
	assert.Equal(t, WARN, ParseLevel("warning"))
	assert.Equal(t, ERROR, ParseLevel(" ERROR "))
	assert.Equal(t, INFO, ParseLevel("nonsense"))
}
