package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedNow() time.Time {
	return time.Date(2024, time.March, 4, 10, 0, 0, 0, time.UTC)
}

func decodeLines(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()
	var entries []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		var e map[string]any
		require.NoError(t, json.Unmarshal([]byte(line), &e), line)
		entries = append(entries, e)
	}
	return entries
}

func TestLogger_WritesFlatEntries(t *testing.T) {
	var buf bytes.Buffer
	log := New(Options{Output: &buf, Level: LevelInfo, Now: fixedNow}).
		With(Component("logic"))

	log.Info("command executed", Command("grade"), PersonCount(3), Latency(1500*time.Microsecond))

	entries := decodeLines(t, &buf)
	require.Len(t, entries, 1)
	e := entries[0]
	assert.Equal(t, "2024-03-04T10:00:00Z", e["time"])
	assert.Equal(t, "info", e["level"])
	assert.Equal(t, "command executed", e["msg"])
	assert.Equal(t, "logic", e["component"])
	assert.Equal(t, "grade", e["command"])
	assert.Equal(t, float64(3), e["person_count"])
	assert.Equal(t, 1.5, e["latency_ms"])
}

func TestLogger_LevelFilter(t *testing.T) {
	var buf bytes.Buffer
	log := New(Options{Output: &buf, Level: LevelWarn})

	log.Debug("hidden")
	log.Info("hidden")
	log.Warn("shown")
	log.Errorf("also %s", "shown")

	entries := decodeLines(t, &buf)
	require.Len(t, entries, 2)
	assert.Equal(t, "warn", entries[0]["level"])
	assert.Equal(t, "also shown", entries[1]["msg"])
}

func TestLogger_ReservedKeysAreRenamed(t *testing.T) {
	var buf bytes.Buffer
	log := New(Options{Output: &buf, Level: LevelDebug})

	log.Debug("real", String("msg", "from a field"), Err(errors.New("boom")))

	e := decodeLines(t, &buf)[0]
	assert.Equal(t, "real", e["msg"])
	assert.Equal(t, "from a field", e["field_msg"])
	assert.Equal(t, "boom", e["error"])
}

func TestLogger_WithDoesNotLeakIntoParent(t *testing.T) {
	var buf bytes.Buffer
	parent := New(Options{Output: &buf, Level: LevelInfo})
	child := parent.With(StorageDriver("badger"))

	child.Info("child")
	parent.Info("parent")

	entries := decodeLines(t, &buf)
	require.Len(t, entries, 2)
	assert.Equal(t, "badger", entries[0]["storage_driver"])
	assert.NotContains(t, entries[1], "storage_driver")
}

func TestDiscard(t *testing.T) {
	log := Discard()
	assert.False(t, log.Enabled(LevelError))
	log.Error("nothing happens")
}

func TestParseLevel(t *testing.T) {
	tests := map[string]Level{
		"debug":   LevelDebug,
		" DEBUG ": LevelDebug,
		"warning": LevelWarn,
		"error":   LevelError,
		"info":    LevelInfo,
		"chatty":  LevelInfo,
		"off":     levelOff,
	}
	for in, want := range tests {
		assert.Equal(t, want, ParseLevel(in), in)
	}
}
