package logging

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, log.DebugLevel, ParseLevel("debug"))
	assert.Equal(t, log.WarnLevel, ParseLevel("warning"))
	assert.Equal(t, log.ErrorLevel, ParseLevel("error"))
	assert.Equal(t, log.InfoLevel, ParseLevel("bogus"))
}

func TestParseFormatter(t *testing.T) {
	assert.Equal(t, log.JSONFormatter, ParseFormatter("json"))
	assert.Equal(t, log.LogfmtFormatter, ParseFormatter("logfmt"))
	assert.Equal(t, log.TextFormatter, ParseFormatter(""))
}

func TestNewWritesSessionField(t *testing.T) {
	var buf bytes.Buffer
	logger, closeFn, err := New(Options{Level: "debug", Format: "json", Fallback: &buf})
	require.NoError(t, err)
	defer closeFn()

	logger.Debug("added", "id", 1)

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "added", rec["msg"])
	assert.Contains(t, rec["prefix"], "tada")
	_, err = uuid.Parse(rec["session"].(string))
	assert.NoError(t, err)
}

func TestNewRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	logger, _, err := New(Options{Level: "warn", Fallback: &buf})
	require.NoError(t, err)

	logger.Info("quiet")
	assert.Empty(t, buf.String())
	logger.Warn("loud")
	assert.Contains(t, buf.String(), "loud")
}

func TestNewAppendsToFile(t *testing.T) {
	p := filepath.Join(t.TempDir(), "logs", "tada.log")
	for i := 0; i < 2; i++ {
		logger, closeFn, err := New(Options{Level: "info", Format: "logfmt", File: p})
		require.NoError(t, err)
		logger.Info("started")
		require.NoError(t, closeFn())
	}
	b, err := os.ReadFile(p)
	require.NoError(t, err)
	assert.Equal(t, 2, strings.Count(string(b), "msg=started"))
}

func TestNewTimestamp(t *testing.T) {
	for _, on := range []bool{true, false} {
		var buf bytes.Buffer
		logger, _, err := New(Options{Format: "json", Fallback: &buf, Timestamp: on})
		require.NoError(t, err)
		logger.Info("tick")

		var rec map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
		_, ok := rec[log.TimestampKey]
		assert.Equal(t, on, ok, "timestamp=%v: %v", on, rec)
	}
}
