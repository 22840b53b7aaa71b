package logging

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWritesJSON(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Options{Out: &buf})

	logger.Warn().Str("table", "users").Msg("column has no name")

	var event map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &event))
	assert.Equal(t, "warn", event["level"])
	assert.Equal(t, "users", event["table"])
	assert.Contains(t, event, "time")
}

func TestNewRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Options{Out: &buf, Level: "error"})

	logger.Warn().Msg("dropped")
	assert.Zero(t, buf.Len())

	logger.Error().Msg("kept")
	assert.NotZero(t, buf.Len())
}

func TestNewIgnoresBadLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Options{Out: &buf, Level: "loud"})

	logger.Debug().Msg("below info")
	assert.Zero(t, buf.Len())
	logger.Info().Msg("info")
	assert.NotZero(t, buf.Len())
}
