package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("GODBTEST_")
	require.NoError(t, err)
	assert.Equal(t, Defaults(), cfg)
	assert.Equal(t, language.Und, cfg.Language())
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("GODBTEST_FORMAT", "json")
	t.Setenv("GODBTEST_LOG_LEVEL", "debug")
	t.Setenv("GODBTEST_LOG_PRETTY", "true")
	t.Setenv("GODBTEST_COLLATION", "de")

	cfg, err := Load("GODBTEST_")
	require.NoError(t, err)
	assert.Equal(t, "json", cfg.Format)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.True(t, cfg.LogPretty)
	assert.Equal(t, language.German, cfg.Language())
}

func TestLoadRejectsBadFormat(t *testing.T) {
	t.Setenv("GODBTEST_FORMAT", "xml")

	_, err := Load("GODBTEST_")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid config")
}

func TestValidateCollation(t *testing.T) {
	cfg := Defaults()
	cfg.Collation = "!!"
	assert.Error(t, cfg.Validate())

	cfg.Collation = "sv"
	assert.NoError(t, cfg.Validate())
}
