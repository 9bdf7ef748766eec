package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlags_IgnoresUnknownFlags(t *testing.T) {
	var c Config
	c.LoadDefaults()

	err := parseFlags(&c, []string{"-c", "cfg.json", "-x", "1", "-v", "tasks", "-d=/tmp/r.db", "-k", "mine", "-l", "debug"})
	require.NoError(t, err)

	assert.Equal(t, "tasks", c.Variant)
	assert.Equal(t, "/tmp/r.db", c.DatabasePath)
	assert.Equal(t, "mine", c.SlotKey)
	assert.Equal(t, "debug", c.LogLevel)
	assert.Equal(t, 2*time.Second, c.GenerationDelay)
}
