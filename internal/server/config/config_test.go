package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	c := &Config{}
	c.LoadDefaults()

	assert.Equal(t, ":8000", c.EndpointAddr)
	assert.Equal(t, "urlsafe", c.TokenFormat)
	assert.True(t, c.SingleSession)
	assert.Equal(t, "sha256", c.PasswordScheme)
	assert.Equal(t, 15*time.Minute, c.PresignExpiry)
	assert.NotEmpty(t, c.DatabaseDSN)
}

func TestLoadConfig_FlagsOverrideDefaults(t *testing.T) {
	origArgs := os.Args
	defer func() { os.Args = origArgs }()

	os.Args = []string{"server", "-a", ":9999", "-f", "uuid", "-m=false", "-x", "5"}

	c := LoadConfig()
	assert.Equal(t, ":9999", c.EndpointAddr)
	assert.Equal(t, "uuid", c.TokenFormat)
	assert.False(t, c.SingleSession)
	assert.Equal(t, 5*time.Minute, c.PresignExpiry)
	// untouched fields keep defaults
	assert.Equal(t, "sha256", c.PasswordScheme)
}

func TestLoadConfig_UnknownFlagsIgnored(t *testing.T) {
	origArgs := os.Args
	defer func() { os.Args = origArgs }()

	os.Args = []string{"server", "-zzz", "whatever", "-a", ":7070"}

	c := LoadConfig()
	require.Equal(t, ":7070", c.EndpointAddr)
}
