package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseJson_LoadsFileNamedByFlag(t *testing.T) {
	origArgs := os.Args
	defer func() { os.Args = origArgs }()

	body := `{
		"endpoint_addr_http": ":9001",
		"database_dsn": "postgres://json:json@h:5432/db",
		"secret_key": "json-secret",
		"access_token_validity_duration": "15m",
		"allowed_origin": "https://json.example.com"
	}`
	path := filepath.Join(t.TempDir(), "server.json")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))

	os.Args = []string{"app", "-c", path}

	var c Config
	c.LoadDefaults()
	parseJson(&c)

	assert.Equal(t, ":9001", c.EndpointAddrHTTP)
	assert.Equal(t, "postgres://json:json@h:5432/db", c.DatabaseDSN)
	assert.Equal(t, "json-secret", c.SecretKey)
	assert.Equal(t, 15*time.Minute, c.AccessTokenValidityDuration)
	assert.Equal(t, "https://json.example.com", c.AllowedOrigin)
}

func TestParseJson_NoFlagLeavesConfigUntouched(t *testing.T) {
	origArgs := os.Args
	defer func() { os.Args = origArgs }()

	os.Args = []string{"app"}

	var c Config
	c.LoadDefaults()
	parseJson(&c)

	assert.Equal(t, ":8000", c.EndpointAddrHTTP)
	assert.Equal(t, "secretKey", c.SecretKey)
}

func TestParseJson_InvalidFilePanics(t *testing.T) {
	origArgs := os.Args
	defer func() { os.Args = origArgs }()

	path := filepath.Join(t.TempDir(), "broken.json")
	require.NoError(t, os.WriteFile(path, []byte("{"), 0o600))

	os.Args = []string{"app", "-c", path}

	var c Config
	c.LoadDefaults()
	assert.Panics(t, func() { parseJson(&c) })
}
