package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const yamlProfiles = `
default: dev
environments:
  dev:
    baseUrl: http://localhost:8080
    headers:
      - "X-Env: dev"
    bodyFormat: json
    responseMode: object
    timeout: 10s
    trustLocalhost: true
    logging:
      enabled: true
      directory: devlogs
  prod:
    baseUrl: https://api.example.com
    auth:
      method: OAUTH
      token: abc123
`

func TestParse_YAML(t *testing.T) {
	profiles, err := Parse([]byte(yamlProfiles), "curly.yaml")
	require.NoError(t, err)

	assert.Equal(t, "dev", profiles.Default)
	assert.Len(t, profiles.Environments, 2)

	dev := profiles.Environments["dev"]
	assert.Equal(t, "http://localhost:8080", dev.BaseURL)
	assert.Equal(t, []string{"X-Env: dev"}, dev.Headers)
	assert.True(t, dev.TrustLocalhost)
	require.NotNil(t, dev.Logging)
	assert.Equal(t, "devlogs", dev.Logging.Directory)

	timeout, err := dev.ParseTimeout()
	require.NoError(t, err)
	assert.Equal(t, 10*time.Second, timeout)
}

func TestParse_JSON(t *testing.T) {
	data := []byte(`{
		"default": "main",
		"environments": {
			"main": {"baseUrl": "https://api.example.com"}
		}
	}`)

	profiles, err := Parse(data, "curly.json")
	require.NoError(t, err)
	assert.Equal(t, "https://api.example.com", profiles.Environments["main"].BaseURL)
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "curly.yaml")
	require.NoError(t, os.WriteFile(path, []byte(yamlProfiles), 0o644))

	profiles, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "dev", profiles.Default)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestEnvironment_Selection(t *testing.T) {
	profiles, err := Parse([]byte(yamlProfiles), "curly.yaml")
	require.NoError(t, err)

	env, err := profiles.Environment("")
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8080", env.BaseURL)

	env, err = profiles.Environment("prod")
	require.NoError(t, err)
	assert.Equal(t, "https://api.example.com", env.BaseURL)

	_, err = profiles.Environment("staging")
	assert.ErrorContains(t, err, "unknown environment")
}
