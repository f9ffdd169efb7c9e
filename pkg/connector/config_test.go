package connector

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:5000", cfg.BaseURL)
	assert.Equal(t, 10*time.Second, cfg.FetchTimeout)
	assert.Equal(t, 60*time.Second, cfg.RequestTimeout)
	assert.Equal(t, "127.0.0.1:29327", cfg.Listen)
	assert.Equal(t, zerolog.InfoLevel, cfg.Level())
	assert.Equal(t, "Ada Lovelace", cfg.FormatDisplayname("Ada", "Lovelace"))
}

func TestLoadConfigOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
base_url: https://api.example.com
fetch_timeout: 0s
displayname_template: "{{.LastName}}, {{.FirstName}}"
log_level: debug
`), 0o600))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "https://api.example.com", cfg.BaseURL)
	assert.Zero(t, cfg.FetchTimeout)
	assert.Equal(t, 60*time.Second, cfg.RequestTimeout)
	assert.Equal(t, zerolog.DebugLevel, cfg.Level())
	assert.Equal(t, "Lovelace, Ada", cfg.FormatDisplayname("Ada", "Lovelace"))
}

func TestLoadConfigErrors(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`displayname_template: "{{.FirstName"`), 0o600))
	_, err = LoadConfig(path)
	assert.Error(t, err)
}

func TestFormatDisplaynameWithoutTemplate(t *testing.T) {
	cfg := &Config{}
	assert.Equal(t, "Ada", cfg.FormatDisplayname("Ada", ""))
}
