package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestDefaultValidates(t *testing.T) {
	require.NoError(t, Default().Validate())
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cryokit.json")
	blob := `{"out_dir": "/tmp/out", "workers": 8, "timeout": "30s", "cache_ttl": 3600000000000,
		"s3": {"bucket": "croissant", "endpoint": "http://localhost:9000", "use_path_style": true}}`
	require.NoError(t, os.WriteFile(path, []byte(blob), 0644))
	c, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "/tmp/out", c.OutDir)
	require.Equal(t, 8, c.Workers)
	require.Equal(t, 30*time.Second, c.Timeout.Duration)
	require.Equal(t, time.Hour, c.CacheTTL.Duration)
	require.Equal(t, "croissant", c.S3.Bucket)
	require.True(t, c.S3.UsePathStyle)
	// Not in file, keeps default.
	require.Equal(t, DefaultDataURL, c.DataURL)
	require.NoError(t, c.Validate())
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.json"))
	require.Error(t, err)

	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"timeout": true}`), 0644))
	_, err = Load(path)
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	var cases = []struct {
		about  string
		modify func(c *Config)
	}{
		{"negative workers", func(c *Config) { c.Workers = -1 }},
		{"too many workers", func(c *Config) { c.Workers = 65 }},
		{"bad data url", func(c *Config) { c.DataURL = "not a url" }},
		{"no out dir", func(c *Config) { c.OutDir = "" }},
		{"bad level", func(c *Config) { c.LogLevel = "loud" }},
		{"bad s3 endpoint", func(c *Config) { c.S3.Endpoint = "::" }},
		{"negative timeout", func(c *Config) { c.Timeout.Duration = -time.Second }},
	}
	for _, c := range cases {
		cfg := Default()
		c.modify(cfg)
		if err := cfg.Validate(); err == nil {
			t.Errorf("[%s] expected error", c.about)
		}
	}
}

func TestValidateWorkersPerCPU(t *testing.T) {
	c := Default()
	c.Workers = 0
	require.NoError(t, c.Validate())
}
