package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reoring/ofxkit"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{"MODE", "LOG_LEVEL", "MAX_DEPTH", "FAIL_FAST", "DIALECT", "VERSION"} {
		t.Setenv(EnvPrefix+"_"+k, "")
		os.Unsetenv(EnvPrefix + "_" + k)
	}
}

func writeFile(t *testing.T, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "ofxkit.toml")
	require.NoError(t, os.WriteFile(p, []byte(body), 0o600))
	return p
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.Equal(t, ofxkit.Lenient, cfg.Options().Mode)
	assert.Equal(t, ofxkit.DefaultMaxDepth, cfg.Options().MaxDepth)
}

func TestLoad_FileThenEnv(t *testing.T) {
	clearEnv(t)
	p := writeFile(t, `
mode = "strict"
log_level = "debug"
max_depth = 32
dialect = "sgml"
version = "102"
`)
	cfg, err := Load(p)
	require.NoError(t, err)
	assert.Equal(t, "strict", cfg.Mode)
	assert.Equal(t, 32, cfg.MaxDepth)
	assert.Equal(t, "102", cfg.Version)

	t.Setenv("OFXKIT_MODE", "Lenient")
	t.Setenv("OFXKIT_DIALECT", "xml")
	t.Setenv("OFXKIT_VERSION", "220")
	t.Setenv("OFXKIT_FAIL_FAST", "true")
	cfg, err = Load(p)
	require.NoError(t, err)
	assert.Equal(t, "lenient", cfg.Mode)
	assert.Equal(t, "xml", cfg.Dialect)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.True(t, cfg.Options().FailFast)
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name string
		edit func(*Config)
		ok   bool
	}{
		{"default", func(*Config) {}, true},
		{"unknown mode", func(c *Config) { c.Mode = "paranoid" }, false},
		{"unknown dialect", func(c *Config) { c.Dialect = "json" }, false},
		{"negative depth", func(c *Config) { c.MaxDepth = -1 }, false},
		{"version of other dialect", func(c *Config) { c.Dialect = "xml"; c.Version = "103" }, false},
		{"bad version", func(c *Config) { c.Version = "abc" }, false},
		{"matching version", func(c *Config) { c.Dialect = "sgml"; c.Version = "160" }, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.edit(&cfg)
			err := cfg.Validate()
			if tc.ok {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	clearEnv(t)
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	require.Error(t, err)
}
