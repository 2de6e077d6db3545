// Package config loads CLI settings from an optional TOML file and OFXKIT_*
// environment variables. Environment values win over the file.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/kelseyhightower/envconfig"

	"github.com/reoring/ofxkit"
	"github.com/reoring/ofxkit/dialect"
	_ "github.com/reoring/ofxkit/dialect/sgml"
	_ "github.com/reoring/ofxkit/dialect/xml"
)

// EnvPrefix is prepended to every environment variable name.
const EnvPrefix = "OFXKIT"

// Config holds the CLI settings.
type Config struct {
	// Mode is "lenient" or "strict".
	Mode     string `toml:"mode" envconfig:"MODE"`
	LogLevel string `toml:"log_level" envconfig:"LOG_LEVEL"`
	MaxDepth int    `toml:"max_depth" envconfig:"MAX_DEPTH"`
	FailFast bool   `toml:"fail_fast" envconfig:"FAIL_FAST"`
	// Dialect and Version select the output of convert. An empty Version
	// means the dialect's default header version.
	Dialect string `toml:"dialect" envconfig:"DIALECT"`
	Version string `toml:"version" envconfig:"VERSION"`
}

// Default returns the settings used when nothing else is configured.
func Default() Config {
	return Config{
		Mode:     ofxkit.Lenient.String(),
		LogLevel: "warn",
		MaxDepth: ofxkit.DefaultMaxDepth,
		Dialect:  dialect.XML,
	}
}

// Load applies the TOML file at path (skipped when path is empty) and then
// the environment on top of Default, and validates the result.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		if _, err := toml.DecodeFile(path, &cfg); err != nil {
			return Config{}, fmt.Errorf("config parse failed (%s): %w", path, err)
		}
	}
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return Config{}, fmt.Errorf("config env: %w", err)
	}
	cfg.normalize()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) normalize() {
	c.Mode = strings.ToLower(strings.TrimSpace(c.Mode))
	c.Dialect = strings.ToLower(strings.TrimSpace(c.Dialect))
	c.Version = strings.TrimSpace(c.Version)
}

// Validate rejects unknown modes and dialects, and a version that belongs to
// a different dialect than the configured one.
func (c Config) Validate() error {
	var errs []error
	if _, err := ParseMode(c.Mode); err != nil {
		errs = append(errs, err)
	}
	if c.MaxDepth < 0 {
		errs = append(errs, fmt.Errorf("config: max_depth must not be negative, got %d", c.MaxDepth))
	}
	if _, err := dialect.Lookup(c.Dialect); err != nil {
		errs = append(errs, fmt.Errorf("config: dialect: %w", err))
	} else if c.Version != "" {
		d, err := dialect.ForVersionString(c.Version)
		switch {
		case err != nil:
			errs = append(errs, fmt.Errorf("config: version: %w", err))
		case d.Name() != c.Dialect:
			errs = append(errs, fmt.Errorf("config: version %s is %s, not %s", c.Version, d.Name(), c.Dialect))
		}
	}
	return errors.Join(errs...)
}

// ParseMode maps "lenient" and "strict" onto ofxkit modes. The empty string
// is lenient.
func ParseMode(s string) (ofxkit.Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "lenient":
		return ofxkit.Lenient, nil
	case "strict":
		return ofxkit.Strict, nil
	}
	return ofxkit.Lenient, fmt.Errorf("config: unknown mode %q", s)
}

// Options converts the settings into engine options.
func (c Config) Options() ofxkit.Options {
	mode, _ := ParseMode(c.Mode)
	return ofxkit.Options{Mode: mode, FailFast: c.FailFast, MaxDepth: c.MaxDepth}
}
