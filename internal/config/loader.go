package config

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const (
	envPrefix      = "GALACTIS_"
	envConfigFile  = "GALACTIS_CONFIG"
	envDotenvFile  = "GALACTIS_ENV_FILE"
	defaultEnvFile = ".env"
)

// Load builds a Config by layering defaults, optional file, and env vars.
// Order of precedence (low -> high):
//  1. defaults (New())
//  2. file (YAML) if GALACTIS_CONFIG is set
//  3. env (prefix GALACTIS_), including values loaded from a dotenv file
//
// The dotenv file ($GALACTIS_ENV_FILE, default .env) never overrides
// variables already present in the process environment.
func Load(_ context.Context) (*Config, error) {
	if err := loadDotenv(); err != nil {
		return nil, err
	}

	base := New()
	k := koanf.New(".")

	if path := os.Getenv(envConfigFile); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, loadFailed(path, err)
		}
	}

	// GALACTIS_RATE_WINDOW -> rate_window (flat keys; underscores preserved).
	envProvider := env.Provider(envPrefix, ".", func(s string) string {
		return strings.TrimPrefix(strings.ToLower(s), strings.ToLower(envPrefix))
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, loadFailed("env", err)
	}

	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, loadFailed("unmarshal", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func loadDotenv() error {
	path := os.Getenv(envDotenvFile)
	explicit := path != ""
	if !explicit {
		path = defaultEnvFile
	}
	err := godotenv.Load(path)
	if err == nil {
		return nil
	}
	if !explicit && errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return loadFailed(path, err)
}

// Validate checks the invariants the rest of the service relies on.
func (c *Config) Validate() error {
	switch {
	case strings.TrimSpace(c.Addr) == "":
		return invalid("addr must not be empty")
	case c.RateLimit <= 0:
		return invalid("rate_limit must be positive, got %d", c.RateLimit)
	case c.RateWindow <= 0:
		return invalid("rate_window must be positive, got %s", c.RateWindow)
	case c.CRMTimeout <= 0:
		return invalid("crm_timeout must be positive, got %s", c.CRMTimeout)
	case c.BlogPostLimit <= 0:
		return invalid("blog_post_limit must be positive, got %d", c.BlogPostLimit)
	}
	switch c.Environment {
	case "development", "production":
	default:
		return invalid("environment must be development or production, got %q", c.Environment)
	}
	return nil
}
