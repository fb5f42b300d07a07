package config

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const (
	envPrefix = "BENCHBOARD_"
	envConfig = envPrefix + "CONFIG"
)

// LoadOption adjusts the defaults before the file and env layers apply.
type LoadOption func(*Config)

// WithDefaults lets a caller change defaults, e.g. a command that needs a
// persistent store. File and env values still win.
func WithDefaults(fn func(*Config)) LoadOption {
	return func(c *Config) {
		if fn != nil {
			fn(c)
		}
	}
}

// Load builds a Config by layering defaults, optional file, and env vars.
// Order of precedence (low -> high):
//  1. defaults (New(ctx))
//  2. file (YAML) if BENCHBOARD_CONFIG is set
//  3. env (prefix BENCHBOARD_, "__" separates nested keys)
func Load(ctx context.Context, opts ...LoadOption) (*Config, error) {
	return LoadFrom(ctx, os.Getenv(envConfig), opts...)
}

// LoadFrom is Load with an explicit YAML path; an empty path skips the file
// layer.
func LoadFrom(ctx context.Context, path string, opts ...LoadOption) (*Config, error) {
	cfg := New(ctx)
	for _, opt := range opts {
		opt(cfg)
	}

	k := koanf.New(".")

	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrLoadConfig, path, err)
		}
	}

	// BENCHBOARD_STORAGE__REDIS__ADDR -> storage.redis.addr. Single
	// underscores stay so they match the koanf tags.
	envProvider := env.Provider(envPrefix, ".", func(s string) string {
		if s == envConfig {
			return ""
		}
		s = strings.TrimPrefix(s, envPrefix)
		return strings.ReplaceAll(strings.ToLower(s), "__", ".")
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: env: %w", ErrLoadConfig, err)
	}

	if err := k.UnmarshalWithConf("", cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
