package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "NDKPKG_"

// DotEnvFileName is the optional per-project environment file.
const DotEnvFileName = ".env"

// LookupFunc resolves an environment variable.
type LookupFunc func(key string) (string, bool)

// EnvLookup returns a lookup over the process environment, falling back to
// the .env file in root. Process variables win over the file.
func EnvLookup(root string) (LookupFunc, error) {
	dotenv, err := godotenv.Read(filepath.Join(root, DotEnvFileName))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to read %s: %w", DotEnvFileName, err)
	}
	return func(key string) (string, bool) {
		if v, ok := os.LookupEnv(key); ok {
			return v, true
		}
		v, ok := dotenv[key]
		return v, ok
	}, nil
}

// MapLookup returns a lookup over a fixed map.
func MapLookup(m map[string]string) LookupFunc {
	return func(key string) (string, bool) {
		v, ok := m[key]
		return v, ok
	}
}

type stringOverride struct {
	name  string
	field func(*Config) *string
}

var stringOverrides = []stringOverride{
	{"REVISION", func(c *Config) *string { return &c.Revision }},
	{"HOST_OS", func(c *Config) *string { return &c.Host.OS }},
	{"HOST_ARCH", func(c *Config) *string { return &c.Host.Arch }},
	{"TARGET_ARCH", func(c *Config) *string { return &c.Target.Arch }},
	{"COMPILER", func(c *Config) *string { return &c.Compiler.Version }},
	{"STDLIB", func(c *Config) *string { return &c.Stdlib }},
	{"PACKAGE_DIR", func(c *Config) *string { return &c.PackageDir }},
	{"CACHE_DIR", func(c *Config) *string { return &c.CacheDir }},
	{"BASE_URL", func(c *Config) *string { return &download(c).BaseURL }},
	{"DOWNLOAD_TIMEOUT", func(c *Config) *string { return &download(c).Timeout }},
	{"MIRROR_ENDPOINT", func(c *Config) *string { return &mirror(c).Endpoint }},
	{"MIRROR_BUCKET", func(c *Config) *string { return &mirror(c).Bucket }},
	{"MIRROR_PREFIX", func(c *Config) *string { return &mirror(c).Prefix }},
	{"MIRROR_REGION", func(c *Config) *string { return &mirror(c).Region }},
	{"MIRROR_ACCESS_KEY", func(c *Config) *string { return &mirror(c).AccessKey }},
	{"MIRROR_SECRET_KEY", func(c *Config) *string { return &mirror(c).SecretKey }},
}

func download(c *Config) *DownloadConfig {
	if c.Download == nil {
		c.Download = &DownloadConfig{}
	}
	return c.Download
}

func mirror(c *Config) *MirrorConfig {
	if c.Mirror == nil {
		c.Mirror = &MirrorConfig{}
	}
	return c.Mirror
}

// ApplyEnv overrides config values with NDKPKG_* variables. Empty variables
// are ignored. Mirror credentials fall back to MINIO_ROOT_USER and
// MINIO_ROOT_PASSWORD.
func ApplyEnv(cfg *Config, lookup LookupFunc) error {
	get := func(name string) (string, bool) {
		v, ok := lookup(EnvPrefix + name)
		v = strings.TrimSpace(v)
		return v, ok && v != ""
	}

	for _, o := range stringOverrides {
		if v, ok := get(o.name); ok {
			*o.field(cfg) = v
		}
	}

	if v, ok := get("API"); ok {
		api, err := strconv.Atoi(v)
		if err != nil {
			return &ValidationError{Field: EnvPrefix + "API", Message: fmt.Sprintf("invalid integer %q", v)}
		}
		cfg.Target.API = api
	}
	if v, ok := get("MIRROR_USE_SSL"); ok {
		useSSL, err := strconv.ParseBool(v)
		if err != nil {
			return &ValidationError{Field: EnvPrefix + "MIRROR_USE_SSL", Message: fmt.Sprintf("invalid boolean %q", v)}
		}
		mirror(cfg).UseSSL = &useSSL
	}

	// Credentials alone do not configure a mirror.
	if cfg.Mirror != nil && cfg.Mirror.Endpoint == "" && cfg.Mirror.Bucket == "" {
		cfg.Mirror = nil
	}

	if cfg.Mirror != nil {
		if cfg.Mirror.AccessKey == "" {
			if v, ok := lookup("MINIO_ROOT_USER"); ok {
				cfg.Mirror.AccessKey = strings.TrimSpace(v)
			}
		}
		if cfg.Mirror.SecretKey == "" {
			if v, ok := lookup("MINIO_ROOT_PASSWORD"); ok {
				cfg.Mirror.SecretKey = strings.TrimSpace(v)
			}
		}
	}
	return nil
}
