package config

import (
	"path/filepath"
	"time"

	"github.com/AndreyAkinshin/ndkpkg/internal/fetch"
	"github.com/AndreyAkinshin/ndkpkg/internal/toolchain"
)

// BuildConfiguration converts the config into a toolchain configuration.
// Unrecognized host or target names are returned as configuration errors.
func (c *Config) BuildConfiguration() (toolchain.BuildConfiguration, error) {
	hostOS, err := toolchain.ParseHostOS(c.Host.OS)
	if err != nil {
		return toolchain.BuildConfiguration{}, err
	}
	hostArch, err := toolchain.ParseHostArch(c.Host.Arch)
	if err != nil {
		return toolchain.BuildConfiguration{}, err
	}
	targetArch, err := toolchain.ParseTargetArch(c.Target.Arch)
	if err != nil {
		return toolchain.BuildConfiguration{}, err
	}
	return toolchain.BuildConfiguration{
		Revision:        c.Revision,
		HostOS:          hostOS,
		HostArch:        hostArch,
		TargetArch:      targetArch,
		APILevel:        c.Target.API,
		CompilerVersion: c.Compiler.Version,
		Stdlib:          c.Stdlib,
	}, nil
}

// ResolverOptions returns the resolver settings carried by the config.
func (c *Config) ResolverOptions() toolchain.Options {
	opts := toolchain.Options{Checksums: c.Checksums}
	if c.Download != nil {
		opts.BaseURL = c.Download.BaseURL
	}
	return opts
}

// DownloadTimeout returns the configured timeout, or zero for the fetcher default.
func (c *Config) DownloadTimeout() time.Duration {
	if c.Download == nil {
		return 0
	}
	d, err := time.ParseDuration(c.Download.Timeout)
	if err != nil {
		return 0
	}
	return d
}

// S3Config returns the mirror settings, or false when no mirror is configured.
func (c *Config) S3Config() (fetch.S3Config, bool) {
	if c.Mirror == nil || c.Mirror.Endpoint == "" {
		return fetch.S3Config{}, false
	}
	useSSL := true
	if c.Mirror.UseSSL != nil {
		useSSL = *c.Mirror.UseSSL
	}
	return fetch.S3Config{
		Endpoint:  c.Mirror.Endpoint,
		Region:    c.Mirror.Region,
		AccessKey: c.Mirror.AccessKey,
		SecretKey: c.Mirror.SecretKey,
		Bucket:    c.Mirror.Bucket,
		Prefix:    c.Mirror.Prefix,
		UseSSL:    useSSL,
	}, true
}

// Abs resolves a config path relative to the project root.
func Abs(root, path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(root, path)
}
