package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/AndreyAkinshin/ndkpkg/internal/toolchain"
)

// Default configuration values.
const (
	DefaultTargetArch      = string(toolchain.ArchARMv8)
	DefaultAPILevel        = 21
	DefaultDownloadTimeout = "10m"
	DefaultStateDir        = ".ndkpkg"
)

// DefaultCacheDir is where downloaded archives are kept, relative to the project root.
var DefaultCacheDir = filepath.Join(DefaultStateDir, "cache")

// ApplyDefaults fills in default values for unset configuration fields.
func ApplyDefaults(cfg *Config) {
	applyToolchainDefaults(cfg)
	applyDirDefaults(cfg)
	applyDownloadDefaults(cfg)
}

func applyToolchainDefaults(cfg *Config) {
	if cfg.Revision == "" {
		cfg.Revision = toolchain.DefaultRevision
	}
	host, arch := toolchain.CurrentHost()
	if cfg.Host.OS == "" {
		cfg.Host.OS = string(host)
	}
	if cfg.Host.Arch == "" {
		cfg.Host.Arch = string(arch)
	}
	if cfg.Target.Arch == "" {
		cfg.Target.Arch = DefaultTargetArch
	}
	if cfg.Target.API == 0 {
		cfg.Target.API = DefaultAPILevel
	}
}

func applyDirDefaults(cfg *Config) {
	if cfg.PackageDir == "" {
		cfg.PackageDir = DefaultPackageDir(cfg)
	}
	if cfg.CacheDir == "" {
		cfg.CacheDir = DefaultCacheDir
	}
}

func applyDownloadDefaults(cfg *Config) {
	if cfg.Download == nil {
		cfg.Download = &DownloadConfig{}
	}
	if cfg.Download.BaseURL == "" {
		cfg.Download.BaseURL = toolchain.DefaultBaseURL
	}
	if cfg.Download.Timeout == "" {
		cfg.Download.Timeout = DefaultDownloadTimeout
	}
}

// DefaultPackageDir returns the per-variant package directory, e.g.
// .ndkpkg/package/r21e-linux-x86_64-armv8-21.
func DefaultPackageDir(cfg *Config) string {
	name := fmt.Sprintf("%s-%s-%s-%s-%d",
		cfg.Revision,
		strings.ToLower(cfg.Host.OS),
		strings.ToLower(cfg.Host.Arch),
		strings.ToLower(cfg.Target.Arch),
		cfg.Target.API)
	return filepath.Join(DefaultStateDir, "package", name)
}
