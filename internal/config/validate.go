package config

import (
	"fmt"
	"regexp"
	"time"

	ndkerrors "github.com/AndreyAkinshin/ndkpkg/internal/errors"
	"github.com/AndreyAkinshin/ndkpkg/internal/toolchain"
)

var (
	// Checksum keys name a host, e.g. "linux-x86_64".
	checksumKeyPattern = regexp.MustCompile(`^(linux|darwin|windows)-(x86|x86_64)$`)

	sha1Pattern = regexp.MustCompile(`^[0-9a-fA-F]{40}$`)
)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ExitCode maps validation errors to the config exit code.
func (e *ValidationError) ExitCode() int {
	return ndkerrors.ExitConfigError
}

// Validate checks a configuration for errors and returns warnings for non-fatal issues.
// Toolchain compatibility (API levels, host rules) is checked by the resolver.
func Validate(cfg *Config) (warnings []string, err error) {
	if err := validateRevision(cfg); err != nil {
		return nil, err
	}
	if err := validateDownload(cfg); err != nil {
		return nil, err
	}
	if err := validateMirror(cfg); err != nil {
		return nil, err
	}
	if err := validateChecksums(cfg); err != nil {
		return nil, err
	}

	if cfg.Mirror != nil && cfg.Mirror.SecretKey != "" && cfg.Mirror.AccessKey == "" {
		warnings = append(warnings, "mirror.secret_key is set without mirror.access_key (ignored)")
	}
	return warnings, nil
}

func validateRevision(cfg *Config) error {
	if _, err := toolchain.LookupProfile(cfg.Revision); err != nil {
		return &ValidationError{Field: "revision", Message: err.Error()}
	}
	return nil
}

func validateDownload(cfg *Config) error {
	if cfg.Download == nil || cfg.Download.Timeout == "" {
		return nil
	}
	d, err := time.ParseDuration(cfg.Download.Timeout)
	if err != nil {
		return &ValidationError{Field: "download.timeout", Message: fmt.Sprintf("invalid duration %q", cfg.Download.Timeout)}
	}
	if d <= 0 {
		return &ValidationError{Field: "download.timeout", Message: "must be positive"}
	}
	return nil
}

func validateMirror(cfg *Config) error {
	if cfg.Mirror == nil {
		return nil
	}
	if cfg.Mirror.Endpoint == "" {
		return &ValidationError{Field: "mirror.endpoint", Message: "is required"}
	}
	if cfg.Mirror.Bucket == "" {
		return &ValidationError{Field: "mirror.bucket", Message: "is required"}
	}
	return nil
}

func validateChecksums(cfg *Config) error {
	for key, digest := range cfg.Checksums {
		if !checksumKeyPattern.MatchString(key) {
			return &ValidationError{
				Field:   fmt.Sprintf("checksums.%s", key),
				Message: "key must match pattern ^(linux|darwin|windows)-(x86|x86_64)$",
			}
		}
		if !sha1Pattern.MatchString(digest) {
			return &ValidationError{
				Field:   fmt.Sprintf("checksums.%s", key),
				Message: "must be a 40-character hex SHA-1 digest",
			}
		}
	}
	return nil
}
