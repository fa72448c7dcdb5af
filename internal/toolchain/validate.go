package toolchain

import (
	"fmt"
	"strconv"
	"strings"

	ndkerrors "github.com/AndreyAkinshin/ndkpkg/internal/errors"
	"github.com/AndreyAkinshin/ndkpkg/internal/version"
)

// Reason classifies why a configuration was rejected.
type Reason int

const (
	UnsupportedHost Reason = iota
	UnsupportedArchitecture
	UnsupportedAPILevel
	UnsupportedCompiler
	UnsupportedStdlib
	UnsupportedRevision
)

func (r Reason) String() string {
	switch r {
	case UnsupportedHost:
		return "UnsupportedHost"
	case UnsupportedArchitecture:
		return "UnsupportedArchitecture"
	case UnsupportedAPILevel:
		return "UnsupportedAPILevel"
	case UnsupportedCompiler:
		return "UnsupportedCompiler"
	case UnsupportedStdlib:
		return "UnsupportedStdlib"
	case UnsupportedRevision:
		return "UnsupportedRevision"
	}
	return "Unknown"
}

// ConfigError reports an unsupported configuration value.
// It names the offending field and value; values are never adjusted.
type ConfigError struct {
	Reason Reason
	Field  string
	Value  string
	Detail string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("unsupported %s %q: %s", e.Field, e.Value, e.Detail)
}

// ExitCode maps configuration errors to the config exit code.
func (e *ConfigError) ExitCode() int {
	return ndkerrors.ExitConfigError
}

// BuildConfiguration is one requested toolchain configuration.
type BuildConfiguration struct {
	Revision        string
	HostOS          HostOS
	HostArch        Arch
	TargetArch      Arch
	APILevel        int
	CompilerVersion string
	Stdlib          string
}

// String returns a compact description, e.g. "r21e Linux/x86_64 -> armv8 android-21".
func (c BuildConfiguration) String() string {
	rev := c.Revision
	if rev == "" {
		rev = DefaultRevision
	}
	return fmt.Sprintf("%s %s/%s -> %s android-%d", rev, c.HostOS, c.HostArch, c.TargetArch, c.APILevel)
}

// Validate checks a configuration against its revision's profile.
// Checks run in a fixed order so the first failure is deterministic:
// revision, host, known architecture, API level, architecture support,
// compiler, standard library. A too-low API level is reported before an
// architecture the profile does not ship.
func Validate(cfg BuildConfiguration) error {
	p, err := LookupProfile(cfg.Revision)
	if err != nil {
		return err
	}
	return p.Validate(cfg)
}

// Validate checks a configuration against this profile.
func (p *Profile) Validate(cfg BuildConfiguration) error {
	if err := p.validateHost(cfg); err != nil {
		return err
	}
	if _, ok := archTable[cfg.TargetArch]; !ok {
		return errUnknownArch(cfg.TargetArch)
	}
	if err := p.validateAPILevel(cfg); err != nil {
		return err
	}
	if err := p.validateArch(cfg); err != nil {
		return err
	}
	if err := p.validateCompiler(cfg); err != nil {
		return err
	}
	return p.validateStdlib(cfg)
}

func (p *Profile) validateHost(cfg BuildConfiguration) error {
	if !validHostOS(cfg.HostOS) {
		return &ConfigError{
			Reason: UnsupportedHost,
			Field:  "host.os",
			Value:  string(cfg.HostOS),
			Detail: "must be one of Windows, Linux, Macos",
		}
	}
	if !validHostArch(cfg.HostArch) {
		return &ConfigError{
			Reason: UnsupportedHost,
			Field:  "host.arch",
			Value:  string(cfg.HostArch),
			Detail: "must be x86 or x86_64",
		}
	}
	if cfg.HostArch == ArchX86 && !p.Allows32BitHost(cfg.HostOS) {
		return &ConfigError{
			Reason: UnsupportedHost,
			Field:  "host.arch",
			Value:  string(cfg.HostArch),
			Detail: fmt.Sprintf("x86 %s host is not supported by NDK %s", cfg.HostOS, p.Revision),
		}
	}
	return nil
}

func (p *Profile) validateArch(cfg BuildConfiguration) error {
	if !p.SupportsArch(cfg.TargetArch) {
		return &ConfigError{
			Reason: UnsupportedArchitecture,
			Field:  "target.arch",
			Value:  string(cfg.TargetArch),
			Detail: fmt.Sprintf("NDK %s supports %s", p.Revision, describeArches(p.Arches)),
		}
	}
	return nil
}

func (p *Profile) validateAPILevel(cfg BuildConfiguration) error {
	value := strconv.Itoa(cfg.APILevel)
	if cfg.APILevel < p.MinAPI {
		return &ConfigError{
			Reason: UnsupportedAPILevel,
			Field:  "target.api",
			Value:  value,
			Detail: fmt.Sprintf("minimum API level for NDK %s is %d", p.Revision, p.MinAPI),
		}
	}
	if floor := p.MinAPIFor(cfg.TargetArch); cfg.APILevel < floor {
		return &ConfigError{
			Reason: UnsupportedAPILevel,
			Field:  "target.api",
			Value:  value,
			Detail: fmt.Sprintf("minimum API level for architecture %s is %d", cfg.TargetArch, floor),
		}
	}
	if cfg.APILevel > p.MaxAPI {
		return &ConfigError{
			Reason: UnsupportedAPILevel,
			Field:  "target.api",
			Value:  value,
			Detail: fmt.Sprintf("maximum API level for NDK %s is %d", p.Revision, p.MaxAPI),
		}
	}
	return nil
}

func (p *Profile) validateCompiler(cfg BuildConfiguration) error {
	compiler := cfg.CompilerVersion
	if compiler == "" {
		compiler = p.DefaultCompiler
	}
	major, err := version.CompilerMajor(compiler)
	if err != nil {
		return &ConfigError{
			Reason: UnsupportedCompiler,
			Field:  "compiler.version",
			Value:  compiler,
			Detail: err.Error(),
		}
	}
	for _, m := range p.CompilerMajors {
		if m == major {
			return nil
		}
	}
	return &ConfigError{
		Reason: UnsupportedCompiler,
		Field:  "compiler.version",
		Value:  compiler,
		Detail: fmt.Sprintf("NDK %s ships clang %s", p.Revision, joinInts(p.CompilerMajors)),
	}
}

func (p *Profile) validateStdlib(cfg BuildConfiguration) error {
	stdlib := cfg.Stdlib
	if stdlib == "" {
		stdlib = p.DefaultStdlib
	}
	if !p.SupportsStdlib(stdlib) {
		return &ConfigError{
			Reason: UnsupportedStdlib,
			Field:  "stdlib",
			Value:  stdlib,
			Detail: fmt.Sprintf("NDK %s supports %s", p.Revision, strings.Join(p.Stdlibs, ", ")),
		}
	}
	return nil
}

func joinInts(values []int) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = strconv.Itoa(v)
	}
	return strings.Join(parts, ", ")
}
