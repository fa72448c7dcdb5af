package toolchain

import (
	"fmt"
	"runtime"
	"strings"
)

// HostOS is the operating system the toolchain runs on.
type HostOS string

const (
	HostWindows HostOS = "Windows"
	HostLinux   HostOS = "Linux"
	HostMacos   HostOS = "Macos"
)

// HostOSes lists the supported host operating systems.
var HostOSes = []HostOS{HostWindows, HostLinux, HostMacos}

// Arch is a CPU architecture, used both for hosts (x86, x86_64) and targets.
type Arch string

const (
	ArchX86    Arch = "x86"
	ArchX86_64 Arch = "x86_64"
	ArchARMv7  Arch = "armv7"
	ArchARMv8  Arch = "armv8"
	ArchMIPS   Arch = "mips"
	ArchMIPS64 Arch = "mips64"
)

// HostArches lists the supported host architectures.
var HostArches = []Arch{ArchX86, ArchX86_64}

// TargetArches lists every target architecture known to any profile.
var TargetArches = []Arch{ArchX86, ArchX86_64, ArchARMv7, ArchARMv8, ArchMIPS, ArchMIPS64}

// ParseHostOS parses a host OS name. Matching is case-insensitive and
// accepts the Go runtime spellings ("windows", "linux", "darwin").
func ParseHostOS(s string) (HostOS, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "windows":
		return HostWindows, nil
	case "linux":
		return HostLinux, nil
	case "macos", "darwin":
		return HostMacos, nil
	}
	return "", &ConfigError{
		Reason: UnsupportedHost,
		Field:  "host.os",
		Value:  s,
		Detail: "must be one of Windows, Linux, Macos",
	}
}

// ParseHostArch parses a host architecture name.
func ParseHostArch(s string) (Arch, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "x86", "386", "i686":
		return ArchX86, nil
	case "x86_64", "amd64":
		return ArchX86_64, nil
	}
	return "", &ConfigError{
		Reason: UnsupportedHost,
		Field:  "host.arch",
		Value:  s,
		Detail: "must be x86 or x86_64",
	}
}

// ParseTargetArch parses a target architecture name.
func ParseTargetArch(s string) (Arch, error) {
	a := Arch(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range TargetArches {
		if a == known {
			return a, nil
		}
	}
	return "", &ConfigError{
		Reason: UnsupportedArchitecture,
		Field:  "target.arch",
		Value:  s,
		Detail: "must be one of x86, x86_64, armv7, armv8, mips, mips64",
	}
}

// CurrentHost returns the host OS and architecture of the running process.
// Unsupported runtimes are reported as-is so validation can name them.
func CurrentHost() (HostOS, Arch) {
	var host HostOS
	switch runtime.GOOS {
	case "windows":
		host = HostWindows
	case "darwin":
		host = HostMacos
	case "linux":
		host = HostLinux
	default:
		host = HostOS(runtime.GOOS)
	}

	var arch Arch
	switch runtime.GOARCH {
	case "386":
		arch = ArchX86
	case "amd64":
		arch = ArchX86_64
	default:
		arch = Arch(runtime.GOARCH)
	}
	return host, arch
}

// PlatformToken returns the platform name used in archive file names and host tags.
func PlatformToken(host HostOS) (string, error) {
	switch host {
	case HostWindows:
		return "windows", nil
	case HostMacos:
		return "darwin", nil
	case HostLinux:
		return "linux", nil
	}
	return "", &ConfigError{
		Reason: UnsupportedHost,
		Field:  "host.os",
		Value:  string(host),
		Detail: "must be one of Windows, Linux, Macos",
	}
}

// HostTag returns the prebuilt directory name for a host, e.g. "linux-x86_64".
// 32-bit hosts use the bare platform token.
func HostTag(host HostOS, arch Arch) (string, error) {
	token, err := PlatformToken(host)
	if err != nil {
		return "", err
	}
	if arch == ArchX86 {
		return token, nil
	}
	return token + "-x86_64", nil
}

// ExecutableSuffix returns ".exe" on Windows hosts.
func ExecutableSuffix(host HostOS) string {
	if host == HostWindows {
		return ".exe"
	}
	return ""
}

// ScriptSuffix returns the suffix of compiler wrapper scripts on a host.
func ScriptSuffix(host HostOS) string {
	if host == HostWindows {
		return ".cmd"
	}
	return ""
}

func (o HostOS) String() string { return string(o) }
func (a Arch) String() string   { return string(a) }

// validHostOS reports whether host is one of the supported host systems.
func validHostOS(host HostOS) bool {
	for _, h := range HostOSes {
		if h == host {
			return true
		}
	}
	return false
}

// validHostArch reports whether arch is a supported host architecture.
func validHostArch(arch Arch) bool {
	return arch == ArchX86 || arch == ArchX86_64
}

func describeArches(arches []Arch) string {
	names := make([]string, len(arches))
	for i, a := range arches {
		names[i] = string(a)
	}
	return strings.Join(names, ", ")
}

func errUnknownArch(arch Arch) error {
	return &ConfigError{
		Reason: UnsupportedArchitecture,
		Field:  "target.arch",
		Value:  string(arch),
		Detail: fmt.Sprintf("must be one of %s", describeArches(TargetArches)),
	}
}
