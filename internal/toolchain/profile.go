package toolchain

import (
	"fmt"
	"strings"

	"github.com/AndreyAkinshin/ndkpkg/internal/version"
)

// DefaultRevision is the NDK revision installed when none is configured.
const DefaultRevision = "r21e"

// Layout selects how the toolchain is arranged inside the package root.
type Layout int

const (
	// LayoutFlat places tools directly under <package>/bin, as produced by
	// make_standalone_toolchain.py.
	LayoutFlat Layout = iota
	// LayoutNested keeps the unpacked NDK and its prebuilt LLVM toolchain under
	// <package>/toolchains/llvm/prebuilt/<host-tag>.
	LayoutNested
)

func (l Layout) String() string {
	if l == LayoutNested {
		return "nested"
	}
	return "flat"
}

// NamingEpoch selects how compiler wrappers are named.
type NamingEpoch int

const (
	// NamingStandalone names compilers <gnu-triplet>-clang.
	NamingStandalone NamingEpoch = iota
	// NamingVersioned names compilers <clang-triplet><api>-clang.
	NamingVersioned
)

func (n NamingEpoch) String() string {
	if n == NamingVersioned {
		return "versioned"
	}
	return "standalone"
}

// ChecksumPolicy controls what happens when no checksum is recorded for an archive.
type ChecksumPolicy int

const (
	// ChecksumOptional skips verification when no checksum is known.
	ChecksumOptional ChecksumPolicy = iota
	// ChecksumRequired fails the run when no checksum is known or it does not match.
	ChecksumRequired
)

func (c ChecksumPolicy) String() string {
	if c == ChecksumRequired {
		return "required"
	}
	return "optional"
}

// Profile holds the rules of one NDK revision: what it validates,
// how it names tools, and how it lays out the package.
type Profile struct {
	Revision string
	Layout   Layout
	Naming   NamingEpoch
	Checksum ChecksumPolicy

	// MinAPI is 16 for every profile except r16b, whose standalone
	// toolchain still targets API 14.
	MinAPI      int
	MaxAPI      int
	Min64BitAPI int

	// CompilerMajors lists the accepted clang major versions; DefaultCompiler is
	// the version shipped with the revision.
	CompilerMajors  []int
	DefaultCompiler string

	Stdlibs       []string
	DefaultStdlib string

	// X86Hosts lists the host systems on which a 32-bit host is accepted.
	// r16b accepts Macos although Google publishes no darwin-x86 archive;
	// such a run fails at download.
	X86Hosts []HostOS
	Arches   []Arch

	// ToolchainFile is the CMake toolchain file relative to the package root,
	// empty when the layout ships none.
	ToolchainFile string
}

var (
	profileR16b = &Profile{
		Revision:        "r16b",
		Layout:          LayoutFlat,
		Naming:          NamingStandalone,
		Checksum:        ChecksumOptional,
		MinAPI:          14,
		MaxAPI:          27,
		Min64BitAPI:     21,
		CompilerMajors:  []int{5},
		DefaultCompiler: "5.0",
		Stdlibs:         []string{"gnustl", "libc++", "stlport"},
		DefaultStdlib:   "libc++",
		X86Hosts:        []HostOS{HostWindows, HostMacos},
		Arches:          []Arch{ArchX86, ArchX86_64, ArchARMv7, ArchARMv8, ArchMIPS, ArchMIPS64},
	}

	profileR20 = &Profile{
		Revision:        "r20",
		Layout:          LayoutNested,
		Naming:          NamingVersioned,
		Checksum:        ChecksumRequired,
		MinAPI:          16,
		MaxAPI:          29,
		Min64BitAPI:     21,
		CompilerMajors:  []int{8},
		DefaultCompiler: "8",
		Stdlibs:         []string{"libc++"},
		DefaultStdlib:   "libc++",
		X86Hosts:        []HostOS{HostWindows},
		Arches:          []Arch{ArchX86, ArchX86_64, ArchARMv7, ArchARMv8},
		ToolchainFile:   "build/cmake/android.toolchain.cmake",
	}

	profileR21e = &Profile{
		Revision:        "r21e",
		Layout:          LayoutNested,
		Naming:          NamingVersioned,
		Checksum:        ChecksumRequired,
		MinAPI:          16,
		MaxAPI:          30,
		Min64BitAPI:     21,
		CompilerMajors:  []int{9},
		DefaultCompiler: "9",
		Stdlibs:         []string{"libc++"},
		DefaultStdlib:   "libc++",
		X86Hosts:        nil,
		Arches:          []Arch{ArchX86, ArchX86_64, ArchARMv7, ArchARMv8},
		ToolchainFile:   "build/cmake/android.toolchain.cmake",
	}
)

// Profiles returns all known profiles ordered by revision.
func Profiles() []*Profile {
	return []*Profile{profileR16b, profileR20, profileR21e}
}

// LookupProfile returns the profile for an NDK revision.
func LookupProfile(revision string) (*Profile, error) {
	if revision == "" {
		revision = DefaultRevision
	}
	rev, err := version.Parse(revision)
	if err != nil {
		return nil, &ConfigError{
			Reason: UnsupportedRevision,
			Field:  "revision",
			Value:  revision,
			Detail: err.Error(),
		}
	}

	switch rev.String() {
	case "r16b":
		return profileR16b, nil
	case "r20":
		return profileR20, nil
	case "r21e":
		return profileR21e, nil
	}
	return nil, &ConfigError{
		Reason: UnsupportedRevision,
		Field:  "revision",
		Value:  revision,
		Detail: fmt.Sprintf("supported revisions are %s", strings.Join(Revisions(), ", ")),
	}
}

// Revisions lists the supported revision strings.
func Revisions() []string {
	profiles := Profiles()
	names := make([]string, len(profiles))
	for i, p := range profiles {
		names[i] = p.Revision
	}
	return names
}

// SupportsArch reports whether the profile ships a toolchain for arch.
func (p *Profile) SupportsArch(arch Arch) bool {
	for _, a := range p.Arches {
		if a == arch {
			return true
		}
	}
	return false
}

// Allows32BitHost reports whether a 32-bit host is accepted on os.
func (p *Profile) Allows32BitHost(host HostOS) bool {
	for _, h := range p.X86Hosts {
		if h == host {
			return true
		}
	}
	return false
}

// SupportsStdlib reports whether the profile accepts the standard library.
func (p *Profile) SupportsStdlib(stdlib string) bool {
	for _, s := range p.Stdlibs {
		if s == stdlib {
			return true
		}
	}
	return false
}

// MinAPIFor returns the lowest API level accepted for a target architecture.
func (p *Profile) MinAPIFor(arch Arch) int {
	if Is64Bit(arch) && p.Min64BitAPI > p.MinAPI {
		return p.Min64BitAPI
	}
	return p.MinAPI
}

// InstalledRootPath returns the directory holding bin/ and sysroot/.
func (p *Profile) InstalledRootPath(packageRoot string, hostArch Arch, token string) string {
	return p.Layout.InstalledRootPath(packageRoot, hostArch, token)
}
