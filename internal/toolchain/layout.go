package toolchain

import "path/filepath"

// prebuiltDir is the NDK-relative directory holding per-host LLVM toolchains.
var prebuiltDir = filepath.Join("toolchains", "llvm", "prebuilt")

// InstalledRootPath returns the toolchain root for a package root.
// The nested layout keys the toolchain by host, omitting the -x86_64 suffix
// for 32-bit hosts; the flat layout is the package root itself.
func (l Layout) InstalledRootPath(packageRoot string, hostArch Arch, token string) string {
	switch l {
	case LayoutNested:
		tag := token
		if hostArch != ArchX86 {
			tag += "-x86_64"
		}
		return filepath.Join(packageRoot, prebuiltDir, tag)
	default:
		return packageRoot
	}
}

// BinDir returns the directory holding the tool executables.
func BinDir(root string) string {
	return filepath.Join(root, "bin")
}

// SysrootPath returns the sysroot under a toolchain root.
func SysrootPath(root string) string {
	return filepath.Join(root, "sysroot")
}
