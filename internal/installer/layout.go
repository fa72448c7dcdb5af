package installer

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	ndkerrors "github.com/AndreyAkinshin/ndkpkg/internal/errors"
	"github.com/AndreyAkinshin/ndkpkg/internal/runner"
	"github.com/AndreyAkinshin/ndkpkg/internal/toolchain"
)

// LicenseDir is the package subdirectory receiving license and notice files.
const LicenseDir = "license"

const (
	standaloneScript = "build/tools/make_standalone_toolchain.py"
	cmakeHostTag64   = "set(ANDROID_HOST_TAG windows-x86_64)"
	cmakeHostTag32   = "set(ANDROID_HOST_TAG windows)"
)

// renameDir moves a directory; replaced in tests to force the copy fallback.
var renameDir = os.Rename

// LayoutPackage builds the final package from an extracted NDK.
// The package root is replaced. Nested profiles move the NDK tree into place,
// copying it when a rename is not possible. The flat profile generates a
// standalone toolchain with the NDK's make_standalone_toolchain.py, which
// refuses an existing install directory, so the root is left absent for it.
func (in *Installer) LayoutPackage(ctx context.Context, extractedRoot string, v *toolchain.ResolvedVariant, python string) error {
	root := v.PackageRoot
	if err := removeDir(root); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(root), 0o755); err != nil {
		return ndkerrors.Layout(root, err)
	}

	licenseSrc := extractedRoot
	switch v.Profile.Layout {
	case toolchain.LayoutNested:
		if err := in.moveTree(ctx, extractedRoot, root); err != nil {
			return err
		}
		licenseSrc = root
	default:
		if err := in.makeStandalone(ctx, extractedRoot, v, python); err != nil {
			return err
		}
	}

	if err := copyLicenses(licenseSrc, filepath.Join(root, LicenseDir)); err != nil {
		return err
	}

	if v.Profile.Layout == toolchain.LayoutNested && v.Config.HostOS == toolchain.HostWindows && v.Config.HostArch == toolchain.ArchX86 {
		patched, err := PatchCMakeHostTag(v.ToolchainFile)
		if err != nil {
			return err
		}
		if !patched {
			in.log.Warning("%s does not set the windows-x86_64 host tag, left unchanged", v.ToolchainFile)
		}
	}
	return nil
}

// moveTree renames src to dst, copying when they are on different volumes.
func (in *Installer) moveTree(ctx context.Context, src, dst string) error {
	err := renameDir(src, dst)
	if err == nil {
		return nil
	}
	in.log.Debug("rename %s failed (%v), copying", src, err)
	if err := resetDir(dst); err != nil {
		return err
	}
	return copyTree(ctx, src, dst)
}

func (in *Installer) makeStandalone(ctx context.Context, extractedRoot string, v *toolchain.ResolvedVariant, python string) error {
	if python == "" {
		var err error
		python, err = findPython(extractedRoot, v)
		if err != nil {
			return err
		}
	}

	cmd := runner.Command{
		Name: python,
		Args: []string{
			filepath.Join(extractedRoot, filepath.FromSlash(standaloneScript)),
			"--arch", v.NDKArch,
			"--api", strconv.Itoa(v.Config.APILevel),
			"--stl", v.Config.Stdlib,
			"--install-dir", v.PackageRoot,
		},
		Dir: extractedRoot,
	}
	in.log.Debug("running %s", cmd)
	if _, err := in.runner.Run(ctx, cmd); err != nil {
		return ndkerrors.Layout(v.PackageRoot, err)
	}
	return nil
}

// findPython prefers the interpreter bundled with the NDK.
func findPython(extractedRoot string, v *toolchain.ResolvedVariant) (string, error) {
	bundled := filepath.Join(extractedRoot, "prebuilt", v.HostTag, "bin", "python"+toolchain.ExecutableSuffix(v.Config.HostOS))
	if info, err := os.Stat(bundled); err == nil && !info.IsDir() {
		return bundled, nil
	}
	path, err := runner.FindExecutable("python3", "python")
	if err != nil {
		return "", ndkerrors.Environmentf("make_standalone_toolchain.py needs a Python interpreter: %v", err)
	}
	return path, nil
}

// removeDir removes dir, refusing empty and filesystem-root paths.
func removeDir(dir string) error {
	clean := filepath.Clean(dir)
	if clean == "" || clean == "." || clean == string(filepath.Separator) || clean == filepath.VolumeName(clean)+string(filepath.Separator) {
		return ndkerrors.Layout(dir, fmt.Errorf("refusing to use %q as package root", dir))
	}
	if err := os.RemoveAll(clean); err != nil {
		return ndkerrors.Layout(dir, err)
	}
	return nil
}

// resetDir removes dir and creates it empty.
func resetDir(dir string) error {
	if err := removeDir(dir); err != nil {
		return err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return ndkerrors.Layout(dir, err)
	}
	return nil
}

// copyTree copies src into dst, keeping file modes and symlinks.
func copyTree(ctx context.Context, src, dst string) error {
	return filepath.WalkDir(src, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return ndkerrors.Layout(path, err)
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		rel, err := filepath.Rel(src, path)
		if err != nil {
			return ndkerrors.Layout(path, err)
		}
		target := filepath.Join(dst, rel)

		info, err := d.Info()
		if err != nil {
			return ndkerrors.Layout(path, err)
		}

		switch {
		case d.IsDir():
			if err := os.MkdirAll(target, info.Mode().Perm()|0o700); err != nil {
				return ndkerrors.Layout(target, err)
			}
		case info.Mode()&fs.ModeSymlink != 0:
			link, err := os.Readlink(path)
			if err != nil {
				return ndkerrors.Layout(path, err)
			}
			if err := os.Symlink(link, target); err != nil {
				return ndkerrors.Layout(target, err)
			}
		case info.Mode().IsRegular():
			if err := copyFile(path, target, info.Mode().Perm()); err != nil {
				return ndkerrors.Layout(target, err)
			}
		}
		return nil
	})
}

func copyFile(src, dst string, perm fs.FileMode) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, perm)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	if err := out.Close(); err != nil {
		return err
	}
	return os.Chmod(dst, perm)
}

// isLicenseFile reports whether a top-level NDK file carries license terms.
func isLicenseFile(name string) bool {
	upper := strings.ToUpper(name)
	return strings.HasPrefix(upper, "NOTICE") || strings.HasPrefix(upper, "LICENSE")
}

// copyLicenses copies the NDK's top-level license and notice files into dst.
func copyLicenses(extractedRoot, dst string) error {
	entries, err := os.ReadDir(extractedRoot)
	if err != nil {
		return ndkerrors.Layout(extractedRoot, err)
	}
	if err := os.MkdirAll(dst, 0o755); err != nil {
		return ndkerrors.Layout(dst, err)
	}
	for _, e := range entries {
		if e.IsDir() || !isLicenseFile(e.Name()) {
			continue
		}
		if err := copyFile(filepath.Join(extractedRoot, e.Name()), filepath.Join(dst, e.Name()), 0o644); err != nil {
			return ndkerrors.Layout(dst, err)
		}
	}
	return nil
}

// PatchCMakeHostTag points the CMake toolchain file at the 32-bit Windows
// prebuilt directory. It reports whether the file was changed.
func PatchCMakeHostTag(toolchainFile string) (bool, error) {
	data, err := os.ReadFile(toolchainFile)
	if err != nil {
		return false, ndkerrors.Layout(toolchainFile, err)
	}
	if !bytes.Contains(data, []byte(cmakeHostTag64)) {
		return false, nil
	}
	info, err := os.Stat(toolchainFile)
	if err != nil {
		return false, ndkerrors.Layout(toolchainFile, err)
	}
	patched := bytes.ReplaceAll(data, []byte(cmakeHostTag64), []byte(cmakeHostTag32))
	if err := os.WriteFile(toolchainFile, patched, info.Mode().Perm()); err != nil {
		return false, ndkerrors.Layout(toolchainFile, err)
	}
	return true, nil
}
