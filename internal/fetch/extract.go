package fetch

import (
	"archive/zip"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	ndkerrors "github.com/AndreyAkinshin/ndkpkg/internal/errors"
)

// Extract unpacks a zip archive into dest, keeping entry modes and symlinks.
// Entries that would land outside dest are rejected. When the archive holds a
// single top-level directory, its path is returned; otherwise dest.
func Extract(ctx context.Context, archivePath, dest string) (string, error) {
	r, err := zip.OpenReader(archivePath)
	if err != nil {
		if r != nil {
			r.Close()
		}
		return "", ndkerrors.Integrity(archivePath, fmt.Sprintf("cannot open archive: %v", err))
	}
	defer r.Close()

	if err := os.MkdirAll(dest, 0o755); err != nil {
		return "", ndkerrors.Layout(dest, err)
	}

	for _, f := range r.File {
		if err := ctx.Err(); err != nil {
			return "", err
		}

		target, err := entryPath(dest, f.Name)
		if err != nil {
			return "", ndkerrors.Integrity(archivePath, err.Error())
		}

		mode := f.Mode()
		switch {
		case mode.IsDir():
			if err := os.MkdirAll(target, 0o755); err != nil {
				return "", ndkerrors.Layout(target, err)
			}
		case mode&os.ModeSymlink != 0:
			if err := extractSymlink(f, dest, target); err != nil {
				return "", err
			}
		default:
			if err := extractFile(f, target); err != nil {
				return "", ndkerrors.Layout(target, err)
			}
		}
	}

	return topLevelDir(dest)
}

// entryPath maps an archive entry name to a path under dest.
func entryPath(dest, name string) (string, error) {
	if name == "" || filepath.IsAbs(name) || strings.HasPrefix(name, "/") || filepath.VolumeName(name) != "" {
		return "", fmt.Errorf("archive entry %q has an absolute path", name)
	}
	target := filepath.Join(dest, filepath.FromSlash(name))
	if !within(dest, target) {
		return "", fmt.Errorf("archive entry %q escapes the destination directory", name)
	}
	return target, nil
}

func within(root, path string) bool {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

func extractFile(f *zip.File, target string) error {
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return err
	}

	perm := f.Mode().Perm()
	if perm == 0 {
		perm = 0o644
	}

	src, err := f.Open()
	if err != nil {
		return err
	}
	defer src.Close()

	out, err := os.OpenFile(target, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, perm)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, src); err != nil {
		out.Close()
		return err
	}
	if err := out.Close(); err != nil {
		return err
	}
	// OpenFile applies the umask; restore the recorded bits.
	return os.Chmod(target, perm)
}

func extractSymlink(f *zip.File, dest, target string) error {
	src, err := f.Open()
	if err != nil {
		return ndkerrors.Layout(target, err)
	}
	link, err := io.ReadAll(io.LimitReader(src, 4096))
	src.Close()
	if err != nil {
		return ndkerrors.Layout(target, err)
	}

	linkTarget := filepath.FromSlash(string(link))
	resolved := linkTarget
	if !filepath.IsAbs(resolved) {
		resolved = filepath.Join(filepath.Dir(target), linkTarget)
	}
	if filepath.IsAbs(linkTarget) || !within(dest, resolved) {
		return ndkerrors.Integrity(target, fmt.Sprintf("symlink %q points outside the destination directory", f.Name))
	}

	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return ndkerrors.Layout(target, err)
	}
	_ = os.Remove(target)
	if err := os.Symlink(linkTarget, target); err != nil {
		return ndkerrors.Layout(target, err)
	}
	return nil
}

func topLevelDir(dest string) (string, error) {
	entries, err := os.ReadDir(dest)
	if err != nil {
		return "", ndkerrors.Layout(dest, err)
	}
	if len(entries) == 1 && entries[0].IsDir() {
		return filepath.Join(dest, entries[0].Name()), nil
	}
	return dest, nil
}
