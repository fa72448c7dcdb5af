// Package fetch downloads, verifies and unpacks NDK archives.
package fetch

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	ndkerrors "github.com/AndreyAkinshin/ndkpkg/internal/errors"
	"github.com/AndreyAkinshin/ndkpkg/internal/output"
	"github.com/AndreyAkinshin/ndkpkg/internal/toolchain"
)

// Fetcher retrieves an archive into a local file.
type Fetcher interface {
	Fetch(ctx context.Context, loc toolchain.ArchiveLocation, dest string) error
}

// Store keeps verified archives in a cache directory.
type Store struct {
	fetcher  Fetcher
	cacheDir string
	log      *output.Writer
}

// NewStore creates a store backed by fetcher. A nil log discards messages.
func NewStore(fetcher Fetcher, cacheDir string, log *output.Writer) *Store {
	if log == nil {
		log = output.Discard()
	}
	return &Store{fetcher: fetcher, cacheDir: cacheDir, log: log}
}

// CachePath returns where the archive is kept once downloaded.
func (s *Store) CachePath(loc toolchain.ArchiveLocation) string {
	return filepath.Join(s.cacheDir, loc.FileName)
}

// Archive returns the path of a verified local copy of the archive.
// A cached copy is reused when it passes verification; otherwise the archive
// is downloaded next to the cache entry and moved into place once verified.
func (s *Store) Archive(ctx context.Context, loc toolchain.ArchiveLocation) (string, error) {
	path := s.CachePath(loc)

	if info, err := os.Stat(path); err == nil && info.Mode().IsRegular() {
		if err := Verify(path, loc); err == nil {
			s.log.Debug("using cached archive %s", path)
			return path, nil
		}
		s.log.Warning("cached archive %s failed verification, downloading again", path)
	}

	if err := os.MkdirAll(s.cacheDir, 0o755); err != nil {
		return "", ndkerrors.Download(loc.URL, fmt.Errorf("create cache directory: %w", err))
	}

	tmp, err := os.CreateTemp(s.cacheDir, loc.FileName+".*.part")
	if err != nil {
		return "", ndkerrors.Download(loc.URL, fmt.Errorf("create temporary file: %w", err))
	}
	tmpPath := tmp.Name()
	_ = tmp.Close()

	s.log.Debug("downloading %s", loc.URL)
	if err := s.fetcher.Fetch(ctx, loc, tmpPath); err != nil {
		_ = os.Remove(tmpPath)
		return "", err
	}
	if err := Verify(tmpPath, loc); err != nil {
		_ = os.Remove(tmpPath)
		return "", err
	}
	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return "", ndkerrors.Download(loc.URL, fmt.Errorf("store archive: %w", err))
	}
	return path, nil
}

// FetchAndExtract obtains a verified archive and unpacks it under workDir.
// It returns the extracted NDK root (e.g. <workDir>/android-ndk-r21e-linux-x86_64/android-ndk-r21e).
func (s *Store) FetchAndExtract(ctx context.Context, loc toolchain.ArchiveLocation, workDir string) (string, error) {
	archive, err := s.Archive(ctx, loc)
	if err != nil {
		return "", err
	}

	dest := filepath.Join(workDir, strings.TrimSuffix(loc.FileName, filepath.Ext(loc.FileName)))
	if err := os.RemoveAll(dest); err != nil {
		return "", ndkerrors.Layout(dest, err)
	}
	s.log.Debug("extracting %s to %s", archive, dest)
	return Extract(ctx, archive, dest)
}
