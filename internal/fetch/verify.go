package fetch

import (
	"crypto/sha1"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"hash"
	"io"
	"os"
	"strings"

	ndkerrors "github.com/AndreyAkinshin/ndkpkg/internal/errors"
	"github.com/AndreyAkinshin/ndkpkg/internal/toolchain"
)

var hashes = map[string]func() hash.Hash{
	"sha1":   sha1.New,
	"sha256": sha256.New,
}

// Digest returns the hex digest of a file.
func Digest(path, algorithm string) (string, error) {
	newHash, ok := hashes[strings.ToLower(algorithm)]
	if !ok {
		return "", fmt.Errorf("unsupported digest algorithm %q", algorithm)
	}

	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	h := newHash()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// Verify checks a downloaded archive against its recorded checksum.
// Without a recorded checksum the archive is accepted only when the
// profile does not require one.
func Verify(path string, loc toolchain.ArchiveLocation) error {
	if !loc.HasChecksum() {
		if loc.Policy == toolchain.ChecksumRequired {
			return ndkerrors.Integrity(path, fmt.Sprintf("no checksum recorded for %s", loc.FileName))
		}
		return nil
	}

	algorithm := loc.Algorithm
	if algorithm == "" {
		algorithm = "sha1"
	}
	got, err := Digest(path, algorithm)
	if err != nil {
		return ndkerrors.Integrity(path, fmt.Sprintf("cannot compute %s digest: %v", algorithm, err))
	}
	if !strings.EqualFold(got, loc.Checksum) {
		return ndkerrors.Integrity(path, fmt.Sprintf("%s mismatch: expected %s, got %s", algorithm, strings.ToLower(loc.Checksum), got))
	}
	return nil
}
