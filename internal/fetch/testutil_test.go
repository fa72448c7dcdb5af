package fetch

import (
	"archive/zip"
	"bytes"
	"crypto/sha1"
	"encoding/hex"
	"io/fs"
	"os"
	"path/filepath"
	"testing"
)

// zipEntry describes one entry of a test archive.
type zipEntry struct {
	name    string
	body    string
	mode    fs.FileMode
	symlink bool
}

// buildZip returns the bytes of a zip archive holding entries.
func buildZip(t *testing.T, entries []zipEntry) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, e := range entries {
		hdr := &zip.FileHeader{Name: e.name, Method: zip.Deflate}
		mode := e.mode
		if mode == 0 {
			mode = 0o644
		}
		if e.symlink {
			mode = fs.ModeSymlink | 0o777
		}
		hdr.SetMode(mode)
		w, err := zw.CreateHeader(hdr)
		if err != nil {
			t.Fatalf("CreateHeader(%s) error = %v", e.name, err)
		}
		if _, err := w.Write([]byte(e.body)); err != nil {
			t.Fatalf("Write(%s) error = %v", e.name, err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("zip Close() error = %v", err)
	}
	return buf.Bytes()
}

// writeZip writes a test archive into dir and returns its path.
func writeZip(t *testing.T, dir, name string, entries []zipEntry) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, buildZip(t, entries), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func sha1Hex(data []byte) string {
	sum := sha1.Sum(data)
	return hex.EncodeToString(sum[:])
}

// ndkEntries is a minimal NDK-shaped archive.
var ndkEntries = []zipEntry{
	{name: "android-ndk-r21e/", mode: fs.ModeDir | 0o755},
	{name: "android-ndk-r21e/NOTICE", body: "notice"},
	{name: "android-ndk-r21e/build/cmake/android.toolchain.cmake", body: "set(ANDROID_HOST_TAG linux-x86_64)\n"},
	{name: "android-ndk-r21e/toolchains/llvm/prebuilt/linux-x86_64/bin/clang", body: "\x7fELF", mode: 0o755},
}
