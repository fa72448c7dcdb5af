package installer

import (
	"bytes"
	"context"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	ndkerrors "github.com/AndreyAkinshin/ndkpkg/internal/errors"
	"github.com/AndreyAkinshin/ndkpkg/internal/output"
	"github.com/AndreyAkinshin/ndkpkg/internal/toolchain"
)

// FileKind classifies a file by its leading bytes.
type FileKind int

const (
	KindOther FileKind = iota
	KindScript
	KindELF
	KindMachO
)

func (k FileKind) String() string {
	switch k {
	case KindScript:
		return "script"
	case KindELF:
		return "elf"
	case KindMachO:
		return "mach-o"
	}
	return "other"
}

// Executable reports whether files of this kind need the execute bits.
func (k FileKind) Executable() bool {
	return k != KindOther
}

type magic struct {
	prefix []byte
	kind   FileKind
}

// magics is the fixed signature table. Mach-O covers 32/64-bit in both byte
// orders plus universal binaries.
var magics = []magic{
	{[]byte("#!"), KindScript},
	{[]byte{0x7f, 'E', 'L', 'F'}, KindELF},
	{[]byte{0xfe, 0xed, 0xfa, 0xce}, KindMachO},
	{[]byte{0xce, 0xfa, 0xed, 0xfe}, KindMachO},
	{[]byte{0xfe, 0xed, 0xfa, 0xcf}, KindMachO},
	{[]byte{0xcf, 0xfa, 0xed, 0xfe}, KindMachO},
	{[]byte{0xca, 0xfe, 0xba, 0xbe}, KindMachO},
	{[]byte{0xbe, 0xba, 0xfe, 0xca}, KindMachO},
}

const headerLen = 4

// Classify returns the kind for a file header.
func Classify(header []byte) FileKind {
	for _, m := range magics {
		if bytes.HasPrefix(header, m.prefix) {
			return m.kind
		}
	}
	return KindOther
}

func classifyFile(path string) (FileKind, error) {
	f, err := os.Open(path)
	if err != nil {
		return KindOther, err
	}
	defer f.Close()

	header := make([]byte, headerLen)
	n, err := io.ReadFull(f, header)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return KindOther, err
	}
	return Classify(header[:n]), nil
}

// FixExecutablePermissions adds the execute bits to every script, ELF and
// Mach-O file under root and returns the number of files changed. Files that
// cannot be read or changed are reported as warnings and skipped. Windows hosts
// have no execute bits, so nothing is done there.
func FixExecutablePermissions(ctx context.Context, root string, host toolchain.HostOS, log *output.Writer) (int, error) {
	if host == toolchain.HostWindows {
		return 0, nil
	}
	if log == nil {
		log = output.Discard()
	}

	changed := 0
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == root {
				return ndkerrors.Layout(root, err)
			}
			log.Warning("%v", ndkerrors.Permission(path, err))
			return nil
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if !d.Type().IsRegular() {
			return nil
		}

		ok, err := makeExecutable(path)
		if err != nil {
			log.Warning("%v", ndkerrors.Permission(path, err))
			return nil
		}
		if ok {
			changed++
		}
		return nil
	})
	return changed, err
}

// makeExecutable reports whether the file mode was changed.
func makeExecutable(path string) (bool, error) {
	kind, err := classifyFile(path)
	if err != nil || !kind.Executable() {
		return false, err
	}
	info, err := os.Stat(path)
	if err != nil {
		return false, err
	}
	mode := info.Mode().Perm()
	if mode&0o111 == 0o111 {
		return false, nil
	}
	if err := os.Chmod(path, mode|0o111); err != nil {
		return false, err
	}
	return true, nil
}
