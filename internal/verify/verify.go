// Package verify checks that binaries built with an installed toolchain target
// the expected architecture, using the toolchain's own readelf.
package verify

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"strings"

	ndkerrors "github.com/AndreyAkinshin/ndkpkg/internal/errors"
	"github.com/AndreyAkinshin/ndkpkg/internal/runner"
	"github.com/AndreyAkinshin/ndkpkg/internal/toolchain"
)

// Header is the part of an ELF header that identifies the target.
type Header struct {
	Machine string
	Class   string
}

var expected = map[toolchain.Arch]Header{
	toolchain.ArchARMv7:  {Machine: "ARM", Class: "ELF32"},
	toolchain.ArchARMv8:  {Machine: "AArch64", Class: "ELF64"},
	toolchain.ArchX86:    {Machine: "Intel 80386", Class: "ELF32"},
	toolchain.ArchX86_64: {Machine: "Advanced Micro Devices X86-64", Class: "ELF64"},
	toolchain.ArchMIPS:   {Machine: "MIPS R3000", Class: "ELF32"},
	toolchain.ArchMIPS64: {Machine: "MIPS R3000", Class: "ELF64"},
}

// ExpectedHeader returns the header readelf reports for binaries of arch.
func ExpectedHeader(arch toolchain.Arch) (Header, error) {
	h, ok := expected[arch]
	if !ok {
		return Header{}, &toolchain.ConfigError{
			Reason: toolchain.UnsupportedArchitecture,
			Field:  "target.arch",
			Value:  string(arch),
			Detail: "no ELF header known",
		}
	}
	return h, nil
}

// ParseHeader extracts the machine and class from `readelf -h` output.
func ParseHeader(out []byte) (Header, error) {
	var h Header
	scanner := bufio.NewScanner(bytes.NewReader(out))
	for scanner.Scan() {
		key, value, ok := strings.Cut(scanner.Text(), ":")
		if !ok {
			continue
		}
		switch strings.TrimSpace(key) {
		case "Machine":
			h.Machine = strings.TrimSpace(value)
		case "Class":
			h.Class = strings.TrimSpace(value)
		}
	}
	if err := scanner.Err(); err != nil {
		return Header{}, err
	}
	if h.Machine == "" || h.Class == "" {
		return Header{}, fmt.Errorf("readelf output has no Machine or Class line")
	}
	return h, nil
}

// MismatchError reports a binary built for the wrong target.
type MismatchError struct {
	Binary string
	Want   Header
	Got    Header
}

func (e *MismatchError) Error() string {
	return fmt.Sprintf("%s: built for %s (%s), want %s (%s)", e.Binary, e.Got.Machine, e.Got.Class, e.Want.Machine, e.Want.Class)
}

// ExitCode reports verification failures as integrity errors.
func (e *MismatchError) ExitCode() int {
	return ndkerrors.ExitIntegrityError
}

// Check runs readelf on binary and compares its header with arch.
func Check(ctx context.Context, r runner.Runner, readelf, binary string, arch toolchain.Arch) error {
	want, err := ExpectedHeader(arch)
	if err != nil {
		return err
	}

	res, err := r.Run(ctx, runner.Command{Name: readelf, Args: []string{"-h", binary}})
	if err != nil {
		return ndkerrors.Wrap(err, "readelf failed")
	}
	got, err := ParseHeader(res.Stdout)
	if err != nil {
		return ndkerrors.Wrap(err, binary)
	}
	if got != want {
		return &MismatchError{Binary: binary, Want: want, Got: got}
	}
	return nil
}
