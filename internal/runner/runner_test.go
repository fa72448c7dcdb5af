package runner

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"runtime"
	"strings"
	"testing"
)

func TestCommand_String(t *testing.T) {
	tests := []struct {
		cmd  Command
		want string
	}{
		{Command{Name: "python"}, "python"},
		{Command{Name: "python", Args: []string{"--arch", "arm64"}}, "python --arch arm64"},
		{Command{Name: "readelf", Args: []string{"-h", "my lib.so"}}, `readelf -h "my lib.so"`},
	}

	for _, tt := range tests {
		if got := tt.cmd.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}

func TestCommandError(t *testing.T) {
	inner := errors.New("exit status 1")
	err := &CommandError{Command: "python x.py", Stderr: "boom\n", Err: inner}

	if got, want := err.Error(), "python x.py failed: exit status 1 (stderr: boom)"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
	if !errors.Is(err, inner) {
		t.Error("errors.Is(err, inner) = false, want true")
	}

	err = &CommandError{Command: "python", Err: inner}
	if got, want := err.Error(), "python failed: exit status 1"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestExec_RunCapturesAndStreams(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("uses sh")
	}
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available")
	}

	var streamed bytes.Buffer
	var traced []string
	e := &Exec{
		Stdout: &streamed,
		Trace:  func(cmd Command) { traced = append(traced, cmd.String()) },
	}

	res, err := e.Run(context.Background(), Command{
		Name: "sh",
		Args: []string{"-c", "echo $NDKPKG_TEST_VALUE"},
		Env:  []string{"NDKPKG_TEST_VALUE=hello"},
	})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if got := strings.TrimSpace(string(res.Stdout)); got != "hello" {
		t.Errorf("Stdout = %q, want %q", got, "hello")
	}
	if got := strings.TrimSpace(streamed.String()); got != "hello" {
		t.Errorf("streamed = %q, want %q", got, "hello")
	}
	if len(traced) != 1 {
		t.Errorf("traced %d commands, want 1", len(traced))
	}
}

func TestExec_RunFailure(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("uses sh")
	}
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available")
	}

	e := &Exec{}
	_, err := e.Run(context.Background(), Command{Name: "sh", Args: []string{"-c", "echo bad >&2; exit 3"}})
	var ce *CommandError
	if !errors.As(err, &ce) {
		t.Fatalf("Run() error = %v, want *CommandError", err)
	}
	if !strings.Contains(ce.Stderr, "bad") {
		t.Errorf("Stderr = %q, want to contain %q", ce.Stderr, "bad")
	}
}

func TestFindExecutable(t *testing.T) {
	orig := lookPath
	defer func() { lookPath = orig }()

	lookPath = func(name string) (string, error) {
		if name == "python" {
			return "/usr/bin/python", nil
		}
		return "", exec.ErrNotFound
	}

	got, err := FindExecutable("python3", "python")
	if err != nil {
		t.Fatalf("FindExecutable() error = %v", err)
	}
	if got != "/usr/bin/python" {
		t.Errorf("FindExecutable() = %q, want /usr/bin/python", got)
	}

	if _, err := FindExecutable("python3"); err == nil {
		t.Error("FindExecutable(python3) expected error")
	}
}
