// Package mocks provides shared test doubles for ndkpkg packages.
package mocks

import (
	"context"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/AndreyAkinshin/ndkpkg/internal/runner"
)

// Runner implements runner.Runner for testing.
// Use NewRunner() to create instances with a fluent builder API.
type Runner struct {
	outputs map[string]string
	errs    map[string]error

	// RunFunc is called by Run when set; it overrides canned outputs.
	RunFunc func(ctx context.Context, cmd runner.Command) (runner.Result, error)

	runCount int32
	mu       sync.Mutex
	calls    []runner.Command
}

// NewRunner creates a mock runner that succeeds with empty output.
func NewRunner() *Runner {
	return &Runner{
		outputs: make(map[string]string),
		errs:    make(map[string]error),
	}
}

// WithOutput sets the stdout returned for a program. Programs are matched by
// base name without extension.
func (m *Runner) WithOutput(program, stdout string) *Runner {
	m.outputs[program] = stdout
	return m
}

// WithError makes every invocation of program fail with err.
func (m *Runner) WithError(program string, err error) *Runner {
	m.errs[program] = err
	return m
}

// WithRunFunc sets the function called by Run.
func (m *Runner) WithRunFunc(fn func(ctx context.Context, cmd runner.Command) (runner.Result, error)) *Runner {
	m.RunFunc = fn
	return m
}

// Run records cmd and returns the configured result.
func (m *Runner) Run(ctx context.Context, cmd runner.Command) (runner.Result, error) {
	atomic.AddInt32(&m.runCount, 1)
	m.mu.Lock()
	m.calls = append(m.calls, cmd)
	m.mu.Unlock()

	if m.RunFunc != nil {
		return m.RunFunc(ctx, cmd)
	}
	if err := ctx.Err(); err != nil {
		return runner.Result{}, err
	}

	key := programName(cmd.Name)
	if err, ok := m.errs[key]; ok {
		return runner.Result{}, err
	}
	return runner.Result{Stdout: []byte(m.outputs[key])}, nil
}

func programName(name string) string {
	base := filepath.Base(name)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// Test inspection methods

// RunCount returns the number of times Run was called.
func (m *Runner) RunCount() int32 {
	return atomic.LoadInt32(&m.runCount)
}

// Calls returns a copy of the recorded commands in call order.
func (m *Runner) Calls() []runner.Command {
	m.mu.Lock()
	defer m.mu.Unlock()
	result := make([]runner.Command, len(m.calls))
	copy(result, m.calls)
	return result
}

// Reset clears call tracking state.
func (m *Runner) Reset() {
	atomic.StoreInt32(&m.runCount, 0)
	m.mu.Lock()
	m.calls = nil
	m.mu.Unlock()
}

var _ runner.Runner = (*Runner)(nil)
