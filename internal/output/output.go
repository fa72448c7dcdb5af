// Package output formats CLI messages. Values meant for scripts go to the
// out stream; diagnostics go to the err stream.
package output

import (
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// ANSI color codes.
const (
	reset  = "\033[0m"
	bold   = "\033[1m"
	dim    = "\033[2m"
	red    = "\033[31m"
	green  = "\033[32m"
	yellow = "\033[33m"
	cyan   = "\033[36m"
)

// Writer prints messages to an out and an err stream. Quiet mode drops
// progress; verbose mode adds debug lines.
type Writer struct {
	out     io.Writer
	err     io.Writer
	color   bool
	quiet   bool
	verbose bool
}

// NewWithWriters creates a Writer over the given streams.
func NewWithWriters(out, err io.Writer, color bool) *Writer {
	return &Writer{out: out, err: err, color: color}
}

// Discard returns a Writer that drops everything.
func Discard() *Writer {
	return NewWithWriters(io.Discard, io.Discard, false)
}

// IsTerminal reports whether stdout is a terminal.
func IsTerminal() bool {
	fi, err := os.Stdout.Stat()
	return err == nil && fi.Mode()&os.ModeCharDevice != 0
}

// SetQuiet enables or disables quiet mode.
func (w *Writer) SetQuiet(quiet bool) { w.quiet = quiet }

// SetVerbose enables or disables debug messages.
func (w *Writer) SetVerbose(verbose bool) { w.verbose = verbose }

// paint wraps s in an ANSI code when color is on.
func (w *Writer) paint(code, s string) string {
	if !w.color || code == "" {
		return s
	}
	return code + s + reset
}

func (w *Writer) outln(s string) { fmt.Fprintln(w.out, s) }
func (w *Writer) errln(s string) { fmt.Fprintln(w.err, s) }

// Println writes a formatted line to the out stream.
func (w *Writer) Println(format string, args ...interface{}) {
	w.outln(fmt.Sprintf(format, args...))
}

// Info prints a plain message unless quiet.
func (w *Writer) Info(format string, args ...interface{}) {
	if !w.quiet {
		w.Println(format, args...)
	}
}

// Debug prints a dimmed line to the err stream in verbose mode.
func (w *Writer) Debug(format string, args ...interface{}) {
	if w.verbose && !w.quiet {
		w.errln(w.paint(dim, fmt.Sprintf(format, args...)))
	}
}

// Success prints a green message.
func (w *Writer) Success(format string, args ...interface{}) {
	w.outln(w.paint(green, fmt.Sprintf(format, args...)))
}

// Warning prints a "warning:" line to the err stream.
func (w *Writer) Warning(format string, args ...interface{}) {
	w.errln(w.paint(yellow, "warning: "+fmt.Sprintf(format, args...)))
}

// ErrorPrefix prints an "ndkpkg:" error line to the err stream.
func (w *Writer) ErrorPrefix(format string, args ...interface{}) {
	w.errln(w.paint(red, "ndkpkg:") + " " + fmt.Sprintf(format, args...))
}

var titleCaser = cases.Title(language.English)

// Title returns s in title case ("toolchain outputs" -> "Toolchain Outputs").
func Title(s string) string {
	return titleCaser.String(s)
}

// Section prints a blank line and a title-cased header unless quiet.
func (w *Writer) Section(title string) {
	if w.quiet {
		return
	}
	w.outln("")
	w.outln(w.paint(bold, "=== "+Title(title)+" ==="))
}

// List prints items as an indented bullet list.
func (w *Writer) List(items []string) {
	for _, item := range items {
		w.outln("  - " + item)
	}
}

// Table prints rows in left-aligned columns under a dashed header.
// Cells beyond the header count are dropped.
func (w *Writer) Table(headers []string, rows [][]string) {
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = len(h)
	}
	for _, row := range rows {
		for i := 0; i < len(row) && i < len(widths); i++ {
			widths[i] = max(widths[i], len(row[i]))
		}
	}

	line := func(cells []string) string {
		parts := make([]string, 0, len(widths))
		for i := 0; i < len(cells) && i < len(widths); i++ {
			parts = append(parts, fmt.Sprintf("%-*s", widths[i], cells[i]))
		}
		return strings.TrimRight(strings.Join(parts, "  "), " ")
	}

	dashes := make([]string, len(widths))
	for i, n := range widths {
		dashes[i] = strings.Repeat("-", n)
	}

	w.outln(line(headers))
	w.outln(line(dashes))
	for _, row := range rows {
		w.outln(line(row))
	}
}

// Step prints a numbered installation step unless quiet.
func (w *Writer) Step(num int, format string, args ...interface{}) {
	if !w.quiet {
		w.outln(w.paint(cyan, fmt.Sprintf("%d.", num)) + " " + fmt.Sprintf(format, args...))
	}
}

// StepDetail prints an indented line under a step unless quiet.
func (w *Writer) StepDetail(format string, args ...interface{}) {
	if !w.quiet {
		w.outln("   " + w.paint(dim, "- "+fmt.Sprintf(format, args...)))
	}
}

// SummaryItem prints an indented "label: value" pair.
func (w *Writer) SummaryItem(label, value string) {
	w.outln("  " + w.paint(dim, label+":") + " " + value)
}

// FinalSuccess prints a closing success line unless quiet.
func (w *Writer) FinalSuccess(format string, args ...interface{}) {
	if w.quiet {
		return
	}
	w.outln("")
	w.outln(w.paint(green, fmt.Sprintf(format, args...)))
}

// FinalFailure prints a closing failure line to the err stream.
func (w *Writer) FinalFailure(format string, args ...interface{}) {
	w.errln(w.paint(red, fmt.Sprintf(format, args...)))
}

// DryRunStart prints the dry run banner.
func (w *Writer) DryRunStart() {
	w.outln(w.paint(bold+yellow, "=== DRY RUN ==="))
	w.outln("")
}

// DryRunEnd prints the closing dry run banner.
func (w *Writer) DryRunEnd() {
	w.outln("")
	w.outln(w.paint(bold+yellow, "=== END DRY RUN ==="))
}

// Hint prints a dimmed suggestion unless quiet.
func (w *Writer) Hint(format string, args ...interface{}) {
	if !w.quiet {
		w.outln(w.paint(dim, fmt.Sprintf(format, args...)))
	}
}
