package env

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"
)

// Format selects how outputs are written.
type Format string

const (
	FormatShell Format = "shell"
	FormatCmd   Format = "cmd"
	FormatJSON  Format = "json"
	FormatYAML  Format = "yaml"
)

// Formats lists the supported output formats.
var Formats = []Format{FormatShell, FormatCmd, FormatJSON, FormatYAML}

// ParseFormat parses a format name.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Formats {
		if f == known {
			return f, nil
		}
	}
	return "", fmt.Errorf("unknown output format %q (expected shell, cmd, json or yaml)", s)
}

type toolDocument struct {
	Name   string `json:"name" yaml:"name"`
	Binary string `json:"binary" yaml:"binary"`
	Path   string `json:"path" yaml:"path"`
}

type document struct {
	Values []Value        `json:"values" yaml:"values"`
	Tools  []toolDocument `json:"tools" yaml:"tools"`
}

func (o *Outputs) document() document {
	doc := document{Values: o.Values()}
	for _, t := range o.Tools {
		doc.Tools = append(doc.Tools, toolDocument{Name: t.LogicalName, Binary: t.BinaryFileName, Path: t.ResolvedPath})
	}
	return doc
}

// Write renders the outputs in the given format.
func (o *Outputs) Write(w io.Writer, format Format) error {
	switch format {
	case FormatShell:
		return o.writeShell(w)
	case FormatCmd:
		return o.writeCmd(w)
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(o.document())
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(o.document()); err != nil {
			return err
		}
		return enc.Close()
	}
	return fmt.Errorf("unknown output format %q", format)
}

func (o *Outputs) writeShell(w io.Writer) error {
	for _, v := range o.values {
		var err error
		if v.Append {
			_, err = fmt.Fprintf(w, "export %s=\"${%s:+${%s}:}\"%s\n", v.Key, v.Key, v.Key, shellQuote(v.Value))
		} else {
			_, err = fmt.Fprintf(w, "export %s=%s\n", v.Key, shellQuote(v.Value))
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func (o *Outputs) writeCmd(w io.Writer) error {
	for _, v := range o.values {
		var err error
		if v.Append {
			_, err = fmt.Fprintf(w, "set \"%s=%%%s%%;%s\"\n", v.Key, v.Key, v.Value)
		} else {
			_, err = fmt.Fprintf(w, "set \"%s=%s\"\n", v.Key, v.Value)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// shellQuote wraps s in single quotes for POSIX shells.
func shellQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}
