package tests

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// LoadSuite loads all cases from a suite directory.
func LoadSuite(dir, suite string) ([]Case, error) {
	suiteDir := filepath.Join(dir, suite)

	if _, err := os.Stat(suiteDir); os.IsNotExist(err) {
		return nil, fmt.Errorf("golden suite directory not found: %s", suiteDir)
	}

	matches, err := filepath.Glob(filepath.Join(suiteDir, "*.json"))
	if err != nil {
		return nil, err
	}

	cases := make([]Case, 0, len(matches))
	for _, path := range matches {
		c, err := LoadCase(path)
		if err != nil {
			return nil, fmt.Errorf("golden suite %q: %w (file: %s)", suite, err, path)
		}
		c.Suite = suite
		cases = append(cases, *c)
	}

	sort.Slice(cases, func(i, j int) bool {
		return cases[i].Name < cases[j].Name
	})
	return cases, nil
}

// LoadAll loads every suite under dir. Empty suites are skipped.
func LoadAll(dir string) (map[string][]Case, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read golden directory: %w", err)
	}

	suites := make(map[string][]Case)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		cases, err := LoadSuite(dir, entry.Name())
		if err != nil {
			return nil, err
		}
		if len(cases) > 0 {
			suites[entry.Name()] = cases
		}
	}
	return suites, nil
}

type rawCase struct {
	Input  *Input            `json:"input"`
	Output map[string]string `json:"output"`
	Absent []string          `json:"absent"`
}

// LoadCase loads a single case from a JSON file.
func LoadCase(path string) (*Case, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var raw rawCase
	dec := json.NewDecoder(strings.NewReader(string(data)))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}

	if raw.Input == nil {
		return nil, fmt.Errorf("missing required field \"input\"")
	}
	if len(raw.Output) == 0 {
		return nil, fmt.Errorf("missing required field \"output\"")
	}
	for _, key := range raw.Absent {
		if _, ok := raw.Output[key]; ok {
			return nil, fmt.Errorf("key %q is both expected and absent", key)
		}
	}

	return &Case{
		Name:   strings.TrimSuffix(filepath.Base(path), ".json"),
		Path:   path,
		Input:  *raw.Input,
		Output: raw.Output,
		Absent: raw.Absent,
	}, nil
}
