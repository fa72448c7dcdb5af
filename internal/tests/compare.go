package tests

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"
)

// Normalize rewrites an actual value for comparison: the package root becomes
// RootPlaceholder and separators become forward slashes.
func Normalize(value, root string) string {
	if root != "" && strings.HasPrefix(value, root) {
		value = RootPlaceholder + value[len(root):]
	}
	return filepath.ToSlash(value)
}

// Compare checks actual published values against a case. Keys not named by
// the case are ignored. It returns false and one line per difference on mismatch.
func Compare(c Case, actual map[string]string, root string) (bool, string) {
	var diffs []string

	keys := make([]string, 0, len(c.Output))
	for key := range c.Output {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		want := c.Output[key]
		got, ok := actual[key]
		if !ok {
			diffs = append(diffs, fmt.Sprintf("%s: expected %q, not published", key, want))
			continue
		}
		if got = Normalize(got, root); got != want {
			diffs = append(diffs, fmt.Sprintf("%s: expected %q, got %q", key, want, got))
		}
	}
	for _, key := range c.Absent {
		if got, ok := actual[key]; ok {
			diffs = append(diffs, fmt.Sprintf("%s: expected absent, got %q", key, got))
		}
	}

	if len(diffs) == 0 {
		return true, ""
	}
	return false, strings.Join(diffs, "\n")
}
