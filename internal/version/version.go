// Package version parses NDK revision strings and compiler version strings.
package version

import (
	"cmp"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// RevisionRegex validates NDK revision strings such as "r16b", "r20", "r21e".
var RevisionRegex = regexp.MustCompile(`^r(\d+)([a-z]?)$`)

// compilerRegex extracts the leading numeric components of a compiler version,
// tolerating a "clang" prefix ("clang-8", "clang 9.0.8", "8.0").
var compilerRegex = regexp.MustCompile(`^(?:clang[-_ ]?)?(\d+)(?:\.(\d+))?(?:\.(\d+))?$`)

// Revision represents a parsed NDK revision.
// Letter is 0 for the initial release of a major revision ("r20").
type Revision struct {
	Major  int
	Letter byte
}

// Validate checks if a revision string is well formed.
func Validate(revision string) error {
	if !RevisionRegex.MatchString(revision) {
		return fmt.Errorf("invalid NDK revision format: %q (expected r<major>[letter], e.g. r21e)", revision)
	}
	return nil
}

// Parse parses an NDK revision string.
func Parse(revision string) (Revision, error) {
	match := RevisionRegex.FindStringSubmatch(strings.TrimSpace(revision))
	if match == nil {
		return Revision{}, fmt.Errorf("invalid NDK revision format: %q (expected r<major>[letter], e.g. r21e)", revision)
	}

	// Error ignored: regex guarantees this capture group contains only digits
	major, _ := strconv.Atoi(match[1])

	var letter byte
	if match[2] != "" {
		letter = match[2][0]
	}
	return Revision{Major: major, Letter: letter}, nil
}

// String returns the canonical revision string.
func (r Revision) String() string {
	if r.Letter == 0 {
		return fmt.Sprintf("r%d", r.Major)
	}
	return fmt.Sprintf("r%d%c", r.Major, r.Letter)
}

// Compare returns -1, 0, or 1 comparing two revisions.
// "r20" sorts before "r20b"; letters order the point releases.
func (r Revision) Compare(other Revision) int {
	if c := cmp.Compare(r.Major, other.Major); c != 0 {
		return c
	}
	return cmp.Compare(r.Letter, other.Letter)
}

// CompareStrings parses and compares two revision strings.
func CompareStrings(a, b string) (int, error) {
	ra, err := Parse(a)
	if err != nil {
		return 0, err
	}
	rb, err := Parse(b)
	if err != nil {
		return 0, err
	}
	return ra.Compare(rb), nil
}

// CompilerVersion represents a parsed compiler version. Missing components are -1.
type CompilerVersion struct {
	Major int
	Minor int
	Patch int
}

// ParseCompiler parses a compiler version string such as "clang-8", "8.0.7" or "5.0".
func ParseCompiler(v string) (CompilerVersion, error) {
	match := compilerRegex.FindStringSubmatch(strings.ToLower(strings.TrimSpace(v)))
	if match == nil {
		return CompilerVersion{}, fmt.Errorf("invalid compiler version: %q", v)
	}

	cv := CompilerVersion{Minor: -1, Patch: -1}
	cv.Major, _ = strconv.Atoi(match[1])
	if match[2] != "" {
		cv.Minor, _ = strconv.Atoi(match[2])
	}
	if match[3] != "" {
		cv.Patch, _ = strconv.Atoi(match[3])
	}
	return cv, nil
}

// CompilerMajor returns the major component of a compiler version string.
func CompilerMajor(v string) (int, error) {
	cv, err := ParseCompiler(v)
	if err != nil {
		return 0, err
	}
	return cv.Major, nil
}
