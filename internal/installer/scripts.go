package installer

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	ndkerrors "github.com/AndreyAkinshin/ndkpkg/internal/errors"
	"github.com/AndreyAkinshin/ndkpkg/internal/output"
)

const (
	clangScriptSuffix   = "-clang.cmd"
	clangxxScriptSuffix = "-clang++.cmd"
)

// FixWindowsCommandScripts gives every *-clang.cmd wrapper in binDir a
// matching *-clang++.cmd. The new file keeps the original C++ invocation and
// the C wrapper is rewritten to call clang.exe without -stdlib=libc++.
// Wrappers that already have a C++ twin are left alone, so running it again
// changes nothing. It returns the created files, sorted.
func FixWindowsCommandScripts(binDir string, log *output.Writer) ([]string, error) {
	if log == nil {
		log = output.Discard()
	}

	scripts, err := filepath.Glob(filepath.Join(binDir, "*"+clangScriptSuffix))
	if err != nil {
		return nil, ndkerrors.Layout(binDir, err)
	}
	sort.Strings(scripts)

	var created []string
	for _, script := range scripts {
		cxx := strings.TrimSuffix(script, clangScriptSuffix) + clangxxScriptSuffix
		if _, err := os.Stat(cxx); err == nil {
			continue
		}

		info, err := os.Stat(script)
		if err != nil {
			return created, ndkerrors.Layout(script, err)
		}
		data, err := os.ReadFile(script)
		if err != nil {
			return created, ndkerrors.Layout(script, err)
		}
		if err := os.WriteFile(cxx, data, info.Mode().Perm()); err != nil {
			return created, ndkerrors.Layout(cxx, err)
		}
		if err := os.WriteFile(script, []byte(CScriptBody(string(data))), info.Mode().Perm()); err != nil {
			return created, ndkerrors.Layout(script, err)
		}
		log.Debug("created %s", filepath.Base(cxx))
		created = append(created, cxx)
	}
	return created, nil
}

// CScriptBody turns a C++ compiler wrapper into its C counterpart.
func CScriptBody(script string) string {
	script = strings.ReplaceAll(script, "clang++.exe", "clang.exe")
	script = strings.ReplaceAll(script, " -stdlib=libc++", "")
	return strings.ReplaceAll(script, "-stdlib=libc++", "")
}
