// Package tests loads golden resolution cases: a build configuration and the
// values an installed toolchain is expected to publish for it.
package tests

// RootPlaceholder stands for the package root in expected values.
const RootPlaceholder = "{root}"

// Input is the build configuration of a case, spelled the way ndkpkg.json spells it.
type Input struct {
	Revision string `json:"revision"`
	HostOS   string `json:"host_os"`
	HostArch string `json:"host_arch"`
	Arch     string `json:"arch"`
	API      int    `json:"api"`
	Compiler string `json:"compiler,omitempty"`
	Stdlib   string `json:"stdlib,omitempty"`
}

// Case is a single golden case loaded from JSON.
type Case struct {
	Name   string            // case name (from filename)
	Suite  string            // suite name (parent directory)
	Path   string            // full path to the case file
	Input  Input             // configuration to resolve
	Output map[string]string // expected published values; paths use forward slashes
	Absent []string          // keys that must not be published
}
