// Package env builds the named values an installed toolchain publishes to
// downstream builds.
package env

import (
	"os"
	"runtime"
	"strconv"
	"strings"

	"github.com/AndreyAkinshin/ndkpkg/internal/toolchain"
)

// Value is one published name/value pair.
// Append values extend a list variable (PATH) instead of replacing it.
type Value struct {
	Key    string `json:"key" yaml:"key"`
	Value  string `json:"value" yaml:"value"`
	Append bool   `json:"append,omitempty" yaml:"append,omitempty"`
}

// Outputs is the contract consumed by downstream build invocations.
// It is a plain value: nothing is exported into the process environment
// unless the caller does so.
type Outputs struct {
	Tools  []toolchain.ToolDescriptor
	values []Value
	index  map[string]int
}

// stlNames maps standard library choices to ANDROID_STL values.
var stlNames = map[string]string{
	"libc++":  "c++_shared",
	"gnustl":  "gnustl_shared",
	"stlport": "stlport_shared",
}

// AndroidSTL returns the ANDROID_STL value for a standard library choice.
func AndroidSTL(stdlib string) string {
	if name, ok := stlNames[stdlib]; ok {
		return name
	}
	return "c++_shared"
}

// FromVariant computes the outputs of a resolved variant.
func FromVariant(v *toolchain.ResolvedVariant) *Outputs {
	o := &Outputs{
		Tools: v.ToolDescriptors(),
		index: make(map[string]int),
	}

	o.set("NDK_ROOT", v.PackageRoot)
	o.set("ANDROID_NDK_HOME", v.PackageRoot)
	o.set("CHOST", v.LLVMTriplet)
	o.add(Value{Key: "PATH", Value: v.BinDir, Append: true})
	o.set("CONAN_CMAKE_FIND_ROOT_PATH", v.SysrootPath)
	o.set("SYSROOT", v.SysrootPath)

	for _, tool := range o.Tools {
		o.set(tool.LogicalName, tool.ResolvedPath)
	}

	o.set("ANDROID_PLATFORM", "android-"+strconv.Itoa(v.Config.APILevel))
	o.set("ANDROID_TOOLCHAIN", "clang")
	o.set("ANDROID_ABI", v.AndroidArchName)
	o.set("ANDROID_STL", AndroidSTL(v.Config.Stdlib))
	for _, mode := range []string{"PROGRAM", "LIBRARY", "INCLUDE", "PACKAGE"} {
		o.set("CMAKE_FIND_ROOT_PATH_MODE_"+mode, "BOTH")
	}
	if v.ToolchainFile != "" {
		o.set("CONAN_CMAKE_TOOLCHAIN_FILE", v.ToolchainFile)
	}

	// The MIPS64 assembler shipped with clang only works integrated.
	if v.Config.TargetArch == toolchain.ArchMIPS64 {
		o.set("CFLAGS", "-fintegrated-as")
		o.set("CXXFLAGS", "-fintegrated-as")
	}
	return o
}

func (o *Outputs) set(key, value string) {
	o.add(Value{Key: key, Value: value})
}

func (o *Outputs) add(v Value) {
	if i, ok := o.index[v.Key]; ok {
		o.values[i] = v
		return
	}
	o.index[v.Key] = len(o.values)
	o.values = append(o.values, v)
}

// Values returns the published values in publish order.
func (o *Outputs) Values() []Value {
	result := make([]Value, len(o.values))
	copy(result, o.values)
	return result
}

// Keys returns the published keys in publish order.
func (o *Outputs) Keys() []string {
	keys := make([]string, len(o.values))
	for i, v := range o.values {
		keys[i] = v.Key
	}
	return keys
}

// Get returns the value published under key.
func (o *Outputs) Get(key string) (string, bool) {
	i, ok := o.index[key]
	if !ok {
		return "", false
	}
	return o.values[i].Value, true
}

// MissingTools returns the tool paths that do not exist on disk.
func (o *Outputs) MissingTools() []string {
	var missing []string
	for _, t := range o.Tools {
		if info, err := os.Stat(t.ResolvedPath); err != nil || info.IsDir() {
			missing = append(missing, t.ResolvedPath)
		}
	}
	return missing
}

// Environ returns a copy of base with the outputs applied. Replaced keys keep
// their position; new keys are appended. Append values are joined to any
// existing value with the OS list separator.
func (o *Outputs) Environ(base []string) []string {
	result := make([]string, len(base))
	copy(result, base)

	for _, v := range o.values {
		i := lookupEnv(result, v.Key)
		switch {
		case i < 0:
			result = append(result, v.Key+"="+v.Value)
		case v.Append:
			existing := result[i][strings.IndexByte(result[i], '=')+1:]
			if existing == "" {
				result[i] = v.Key + "=" + v.Value
			} else {
				result[i] = v.Key + "=" + existing + string(os.PathListSeparator) + v.Value
			}
		default:
			result[i] = v.Key + "=" + v.Value
		}
	}
	return result
}

// lookupEnv returns the index of key in env. Keys are case-insensitive on Windows.
func lookupEnv(env []string, key string) int {
	for i, kv := range env {
		eq := strings.IndexByte(kv, '=')
		if eq < 0 {
			continue
		}
		name := kv[:eq]
		if name == key || (runtime.GOOS == "windows" && strings.EqualFold(name, key)) {
			return i
		}
	}
	return -1
}
