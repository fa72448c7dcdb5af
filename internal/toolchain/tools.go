package toolchain

import (
	"path/filepath"
	"strconv"
)

// Tool is one executable published to downstream builds.
type Tool struct {
	Var      string // published variable name, e.g. "CC"
	Name     string // executable base name, e.g. "clang"
	Compiler bool   // compiler front ends are wrapper scripts named by API level
}

// Tools is the canonical tool list in publish order.
var Tools = []Tool{
	{Var: "CC", Name: "clang", Compiler: true},
	{Var: "CXX", Name: "clang++", Compiler: true},
	{Var: "LD", Name: "ld"},
	{Var: "AR", Name: "ar"},
	{Var: "AS", Name: "as"},
	{Var: "RANLIB", Name: "ranlib"},
	{Var: "STRIP", Name: "strip"},
	{Var: "NM", Name: "nm"},
	{Var: "ADDR2LINE", Name: "addr2line"},
	{Var: "OBJCOPY", Name: "objcopy"},
	{Var: "OBJDUMP", Name: "objdump"},
	{Var: "READELF", Name: "readelf"},
	{Var: "ELFEDIT", Name: "elfedit"},
}

// LookupTool returns the tool published under a variable name.
func LookupTool(varName string) (Tool, bool) {
	for _, t := range Tools {
		if t.Var == varName {
			return t, true
		}
	}
	return Tool{}, false
}

// ToolDescriptor is a resolved tool executable.
type ToolDescriptor struct {
	LogicalName    string
	BinaryFileName string
	ResolvedPath   string
}

// ToolBinaryName returns the executable file name of a tool.
//
// Compiler front ends are wrapper scripts: the standalone epoch names them
// <gnu-triplet>-clang, the versioned epoch <clang-triplet><api>-clang, both
// with a .cmd suffix on Windows. Every other tool is <gnu-triplet>-<tool>
// with an .exe suffix on Windows.
func (n NamingEpoch) ToolBinaryName(tool Tool, t Triplets, api int, host HostOS) string {
	if !tool.Compiler {
		return t.LLVM + "-" + tool.Name + ExecutableSuffix(host)
	}
	switch n {
	case NamingVersioned:
		return t.Clang + strconv.Itoa(api) + "-" + tool.Name + ScriptSuffix(host)
	default:
		return t.LLVM + "-" + tool.Name + ScriptSuffix(host)
	}
}

// ToolBinaryName returns the executable file name of a tool under this profile.
func (p *Profile) ToolBinaryName(tool Tool, t Triplets, api int, host HostOS) string {
	return p.Naming.ToolBinaryName(tool, t, api, host)
}

// ToolDescriptors resolves every canonical tool inside the variant's bin directory.
func (v *ResolvedVariant) ToolDescriptors() []ToolDescriptor {
	tools := make([]ToolDescriptor, 0, len(Tools))
	for _, tool := range Tools {
		name := v.Profile.ToolBinaryName(tool, v.Triplets(), v.Config.APILevel, v.Config.HostOS)
		tools = append(tools, ToolDescriptor{
			LogicalName:    tool.Var,
			BinaryFileName: name,
			ResolvedPath:   filepath.Join(v.BinDir, name),
		})
	}
	return tools
}

// Tool returns the descriptor for one variable name.
func (v *ResolvedVariant) Tool(varName string) (ToolDescriptor, bool) {
	for _, d := range v.ToolDescriptors() {
		if d.LogicalName == varName {
			return d, true
		}
	}
	return ToolDescriptor{}, false
}
