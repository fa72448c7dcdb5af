package cli

import (
	"encoding/json"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/AndreyAkinshin/ndkpkg/internal/config"
	"github.com/AndreyAkinshin/ndkpkg/internal/toolchain"
)

type archiveView struct {
	URL       string `json:"url"`
	FileName  string `json:"file_name"`
	Checksum  string `json:"checksum,omitempty"`
	Algorithm string `json:"algorithm"`
	Policy    string `json:"checksum_policy"`
}

type toolView struct {
	Name   string `json:"name"`
	Binary string `json:"binary"`
	Path   string `json:"path"`
}

type variantView struct {
	Revision      string      `json:"revision"`
	HostOS        string      `json:"host_os"`
	HostArch      string      `json:"host_arch"`
	TargetArch    string      `json:"target_arch"`
	API           int         `json:"api"`
	Compiler      string      `json:"compiler"`
	Stdlib        string      `json:"stdlib"`
	Layout        string      `json:"layout"`
	Naming        string      `json:"naming"`
	Archive       archiveView `json:"archive"`
	AndroidABI    string      `json:"android_abi"`
	NDKArch       string      `json:"ndk_arch"`
	LLVMTriplet   string      `json:"llvm_triplet"`
	ClangTriplet  string      `json:"clang_triplet"`
	HostTag       string      `json:"host_tag"`
	PackageRoot   string      `json:"package_root"`
	InstalledRoot string      `json:"installed_root"`
	BinDir        string      `json:"bin_dir"`
	Sysroot       string      `json:"sysroot"`
	ToolchainFile string      `json:"toolchain_file,omitempty"`
	Tools         []toolView  `json:"tools"`
}

func newVariantView(v *toolchain.ResolvedVariant) variantView {
	view := variantView{
		Revision:   v.Config.Revision,
		HostOS:     string(v.Config.HostOS),
		HostArch:   string(v.Config.HostArch),
		TargetArch: string(v.Config.TargetArch),
		API:        v.Config.APILevel,
		Compiler:   v.Config.CompilerVersion,
		Stdlib:     v.Config.Stdlib,
		Layout:     v.Profile.Layout.String(),
		Naming:     v.Profile.Naming.String(),
		Archive: archiveView{
			URL:       v.Archive.URL,
			FileName:  v.Archive.FileName,
			Checksum:  v.Archive.Checksum,
			Algorithm: v.Archive.Algorithm,
			Policy:    v.Archive.Policy.String(),
		},
		AndroidABI:    v.AndroidArchName,
		NDKArch:       v.NDKArch,
		LLVMTriplet:   v.LLVMTriplet,
		ClangTriplet:  v.ClangTriplet,
		HostTag:       v.HostTag,
		PackageRoot:   v.PackageRoot,
		InstalledRoot: v.InstalledRootPath,
		BinDir:        v.BinDir,
		Sysroot:       v.SysrootPath,
		ToolchainFile: v.ToolchainFile,
	}
	for _, d := range v.ToolDescriptors() {
		view.Tools = append(view.Tools, toolView{Name: d.LogicalName, Binary: d.BinaryFileName, Path: d.ResolvedPath})
	}
	return view
}

func (a *app) newResolveCmd() *cobra.Command {
	var flags configFlags
	cmd := &cobra.Command{
		Use:   "resolve",
		Short: "Validate a configuration and print everything derived from it",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runResolve(cmd, &flags)
		},
	}
	flags.bind(cmd)
	return cmd
}

// resolveVariant loads the configuration and resolves it against the package directory.
func (a *app) resolveVariant(cmd *cobra.Command, flags *configFlags) (*toolchain.ResolvedVariant, error) {
	cfg, root, err := a.loadConfig(cmd, flags)
	if err != nil {
		return nil, err
	}
	bc, err := cfg.BuildConfiguration()
	if err != nil {
		return nil, err
	}
	resolver, err := toolchain.NewResolver(cfg.ResolverOptions())
	if err != nil {
		return nil, err
	}
	return resolver.Resolve(bc, config.Abs(root, cfg.PackageDir))
}

func (a *app) runResolve(cmd *cobra.Command, flags *configFlags) error {
	v, err := a.resolveVariant(cmd, flags)
	if err != nil {
		return err
	}
	view := newVariantView(v)

	if a.jsonOutput {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(view)
	}

	w := a.writer()
	w.Section("resolved variant")
	w.SummaryItem("Configuration", v.Config.String())
	w.SummaryItem("Compiler", view.Compiler)
	w.SummaryItem("Stdlib", view.Stdlib)
	w.SummaryItem("Layout", view.Layout+" ("+view.Naming+" naming)")
	w.SummaryItem("Archive", view.Archive.URL)
	checksum := view.Archive.Checksum
	if checksum == "" {
		checksum = "none"
	}
	w.SummaryItem("Checksum", checksum+" ("+view.Archive.Policy+")")
	w.SummaryItem("ABI", view.AndroidABI)
	w.SummaryItem("Triplets", view.LLVMTriplet+", "+view.ClangTriplet)
	w.SummaryItem("Host tag", view.HostTag)
	w.SummaryItem("Package root", view.PackageRoot)
	w.SummaryItem("Bin dir", view.BinDir)
	w.SummaryItem("Sysroot", view.Sysroot)
	if view.ToolchainFile != "" {
		w.SummaryItem("CMake toolchain", view.ToolchainFile)
	}
	w.SummaryItem("API level", strconv.Itoa(view.API))

	w.Section("tools")
	rows := make([][]string, 0, len(view.Tools))
	for _, t := range view.Tools {
		rows = append(rows, []string{t.Name, t.Binary})
	}
	w.Table([]string{"NAME", "BINARY"}, rows)
	return nil
}
