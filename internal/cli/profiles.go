package cli

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/AndreyAkinshin/ndkpkg/internal/config"
	ndkerrors "github.com/AndreyAkinshin/ndkpkg/internal/errors"
	"github.com/AndreyAkinshin/ndkpkg/internal/toolchain"
)

type profileView struct {
	Revision      string   `json:"revision"`
	Layout        string   `json:"layout"`
	Naming        string   `json:"naming"`
	Checksum      string   `json:"checksum"`
	MinAPI        int      `json:"min_api"`
	MaxAPI        int      `json:"max_api"`
	Min64BitAPI   int      `json:"min_64bit_api"`
	Compiler      string   `json:"compiler"`
	Stdlibs       []string `json:"stdlibs"`
	DefaultStdlib string   `json:"default_stdlib"`
	X86Hosts      []string `json:"x86_hosts"`
	Arches        []string `json:"arches"`
	ToolchainFile string   `json:"toolchain_file,omitempty"`
}

func newProfileView(p *toolchain.Profile) profileView {
	view := profileView{
		Revision:      p.Revision,
		Layout:        p.Layout.String(),
		Naming:        p.Naming.String(),
		Checksum:      p.Checksum.String(),
		MinAPI:        p.MinAPI,
		MaxAPI:        p.MaxAPI,
		Min64BitAPI:   p.Min64BitAPI,
		Compiler:      p.DefaultCompiler,
		Stdlibs:       append([]string(nil), p.Stdlibs...),
		DefaultStdlib: p.DefaultStdlib,
		X86Hosts:      []string{},
		ToolchainFile: p.ToolchainFile,
	}
	for _, h := range p.X86Hosts {
		view.X86Hosts = append(view.X86Hosts, string(h))
	}
	for _, arch := range p.Arches {
		view.Arches = append(view.Arches, string(arch))
	}
	return view
}

func (a *app) newProfilesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "profiles",
		Short: "List the supported NDK revisions and their rules",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var views []profileView
			for _, p := range toolchain.Profiles() {
				views = append(views, newProfileView(p))
			}
			if a.jsonOutput {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(views)
			}

			rows := make([][]string, 0, len(views))
			for _, v := range views {
				x86 := strings.Join(v.X86Hosts, ", ")
				if x86 == "" {
					x86 = "-"
				}
				rows = append(rows, []string{
					v.Revision,
					v.Layout,
					v.Checksum,
					fmt.Sprintf("%d-%d", v.MinAPI, v.MaxAPI),
					"clang " + v.Compiler,
					strings.Join(v.Stdlibs, ", "),
					x86,
				})
			}
			a.writer().Table([]string{"REVISION", "LAYOUT", "CHECKSUM", "API", "COMPILER", "STDLIBS", "X86 HOSTS"}, rows)
			return nil
		},
	}
}

type matrixOptions struct {
	revision string
	hostOS   string
	hostArch string
	api      int
}

func (a *app) newMatrixCmd() *cobra.Command {
	opts := &matrixOptions{}
	cmd := &cobra.Command{
		Use:   "matrix",
		Short: "List the valid configurations of a revision for one host",
		Long: "Matrix lists one configuration per target architecture that the revision\n" +
			"accepts on the given host and API level.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runMatrix(cmd, opts)
		},
	}
	host, hostArch := toolchain.CurrentHost()
	cmd.Flags().StringVar(&opts.revision, "revision", toolchain.DefaultRevision, "NDK revision")
	cmd.Flags().StringVar(&opts.hostOS, "host-os", string(host), "Host OS")
	cmd.Flags().StringVar(&opts.hostArch, "host-arch", string(hostArch), "Host architecture")
	cmd.Flags().IntVar(&opts.api, "api", config.DefaultAPILevel, "Target Android API level")
	return cmd
}

func (a *app) runMatrix(cmd *cobra.Command, opts *matrixOptions) error {
	p, err := toolchain.LookupProfile(opts.revision)
	if err != nil {
		return err
	}
	host, err := toolchain.ParseHostOS(opts.hostOS)
	if err != nil {
		return ndkerrors.Configf("--host-os: %v", err)
	}
	hostArch, err := toolchain.ParseHostArch(opts.hostArch)
	if err != nil {
		return ndkerrors.Configf("--host-arch: %v", err)
	}

	configs := toolchain.Matrix(p, host, hostArch, opts.api)

	if a.jsonOutput {
		type entry struct {
			Revision string `json:"revision"`
			HostOS   string `json:"host_os"`
			HostArch string `json:"host_arch"`
			Arch     string `json:"arch"`
			API      int    `json:"api"`
			Compiler string `json:"compiler"`
			Stdlib   string `json:"stdlib"`
		}
		entries := make([]entry, 0, len(configs))
		for _, c := range configs {
			entries = append(entries, entry{
				Revision: c.Revision,
				HostOS:   string(c.HostOS),
				HostArch: string(c.HostArch),
				Arch:     string(c.TargetArch),
				API:      c.APILevel,
				Compiler: c.CompilerVersion,
				Stdlib:   c.Stdlib,
			})
		}
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(entries)
	}

	w := a.writer()
	if len(configs) == 0 {
		w.Warning("no valid configuration for %s on %s/%s at API %d", p.Revision, host, hostArch, opts.api)
		return nil
	}
	rows := make([][]string, 0, len(configs))
	for _, c := range configs {
		rows = append(rows, []string{string(c.TargetArch), strconv.Itoa(c.APILevel), c.CompilerVersion, c.Stdlib})
	}
	w.Table([]string{"ARCH", "API", "COMPILER", "STDLIB"}, rows)
	return nil
}
