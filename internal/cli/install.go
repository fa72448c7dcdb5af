package cli

import (
	"github.com/spf13/cobra"

	"github.com/AndreyAkinshin/ndkpkg/internal/config"
	"github.com/AndreyAkinshin/ndkpkg/internal/env"
	ndkerrors "github.com/AndreyAkinshin/ndkpkg/internal/errors"
	"github.com/AndreyAkinshin/ndkpkg/internal/fetch"
	"github.com/AndreyAkinshin/ndkpkg/internal/installer"
	"github.com/AndreyAkinshin/ndkpkg/internal/output"
	"github.com/AndreyAkinshin/ndkpkg/internal/toolchain"
)

type installOptions struct {
	flags  configFlags
	format string
	python string
	dryRun bool
}

func (a *app) newInstallCmd() *cobra.Command {
	opts := &installOptions{}
	cmd := &cobra.Command{
		Use:   "install",
		Short: "Download, lay out and publish an NDK toolchain",
		Long: "Install validates the configuration, downloads and verifies the NDK archive,\n" +
			"lays out the package, fixes permissions and prints the published values.\n" +
			"Progress goes to stderr; the values go to stdout.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runInstall(cmd, opts)
		},
	}
	opts.flags.bind(cmd)
	cmd.Flags().StringVar(&opts.format, "format", string(env.FormatShell), "Output format: shell, cmd, json, yaml")
	cmd.Flags().StringVar(&opts.python, "python", "", "Python interpreter for make_standalone_toolchain.py")
	cmd.Flags().BoolVar(&opts.dryRun, "dry-run", false, "Resolve and print the plan without downloading")
	return cmd
}

func (a *app) runInstall(cmd *cobra.Command, opts *installOptions) error {
	format, err := env.ParseFormat(opts.format)
	if err != nil {
		return ndkerrors.Config(err.Error())
	}

	cfg, root, err := a.loadConfig(cmd, &opts.flags)
	if err != nil {
		return err
	}
	bc, err := cfg.BuildConfiguration()
	if err != nil {
		return err
	}
	resolver, err := toolchain.NewResolver(cfg.ResolverOptions())
	if err != nil {
		return err
	}
	packageRoot := config.Abs(root, cfg.PackageDir)
	cacheDir := config.Abs(root, cfg.CacheDir)

	if opts.dryRun {
		v, err := resolver.Resolve(bc, packageRoot)
		if err != nil {
			return err
		}
		printPlan(a.writer(), v, cacheDir)
		return nil
	}

	log := a.progress()
	fetcher, err := a.newFetcher(cfg, log)
	if err != nil {
		return err
	}
	store := fetch.NewStore(fetcher, cacheDir, log)
	in := installer.New(resolver, store, a.newRunner(log), log)

	res, err := in.Run(cmd.Context(), installer.Request{
		Config:      bc,
		PackageRoot: packageRoot,
		Python:      opts.python,
	})
	if err != nil {
		log.FinalFailure("Installation stopped after the %s state", res.State)
		return err
	}
	log.FinalSuccess("Installed %s into %s", res.Variant.Config, res.PackageRoot)
	return res.Outputs.Write(cmd.OutOrStdout(), format)
}

func printPlan(w *output.Writer, v *toolchain.ResolvedVariant, cacheDir string) {
	w.DryRunStart()
	w.Step(1, "Validate %s", v.Config)
	w.Step(2, "Download %s", v.Archive.URL)
	if v.Archive.HasChecksum() {
		w.StepDetail("verify %s %s", v.Archive.Algorithm, v.Archive.Checksum)
	} else {
		w.StepDetail("no checksum recorded (%s)", v.Archive.Policy)
	}
	w.StepDetail("cache in %s", cacheDir)
	if v.Profile.Layout == toolchain.LayoutNested {
		w.Step(3, "Copy the NDK into %s", v.PackageRoot)
	} else {
		w.Step(3, "Run make_standalone_toolchain.py --arch %s --api %d --stl %s", v.NDKArch, v.Config.APILevel, v.Config.Stdlib)
		w.StepDetail("install into %s", v.PackageRoot)
	}
	if v.Config.HostOS == toolchain.HostWindows {
		w.Step(4, "Add C++ command wrappers in %s", v.BinDir)
	} else {
		w.Step(4, "Set executable bits under %s", v.PackageRoot)
	}
	w.Step(5, "Publish %d tools from %s", len(v.ToolDescriptors()), v.BinDir)
	w.DryRunEnd()
}
