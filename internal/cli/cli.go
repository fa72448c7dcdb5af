// Package cli provides the ndkpkg command-line interface.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/AndreyAkinshin/ndkpkg/internal/config"
	ndkerrors "github.com/AndreyAkinshin/ndkpkg/internal/errors"
	"github.com/AndreyAkinshin/ndkpkg/internal/fetch"
	"github.com/AndreyAkinshin/ndkpkg/internal/output"
	"github.com/AndreyAkinshin/ndkpkg/internal/runner"
)

// Version is set at build time.
var Version = "dev"

// app carries global flags and the dependencies commands are built from.
// Tests replace the runner, fetcher and lookup.
type app struct {
	stdout io.Writer
	stderr io.Writer
	color  bool

	quiet      bool
	verbose    bool
	jsonOutput bool
	configPath string

	runner  runner.Runner
	fetcher fetch.Fetcher
	lookup  config.LookupFunc
}

// Run executes the CLI with the given arguments and returns an exit code.
func Run(args []string) int {
	a := &app{stdout: os.Stdout, stderr: os.Stderr, color: output.IsTerminal()}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	return a.run(ctx, args)
}

func (a *app) run(ctx context.Context, args []string) int {
	cmd := a.newRootCmd()
	cmd.SetArgs(args)
	cmd.SetOut(a.stdout)
	cmd.SetErr(a.stderr)

	if err := cmd.ExecuteContext(ctx); err != nil {
		a.writer().ErrorPrefix("%v", err)
		return ndkerrors.GetExitCode(err)
	}
	return 0
}

func (a *app) newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "ndkpkg",
		Short:         "Install Android NDK toolchains and publish their build environment",
		Version:       Version,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(*cobra.Command, []string) error {
			if a.quiet && a.verbose {
				return ndkerrors.Config("--quiet and --verbose are mutually exclusive")
			}
			return nil
		},
	}

	cmd.PersistentFlags().BoolVarP(&a.quiet, "quiet", "q", false, "Only print errors and requested output")
	cmd.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "Print debug messages")
	cmd.PersistentFlags().BoolVar(&a.jsonOutput, "json", false, "Output machine-readable JSON")
	cmd.PersistentFlags().StringVar(&a.configPath, "config", "", "Path to ndkpkg.json or its directory")

	cmd.SetVersionTemplate("ndkpkg {{.Version}}\n")
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return ndkerrors.Config(err.Error())
	})

	cmd.AddCommand(a.newInstallCmd())
	cmd.AddCommand(a.newResolveCmd())
	cmd.AddCommand(a.newEnvCmd())
	cmd.AddCommand(a.newVerifyCmd())
	cmd.AddCommand(a.newProfilesCmd())
	cmd.AddCommand(a.newMatrixCmd())
	cmd.AddCommand(a.newInitCmd())
	cmd.AddCommand(a.newConfigCmd())
	cmd.AddCommand(a.newVersionCmd())

	return cmd
}

// writer returns the writer for regular command output.
func (a *app) writer() *output.Writer {
	w := output.NewWithWriters(a.stdout, a.stderr, a.color)
	w.SetQuiet(a.quiet)
	w.SetVerbose(a.verbose)
	return w
}

// progress returns a writer that sends everything to stderr, keeping stdout
// free for values meant to be evaluated by a shell.
func (a *app) progress() *output.Writer {
	w := output.NewWithWriters(a.stderr, a.stderr, a.color)
	w.SetQuiet(a.quiet)
	w.SetVerbose(a.verbose)
	return w
}

func (a *app) newRunner(log *output.Writer) runner.Runner {
	if a.runner != nil {
		return a.runner
	}
	e := &runner.Exec{Trace: func(c runner.Command) { log.Debug("$ %s", c) }}
	if a.verbose {
		e.Stdout = a.stderr
		e.Stderr = a.stderr
	}
	return e
}

// newFetcher returns the S3 mirror fetcher when one is configured, otherwise
// an HTTP fetcher.
func (a *app) newFetcher(cfg *config.Config, log *output.Writer) (fetch.Fetcher, error) {
	if a.fetcher != nil {
		return a.fetcher, nil
	}
	if s3, ok := cfg.S3Config(); ok {
		f, err := fetch.NewS3Fetcher(s3)
		if err != nil {
			return nil, err
		}
		log.Debug("using mirror %s/%s", s3.Endpoint, s3.Bucket)
		return f, nil
	}
	return fetch.NewHTTPFetcher(cfg.DownloadTimeout(), log), nil
}

// projectRoot returns the directory holding ndkpkg.json. Without --config it
// is searched upwards from the working directory, falling back to the working
// directory itself.
func (a *app) projectRoot() (string, error) {
	if a.configPath != "" {
		path, err := filepath.Abs(a.configPath)
		if err != nil {
			return "", err
		}
		info, err := os.Stat(path)
		if err != nil {
			return "", ndkerrors.Configf("--config: %v", err)
		}
		if info.IsDir() {
			return path, nil
		}
		if filepath.Base(path) != config.ConfigFileName {
			return "", ndkerrors.Configf("--config: file must be named %s", config.ConfigFileName)
		}
		return filepath.Dir(path), nil
	}

	root, err := config.FindRoot()
	if errors.Is(err, config.ErrNoProjectRoot) {
		return os.Getwd()
	}
	return root, err
}

// loadConfig assembles the effective configuration and reports warnings.
func (a *app) loadConfig(cmd *cobra.Command, flags *configFlags) (*config.Config, string, error) {
	root, err := a.projectRoot()
	if err != nil {
		return nil, "", err
	}

	opts := config.Options{Lookup: a.lookup}
	if flags != nil {
		opts.Override = flags.override(cmd)
	}
	cfg, warnings, err := config.LoadProject(root, opts)
	w := a.progress()
	for _, warning := range warnings {
		w.Warning("%s", warning)
	}
	if err != nil {
		return nil, "", &ndkerrors.NdkError{Kind: ndkerrors.KindConfig, Message: "invalid configuration", Cause: err}
	}
	return cfg, root, nil
}

func (a *app) newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			fmt.Fprintf(cmd.OutOrStdout(), "ndkpkg %s\n", Version)
			return nil
		},
	}
}
