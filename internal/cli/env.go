package cli

import (
	"github.com/spf13/cobra"

	"github.com/AndreyAkinshin/ndkpkg/internal/env"
	ndkerrors "github.com/AndreyAkinshin/ndkpkg/internal/errors"
	"github.com/AndreyAkinshin/ndkpkg/internal/installer"
)

func (a *app) newEnvCmd() *cobra.Command {
	var flags configFlags
	var format string
	cmd := &cobra.Command{
		Use:   "env",
		Short: "Print the published values of an installed package",
		Long: "Env recomputes the values for an already installed package without\n" +
			"downloading anything. Evaluate the shell format with: eval \"$(ndkpkg env)\"",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			f, err := env.ParseFormat(format)
			if err != nil {
				return ndkerrors.Config(err.Error())
			}
			v, err := a.resolveVariant(cmd, &flags)
			if err != nil {
				return err
			}
			outputs, err := installer.Publish(v, a.progress())
			if err != nil {
				a.progress().Hint("Run 'ndkpkg install' with the same configuration first.")
				return err
			}
			return outputs.Write(cmd.OutOrStdout(), f)
		},
	}
	flags.bind(cmd)
	cmd.Flags().StringVar(&format, "format", string(env.FormatShell), "Output format: shell, cmd, json, yaml")
	return cmd
}
