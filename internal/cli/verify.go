package cli

import (
	"github.com/spf13/cobra"

	ndkerrors "github.com/AndreyAkinshin/ndkpkg/internal/errors"
	"github.com/AndreyAkinshin/ndkpkg/internal/verify"
)

func (a *app) newVerifyCmd() *cobra.Command {
	var flags configFlags
	cmd := &cobra.Command{
		Use:   "verify <binary>...",
		Short: "Check that binaries were built for the configured target",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := a.resolveVariant(cmd, &flags)
			if err != nil {
				return err
			}
			readelf, ok := v.Tool("READELF")
			if !ok {
				return ndkerrors.NotFound("tool", "READELF")
			}

			log := a.progress()
			r := a.newRunner(log)
			w := a.writer()
			for _, binary := range args {
				if err := verify.Check(cmd.Context(), r, readelf.ResolvedPath, binary, v.Config.TargetArch); err != nil {
					return err
				}
				w.Success("%s: %s", binary, v.AndroidArchName)
			}
			return nil
		},
	}
	flags.bind(cmd)
	return cmd
}
