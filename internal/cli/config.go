package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/AndreyAkinshin/ndkpkg/internal/config"
	ndkerrors "github.com/AndreyAkinshin/ndkpkg/internal/errors"
	"github.com/AndreyAkinshin/ndkpkg/internal/toolchain"
)

func (a *app) newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect the project configuration",
	}
	cmd.AddCommand(a.newConfigValidateCmd())
	cmd.AddCommand(a.newConfigShowCmd())
	return cmd
}

func (a *app) newConfigValidateCmd() *cobra.Command {
	var flags configFlags
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Check the configuration without downloading anything",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, root, err := a.loadConfig(cmd, &flags)
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
			loc, err := resolver.Locate(bc)
			if err != nil {
				return err
			}

			w := a.writer()
			w.Success("Configuration is valid.")
			w.SummaryItem("Project", root)
			w.SummaryItem("Configuration", bc.String())
			w.SummaryItem("Archive", loc.URL)
			if loc.HasChecksum() {
				w.SummaryItem("Checksum", fmt.Sprintf("%s %s", loc.Algorithm, loc.Checksum))
			} else {
				w.SummaryItem("Checksum", "none")
			}
			if cfg.Mirror != nil {
				w.SummaryItem("Mirror", cfg.Mirror.Endpoint+"/"+cfg.Mirror.Bucket)
			}
			return nil
		},
	}
	flags.bind(cmd)
	return cmd
}

func (a *app) newConfigShowCmd() *cobra.Command {
	var flags configFlags
	var format string
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration after environment and defaults",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, _, err := a.loadConfig(cmd, &flags)
			if err != nil {
				return err
			}
			shown := redacted(cfg)
			if a.jsonOutput {
				format = "json"
			}
			switch format {
			case "json":
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(shown)
			case "yaml":
				var node map[string]interface{}
				data, err := json.Marshal(shown)
				if err != nil {
					return err
				}
				if err := json.Unmarshal(data, &node); err != nil {
					return err
				}
				enc := yaml.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent(2)
				if err := enc.Encode(node); err != nil {
					return err
				}
				return enc.Close()
			default:
				return ndkerrors.Configf("--format: unknown format %q (want json or yaml)", format)
			}
		},
	}
	flags.bind(cmd)
	cmd.Flags().StringVar(&format, "format", "json", "Output format: json, yaml")
	return cmd
}

// redacted returns a copy of cfg with the mirror secret hidden.
func redacted(cfg *config.Config) *config.Config {
	c := *cfg
	if cfg.Mirror != nil && cfg.Mirror.SecretKey != "" {
		m := *cfg.Mirror
		m.SecretKey = "********"
		c.Mirror = &m
	}
	return &c
}
