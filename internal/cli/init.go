package cli

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/AndreyAkinshin/ndkpkg/internal/config"
	"github.com/AndreyAkinshin/ndkpkg/internal/output"
	"github.com/AndreyAkinshin/ndkpkg/internal/toolchain"
)

const gitignoreMarker = "# ndkpkg"

func (a *app) newInitCmd() *cobra.Command {
	var flags configFlags
	cmd := &cobra.Command{
		Use:   "init [dir]",
		Short: "Create ndkpkg.json in a project directory",
		Long: "Init writes a minimal ndkpkg.json and ignores the state directory in\n" +
			".gitignore. Existing files are left untouched.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) == 1 {
				dir = args[0]
			}
			return a.runInit(cmd, dir, &flags)
		},
	}
	flags.bind(cmd)
	return cmd
}

func (a *app) runInit(cmd *cobra.Command, dir string, flags *configFlags) error {
	root, err := filepath.Abs(dir)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return err
	}

	w := a.writer()
	var created []string
	configPath := filepath.Join(root, config.ConfigFileName)
	isNew := false

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		isNew = true
		cfg := &config.Config{
			Revision: toolchain.DefaultRevision,
			Target: config.TargetConfig{
				Arch: config.DefaultTargetArch,
				API:  config.DefaultAPILevel,
			},
		}
		flags.override(cmd)(cfg)
		warnings, err := config.Validate(cfg)
		for _, warning := range warnings {
			w.Warning("%s", warning)
		}
		if err != nil {
			return err
		}

		data, err := json.MarshalIndent(cfg, "", "  ")
		if err != nil {
			return err
		}
		data = append(data, '\n')
		if err := os.WriteFile(configPath, data, 0o644); err != nil {
			return err
		}
		created = append(created, config.ConfigFileName)
	} else if err != nil {
		return err
	}

	updated, err := updateGitignore(root)
	if err != nil {
		w.Warning("could not update .gitignore: %v", err)
	} else if updated {
		created = append(created, ".gitignore")
	}

	switch {
	case isNew:
		w.Success("Initialized ndkpkg project in %s", root)
	case len(created) > 0:
		w.Success("Updated ndkpkg project")
	default:
		w.Info("Project already initialized (nothing to do)")
	}

	if len(created) > 0 {
		w.Section("created")
		w.List(created)
	}
	if isNew {
		printNextSteps(w)
	}
	return nil
}

// updateGitignore appends the ndkpkg entries to .gitignore unless present.
func updateGitignore(root string) (bool, error) {
	path := filepath.Join(root, ".gitignore")

	existing := ""
	if data, err := os.ReadFile(path); err == nil {
		existing = string(data)
	} else if !os.IsNotExist(err) {
		return false, err
	}
	if strings.Contains(existing, gitignoreMarker) {
		return false, nil
	}

	var content strings.Builder
	if existing != "" {
		content.WriteString(existing)
		if !strings.HasSuffix(existing, "\n") {
			content.WriteString("\n")
		}
		content.WriteString("\n")
	}
	for _, entry := range []string{gitignoreMarker, config.DefaultStateDir + "/", config.DotEnvFileName} {
		content.WriteString(entry)
		content.WriteString("\n")
	}

	if err := os.WriteFile(path, []byte(content.String()), 0o644); err != nil {
		return false, err
	}
	return true, nil
}

func printNextSteps(w *output.Writer) {
	w.Section("next steps")
	w.Println("  1. Edit ndkpkg.json to pick the revision, target and API level")
	w.Println("  2. Run 'ndkpkg resolve' to check the configuration")
	w.Println("  3. Run 'eval \"$(ndkpkg install)\"' to install and export the toolchain")
}
