package cmd

import (
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/Aman-CERP/meshidx/internal/config"
	meshErrors "github.com/Aman-CERP/meshidx/internal/errors"
)

// newConfigCmd creates the config command group.
func newConfigCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show or initialize configuration",
	}

	cmd.AddCommand(newConfigShowCmd(a))
	cmd.AddCommand(newConfigInitCmd(a))

	return cmd
}

func newConfigShowCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration as YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			data, err := yaml.Marshal(a.cfg)
			if err != nil {
				return meshErrors.InternalError("failed to marshal config", err)
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
}

func newConfigInitCmd(a *app) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a default .meshidx.yaml",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := a.status(cmd.ErrOrStderr())
			path := filepath.Join(a.configDir, config.ProjectConfigYAML)

			if existing := config.ProjectConfigPath(a.configDir); existing != "" && !force {
				return meshErrors.New(meshErrors.ErrCodeConfigInvalid,
					"config already exists: "+existing, nil).
					WithSuggestion("use --force to overwrite (a backup is kept)")
			}

			backup, err := config.BackupFile(path)
			if err != nil {
				return meshErrors.IOFailure(path, err)
			}
			if backup != "" {
				out.Statusf("", "backed up %s to %s", path, backup)
			}

			if err := config.NewConfig().WriteYAML(path); err != nil {
				return err
			}
			out.Successf("wrote %s", path)
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing config")

	return cmd
}
