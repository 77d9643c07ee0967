package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/4thel00z/twig/internal"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func NewConfigCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect or create configuration",
	}

	cmd.AddCommand(newConfigShowCmd(a), newConfigInitCmd(a))
	return cmd
}

func newConfigShowCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.load(globalsFromFlags(cmd)); err != nil {
				return err
			}

			data, err := yaml.Marshal(a.cfg)
			if err != nil {
				return fmt.Errorf("marshal config: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "# source: %s (%s)\n", a.scope.ConfigPath, a.scope.Type)
			fmt.Fprint(cmd.OutOrStdout(), string(data))
			return nil
		},
	}
}

func newConfigInitCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a default configuration file",
		Long:  `Write a default ` + internal.ConfigFileName + ` in the current directory, or in the home directory with --global.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			isGlobal, _ := cmd.Flags().GetBool("global")
			force, _ := cmd.Flags().GetBool("force")

			var path string
			if isGlobal {
				path = a.resolver.Global().ConfigPath
			} else {
				cwd, err := os.Getwd()
				if err != nil {
					return fmt.Errorf("get working directory: %w", err)
				}
				path = filepath.Join(cwd, internal.ConfigFileName)
			}

			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("config already exists at %s (use --force to overwrite)", path)
			}

			if err := internal.SaveConfig(path, internal.DefaultConfig()); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Wrote default config to %s\n", path)
			return nil
		},
	}

	cmd.Flags().Bool("global", false, "Write ~/"+internal.ConfigFileName)
	cmd.Flags().Bool("force", false, "Overwrite an existing file")
	return cmd
}
