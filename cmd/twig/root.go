package main

import (
	"fmt"

	"github.com/4thel00z/twig/internal"
	"github.com/spf13/cobra"
)

func NewRootCmd(version string, a *app) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "twig",
		Short:         "In-memory commit graph playground",
		Long:          `A tiny version-control model: commits, branches and history kept in memory for one session.`,
		Version:       version,
		SilenceErrors: true,
		SilenceUsage:  true,
		Run: func(cmd *cobra.Command, _ []string) {
			_ = cmd.Help()
		},
	}

	addPersistentFlags(rootCmd)
	setHelpWithExternals(rootCmd)

	if a != nil {
		addSubcommands(rootCmd, a)
	}

	return rootCmd
}

func addPersistentFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().String("config", "", "Path to config file (default: nearest "+internal.ConfigFileName+" or ~/"+internal.ConfigFileName+")")
	cmd.PersistentFlags().Bool("debug", false, "Enable debug logging")
	cmd.PersistentFlags().Bool("no-color", false, "Disable coloured output")
}

func addSubcommands(root *cobra.Command, a *app) {
	for _, command := range internal.Commands() {
		root.AddCommand(NewSessionCmd(command, a))
	}

	root.AddCommand(
		NewRunCmd(a),
		NewShellCmd(a),
		NewConfigCmd(a),
	)
}

func isBuiltin(name string) bool {
	switch name {
	case "run", "shell", "config", "help", "completion":
		return true
	}
	for _, command := range internal.Commands() {
		if command.Name == name {
			return true
		}
	}
	return false
}

func setHelpWithExternals(cmd *cobra.Command) {
	defaultHelp := cmd.HelpFunc()

	cmd.SetHelpFunc(func(c *cobra.Command, args []string) {
		defaultHelp(c, args)
		printExternalCommands(c)
	})
}

func printExternalCommands(cmd *cobra.Command) {
	externals := listExternalCommands()
	if len(externals) == 0 {
		return
	}

	fmt.Fprintln(cmd.OutOrStdout(), "\nExternal commands (twig-*):")
	for _, name := range externals {
		fmt.Fprintf(cmd.OutOrStdout(), "  %s\n", name)
	}
}
