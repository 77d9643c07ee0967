package main

import (
	"github.com/4thel00z/twig/internal"
	"github.com/spf13/cobra"
)

// NewSessionCmd exposes one session command. Arguments use the -flag value...
// convention, so cobra flag parsing is disabled.
func NewSessionCmd(command internal.CommandSpec, a *app) *cobra.Command {
	return &cobra.Command{
		Use:                command.Usage,
		Short:              command.Short,
		Long:               command.Short + ". The repository lives only for this invocation; use 'twig run' to chain commands.",
		DisableFlagParsing: true,
		RunE:               makeSessionRunner(command.Name, a),
	}
}

func makeSessionRunner(name string, a *app) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		for _, arg := range args {
			if arg == "-h" || arg == "--help" {
				return cmd.Help()
			}
		}

		rest, g, err := splitGlobals(args)
		if err != nil {
			return err
		}
		if err := a.load(g); err != nil {
			return err
		}

		session := a.newSession(cmd.OutOrStdout())
		return session.Exec(cmd.Context(), append([]string{name}, rest...))
	}
}
