package main

import (
	"fmt"

	"github.com/4thel00z/twig/internal"
	"github.com/google/shlex"
	"github.com/spf13/cobra"
)

const shellPrompt = "twig> "

func NewShellCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "shell",
		Short: "Interactive prompt against one repository",
		Long:  `Read commands one per line and run them against a single in-memory repository. Type "exit" to quit.`,
		Args:  cobra.NoArgs,
		RunE:  makeShellRunner(a),
	}
}

func makeShellRunner(a *app) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, _ []string) error {
		if err := a.load(globalsFromFlags(cmd)); err != nil {
			return err
		}

		session := a.newSession(cmd.OutOrStdout())
		scanner := internal.NewLineScanner(cmd.InOrStdin())

		for {
			fmt.Fprint(cmd.OutOrStdout(), shellPrompt)
			if !scanner.Scan() {
				fmt.Fprintln(cmd.OutOrStdout())
				return scanner.Err()
			}

			tokens, err := shlex.Split(scanner.Text())
			if err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "error: %v\n", err)
				continue
			}
			if len(tokens) == 0 {
				continue
			}
			if tokens[0] == "exit" || tokens[0] == "quit" {
				return nil
			}

			if err := session.Exec(cmd.Context(), tokens); err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "error: %v\n", err)
			}
		}
	}
}
