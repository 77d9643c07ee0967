package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/4thel00z/twig/internal"
	"github.com/spf13/cobra"
)

func NewRunCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run [script]",
		Short: "Run a script of commands against one repository",
		Long: `Run each line of a script as a twig command against a single in-memory repository.
Reads standard input when no script is given or the script is "-".`,
		Args: cobra.MaximumNArgs(1),
		RunE: makeRunRunner(a),
	}

	cmd.Flags().Bool("keep-going", false, "Report failing lines and continue")
	cmd.Flags().BoolP("watch", "w", false, "Re-run the script whenever it changes")
	cmd.Flags().Duration("debounce", 200*time.Millisecond, "Debounce window for --watch")
	return cmd
}

func makeRunRunner(a *app) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		if err := a.load(globalsFromFlags(cmd)); err != nil {
			return err
		}

		keepGoing, _ := cmd.Flags().GetBool("keep-going")
		watch, _ := cmd.Flags().GetBool("watch")
		debounce, _ := cmd.Flags().GetDuration("debounce")

		path := "-"
		if len(args) == 1 {
			path = args[0]
		}

		opts := internal.ScriptOptions{KeepGoing: keepGoing, ErrOut: cmd.ErrOrStderr()}

		if path == "-" {
			if watch {
				return fmt.Errorf("--watch needs a script file")
			}
			return runScript(cmd, a, cmd.InOrStdin(), opts)
		}

		if err := runScriptFile(cmd, a, path, opts); err != nil && !watch {
			return err
		} else if err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "error: %v\n", err)
		}

		if !watch {
			return nil
		}
		return watchScript(cmd, path, debounce, func() {
			fmt.Fprintf(cmd.OutOrStdout(), "--- %s changed, re-running ---\n", path)
			if err := runScriptFile(cmd, a, path, opts); err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "error: %v\n", err)
			}
		})
	}
}

func runScriptFile(cmd *cobra.Command, a *app, path string, opts internal.ScriptOptions) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open script: %w", err)
	}
	defer f.Close()

	return runScript(cmd, a, f, opts)
}

func runScript(cmd *cobra.Command, a *app, r io.Reader, opts internal.ScriptOptions) error {
	session := a.newSession(cmd.OutOrStdout())
	return session.RunScript(cmd.Context(), r, opts)
}
