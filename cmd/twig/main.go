package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/charmbracelet/fang"
)

// version is set via ldflags at build time
var version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := run(ctx, newApp(), os.Args[1:])
	stop()
	os.Exit(code)
}

// run executes one invocation and returns the process exit code. The app is
// closed before run returns.
func run(ctx context.Context, a *app, args []string) int {
	defer a.Close()

	if handled, err := tryExternalCommand(ctx, a, args); handled {
		if err != nil {
			fmt.Fprintf(os.Stderr, "twig %s: %v\n", args[0], err)
			return 1
		}
		return 0
	}

	rootCmd := NewRootCmd(version, a)
	rootCmd.SetArgs(args)
	if err := fang.Execute(ctx, rootCmd); err != nil {
		return 1
	}
	return 0
}

func tryExternalCommand(ctx context.Context, a *app, args []string) (bool, error) {
	if len(args) == 0 {
		return false, nil
	}

	cmd := args[0]
	if cmd == "" || cmd[0] == '-' || isBuiltin(cmd) {
		return false, nil
	}

	if _, err := findExternal(cmd); err != nil {
		return false, nil
	}

	env := a.resolver.EnvVars(a.resolver.Resolve(""), version)
	return true, executeExternal(ctx, cmd, args[1:], env)
}
