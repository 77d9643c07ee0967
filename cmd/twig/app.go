package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/4thel00z/twig/internal"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// globals are the persistent flags shared by every command.
type globals struct {
	configPath string
	debug      bool
	noColor    bool
}

type app struct {
	resolver *internal.ConfigResolver
	scope    internal.Scope
	cfg      *internal.Config
	logger   zerolog.Logger
	closer   io.Closer
	stderr   io.Writer
}

func newApp() *app {
	return &app{
		resolver: internal.NewConfigResolver(),
		logger:   zerolog.Nop(),
		stderr:   os.Stderr,
	}
}

// load resolves and reads configuration and sets up logging. It is safe to
// call more than once; later calls are no-ops.
func (a *app) load(g globals) error {
	if a.cfg != nil {
		return nil
	}

	a.scope = a.resolver.Resolve(g.configPath)
	cfg, err := internal.LoadConfig(a.scope.ConfigPath)
	if err != nil {
		return fmt.Errorf("load config %s: %w", a.scope.ConfigPath, err)
	}
	if g.noColor {
		cfg.Output.Color = "never"
	}

	logger, closer, err := internal.NewLogger(cfg.Log, g.debug, a.stderr)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}

	a.cfg = cfg
	a.logger = logger
	a.closer = closer
	a.logger.Debug().Str("config", a.scope.ConfigPath).Str("scope", string(a.scope.Type)).Msg("config loaded")
	return nil
}

func (a *app) newSession(out io.Writer) *internal.Session {
	return internal.NewSession(a.cfg, out, a.logger)
}

func (a *app) Close() error {
	if a.closer == nil {
		return nil
	}
	return a.closer.Close()
}

func globalsFromFlags(cmd *cobra.Command) globals {
	configPath, _ := cmd.Flags().GetString("config")
	debug, _ := cmd.Flags().GetBool("debug")
	noColor, _ := cmd.Flags().GetBool("no-color")
	return globals{configPath: configPath, debug: debug, noColor: noColor}
}

// splitGlobals pulls the persistent flags out of raw arguments for commands
// that parse their own arguments.
func splitGlobals(args []string) ([]string, globals, error) {
	var g globals
	var rest []string

	for i := 0; i < len(args); i++ {
		switch arg := args[i]; {
		case arg == "--debug":
			g.debug = true
		case arg == "--no-color":
			g.noColor = true
		case arg == "--config":
			if i+1 >= len(args) {
				return nil, g, fmt.Errorf("flag needs an argument: --config")
			}
			i++
			g.configPath = args[i]
		case strings.HasPrefix(arg, "--config="):
			g.configPath = strings.TrimPrefix(arg, "--config=")
		default:
			rest = append(rest, arg)
		}
	}

	return rest, g, nil
}
