package internal

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/go-git/go-billy/v5/osfs"
	"github.com/google/shlex"
	"github.com/rs/zerolog"
)

// CommandSpec describes one command a Session understands.
type CommandSpec struct {
	Name  string
	Usage string
	Short string
	run   func(s *Session, inv *Invocation) error
}

var commands = []CommandSpec{
	{Name: "init", Usage: "init [-name NAME] [-branch BRANCH]", Short: "Start a fresh repository", run: (*Session).runInit},
	{Name: "commit", Usage: "commit -m MESSAGE", Short: "Record a commit on the current branch", run: (*Session).runCommit},
	{Name: "log", Usage: "log [-n N] [-format full|oneline|json] [-branch BRANCH]", Short: "Show commit history", run: (*Session).runLog},
	{Name: "checkout", Usage: "checkout BRANCH", Short: "Switch branches, creating the branch if needed", run: (*Session).runCheckout},
	{Name: "branch", Usage: "branch", Short: "List branches", run: (*Session).runBranch},
	{Name: "compare", Usage: "compare FROM TO", Short: "Compare the histories of two branches", run: (*Session).runCompare},
	{Name: "export", Usage: "export -dir PATH", Short: "Write the history to a bare git repository", run: (*Session).runExport},
}

// Commands lists the commands a Session dispatches, in help order.
func Commands() []CommandSpec {
	return commands
}

func lookupCommand(name string) (CommandSpec, bool) {
	for _, c := range commands {
		if c.Name == name {
			return c, true
		}
	}
	return CommandSpec{}, false
}

// Session binds one Repository to an output and a logger. All state lives in
// memory for the lifetime of the session.
type Session struct {
	cfg    *Config
	repo   *Repository
	out    *Renderer
	base   zerolog.Logger
	log    zerolog.Logger
	export *Exporter
}

// NewSession starts a session on a fresh repository named by cfg. A nil cfg
// means DefaultConfig.
func NewSession(cfg *Config, out io.Writer, logger zerolog.Logger) *Session {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	s := &Session{
		cfg:    cfg,
		out:    NewRenderer(out, cfg.Output.Color),
		base:   logger,
		export: NewExporter(cfg.Export),
	}
	s.reset(cfg.Repository.Name, cfg.Repository.DefaultBranch)
	return s
}

// Repository returns the repository the session currently owns. It changes
// after init.
func (s *Session) Repository() *Repository {
	return s.repo
}

func (s *Session) reset(name, branch string) {
	s.repo = NewRepositoryWithBranch(name, branch)
	s.log = SessionLogger(s.base, name)
}

// Exec parses and runs one command line.
func (s *Session) Exec(ctx context.Context, tokens []string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	inv, err := ParseInvocation(tokens)
	if err != nil {
		return err
	}

	command, ok := lookupCommand(inv.Command)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownCommand, inv.Command)
	}

	s.log.Debug().
		Str("command", inv.Command).
		Strs("args", inv.Args).
		Interface("options", inv.Options).
		Msg("exec")

	if err := command.run(s, inv); err != nil {
		s.log.Debug().Err(err).Str("command", inv.Command).Msg("command failed")
		return fmt.Errorf("%s: %w", inv.Command, err)
	}
	return nil
}

// ScriptOptions controls RunScript.
type ScriptOptions struct {
	KeepGoing bool
	ErrOut    io.Writer // where errors go when KeepGoing is set
}

// MaxLineSize bounds a single script or shell line.
const MaxLineSize = 16 << 20

// NewLineScanner reads r line by line, allowing lines up to MaxLineSize.
func NewLineScanner(r io.Reader) *bufio.Scanner {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), MaxLineSize)
	return scanner
}

// RunScript executes r line by line. Lines are split shell-style and # starts
// a comment.
func (s *Session) RunScript(ctx context.Context, r io.Reader, opts ScriptOptions) error {
	scanner := NewLineScanner(r)
	lineNo := 0
	failed := 0

	for scanner.Scan() {
		lineNo++
		tokens, err := shlex.Split(scanner.Text())
		if err != nil {
			err = fmt.Errorf("line %d: split: %w", lineNo, err)
		} else if len(tokens) == 0 {
			continue
		} else if execErr := s.Exec(ctx, tokens); execErr != nil {
			err = fmt.Errorf("line %d: %w", lineNo, execErr)
		}

		if err == nil {
			continue
		}
		if !opts.KeepGoing || ctx.Err() != nil {
			return err
		}
		failed++
		if opts.ErrOut != nil {
			fmt.Fprintf(opts.ErrOut, "error: %v\n", err)
		}
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("line %d: read script: %w", lineNo+1, err)
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d lines failed", failed, lineNo)
	}
	return nil
}

func (s *Session) runInit(inv *Invocation) error {
	name, ok := inv.Option("name")
	if !ok {
		name = inv.Arg(0)
	}
	if name == "" {
		name = s.cfg.Repository.Name
	}
	branch, ok := inv.Option("branch", "b")
	if !ok {
		branch = s.cfg.Repository.DefaultBranch
	}

	s.reset(name, branch)
	s.out.Printf("Initialized empty repository %s on branch %s\n", s.repo.Name(), s.repo.Head().Name)
	return nil
}

func (s *Session) runCommit(inv *Invocation) error {
	message, ok := inv.Option("m", "message")
	if !ok {
		return fmt.Errorf("%w: -m", ErrMissingOption)
	}

	commit, err := s.repo.Commit(message)
	if err != nil {
		return err
	}

	s.out.Commit(s.repo.Head().Name, commit)
	return nil
}

func (s *Session) runLog(inv *Invocation) error {
	var history []Commit
	if branch, ok := inv.Option("branch", "b"); ok {
		var err error
		if history, err = s.repo.LogBranch(branch); err != nil {
			return err
		}
	} else {
		history = s.repo.Log()
	}

	if n, ok := inv.Option("n"); ok {
		limit, err := strconv.Atoi(n)
		if err != nil || limit < 0 {
			return fmt.Errorf("invalid -n %q", n)
		}
		if limit < len(history) {
			history = history[:limit]
		}
	}

	format, ok := inv.Option("format")
	if !ok {
		format = s.cfg.Output.Format
	}
	format, err := ParseFormat(format)
	if err != nil {
		return err
	}

	return s.out.Log(history, format)
}

func (s *Session) runCheckout(inv *Invocation) error {
	name, ok := inv.Option("b", "branch")
	if !ok {
		name = strings.Join(inv.Args, " ")
	}
	if name == "" {
		return fmt.Errorf("%w: branch name", ErrMissingOption)
	}

	if s.repo.Checkout(name) {
		s.out.Printf("Switched to a new branch '%s'\n", name)
		return nil
	}
	s.out.Printf("Switched to branch '%s'\n", name)
	return nil
}

func (s *Session) runBranch(_ *Invocation) error {
	s.out.Branches(s.repo.Branches(), s.repo.Head().Name)
	return nil
}

func (s *Session) runCompare(inv *Invocation) error {
	from, ok := inv.Option("from")
	if !ok {
		from = inv.Arg(0)
	}
	to, ok := inv.Option("to")
	if !ok {
		to = inv.Arg(1)
	}
	if from == "" || to == "" {
		return fmt.Errorf("%w: two branch names", ErrMissingOption)
	}

	d, err := s.repo.Divergence(from, to)
	if err != nil {
		return err
	}
	fromLog, _ := s.repo.LogBranch(from)
	toLog, _ := s.repo.LogBranch(to)

	s.out.Divergence(d, fromLog, toLog)
	return nil
}

func (s *Session) runExport(inv *Invocation) error {
	dir, ok := inv.Option("dir")
	if !ok {
		dir = inv.Arg(0)
	}
	if dir == "" {
		return fmt.Errorf("%w: -dir", ErrMissingOption)
	}

	result, err := s.export.Export(s.repo, osfs.New(dir))
	if err != nil {
		return err
	}

	s.log.Info().Str("dir", dir).Int("commits", len(result.Commits)).Msg("exported")
	s.out.Printf("Exported %d commits and %d branches to %s\n", len(result.Commits), len(result.Refs), dir)
	return nil
}
