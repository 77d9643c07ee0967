package internal

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrMissingCommand = errors.New("missing command")
	ErrUnknownCommand = errors.New("unknown command")
	ErrMissingValue   = errors.New("missing option value")
	ErrMissingOption  = errors.New("missing required option")
)

// Invocation is one parsed command line: a command, the positional words that
// follow it, and its -flag options.
type Invocation struct {
	Command string
	Args    []string
	Options map[string]string
}

// ParseInvocation splits tokens into a command and its options. A flag takes
// every following non-flag token up to the next flag, joined by single spaces.
func ParseInvocation(tokens []string) (*Invocation, error) {
	if len(tokens) == 0 || isFlag(tokens[0]) {
		return nil, ErrMissingCommand
	}

	inv := &Invocation{
		Command: tokens[0],
		Options: make(map[string]string),
	}

	rest := tokens[1:]
	for len(rest) > 0 && !isFlag(rest[0]) {
		inv.Args = append(inv.Args, rest[0])
		rest = rest[1:]
	}

	for len(rest) > 0 {
		name := strings.TrimLeft(rest[0], "-")
		rest = rest[1:]

		var words []string
		for len(rest) > 0 && !isFlag(rest[0]) {
			words = append(words, rest[0])
			rest = rest[1:]
		}
		if len(words) == 0 {
			return nil, fmt.Errorf("%w: -%s", ErrMissingValue, name)
		}
		inv.Options[name] = strings.Join(words, " ")
	}

	return inv, nil
}

// Option returns the first present option among names.
func (inv *Invocation) Option(names ...string) (string, bool) {
	for _, name := range names {
		if v, ok := inv.Options[name]; ok {
			return v, true
		}
	}
	return "", false
}

// Arg returns the i-th positional argument or "".
func (inv *Invocation) Arg(i int) string {
	if i < len(inv.Args) {
		return inv.Args[i]
	}
	return ""
}

func isFlag(token string) bool {
	return len(token) > 1 && token[0] == '-' && strings.TrimLeft(token, "-") != ""
}
