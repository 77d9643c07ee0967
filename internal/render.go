package internal

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/sergi/go-diff/diffmatchpatch"
)

const (
	FormatFull    = "full"
	FormatOneline = "oneline"
	FormatJSON    = "json"
)

var (
	colorYellow = lipgloss.Color("#FFFF00")
	colorGreen  = lipgloss.Color("#00FF00")
	colorRed    = lipgloss.Color("#FF0000")
	colorCyan   = lipgloss.Color("#00FFFF")
	colorGray   = lipgloss.Color("8")
)

// ParseFormat validates a log format name. Empty means full.
func ParseFormat(s string) (string, error) {
	switch s {
	case "", FormatFull:
		return FormatFull, nil
	case FormatOneline, FormatJSON:
		return s, nil
	}
	return "", fmt.Errorf("unknown format %q", s)
}

// Renderer writes human-readable output. Colour depends on the writer unless
// forced by mode.
type Renderer struct {
	out io.Writer

	id      lipgloss.Style
	head    lipgloss.Style
	added   lipgloss.Style
	removed lipgloss.Style
	muted   lipgloss.Style
}

// NewRenderer styles output for out. mode is an output.color value: "never"
// and "always" override the profile detected from out.
func NewRenderer(out io.Writer, mode string) *Renderer {
	r := lipgloss.NewRenderer(out)
	switch mode {
	case "never":
		r.SetColorProfile(termenv.Ascii)
	case "always":
		r.SetColorProfile(termenv.TrueColor)
	}

	return &Renderer{
		out:     out,
		id:      r.NewStyle().Foreground(colorYellow),
		head:    r.NewStyle().Foreground(colorCyan).Bold(true),
		added:   r.NewStyle().Foreground(colorGreen),
		removed: r.NewStyle().Foreground(colorRed),
		muted:   r.NewStyle().Foreground(colorGray),
	}
}

// Printf writes unstyled text.
func (r *Renderer) Printf(format string, args ...any) {
	fmt.Fprintf(r.out, format, args...)
}

func (r *Renderer) Commit(branch string, c Commit) {
	fmt.Fprintf(r.out, "[%s %s] %s\n", r.head.Render(branch), r.id.Render(fmt.Sprint(c.ID)), c.Message)
}

type commitJSON struct {
	ID      int    `json:"id"`
	Message string `json:"message"`
}

func (r *Renderer) Log(commits []Commit, format string) error {
	switch format {
	case FormatJSON:
		out := make([]commitJSON, 0, len(commits))
		for _, c := range commits {
			out = append(out, commitJSON{ID: c.ID, Message: c.Message})
		}
		enc := json.NewEncoder(r.out)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	case FormatOneline:
		for _, c := range commits {
			fmt.Fprintf(r.out, "%s %s\n", r.id.Render(fmt.Sprint(c.ID)), c.Message)
		}
	default:
		for _, c := range commits {
			fmt.Fprintf(r.out, "%s\n", r.id.Render(fmt.Sprintf("commit %d", c.ID)))
			fmt.Fprintf(r.out, "    %s\n\n", c.Message)
		}
	}
	return nil
}

func (r *Renderer) Branches(branches []Branch, head string) {
	for _, b := range branches {
		if b.Name == head {
			fmt.Fprintf(r.out, "* %s\n", r.head.Render(b.Name))
			continue
		}
		fmt.Fprintf(r.out, "  %s\n", b.Name)
	}
}

// Divergence prints a summary followed by a line diff of the two logs, oldest
// commit first.
func (r *Renderer) Divergence(d *Divergence, from, to []Commit) {
	base := "none"
	if d.Base != nil {
		base = fmt.Sprint(d.Base.ID)
	}
	fmt.Fprintf(r.out, "%s is %d ahead, %d behind %s (fork point: %s)\n",
		r.head.Render(d.From), len(d.Ahead), len(d.Behind), d.To, base)

	for _, line := range DiffLogs(to, from) {
		switch line.Op {
		case diffmatchpatch.DiffInsert:
			fmt.Fprintln(r.out, r.added.Render("+ "+line.Text))
		case diffmatchpatch.DiffDelete:
			fmt.Fprintln(r.out, r.removed.Render("- "+line.Text))
		default:
			fmt.Fprintln(r.out, r.muted.Render("  "+line.Text))
		}
	}
}

type DiffLine struct {
	Op   diffmatchpatch.Operation
	Text string
}

// lineRuneBase is the first rune used to encode a log line for diffing;
// private-use runes keep the encoding clear of surrogates.
const lineRuneBase = 0xE000

// DiffLogs diffs two histories as text, one "id message" line per commit,
// oldest first. Lines only in b are inserts.
func DiffLogs(a, b []Commit) []DiffLine {
	index := make(map[string]rune)
	var lines []string
	encode := func(commits []Commit) []rune {
		out := make([]rune, 0, len(commits))
		for i := len(commits) - 1; i >= 0; i-- {
			text := fmt.Sprintf("%d %s", commits[i].ID, commits[i].Message)
			r, ok := index[text]
			if !ok {
				r = lineRuneBase + rune(len(lines))
				index[text] = r
				lines = append(lines, text)
			}
			out = append(out, r)
		}
		return out
	}

	dmp := diffmatchpatch.New()
	diffs := dmp.DiffMainRunes(encode(a), encode(b), false)

	var out []DiffLine
	for _, d := range diffs {
		for _, r := range d.Text {
			out = append(out, DiffLine{Op: d.Type, Text: lines[r-lineRuneBase]})
		}
	}
	return out
}
