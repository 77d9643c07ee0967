package v1

import (
	"fmt"
	"sync"

	"github.com/4thel00z/twig/internal"
	"github.com/rs/zerolog"
)

// Client provides programmatic access to an in-memory repository. It is safe
// for concurrent use.
type Client struct {
	mu   sync.Mutex
	repo *internal.Repository
	log  zerolog.Logger
}

// New creates a new Client with the given options.
func New(opts ...Option) *Client {
	cfg := &clientConfig{
		name:          "test",
		defaultBranch: internal.DefaultBranch,
		logger:        zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(cfg)
	}

	return &Client{
		repo: internal.NewRepositoryWithBranch(cfg.name, cfg.defaultBranch),
		log:  internal.SessionLogger(cfg.logger, cfg.name),
	}
}

// Name returns the repository name.
func (c *Client) Name() string {
	return c.repo.Name()
}

// Commit records message on the current branch.
func (c *Client) Commit(message string) (Commit, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	commit, err := c.repo.Commit(message)
	if err != nil {
		return Commit{}, fmt.Errorf("commit: %w", err)
	}
	c.log.Debug().Int("id", commit.ID).Str("branch", c.repo.Head().Name).Msg("commit")
	return toCommit(commit), nil
}

// Log returns the current branch history, newest first.
func (c *Client) Log() []Commit {
	c.mu.Lock()
	defer c.mu.Unlock()

	history := c.repo.Log()
	out := make([]Commit, 0, len(history))
	for _, commit := range history {
		out = append(out, toCommit(commit))
	}
	return out
}

// Checkout switches to branch, creating it from the current branch if it does
// not exist. It reports whether the branch was created.
func (c *Client) Checkout(branch string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	created := c.repo.Checkout(branch)
	c.log.Debug().Str("branch", branch).Bool("created", created).Msg("checkout")
	return created
}

// Current returns the name of the checked-out branch.
func (c *Client) Current() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.repo.Head().Name
}

// Branches lists all branches in creation order.
func (c *Client) Branches() []Branch {
	c.mu.Lock()
	defer c.mu.Unlock()

	head := c.repo.Head().Name
	branches := c.repo.Branches()
	out := make([]Branch, 0, len(branches))
	for _, b := range branches {
		branch := Branch{Name: b.Name, Current: b.Name == head}
		if tip, ok := c.repo.Tip(b); ok {
			commit := toCommit(tip)
			branch.Tip = &commit
		}
		out = append(out, branch)
	}
	return out
}

func toCommit(c internal.Commit) Commit {
	return Commit{ID: c.ID, Message: c.Message}
}
