package internal

import (
	"errors"
	"fmt"
	"math"
	"slices"
)

const DefaultBranch = "master"

var (
	ErrIDOverflow     = errors.New("commit id counter exhausted")
	ErrBranchNotFound = errors.New("branch not found")
	ErrCommitNotFound = errors.New("commit not found")
)

// Branch is a named pointer to the tip of one line of history.
type Branch struct {
	Name string
	Tip  Ref
}

// IsEmpty reports whether the branch has no commits yet.
func (b Branch) IsEmpty() bool {
	return b.Tip == NoRef
}

// Repository owns the commit arena, the branch table and HEAD. It is not safe
// for concurrent use; callers that share one must serialize access.
type Repository struct {
	name         string
	chain        Chain
	branches     []*Branch
	head         *Branch
	lastCommitID int
}

// NewRepository creates a repository with an empty default branch checked out.
func NewRepository(name string) *Repository {
	return NewRepositoryWithBranch(name, DefaultBranch)
}

// NewRepositoryWithBranch is NewRepository with a custom default branch name.
func NewRepositoryWithBranch(name, branch string) *Repository {
	if branch == "" {
		branch = DefaultBranch
	}
	initial := &Branch{Name: branch, Tip: NoRef}
	return &Repository{
		name:         name,
		branches:     []*Branch{initial},
		head:         initial,
		lastCommitID: -1,
	}
}

// Name returns the name the repository was created with.
func (r *Repository) Name() string {
	return r.name
}

// Commit appends a commit to the HEAD branch and advances its tip.
func (r *Repository) Commit(message string) (Commit, error) {
	if r.lastCommitID == math.MaxInt {
		return Commit{}, ErrIDOverflow
	}
	id := r.lastCommitID + 1

	ref := r.chain.Append(id, message, r.head.Tip)
	r.head.Tip = ref
	r.lastCommitID = id

	commit, _ := r.chain.Get(ref)
	return commit, nil
}

// Log returns the history of HEAD, newest first. An empty branch yields an
// empty slice.
func (r *Repository) Log() []Commit {
	return r.collect(r.head.Tip)
}

// LogBranch is Log for an arbitrary branch.
func (r *Repository) LogBranch(name string) ([]Commit, error) {
	branch := r.find(name)
	if branch == nil {
		return nil, fmt.Errorf("%w: %s", ErrBranchNotFound, name)
	}
	return r.collect(branch.Tip), nil
}

// Checkout moves HEAD to the named branch, creating it from the current HEAD
// tip if it does not exist. It reports whether a branch was created.
func (r *Repository) Checkout(name string) bool {
	if branch := r.find(name); branch != nil {
		r.head = branch
		return false
	}

	branch := &Branch{Name: name, Tip: r.head.Tip}
	r.branches = append(r.branches, branch)
	r.head = branch
	return true
}

// Head returns a copy of the checked-out branch.
func (r *Repository) Head() Branch {
	return *r.head
}

// Branches returns copies of all branches in creation order.
func (r *Repository) Branches() []Branch {
	out := make([]Branch, 0, len(r.branches))
	for _, b := range r.branches {
		out = append(out, *b)
	}
	return out
}

// Show looks up a commit by id.
func (r *Repository) Show(id int) (Commit, error) {
	for commit := range r.chain.All() {
		if commit.ID == id {
			return commit, nil
		}
	}
	return Commit{}, fmt.Errorf("%w: %d", ErrCommitNotFound, id)
}

// Tip returns the commit a branch points at.
func (r *Repository) Tip(b Branch) (Commit, bool) {
	return r.chain.Get(b.Tip)
}

// Parent returns the parent of c, if any.
func (r *Repository) Parent(c Commit) (Commit, bool) {
	return r.chain.Get(c.Parent)
}

// Commits returns every commit ever created, in id order.
func (r *Repository) Commits() []Commit {
	return slices.Collect(r.chain.All())
}

// LastCommitID returns the most recently assigned id, or -1 before the first
// commit.
func (r *Repository) LastCommitID() int {
	return r.lastCommitID
}

// Divergence describes how two branches relate. Base is the newest commit
// reachable from both, nil when the histories share nothing.
type Divergence struct {
	From   string
	To     string
	Base   *Commit
	Ahead  []Commit // only on From, newest first
	Behind []Commit // only on To, newest first
}

// Divergence compares branch from against branch to.
func (r *Repository) Divergence(from, to string) (*Divergence, error) {
	a := r.find(from)
	if a == nil {
		return nil, fmt.Errorf("%w: %s", ErrBranchNotFound, from)
	}
	b := r.find(to)
	if b == nil {
		return nil, fmt.Errorf("%w: %s", ErrBranchNotFound, to)
	}

	onTo := make(map[Ref]struct{})
	for ref := b.Tip; ref != NoRef; {
		onTo[ref] = struct{}{}
		commit, _ := r.chain.Get(ref)
		ref = commit.Parent
	}

	d := &Divergence{From: from, To: to}
	base := NoRef
	for ref := a.Tip; ref != NoRef; {
		commit, _ := r.chain.Get(ref)
		if _, shared := onTo[ref]; shared {
			base = ref
			d.Base = &commit
			break
		}
		d.Ahead = append(d.Ahead, commit)
		ref = commit.Parent
	}

	for ref := b.Tip; ref != base; {
		commit, _ := r.chain.Get(ref)
		d.Behind = append(d.Behind, commit)
		ref = commit.Parent
	}

	return d, nil
}

// find searches newest branch first so the most recently created one wins
// should names ever collide.
func (r *Repository) find(name string) *Branch {
	for i := len(r.branches) - 1; i >= 0; i-- {
		if r.branches[i].Name == name {
			return r.branches[i]
		}
	}
	return nil
}

func (r *Repository) collect(tip Ref) []Commit {
	history := []Commit{}
	for commit := range r.chain.Walk(tip) {
		history = append(history, commit)
	}
	return history
}
