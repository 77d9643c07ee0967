package internal

import "iter"

// Ref addresses a commit record inside a Chain.
type Ref int

// NoRef marks the absence of a commit: the parent of a root, or the tip of an
// empty branch.
const NoRef Ref = -1

// Commit is an immutable history entry. Parent is NoRef for a root commit.
type Commit struct {
	ID      int
	Message string
	Parent  Ref
}

// IsRoot reports whether the commit has no parent.
func (c Commit) IsRoot() bool {
	return c.Parent == NoRef
}

// Chain is an append-only arena of commits. Records are never mutated once
// appended, so branches can share ancestors by holding the same Ref.
type Chain struct {
	records []Commit
}

// Append stores a new commit whose parent is the given ref and returns its ref.
func (c *Chain) Append(id int, message string, parent Ref) Ref {
	c.records = append(c.records, Commit{ID: id, Message: message, Parent: parent})
	return Ref(len(c.records) - 1)
}

// Get returns the commit stored at ref.
func (c *Chain) Get(ref Ref) (Commit, bool) {
	if ref < 0 || int(ref) >= len(c.records) {
		return Commit{}, false
	}
	return c.records[ref], true
}

// Len returns the number of commits in the arena.
func (c *Chain) Len() int {
	return len(c.records)
}

// Walk yields commits from start back to the root, newest first.
func (c *Chain) Walk(start Ref) iter.Seq[Commit] {
	return func(yield func(Commit) bool) {
		ref := start
		for ref != NoRef {
			commit, ok := c.Get(ref)
			if !ok {
				return
			}
			if !yield(commit) {
				return
			}
			ref = commit.Parent
		}
	}
}

// All yields every commit in creation order.
func (c *Chain) All() iter.Seq[Commit] {
	return func(yield func(Commit) bool) {
		for _, commit := range c.records {
			if !yield(commit) {
				return
			}
		}
	}
}
