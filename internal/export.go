package internal

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/cache"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/plumbing/storer"
	"github.com/go-git/go-git/v5/storage/filesystem"
)

var ErrInvalidRefName = errors.New("branch name is not a valid git ref")

// exportEpoch anchors commit timestamps so the same history always exports to
// the same hashes.
var exportEpoch = time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)

// ExportResult maps what Export wrote back to the repository it came from.
type ExportResult struct {
	Commits map[int]plumbing.Hash // commit id -> git hash
	Refs    map[string]plumbing.Hash
	Head    string
}

// Exporter replays a repository into a bare git repository.
type Exporter struct {
	Author string
	Email  string
}

// NewExporter signs exported commits with the configured author.
func NewExporter(cfg ExportConfig) *Exporter {
	return &Exporter{Author: cfg.Author, Email: cfg.Email}
}

// Export writes every commit, branch ref and HEAD of repo into fs, which must
// be empty.
func (e *Exporter) Export(repo *Repository, fs billy.Filesystem) (*ExportResult, error) {
	if err := validateRefNames(repo); err != nil {
		return nil, err
	}

	store := filesystem.NewStorage(fs, cache.NewObjectLRUDefault())
	gitRepo, err := git.Init(store, nil)
	if err != nil {
		return nil, fmt.Errorf("init git repository: %w", err)
	}

	tree, err := storeObject(gitRepo.Storer, &object.Tree{})
	if err != nil {
		return nil, fmt.Errorf("store empty tree: %w", err)
	}

	result := &ExportResult{
		Commits: make(map[int]plumbing.Hash),
		Refs:    make(map[string]plumbing.Hash),
		Head:    repo.Head().Name,
	}

	byRef := make(map[Ref]plumbing.Hash)
	for i, c := range repo.Commits() {
		sig := object.Signature{
			Name:  e.Author,
			Email: e.Email,
			When:  exportEpoch.Add(time.Duration(c.ID) * time.Second),
		}
		gc := &object.Commit{
			Author:    sig,
			Committer: sig,
			Message:   c.Message + "\n",
			TreeHash:  tree,
		}
		if !c.IsRoot() {
			gc.ParentHashes = []plumbing.Hash{byRef[c.Parent]}
		}

		hash, err := storeObject(gitRepo.Storer, gc)
		if err != nil {
			return nil, fmt.Errorf("store commit %d: %w", c.ID, err)
		}
		byRef[Ref(i)] = hash
		result.Commits[c.ID] = hash
	}

	for _, b := range repo.Branches() {
		if b.IsEmpty() {
			continue
		}
		hash := byRef[b.Tip]
		ref := plumbing.NewHashReference(plumbing.NewBranchReferenceName(b.Name), hash)
		if err := gitRepo.Storer.SetReference(ref); err != nil {
			return nil, fmt.Errorf("write branch %s: %w", b.Name, err)
		}
		result.Refs[b.Name] = hash
	}

	head := plumbing.NewSymbolicReference(plumbing.HEAD, plumbing.NewBranchReferenceName(result.Head))
	if err := gitRepo.Storer.SetReference(head); err != nil {
		return nil, fmt.Errorf("write HEAD: %w", err)
	}

	return result, nil
}

// validateRefNames checks every ref Export would write before anything touches
// the filesystem. A branch may not also be a directory of another branch.
func validateRefNames(repo *Repository) error {
	head := repo.Head().Name
	names := []string{head}
	for _, b := range repo.Branches() {
		if !b.IsEmpty() && b.Name != head {
			names = append(names, b.Name)
		}
	}

	for _, name := range names {
		if err := plumbing.NewBranchReferenceName(name).Validate(); err != nil {
			return fmt.Errorf("%w: %q", ErrInvalidRefName, name)
		}
	}

	for _, name := range names {
		for i := strings.LastIndex(name, "/"); i > 0; i = strings.LastIndex(name[:i], "/") {
			if slices.Contains(names, name[:i]) {
				return fmt.Errorf("%w: %q conflicts with %q", ErrInvalidRefName, name, name[:i])
			}
		}
	}
	return nil
}

type encodable interface {
	Encode(plumbing.EncodedObject) error
}

func storeObject(s storer.EncodedObjectStorer, obj encodable) (plumbing.Hash, error) {
	encoded := s.NewEncodedObject()
	if err := obj.Encode(encoded); err != nil {
		return plumbing.ZeroHash, err
	}
	return s.SetEncodedObject(encoded)
}
