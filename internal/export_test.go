package internal

import (
	"os"
	"testing"

	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/osfs"
	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/cache"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/storage/filesystem"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildExportRepo(t *testing.T) *Repository {
	t.Helper()
	r := NewRepository("test")
	for _, step := range []func(){
		func() { mustCommit(t, r, "Initial commit") },
		func() { mustCommit(t, r, "Change 1") },
		func() { r.Checkout("testing") },
		func() { mustCommit(t, r, "Change 3") },
		func() { r.Checkout("master") },
		func() { mustCommit(t, r, "Change 3b") },
		func() { r.Checkout("release") },
		func() { r.Checkout("master") },
	} {
		step()
	}
	return r
}

func TestExportReplaysHistory(t *testing.T) {
	repo := buildExportRepo(t)
	fs := memfs.New()

	result, err := NewExporter(DefaultConfig().Export).Export(repo, fs)
	require.NoError(t, err)
	assert.Len(t, result.Commits, 4)
	assert.Equal(t, "master", result.Head)
	assert.Len(t, result.Refs, 3)

	gitRepo, err := git.Open(filesystem.NewStorage(fs, cache.NewObjectLRUDefault()), nil)
	require.NoError(t, err)

	head, err := gitRepo.Head()
	require.NoError(t, err)
	assert.Equal(t, plumbing.NewBranchReferenceName("master"), head.Name())

	iter, err := gitRepo.Log(&git.LogOptions{From: head.Hash()})
	require.NoError(t, err)
	var messages []string
	require.NoError(t, iter.ForEach(func(c *object.Commit) error {
		messages = append(messages, c.Message)
		return nil
	}))
	assert.Equal(t, []string{"Change 3b\n", "Change 1\n", "Initial commit\n"}, messages)

	topic, err := gitRepo.Reference(plumbing.NewBranchReferenceName("testing"), true)
	require.NoError(t, err)
	assert.Equal(t, result.Commits[2], topic.Hash())
	assert.Equal(t, result.Commits[3], result.Refs["release"])

	c, err := gitRepo.CommitObject(topic.Hash())
	require.NoError(t, err)
	assert.Equal(t, []plumbing.Hash{result.Commits[1]}, c.ParentHashes)
	assert.Equal(t, "twig", c.Author.Name)
}

func TestExportIsDeterministic(t *testing.T) {
	exporter := NewExporter(DefaultConfig().Export)

	first, err := exporter.Export(buildExportRepo(t), memfs.New())
	require.NoError(t, err)
	second, err := exporter.Export(buildExportRepo(t), memfs.New())
	require.NoError(t, err)

	assert.Equal(t, first.Commits, second.Commits)
}

func TestExportSkipsEmptyBranch(t *testing.T) {
	repo := NewRepository("test")
	repo.Checkout("dev")
	mustCommit(t, repo, "first")

	fs := memfs.New()
	result, err := NewExporter(DefaultConfig().Export).Export(repo, fs)
	require.NoError(t, err)
	assert.Equal(t, "dev", result.Head)
	assert.NotContains(t, result.Refs, "master")

	gitRepo, err := git.Open(filesystem.NewStorage(fs, cache.NewObjectLRUDefault()), nil)
	require.NoError(t, err)
	_, err = gitRepo.Reference(plumbing.NewBranchReferenceName("master"), false)
	assert.ErrorIs(t, err, plumbing.ErrReferenceNotFound)

	head, err := gitRepo.Head()
	require.NoError(t, err)
	assert.Equal(t, result.Commits[0], head.Hash())
}

func TestExportEmptyRepository(t *testing.T) {
	fs := memfs.New()
	result, err := NewExporter(DefaultConfig().Export).Export(NewRepository("empty"), fs)
	require.NoError(t, err)
	assert.Empty(t, result.Commits)
	assert.Empty(t, result.Refs)

	gitRepo, err := git.Open(filesystem.NewStorage(fs, cache.NewObjectLRUDefault()), nil)
	require.NoError(t, err)
	_, err = gitRepo.Head()
	assert.ErrorIs(t, err, plumbing.ErrReferenceNotFound)
}

func TestExportRefusesExistingRepository(t *testing.T) {
	fs := memfs.New()
	exporter := NewExporter(DefaultConfig().Export)

	_, err := exporter.Export(NewRepository("a"), fs)
	require.NoError(t, err)
	_, err = exporter.Export(NewRepository("b"), fs)
	assert.ErrorIs(t, err, git.ErrRepositoryAlreadyExists)
}

func TestExportRejectsInvalidRefNames(t *testing.T) {
	tests := []struct {
		name     string
		branches []string
	}{
		{"space and double dot", []string{"bad name..x"}},
		{"trailing lock", []string{"topic.lock"}},
		{"branch nested under branch", []string{"feature", "feature/x"}},
		{"nested with sibling in between", []string{"a", "a-b", "a/x"}},
		{"deeply nested", []string{"a/b", "a/b/c/d"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := NewRepository("test")
			mustCommit(t, repo, "root")
			for _, b := range tt.branches {
				repo.Checkout(b)
				mustCommit(t, repo, "on "+b)
			}

			dir := t.TempDir()
			_, err := NewExporter(DefaultConfig().Export).Export(repo, osfs.New(dir))
			require.ErrorIs(t, err, ErrInvalidRefName)

			entries, err := os.ReadDir(dir)
			require.NoError(t, err)
			assert.Empty(t, entries, "nothing should be written")
		})
	}
}

func TestExportAllowsSlashedNamesWithoutConflict(t *testing.T) {
	repo := NewRepository("test")
	mustCommit(t, repo, "root")
	repo.Checkout("feature/x")
	repo.Checkout("feature/y")

	result, err := NewExporter(DefaultConfig().Export).Export(repo, memfs.New())
	require.NoError(t, err)
	assert.Contains(t, result.Refs, "feature/x")
	assert.Contains(t, result.Refs, "feature/y")
}

func TestExportValidatesHeadWithoutCommits(t *testing.T) {
	repo := NewRepositoryWithBranch("test", "no..good")
	_, err := NewExporter(DefaultConfig().Export).Export(repo, memfs.New())
	assert.ErrorIs(t, err, ErrInvalidRefName)
}
