package git

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// initRepo creates a repository with a single commit in a temp directory.
func initRepo(t *testing.T) (string, plumbing.Hash) {
	t.Helper()

	dir := t.TempDir()

	repo, err := gogit.PlainInit(dir, false)
	require.NoError(t, err)

	worktree, err := repo.Worktree()
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "README.md"), []byte("test fixture"), 0o644))

	_, err = worktree.Add("README.md")
	require.NoError(t, err)

	hash, err := worktree.Commit("initial commit", &gogit.CommitOptions{
		Author: &object.Signature{Name: "test", Email: "test@example.com", When: time.Now()},
	})
	require.NoError(t, err)

	return dir, hash
}

func TestCurrentBranch(t *testing.T) {
	dir, _ := initRepo(t)

	branch, err := CurrentBranch(dir)

	require.NoError(t, err)
	assert.Equal(t, "master", branch)
}

func TestCurrentBranch_FromSubdirectory(t *testing.T) {
	dir, _ := initRepo(t)

	sub := filepath.Join(dir, "cmd", "app")
	require.NoError(t, os.MkdirAll(sub, 0o755))

	branch, err := CurrentBranch(sub)

	require.NoError(t, err)
	assert.Equal(t, "master", branch)
}

func TestCurrentBranch_NotRepository(t *testing.T) {
	_, err := CurrentBranch(t.TempDir())

	assert.ErrorIs(t, err, ErrNotRepository)
}

func TestCurrentBranch_DetachedHead(t *testing.T) {
	dir, hash := initRepo(t)

	repo, err := gogit.PlainOpen(dir)
	require.NoError(t, err)

	worktree, err := repo.Worktree()
	require.NoError(t, err)

	require.NoError(t, worktree.Checkout(&gogit.CheckoutOptions{Hash: hash}))

	_, err = CurrentBranch(dir)

	assert.ErrorIs(t, err, ErrDetachedHead)
}

func TestCurrentBranch_EmptyRepository(t *testing.T) {
	dir := t.TempDir()

	_, err := gogit.PlainInit(dir, false)
	require.NoError(t, err)

	_, err = CurrentBranch(dir)

	assert.Error(t, err)
}
