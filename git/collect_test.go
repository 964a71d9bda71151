package git

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	gogit "github.com/go-git/go-git/v5"
	gitconfig "github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grovetools/jjprompt/errors"
)

func initRepo(t *testing.T) (*gogit.Repository, string) {
	t.Helper()
	dir := t.TempDir()
	repo, err := gogit.PlainInit(dir, false)
	require.NoError(t, err)
	return repo, dir
}

func commitFile(t *testing.T, repo *gogit.Repository, dir, name, content, message string) plumbing.Hash {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
	wt, err := repo.Worktree()
	require.NoError(t, err)
	_, err = wt.Add(name)
	require.NoError(t, err)
	hash, err := wt.Commit(message, &gogit.CommitOptions{
		Author: &object.Signature{Name: "test", Email: "test@example.com", When: time.Now()},
	})
	require.NoError(t, err)
	return hash
}

// trackBranch wires branch config plus a remote-tracking ref pointing
// at the given hash, the state a fetch would leave behind.
func trackBranch(t *testing.T, repo *gogit.Repository, branch, remote string, hash plumbing.Hash) {
	t.Helper()
	cfg, err := repo.Config()
	require.NoError(t, err)
	cfg.Branches[branch] = &gitconfig.Branch{
		Name:   branch,
		Remote: remote,
		Merge:  plumbing.NewBranchReferenceName(branch),
	}
	require.NoError(t, repo.SetConfig(cfg))
	ref := plumbing.NewHashReference(plumbing.NewRemoteReferenceName(remote, branch), hash)
	require.NoError(t, repo.Storer.SetReference(ref))
}

func TestCollectCleanRepo(t *testing.T) {
	repo, dir := initRepo(t)
	hash := commitFile(t, repo, dir, "a.txt", "hello\n", "initial")

	info, err := Collect(context.Background(), dir, 8)
	require.NoError(t, err)

	assert.Equal(t, hash.String()[:8], info.CommitID)
	assert.Equal(t, "master", info.Branch)
	assert.False(t, info.Detached)
	assert.False(t, info.Dirty)
	assert.False(t, info.Conflicted)
	assert.False(t, info.HasRemote)
	assert.False(t, info.IsSynced)
}

func TestCollectCommitIDLength(t *testing.T) {
	repo, dir := initRepo(t)
	hash := commitFile(t, repo, dir, "a.txt", "hello\n", "initial")

	t.Run("truncated", func(t *testing.T) {
		info, err := Collect(context.Background(), dir, 12)
		require.NoError(t, err)
		assert.Equal(t, hash.String()[:12], info.CommitID)
	})

	t.Run("longer than hash keeps it unmodified", func(t *testing.T) {
		info, err := Collect(context.Background(), dir, 100)
		require.NoError(t, err)
		assert.Equal(t, hash.String(), info.CommitID)
	})

	t.Run("negative clamps to empty", func(t *testing.T) {
		info, err := Collect(context.Background(), dir, -1)
		require.NoError(t, err)
		assert.Empty(t, info.CommitID)
	})
}

func TestCollectDirty(t *testing.T) {
	repo, dir := initRepo(t)
	commitFile(t, repo, dir, "a.txt", "hello\n", "initial")

	t.Run("untracked file", func(t *testing.T) {
		require.NoError(t, os.WriteFile(filepath.Join(dir, "new.txt"), []byte("x\n"), 0o644))
		info, err := Collect(context.Background(), dir, 8)
		require.NoError(t, err)
		assert.True(t, info.Dirty)
		assert.False(t, info.Conflicted)
		require.NoError(t, os.Remove(filepath.Join(dir, "new.txt")))
	})

	t.Run("modified tracked file", func(t *testing.T) {
		require.NoError(t, os.WriteFile(filepath.Join(dir, "a.txt"), []byte("changed\n"), 0o644))
		info, err := Collect(context.Background(), dir, 8)
		require.NoError(t, err)
		assert.True(t, info.Dirty)
	})
}

func TestCollectDetachedHead(t *testing.T) {
	repo, dir := initRepo(t)
	hash := commitFile(t, repo, dir, "a.txt", "hello\n", "initial")

	wt, err := repo.Worktree()
	require.NoError(t, err)
	require.NoError(t, wt.Checkout(&gogit.CheckoutOptions{Hash: hash}))

	info, err := Collect(context.Background(), dir, 8)
	require.NoError(t, err)

	assert.True(t, info.Detached)
	assert.Empty(t, info.Branch)
	assert.False(t, info.HasRemote)
	assert.True(t, info.IsSynced)
}

func TestCollectUpstream(t *testing.T) {
	repo, dir := initRepo(t)
	first := commitFile(t, repo, dir, "a.txt", "hello\n", "initial")
	trackBranch(t, repo, "master", "origin", first)

	t.Run("synced", func(t *testing.T) {
		info, err := Collect(context.Background(), dir, 8)
		require.NoError(t, err)
		assert.True(t, info.HasRemote)
		assert.True(t, info.IsSynced)
	})

	t.Run("ahead of tracking ref", func(t *testing.T) {
		commitFile(t, repo, dir, "b.txt", "more\n", "second")
		info, err := Collect(context.Background(), dir, 8)
		require.NoError(t, err)
		assert.True(t, info.HasRemote)
		assert.False(t, info.IsSynced)
	})
}

func TestCollectUnbornHead(t *testing.T) {
	_, dir := initRepo(t)

	_, err := Collect(context.Background(), dir, 8)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrCodeGitCollect))
}

func TestCollectNotARepository(t *testing.T) {
	_, err := Collect(context.Background(), t.TempDir(), 8)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrCodeGitCollect))
}

func TestCollectCancelledContext(t *testing.T) {
	repo, dir := initRepo(t)
	commitFile(t, repo, dir, "a.txt", "hello\n", "initial")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Collect(ctx, dir, 8)
	require.Error(t, err)
}

func TestClassifyStatus(t *testing.T) {
	tests := []struct {
		name       string
		status     gogit.Status
		dirty      bool
		conflicted bool
	}{
		{
			name:   "clean",
			status: gogit.Status{},
		},
		{
			name: "unmodified entries stay clean",
			status: gogit.Status{
				"a.txt": &gogit.FileStatus{Staging: gogit.Unmodified, Worktree: gogit.Unmodified},
			},
		},
		{
			name: "untracked",
			status: gogit.Status{
				"new.txt": &gogit.FileStatus{Staging: gogit.Untracked, Worktree: gogit.Untracked},
			},
			dirty: true,
		},
		{
			name: "staged addition",
			status: gogit.Status{
				"a.txt": &gogit.FileStatus{Staging: gogit.Added, Worktree: gogit.Unmodified},
			},
			dirty: true,
		},
		{
			name: "unmerged path",
			status: gogit.Status{
				"a.txt": &gogit.FileStatus{Staging: gogit.UpdatedButUnmerged, Worktree: gogit.Unmodified},
			},
			dirty:      true,
			conflicted: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dirty, conflicted := classifyStatus(tt.status)
			assert.Equal(t, tt.dirty, dirty)
			assert.Equal(t, tt.conflicted, conflicted)
		})
	}
}
