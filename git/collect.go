// Package git collects working-tree status from a Git repository
// through go-git's read-only query surface. No git executable is
// required.
package git

import (
	"context"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/sirupsen/logrus"

	"github.com/grovetools/jjprompt/errors"
	"github.com/grovetools/jjprompt/logging"
)

// Info contains the status facts for a git working tree.
type Info struct {
	// CommitID is the HEAD commit hash truncated to the configured
	// display length.
	CommitID string

	// Branch is the current branch name, empty when HEAD is detached.
	Branch string

	// Detached reports a detached HEAD.
	Detached bool

	// Dirty reports uncommitted changes in the index or worktree,
	// untracked files included.
	Dirty bool

	// Conflicted reports unmerged paths.
	Conflicted bool

	// HasRemote reports whether the current branch has an upstream
	// tracking ref. Always false when detached.
	HasRemote bool

	// IsSynced reports whether the tracking ref points at HEAD.
	// Vacuously true when there is no branch to compare.
	IsSynced bool
}

// Collect opens the repository at root read-only and extracts its
// status facts. A repository without commits yields an error.
func Collect(ctx context.Context, root string, idLength int) (*Info, error) {
	if idLength < 0 {
		idLength = 0
	}

	repo, err := gogit.PlainOpen(root)
	if err != nil {
		return nil, errors.GitCollectFailed("open", err)
	}

	head, err := repo.Head()
	if err != nil {
		// Covers the unborn HEAD of a freshly initialized repository.
		return nil, errors.GitCollectFailed("resolve HEAD", err)
	}

	commitID := head.Hash().String()
	if idLength < len(commitID) {
		commitID = commitID[:idLength]
	}

	info := &Info{CommitID: commitID}
	if head.Name().IsBranch() {
		info.Branch = head.Name().Short()
	} else {
		info.Detached = true
	}
	info.HasRemote, info.IsSynced = upstreamState(repo, info.Branch, head.Hash())

	// Status walks the whole worktree, the one potentially slow step.
	if err := ctx.Err(); err != nil {
		return nil, errors.GitCollectFailed("status", err)
	}
	wt, err := repo.Worktree()
	if err != nil {
		return nil, errors.GitCollectFailed("worktree", err)
	}
	status, err := wt.Status()
	if err != nil {
		return nil, errors.GitCollectFailed("status", err)
	}
	info.Dirty, info.Conflicted = classifyStatus(status)

	logging.NewLogger("git").WithFields(logrus.Fields{
		"commit":   info.CommitID,
		"branch":   info.Branch,
		"detached": info.Detached,
		"dirty":    info.Dirty,
	}).Debug("collected git status")

	return info, nil
}

// upstreamState resolves the branch's remote-tracking ref and compares
// it against HEAD. A branch without a configured upstream yields
// (false, false); no branch at all yields (false, true).
func upstreamState(repo *gogit.Repository, branch string, head plumbing.Hash) (hasRemote, isSynced bool) {
	if branch == "" {
		return false, true
	}
	cfg, err := repo.Config()
	if err != nil {
		return false, false
	}
	b, ok := cfg.Branches[branch]
	if !ok || b.Remote == "" {
		return false, false
	}
	merge := branch
	if b.Merge != "" {
		merge = b.Merge.Short()
	}
	ref, err := repo.Reference(plumbing.NewRemoteReferenceName(b.Remote, merge), true)
	if err != nil {
		return false, false
	}
	return true, ref.Hash() == head
}

// classifyStatus reduces the porcelain status map to the two facts the
// prompt displays.
func classifyStatus(status gogit.Status) (dirty, conflicted bool) {
	for _, fs := range status {
		if fs.Staging == gogit.UpdatedButUnmerged || fs.Worktree == gogit.UpdatedButUnmerged {
			conflicted = true
		}
		if fs.Staging != gogit.Unmodified || fs.Worktree != gogit.Unmodified {
			dirty = true
		}
	}
	return dirty, conflicted
}
