// Package jj collects working-copy status from a Jujutsu repository.
//
// All state is read through the jj executable's template surface rather
// than the repository's on-disk format, which changes between releases.
// Every invocation is read-only: --ignore-working-copy prevents snapshots
// and a synthetic user identity keeps jj from prompting for configuration
// on machines that have none.
package jj

import (
	"context"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/grovetools/jjprompt/errors"
	"github.com/grovetools/jjprompt/logging"
)

// colocationRemote is the reserved remote name jj uses to mirror the
// local git repository in colocated checkouts. It never counts as a
// real remote when deciding whether a bookmark is published.
const colocationRemote = "git"

// Info holds the facts collected for the working-copy commit.
type Info struct {
	// ChangeID is the reverse-hex change id truncated to the configured
	// display length.
	ChangeID string

	// UniquePrefixLen is how many leading characters of ChangeID are
	// enough to name the change unambiguously. Never exceeds
	// len(ChangeID).
	UniquePrefixLen int

	// CommitID is the full git-compatible commit id backing the
	// working-copy commit.
	CommitID string

	// Bookmarks lists the local bookmarks pointing at the working-copy
	// commit, in backend order.
	Bookmarks []string

	// AncestorBookmark is the nearest bookmark found on an ancestor
	// when Bookmarks is empty. Empty when nothing was found or the
	// search is disabled.
	AncestorBookmark string

	EmptyDescription bool
	HasConflict      bool
	IsDivergent      bool

	// HasRemote reports whether the first bookmark exists on at least
	// one remote other than the colocation remote. False when there is
	// no bookmark.
	HasRemote bool

	// IsSynced reports whether some remote copy of the first bookmark
	// points at the working-copy commit. Vacuously true when there is
	// no bookmark at all, false when the bookmark is purely local.
	IsSynced bool
}

// Options controls how much the collector asks jj for.
type Options struct {
	// IDLength is the number of change id characters to keep.
	IDLength int

	// AncestorDepth bounds the ancestor search for a fallback bookmark
	// when the working copy itself has none. Zero disables the search.
	AncestorDepth int
}

// Templates keep the description last so embedded tab characters cannot
// break the record; everything before it is tab-separated and parsed
// with a fixed field count.
const (
	wcTemplate       = `change_id ++ "\t" ++ change_id.shortest() ++ "\t" ++ commit_id ++ "\t" ++ conflict ++ "\t" ++ divergent ++ "\t" ++ local_bookmarks.map(|b| b.name()).join(" ") ++ "\t" ++ description`
	bookmarkTemplate = `name ++ "\t" ++ remote ++ "\t" ++ if(present && !conflict, normal_target.commit_id(), "") ++ "\n"`
	ancestorTemplate = `local_bookmarks.map(|b| b.name()).join(" ") ++ "\n"`
)

const wcFieldCount = 7

// Collector gathers working-copy status by running jj queries.
type Collector struct {
	runner Runner
	log    *logrus.Entry
}

// NewCollector returns a collector backed by the jj executable.
func NewCollector() *Collector {
	return NewCollectorWithRunner(ExecRunner{})
}

// NewCollectorWithRunner substitutes the command runner, mainly for tests.
func NewCollectorWithRunner(r Runner) *Collector {
	return &Collector{
		runner: r,
		log:    logging.NewLogger("jj"),
	}
}

// baseArgs returns the global flags shared by every query. The
// synthetic identity stops jj from refusing to run on machines without
// user configuration, and --ignore-working-copy keeps queries from
// snapshotting the working copy.
func baseArgs(root string) []string {
	return []string{
		"--repository", root,
		"--ignore-working-copy",
		"--color", "never",
		"--quiet",
		"--no-pager",
		"--config", "user.name=jjprompt",
		"--config", "user.email=jjprompt@localhost",
	}
}

// Collect queries the repository rooted at root and returns its status.
func (c *Collector) Collect(ctx context.Context, root string, opts Options) (*Info, error) {
	if opts.IDLength < 0 {
		opts.IDLength = 0
	}

	out, err := c.runner.Run(ctx, root, append(baseArgs(root), "log", "-r", "@", "--no-graph", "-T", wcTemplate)...)
	if err != nil {
		return nil, errors.JJCollectFailed("log @", err)
	}

	info, err := parseWorkingCopy(out, opts.IDLength)
	if err != nil {
		return nil, err
	}

	if len(info.Bookmarks) > 0 {
		out, err := c.runner.Run(ctx, root, append(baseArgs(root), "bookmark", "list", "--all-remotes", "-T", bookmarkTemplate)...)
		if err != nil {
			return nil, errors.JJCollectFailed("bookmark list", err)
		}
		info.HasRemote, info.IsSynced = remoteState(out, info.Bookmarks[0], info.CommitID)
	} else {
		info.HasRemote, info.IsSynced = false, true
		if opts.AncestorDepth > 0 {
			// Generation 0 is @ itself, which we already know carries
			// no bookmark, so widen the window by one.
			revset := fmt.Sprintf("heads(ancestors(@, %d) & bookmarks())", opts.AncestorDepth+1)
			out, err := c.runner.Run(ctx, root, append(baseArgs(root), "log", "-r", revset, "--no-graph", "-T", ancestorTemplate)...)
			if err != nil {
				// The fallback bookmark is a nicety. Losing it should
				// not blank the whole prompt.
				c.log.WithError(err).Debug("ancestor bookmark scan failed")
			} else {
				info.AncestorBookmark = firstBookmark(out)
			}
		}
	}

	c.log.WithFields(logrus.Fields{
		"change_id": info.ChangeID,
		"bookmarks": info.Bookmarks,
		"divergent": info.IsDivergent,
		"conflict":  info.HasConflict,
	}).Debug("collected jj status")

	return info, nil
}

// parseWorkingCopy decodes the tab-separated record produced by
// wcTemplate.
func parseWorkingCopy(out []byte, idLength int) (*Info, error) {
	record := strings.TrimSuffix(string(out), "\n")
	parts := strings.SplitN(record, "\t", wcFieldCount)
	if len(parts) != wcFieldCount {
		return nil, errors.New(errors.ErrCodeJJCollect, "unexpected working-copy record").
			WithDetail("fields", len(parts))
	}

	fullID := parts[0]
	if fullID == "" {
		return nil, errors.New(errors.ErrCodeJJCollect, "repository has no working-copy commit")
	}

	id := fullID
	if idLength < len(id) {
		id = id[:idLength]
	}
	prefixLen := len(parts[1])
	if prefixLen > len(id) {
		prefixLen = len(id)
	}

	return &Info{
		ChangeID:         id,
		UniquePrefixLen:  prefixLen,
		CommitID:         parts[2],
		Bookmarks:        strings.Fields(parts[5]),
		EmptyDescription: strings.TrimSpace(parts[6]) == "",
		HasConflict:      parts[3] == "true",
		IsDivergent:      parts[4] == "true",
	}, nil
}

// remoteState folds the bookmark listing into the published/synced pair
// for the given bookmark. Remote refs on the colocation remote are
// skipped. A bookmark with no remote copies yields (false, false).
func remoteState(out []byte, bookmark, wcCommitID string) (hasRemote, isSynced bool) {
	for _, line := range strings.Split(string(out), "\n") {
		if line == "" {
			continue
		}
		parts := strings.SplitN(line, "\t", 3)
		if len(parts) != 3 {
			continue
		}
		name, remote, target := parts[0], parts[1], parts[2]
		if name != bookmark || remote == "" || remote == colocationRemote {
			continue
		}
		hasRemote = true
		if target != "" && target == wcCommitID {
			isSynced = true
		}
	}
	return hasRemote, isSynced
}

// firstBookmark picks the first bookmark name from the ancestor scan
// output. Multiple heads keep backend order; the nearest one wins.
func firstBookmark(out []byte) string {
	for _, line := range strings.Split(string(out), "\n") {
		if fields := strings.Fields(line); len(fields) > 0 {
			return fields[0]
		}
	}
	return ""
}
