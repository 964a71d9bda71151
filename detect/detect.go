// Package detect classifies the repository that contains a directory.
// It walks upward through the ancestor chain looking for version-control
// markers and reports the first root it finds.
package detect

import (
	"os"
	"path/filepath"
)

// Kind identifies which version-control system owns a directory tree.
type Kind int

const (
	// KindNone means no repository marker was found.
	KindNone Kind = iota
	// KindJJ is a pure Jujutsu repository (.jj/ only).
	KindJJ
	// KindColocated is a Jujutsu repository colocated with Git (.jj/ and .git at the same root).
	KindColocated
	// KindGit is a pure Git repository (.git only).
	KindGit
)

// String returns a short name for the kind, suitable for logging.
func (k Kind) String() string {
	switch k {
	case KindJJ:
		return "jj"
	case KindColocated:
		return "jj+git"
	case KindGit:
		return "git"
	default:
		return "none"
	}
}

// Result describes the nearest enclosing repository, if any.
type Result struct {
	Kind Kind
	// Root is the directory containing the repository markers.
	// Empty exactly when Kind == KindNone.
	Root string
}

// Detect walks upward from start (inclusive) and classifies the first
// ancestor carrying a repository marker. The .jj marker must be a directory;
// the .git marker may be a directory or a file, the latter indicating a
// linked working tree. The walk only ascends and stops at the filesystem
// root.
func Detect(start string) Result {
	dir, err := filepath.Abs(start)
	if err != nil {
		return Result{Kind: KindNone}
	}

	for {
		hasJJ := isDir(filepath.Join(dir, ".jj"))
		hasGit := exists(filepath.Join(dir, ".git"))

		var kind Kind
		switch {
		case hasJJ && hasGit:
			kind = KindColocated
		case hasJJ:
			kind = KindJJ
		case hasGit:
			kind = KindGit
		default:
			kind = KindNone
		}

		if kind != KindNone {
			return Result{Kind: kind, Root: dir}
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return Result{Kind: KindNone}
		}
		dir = parent
	}
}

// InRepo reports whether start is inside a repository of any kind.
func InRepo(start string) bool {
	return Detect(start).Kind != KindNone
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
