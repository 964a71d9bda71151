// Package render turns collected status facts into the prompt line.
// Formatting is pure: display flags decide what is omitted, never
// errors, and the result carries no trailing newline.
package render

import (
	"strings"

	"github.com/grovetools/jjprompt/config"
	"github.com/grovetools/jjprompt/git"
	"github.com/grovetools/jjprompt/jj"
)

// Status tokens, one character each to keep the prompt short.
const (
	tokenConflict  = "×"
	tokenDivergent = "◆"
	tokenEmptyDesc = "∅"
	tokenDirty     = "!"
	tokenUnsynced  = "⇕"
)

// FormatJJ renders the prompt line for a jj working copy.
func FormatJJ(info *jj.Info, cfg *config.Config) string {
	flags := cfg.JJ
	var segments []string

	if !flags.NoPrefix {
		segments = append(segments, cfg.JJSymbol+"on")
	}
	if !flags.NoName {
		if name := bookmarkSegment(info, cfg); name != "" {
			segments = append(segments, paint(nameStyle, name, flags.NoColor))
		}
	}
	if !flags.NoID && info.ChangeID != "" {
		segments = append(segments, changeIDSegment(info, flags))
	}
	if !flags.NoStatus {
		if tokens := jjTokens(info); tokens != "" {
			segments = append(segments, paint(statusStyle, "["+tokens+"]", flags.NoColor))
		}
	}

	return strings.Join(segments, " ")
}

// FormatGit renders the prompt line for a git working tree.
func FormatGit(info *git.Info, cfg *config.Config) string {
	flags := cfg.Git
	var segments []string

	if !flags.NoPrefix {
		segments = append(segments, cfg.GitSymbol+"on")
	}
	if !flags.NoName && info.Branch != "" {
		segments = append(segments, paint(nameStyle, CleanName(info.Branch, cfg), flags.NoColor))
	}
	if !flags.NoID && info.CommitID != "" {
		segments = append(segments, paint(idStyle, info.CommitID, flags.NoColor))
	}
	if !flags.NoStatus {
		if tokens := gitTokens(info); tokens != "" {
			segments = append(segments, paint(statusStyle, "["+tokens+"]", flags.NoColor))
		}
	}

	return strings.Join(segments, " ")
}

// bookmarkSegment assembles the name segment: up to BookmarksLimit
// bookmarks joined with commas, an ellipsis when some were hidden, or
// the ancestor fallback marked with a trailing "+".
func bookmarkSegment(info *jj.Info, cfg *config.Config) string {
	if len(info.Bookmarks) == 0 {
		if info.AncestorBookmark == "" {
			return ""
		}
		return CleanName(info.AncestorBookmark, cfg) + "+"
	}

	names := info.Bookmarks
	limited := false
	if cfg.BookmarksLimit > 0 && len(names) > cfg.BookmarksLimit {
		names = names[:cfg.BookmarksLimit]
		limited = true
	}
	cleaned := make([]string, len(names))
	for i, name := range names {
		cleaned[i] = CleanName(name, cfg)
	}
	segment := strings.Join(cleaned, ",")
	if limited {
		segment += "…"
	}
	return segment
}

// CleanName strips the first matching configured prefix, list order
// being the tie-break, then applies the hard truncation (0 = off).
func CleanName(name string, cfg *config.Config) string {
	for _, prefix := range cfg.StripPrefixes {
		if prefix != "" && strings.HasPrefix(name, prefix) {
			name = name[len(prefix):]
			break
		}
	}
	if cfg.TruncateName > 0 {
		if runes := []rune(name); len(runes) > cfg.TruncateName {
			name = string(runes[:cfg.TruncateName])
		}
	}
	return name
}

// changeIDSegment renders the id two-tone when the unique-prefix
// boundary is known and prefix coloring is on: the disambiguating head
// in blue, the remainder in green.
func changeIDSegment(info *jj.Info, flags config.DisplayFlags) string {
	id := info.ChangeID
	if flags.NoColor {
		return id
	}
	n := info.UniquePrefixLen
	if flags.NoPrefixColor || n <= 0 {
		return idStyle.Render(id)
	}
	if n >= len(id) {
		return uniquePrefixStyle.Render(id)
	}
	return uniquePrefixStyle.Render(id[:n]) + idStyle.Render(id[n:])
}

func jjTokens(info *jj.Info) string {
	var b strings.Builder
	if info.HasConflict {
		b.WriteString(tokenConflict)
	}
	if info.IsDivergent {
		b.WriteString(tokenDivergent)
	}
	if info.EmptyDescription {
		b.WriteString(tokenEmptyDesc)
	}
	if info.HasRemote && !info.IsSynced {
		b.WriteString(tokenUnsynced)
	}
	return b.String()
}

func gitTokens(info *git.Info) string {
	var b strings.Builder
	if info.Conflicted {
		b.WriteString(tokenConflict)
	}
	if info.Dirty {
		b.WriteString(tokenDirty)
	}
	if info.HasRemote && !info.IsSynced {
		b.WriteString(tokenUnsynced)
	}
	return b.String()
}
