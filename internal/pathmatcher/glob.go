package pathmatcher

import (
	"github.com/bmatcuk/doublestar/v4"

	"github.com/vk/buildgridgo/internal/watchman"
)

// GlobPathMatcher matches workspace-relative paths against a glob pattern
// with `**` support.
type GlobPathMatcher struct {
	glob string
}

// NewGlob constructs a glob matcher, validating the pattern.
func NewGlob(glob string) (GlobPathMatcher, error) {
	if glob == "" {
		return GlobPathMatcher{}, &InvalidPatternError{Pattern: glob, Reason: "glob is empty"}
	}
	if !doublestar.ValidatePattern(glob) {
		return GlobPathMatcher{}, &InvalidPatternError{Pattern: glob, Reason: "malformed glob"}
	}
	return GlobPathMatcher{glob: glob}, nil
}

// Matches reports whether the given path matches the glob.
func (m GlobPathMatcher) Matches(path string) bool {
	return doublestar.MatchUnvalidated(m.glob, path)
}

// PathOrGlob returns the glob pattern.
func (m GlobPathMatcher) PathOrGlob() string {
	return m.glob
}

// WatchmanQuery renders a wholename match for the glob. The capability set
// is load-bearing here: services advertising wildmatch accept the flags
// object requesting dot-file inclusion, while older fnmatch-style services
// reject it, so the flags are omitted when the capability is absent.
func (m GlobPathMatcher) WatchmanQuery(caps watchman.CapabilitySet) watchman.Expr {
	return watchman.Match(m.glob, caps.Has(watchman.CapWildmatch))
}
