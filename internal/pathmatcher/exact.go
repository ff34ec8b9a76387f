package pathmatcher

import (
	"strings"

	"github.com/vk/buildgridgo/internal/watchman"
)

// globMetacharacters are the runes an exact pattern may not contain.
const globMetacharacters = "*?[]{}"

// ExactPathMatcher matches exactly one workspace-relative path.
type ExactPathMatcher struct {
	path string
}

// NewExact constructs an exact matcher. Patterns containing glob
// metacharacters are rejected so that an exact matcher never silently
// behaves like a glob.
func NewExact(path string) (ExactPathMatcher, error) {
	if path == "" {
		return ExactPathMatcher{}, &InvalidPatternError{Pattern: path, Reason: "path is empty"}
	}
	if strings.ContainsAny(path, globMetacharacters) {
		return ExactPathMatcher{}, &InvalidPatternError{Pattern: path, Reason: "exact matcher cannot contain glob metacharacters"}
	}
	return ExactPathMatcher{path: path}, nil
}

// Matches reports whether the given path is exactly the matcher's path.
func (m ExactPathMatcher) Matches(path string) bool {
	return path == m.path
}

// PathOrGlob returns the matched path itself.
func (m ExactPathMatcher) PathOrGlob() string {
	return m.path
}

// WatchmanQuery renders a wholename match requesting dot-file inclusion.
// The rendering is the same for every capability set.
func (m ExactPathMatcher) WatchmanQuery(watchman.CapabilitySet) watchman.Expr {
	return watchman.Match(m.path, true)
}
