// Package pathmatcher represents "does this path match this pattern" as
// data: a closed family of immutable matcher values, each knowing how to
// test a path, render itself as a path-or-glob string, and compile itself
// into a watch-service query expression for a given capability set.
package pathmatcher

import (
	"fmt"

	"github.com/vk/buildgridgo/internal/watchman"
)

// PathMatcher is a pure predicate over workspace-relative, slash-separated
// paths. Implementations are stateless value objects, interchangeable
// wherever a matcher is expected.
type PathMatcher interface {
	// Matches reports whether the given path matches. Pure, total, no I/O.
	Matches(path string) bool

	// PathOrGlob returns the canonical textual form of the matcher for
	// display and config round-tripping.
	PathOrGlob() string

	// WatchmanQuery renders the matcher as a watch-service query
	// expression. The capability set is the set the service currently
	// advertises; variants whose rendering is capability-independent
	// ignore it.
	WatchmanQuery(caps watchman.CapabilitySet) watchman.Expr
}

// InvalidPatternError reports a pattern that cannot be represented by the
// requested matcher variant.
type InvalidPatternError struct {
	Pattern string
	Reason  string
}

func (e *InvalidPatternError) Error() string {
	return fmt.Sprintf("invalid path pattern %q: %s", e.Pattern, e.Reason)
}
