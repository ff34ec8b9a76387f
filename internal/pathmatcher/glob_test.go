package pathmatcher

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/buildgridgo/internal/watchman"
)

func TestGlobMatches(t *testing.T) {
	testCases := []struct {
		name    string
		glob    string
		path    string
		matches bool
	}{
		{name: "star within segment", glob: "src/*.go", path: "src/main.go", matches: true},
		{name: "star does not cross separators", glob: "src/*.go", path: "src/sub/main.go", matches: false},
		{name: "doublestar crosses separators", glob: "out/**", path: "out/gen/codegen/gen.txt", matches: true},
		{name: "doublestar with suffix", glob: "**/*.tmp", path: "a/b/c.tmp", matches: true},
		{name: "non-match", glob: "**/*.tmp", path: "a/b/c.txt", matches: false},
		{name: "alternation", glob: "*.{png,jpg}", path: "logo.jpg", matches: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			matcher, err := NewGlob(tc.glob)
			require.NoError(t, err)

			assert.Equal(t, tc.matches, matcher.Matches(tc.path))
			assert.Equal(t, tc.glob, matcher.PathOrGlob())
		})
	}
}

func TestGlobRejectsMalformedPatterns(t *testing.T) {
	for _, pattern := range []string{"", "a[", "x{y"} {
		_, err := NewGlob(pattern)

		require.Error(t, err, "pattern %q", pattern)
		var invalid *InvalidPatternError
		assert.ErrorAs(t, err, &invalid)
	}
}

func TestGlobWatchmanQueryIsCapabilityGated(t *testing.T) {
	matcher, err := NewGlob("out/**")
	require.NoError(t, err)

	withWildmatch := matcher.WatchmanQuery(watchman.Caps(watchman.CapWildmatch))
	assert.Equal(t, watchman.Expr{"match", "out/**", "wholename", map[string]any{"includedotfiles": true}}, withWildmatch)

	// Services without wildmatch reject the flags object.
	withoutWildmatch := matcher.WatchmanQuery(watchman.Caps())
	assert.Equal(t, watchman.Expr{"match", "out/**", "wholename"}, withoutWildmatch)
}
