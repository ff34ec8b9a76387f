package target

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	testCases := []struct {
		name          string
		label         string
		expectErr     bool
		expectedBase  string
		expectedShort string
	}{
		{
			name:          "simple label",
			label:         "//app:lib",
			expectedBase:  "app",
			expectedShort: "lib",
		},
		{
			name:          "nested base path",
			label:         "//app/src/parser:parser",
			expectedBase:  "app/src/parser",
			expectedShort: "parser",
		},
		{
			name:          "root package",
			label:         "//:all",
			expectedBase:  "",
			expectedShort: "all",
		},
		{
			name:          "name with dots and dashes",
			label:         "//gen:codegen-v2.1",
			expectedBase:  "gen",
			expectedShort: "codegen-v2.1",
		},
		{
			name:      "error - empty label",
			label:     "",
			expectErr: true,
		},
		{
			name:      "error - missing leading slashes",
			label:     "app:lib",
			expectErr: true,
		},
		{
			name:      "error - missing name",
			label:     "//app:",
			expectErr: true,
		},
		{
			name:      "error - empty base path segment",
			label:     "//app//src:lib",
			expectErr: true,
		},
		{
			name:      "error - dot-dot base segment",
			label:     "//app/..:lib",
			expectErr: true,
		},
		{
			name:      "error - name with slash",
			label:     "//app:src/lib",
			expectErr: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			tgt, err := Parse(tc.label)

			if tc.expectErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expectedBase, tgt.BasePath())
			assert.Equal(t, tc.expectedShort, tgt.ShortName())
			assert.Equal(t, tc.label, tgt.String(), "String should round-trip the canonical label")
		})
	}
}

func TestParseRelative(t *testing.T) {
	testCases := []struct {
		name      string
		label     string
		basePath  string
		expectErr bool
		expected  string
	}{
		{
			name:     "package-relative label",
			label:    ":codegen",
			basePath: "gen",
			expected: "//gen:codegen",
		},
		{
			name:     "package-relative label in root package",
			label:    ":all",
			basePath: "",
			expected: "//:all",
		},
		{
			name:     "fully-qualified label ignores base path",
			label:    "//app:lib",
			basePath: "gen",
			expected: "//app:lib",
		},
		{
			name:      "error - bare name is not a label",
			label:     "codegen",
			basePath:  "gen",
			expectErr: true,
		},
		{
			name:      "error - empty relative name",
			label:     ":",
			basePath:  "gen",
			expectErr: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			tgt, err := ParseRelative(tc.label, tc.basePath)

			if tc.expectErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expected, tgt.String())
		})
	}
}

func TestEqual(t *testing.T) {
	a := MustParse("//app:lib")
	b := MustParse("//app:lib")
	c := MustParse("//app:lib2")

	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(c))
	assert.True(t, a == b, "targets must be usable as comparable map keys")
	assert.False(t, a.IsZero())
	assert.True(t, Target{}.IsZero())
}
