package target

import (
	"fmt"
	"strings"
)

// Target is the structured representation of a build target label such as
// `//app/lib:parser`. The base path locates the package directory relative
// to the workspace root (slash-separated, empty for the root package) and
// the short name identifies the rule within that package.
//
// Target is a comparable value type: two targets are equal iff their base
// paths and short names are equal, so it is usable directly as a map key.
type Target struct {
	basePath  string
	shortName string
}

// New assembles a target from an already-split base path and short name,
// validating both parts.
func New(basePath, shortName string) (Target, error) {
	if err := validateBasePath(basePath); err != nil {
		return Target{}, err
	}
	if !isValidName(shortName) {
		return Target{}, fmt.Errorf("invalid target name: %q", shortName)
	}
	return Target{basePath: basePath, shortName: shortName}, nil
}

// BasePath returns the package directory relative to the workspace root,
// slash-separated. It is empty for targets in the root package.
func (t Target) BasePath() string {
	return t.basePath
}

// ShortName returns the rule's name within its package namespace.
func (t Target) ShortName() string {
	return t.shortName
}

// String serializes the target into its canonical label representation,
// e.g. `//app/lib:parser`.
func (t Target) String() string {
	var sb strings.Builder
	sb.WriteString("//")
	sb.WriteString(t.basePath)
	sb.WriteByte(':')
	sb.WriteString(t.shortName)
	return sb.String()
}

// Equal reports whether two targets identify the same rule.
func (t Target) Equal(other Target) bool {
	return t == other
}

// IsZero reports whether the target is the zero value, which no valid
// label parses to.
func (t Target) IsZero() bool {
	return t == Target{}
}
