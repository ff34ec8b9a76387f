package target

import (
	"fmt"
	"regexp"
	"strings"
)

// labelRegex splits a fully-qualified label into its base path and short
// name, e.g. `//app/lib:parser`.
var labelRegex = regexp.MustCompile(`^//([^:]*):([a-zA-Z0-9_.-]+)$`)

// isValidName checks for undesirable but technically matchable names.
func isValidName(name string) bool {
	if name == "" || name == "." || name == ".." || name == "-" {
		return false
	}
	return strings.IndexFunc(name, func(r rune) bool {
		return !isNameRune(r)
	}) == -1
}

func isNameRune(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		return true
	case r == '_', r == '.', r == '-':
		return true
	}
	return false
}

func validateBasePath(basePath string) error {
	if basePath == "" {
		return nil
	}
	for _, segment := range strings.Split(basePath, "/") {
		if !isValidName(segment) {
			return fmt.Errorf("invalid base path segment: %q", segment)
		}
	}
	return nil
}

// Parse creates a Target by parsing its canonical label representation.
// Only fully-qualified labels (`//base/path:name`) are accepted; use
// ParseRelative for package-relative labels.
func Parse(label string) (Target, error) {
	if label == "" {
		return Target{}, fmt.Errorf("target label cannot be empty")
	}

	matches := labelRegex.FindStringSubmatch(label)
	if matches == nil {
		return Target{}, fmt.Errorf("invalid target label format: %q", label)
	}

	return New(matches[1], matches[2])
}

// ParseRelative parses a label that may be package-relative (`:name`),
// resolving it against the given base path. Fully-qualified labels are
// parsed as by Parse and ignore the base path.
func ParseRelative(label, basePath string) (Target, error) {
	if strings.HasPrefix(label, ":") {
		return New(basePath, label[1:])
	}
	return Parse(label)
}

// MustParse is a Parse that panics on malformed labels. It is intended
// for statically known labels in tests and fixtures.
func MustParse(label string) Target {
	t, err := Parse(label)
	if err != nil {
		panic(err)
	}
	return t
}
