// Package pathschecker validates that the concrete paths a rule declares
// actually exist in the workspace, failing loudly with the owning target's
// identity. It consumes fully resolved paths only; unresolved symbolic
// references never reach a checker.
package pathschecker

import (
	"io/fs"

	"github.com/vk/buildgridgo/internal/target"
)

// Checker performs existence and type checks of declared paths against a
// filesystem handle.
type Checker interface {
	// CheckPaths verifies every path exists, with no constraint on type.
	CheckPaths(fsys fs.FS, owner target.Target, paths []string) error

	// CheckFilePaths verifies every path exists and is a regular file.
	CheckFilePaths(fsys fs.FS, owner target.Target, filePaths []string) error

	// CheckDirPaths verifies every path exists and is a directory.
	CheckDirPaths(fsys fs.FS, owner target.Target, dirPaths []string) error
}
