package pathschecker

import (
	"fmt"
	"io/fs"

	"github.com/vk/buildgridgo/internal/target"
)

// statChecker validates paths by stat-ing them against the given
// filesystem handle.
type statChecker struct{}

// NewStatChecker returns the default stat-based checker.
func NewStatChecker() Checker {
	return statChecker{}
}

func (statChecker) CheckPaths(fsys fs.FS, owner target.Target, paths []string) error {
	for _, p := range paths {
		if _, err := fs.Stat(fsys, p); err != nil {
			return fmt.Errorf("%s references non-existent path %s", owner, p)
		}
	}
	return nil
}

func (statChecker) CheckFilePaths(fsys fs.FS, owner target.Target, filePaths []string) error {
	for _, p := range filePaths {
		info, err := fs.Stat(fsys, p)
		if err != nil {
			return fmt.Errorf("%s references non-existent file %s", owner, p)
		}
		if info.IsDir() {
			return fmt.Errorf("%s expected regular file at %s, found directory", owner, p)
		}
	}
	return nil
}

func (statChecker) CheckDirPaths(fsys fs.FS, owner target.Target, dirPaths []string) error {
	for _, p := range dirPaths {
		info, err := fs.Stat(fsys, p)
		if err != nil {
			return fmt.Errorf("%s references non-existent directory %s", owner, p)
		}
		if !info.IsDir() {
			return fmt.Errorf("%s expected directory at %s, found regular file", owner, p)
		}
	}
	return nil
}
