package pathschecker

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/buildgridgo/internal/target"
)

func testFS() fstest.MapFS {
	return fstest.MapFS{
		"app/src/Main.x": &fstest.MapFile{Data: []byte("main")},
		"app/data/.keep": &fstest.MapFile{Data: []byte{}},
	}
}

func TestCheckPaths(t *testing.T) {
	checker := NewStatChecker()
	owner := target.MustParse("//app:lib")

	err := checker.CheckPaths(testFS(), owner, []string{"app/src/Main.x", "app/data"})
	require.NoError(t, err)

	err = checker.CheckPaths(testFS(), owner, []string{"app/missing.x"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "//app:lib")
	assert.Contains(t, err.Error(), "app/missing.x")
}

func TestCheckFilePaths(t *testing.T) {
	checker := NewStatChecker()
	owner := target.MustParse("//app:lib")

	err := checker.CheckFilePaths(testFS(), owner, []string{"app/src/Main.x"})
	require.NoError(t, err)

	err = checker.CheckFilePaths(testFS(), owner, []string{"app/data"})
	require.Error(t, err, "a directory must not satisfy a file constraint")
	assert.Contains(t, err.Error(), "//app:lib")

	err = checker.CheckFilePaths(testFS(), owner, []string{"app/missing.x"})
	require.Error(t, err)
}

func TestCheckDirPaths(t *testing.T) {
	checker := NewStatChecker()
	owner := target.MustParse("//app:lib")

	err := checker.CheckDirPaths(testFS(), owner, []string{"app/data"})
	require.NoError(t, err)

	err = checker.CheckDirPaths(testFS(), owner, []string{"app/src/Main.x"})
	require.Error(t, err, "a regular file must not satisfy a directory constraint")
	assert.Contains(t, err.Error(), "app/src/Main.x")
}
