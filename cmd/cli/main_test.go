package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/buildgridgo/internal/cli"
)

func TestRun_ShouldExit(t *testing.T) {
	t.Parallel()

	out := &bytes.Buffer{}

	// The "-h" (help) flag should cause cli.Parse to return shouldExit=true.
	err := run(out, []string{"-h"})

	assert.NoError(t, err)
	assert.Contains(t, out.String(), "Usage:")
}

func TestRun_NoWorkspacePrintsUsage(t *testing.T) {
	t.Parallel()

	out := &bytes.Buffer{}

	err := run(out, []string{})

	assert.NoError(t, err)
	assert.Contains(t, out.String(), "WORKSPACE_PATH")
}

func TestRun_InvalidFlagReturnsExitError(t *testing.T) {
	t.Parallel()

	err := run(&bytes.Buffer{}, []string{"-log-level", "loud", "somewhere"})

	require.Error(t, err)
	exitErr, ok := err.(*cli.ExitError)
	require.True(t, ok)
	assert.Equal(t, 2, exitErr.Code)
	assert.True(t, strings.Contains(exitErr.Message, "log-level"))
}

func TestRun_EvaluatesWorkspace(t *testing.T) {
	t.Parallel()

	tempDir := t.TempDir()
	buildFile := `
rule "lib" {
  srcs = ["main.x"]
  out  = "lib.a"
}
`
	require.NoError(t, os.WriteFile(filepath.Join(tempDir, "BUILD.hcl"), []byte(buildFile), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(tempDir, "main.x"), []byte("main"), 0o600))

	err := run(&bytes.Buffer{}, []string{"-log-level", "error", "-log-format", "text", tempDir})

	assert.NoError(t, err)
}

func TestRun_MalformedBuildFileFails(t *testing.T) {
	t.Parallel()

	tempDir := t.TempDir()
	invalidHCL := `
rule "lib" {
  srcs = ["main.x"
`
	require.NoError(t, os.WriteFile(filepath.Join(tempDir, "BUILD.hcl"), []byte(invalidHCL), 0o600))

	err := run(&bytes.Buffer{}, []string{"-log-level", "error", tempDir})

	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "failed to parse"))
}
