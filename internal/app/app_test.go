package app

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeWorkspace lays out a workspace under a temp dir from a map of
// relative file paths to contents.
func writeWorkspace(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for rel, content := range files {
		full := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(full), 0o755))
		require.NoError(t, os.WriteFile(full, []byte(content), 0o600))
	}
	return root
}

func newTestApp(t *testing.T, root string) (*App, *bytes.Buffer) {
	t.Helper()
	cfg, err := NewConfig(Config{
		WorkspacePath: root,
		LogFormat:     "text",
		LogLevel:      "error",
	})
	require.NoError(t, err)
	out := &bytes.Buffer{}
	return NewApp(out, cfg), out
}

func TestRun_ResolvesWorkspace(t *testing.T) {
	root := writeWorkspace(t, map[string]string{
		"workspace.hcl": `ignore = [".idea"]`,
		"gen/BUILD.hcl": `
rule "codegen" {
  srcs = ["schema.def"]
  out  = "gen.txt"
}
`,
		"app/BUILD.hcl": `
rule "lib" {
  srcs = ["src/Main.x", "//gen:codegen"]
  out  = "lib.a"
}
`,
		"gen/schema.def": "schema",
		"app/src/Main.x": "main",
	})
	app, _ := newTestApp(t, root)

	err := app.Run(context.Background())

	assert.NoError(t, err)
}

func TestRun_FailsOnMissingSourceFile(t *testing.T) {
	root := writeWorkspace(t, map[string]string{
		"app/BUILD.hcl": `
rule "lib" {
  srcs = ["src/Main.x"]
  out  = "lib.a"
}
`,
	})
	app, _ := newTestApp(t, root)

	err := app.Run(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "//app:lib")
	assert.Contains(t, err.Error(), "app/src/Main.x")
}

func TestRun_SkipSourceCheckToleratesMissingFiles(t *testing.T) {
	root := writeWorkspace(t, map[string]string{
		"app/BUILD.hcl": `
rule "lib" {
  srcs = ["src/Main.x"]
  out  = "lib.a"
}
`,
	})
	cfg, err := NewConfig(Config{
		WorkspacePath:   root,
		LogFormat:       "text",
		LogLevel:        "error",
		SkipSourceCheck: true,
	})
	require.NoError(t, err)

	err = NewApp(&bytes.Buffer{}, cfg).Run(context.Background())

	assert.NoError(t, err)
}

func TestRun_FailsOnDependencyCycle(t *testing.T) {
	root := writeWorkspace(t, map[string]string{
		"pkg/BUILD.hcl": `
rule "a" {
  srcs = [":b"]
  out  = "a.out"
}

rule "b" {
  srcs = [":a"]
  out  = "b.out"
}
`,
	})
	app, _ := newTestApp(t, root)

	err := app.Run(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "cycle")
}

func TestRun_FailsOnReferenceToRuleWithoutOutput(t *testing.T) {
	root := writeWorkspace(t, map[string]string{
		"gen/BUILD.hcl": `
rule "docs" {
  srcs = ["README.md"]
}
`,
		"app/BUILD.hcl": `
rule "lib" {
  srcs = ["//gen:docs"]
  out  = "lib.a"
}
`,
		"gen/README.md": "docs",
	})
	app, _ := newTestApp(t, root)

	err := app.Run(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "no known output for //gen:docs")
}

func TestRun_IgnoredSourcesAreNotChecked(t *testing.T) {
	// The literal source matches an ignore pattern and does not exist on
	// disk; evaluation must still succeed because ignored paths are
	// excluded from filesystem validation.
	root := writeWorkspace(t, map[string]string{
		"workspace.hcl": `ignore = ["app/generated/**"]`,
		"app/BUILD.hcl": `
rule "lib" {
  srcs = ["src/Main.x", "generated/stub.x"]
  out  = "lib.a"
}
`,
		"app/src/Main.x": "main",
	})
	app, _ := newTestApp(t, root)

	err := app.Run(context.Background())

	assert.NoError(t, err)
}

func TestNewConfig_RequiresWorkspacePath(t *testing.T) {
	_, err := NewConfig(Config{})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "WorkspacePath")
}
