// Package buildfile loads a workspace's HCL build definitions: BUILD.hcl
// files declaring rules and an optional workspace.hcl carrying ignore
// patterns and the output root.
package buildfile

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"

	"github.com/vk/buildgridgo/internal/ctxlog"
	"github.com/vk/buildgridgo/internal/pathmatcher"
	"github.com/vk/buildgridgo/internal/srcpath"
	"github.com/vk/buildgridgo/internal/target"
)

const (
	// BuildFileName is the per-package rule definition file.
	BuildFileName = "BUILD.hcl"
	// WorkspaceFileName is the optional workspace-level configuration file.
	WorkspaceFileName = "workspace.hcl"
	// DefaultOutputRoot is used when workspace.hcl sets no output_root.
	DefaultOutputRoot = "out"
)

// RuleDef is the format-agnostic representation of one `rule` block,
// its sources already parsed into symbolic references.
type RuleDef struct {
	Target     target.Target
	Srcs       []srcpath.SourcePath
	Out        string // declared output file name, empty if the rule builds nothing
	OutputName string // optional custom output name
}

// Workspace is the artifact of loading: every rule definition found under
// the root, plus workspace-level configuration.
type Workspace struct {
	Root       string
	OutputRoot string
	Rules      []*RuleDef
	Ignores    []pathmatcher.PathMatcher
}

// Load walks the workspace rooted at root, parses workspace.hcl and every
// BUILD.hcl, and returns the combined model. Two definitions of the same
// target are a hard error.
func Load(ctx context.Context, root string) (*Workspace, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Build file loader started.", "root", root)

	parser := hclparse.NewParser()

	ws := &Workspace{Root: root, OutputRoot: DefaultOutputRoot}
	if err := loadWorkspaceFile(parser, ws); err != nil {
		return nil, err
	}

	buildFiles, err := findBuildFiles(root, ws.OutputRoot)
	if err != nil {
		return nil, err
	}
	logger.Debug("Discovered build files.", "count", len(buildFiles))

	seen := make(map[target.Target]string)
	for _, file := range buildFiles {
		hclFile, diags := parser.ParseHCLFile(file)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to parse build file %s: %w", file, diags)
		}

		basePath, err := basePathOf(ws.Root, file)
		if err != nil {
			return nil, err
		}

		var decoded fileRoot
		if diags := gohcl.DecodeBody(hclFile.Body, evalContext(basePath, ws.OutputRoot), &decoded); diags.HasErrors() {
			return nil, fmt.Errorf("failed to decode build file %s: %w", file, diags)
		}

		for _, block := range decoded.Rules {
			def, err := translateRule(block, basePath)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", file, err)
			}
			if previous, exists := seen[def.Target]; exists {
				return nil, fmt.Errorf("%s: duplicate definition of %s (already defined in %s)", file, def.Target, previous)
			}
			seen[def.Target] = file
			ws.Rules = append(ws.Rules, def)
		}
	}

	logger.Debug("Build file loader finished.", "rules", len(ws.Rules), "ignores", len(ws.Ignores))
	return ws, nil
}

// evalContext exposes per-package variables to build-file expressions,
// so a rule can write e.g. `srcs = ["${basepath}/gen.txt"]`.
func evalContext(basePath, outputRoot string) *hcl.EvalContext {
	return &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"basepath":    cty.StringVal(basePath),
			"output_root": cty.StringVal(outputRoot),
		},
	}
}

// loadWorkspaceFile parses workspace.hcl if present and fills in the
// workspace-level configuration.
func loadWorkspaceFile(parser *hclparse.Parser, ws *Workspace) error {
	file := filepath.Join(ws.Root, WorkspaceFileName)
	if _, err := os.Stat(file); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to stat %s: %w", file, err)
	}

	hclFile, diags := parser.ParseHCLFile(file)
	if diags.HasErrors() {
		return fmt.Errorf("failed to parse workspace file %s: %w", file, diags)
	}

	var root workspaceRoot
	if diags := gohcl.DecodeBody(hclFile.Body, nil, &root); diags.HasErrors() {
		return fmt.Errorf("failed to decode workspace file %s: %w", file, diags)
	}

	if root.OutputRoot != "" {
		ws.OutputRoot = root.OutputRoot
	}
	for _, pattern := range root.Ignore {
		matcher, err := compileIgnore(pattern)
		if err != nil {
			return fmt.Errorf("%s: %w", file, err)
		}
		ws.Ignores = append(ws.Ignores, matcher)
	}
	return nil
}

// compileIgnore picks the matcher variant for an ignore pattern: globs for
// patterns carrying metacharacters, exact matches for plain paths.
func compileIgnore(pattern string) (pathmatcher.PathMatcher, error) {
	if strings.ContainsAny(pattern, "*?[{") {
		return pathmatcher.NewGlob(pattern)
	}
	return pathmatcher.NewExact(pattern)
}

// findBuildFiles walks the workspace for BUILD.hcl files, skipping the
// output root and dot directories.
func findBuildFiles(root, outputRoot string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			rel, relErr := filepath.Rel(root, p)
			if relErr != nil {
				return relErr
			}
			if rel == outputRoot || (rel != "." && strings.HasPrefix(d.Name(), ".")) {
				return fs.SkipDir
			}
			return nil
		}
		if d.Name() == BuildFileName {
			files = append(files, p)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan workspace %s: %w", root, err)
	}
	return files, nil
}

// basePathOf derives the package base path of a build file: its directory
// relative to the workspace root, slash-separated, empty at the root.
func basePathOf(root, file string) (string, error) {
	rel, err := filepath.Rel(root, filepath.Dir(file))
	if err != nil {
		return "", fmt.Errorf("failed to relativize %s: %w", file, err)
	}
	if rel == "." {
		return "", nil
	}
	return filepath.ToSlash(rel), nil
}

// translateRule converts one decoded rule block into a RuleDef, parsing
// each source string into its symbolic reference form.
func translateRule(block *RuleBlock, basePath string) (*RuleDef, error) {
	tgt, err := target.New(basePath, block.Name)
	if err != nil {
		return nil, err
	}

	def := &RuleDef{
		Target:     tgt,
		Out:        block.Out,
		OutputName: block.OutputName,
	}
	for _, src := range block.Srcs {
		ref, err := parseSrc(src, basePath)
		if err != nil {
			return nil, fmt.Errorf("%s: src %q: %w", tgt, src, err)
		}
		def.Srcs = append(def.Srcs, ref)
	}
	return def, nil
}

// parseSrc classifies one source string: target labels become rule-output
// references, everything else is a literal path relative to the package.
func parseSrc(src, basePath string) (srcpath.SourcePath, error) {
	if strings.HasPrefix(src, "//") || strings.HasPrefix(src, ":") {
		tgt, err := target.ParseRelative(src, basePath)
		if err != nil {
			return nil, err
		}
		return srcpath.NewRuleOutput(tgt), nil
	}
	if path.IsAbs(src) {
		return nil, fmt.Errorf("literal src paths must be package-relative")
	}
	return srcpath.NewPath(path.Join(basePath, src)), nil
}
