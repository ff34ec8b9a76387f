// Package app wires the loading, linking, resolution, and checking stages
// into one workspace evaluation.
package app

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/vk/buildgridgo/internal/buildfile"
	"github.com/vk/buildgridgo/internal/ctxlog"
	"github.com/vk/buildgridgo/internal/pathmatcher"
	"github.com/vk/buildgridgo/internal/pathschecker"
	"github.com/vk/buildgridgo/internal/rulegraph"
	"github.com/vk/buildgridgo/internal/srcpath"
	"github.com/vk/buildgridgo/internal/watchman"
)

// App evaluates one workspace: it loads the build files, builds and links
// the rule graph, resolves and validates every rule's sources, and
// optionally ships the ignore matchers to the watch service.
type App struct {
	outW    io.Writer
	cfg     *Config
	checker pathschecker.Checker
}

// NewApp creates an App with the default stat-based paths checker.
func NewApp(outW io.Writer, cfg *Config) *App {
	return &App{
		outW:    outW,
		cfg:     cfg,
		checker: pathschecker.NewStatChecker(),
	}
}

// Run performs the full evaluation. All failures are structural errors in
// the build definitions and abort the run.
func (a *App) Run(ctx context.Context) error {
	logger := newLogger(a.cfg.LogLevel, a.cfg.LogFormat, a.outW)
	ctx = ctxlog.WithLogger(ctx, logger)

	ws, err := buildfile.Load(ctx, a.cfg.WorkspacePath)
	if err != nil {
		return err
	}
	logger.Info("Workspace loaded.", "rules", len(ws.Rules), "output_root", ws.OutputRoot)

	snapshot, err := rulegraph.NewSnapshot(ws.Rules)
	if err != nil {
		return err
	}

	resolver := srcpath.NewResolver(snapshot)
	if err := snapshot.Link(ctx, resolver); err != nil {
		return err
	}
	if err := snapshot.DetectCycles(); err != nil {
		return err
	}
	snapshot.AssignOutputs(ctx, ws.OutputRoot)

	if err := a.evaluateRules(ctx, ws, snapshot, resolver); err != nil {
		return err
	}

	if a.cfg.WatchEndpoint != "" {
		if err := a.subscribeIgnores(ctx, ws); err != nil {
			return err
		}
	}

	logger.Info("Workspace evaluation finished.", "rules", len(ws.Rules))
	return nil
}

// evaluateRules resolves every rule's inputs, validates the literal ones
// against the filesystem, and reports the resolution summary.
func (a *App) evaluateRules(ctx context.Context, ws *buildfile.Workspace, snapshot *rulegraph.Snapshot, resolver *srcpath.Resolver) error {
	fsys := os.DirFS(ws.Root)

	for _, t := range snapshot.Targets() {
		ruleCtx := ctxlog.With(ctx, "target", t.String())
		srcs := snapshot.SrcsOf(t)

		paths, err := resolver.ResolveAll(srcs)
		if err != nil {
			return fmt.Errorf("%s: srcs: %w", t, err)
		}

		names, err := resolver.Names(t, "srcs", srcs)
		if err != nil {
			return err
		}

		hashable := resolver.FilterHashableInputs(srcs)
		checkable := withoutIgnored(hashable, ws.Ignores)
		if !a.cfg.SkipSourceCheck {
			if err := a.checker.CheckFilePaths(fsys, t, checkable); err != nil {
				return err
			}
		}

		ctxlog.FromContext(ruleCtx).Info("Rule resolved.",
			"inputs", len(paths),
			"names", len(names),
			"hashable", len(hashable),
			"deps", len(snapshot.DependenciesOf(t)),
		)
	}
	return nil
}

// withoutIgnored drops paths matched by any ignore matcher.
func withoutIgnored(paths []string, ignores []pathmatcher.PathMatcher) []string {
	if len(ignores) == 0 {
		return paths
	}
	kept := paths[:0:0]
	for _, p := range paths {
		ignored := false
		for _, matcher := range ignores {
			if matcher.Matches(p) {
				ignored = true
				break
			}
		}
		if !ignored {
			kept = append(kept, p)
		}
	}
	return kept
}

// subscribeIgnores compiles the workspace ignore matchers into watch
// queries against the service's advertised capabilities and subscribes.
func (a *App) subscribeIgnores(ctx context.Context, ws *buildfile.Workspace) error {
	logger := ctxlog.FromContext(ctx)
	if len(ws.Ignores) == 0 {
		logger.Debug("No ignore matchers configured, skipping watch subscription.")
		return nil
	}

	client, err := watchman.Dial(ctx, a.cfg.WatchEndpoint)
	if err != nil {
		return err
	}
	defer client.Close()

	caps := client.Capabilities()
	exprs := make([]watchman.Expr, 0, len(ws.Ignores))
	for _, matcher := range ws.Ignores {
		exprs = append(exprs, matcher.WatchmanQuery(caps))
	}
	return client.Subscribe(ctx, ws.Root, "buildgrid-ignores", exprs...)
}
