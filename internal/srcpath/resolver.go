package srcpath

import (
	"fmt"
	"path"
	"path/filepath"
	"strings"

	"github.com/vk/buildgridgo/internal/target"
)

// Resolver translates SourcePath values into concrete workspace-relative
// paths, logical names, and dependency classifications.
//
// A Resolver is a pure read-only service over one immutable graph
// snapshot: construct one per snapshot, never share a global instance.
// All methods are side-effect free and safe for concurrent use as long as
// the underlying RuleFinder is immutable for the duration of the calls.
type Resolver struct {
	rules RuleFinder
}

// NewResolver creates a resolver over the given graph snapshot.
func NewResolver(rules RuleFinder) *Resolver {
	if rules == nil {
		panic("srcpath: NewResolver called with nil RuleFinder")
	}
	return &Resolver{rules: rules}
}

// Resolve converts a source path to a concrete workspace-relative path.
// Literal references resolve to their stored path unchanged. Rule-output
// references resolve to the producing rule's output path; a missing rule
// yields an UnknownTargetError and a rule without an assigned output
// yields an UnresolvedOutputError, both naming the producing target.
func (r *Resolver) Resolve(src SourcePath) (string, error) {
	switch s := src.(type) {
	case PathSourcePath:
		return s.RelPath, nil
	case RuleOutputSourcePath:
		rule, ok := r.rules.RuleFor(s.Target)
		if !ok {
			return "", &UnknownTargetError{Target: s.Target}
		}
		out, ok := rule.OutputPath()
		if !ok {
			return "", &UnresolvedOutputError{Target: s.Target}
		}
		return out, nil
	default:
		return "", fmt.Errorf("unsupported source path type %T", src)
	}
}

// ResolveAll resolves a sequence of source paths, preserving input order
// and duplicates. It is a projection, not a deduplication. The first
// failing entry aborts the whole call.
func (r *Resolver) ResolveAll(srcs []SourcePath) ([]string, error) {
	paths := make([]string, 0, len(srcs))
	for _, src := range srcs {
		p, err := r.Resolve(src)
		if err != nil {
			return nil, err
		}
		paths = append(paths, p)
	}
	return paths, nil
}

// ResolveMapped applies Resolve to every value of the given map. It fails
// atomically: any entry failing to resolve yields a nil map and the error.
//
// It is a free function because Go methods cannot introduce type
// parameters for the key type.
func ResolveMapped[K comparable](r *Resolver, srcs map[K]SourcePath) (map[K]string, error) {
	paths := make(map[K]string, len(srcs))
	for key, src := range srcs {
		p, err := r.Resolve(src)
		if err != nil {
			return nil, err
		}
		paths[key] = p
	}
	return paths, nil
}

// OwnerOf returns the target of the rule whose output src refers to, and
// ok=false for literal references. It never resolves the output path.
func (r *Resolver) OwnerOf(src SourcePath) (target.Target, bool) {
	if s, ok := src.(RuleOutputSourcePath); ok {
		return s.Target, true
	}
	return target.Target{}, false
}

// LiteralOf returns the workspace-relative path src stores if it is a
// literal reference, and ok=false for rule-output references.
func (r *Resolver) LiteralOf(src SourcePath) (string, bool) {
	if s, ok := src.(PathSourcePath); ok {
		return s.RelPath, true
	}
	return "", false
}

// IsExtensionIn resolves src and reports whether the resolved path's
// extension (without the leading dot, compared case-sensitively) is in the
// given set. Resolution goes through the full path so that a rule-output
// reference to a generated file is classified by the generated artifact.
func (r *Resolver) IsExtensionIn(src SourcePath, extensions map[string]struct{}) (bool, error) {
	p, err := r.Resolve(src)
	if err != nil {
		return false, err
	}
	ext := strings.TrimPrefix(path.Ext(p), ".")
	_, ok := extensions[ext]
	return ok, nil
}

// Name returns the logical display name of src as an input of the rule
// identified by owner.
//
// Rule-output references are named by their producer: the producer's
// custom output name when the rule has that capability, otherwise the
// producer target's short name. Literal references are named by their
// path relative to the owning rule's base directory, rendered with
// forward slashes. The asymmetry is deliberate: two rules referencing the
// same file under different bases get different, stable names, while a
// rule output keeps one name no matter who consumes it.
func (r *Resolver) Name(owner target.Target, src SourcePath) (string, error) {
	switch s := src.(type) {
	case RuleOutputSourcePath:
		rule, ok := r.rules.RuleFor(s.Target)
		if !ok {
			return "", &UnknownTargetError{Target: s.Target}
		}
		if named, ok := rule.(HasOutputName); ok {
			return named.OutputName(), nil
		}
		return rule.Target().ShortName(), nil
	case PathSourcePath:
		rel, err := filepath.Rel(filepath.FromSlash(owner.BasePath()), filepath.FromSlash(s.RelPath))
		if err != nil {
			return "", fmt.Errorf("%s: cannot name input %s: %w", owner, s.RelPath, err)
		}
		return filepath.ToSlash(rel), nil
	default:
		return "", fmt.Errorf("unsupported source path type %T", src)
	}
}

// Names resolves the logical names for a group of source paths under one
// rule parameter into a fresh name-to-reference map. The first name
// collision aborts the call with a DuplicateNameError naming the target,
// the parameter, and the colliding name; no partially populated map is
// returned. Input order determines which duplicate is reported first.
func (r *Resolver) Names(owner target.Target, parameter string, srcs []SourcePath) (map[string]SourcePath, error) {
	named := make(map[string]SourcePath, len(srcs))
	for _, src := range srcs {
		name, err := r.Name(owner, src)
		if err != nil {
			return nil, err
		}
		if _, exists := named[name]; exists {
			return nil, &DuplicateNameError{Target: owner, Parameter: parameter, Name: name}
		}
		named[name] = src
	}
	return named, nil
}

// FilterHashableInputs projects srcs onto the literal references, in
// input order, resolved to their paths. The result is the exact and only
// input set that may be folded into a rule's content-addressable cache
// key: rule outputs are excluded because their content is represented in
// the key via the producing rule's own key, and hashing them directly
// would require the output to exist before the key is computable and
// would double-count shared dependencies.
func (r *Resolver) FilterHashableInputs(srcs []SourcePath) []string {
	var paths []string
	for _, src := range srcs {
		if s, ok := src.(PathSourcePath); ok {
			paths = append(paths, s.RelPath)
		}
	}
	return paths
}

// FilterRuleDependencies projects srcs onto the set of producing targets
// of its rule-output references. These are the dependency edges the owning
// rule must declare to its producers. Duplicate references collapse: the
// result is a set even if the input repeats a reference.
func (r *Resolver) FilterRuleDependencies(srcs []SourcePath) map[target.Target]struct{} {
	deps := make(map[target.Target]struct{})
	for _, src := range srcs {
		if s, ok := src.(RuleOutputSourcePath); ok {
			deps[s.Target] = struct{}{}
		}
	}
	return deps
}
