// Package rulegraph holds the immutable snapshot of the build rule graph:
// rules keyed by target, dependency edges derived from rule-output
// references, cycle detection, and output path assignment.
//
// Mutation happens in a strict phase order — construct, link, assign
// outputs — after which the snapshot is read-only and safe for concurrent
// resolution.
package rulegraph

import (
	"context"
	"fmt"
	"path"
	"sort"

	"github.com/vk/buildgridgo/internal/buildfile"
	"github.com/vk/buildgridgo/internal/ctxlog"
	"github.com/vk/buildgridgo/internal/srcpath"
	"github.com/vk/buildgridgo/internal/target"
)

// Snapshot is the rule graph of one workspace evaluation.
type Snapshot struct {
	rules map[target.Target]*Rule
	names map[target.Target]string // custom output names, only for rules that declare one
	order []target.Target          // definition order, for deterministic iteration

	// deps maps each rule to the set of producing rules it references.
	// Populated by Link.
	deps map[target.Target]map[target.Target]struct{}
}

// NewSnapshot indexes the given rule definitions into a snapshot. A
// duplicate definition of the same target is a hard error.
func NewSnapshot(defs []*buildfile.RuleDef) (*Snapshot, error) {
	s := &Snapshot{
		rules: make(map[target.Target]*Rule, len(defs)),
		names: make(map[target.Target]string),
		deps:  make(map[target.Target]map[target.Target]struct{}, len(defs)),
	}
	for _, def := range defs {
		if _, exists := s.rules[def.Target]; exists {
			return nil, fmt.Errorf("duplicate definition of %s", def.Target)
		}
		s.rules[def.Target] = &Rule{
			target: def.Target,
			srcs:   def.Srcs,
			out:    def.Out,
		}
		if def.OutputName != "" {
			s.names[def.Target] = def.OutputName
		}
		s.order = append(s.order, def.Target)
	}
	return s, nil
}

// RuleFor looks up a rule by target. Rules with a custom output name are
// returned behind the HasOutputName capability.
func (s *Snapshot) RuleFor(t target.Target) (srcpath.Rule, bool) {
	rule, ok := s.rules[t]
	if !ok {
		return nil, false
	}
	if name, ok := s.names[t]; ok {
		return &namedRule{Rule: rule, name: name}, true
	}
	return rule, true
}

// Targets returns every rule's target in definition order.
func (s *Snapshot) Targets() []target.Target {
	return s.order
}

// SrcsOf returns the declared inputs of the given rule in definition
// order, or nil if the target is unknown. The slice is shared with the
// snapshot and must not be mutated.
func (s *Snapshot) SrcsOf(t target.Target) []srcpath.SourcePath {
	rule, ok := s.rules[t]
	if !ok {
		return nil
	}
	return rule.srcs
}

// DependenciesOf returns the producing targets the given rule references,
// sorted by label for deterministic output. Link must have run.
func (s *Snapshot) DependenciesOf(t target.Target) []target.Target {
	edges := s.deps[t]
	deps := make([]target.Target, 0, len(edges))
	for dep := range edges {
		deps = append(deps, dep)
	}
	sort.Slice(deps, func(i, j int) bool { return deps[i].String() < deps[j].String() })
	return deps
}

// Link derives each rule's dependency edges from its rule-output
// references and verifies every referenced producer exists. A reference
// to an undefined target or to the rule itself is a hard error naming the
// consumer.
func (s *Snapshot) Link(ctx context.Context, resolver *srcpath.Resolver) error {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Starting rule linking pass.")

	for _, t := range s.order {
		rule := s.rules[t]
		edges := resolver.FilterRuleDependencies(rule.srcs)
		for dep := range edges {
			if dep == t {
				return fmt.Errorf("%s depends on its own output", t)
			}
			if _, exists := s.rules[dep]; !exists {
				return fmt.Errorf("%s references undefined rule %s", t, dep)
			}
		}
		s.deps[t] = edges
	}

	logger.Debug("Finished rule linking pass.", "rules", len(s.order))
	return nil
}

// DetectCycles checks the linked graph for dependency cycles, returning a
// non-nil error naming a rule involved in the first cycle found.
func (s *Snapshot) DetectCycles() error {
	// Classic depth-first search with three node sets: permanent nodes are
	// fully visited and known safe, temporary nodes are in the current
	// recursion stack.
	permanent := make(map[target.Target]bool)
	temporary := make(map[target.Target]bool)

	var visit func(t target.Target) error
	visit = func(t target.Target) error {
		if permanent[t] {
			return nil
		}
		if temporary[t] {
			return fmt.Errorf("dependency cycle detected involving %s", t)
		}

		temporary[t] = true
		for dep := range s.deps[t] {
			if err := visit(dep); err != nil {
				return err
			}
		}
		delete(temporary, t)
		permanent[t] = true
		return nil
	}

	for _, t := range s.order {
		if !permanent[t] {
			if err := visit(t); err != nil {
				return err
			}
		}
	}
	return nil
}

// AssignOutputs materializes the output path of every rule that declares
// one: <outputRoot>/<base path>/<short name>/<declared out>. Rules that
// declare no output stay unresolved, so resolving a reference to them
// fails with an unresolved-output error.
func (s *Snapshot) AssignOutputs(ctx context.Context, outputRoot string) {
	logger := ctxlog.FromContext(ctx)
	assigned := 0
	for _, t := range s.order {
		rule := s.rules[t]
		if rule.out == "" {
			continue
		}
		rule.outputPath = path.Join(outputRoot, t.BasePath(), t.ShortName(), rule.out)
		rule.hasOutput = true
		assigned++
	}
	logger.Debug("Assigned rule outputs.", "assigned", assigned, "total", len(s.order))
}
