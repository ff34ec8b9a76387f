// Package srcpath models symbolic references to build inputs and resolves
// them against an immutable snapshot of the rule graph.
//
// A SourcePath is either a literal workspace path or a reference to the
// output of another build rule. The distinction carries two invariants the
// surrounding build tool depends on: a rule's cache key may hash only its
// literal inputs (rule outputs are represented by the producing rule's own
// key), and a rule-output reference is also a dependency edge the consumer
// must declare to its producer.
package srcpath

import (
	"github.com/vk/buildgridgo/internal/target"
)

// SourcePath is a symbolic reference to a build input. It is a closed sum:
// the only implementations are PathSourcePath and RuleOutputSourcePath,
// and every consumer must handle both.
//
// SourcePath values are immutable and comparable; two values are equal iff
// they are the same variant over the same path or target.
type SourcePath interface {
	// String renders the reference for error messages and logs.
	String() string

	// isSourcePath seals the interface to this package's variants.
	isSourcePath()
}

// PathSourcePath references a literal file in the workspace by its
// workspace-relative, slash-separated path. It owns nothing: the path is
// expected to exist independently of any build step.
type PathSourcePath struct {
	RelPath string
}

// NewPath wraps a workspace-relative path as a source path.
func NewPath(relPath string) PathSourcePath {
	return PathSourcePath{RelPath: relPath}
}

func (p PathSourcePath) String() string { return p.RelPath }

func (PathSourcePath) isSourcePath() {}

// RuleOutputSourcePath references the output artifact of another build
// rule by its target. The reference is non-owning: the rule itself lives
// in the graph snapshot and is looked up at resolution time. Resolving
// before the producing rule has an assigned output is a sequencing error,
// not a wait condition.
type RuleOutputSourcePath struct {
	Target target.Target
}

// NewRuleOutput wraps a producing rule's target as a source path.
func NewRuleOutput(t target.Target) RuleOutputSourcePath {
	return RuleOutputSourcePath{Target: t}
}

func (p RuleOutputSourcePath) String() string { return p.Target.String() }

func (RuleOutputSourcePath) isSourcePath() {}
