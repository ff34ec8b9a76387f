package rulegraph

import (
	"github.com/vk/buildgridgo/internal/srcpath"
	"github.com/vk/buildgridgo/internal/target"
)

// Rule is a single node of the rule graph: one build rule, its symbolic
// inputs, and (once assigned) its concrete output path. Rules are owned by
// the snapshot; rule-output references hold only the target and look the
// node up at resolution time.
type Rule struct {
	target target.Target
	srcs   []srcpath.SourcePath

	// out is the declared output file name within the rule's output
	// directory, empty when the rule builds nothing.
	out string

	outputPath string
	hasOutput  bool
}

// Target returns the rule's stable identifier.
func (r *Rule) Target() target.Target {
	return r.target
}

// OutputPath returns the workspace-relative path of the rule's output
// artifact. ok is false until output assignment has run, or always for
// rules that build nothing.
func (r *Rule) OutputPath() (string, bool) {
	return r.outputPath, r.hasOutput
}

// namedRule is the view of a rule whose definition carries a custom output
// name. Wrapping only rules that declare one keeps the HasOutputName
// capability check an honest interface assertion.
type namedRule struct {
	*Rule
	name string
}

// OutputName returns the custom display name for the rule's output.
func (r *namedRule) OutputName() string {
	return r.name
}
