package srcpath

import (
	"github.com/vk/buildgridgo/internal/target"
)

// Rule is the resolver's view of a node in the rule graph. It is consumed,
// never implemented, by this package; the graph snapshot owns the nodes.
type Rule interface {
	// Target returns the rule's stable identifier.
	Target() target.Target

	// OutputPath returns the workspace-relative path of the rule's output
	// artifact. ok is false while the rule's build step has not run or the
	// rule builds nothing.
	OutputPath() (path string, ok bool)
}

// HasOutputName is an optional capability of a Rule: a custom display name
// for its output, preferred over the target's short name when naming
// rule-output inputs. Checked by interface assertion at naming time.
type HasOutputName interface {
	OutputName() string
}

// RuleFinder looks up rules by target in an immutable graph snapshot. All
// lookups a resolution call performs go through a single finder, so the
// snapshot handed in must stay unchanged for the duration of the call.
type RuleFinder interface {
	RuleFor(t target.Target) (Rule, bool)
}
