package srcpath

import (
	"fmt"

	"github.com/vk/buildgridgo/internal/target"
)

// UnresolvedOutputError reports a rule-output reference whose producing
// rule has no known output at resolution time. This is a structural error
// in the build definition or sequencing, never a transient condition.
type UnresolvedOutputError struct {
	Target target.Target
}

func (e *UnresolvedOutputError) Error() string {
	return fmt.Sprintf("no known output for %s", e.Target)
}

// UnknownTargetError reports a rule-output reference to a target that does
// not exist in the graph snapshot.
type UnknownTargetError struct {
	Target target.Target
}

func (e *UnknownTargetError) Error() string {
	return fmt.Sprintf("no rule found for %s", e.Target)
}

// DuplicateNameError reports two inputs of the same rule parameter
// resolving to the same logical name.
type DuplicateNameError struct {
	Target    target.Target
	Parameter string
	Name      string
}

func (e *DuplicateNameError) Error() string {
	return fmt.Sprintf("%s: parameter '%s': duplicate entries for '%s'", e.Target, e.Parameter, e.Name)
}
