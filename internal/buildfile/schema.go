package buildfile

// RuleBlock represents a `rule` block from a BUILD.hcl file. Source
// strings beginning with `//` or `:` reference another rule's output;
// all others are literal paths relative to the declaring file's directory.
type RuleBlock struct {
	Name       string   `hcl:"name,label"`
	Srcs       []string `hcl:"srcs,optional"`
	Out        string   `hcl:"out,optional"`
	OutputName string   `hcl:"output_name,optional"`
}

// fileRoot is the top-level structure of a BUILD.hcl file.
type fileRoot struct {
	Rules []*RuleBlock `hcl:"rule,block"`
}

// workspaceRoot is the top-level structure of a workspace.hcl file.
type workspaceRoot struct {
	// Ignore lists path patterns excluded from source checking and
	// compiled into watch-service queries. Patterns containing glob
	// metacharacters become glob matchers; the rest match exactly.
	Ignore []string `hcl:"ignore,optional"`
	// OutputRoot is the workspace-relative directory under which rule
	// outputs are materialized. Defaults to "out".
	OutputRoot string `hcl:"output_root,optional"`
}
