// Package watchman models the query surface of an external incremental
// file-watching service: the optional capabilities a server advertises,
// the structured match expressions sent to it, and a websocket client
// that subscribes with compiled expressions.
package watchman

// Capability is an optional query feature a watch service may advertise
// during the version handshake.
type Capability string

const (
	// CapWildmatch indicates the service evaluates `**` recursive globs
	// and accepts the flags object on match expressions.
	CapWildmatch Capability = "wildmatch"
	// CapWildmatchMultislash indicates `*` may match across separators.
	CapWildmatchMultislash Capability = "wildmatch_multislash"
	// CapGlobGenerator indicates the service supports the glob generator.
	CapGlobGenerator Capability = "glob_generator"
	// CapDirName indicates the service supports dirname expressions.
	CapDirName Capability = "dirname"
)

// allCapabilities is what the client asks for during the handshake.
var allCapabilities = []Capability{
	CapWildmatch,
	CapWildmatchMultislash,
	CapGlobGenerator,
	CapDirName,
}

// CapabilitySet is the set of capabilities a service advertises.
type CapabilitySet map[Capability]struct{}

// Caps builds a capability set from its members.
func Caps(caps ...Capability) CapabilitySet {
	set := make(CapabilitySet, len(caps))
	for _, c := range caps {
		set[c] = struct{}{}
	}
	return set
}

// Has reports whether the set contains the given capability.
func (s CapabilitySet) Has(c Capability) bool {
	_, ok := s[c]
	return ok
}
