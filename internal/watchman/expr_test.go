package watchman

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatch(t *testing.T) {
	assert.Equal(t,
		Expr{"match", ".idea", "wholename", map[string]any{"includedotfiles": true}},
		Match(".idea", true))

	assert.Equal(t,
		Expr{"match", "out/**", "wholename"},
		Match("out/**", false))
}

func TestAnyOf(t *testing.T) {
	single := Match(".idea", true)
	assert.Equal(t, single, AnyOf(single), "a single expression stays unwrapped")

	combined := AnyOf(Match("a", true), Match("b", false))
	assert.Equal(t, Expr{"anyof", Match("a", true), Match("b", false)}, combined)
}

func TestCapabilitySet(t *testing.T) {
	caps := Caps(CapWildmatch, CapGlobGenerator)

	assert.True(t, caps.Has(CapWildmatch))
	assert.True(t, caps.Has(CapGlobGenerator))
	assert.False(t, caps.Has(CapDirName))
	assert.False(t, Caps().Has(CapWildmatch))
}
