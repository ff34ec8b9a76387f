package watchman

// Expr is a single watch-service query expression, a positional array in
// the service's wire protocol, e.g.
// ["match", ".idea", "wholename", {"includedotfiles": true}].
type Expr []any

// Match builds a wholename match expression for the given pattern.
// includeDotfiles appends the flags object requesting that dot files be
// considered; services without wildmatch support reject the flags object,
// so callers gate it on the advertised capabilities where required.
func Match(pattern string, includeDotfiles bool) Expr {
	if includeDotfiles {
		return Expr{"match", pattern, "wholename", map[string]any{"includedotfiles": true}}
	}
	return Expr{"match", pattern, "wholename"}
}

// AnyOf combines expressions into a disjunction. A single expression is
// returned unwrapped.
func AnyOf(exprs ...Expr) Expr {
	if len(exprs) == 1 {
		return exprs[0]
	}
	combined := Expr{"anyof"}
	for _, e := range exprs {
		combined = append(combined, e)
	}
	return combined
}
