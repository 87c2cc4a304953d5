// Package freevars provides a generic pre-order tree walk over nodes of
// arbitrary arity, since the expression algebra's variants range from zero
// operands (Literal) to N (TupleN, Branch).
package freevars

// Walk visits node, then recurses into each of its operands (as reported
// by children) in order, calling visit on every node encountered including
// the root.
func Walk[T any](node T, children func(T) []T, visit func(T)) {
	visit(node)
	for _, c := range children(node) {
		Walk(c, children, visit)
	}
}
