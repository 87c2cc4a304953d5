package remote

import "go.flow.remotecore.io/remote/internal/freevars"

// AllNodes returns every node in e's tree in pre-order, via the generic
// walk in internal/freevars.
func AllNodes(e Expression) []Expression {
	var nodes []Expression
	freevars.Walk(e, Expression.Operands, func(c Expression) {
		nodes = append(nodes, c)
	})
	return nodes
}

// FreeVariables collects the names referenced by Variable nodes in e that
// are not bound by an enclosing EvaluatedFunction. An EvaluatedFunction
// binds its Input name for the duration of its Body's subtree.
func FreeVariables(e Expression) []Name {
	seen := map[Name]bool{}
	var free []Name
	walkFree(e, map[Name]bool{}, seen, &free)
	return free
}

func walkFree(e Expression, bound map[Name]bool, seen map[Name]bool, free *[]Name) {
	switch n := e.(type) {
	case Variable:
		if !bound[n.Name] && !seen[n.Name] {
			seen[n.Name] = true
			*free = append(*free, n.Name)
		}
		return
	case EvaluatedFunction:
		inner := make(map[Name]bool, len(bound)+1)
		for k := range bound {
			inner[k] = true
		}
		inner[n.Input.Name] = true
		walkFree(n.Body, inner, seen, free)
		return
	}
	for _, c := range e.Operands() {
		walkFree(c, bound, seen, free)
	}
}

// Closed reports whether e references no free variables: every Variable it
// contains is bound by an enclosing EvaluatedFunction. A top-level
// expression is expected to be closed, or to have its free names supplied
// by the RemoteContext, before being handed to the evaluator.
func Closed(e Expression) bool {
	return len(FreeVariables(e)) == 0
}
