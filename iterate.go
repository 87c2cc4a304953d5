package remote

import (
	"fmt"

	"go.flow.remotecore.io/remote/schema"
)

// Iterate evaluates as `x ← Initial; while Pred(x) { x ← Step(x) }; x`.
// The evaluator runs this as a tail loop with no recursion-depth growth;
// Iterate itself only carries the three sub-expressions, the loop shape
// lives in the evaluator.
type Iterate struct {
	Initial Expression
	Step    EvaluatedFunction
	Pred    EvaluatedFunction
}

func (e Iterate) Schema() schema.Schema { return e.Initial.Schema() }
func (e Iterate) Operands() []Expression {
	return []Expression{e.Initial, e.Step, e.Pred}
}
func (e Iterate) CaseName() string { return "Iterate" }
func (e Iterate) String() string {
	return fmt.Sprintf("iterate(%s, %s, %s)", e.Initial, e.Step, e.Pred)
}
