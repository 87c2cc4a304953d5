package remote

import (
	"fmt"

	"go.flow.remotecore.io/remote/schema"
)

// Branch evaluates Predicate; if true it evaluates and returns OnTrue,
// otherwise OnFalse. The untaken arm is never evaluated and has no side
// effects. OnTrue and OnFalse must share a schema;
// Schema() reports OnTrue's, and a construction-time mismatch against
// OnFalse is reported as a schema.FailSchema rather than a panic, mirroring
// FoldEither/FoldOption's treatment of the same constraint.
type Branch struct {
	Predicate       Expression
	OnTrue, OnFalse Expression
}

func (e Branch) Schema() schema.Schema {
	ts, fs := e.OnTrue.Schema(), e.OnFalse.Schema()
	if !ts.Equal(fs) {
		return schema.FailSchema{Msg: "Branch: OnTrue and OnFalse schemas differ"}
	}
	return ts
}

func (e Branch) Operands() []Expression {
	return []Expression{e.Predicate, e.OnTrue, e.OnFalse}
}
func (e Branch) CaseName() string { return "Branch" }
func (e Branch) String() string {
	return fmt.Sprintf("if %s then %s else %s", e.Predicate, e.OnTrue, e.OnFalse)
}
