package remote

import (
	"fmt"

	"go.flow.remotecore.io/remote/schema"
)

// Try evaluates E to a Success/Failure tagged value. The left side of the
// underlying Either carries a Throwable; the right side carries the
// success value directly. The two constants name the enum tags on the
// wire.
const (
	tryResultSuccess = "Success"
	tryResultFailure = "Failure"
)

// ThrowableSchema exposes the process-fixed schema carried by Try's Failure
// arm (schema.Throwable).
func ThrowableSchema() schema.Schema { return schema.PrimitiveSchema{Tag: schema.Throwable} }

type Try struct {
	E Expression
}

func (e Try) Schema() schema.Schema {
	es, ok := e.E.Schema().(schema.EitherSchema)
	if !ok {
		return schema.FailSchema{Msg: "Try: operand is not an Either schema"}
	}
	return schema.EnumSchema{
		Name: "Try",
		Cases: []schema.Case{
			{Name: tryResultFailure, Payload: es.Left},
			{Name: tryResultSuccess, Payload: es.Right},
		},
	}
}
func (e Try) Operands() []Expression { return []Expression{e.E} }
func (e Try) CaseName() string       { return "Try" }
func (e Try) String() string         { return fmt.Sprintf("Try(%s)", e.E) }
