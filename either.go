package remote

import (
	"fmt"

	"go.flow.remotecore.io/remote/schema"
)

// EitherL builds a left-valued Either, carrying the schema of the right
// side it doesn't hold, so the expression's overall schema is
// known without evaluating Value.
type EitherL struct {
	Value       Expression
	RightSchema schema.Schema
}

func (e EitherL) Schema() schema.Schema {
	return schema.EitherSchema{Left: e.Value.Schema(), Right: e.RightSchema}
}
func (e EitherL) Operands() []Expression { return []Expression{e.Value} }
func (e EitherL) CaseName() string       { return "EitherL" }
func (e EitherL) String() string         { return fmt.Sprintf("Left(%s)", e.Value) }

// EitherR builds a right-valued Either, carrying the left side's schema.
type EitherR struct {
	LeftSchema schema.Schema
	Value      Expression
}

func (e EitherR) Schema() schema.Schema {
	return schema.EitherSchema{Left: e.LeftSchema, Right: e.Value.Schema()}
}
func (e EitherR) Operands() []Expression { return []Expression{e.Value} }
func (e EitherR) CaseName() string       { return "EitherR" }
func (e EitherR) String() string         { return fmt.Sprintf("Right(%s)", e.Value) }

// FlatMapEither evaluates E; if it is Left(a), the result is Left(a) under
// schema Either(ASchema, CSchema); otherwise Fn is applied to the right
// payload. ASchema/CSchema are carried explicitly because
// the left arm is passed through unevaluated by Fn; the result schema
// can't be derived from Fn alone when the left side short-circuits.
type FlatMapEither struct {
	E               Expression
	Fn              EvaluatedFunction
	ASchema, CSchema schema.Schema
}

func (e FlatMapEither) Schema() schema.Schema {
	return schema.EitherSchema{Left: e.ASchema, Right: e.CSchema}
}
func (e FlatMapEither) Operands() []Expression { return []Expression{e.E, e.Fn} }
func (e FlatMapEither) CaseName() string       { return "FlatMapEither" }
func (e FlatMapEither) String() string {
	return fmt.Sprintf("flatMapEither(%s, %s)", e.E, e.Fn)
}

// FoldEither applies FL to a Left payload or FR to a Right payload.
// The two handlers must agree on result schema; as with
// Branch, a mismatch is reported via Schema() rather than panicking.
type FoldEither struct {
	E      Expression
	FL, FR EvaluatedFunction
}

func (e FoldEither) Schema() schema.Schema {
	ls, rs := e.FL.Schema(), e.FR.Schema()
	if !ls.Equal(rs) {
		return schema.FailSchema{Msg: "FoldEither: FL and FR schemas differ"}
	}
	return ls
}
func (e FoldEither) Operands() []Expression { return []Expression{e.E, e.FL, e.FR} }
func (e FoldEither) CaseName() string       { return "FoldEither" }
func (e FoldEither) String() string {
	return fmt.Sprintf("foldEither(%s, %s, %s)", e.E, e.FL, e.FR)
}

// SwapEither swaps the two sides of an Either value; the schema's sides
// swap correspondingly.
type SwapEither struct {
	E Expression
}

func (e SwapEither) Schema() schema.Schema {
	s, ok := e.E.Schema().(schema.EitherSchema)
	if !ok {
		return schema.FailSchema{Msg: "SwapEither: operand is not an Either schema"}
	}
	return schema.EitherSchema{Left: s.Right, Right: s.Left}
}
func (e SwapEither) Operands() []Expression { return []Expression{e.E} }
func (e SwapEither) CaseName() string       { return "SwapEither" }
func (e SwapEither) String() string         { return fmt.Sprintf("swapEither(%s)", e.E) }
