package remote

import (
	"fmt"

	"go.flow.remotecore.io/remote/schema"
)

// Some0 wraps E as a present Option value. Named Some0 to
// avoid colliding with schema.Some, the DynamicValue constructor it
// eventually produces.
type Some0 struct {
	E Expression
}

func (e Some0) Schema() schema.Schema  { return schema.OptionSchema{Inner: e.E.Schema()} }
func (e Some0) Operands() []Expression { return []Expression{e.E} }
func (e Some0) CaseName() string       { return "Some0" }
func (e Some0) String() string         { return fmt.Sprintf("Some(%s)", e.E) }

// FoldOption applies IfEmpty or IfSome depending on Opt's presence.
// Schema equals IfEmpty's schema, which must structurally equal IfSome's
// body schema.
type FoldOption struct {
	Opt     Expression
	IfEmpty Expression
	IfSome  EvaluatedFunction
}

func (e FoldOption) Schema() schema.Schema {
	es, ss := e.IfEmpty.Schema(), e.IfSome.Body.Schema()
	if !es.Equal(ss) {
		return schema.FailSchema{Msg: "FoldOption: IfEmpty and IfSome schemas differ"}
	}
	return es
}
func (e FoldOption) Operands() []Expression { return []Expression{e.Opt, e.IfEmpty, e.IfSome} }
func (e FoldOption) CaseName() string       { return "FoldOption" }
func (e FoldOption) String() string {
	return fmt.Sprintf("foldOption(%s, %s, %s)", e.Opt, e.IfEmpty, e.IfSome)
}

// ZipOption yields Some(a, b) iff both L and R are present, else None.
type ZipOption struct {
	L, R Expression
}

func (e ZipOption) Schema() schema.Schema {
	ls, lok := e.L.Schema().(schema.OptionSchema)
	rs, rok := e.R.Schema().(schema.OptionSchema)
	if !lok || !rok {
		return schema.FailSchema{Msg: "ZipOption: operand is not an Option schema"}
	}
	return schema.OptionSchema{Inner: schema.TupleSchema{A: ls.Inner, B: rs.Inner}}
}
func (e ZipOption) Operands() []Expression { return []Expression{e.L, e.R} }
func (e ZipOption) CaseName() string       { return "ZipOption" }
func (e ZipOption) String() string         { return fmt.Sprintf("zipOption(%s, %s)", e.L, e.R) }

// OptionContains reports whether Opt is Some(x) with x equal to V.
type OptionContains struct {
	Opt Expression
	V   Expression
}

func (e OptionContains) Schema() schema.Schema  { return schema.PrimitiveSchema{Tag: schema.Bool} }
func (e OptionContains) Operands() []Expression { return []Expression{e.Opt, e.V} }
func (e OptionContains) CaseName() string       { return "OptionContains" }
func (e OptionContains) String() string {
	return fmt.Sprintf("optionContains(%s, %s)", e.Opt, e.V)
}
