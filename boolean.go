package remote

import (
	"fmt"

	"go.flow.remotecore.io/remote/schema"
)

// And, Or, Not are the boolean operators. Or is a first-class variant
// rather than sugar for !( !l && !r ), so it round-trips the wire under
// its own case name. And and Or short-circuit: a false left operand of
// And (or a true left operand of Or) leaves the right side unevaluated.
type And struct {
	L, R Expression
}

func (e And) Schema() schema.Schema  { return schema.PrimitiveSchema{Tag: schema.Bool} }
func (e And) Operands() []Expression { return []Expression{e.L, e.R} }
func (e And) CaseName() string       { return "And" }
func (e And) String() string         { return fmt.Sprintf("(%s && %s)", e.L, e.R) }

type Or struct {
	L, R Expression
}

func (e Or) Schema() schema.Schema  { return schema.PrimitiveSchema{Tag: schema.Bool} }
func (e Or) Operands() []Expression { return []Expression{e.L, e.R} }
func (e Or) CaseName() string       { return "Or" }
func (e Or) String() string         { return fmt.Sprintf("(%s || %s)", e.L, e.R) }

type Not struct {
	E Expression
}

func (e Not) Schema() schema.Schema  { return schema.PrimitiveSchema{Tag: schema.Bool} }
func (e Not) Operands() []Expression { return []Expression{e.E} }
func (e Not) CaseName() string       { return "Not" }
func (e Not) String() string         { return fmt.Sprintf("!%s", e.E) }
