package remote

import (
	"fmt"

	"go.flow.remotecore.io/remote/schema"
)

// Cons prepends Head onto List. Head is deliberately the second field,
// matching the wire/constructor order.
type Cons struct {
	List Expression
	Head Expression
}

func (e Cons) Schema() schema.Schema  { return e.List.Schema() }
func (e Cons) Operands() []Expression { return []Expression{e.List, e.Head} }
func (e Cons) CaseName() string       { return "Cons" }
func (e Cons) String() string         { return fmt.Sprintf("cons(%s, %s)", e.List, e.Head) }

// UnCons yields Option<(head, tail)>: None for an empty list, otherwise
// Some of a (head, tail) pair.
type UnCons struct {
	List Expression
}

func (e UnCons) Schema() schema.Schema {
	s, ok := e.List.Schema().(schema.SequenceSchema)
	if !ok {
		return schema.FailSchema{Msg: "UnCons: operand is not a Sequence schema"}
	}
	return schema.OptionSchema{Inner: schema.TupleSchema{A: s.Elem, B: s}}
}
func (e UnCons) Operands() []Expression { return []Expression{e.List} }
func (e UnCons) CaseName() string       { return "UnCons" }
func (e UnCons) String() string         { return fmt.Sprintf("unCons(%s)", e.List) }

// Fold is a left fold over List: acc ← Initial; for each elem, acc ←
// Body((acc, elem)). Schema equals Initial's schema.
type Fold struct {
	List    Expression
	Initial Expression
	Body    EvaluatedFunction
}

func (e Fold) Schema() schema.Schema  { return e.Initial.Schema() }
func (e Fold) Operands() []Expression { return []Expression{e.List, e.Initial, e.Body} }
func (e Fold) CaseName() string       { return "Fold" }
func (e Fold) String() string {
	return fmt.Sprintf("fold(%s, %s, %s)", e.List, e.Initial, e.Body)
}
