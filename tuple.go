package remote

import (
	"fmt"
	"strings"

	"go.flow.remotecore.io/remote/schema"
)

// Tuple is the fixed family Tuple2..Tuple22. Internally
// every arity is represented the same way: a right-nested pair chain
// (Tuple3(a,b,c) ≡ Pair(a, Pair(b,c))), matching schema.TupleSchema's
// encoding. TupleN constructors only differ in the arity of Elems they
// accept; the wire case name stays "Tuple" for every arity since the shape
// itself carries the arity (schema.TupleSchema.Arity()).
type Tuple struct {
	Elems []Expression
}

// Tuple2 and Tuple3 are fixed-arity constructors over Tuple; TupleN takes
// any arity from 2 to 22 and panics outside that range.
func Tuple2(a, b Expression) Tuple    { return Tuple{Elems: []Expression{a, b}} }
func Tuple3(a, b, c Expression) Tuple { return Tuple{Elems: []Expression{a, b, c}} }
func TupleN(elems ...Expression) Tuple {
	if len(elems) < 2 || len(elems) > 22 {
		panic(fmt.Sprintf("remote: TupleN arity %d out of range [2,22]", len(elems)))
	}
	return Tuple{Elems: elems}
}

func (e Tuple) Schema() schema.Schema {
	if len(e.Elems) < 2 {
		return schema.FailSchema{Msg: "Tuple: arity below 2"}
	}
	return rightNestedSchema(e.Elems)
}

func rightNestedSchema(elems []Expression) schema.Schema {
	if len(elems) == 1 {
		return elems[0].Schema()
	}
	return schema.TupleSchema{A: elems[0].Schema(), B: rightNestedSchema(elems[1:])}
}

func (e Tuple) Operands() []Expression { return e.Elems }
func (e Tuple) CaseName() string       { return "Tuple" }
func (e Tuple) String() string {
	parts := make([]string, len(e.Elems))
	for i, el := range e.Elems {
		parts[i] = el.String()
	}
	return fmt.Sprintf("(%s)", strings.Join(parts, ", "))
}

// TupleAccess descends the right-nested pair tree, counting leaves from
// the left, 0-based. Index is validated against the
// tuple's declared schema when that schema is itself a TupleSchema;
// out-of-range is reported as a FailSchema rather than panicking, so the
// IndexOutOfRange classification is produced uniformly by the evaluator.
type TupleAccess struct {
	Tuple Expression
	Index int
}

func (e TupleAccess) Schema() schema.Schema {
	cur := e.Tuple.Schema()
	for i := 0; i < e.Index; i++ {
		t, ok := cur.(schema.TupleSchema)
		if !ok {
			return schema.FailSchema{Msg: fmt.Sprintf("TupleAccess: index %d out of range", e.Index)}
		}
		cur = t.B
	}
	if t, ok := cur.(schema.TupleSchema); ok {
		return t.A
	}
	return cur
}
func (e TupleAccess) Operands() []Expression { return []Expression{e.Tuple} }
func (e TupleAccess) CaseName() string       { return "TupleAccess" }
func (e TupleAccess) String() string {
	return fmt.Sprintf("%s._%d", e.Tuple, e.Index)
}
