package remote

import (
	"fmt"

	"go.flow.remotecore.io/remote/schema"
)

// Lazy defers construction of a subexpression until evaluation time, the
// only mechanism for representing self-referential expressions without
// an observable cycle in the tree. Schema is declared
// explicitly rather than derived by invoking Thunk, since Thunk may close
// over Lazy itself to build an unbounded structure; forcing it during
// Schema() or Operands() would recurse without termination. The evaluator
// forces Thunk each time it reaches the node, so a thunk's body sees the
// variable bindings current at that point of the evaluation.
type Lazy struct {
	LazySchema schema.Schema
	Thunk      func() Expression
}

func (e Lazy) Schema() schema.Schema  { return e.LazySchema }
func (e Lazy) Operands() []Expression { return nil }
func (e Lazy) CaseName() string       { return "Lazy" }
func (e Lazy) String() string         { return fmt.Sprintf("Lazy(%s)", e.LazySchema) }
