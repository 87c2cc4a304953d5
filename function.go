package remote

import (
	"fmt"

	"go.flow.remotecore.io/remote/schema"
)

// EvaluatedFunction is the serializable form of a one-argument function:
// a freshly-minted input Variable paired with a Body expression that
// references it. No host code is captured, so the closure crosses the
// wire intact. Its own schema equals Body's schema; evaluating an
// EvaluatedFunction alone (rather than through Apply) evaluates Body in
// the current context, deliberately treating the function as a thunk.
type EvaluatedFunction struct {
	Input Variable
	Body  Expression
}

func (e EvaluatedFunction) Schema() schema.Schema  { return e.Body.Schema() }
func (e EvaluatedFunction) Operands() []Expression { return []Expression{e.Body} }
func (e EvaluatedFunction) CaseName() string       { return "EvaluatedFunction" }
func (e EvaluatedFunction) String() string         { return fmt.Sprintf("(%s => %s)", e.Input, e.Body) }

// Apply evaluates Arg, binds its value to F.Input in the current
// RemoteContext, then evaluates F.Body.
type Apply struct {
	F   EvaluatedFunction
	Arg Expression
}

func (e Apply) Schema() schema.Schema  { return e.F.Body.Schema() }
func (e Apply) Operands() []Expression { return []Expression{e.F, e.Arg} }
func (e Apply) CaseName() string       { return "Apply" }
func (e Apply) String() string         { return fmt.Sprintf("%s(%s)", e.F, e.Arg) }

// Fn compiles a host-side builder function into an EvaluatedFunction: it
// mints a fresh variable of schema inputSchema from ctx, applies body to a
// Variable referencing it, and packages the resulting expression.
func Fn(ctx *RemoteContext, inputSchema schema.Schema, body func(Expression) Expression) EvaluatedFunction {
	v := Variable{Name: ctx.FreshName(), Type: inputSchema}
	return EvaluatedFunction{Input: v, Body: body(v)}
}
