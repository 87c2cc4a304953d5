package remote

import (
	"fmt"

	"go.flow.remotecore.io/remote/schema"
)

// Expression is an immutable, serializable tree representing a
// computation. Every variant reports its own Schema() without needing to
// be evaluated (the schema of the value an evaluation would produce is
// intrinsic to the node, never inferred) and its Operands(), the
// sub-expressions the generic tree walks (FreeVariables, AllNodes) recurse
// over.
type Expression interface {
	// Schema reports the schema of the value this expression evaluates
	// to, without evaluating it.
	Schema() schema.Schema
	// Operands returns this node's immediate sub-expressions, in the
	// order of the node's fields.
	Operands() []Expression
	// CaseName is this variant's stable wire case name.
	CaseName() string
	// String renders the expression for diagnostics.
	String() string
}

// noOperands is embedded by leaf variants that have no sub-expressions.
type noOperands struct{}

func (noOperands) Operands() []Expression { return nil }

// Literal yields (Schema, Dyn) unconditionally. It defines no equality
// method of its own.
type Literal struct {
	noOperands
	Dyn Dynamic
}

// Dynamic pairs a DynamicValue with the schema it is well-formed against;
// it is the payload carried by Literal (evaluation returns the equivalent
// schema.SchemaAndValue). Named distinctly from schema.SchemaAndValue only to read
// naturally as an expression field (`Literal{Dyn: ...}`); the two are
// structurally identical and freely convertible (AsSchemaAndValue).
type Dynamic struct {
	Schema schema.Schema
	Value  schema.DynamicValue
}

// AsSchemaAndValue converts to the schema package's canonical pair type.
func (d Dynamic) AsSchemaAndValue() schema.SchemaAndValue {
	return schema.SchemaAndValue{Schema: d.Schema, Value: d.Value}
}

func (e Literal) Schema() schema.Schema { return e.Dyn.Schema }
func (e Literal) CaseName() string      { return "Literal" }
func (e Literal) String() string        { return fmt.Sprintf("Literal(%s)", e.Dyn.Value) }

// Ignore yields (Unit, ()). It is the expression-level no-op.
type Ignore struct {
	noOperands
}

func (e Ignore) Schema() schema.Schema { return schema.PrimitiveSchema{Tag: schema.Unit} }
func (e Ignore) CaseName() string      { return "Ignore" }
func (e Ignore) String() string        { return "Ignore" }

// Variable is a named reference resolved against the RemoteContext at
// evaluation time. Variable names are process-unique identifiers produced
// by RemoteContext.FreshName.
type Variable struct {
	noOperands
	Name Name
	Type schema.Schema
}

func (e Variable) Schema() schema.Schema { return e.Type }
func (e Variable) CaseName() string      { return "Variable" }
func (e Variable) String() string        { return string(e.Name) }

// expressionTag is the PrimitiveTag used to carry a Nested expression
// as a DynamicValue payload: a value of type
// "expression" needs a scalar carrier to be well-formed against a Schema.
const expressionTag schema.PrimitiveTag = "Expression"

// flowTag is the PrimitiveTag carrying a lifted orchestrator Flow
// reference. The flow engine itself lives outside this module; FlowRef is
// the minimal boundary interface a caller's flow object must satisfy to
// be lifted.
const flowTag schema.PrimitiveTag = "Flow"

// ExpressionSchema is the schema of a lifted expression-as-data value.
func ExpressionSchema() schema.Schema { return schema.PrimitiveSchema{Tag: expressionTag} }

// FlowSchema is the schema of a lifted Flow reference value.
func FlowSchema() schema.Schema { return schema.PrimitiveSchema{Tag: flowTag} }

// FlowRef is the minimal interface an external orchestrator flow object
// must satisfy to be lifted into the expression algebra via Flow. The
// core never inspects anything about a FlowRef beyond this boundary.
type FlowRef interface {
	FlowID() string
}

// SimpleFlowRef is the minimal FlowRef a decoder can reconstruct from a
// wire-carried id string, when there is no live orchestrator object to
// reattach to. The wire round-trip preserves the expression tree, not
// the identity of an external FlowRef.
type SimpleFlowRef string

func (f SimpleFlowRef) FlowID() string { return string(f) }

// Nested wraps an expression as a value of type "expression": evaluating
// it yields the expression itself, unevaluated, as data. This is how a
// blueprint passes another blueprint as a first-class value (e.g. to an
// orchestrator operator that schedules sub-flows).
type Nested struct {
	Inner Expression
}

func (e Nested) Schema() schema.Schema  { return ExpressionSchema() }
func (e Nested) Operands() []Expression { return []Expression{e.Inner} }
func (e Nested) CaseName() string       { return "Nested" }
func (e Nested) String() string         { return fmt.Sprintf("Nested(%s)", e.Inner) }

// Flow lifts an external orchestrator flow reference to a value.
type Flow struct {
	noOperands
	Ref FlowRef
}

func (e Flow) Schema() schema.Schema { return FlowSchema() }
func (e Flow) CaseName() string      { return "Flow" }
func (e Flow) String() string        { return fmt.Sprintf("Flow(%s)", e.Ref.FlowID()) }
