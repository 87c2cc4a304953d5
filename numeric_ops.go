package remote

import (
	"fmt"

	"go.flow.remotecore.io/remote/schema"
)

// binaryNumeric is embedded by every two-operand numeric variant; it
// supplies Schema()/Operands() in terms of the chosen Numeric instance
// rather than repeating the dispatch per operator.
type binaryNumeric struct {
	Instance schema.NumericKind
	L, R     Expression
}

func (n binaryNumeric) Schema() schema.Schema {
	inst, err := schema.NumericInstance(n.Instance)
	if err != nil {
		return schema.FailSchema{Msg: err.Error()}
	}
	return inst.Schema()
}
func (n binaryNumeric) Operands() []Expression { return []Expression{n.L, n.R} }

type unaryNumeric struct {
	Instance schema.NumericKind
	E        Expression
}

func (n unaryNumeric) Schema() schema.Schema {
	inst, err := schema.NumericInstance(n.Instance)
	if err != nil {
		return schema.FailSchema{Msg: err.Error()}
	}
	return inst.Schema()
}
func (n unaryNumeric) Operands() []Expression { return []Expression{n.E} }

// Add, Sub, Mul, Div, Pow, Root, Log, Min, Max are binary numeric operators
// parameterised by a Numeric instance.
type Add struct{ binaryNumeric }
type Sub struct{ binaryNumeric }
type Mul struct{ binaryNumeric }
type Div struct{ binaryNumeric }
type Pow struct{ binaryNumeric }
type Root struct{ binaryNumeric }
type Log struct{ binaryNumeric }
type Min struct{ binaryNumeric }
type Max struct{ binaryNumeric }
type ModInt struct{ binaryNumeric }

// Neg, Abs, Floor, Ceil, Round are unary numeric operators.
type Neg struct{ unaryNumeric }
type Abs struct{ unaryNumeric }
type Floor struct{ unaryNumeric }
type Ceil struct{ unaryNumeric }
type Round struct{ unaryNumeric }

func (e Add) CaseName() string    { return "Add" }
func (e Sub) CaseName() string    { return "Sub" }
func (e Mul) CaseName() string    { return "Mul" }
func (e Div) CaseName() string    { return "Div" }
func (e Pow) CaseName() string    { return "Pow" }
func (e Root) CaseName() string   { return "Root" }
func (e Log) CaseName() string    { return "Log" }
func (e Min) CaseName() string    { return "Min" }
func (e Max) CaseName() string    { return "Max" }
func (e ModInt) CaseName() string { return "ModInt" }
func (e Neg) CaseName() string    { return "Neg" }
func (e Abs) CaseName() string    { return "Abs" }
func (e Floor) CaseName() string  { return "Floor" }
func (e Ceil) CaseName() string   { return "Ceil" }
func (e Round) CaseName() string  { return "Round" }

func (e Add) String() string    { return fmt.Sprintf("(%s + %s)", e.L, e.R) }
func (e Sub) String() string    { return fmt.Sprintf("(%s - %s)", e.L, e.R) }
func (e Mul) String() string    { return fmt.Sprintf("(%s * %s)", e.L, e.R) }
func (e Div) String() string    { return fmt.Sprintf("(%s / %s)", e.L, e.R) }
func (e Pow) String() string    { return fmt.Sprintf("(%s ^ %s)", e.L, e.R) }
func (e Root) String() string   { return fmt.Sprintf("root(%s, %s)", e.L, e.R) }
func (e Log) String() string    { return fmt.Sprintf("log(%s, %s)", e.L, e.R) }
func (e Min) String() string    { return fmt.Sprintf("min(%s, %s)", e.L, e.R) }
func (e Max) String() string    { return fmt.Sprintf("max(%s, %s)", e.L, e.R) }
func (e ModInt) String() string { return fmt.Sprintf("(%s %% %s)", e.L, e.R) }
func (e Neg) String() string    { return fmt.Sprintf("-%s", e.E) }
func (e Abs) String() string    { return fmt.Sprintf("abs(%s)", e.E) }
func (e Floor) String() string  { return fmt.Sprintf("floor(%s)", e.E) }
func (e Ceil) String() string   { return fmt.Sprintf("ceil(%s)", e.E) }
func (e Round) String() string  { return fmt.Sprintf("round(%s)", e.E) }
