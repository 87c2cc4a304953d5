package remote

import (
	"fmt"

	"go.flow.remotecore.io/remote/schema"
)

// unaryFractional is embedded by the Fractional family's unary operators.
type unaryFractional struct {
	Instance schema.FractionalKind
	E        Expression
}

func (n unaryFractional) Schema() schema.Schema {
	inst, err := schema.FractionalInstance(n.Instance)
	if err != nil {
		return schema.FailSchema{Msg: err.Error()}
	}
	return inst.Schema()
}
func (n unaryFractional) Operands() []Expression { return []Expression{n.E} }

type Sin struct{ unaryFractional }
type Asin struct{ unaryFractional }
type Atan struct{ unaryFractional }

func (e Sin) CaseName() string  { return "Sin" }
func (e Asin) CaseName() string { return "Asin" }
func (e Atan) CaseName() string { return "Atan" }

func (e Sin) String() string  { return fmt.Sprintf("sin(%s)", e.E) }
func (e Asin) String() string { return fmt.Sprintf("asin(%s)", e.E) }
func (e Atan) String() string { return fmt.Sprintf("atan(%s)", e.E) }
