package remote

import (
	"fmt"

	"go.flow.remotecore.io/remote/schema"
)

// Length yields the length of a String value as an Int. Additional string
// operators can be layered analogously; they are not part of this core.
type Length struct {
	S Expression
}

func (e Length) Schema() schema.Schema  { return schema.PrimitiveSchema{Tag: schema.Int} }
func (e Length) Operands() []Expression { return []Expression{e.S} }
func (e Length) CaseName() string       { return "Length" }
func (e Length) String() string         { return fmt.Sprintf("length(%s)", e.S) }
