package remote

import (
	"fmt"

	"go.flow.remotecore.io/remote/schema"
)

// Equal compares two values of the same schema for structural equality
// (schema.ValueEqual). LessThanEqual compares two values under
// the default ordering (schema.Compare), which is defined only for ordered
// schemas; evaluating it against an unordered schema is an eval-time error
// (schema.ErrNoOrdering), not a construction-time one, since Schema() alone
// cannot tell whether a Record or Enum happens to be comparable.
type Equal struct {
	L, R Expression
}

func (e Equal) Schema() schema.Schema  { return schema.PrimitiveSchema{Tag: schema.Bool} }
func (e Equal) Operands() []Expression { return []Expression{e.L, e.R} }
func (e Equal) CaseName() string       { return "Equal" }
func (e Equal) String() string         { return fmt.Sprintf("(%s == %s)", e.L, e.R) }

type LessThanEqual struct {
	L, R Expression
}

func (e LessThanEqual) Schema() schema.Schema  { return schema.PrimitiveSchema{Tag: schema.Bool} }
func (e LessThanEqual) Operands() []Expression { return []Expression{e.L, e.R} }
func (e LessThanEqual) CaseName() string       { return "LessThanEqual" }
func (e LessThanEqual) String() string         { return fmt.Sprintf("(%s <= %s)", e.L, e.R) }
