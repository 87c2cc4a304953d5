package schema

import "fmt"

// SchemaAndValue is the uniform evaluation result: a pair (schema, value)
// where value is well-formed against schema. It is also the
// canonical round-trip unit of serialization for concrete values.
type SchemaAndValue struct {
	Schema Schema
	Value  DynamicValue
}

// New builds a SchemaAndValue, returning a *BadShapeError if value does not
// match schema.
func New(s Schema, value DynamicValue) (SchemaAndValue, error) {
	if err := CheckWellFormed(s, value); err != nil {
		return SchemaAndValue{}, err
	}
	return SchemaAndValue{Schema: s, Value: value}, nil
}

func (sv SchemaAndValue) String() string {
	return fmt.Sprintf("%s :: %s", sv.Value, sv.Schema)
}

// Equal compares two SchemaAndValue pairs: schemas structurally, values
// through the schema's default equality.
func (sv SchemaAndValue) Equal(other SchemaAndValue) bool {
	if !schemaEqual(sv.Schema, other.Schema) {
		return false
	}
	eq, err := ValueEqual(sv.Schema, sv.Value, other.Value)
	return err == nil && eq
}
