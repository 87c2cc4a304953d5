// Package schema implements the structural description of values that the
// remote expression core evaluates and ships across machines: the Schema
// variant itself, its runtime counterpart DynamicValue, and the numeric
// instance tables that parameterise the arithmetic operators.
package schema

import "fmt"

// TypeID identifies which Schema variant a value belongs to.
type TypeID string

const (
	TypeIDPrimitive TypeID = "Primitive"
	TypeIDOption    TypeID = "Option"
	TypeIDEither    TypeID = "Either"
	TypeIDTuple     TypeID = "Tuple"
	TypeIDSequence  TypeID = "Sequence"
	TypeIDMap       TypeID = "Map"
	TypeIDSet       TypeID = "Set"
	TypeIDRecord    TypeID = "Record"
	TypeIDEnum      TypeID = "Enum"
	TypeIDTransform TypeID = "Transform"
	TypeIDFail      TypeID = "Fail"
)

// PrimitiveTag enumerates the closed set of primitive scalar types.
type PrimitiveTag string

const (
	Unit       PrimitiveTag = "Unit"
	Bool       PrimitiveTag = "Bool"
	Byte       PrimitiveTag = "Byte"
	Short      PrimitiveTag = "Short"
	Int        PrimitiveTag = "Int"
	Long       PrimitiveTag = "Long"
	BigInt     PrimitiveTag = "BigInt"
	Float      PrimitiveTag = "Float"
	Double     PrimitiveTag = "Double"
	BigDecimal PrimitiveTag = "BigDecimal"
	Char       PrimitiveTag = "Char"
	String     PrimitiveTag = "String"
	Instant    PrimitiveTag = "Instant"
	Duration   PrimitiveTag = "Duration"
	ChronoUnit PrimitiveTag = "ChronoUnit"
	Throwable  PrimitiveTag = "Throwable"
	URI        PrimitiveTag = "URI"
)

// Schema describes the shape of a value: a primitive, a composite built out
// of other schemas, or Fail, the sentinel for "no schema available".
//
// A Schema tree is immutable once constructed and safe to share between
// concurrent evaluations, the same way the expression tree it describes
// is.
type Schema interface {
	// TypeID reports which variant this schema is.
	TypeID() TypeID
	// Equal reports structural equality: same shape and field/case names,
	// ignoring any Transform functions layered on top.
	Equal(other Schema) bool
	// String renders the schema for diagnostics.
	String() string
}

// PrimitiveSchema describes a scalar value identified by tag.
type PrimitiveSchema struct {
	Tag PrimitiveTag
}

func (s PrimitiveSchema) TypeID() TypeID { return TypeIDPrimitive }
func (s PrimitiveSchema) String() string { return string(s.Tag) }
func (s PrimitiveSchema) Equal(other Schema) bool {
	o, ok := stripTransform(other).(PrimitiveSchema)
	return ok && o.Tag == s.Tag
}

// OptionSchema describes Some(inner) | None.
type OptionSchema struct {
	Inner Schema
}

func (s OptionSchema) TypeID() TypeID { return TypeIDOption }
func (s OptionSchema) String() string { return fmt.Sprintf("Option(%s)", s.Inner) }
func (s OptionSchema) Equal(other Schema) bool {
	o, ok := stripTransform(other).(OptionSchema)
	return ok && schemaEqual(s.Inner, o.Inner)
}

// EitherSchema describes Left(left) | Right(right).
type EitherSchema struct {
	Left  Schema
	Right Schema
}

func (s EitherSchema) TypeID() TypeID { return TypeIDEither }
func (s EitherSchema) String() string { return fmt.Sprintf("Either(%s, %s)", s.Left, s.Right) }
func (s EitherSchema) Equal(other Schema) bool {
	o, ok := stripTransform(other).(EitherSchema)
	return ok && schemaEqual(s.Left, o.Left) && schemaEqual(s.Right, o.Right)
}

// TupleSchema describes a pair. Arity > 2 is modeled as a right-nested chain
// of TupleSchema values: Tuple3(a,b,c) is represented as
// TupleSchema{A: a, B: TupleSchema{A: b, B: c}}.
type TupleSchema struct {
	A Schema
	B Schema
}

func (s TupleSchema) TypeID() TypeID { return TypeIDTuple }
func (s TupleSchema) String() string { return fmt.Sprintf("Tuple(%s, %s)", s.A, s.B) }
func (s TupleSchema) Equal(other Schema) bool {
	o, ok := stripTransform(other).(TupleSchema)
	return ok && schemaEqual(s.A, o.A) && schemaEqual(s.B, o.B)
}

// Arity reports the number of leaves in this right-nested pair chain.
func (s TupleSchema) Arity() int {
	n := 1
	cur := s.B
	for {
		t, ok := cur.(TupleSchema)
		if !ok {
			return n + 1
		}
		n++
		cur = t.B
	}
}

// SequenceSchema describes an ordered, repeatable collection.
type SequenceSchema struct {
	Elem Schema
}

func (s SequenceSchema) TypeID() TypeID { return TypeIDSequence }
func (s SequenceSchema) String() string { return fmt.Sprintf("Sequence(%s)", s.Elem) }
func (s SequenceSchema) Equal(other Schema) bool {
	o, ok := stripTransform(other).(SequenceSchema)
	return ok && schemaEqual(s.Elem, o.Elem)
}

// MapSchema describes an association from Key to Value.
type MapSchema struct {
	Key   Schema
	Value Schema
}

func (s MapSchema) TypeID() TypeID { return TypeIDMap }
func (s MapSchema) String() string { return fmt.Sprintf("Map(%s, %s)", s.Key, s.Value) }
func (s MapSchema) Equal(other Schema) bool {
	o, ok := stripTransform(other).(MapSchema)
	return ok && schemaEqual(s.Key, o.Key) && schemaEqual(s.Value, o.Value)
}

// SetSchema describes an unordered collection without duplicates.
type SetSchema struct {
	Elem Schema
}

func (s SetSchema) TypeID() TypeID { return TypeIDSet }
func (s SetSchema) String() string { return fmt.Sprintf("Set(%s)", s.Elem) }
func (s SetSchema) Equal(other Schema) bool {
	o, ok := stripTransform(other).(SetSchema)
	return ok && schemaEqual(s.Elem, o.Elem)
}

// Field is one named component of a RecordSchema.
type Field struct {
	Name string
	Type Schema
}

// RecordSchema describes a named-field product type.
type RecordSchema struct {
	Name   string
	Fields []Field
}

func (s RecordSchema) TypeID() TypeID { return TypeIDRecord }
func (s RecordSchema) String() string { return fmt.Sprintf("Record(%s)", s.Name) }
func (s RecordSchema) Equal(other Schema) bool {
	o, ok := stripTransform(other).(RecordSchema)
	if !ok || s.Name != o.Name || len(s.Fields) != len(o.Fields) {
		return false
	}
	for i, f := range s.Fields {
		if f.Name != o.Fields[i].Name || !schemaEqual(f.Type, o.Fields[i].Type) {
			return false
		}
	}
	return true
}

// Case is one named alternative of an EnumSchema.
type Case struct {
	Name    string
	Payload Schema
}

// EnumSchema describes a tagged sum type.
type EnumSchema struct {
	Name  string
	Cases []Case
}

func (s EnumSchema) TypeID() TypeID { return TypeIDEnum }
func (s EnumSchema) String() string { return fmt.Sprintf("Enum(%s)", s.Name) }
func (s EnumSchema) Equal(other Schema) bool {
	o, ok := stripTransform(other).(EnumSchema)
	if !ok || s.Name != o.Name || len(s.Cases) != len(o.Cases) {
		return false
	}
	for i, c := range s.Cases {
		if c.Name != o.Cases[i].Name || !schemaEqual(c.Payload, o.Cases[i].Payload) {
			return false
		}
	}
	return true
}

// CaseIndex returns the 0-based index of the named case, or -1.
func (s EnumSchema) CaseIndex(name string) int {
	for i, c := range s.Cases {
		if c.Name == name {
			return i
		}
	}
	return -1
}

// TransformFuncs holds the bijection a TransformSchema layers onto its inner
// schema. The functions are never serialized: only Name travels on
// the wire, and a receiver re-resolves the functions by looking Name up in
// a process-local registry (see Register/Lookup in transform_registry.go).
type TransformFuncs struct {
	To   func(DynamicValue) (DynamicValue, error)
	From func(DynamicValue) (DynamicValue, error)
}

// TransformSchema layers a semantic bijection over Inner. Name identifies
// the TransformFuncs pair in the transform registry; it is the only part of
// the transform that is serialized.
type TransformSchema struct {
	Inner Schema
	Name  string
}

func (s TransformSchema) TypeID() TypeID { return TypeIDTransform }
func (s TransformSchema) String() string { return fmt.Sprintf("Transform(%s, %s)", s.Name, s.Inner) }
func (s TransformSchema) Equal(other Schema) bool {
	// Structural equality ignores Transform functions and compares through
	// to the inner shape.
	return schemaEqual(s.Inner, stripTransform(other))
}

// Funcs resolves this transform's bijection from the process-local registry.
func (s TransformSchema) Funcs() (TransformFuncs, bool) {
	return Lookup(s.Name)
}

// FailSchema is the sentinel for "no schema available".
type FailSchema struct {
	Msg string
}

func (s FailSchema) TypeID() TypeID      { return TypeIDFail }
func (s FailSchema) String() string      { return fmt.Sprintf("Fail(%s)", s.Msg) }
func (s FailSchema) Equal(other Schema) bool {
	o, ok := other.(FailSchema)
	return ok && o.Msg == s.Msg
}

// stripTransform peels off TransformSchema wrappers, the way structural
// equality and pattern-matching must.
func stripTransform(s Schema) Schema {
	for {
		t, ok := s.(TransformSchema)
		if !ok {
			return s
		}
		s = t.Inner
	}
}

func schemaEqual(a, b Schema) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.Equal(b)
}
