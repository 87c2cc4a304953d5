package schema

import "fmt"

// DynamicValue is the schema-tagged runtime value every evaluated expression
// produces. It is a shape-compatible mirror of Schema: each Schema variant
// (besides Fail and Transform, which describe shape rather than carry it)
// has a corresponding DynamicValue constructor.
//
// A DynamicValue is well-formed against a schema S iff its shape matches S
// recursively after stripping Transform layers. WellFormed
// checks that invariant.
type DynamicValue interface {
	// Kind reports which shape this value has.
	Kind() TypeID
	// String renders the value for diagnostics.
	String() string
}

// Primitive carries a scalar value tagged with its PrimitiveTag. Raw holds
// the concrete Go representation: bool, byte, int16, int32, int64, *big.Int,
// float32, float64, decimal.Decimal, rune, string, time.Time, time.Duration,
// PrimitiveTag (for ChronoUnit), error (for Throwable), or *url.URL.
type Primitive struct {
	Tag PrimitiveTag
	Raw any
}

func (v Primitive) Kind() TypeID   { return TypeIDPrimitive }
func (v Primitive) String() string { return fmt.Sprintf("%v", v.Raw) }

// UnitValue is the single inhabitant of the Unit primitive.
var UnitValue = Primitive{Tag: Unit, Raw: struct{}{}}

// Some wraps a present Option value.
type Some struct {
	Value DynamicValue
}

func (v Some) Kind() TypeID   { return TypeIDOption }
func (v Some) String() string { return fmt.Sprintf("Some(%s)", v.Value) }

// None is the absent Option value.
type None struct{}

func (v None) Kind() TypeID   { return TypeIDOption }
func (v None) String() string { return "None" }

// Left wraps the left alternative of an Either.
type Left struct {
	Value DynamicValue
}

func (v Left) Kind() TypeID   { return TypeIDEither }
func (v Left) String() string { return fmt.Sprintf("Left(%s)", v.Value) }

// Right wraps the right alternative of an Either.
type Right struct {
	Value DynamicValue
}

func (v Right) Kind() TypeID   { return TypeIDEither }
func (v Right) String() string { return fmt.Sprintf("Right(%s)", v.Value) }

// Tuple is a right-nested pair, the runtime counterpart of TupleSchema.
type Tuple struct {
	A DynamicValue
	B DynamicValue
}

func (v Tuple) Kind() TypeID   { return TypeIDTuple }
func (v Tuple) String() string { return fmt.Sprintf("(%s, %s)", v.A, v.B) }

// Sequence is an ordered collection of values.
type Sequence struct {
	Items []DynamicValue
}

func (v Sequence) Kind() TypeID   { return TypeIDSequence }
func (v Sequence) String() string { return fmt.Sprintf("%v", v.Items) }

// MapEntry is one key/value pair of a Map.
type MapEntry struct {
	Key   DynamicValue
	Value DynamicValue
}

// Map is an association list of key/value pairs (insertion order
// preserved, as map keys need not be Go-hashable once wrapped).
type Map struct {
	Entries []MapEntry
}

func (v Map) Kind() TypeID   { return TypeIDMap }
func (v Map) String() string { return fmt.Sprintf("%v", v.Entries) }

// Set is an unordered collection of values without duplicates.
type Set struct {
	Items []DynamicValue
}

func (v Set) Kind() TypeID   { return TypeIDSet }
func (v Set) String() string { return fmt.Sprintf("%v", v.Items) }

// RecordField is one named field of a Record value.
type RecordField struct {
	Name  string
	Value DynamicValue
}

// Record is a named-field product value.
type Record struct {
	Name   string
	Fields []RecordField
}

func (v Record) Kind() TypeID   { return TypeIDRecord }
func (v Record) String() string { return fmt.Sprintf("%s%v", v.Name, v.Fields) }

// Get returns the named field's value, or (nil, false) if absent.
func (v Record) Get(name string) (DynamicValue, bool) {
	for _, f := range v.Fields {
		if f.Name == name {
			return f.Value, true
		}
	}
	return nil, false
}

// Enum is a tagged-sum value: a case name plus its payload.
type Enum struct {
	Case    string
	Payload DynamicValue
}

func (v Enum) Kind() TypeID   { return TypeIDEnum }
func (v Enum) String() string { return fmt.Sprintf("%s(%s)", v.Case, v.Payload) }

// WellFormed reports whether value matches the shape of s, recursively,
// after stripping Transform layers.
func WellFormed(s Schema, value DynamicValue) bool {
	s = stripTransform(s)
	switch st := s.(type) {
	case PrimitiveSchema:
		p, ok := value.(Primitive)
		return ok && p.Tag == st.Tag
	case OptionSchema:
		switch v := value.(type) {
		case Some:
			return WellFormed(st.Inner, v.Value)
		case None:
			return true
		default:
			return false
		}
	case EitherSchema:
		switch v := value.(type) {
		case Left:
			return WellFormed(st.Left, v.Value)
		case Right:
			return WellFormed(st.Right, v.Value)
		default:
			return false
		}
	case TupleSchema:
		v, ok := value.(Tuple)
		return ok && WellFormed(st.A, v.A) && WellFormed(st.B, v.B)
	case SequenceSchema:
		v, ok := value.(Sequence)
		if !ok {
			return false
		}
		for _, item := range v.Items {
			if !WellFormed(st.Elem, item) {
				return false
			}
		}
		return true
	case MapSchema:
		v, ok := value.(Map)
		if !ok {
			return false
		}
		for _, e := range v.Entries {
			if !WellFormed(st.Key, e.Key) || !WellFormed(st.Value, e.Value) {
				return false
			}
		}
		return true
	case SetSchema:
		v, ok := value.(Set)
		if !ok {
			return false
		}
		for _, item := range v.Items {
			if !WellFormed(st.Elem, item) {
				return false
			}
		}
		return true
	case RecordSchema:
		v, ok := value.(Record)
		if !ok || len(v.Fields) != len(st.Fields) {
			return false
		}
		for i, f := range st.Fields {
			if v.Fields[i].Name != f.Name || !WellFormed(f.Type, v.Fields[i].Value) {
				return false
			}
		}
		return true
	case EnumSchema:
		v, ok := value.(Enum)
		if !ok {
			return false
		}
		idx := st.CaseIndex(v.Case)
		if idx < 0 {
			return false
		}
		return WellFormed(st.Cases[idx].Payload, v.Payload)
	case FailSchema:
		return false
	default:
		return false
	}
}

// BadShapeError reports that a DynamicValue does not match the schema it was
// supposed to be carried by.
type BadShapeError struct {
	Schema Schema
	Value  DynamicValue
}

func (e *BadShapeError) Error() string {
	return fmt.Sprintf("value %s does not match schema %s", e.Value, e.Schema)
}

// CheckWellFormed returns a *BadShapeError if value is not well-formed
// against s, nil otherwise.
func CheckWellFormed(s Schema, value DynamicValue) error {
	if !WellFormed(s, value) {
		return &BadShapeError{Schema: s, Value: value}
	}
	return nil
}
