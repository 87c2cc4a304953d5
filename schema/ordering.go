package schema

import (
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// ValueEqual reports whether a and b are equal under s's default equality:
// structural equality of the underlying value, ignoring Transform wrappers
// so two values compare equal whenever the default ordering ranks them
// the same.
func ValueEqual(s Schema, a, b DynamicValue) (bool, error) {
	c, err := Compare(s, a, b)
	if err != nil {
		return false, err
	}
	return c == 0, nil
}

// Compare implements every non-Fail schema's default total ordering over
// values: lexicographic on tuples, by tag then payload on enums, by case
// index then payload on either/option.
func Compare(s Schema, a, b DynamicValue) (int, error) {
	s = stripTransform(s)
	switch st := s.(type) {
	case PrimitiveSchema:
		return comparePrimitive(st.Tag, a, b)
	case OptionSchema:
		return compareOption(st, a, b)
	case EitherSchema:
		return compareEither(st, a, b)
	case TupleSchema:
		return compareTuple(st, a, b)
	case SequenceSchema:
		return compareSequence(st.Elem, a, b)
	case SetSchema:
		return compareSequence(st.Elem, a, b)
	case MapSchema:
		return compareMap(st, a, b)
	case RecordSchema:
		return compareRecord(st, a, b)
	case EnumSchema:
		return compareEnum(st, a, b)
	case FailSchema:
		return 0, fmt.Errorf("schema %w: %s", ErrNoOrdering, st.Msg)
	default:
		return 0, fmt.Errorf("%w: unrecognized schema %T", ErrNoOrdering, s)
	}
}

// ErrNoOrdering is returned by Compare when s carries no default ordering.
// Every schema other than FailSchema admits one.
var ErrNoOrdering = fmt.Errorf("schema has no default ordering")

func comparePrimitive(tag PrimitiveTag, a, b DynamicValue) (int, error) {
	pa, ok := a.(Primitive)
	pb, okb := b.(Primitive)
	if !ok || !okb || pa.Tag != tag || pb.Tag != tag {
		return 0, fmt.Errorf("expected two %s primitives, got %T and %T", tag, a, b)
	}
	switch tag {
	case Unit:
		return 0, nil
	case Bool:
		x, y := pa.Raw.(bool), pb.Raw.(bool)
		return boolCompare(x, y), nil
	case Byte:
		return intCompare(int64(pa.Raw.(byte)), int64(pb.Raw.(byte))), nil
	case Short:
		return intCompare(int64(pa.Raw.(int16)), int64(pb.Raw.(int16))), nil
	case Int:
		return intCompare(int64(pa.Raw.(int32)), int64(pb.Raw.(int32))), nil
	case Long:
		return intCompare(pa.Raw.(int64), pb.Raw.(int64)), nil
	case BigInt:
		return pa.Raw.(*big.Int).Cmp(pb.Raw.(*big.Int)), nil
	case Float:
		return floatCompare(float64(pa.Raw.(float32)), float64(pb.Raw.(float32))), nil
	case Double:
		return floatCompare(pa.Raw.(float64), pb.Raw.(float64)), nil
	case BigDecimal:
		return pa.Raw.(decimal.Decimal).Cmp(pb.Raw.(decimal.Decimal)), nil
	case Char:
		return intCompare(int64(pa.Raw.(rune)), int64(pb.Raw.(rune))), nil
	case String:
		return strings.Compare(pa.Raw.(string), pb.Raw.(string)), nil
	case Instant:
		ta, tb := pa.Raw.(time.Time), pb.Raw.(time.Time)
		switch {
		case ta.Before(tb):
			return -1, nil
		case ta.After(tb):
			return 1, nil
		default:
			return 0, nil
		}
	case Duration:
		return intCompare(int64(pa.Raw.(time.Duration)), int64(pb.Raw.(time.Duration))), nil
	case ChronoUnit:
		return strings.Compare(string(pa.Raw.(PrimitiveTag)), string(pb.Raw.(PrimitiveTag))), nil
	case URI:
		return strings.Compare(fmt.Sprintf("%v", pa.Raw), fmt.Sprintf("%v", pb.Raw)), nil
	case Throwable:
		// No natural ordering on errors; fall back to lexicographic comparison
		// of the rendered message, the same treatment URI gets above, so
		// Throwable still admits a total ordering.
		return strings.Compare(throwableMessage(pa.Raw), throwableMessage(pb.Raw)), nil
	default:
		return 0, fmt.Errorf("%w: unknown primitive tag %s", ErrNoOrdering, tag)
	}
}

func throwableMessage(raw any) string {
	if err, ok := raw.(error); ok {
		return err.Error()
	}
	return fmt.Sprintf("%v", raw)
}

func boolCompare(a, b bool) int {
	if a == b {
		return 0
	}
	if !a {
		return -1
	}
	return 1
}

func intCompare(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func floatCompare(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func compareOption(st OptionSchema, a, b DynamicValue) (int, error) {
	// None precedes Some, matching "by case index then payload" (None is
	// case 0, Some is case 1).
	ai := optionIndex(a)
	bi := optionIndex(b)
	if ai != bi {
		return intCompare(int64(ai), int64(bi)), nil
	}
	if ai == 0 {
		return 0, nil
	}
	return Compare(st.Inner, a.(Some).Value, b.(Some).Value)
}

func optionIndex(v DynamicValue) int {
	if _, ok := v.(None); ok {
		return 0
	}
	return 1
}

func compareEither(st EitherSchema, a, b DynamicValue) (int, error) {
	ai := eitherIndex(a)
	bi := eitherIndex(b)
	if ai != bi {
		return intCompare(int64(ai), int64(bi)), nil
	}
	if ai == 0 {
		return Compare(st.Left, a.(Left).Value, b.(Left).Value)
	}
	return Compare(st.Right, a.(Right).Value, b.(Right).Value)
}

func eitherIndex(v DynamicValue) int {
	if _, ok := v.(Left); ok {
		return 0
	}
	return 1
}

func compareTuple(st TupleSchema, a, b DynamicValue) (int, error) {
	ta, ok := a.(Tuple)
	tb, okb := b.(Tuple)
	if !ok || !okb {
		return 0, fmt.Errorf("expected two tuples, got %T and %T", a, b)
	}
	c, err := Compare(st.A, ta.A, tb.A)
	if err != nil {
		return 0, err
	}
	if c != 0 {
		return c, nil
	}
	return Compare(st.B, ta.B, tb.B)
}

func compareSequence(elem Schema, a, b DynamicValue) (int, error) {
	itemsA, err := sequenceItems(a)
	if err != nil {
		return 0, err
	}
	itemsB, err := sequenceItems(b)
	if err != nil {
		return 0, err
	}
	n := len(itemsA)
	if len(itemsB) < n {
		n = len(itemsB)
	}
	for i := 0; i < n; i++ {
		c, err := Compare(elem, itemsA[i], itemsB[i])
		if err != nil {
			return 0, err
		}
		if c != 0 {
			return c, nil
		}
	}
	return intCompare(int64(len(itemsA)), int64(len(itemsB))), nil
}

func sequenceItems(v DynamicValue) ([]DynamicValue, error) {
	switch t := v.(type) {
	case Sequence:
		return t.Items, nil
	case Set:
		return t.Items, nil
	default:
		return nil, fmt.Errorf("expected a sequence or set, got %T", v)
	}
}

// compareMap orders two Map values by their entries in storage order. Map
// has no natural key ordering in general (keys may themselves be composite),
// so this module adopts insertion-order comparison.
func compareMap(st MapSchema, a, b DynamicValue) (int, error) {
	ma, ok := a.(Map)
	mb, okb := b.(Map)
	if !ok || !okb {
		return 0, fmt.Errorf("expected two maps, got %T and %T", a, b)
	}
	n := len(ma.Entries)
	if len(mb.Entries) < n {
		n = len(mb.Entries)
	}
	for i := 0; i < n; i++ {
		c, err := Compare(st.Key, ma.Entries[i].Key, mb.Entries[i].Key)
		if err != nil {
			return 0, err
		}
		if c != 0 {
			return c, nil
		}
		c, err = Compare(st.Value, ma.Entries[i].Value, mb.Entries[i].Value)
		if err != nil {
			return 0, err
		}
		if c != 0 {
			return c, nil
		}
	}
	return intCompare(int64(len(ma.Entries)), int64(len(mb.Entries))), nil
}

func compareRecord(st RecordSchema, a, b DynamicValue) (int, error) {
	ra, ok := a.(Record)
	rb, okb := b.(Record)
	if !ok || !okb {
		return 0, fmt.Errorf("expected two %s records, got %T and %T", st.Name, a, b)
	}
	for _, f := range st.Fields {
		va, found := ra.Get(f.Name)
		if !found {
			return 0, fmt.Errorf("record missing field %q", f.Name)
		}
		vb, found := rb.Get(f.Name)
		if !found {
			return 0, fmt.Errorf("record missing field %q", f.Name)
		}
		c, err := Compare(f.Type, va, vb)
		if err != nil {
			return 0, err
		}
		if c != 0 {
			return c, nil
		}
	}
	return 0, nil
}

func compareEnum(st EnumSchema, a, b DynamicValue) (int, error) {
	ea, ok := a.(Enum)
	eb, okb := b.(Enum)
	if !ok || !okb {
		return 0, fmt.Errorf("expected two %s enum values, got %T and %T", st.Name, a, b)
	}
	ia, ib := st.CaseIndex(ea.Case), st.CaseIndex(eb.Case)
	if ia < 0 || ib < 0 {
		return 0, fmt.Errorf("unknown case in enum %s", st.Name)
	}
	if ia != ib {
		return intCompare(int64(ia), int64(ib)), nil
	}
	return Compare(st.Cases[ia].Payload, ea.Payload, eb.Payload)
}
