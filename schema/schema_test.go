package schema_test

import (
	"math/big"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/shopspring/decimal"
	"go.arcalot.io/assert"

	"go.flow.remotecore.io/remote/schema"
)

func TestPrimitiveSchemaEquality(t *testing.T) {
	assert.Equals(t, schema.PrimitiveSchema{Tag: schema.Int}.Equal(schema.PrimitiveSchema{Tag: schema.Int}), true)
	assert.Equals(t, schema.PrimitiveSchema{Tag: schema.Int}.Equal(schema.PrimitiveSchema{Tag: schema.Long}), false)
}

func TestTransformSchemaEqualityIgnoresFunctions(t *testing.T) {
	inner := schema.PrimitiveSchema{Tag: schema.Int}
	t1 := schema.TransformSchema{Inner: inner, Name: "celsius"}
	t2 := schema.TransformSchema{Inner: inner, Name: "fahrenheit"}
	// Structural equality compares shape through the Transform wrapper,
	// ignoring the Name/bijection.
	assert.Equals(t, t1.Equal(t2), true)
	assert.Equals(t, t1.Equal(inner), true)
}

func TestTupleSchemaArity(t *testing.T) {
	three := schema.TupleSchema{
		A: schema.PrimitiveSchema{Tag: schema.Int},
		B: schema.TupleSchema{
			A: schema.PrimitiveSchema{Tag: schema.String},
			B: schema.PrimitiveSchema{Tag: schema.Bool},
		},
	}
	assert.Equals(t, three.Arity(), 3)
}

// schemaComparer lets cmp.Diff compare Schema trees (an interface with no
// exported fields of its own) via their own structural Equal, the same way
// codec's round-trip tests fall back to Schema.Equal rather than reflection.
var schemaComparer = cmp.Comparer(func(a, b schema.Schema) bool { return a.Equal(b) })

func TestRecordSchemaEqualityComparesFieldNames(t *testing.T) {
	a := schema.RecordSchema{Name: "Point", Fields: []schema.Field{
		{Name: "x", Type: schema.PrimitiveSchema{Tag: schema.Int}},
		{Name: "y", Type: schema.PrimitiveSchema{Tag: schema.Int}},
	}}
	b := schema.RecordSchema{Name: "Point", Fields: []schema.Field{
		{Name: "x", Type: schema.PrimitiveSchema{Tag: schema.Int}},
		{Name: "z", Type: schema.PrimitiveSchema{Tag: schema.Int}},
	}}
	assert.Equals(t, a.Equal(b), false)

	c := schema.RecordSchema{Name: "Point", Fields: []schema.Field{
		{Name: "x", Type: schema.PrimitiveSchema{Tag: schema.Int}},
		{Name: "y", Type: schema.PrimitiveSchema{Tag: schema.Int}},
	}}
	if diff := cmp.Diff(a.Fields, c.Fields, schemaComparer); diff != "" {
		t.Fatalf("unexpected field diff (-a +c):\n%s", diff)
	}
}

func TestEnumSchemaCaseIndex(t *testing.T) {
	e := schema.EnumSchema{Name: "Result", Cases: []schema.Case{
		{Name: "Ok", Payload: schema.PrimitiveSchema{Tag: schema.Int}},
		{Name: "Err", Payload: schema.PrimitiveSchema{Tag: schema.String}},
	}}
	assert.Equals(t, e.CaseIndex("Err"), 1)
	assert.Equals(t, e.CaseIndex("Missing"), -1)
}

func TestWellFormed(t *testing.T) {
	s := schema.OptionSchema{Inner: schema.PrimitiveSchema{Tag: schema.Int}}
	assert.Equals(t, schema.WellFormed(s, schema.Some{Value: schema.Primitive{Tag: schema.Int, Raw: int32(1)}}), true)
	assert.Equals(t, schema.WellFormed(s, schema.None{}), true)
	assert.Equals(t, schema.WellFormed(s, schema.Primitive{Tag: schema.Int, Raw: int32(1)}), false)
}

func TestCheckWellFormedReportsBadShape(t *testing.T) {
	s := schema.PrimitiveSchema{Tag: schema.String}
	err := schema.CheckWellFormed(s, schema.Primitive{Tag: schema.Int, Raw: int32(1)})
	assert.Error(t, err)
	var badShape *schema.BadShapeError
	assert.Equals(t, errorIsBadShape(err, &badShape), true)
}

func errorIsBadShape(err error, target **schema.BadShapeError) bool {
	e, ok := err.(*schema.BadShapeError)
	if ok {
		*target = e
	}
	return ok
}

func TestNumericInstances(t *testing.T) {
	for _, kind := range []schema.NumericKind{
		schema.NumericInt, schema.NumericLong, schema.NumericShort,
		schema.NumericBigInt, schema.NumericFloat, schema.NumericDouble,
		schema.NumericBigDecimal,
	} {
		inst, err := schema.NumericInstance(kind)
		assert.NoError(t, err)
		assert.Equals(t, inst.Kind(), kind)
	}
	_, err := schema.NumericInstance("Nope")
	assert.Error(t, err)
}

func TestInt32NumericArithmetic(t *testing.T) {
	inst, err := schema.NumericInstance(schema.NumericInt)
	assert.NoError(t, err)
	a := schema.Primitive{Tag: schema.Int, Raw: int32(6)}
	b := schema.Primitive{Tag: schema.Int, Raw: int32(4)}

	sum, err := inst.Add(a, b)
	assert.NoError(t, err)
	assert.Equals(t, sum.(schema.Primitive).Raw.(int32), int32(10))

	diff, err := inst.Sub(a, b)
	assert.NoError(t, err)
	assert.Equals(t, diff.(schema.Primitive).Raw.(int32), int32(2))

	mod, err := inst.Mod(a, b)
	assert.NoError(t, err)
	assert.Equals(t, mod.(schema.Primitive).Raw.(int32), int32(2))

	_, err = inst.Div(a, schema.Primitive{Tag: schema.Int, Raw: int32(0)})
	assert.Error(t, err)
}

func TestBigDecimalNumeric(t *testing.T) {
	inst, err := schema.NumericInstance(schema.NumericBigDecimal)
	assert.NoError(t, err)
	a := schema.Primitive{Tag: schema.BigDecimal, Raw: decimal.RequireFromString("1.5")}
	b := schema.Primitive{Tag: schema.BigDecimal, Raw: decimal.RequireFromString("2.25")}
	sum, err := inst.Add(a, b)
	assert.NoError(t, err)
	assert.Equals(t, sum.(schema.Primitive).Raw.(decimal.Decimal).Equal(decimal.RequireFromString("3.75")), true)
}

func TestBigIntNumeric(t *testing.T) {
	inst, err := schema.NumericInstance(schema.NumericBigInt)
	assert.NoError(t, err)
	a := schema.Primitive{Tag: schema.BigInt, Raw: big.NewInt(40)}
	b := schema.Primitive{Tag: schema.BigInt, Raw: big.NewInt(2)}
	sum, err := inst.Add(a, b)
	assert.NoError(t, err)
	assert.Equals(t, sum.(schema.Primitive).Raw.(*big.Int).Cmp(big.NewInt(42)), 0)
}

func TestFractionalInstances(t *testing.T) {
	for _, kind := range []schema.FractionalKind{
		schema.FractionalFloat, schema.FractionalDouble, schema.FractionalBigDecimal,
	} {
		inst, err := schema.FractionalInstance(kind)
		assert.NoError(t, err)
		assert.Equals(t, inst.Kind(), kind)
	}
}

func TestFractionalAsinDomainError(t *testing.T) {
	inst, err := schema.FractionalInstance(schema.FractionalDouble)
	assert.NoError(t, err)
	_, err = inst.Asin(schema.Primitive{Tag: schema.Double, Raw: 2.0})
	assert.Error(t, err)
}

func TestCompareOrdersTuplesLexicographically(t *testing.T) {
	s := schema.TupleSchema{A: schema.PrimitiveSchema{Tag: schema.Int}, B: schema.PrimitiveSchema{Tag: schema.Int}}
	small := schema.Tuple{A: schema.Primitive{Tag: schema.Int, Raw: int32(1)}, B: schema.Primitive{Tag: schema.Int, Raw: int32(99)}}
	big := schema.Tuple{A: schema.Primitive{Tag: schema.Int, Raw: int32(2)}, B: schema.Primitive{Tag: schema.Int, Raw: int32(0)}}
	c, err := schema.Compare(s, small, big)
	assert.NoError(t, err)
	assert.Equals(t, c < 0, true)
}

func TestCompareOptionNonePrecedesSome(t *testing.T) {
	s := schema.OptionSchema{Inner: schema.PrimitiveSchema{Tag: schema.Int}}
	c, err := schema.Compare(s, schema.None{}, schema.Some{Value: schema.Primitive{Tag: schema.Int, Raw: int32(0)}})
	assert.NoError(t, err)
	assert.Equals(t, c < 0, true)
}

func TestCompareEitherByCaseThenPayload(t *testing.T) {
	s := schema.EitherSchema{Left: schema.PrimitiveSchema{Tag: schema.String}, Right: schema.PrimitiveSchema{Tag: schema.Int}}
	left := schema.Left{Value: schema.Primitive{Tag: schema.String, Raw: "err"}}
	right := schema.Right{Value: schema.Primitive{Tag: schema.Int, Raw: int32(1)}}
	c, err := schema.Compare(s, left, right)
	assert.NoError(t, err)
	assert.Equals(t, c < 0, true)
}

func TestCompareEnumByCaseIndexThenPayload(t *testing.T) {
	s := schema.EnumSchema{Name: "Result", Cases: []schema.Case{
		{Name: "Ok", Payload: schema.PrimitiveSchema{Tag: schema.Int}},
		{Name: "Err", Payload: schema.PrimitiveSchema{Tag: schema.String}},
	}}
	ok := schema.Enum{Case: "Ok", Payload: schema.Primitive{Tag: schema.Int, Raw: int32(1)}}
	failure := schema.Enum{Case: "Err", Payload: schema.Primitive{Tag: schema.String, Raw: "boom"}}
	c, err := schema.Compare(s, ok, failure)
	assert.NoError(t, err)
	assert.Equals(t, c < 0, true)
}

func TestCompareFailSchemaHasNoOrdering(t *testing.T) {
	_, err := schema.Compare(schema.FailSchema{Msg: "no schema"}, schema.UnitValue, schema.UnitValue)
	assert.Error(t, err)
}

func TestCompareThrowableFallsBackToMessage(t *testing.T) {
	s := schema.PrimitiveSchema{Tag: schema.Throwable}
	a := schema.Primitive{Tag: schema.Throwable, Raw: &stringError{"alpha"}}
	b := schema.Primitive{Tag: schema.Throwable, Raw: &stringError{"beta"}}
	c, err := schema.Compare(s, a, b)
	assert.NoError(t, err)
	assert.Equals(t, c < 0, true)
}

type stringError struct{ msg string }

func (e *stringError) Error() string { return e.msg }

func TestSequenceSchemaRoundTripEquality(t *testing.T) {
	s := schema.SequenceSchema{Elem: schema.PrimitiveSchema{Tag: schema.Int}}
	a := schema.Sequence{Items: []schema.DynamicValue{
		schema.Primitive{Tag: schema.Int, Raw: int32(1)},
		schema.Primitive{Tag: schema.Int, Raw: int32(2)},
	}}
	b := schema.Sequence{Items: []schema.DynamicValue{
		schema.Primitive{Tag: schema.Int, Raw: int32(1)},
		schema.Primitive{Tag: schema.Int, Raw: int32(2)},
	}}
	eq, err := schema.ValueEqual(s, a, b)
	assert.NoError(t, err)
	assert.Equals(t, eq, true)
}

func TestSchemaAndValueEqual(t *testing.T) {
	sv1 := schema.SchemaAndValue{Schema: schema.PrimitiveSchema{Tag: schema.Int}, Value: schema.Primitive{Tag: schema.Int, Raw: int32(1)}}
	sv2 := schema.SchemaAndValue{Schema: schema.PrimitiveSchema{Tag: schema.Int}, Value: schema.Primitive{Tag: schema.Int, Raw: int32(1)}}
	sv3 := schema.SchemaAndValue{Schema: schema.PrimitiveSchema{Tag: schema.Int}, Value: schema.Primitive{Tag: schema.Int, Raw: int32(2)}}
	assert.Equals(t, sv1.Equal(sv2), true)
	assert.Equals(t, sv1.Equal(sv3), false)
}

func TestTransformRegistry(t *testing.T) {
	schema.Register("doubling-test", schema.TransformFuncs{
		To:   func(v schema.DynamicValue) (schema.DynamicValue, error) { return v, nil },
		From: func(v schema.DynamicValue) (schema.DynamicValue, error) { return v, nil },
	})
	funcs, ok := schema.TransformSchema{Name: "doubling-test", Inner: schema.PrimitiveSchema{Tag: schema.Int}}.Funcs()
	assert.Equals(t, ok, true)
	v, err := funcs.To(schema.Primitive{Tag: schema.Int, Raw: int32(1)})
	assert.NoError(t, err)
	assert.Equals(t, v.(schema.Primitive).Raw.(int32), int32(1))

	_, ok = schema.TransformSchema{Name: "never-registered", Inner: schema.PrimitiveSchema{Tag: schema.Int}}.Funcs()
	assert.Equals(t, ok, false)
}
