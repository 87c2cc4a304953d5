package codec_test

import (
	"context"
	"math/big"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"go.arcalot.io/assert"

	remote "go.flow.remotecore.io/remote"
	"go.flow.remotecore.io/remote/codec"
	"go.flow.remotecore.io/remote/schema"
)

func TestSchemaRoundTrip(t *testing.T) {
	testCases := []struct {
		name string
		s    schema.Schema
	}{
		{"primitive", schema.PrimitiveSchema{Tag: schema.Int}},
		{"option", schema.OptionSchema{Inner: schema.PrimitiveSchema{Tag: schema.String}}},
		{"either", schema.EitherSchema{Left: schema.PrimitiveSchema{Tag: schema.Throwable}, Right: schema.PrimitiveSchema{Tag: schema.Int}}},
		{"tuple", schema.TupleSchema{A: schema.PrimitiveSchema{Tag: schema.Int}, B: schema.PrimitiveSchema{Tag: schema.Bool}}},
		{"sequence", schema.SequenceSchema{Elem: schema.PrimitiveSchema{Tag: schema.Long}}},
		{"set", schema.SetSchema{Elem: schema.PrimitiveSchema{Tag: schema.Int}}},
		{"map", schema.MapSchema{Key: schema.PrimitiveSchema{Tag: schema.String}, Value: schema.PrimitiveSchema{Tag: schema.Int}}},
		{"record", schema.RecordSchema{Name: "Point", Fields: []schema.Field{
			{Name: "x", Type: schema.PrimitiveSchema{Tag: schema.Int}},
			{Name: "y", Type: schema.PrimitiveSchema{Tag: schema.Int}},
		}}},
		{"enum", schema.EnumSchema{Name: "Result", Cases: []schema.Case{
			{Name: "Ok", Payload: schema.PrimitiveSchema{Tag: schema.Int}},
			{Name: "Err", Payload: schema.PrimitiveSchema{Tag: schema.String}},
		}}},
		{"fail", schema.FailSchema{Msg: "no schema"}},
		{"transform", schema.TransformSchema{Name: "celsius", Inner: schema.PrimitiveSchema{Tag: schema.Double}}},
		{"nested-composite", schema.OptionSchema{Inner: schema.EitherSchema{
			Left:  schema.SequenceSchema{Elem: schema.PrimitiveSchema{Tag: schema.Int}},
			Right: schema.TupleSchema{A: schema.PrimitiveSchema{Tag: schema.String}, B: schema.PrimitiveSchema{Tag: schema.Bool}},
		}}},
	}
	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			enc, err := codec.EncodeSchema(testCase.s)
			assert.NoError(t, err)
			dec, err := codec.DecodeSchema(enc)
			assert.NoError(t, err)
			assert.Equals(t, dec.Equal(testCase.s), true)
		})
	}
}

func TestValueRoundTrip(t *testing.T) {
	testCases := []struct {
		name string
		v    schema.DynamicValue
	}{
		{"int", schema.Primitive{Tag: schema.Int, Raw: int32(42)}},
		{"string", schema.Primitive{Tag: schema.String, Raw: "hi"}},
		{"bool", schema.Primitive{Tag: schema.Bool, Raw: true}},
		{"some", schema.Some{Value: schema.Primitive{Tag: schema.Int, Raw: int32(1)}}},
		{"none", schema.None{}},
		{"left", schema.Left{Value: schema.Primitive{Tag: schema.String, Raw: "err"}}},
		{"right", schema.Right{Value: schema.Primitive{Tag: schema.Int, Raw: int32(7)}}},
		{"tuple", schema.Tuple{A: schema.Primitive{Tag: schema.Int, Raw: int32(1)}, B: schema.Primitive{Tag: schema.Bool, Raw: false}}},
		{"sequence", schema.Sequence{Items: []schema.DynamicValue{
			schema.Primitive{Tag: schema.Int, Raw: int32(1)},
			schema.Primitive{Tag: schema.Int, Raw: int32(2)},
		}}},
		{"record", schema.Record{Name: "Point", Fields: []schema.RecordField{
			{Name: "x", Value: schema.Primitive{Tag: schema.Int, Raw: int32(1)}},
			{Name: "y", Value: schema.Primitive{Tag: schema.Int, Raw: int32(2)}},
		}}},
		{"enum", schema.Enum{Case: "Ok", Payload: schema.Primitive{Tag: schema.Int, Raw: int32(1)}}},
		{"instant", schema.Primitive{Tag: schema.Instant, Raw: time.Unix(1000, 250).UTC()}},
		{"duration", schema.Primitive{Tag: schema.Duration, Raw: 90 * time.Minute}},
		{"bigdecimal", schema.Primitive{Tag: schema.BigDecimal, Raw: decimal.RequireFromString("3.14159")}},
		{"bigint", schema.Primitive{Tag: schema.BigInt, Raw: new(big.Int).SetInt64(1 << 62)}},
	}
	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			enc, err := codec.EncodeValue(testCase.v)
			assert.NoError(t, err)
			dec, err := codec.DecodeValue(enc)
			assert.NoError(t, err)
			eq, err := schema.ValueEqual(schemaOf(testCase.v), dec, testCase.v)
			assert.NoError(t, err)
			assert.Equals(t, eq, true)
		})
	}
}

// schemaOf returns a schema well-formed enough for ValueEqual to compare
// against, covering only the shapes TestValueRoundTrip exercises.
func schemaOf(v schema.DynamicValue) schema.Schema {
	switch val := v.(type) {
	case schema.Primitive:
		return schema.PrimitiveSchema{Tag: val.Tag}
	case schema.Some:
		return schema.OptionSchema{Inner: schemaOf(val.Value)}
	case schema.None:
		return schema.OptionSchema{Inner: schema.PrimitiveSchema{Tag: schema.Int}}
	case schema.Left:
		return schema.EitherSchema{Left: schemaOf(val.Value), Right: schema.PrimitiveSchema{Tag: schema.Int}}
	case schema.Right:
		return schema.EitherSchema{Left: schema.PrimitiveSchema{Tag: schema.Int}, Right: schemaOf(val.Value)}
	case schema.Tuple:
		return schema.TupleSchema{A: schemaOf(val.A), B: schemaOf(val.B)}
	case schema.Sequence:
		elem := schema.Schema(schema.PrimitiveSchema{Tag: schema.Int})
		if len(val.Items) > 0 {
			elem = schemaOf(val.Items[0])
		}
		return schema.SequenceSchema{Elem: elem}
	case schema.Record:
		fields := make([]schema.Field, len(val.Fields))
		for i, f := range val.Fields {
			fields[i] = schema.Field{Name: f.Name, Type: schemaOf(f.Value)}
		}
		return schema.RecordSchema{Name: val.Name, Fields: fields}
	case schema.Enum:
		return schema.EnumSchema{Name: "Result", Cases: []schema.Case{{Name: val.Case, Payload: schemaOf(val.Payload)}}}
	default:
		return schema.FailSchema{Msg: "schemaOf: unhandled value"}
	}
}

func TestExpressionRoundTrip(t *testing.T) {
	ctx := remote.NewRemoteContext()
	fn := remote.Fn(ctx, schema.PrimitiveSchema{Tag: schema.Int}, func(x remote.Expression) remote.Expression {
		return remote.NewAdd(schema.NumericInt, x, remote.Int32(1))
	})
	pred := remote.Fn(ctx, schema.PrimitiveSchema{Tag: schema.Int}, func(x remote.Expression) remote.Expression {
		return remote.LessThanEqual{L: x, R: remote.Int32(3)}
	})
	intList := remote.Remote(
		schema.Sequence{Items: []schema.DynamicValue{
			schema.Primitive{Tag: schema.Int, Raw: int32(1)},
			schema.Primitive{Tag: schema.Int, Raw: int32(2)},
		}},
		schema.SequenceSchema{Elem: schema.PrimitiveSchema{Tag: schema.Int}},
	)
	sum := remote.Fn(ctx, schema.TupleSchema{A: schema.PrimitiveSchema{Tag: schema.Int}, B: schema.PrimitiveSchema{Tag: schema.Int}}, func(accElem remote.Expression) remote.Expression {
		return remote.NewAdd(schema.NumericInt,
			remote.TupleAccess{Tuple: accElem, Index: 0},
			remote.TupleAccess{Tuple: accElem, Index: 1},
		)
	})
	testCases := []struct {
		name string
		e    remote.Expression
	}{
		{"literal", remote.Int32(42)},
		{"and", remote.And{L: remote.Bool(true), R: remote.Bool(false)}},
		{"branch", remote.Branch{Predicate: remote.Bool(true), OnTrue: remote.Int32(1), OnFalse: remote.Int32(2)}},
		{"apply", remote.Apply{F: fn, Arg: remote.Int32(10)}},
		{"tuple", remote.Tuple3(remote.Int32(1), remote.Str("x"), remote.Bool(true))},
		{"tupleAccess", remote.TupleAccess{Tuple: remote.Tuple2(remote.Int32(1), remote.Int32(2)), Index: 1}},
		{"some", remote.Some0{E: remote.Int32(1)}},
		{"eitherL", remote.EitherL{Value: remote.Str("err"), RightSchema: schema.PrimitiveSchema{Tag: schema.Int}}},
		{"add", remote.NewAdd(schema.NumericLong, remote.Int64(1), remote.Int64(2))},
		{"sin", remote.NewSin(schema.FractionalDouble, remote.Remote(
			schema.Primitive{Tag: schema.Double, Raw: float64(0)},
			schema.PrimitiveSchema{Tag: schema.Double},
		))},
		{"instant", remote.InstantFromLong{Seconds: remote.Int64(1000)}},
		{"length", remote.Length{S: remote.Str("hello")}},
		{"not", remote.Not{E: remote.Bool(false)}},
		{"lessThanEqual", remote.LessThanEqual{L: remote.Int32(1), R: remote.Int32(2)}},
		{"mod", remote.NewMod(schema.NumericInt, remote.Int32(10), remote.Int32(3))},
		{"neg", remote.NewNeg(schema.NumericInt, remote.Int32(5))},
		{"swapEither", remote.SwapEither{E: remote.EitherL{Value: remote.Str("l"), RightSchema: schema.PrimitiveSchema{Tag: schema.Int}}}},
		{"foldOption", remote.FoldOption{Opt: remote.Some0{E: remote.Int32(41)}, IfEmpty: remote.Int32(0), IfSome: fn}},
		{"zipOption", remote.ZipOption{L: remote.Some0{E: remote.Int32(1)}, R: remote.Some0{E: remote.Int32(2)}}},
		{"optionContains", remote.OptionContains{Opt: remote.Some0{E: remote.Int32(5)}, V: remote.Int32(5)}},
		{"try", remote.Try{E: remote.EitherR{LeftSchema: remote.ThrowableSchema(), Value: remote.Int32(5)}}},
		{"instantToTuple", remote.InstantToTuple{I: remote.InstantFromLongs{Seconds: remote.Int64(5), Nanos: remote.Int64(9)}}},
		{"durationFromString", remote.DurationFromString{S: remote.Str("PT1H30M")}},
		{"durationToLongs", remote.DurationToLongs{D: remote.DurationFromLongs{Seconds: remote.Int64(5), NanoAdj: remote.Int64(9)}}},
		{"ignore", remote.Ignore{}},
		{"iterate", remote.Iterate{Initial: remote.Int32(0), Step: fn, Pred: pred}},
		{"fold", remote.Fold{List: intList, Initial: remote.Int32(0), Body: sum}},
		{"cons", remote.Cons{List: intList, Head: remote.Int32(0)}},
		{"unCons", remote.UnCons{List: intList}},
	}
	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			enc, err := codec.EncodeExpression(testCase.e)
			assert.NoError(t, err)
			dec, err := codec.DecodeExpression(enc)
			assert.NoError(t, err)
			assert.Equals(t, dec.Schema().Equal(testCase.e.Schema()), true)

			want, err := remote.EvalDynamic(context.Background(), remote.NewRemoteContext(), testCase.e)
			assert.NoError(t, err)
			got, err := remote.EvalDynamic(context.Background(), remote.NewRemoteContext(), dec)
			assert.NoError(t, err)
			eq, err := schema.ValueEqual(want.Schema, got.Value, want.Value)
			assert.NoError(t, err)
			assert.Equals(t, eq, true)
		})
	}
}

func TestVariableRoundTrip(t *testing.T) {
	v := remote.Variable{Name: "$v_1", Type: schema.PrimitiveSchema{Tag: schema.Int}}
	enc, err := codec.EncodeExpression(v)
	assert.NoError(t, err)
	dec, err := codec.DecodeExpression(enc)
	assert.NoError(t, err)
	got := dec.(remote.Variable)
	assert.Equals(t, got.Name, v.Name)
	assert.Equals(t, got.Type.Equal(v.Type), true)
}

func TestLazyIsNotWireSerializable(t *testing.T) {
	l := remote.Lazy{LazySchema: schema.PrimitiveSchema{Tag: schema.Int}, Thunk: func() remote.Expression { return remote.Int32(1) }}
	_, err := codec.EncodeExpression(l)
	assert.Error(t, err)
}
