package remote_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.arcalot.io/assert"

	remote "go.flow.remotecore.io/remote"
	"go.flow.remotecore.io/remote/schema"
)

// asEvalError is errors.As specialized to *remote.EvalError.
func asEvalError(err error) (*remote.EvalError, bool) {
	var evalErr *remote.EvalError
	ok := errors.As(err, &evalErr)
	return evalErr, ok
}

var errBoom = errors.New("boom")

func evalDyn(t *testing.T, e remote.Expression) schema.SchemaAndValue {
	t.Helper()
	sv, err := remote.EvalDynamic(context.Background(), remote.NewRemoteContext(), e)
	assert.NoError(t, err)
	return sv
}

func TestBooleanOperators(t *testing.T) {
	testCases := []struct {
		name string
		expr remote.Expression
		want bool
	}{
		{"and-true", remote.And{L: remote.Bool(true), R: remote.Bool(true)}, true},
		{"and-false", remote.And{L: remote.Bool(true), R: remote.Bool(false)}, false},
		{"or-true", remote.Or{L: remote.Bool(false), R: remote.Bool(true)}, true},
		{"or-false", remote.Or{L: remote.Bool(false), R: remote.Bool(false)}, false},
		{"not", remote.Not{E: remote.Bool(false)}, true},
	}
	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			sv := evalDyn(t, testCase.expr)
			assert.Equals(t, sv.Value.(schema.Primitive).Raw.(bool), testCase.want)
		})
	}
}

func TestAndShortCircuits(t *testing.T) {
	// A false left operand must short-circuit: the right side, if evaluated,
	// would reference an unbound variable and fail.
	boom := remote.Variable{Name: "$unbound", Type: schema.PrimitiveSchema{Tag: schema.Bool}}
	sv := evalDyn(t, remote.And{L: remote.Bool(false), R: boom})
	assert.Equals(t, sv.Value.(schema.Primitive).Raw.(bool), false)

	sv = evalDyn(t, remote.Or{L: remote.Bool(true), R: boom})
	assert.Equals(t, sv.Value.(schema.Primitive).Raw.(bool), true)
}

func TestBranch(t *testing.T) {
	b := remote.Branch{
		Predicate: remote.Bool(true),
		OnTrue:    remote.Int32(1),
		OnFalse:   remote.Int32(2),
	}
	sv := evalDyn(t, b)
	assert.Equals(t, sv.Value.(schema.Primitive).Raw.(int32), int32(1))
}

func TestBranchSchemaMismatchIsBadShape(t *testing.T) {
	b := remote.Branch{
		Predicate: remote.Bool(true),
		OnTrue:    remote.Int32(1),
		OnFalse:   remote.Str("nope"),
	}
	_, err := remote.EvalDynamic(context.Background(), remote.NewRemoteContext(), b)
	assert.Error(t, err)
	evalErr, ok := asEvalError(err)
	assert.Equals(t, ok, true)
	assert.Equals(t, evalErr.Kind, remote.KindBadShape)
}

func TestIterateIsTailRecursive(t *testing.T) {
	ctx := remote.NewRemoteContext()
	// count up from 0 to 10_000 one step at a time; a recursive evaluator
	// would blow the Go call stack long before this completes.
	step := remote.Fn(ctx, schema.PrimitiveSchema{Tag: schema.Int}, func(x remote.Expression) remote.Expression {
		return remote.NewAdd(schema.NumericInt, x, remote.Int32(1))
	})
	pred := remote.Fn(ctx, schema.PrimitiveSchema{Tag: schema.Int}, func(x remote.Expression) remote.Expression {
		return remote.LessThanEqual{L: x, R: remote.Int32(10000)}
	})
	it := remote.Iterate{Initial: remote.Int32(0), Step: step, Pred: pred}
	sv, err := remote.EvalDynamic(context.Background(), ctx, it)
	assert.NoError(t, err)
	assert.Equals(t, sv.Value.(schema.Primitive).Raw.(int32), int32(10001))
}

func TestApplyBindsFreshVariable(t *testing.T) {
	ctx := remote.NewRemoteContext()
	double := remote.Fn(ctx, schema.PrimitiveSchema{Tag: schema.Int}, func(x remote.Expression) remote.Expression {
		return remote.NewMul(schema.NumericInt, x, remote.Int32(2))
	})
	apply := remote.Apply{F: double, Arg: remote.Int32(21)}
	sv, err := remote.EvalDynamic(context.Background(), ctx, apply)
	assert.NoError(t, err)
	assert.Equals(t, sv.Value.(schema.Primitive).Raw.(int32), int32(42))
}

func TestTupleAccess(t *testing.T) {
	tup := remote.Tuple3(remote.Int32(1), remote.Str("two"), remote.Bool(true))
	for i, want := range []any{int32(1), "two", true} {
		sv := evalDyn(t, remote.TupleAccess{Tuple: tup, Index: i})
		assert.Equals(t, sv.Value.(schema.Primitive).Raw, want)
	}
}

func TestTupleAccessOutOfRange(t *testing.T) {
	tup := remote.Tuple2(remote.Int32(1), remote.Int32(2))
	_, err := remote.EvalDynamic(context.Background(), remote.NewRemoteContext(), remote.TupleAccess{Tuple: tup, Index: 5})
	assert.Error(t, err)
	evalErr, ok := asEvalError(err)
	assert.Equals(t, ok, true)
	assert.Equals(t, evalErr.Kind, remote.KindIndexOutOfRange)
}

func TestOptionFold(t *testing.T) {
	ctx := remote.NewRemoteContext()
	ifSome := remote.Fn(ctx, schema.PrimitiveSchema{Tag: schema.Int}, func(x remote.Expression) remote.Expression {
		return remote.NewAdd(schema.NumericInt, x, remote.Int32(1))
	})
	fold := remote.FoldOption{
		Opt:     remote.Some0{E: remote.Int32(41)},
		IfEmpty: remote.Int32(0),
		IfSome:  ifSome,
	}
	sv := evalDyn(t, fold)
	assert.Equals(t, sv.Value.(schema.Primitive).Raw.(int32), int32(42))
}

func TestEitherFold(t *testing.T) {
	ctx := remote.NewRemoteContext()
	fl := remote.Fn(ctx, schema.PrimitiveSchema{Tag: schema.String}, func(e remote.Expression) remote.Expression {
		return remote.Length{S: e}
	})
	fr := remote.Fn(ctx, schema.PrimitiveSchema{Tag: schema.Int}, func(n remote.Expression) remote.Expression {
		return n
	})
	left := remote.FoldEither{E: remote.EitherL{Value: remote.Str("boom"), RightSchema: schema.PrimitiveSchema{Tag: schema.Int}}, FL: fl, FR: fr}
	sv := evalDyn(t, left)
	assert.Equals(t, sv.Value.(schema.Primitive).Raw.(int32), int32(4))

	right := remote.FoldEither{E: remote.EitherR{LeftSchema: schema.PrimitiveSchema{Tag: schema.String}, Value: remote.Int32(9)}, FL: fl, FR: fr}
	sv = evalDyn(t, right)
	assert.Equals(t, sv.Value.(schema.Primitive).Raw.(int32), int32(9))
}

func TestTrySuccessAndFailure(t *testing.T) {
	success := remote.Try{E: remote.EitherR{LeftSchema: remote.ThrowableSchema(), Value: remote.Int32(5)}}
	sv := evalDyn(t, success)
	enumVal := sv.Value.(schema.Enum)
	assert.Equals(t, enumVal.Case, "Success")
	assert.Equals(t, enumVal.Payload.(schema.Primitive).Raw.(int32), int32(5))

	failureValue := remote.Remote(
		schema.Primitive{Tag: schema.Throwable, Raw: errBoom},
		remote.ThrowableSchema(),
	)
	failure := remote.Try{E: remote.EitherL{Value: failureValue, RightSchema: schema.PrimitiveSchema{Tag: schema.Int}}}
	sv = evalDyn(t, failure)
	enumVal = sv.Value.(schema.Enum)
	assert.Equals(t, enumVal.Case, "Failure")
}

func TestListConsAndFold(t *testing.T) {
	ctx := remote.NewRemoteContext()
	list := remote.Cons{List: remote.Cons{List: remote.Cons{List: emptyIntList(), Head: remote.Int32(3)}, Head: remote.Int32(2)}, Head: remote.Int32(1)}
	body := remote.Fn(ctx, schema.TupleSchema{A: schema.PrimitiveSchema{Tag: schema.Int}, B: schema.PrimitiveSchema{Tag: schema.Int}}, func(accElem remote.Expression) remote.Expression {
		return remote.NewAdd(schema.NumericInt, remote.TupleAccess{Tuple: accElem, Index: 0}, remote.TupleAccess{Tuple: accElem, Index: 1})
	})
	fold := remote.Fold{List: list, Initial: remote.Int32(0), Body: body}
	sv := evalDyn(t, fold)
	assert.Equals(t, sv.Value.(schema.Primitive).Raw.(int32), int32(6))
}

func emptyIntList() remote.Expression {
	return remote.Remote(schema.Sequence{Items: nil}, schema.SequenceSchema{Elem: schema.PrimitiveSchema{Tag: schema.Int}})
}

func TestInstantDurationArithmetic(t *testing.T) {
	i := remote.InstantFromLong{Seconds: remote.Int64(1000)}
	d := remote.DurationFromLong{Seconds: remote.Int64(60)}
	plus := remote.InstantPlusDuration{I: i, D: d}
	sv := evalDyn(t, plus)
	got := sv.Value.(schema.Primitive).Raw.(time.Time)
	assert.Equals(t, got.Unix(), int64(1060))
}

func TestDurationFromStringISO8601(t *testing.T) {
	sv := evalDyn(t, remote.DurationFromString{S: remote.Str("PT1H30M")})
	got := sv.Value.(schema.Primitive).Raw.(time.Duration)
	assert.Equals(t, got, 90*time.Minute)
}

func TestSchemaStability(t *testing.T) {
	// The schema an expression reports without evaluation must equal the
	// schema component of its evaluation result.
	ctx := remote.NewRemoteContext()
	intSchema := schema.PrimitiveSchema{Tag: schema.Int}
	inc := remote.Fn(ctx, intSchema, func(x remote.Expression) remote.Expression {
		return remote.NewAdd(schema.NumericInt, x, remote.Int32(1))
	})
	testCases := map[string]remote.Expression{
		"literal":  remote.Int32(7),
		"ignore":   remote.Ignore{},
		"and":      remote.And{L: remote.Bool(true), R: remote.Bool(false)},
		"equal":    remote.Equal{L: remote.Int32(1), R: remote.Int32(1)},
		"branch":   remote.Branch{Predicate: remote.Bool(true), OnTrue: remote.Int32(1), OnFalse: remote.Int32(2)},
		"apply":    remote.Apply{F: inc, Arg: remote.Int32(1)},
		"add":      remote.NewAdd(schema.NumericInt, remote.Int32(1), remote.Int32(2)),
		"some":     remote.Some0{E: remote.Int32(3)},
		"eitherL":  remote.EitherL{Value: remote.Str("x"), RightSchema: intSchema},
		"tuple":    remote.Tuple3(remote.Int32(1), remote.Str("a"), remote.Bool(true)),
		"access":   remote.TupleAccess{Tuple: remote.Tuple2(remote.Int32(1), remote.Str("a")), Index: 1},
		"length":   remote.Length{S: remote.Str("abc")},
		"instant":  remote.InstantFromLong{Seconds: remote.Int64(5)},
		"duration": remote.DurationFromLong{Seconds: remote.Int64(5)},
		"toTuple":  remote.InstantToTuple{I: remote.InstantFromLong{Seconds: remote.Int64(5)}},
	}
	for name, expr := range testCases {
		t.Run(name, func(t *testing.T) {
			sv, err := remote.EvalDynamic(context.Background(), ctx, expr)
			assert.NoError(t, err)
			assert.Equals(t, expr.Schema().Equal(sv.Schema), true)
		})
	}
}

func TestClosureDiscipline(t *testing.T) {
	ctx := remote.NewRemoteContext()
	intSchema := schema.PrimitiveSchema{Tag: schema.Int}

	// A body that references its input yields different results for
	// different arguments.
	identity := remote.Fn(ctx, intSchema, func(x remote.Expression) remote.Expression { return x })
	first := evalDyn(t, remote.Apply{F: identity, Arg: remote.Int32(1)})
	second := evalDyn(t, remote.Apply{F: identity, Arg: remote.Int32(2)})
	assert.Equals(t, first.Value.(schema.Primitive).Raw.(int32), int32(1))
	assert.Equals(t, second.Value.(schema.Primitive).Raw.(int32), int32(2))

	// A body that ignores its input yields identical results.
	constant := remote.Fn(ctx, intSchema, func(remote.Expression) remote.Expression { return remote.Int32(9) })
	first = evalDyn(t, remote.Apply{F: constant, Arg: remote.Int32(1)})
	second = evalDyn(t, remote.Apply{F: constant, Arg: remote.Int32(2)})
	assert.Equals(t, first.Equal(second), true)
}

func TestInstantToTupleLaw(t *testing.T) {
	expr := remote.InstantToTuple{I: remote.InstantFromLongs{Seconds: remote.Int64(5), Nanos: remote.Int64(250)}}
	sv := evalDyn(t, expr)
	pair := sv.Value.(schema.Tuple)
	assert.Equals(t, pair.A.(schema.Primitive).Raw.(int64), int64(5))
	assert.Equals(t, pair.B.(schema.Primitive).Raw.(int32), int32(250))
}

func TestDurationToLongsLaw(t *testing.T) {
	expr := remote.DurationToLongs{D: remote.DurationFromLongs{Seconds: remote.Int64(5), NanoAdj: remote.Int64(250)}}
	sv := evalDyn(t, expr)
	pair := sv.Value.(schema.Tuple)
	assert.Equals(t, pair.A.(schema.Primitive).Raw.(int64), int64(5))
	assert.Equals(t, pair.B.(schema.Primitive).Raw.(int32), int32(250))
}

func TestDivideByZeroIsArithmeticError(t *testing.T) {
	div := remote.NewDiv(schema.NumericInt, remote.Int32(1), remote.Int32(0))
	_, err := remote.EvalDynamic(context.Background(), remote.NewRemoteContext(), div)
	assert.Error(t, err)
	evalErr, ok := asEvalError(err)
	assert.Equals(t, ok, true)
	assert.Equals(t, evalErr.Kind, remote.KindArithmeticError)
}

func TestModUsesModuloSemantics(t *testing.T) {
	mod := remote.NewMod(schema.NumericInt, remote.Int32(10), remote.Int32(3))
	sv := evalDyn(t, mod)
	assert.Equals(t, sv.Value.(schema.Primitive).Raw.(int32), int32(1))
}

func TestEqualSchemaMismatchIsTypeMismatch(t *testing.T) {
	eq := remote.Equal{L: remote.Int32(1), R: remote.Str("one")}
	_, err := remote.EvalDynamic(context.Background(), remote.NewRemoteContext(), eq)
	assert.Error(t, err)
	evalErr, ok := asEvalError(err)
	assert.Equals(t, ok, true)
	assert.Equals(t, evalErr.Kind, remote.KindTypeMismatch)
}

func TestUnboundVariable(t *testing.T) {
	v := remote.Variable{Name: "$nowhere", Type: schema.PrimitiveSchema{Tag: schema.Int}}
	_, err := remote.EvalDynamic(context.Background(), remote.NewRemoteContext(), v)
	assert.Error(t, err)
	evalErr, ok := asEvalError(err)
	assert.Equals(t, ok, true)
	assert.Equals(t, evalErr.Kind, remote.KindUnbound)
}

func TestLazyDefersConstruction(t *testing.T) {
	forced := false
	lazy := remote.Lazy{
		LazySchema: schema.PrimitiveSchema{Tag: schema.Int},
		Thunk: func() remote.Expression {
			forced = true
			return remote.Int32(7)
		},
	}
	// Schema and Operands never force the thunk.
	assert.Equals(t, lazy.Schema().Equal(schema.PrimitiveSchema{Tag: schema.Int}), true)
	assert.Equals(t, len(lazy.Operands()), 0)
	assert.Equals(t, forced, false)

	sv := evalDyn(t, lazy)
	assert.Equals(t, forced, true)
	assert.Equals(t, sv.Value.(schema.Primitive).Raw.(int32), int32(7))
}

func TestNestedYieldsExpressionAsData(t *testing.T) {
	inner := remote.NewAdd(schema.NumericInt, remote.Int32(1), remote.Int32(2))
	sv := evalDyn(t, remote.Nested{Inner: inner})
	assert.Equals(t, sv.Schema.Equal(remote.ExpressionSchema()), true)
	carried := sv.Value.(schema.Primitive).Raw.(remote.Expression)
	// The carried expression is the blueprint itself, still unevaluated.
	nested := evalDyn(t, carried)
	assert.Equals(t, nested.Value.(schema.Primitive).Raw.(int32), int32(3))
}

func TestCancelledContextAbortsEvaluation(t *testing.T) {
	goCtx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := remote.EvalDynamic(goCtx, remote.NewRemoteContext(), remote.Int32(1))
	assert.Error(t, err)
	assert.Equals(t, errors.Is(err, context.Canceled), true)
}

func TestFlatMapEither(t *testing.T) {
	ctx := remote.NewRemoteContext()
	strSchema := schema.PrimitiveSchema{Tag: schema.String}
	intSchema := schema.PrimitiveSchema{Tag: schema.Int}
	wrapRight := remote.Fn(ctx, intSchema, func(n remote.Expression) remote.Expression {
		return remote.EitherR{LeftSchema: strSchema, Value: n}
	})

	// A Left short-circuits past Fn.
	left := remote.FlatMapEither{
		E:       remote.EitherL{Value: remote.Str("oops"), RightSchema: intSchema},
		Fn:      wrapRight,
		ASchema: strSchema,
		CSchema: intSchema,
	}
	sv := evalDyn(t, left)
	lv := sv.Value.(schema.Left)
	assert.Equals(t, lv.Value.(schema.Primitive).Raw.(string), "oops")

	// A Right flows through Fn.
	right := remote.FlatMapEither{
		E:       remote.EitherR{LeftSchema: strSchema, Value: remote.Int32(4)},
		Fn:      wrapRight,
		ASchema: strSchema,
		CSchema: intSchema,
	}
	sv = evalDyn(t, right)
	rv := sv.Value.(schema.Right)
	assert.Equals(t, rv.Value.(schema.Primitive).Raw.(int32), int32(4))
}

func TestSwapEither(t *testing.T) {
	intSchema := schema.PrimitiveSchema{Tag: schema.Int}
	swap := remote.SwapEither{E: remote.EitherL{Value: remote.Str("l"), RightSchema: intSchema}}
	sv := evalDyn(t, swap)
	rv := sv.Value.(schema.Right)
	assert.Equals(t, rv.Value.(schema.Primitive).Raw.(string), "l")
	es := sv.Schema.(schema.EitherSchema)
	assert.Equals(t, es.Left.Equal(intSchema), true)
	assert.Equals(t, es.Right.Equal(schema.PrimitiveSchema{Tag: schema.String}), true)
}

func TestZipOption(t *testing.T) {
	both := remote.ZipOption{L: remote.Some0{E: remote.Int32(1)}, R: remote.Some0{E: remote.Str("a")}}
	sv := evalDyn(t, both)
	pair := sv.Value.(schema.Some).Value.(schema.Tuple)
	assert.Equals(t, pair.A.(schema.Primitive).Raw.(int32), int32(1))
	assert.Equals(t, pair.B.(schema.Primitive).Raw.(string), "a")

	none := remote.Remote(schema.None{}, schema.OptionSchema{Inner: schema.PrimitiveSchema{Tag: schema.String}})
	missing := remote.ZipOption{L: remote.Some0{E: remote.Int32(1)}, R: none}
	sv = evalDyn(t, missing)
	assert.Equals(t, sv.Value.Kind(), schema.TypeIDOption)
	_, isNone := sv.Value.(schema.None)
	assert.Equals(t, isNone, true)
}

func TestOptionContains(t *testing.T) {
	opt := remote.Some0{E: remote.Int32(5)}
	sv := evalDyn(t, remote.OptionContains{Opt: opt, V: remote.Int32(5)})
	assert.Equals(t, sv.Value.(schema.Primitive).Raw.(bool), true)

	sv = evalDyn(t, remote.OptionContains{Opt: opt, V: remote.Int32(6)})
	assert.Equals(t, sv.Value.(schema.Primitive).Raw.(bool), false)

	none := remote.Remote(schema.None{}, schema.OptionSchema{Inner: schema.PrimitiveSchema{Tag: schema.Int}})
	sv = evalDyn(t, remote.OptionContains{Opt: none, V: remote.Int32(5)})
	assert.Equals(t, sv.Value.(schema.Primitive).Raw.(bool), false)
}

func TestEvalNarrowsToGoValue(t *testing.T) {
	got, err := remote.Eval(
		context.Background(),
		remote.NewRemoteContext(),
		remote.NewAdd(schema.NumericInt, remote.Int32(20), remote.Int32(22)),
		schema.PrimitiveSchema{Tag: schema.Int},
		func(v schema.DynamicValue) (int32, bool) {
			p, ok := v.(schema.Primitive)
			if !ok {
				return 0, false
			}
			n, ok := p.Raw.(int32)
			return n, ok
		},
	)
	assert.NoError(t, err)
	assert.Equals(t, got, int32(42))
}

func TestEvalNarrowingSchemaMismatch(t *testing.T) {
	_, err := remote.Eval(
		context.Background(),
		remote.NewRemoteContext(),
		remote.Str("not an int"),
		schema.PrimitiveSchema{Tag: schema.Int},
		func(v schema.DynamicValue) (int32, bool) { return 0, false },
	)
	assert.Error(t, err)
	evalErr, ok := asEvalError(err)
	assert.Equals(t, ok, true)
	assert.Equals(t, evalErr.Kind, remote.KindTypeMismatch)
}

func TestFractionalSin(t *testing.T) {
	zero := remote.Remote(
		schema.Primitive{Tag: schema.Double, Raw: float64(0)},
		schema.PrimitiveSchema{Tag: schema.Double},
	)
	sv := evalDyn(t, remote.NewSin(schema.FractionalDouble, zero))
	assert.Equals(t, sv.Value.(schema.Primitive).Raw.(float64), float64(0))
}

func TestInstantMinusDuration(t *testing.T) {
	expr := remote.InstantMinusDuration{
		I: remote.InstantFromLong{Seconds: remote.Int64(1000)},
		D: remote.DurationFromLong{Seconds: remote.Int64(400)},
	}
	sv := evalDyn(t, expr)
	got := sv.Value.(schema.Primitive).Raw.(time.Time)
	assert.Equals(t, got.Unix(), int64(600))
}

func TestDurationArithmetic(t *testing.T) {
	plus := remote.DurationPlus{
		L: remote.DurationFromLong{Seconds: remote.Int64(40)},
		R: remote.DurationFromLong{Seconds: remote.Int64(20)},
	}
	sv := evalDyn(t, plus)
	assert.Equals(t, sv.Value.(schema.Primitive).Raw.(time.Duration), 60*time.Second)

	minus := remote.DurationMinus{
		L: remote.DurationFromLong{Seconds: remote.Int64(40)},
		R: remote.DurationFromLong{Seconds: remote.Int64(20)},
	}
	sv = evalDyn(t, minus)
	assert.Equals(t, sv.Value.(schema.Primitive).Raw.(time.Duration), 20*time.Second)
}

func TestDurationFromAmount(t *testing.T) {
	expr := remote.DurationFromAmount{N: remote.Int64(3), Unit: remote.ChronoUnitOf("Minutes")}
	sv := evalDyn(t, expr)
	assert.Equals(t, sv.Value.(schema.Primitive).Raw.(time.Duration), 3*time.Minute)
}

func TestInstantTruncate(t *testing.T) {
	expr := remote.InstantTruncate{
		I:    remote.InstantFromLong{Seconds: remote.Int64(3725)}, // 01:02:05
		Unit: remote.ChronoUnitOf("Minutes"),
	}
	sv := evalDyn(t, expr)
	got := sv.Value.(schema.Primitive).Raw.(time.Time)
	assert.Equals(t, got.Unix(), int64(3720))
}

func TestClosedExpressionHasNoFreeVariables(t *testing.T) {
	ctx := remote.NewRemoteContext()
	fn := remote.Fn(ctx, schema.PrimitiveSchema{Tag: schema.Int}, func(x remote.Expression) remote.Expression { return x })
	assert.Equals(t, remote.Closed(fn), true)

	open := remote.Variable{Name: "$free", Type: schema.PrimitiveSchema{Tag: schema.Int}}
	assert.Equals(t, remote.Closed(open), false)
}
