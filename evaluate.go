package remote

import (
	"context"
	"fmt"
	"time"

	"github.com/senseyeio/duration"
	"github.com/shopspring/decimal"
	"go.flow.remotecore.io/remote/schema"
)

// evaluator holds the state one EvalDynamic call threads through its
// recursion: the cancellation signal and the RemoteContext bindings. The
// algebra has no external data lookup, only variable binding, so these
// two are the whole evaluation environment.
type evaluator struct {
	ctx context.Context
	rc  *RemoteContext
}

// EvalDynamic reduces e by structural recursion, producing a
// SchemaAndValue or a classified *EvalError. The evaluator is total over
// well-formed, closed expressions.
func EvalDynamic(ctx context.Context, rc *RemoteContext, e Expression) (schema.SchemaAndValue, error) {
	return evaluator{ctx: ctx, rc: rc}.eval(e)
}

// Eval runs EvalDynamic and narrows the result to a concrete Go type via
// extract, failing with TypeMismatch if want does not match the evaluated
// schema.
func Eval[T any](ctx context.Context, rc *RemoteContext, e Expression, want schema.Schema, extract func(schema.DynamicValue) (T, bool)) (T, error) {
	var zero T
	sv, err := EvalDynamic(ctx, rc, e)
	if err != nil {
		return zero, err
	}
	if !sv.Schema.Equal(want) {
		return zero, typeMismatch(want, sv.Schema)
	}
	v, ok := extract(sv.Value)
	if !ok {
		return zero, badShape(fmt.Sprintf("value %s does not carry the expected Go representation", sv.Value))
	}
	return v, nil
}

func (ev evaluator) checkCancel() error {
	select {
	case <-ev.ctx.Done():
		return &EvalError{Kind: KindEvaluationFailed, Msg: "evaluation cancelled", Wrapped: ev.ctx.Err()}
	default:
		return nil
	}
}

func (ev evaluator) eval(e Expression) (schema.SchemaAndValue, error) {
	if err := ev.checkCancel(); err != nil {
		return schema.SchemaAndValue{}, err
	}
	switch n := e.(type) {
	case Literal:
		return n.Dyn.AsSchemaAndValue(), nil
	case Ignore:
		return schema.SchemaAndValue{Schema: n.Schema(), Value: schema.UnitValue}, nil
	case Variable:
		return ev.evalVariable(n)
	case Nested:
		return schema.SchemaAndValue{Schema: n.Schema(), Value: schema.Primitive{Tag: expressionTag, Raw: n.Inner}}, nil
	case Flow:
		return schema.SchemaAndValue{Schema: n.Schema(), Value: schema.Primitive{Tag: flowTag, Raw: n.Ref}}, nil
	case EvaluatedFunction:
		return ev.eval(n.Body)
	case Apply:
		return ev.evalApply(n)

	case And:
		return ev.evalAnd(n)
	case Or:
		return ev.evalOr(n)
	case Not:
		return ev.evalNot(n)

	case Equal:
		return ev.evalEqual(n)
	case LessThanEqual:
		return ev.evalLessThanEqual(n)

	case Branch:
		return ev.evalBranch(n)
	case Iterate:
		return ev.evalIterate(n)

	case EitherL:
		return ev.evalEitherL(n)
	case EitherR:
		return ev.evalEitherR(n)
	case FlatMapEither:
		return ev.evalFlatMapEither(n)
	case FoldEither:
		return ev.evalFoldEither(n)
	case SwapEither:
		return ev.evalSwapEither(n)

	case Some0:
		return ev.evalSome0(n)
	case FoldOption:
		return ev.evalFoldOption(n)
	case ZipOption:
		return ev.evalZipOption(n)
	case OptionContains:
		return ev.evalOptionContains(n)

	case Try:
		return ev.evalTry(n)

	case Tuple:
		return ev.evalTuple(n)
	case TupleAccess:
		return ev.evalTupleAccess(n)

	case Cons:
		return ev.evalCons(n)
	case UnCons:
		return ev.evalUnCons(n)
	case Fold:
		return ev.evalFold(n)

	case Add:
		return ev.evalBinaryNumeric(n.binaryNumeric, (schema.Numeric).Add)
	case Sub:
		return ev.evalBinaryNumeric(n.binaryNumeric, (schema.Numeric).Sub)
	case Mul:
		return ev.evalBinaryNumeric(n.binaryNumeric, (schema.Numeric).Mul)
	case Div:
		return ev.evalBinaryNumeric(n.binaryNumeric, (schema.Numeric).Div)
	case ModInt:
		return ev.evalBinaryNumeric(n.binaryNumeric, (schema.Numeric).Mod)
	case Pow:
		return ev.evalBinaryNumeric(n.binaryNumeric, (schema.Numeric).Pow)
	case Root:
		return ev.evalBinaryNumeric(n.binaryNumeric, (schema.Numeric).Root)
	case Log:
		return ev.evalBinaryNumeric(n.binaryNumeric, (schema.Numeric).Log)
	case Min:
		return ev.evalBinaryNumeric(n.binaryNumeric, (schema.Numeric).Min)
	case Max:
		return ev.evalBinaryNumeric(n.binaryNumeric, (schema.Numeric).Max)
	case Neg:
		return ev.evalUnaryNumeric(n.unaryNumeric, (schema.Numeric).Neg)
	case Abs:
		return ev.evalUnaryNumeric(n.unaryNumeric, (schema.Numeric).Abs)
	case Floor:
		return ev.evalUnaryNumeric(n.unaryNumeric, (schema.Numeric).Floor)
	case Ceil:
		return ev.evalUnaryNumeric(n.unaryNumeric, (schema.Numeric).Ceil)
	case Round:
		return ev.evalUnaryNumeric(n.unaryNumeric, (schema.Numeric).Round)

	case Sin:
		return ev.evalUnaryFractional(n.unaryFractional, (schema.Fractional).Sin)
	case Asin:
		return ev.evalUnaryFractional(n.unaryFractional, (schema.Fractional).Asin)
	case Atan:
		return ev.evalUnaryFractional(n.unaryFractional, (schema.Fractional).Atan)

	case InstantFromLong:
		return ev.evalInstantFromLong(n)
	case InstantFromLongs:
		return ev.evalInstantFromLongs(n)
	case InstantFromMilli:
		return ev.evalInstantFromMilli(n)
	case InstantFromString:
		return ev.evalInstantFromString(n)
	case InstantToTuple:
		return ev.evalInstantToTuple(n)
	case InstantPlusDuration:
		return ev.evalInstantPlusDuration(n)
	case InstantMinusDuration:
		return ev.evalInstantMinusDuration(n)
	case InstantTruncate:
		return ev.evalInstantTruncate(n)
	case DurationFromString:
		return ev.evalDurationFromString(n)
	case DurationBetweenInstants:
		return ev.evalDurationBetweenInstants(n)
	case DurationFromBigDecimal:
		return ev.evalDurationFromBigDecimal(n)
	case DurationFromLong:
		return ev.evalDurationFromLong(n)
	case DurationFromLongs:
		return ev.evalDurationFromLongs(n)
	case DurationFromAmount:
		return ev.evalDurationFromAmount(n)
	case DurationToLongs:
		return ev.evalDurationToLongs(n)
	case DurationToLong:
		return ev.evalDurationToLong(n)
	case DurationPlus:
		return ev.evalDurationPlus(n)
	case DurationMinus:
		return ev.evalDurationMinus(n)

	case Length:
		return ev.evalLength(n)

	case Lazy:
		return ev.eval(n.Thunk())

	default:
		return schema.SchemaAndValue{}, evaluationFailed("no evaluator case for expression %T", e)
	}
}

func (ev evaluator) evalVariable(n Variable) (schema.SchemaAndValue, error) {
	v, ok, err := ev.rc.GetVariable(n.Name)
	if err != nil {
		return schema.SchemaAndValue{}, &EvalError{Kind: KindEvaluationFailed, Msg: "variable store failed", Wrapped: err}
	}
	if !ok {
		return schema.SchemaAndValue{}, unbound(n.Name)
	}
	return schema.SchemaAndValue{Schema: n.Type, Value: v}, nil
}

func (ev evaluator) evalApply(n Apply) (schema.SchemaAndValue, error) {
	arg, err := ev.eval(n.Arg)
	if err != nil {
		return schema.SchemaAndValue{}, err
	}
	if !arg.Schema.Equal(n.F.Input.Type) {
		return schema.SchemaAndValue{}, typeMismatch(n.F.Input.Type, arg.Schema)
	}
	if err := ev.rc.SetVariable(n.F.Input.Name, arg.Value); err != nil {
		return schema.SchemaAndValue{}, &EvalError{Kind: KindEvaluationFailed, Msg: "variable store failed", Wrapped: err}
	}
	return ev.eval(n.F.Body)
}

func (ev evaluator) evalBool(e Expression) (bool, error) {
	sv, err := ev.eval(e)
	if err != nil {
		return false, err
	}
	p, ok := sv.Value.(schema.Primitive)
	if !ok || p.Tag != schema.Bool {
		return false, badShape(fmt.Sprintf("expected a Bool value, got %s", sv.Value))
	}
	return p.Raw.(bool), nil
}

func (ev evaluator) evalAnd(n And) (schema.SchemaAndValue, error) {
	l, err := ev.evalBool(n.L)
	if err != nil {
		return schema.SchemaAndValue{}, err
	}
	if !l {
		return boolSV(false), nil
	}
	r, err := ev.evalBool(n.R)
	if err != nil {
		return schema.SchemaAndValue{}, err
	}
	return boolSV(r), nil
}

func (ev evaluator) evalOr(n Or) (schema.SchemaAndValue, error) {
	l, err := ev.evalBool(n.L)
	if err != nil {
		return schema.SchemaAndValue{}, err
	}
	if l {
		return boolSV(true), nil
	}
	r, err := ev.evalBool(n.R)
	if err != nil {
		return schema.SchemaAndValue{}, err
	}
	return boolSV(r), nil
}

func (ev evaluator) evalNot(n Not) (schema.SchemaAndValue, error) {
	v, err := ev.evalBool(n.E)
	if err != nil {
		return schema.SchemaAndValue{}, err
	}
	return boolSV(!v), nil
}

func boolSV(b bool) schema.SchemaAndValue {
	return schema.SchemaAndValue{Schema: schema.PrimitiveSchema{Tag: schema.Bool}, Value: schema.Primitive{Tag: schema.Bool, Raw: b}}
}

func (ev evaluator) evalEqual(n Equal) (schema.SchemaAndValue, error) {
	l, err := ev.eval(n.L)
	if err != nil {
		return schema.SchemaAndValue{}, err
	}
	r, err := ev.eval(n.R)
	if err != nil {
		return schema.SchemaAndValue{}, err
	}
	if !l.Schema.Equal(r.Schema) {
		return schema.SchemaAndValue{}, typeMismatch(l.Schema, r.Schema)
	}
	eq, err := schema.ValueEqual(l.Schema, l.Value, r.Value)
	if err != nil {
		return schema.SchemaAndValue{}, &EvalError{Kind: KindEvaluationFailed, Msg: "equality check failed", Wrapped: err}
	}
	return boolSV(eq), nil
}

func (ev evaluator) evalLessThanEqual(n LessThanEqual) (schema.SchemaAndValue, error) {
	l, err := ev.eval(n.L)
	if err != nil {
		return schema.SchemaAndValue{}, err
	}
	r, err := ev.eval(n.R)
	if err != nil {
		return schema.SchemaAndValue{}, err
	}
	if !l.Schema.Equal(r.Schema) {
		return schema.SchemaAndValue{}, typeMismatch(l.Schema, r.Schema)
	}
	cmp, err := schema.Compare(l.Schema, l.Value, r.Value)
	if err != nil {
		return schema.SchemaAndValue{}, &EvalError{Kind: KindEvaluationFailed, Msg: "comparison failed", Wrapped: err}
	}
	return boolSV(cmp <= 0), nil
}

func (ev evaluator) evalBranch(n Branch) (schema.SchemaAndValue, error) {
	if _, ok := n.Schema().(schema.FailSchema); ok {
		return schema.SchemaAndValue{}, badShape("Branch: OnTrue and OnFalse schemas differ")
	}
	cond, err := ev.evalBool(n.Predicate)
	if err != nil {
		return schema.SchemaAndValue{}, err
	}
	if cond {
		return ev.eval(n.OnTrue)
	}
	return ev.eval(n.OnFalse)
}

// evalIterate runs as a tail loop: no Go call-stack growth regardless of
// iteration count.
func (ev evaluator) evalIterate(n Iterate) (schema.SchemaAndValue, error) {
	cur, err := ev.eval(n.Initial)
	if err != nil {
		return schema.SchemaAndValue{}, err
	}
	for {
		if err := ev.checkCancel(); err != nil {
			return schema.SchemaAndValue{}, err
		}
		if err := ev.rc.SetVariable(n.Pred.Input.Name, cur.Value); err != nil {
			return schema.SchemaAndValue{}, &EvalError{Kind: KindEvaluationFailed, Msg: "variable store failed", Wrapped: err}
		}
		cont, err := ev.evalBool(n.Pred.Body)
		if err != nil {
			return schema.SchemaAndValue{}, err
		}
		if !cont {
			return cur, nil
		}
		if err := ev.rc.SetVariable(n.Step.Input.Name, cur.Value); err != nil {
			return schema.SchemaAndValue{}, &EvalError{Kind: KindEvaluationFailed, Msg: "variable store failed", Wrapped: err}
		}
		cur, err = ev.eval(n.Step.Body)
		if err != nil {
			return schema.SchemaAndValue{}, err
		}
	}
}

func (ev evaluator) evalEitherL(n EitherL) (schema.SchemaAndValue, error) {
	v, err := ev.eval(n.Value)
	if err != nil {
		return schema.SchemaAndValue{}, err
	}
	return schema.SchemaAndValue{Schema: n.Schema(), Value: schema.Left{Value: v.Value}}, nil
}

func (ev evaluator) evalEitherR(n EitherR) (schema.SchemaAndValue, error) {
	v, err := ev.eval(n.Value)
	if err != nil {
		return schema.SchemaAndValue{}, err
	}
	return schema.SchemaAndValue{Schema: n.Schema(), Value: schema.Right{Value: v.Value}}, nil
}

func (ev evaluator) evalFlatMapEither(n FlatMapEither) (schema.SchemaAndValue, error) {
	e, err := ev.eval(n.E)
	if err != nil {
		return schema.SchemaAndValue{}, err
	}
	resultSchema := schema.EitherSchema{Left: n.ASchema, Right: n.CSchema}
	switch v := e.Value.(type) {
	case schema.Left:
		return schema.SchemaAndValue{Schema: resultSchema, Value: v}, nil
	case schema.Right:
		if err := ev.rc.SetVariable(n.Fn.Input.Name, v.Value); err != nil {
			return schema.SchemaAndValue{}, &EvalError{Kind: KindEvaluationFailed, Msg: "variable store failed", Wrapped: err}
		}
		inner, err := ev.eval(n.Fn.Body)
		if err != nil {
			return schema.SchemaAndValue{}, err
		}
		return schema.SchemaAndValue{Schema: resultSchema, Value: inner.Value}, nil
	default:
		return schema.SchemaAndValue{}, badShape(fmt.Sprintf("FlatMapEither: expected an Either value, got %s", e.Value))
	}
}

func (ev evaluator) evalFoldEither(n FoldEither) (schema.SchemaAndValue, error) {
	if _, ok := n.Schema().(schema.FailSchema); ok {
		return schema.SchemaAndValue{}, badShape("FoldEither: FL and FR schemas differ")
	}
	e, err := ev.eval(n.E)
	if err != nil {
		return schema.SchemaAndValue{}, err
	}
	switch v := e.Value.(type) {
	case schema.Left:
		if err := ev.rc.SetVariable(n.FL.Input.Name, v.Value); err != nil {
			return schema.SchemaAndValue{}, &EvalError{Kind: KindEvaluationFailed, Msg: "variable store failed", Wrapped: err}
		}
		return ev.eval(n.FL.Body)
	case schema.Right:
		if err := ev.rc.SetVariable(n.FR.Input.Name, v.Value); err != nil {
			return schema.SchemaAndValue{}, &EvalError{Kind: KindEvaluationFailed, Msg: "variable store failed", Wrapped: err}
		}
		return ev.eval(n.FR.Body)
	default:
		return schema.SchemaAndValue{}, badShape(fmt.Sprintf("FoldEither: expected an Either value, got %s", e.Value))
	}
}

func (ev evaluator) evalSwapEither(n SwapEither) (schema.SchemaAndValue, error) {
	e, err := ev.eval(n.E)
	if err != nil {
		return schema.SchemaAndValue{}, err
	}
	var swapped schema.DynamicValue
	switch v := e.Value.(type) {
	case schema.Left:
		swapped = schema.Right{Value: v.Value}
	case schema.Right:
		swapped = schema.Left{Value: v.Value}
	default:
		return schema.SchemaAndValue{}, badShape(fmt.Sprintf("SwapEither: expected an Either value, got %s", e.Value))
	}
	return schema.SchemaAndValue{Schema: n.Schema(), Value: swapped}, nil
}

func (ev evaluator) evalSome0(n Some0) (schema.SchemaAndValue, error) {
	v, err := ev.eval(n.E)
	if err != nil {
		return schema.SchemaAndValue{}, err
	}
	return schema.SchemaAndValue{Schema: n.Schema(), Value: schema.Some{Value: v.Value}}, nil
}

func (ev evaluator) evalFoldOption(n FoldOption) (schema.SchemaAndValue, error) {
	if _, ok := n.Schema().(schema.FailSchema); ok {
		return schema.SchemaAndValue{}, badShape("FoldOption: IfEmpty and IfSome schemas differ")
	}
	o, err := ev.eval(n.Opt)
	if err != nil {
		return schema.SchemaAndValue{}, err
	}
	switch v := o.Value.(type) {
	case schema.None:
		return ev.eval(n.IfEmpty)
	case schema.Some:
		if err := ev.rc.SetVariable(n.IfSome.Input.Name, v.Value); err != nil {
			return schema.SchemaAndValue{}, &EvalError{Kind: KindEvaluationFailed, Msg: "variable store failed", Wrapped: err}
		}
		return ev.eval(n.IfSome.Body)
	default:
		return schema.SchemaAndValue{}, badShape(fmt.Sprintf("FoldOption: expected an Option value, got %s", o.Value))
	}
}

func (ev evaluator) evalZipOption(n ZipOption) (schema.SchemaAndValue, error) {
	l, err := ev.eval(n.L)
	if err != nil {
		return schema.SchemaAndValue{}, err
	}
	r, err := ev.eval(n.R)
	if err != nil {
		return schema.SchemaAndValue{}, err
	}
	resultSchema := n.Schema()
	lSome, lok := l.Value.(schema.Some)
	rSome, rok := r.Value.(schema.Some)
	if lok && rok {
		return schema.SchemaAndValue{Schema: resultSchema, Value: schema.Some{Value: schema.Tuple{A: lSome.Value, B: rSome.Value}}}, nil
	}
	return schema.SchemaAndValue{Schema: resultSchema, Value: schema.None{}}, nil
}

func (ev evaluator) evalOptionContains(n OptionContains) (schema.SchemaAndValue, error) {
	o, err := ev.eval(n.Opt)
	if err != nil {
		return schema.SchemaAndValue{}, err
	}
	optSchema, ok := o.Schema.(schema.OptionSchema)
	if !ok {
		return schema.SchemaAndValue{}, badShape(fmt.Sprintf("OptionContains: expected an Option schema, got %s", o.Schema))
	}
	some, ok := o.Value.(schema.Some)
	if !ok {
		return boolSV(false), nil
	}
	v, err := ev.eval(n.V)
	if err != nil {
		return schema.SchemaAndValue{}, err
	}
	eq, err := schema.ValueEqual(optSchema.Inner, some.Value, v.Value)
	if err != nil {
		return schema.SchemaAndValue{}, &EvalError{Kind: KindEvaluationFailed, Msg: "equality check failed", Wrapped: err}
	}
	return boolSV(eq), nil
}

func (ev evaluator) evalTry(n Try) (schema.SchemaAndValue, error) {
	e, err := ev.eval(n.E)
	if err != nil {
		return schema.SchemaAndValue{}, err
	}
	switch v := e.Value.(type) {
	case schema.Left:
		return schema.SchemaAndValue{Schema: n.Schema(), Value: schema.Enum{Case: tryResultFailure, Payload: v.Value}}, nil
	case schema.Right:
		return schema.SchemaAndValue{Schema: n.Schema(), Value: schema.Enum{Case: tryResultSuccess, Payload: v.Value}}, nil
	default:
		return schema.SchemaAndValue{}, badShape(fmt.Sprintf("Try: expected an Either value, got %s", e.Value))
	}
}

func (ev evaluator) evalTuple(n Tuple) (schema.SchemaAndValue, error) {
	vals := make([]schema.DynamicValue, len(n.Elems))
	for i, el := range n.Elems {
		sv, err := ev.eval(el)
		if err != nil {
			return schema.SchemaAndValue{}, err
		}
		vals[i] = sv.Value
	}
	return schema.SchemaAndValue{Schema: n.Schema(), Value: rightNestedValue(vals)}, nil
}

func rightNestedValue(vals []schema.DynamicValue) schema.DynamicValue {
	if len(vals) == 1 {
		return vals[0]
	}
	return schema.Tuple{A: vals[0], B: rightNestedValue(vals[1:])}
}

func (ev evaluator) evalTupleAccess(n TupleAccess) (schema.SchemaAndValue, error) {
	resultSchema := n.Schema()
	if _, ok := resultSchema.(schema.FailSchema); ok {
		return schema.SchemaAndValue{}, indexOutOfRange(n.Index)
	}
	t, err := ev.eval(n.Tuple)
	if err != nil {
		return schema.SchemaAndValue{}, err
	}
	cur := t.Value
	for i := 0; i < n.Index; i++ {
		p, ok := cur.(schema.Tuple)
		if !ok {
			return schema.SchemaAndValue{}, indexOutOfRange(n.Index)
		}
		cur = p.B
	}
	if p, ok := cur.(schema.Tuple); ok {
		cur = p.A
	}
	return schema.SchemaAndValue{Schema: resultSchema, Value: cur}, nil
}

func (ev evaluator) evalCons(n Cons) (schema.SchemaAndValue, error) {
	list, err := ev.eval(n.List)
	if err != nil {
		return schema.SchemaAndValue{}, err
	}
	head, err := ev.eval(n.Head)
	if err != nil {
		return schema.SchemaAndValue{}, err
	}
	seq, ok := list.Value.(schema.Sequence)
	if !ok {
		return schema.SchemaAndValue{}, badShape(fmt.Sprintf("Cons: expected a Sequence value, got %s", list.Value))
	}
	items := make([]schema.DynamicValue, 0, len(seq.Items)+1)
	items = append(items, head.Value)
	items = append(items, seq.Items...)
	return schema.SchemaAndValue{Schema: list.Schema, Value: schema.Sequence{Items: items}}, nil
}

func (ev evaluator) evalUnCons(n UnCons) (schema.SchemaAndValue, error) {
	resultSchema := n.Schema()
	list, err := ev.eval(n.List)
	if err != nil {
		return schema.SchemaAndValue{}, err
	}
	seq, ok := list.Value.(schema.Sequence)
	if !ok {
		return schema.SchemaAndValue{}, badShape(fmt.Sprintf("UnCons: expected a Sequence value, got %s", list.Value))
	}
	if len(seq.Items) == 0 {
		return schema.SchemaAndValue{Schema: resultSchema, Value: schema.None{}}, nil
	}
	tail := schema.Sequence{Items: seq.Items[1:]}
	pair := schema.Tuple{A: seq.Items[0], B: tail}
	return schema.SchemaAndValue{Schema: resultSchema, Value: schema.Some{Value: pair}}, nil
}

func (ev evaluator) evalFold(n Fold) (schema.SchemaAndValue, error) {
	list, err := ev.eval(n.List)
	if err != nil {
		return schema.SchemaAndValue{}, err
	}
	seq, ok := list.Value.(schema.Sequence)
	if !ok {
		return schema.SchemaAndValue{}, badShape(fmt.Sprintf("Fold: expected a Sequence value, got %s", list.Value))
	}
	acc, err := ev.eval(n.Initial)
	if err != nil {
		return schema.SchemaAndValue{}, err
	}
	for _, item := range seq.Items {
		if err := ev.checkCancel(); err != nil {
			return schema.SchemaAndValue{}, err
		}
		if err := ev.rc.SetVariable(n.Body.Input.Name, schema.Tuple{A: acc.Value, B: item}); err != nil {
			return schema.SchemaAndValue{}, &EvalError{Kind: KindEvaluationFailed, Msg: "variable store failed", Wrapped: err}
		}
		acc, err = ev.eval(n.Body.Body)
		if err != nil {
			return schema.SchemaAndValue{}, err
		}
	}
	return acc, nil
}

func (ev evaluator) evalBinaryNumeric(n binaryNumeric, op func(schema.Numeric, schema.DynamicValue, schema.DynamicValue) (schema.DynamicValue, error)) (schema.SchemaAndValue, error) {
	inst, err := schema.NumericInstance(n.Instance)
	if err != nil {
		return schema.SchemaAndValue{}, evaluationFailed("%v", err)
	}
	l, err := ev.eval(n.L)
	if err != nil {
		return schema.SchemaAndValue{}, err
	}
	r, err := ev.eval(n.R)
	if err != nil {
		return schema.SchemaAndValue{}, err
	}
	v, err := op(inst, l.Value, r.Value)
	if err != nil {
		return schema.SchemaAndValue{}, arithmeticError(err)
	}
	return schema.SchemaAndValue{Schema: inst.Schema(), Value: v}, nil
}

func (ev evaluator) evalUnaryNumeric(n unaryNumeric, op func(schema.Numeric, schema.DynamicValue) (schema.DynamicValue, error)) (schema.SchemaAndValue, error) {
	inst, err := schema.NumericInstance(n.Instance)
	if err != nil {
		return schema.SchemaAndValue{}, evaluationFailed("%v", err)
	}
	e, err := ev.eval(n.E)
	if err != nil {
		return schema.SchemaAndValue{}, err
	}
	v, err := op(inst, e.Value)
	if err != nil {
		return schema.SchemaAndValue{}, arithmeticError(err)
	}
	return schema.SchemaAndValue{Schema: inst.Schema(), Value: v}, nil
}

func (ev evaluator) evalUnaryFractional(n unaryFractional, op func(schema.Fractional, schema.DynamicValue) (schema.DynamicValue, error)) (schema.SchemaAndValue, error) {
	inst, err := schema.FractionalInstance(n.Instance)
	if err != nil {
		return schema.SchemaAndValue{}, evaluationFailed("%v", err)
	}
	e, err := ev.eval(n.E)
	if err != nil {
		return schema.SchemaAndValue{}, err
	}
	v, err := op(inst, e.Value)
	if err != nil {
		return schema.SchemaAndValue{}, arithmeticError(err)
	}
	return schema.SchemaAndValue{Schema: inst.Schema(), Value: v}, nil
}

func (ev evaluator) evalLong(e Expression) (int64, error) {
	sv, err := ev.eval(e)
	if err != nil {
		return 0, err
	}
	p, ok := sv.Value.(schema.Primitive)
	if !ok || p.Tag != schema.Long {
		return 0, badShape(fmt.Sprintf("expected a Long value, got %s", sv.Value))
	}
	return p.Raw.(int64), nil
}

func (ev evaluator) evalInt(e Expression) (int32, error) {
	sv, err := ev.eval(e)
	if err != nil {
		return 0, err
	}
	p, ok := sv.Value.(schema.Primitive)
	if !ok || p.Tag != schema.Int {
		return 0, badShape(fmt.Sprintf("expected an Int value, got %s", sv.Value))
	}
	return p.Raw.(int32), nil
}

func (ev evaluator) evalString(e Expression) (string, error) {
	sv, err := ev.eval(e)
	if err != nil {
		return "", err
	}
	p, ok := sv.Value.(schema.Primitive)
	if !ok || p.Tag != schema.String {
		return "", badShape(fmt.Sprintf("expected a String value, got %s", sv.Value))
	}
	return p.Raw.(string), nil
}

func (ev evaluator) evalInstant(e Expression) (time.Time, error) {
	sv, err := ev.eval(e)
	if err != nil {
		return time.Time{}, err
	}
	p, ok := sv.Value.(schema.Primitive)
	if !ok || p.Tag != schema.Instant {
		return time.Time{}, badShape(fmt.Sprintf("expected an Instant value, got %s", sv.Value))
	}
	return p.Raw.(time.Time), nil
}

func (ev evaluator) evalDuration(e Expression) (time.Duration, error) {
	sv, err := ev.eval(e)
	if err != nil {
		return 0, err
	}
	p, ok := sv.Value.(schema.Primitive)
	if !ok || p.Tag != schema.Duration {
		return 0, badShape(fmt.Sprintf("expected a Duration value, got %s", sv.Value))
	}
	return p.Raw.(time.Duration), nil
}

func instantSV(t time.Time) schema.SchemaAndValue {
	return schema.SchemaAndValue{Schema: instantSchema(), Value: schema.Primitive{Tag: schema.Instant, Raw: t}}
}

func durationSV(d time.Duration) schema.SchemaAndValue {
	return schema.SchemaAndValue{Schema: durationSchema(), Value: schema.Primitive{Tag: schema.Duration, Raw: d}}
}

func longSV(n int64) schema.SchemaAndValue {
	return schema.SchemaAndValue{Schema: longSchema(), Value: schema.Primitive{Tag: schema.Long, Raw: n}}
}

func intSV(n int32) schema.SchemaAndValue {
	return schema.SchemaAndValue{Schema: schema.PrimitiveSchema{Tag: schema.Int}, Value: schema.Primitive{Tag: schema.Int, Raw: n}}
}

func (ev evaluator) evalInstantFromLong(n InstantFromLong) (schema.SchemaAndValue, error) {
	sec, err := ev.evalLong(n.Seconds)
	if err != nil {
		return schema.SchemaAndValue{}, err
	}
	return instantSV(time.Unix(sec, 0).UTC()), nil
}

func (ev evaluator) evalInstantFromLongs(n InstantFromLongs) (schema.SchemaAndValue, error) {
	sec, err := ev.evalLong(n.Seconds)
	if err != nil {
		return schema.SchemaAndValue{}, err
	}
	ns, err := ev.evalLong(n.Nanos)
	if err != nil {
		return schema.SchemaAndValue{}, err
	}
	return instantSV(time.Unix(sec, ns).UTC()), nil
}

func (ev evaluator) evalInstantFromMilli(n InstantFromMilli) (schema.SchemaAndValue, error) {
	ms, err := ev.evalLong(n.Millis)
	if err != nil {
		return schema.SchemaAndValue{}, err
	}
	return instantSV(time.UnixMilli(ms).UTC()), nil
}

func (ev evaluator) evalInstantFromString(n InstantFromString) (schema.SchemaAndValue, error) {
	s, err := ev.evalString(n.S)
	if err != nil {
		return schema.SchemaAndValue{}, err
	}
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return schema.SchemaAndValue{}, parseError(err)
	}
	return instantSV(t.UTC()), nil
}

func (ev evaluator) evalInstantToTuple(n InstantToTuple) (schema.SchemaAndValue, error) {
	t, err := ev.evalInstant(n.I)
	if err != nil {
		return schema.SchemaAndValue{}, err
	}
	return schema.SchemaAndValue{
		Schema: n.Schema(),
		Value:  schema.Tuple{A: schema.Primitive{Tag: schema.Long, Raw: t.Unix()}, B: schema.Primitive{Tag: schema.Int, Raw: int32(t.Nanosecond())}},
	}, nil
}

func (ev evaluator) evalInstantPlusDuration(n InstantPlusDuration) (schema.SchemaAndValue, error) {
	t, err := ev.evalInstant(n.I)
	if err != nil {
		return schema.SchemaAndValue{}, err
	}
	d, err := ev.evalDuration(n.D)
	if err != nil {
		return schema.SchemaAndValue{}, err
	}
	return instantSV(t.Add(d)), nil
}

func (ev evaluator) evalInstantMinusDuration(n InstantMinusDuration) (schema.SchemaAndValue, error) {
	t, err := ev.evalInstant(n.I)
	if err != nil {
		return schema.SchemaAndValue{}, err
	}
	d, err := ev.evalDuration(n.D)
	if err != nil {
		return schema.SchemaAndValue{}, err
	}
	return instantSV(t.Add(-d)), nil
}

func (ev evaluator) evalInstantTruncate(n InstantTruncate) (schema.SchemaAndValue, error) {
	t, err := ev.evalInstant(n.I)
	if err != nil {
		return schema.SchemaAndValue{}, err
	}
	unitSV, err := ev.eval(n.Unit)
	if err != nil {
		return schema.SchemaAndValue{}, err
	}
	p, ok := unitSV.Value.(schema.Primitive)
	if !ok || p.Tag != schema.ChronoUnit {
		return schema.SchemaAndValue{}, badShape(fmt.Sprintf("expected a ChronoUnit value, got %s", unitSV.Value))
	}
	unit, _ := p.Raw.(schema.PrimitiveTag)
	d, err := chronoUnitDuration(string(unit))
	if err != nil {
		return schema.SchemaAndValue{}, err
	}
	return instantSV(t.Truncate(d)), nil
}

func chronoUnitDuration(unit string) (time.Duration, error) {
	switch unit {
	case "Seconds":
		return time.Second, nil
	case "Minutes":
		return time.Minute, nil
	case "Hours":
		return time.Hour, nil
	case "Days":
		return 24 * time.Hour, nil
	default:
		return 0, evaluationFailed("unsupported chrono unit %q", unit)
	}
}

func (ev evaluator) evalDurationFromString(n DurationFromString) (schema.SchemaAndValue, error) {
	s, err := ev.evalString(n.S)
	if err != nil {
		return schema.SchemaAndValue{}, err
	}
	d, err := duration.ParseISO8601(s)
	if err != nil {
		return schema.SchemaAndValue{}, parseError(err)
	}
	ref := time.Unix(0, 0).UTC()
	goDur := d.Shift(ref).Sub(ref)
	return durationSV(goDur), nil
}

func (ev evaluator) evalDurationBetweenInstants(n DurationBetweenInstants) (schema.SchemaAndValue, error) {
	start, err := ev.evalInstant(n.Start)
	if err != nil {
		return schema.SchemaAndValue{}, err
	}
	end, err := ev.evalInstant(n.End)
	if err != nil {
		return schema.SchemaAndValue{}, err
	}
	return durationSV(end.Sub(start)), nil
}

func (ev evaluator) evalDurationFromBigDecimal(n DurationFromBigDecimal) (schema.SchemaAndValue, error) {
	sv, err := ev.eval(n.Seconds)
	if err != nil {
		return schema.SchemaAndValue{}, err
	}
	p, ok := sv.Value.(schema.Primitive)
	if !ok || p.Tag != schema.BigDecimal {
		return schema.SchemaAndValue{}, badShape(fmt.Sprintf("expected a BigDecimal value, got %s", sv.Value))
	}
	sec := p.Raw.(decimal.Decimal)
	nanos := sec.Mul(decimal.New(1, 9))
	return durationSV(time.Duration(nanos.IntPart())), nil
}

func (ev evaluator) evalDurationFromLong(n DurationFromLong) (schema.SchemaAndValue, error) {
	sec, err := ev.evalLong(n.Seconds)
	if err != nil {
		return schema.SchemaAndValue{}, err
	}
	return durationSV(time.Duration(sec) * time.Second), nil
}

func (ev evaluator) evalDurationFromLongs(n DurationFromLongs) (schema.SchemaAndValue, error) {
	sec, err := ev.evalLong(n.Seconds)
	if err != nil {
		return schema.SchemaAndValue{}, err
	}
	nanoAdj, err := ev.evalLong(n.NanoAdj)
	if err != nil {
		return schema.SchemaAndValue{}, err
	}
	return durationSV(time.Duration(sec)*time.Second + time.Duration(nanoAdj)), nil
}

func (ev evaluator) evalDurationFromAmount(n DurationFromAmount) (schema.SchemaAndValue, error) {
	amount, err := ev.evalLong(n.N)
	if err != nil {
		return schema.SchemaAndValue{}, err
	}
	unitSV, err := ev.eval(n.Unit)
	if err != nil {
		return schema.SchemaAndValue{}, err
	}
	p, ok := unitSV.Value.(schema.Primitive)
	if !ok || p.Tag != schema.ChronoUnit {
		return schema.SchemaAndValue{}, badShape(fmt.Sprintf("expected a ChronoUnit value, got %s", unitSV.Value))
	}
	unit, _ := p.Raw.(schema.PrimitiveTag)
	unitDur, err := chronoUnitDuration(string(unit))
	if err != nil {
		return schema.SchemaAndValue{}, err
	}
	return durationSV(time.Duration(amount) * unitDur), nil
}

func (ev evaluator) evalDurationToLongs(n DurationToLongs) (schema.SchemaAndValue, error) {
	d, err := ev.evalDuration(n.D)
	if err != nil {
		return schema.SchemaAndValue{}, err
	}
	sec := int64(d / time.Second)
	nanos := int32(d % time.Second)
	return schema.SchemaAndValue{
		Schema: n.Schema(),
		Value:  schema.Tuple{A: schema.Primitive{Tag: schema.Long, Raw: sec}, B: schema.Primitive{Tag: schema.Int, Raw: nanos}},
	}, nil
}

func (ev evaluator) evalDurationToLong(n DurationToLong) (schema.SchemaAndValue, error) {
	d, err := ev.evalDuration(n.D)
	if err != nil {
		return schema.SchemaAndValue{}, err
	}
	return longSV(int64(d / time.Second)), nil
}

func (ev evaluator) evalDurationPlus(n DurationPlus) (schema.SchemaAndValue, error) {
	l, err := ev.evalDuration(n.L)
	if err != nil {
		return schema.SchemaAndValue{}, err
	}
	r, err := ev.evalDuration(n.R)
	if err != nil {
		return schema.SchemaAndValue{}, err
	}
	return durationSV(l + r), nil
}

func (ev evaluator) evalDurationMinus(n DurationMinus) (schema.SchemaAndValue, error) {
	l, err := ev.evalDuration(n.L)
	if err != nil {
		return schema.SchemaAndValue{}, err
	}
	r, err := ev.evalDuration(n.R)
	if err != nil {
		return schema.SchemaAndValue{}, err
	}
	return durationSV(l - r), nil
}

func (ev evaluator) evalLength(n Length) (schema.SchemaAndValue, error) {
	s, err := ev.evalString(n.S)
	if err != nil {
		return schema.SchemaAndValue{}, err
	}
	return intSV(int32(len([]rune(s)))), nil
}
