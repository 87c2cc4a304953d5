package remote_test

import (
	"context"
	"fmt"

	remote "go.flow.remotecore.io/remote"
	"go.flow.remotecore.io/remote/schema"
)

func ExampleEvalDynamic() {
	ctx := remote.NewRemoteContext()
	expr := remote.Branch{
		Predicate: remote.Bool(false),
		OnTrue:    remote.Int32(1),
		OnFalse:   remote.Int32(12),
	}

	sv, err := remote.EvalDynamic(context.Background(), ctx, expr)
	if err != nil {
		panic(err)
	}

	fmt.Printf("%v", sv.Value)
	// Output: 12
}

func ExampleFn() {
	ctx := remote.NewRemoteContext()
	increment := remote.Fn(ctx, schema.PrimitiveSchema{Tag: schema.Int}, func(x remote.Expression) remote.Expression {
		return remote.NewAdd(schema.NumericInt, x, remote.Int32(1))
	})

	sv, err := remote.EvalDynamic(context.Background(), ctx, remote.Apply{F: increment, Arg: remote.Int32(41)})
	if err != nil {
		panic(err)
	}

	fmt.Printf("%v", sv.Value)
	// Output: 42
}

func ExampleFold() {
	ctx := remote.NewRemoteContext()
	intSchema := schema.PrimitiveSchema{Tag: schema.Int}
	list := remote.Remote(
		schema.Sequence{Items: []schema.DynamicValue{
			schema.Primitive{Tag: schema.Int, Raw: int32(1)},
			schema.Primitive{Tag: schema.Int, Raw: int32(2)},
			schema.Primitive{Tag: schema.Int, Raw: int32(3)},
			schema.Primitive{Tag: schema.Int, Raw: int32(4)},
		}},
		schema.SequenceSchema{Elem: intSchema},
	)
	sum := remote.Fn(ctx, schema.TupleSchema{A: intSchema, B: intSchema}, func(accElem remote.Expression) remote.Expression {
		return remote.NewAdd(schema.NumericInt,
			remote.TupleAccess{Tuple: accElem, Index: 0},
			remote.TupleAccess{Tuple: accElem, Index: 1},
		)
	})

	sv, err := remote.EvalDynamic(context.Background(), ctx, remote.Fold{List: list, Initial: remote.Int32(0), Body: sum})
	if err != nil {
		panic(err)
	}

	fmt.Printf("%v", sv.Value)
	// Output: 10
}

func ExampleIterate() {
	ctx := remote.NewRemoteContext()
	intSchema := schema.PrimitiveSchema{Tag: schema.Int}
	step := remote.Fn(ctx, intSchema, func(x remote.Expression) remote.Expression {
		return remote.NewAdd(schema.NumericInt, x, remote.Int32(1))
	})
	pred := remote.Fn(ctx, intSchema, func(x remote.Expression) remote.Expression {
		return remote.LessThanEqual{L: x, R: remote.Int32(9)}
	})

	sv, err := remote.EvalDynamic(context.Background(), ctx, remote.Iterate{Initial: remote.Int32(0), Step: step, Pred: pred})
	if err != nil {
		panic(err)
	}

	fmt.Printf("%v", sv.Value)
	// Output: 10
}
