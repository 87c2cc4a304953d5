package codec_test

import (
	"context"
	"fmt"

	remote "go.flow.remotecore.io/remote"
	"go.flow.remotecore.io/remote/codec"
	"go.flow.remotecore.io/remote/schema"
)

func ExampleEncodeExpression() {
	expr := remote.And{L: remote.Bool(true), R: remote.Bool(false)}

	wire, err := codec.EncodeExpression(expr)
	if err != nil {
		panic(err)
	}

	decoded, err := codec.DecodeExpression(wire)
	if err != nil {
		panic(err)
	}

	sv, err := remote.EvalDynamic(context.Background(), remote.NewRemoteContext(), decoded)
	if err != nil {
		panic(err)
	}

	fmt.Printf("%v", sv.Value)
	// Output: false
}

func ExampleEncodeSchema() {
	s := schema.OptionSchema{Inner: schema.PrimitiveSchema{Tag: schema.Int}}

	wire, err := codec.EncodeSchema(s)
	if err != nil {
		panic(err)
	}

	decoded, err := codec.DecodeSchema(wire)
	if err != nil {
		panic(err)
	}

	fmt.Printf("%v", decoded.Equal(s))
	// Output: true
}
