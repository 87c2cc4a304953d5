// Package codec: expression tree encode/decode. See schema_codec.go for the
// tagged-sum convention shared across both halves of the wire contract.
package codec

import (
	"fmt"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	remote "go.flow.remotecore.io/remote"
	"go.flow.remotecore.io/remote/schema"
)

// EncodeExpression renders e as a JSON tagged-sum tree. Every Expression
// variant is covered; Lazy is the one exception, since its Thunk is host
// code, which never travels on the wire. A Lazy node must be resolved to
// a concrete expression before it is encoded.
func EncodeExpression(e remote.Expression) (string, error) {
	switch n := e.(type) {
	case remote.Literal:
		return taggedObj("Literal", func(json string) (string, error) {
			json, err := setEncodedSchema(json, "value.schema", n.Dyn.Schema)
			if err != nil {
				return "", err
			}
			return setEncodedValue(json, "value.value", n.Dyn.Value)
		})
	case remote.Ignore:
		return taggedString("Ignore", "")
	case remote.Variable:
		return encodeVariable(n)
	case remote.Nested:
		return encodeUnaryExpr("Nested", n.Inner)
	case remote.Flow:
		return taggedString("Flow", n.Ref.FlowID())
	case remote.EvaluatedFunction:
		return encodeFunction(n)
	case remote.Apply:
		return taggedObj("Apply", func(json string) (string, error) {
			fj, err := encodeFunction(n.F)
			if err != nil {
				return "", err
			}
			json, err = sjson.SetRaw(json, "value.f", fj)
			if err != nil {
				return "", err
			}
			return setEncodedExpr(json, "value.arg", n.Arg)
		})
	case remote.And:
		return encodeBinaryExpr("And", n.L, n.R)
	case remote.Or:
		return encodeBinaryExpr("Or", n.L, n.R)
	case remote.Not:
		return encodeUnaryExpr("Not", n.E)
	case remote.Equal:
		return encodeBinaryExpr("Equal", n.L, n.R)
	case remote.LessThanEqual:
		return encodeBinaryExpr("LessThanEqual", n.L, n.R)
	case remote.Branch:
		return taggedObj("Branch", func(json string) (string, error) {
			json, err := setEncodedExpr(json, "value.predicate", n.Predicate)
			if err != nil {
				return "", err
			}
			json, err = setEncodedExpr(json, "value.onTrue", n.OnTrue)
			if err != nil {
				return "", err
			}
			return setEncodedExpr(json, "value.onFalse", n.OnFalse)
		})
	case remote.Iterate:
		return taggedObj("Iterate", func(json string) (string, error) {
			json, err := setEncodedExpr(json, "value.initial", n.Initial)
			if err != nil {
				return "", err
			}
			json, err = setEncodedFunction(json, "value.step", n.Step)
			if err != nil {
				return "", err
			}
			return setEncodedFunction(json, "value.pred", n.Pred)
		})
	case remote.EitherL:
		return taggedObj("EitherL", func(json string) (string, error) {
			json, err := setEncodedExpr(json, "value.value", n.Value)
			if err != nil {
				return "", err
			}
			return setEncodedSchema(json, "value.rightSchema", n.RightSchema)
		})
	case remote.EitherR:
		return taggedObj("EitherR", func(json string) (string, error) {
			json, err := setEncodedSchema(json, "value.leftSchema", n.LeftSchema)
			if err != nil {
				return "", err
			}
			return setEncodedExpr(json, "value.value", n.Value)
		})
	case remote.FlatMapEither:
		return taggedObj("FlatMapEither", func(json string) (string, error) {
			json, err := setEncodedExpr(json, "value.e", n.E)
			if err != nil {
				return "", err
			}
			json, err = setEncodedFunction(json, "value.fn", n.Fn)
			if err != nil {
				return "", err
			}
			json, err = setEncodedSchema(json, "value.aSchema", n.ASchema)
			if err != nil {
				return "", err
			}
			return setEncodedSchema(json, "value.cSchema", n.CSchema)
		})
	case remote.FoldEither:
		return taggedObj("FoldEither", func(json string) (string, error) {
			json, err := setEncodedExpr(json, "value.e", n.E)
			if err != nil {
				return "", err
			}
			json, err = setEncodedFunction(json, "value.fl", n.FL)
			if err != nil {
				return "", err
			}
			return setEncodedFunction(json, "value.fr", n.FR)
		})
	case remote.SwapEither:
		return encodeUnaryExpr("SwapEither", n.E)
	case remote.Some0:
		return encodeUnaryExpr("Some0", n.E)
	case remote.FoldOption:
		return taggedObj("FoldOption", func(json string) (string, error) {
			json, err := setEncodedExpr(json, "value.opt", n.Opt)
			if err != nil {
				return "", err
			}
			json, err = setEncodedExpr(json, "value.ifEmpty", n.IfEmpty)
			if err != nil {
				return "", err
			}
			return setEncodedFunction(json, "value.ifSome", n.IfSome)
		})
	case remote.ZipOption:
		return encodeBinaryExpr("ZipOption", n.L, n.R)
	case remote.OptionContains:
		return taggedObj("OptionContains", func(json string) (string, error) {
			json, err := setEncodedExpr(json, "value.opt", n.Opt)
			if err != nil {
				return "", err
			}
			return setEncodedExpr(json, "value.v", n.V)
		})
	case remote.Try:
		return encodeUnaryExpr("Try", n.E)
	case remote.Tuple:
		return taggedObj("Tuple", func(json string) (string, error) {
			arr := "[]"
			for i, el := range n.Elems {
				enc, err := EncodeExpression(el)
				if err != nil {
					return "", err
				}
				arr, err = sjson.SetRaw(arr, fmt.Sprintf("%d", i), enc)
				if err != nil {
					return "", err
				}
			}
			return sjson.SetRaw(json, "value.elems", arr)
		})
	case remote.TupleAccess:
		return taggedObj("TupleAccess", func(json string) (string, error) {
			json, err := setEncodedExpr(json, "value.tuple", n.Tuple)
			if err != nil {
				return "", err
			}
			return sjson.Set(json, "value.index", n.Index)
		})
	case remote.Cons:
		return taggedObj("Cons", func(json string) (string, error) {
			json, err := setEncodedExpr(json, "value.list", n.List)
			if err != nil {
				return "", err
			}
			return setEncodedExpr(json, "value.head", n.Head)
		})
	case remote.UnCons:
		return encodeUnaryExpr("UnCons", n.List)
	case remote.Fold:
		return taggedObj("Fold", func(json string) (string, error) {
			json, err := setEncodedExpr(json, "value.list", n.List)
			if err != nil {
				return "", err
			}
			json, err = setEncodedExpr(json, "value.initial", n.Initial)
			if err != nil {
				return "", err
			}
			return setEncodedFunction(json, "value.body", n.Body)
		})
	case remote.Add:
		return encodeNumericBinary("Add", n.Instance, n.L, n.R)
	case remote.Sub:
		return encodeNumericBinary("Sub", n.Instance, n.L, n.R)
	case remote.Mul:
		return encodeNumericBinary("Mul", n.Instance, n.L, n.R)
	case remote.Div:
		return encodeNumericBinary("Div", n.Instance, n.L, n.R)
	case remote.ModInt:
		return encodeNumericBinary("ModInt", n.Instance, n.L, n.R)
	case remote.Pow:
		return encodeNumericBinary("Pow", n.Instance, n.L, n.R)
	case remote.Root:
		return encodeNumericBinary("Root", n.Instance, n.L, n.R)
	case remote.Log:
		return encodeNumericBinary("Log", n.Instance, n.L, n.R)
	case remote.Min:
		return encodeNumericBinary("Min", n.Instance, n.L, n.R)
	case remote.Max:
		return encodeNumericBinary("Max", n.Instance, n.L, n.R)
	case remote.Neg:
		return encodeNumericUnary("Neg", n.Instance, n.E)
	case remote.Abs:
		return encodeNumericUnary("Abs", n.Instance, n.E)
	case remote.Floor:
		return encodeNumericUnary("Floor", n.Instance, n.E)
	case remote.Ceil:
		return encodeNumericUnary("Ceil", n.Instance, n.E)
	case remote.Round:
		return encodeNumericUnary("Round", n.Instance, n.E)
	case remote.Sin:
		return encodeFractionalUnary("Sin", n.Instance, n.E)
	case remote.Asin:
		return encodeFractionalUnary("Asin", n.Instance, n.E)
	case remote.Atan:
		return encodeFractionalUnary("Atan", n.Instance, n.E)
	case remote.InstantFromLong:
		return encodeUnaryExpr("InstantFromLong", n.Seconds)
	case remote.InstantFromLongs:
		return encodeBinaryExprNamed("InstantFromLongs", "seconds", n.Seconds, "nanos", n.Nanos)
	case remote.InstantFromMilli:
		return encodeUnaryExpr("InstantFromMilli", n.Millis)
	case remote.InstantFromString:
		return encodeUnaryExpr("InstantFromString", n.S)
	case remote.InstantToTuple:
		return encodeUnaryExpr("InstantToTuple", n.I)
	case remote.InstantPlusDuration:
		return encodeBinaryExprNamed("InstantPlusDuration", "i", n.I, "d", n.D)
	case remote.InstantMinusDuration:
		return encodeBinaryExprNamed("InstantMinusDuration", "i", n.I, "d", n.D)
	case remote.InstantTruncate:
		return encodeBinaryExprNamed("InstantTruncate", "i", n.I, "unit", n.Unit)
	case remote.DurationFromString:
		return encodeUnaryExpr("DurationFromString", n.S)
	case remote.DurationBetweenInstants:
		return encodeBinaryExprNamed("DurationBetweenInstants", "start", n.Start, "end", n.End)
	case remote.DurationFromBigDecimal:
		return encodeUnaryExpr("DurationFromBigDecimal", n.Seconds)
	case remote.DurationFromLong:
		return encodeUnaryExpr("DurationFromLong", n.Seconds)
	case remote.DurationFromLongs:
		return encodeBinaryExprNamed("DurationFromLongs", "seconds", n.Seconds, "nanoAdj", n.NanoAdj)
	case remote.DurationFromAmount:
		return encodeBinaryExprNamed("DurationFromAmount", "n", n.N, "unit", n.Unit)
	case remote.DurationToLongs:
		return encodeUnaryExpr("DurationToLongs", n.D)
	case remote.DurationToLong:
		return encodeUnaryExpr("DurationToLong", n.D)
	case remote.DurationPlus:
		return encodeBinaryExpr("DurationPlus", n.L, n.R)
	case remote.DurationMinus:
		return encodeBinaryExpr("DurationMinus", n.L, n.R)
	case remote.Length:
		return encodeUnaryExpr("Length", n.S)
	case remote.Lazy:
		return "", fmt.Errorf("codec: Lazy is not wire-serializable (Thunk is host code); resolve it to a concrete expression first")
	default:
		return "", fmt.Errorf("codec: unknown expression type %T", e)
	}
}

func encodeVariable(v remote.Variable) (string, error) {
	return taggedObj("Variable", func(json string) (string, error) {
		json, err := sjson.Set(json, "value.name", string(v.Name))
		if err != nil {
			return "", err
		}
		return setEncodedSchema(json, "value.type", v.Type)
	})
}

func encodeFunction(f remote.EvaluatedFunction) (string, error) {
	return taggedObj("EvaluatedFunction", func(json string) (string, error) {
		vj, err := encodeVariable(f.Input)
		if err != nil {
			return "", err
		}
		json, err = sjson.SetRaw(json, "value.input", vj)
		if err != nil {
			return "", err
		}
		return setEncodedExpr(json, "value.body", f.Body)
	})
}

func setEncodedFunction(json, path string, f remote.EvaluatedFunction) (string, error) {
	enc, err := encodeFunction(f)
	if err != nil {
		return "", err
	}
	return sjson.SetRaw(json, path, enc)
}

func setEncodedExpr(json, path string, e remote.Expression) (string, error) {
	enc, err := EncodeExpression(e)
	if err != nil {
		return "", err
	}
	return sjson.SetRaw(json, path, enc)
}

func encodeUnaryExpr(caseName string, e remote.Expression) (string, error) {
	return taggedObj(caseName, func(json string) (string, error) {
		return setEncodedExpr(json, "value.e", e)
	})
}

func encodeBinaryExpr(caseName string, l, r remote.Expression) (string, error) {
	return encodeBinaryExprNamed(caseName, "l", l, "r", r)
}

func encodeBinaryExprNamed(caseName, aName string, a remote.Expression, bName string, b remote.Expression) (string, error) {
	return taggedObj(caseName, func(json string) (string, error) {
		json, err := setEncodedExpr(json, "value."+aName, a)
		if err != nil {
			return "", err
		}
		return setEncodedExpr(json, "value."+bName, b)
	})
}

func encodeNumericBinary(caseName string, kind schema.NumericKind, l, r remote.Expression) (string, error) {
	return taggedObj(caseName, func(json string) (string, error) {
		json, err := sjson.Set(json, "value.instance", string(kind))
		if err != nil {
			return "", err
		}
		json, err = setEncodedExpr(json, "value.l", l)
		if err != nil {
			return "", err
		}
		return setEncodedExpr(json, "value.r", r)
	})
}

func encodeNumericUnary(caseName string, kind schema.NumericKind, e remote.Expression) (string, error) {
	return taggedObj(caseName, func(json string) (string, error) {
		json, err := sjson.Set(json, "value.instance", string(kind))
		if err != nil {
			return "", err
		}
		return setEncodedExpr(json, "value.e", e)
	})
}

func encodeFractionalUnary(caseName string, kind schema.FractionalKind, e remote.Expression) (string, error) {
	return taggedObj(caseName, func(json string) (string, error) {
		json, err := sjson.Set(json, "value.instance", string(kind))
		if err != nil {
			return "", err
		}
		return setEncodedExpr(json, "value.e", e)
	})
}

// DecodeExpression parses an expression previously produced by
// EncodeExpression.
func DecodeExpression(json string) (remote.Expression, error) {
	r := gjson.Parse(json)
	caseName := r.Get("case").String()
	value := r.Get("value")

	unary := func() (remote.Expression, error) { return DecodeExpression(value.Get("e").Raw) }
	binary := func(aName, bName string) (remote.Expression, remote.Expression, error) {
		a, err := DecodeExpression(value.Get(aName).Raw)
		if err != nil {
			return nil, nil, err
		}
		b, err := DecodeExpression(value.Get(bName).Raw)
		if err != nil {
			return nil, nil, err
		}
		return a, b, nil
	}
	numericBinary := func() (schema.NumericKind, remote.Expression, remote.Expression, error) {
		kind := schema.NumericKind(value.Get("instance").String())
		l, r, err := binary("l", "r")
		return kind, l, r, err
	}
	numericUnary := func() (schema.NumericKind, remote.Expression, error) {
		kind := schema.NumericKind(value.Get("instance").String())
		e, err := unary()
		return kind, e, err
	}
	fractionalUnary := func() (schema.FractionalKind, remote.Expression, error) {
		kind := schema.FractionalKind(value.Get("instance").String())
		e, err := unary()
		return kind, e, err
	}

	switch caseName {
	case "Literal":
		s, err := DecodeSchema(value.Get("schema").Raw)
		if err != nil {
			return nil, err
		}
		v, err := DecodeValue(value.Get("value").Raw)
		if err != nil {
			return nil, err
		}
		return remote.Remote(v, s), nil
	case "Ignore":
		return remote.Ignore{}, nil
	case "Variable":
		return decodeVariable(r)
	case "Nested":
		inner, err := unary()
		if err != nil {
			return nil, err
		}
		return remote.Nested{Inner: inner}, nil
	case "Flow":
		return remote.Flow{Ref: remote.SimpleFlowRef(value.String())}, nil
	case "EvaluatedFunction":
		return decodeFunction(r)
	case "Apply":
		f, err := decodeFunction(value.Get("f"))
		if err != nil {
			return nil, err
		}
		arg, err := DecodeExpression(value.Get("arg").Raw)
		if err != nil {
			return nil, err
		}
		return remote.Apply{F: f, Arg: arg}, nil
	case "And":
		l, r, err := binary("l", "r")
		if err != nil {
			return nil, err
		}
		return remote.And{L: l, R: r}, nil
	case "Or":
		l, r, err := binary("l", "r")
		if err != nil {
			return nil, err
		}
		return remote.Or{L: l, R: r}, nil
	case "Not":
		e, err := unary()
		if err != nil {
			return nil, err
		}
		return remote.Not{E: e}, nil
	case "Equal":
		l, r, err := binary("l", "r")
		if err != nil {
			return nil, err
		}
		return remote.Equal{L: l, R: r}, nil
	case "LessThanEqual":
		l, r, err := binary("l", "r")
		if err != nil {
			return nil, err
		}
		return remote.LessThanEqual{L: l, R: r}, nil
	case "Branch":
		pred, err := DecodeExpression(value.Get("predicate").Raw)
		if err != nil {
			return nil, err
		}
		onTrue, err := DecodeExpression(value.Get("onTrue").Raw)
		if err != nil {
			return nil, err
		}
		onFalse, err := DecodeExpression(value.Get("onFalse").Raw)
		if err != nil {
			return nil, err
		}
		return remote.Branch{Predicate: pred, OnTrue: onTrue, OnFalse: onFalse}, nil
	case "Iterate":
		initial, err := DecodeExpression(value.Get("initial").Raw)
		if err != nil {
			return nil, err
		}
		step, err := decodeFunction(value.Get("step"))
		if err != nil {
			return nil, err
		}
		pred, err := decodeFunction(value.Get("pred"))
		if err != nil {
			return nil, err
		}
		return remote.Iterate{Initial: initial, Step: step, Pred: pred}, nil
	case "EitherL":
		v, err := DecodeExpression(value.Get("value").Raw)
		if err != nil {
			return nil, err
		}
		rs, err := DecodeSchema(value.Get("rightSchema").Raw)
		if err != nil {
			return nil, err
		}
		return remote.EitherL{Value: v, RightSchema: rs}, nil
	case "EitherR":
		ls, err := DecodeSchema(value.Get("leftSchema").Raw)
		if err != nil {
			return nil, err
		}
		v, err := DecodeExpression(value.Get("value").Raw)
		if err != nil {
			return nil, err
		}
		return remote.EitherR{LeftSchema: ls, Value: v}, nil
	case "FlatMapEither":
		e, err := DecodeExpression(value.Get("e").Raw)
		if err != nil {
			return nil, err
		}
		fn, err := decodeFunction(value.Get("fn"))
		if err != nil {
			return nil, err
		}
		as, err := DecodeSchema(value.Get("aSchema").Raw)
		if err != nil {
			return nil, err
		}
		cs, err := DecodeSchema(value.Get("cSchema").Raw)
		if err != nil {
			return nil, err
		}
		return remote.FlatMapEither{E: e, Fn: fn, ASchema: as, CSchema: cs}, nil
	case "FoldEither":
		e, err := DecodeExpression(value.Get("e").Raw)
		if err != nil {
			return nil, err
		}
		fl, err := decodeFunction(value.Get("fl"))
		if err != nil {
			return nil, err
		}
		fr, err := decodeFunction(value.Get("fr"))
		if err != nil {
			return nil, err
		}
		return remote.FoldEither{E: e, FL: fl, FR: fr}, nil
	case "SwapEither":
		e, err := unary()
		if err != nil {
			return nil, err
		}
		return remote.SwapEither{E: e}, nil
	case "Some0":
		e, err := unary()
		if err != nil {
			return nil, err
		}
		return remote.Some0{E: e}, nil
	case "FoldOption":
		opt, err := DecodeExpression(value.Get("opt").Raw)
		if err != nil {
			return nil, err
		}
		ifEmpty, err := DecodeExpression(value.Get("ifEmpty").Raw)
		if err != nil {
			return nil, err
		}
		ifSome, err := decodeFunction(value.Get("ifSome"))
		if err != nil {
			return nil, err
		}
		return remote.FoldOption{Opt: opt, IfEmpty: ifEmpty, IfSome: ifSome}, nil
	case "ZipOption":
		l, r, err := binary("l", "r")
		if err != nil {
			return nil, err
		}
		return remote.ZipOption{L: l, R: r}, nil
	case "OptionContains":
		opt, v, err := binary("opt", "v")
		if err != nil {
			return nil, err
		}
		return remote.OptionContains{Opt: opt, V: v}, nil
	case "Try":
		e, err := unary()
		if err != nil {
			return nil, err
		}
		return remote.Try{E: e}, nil
	case "Tuple":
		var elems []remote.Expression
		var decodeErr error
		value.Get("elems").ForEach(func(_, el gjson.Result) bool {
			e, err := DecodeExpression(el.Raw)
			if err != nil {
				decodeErr = err
				return false
			}
			elems = append(elems, e)
			return true
		})
		if decodeErr != nil {
			return nil, decodeErr
		}
		return remote.Tuple{Elems: elems}, nil
	case "TupleAccess":
		tup, err := DecodeExpression(value.Get("tuple").Raw)
		if err != nil {
			return nil, err
		}
		return remote.TupleAccess{Tuple: tup, Index: int(value.Get("index").Int())}, nil
	case "Cons":
		list, head, err := binary("list", "head")
		if err != nil {
			return nil, err
		}
		return remote.Cons{List: list, Head: head}, nil
	case "UnCons":
		list, err := unary()
		if err != nil {
			return nil, err
		}
		return remote.UnCons{List: list}, nil
	case "Fold":
		list, err := DecodeExpression(value.Get("list").Raw)
		if err != nil {
			return nil, err
		}
		initial, err := DecodeExpression(value.Get("initial").Raw)
		if err != nil {
			return nil, err
		}
		body, err := decodeFunction(value.Get("body"))
		if err != nil {
			return nil, err
		}
		return remote.Fold{List: list, Initial: initial, Body: body}, nil
	case "Add":
		kind, l, r, err := numericBinary()
		if err != nil {
			return nil, err
		}
		return remote.NewAdd(kind, l, r), nil
	case "Sub":
		kind, l, r, err := numericBinary()
		if err != nil {
			return nil, err
		}
		return remote.NewSub(kind, l, r), nil
	case "Mul":
		kind, l, r, err := numericBinary()
		if err != nil {
			return nil, err
		}
		return remote.NewMul(kind, l, r), nil
	case "Div":
		kind, l, r, err := numericBinary()
		if err != nil {
			return nil, err
		}
		return remote.NewDiv(kind, l, r), nil
	case "ModInt":
		kind, l, r, err := numericBinary()
		if err != nil {
			return nil, err
		}
		return remote.NewMod(kind, l, r), nil
	case "Pow":
		kind, l, r, err := numericBinary()
		if err != nil {
			return nil, err
		}
		return remote.NewPow(kind, l, r), nil
	case "Root":
		kind, l, r, err := numericBinary()
		if err != nil {
			return nil, err
		}
		return remote.NewRoot(kind, l, r), nil
	case "Log":
		kind, l, r, err := numericBinary()
		if err != nil {
			return nil, err
		}
		return remote.NewLog(kind, l, r), nil
	case "Min":
		kind, l, r, err := numericBinary()
		if err != nil {
			return nil, err
		}
		return remote.NewMin(kind, l, r), nil
	case "Max":
		kind, l, r, err := numericBinary()
		if err != nil {
			return nil, err
		}
		return remote.NewMax(kind, l, r), nil
	case "Neg":
		kind, e, err := numericUnary()
		if err != nil {
			return nil, err
		}
		return remote.NewNeg(kind, e), nil
	case "Abs":
		kind, e, err := numericUnary()
		if err != nil {
			return nil, err
		}
		return remote.NewAbs(kind, e), nil
	case "Floor":
		kind, e, err := numericUnary()
		if err != nil {
			return nil, err
		}
		return remote.NewFloor(kind, e), nil
	case "Ceil":
		kind, e, err := numericUnary()
		if err != nil {
			return nil, err
		}
		return remote.NewCeil(kind, e), nil
	case "Round":
		kind, e, err := numericUnary()
		if err != nil {
			return nil, err
		}
		return remote.NewRound(kind, e), nil
	case "Sin":
		kind, e, err := fractionalUnary()
		if err != nil {
			return nil, err
		}
		return remote.NewSin(kind, e), nil
	case "Asin":
		kind, e, err := fractionalUnary()
		if err != nil {
			return nil, err
		}
		return remote.NewAsin(kind, e), nil
	case "Atan":
		kind, e, err := fractionalUnary()
		if err != nil {
			return nil, err
		}
		return remote.NewAtan(kind, e), nil
	case "InstantFromLong":
		e, err := unary()
		if err != nil {
			return nil, err
		}
		return remote.InstantFromLong{Seconds: e}, nil
	case "InstantFromLongs":
		seconds, nanos, err := binary("seconds", "nanos")
		if err != nil {
			return nil, err
		}
		return remote.InstantFromLongs{Seconds: seconds, Nanos: nanos}, nil
	case "InstantFromMilli":
		e, err := unary()
		if err != nil {
			return nil, err
		}
		return remote.InstantFromMilli{Millis: e}, nil
	case "InstantFromString":
		e, err := unary()
		if err != nil {
			return nil, err
		}
		return remote.InstantFromString{S: e}, nil
	case "InstantToTuple":
		e, err := unary()
		if err != nil {
			return nil, err
		}
		return remote.InstantToTuple{I: e}, nil
	case "InstantPlusDuration":
		i, d, err := binary("i", "d")
		if err != nil {
			return nil, err
		}
		return remote.InstantPlusDuration{I: i, D: d}, nil
	case "InstantMinusDuration":
		i, d, err := binary("i", "d")
		if err != nil {
			return nil, err
		}
		return remote.InstantMinusDuration{I: i, D: d}, nil
	case "InstantTruncate":
		i, unit, err := binary("i", "unit")
		if err != nil {
			return nil, err
		}
		return remote.InstantTruncate{I: i, Unit: unit}, nil
	case "DurationFromString":
		e, err := unary()
		if err != nil {
			return nil, err
		}
		return remote.DurationFromString{S: e}, nil
	case "DurationBetweenInstants":
		start, end, err := binary("start", "end")
		if err != nil {
			return nil, err
		}
		return remote.DurationBetweenInstants{Start: start, End: end}, nil
	case "DurationFromBigDecimal":
		e, err := unary()
		if err != nil {
			return nil, err
		}
		return remote.DurationFromBigDecimal{Seconds: e}, nil
	case "DurationFromLong":
		e, err := unary()
		if err != nil {
			return nil, err
		}
		return remote.DurationFromLong{Seconds: e}, nil
	case "DurationFromLongs":
		seconds, nanoAdj, err := binary("seconds", "nanoAdj")
		if err != nil {
			return nil, err
		}
		return remote.DurationFromLongs{Seconds: seconds, NanoAdj: nanoAdj}, nil
	case "DurationFromAmount":
		n, unit, err := binary("n", "unit")
		if err != nil {
			return nil, err
		}
		return remote.DurationFromAmount{N: n, Unit: unit}, nil
	case "DurationToLongs":
		e, err := unary()
		if err != nil {
			return nil, err
		}
		return remote.DurationToLongs{D: e}, nil
	case "DurationToLong":
		e, err := unary()
		if err != nil {
			return nil, err
		}
		return remote.DurationToLong{D: e}, nil
	case "DurationPlus":
		l, r, err := binary("l", "r")
		if err != nil {
			return nil, err
		}
		return remote.DurationPlus{L: l, R: r}, nil
	case "DurationMinus":
		l, r, err := binary("l", "r")
		if err != nil {
			return nil, err
		}
		return remote.DurationMinus{L: l, R: r}, nil
	case "Length":
		e, err := unary()
		if err != nil {
			return nil, err
		}
		return remote.Length{S: e}, nil
	default:
		return nil, fmt.Errorf("codec: unknown expression case %q", caseName)
	}
}

// decodeVariable takes the full tagged {"case":"Variable","value":{...}}
// object, as it appears embedded in a parent field (Apply.F.Input etc).
func decodeVariable(tagged gjson.Result) (remote.Variable, error) {
	value := tagged.Get("value")
	t, err := DecodeSchema(value.Get("type").Raw)
	if err != nil {
		return remote.Variable{}, err
	}
	return remote.Variable{Name: remote.Name(value.Get("name").String()), Type: t}, nil
}

// decodeFunction takes the full tagged {"case":"EvaluatedFunction",
// "value":{...}} object, matching what setEncodedFunction embeds.
func decodeFunction(tagged gjson.Result) (remote.EvaluatedFunction, error) {
	value := tagged.Get("value")
	input, err := decodeVariable(value.Get("input"))
	if err != nil {
		return remote.EvaluatedFunction{}, err
	}
	body, err := DecodeExpression(value.Get("body").Raw)
	if err != nil {
		return remote.EvaluatedFunction{}, err
	}
	return remote.EvaluatedFunction{Input: input, Body: body}, nil
}
