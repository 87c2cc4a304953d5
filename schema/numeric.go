package schema

import (
	"fmt"
	"math"
	"math/big"

	"github.com/shopspring/decimal"
)

// NumericKind is the closed selector for Numeric instances. The set is
// fixed by the serialization format, so instances are a closed enum
// rather than an open interface a caller could extend.
type NumericKind string

const (
	NumericInt        NumericKind = "Int"
	NumericLong       NumericKind = "Long"
	NumericShort      NumericKind = "Short"
	NumericBigInt     NumericKind = "BigInt"
	NumericFloat      NumericKind = "Float"
	NumericDouble     NumericKind = "Double"
	NumericBigDecimal NumericKind = "BigDecimal"
)

// Numeric packs the arithmetic operations for one numeric primitive
// instance. Every method takes and returns DynamicValue Primitives tagged
// with this instance's Schema().
type Numeric interface {
	Kind() NumericKind
	Schema() Schema
	Add(a, b DynamicValue) (DynamicValue, error)
	Sub(a, b DynamicValue) (DynamicValue, error)
	Mul(a, b DynamicValue) (DynamicValue, error)
	Div(a, b DynamicValue) (DynamicValue, error)
	Mod(a, b DynamicValue) (DynamicValue, error)
	Neg(a DynamicValue) (DynamicValue, error)
	Abs(a DynamicValue) (DynamicValue, error)
	Min(a, b DynamicValue) (DynamicValue, error)
	Max(a, b DynamicValue) (DynamicValue, error)
	Pow(a, b DynamicValue) (DynamicValue, error)
	Root(a, b DynamicValue) (DynamicValue, error)
	Log(a, b DynamicValue) (DynamicValue, error)
	Floor(a DynamicValue) (DynamicValue, error)
	Ceil(a DynamicValue) (DynamicValue, error)
	Round(a DynamicValue) (DynamicValue, error)
}

// NumericInstance returns the fixed Numeric instance for kind. The set of
// kinds is closed; there is no registration mechanism.
func NumericInstance(kind NumericKind) (Numeric, error) {
	switch kind {
	case NumericInt:
		return int32Numeric{}, nil
	case NumericLong:
		return int64Numeric{}, nil
	case NumericShort:
		return int16Numeric{}, nil
	case NumericBigInt:
		return bigIntNumeric{}, nil
	case NumericFloat:
		return float32Numeric{}, nil
	case NumericDouble:
		return float64Numeric{}, nil
	case NumericBigDecimal:
		return bigDecimalNumeric{}, nil
	default:
		return nil, fmt.Errorf("unknown numeric instance %q", kind)
	}
}

// ArithmeticError reports a divide-by-zero, overflow, or domain error.
type ArithmeticError struct {
	Kind string
}

func (e *ArithmeticError) Error() string { return fmt.Sprintf("arithmetic error: %s", e.Kind) }

func newArithmeticError(kind string) error { return &ArithmeticError{Kind: kind} }

// --- int64 (Long) ---

type int64Numeric struct{}

func (int64Numeric) Kind() NumericKind { return NumericLong }
func (int64Numeric) Schema() Schema    { return PrimitiveSchema{Tag: Long} }

func (n int64Numeric) unwrap(v DynamicValue) (int64, error) {
	p, ok := v.(Primitive)
	if !ok || p.Tag != Long {
		return 0, fmt.Errorf("expected a Long primitive, got %T", v)
	}
	return p.Raw.(int64), nil
}
func (n int64Numeric) wrap(v int64) DynamicValue { return Primitive{Tag: Long, Raw: v} }

func (n int64Numeric) binary(a, b DynamicValue, f func(x, y int64) (int64, error)) (DynamicValue, error) {
	x, err := n.unwrap(a)
	if err != nil {
		return nil, err
	}
	y, err := n.unwrap(b)
	if err != nil {
		return nil, err
	}
	r, err := f(x, y)
	if err != nil {
		return nil, err
	}
	return n.wrap(r), nil
}

func (n int64Numeric) Add(a, b DynamicValue) (DynamicValue, error) {
	return n.binary(a, b, func(x, y int64) (int64, error) { return x + y, nil })
}
func (n int64Numeric) Sub(a, b DynamicValue) (DynamicValue, error) {
	return n.binary(a, b, func(x, y int64) (int64, error) { return x - y, nil })
}
func (n int64Numeric) Mul(a, b DynamicValue) (DynamicValue, error) {
	return n.binary(a, b, func(x, y int64) (int64, error) { return x * y, nil })
}
func (n int64Numeric) Div(a, b DynamicValue) (DynamicValue, error) {
	return n.binary(a, b, func(x, y int64) (int64, error) {
		if y == 0 {
			return 0, newArithmeticError("division by zero")
		}
		return x / y, nil
	})
}
func (n int64Numeric) Mod(a, b DynamicValue) (DynamicValue, error) {
	return n.binary(a, b, func(x, y int64) (int64, error) {
		if y == 0 {
			return 0, newArithmeticError("modulus by zero")
		}
		return x % y, nil
	})
}
func (n int64Numeric) Neg(a DynamicValue) (DynamicValue, error) {
	x, err := n.unwrap(a)
	if err != nil {
		return nil, err
	}
	return n.wrap(-x), nil
}
func (n int64Numeric) Abs(a DynamicValue) (DynamicValue, error) {
	x, err := n.unwrap(a)
	if err != nil {
		return nil, err
	}
	if x < 0 {
		x = -x
	}
	return n.wrap(x), nil
}
func (n int64Numeric) Min(a, b DynamicValue) (DynamicValue, error) {
	return n.binary(a, b, func(x, y int64) (int64, error) {
		if x < y {
			return x, nil
		}
		return y, nil
	})
}
func (n int64Numeric) Max(a, b DynamicValue) (DynamicValue, error) {
	return n.binary(a, b, func(x, y int64) (int64, error) {
		if x > y {
			return x, nil
		}
		return y, nil
	})
}
func (n int64Numeric) Pow(a, b DynamicValue) (DynamicValue, error) {
	return n.binary(a, b, func(x, y int64) (int64, error) {
		return int64(math.Pow(float64(x), float64(y))), nil
	})
}
func (n int64Numeric) Root(a, b DynamicValue) (DynamicValue, error) {
	return n.binary(a, b, func(x, y int64) (int64, error) {
		if y == 0 {
			return 0, newArithmeticError("zeroth root")
		}
		return int64(math.Pow(float64(x), 1/float64(y))), nil
	})
}
func (n int64Numeric) Log(a, b DynamicValue) (DynamicValue, error) {
	return n.binary(a, b, func(x, y int64) (int64, error) {
		if x <= 0 || y <= 0 || y == 1 {
			return 0, newArithmeticError("logarithm domain error")
		}
		return int64(math.Log(float64(x)) / math.Log(float64(y))), nil
	})
}
func (n int64Numeric) Floor(a DynamicValue) (DynamicValue, error) { return a, nil }
func (n int64Numeric) Ceil(a DynamicValue) (DynamicValue, error)  { return a, nil }
func (n int64Numeric) Round(a DynamicValue) (DynamicValue, error) { return a, nil }

// --- int32 (Int) ---

type int32Numeric struct{}

func (int32Numeric) Kind() NumericKind { return NumericInt }
func (int32Numeric) Schema() Schema    { return PrimitiveSchema{Tag: Int} }

func (n int32Numeric) unwrap(v DynamicValue) (int32, error) {
	p, ok := v.(Primitive)
	if !ok || p.Tag != Int {
		return 0, fmt.Errorf("expected an Int primitive, got %T", v)
	}
	return p.Raw.(int32), nil
}
func (n int32Numeric) wrap(v int32) DynamicValue { return Primitive{Tag: Int, Raw: v} }

func (n int32Numeric) binary(a, b DynamicValue, f func(x, y int32) (int32, error)) (DynamicValue, error) {
	x, err := n.unwrap(a)
	if err != nil {
		return nil, err
	}
	y, err := n.unwrap(b)
	if err != nil {
		return nil, err
	}
	r, err := f(x, y)
	if err != nil {
		return nil, err
	}
	return n.wrap(r), nil
}

func (n int32Numeric) Add(a, b DynamicValue) (DynamicValue, error) {
	return n.binary(a, b, func(x, y int32) (int32, error) { return x + y, nil })
}
func (n int32Numeric) Sub(a, b DynamicValue) (DynamicValue, error) {
	return n.binary(a, b, func(x, y int32) (int32, error) { return x - y, nil })
}
func (n int32Numeric) Mul(a, b DynamicValue) (DynamicValue, error) {
	return n.binary(a, b, func(x, y int32) (int32, error) { return x * y, nil })
}
func (n int32Numeric) Div(a, b DynamicValue) (DynamicValue, error) {
	return n.binary(a, b, func(x, y int32) (int32, error) {
		if y == 0 {
			return 0, newArithmeticError("division by zero")
		}
		return x / y, nil
	})
}
func (n int32Numeric) Mod(a, b DynamicValue) (DynamicValue, error) {
	return n.binary(a, b, func(x, y int32) (int32, error) {
		if y == 0 {
			return 0, newArithmeticError("modulus by zero")
		}
		return x % y, nil
	})
}
func (n int32Numeric) Neg(a DynamicValue) (DynamicValue, error) {
	x, err := n.unwrap(a)
	if err != nil {
		return nil, err
	}
	return n.wrap(-x), nil
}
func (n int32Numeric) Abs(a DynamicValue) (DynamicValue, error) {
	x, err := n.unwrap(a)
	if err != nil {
		return nil, err
	}
	if x < 0 {
		x = -x
	}
	return n.wrap(x), nil
}
func (n int32Numeric) Min(a, b DynamicValue) (DynamicValue, error) {
	return n.binary(a, b, func(x, y int32) (int32, error) {
		if x < y {
			return x, nil
		}
		return y, nil
	})
}
func (n int32Numeric) Max(a, b DynamicValue) (DynamicValue, error) {
	return n.binary(a, b, func(x, y int32) (int32, error) {
		if x > y {
			return x, nil
		}
		return y, nil
	})
}
func (n int32Numeric) Pow(a, b DynamicValue) (DynamicValue, error) {
	return n.binary(a, b, func(x, y int32) (int32, error) {
		return int32(math.Pow(float64(x), float64(y))), nil
	})
}
func (n int32Numeric) Root(a, b DynamicValue) (DynamicValue, error) {
	return n.binary(a, b, func(x, y int32) (int32, error) {
		if y == 0 {
			return 0, newArithmeticError("zeroth root")
		}
		return int32(math.Pow(float64(x), 1/float64(y))), nil
	})
}
func (n int32Numeric) Log(a, b DynamicValue) (DynamicValue, error) {
	return n.binary(a, b, func(x, y int32) (int32, error) {
		if x <= 0 || y <= 0 || y == 1 {
			return 0, newArithmeticError("logarithm domain error")
		}
		return int32(math.Log(float64(x)) / math.Log(float64(y))), nil
	})
}
func (n int32Numeric) Floor(a DynamicValue) (DynamicValue, error) { return a, nil }
func (n int32Numeric) Ceil(a DynamicValue) (DynamicValue, error)  { return a, nil }
func (n int32Numeric) Round(a DynamicValue) (DynamicValue, error) { return a, nil }

// --- int16 (Short) ---

type int16Numeric struct{}

func (int16Numeric) Kind() NumericKind { return NumericShort }
func (int16Numeric) Schema() Schema    { return PrimitiveSchema{Tag: Short} }

func (n int16Numeric) unwrap(v DynamicValue) (int16, error) {
	p, ok := v.(Primitive)
	if !ok || p.Tag != Short {
		return 0, fmt.Errorf("expected a Short primitive, got %T", v)
	}
	return p.Raw.(int16), nil
}
func (n int16Numeric) wrap(v int16) DynamicValue { return Primitive{Tag: Short, Raw: v} }

func (n int16Numeric) binary(a, b DynamicValue, f func(x, y int16) (int16, error)) (DynamicValue, error) {
	x, err := n.unwrap(a)
	if err != nil {
		return nil, err
	}
	y, err := n.unwrap(b)
	if err != nil {
		return nil, err
	}
	r, err := f(x, y)
	if err != nil {
		return nil, err
	}
	return n.wrap(r), nil
}

func (n int16Numeric) Add(a, b DynamicValue) (DynamicValue, error) {
	return n.binary(a, b, func(x, y int16) (int16, error) { return x + y, nil })
}
func (n int16Numeric) Sub(a, b DynamicValue) (DynamicValue, error) {
	return n.binary(a, b, func(x, y int16) (int16, error) { return x - y, nil })
}
func (n int16Numeric) Mul(a, b DynamicValue) (DynamicValue, error) {
	return n.binary(a, b, func(x, y int16) (int16, error) { return x * y, nil })
}
func (n int16Numeric) Div(a, b DynamicValue) (DynamicValue, error) {
	return n.binary(a, b, func(x, y int16) (int16, error) {
		if y == 0 {
			return 0, newArithmeticError("division by zero")
		}
		return x / y, nil
	})
}
func (n int16Numeric) Mod(a, b DynamicValue) (DynamicValue, error) {
	return n.binary(a, b, func(x, y int16) (int16, error) {
		if y == 0 {
			return 0, newArithmeticError("modulus by zero")
		}
		return x % y, nil
	})
}
func (n int16Numeric) Neg(a DynamicValue) (DynamicValue, error) {
	x, err := n.unwrap(a)
	if err != nil {
		return nil, err
	}
	return n.wrap(-x), nil
}
func (n int16Numeric) Abs(a DynamicValue) (DynamicValue, error) {
	x, err := n.unwrap(a)
	if err != nil {
		return nil, err
	}
	if x < 0 {
		x = -x
	}
	return n.wrap(x), nil
}
func (n int16Numeric) Min(a, b DynamicValue) (DynamicValue, error) {
	return n.binary(a, b, func(x, y int16) (int16, error) {
		if x < y {
			return x, nil
		}
		return y, nil
	})
}
func (n int16Numeric) Max(a, b DynamicValue) (DynamicValue, error) {
	return n.binary(a, b, func(x, y int16) (int16, error) {
		if x > y {
			return x, nil
		}
		return y, nil
	})
}
func (n int16Numeric) Pow(a, b DynamicValue) (DynamicValue, error) {
	return n.binary(a, b, func(x, y int16) (int16, error) {
		return int16(math.Pow(float64(x), float64(y))), nil
	})
}
func (n int16Numeric) Root(a, b DynamicValue) (DynamicValue, error) {
	return n.binary(a, b, func(x, y int16) (int16, error) {
		if y == 0 {
			return 0, newArithmeticError("zeroth root")
		}
		return int16(math.Pow(float64(x), 1/float64(y))), nil
	})
}
func (n int16Numeric) Log(a, b DynamicValue) (DynamicValue, error) {
	return n.binary(a, b, func(x, y int16) (int16, error) {
		if x <= 0 || y <= 0 || y == 1 {
			return 0, newArithmeticError("logarithm domain error")
		}
		return int16(math.Log(float64(x)) / math.Log(float64(y))), nil
	})
}
func (n int16Numeric) Floor(a DynamicValue) (DynamicValue, error) { return a, nil }
func (n int16Numeric) Ceil(a DynamicValue) (DynamicValue, error)  { return a, nil }
func (n int16Numeric) Round(a DynamicValue) (DynamicValue, error) { return a, nil }

// --- *big.Int (BigInt) ---

type bigIntNumeric struct{}

func (bigIntNumeric) Kind() NumericKind { return NumericBigInt }
func (bigIntNumeric) Schema() Schema    { return PrimitiveSchema{Tag: BigInt} }

func (n bigIntNumeric) unwrap(v DynamicValue) (*big.Int, error) {
	p, ok := v.(Primitive)
	if !ok || p.Tag != BigInt {
		return nil, fmt.Errorf("expected a BigInt primitive, got %T", v)
	}
	x, ok := p.Raw.(*big.Int)
	if !ok {
		return nil, fmt.Errorf("expected *big.Int payload, got %T", p.Raw)
	}
	return x, nil
}
func (n bigIntNumeric) wrap(v *big.Int) DynamicValue { return Primitive{Tag: BigInt, Raw: v} }

func (n bigIntNumeric) Add(a, b DynamicValue) (DynamicValue, error) {
	x, err := n.unwrap(a)
	if err != nil {
		return nil, err
	}
	y, err := n.unwrap(b)
	if err != nil {
		return nil, err
	}
	return n.wrap(new(big.Int).Add(x, y)), nil
}
func (n bigIntNumeric) Sub(a, b DynamicValue) (DynamicValue, error) {
	x, err := n.unwrap(a)
	if err != nil {
		return nil, err
	}
	y, err := n.unwrap(b)
	if err != nil {
		return nil, err
	}
	return n.wrap(new(big.Int).Sub(x, y)), nil
}
func (n bigIntNumeric) Mul(a, b DynamicValue) (DynamicValue, error) {
	x, err := n.unwrap(a)
	if err != nil {
		return nil, err
	}
	y, err := n.unwrap(b)
	if err != nil {
		return nil, err
	}
	return n.wrap(new(big.Int).Mul(x, y)), nil
}
func (n bigIntNumeric) Div(a, b DynamicValue) (DynamicValue, error) {
	x, err := n.unwrap(a)
	if err != nil {
		return nil, err
	}
	y, err := n.unwrap(b)
	if err != nil {
		return nil, err
	}
	if y.Sign() == 0 {
		return nil, newArithmeticError("division by zero")
	}
	return n.wrap(new(big.Int).Quo(x, y)), nil
}
func (n bigIntNumeric) Mod(a, b DynamicValue) (DynamicValue, error) {
	x, err := n.unwrap(a)
	if err != nil {
		return nil, err
	}
	y, err := n.unwrap(b)
	if err != nil {
		return nil, err
	}
	if y.Sign() == 0 {
		return nil, newArithmeticError("modulus by zero")
	}
	return n.wrap(new(big.Int).Rem(x, y)), nil
}
func (n bigIntNumeric) Neg(a DynamicValue) (DynamicValue, error) {
	x, err := n.unwrap(a)
	if err != nil {
		return nil, err
	}
	return n.wrap(new(big.Int).Neg(x)), nil
}
func (n bigIntNumeric) Abs(a DynamicValue) (DynamicValue, error) {
	x, err := n.unwrap(a)
	if err != nil {
		return nil, err
	}
	return n.wrap(new(big.Int).Abs(x)), nil
}
func (n bigIntNumeric) Min(a, b DynamicValue) (DynamicValue, error) {
	x, err := n.unwrap(a)
	if err != nil {
		return nil, err
	}
	y, err := n.unwrap(b)
	if err != nil {
		return nil, err
	}
	if x.Cmp(y) <= 0 {
		return n.wrap(x), nil
	}
	return n.wrap(y), nil
}
func (n bigIntNumeric) Max(a, b DynamicValue) (DynamicValue, error) {
	x, err := n.unwrap(a)
	if err != nil {
		return nil, err
	}
	y, err := n.unwrap(b)
	if err != nil {
		return nil, err
	}
	if x.Cmp(y) >= 0 {
		return n.wrap(x), nil
	}
	return n.wrap(y), nil
}
func (n bigIntNumeric) Pow(a, b DynamicValue) (DynamicValue, error) {
	x, err := n.unwrap(a)
	if err != nil {
		return nil, err
	}
	y, err := n.unwrap(b)
	if err != nil {
		return nil, err
	}
	return n.wrap(new(big.Int).Exp(x, y, nil)), nil
}
func (n bigIntNumeric) Root(a, b DynamicValue) (DynamicValue, error) {
	x, err := n.unwrap(a)
	if err != nil {
		return nil, err
	}
	y, err := n.unwrap(b)
	if err != nil {
		return nil, err
	}
	if y.Sign() == 0 {
		return nil, newArithmeticError("zeroth root")
	}
	f, _ := new(big.Float).SetInt(x).Float64()
	e, _ := new(big.Float).SetInt(y).Float64()
	r := new(big.Int)
	big.NewFloat(math.Pow(f, 1/e)).Int(r)
	return n.wrap(r), nil
}
func (n bigIntNumeric) Log(a, b DynamicValue) (DynamicValue, error) {
	x, err := n.unwrap(a)
	if err != nil {
		return nil, err
	}
	y, err := n.unwrap(b)
	if err != nil {
		return nil, err
	}
	if x.Sign() <= 0 || y.Sign() <= 0 {
		return nil, newArithmeticError("logarithm domain error")
	}
	fx, _ := new(big.Float).SetInt(x).Float64()
	fy, _ := new(big.Float).SetInt(y).Float64()
	r := new(big.Int)
	big.NewFloat(math.Log(fx) / math.Log(fy)).Int(r)
	return n.wrap(r), nil
}
func (n bigIntNumeric) Floor(a DynamicValue) (DynamicValue, error) { return a, nil }
func (n bigIntNumeric) Ceil(a DynamicValue) (DynamicValue, error)  { return a, nil }
func (n bigIntNumeric) Round(a DynamicValue) (DynamicValue, error) { return a, nil }

// --- float32 (Float) ---

type float32Numeric struct{}

func (float32Numeric) Kind() NumericKind { return NumericFloat }
func (float32Numeric) Schema() Schema    { return PrimitiveSchema{Tag: Float} }

func (n float32Numeric) unwrap(v DynamicValue) (float32, error) {
	p, ok := v.(Primitive)
	if !ok || p.Tag != Float {
		return 0, fmt.Errorf("expected a Float primitive, got %T", v)
	}
	return p.Raw.(float32), nil
}
func (n float32Numeric) wrap(v float32) DynamicValue { return Primitive{Tag: Float, Raw: v} }

func (n float32Numeric) binary(a, b DynamicValue, f func(x, y float32) float32) (DynamicValue, error) {
	x, err := n.unwrap(a)
	if err != nil {
		return nil, err
	}
	y, err := n.unwrap(b)
	if err != nil {
		return nil, err
	}
	return n.wrap(f(x, y)), nil
}

func (n float32Numeric) Add(a, b DynamicValue) (DynamicValue, error) {
	return n.binary(a, b, func(x, y float32) float32 { return x + y })
}
func (n float32Numeric) Sub(a, b DynamicValue) (DynamicValue, error) {
	return n.binary(a, b, func(x, y float32) float32 { return x - y })
}
func (n float32Numeric) Mul(a, b DynamicValue) (DynamicValue, error) {
	return n.binary(a, b, func(x, y float32) float32 { return x * y })
}
func (n float32Numeric) Div(a, b DynamicValue) (DynamicValue, error) {
	x, err := n.unwrap(a)
	if err != nil {
		return nil, err
	}
	y, err := n.unwrap(b)
	if err != nil {
		return nil, err
	}
	if y == 0 {
		return nil, newArithmeticError("division by zero")
	}
	return n.wrap(x / y), nil
}
func (n float32Numeric) Mod(a, b DynamicValue) (DynamicValue, error) {
	return n.binary(a, b, func(x, y float32) float32 { return float32(math.Mod(float64(x), float64(y))) })
}
func (n float32Numeric) Neg(a DynamicValue) (DynamicValue, error) {
	x, err := n.unwrap(a)
	if err != nil {
		return nil, err
	}
	return n.wrap(-x), nil
}
func (n float32Numeric) Abs(a DynamicValue) (DynamicValue, error) {
	x, err := n.unwrap(a)
	if err != nil {
		return nil, err
	}
	return n.wrap(float32(math.Abs(float64(x)))), nil
}
func (n float32Numeric) Min(a, b DynamicValue) (DynamicValue, error) {
	return n.binary(a, b, func(x, y float32) float32 { return float32(math.Min(float64(x), float64(y))) })
}
func (n float32Numeric) Max(a, b DynamicValue) (DynamicValue, error) {
	return n.binary(a, b, func(x, y float32) float32 { return float32(math.Max(float64(x), float64(y))) })
}
func (n float32Numeric) Pow(a, b DynamicValue) (DynamicValue, error) {
	return n.binary(a, b, func(x, y float32) float32 { return float32(math.Pow(float64(x), float64(y))) })
}
func (n float32Numeric) Root(a, b DynamicValue) (DynamicValue, error) {
	x, err := n.unwrap(a)
	if err != nil {
		return nil, err
	}
	y, err := n.unwrap(b)
	if err != nil {
		return nil, err
	}
	if y == 0 {
		return nil, newArithmeticError("zeroth root")
	}
	return n.wrap(float32(math.Pow(float64(x), 1/float64(y)))), nil
}
func (n float32Numeric) Log(a, b DynamicValue) (DynamicValue, error) {
	x, err := n.unwrap(a)
	if err != nil {
		return nil, err
	}
	y, err := n.unwrap(b)
	if err != nil {
		return nil, err
	}
	if x <= 0 || y <= 0 || y == 1 {
		return nil, newArithmeticError("logarithm domain error")
	}
	return n.wrap(float32(math.Log(float64(x)) / math.Log(float64(y)))), nil
}
func (n float32Numeric) Floor(a DynamicValue) (DynamicValue, error) {
	x, err := n.unwrap(a)
	if err != nil {
		return nil, err
	}
	return n.wrap(float32(math.Floor(float64(x)))), nil
}
func (n float32Numeric) Ceil(a DynamicValue) (DynamicValue, error) {
	x, err := n.unwrap(a)
	if err != nil {
		return nil, err
	}
	return n.wrap(float32(math.Ceil(float64(x)))), nil
}
func (n float32Numeric) Round(a DynamicValue) (DynamicValue, error) {
	x, err := n.unwrap(a)
	if err != nil {
		return nil, err
	}
	return n.wrap(float32(math.Round(float64(x)))), nil
}

// --- float64 (Double) ---

type float64Numeric struct{}

func (float64Numeric) Kind() NumericKind { return NumericDouble }
func (float64Numeric) Schema() Schema    { return PrimitiveSchema{Tag: Double} }

func (n float64Numeric) unwrap(v DynamicValue) (float64, error) {
	p, ok := v.(Primitive)
	if !ok || p.Tag != Double {
		return 0, fmt.Errorf("expected a Double primitive, got %T", v)
	}
	return p.Raw.(float64), nil
}
func (n float64Numeric) wrap(v float64) DynamicValue { return Primitive{Tag: Double, Raw: v} }

func (n float64Numeric) binary(a, b DynamicValue, f func(x, y float64) float64) (DynamicValue, error) {
	x, err := n.unwrap(a)
	if err != nil {
		return nil, err
	}
	y, err := n.unwrap(b)
	if err != nil {
		return nil, err
	}
	return n.wrap(f(x, y)), nil
}

func (n float64Numeric) Add(a, b DynamicValue) (DynamicValue, error) {
	return n.binary(a, b, func(x, y float64) float64 { return x + y })
}
func (n float64Numeric) Sub(a, b DynamicValue) (DynamicValue, error) {
	return n.binary(a, b, func(x, y float64) float64 { return x - y })
}
func (n float64Numeric) Mul(a, b DynamicValue) (DynamicValue, error) {
	return n.binary(a, b, func(x, y float64) float64 { return x * y })
}
func (n float64Numeric) Div(a, b DynamicValue) (DynamicValue, error) {
	x, err := n.unwrap(a)
	if err != nil {
		return nil, err
	}
	y, err := n.unwrap(b)
	if err != nil {
		return nil, err
	}
	if y == 0 {
		return nil, newArithmeticError("division by zero")
	}
	return n.wrap(x / y), nil
}
func (n float64Numeric) Mod(a, b DynamicValue) (DynamicValue, error) {
	return n.binary(a, b, math.Mod)
}
func (n float64Numeric) Neg(a DynamicValue) (DynamicValue, error) {
	x, err := n.unwrap(a)
	if err != nil {
		return nil, err
	}
	return n.wrap(-x), nil
}
func (n float64Numeric) Abs(a DynamicValue) (DynamicValue, error) {
	x, err := n.unwrap(a)
	if err != nil {
		return nil, err
	}
	return n.wrap(math.Abs(x)), nil
}
func (n float64Numeric) Min(a, b DynamicValue) (DynamicValue, error) {
	return n.binary(a, b, math.Min)
}
func (n float64Numeric) Max(a, b DynamicValue) (DynamicValue, error) {
	return n.binary(a, b, math.Max)
}
func (n float64Numeric) Pow(a, b DynamicValue) (DynamicValue, error) {
	return n.binary(a, b, math.Pow)
}
func (n float64Numeric) Root(a, b DynamicValue) (DynamicValue, error) {
	x, err := n.unwrap(a)
	if err != nil {
		return nil, err
	}
	y, err := n.unwrap(b)
	if err != nil {
		return nil, err
	}
	if y == 0 {
		return nil, newArithmeticError("zeroth root")
	}
	return n.wrap(math.Pow(x, 1/y)), nil
}
func (n float64Numeric) Log(a, b DynamicValue) (DynamicValue, error) {
	x, err := n.unwrap(a)
	if err != nil {
		return nil, err
	}
	y, err := n.unwrap(b)
	if err != nil {
		return nil, err
	}
	if x <= 0 || y <= 0 || y == 1 {
		return nil, newArithmeticError("logarithm domain error")
	}
	return n.wrap(math.Log(x) / math.Log(y)), nil
}
func (n float64Numeric) Floor(a DynamicValue) (DynamicValue, error) {
	x, err := n.unwrap(a)
	if err != nil {
		return nil, err
	}
	return n.wrap(math.Floor(x)), nil
}
func (n float64Numeric) Ceil(a DynamicValue) (DynamicValue, error) {
	x, err := n.unwrap(a)
	if err != nil {
		return nil, err
	}
	return n.wrap(math.Ceil(x)), nil
}
func (n float64Numeric) Round(a DynamicValue) (DynamicValue, error) {
	x, err := n.unwrap(a)
	if err != nil {
		return nil, err
	}
	return n.wrap(math.Round(x)), nil
}

// --- decimal.Decimal (BigDecimal) ---

type bigDecimalNumeric struct{}

func (bigDecimalNumeric) Kind() NumericKind { return NumericBigDecimal }
func (bigDecimalNumeric) Schema() Schema    { return PrimitiveSchema{Tag: BigDecimal} }

func (n bigDecimalNumeric) unwrap(v DynamicValue) (decimal.Decimal, error) {
	p, ok := v.(Primitive)
	if !ok || p.Tag != BigDecimal {
		return decimal.Decimal{}, fmt.Errorf("expected a BigDecimal primitive, got %T", v)
	}
	return p.Raw.(decimal.Decimal), nil
}
func (n bigDecimalNumeric) wrap(v decimal.Decimal) DynamicValue {
	return Primitive{Tag: BigDecimal, Raw: v}
}

func (n bigDecimalNumeric) binary(a, b DynamicValue, f func(x, y decimal.Decimal) decimal.Decimal) (DynamicValue, error) {
	x, err := n.unwrap(a)
	if err != nil {
		return nil, err
	}
	y, err := n.unwrap(b)
	if err != nil {
		return nil, err
	}
	return n.wrap(f(x, y)), nil
}

func (n bigDecimalNumeric) Add(a, b DynamicValue) (DynamicValue, error) {
	return n.binary(a, b, decimal.Decimal.Add)
}
func (n bigDecimalNumeric) Sub(a, b DynamicValue) (DynamicValue, error) {
	return n.binary(a, b, decimal.Decimal.Sub)
}
func (n bigDecimalNumeric) Mul(a, b DynamicValue) (DynamicValue, error) {
	return n.binary(a, b, decimal.Decimal.Mul)
}
func (n bigDecimalNumeric) Div(a, b DynamicValue) (DynamicValue, error) {
	x, err := n.unwrap(a)
	if err != nil {
		return nil, err
	}
	y, err := n.unwrap(b)
	if err != nil {
		return nil, err
	}
	if y.IsZero() {
		return nil, newArithmeticError("division by zero")
	}
	return n.wrap(x.Div(y)), nil
}
func (n bigDecimalNumeric) Mod(a, b DynamicValue) (DynamicValue, error) {
	x, err := n.unwrap(a)
	if err != nil {
		return nil, err
	}
	y, err := n.unwrap(b)
	if err != nil {
		return nil, err
	}
	if y.IsZero() {
		return nil, newArithmeticError("modulus by zero")
	}
	return n.wrap(x.Mod(y)), nil
}
func (n bigDecimalNumeric) Neg(a DynamicValue) (DynamicValue, error) {
	x, err := n.unwrap(a)
	if err != nil {
		return nil, err
	}
	return n.wrap(x.Neg()), nil
}
func (n bigDecimalNumeric) Abs(a DynamicValue) (DynamicValue, error) {
	x, err := n.unwrap(a)
	if err != nil {
		return nil, err
	}
	return n.wrap(x.Abs()), nil
}
func (n bigDecimalNumeric) Min(a, b DynamicValue) (DynamicValue, error) {
	x, err := n.unwrap(a)
	if err != nil {
		return nil, err
	}
	y, err := n.unwrap(b)
	if err != nil {
		return nil, err
	}
	if x.Cmp(y) <= 0 {
		return n.wrap(x), nil
	}
	return n.wrap(y), nil
}
func (n bigDecimalNumeric) Max(a, b DynamicValue) (DynamicValue, error) {
	x, err := n.unwrap(a)
	if err != nil {
		return nil, err
	}
	y, err := n.unwrap(b)
	if err != nil {
		return nil, err
	}
	if x.Cmp(y) >= 0 {
		return n.wrap(x), nil
	}
	return n.wrap(y), nil
}
func (n bigDecimalNumeric) Pow(a, b DynamicValue) (DynamicValue, error) {
	x, err := n.unwrap(a)
	if err != nil {
		return nil, err
	}
	y, err := n.unwrap(b)
	if err != nil {
		return nil, err
	}
	return n.wrap(x.Pow(y)), nil
}
func (n bigDecimalNumeric) Root(a, b DynamicValue) (DynamicValue, error) {
	x, err := n.unwrap(a)
	if err != nil {
		return nil, err
	}
	y, err := n.unwrap(b)
	if err != nil {
		return nil, err
	}
	if y.IsZero() {
		return nil, newArithmeticError("zeroth root")
	}
	fx, _ := x.Float64()
	fy, _ := y.Float64()
	return n.wrap(decimal.NewFromFloat(math.Pow(fx, 1/fy))), nil
}
func (n bigDecimalNumeric) Log(a, b DynamicValue) (DynamicValue, error) {
	x, err := n.unwrap(a)
	if err != nil {
		return nil, err
	}
	y, err := n.unwrap(b)
	if err != nil {
		return nil, err
	}
	if x.Sign() <= 0 || y.Sign() <= 0 {
		return nil, newArithmeticError("logarithm domain error")
	}
	fx, _ := x.Float64()
	fy, _ := y.Float64()
	return n.wrap(decimal.NewFromFloat(math.Log(fx) / math.Log(fy))), nil
}
func (n bigDecimalNumeric) Floor(a DynamicValue) (DynamicValue, error) {
	x, err := n.unwrap(a)
	if err != nil {
		return nil, err
	}
	return n.wrap(x.Floor()), nil
}
func (n bigDecimalNumeric) Ceil(a DynamicValue) (DynamicValue, error) {
	x, err := n.unwrap(a)
	if err != nil {
		return nil, err
	}
	return n.wrap(x.Ceil()), nil
}
func (n bigDecimalNumeric) Round(a DynamicValue) (DynamicValue, error) {
	x, err := n.unwrap(a)
	if err != nil {
		return nil, err
	}
	return n.wrap(x.Round(0)), nil
}
