package schema

import (
	"math"

	"github.com/shopspring/decimal"
)

// FractionalKind is the closed selector for Fractional instances:
// Float, Double, or BigDecimal.
type FractionalKind string

const (
	FractionalFloat      FractionalKind = "Float"
	FractionalDouble     FractionalKind = "Double"
	FractionalBigDecimal FractionalKind = "BigDecimal"
)

// Fractional packs the transcendental operations for one fractional
// primitive instance. Sin/Asin/Atan are the initial set; others can be
// added analogously.
type Fractional interface {
	Kind() FractionalKind
	Schema() Schema
	Sin(a DynamicValue) (DynamicValue, error)
	Asin(a DynamicValue) (DynamicValue, error)
	Atan(a DynamicValue) (DynamicValue, error)
}

// FractionalInstance returns the fixed Fractional instance for kind.
func FractionalInstance(kind FractionalKind) (Fractional, error) {
	switch kind {
	case FractionalFloat:
		return float32Fractional{}, nil
	case FractionalDouble:
		return float64Fractional{}, nil
	case FractionalBigDecimal:
		return bigDecimalFractional{}, nil
	default:
		return nil, newArithmeticError("unknown fractional instance " + string(kind))
	}
}

type float32Fractional struct{}

func (float32Fractional) Kind() FractionalKind { return FractionalFloat }
func (float32Fractional) Schema() Schema       { return PrimitiveSchema{Tag: Float} }

func (f float32Fractional) unwrap(v DynamicValue) (float32, error) {
	return float32Numeric{}.unwrap(v)
}
func (f float32Fractional) wrap(v float32) DynamicValue { return float32Numeric{}.wrap(v) }

func (f float32Fractional) Sin(a DynamicValue) (DynamicValue, error) {
	x, err := f.unwrap(a)
	if err != nil {
		return nil, err
	}
	return f.wrap(float32(math.Sin(float64(x)))), nil
}
func (f float32Fractional) Asin(a DynamicValue) (DynamicValue, error) {
	x, err := f.unwrap(a)
	if err != nil {
		return nil, err
	}
	if x < -1 || x > 1 {
		return nil, newArithmeticError("asin domain error")
	}
	return f.wrap(float32(math.Asin(float64(x)))), nil
}
func (f float32Fractional) Atan(a DynamicValue) (DynamicValue, error) {
	x, err := f.unwrap(a)
	if err != nil {
		return nil, err
	}
	return f.wrap(float32(math.Atan(float64(x)))), nil
}

type float64Fractional struct{}

func (float64Fractional) Kind() FractionalKind { return FractionalDouble }
func (float64Fractional) Schema() Schema       { return PrimitiveSchema{Tag: Double} }

func (f float64Fractional) unwrap(v DynamicValue) (float64, error) {
	return float64Numeric{}.unwrap(v)
}
func (f float64Fractional) wrap(v float64) DynamicValue { return float64Numeric{}.wrap(v) }

func (f float64Fractional) Sin(a DynamicValue) (DynamicValue, error) {
	x, err := f.unwrap(a)
	if err != nil {
		return nil, err
	}
	return f.wrap(math.Sin(x)), nil
}
func (f float64Fractional) Asin(a DynamicValue) (DynamicValue, error) {
	x, err := f.unwrap(a)
	if err != nil {
		return nil, err
	}
	if x < -1 || x > 1 {
		return nil, newArithmeticError("asin domain error")
	}
	return f.wrap(math.Asin(x)), nil
}
func (f float64Fractional) Atan(a DynamicValue) (DynamicValue, error) {
	x, err := f.unwrap(a)
	if err != nil {
		return nil, err
	}
	return f.wrap(math.Atan(x)), nil
}

type bigDecimalFractional struct{}

func (bigDecimalFractional) Kind() FractionalKind { return FractionalBigDecimal }
func (bigDecimalFractional) Schema() Schema       { return PrimitiveSchema{Tag: BigDecimal} }

func (f bigDecimalFractional) unwrap(v DynamicValue) (decimal.Decimal, error) {
	return bigDecimalNumeric{}.unwrap(v)
}
func (f bigDecimalFractional) wrap(v decimal.Decimal) DynamicValue {
	return bigDecimalNumeric{}.wrap(v)
}

func (f bigDecimalFractional) Sin(a DynamicValue) (DynamicValue, error) {
	x, err := f.unwrap(a)
	if err != nil {
		return nil, err
	}
	fx, _ := x.Float64()
	return f.wrap(decimal.NewFromFloat(math.Sin(fx))), nil
}
func (f bigDecimalFractional) Asin(a DynamicValue) (DynamicValue, error) {
	x, err := f.unwrap(a)
	if err != nil {
		return nil, err
	}
	fx, _ := x.Float64()
	if fx < -1 || fx > 1 {
		return nil, newArithmeticError("asin domain error")
	}
	return f.wrap(decimal.NewFromFloat(math.Asin(fx))), nil
}
func (f bigDecimalFractional) Atan(a DynamicValue) (DynamicValue, error) {
	x, err := f.unwrap(a)
	if err != nil {
		return nil, err
	}
	fx, _ := x.Float64()
	return f.wrap(decimal.NewFromFloat(math.Atan(fx))), nil
}
