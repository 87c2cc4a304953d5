package remote

import "go.flow.remotecore.io/remote/schema"

// Remote lifts a DynamicValue already known to be well-formed against s
// into a Literal. Construction does not re-check well-formedness; callers
// that build DynamicValues by hand should run schema.CheckWellFormed
// first.
func Remote(v schema.DynamicValue, s schema.Schema) Literal {
	return Literal{Dyn: Dynamic{Schema: s, Value: v}}
}

// Bool, Int32, Int64, Str lift common Go primitives directly, since most
// callers reach for a primitive literal far more often than a raw
// DynamicValue.
func Bool(b bool) Literal {
	return Remote(schema.Primitive{Tag: schema.Bool, Raw: b}, schema.PrimitiveSchema{Tag: schema.Bool})
}

func Int32(n int32) Literal {
	return Remote(schema.Primitive{Tag: schema.Int, Raw: n}, schema.PrimitiveSchema{Tag: schema.Int})
}

func Int64(n int64) Literal {
	return Remote(schema.Primitive{Tag: schema.Long, Raw: n}, schema.PrimitiveSchema{Tag: schema.Long})
}

func Str(s string) Literal {
	return Remote(schema.Primitive{Tag: schema.String, Raw: s}, schema.PrimitiveSchema{Tag: schema.String})
}

func Unit() Literal { return Remote(schema.UnitValue, schema.PrimitiveSchema{Tag: schema.Unit}) }

// ChronoUnitOf lifts a chrono-unit name ("Seconds", "Minutes", "Hours",
// "Days") for use with InstantTruncate and DurationFromAmount.
func ChronoUnitOf(unit string) Literal {
	return Remote(
		schema.Primitive{Tag: schema.ChronoUnit, Raw: schema.PrimitiveTag(unit)},
		schema.PrimitiveSchema{Tag: schema.ChronoUnit},
	)
}

// NewAdd, NewSub, ... are the one-to-one operator builders, parameterised
// by the Numeric instance the operands share.
func NewAdd(kind schema.NumericKind, l, r Expression) Add {
	return Add{binaryNumeric{Instance: kind, L: l, R: r}}
}
func NewSub(kind schema.NumericKind, l, r Expression) Sub {
	return Sub{binaryNumeric{Instance: kind, L: l, R: r}}
}
func NewMul(kind schema.NumericKind, l, r Expression) Mul {
	return Mul{binaryNumeric{Instance: kind, L: l, R: r}}
}
func NewDiv(kind schema.NumericKind, l, r Expression) Div {
	return Div{binaryNumeric{Instance: kind, L: l, R: r}}
}
func NewMod(kind schema.NumericKind, l, r Expression) ModInt {
	return ModInt{binaryNumeric{Instance: kind, L: l, R: r}}
}
func NewPow(kind schema.NumericKind, l, r Expression) Pow {
	return Pow{binaryNumeric{Instance: kind, L: l, R: r}}
}
func NewRoot(kind schema.NumericKind, l, r Expression) Root {
	return Root{binaryNumeric{Instance: kind, L: l, R: r}}
}
func NewLog(kind schema.NumericKind, l, r Expression) Log {
	return Log{binaryNumeric{Instance: kind, L: l, R: r}}
}
func NewMin(kind schema.NumericKind, l, r Expression) Min {
	return Min{binaryNumeric{Instance: kind, L: l, R: r}}
}
func NewMax(kind schema.NumericKind, l, r Expression) Max {
	return Max{binaryNumeric{Instance: kind, L: l, R: r}}
}
func NewNeg(kind schema.NumericKind, e Expression) Neg {
	return Neg{unaryNumeric{Instance: kind, E: e}}
}
func NewAbs(kind schema.NumericKind, e Expression) Abs {
	return Abs{unaryNumeric{Instance: kind, E: e}}
}
func NewFloor(kind schema.NumericKind, e Expression) Floor {
	return Floor{unaryNumeric{Instance: kind, E: e}}
}
func NewCeil(kind schema.NumericKind, e Expression) Ceil {
	return Ceil{unaryNumeric{Instance: kind, E: e}}
}
func NewRound(kind schema.NumericKind, e Expression) Round {
	return Round{unaryNumeric{Instance: kind, E: e}}
}

func NewSin(kind schema.FractionalKind, e Expression) Sin {
	return Sin{unaryFractional{Instance: kind, E: e}}
}
func NewAsin(kind schema.FractionalKind, e Expression) Asin {
	return Asin{unaryFractional{Instance: kind, E: e}}
}
func NewAtan(kind schema.FractionalKind, e Expression) Atan {
	return Atan{unaryFractional{Instance: kind, E: e}}
}
