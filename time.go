package remote

import (
	"fmt"

	"go.flow.remotecore.io/remote/schema"
)

func instantSchema() schema.Schema  { return schema.PrimitiveSchema{Tag: schema.Instant} }
func durationSchema() schema.Schema { return schema.PrimitiveSchema{Tag: schema.Duration} }
func longSchema() schema.Schema     { return schema.PrimitiveSchema{Tag: schema.Long} }

// InstantFromLong builds an Instant from epoch seconds.
type InstantFromLong struct{ Seconds Expression }

func (e InstantFromLong) Schema() schema.Schema  { return instantSchema() }
func (e InstantFromLong) Operands() []Expression { return []Expression{e.Seconds} }
func (e InstantFromLong) CaseName() string       { return "InstantFromLong" }
func (e InstantFromLong) String() string {
	return fmt.Sprintf("instantFromLong(%s)", e.Seconds)
}

// InstantFromLongs builds an Instant from (epoch seconds, nanosecond
// adjustment).
type InstantFromLongs struct{ Seconds, Nanos Expression }

func (e InstantFromLongs) Schema() schema.Schema  { return instantSchema() }
func (e InstantFromLongs) Operands() []Expression { return []Expression{e.Seconds, e.Nanos} }
func (e InstantFromLongs) CaseName() string       { return "InstantFromLongs" }
func (e InstantFromLongs) String() string {
	return fmt.Sprintf("instantFromLongs(%s, %s)", e.Seconds, e.Nanos)
}

// InstantFromMilli builds an Instant from epoch milliseconds.
type InstantFromMilli struct{ Millis Expression }

func (e InstantFromMilli) Schema() schema.Schema  { return instantSchema() }
func (e InstantFromMilli) Operands() []Expression { return []Expression{e.Millis} }
func (e InstantFromMilli) CaseName() string       { return "InstantFromMilli" }
func (e InstantFromMilli) String() string {
	return fmt.Sprintf("instantFromMilli(%s)", e.Millis)
}

// InstantFromString parses an ISO-8601 instant string.
type InstantFromString struct{ S Expression }

func (e InstantFromString) Schema() schema.Schema  { return instantSchema() }
func (e InstantFromString) Operands() []Expression { return []Expression{e.S} }
func (e InstantFromString) CaseName() string       { return "InstantFromString" }
func (e InstantFromString) String() string {
	return fmt.Sprintf("instantFromString(%s)", e.S)
}

// InstantToTuple yields (epochSec, nanoOfSec).
type InstantToTuple struct{ I Expression }

func (e InstantToTuple) Schema() schema.Schema {
	return schema.TupleSchema{A: longSchema(), B: schema.PrimitiveSchema{Tag: schema.Int}}
}
func (e InstantToTuple) Operands() []Expression  { return []Expression{e.I} }
func (e InstantToTuple) CaseName() string        { return "InstantToTuple" }
func (e InstantToTuple) String() string          { return fmt.Sprintf("instantToTuple(%s)", e.I) }

// InstantPlusDuration / InstantMinusDuration shift an Instant by a Duration.
type InstantPlusDuration struct{ I, D Expression }

func (e InstantPlusDuration) Schema() schema.Schema  { return instantSchema() }
func (e InstantPlusDuration) Operands() []Expression { return []Expression{e.I, e.D} }
func (e InstantPlusDuration) CaseName() string       { return "InstantPlusDuration" }
func (e InstantPlusDuration) String() string {
	return fmt.Sprintf("instantPlusDuration(%s, %s)", e.I, e.D)
}

type InstantMinusDuration struct{ I, D Expression }

func (e InstantMinusDuration) Schema() schema.Schema  { return instantSchema() }
func (e InstantMinusDuration) Operands() []Expression { return []Expression{e.I, e.D} }
func (e InstantMinusDuration) CaseName() string       { return "InstantMinusDuration" }
func (e InstantMinusDuration) String() string {
	return fmt.Sprintf("instantMinusDuration(%s, %s)", e.I, e.D)
}

// InstantTruncate truncates I to the given chrono unit (e.g. "Hours",
// "Minutes"), carried as a ChronoUnit-tagged primitive value rather than a
// Go const, since the unit set is itself part of the serializable
// expression tree.
type InstantTruncate struct {
	I    Expression
	Unit Expression
}

func (e InstantTruncate) Schema() schema.Schema  { return instantSchema() }
func (e InstantTruncate) Operands() []Expression { return []Expression{e.I, e.Unit} }
func (e InstantTruncate) CaseName() string       { return "InstantTruncate" }
func (e InstantTruncate) String() string {
	return fmt.Sprintf("instantTruncate(%s, %s)", e.I, e.Unit)
}

// DurationFromString parses an ISO-8601 duration string (e.g. "P1DT2H"),
// which time.ParseDuration cannot do.
type DurationFromString struct{ S Expression }

func (e DurationFromString) Schema() schema.Schema  { return durationSchema() }
func (e DurationFromString) Operands() []Expression { return []Expression{e.S} }
func (e DurationFromString) CaseName() string       { return "DurationFromString" }
func (e DurationFromString) String() string {
	return fmt.Sprintf("durationFromString(%s)", e.S)
}

// DurationBetweenInstants yields the Duration from Start to End.
type DurationBetweenInstants struct{ Start, End Expression }

func (e DurationBetweenInstants) Schema() schema.Schema  { return durationSchema() }
func (e DurationBetweenInstants) Operands() []Expression { return []Expression{e.Start, e.End} }
func (e DurationBetweenInstants) CaseName() string       { return "DurationBetweenInstants" }
func (e DurationBetweenInstants) String() string {
	return fmt.Sprintf("durationBetweenInstants(%s, %s)", e.Start, e.End)
}

// DurationFromBigDecimal splits a decimal count of seconds into
// (seconds, nanos) via ×10^9.
type DurationFromBigDecimal struct{ Seconds Expression }

func (e DurationFromBigDecimal) Schema() schema.Schema  { return durationSchema() }
func (e DurationFromBigDecimal) Operands() []Expression { return []Expression{e.Seconds} }
func (e DurationFromBigDecimal) CaseName() string       { return "DurationFromBigDecimal" }
func (e DurationFromBigDecimal) String() string {
	return fmt.Sprintf("durationFromBigDecimal(%s)", e.Seconds)
}

// DurationFromLong builds a Duration from whole seconds.
type DurationFromLong struct{ Seconds Expression }

func (e DurationFromLong) Schema() schema.Schema  { return durationSchema() }
func (e DurationFromLong) Operands() []Expression { return []Expression{e.Seconds} }
func (e DurationFromLong) CaseName() string       { return "DurationFromLong" }
func (e DurationFromLong) String() string {
	return fmt.Sprintf("durationFromLong(%s)", e.Seconds)
}

// DurationFromLongs builds a Duration from (seconds, nanosecond
// adjustment).
type DurationFromLongs struct{ Seconds, NanoAdj Expression }

func (e DurationFromLongs) Schema() schema.Schema  { return durationSchema() }
func (e DurationFromLongs) Operands() []Expression { return []Expression{e.Seconds, e.NanoAdj} }
func (e DurationFromLongs) CaseName() string       { return "DurationFromLongs" }
func (e DurationFromLongs) String() string {
	return fmt.Sprintf("durationFromLongs(%s, %s)", e.Seconds, e.NanoAdj)
}

// DurationFromAmount builds a Duration from a count in an explicit
// ChronoUnit (N units of Unit).
type DurationFromAmount struct {
	N    Expression
	Unit Expression
}

func (e DurationFromAmount) Schema() schema.Schema  { return durationSchema() }
func (e DurationFromAmount) Operands() []Expression { return []Expression{e.N, e.Unit} }
func (e DurationFromAmount) CaseName() string       { return "DurationFromAmount" }
func (e DurationFromAmount) String() string {
	return fmt.Sprintf("durationFromAmount(%s, %s)", e.N, e.Unit)
}

// DurationToLongs yields (sec, nanos).
type DurationToLongs struct{ D Expression }

func (e DurationToLongs) Schema() schema.Schema {
	return schema.TupleSchema{A: longSchema(), B: schema.PrimitiveSchema{Tag: schema.Int}}
}
func (e DurationToLongs) Operands() []Expression { return []Expression{e.D} }
func (e DurationToLongs) CaseName() string       { return "DurationToLongs" }
func (e DurationToLongs) String() string         { return fmt.Sprintf("durationToLongs(%s)", e.D) }

// DurationToLong yields the whole-second count.
type DurationToLong struct{ D Expression }

func (e DurationToLong) Schema() schema.Schema  { return longSchema() }
func (e DurationToLong) Operands() []Expression { return []Expression{e.D} }
func (e DurationToLong) CaseName() string       { return "DurationToLong" }
func (e DurationToLong) String() string         { return fmt.Sprintf("durationToLong(%s)", e.D) }

// DurationPlus / DurationMinus add or subtract two Durations.
type DurationPlus struct{ L, R Expression }

func (e DurationPlus) Schema() schema.Schema  { return durationSchema() }
func (e DurationPlus) Operands() []Expression { return []Expression{e.L, e.R} }
func (e DurationPlus) CaseName() string       { return "DurationPlus" }
func (e DurationPlus) String() string         { return fmt.Sprintf("(%s + %s)", e.L, e.R) }

type DurationMinus struct{ L, R Expression }

func (e DurationMinus) Schema() schema.Schema  { return durationSchema() }
func (e DurationMinus) Operands() []Expression { return []Expression{e.L, e.R} }
func (e DurationMinus) CaseName() string       { return "DurationMinus" }
func (e DurationMinus) String() string         { return fmt.Sprintf("(%s - %s)", e.L, e.R) }
