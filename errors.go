package remote

import "fmt"

// ErrorKind tags the flat, stable, machine-readable error taxonomy. Every
// evaluator failure folds into a single EvalError distinguished by Kind,
// so callers classify failures by tag rather than by message text.
type ErrorKind string

const (
	// KindUnbound: a Variable referenced a name absent from the RemoteContext.
	KindUnbound ErrorKind = "Unbound"
	// KindTypeMismatch: a schema did not match during narrowing or comparison.
	KindTypeMismatch ErrorKind = "TypeMismatch"
	// KindIndexOutOfRange: a tuple access (or similar) index was out of bounds.
	KindIndexOutOfRange ErrorKind = "IndexOutOfRange"
	// KindBadShape: a DynamicValue did not match its carrying schema.
	KindBadShape ErrorKind = "BadShape"
	// KindArithmeticError: divide-by-zero, overflow, or a domain error in
	// Log/Root.
	KindArithmeticError ErrorKind = "ArithmeticError"
	// KindParseError: Instant.parse/Duration.parse failure.
	KindParseError ErrorKind = "ParseError"
	// KindIterationDiverged: Iterate exceeded a configured bound. The core
	// never raises this itself (Iterate has no built-in bound); it exists
	// for a caller that wraps evaluation with its own step counter.
	KindIterationDiverged ErrorKind = "IterationDiverged"
	// KindEvaluationFailed is the catch-all, used only when none of the
	// above fits.
	KindEvaluationFailed ErrorKind = "EvaluationFailed"
)

// EvalError is the evaluator's single error type. Msg carries only a
// human-readable reason; nothing beyond Kind and Msg is part of the
// public contract.
type EvalError struct {
	Kind ErrorKind
	Msg  string
	// Wrapped, if non-nil, is the underlying cause (e.g. a context
	// cancellation, or an externalized RemoteContext's store error).
	Wrapped error
}

func (e *EvalError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Msg, e.Wrapped)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
}

func (e *EvalError) Unwrap() error { return e.Wrapped }

func unbound(name Name) error {
	return &EvalError{Kind: KindUnbound, Msg: fmt.Sprintf("variable %q is not bound", name)}
}

func typeMismatch(expected, actual fmt.Stringer) error {
	return &EvalError{
		Kind: KindTypeMismatch,
		Msg:  fmt.Sprintf("expected schema %s, got %s", expected, actual),
	}
}

func indexOutOfRange(n int) error {
	return &EvalError{Kind: KindIndexOutOfRange, Msg: fmt.Sprintf("index %d is out of range", n)}
}

func badShape(msg string) error {
	return &EvalError{Kind: KindBadShape, Msg: msg}
}

func arithmeticError(cause error) error {
	return &EvalError{Kind: KindArithmeticError, Msg: "arithmetic operation failed", Wrapped: cause}
}

func parseError(cause error) error {
	return &EvalError{Kind: KindParseError, Msg: "parse failed", Wrapped: cause}
}

func evaluationFailed(format string, args ...any) error {
	return &EvalError{Kind: KindEvaluationFailed, Msg: fmt.Sprintf(format, args...)}
}
