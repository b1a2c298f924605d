// ═══════════════════════════════════════════════════════════════════════════
// ERROR TAXONOMY
// ═══════════════════════════════════════════════════════════════════════════
//
// spec.md §7 separates input errors (fail fast), structural stalls (not
// errors at all), runaway (fatal, but whatever Result accumulated is still
// returned), and invariant violations (programming bugs, never
// representable as a recoverable error — see invariants.go). SimError
// models input errors and runaway as a single Go error type distinguished by
// Kind, following the structured-error-with-Op-and-wrapped-cause pattern
// this codebase's ambient conventions use elsewhere for external failures.

package tomasulo

import "fmt"

// ErrorKind distinguishes why a SimError was raised.
type ErrorKind int

const (
	// InputError means NewEngine rejected its Config. Surfaced before the
	// engine ever starts. The loader package reports unreadable or
	// malformed program and memory files with its own plain errors.
	InputError ErrorKind = iota
	// RunawayError means cycle_num exceeded Config.MaxCycles. The
	// partially-accumulated Result is still attached and usable.
	RunawayError
)

func (k ErrorKind) String() string {
	switch k {
	case InputError:
		return "input error"
	case RunawayError:
		return "runaway"
	default:
		return "unknown"
	}
}

// SimError is the structured error the engine returns.
// Result is only populated for RunawayError: the run didn't finish cleanly,
// but whatever state had accumulated by MaxCycles is still valid and worth
// reporting (spec.md §7).
type SimError struct {
	Kind   ErrorKind
	Op     string // e.g. "NewEngine", "Run"
	Msg    string
	Inner  error
	Result *Result
}

func (e *SimError) Error() string {
	if e.Inner != nil {
		return fmt.Sprintf("tomasulo: %s (%s): %s: %v", e.Op, e.Kind, e.Msg, e.Inner)
	}
	return fmt.Sprintf("tomasulo: %s (%s): %s", e.Op, e.Kind, e.Msg)
}

// Unwrap exposes the wrapped cause for errors.Is/errors.As.
func (e *SimError) Unwrap() error { return e.Inner }

// Is supports errors.Is(err, SimError{Kind: ...}) style comparisons against
// a kind-only sentinel.
func (e *SimError) Is(target error) bool {
	te, ok := target.(*SimError)
	if !ok {
		return false
	}
	return e.Kind == te.Kind
}

func inputErrorf(op, format string, args ...any) *SimError {
	return &SimError{Kind: InputError, Op: op, Msg: fmt.Sprintf(format, args...)}
}

func wrapInputError(op string, err error) *SimError {
	return &SimError{Kind: InputError, Op: op, Msg: "failed", Inner: err}
}

func runawayError(op string, cycles int, partial Result) *SimError {
	return &SimError{Kind: RunawayError, Op: op, Msg: fmt.Sprintf("exceeded max_cycles (%d)", cycles), Result: &partial}
}
