// Package engineerr implements the engine's error taxonomy (spec §7): a
// closed set of error kinds, each a Code value carried by one typed Error
// struct rather than a sentinel string or an ad-hoc error string.
package engineerr

import "fmt"

// Code identifies one of the fixed error kinds the engine can surface.
type Code string

const (
	// IllegalAction: syntactically valid action, not permissible under
	// the current rules state (wrong phase, unaffordable cost, illegal
	// target, already attacked, wrong player priority).
	IllegalAction Code = "illegal_action"
	// InvalidState: an internal invariant was found violated. Fatal for
	// the current game instance.
	InvalidState Code = "invalid_state"
	// RulesViolation: a soft rule was broken by a resolver (e.g. zone
	// cap overflow); the offending mutation is rolled back.
	RulesViolation Code = "rules_violation"
	// TargetLost: a required target became illegal by resolution time.
	TargetLost Code = "target_lost"
	// LoopDetected: the loop guard forced draw resolution. Not strictly
	// an error but surfaced through the same channel per §6.
	LoopDetected Code = "loop_detected"
	// NotSetup: an operation was attempted before Setup completed.
	NotSetup Code = "not_setup"
	// AlreadyOver: an operation was attempted after the game ended.
	AlreadyOver Code = "already_over"
)

// Fatal reports whether errors of this code leave the engine unusable
// (§7: "Invariant violations are fatal for the current game instance").
func (c Code) Fatal() bool {
	return c == InvalidState
}

// Error is the engine's structured error value. It always carries a Code
// so the ring buffer and event mirror (§4.8) can filter without a type
// switch, and it wraps an underlying cause when one exists.
type Error struct {
	Code    Code
	Message string
	Cause   error
	Context map[string]any
}

// New creates an Error with no wrapped cause.
func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Newf creates an Error with a formatted message.
func Newf(code Code, format string, args ...any) *Error {
	return New(code, fmt.Sprintf(format, args...))
}

// Wrap creates an Error that wraps an underlying cause.
func Wrap(code Code, message string, cause error) *Error {
	return &Error{Code: code, Message: message, Cause: cause}
}

// WithContext attaches debug-mode context to the error (§4.8: "a
// debug-mode flag that enriches events with context objects") and
// returns the same error for chaining at the construction site.
func (e *Error) WithContext(key string, value any) *Error {
	if e.Context == nil {
		e.Context = make(map[string]any, 1)
	}
	e.Context[key] = value
	return e
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap exposes the wrapped cause to errors.Is / errors.As.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Of extracts an *Error from any error value, if one is present anywhere
// in its chain.
func Of(err error) (*Error, bool) {
	for err != nil {
		if ee, ok := err.(*Error); ok {
			return ee, true
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			break
		}
		err = u.Unwrap()
	}
	return nil, false
}
