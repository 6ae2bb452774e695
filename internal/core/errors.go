package core

import (
	"errors"
	"fmt"
)

var (
	ErrMissingVerb       = errors.New("need at least 1 parameter")
	ErrMissingArgument   = errors.New("this action needs two parameters")
	ErrNotANumber        = errors.New("is not a number")
	ErrUnknownAction     = errors.New("unknown action, please refer to the 'help' action")
	ErrUnknownFilter     = errors.New("unknown filter, expected one of all, todo, done, drop")
	ErrStoreUnavailable  = errors.New("tasks store unavailable")
	ErrUnableToAddTask   = errors.New("unable to add task")
	ErrInvalidTaskNumber = errors.New("invalid task number")
)

// Error is a user-facing failure of a single kind.
// The message never includes the underlying cause; it is kept for errors.Is
// and for diagnostics only.
type Error struct {
	Kind  error
	Value string
	Err   error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Kind == ErrNotANumber {
		return fmt.Sprintf("%q %s", e.Value, e.Kind.Error())
	}
	if e.Value == "" {
		return e.Kind.Error()
	}
	switch e.Kind {
	case ErrInvalidTaskNumber:
		return fmt.Sprintf("%s: %s", e.Kind.Error(), e.Value)
	default:
		return fmt.Sprintf("%s (%q)", e.Kind.Error(), e.Value)
	}
}

func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// Fail returns an *Error of the given kind.
func Fail(kind error, value string, cause error) error {
	return &Error{Kind: kind, Value: value, Err: cause}
}

// IsParseError reports whether err came from argument parsing rather than the store.
func IsParseError(err error) bool {
	return errors.Is(err, ErrMissingVerb) ||
		errors.Is(err, ErrMissingArgument) ||
		errors.Is(err, ErrNotANumber) ||
		errors.Is(err, ErrUnknownAction) ||
		errors.Is(err, ErrUnknownFilter)
}
