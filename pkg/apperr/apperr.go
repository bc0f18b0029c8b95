package apperr

import (
	"errors"
	"fmt"
)

// Kind classifies a business error so the transport layer can pick a
// stable status for it.
type Kind int

const (
	KindUnexpected Kind = iota
	KindValidate
	KindNotFound
	KindConflict
)

// Error carries a user-facing and a developer-facing message alongside
// its kind. UserMsg is safe to show to end users; DevMsg may name codes,
// ids and rule details.
type Error struct {
	Kind    Kind
	UserMsg string
	DevMsg  string
}

func (e *Error) Error() string {
	return e.DevMsg
}

func Validate(msg string) *Error {
	return &Error{Kind: KindValidate, UserMsg: msg, DevMsg: msg}
}

func NotFoundf(format string, args ...any) *Error {
	msg := fmt.Sprintf(format, args...)
	return &Error{Kind: KindNotFound, UserMsg: msg, DevMsg: msg}
}

func Conflictf(format string, args ...any) *Error {
	msg := fmt.Sprintf(format, args...)
	return &Error{Kind: KindConflict, UserMsg: msg, DevMsg: msg}
}

// KindOf extracts the kind from err, defaulting to KindUnexpected for
// anything that is not an *Error (store failures and the like).
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnexpected
}

// Messages returns the user and developer messages for err. Unexpected
// errors get a generic user message so internals never leak.
func Messages(err error) (userMsg, devMsg string) {
	var e *Error
	if errors.As(err, &e) {
		return e.UserMsg, e.DevMsg
	}
	return "Something went wrong, please try again later", err.Error()
}
