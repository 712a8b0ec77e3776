package config

import (
	"errors"
	"fmt"
)

// Reason identifies which configuration rule a value violated.
type Reason string

const (
	ReasonInvalidMode    Reason = "InvalidMode"
	ReasonMissingBackend Reason = "MissingBackend"
	ReasonSecretTooShort Reason = "SecretTooShort"
)

// Error is a configuration failure. Components map it to a Blocked status.
type Error struct {
	Reason  Reason
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func Errorf(reason Reason, format string, args ...any) *Error {
	return &Error{Reason: reason, Message: fmt.Sprintf(format, args...)}
}

// ReasonOf extracts the Reason from err, or empty when err is not a config error.
func ReasonOf(err error) Reason {
	var e *Error
	if errors.As(err, &e) {
		return e.Reason
	}
	return ""
}
