package vault

import (
	"errors"
	"fmt"

	"yieldpool/core"
)

// Flag error flag
type Flag int

const (
	// FlagNoisy rejected request worth logging at info level
	FlagNoisy Flag = 1 << iota
	// FlagFatal invariant violation, the operation must be aborted
	FlagFatal
)

// Error rejected operation
type Error struct {
	Code core.ErrorCode
	Msg  string
	Flag Flag
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s (%s)", e.Msg, e.Code)
}

// Unwrap make errors.Is work against core.ErrorCode
func (e *Error) Unwrap() error {
	return e.Code
}

// Require return an *Error with code when condition is false
func Require(condition bool, code core.ErrorCode, msg string, flags ...Flag) error {
	if condition {
		return nil
	}

	err := &Error{Code: code, Msg: msg}
	for _, f := range flags {
		err.Flag |= f
	}

	return err
}

// IsFlag check if err carries flag
func IsFlag(err error, flag Flag) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Flag&flag == flag
	}

	return false
}

// IsFatal check if err is an invariant violation
func IsFatal(err error) bool {
	return IsFlag(err, FlagFatal)
}

// CodeOf error code carried by err, ErrUnknown if none
func CodeOf(err error) core.ErrorCode {
	var code core.ErrorCode
	if errors.As(err, &code) {
		return code
	}

	return core.ErrUnknown
}
