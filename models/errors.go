package models

import (
	"errors"
	"fmt"
)

// Code is a machine-readable error code.
type Code string

const (
	CodeDataLoad       Code = "DATA_LOAD"
	CodeEmptyAggregate Code = "EMPTY_AGGREGATE"
	CodeBadRequest     Code = "BAD_REQUEST"
)

// Error is a domain error with a code and message.
type Error struct {
	Code    Code   `json:"code"`
	Message string `json:"message"`
	cause   error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.cause)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.cause
}

// Is matches any *Error carrying the same code.
func (e *Error) Is(target error) bool {
	var t *Error
	if errors.As(target, &t) {
		return e.Code == t.Code
	}
	return false
}

// Sentinels for errors.Is checks.
var (
	ErrDataLoad       = &Error{Code: CodeDataLoad, Message: "data load failed"}
	ErrEmptyAggregate = &Error{Code: CodeEmptyAggregate, Message: "aggregate over zero rows"}
	ErrBadRequest     = &Error{Code: CodeBadRequest, Message: "bad request"}
)

// DataLoad reports a dataset that is missing, malformed or wrongly encoded.
func DataLoad(path string, cause error, format string, args ...any) *Error {
	return &Error{
		Code:    CodeDataLoad,
		Message: fmt.Sprintf("load %s: %s", path, fmt.Sprintf(format, args...)),
		cause:   cause,
	}
}

// EmptyAggregate reports an aggregation that has no defined result on zero rows.
func EmptyAggregate(op string) *Error {
	return &Error{
		Code:    CodeEmptyAggregate,
		Message: fmt.Sprintf("%s: no rows to aggregate", op),
	}
}

// BadRequest reports invalid user input on an outer surface.
func BadRequest(format string, args ...any) *Error {
	return &Error{Code: CodeBadRequest, Message: fmt.Sprintf(format, args...)}
}

// SelectionWarning is shown instead of charts when the selection is incomplete.
// It is a recoverable state, not an error.
type SelectionWarning struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}
