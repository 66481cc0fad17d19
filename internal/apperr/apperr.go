package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Code identifies the class of failure so callers can tell retry-safe
// conditions apart from protocol bugs.
type Code string

const (
	CodeInvalidInput          Code = "invalid_input"
	CodeNotFound              Code = "not_found"
	CodeInvalidState          Code = "invalid_state"
	CodeSequenceMismatch      Code = "sequence_mismatch"
	CodeExhausted             Code = "question_bank_exhausted"
	CodeEvaluationUnavailable Code = "evaluation_unavailable"
)

type Error struct {
	Code    Code
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

func New(code Code, format string, args ...interface{}) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

func Wrap(code Code, err error, format string, args ...interface{}) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...), Err: err}
}

func InvalidInput(format string, args ...interface{}) *Error {
	return New(CodeInvalidInput, format, args...)
}

func NotFound(format string, args ...interface{}) *Error {
	return New(CodeNotFound, format, args...)
}

func InvalidState(format string, args ...interface{}) *Error {
	return New(CodeInvalidState, format, args...)
}

func SequenceMismatch(format string, args ...interface{}) *Error {
	return New(CodeSequenceMismatch, format, args...)
}

func Exhausted(format string, args ...interface{}) *Error {
	return New(CodeExhausted, format, args...)
}

func EvaluationUnavailable(err error, format string, args ...interface{}) *Error {
	return Wrap(CodeEvaluationUnavailable, err, format, args...)
}

// CodeOf returns the Code of err, or "" when err is not an apperr.Error.
func CodeOf(err error) Code {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Code
	}
	return ""
}

func Is(err error, code Code) bool {
	return CodeOf(err) == code
}

// Retryable reports whether the caller may safely retry the same step.
// Evaluator outages and bank exhaustion are transient; everything else
// indicates a client or protocol bug and must not be retried verbatim.
func Retryable(err error) bool {
	switch CodeOf(err) {
	case CodeEvaluationUnavailable, CodeExhausted:
		return true
	}
	return false
}

// HTTPStatus maps the taxonomy onto response codes.
func HTTPStatus(err error) int {
	switch CodeOf(err) {
	case CodeInvalidInput:
		return http.StatusBadRequest
	case CodeNotFound:
		return http.StatusNotFound
	case CodeInvalidState, CodeSequenceMismatch:
		return http.StatusConflict
	case CodeExhausted, CodeEvaluationUnavailable:
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}
