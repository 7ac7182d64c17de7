package core

import (
	"errors"
	"fmt"
)

// Code identifies an expected failure. Codes are stable and safe to show to
// callers; messages are not.
type Code string

// Batch and row codes.
const (
	CodeInvalidInputType Code = "INVALID_INPUT_TYPE"
	CodeEmptyInput       Code = "EMPTY_INPUT"
	CodeInvalidRowData   Code = "INVALID_ROW_DATA"
	CodeInvalidBaseItem  Code = "INVALID_BASE_ITEM"
	CodeNoCtnData        Code = "NO_CTN_DATA"
	CodeInvalidQuantity  Code = "INVALID_QUANTITY"
	CodeInvalidPallet    Code = "INVALID_PALLET"
	CodeCtnExpansion     Code = "CTN_EXPANSION_ERROR"
	CodeIncompleteGroup  Code = "INCOMPLETE_GROUP"
	CodeNoProcessedItems Code = "NO_PROCESSED_ITEMS"
	CodeOutputValidation Code = "OUTPUT_VALIDATION_ERROR"
	CodeProcessingFailed Code = "PROCESSING_FAILED"
	CodeNoValidData      Code = "NO_VALID_DATA"
	CodeValidationFailed Code = "VALIDATION_FAILED"
	CodeUnexpected       Code = "ERR000"
)

// Range expander codes.
const (
	CodeInvalidInput        Code = "INVALID_INPUT"
	CodeInvalidRangeFormat  Code = "INVALID_RANGE_FORMAT"
	CodeInvalidRangeNumbers Code = "INVALID_RANGE_NUMBERS"
	CodeInvalidRangeOrder   Code = "INVALID_RANGE_ORDER"
	CodeInvalidRangeValues  Code = "INVALID_RANGE_VALUES"
	CodeInvalidNumberFormat Code = "INVALID_NUMBER_FORMAT"
	CodeInvalidNumberValue  Code = "INVALID_NUMBER_VALUE"
	CodeRangeTooLarge       Code = "RANGE_TOO_LARGE"
)

// Error is an expected, coded failure.
type Error struct {
	Code    Code
	Message string
	Err     error // Underlying cause, if any
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches any *Error with the same code, so callers can write
// errors.Is(err, &Error{Code: CodeEmptyInput}).
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return t.Code == e.Code
}

// newError builds an *Error with a formatted message.
func newError(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// wrapError builds an *Error around cause.
func wrapError(code Code, cause error, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...), Err: cause}
}

// CodeOf returns the code of the outermost *Error in err's chain,
// CodeUnexpected for any other error, and "" for nil.
func CodeOf(err error) Code {
	if err == nil {
		return ""
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return CodeUnexpected
}
