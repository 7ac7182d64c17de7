package core

// error_messages.go maps failures to user-friendly messages with a
// suggested action and a code for support reference.
//
// Pipeline failures already carry a stable Code and are looked up directly
// in codeMessages. Any other error (file handling, limits, contexts) is
// matched against errorPatterns by substring, case-insensitively; the first
// matching pattern wins, so specific patterns come before general ones.
//
// Codes outside the pipeline:
//
//	FILE001 - File too large        Patterns: "file too large"
//	FILE002 - Unsupported format    Patterns: "unsupported format"
//	FILE004 - No file               Patterns: "no file provided"
//	FILE005 - Empty file            Patterns: "empty file"
//	FILE006 - Missing header        Patterns: "missing header"
//	FILE007 - Malformed CSV         Patterns: "invalid csv"
//	FILE008 - Unknown sheet         Patterns: "does not exist"
//	REQ001  - Invalid JSON          Patterns: "invalid json"
//	REQ002  - Missing country       Patterns: "missing country name"
//	UPL002  - System busy           Patterns: "too many concurrent"
//	UPL004  - Request cancelled     Patterns: "context canceled"
//	UPL005  - Request timeout       Patterns: "context deadline exceeded"
//	RATE001 - Rate limited          Patterns: "rate limit"
//	ERR000  - Unknown error         (fallback)

import (
	"errors"
	"fmt"
	"strings"
)

// UserMessage provides user-friendly error information with actionable guidance.
type UserMessage struct {
	Message string // What happened (user-friendly)
	Action  string // What to do about it
	Code    string // Error code for support reference
}

// codeMessages describes every pipeline code.
var codeMessages = map[Code]UserMessage{
	CodeInvalidInputType: {Message: "Input must be a list of rows", Action: "Send a JSON array of packing-list rows"},
	CodeEmptyInput:       {Message: "The packing list is empty", Action: "Add at least one row with carton data"},
	CodeInvalidRowData:   {Message: "A row is not a valid record", Action: "Check the row for missing columns"},
	CodeInvalidBaseItem:  {Message: "Description or model is missing", Action: "Fill in DESCRIPTION MIN and MODEL"},
	CodeNoCtnData:        {Message: "A row has no carton columns", Action: "Add a CTN column to the sheet"},
	CodeInvalidQuantity:  {Message: "Quantity is not a positive whole number", Action: "Use whole numbers greater than zero in QTY columns"},
	CodeInvalidPallet:    {Message: "Pallet is not a positive whole number", Action: "Use whole numbers greater than zero in PAL columns"},
	CodeCtnExpansion:     {Message: "Carton range could not be read", Action: "Use a single number or a range like 100-105"},
	CodeIncompleteGroup:  {Message: "A carton group is incomplete", Action: "Fill in both CTN and QTY for every group"},
	CodeNoProcessedItems: {Message: "A row produced no cartons", Action: "Fill in CTN and QTY for at least one group"},
	CodeOutputValidation: {Message: "Processed data failed an internal check", Action: "Please contact support"},
	CodeProcessingFailed: {Message: "No rows could be processed", Action: "Fix the first reported row and try again"},
	CodeNoValidData:      {Message: "No valid data was found", Action: "Check that the sheet contains carton rows"},
	CodeValidationFailed: {Message: "The rows do not match the expected layout", Action: "Fix the listed fields and try again"},

	CodeInvalidInput:        {Message: "Carton value contains invalid characters", Action: "Use digits and a range separator only"},
	CodeInvalidRangeFormat:  {Message: "Carton range has too many parts", Action: "Use exactly one separator, e.g. 100-105"},
	CodeInvalidRangeNumbers: {Message: "Carton range bounds are not numbers", Action: "Use whole numbers on both sides of the separator"},
	CodeInvalidRangeOrder:   {Message: "Carton range is reversed", Action: "Put the lower carton number first"},
	CodeInvalidRangeValues:  {Message: "Carton range must be above zero", Action: "Carton numbers start at 1"},
	CodeInvalidNumberFormat: {Message: "Carton number is not a whole number", Action: "Use a whole carton number"},
	CodeInvalidNumberValue:  {Message: "Carton number must be above zero", Action: "Carton numbers start at 1"},
	CodeRangeTooLarge:       {Message: "Carton range is too large", Action: "Split the range across several rows"},
}

// errorPattern defines a pattern to match and its corresponding user message.
type errorPattern struct {
	pattern string
	msg     UserMessage
}

var errorPatterns = []errorPattern{
	// File errors
	{pattern: "file too large", msg: UserMessage{Message: "File exceeds maximum size limit", Action: "Split the file into smaller chunks", Code: "FILE001"}},
	{pattern: "unsupported format", msg: UserMessage{Message: "File type is not supported", Action: "Upload a .csv or .xlsx file", Code: "FILE002"}},
	{pattern: "no file provided", msg: UserMessage{Message: "No file was selected", Action: "Please select a file to upload", Code: "FILE004"}},
	{pattern: "empty file", msg: UserMessage{Message: "The uploaded file is empty", Action: "Please upload a file with data rows", Code: "FILE005"}},
	{pattern: "missing header", msg: UserMessage{Message: "The sheet has no header row", Action: "Put column names in the first row", Code: "FILE006"}},
	{pattern: "invalid csv", msg: UserMessage{Message: "The file could not be read as CSV", Action: "Check for unbalanced quotes and save as comma-separated", Code: "FILE007"}},
	{pattern: "does not exist", msg: UserMessage{Message: "The requested sheet was not found", Action: "Check the sheet name or leave it empty for the first sheet", Code: "FILE008"}},

	// Request errors
	{pattern: "invalid json", msg: UserMessage{Message: "Request body is not valid JSON", Action: "Send a JSON array of rows", Code: "REQ001"}},
	{pattern: "missing country name", msg: UserMessage{Message: "No country name was given", Action: "Pass the name as ?name=", Code: "REQ002"}},
	{pattern: "too many concurrent", msg: UserMessage{Message: "System is busy processing other packing lists", Action: "Please wait a moment and try again", Code: "UPL002"}},
	{pattern: "context canceled", msg: UserMessage{Message: "Request was cancelled", Action: "Please try again", Code: "UPL004"}},
	{pattern: "context deadline exceeded", msg: UserMessage{Message: "Request timed out", Action: "Try a smaller file or check your connection", Code: "UPL005"}},
	{pattern: "rate limit", msg: UserMessage{Message: "Too many requests", Action: "Please wait a moment before trying again", Code: "RATE001"}},
}

// defaultMessage is returned when nothing matches (ERR000).
var defaultMessage = UserMessage{
	Message: "An unexpected error occurred",
	Action:  "Please try again or contact support",
	Code:    string(CodeUnexpected),
}

// Describe returns the user message for a pipeline code.
func Describe(code Code) UserMessage {
	msg, ok := codeMessages[code]
	if !ok {
		return defaultMessage
	}
	msg.Code = string(code)
	return msg
}

// MapError converts an error to a user-friendly message. Coded pipeline
// errors use their own code; other errors are matched against known
// patterns, falling back to ERR000.
func MapError(err error) UserMessage {
	if err == nil {
		return UserMessage{}
	}

	var e *Error
	if errors.As(err, &e) {
		return Describe(e.Code)
	}

	errStr := strings.ToLower(err.Error())
	for _, ep := range errorPatterns {
		if strings.Contains(errStr, ep.pattern) {
			return ep.msg
		}
	}

	return defaultMessage
}

// FormatUserError creates a formatted error string for display.
// The format is: "Message (Code: XXX). Action"
func FormatUserError(err error) string {
	msg := MapError(err)
	if msg.Message == "" {
		return ""
	}
	return fmt.Sprintf("%s (Code: %s). %s", msg.Message, msg.Code, msg.Action)
}

// IsUserFacing reports whether err maps to a known message rather than the
// ERR000 fallback.
func IsUserFacing(err error) bool {
	if err == nil {
		return false
	}
	return MapError(err).Code != defaultMessage.Code
}
