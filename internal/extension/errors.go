package extension

import (
	"errors"
	"fmt"
)

// Error is returned by every contract operation that fails.
//
// Error kinds:
//   - TypeMismatch: a value does not belong to the array's element type
//   - IndexOutOfRange: a position falls outside the array bounds
//   - EmptyTake: a non-empty take was requested from a zero-length array
//   - DtypeParse: no registered dtype matches a name
//   - InvalidIndexer: the indexer shape or the value count is not usable
type Error struct {
	// Code identifies the error category.
	Code ErrorCode

	// Message is a human-readable description.
	Message string

	// Index is the offending position (IndexOutOfRange, TypeMismatch), or -1.
	Index int

	// Size is the array length at the time of the failure, or -1.
	Size int

	// Err is the underlying cause, if any.
	Err error
}

// ErrorCode categorizes contract errors.
type ErrorCode string

const (
	// ErrCodeTypeMismatch indicates a value of the wrong element type.
	ErrCodeTypeMismatch ErrorCode = "TYPE_MISMATCH"

	// ErrCodeIndexOutOfRange indicates a position outside the array bounds.
	ErrCodeIndexOutOfRange ErrorCode = "INDEX_OUT_OF_RANGE"

	// ErrCodeEmptyTake indicates a non-empty take from an empty array.
	ErrCodeEmptyTake ErrorCode = "EMPTY_TAKE"

	// ErrCodeDtypeParse indicates an unrecognized dtype name.
	ErrCodeDtypeParse ErrorCode = "DTYPE_PARSE"

	// ErrCodeInvalidIndexer indicates an unusable indexer or value count.
	ErrCodeInvalidIndexer ErrorCode = "INVALID_INDEXER"
)

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Err
}

// NewTypeMismatch creates an Error for a value rejected at position index.
func NewTypeMismatch(index int, cause error) *Error {
	msg := "value does not match the array element type"
	if index >= 0 {
		msg = fmt.Sprintf("value at position %d does not match the array element type", index)
	}
	return &Error{
		Code:    ErrCodeTypeMismatch,
		Message: msg,
		Index:   index,
		Size:    -1,
		Err:     cause,
	}
}

// NewIndexOutOfRange creates an Error for a position outside [-size, size).
func NewIndexOutOfRange(index, size int) *Error {
	return &Error{
		Code:    ErrCodeIndexOutOfRange,
		Message: fmt.Sprintf("index %d is out of bounds for axis 0 with size %d", index, size),
		Index:   index,
		Size:    size,
	}
}

// NewEmptyTake creates an Error for a non-empty take from an empty array.
// Bounds checking would also reject such a take; the distinct kind makes the
// cause obvious.
func NewEmptyTake() *Error {
	return &Error{
		Code:    ErrCodeEmptyTake,
		Message: "cannot do a non-empty take from an empty array",
		Index:   -1,
		Size:    0,
	}
}

// NewDtypeParse creates an Error for an unrecognized dtype name.
func NewDtypeParse(name string) *Error {
	return &Error{
		Code:    ErrCodeDtypeParse,
		Message: fmt.Sprintf("cannot construct a dtype from %q", name),
		Index:   -1,
		Size:    -1,
	}
}

// NewInvalidIndexer creates an Error for an unusable indexer.
func NewInvalidIndexer(format string, args ...any) *Error {
	return &Error{
		Code:    ErrCodeInvalidIndexer,
		Message: fmt.Sprintf(format, args...),
		Index:   -1,
		Size:    -1,
	}
}

// CodeOf returns the code of the first *Error in err's chain, or "" when
// err is not a contract error.
func CodeOf(err error) ErrorCode {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

func hasCode(err error, code ErrorCode) bool {
	return err != nil && CodeOf(err) == code
}

// IsTypeMismatch returns true if err is a TypeMismatch error.
// Uses errors.As to handle wrapped errors.
func IsTypeMismatch(err error) bool { return hasCode(err, ErrCodeTypeMismatch) }

// IsIndexOutOfRange returns true if err is an IndexOutOfRange error.
func IsIndexOutOfRange(err error) bool { return hasCode(err, ErrCodeIndexOutOfRange) }

// IsEmptyTake returns true if err is an EmptyTake error.
func IsEmptyTake(err error) bool { return hasCode(err, ErrCodeEmptyTake) }

// IsDtypeParse returns true if err is a DtypeParse error.
func IsDtypeParse(err error) bool { return hasCode(err, ErrCodeDtypeParse) }

// IsInvalidIndexer returns true if err is an InvalidIndexer error.
func IsInvalidIndexer(err error) bool { return hasCode(err, ErrCodeInvalidIndexer) }
