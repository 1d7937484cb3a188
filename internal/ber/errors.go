// Package ber implements ASN.1 BER (Basic Encoding Rules) encoding
// as specified in ITU-T X.690.
package ber

import (
	"errors"
	"fmt"
)

// Decoder errors
var (
	// ErrTruncated is returned when the buffer ends before a complete TLV.
	// More data may make the same input decodable.
	ErrTruncated = errors.New("ber: truncated input")

	// ErrUnsupportedLength is returned for length fields this codec does not
	// accept: the indefinite form, or a length too large to represent.
	ErrUnsupportedLength = errors.New("ber: unsupported length")

	// ErrIndefiniteLength is returned when the indefinite length form (0x80)
	// is encountered. It matches ErrUnsupportedLength with errors.Is.
	ErrIndefiniteLength = fmt.Errorf("%w: indefinite form", ErrUnsupportedLength)

	// ErrMalformedTag is returned for unusable high-tag-number forms.
	ErrMalformedTag = errors.New("ber: malformed tag")

	// ErrTrailingData is returned when the children of a constructed value do
	// not exactly fill its declared content length.
	ErrTrailingData = errors.New("ber: trailing data in constructed value")

	// ErrInvalidBoolean is returned when a boolean value has invalid length.
	ErrInvalidBoolean = errors.New("ber: invalid boolean encoding")

	// ErrInvalidInteger is returned when an integer value is malformed.
	ErrInvalidInteger = errors.New("ber: invalid integer encoding")

	// ErrInvalidNull is returned when a null value has non-zero length.
	ErrInvalidNull = errors.New("ber: invalid null encoding")

	// ErrInvalidOID is returned when an object identifier is malformed.
	ErrInvalidOID = errors.New("ber: invalid object identifier encoding")

	// ErrNestingTooDeep is returned when constructed values nest beyond
	// MaxNestingDepth.
	ErrNestingTooDeep = errors.New("ber: nesting too deep")

	// ErrTagMismatch is returned when the expected tag does not match the actual tag.
	ErrTagMismatch = errors.New("ber: tag mismatch")
)

// Syntax table errors
var (
	// ErrUniversalOverride is returned when a syntax entry targets the
	// UNIVERSAL class, whose interpretation is fixed.
	ErrUniversalOverride = errors.New("ber: universal tags cannot be overridden")

	// ErrUnknownRule is returned when a syntax entry names no known rule.
	ErrUnknownRule = errors.New("ber: unknown decode rule")
)

// DecodeError provides detailed information about a decoding failure.
type DecodeError struct {
	Offset  int    // Byte offset where the error occurred
	Message string // Human-readable error description
	Err     error  // Underlying error
}

// Error implements the error interface.
func (e *DecodeError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("ber: decode error at offset %d: %s: %v", e.Offset, e.Message, e.Err)
	}
	return fmt.Sprintf("ber: decode error at offset %d: %s", e.Offset, e.Message)
}

// Unwrap returns the underlying error.
func (e *DecodeError) Unwrap() error {
	return e.Err
}

// NewDecodeError creates a new DecodeError with the given parameters.
func NewDecodeError(offset int, message string, err error) *DecodeError {
	return &DecodeError{
		Offset:  offset,
		Message: message,
		Err:     err,
	}
}

// IsTruncated reports whether err means the input ended early, so that a
// caller reading from a stream can wait for more bytes instead of rejecting
// the message.
func IsTruncated(err error) bool {
	return errors.Is(err, ErrTruncated)
}

// TagMismatchError provides detailed information about a tag mismatch.
type TagMismatchError struct {
	Offset   int
	Expected Tag
	Actual   Tag
}

// Error implements the error interface.
func (e *TagMismatchError) Error() string {
	return fmt.Sprintf("ber: tag mismatch at offset %d: expected %s, got %s",
		e.Offset, e.Expected, e.Actual)
}

// Is allows TagMismatchError to match ErrTagMismatch with errors.Is.
func (e *TagMismatchError) Is(target error) bool {
	return target == ErrTagMismatch
}
