package ldap

import (
	"errors"
	"fmt"
)

// Errors for LDAP message parsing
var (
	// ErrInvalidMessageID is returned when the message ID is out of valid range
	ErrInvalidMessageID = errors.New("ldap: message ID out of valid range (0 to 2147483647)")

	// ErrMissingOperation is returned when the protocol operation is missing
	ErrMissingOperation = errors.New("ldap: missing protocol operation")

	// ErrInvalidOperation is returned when the protocol operation has invalid tag class
	ErrInvalidOperation = errors.New("ldap: protocol operation must have APPLICATION tag class")

	// ErrMalformedMessage is returned when the envelope does not have the
	// LDAPMessage shape.
	ErrMalformedMessage = errors.New("ldap: malformed message")

	// ErrInvalidControlSequence is returned when controls are malformed
	ErrInvalidControlSequence = errors.New("ldap: invalid control sequence")

	// ErrEmptyMessage is returned when trying to parse empty data
	ErrEmptyMessage = errors.New("ldap: empty message data")

	// ErrUnexpectedOperation is returned when a parser receives a
	// protocolOp of another type.
	ErrUnexpectedOperation = errors.New("ldap: unexpected operation")
)

// Errors for bind operations
var (
	// ErrInvalidBindVersion is returned when the bind version is out of range
	ErrInvalidBindVersion = errors.New("ldap: bind version must be between 1 and 127")
	// ErrUnknownAuthMethod is returned when the authentication method is unknown
	ErrUnknownAuthMethod = errors.New("ldap: unknown authentication method")
	// ErrInvalidSASLCredentials is returned when SASL credentials are malformed
	ErrInvalidSASLCredentials = errors.New("ldap: invalid SASL credentials")
	// ErrInvalidResult is returned when an LDAPResult is malformed
	ErrInvalidResult = errors.New("ldap: invalid result")
)

// ParseError provides detailed information about a parsing failure.
// Field is the element of the message being read when parsing failed.
type ParseError struct {
	Field   string
	Message string
	Err     error
}

// Error implements the error interface
func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("ldap: parse error in %s: %s: %v", e.Field, e.Message, e.Err)
	}
	return fmt.Sprintf("ldap: parse error in %s: %s", e.Field, e.Message)
}

// Unwrap returns the underlying error
func (e *ParseError) Unwrap() error {
	return e.Err
}

// NewParseError creates a new ParseError
func NewParseError(field, message string, err error) *ParseError {
	return &ParseError{
		Field:   field,
		Message: message,
		Err:     err,
	}
}
