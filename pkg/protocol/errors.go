// Package protocol defines the shared data structures and error codes of the SRP-6a handshake.
package protocol

import (
	"errors"
	"fmt"
)

// ErrorCode represents a standardized SRP error code.
type ErrorCode string

// SRP error codes.
const (
	// ErrCodeConfigurationError indicates an unknown hash algorithm or prime group.
	ErrCodeConfigurationError ErrorCode = "CONFIGURATION_ERROR"
	// ErrCodeEncodingError indicates a malformed hex value or an impossible encoding request.
	ErrCodeEncodingError ErrorCode = "ENCODING_ERROR"

	// ErrCodeInvalidPublicEphemeral indicates the peer sent a public ephemeral equal to 0 mod N.
	ErrCodeInvalidPublicEphemeral ErrorCode = "INVALID_PUBLIC_EPHEMERAL"
	// ErrCodeInvalidSessionProof indicates the peer's session proof did not match.
	ErrCodeInvalidSessionProof ErrorCode = "INVALID_SESSION_PROOF"

	// ErrCodeProviderError indicates the hash or random provider failed.
	ErrCodeProviderError ErrorCode = "PROVIDER_ERROR"
)

// Party identifies which side of the handshake supplied the failing input.
type Party string

// Handshake parties.
const (
	// PartyClient is the side holding the password.
	PartyClient Party = "client"
	// PartyServer is the side holding the verifier.
	PartyServer Party = "server"
)

// Error is the error type returned by every SRP operation.
// Party is only set for peer-attributed failures.
type Error struct {
	Code    ErrorCode `json:"code" yaml:"code"`
	Party   Party     `json:"party,omitempty" yaml:"party,omitempty"`
	Message string    `json:"message" yaml:"message"`
	Details string    `json:"details,omitempty" yaml:"details,omitempty"`
	Err     error     `json:"-" yaml:"-"`
}

// Error implements the error interface.
func (e *Error) Error() string {
	msg := fmt.Sprintf("%s: %s", e.Code, e.Message)
	if e.Party != "" {
		msg = fmt.Sprintf("%s: %s (%s)", e.Code, e.Message, e.Party)
	}
	if e.Details != "" {
		msg += ": " + e.Details
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap returns the underlying cause, if any.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is an *Error with the same code.
// A target with an empty Party matches any party.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	if t.Code != e.Code {
		return false
	}
	return t.Party == "" || t.Party == e.Party
}

// Sentinel values for errors.Is checks.
var (
	ErrConfiguration          = &Error{Code: ErrCodeConfigurationError}
	ErrEncoding               = &Error{Code: ErrCodeEncodingError}
	ErrInvalidPublicEphemeral = &Error{Code: ErrCodeInvalidPublicEphemeral}
	ErrInvalidSessionProof    = &Error{Code: ErrCodeInvalidSessionProof}
	ErrProvider               = &Error{Code: ErrCodeProviderError}
)

// NewError creates a new Error.
func NewError(code ErrorCode, message string) *Error {
	return &Error{
		Code:    code,
		Message: message,
	}
}

// NewErrorWithDetails creates a new Error with details.
func NewErrorWithDetails(code ErrorCode, message, details string) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Details: details,
	}
}

// NewConfigurationError creates a configuration error.
func NewConfigurationError(details string) *Error {
	return NewErrorWithDetails(ErrCodeConfigurationError, "Configuration error", details)
}

// NewEncodingError creates an encoding error wrapping cause (which may be nil).
func NewEncodingError(details string, cause error) *Error {
	e := NewErrorWithDetails(ErrCodeEncodingError, "Encoding error", details)
	e.Err = cause
	return e
}

// NewInvalidPublicEphemeralError creates an invalid public ephemeral error blamed on party.
func NewInvalidPublicEphemeralError(party Party, details string) *Error {
	e := NewErrorWithDetails(ErrCodeInvalidPublicEphemeral, "Invalid public ephemeral", details)
	e.Party = party
	return e
}

// NewInvalidSessionProofError creates an invalid session proof error blamed on party.
func NewInvalidSessionProofError(party Party) *Error {
	e := NewError(ErrCodeInvalidSessionProof, "Invalid session proof")
	e.Party = party
	return e
}

// NewProviderError creates an internal crypto provider error.
func NewProviderError(details string, cause error) *Error {
	e := NewErrorWithDetails(ErrCodeProviderError, "Crypto provider error", details)
	e.Err = cause
	return e
}

// IsPeerError reports whether err was caused by the peer's input and returns the blamed party.
func IsPeerError(err error) (Party, bool) {
	var e *Error
	if !errors.As(err, &e) || e.Party == "" {
		return "", false
	}
	return e.Party, true
}

// CodeOf returns the ErrorCode carried by err, or "" if err is not an *Error.
func CodeOf(err error) ErrorCode {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}
