// Package errors provides a structured error type with wrapping and metadata
package errors

// Always import the project errors package as perr (platform/errors)

import (
	"encoding/json"
	stderrs "errors"
	"fmt"
	"net/http"
)

// ErrorCode defines supported error codes used across the service
// Values are stable for wire compatibility; add sparingly
type ErrorCode uint16

const (
	// ErrorCodeUnknown is for unclassified errors (server error)
	ErrorCodeUnknown ErrorCode = iota

	// ErrorCodePanic is for panics recovered by middleware
	ErrorCodePanic

	// ErrorCodeValidation is for missing or malformed submission fields
	ErrorCodeValidation

	// ErrorCodeJSON is for JSON parsing errors
	ErrorCodeJSON

	// ErrorCodeProviderNotConfigured is an internal routing signal, never surfaced to clients
	ErrorCodeProviderNotConfigured

	// ErrorCodeTokenMissing is an internal routing signal, never surfaced to clients
	ErrorCodeTokenMissing

	// ErrorCodeVerificationFailed is for a provider that rejected the challenge token
	ErrorCodeVerificationFailed

	// ErrorCodeSpamRejected is for honeypot hits
	ErrorCodeSpamRejected

	// ErrorCodeConfiguration is for missing operator configuration (mail sender, recipient, credential)
	ErrorCodeConfiguration

	// ErrorCodeDispatch is for a mail transport that refused the message
	ErrorCodeDispatch
)

// HTTPStatusCode turns an ErrorCode into an http status code
func HTTPStatusCode(c ErrorCode) int {
	switch c {
	case ErrorCodeValidation, ErrorCodeJSON, ErrorCodeVerificationFailed, ErrorCodeSpamRejected:
		return http.StatusBadRequest
	case ErrorCodeConfiguration, ErrorCodeDispatch:
		return http.StatusInternalServerError
	case ErrorCodeProviderNotConfigured, ErrorCodeTokenMissing, ErrorCodePanic, ErrorCodeUnknown:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}

// public messages for codes whose details are operator facing only
var genericMessages = map[ErrorCode]string{
	ErrorCodeUnknown:               "Server error",
	ErrorCodePanic:                 "Server error",
	ErrorCodeProviderNotConfigured: "Server error",
	ErrorCodeTokenMissing:          "Server error",
	ErrorCodeConfiguration:         "Email not configured.",
	ErrorCodeDispatch:              "Unable to send your message right now.",
}

// Error is the structured error type with wrapping and metadata
// msg is human/developer facing; code is machine facing
// field is optional (for validation)
// details carries raw provider error codes for verification failures
// orig is the wrapped cause
type Error struct {
	orig    error
	msg     string
	code    ErrorCode
	field   string
	details []string
}

// Wire is the JSON-serializable form returned by the API
// errorCodes is emitted whenever ErrorCodes is non-nil, so an empty list still reaches the client
type Wire struct {
	Error      string   `json:"error"`
	ErrorCodes []string `json:"errorCodes,omitempty"`
	Provider   string   `json:"provider,omitempty"`
}

// MarshalJSON keeps a non-nil empty ErrorCodes on the wire
func (w Wire) MarshalJSON() ([]byte, error) {
	if w.ErrorCodes == nil {
		type plain Wire
		return json.Marshal(plain(w))
	}
	return json.Marshal(struct {
		Error      string   `json:"error"`
		ErrorCodes []string `json:"errorCodes"`
		Provider   string   `json:"provider,omitempty"`
	}{w.Error, w.ErrorCodes, w.Provider})
}

// Error implements the error interface
func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.orig != nil {
		return fmt.Sprintf("%s: %v", e.msg, e.orig)
	}
	return e.msg
}

// Unwrap returns the wrapped error, if any
func (e *Error) Unwrap() error { return e.orig }

// Code returns the error code
func (e *Error) Code() ErrorCode { return e.code }

// Field returns the offending field, if any
func (e *Error) Field() string { return e.field }

// Details returns a copy of the attached provider error codes
func (e *Error) Details() []string { return append([]string(nil), e.details...) }

// ToWire converts an *Error to a Wire payload. 5xx codes get a generic message
func (e *Error) ToWire() Wire {
	w := Wire{Error: e.msg}
	if g, ok := genericMessages[e.code]; ok {
		w.Error = g
	}
	if e.code == ErrorCodeVerificationFailed {
		w.ErrorCodes = e.Details()
		if w.ErrorCodes == nil {
			w.ErrorCodes = []string{}
		}
		w.Provider = "none"
	}
	return w
}

// WireFrom converts any error into a Wire payload with best-effort mapping
// foreign errors never leak their text
func WireFrom(err error) Wire {
	if err == nil {
		return Wire{}
	}
	if e, ok := As(err); ok {
		return e.ToWire()
	}
	return Wire{Error: genericMessages[ErrorCodeUnknown]}
}

// CodeOf extracts an ErrorCode from any error, defaulting to Unknown
func CodeOf(err error) ErrorCode {
	if e, ok := As(err); ok {
		return e.code
	}
	return ErrorCodeUnknown
}

// IsCode reports whether err has the given code
func IsCode(err error, code ErrorCode) bool { return CodeOf(err) == code }

// HTTPStatus returns the mapped HTTP status for any error
func HTTPStatus(err error) int { return HTTPStatusCode(CodeOf(err)) }

// As unwraps and returns (*Error, true) if err is one of ours
func As(err error) (*Error, bool) {
	var e *Error
	if stderrs.As(err, &e) {
		return e, true
	}
	return nil, false
}

// Mutators (copy-on-write)

// WithField attaches a field to an *Error (copy-on-write). If err isn't *Error, returns err unchanged
func WithField(err error, field string) error {
	if e, ok := As(err); ok {
		c := *e
		c.field = field
		return &c
	}
	return err
}

// Constructors

// New returns a new *Error with the given code and message
func New(code ErrorCode, msg string) error { return &Error{code: code, msg: msg} }

// Newf returns a new *Error with code and formatted message
func Newf(code ErrorCode, format string, a ...any) error {
	return &Error{code: code, msg: fmt.Sprintf(format, a...)}
}

// Wrap returns a new *Error that wraps orig with code and message
func Wrap(orig error, code ErrorCode, msg string) error {
	return &Error{code: code, msg: msg, orig: orig}
}

// Wrapf returns a new *Error that wraps orig with code and formatted message
func Wrapf(orig error, code ErrorCode, format string, a ...any) error {
	return &Error{code: code, msg: fmt.Sprintf(format, a...), orig: orig}
}

// Sugar

// Validationf returns a validation error; the message is safe to show to the submitter
func Validationf(format string, a ...any) error { return Newf(ErrorCodeValidation, format, a...) }

// JSONErrf returns a JSON error
func JSONErrf(format string, a ...any) error { return Newf(ErrorCodeJSON, format, a...) }

// PanicErrf returns a panic error
func PanicErrf(format string, a ...any) error { return Newf(ErrorCodePanic, format, a...) }

// NotConfiguredf returns a provider-not-configured routing signal
func NotConfiguredf(format string, a ...any) error {
	return Newf(ErrorCodeProviderNotConfigured, format, a...)
}

// TokenMissingf returns a token-missing routing signal
func TokenMissingf(format string, a ...any) error { return Newf(ErrorCodeTokenMissing, format, a...) }

// VerificationFailed returns a verification failure carrying raw provider codes
func VerificationFailed(msg string, codes []string) error {
	return &Error{code: ErrorCodeVerificationFailed, msg: msg, details: append([]string(nil), codes...)}
}

// Spamf returns a spam rejection
func Spamf(format string, a ...any) error { return Newf(ErrorCodeSpamRejected, format, a...) }

// Configurationf returns an operator-facing configuration error
func Configurationf(format string, a ...any) error { return Newf(ErrorCodeConfiguration, format, a...) }

// Dispatchf wraps a mail transport failure
func Dispatchf(orig error, format string, a ...any) error {
	return Wrapf(orig, ErrorCodeDispatch, format, a...)
}

// Internalf returns a generic internal error
func Internalf(format string, a ...any) error { return Newf(ErrorCodeUnknown, format, a...) }

// HTTP bundles status + wire in one shot (nice for handlers)
func HTTP(err error) (int, Wire) {
	if err == nil {
		return http.StatusOK, Wire{}
	}
	return HTTPStatus(err), WireFrom(err)
}
