package errors

import (
	"fmt"

	"github.com/cockroachdb/errors"
)

// Error kinds surfaced by the client. Each typed error below is marked with
// one of these so callers can branch with errors.Is.
var (
	ErrInvalidValidatorSpec = new(ErrCodeInvalidValidatorSpec, "invalid validator spec")
	ErrMissingParameter     = new(ErrCodeMissingParameter, "missing required parameter")
	ErrTransport            = new(ErrCodeTransport, "unexpected http status")
	ErrBusiness             = new(ErrCodeBusiness, "api returned a failure code")
	ErrMalformedResponse    = new(ErrCodeMalformedResponse, "malformed response envelope")
	ErrHTTPClient           = new(ErrCodeHTTPClient, "http client error")
	ErrValidation           = new(ErrCodeValidation, "validation error")
	ErrSystem               = new(ErrCodeSystemError, "system error")
)

const (
	ErrCodeInvalidValidatorSpec = "invalid_validator_spec"
	ErrCodeMissingParameter     = "missing_parameter"
	ErrCodeTransport            = "transport_error"
	ErrCodeBusiness             = "business_error"
	ErrCodeMalformedResponse    = "malformed_response"
	ErrCodeHTTPClient           = "http_client_error"
	ErrCodeValidation           = "validation_error"
	ErrCodeSystemError          = "system_error"
)

// InternalError represents a domain error
type InternalError struct {
	Code    string // Machine-readable error code
	Message string // Human-readable error message
	Op      string // Logical operation name
	Err     error  // Underlying error
}

func (e *InternalError) Error() string {
	if e.Err == nil {
		return e.DisplayError()
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Err.Error())
}

func (e *InternalError) DisplayError() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *InternalError) Unwrap() error {
	return e.Err
}

// Is implements error matching for wrapped errors
func (e *InternalError) Is(target error) bool {
	if target == nil {
		return false
	}

	t, ok := target.(*InternalError)
	if !ok {
		return errors.Is(e.Err, target)
	}

	return e.Code == t.Code
}

func new(code string, message string) *InternalError {
	return &InternalError{
		Code:    code,
		Message: message,
	}
}

func As(err error, target any) bool {
	return errors.As(err, target)
}

func Is(err, reference error) bool {
	return errors.Is(err, reference)
}

// IsMissingParameter checks if an error is a missing parameter error
func IsMissingParameter(err error) bool {
	return errors.Is(err, ErrMissingParameter)
}

// IsInvalidValidatorSpec checks if an error is a validator configuration error
func IsInvalidValidatorSpec(err error) bool {
	return errors.Is(err, ErrInvalidValidatorSpec)
}

// IsTransport checks if an error is a non-success http status error
func IsTransport(err error) bool {
	return errors.Is(err, ErrTransport)
}

// IsBusiness checks if an error is a nonzero api result code
func IsBusiness(err error) bool {
	return errors.Is(err, ErrBusiness)
}

// IsMalformedResponse checks if an error is an undecodable response envelope
func IsMalformedResponse(err error) bool {
	return errors.Is(err, ErrMalformedResponse)
}

// IsHTTPClient checks if an error is an http client error
func IsHTTPClient(err error) bool {
	return errors.Is(err, ErrHTTPClient)
}

// IsValidation checks if an error is a validation error
func IsValidation(err error) bool {
	return errors.Is(err, ErrValidation)
}
