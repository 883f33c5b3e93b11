package errors

import (
	"fmt"
	"strings"
)

// MissingParameterError lists the parameter names a call omitted.
// OneOf is set when any single name of Fields would have been enough.
type MissingParameterError struct {
	Fields []string
	OneOf  bool
}

func (e *MissingParameterError) Error() string {
	if e.OneOf {
		return fmt.Sprintf("%s is required", strings.Join(e.Fields, " or "))
	}
	return fmt.Sprintf("[%s] is required", strings.Join(e.Fields, ", "))
}

func (e *MissingParameterError) Is(target error) bool {
	return target == ErrMissingParameter
}

// TransportError is a non-success HTTP status, independent of the body.
type TransportError struct {
	StatusCode int
	Reason     string
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("http status %d: %s", e.StatusCode, e.Reason)
}

func (e *TransportError) Is(target error) bool {
	return target == ErrTransport
}

// BusinessError is a successfully transported call the API rejected with a
// nonzero result code.
type BusinessError struct {
	Code    int
	Message string
}

func (e *BusinessError) Error() string {
	return fmt.Sprintf("api code %d: %s", e.Code, e.Message)
}

func (e *BusinessError) Is(target error) bool {
	return target == ErrBusiness
}

// NewMissingParameter builds a marked missing parameter error.
func NewMissingParameter(fields ...string) error {
	return WithError(&MissingParameterError{Fields: fields}).
		WithHintf("Provide %s", strings.Join(fields, ", ")).
		Mark(ErrMissingParameter)
}

// NewMissingOneOf builds a marked error for a call that needed one of fields.
func NewMissingOneOf(fields ...string) error {
	return WithError(&MissingParameterError{Fields: fields, OneOf: true}).
		WithHintf("Provide one of %s", strings.Join(fields, ", ")).
		Mark(ErrMissingParameter)
}
