package iamport

import (
	ierr "github.com/flexprice/iamport-go/internal/errors"
)

type (
	// MissingParameterError lists required parameters a call omitted.
	// No request is sent when it is returned.
	MissingParameterError = ierr.MissingParameterError
	// TransportError is a non-200 HTTP status from the gateway
	TransportError = ierr.TransportError
	// BusinessError is a 200 response carrying a nonzero result code,
	// such as a declined card or an unknown customer
	BusinessError = ierr.BusinessError
)

// Sentinels for errors.Is
var (
	ErrInvalidValidatorSpec = ierr.ErrInvalidValidatorSpec
	ErrMissingParameter     = ierr.ErrMissingParameter
	ErrTransport            = ierr.ErrTransport
	ErrBusiness             = ierr.ErrBusiness
	ErrMalformedResponse    = ierr.ErrMalformedResponse
	ErrHTTPClient           = ierr.ErrHTTPClient
)

func IsMissingParameter(err error) bool  { return ierr.IsMissingParameter(err) }
func IsTransport(err error) bool         { return ierr.IsTransport(err) }
func IsBusiness(err error) bool          { return ierr.IsBusiness(err) }
func IsMalformedResponse(err error) bool { return ierr.IsMalformedResponse(err) }

// IsConnection reports a request that never got a response
func IsConnection(err error) bool { return ierr.IsHTTPClient(err) }
