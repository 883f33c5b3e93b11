package errors

import (
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMissingParameter(t *testing.T) {
	err := NewMissingParameter("customer_uid", "amount")

	assert.True(t, IsMissingParameter(err))
	assert.False(t, IsBusiness(err))

	var missing *MissingParameterError
	require.True(t, As(err, &missing))
	assert.Equal(t, []string{"customer_uid", "amount"}, missing.Fields)
	assert.Contains(t, err.Error(), "[customer_uid, amount] is required")
	assert.Contains(t, GetHints(err), "Provide customer_uid, amount")
}

func TestNewMissingOneOf(t *testing.T) {
	err := NewMissingOneOf("merchant_uid", "imp_uid")

	var missing *MissingParameterError
	require.True(t, As(err, &missing))
	assert.True(t, missing.OneOf)
	assert.Contains(t, err.Error(), "merchant_uid or imp_uid is required")
}

func TestTypedErrorsMatchStdlib(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		sentinel error
	}{
		{"transport", &TransportError{StatusCode: 500, Reason: "Internal Server Error"}, ErrTransport},
		{"business", &BusinessError{Code: 1, Message: "not found"}, ErrBusiness},
		{"missing", &MissingParameterError{Fields: []string{"reason"}}, ErrMissingParameter},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wrapped := WithError(tt.err).WithHint("hint").Mark(tt.sentinel)
			assert.True(t, stderrors.Is(tt.err, tt.sentinel))
			assert.True(t, Is(wrapped, tt.sentinel))
		})
	}
}

func TestBusinessErrorAs(t *testing.T) {
	err := WithError(&BusinessError{Code: -1, Message: "declined"}).Mark(ErrBusiness)

	var be *BusinessError
	require.True(t, As(err, &be))
	assert.Equal(t, -1, be.Code)
	assert.Equal(t, "declined", be.Message)
	assert.False(t, IsTransport(err))
}

func TestInternalErrorIs(t *testing.T) {
	other := &InternalError{Code: ErrCodeTransport}
	assert.True(t, ErrTransport.Is(other))
	assert.False(t, ErrBusiness.Is(other))
	assert.False(t, ErrBusiness.Is(nil))
}
