package iamport

import (
	"context"

	"github.com/shopspring/decimal"
)

// Prepare registers the amount merchantUID is expected to be paid for, so
// the gateway rejects a checkout whose amount was altered on the client
func (c *Client) Prepare(ctx context.Context, merchantUID string, amount decimal.Decimal) (*Prepared, error) {
	var prepared Prepared
	params := Params{FieldMerchantUID: merchantUID, FieldAmount: amount}
	if err := c.call(ctx, opPrepare, params, &prepared); err != nil {
		return nil, err
	}
	return &prepared, nil
}

// GetPrepared fetches the amount registered for merchantUID
func (c *Client) GetPrepared(ctx context.Context, merchantUID string) (*Prepared, error) {
	var prepared Prepared
	if err := c.call(ctx, opGetPrepared, Params{FieldMerchantUID: merchantUID}, &prepared); err != nil {
		return nil, err
	}
	return &prepared, nil
}

// PrepareValidate reports whether the amount registered for merchantUID
// equals amount
func (c *Client) PrepareValidate(ctx context.Context, merchantUID string, amount decimal.Decimal) (bool, error) {
	prepared, err := c.GetPrepared(ctx, merchantUID)
	if err != nil {
		return false, err
	}
	return prepared.Amount.Equal(amount), nil
}
