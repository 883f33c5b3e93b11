package iamport

import (
	"context"

	ierr "github.com/flexprice/iamport-go/internal/errors"
)

// Cancel cancels the payment identified by key. extra carries optional
// cancellation fields such as a partial amount or refund account.
func (c *Client) Cancel(ctx context.Context, key LookupKey, reason string, extra Params) (*Payment, error) {
	if err := key.validate(); err != nil {
		return nil, err
	}

	var payment Payment
	if err := c.call(ctx, opCancel, cancelPayload(key, reason, extra), &payment); err != nil {
		return nil, err
	}

	c.logger.Infow("payment cancelled",
		"imp_uid", payment.ImpUID,
		"merchant_uid", payment.MerchantUID,
		"cancel_amount", payment.CancelAmount.String())
	return &payment, nil
}

func (c *Client) CancelByImpUID(ctx context.Context, impUID, reason string, extra Params) (*Payment, error) {
	return c.Cancel(ctx, ByImpUID(impUID), reason, extra)
}

func (c *Client) CancelByMerchantUID(ctx context.Context, merchantUID, reason string, extra Params) (*Payment, error) {
	return c.Cancel(ctx, ByMerchantUID(merchantUID), reason, extra)
}

// CancelWithParams cancels by whichever identifier params carry, preferring
// imp_uid. params must include reason; other fields are sent along.
func (c *Client) CancelWithParams(ctx context.Context, params Params) (*Payment, error) {
	key, extra, err := cancelLookupFromParams(params)
	if err != nil {
		return nil, err
	}
	if _, ok := extra[FieldReason]; !ok {
		return nil, ierr.NewMissingParameter(FieldReason)
	}
	reason := extra.str(FieldReason)
	delete(extra, FieldReason)

	return c.Cancel(ctx, key, reason, extra)
}

// cancelPayload is {identifier, reason, ...extra}. extra never overrides
// the identifier or the reason.
func cancelPayload(key LookupKey, reason string, extra Params) Params {
	payload := make(Params, len(extra)+2)
	for k, v := range extra {
		payload[k] = v
	}
	payload[key.Field()] = key.Value()
	payload[FieldReason] = reason
	return payload
}
