package iamport

import (
	"context"

	"github.com/shopspring/decimal"
)

// Find fetches a payment by merchant_uid or imp_uid
func (c *Client) Find(ctx context.Context, key LookupKey) (*Payment, error) {
	if err := key.validate(); err != nil {
		return nil, err
	}

	op := opFindByImpUID
	if key.kind == lookupMerchantUID {
		op = opFindByMerchantUID
	}

	var payment Payment
	if err := c.call(ctx, op, Params{key.Field(): key.Value()}, &payment); err != nil {
		return nil, err
	}
	return &payment, nil
}

func (c *Client) FindByMerchantUID(ctx context.Context, merchantUID string) (*Payment, error) {
	return c.Find(ctx, ByMerchantUID(merchantUID))
}

func (c *Client) FindByImpUID(ctx context.Context, impUID string) (*Payment, error) {
	return c.Find(ctx, ByImpUID(impUID))
}

// FindWithParams looks a payment up by whichever identifier params carry.
// merchant_uid is used when both are present.
func (c *Client) FindWithParams(ctx context.Context, params Params) (*Payment, error) {
	key, err := LookupFromParams(params)
	if err != nil {
		return nil, err
	}
	return c.Find(ctx, key)
}

// PayOnetime charges a card without storing it
func (c *Client) PayOnetime(ctx context.Context, params Params) (*Payment, error) {
	return c.pay(ctx, opPayOnetime, params)
}

// PayAgain charges the card stored under params' customer_uid
func (c *Client) PayAgain(ctx context.Context, params Params) (*Payment, error) {
	return c.pay(ctx, opPayAgain, params)
}

// PayForeign charges a card issued outside Korea
func (c *Client) PayForeign(ctx context.Context, params Params) (*Payment, error) {
	return c.pay(ctx, opPayForeign, params)
}

func (c *Client) pay(ctx context.Context, op operation, params Params) (*Payment, error) {
	var payment Payment
	if err := c.call(ctx, op, params, &payment); err != nil {
		return nil, err
	}

	c.logger.Infow("payment processed",
		"operation", op.name,
		"merchant_uid", payment.MerchantUID,
		"imp_uid", payment.ImpUID,
		"status", payment.Status)
	return &payment, nil
}

// IsPaid reports whether payment has been paid for exactly amount
func IsPaid(amount decimal.Decimal, payment *Payment) bool {
	if payment == nil {
		return false
	}
	return payment.Status == PaymentStatusPaid && payment.Amount.Equal(amount)
}

// IsPaid fetches the payment identified by key and checks it with IsPaid
func (c *Client) IsPaid(ctx context.Context, amount decimal.Decimal, key LookupKey) (bool, error) {
	payment, err := c.Find(ctx, key)
	if err != nil {
		return false, err
	}
	return IsPaid(amount, payment), nil
}
