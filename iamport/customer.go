package iamport

import "context"

// CustomerCreate stores a card as a billing profile under params'
// customer_uid, replacing any card already stored there
func (c *Client) CustomerCreate(ctx context.Context, params Params) (*Customer, error) {
	var customer Customer
	if err := c.call(ctx, opCustomerCreate, params, &customer); err != nil {
		return nil, err
	}
	return &customer, nil
}

func (c *Client) CustomerGet(ctx context.Context, customerUID string) (*Customer, error) {
	var customer Customer
	if err := c.call(ctx, opCustomerGet, Params{FieldCustomerUID: customerUID}, &customer); err != nil {
		return nil, err
	}
	return &customer, nil
}

// CustomerDelete removes a billing profile and returns what was deleted.
// The result is nil when the gateway returns no payload.
func (c *Client) CustomerDelete(ctx context.Context, customerUID string) (*Customer, error) {
	var customer *Customer
	if err := c.call(ctx, opCustomerDelete, Params{FieldCustomerUID: customerUID}, &customer); err != nil {
		return nil, err
	}
	return customer, nil
}
