package iamport

import (
	"context"

	"github.com/flexprice/iamport-go/internal/validator"
	"github.com/samber/lo"
)

// PaySchedule registers future charges against params' customer_uid.
// params["schedules"] is a list of entries, each with merchant_uid,
// schedule_at (unix seconds) and amount. The request is sent as JSON.
func (c *Client) PaySchedule(ctx context.Context, params Params) ([]Schedule, error) {
	if err := validator.Required(opPaySchedule.required, params); err != nil {
		return nil, err
	}
	if err := validator.RequiredEach(scheduleEntryRequired, params[FieldSchedules]); err != nil {
		return nil, err
	}

	var schedules []Schedule
	if err := c.call(ctx, opPaySchedule, params, &schedules); err != nil {
		return nil, err
	}

	c.logger.Infow("charges scheduled",
		"customer_uid", params[FieldCustomerUID],
		"count", len(schedules))
	return schedules, nil
}

// ScheduleEntries registers typed entries for customerUID
func (c *Client) ScheduleEntries(ctx context.Context, customerUID string, entries []ScheduleEntry) ([]Schedule, error) {
	return c.PaySchedule(ctx, Params{
		FieldCustomerUID: customerUID,
		FieldSchedules: lo.Map(entries, func(e ScheduleEntry, _ int) Params {
			return e.Params()
		}),
	})
}

// PayUnschedule revokes scheduled charges of params' customer_uid. Passing
// merchant_uid limits the revocation to those charges.
func (c *Client) PayUnschedule(ctx context.Context, params Params) ([]Schedule, error) {
	var schedules []Schedule
	if err := c.call(ctx, opPayUnschedule, params, &schedules); err != nil {
		return nil, err
	}
	return schedules, nil
}
