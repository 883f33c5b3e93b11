package iamport

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	ierr "github.com/flexprice/iamport-go/internal/errors"
	"github.com/flexprice/iamport-go/internal/gateway"
	"github.com/flexprice/iamport-go/internal/validator"
)

// operation describes one gateway endpoint. path may embed a single
// {pathParam} placeholder that is filled from the call's params.
type operation struct {
	name      string
	method    string
	path      string
	pathParam string
	required  []string
	json      bool
}

var (
	opFindByMerchantUID = operation{
		name:      "find_by_merchant_uid",
		method:    http.MethodGet,
		path:      "payments/find/{merchant_uid}",
		pathParam: FieldMerchantUID,
		required:  []string{FieldMerchantUID},
	}
	opFindByImpUID = operation{
		name:      "find_by_imp_uid",
		method:    http.MethodGet,
		path:      "payments/{imp_uid}",
		pathParam: FieldImpUID,
		required:  []string{FieldImpUID},
	}
	opPayOnetime = operation{
		name:     "pay_onetime",
		method:   http.MethodPost,
		path:     "subscribe/payments/onetime",
		required: []string{FieldMerchantUID, FieldAmount, "card_number", "expiry", "birth", "pwd_2digit"},
	}
	opPayAgain = operation{
		name:     "pay_again",
		method:   http.MethodPost,
		path:     "subscribe/payments/again",
		required: []string{FieldCustomerUID, FieldMerchantUID, FieldAmount},
	}
	opCustomerCreate = operation{
		name:      "customer_create",
		method:    http.MethodPost,
		path:      "subscribe/customers/{customer_uid}",
		pathParam: FieldCustomerUID,
		required:  []string{FieldCustomerUID, "card_number", "expiry", "birth"},
	}
	opCustomerGet = operation{
		name:      "customer_get",
		method:    http.MethodGet,
		path:      "subscribe/customers/{customer_uid}",
		pathParam: FieldCustomerUID,
		required:  []string{FieldCustomerUID},
	}
	opCustomerDelete = operation{
		name:      "customer_delete",
		method:    http.MethodDelete,
		path:      "subscribe/customers/{customer_uid}",
		pathParam: FieldCustomerUID,
		required:  []string{FieldCustomerUID},
	}
	opPayForeign = operation{
		name:     "pay_foreign",
		method:   http.MethodPost,
		path:     "subscribe/payments/foreign",
		required: []string{FieldMerchantUID, FieldAmount, "card_number", "expiry"},
	}
	opPaySchedule = operation{
		name:     "pay_schedule",
		method:   http.MethodPost,
		path:     "subscribe/payments/schedule",
		required: []string{FieldCustomerUID, FieldSchedules},
		json:     true,
	}
	opPayUnschedule = operation{
		name:     "pay_unschedule",
		method:   http.MethodPost,
		path:     "subscribe/payments/unschedule",
		required: []string{FieldCustomerUID},
	}
	opCancel = operation{
		name:     "cancel",
		method:   http.MethodPost,
		path:     "payments/cancel",
		required: []string{FieldReason},
	}
	opPrepare = operation{
		name:     "prepare",
		method:   http.MethodPost,
		path:     "payments/prepare",
		required: []string{FieldMerchantUID, FieldAmount},
	}
	opGetPrepared = operation{
		name:      "get_prepared",
		method:    http.MethodGet,
		path:      "payments/prepare/{merchant_uid}",
		pathParam: FieldMerchantUID,
		required:  []string{FieldMerchantUID},
	}
)

// scheduleEntryRequired are the fields every entry of schedules must carry
var scheduleEntryRequired = []string{FieldMerchantUID, "schedule_at", FieldAmount}

// request checks params against the operation and builds the gateway request.
// Nothing is sent when it fails.
func (op operation) request(params Params) (gateway.Request, error) {
	if err := validator.Required(op.required, params); err != nil {
		return gateway.Request{}, err
	}

	req := gateway.Request{
		Operation: op.name,
		Method:    op.method,
		Path:      op.path,
		Params:    params,
		JSON:      op.json,
	}
	if op.pathParam == "" {
		return req, nil
	}

	value := params.str(op.pathParam)
	if value == "" {
		return gateway.Request{}, ierr.NewMissingParameter(op.pathParam)
	}
	req.Path = strings.Replace(op.path, "{"+op.pathParam+"}", url.PathEscape(value), 1)

	// Only bodies repeat the path parameter; queries would duplicate it.
	if op.method != http.MethodPost {
		rest := params.Clone()
		delete(rest, op.pathParam)
		req.Params = rest
	}
	return req, nil
}

// call validates params, sends the operation and decodes the response
// payload into out. out may be nil when the payload is not needed.
func (c *Client) call(ctx context.Context, op operation, params Params, out any) error {
	req, err := op.request(params)
	if err != nil {
		return err
	}

	payload, err := c.exec.Execute(ctx, req)
	if err != nil {
		return err
	}
	if out == nil {
		return nil
	}

	if err := gateway.Decode(payload, out); err != nil {
		return ierr.WithError(err).
			WithHintf("Response of %s could not be decoded", op.name).
			WithReportableDetails(map[string]any{"operation": op.name}).
			Mark(ierr.ErrMalformedResponse)
	}
	return nil
}
