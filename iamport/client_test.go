package iamport

import (
	"net/http"
	"testing"
	"time"

	"github.com/flexprice/iamport-go/internal/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type ClientSuite struct {
	testutil.GatewayTestSuite
	client *Client
}

func TestClient(t *testing.T) {
	suite.Run(t, new(ClientSuite))
}

func (s *ClientSuite) SetupTest() {
	s.GatewayTestSuite.SetupTest()

	client, err := NewClientFromConfig(s.GetConfig(), s.GetLogger())
	s.Require().NoError(err)
	s.client = client
}

func (s *ClientSuite) payment(status PaymentStatus, amount int64) map[string]any {
	return map[string]any{
		"imp_uid":      "imp_123",
		"merchant_uid": "order_1",
		"status":       string(status),
		"amount":       amount,
		"paid_at":      1700000000,
	}
}

func (s *ClientSuite) TestFind_PrefersMerchantUID() {
	gw := s.GetGateway()
	gw.RegisterSuccess(http.MethodGet, "payments/find/order_1", s.payment(PaymentStatusPaid, 5000))

	payment, err := s.client.FindWithParams(s.GetContext(), Params{
		FieldMerchantUID: "order_1",
		FieldImpUID:      "imp_999",
	})
	s.Require().NoError(err)
	s.Equal("order_1", payment.MerchantUID)
	s.True(payment.Amount.Equal(decimal.NewFromInt(5000)))
	s.Require().NotNil(payment.PaidTime())
	s.Equal(int64(1700000000), payment.PaidTime().Unix())

	req, ok := gw.LastRequest()
	s.Require().True(ok)
	s.Equal("/payments/find/order_1", req.Path)
	s.Empty(req.Query)
	s.Equal(testutil.TestAccessToken, req.Token)
}

func (s *ClientSuite) TestFind_ByImpUID() {
	gw := s.GetGateway()
	gw.RegisterSuccess(http.MethodGet, "payments/imp_123", s.payment(PaymentStatusReady, 1000))

	payment, err := s.client.FindWithParams(s.GetContext(), Params{FieldImpUID: "imp_123"})
	s.Require().NoError(err)
	s.Equal("imp_123", payment.ImpUID)
	s.Equal(PaymentStatusReady, payment.Status)
	s.Nil(payment.PaidTime())
}

func (s *ClientSuite) TestFind_WithoutKeyMakesNoRequest() {
	_, err := s.client.FindWithParams(s.GetContext(), Params{})
	s.True(IsMissingParameter(err))

	var missing *MissingParameterError
	s.Require().ErrorAs(err, &missing)
	s.Equal([]string{FieldMerchantUID, FieldImpUID}, missing.Fields)

	_, err = s.client.Find(s.GetContext(), LookupKey{})
	s.True(IsMissingParameter(err))
	s.Zero(s.GetGateway().Hits())
}

func (s *ClientSuite) TestMissingParametersMakeNoRequest() {
	ctx := s.GetContext()
	tests := []struct {
		name    string
		call    func() error
		missing []string
	}{
		{
			name: "pay_again without customer_uid",
			call: func() error {
				_, err := s.client.PayAgain(ctx, Params{FieldMerchantUID: "m1", FieldAmount: 1000})
				return err
			},
			missing: []string{FieldCustomerUID},
		},
		{
			name: "pay_onetime without card data",
			call: func() error {
				_, err := s.client.PayOnetime(ctx, Params{FieldMerchantUID: "m1", FieldAmount: 1000, "expiry": "2030-01"})
				return err
			},
			missing: []string{"card_number", "birth", "pwd_2digit"},
		},
		{
			name: "pay_foreign without expiry",
			call: func() error {
				_, err := s.client.PayForeign(ctx, Params{FieldMerchantUID: "m1", FieldAmount: 1000, "card_number": "4111"})
				return err
			},
			missing: []string{"expiry"},
		},
		{
			name: "customer_create without birth",
			call: func() error {
				_, err := s.client.CustomerCreate(ctx, Params{FieldCustomerUID: "c1", "card_number": "4111", "expiry": "2030-01"})
				return err
			},
			missing: []string{"birth"},
		},
		{
			name: "pay_unschedule without customer_uid",
			call: func() error {
				_, err := s.client.PayUnschedule(ctx, Params{FieldMerchantUID: "m1"})
				return err
			},
			missing: []string{FieldCustomerUID},
		},
		{
			name: "pay_schedule without schedules",
			call: func() error {
				_, err := s.client.PaySchedule(ctx, Params{FieldCustomerUID: "c1"})
				return err
			},
			missing: []string{FieldSchedules},
		},
		{
			name: "pay_schedule entry without schedule_at",
			call: func() error {
				_, err := s.client.PaySchedule(ctx, Params{
					FieldCustomerUID: "c1",
					FieldSchedules: []Params{
						{FieldMerchantUID: "m1", "schedule_at": 1700000000, FieldAmount: 1000},
						{FieldMerchantUID: "m2", FieldAmount: 1000},
					},
				})
				return err
			},
			missing: []string{"schedule_at"},
		},
		{
			name: "customer_get with empty uid",
			call: func() error {
				_, err := s.client.CustomerGet(ctx, "")
				return err
			},
			missing: []string{FieldCustomerUID},
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			err := tt.call()
			s.Require().Error(err)
			s.True(IsMissingParameter(err))

			var missing *MissingParameterError
			s.Require().ErrorAs(err, &missing)
			s.Equal(tt.missing, missing.Fields)
		})
	}
	s.Zero(s.GetGateway().Hits())
}

func (s *ClientSuite) TestPayAgain_SendsForm() {
	gw := s.GetGateway()
	gw.RegisterSuccess(http.MethodPost, "subscribe/payments/again", s.payment(PaymentStatusPaid, 9900))

	payment, err := s.client.PayAgain(s.GetContext(), Params{
		FieldCustomerUID: "cust_1",
		FieldMerchantUID: "order_1",
		FieldAmount:      decimal.NewFromInt(9900),
		"name":           "monthly plan",
	})
	s.Require().NoError(err)
	s.Equal(PaymentStatusPaid, payment.Status)

	req, _ := gw.LastRequest()
	s.Equal(http.MethodPost, req.Method)
	s.Equal("application/x-www-form-urlencoded", req.ContentType)
	s.Equal("cust_1", req.Form.Get(FieldCustomerUID))
	s.Equal("9900", req.Form.Get(FieldAmount))
	s.Equal("monthly plan", req.Form.Get("name"))
	s.Equal(1, gw.Exchanges())
}

func (s *ClientSuite) TestEveryCallExchangesToken() {
	gw := s.GetGateway()
	gw.RegisterSuccess(http.MethodGet, "payments/imp_123", s.payment(PaymentStatusPaid, 1000))

	for i := 0; i < 3; i++ {
		_, err := s.client.FindByImpUID(s.GetContext(), "imp_123")
		s.Require().NoError(err)
	}
	s.Equal(3, gw.Exchanges())
}

func (s *ClientSuite) TestTokenCacheReusesToken() {
	cfg := s.GetConfig()
	cfg.TokenCache.Enabled = true
	client, err := NewClientFromConfig(cfg, s.GetLogger())
	s.Require().NoError(err)

	gw := s.GetGateway()
	gw.RegisterSuccess(http.MethodGet, "payments/imp_123", s.payment(PaymentStatusPaid, 1000))

	for i := 0; i < 3; i++ {
		_, err := client.FindByImpUID(s.GetContext(), "imp_123")
		s.Require().NoError(err)
	}
	s.Equal(1, gw.Exchanges())
	s.Len(gw.Requests(), 3)

	client.InvalidateToken(s.GetContext())
	_, err = client.FindByImpUID(s.GetContext(), "imp_123")
	s.Require().NoError(err)
	s.Equal(2, gw.Exchanges())
}

func (s *ClientSuite) TestShortLivedTokenIsNotCached() {
	cfg := s.GetConfig()
	cfg.TokenCache.Enabled = true
	client, err := NewClientFromConfig(cfg, s.GetLogger())
	s.Require().NoError(err)

	gw := s.GetGateway()
	gw.SetTokenTTL(30 * time.Second)
	defer gw.SetTokenTTL(30 * time.Minute)
	gw.RegisterSuccess(http.MethodGet, "payments/imp_123", s.payment(PaymentStatusPaid, 1000))

	for i := 0; i < 2; i++ {
		_, err := client.FindByImpUID(s.GetContext(), "imp_123")
		s.Require().NoError(err)
	}
	s.Equal(2, gw.Exchanges())
}

func (s *ClientSuite) TestCustomer() {
	gw := s.GetGateway()
	customer := map[string]any{
		"customer_uid": "cust_1",
		"card_name":    "Test Card",
		"inserted":     1700000000,
	}
	gw.RegisterSuccess(http.MethodPost, "subscribe/customers/cust_1", customer)
	gw.RegisterSuccess(http.MethodGet, "subscribe/customers/cust_1", customer)
	gw.RegisterSuccess(http.MethodDelete, "subscribe/customers/cust_1", customer)

	created, err := s.client.CustomerCreate(s.GetContext(), Params{
		FieldCustomerUID: "cust_1",
		"card_number":    "4111-1111-1111-1111",
		"expiry":         "2030-01",
		"birth":          "900101",
	})
	s.Require().NoError(err)
	s.Equal("Test Card", created.CardName)

	req, _ := gw.LastRequest()
	s.Equal("cust_1", req.Form.Get(FieldCustomerUID))

	got, err := s.client.CustomerGet(s.GetContext(), "cust_1")
	s.Require().NoError(err)
	s.Equal("cust_1", got.CustomerUID)
	req, _ = gw.LastRequest()
	s.Empty(req.Query)

	deleted, err := s.client.CustomerDelete(s.GetContext(), "cust_1")
	s.Require().NoError(err)
	s.Require().NotNil(deleted)
	s.Equal("cust_1", deleted.CustomerUID)
}

func (s *ClientSuite) TestCustomerDelete_NullPayload() {
	s.GetGateway().RegisterSuccess(http.MethodDelete, "subscribe/customers/gone", nil)

	deleted, err := s.client.CustomerDelete(s.GetContext(), "gone")
	s.Require().NoError(err)
	s.Nil(deleted)
}

func (s *ClientSuite) TestPaySchedule_SendsJSON() {
	gw := s.GetGateway()
	gw.RegisterSuccess(http.MethodPost, "subscribe/payments/schedule", []map[string]any{
		{"customer_uid": "cust_1", "merchant_uid": "sched_1", "schedule_at": 1800000000, "amount": 9900, "schedule_status": "scheduled"},
	})

	at := time.Unix(1800000000, 0)
	schedules, err := s.client.ScheduleEntries(s.GetContext(), "cust_1", []ScheduleEntry{
		{MerchantUID: "sched_1", ScheduleAt: at, Amount: decimal.NewFromInt(9900), Name: "monthly plan"},
	})
	s.Require().NoError(err)
	s.Require().Len(schedules, 1)
	s.Equal(ScheduleStatusScheduled, schedules[0].ScheduleStatus)
	s.Equal(at.Unix(), schedules[0].ScheduleTime().Unix())

	req, _ := gw.LastRequest()
	s.Equal("application/json", req.ContentType)
	s.Equal("cust_1", req.JSON[FieldCustomerUID])

	entries, ok := req.JSON[FieldSchedules].([]any)
	s.Require().True(ok)
	s.Require().Len(entries, 1)
	entry := entries[0].(map[string]any)
	s.Equal("sched_1", entry[FieldMerchantUID])
	s.EqualValues(1800000000, entry["schedule_at"])
	s.EqualValues(9900, entry[FieldAmount])
	s.Equal("monthly plan", entry["name"])
}

func (s *ClientSuite) TestPayUnschedule() {
	gw := s.GetGateway()
	gw.RegisterSuccess(http.MethodPost, "subscribe/payments/unschedule", []map[string]any{
		{"customer_uid": "cust_1", "merchant_uid": "sched_1", "schedule_status": "revoked", "revoked_at": 1700000000},
	})

	schedules, err := s.client.PayUnschedule(s.GetContext(), Params{
		FieldCustomerUID: "cust_1",
		FieldMerchantUID: []string{"sched_1"},
	})
	s.Require().NoError(err)
	s.Require().Len(schedules, 1)
	s.Equal(ScheduleStatusRevoked, schedules[0].ScheduleStatus)

	req, _ := gw.LastRequest()
	s.Equal([]string{"sched_1"}, req.Form[FieldMerchantUID])
}

func (s *ClientSuite) TestCancelPayloads() {
	gw := s.GetGateway()
	gw.RegisterSuccess(http.MethodPost, "payments/cancel", s.payment(PaymentStatusCancelled, 5000))

	_, err := s.client.CancelWithParams(s.GetContext(), Params{FieldReason: "R", FieldImpUID: "I"})
	s.Require().NoError(err)
	req, _ := gw.LastRequest()
	s.Equal("I", req.Form.Get(FieldImpUID))
	s.Equal("R", req.Form.Get(FieldReason))
	s.Len(req.Form, 2)

	_, err = s.client.CancelWithParams(s.GetContext(), Params{FieldReason: "R", FieldMerchantUID: "M"})
	s.Require().NoError(err)
	req, _ = gw.LastRequest()
	s.Equal("M", req.Form.Get(FieldMerchantUID))
	s.Equal("R", req.Form.Get(FieldReason))
	s.Len(req.Form, 2)

	_, err = s.client.CancelByMerchantUID(s.GetContext(), "M", "R", Params{"checksum": 5000})
	s.Require().NoError(err)
	req, _ = gw.LastRequest()
	s.Equal("5000", req.Form.Get("checksum"))
}

func (s *ClientSuite) TestCancel_PrefersImpUID() {
	gw := s.GetGateway()
	gw.RegisterSuccess(http.MethodPost, "payments/cancel", s.payment(PaymentStatusCancelled, 5000))

	_, err := s.client.CancelWithParams(s.GetContext(), Params{
		FieldReason:      "R",
		FieldImpUID:      "I",
		FieldMerchantUID: "M",
	})
	s.Require().NoError(err)
	req, _ := gw.LastRequest()
	s.Equal("I", req.Form.Get(FieldImpUID))
}

func (s *ClientSuite) TestCancel_NonStringValuesAreSentAsText() {
	gw := s.GetGateway()
	gw.RegisterSuccess(http.MethodPost, "payments/cancel", s.payment(PaymentStatusCancelled, 5000))

	_, err := s.client.CancelWithParams(s.GetContext(), Params{FieldReason: 404, FieldImpUID: 123})
	s.Require().NoError(err)

	req, _ := gw.LastRequest()
	s.Equal("123", req.Form.Get(FieldImpUID))
	s.Equal("404", req.Form.Get(FieldReason))
}

func (s *ClientSuite) TestCancel_MissingIdentifierOrReason() {
	_, err := s.client.CancelWithParams(s.GetContext(), Params{FieldReason: "R"})
	s.True(IsMissingParameter(err))

	_, err = s.client.CancelWithParams(s.GetContext(), Params{FieldImpUID: "I"})
	s.True(IsMissingParameter(err))

	var missing *MissingParameterError
	s.Require().ErrorAs(err, &missing)
	s.Equal([]string{FieldReason}, missing.Fields)
	s.Zero(s.GetGateway().Hits())
}

func (s *ClientSuite) TestIsPaid() {
	gw := s.GetGateway()
	gw.RegisterSuccess(http.MethodGet, "payments/find/order_1", s.payment(PaymentStatusPaid, 5000))

	paid, err := s.client.IsPaid(s.GetContext(), decimal.NewFromInt(5000), ByMerchantUID("order_1"))
	s.Require().NoError(err)
	s.True(paid)

	paid, err = s.client.IsPaid(s.GetContext(), decimal.NewFromInt(4000), ByMerchantUID("order_1"))
	s.Require().NoError(err)
	s.False(paid)
}

func (s *ClientSuite) TestPrepareValidate() {
	gw := s.GetGateway()
	gw.RegisterSuccess(http.MethodPost, "payments/prepare", map[string]any{"merchant_uid": "order_1", "amount": 5000})
	gw.RegisterSuccess(http.MethodGet, "payments/prepare/order_1", map[string]any{"merchant_uid": "order_1", "amount": 5000})

	prepared, err := s.client.Prepare(s.GetContext(), "order_1", decimal.NewFromInt(5000))
	s.Require().NoError(err)
	s.Equal("order_1", prepared.MerchantUID)

	req, _ := gw.LastRequest()
	s.Equal("order_1", req.Form.Get(FieldMerchantUID))
	s.Equal("5000", req.Form.Get(FieldAmount))

	ok, err := s.client.PrepareValidate(s.GetContext(), "order_1", decimal.NewFromInt(5000))
	s.Require().NoError(err)
	s.True(ok)

	ok, err = s.client.PrepareValidate(s.GetContext(), "order_1", decimal.NewFromInt(4999))
	s.Require().NoError(err)
	s.False(ok)
}

func (s *ClientSuite) TestTransportError() {
	s.GetGateway().RegisterResponse(http.MethodGet, "payments/imp_500", testutil.MockResponse{
		StatusCode: http.StatusInternalServerError,
		Body:       []byte(`{"code":0,"response":{"imp_uid":"imp_500"}}`),
	})

	_, err := s.client.FindByImpUID(s.GetContext(), "imp_500")
	s.True(IsTransport(err))

	var te *TransportError
	s.Require().ErrorAs(err, &te)
	s.Equal(http.StatusInternalServerError, te.StatusCode)
	s.Equal("Internal Server Error", te.Reason)
}

func (s *ClientSuite) TestBusinessError() {
	s.GetGateway().RegisterEnvelope(http.MethodGet, "payments/find/missing", 1, "not found", nil)

	_, err := s.client.FindByMerchantUID(s.GetContext(), "missing")
	s.True(IsBusiness(err))
	s.False(IsTransport(err))

	var be *BusinessError
	s.Require().ErrorAs(err, &be)
	s.Equal(1, be.Code)
	s.Equal("not found", be.Message)
}

func (s *ClientSuite) TestMalformedResponse() {
	s.GetGateway().RegisterResponse(http.MethodGet, "payments/imp_bad", testutil.MockResponse{
		StatusCode: http.StatusOK,
		Body:       []byte(`<html>maintenance</html>`),
	})

	_, err := s.client.FindByImpUID(s.GetContext(), "imp_bad")
	s.True(IsMalformedResponse(err))
}

func (s *ClientSuite) TestConnectionFailure() {
	cfg := s.GetConfig()
	cfg.Iamport.BaseURL = "http://127.0.0.1:1/"
	cfg.HTTP.Timeout = time.Second
	client, err := NewClientFromConfig(cfg, s.GetLogger())
	s.Require().NoError(err)

	_, err = client.FindByImpUID(s.GetContext(), "imp_1")
	s.True(IsConnection(err))
}

func (s *ClientSuite) TestInvalidCredentialsAreBusinessErrors() {
	s.GetGateway().RegisterEnvelope(http.MethodGet, "payments/imp_1", -1, "unauthorized", nil)

	_, err := s.client.FindByImpUID(s.GetContext(), "imp_1")
	var be *BusinessError
	s.Require().ErrorAs(err, &be)
	s.Equal(-1, be.Code)
}
