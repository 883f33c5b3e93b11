package iamport

import (
	"time"

	"github.com/flexprice/iamport-go/internal/types"
	jsoniter "github.com/json-iterator/go"
	"github.com/shopspring/decimal"
)

type (
	PaymentStatus  = types.PaymentStatus
	ScheduleStatus = types.ScheduleStatus
)

const (
	PaymentStatusReady     = types.PaymentStatusReady
	PaymentStatusPaid      = types.PaymentStatusPaid
	PaymentStatusCancelled = types.PaymentStatusCancelled
	PaymentStatusFailed    = types.PaymentStatusFailed

	ScheduleStatusScheduled = types.ScheduleStatusScheduled
	ScheduleStatusExecuted  = types.ScheduleStatusExecuted
	ScheduleStatusRevoked   = types.ScheduleStatusRevoked
)

// Payment is a payment record as returned by find and the charge endpoints.
// Timestamps are unix seconds; zero means the event has not happened.
type Payment struct {
	ImpUID        string          `json:"imp_uid"`
	MerchantUID   string          `json:"merchant_uid"`
	CustomerUID   string          `json:"customer_uid,omitempty"`
	PayMethod     string          `json:"pay_method"`
	Channel       string          `json:"channel,omitempty"`
	PGProvider    string          `json:"pg_provider"`
	PGTID         string          `json:"pg_tid"`
	ApplyNum      string          `json:"apply_num"`
	CardName      string          `json:"card_name,omitempty"`
	CardNumber    string          `json:"card_number,omitempty"`
	Name          string          `json:"name"`
	Amount        decimal.Decimal `json:"amount"`
	CancelAmount  decimal.Decimal `json:"cancel_amount"`
	Currency      string          `json:"currency"`
	BuyerName     string          `json:"buyer_name,omitempty"`
	BuyerEmail    string          `json:"buyer_email,omitempty"`
	BuyerTel      string          `json:"buyer_tel,omitempty"`
	Status        PaymentStatus   `json:"status"`
	StartedAt     int64           `json:"started_at"`
	PaidAt        int64           `json:"paid_at"`
	FailedAt      int64           `json:"failed_at"`
	CancelledAt   int64           `json:"cancelled_at"`
	FailReason    string          `json:"fail_reason,omitempty"`
	CancelReason  string          `json:"cancel_reason,omitempty"`
	ReceiptURL    string          `json:"receipt_url,omitempty"`
	CustomData    string          `json:"custom_data,omitempty"`
	CashReceipted bool            `json:"cash_receipt_issued,omitempty"`
}

func (p *Payment) PaidTime() *time.Time      { return types.UnixToTime(p.PaidAt) }
func (p *Payment) FailedTime() *time.Time    { return types.UnixToTime(p.FailedAt) }
func (p *Payment) CancelledTime() *time.Time { return types.UnixToTime(p.CancelledAt) }

// Customer is a stored billing profile used for recurring charges
type Customer struct {
	CustomerUID      string `json:"customer_uid"`
	PGProvider       string `json:"pg_provider,omitempty"`
	CardName         string `json:"card_name"`
	CardCode         string `json:"card_code,omitempty"`
	CardNumber       string `json:"card_number,omitempty"`
	CardType         string `json:"card_type,omitempty"`
	CustomerName     string `json:"customer_name,omitempty"`
	CustomerTel      string `json:"customer_tel,omitempty"`
	CustomerEmail    string `json:"customer_email,omitempty"`
	CustomerAddr     string `json:"customer_addr,omitempty"`
	CustomerPostcode string `json:"customer_postcode,omitempty"`
	Inserted         int64  `json:"inserted"`
	Updated          int64  `json:"updated"`
}

// Schedule is one scheduled charge against a billing profile
type Schedule struct {
	CustomerUID    string          `json:"customer_uid"`
	MerchantUID    string          `json:"merchant_uid"`
	ImpUID         string          `json:"imp_uid,omitempty"`
	ScheduleAt     int64           `json:"schedule_at"`
	ExecutedAt     int64           `json:"executed_at"`
	RevokedAt      int64           `json:"revoked_at"`
	Amount         decimal.Decimal `json:"amount"`
	Name           string          `json:"name,omitempty"`
	BuyerName      string          `json:"buyer_name,omitempty"`
	BuyerEmail     string          `json:"buyer_email,omitempty"`
	BuyerTel       string          `json:"buyer_tel,omitempty"`
	CustomData     string          `json:"custom_data,omitempty"`
	ScheduleStatus ScheduleStatus  `json:"schedule_status,omitempty"`
	PaymentStatus  PaymentStatus   `json:"payment_status,omitempty"`
}

func (s *Schedule) ScheduleTime() *time.Time { return types.UnixToTime(s.ScheduleAt) }

// ScheduleEntry is a typed entry for the schedules list of PaySchedule
type ScheduleEntry struct {
	MerchantUID string
	ScheduleAt  time.Time
	Amount      decimal.Decimal
	Name        string
	BuyerName   string
	BuyerEmail  string
	BuyerTel    string
}

// Params returns the entry in its wire form. The amount is sent as a JSON
// number.
func (e ScheduleEntry) Params() Params {
	p := Params{
		FieldMerchantUID: e.MerchantUID,
		"schedule_at":    types.TimeToUnix(e.ScheduleAt),
		FieldAmount:      jsoniter.Number(e.Amount.String()),
	}
	optional := map[string]string{
		"name":        e.Name,
		"buyer_name":  e.BuyerName,
		"buyer_email": e.BuyerEmail,
		"buyer_tel":   e.BuyerTel,
	}
	for k, v := range optional {
		if v != "" {
			p[k] = v
		}
	}
	return p
}

// Prepared is an amount registered ahead of checkout
type Prepared struct {
	MerchantUID string          `json:"merchant_uid"`
	Amount      decimal.Decimal `json:"amount"`
}
