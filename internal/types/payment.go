package types

// PaymentStatus is the status string the gateway reports for a payment
type PaymentStatus string

const (
	PaymentStatusReady     PaymentStatus = "ready"
	PaymentStatusPaid      PaymentStatus = "paid"
	PaymentStatusCancelled PaymentStatus = "cancelled"
	PaymentStatusFailed    PaymentStatus = "failed"
)

func (s PaymentStatus) String() string {
	return string(s)
}

// ScheduleStatus is the status of a scheduled charge
type ScheduleStatus string

const (
	ScheduleStatusScheduled ScheduleStatus = "scheduled"
	ScheduleStatusExecuted  ScheduleStatus = "executed"
	ScheduleStatusRevoked   ScheduleStatus = "revoked"
)

func (s ScheduleStatus) String() string {
	return string(s)
}
