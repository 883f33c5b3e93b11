package iamport

import (
	"fmt"

	ierr "github.com/flexprice/iamport-go/internal/errors"
	"github.com/flexprice/iamport-go/internal/types"
)

// Params are the fields of a request, keyed by their gateway names.
// Optional gateway fields can be included alongside the required ones.
type Params map[string]any

// Clone returns a shallow copy
func (p Params) Clone() Params {
	cp := make(Params, len(p))
	for k, v := range p {
		cp[k] = v
	}
	return cp
}

// str returns the textual form of p[key]; absent and nil values are empty
func (p Params) str(key string) string {
	switch v := p[key].(type) {
	case nil:
		return ""
	case string:
		return v
	default:
		return fmt.Sprint(v)
	}
}

const (
	FieldMerchantUID = "merchant_uid"
	FieldImpUID      = "imp_uid"
	FieldCustomerUID = "customer_uid"
	FieldReason      = "reason"
	FieldAmount      = "amount"
	FieldSchedules   = "schedules"
)

type lookupKind int

const (
	lookupNone lookupKind = iota
	lookupMerchantUID
	lookupImpUID
)

// LookupKey identifies a payment either by the caller's merchant_uid or by
// the gateway's imp_uid. The zero value identifies nothing.
type LookupKey struct {
	kind  lookupKind
	value string
}

func ByMerchantUID(merchantUID string) LookupKey {
	return LookupKey{kind: lookupMerchantUID, value: merchantUID}
}

func ByImpUID(impUID string) LookupKey {
	return LookupKey{kind: lookupImpUID, value: impUID}
}

// Field is the gateway parameter name of the key
func (k LookupKey) Field() string {
	switch k.kind {
	case lookupMerchantUID:
		return FieldMerchantUID
	case lookupImpUID:
		return FieldImpUID
	}
	return ""
}

func (k LookupKey) Value() string { return k.value }

func (k LookupKey) IsZero() bool { return k.kind == lookupNone || k.value == "" }

func (k LookupKey) String() string {
	if k.IsZero() {
		return "<none>"
	}
	return k.Field() + "=" + k.value
}

func (k LookupKey) validate() error {
	if k.IsZero() {
		return ierr.NewMissingOneOf(FieldMerchantUID, FieldImpUID)
	}
	return nil
}

// LookupFromParams picks the key used by find: merchant_uid wins over imp_uid
func LookupFromParams(p Params) (LookupKey, error) {
	if v := p.str(FieldMerchantUID); v != "" {
		return ByMerchantUID(v), nil
	}
	if v := p.str(FieldImpUID); v != "" {
		return ByImpUID(v), nil
	}
	return LookupKey{}, ierr.NewMissingOneOf(FieldMerchantUID, FieldImpUID)
}

// cancelLookupFromParams picks the key used by cancel: imp_uid wins over
// merchant_uid. The chosen key is removed from the returned extras.
func cancelLookupFromParams(p Params) (LookupKey, Params, error) {
	extra := p.Clone()
	impUID := extra.str(FieldImpUID)
	merchantUID := extra.str(FieldMerchantUID)
	delete(extra, FieldImpUID)

	if impUID != "" {
		return ByImpUID(impUID), extra, nil
	}
	delete(extra, FieldMerchantUID)
	if merchantUID != "" {
		return ByMerchantUID(merchantUID), extra, nil
	}
	return LookupKey{}, nil, ierr.NewMissingOneOf(FieldImpUID, FieldMerchantUID)
}

// NewMerchantUID returns a unique, sortable merchant_uid with the given prefix
func NewMerchantUID(prefix string) string {
	return types.GenerateUUIDWithPrefix(prefix)
}
