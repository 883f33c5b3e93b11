package gateway

import (
	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Envelope is the fixed shape of every gateway response. Response is only
// meaningful when Code is zero.
type Envelope struct {
	Code     *int                `json:"code"`
	Message  string              `json:"message"`
	Response jsoniter.RawMessage `json:"response"`
}

// Decode unmarshals a classified response payload into v. A null or absent
// payload leaves v untouched.
func Decode(raw []byte, v any) error {
	if isNull(raw) {
		return nil
	}
	return json.Unmarshal(raw, v)
}

func isNull(raw []byte) bool {
	return len(raw) == 0 || string(raw) == "null"
}
