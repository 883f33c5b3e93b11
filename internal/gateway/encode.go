package gateway

import (
	"fmt"
	"net/url"
	"reflect"
	"strconv"

	ierr "github.com/flexprice/iamport-go/internal/errors"
)

// EncodeForm flattens params into form/query values. Scalars use their
// textual form and slices of scalars become repeated keys. Nil values are
// left out. Nested maps have no form representation and are rejected.
func EncodeForm(params map[string]any) (url.Values, error) {
	values := url.Values{}
	for key, value := range params {
		rv := reflect.ValueOf(value)
		if value == nil || (rv.Kind() == reflect.Pointer && rv.IsNil()) {
			continue
		}
		switch rv.Kind() {
		case reflect.Slice, reflect.Array:
			if _, ok := value.([]byte); ok {
				values.Set(key, string(value.([]byte)))
				continue
			}
			for i := 0; i < rv.Len(); i++ {
				s, err := scalar(key, rv.Index(i).Interface())
				if err != nil {
					return nil, err
				}
				values.Add(key, s)
			}
		default:
			s, err := scalar(key, value)
			if err != nil {
				return nil, err
			}
			values.Set(key, s)
		}
	}
	return values, nil
}

func scalar(key string, value any) (string, error) {
	switch v := value.(type) {
	case string:
		return v, nil
	case bool:
		return strconv.FormatBool(v), nil
	case int:
		return strconv.Itoa(v), nil
	case int64:
		return strconv.FormatInt(v, 10), nil
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), nil
	case fmt.Stringer:
		return v.String(), nil
	}

	rv := reflect.ValueOf(value)
	if rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return "", nil
		}
		return scalar(key, rv.Elem().Interface())
	}

	switch rv.Kind() {
	case reflect.Map, reflect.Struct, reflect.Slice, reflect.Array, reflect.Func, reflect.Chan:
		return "", ierr.NewErrorf("parameter %q cannot be form encoded", key).
			WithHint("Nested values are only supported by JSON requests").
			WithReportableDetails(map[string]any{"parameter": key}).
			Mark(ierr.ErrValidation)
	}
	return fmt.Sprint(value), nil
}
