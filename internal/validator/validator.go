package validator

import (
	"sync"

	ierr "github.com/flexprice/iamport-go/internal/errors"
	"github.com/go-playground/validator/v10"
	"github.com/samber/lo"
)

var (
	validate *validator.Validate
	once     sync.Once
)

func NewValidator() *validator.Validate {
	once.Do(func() {
		validate = validator.New()
	})
	return validate
}

func GetValidator() *validator.Validate {
	return NewValidator()
}

// ValidateRequest runs struct tag validation on req
func ValidateRequest(req interface{}) error {
	if err := GetValidator().Struct(req); err != nil {
		details := make(map[string]any)
		var validateErrs validator.ValidationErrors
		if ierr.As(err, &validateErrs) {
			for _, err := range validateErrs {
				details[err.Field()] = err.Error()
			}
		}
		return ierr.WithError(err).
			WithHint("Request validation failed").
			WithReportableDetails(details).
			Mark(ierr.ErrValidation)
	}
	return nil
}

// Required checks that every name in required is a key of params.
// Only presence is checked: a key holding an empty value satisfies it.
// Missing names are reported in the order they appear in required.
func Required(required []string, params map[string]any) error {
	if required == nil {
		return ierr.NewError("required parameter list is nil").
			WithHint("Operations must declare their required parameters as a list").
			Mark(ierr.ErrInvalidValidatorSpec)
	}

	missing := lo.Filter(required, func(name string, _ int) bool {
		_, ok := params[name]
		return !ok
	})
	if len(missing) > 0 {
		return ierr.NewMissingParameter(missing...)
	}
	return nil
}

// RequiredEach applies the required check to every entry of a list of
// parameter maps and reports the first missing field. Fields are checked in
// order and, for each field, all entries before moving to the next field.
func RequiredEach(required []string, items any) error {
	if required == nil {
		return ierr.NewError("required parameter list is nil").
			WithHint("Operations must declare their required parameters as a list").
			Mark(ierr.ErrInvalidValidatorSpec)
	}

	entries, ok := ToEntries(items)
	if !ok {
		return ierr.NewMissingParameter("schedules")
	}

	for _, name := range required {
		for _, entry := range entries {
			if _, ok := entry[name]; !ok {
				return ierr.NewMissingParameter(name)
			}
		}
	}
	return nil
}

// ToEntries normalises a list of parameter maps
func ToEntries(items any) ([]map[string]any, bool) {
	switch v := items.(type) {
	case []map[string]any:
		return v, true
	case []any:
		entries := make([]map[string]any, 0, len(v))
		for _, item := range v {
			entry, ok := toMap(item)
			if !ok {
				return nil, false
			}
			entries = append(entries, entry)
		}
		return entries, true
	default:
		return toMapSlice(items)
	}
}
