package validate

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation"
)

// FieldErrors maps a payload field name to the messages rejecting it. It is the
// wire shape for validation failures: {"email": ["cannot be blank"], ...}.
type FieldErrors map[string][]string

func (fe FieldErrors) Error() string {
	keys := make([]string, 0, len(fe))
	for k := range fe {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+strings.Join(fe[k], "; "))
	}
	return strings.Join(parts, ", ")
}

func (fe FieldErrors) Add(field, message string) {
	fe[field] = append(fe[field], message)
}

// Merge folds other into fe without overriding fields fe already rejects, so a
// type-level error ("must be a valid boolean") wins over the blank-value error
// the rule set would report for the same field.
func (fe FieldErrors) Merge(other FieldErrors) {
	for field, msgs := range other {
		if _, taken := fe[field]; taken {
			continue
		}
		fe[field] = msgs
	}
}

// FromRules lowers an ozzo-validation error into FieldErrors. Field names come
// from json tags (validation.ErrorTag), so keys match the payload wire names.
func FromRules(err error) FieldErrors {
	fe := FieldErrors{}
	var verrs validation.Errors
	if errors.As(err, &verrs) {
		for field, ferr := range verrs {
			fe.Add(field, ferr.Error())
		}
		return fe
	}
	if err != nil {
		fe.Add("non_field_errors", err.Error())
	}
	return fe
}

// FromDecode maps a json type mismatch to the offending field. Other decode
// failures (syntax errors) are left to the caller.
func FromDecode(err error) (FieldErrors, bool) {
	var te *json.UnmarshalTypeError
	if !errors.As(err, &te) {
		return nil, false
	}
	field := te.Field
	if field == "" {
		field = "non_field_errors"
	}
	return FieldErrors{field: {typeMessage(te.Type)}}, true
}

func typeMessage(t reflect.Type) string {
	switch t.Kind() {
	case reflect.Bool:
		return "must be a valid boolean"
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return "must be a valid integer"
	case reflect.Float32, reflect.Float64:
		return "must be a valid number"
	case reflect.String:
		return "must be a valid string"
	default:
		return fmt.Sprintf("must be a valid %s", t.Kind())
	}
}

// NormalizeEmail lower-cases and trims the login identity so uniqueness and
// lookups are case-insensitive end to end.
func NormalizeEmail(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// NotBlankPtr rejects a present-but-empty optional string. A nil pointer means
// the field was absent from a partial payload and is skipped.
func NotBlankPtr(v interface{}) error {
	s, ok := v.(*string)
	if !ok || s == nil {
		return nil
	}
	if strings.TrimSpace(*s) == "" {
		return errors.New("cannot be blank")
	}
	return nil
}

// PositiveQuantity enforces the catalog rule that a quantity, whenever
// submitted, is strictly greater than zero. The message is part of the API
// contract.
func PositiveQuantity(v interface{}) error {
	q, ok := v.(*int)
	if !ok || q == nil {
		return nil
	}
	if *q <= 0 {
		return errors.New("Ensure this value is an integer bigger than 0")
	}
	return nil
}

// NonNegativePrice allows free items but rejects negative prices.
func NonNegativePrice(v interface{}) error {
	p, ok := v.(*float64)
	if !ok || p == nil {
		return nil
	}
	if *p < 0 {
		return errors.New("must be no less than 0")
	}
	return nil
}

// MaxLenPtr bounds an optional string field.
func MaxLenPtr(max int) validation.RuleFunc {
	return func(v interface{}) error {
		s, ok := v.(*string)
		if !ok || s == nil {
			return nil
		}
		if len(*s) > max {
			return fmt.Errorf("the length must be no more than %d", max)
		}
		return nil
	}
}
