package validate

import (
	"errors"
	"fmt"
	"strings"

	"github.com/nimasrn/finance-etl/internal/model"
)

var ErrRequired = errors.New("required field is empty")

// FieldError marks a row as structurally unusable because of one field.
type FieldError struct {
	Field  string
	Value  string
	Reason string
	Err    error
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s %q: %v", e.Field, e.Value, e.Err)
}

func (e *FieldError) Unwrap() error {
	return e.Err
}

// Field pairs a column name with its raw value.
type Field struct {
	Name  string
	Value string
}

// Required returns a FieldError for the first blank field.
func Required(fields ...Field) error {
	for _, f := range fields {
		if strings.TrimSpace(f.Value) == "" {
			return &FieldError{Field: f.Name, Value: f.Value, Reason: model.ReasonMissingField, Err: ErrRequired}
		}
	}
	return nil
}

// Invalid wraps a coercion error of a required field.
func Invalid(field, value string, err error) error {
	return &FieldError{Field: field, Value: value, Reason: model.ReasonInvalidValue, Err: err}
}

// CardNumber classifies a raw card number. Only a non empty run of ASCII
// digits is correct; signs, spaces, dashes and letters are not.
func CardNumber(raw string) model.CardStatus {
	if raw == "" {
		return model.CardStatusIncorrect
	}
	for i := 0; i < len(raw); i++ {
		if raw[i] < '0' || raw[i] > '9' {
			return model.CardStatusIncorrect
		}
	}
	return model.CardStatusCorrect
}

// CheckCardNumber returns the number to store along with its status. The
// number is nil whenever the status is incorrect.
func CheckCardNumber(raw string) (*string, model.CardStatus) {
	status := CardNumber(raw)
	if status != model.CardStatusCorrect {
		return nil, status
	}
	n := raw
	return &n, status
}
