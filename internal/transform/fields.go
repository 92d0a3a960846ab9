package transform

import (
	"errors"

	"github.com/nimasrn/finance-etl/internal/model"
	"github.com/nimasrn/finance-etl/internal/normalize"
	"github.com/nimasrn/finance-etl/internal/validate"
	"github.com/nimasrn/finance-etl/pkg/logger"
	"github.com/shopspring/decimal"
)

// fields parses the columns of one row and remembers the first failure, so a
// row can be converted top to bottom and checked once at the end.
type fields struct {
	err error
}

func (f *fields) fail(name, raw string, err error) {
	if f.err == nil {
		f.err = validate.Invalid(name, raw, err)
	}
}

func (f *fields) int64(name, raw string) int64 {
	v, err := normalize.Int64(raw)
	if err != nil {
		f.fail(name, raw, err)
	}
	return v
}

func (f *fields) int(name, raw string) int {
	v, err := normalize.Int(raw)
	if err != nil {
		f.fail(name, raw, err)
	}
	return v
}

func (f *fields) optionalInt(name, raw string) *int {
	v, err := normalize.OptionalInt(raw)
	if err != nil {
		f.fail(name, raw, err)
	}
	return v
}

func (f *fields) float(name, raw string) float64 {
	v, err := normalize.Float(raw)
	if err != nil {
		f.fail(name, raw, err)
	}
	return v
}

func (f *fields) currency(name, raw string) decimal.Decimal {
	v, err := normalize.Currency(raw)
	if err != nil {
		f.fail(name, raw, err)
	}
	return v
}

func reject(table string, line int, err error) model.Rejection {
	r := model.Rejection{Table: table, Line: line, Reason: model.ReasonInvalidValue, Detail: err.Error()}
	var fe *validate.FieldError
	if errors.As(err, &fe) {
		r.Field = fe.Field
		r.Value = fe.Value
		r.Reason = fe.Reason
		r.Detail = fe.Err.Error()
	}
	logger.Warn("skipping row", "table", table, "line", line, "field", r.Field, "value", r.Value, "reason", r.Reason)
	return r
}
