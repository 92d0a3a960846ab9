package model

import "fmt"

// Reasons a row is left out of a batch.
const (
	ReasonMissingField    = "missing_field"
	ReasonInvalidValue    = "invalid_value"
	ReasonMissingMerchant = "missing_merchant"
)

// Rejection describes one source row that was not loaded.
type Rejection struct {
	Table  string `csv:"table"`
	Line   int    `csv:"line"`
	Field  string `csv:"field"`
	Value  string `csv:"value"`
	Reason string `csv:"reason"`
	Detail string `csv:"detail"`
}

func (r Rejection) String() string {
	return fmt.Sprintf("%s line %d: %s %s=%q (%s)", r.Table, r.Line, r.Reason, r.Field, r.Value, r.Detail)
}
