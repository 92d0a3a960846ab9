// Package filter produces the normalized copies of the source exports: cards
// gain a status column and typed dates/booleans, transactions are cleaned in
// place.
package filter

import (
	"strconv"
	"time"

	"github.com/nimasrn/finance-etl/internal/model"
	"github.com/nimasrn/finance-etl/internal/normalize"
	"github.com/nimasrn/finance-etl/internal/source"
	"github.com/nimasrn/finance-etl/internal/validate"
	"github.com/nimasrn/finance-etl/pkg/logger"
	"github.com/nimasrn/finance-etl/pkg/prom"
)

const (
	MetricRowsWritten  = "rows_written_total"
	MetricRowsRejected = "rows_rejected_total"
	systemFilter       = "filter"
	outputDateLayout   = "2006-01-02"
)

type FilteredCard struct {
	source.CardRow
	Status model.CardStatus `csv:"status"`
}

// RegisterMetrics adds the filter counters to the current prom registry.
func RegisterMetrics() error {
	if err := prom.CreateMetric(prom.TypeCounterVec, systemFilter, MetricRowsWritten, "file"); err != nil {
		return err
	}
	return prom.CreateMetric(prom.TypeCounterVec, systemFilter, MetricRowsRejected, "file")
}

func Cards(rows []source.CardRow) []FilteredCard {
	out := make([]FilteredCard, 0, len(rows))
	for _, row := range rows {
		fc := FilteredCard{CardRow: row, Status: validate.CardNumber(row.CardNumber)}
		fc.Expires = formatDate(normalize.Date(row.Expires))
		fc.AcctOpenDate = formatDate(normalize.Date(row.AcctOpenDate))
		fc.HasChip = formatBool(normalize.Boolean(row.HasChip))
		fc.CardOnDarkWeb = formatBool(normalize.Boolean(row.CardOnDarkWeb))
		out = append(out, fc)
	}
	prom.AddCounterVec(systemFilter, MetricRowsWritten, float64(len(out)), "cards")
	return out
}

// Transactions cleans amount, zip and the optional text columns. A row whose
// amount is not a currency value is left out and reported.
func Transactions(rows []source.TransactionRow) ([]source.TransactionRow, []model.Rejection) {
	out := make([]source.TransactionRow, 0, len(rows))
	var rejected []model.Rejection
	for _, row := range rows {
		amount, err := normalize.Currency(row.Amount)
		if err != nil {
			logger.Warn("dropping transaction with invalid amount", "line", row.Line, "value", row.Amount)
			rejected = append(rejected, model.Rejection{
				Table:  "transactions",
				Line:   row.Line,
				Field:  "amount",
				Value:  row.Amount,
				Reason: model.ReasonInvalidValue,
				Detail: err.Error(),
			})
			continue
		}
		row.Amount = amount.String()
		row.Zip = deref(normalize.Zip(row.Zip))
		row.MerchantCity = deref(normalize.NullIfEmpty(row.MerchantCity))
		row.MerchantState = deref(normalize.NullIfEmpty(row.MerchantState))
		row.Errors = deref(normalize.NullIfEmpty(row.Errors))
		out = append(out, row)
	}
	prom.AddCounterVec(systemFilter, MetricRowsWritten, float64(len(out)), "transactions")
	prom.AddCounterVec(systemFilter, MetricRowsRejected, float64(len(rejected)), "transactions")
	return out, rejected
}

func formatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(outputDateLayout)
}

func formatBool(b bool) string {
	return strconv.FormatBool(b)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
