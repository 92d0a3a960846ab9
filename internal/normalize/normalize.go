// Package normalize turns raw text fields from the source files into typed
// values. Each function has a fixed fallback: dates and optional text become
// nil, booleans become false, and numeric parsers return an error for the
// caller to surface.
package normalize

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/nimasrn/finance-etl/pkg/logger"
	"github.com/shopspring/decimal"
)

// currencyPattern is a plain signed decimal; exponents are not amounts.
var currencyPattern = regexp.MustCompile(`^[+-]?(\d+(\.\d*)?|\.\d+)$`)

var (
	ErrEmpty           = errors.New("empty value")
	ErrInvalidCurrency = errors.New("invalid currency")
	ErrInvalidInteger  = errors.New("invalid integer")
	ErrInvalidFloat    = errors.New("invalid float")
	ErrInvalidDateTime = errors.New("invalid date time")
)

const (
	yearLayout       = "2006"
	monthYearLayout  = "1/2006"
	dateTimeLayout   = "2006-01-02 15:04:05"
	dateLayout       = "2006-01-02"
	booleanTrueToken = "YES"
)

// Date accepts a bare four digit year ("2002", Jan 1st) or a month/year pair
// ("09/2002", 1st of the month). Anything else yields nil and is logged.
func Date(raw string) *time.Time {
	s := strings.TrimSpace(raw)
	layout := monthYearLayout
	if len(s) == 4 {
		layout = yearLayout
	}
	t, err := time.Parse(layout, s)
	if err != nil {
		logger.Warn("failed to convert date", "value", raw, "error", err)
		return nil
	}
	return &t
}

// MonthOf builds the first day of the given month, or nil when year or month
// are out of range.
func MonthOf(year, month int) *time.Time {
	if year < 1 || month < 1 || month > 12 {
		logger.Warn("failed to convert date", "year", year, "month", month)
		return nil
	}
	t := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	return &t
}

// DateTime parses a transaction timestamp, with or without the time part.
func DateTime(raw string) (time.Time, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return time.Time{}, ErrEmpty
	}
	for _, layout := range []string{dateTimeLayout, dateLayout} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDateTime, raw)
}

// Boolean is true only for the exact token "YES".
func Boolean(raw string) bool {
	return raw == booleanTrueToken
}

// Currency strips the dollar sign and thousands separators and parses the
// rest as a fixed point number. "$1,234.56" -> 1234.56, "$-77.00" -> -77.
func Currency(raw string) (decimal.Decimal, error) {
	s := strings.TrimSpace(raw)
	s = strings.NewReplacer("$", "", ",", "").Replace(s)
	if !currencyPattern.MatchString(s) {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrInvalidCurrency, raw)
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrInvalidCurrency, raw)
	}
	return d, nil
}

// Zip drops the ".0" suffix left behind when postal codes were stored as
// floats. Empty input stays nil.
func Zip(raw string) *string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return nil
	}
	s = strings.TrimSuffix(s, ".0")
	return &s
}

// NullIfEmpty maps blank optional text to nil.
func NullIfEmpty(raw string) *string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return nil
	}
	return &s
}

func Int64(raw string) (int64, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, ErrEmpty
	}
	i, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidInteger, raw)
	}
	return i, nil
}

func Int(raw string) (int, error) {
	i, err := Int64(raw)
	return int(i), err
}

// OptionalInt returns nil for blank input and an error for garbage.
func OptionalInt(raw string) (*int, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	i, err := Int(raw)
	if err != nil {
		return nil, err
	}
	return &i, nil
}

func Float(raw string) (float64, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, ErrEmpty
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidFloat, raw)
	}
	return f, nil
}
