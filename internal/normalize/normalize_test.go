package normalize

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestDate(t *testing.T) {
	tests := []struct {
		raw  string
		want *time.Time
	}{
		{"2002", ptr(day(2002, time.January, 1))},
		{"09/2002", ptr(day(2002, time.September, 1))},
		{"12/2024", ptr(day(2024, time.December, 1))},
		{"1/2010", ptr(day(2010, time.January, 1))},
		{" 03/2020 ", ptr(day(2020, time.March, 1))},
		{"13/2020", nil},
		{"2020/09", nil},
		{"abcd", nil},
		{"", nil},
		{"09-2002", nil},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got := Date(tt.raw)
			if tt.want == nil {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.True(t, tt.want.Equal(*got), "got %s", got)
		})
	}
}

func TestDate_EveryMonth(t *testing.T) {
	for m := time.January; m <= time.December; m++ {
		raw := day(1999, m, 1).Format("01/2006")
		got := Date(raw)
		require.NotNil(t, got, raw)
		assert.Equal(t, 1, got.Day())
		assert.Equal(t, m, got.Month())
		assert.Equal(t, 1999, got.Year())
	}
}

func TestMonthOf(t *testing.T) {
	got := MonthOf(1966, 11)
	require.NotNil(t, got)
	assert.Equal(t, day(1966, time.November, 1), *got)

	assert.Nil(t, MonthOf(1966, 0))
	assert.Nil(t, MonthOf(1966, 13))
	assert.Nil(t, MonthOf(0, 5))
}

func TestDateTime(t *testing.T) {
	got, err := DateTime("2010-01-01 00:01:00")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2010, 1, 1, 0, 1, 0, 0, time.UTC), got)

	got, err = DateTime("2010-01-02")
	require.NoError(t, err)
	assert.Equal(t, day(2010, time.January, 2), got)

	_, err = DateTime("")
	assert.ErrorIs(t, err, ErrEmpty)

	_, err = DateTime("01/02/2010")
	assert.ErrorIs(t, err, ErrInvalidDateTime)
}

func TestBoolean(t *testing.T) {
	assert.True(t, Boolean("YES"))
	for _, raw := range []string{"yes", "Yes", "NO", "", " YES", "YES ", "true", "1"} {
		assert.False(t, Boolean(raw), raw)
	}
}

func TestCurrency(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"$1,234.56", "1234.56"},
		{"$24295", "24295"},
		{"$-77.00", "-77"},
		{"-$77.00", "-77"},
		{"14.57", "14.57"},
		{"$1,000,000", "1000000"},
		{"$.50", "0.5"},
		{"$1.005", "1.005"},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := Currency(tt.raw)
			require.NoError(t, err)
			assert.True(t, decimal.RequireFromString(tt.want).Equal(got), "got %s", got)
		})
	}

	for _, raw := range []string{"", "$", "12abc", "$1.2.3", "N/A", "1e3", "$1E2", "-", "0x10"} {
		t.Run("invalid "+raw, func(t *testing.T) {
			_, err := Currency(raw)
			assert.ErrorIs(t, err, ErrInvalidCurrency)
		})
	}
}

func TestZip(t *testing.T) {
	assert.Equal(t, "10001", *Zip("10001.0"))
	assert.Equal(t, "58523", *Zip("58523"))
	assert.Equal(t, "98.05", *Zip("98.05"))
	assert.Nil(t, Zip(""))
	assert.Nil(t, Zip("   "))
}

func TestNullIfEmpty(t *testing.T) {
	assert.Nil(t, NullIfEmpty(""))
	assert.Nil(t, NullIfEmpty("  "))
	assert.Equal(t, "Insufficient Balance", *NullIfEmpty("Insufficient Balance"))
}

func TestIntegers(t *testing.T) {
	i, err := Int64("4524")
	require.NoError(t, err)
	assert.Equal(t, int64(4524), i)

	_, err = Int64("")
	assert.ErrorIs(t, err, ErrEmpty)

	_, err = Int("4.5")
	assert.ErrorIs(t, err, ErrInvalidInteger)

	opt, err := OptionalInt("")
	require.NoError(t, err)
	assert.Nil(t, opt)

	opt, err = OptionalInt("2008")
	require.NoError(t, err)
	assert.Equal(t, 2008, *opt)

	_, err = OptionalInt("x")
	assert.Error(t, err)
}

func TestFloat(t *testing.T) {
	f, err := Float("34.15")
	require.NoError(t, err)
	assert.InDelta(t, 34.15, f, 1e-9)

	_, err = Float("north")
	assert.ErrorIs(t, err, ErrInvalidFloat)
}

func ptr[T any](v T) *T { return &v }
