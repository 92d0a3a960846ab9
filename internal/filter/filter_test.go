package filter

import (
	"bytes"
	"strings"
	"testing"

	"github.com/nimasrn/finance-etl/internal/model"
	"github.com/nimasrn/finance-etl/internal/source"
	"github.com/nimasrn/finance-etl/pkg/prom"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCards(t *testing.T) {
	rows := []source.CardRow{
		{ID: "4524", CardNumber: "4344676511950444", Expires: "12/2022", AcctOpenDate: "2002", HasChip: "YES", CardOnDarkWeb: "No"},
		{ID: "4525", CardNumber: "43AB", Expires: "bad", AcctOpenDate: "09/2002", HasChip: "yes", CardOnDarkWeb: "YES"},
	}

	out := Cards(rows)
	require.Len(t, out, 3)

	assert.Equal(t, model.CardStatusCorrect, out[0].Status)
	assert.Equal(t, "2022-12-01", out[0].Expires)
	assert.Equal(t, "2002-01-01", out[0].AcctOpenDate)
	assert.Equal(t, "true", out[0].HasChip)
	assert.Equal(t, "false", out[0].CardOnDarkWeb)

	assert.Equal(t, model.CardStatusIncorrect, out[1].Status)
	assert.Equal(t, "43AB", out[1].CardNumber, "filtered file keeps the raw number")
	assert.Equal(t, "", out[1].Expires)
	assert.Equal(t, "false", out[1].HasChip)
	assert.Equal(t, "true", out[1].CardOnDarkWeb)
}

func TestCards_CSVHasStatusColumn(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, source.WriteAll(&buf, Cards([]source.CardRow{{ID: "1", CardNumber: "42"}})))

	header := strings.SplitN(buf.String(), "\n", 2)[0]
	assert.True(t, strings.HasPrefix(header, "id,client_id,card_brand"))
	assert.True(t, strings.HasSuffix(header, ",card_on_dark_web,status"))
}

func TestTransactions(t *testing.T) {
	require.NoError(t, prom.Create("host", "test", "etl"))
	require.NoError(t, RegisterMetrics())

	rows := []source.TransactionRow{
		{Line: 2, ID: "1", Amount: "$1,234.56", Zip: "10001.0", MerchantCity: "New York", MerchantState: "NY"},
		{Line: 3, ID: "2", Amount: "$-77.00", Zip: "", MerchantCity: "ONLINE", MerchantState: " ", Errors: ""},
		{Line: 4, ID: "3", Amount: "n/a"},
		{Line: 5, ID: "4", Amount: "$2.345"},
	}

	out, rejected := Transactions(rows)
	require.Len(t, out, 3)
	require.Len(t, rejected, 1)

	assert.Equal(t, "1234.56", out[0].Amount)
	assert.Equal(t, "10001", out[0].Zip)
	assert.Equal(t, "-77", out[1].Amount)
	assert.Equal(t, "2.345", out[2].Amount, "amounts are not rounded")
	assert.Equal(t, "", out[1].MerchantState)

	assert.Equal(t, 4, rejected[0].Line)
	assert.Equal(t, "amount", rejected[0].Field)

	written := prom.MetricCollectionCounterVec[systemFilter+MetricRowsWritten]
	assert.Equal(t, float64(3), testutil.ToFloat64(written.WithLabelValues("transactions")))
}
