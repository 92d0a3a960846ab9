package source

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const transactionsCSV = `id,date,client_id,card_id,amount,use_chip,merchant_id,merchant_city,merchant_state,zip,mcc,errors
7475327,2010-01-01 00:01:00,1556,2972,$-77.00,Swipe Transaction,59935,Beulah,ND,58523.0,5499,
7475328,2010-01-01 00:02:00,561,4575,$14.57,Swipe Transaction,67570,Bettendorf,IA,52722.0,5311,
7475331,2010-01-01 00:05:00,430,2860,$200.00,Online Transaction,27092,ONLINE,,,4829,Insufficient Balance
`

func TestReadTransactions(t *testing.T) {
	rows, err := ReadTransactions(strings.NewReader(transactionsCSV))
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, "7475327", rows[0].ID)
	assert.Equal(t, "$-77.00", rows[0].Amount)
	assert.Equal(t, "58523.0", rows[0].Zip)
	assert.Equal(t, 2, rows[0].Line)
	assert.Equal(t, 4, rows[2].Line)
	assert.Equal(t, "", rows[2].MerchantState)
	assert.Equal(t, "Insufficient Balance", rows[2].Errors)
}

func TestRead_BOMAndColumnOrder(t *testing.T) {
	input := "\xEF\xBB\xBFclient_id,id,card_brand,card_type,card_number,expires,cvv,has_chip,num_cards_issued,credit_limit,acct_open_date,year_pin_last_changed,card_on_dark_web\n" +
		"825,4524,Visa,Debit,4344676511950444,12/2022,623,YES,2,$24295,09/2002,2008,No\n"

	rows, err := ReadCards(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "4524", rows[0].ID)
	assert.Equal(t, "825", rows[0].ClientID)
	assert.Equal(t, "YES", rows[0].HasChip)
}

func TestRead_MissingColumn(t *testing.T) {
	input := "id,current_age\n1,30\n"
	_, err := ReadUsers(strings.NewReader(input))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing column")
}

func TestRead_Empty(t *testing.T) {
	_, err := ReadUsers(strings.NewReader(""))
	assert.Error(t, err)
}

func TestReadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "transactions.csv")
	require.NoError(t, os.WriteFile(path, []byte(transactionsCSV), 0o600))

	rows, err := ReadFile(path, ReadTransactions)
	require.NoError(t, err)
	assert.Len(t, rows, 3)

	_, err = ReadFile(filepath.Join(t.TempDir(), "nope.csv"), ReadTransactions)
	assert.Error(t, err)
}

func TestWriteAll(t *testing.T) {
	type out struct {
		ID     string `csv:"id"`
		Status string `csv:"status"`
	}

	var buf bytes.Buffer
	require.NoError(t, WriteAll(&buf, []out{{"1", "correct"}, {"2", "incorrect"}}))
	assert.Equal(t, "id,status\n1,correct\n2,incorrect\n", buf.String())

	buf.Reset()
	require.NoError(t, WriteAll[out](&buf, nil))
	assert.Equal(t, "id,status\n", buf.String())
}

func TestWriteFile_CreatesDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "rows.csv")
	rows, err := ReadTransactions(strings.NewReader(transactionsCSV))
	require.NoError(t, err)

	require.NoError(t, WriteFile(path, rows))

	back, err := ReadFile(path, ReadTransactions)
	require.NoError(t, err)
	require.Len(t, back, 3)
	assert.Equal(t, rows[1].MerchantCity, back[1].MerchantCity)
}
