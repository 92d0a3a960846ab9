package loader

import (
	"context"
	"errors"
	"testing"

	"github.com/nimasrn/finance-etl/internal/model"
	"github.com/nimasrn/finance-etl/internal/source"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockSink struct {
	mock.Mock
}

func (m *MockSink) MerchantKeys(ctx context.Context) (map[int64]int64, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[int64]int64), args.Error(1)
}

func (m *MockSink) InsertUsers(ctx context.Context, spec Spec, users []*model.User) (int64, error) {
	args := m.Called(ctx, spec, users)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockSink) InsertCards(ctx context.Context, spec Spec, cards []*model.Card) (int64, error) {
	args := m.Called(ctx, spec, cards)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockSink) InsertMerchants(ctx context.Context, spec Spec, merchants []*model.Merchant) (int64, error) {
	args := m.Called(ctx, spec, merchants)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockSink) InsertTransactions(ctx context.Context, spec Spec, txns []*model.Transaction) (int64, error) {
	args := m.Called(ctx, spec, txns)
	return args.Get(0).(int64), args.Error(1)
}

type recordingReporter struct {
	started  []string
	finished []Result
	skipped  map[string]int
}

func newRecordingReporter() *recordingReporter {
	return &recordingReporter{skipped: map[string]int{}}
}

func (r *recordingReporter) BatchStarted(table string, rows int) { r.started = append(r.started, table) }
func (r *recordingReporter) BatchFinished(res Result) { r.finished = append(r.finished, res) }
func (r *recordingReporter) RowsSkipped(table string, rejected []model.Rejection) {
	r.skipped[table] += len(rejected)
}

func transactionRows() []source.TransactionRow {
	row := func(line int, id, merchant, city string) source.TransactionRow {
		return source.TransactionRow{
			Line: line, ID: id, Date: "2010-01-01 00:01:00", ClientID: "1556", CardID: "2972",
			Amount: "$10.00", UseChip: "Chip Transaction", MerchantID: merchant,
			MerchantCity: city, MerchantState: "ND", Zip: "58523.0", MCC: "5499",
		}
	}
	bad := row(6, "5", "59935", "Beulah")
	bad.Amount = "ten dollars"
	return []source.TransactionRow{
		row(2, "1", "59935", "Beulah"),
		row(3, "2", "67570", "Bettendorf"),
		row(4, "3", "59935", "Beulah"),
		row(5, "4", "67570", "Davenport"),
		bad,
	}
}

func TestLoader_LoadTransactions(t *testing.T) {
	sink := new(MockSink)
	reporter := newRecordingReporter()
	ctx := context.Background()

	sink.On("InsertMerchants", ctx, MerchantsSpec, mock.MatchedBy(func(ms []*model.Merchant) bool {
		return len(ms) == 2 && ms[0].MerchantID == 59935 && ms[1].MerchantID == 67570 && *ms[1].City == "Bettendorf"
	})).Return(int64(2), nil).Once()
	// 67570 was never persisted, e.g. it lost a race with another loader
	sink.On("MerchantKeys", ctx).Return(map[int64]int64{59935: 7}, nil).Once()
	sink.On("InsertTransactions", ctx, TransactionsSpec, mock.MatchedBy(func(ts []*model.Transaction) bool {
		return len(ts) == 2 && ts[0].ID == 1 && ts[1].ID == 3 && ts[0].MerchantKey == 7 && ts[1].MerchantKey == 7
	})).Return(int64(2), nil).Once()

	results := NewLoader(sink, reporter).LoadTransactions(ctx, transactionRows())
	sink.AssertExpectations(t)

	require.Len(t, results, 2)
	merchants, txns := results[0], results[1]

	assert.Equal(t, "merchants", merchants.Table)
	assert.True(t, merchants.OK())
	assert.Equal(t, int64(2), merchants.Inserted)
	assert.Equal(t, 1, merchants.Variants)

	assert.Equal(t, "transactions", txns.Table)
	assert.True(t, txns.OK())
	assert.Equal(t, 2, txns.Rows)
	assert.Equal(t, int64(2), txns.Inserted)
	assert.Equal(t, 3, txns.Skipped, "one bad amount and two unresolved merchants")
	assert.Zero(t, txns.Ignored)

	assert.Equal(t, 3, reporter.skipped["transactions"])
	assert.Equal(t, []string{"merchants", "transactions"}, reporter.started)
	assert.Len(t, reporter.finished, 2)
}

func TestLoader_MerchantFailureStillAttemptsTransactions(t *testing.T) {
	sink := new(MockSink)
	ctx := context.Background()

	sink.On("InsertMerchants", ctx, MerchantsSpec, mock.Anything).Return(int64(0), errors.New("deadlock detected")).Once()
	sink.On("MerchantKeys", ctx).Return(map[int64]int64{59935: 1, 67570: 2}, nil).Once()
	sink.On("InsertTransactions", ctx, TransactionsSpec, mock.Anything).Return(int64(4), nil).Once()

	results := NewLoader(sink, newRecordingReporter()).LoadTransactions(ctx, transactionRows())
	sink.AssertExpectations(t)

	assert.False(t, results[0].OK())
	assert.True(t, results[1].OK())
	assert.Equal(t, int64(4), results[1].Inserted)

	err := Failed(results)
	require.Error(t, err)
	var be *BatchError
	require.True(t, errors.As(err, &be))
	assert.Equal(t, "merchants", be.Table)
}

func TestLoader_KeyReadFailureSkipsTransactions(t *testing.T) {
	sink := new(MockSink)
	ctx := context.Background()

	sink.On("InsertMerchants", ctx, MerchantsSpec, mock.Anything).Return(int64(2), nil).Once()
	sink.On("MerchantKeys", ctx).Return(nil, errors.New("connection lost")).Once()

	results := NewLoader(sink, newRecordingReporter()).LoadTransactions(ctx, transactionRows())
	sink.AssertExpectations(t)
	sink.AssertNotCalled(t, "InsertTransactions", mock.Anything, mock.Anything, mock.Anything)

	assert.ErrorContains(t, results[1].Err, "connection lost")
	assert.Equal(t, 5, results[1].Skipped)
}

func TestLoader_TransactionDuplicateIsBatchError(t *testing.T) {
	sink := new(MockSink)
	ctx := context.Background()
	dup := errors.New("UNIQUE constraint failed: transactions.id")

	sink.On("InsertMerchants", ctx, MerchantsSpec, mock.Anything).Return(int64(0), nil).Once()
	sink.On("MerchantKeys", ctx).Return(map[int64]int64{59935: 1, 67570: 2}, nil).Once()
	sink.On("InsertTransactions", ctx, TransactionsSpec, mock.Anything).Return(int64(0), dup).Once()

	results := NewLoader(sink, newRecordingReporter()).LoadTransactions(ctx, transactionRows())

	assert.True(t, results[0].OK())
	assert.Equal(t, int64(2), results[0].Ignored, "merchants already present are ignored")
	assert.ErrorIs(t, results[1].Err, dup)
	assert.ErrorIs(t, Failed(results), dup)
}

func TestLoader_LoadUsersAndCards(t *testing.T) {
	sink := new(MockSink)
	reporter := newRecordingReporter()
	ctx := context.Background()

	users := []source.UserRow{
		{Line: 2, ID: "1", CurrentAge: "53", RetirementAge: "66", BirthYear: "1966", BirthMonth: "11", Latitude: "1", Longitude: "2",
			PerCapitaIncome: "$1", YearlyIncome: "$2", TotalDebt: "$3", CreditScore: "700", NumCreditCards: "1"},
		{Line: 3, ID: "2", BirthYear: "", BirthMonth: "1"},
	}
	cards := []source.CardRow{
		{Line: 2, ID: "10", ClientID: "1", CardNumber: "4111111111111111", NumCardsIssued: "1", CreditLimit: "$100"},
		{Line: 3, ID: "11", ClientID: "1", CardNumber: "41AB", NumCardsIssued: "1", CreditLimit: "$100"},
	}

	sink.On("InsertUsers", ctx, UsersSpec, mock.MatchedBy(func(us []*model.User) bool { return len(us) == 1 })).
		Return(int64(0), errors.New("relation \"users\" does not exist")).Once()
	sink.On("InsertCards", ctx, CardsSpec, mock.MatchedBy(func(cs []*model.Card) bool {
		return len(cs) == 2 && cs[1].Number == nil && cs[1].Status == model.CardStatusIncorrect
	})).Return(int64(1), nil).Once()

	results := NewLoader(sink, reporter).LoadUsersAndCards(ctx, users, cards)
	sink.AssertExpectations(t)

	require.Len(t, results, 2)
	assert.False(t, results[0].OK())
	assert.Equal(t, 1, results[0].Skipped)
	assert.True(t, results[1].OK())
	assert.Equal(t, int64(1), results[1].Inserted)
	assert.Equal(t, int64(1), results[1].Ignored)
	assert.Equal(t, 1, reporter.skipped["users"])
}

func TestLoader_EmptyBatchIsNoop(t *testing.T) {
	sink := new(MockSink)
	reporter := newRecordingReporter()

	res := NewLoader(sink, reporter).Write(context.Background(), UserBatch(nil))
	assert.True(t, res.OK())
	assert.Zero(t, res.Rows)
	assert.Empty(t, reporter.started)
	sink.AssertNotCalled(t, "InsertUsers", mock.Anything, mock.Anything, mock.Anything)
}

func TestSpecs(t *testing.T) {
	assert.Equal(t, ConflictIgnore, UsersSpec.Conflict)
	assert.Equal(t, ConflictIgnore, CardsSpec.Conflict)
	assert.Equal(t, []string{"merchant_id"}, MerchantsSpec.ConflictColumns)
	assert.Equal(t, ConflictFail, TransactionsSpec.Conflict)
	assert.Equal(t, "fail", TransactionsSpec.Conflict.String())
	assert.NotContains(t, MerchantsSpec.Columns, "id", "surrogate key is assigned by the sink")
}
