package loader

import (
	"context"

	"github.com/nimasrn/finance-etl/internal/model"
	"github.com/nimasrn/finance-etl/internal/transform"
)

// ConflictPolicy says what the sink does with a row that violates a unique key.
type ConflictPolicy int

const (
	// ConflictFail is a plain insert; a duplicate fails the whole batch.
	ConflictFail ConflictPolicy = iota
	// ConflictIgnore skips duplicate rows and keeps going.
	ConflictIgnore
)

func (p ConflictPolicy) String() string {
	if p == ConflictIgnore {
		return "ignore"
	}
	return "fail"
}

// Spec is the insert recipe for one table. With ConflictIgnore and no
// ConflictColumns every unique key of the table is a conflict target.
type Spec struct {
	Table           string
	Conflict        ConflictPolicy
	ConflictColumns []string
	Columns         []string
}

var (
	UsersSpec = Spec{
		Table:           transform.TableUsers,
		Conflict:        ConflictIgnore,
		ConflictColumns: []string{"id"},
		Columns: []string{"id", "current_age", "retirement_age", "birth", "gender", "address",
			"latitude", "longitude", "per_capita_income", "yearly_income", "total_debt",
			"credit_score", "num_credit_cards"},
	}
	// A card whose number failed validation has a NULL number, which never
	// conflicts, so cards ignore conflicts on the id as well.
	CardsSpec = Spec{
		Table:    transform.TableCards,
		Conflict: ConflictIgnore,
		Columns: []string{"id", "client_id", "card_brand", "card_type", "card_number", "expires",
			"cvv", "has_chip", "num_cards_issued", "credit_limit", "acct_open_date",
			"year_pin_last_changed", "card_on_dark_web", "card_status"},
	}
	MerchantsSpec = Spec{
		Table:           transform.TableMerchants,
		Conflict:        ConflictIgnore,
		ConflictColumns: []string{"merchant_id"},
		Columns:         []string{"merchant_id", "merchant_city", "merchant_state", "zip", "mcc"},
	}
	TransactionsSpec = Spec{
		Table:    transform.TableTransactions,
		Conflict: ConflictFail,
		Columns:  []string{"id", "date", "client_id", "card_id", "amount", "use_chip", "merchant_id", "errors"},
	}
)

// MerchantKeyReader returns every persisted merchant as natural key ->
// surrogate key.
type MerchantKeyReader interface {
	MerchantKeys(ctx context.Context) (map[int64]int64, error)
}

// Sink is the relational store. Each Insert runs as one unit of work and
// returns the number of rows actually written.
type Sink interface {
	MerchantKeyReader
	InsertUsers(ctx context.Context, spec Spec, users []*model.User) (int64, error)
	InsertCards(ctx context.Context, spec Spec, cards []*model.Card) (int64, error)
	InsertMerchants(ctx context.Context, spec Spec, merchants []*model.Merchant) (int64, error)
	InsertTransactions(ctx context.Context, spec Spec, txns []*model.Transaction) (int64, error)
}

// Batch is one bounded set of rows for a single table.
type Batch interface {
	Spec() Spec
	Len() int
	Write(ctx context.Context, sink Sink) (int64, error)
}

type UserBatch []*model.User

func (b UserBatch) Spec() Spec { return UsersSpec }
func (b UserBatch) Len() int   { return len(b) }
func (b UserBatch) Write(ctx context.Context, sink Sink) (int64, error) {
	return sink.InsertUsers(ctx, UsersSpec, b)
}

type CardBatch []*model.Card

func (b CardBatch) Spec() Spec { return CardsSpec }
func (b CardBatch) Len() int   { return len(b) }
func (b CardBatch) Write(ctx context.Context, sink Sink) (int64, error) {
	return sink.InsertCards(ctx, CardsSpec, b)
}

type MerchantBatch []*model.Merchant

func (b MerchantBatch) Spec() Spec { return MerchantsSpec }
func (b MerchantBatch) Len() int   { return len(b) }
func (b MerchantBatch) Write(ctx context.Context, sink Sink) (int64, error) {
	return sink.InsertMerchants(ctx, MerchantsSpec, b)
}

type TransactionBatch []*model.Transaction

func (b TransactionBatch) Spec() Spec { return TransactionsSpec }
func (b TransactionBatch) Len() int   { return len(b) }
func (b TransactionBatch) Write(ctx context.Context, sink Sink) (int64, error) {
	return sink.InsertTransactions(ctx, TransactionsSpec, b)
}
