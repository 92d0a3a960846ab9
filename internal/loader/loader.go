// Package loader writes prepared records to the relational sink in dependency
// order: users before cards, merchants before transactions. Each table is an
// independent batch; a failed batch is reported in its Result and the next
// table is still attempted.
package loader

import (
	"context"
	"errors"
	"time"

	"github.com/nimasrn/finance-etl/internal/model"
	"github.com/nimasrn/finance-etl/internal/source"
	"github.com/nimasrn/finance-etl/internal/transform"
	"github.com/nimasrn/finance-etl/pkg/logger"
)

// Result is the outcome of one table's batch.
type Result struct {
	Table    string
	Rows     int   // rows handed to the sink
	Inserted int64 // rows the sink wrote
	Ignored  int64 // rows dropped by conflict-ignore
	Skipped  int   // rows rejected before the batch was built
	Variants int   // merchant tuples collapsed onto an earlier merchant_id
	Elapsed  time.Duration
	Err      error
}

func (r Result) OK() bool {
	return r.Err == nil
}

// Reporter observes a run. It never changes what gets loaded.
type Reporter interface {
	BatchStarted(table string, rows int)
	BatchFinished(res Result)
	RowsSkipped(table string, rejected []model.Rejection)
}

type Loader struct {
	sink     Sink
	reporter Reporter
}

func NewLoader(sink Sink, reporter Reporter) *Loader {
	return &Loader{sink: sink, reporter: reporter}
}

// LoadUsersAndCards prepares and writes users, then cards.
func (l *Loader) LoadUsersAndCards(ctx context.Context, userRows []source.UserRow, cardRows []source.CardRow) []Result {
	users, rejectedUsers := transform.Users(userRows)
	l.reporter.RowsSkipped(transform.TableUsers, rejectedUsers)
	cards, rejectedCards := transform.Cards(cardRows)
	l.reporter.RowsSkipped(transform.TableCards, rejectedCards)

	usersRes := l.Write(ctx, UserBatch(users))
	usersRes.Skipped = len(rejectedUsers)
	l.reporter.BatchFinished(usersRes)

	cardsRes := l.Write(ctx, CardBatch(cards))
	cardsRes.Skipped = len(rejectedCards)
	l.reporter.BatchFinished(cardsRes)

	return []Result{usersRes, cardsRes}
}

// LoadTransactions derives the merchant dimension from the transaction rows,
// writes it, resolves every transaction's merchant to its surrogate key and
// writes the transactions that resolved.
func (l *Loader) LoadTransactions(ctx context.Context, rows []source.TransactionRow) []Result {
	txns, rejected := transform.Transactions(rows)
	l.reporter.RowsSkipped(transform.TableTransactions, rejected)

	merchants, variants := DedupMerchants(txns)
	merchantsRes := l.Write(ctx, MerchantBatch(merchants))
	merchantsRes.Variants = len(variants)
	l.reporter.BatchFinished(merchantsRes)

	txnsRes := l.loadResolved(ctx, txns)
	txnsRes.Skipped += len(rejected)
	l.reporter.BatchFinished(txnsRes)

	return []Result{merchantsRes, txnsRes}
}

func (l *Loader) loadResolved(ctx context.Context, txns []*model.Transaction) Result {
	resolver, err := NewKeyResolver(ctx, l.sink)
	if err != nil {
		logger.Error("cannot resolve merchants, skipping transactions", "error", err)
		return Result{Table: transform.TableTransactions, Skipped: len(txns), Err: err}
	}

	resolved, missing := resolver.Resolve(txns)
	l.reporter.RowsSkipped(transform.TableTransactions, missing)

	res := l.Write(ctx, TransactionBatch(resolved))
	res.Skipped = len(missing)
	return res
}

// Write sends one batch to the sink and times it. An empty batch is a no-op.
func (l *Loader) Write(ctx context.Context, b Batch) Result {
	spec := b.Spec()
	res := Result{Table: spec.Table, Rows: b.Len()}
	if b.Len() == 0 {
		logger.Info("nothing to insert", "table", spec.Table)
		return res
	}

	l.reporter.BatchStarted(spec.Table, b.Len())
	start := time.Now()
	inserted, err := b.Write(ctx, l.sink)
	res.Elapsed = time.Since(start)

	if err != nil {
		logger.Error("batch insert failed", "table", spec.Table, "rows", b.Len(), "error", err)
		res.Err = err
		return res
	}

	res.Inserted = inserted
	if spec.Conflict == ConflictIgnore {
		res.Ignored = int64(b.Len()) - inserted
	}
	return res
}

// Failed joins the errors of every failed result, or nil.
func Failed(results []Result) error {
	var errs []error
	for _, r := range results {
		if r.Err != nil {
			errs = append(errs, &BatchError{Table: r.Table, Err: r.Err})
		}
	}
	return errors.Join(errs...)
}

type BatchError struct {
	Table string
	Err   error
}

func (e *BatchError) Error() string {
	return e.Table + ": " + e.Err.Error()
}

func (e *BatchError) Unwrap() error {
	return e.Err
}
