package repository

import (
	"context"

	"github.com/nimasrn/finance-etl/internal/loader"
	"github.com/nimasrn/finance-etl/internal/model"
	"github.com/nimasrn/finance-etl/pkg/pg"
	"github.com/pkg/errors"
	"gorm.io/gorm/clause"
)

const DefaultBatchSize = 10000

// Bind parameter limits of one statement: pgx's extended protocol and
// SQLite's SQLITE_MAX_VARIABLE_NUMBER.
const (
	maxParamsPostgres = 65535
	maxParamsSQLite   = 32766
)

// SinkRepository is the relational loader.Sink. Every Insert runs in its own
// transaction and is paged in statements of at most batchSize rows, fewer
// when the table is too wide for the dialect's parameter limit.
type SinkRepository struct {
	*pg.DB
	batchSize int
}

func NewSinkRepository(db *pg.DB, batchSize int) *SinkRepository {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}
	return &SinkRepository{
		db,
		batchSize,
	}
}

var _ loader.Sink = (*SinkRepository)(nil)

func (r *SinkRepository) InsertUsers(ctx context.Context, spec loader.Spec, users []*model.User) (int64, error) {
	return insertBatch(ctx, r, spec, toUserEntities(users))
}

func (r *SinkRepository) InsertCards(ctx context.Context, spec loader.Spec, cards []*model.Card) (int64, error) {
	return insertBatch(ctx, r, spec, toCardEntities(cards))
}

func (r *SinkRepository) InsertMerchants(ctx context.Context, spec loader.Spec, merchants []*model.Merchant) (int64, error) {
	return insertBatch(ctx, r, spec, toMerchantEntities(merchants))
}

func (r *SinkRepository) InsertTransactions(ctx context.Context, spec loader.Spec, txns []*model.Transaction) (int64, error) {
	return insertBatch(ctx, r, spec, toTransactionEntities(txns))
}

type merchantKey struct {
	MerchantID int64
	ID         int64
}

// MerchantKeys reads the whole merchants table as merchant_id -> id.
func (r *SinkRepository) MerchantKeys(ctx context.Context) (map[int64]int64, error) {
	var rows []merchantKey
	err := r.Read(ctx).
		Model(&MerchantEntity{}).
		Select("merchant_id", "id").
		Find(&rows).
		Error
	if err != nil {
		return nil, errors.Wrap(err, "select merchant keys")
	}

	keys := make(map[int64]int64, len(rows))
	for _, row := range rows {
		keys[row.MerchantID] = row.ID
	}
	return keys, nil
}

func (r *SinkRepository) Merchants(ctx context.Context) ([]*model.Merchant, error) {
	var entities []*MerchantEntity
	if err := r.Read(ctx).Order("id").Find(&entities).Error; err != nil {
		return nil, err
	}
	return toMerchantModels(entities), nil
}

func insertBatch[E any](ctx context.Context, r *SinkRepository, spec loader.Spec, rows []*E) (int64, error) {
	var inserted int64
	err := r.WithinTransaction(ctx, func(ctx context.Context) error {
		q := r.Write(ctx).Select(spec.Columns)
		if spec.Conflict == loader.ConflictIgnore {
			q = q.Clauses(onConflict(spec))
		}

		size := pageSize(q.Dialector.Name(), len(spec.Columns), r.batchSize)
		res := q.CreateInBatches(rows, size)
		if res.Error != nil {
			return res.Error
		}
		inserted = res.RowsAffected
		return nil
	})
	if err != nil {
		return 0, errors.Wrapf(err, "insert into %s", spec.Table)
	}
	return inserted, nil
}

// pageSize caps the rows of one multi-row INSERT so that rows*columns stays
// within the dialect's bind parameter limit.
func pageSize(dialect string, columns, want int) int {
	limit := maxParamsPostgres
	if dialect == pg.DriverSQLite {
		limit = maxParamsSQLite
	}
	if columns <= 0 {
		return want
	}
	return max(1, min(want, limit/columns))
}

func onConflict(spec loader.Spec) clause.OnConflict {
	columns := make([]clause.Column, len(spec.ConflictColumns))
	for i, name := range spec.ConflictColumns {
		columns[i] = clause.Column{Name: name}
	}
	return clause.OnConflict{Columns: columns, DoNothing: true}
}

// AutoMigrate creates the four tables from the entities. Postgres deployments
// use the goose migrations instead.
func AutoMigrate(ctx context.Context, db *pg.DB) error {
	err := db.Write(ctx).AutoMigrate(&UserEntity{}, &CardEntity{}, &MerchantEntity{}, &TransactionEntity{})
	return errors.Wrap(err, "auto migrate")
}
