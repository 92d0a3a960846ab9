package pg

import (
	"context"

	"github.com/pkg/errors"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/gorm/schema"
)

type txContextKey string

const txKey txContextKey = "trx"

// DB is the single connection handle shared by a run.
type DB struct {
	conn *gorm.DB
}

func Open(config Config) (*DB, error) {
	var dialector gorm.Dialector
	switch config.Driver {
	case "", DriverPostgres:
		dialector = postgres.Open(config.DSN())
	case DriverSQLite:
		dialector = sqlite.Open(config.Path)
	default:
		return nil, errors.Errorf("unsupported driver %q", config.Driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		NamingStrategy: schema.NamingStrategy{
			SingularTable: true,
		},
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, errors.Wrapf(err, "open %s connection", dialector.Name())
	}

	if config.Debug {
		db = db.Debug()
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, errors.Wrap(err, "get sql handle")
	}
	sqlDB.SetMaxOpenConns(1)
	if err = sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, errors.Wrap(err, "ping database")
	}

	return &DB{conn: db}, nil
}

func (r *DB) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return r.conn.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		ctx = context.WithValue(ctx, txKey, tx)
		return fn(ctx)
	})
}

func (r *DB) Write(ctx context.Context) *gorm.DB {
	tx, ok := ctx.Value(txKey).(*gorm.DB)
	if ok {
		return tx
	}
	return r.conn.WithContext(ctx)
}

func (r *DB) Read(ctx context.Context) *gorm.DB {
	return r.Write(ctx)
}

func (r *DB) Close() error {
	sqlDB, err := r.conn.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
