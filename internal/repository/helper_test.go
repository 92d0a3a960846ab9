package repository

import (
	"context"
	"testing"

	"github.com/nimasrn/finance-etl/pkg/pg"
	"github.com/stretchr/testify/require"
)

func setupTestDB(t *testing.T) *pg.DB {
	t.Helper()
	db, err := pg.Open(pg.Config{Driver: pg.DriverSQLite, Path: ":memory:"})
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, AutoMigrate(context.Background(), db))
	return db
}

func count(t *testing.T, db *pg.DB, entity any) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Read(context.Background()).Model(entity).Count(&n).Error)
	return n
}

func ptr[T any](v T) *T {
	return &v
}
