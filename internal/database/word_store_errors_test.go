package database

import (
	"context"
	"fmt"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newMockStore(t *testing.T) (*WordStore, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewWordStore(sqlx.NewDb(db, "sqlmock"), zap.NewNop()), mock
}

func TestWordStore_GetAllQueryError(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectQuery("(?s)SELECT .+ FROM words").
		WillReturnError(fmt.Errorf("disk I/O error"))

	_, err := store.GetAll(context.Background())
	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWordStore_ClearQueryError(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectExec("DELETE FROM words").
		WillReturnError(fmt.Errorf("database is locked"))

	err := store.Clear(context.Background())
	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWordStore_ScanDueBeforeQueryError(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectQuery("(?s)SELECT .+ FROM words").
		WithArgs("2024-01-01").
		WillReturnError(fmt.Errorf("disk I/O error"))

	_, err := store.ScanDueBefore(context.Background(), "2024-01-01")
	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
