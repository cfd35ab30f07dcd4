package postgres

import (
	"context"
	"errors"
	"testing"

	"marketplace/internal/migrations/seed"
	"marketplace/pkg/logger"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeed_InsertsEverythingInOneTransaction(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	for range seed.States {
		mock.ExpectExec(`INSERT INTO states`).WillReturnResult(sqlmock.NewResult(1, 1))
	}
	for range seed.Cities {
		mock.ExpectExec(`INSERT INTO cities`).WillReturnResult(sqlmock.NewResult(1, 1))
	}
	for range seed.Categories {
		mock.ExpectExec(`INSERT INTO categories`).WillReturnResult(sqlmock.NewResult(1, 1))
	}
	for range seed.Products {
		mock.ExpectExec(`INSERT INTO products`).WillReturnResult(sqlmock.NewResult(1, 1))
	}
	for range seed.Permissions {
		mock.ExpectExec(`INSERT INTO permissions`).WillReturnResult(sqlmock.NewResult(1, 1))
	}
	mock.ExpectCommit()

	require.NoError(t, Seed(context.Background(), sqlx.NewDb(db, "sqlmock"), logger.NewNop()))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSeed_RollsBackOnFailure(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO states`).WillReturnError(errors.New("boom"))
	mock.ExpectRollback()

	err = Seed(context.Background(), sqlx.NewDb(db, "sqlmock"), logger.NewNop())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "AC")
	assert.NoError(t, mock.ExpectationsWereMet())
}
