package client

import (
	"context"
	"errors"
	"testing"

	"marketplace/pkg/logger"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/alicebob/miniredis/v2"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPing_Postgres(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)

	c := &Client{Postgres: sqlx.NewDb(db, "postgres")}

	mock.ExpectPing()
	assert.NoError(t, c.Ping(context.Background()))

	mock.ExpectPing().WillReturnError(errors.New("connection refused"))
	assert.Error(t, c.Ping(context.Background()))

	mock.ExpectClose()
	c.GracefulShutdown(logger.NewNop())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPing_Redis(t *testing.T) {
	mr := miniredis.RunT(t)
	c := &Client{Redis: redis.NewClient(&redis.Options{Addr: mr.Addr()})}

	assert.NoError(t, c.Ping(context.Background()))

	mr.Close()
	assert.Error(t, c.Ping(context.Background()))
}

func TestSetRedis(t *testing.T) {
	mr := miniredis.RunT(t)
	c := NewClient()

	c.SetRedis(logger.NewNop(), "redis://"+mr.Addr()+"/0")

	require.NotNil(t, c.Redis)
	assert.NoError(t, c.Redis.Set(context.Background(), "k", "v", 0).Err())
	c.GracefulShutdown(logger.NewNop())
}

func TestPing_NothingConnected(t *testing.T) {
	assert.NoError(t, NewClient().Ping(context.Background()))
}
