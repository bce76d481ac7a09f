package store

import (
	"context"
	"errors"
	"testing"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/require"
)

func TestPoolTransactor_CommitsOnSuccess(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO legal_records`).WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectCommit()

	tr := NewPoolTransactor(mock)
	err = tr.InTransaction(context.Background(), func(ctx context.Context) error {
		q := connFromContext(ctx, mock)
		_, err := q.Exec(ctx, `INSERT INTO legal_records (name) VALUES ($1)`, "UK_ukpga_1974_37")
		return err
	})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPoolTransactor_RollsBackOnError(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO lat_rows`).WillReturnError(errors.New("constraint violation"))
	mock.ExpectRollback()

	tr := NewPoolTransactor(mock)
	err = tr.InTransaction(context.Background(), func(ctx context.Context) error {
		q := connFromContext(ctx, mock)
		_, err := q.Exec(ctx, `INSERT INTO lat_rows (section_id) VALUES ($1)`, "x")
		return err
	})
	require.Error(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}
