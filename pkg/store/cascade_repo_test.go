package store

import (
	"context"
	"errors"
	"testing"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coolbeans/ukleg-register/pkg/legalrecord"
)

func TestPostgresCascadeRepository_Upsert(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewPostgresCascadeRepository(mock)
	entry := &legalrecord.CascadeEntry{
		SessionID: "s1", AffectedLaw: "UK_ukpga_1974_37",
		UpdateType: legalrecord.CascadeReparse, Status: legalrecord.CascadePending,
		SourceLaws: []string{"UK_uksi_2020_1"},
	}

	mock.ExpectExec(`INSERT INTO cascade_entries`).
		WithArgs("s1", "UK_ukpga_1974_37", "reparse", "pending", []string{"UK_uksi_2020_1"}).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	require.NoError(t, repo.Upsert(context.Background(), entry))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresCascadeRepository_ListPending(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewPostgresCascadeRepository(mock)
	rows := pgxmock.NewRows([]string{"session_id", "affected_law", "update_type", "status", "source_laws"}).
		AddRow("s1", "UK_a", "reparse", "pending", []string{"UK_source"})
	mock.ExpectQuery(`SELECT session_id, affected_law, update_type, status, source_laws`).
		WithArgs("s1").
		WillReturnRows(rows)

	got, err := repo.ListPending(context.Background(), "s1")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "UK_a", got[0].AffectedLaw)
	assert.Equal(t, legalrecord.CascadeReparse, got[0].UpdateType)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresCascadeRepository_MarkProcessed_NotFound(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewPostgresCascadeRepository(mock)
	mock.ExpectExec(`UPDATE cascade_entries SET status`).
		WithArgs("s1", "UK_missing").
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	err = repo.MarkProcessed(context.Background(), "s1", "UK_missing")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotFound))
	require.NoError(t, mock.ExpectationsWereMet())
}
