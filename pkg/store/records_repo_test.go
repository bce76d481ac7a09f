package store

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coolbeans/ukleg-register/pkg/legalrecord"
)

func TestPostgresRecordRepository_Get_NotFound(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewPostgresRecordRepository(mock)
	mock.ExpectQuery(`SELECT type_code, year, number`).
		WithArgs("UK_ukpga_9999_1").
		WillReturnError(pgx.ErrNoRows)

	_, err = repo.Get(context.Background(), "UK_ukpga_9999_1")
	require.Error(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresRecordRepository_Upsert(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewPostgresRecordRepository(mock)
	record := &legalrecord.LegalRecord{
		Name: "UK_ukpga_1974_37", TypeCode: "ukpga", Year: "1974", Number: "37",
		SlashForm: "ukpga/1974/37", TitleEN: "Health and Safety at Work etc. Act 1974",
		Live: legalrecord.LiveInForce, SchemaVersion: 1,
	}

	mock.ExpectExec(`INSERT INTO legal_records`).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	require.NoError(t, repo.Upsert(context.Background(), record))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresRecordRepository_Get_DecodesStoreAttrs(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewPostgresRecordRepository(mock)
	attrs, _ := json.Marshal(legalrecord.StoreAttrs{
		SICode: legalrecord.ValuesShape{Values: []string{"HEALTH AND SAFETY"}},
		Role:   map[string]bool{"employer": true},
	})
	rel, _ := json.Marshal(relationshipsShape{EnactedBy: []string{"UK_ukpga_1974_37"}})

	rows := pgxmock.NewRows([]string{
		"type_code", "year", "number", "name", "slash_form", "title_en", "live",
		"live_source", "live_conflict", "live_conflict_detail",
		"geo_region", "geo_extent", "geo_detail", "attrs", "relationships", "schema_version",
	}).AddRow(
		"uksi", "2020", "1", "UK_uksi_2020_1", "uksi/2020/1", "Example Regulations 2020", "in_force",
		"metadata", false, "",
		[]string{"England"}, "E", "England only", attrs, rel, 1,
	)
	mock.ExpectQuery(`SELECT type_code, year, number`).WithArgs("UK_uksi_2020_1").WillReturnRows(rows)

	got, err := repo.Get(context.Background(), "UK_uksi_2020_1")
	require.NoError(t, err)
	assert.True(t, got.SICode.Has("HEALTH AND SAFETY"))
	assert.True(t, got.Role.Has("employer"))
	assert.Equal(t, []string{"UK_ukpga_1974_37"}, got.EnactedBy)
	require.NoError(t, mock.ExpectationsWereMet())
}
