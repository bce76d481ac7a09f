package store

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/samber/oops"

	"github.com/coolbeans/ukleg-register/pkg/legalrecord"
)

// PostgresRecordRepository implements RecordRepository using PostgreSQL,
// storing set-typed fields in their JSONB-shape-duality form (§9).
type PostgresRecordRepository struct {
	pool dbPool
}

func NewPostgresRecordRepository(pool dbPool) *PostgresRecordRepository {
	return &PostgresRecordRepository{pool: pool}
}

func (r *PostgresRecordRepository) Get(ctx context.Context, name string) (*legalrecord.LegalRecord, error) {
	q := connFromContext(ctx, r.pool)
	row := q.QueryRow(ctx, `
		SELECT type_code, year, number, name, slash_form, title_en, live,
		       live_source, live_conflict, live_conflict_detail,
		       geo_region, geo_extent, geo_detail, attrs, relationships,
		       schema_version
		FROM legal_records WHERE name = $1
	`, name)

	record, err := scanRecord(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, oops.Code("RECORD_NOT_FOUND").With("name", name).Wrap(ErrNotFound)
	}
	if err != nil {
		return nil, oops.Code("RECORD_GET_FAILED").With("name", name).Wrap(err)
	}
	return record, nil
}

// Upsert writes record, keyed by Name, inserting or overwriting the
// existing row (§9: the merge/overwrite semantics are decided before the
// call, Upsert itself is a plain replace-by-key write).
func (r *PostgresRecordRepository) Upsert(ctx context.Context, record *legalrecord.LegalRecord) error {
	attrs, err := json.Marshal(legalrecord.ToStoreAttrs(record))
	if err != nil {
		return oops.Code("RECORD_ENCODE_FAILED").With("name", record.Name).Wrap(err)
	}
	relationships, err := json.Marshal(relationshipsShape{
		EnactedBy:   record.EnactedBy,
		Amending:    record.Amending,
		Rescinding:  record.Rescinding,
		AmendedBy:   record.AmendedBy,
		RescindedBy: record.RescindedBy,
	})
	if err != nil {
		return oops.Code("RECORD_ENCODE_FAILED").With("name", record.Name).Wrap(err)
	}

	q := connFromContext(ctx, r.pool)
	_, err = q.Exec(ctx, `
		INSERT INTO legal_records (
			name, type_code, year, number, slash_form, title_en, live,
			live_source, live_conflict, live_conflict_detail,
			geo_region, geo_extent, geo_detail, attrs, relationships, schema_version
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16)
		ON CONFLICT (name) DO UPDATE SET
			type_code = EXCLUDED.type_code, year = EXCLUDED.year, number = EXCLUDED.number,
			slash_form = EXCLUDED.slash_form, title_en = EXCLUDED.title_en, live = EXCLUDED.live,
			live_source = EXCLUDED.live_source, live_conflict = EXCLUDED.live_conflict,
			live_conflict_detail = EXCLUDED.live_conflict_detail, geo_region = EXCLUDED.geo_region,
			geo_extent = EXCLUDED.geo_extent, geo_detail = EXCLUDED.geo_detail,
			attrs = EXCLUDED.attrs, relationships = EXCLUDED.relationships,
			schema_version = EXCLUDED.schema_version
	`, record.Name, record.TypeCode, record.Year, record.Number, record.SlashForm, record.TitleEN,
		string(record.Live), string(record.LiveSource), record.LiveConflict, record.LiveConflictDetail,
		record.GeoRegion, record.GeoExtent, record.GeoDetail, attrs, relationships, record.SchemaVersion)
	if err != nil {
		return oops.Code("RECORD_UPSERT_FAILED").With("name", record.Name).Wrap(err)
	}
	return nil
}

// AppendChangeLog appends one ChangeEntry, skipping a no-op append when
// Changes is empty so the log grows only on real diffs (§8 idempotence).
func (r *PostgresRecordRepository) AppendChangeLog(ctx context.Context, name string, entry legalrecord.ChangeEntry) error {
	if len(entry.Changes) == 0 {
		return nil
	}
	payload, err := json.Marshal(entry)
	if err != nil {
		return oops.Code("CHANGELOG_ENCODE_FAILED").With("name", name).Wrap(err)
	}
	q := connFromContext(ctx, r.pool)
	_, err = q.Exec(ctx, `
		INSERT INTO record_change_log (law_name, entry) VALUES ($1, $2)
	`, name, payload)
	if err != nil {
		return oops.Code("CHANGELOG_APPEND_FAILED").With("name", name).Wrap(err)
	}
	return nil
}

type relationshipsShape struct {
	EnactedBy   []string `json:"enacted_by"`
	Amending    []string `json:"amending"`
	Rescinding  []string `json:"rescinding"`
	AmendedBy   []string `json:"amended_by"`
	RescindedBy []string `json:"rescinded_by"`
}

func scanRecord(row pgx.Row) (*legalrecord.LegalRecord, error) {
	var rec legalrecord.LegalRecord
	var attrsJSON, relJSON []byte

	err := row.Scan(
		&rec.TypeCode, &rec.Year, &rec.Number, &rec.Name, &rec.SlashForm, &rec.TitleEN,
		&rec.Live, &rec.LiveSource, &rec.LiveConflict, &rec.LiveConflictDetail,
		&rec.GeoRegion, &rec.GeoExtent, &rec.GeoDetail, &attrsJSON, &relJSON, &rec.SchemaVersion,
	)
	if err != nil {
		return nil, err
	}

	var attrs legalrecord.StoreAttrs
	if err := json.Unmarshal(attrsJSON, &attrs); err != nil {
		return nil, oops.Code("RECORD_DECODE_FAILED").Wrap(err)
	}
	legalrecord.FromStore(&rec, attrs)

	var rel relationshipsShape
	if err := json.Unmarshal(relJSON, &rel); err != nil {
		return nil, oops.Code("RECORD_DECODE_FAILED").Wrap(err)
	}
	rec.EnactedBy, rec.Amending, rec.Rescinding = rel.EnactedBy, rel.Amending, rel.Rescinding
	rec.AmendedBy, rec.RescindedBy = rel.AmendedBy, rel.RescindedBy

	return &rec, nil
}

var _ RecordRepository = (*PostgresRecordRepository)(nil)
