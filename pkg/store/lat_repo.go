package store

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/samber/oops"

	"github.com/coolbeans/ukleg-register/pkg/legalrecord"
)

// PostgresLATRepository implements LATRepository using PostgreSQL.
type PostgresLATRepository struct {
	pool dbPool
}

func NewPostgresLATRepository(pool dbPool) *PostgresLATRepository {
	return &PostgresLATRepository{pool: pool}
}

// ReplaceAll deletes lawName's existing LAT rows and inserts rows, within
// whatever transaction ctx carries. Call sites wrap this in Transactor so a
// later failure (e.g. annotations) rolls back the delete+insert together
// (§7 scenario 6: no partial LAT rows survive a failed persist).
func (r *PostgresLATRepository) ReplaceAll(ctx context.Context, lawName string, rows []legalrecord.LATRow) error {
	q := connFromContext(ctx, r.pool)
	if _, err := q.Exec(ctx, `DELETE FROM lat_rows WHERE law_name = $1`, lawName); err != nil {
		return oops.Code("LAT_DELETE_FAILED").With("law_name", lawName).Wrap(err)
	}
	for _, row := range rows {
		if _, err := q.Exec(ctx, `
			INSERT INTO lat_rows (
				section_id, law_name, section_type, part, chapter, heading_group,
				schedule, provision, sub, paragraph, sub_paragraph, extent_code,
				text, sort_key, hierarchy_path, depth, position,
				amendment_count, modification_count, commencement_count, extent_count, editorial_count
			) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19,$20,$21,$22)
		`, row.SectionID, row.LawName, string(row.SectionType), row.Part, row.Chapter, row.HeadingGroup,
			row.Schedule, row.Provision, row.Sub, row.Paragraph, row.SubParagraph, row.ExtentCode,
			row.Text, row.SortKey, row.HierarchyPath, row.Depth, row.Position,
			row.AmendmentCount, row.ModificationCount, row.CommencementCount, row.ExtentCount, row.EditorialCount,
		); err != nil {
			return oops.Code("LAT_INSERT_FAILED").With("law_name", lawName).With("section_id", row.SectionID).Wrap(err)
		}
	}
	return nil
}

func (r *PostgresLATRepository) ListByLaw(ctx context.Context, lawName string) ([]legalrecord.LATRow, error) {
	q := connFromContext(ctx, r.pool)
	rows, err := q.Query(ctx, `
		SELECT section_id, law_name, section_type, part, chapter, heading_group,
		       schedule, provision, sub, paragraph, sub_paragraph, extent_code,
		       text, sort_key, hierarchy_path, depth, position,
		       amendment_count, modification_count, commencement_count, extent_count, editorial_count
		FROM lat_rows WHERE law_name = $1 ORDER BY position
	`, lawName)
	if err != nil {
		return nil, oops.Code("LAT_QUERY_FAILED").With("law_name", lawName).Wrap(err)
	}
	defer rows.Close()

	out := make([]legalrecord.LATRow, 0)
	for rows.Next() {
		var row legalrecord.LATRow
		if err := scanLATRow(rows, &row); err != nil {
			return nil, oops.Code("LAT_SCAN_FAILED").With("law_name", lawName).Wrap(err)
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, oops.Code("LAT_ITERATE_FAILED").With("law_name", lawName).Wrap(err)
	}
	return out, nil
}

func scanLATRow(rows pgx.Rows, row *legalrecord.LATRow) error {
	var sectionType string
	if err := rows.Scan(
		&row.SectionID, &row.LawName, &sectionType, &row.Part, &row.Chapter, &row.HeadingGroup,
		&row.Schedule, &row.Provision, &row.Sub, &row.Paragraph, &row.SubParagraph, &row.ExtentCode,
		&row.Text, &row.SortKey, &row.HierarchyPath, &row.Depth, &row.Position,
		&row.AmendmentCount, &row.ModificationCount, &row.CommencementCount, &row.ExtentCount, &row.EditorialCount,
	); err != nil {
		return err
	}
	row.SectionType = legalrecord.SectionType(sectionType)
	return nil
}

var _ LATRepository = (*PostgresLATRepository)(nil)
