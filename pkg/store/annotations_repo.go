package store

import (
	"context"

	"github.com/samber/oops"

	"github.com/coolbeans/ukleg-register/pkg/legalrecord"
)

// PostgresAnnotationRepository implements AnnotationRepository using PostgreSQL.
type PostgresAnnotationRepository struct {
	pool dbPool
}

func NewPostgresAnnotationRepository(pool dbPool) *PostgresAnnotationRepository {
	return &PostgresAnnotationRepository{pool: pool}
}

func (r *PostgresAnnotationRepository) ReplaceAll(ctx context.Context, lawName string, annotations []legalrecord.AmendmentAnnotation) error {
	q := connFromContext(ctx, r.pool)
	if _, err := q.Exec(ctx, `DELETE FROM amendment_annotations WHERE law_name = $1`, lawName); err != nil {
		return oops.Code("ANNOTATION_DELETE_FAILED").With("law_name", lawName).Wrap(err)
	}
	for _, a := range annotations {
		if _, err := q.Exec(ctx, `
			INSERT INTO amendment_annotations (id, law_name, code_type, seq, code, source, text, affected_sections)
			VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
		`, a.ID, a.LawName, string(a.CodeType), a.Seq, a.Code, a.Source, a.Text, a.AffectedSections); err != nil {
			return oops.Code("ANNOTATION_INSERT_FAILED").With("law_name", lawName).With("id", a.ID).Wrap(err)
		}
	}
	return nil
}

func (r *PostgresAnnotationRepository) ListByLaw(ctx context.Context, lawName string) ([]legalrecord.AmendmentAnnotation, error) {
	q := connFromContext(ctx, r.pool)
	rows, err := q.Query(ctx, `
		SELECT id, law_name, code_type, seq, code, source, text, affected_sections
		FROM amendment_annotations WHERE law_name = $1 ORDER BY code_type, seq
	`, lawName)
	if err != nil {
		return nil, oops.Code("ANNOTATION_QUERY_FAILED").With("law_name", lawName).Wrap(err)
	}
	defer rows.Close()

	out := make([]legalrecord.AmendmentAnnotation, 0)
	for rows.Next() {
		var a legalrecord.AmendmentAnnotation
		var codeType string
		if err := rows.Scan(&a.ID, &a.LawName, &codeType, &a.Seq, &a.Code, &a.Source, &a.Text, &a.AffectedSections); err != nil {
			return nil, oops.Code("ANNOTATION_SCAN_FAILED").With("law_name", lawName).Wrap(err)
		}
		a.CodeType = legalrecord.CodeType(codeType)
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, oops.Code("ANNOTATION_ITERATE_FAILED").With("law_name", lawName).Wrap(err)
	}
	return out, nil
}

var _ AnnotationRepository = (*PostgresAnnotationRepository)(nil)
