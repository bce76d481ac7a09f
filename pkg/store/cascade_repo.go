package store

import (
	"context"

	"github.com/samber/oops"

	"github.com/coolbeans/ukleg-register/pkg/legalrecord"
)

// PostgresCascadeRepository durably mirrors the in-memory cascade tracker
// so a session's pending work list survives a process restart (§4.6, §4.17).
type PostgresCascadeRepository struct {
	pool dbPool
}

func NewPostgresCascadeRepository(pool dbPool) *PostgresCascadeRepository {
	return &PostgresCascadeRepository{pool: pool}
}

func (r *PostgresCascadeRepository) Upsert(ctx context.Context, entry *legalrecord.CascadeEntry) error {
	q := connFromContext(ctx, r.pool)
	_, err := q.Exec(ctx, `
		INSERT INTO cascade_entries (session_id, affected_law, update_type, status, source_laws)
		VALUES ($1,$2,$3,$4,$5)
		ON CONFLICT (session_id, affected_law) DO UPDATE SET
			update_type = EXCLUDED.update_type, status = EXCLUDED.status, source_laws = EXCLUDED.source_laws
	`, entry.SessionID, entry.AffectedLaw, string(entry.UpdateType), string(entry.Status), entry.SourceLaws)
	if err != nil {
		return oops.Code("CASCADE_UPSERT_FAILED").With("session_id", entry.SessionID).With("affected_law", entry.AffectedLaw).Wrap(err)
	}
	return nil
}

func (r *PostgresCascadeRepository) ListPending(ctx context.Context, sessionID string) ([]legalrecord.CascadeEntry, error) {
	q := connFromContext(ctx, r.pool)
	rows, err := q.Query(ctx, `
		SELECT session_id, affected_law, update_type, status, source_laws
		FROM cascade_entries WHERE session_id = $1 AND status = 'pending'
		ORDER BY ctid
	`, sessionID)
	if err != nil {
		return nil, oops.Code("CASCADE_QUERY_FAILED").With("session_id", sessionID).Wrap(err)
	}
	defer rows.Close()

	out := make([]legalrecord.CascadeEntry, 0)
	for rows.Next() {
		var e legalrecord.CascadeEntry
		var updateType, status string
		if err := rows.Scan(&e.SessionID, &e.AffectedLaw, &updateType, &status, &e.SourceLaws); err != nil {
			return nil, oops.Code("CASCADE_SCAN_FAILED").With("session_id", sessionID).Wrap(err)
		}
		e.UpdateType, e.Status = legalrecord.CascadeUpdateType(updateType), legalrecord.CascadeStatus(status)
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, oops.Code("CASCADE_ITERATE_FAILED").With("session_id", sessionID).Wrap(err)
	}
	return out, nil
}

func (r *PostgresCascadeRepository) MarkProcessed(ctx context.Context, sessionID, affectedLaw string) error {
	q := connFromContext(ctx, r.pool)
	tag, err := q.Exec(ctx, `
		UPDATE cascade_entries SET status = 'processed' WHERE session_id = $1 AND affected_law = $2
	`, sessionID, affectedLaw)
	if err != nil {
		return oops.Code("CASCADE_MARK_FAILED").With("session_id", sessionID).With("affected_law", affectedLaw).Wrap(err)
	}
	if tag.RowsAffected() == 0 {
		return oops.Code("CASCADE_NOT_FOUND").With("session_id", sessionID).With("affected_law", affectedLaw).Wrap(ErrNotFound)
	}
	return nil
}

var _ CascadeRepository = (*PostgresCascadeRepository)(nil)
