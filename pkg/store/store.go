// Package store implements the persistence boundary (§9): a Postgres-backed
// repository for LegalRecord, LATRow, AmendmentAnnotation, and CascadeEntry,
// transaction-scoped via context, with atomic rollback on partial failure.
package store

import (
	"context"
	"errors"

	"github.com/coolbeans/ukleg-register/pkg/legalrecord"
)

// ErrNotFound is returned when a record does not exist.
var ErrNotFound = errors.New("store: not found")

// RecordRepository persists and retrieves LegalRecord rows, keyed by their
// canonical name.
type RecordRepository interface {
	Get(ctx context.Context, name string) (*legalrecord.LegalRecord, error)
	Upsert(ctx context.Context, record *legalrecord.LegalRecord) error
	AppendChangeLog(ctx context.Context, name string, entry legalrecord.ChangeEntry) error
}

// LATRepository persists the structural rows for one law's body, replacing
// the full set atomically (§9: LAT/annotation transactions roll back
// atomically, no partial rows survive a failure).
type LATRepository interface {
	ReplaceAll(ctx context.Context, lawName string, rows []legalrecord.LATRow) error
	ListByLaw(ctx context.Context, lawName string) ([]legalrecord.LATRow, error)
}

// AnnotationRepository persists commentary annotations for one law.
type AnnotationRepository interface {
	ReplaceAll(ctx context.Context, lawName string, annotations []legalrecord.AmendmentAnnotation) error
	ListByLaw(ctx context.Context, lawName string) ([]legalrecord.AmendmentAnnotation, error)
}

// CascadeRepository durably mirrors cascade entries so a session can resume
// after a process restart (§4.6, §4.17).
type CascadeRepository interface {
	Upsert(ctx context.Context, entry *legalrecord.CascadeEntry) error
	ListPending(ctx context.Context, sessionID string) ([]legalrecord.CascadeEntry, error)
	MarkProcessed(ctx context.Context, sessionID, affectedLaw string) error
}

// Transactor runs fn inside a single database transaction, committing on a
// nil return and rolling back otherwise.
type Transactor interface {
	InTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// Store bundles the repositories and transactor a persist operation needs.
type Store struct {
	Records     RecordRepository
	LAT         LATRepository
	Annotations AnnotationRepository
	Cascade     CascadeRepository
	Transactor  Transactor
}

// PersistParse writes a completed parse's LegalRecord, LAT rows, and
// annotations as one transaction; a failure anywhere rolls back all three
// so no partial LAT rows or annotations are left (§7 scenario 6, §9).
func (s *Store) PersistParse(ctx context.Context, law *legalrecord.ParsedLaw, lat []legalrecord.LATRow, annotations []legalrecord.AmendmentAnnotation) error {
	return s.Transactor.InTransaction(ctx, func(ctx context.Context) error {
		if err := s.Records.Upsert(ctx, &law.LegalRecord); err != nil {
			return err
		}
		if !legalrecord.IsMakingLaw(law.DutyType) {
			return nil
		}
		if err := s.LAT.ReplaceAll(ctx, law.Name, lat); err != nil {
			return err
		}
		return s.Annotations.ReplaceAll(ctx, law.Name, annotations)
	})
}
