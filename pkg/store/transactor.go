package store

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/samber/oops"
)

type txKey struct{}

// querier is the subset of pgx's query surface shared by *pgxpool.Pool,
// pgx.Tx, and pgxmock's PgxPoolIface, letting repository methods run
// inside or outside a transaction, against a real pool or a mock, without
// branching.
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// dbPool is a querier that can also start transactions.
type dbPool interface {
	querier
	Begin(ctx context.Context) (pgx.Tx, error)
}

// PoolTransactor implements Transactor using a pgx connection pool. The
// active pgx.Tx is carried in context so repository methods issued inside
// InTransaction's fn participate in the same transaction.
type PoolTransactor struct {
	pool dbPool
}

func NewPoolTransactor(pool dbPool) *PoolTransactor {
	return &PoolTransactor{pool: pool}
}

// InTransaction begins a transaction, stores it in context, and calls fn.
// fn returning nil commits; any error rolls back the whole transaction so
// no partial LAT rows or annotations are left behind (§7 scenario 6).
func (t *PoolTransactor) InTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	tx, err := t.pool.Begin(ctx)
	if err != nil {
		return oops.Code("TX_BEGIN_FAILED").Wrap(err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	txCtx := context.WithValue(ctx, txKey{}, tx)
	if err := fn(txCtx); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return oops.Code("TX_COMMIT_FAILED").Wrap(err)
	}
	return nil
}

func connFromContext(ctx context.Context, pool dbPool) querier {
	if tx, ok := ctx.Value(txKey{}).(pgx.Tx); ok {
		return tx
	}
	return pool
}
