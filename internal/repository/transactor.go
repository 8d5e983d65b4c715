package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/OVantsevich/Portfolio-Service/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type pgxTxKey struct{}

// TxFunc unit of work executed inside a transaction
type TxFunc func(context.Context) error

// postgres error codes meaning the transaction lost a race and may be retried
const (
	pgSerializationFailure = "40001"
	pgDeadlockDetected     = "40P01"
	pgLockNotAvailable     = "55P03"
)

// injects pgx.Tx into context
func injectTx(ctx context.Context, tx pgx.Tx) context.Context {
	return context.WithValue(ctx, pgxTxKey{}, tx)
}

// retrieves pgx.Tx from context
func extractTx(ctx context.Context) pgx.Tx {
	if tx, ok := ctx.Value(pgxTxKey{}).(pgx.Tx); ok {
		return tx
	}
	return nil
}

// PgxTransactor represents pgx transactor behavior
type PgxTransactor interface {
	WithinTransaction(ctx context.Context, txFn TxFunc) error
	WithinTransactionWithOptions(ctx context.Context, txFn TxFunc, opts pgx.TxOptions) error
}

type pgxTransactor struct {
	pool *pgxpool.Pool
}

// NewPgxTransactor builds new PgxTransactor
func NewPgxTransactor(p *pgxpool.Pool) PgxTransactor {
	return &pgxTransactor{pool: p}
}

// WithinTransaction runs WithinTransactionWithOptions with default tx options
func (t *pgxTransactor) WithinTransaction(ctx context.Context, txFunc TxFunc) error {
	return WithinTransaction(ctx, t.pool, txFunc)
}

// WithinTransactionWithOptions runs logic within transaction passing context with pgx.Tx injected into it,
// so you can retrieve it via PgxWithinTransactionRunner function Runner
func (t *pgxTransactor) WithinTransactionWithOptions(ctx context.Context, txFunc TxFunc, opts pgx.TxOptions) error {
	return WithinTransactionWithOptions(ctx, t.pool, txFunc, opts)
}

// PgxQueryRunner represents query runner behavior
type PgxQueryRunner interface {
	Exec(ctx context.Context, sql string, arguments ...interface{}) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, optionsAndArgs ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, optionsAndArgs ...interface{}) pgx.Row
}

// PgxWithinTransactionRunner represents query runner retriever for pgx
type PgxWithinTransactionRunner interface {
	PgxQueryRunner
	Runner(ctx context.Context) PgxQueryRunner
	Pool() *pgxpool.Pool
}

type pgxWithinTransactionRunner struct {
	pool *pgxpool.Pool
}

// NewPgxWithinTransactionRunner builds new PgxWithinTransactionRunner
func NewPgxWithinTransactionRunner(p *pgxpool.Pool) PgxWithinTransactionRunner {
	return &pgxWithinTransactionRunner{pool: p}
}

// Runner extracts query runner from context, if pgx.Tx is injected into context it is returned and pgxpool.Pool otherwise
func (r *pgxWithinTransactionRunner) Runner(ctx context.Context) PgxQueryRunner {
	tx := extractTx(ctx)
	if tx != nil {
		return tx
	}
	return r.pool
}

// Pool extracts *pgxpool.Pool from transaction runner
func (r *pgxWithinTransactionRunner) Pool() *pgxpool.Pool {
	return r.pool
}

// Exec calls pgxpool.Pool.Exec or pgx.Tx.Exec depending on execution context
func (r *pgxWithinTransactionRunner) Exec(ctx context.Context, sql string, arguments ...interface{}) (pgconn.CommandTag, error) {
	return r.Runner(ctx).Exec(ctx, sql, arguments...)
}

// Query calls pgxpool.Pool.Query or pgx.Tx.Query depending on execution context
func (r *pgxWithinTransactionRunner) Query(ctx context.Context, sql string, optionsAndArgs ...interface{}) (pgx.Rows, error) {
	return r.Runner(ctx).Query(ctx, sql, optionsAndArgs...)
}

// QueryRow calls pgxpool.Pool.QueryRow or pgx.Tx.QueryRow depending on execution context
func (r *pgxWithinTransactionRunner) QueryRow(ctx context.Context, sql string, optionsAndArgs ...interface{}) pgx.Row {
	return r.Runner(ctx).QueryRow(ctx, sql, optionsAndArgs...)
}

// PgxTransactionInitiator represents transaction initiator
type PgxTransactionInitiator interface {
	BeginTx(ctx context.Context, txOptions pgx.TxOptions) (pgx.Tx, error)
}

// WithinTransaction runs WithinTransactionWithOptions with default tx options
func WithinTransaction(ctx context.Context, txInit PgxTransactionInitiator, txFunc TxFunc) error {
	return WithinTransactionWithOptions(ctx, txInit, txFunc, pgx.TxOptions{})
}

// WithinTransactionWithOptions runs logic within transaction passing context with pgx.Tx injected into it.
// Nested calls reuse the outer transaction. Any error rolls the transaction back, including context cancellation.
func WithinTransactionWithOptions(ctx context.Context, txInit PgxTransactionInitiator, txFunc TxFunc, opts pgx.TxOptions) (err error) {
	if extractTx(ctx) != nil {
		return txFunc(ctx)
	}

	tx, err := txInit.BeginTx(ctx, opts)
	if err != nil {
		return fmt.Errorf("transactor - WithinTransaction - BeginTx: %w", classify(err))
	}
	defer func() {
		var txErr error
		if err != nil {
			// rollback must not depend on the caller context, it may already be canceled
			txErr = tx.Rollback(context.WithoutCancel(ctx))
		} else {
			txErr = tx.Commit(ctx)
		}

		if txErr != nil && !errors.Is(txErr, pgx.ErrTxClosed) {
			err = fmt.Errorf("transactor - WithinTransaction - %w", classify(txErr))
		}
	}()

	err = txFunc(injectTx(ctx, tx))
	return err
}

// classify maps lock and serialization conflicts to model.ErrConcurrentModification
func classify(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgSerializationFailure, pgDeadlockDetected, pgLockNotAvailable:
			return fmt.Errorf("%w: %s", model.ErrConcurrentModification, pgErr.Message)
		}
	}
	return err
}
