// Package migrations embedded database schema
package migrations

import (
	"context"
	"embed"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

//go:embed *.sql
var embedMigrations embed.FS

// Up applies all pending migrations using a database/sql handle over the pool
func Up(ctx context.Context, pool *pgxpool.Pool) error {
	// idle connections of the returned handle are kept at zero, the pool stays owned by the caller
	db := stdlib.OpenDBFromPool(pool)

	goose.SetBaseFS(embedMigrations)
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("migrations - Up - SetDialect: %w", err)
	}
	if err := goose.UpContext(ctx, db, "."); err != nil {
		return fmt.Errorf("migrations - Up - UpContext: %w", err)
	}

	return nil
}
