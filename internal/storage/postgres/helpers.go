package postgres

import (
	"context"
	"errors"
	"fmt"

	"nexustalent/internal/storage"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Querier is the subset of pgxpool.Pool and pgx.Tx used by the repositories.
type Querier interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// mapWriteError converts constraint violations into storage.ErrConflict.
func mapWriteError(err error, operation string) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23503", "23505", "23514": // foreign_key, unique, check violations
			return fmt.Errorf("%s: %s: %w", operation, pgErr.Message, storage.ErrConflict)
		}
	}
	return fmt.Errorf("%s: %w", operation, err)
}
