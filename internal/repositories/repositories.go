// Package repositories contains the persistence layer. Every query that
// serves an authorization decision is owner-scoped in SQL: filtering by the
// owning user id makes "not owned" indistinguishable from "does not exist".
package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Database is the subset of pgxpool.Pool the repositories need. pgxmock
// satisfies it too, which keeps the repository tests off a live database.
type Database interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}
