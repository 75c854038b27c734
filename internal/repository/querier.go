// Package repository holds the LightBnB SQL: the property search query
// builder and the user, reservation and property statements.
//
// Repositories run over a Querier so the same code serves a *pgxpool.Pool,
// a single connection or a transaction. Lookups that match no row return
// (nil, nil); store failures are wrapped and returned.
package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Querier is the store client the repositories execute against.
// *pgxpool.Pool, *pgx.Conn and pgx.Tx all satisfy it.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}
