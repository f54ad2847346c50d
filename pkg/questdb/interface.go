package questdb

import (
	"context"

	"github.com/jackc/pgx/v5"
)

//go:generate mockgen -source=interface.go -destination=mock/interface_mock.go -package=mock

// Rows is the subset of pgx.Rows the repositories read. pgx.Rows satisfies it.
type Rows interface {
	Next() bool
	Scan(dest ...any) error
	Close()
	Err() error
}

var _ Rows = (pgx.Rows)(nil)

// QuestDBClient is the QuestDB access used by repositories and the migration runner.
// QuestDB has no transactions and rejects COPY, so writes go through Exec.
type QuestDBClient interface {
	Exec(ctx context.Context, sql string, args ...any) error
	Query(ctx context.Context, sql string, args ...any) (Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Ping(ctx context.Context) error
	Close()
}
