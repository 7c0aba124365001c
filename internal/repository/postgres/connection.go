// Package postgres provides pgx-backed repository implementations for
// multi-instance deployments that already run a PostgreSQL server.
package postgres

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"arbor/internal/domain/repositories"
)

// RepositoryConfig holds configuration for repository implementations
type RepositoryConfig struct {
	Pool   *pgxpool.Pool
	Tables *TableNames
	Logger *slog.Logger
}

// TableNames holds dynamically prefixed table names
type TableNames struct {
	States    string
	Snapshots string
}

// NewTableNames creates table names with the given prefix
func NewTableNames(prefix string) *TableNames {
	return &TableNames{
		States:    fmt.Sprintf("%sworkspace_states", prefix),
		Snapshots: fmt.Sprintf("%sworkspace_snapshots", prefix),
	}
}

// CreateConnectionPool creates a new pgx connection pool.
//
// pgx defaults to prepared statements (QueryExecModeCacheStatement), which
// PgBouncer in transaction pooling mode does not support. Port 6543 is the
// conventional transaction-pooler port, so when it is detected and the user
// has not picked a mode explicitly via ?default_query_exec_mode=, the pool
// falls back to QueryExecModeCacheDescribe: it keeps the extended protocol
// (needed for JSONB parameters) while caching only statement descriptions,
// which the pooler tolerates.
//
// Dynamic table prefixes interpolated with fmt.Sprintf are safe with
// prepared statements because the SQL string is built before it reaches the
// database; each prefix yields its own statement.
func CreateConnectionPool(ctx context.Context, databaseURL string) (*pgxpool.Pool, error) {
	config, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse connection string: %w", err)
	}

	config.MaxConns = 25
	config.MinConns = 5

	if config.ConnConfig.Port == 6543 && config.ConnConfig.DefaultQueryExecMode == pgx.QueryExecModeCacheStatement {
		config.ConnConfig.DefaultQueryExecMode = pgx.QueryExecModeCacheDescribe
		slog.Debug("auto-configured cache_describe mode for PgBouncer compatibility", "port", 6543)
	}

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return pool, nil
}

// GetExecutor returns the appropriate query executor for the context.
// If a transaction is present in the context, it returns the transaction.
// Otherwise, it returns the provided pool.
// This enables repositories to automatically participate in transactions when they exist.
func GetExecutor(ctx context.Context, pool *pgxpool.Pool) repositories.DBTX {
	if tx := repositories.GetTx(ctx); tx != nil {
		return tx
	}
	return pool
}
