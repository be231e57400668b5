// Package iodb implements warehouse database operations using
// pgxpool. This is an impure I/O package that implements contracts
// defined in pkg/.
package iodb

import (
	"context"
	"fmt"

	"github.com/dispatchlab/crtbox/pkg/config"
	"github.com/dispatchlab/crtbox/pkg/db"
	"github.com/jackc/pgx/v5/pgxpool"
)

// pgxOperator implements db.Operator interface using
// pgxpool for connection pooling.
type pgxOperator struct {
	pool *pgxpool.Pool
}

// NewPgxOperator creates a new database operator
// (without connecting).
func NewPgxOperator() db.Operator {
	return &pgxOperator{}
}

// Connect establishes a connection pool to PostgreSQL.
// Uses sensible hardcoded pool settings that work well for
// most use cases.
func (p *pgxOperator) Connect(
	ctx context.Context,
	cfg *config.DatabaseConfig,
) error {
	// Build connection string
	dsn := fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		cfg.User,
		cfg.Password,
		cfg.Host,
		cfg.Port,
		cfg.Database,
		cfg.SSLMode,
	)

	poolConfig, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return NewConnectionError(cfg.Host, cfg.Port,
			cfg.Database, cfg.User, err)
	}

	// Hardcoded pool settings (can be made configurable
	// later if needed)
	poolConfig.MaxConns = 10       // Max connections
	poolConfig.MinConns = 2        // Keep 2 connections warm
	poolConfig.MaxConnLifetime = 0 // No lifetime limit
	poolConfig.MaxConnIdleTime = 0 // No idle timeout

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return NewConnectionError(cfg.Host, cfg.Port,
			cfg.Database, cfg.User, err)
	}

	// Verify connection
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return NewConnectionError(cfg.Host, cfg.Port,
			cfg.Database, cfg.User, err)
	}

	p.pool = pool
	return nil
}

// Close releases all database connections.
func (p *pgxOperator) Close() error {
	if p.pool != nil {
		p.pool.Close()
	}
	return nil
}

// Pool returns the underlying pgxpool.Pool for advanced
// operations.
func (p *pgxOperator) Pool() *pgxpool.Pool {
	return p.pool
}

// TableExists checks if a table exists in the current
// database.
func (p *pgxOperator) TableExists(
	ctx context.Context,
	tableName string,
) (bool, error) {
	if p.pool == nil {
		return false, NewNotConnectedError()
	}

	query := `
		SELECT EXISTS (
			SELECT FROM information_schema.tables
			WHERE table_schema = 'public'
			AND table_name = $1
		)
	`

	var exists bool
	err := p.pool.QueryRow(ctx, query, tableName).Scan(&exists)
	if err != nil {
		return false, NewTableExistsCheckError(tableName, err)
	}

	return exists, nil
}

// HasTables checks if the database has any tables in the
// public schema.
func (p *pgxOperator) HasTables(
	ctx context.Context,
) (bool, error) {
	if p.pool == nil {
		return false, NewNotConnectedError()
	}

	query := `
		SELECT EXISTS (
			SELECT FROM information_schema.tables
			WHERE table_schema = 'public'
		)
	`

	var hasTables bool
	err := p.pool.QueryRow(ctx, query).Scan(&hasTables)
	if err != nil {
		return false, NewTableCheckError(err)
	}

	return hasTables, nil
}

// DropAllTables drops all tables in the public schema.
func (p *pgxOperator) DropAllTables(ctx context.Context) error {
	if p.pool == nil {
		return NewNotConnectedError()
	}

	// Get all table names
	query := `
		SELECT tablename
		FROM pg_tables
		WHERE schemaname = 'public'
	`

	rows, err := p.pool.Query(ctx, query)
	if err != nil {
		return NewQueryTablesError(err)
	}
	defer rows.Close()

	var tables []string
	for rows.Next() {
		var tableName string
		if err := rows.Scan(&tableName); err != nil {
			return NewScanTableError(err)
		}
		tables = append(tables, tableName)
	}

	if err := rows.Err(); err != nil {
		return NewScanTableError(err)
	}

	// Drop each table with CASCADE
	for _, table := range tables {
		dropSQL := fmt.Sprintf(
			"DROP TABLE IF EXISTS %s CASCADE", table)
		if _, err := p.pool.Exec(ctx, dropSQL); err != nil {
			return NewDropTableError(table, err)
		}
	}

	return nil
}

// DropMaterializedViews drops all materialized views in the
// public schema.
func (p *pgxOperator) DropMaterializedViews(
	ctx context.Context,
) error {
	if p.pool == nil {
		return NewNotConnectedError()
	}

	// Get all materialized view names
	query := `
		SELECT matviewname
		FROM pg_matviews
		WHERE schemaname = 'public'
	`

	rows, err := p.pool.Query(ctx, query)
	if err != nil {
		return NewQueryViewsError(err)
	}
	defer rows.Close()

	var views []string
	for rows.Next() {
		var viewName string
		if err := rows.Scan(&viewName); err != nil {
			return NewScanViewError(err)
		}
		views = append(views, viewName)
	}

	if err := rows.Err(); err != nil {
		return NewScanViewError(err)
	}

	// Drop each materialized view
	for _, view := range views {
		dropSQL := fmt.Sprintf(
			"DROP MATERIALIZED VIEW IF EXISTS %s CASCADE", view)
		if _, err := p.pool.Exec(ctx, dropSQL); err != nil {
			return NewDropViewError(view, err)
		}
	}

	return nil
}

// CreateMaterializedViews creates all materialized views for
// the warehouse. Currently creates the route_daily_totals view
// BI tools read for the route-by-day crates-per-box totals.
func (p *pgxOperator) CreateMaterializedViews(
	ctx context.Context,
) error {
	if p.pool == nil {
		return NewNotConnectedError()
	}

	viewSQL := `CREATE MATERIALIZED VIEW route_daily_totals AS
SELECT
	dataset, route, sales_date,
	SUM(COALESCE(crt_box, 0)) AS total_crt_box,
	COUNT(*) AS records
FROM sales_facts
GROUP BY dataset, route, sales_date`

	if _, err := p.pool.Exec(ctx, viewSQL); err != nil {
		return NewCreateViewError("route_daily_totals", err)
	}

	// Create indexes on route_daily_totals view
	indexes := []string{
		"CREATE INDEX ON route_daily_totals (route)",
		"CREATE INDEX ON route_daily_totals (sales_date)",
	}

	for _, idx := range indexes {
		if _, err := p.pool.Exec(ctx, idx); err != nil {
			return NewCreateViewIndexError("route_daily_totals", err)
		}
	}

	return nil
}

// RefreshMaterializedViews re-reads the fact table into the
// route_daily_totals view. Called after each publish run.
func (p *pgxOperator) RefreshMaterializedViews(
	ctx context.Context,
) error {
	if p.pool == nil {
		return NewNotConnectedError()
	}

	refreshSQL := "REFRESH MATERIALIZED VIEW route_daily_totals"
	if _, err := p.pool.Exec(ctx, refreshSQL); err != nil {
		return NewRefreshViewError("route_daily_totals", err)
	}

	return nil
}
