package iodb_test

import (
	"context"
	"testing"

	"github.com/dispatchlab/crtbox/internal/iodb"
	"github.com/dispatchlab/crtbox/internal/iotesting"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Note: These are integration tests that require PostgreSQL.
//
// Configuration comes from CRTBOX_DATABASE_* environment variables,
// falling back to built-in defaults (postgres/postgres).
//
//   export CRTBOX_DATABASE_USER=your_user
//   export CRTBOX_DATABASE_PASSWORD=your_password
//   # Database name is always forced to "crtbox_test" for safety
//
// Or use Docker with default credentials:
//   docker run -d --name crtbox-test -e POSTGRES_PASSWORD=postgres -p 5432:5432 postgres:15
//
// Skip these tests in CI without PostgreSQL using:
//   go test -short (these tests will be skipped)

func TestPgxOperator_Connect(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	op := iodb.NewPgxOperator()
	ctx := context.Background()

	err := op.Connect(ctx, iotesting.GetTestDatabaseConfig())
	require.NoError(t, err, "Connect should succeed with valid config")

	defer op.Close()

	// Verify connection works by checking if we can query tables
	exists, err := op.TableExists(ctx, "nonexistent_table")
	assert.NoError(t, err, "Should be able to execute commands after Connect")
	assert.False(t, exists)
}

func TestPgxOperator_Connect_InvalidHost(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	op := iodb.NewPgxOperator()
	ctx := context.Background()

	cfg := iotesting.GetTestDatabaseConfig()
	cfg.Host = "invalid-host-that-does-not-exist"

	err := op.Connect(ctx, cfg)
	assert.Error(t, err, "Connect should fail with invalid host")
}

func TestPgxOperator_NotConnected(t *testing.T) {
	op := iodb.NewPgxOperator()
	ctx := context.Background()

	_, err := op.TableExists(ctx, "anything")
	assert.Error(t, err, "operations before Connect should fail")

	_, err = op.HasTables(ctx)
	assert.Error(t, err)

	err = op.RefreshMaterializedViews(ctx)
	assert.Error(t, err)
}

func TestPgxOperator_TableExists(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	op := iodb.NewPgxOperator()
	ctx := context.Background()

	err := op.Connect(ctx, iotesting.GetTestDatabaseConfig())
	require.NoError(t, err)
	defer op.Close()

	// Clean up any existing test table
	_, _ = op.Pool().Exec(ctx, "DROP TABLE IF EXISTS test_table_exists CASCADE")

	// Table should not exist initially
	exists, err := op.TableExists(ctx, "test_table_exists")
	require.NoError(t, err)
	assert.False(t, exists, "Table should not exist initially")

	// Create table
	_, err = op.Pool().Exec(ctx, "CREATE TABLE test_table_exists (id SERIAL PRIMARY KEY)")
	require.NoError(t, err)

	// Table should now exist
	exists, err = op.TableExists(ctx, "test_table_exists")
	require.NoError(t, err)
	assert.True(t, exists, "Table should exist after creation")

	// Clean up
	_, _ = op.Pool().Exec(ctx, "DROP TABLE test_table_exists")
}

func TestPgxOperator_DropAllTables(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	op := iodb.NewPgxOperator()
	ctx := context.Background()

	err := op.Connect(ctx, iotesting.GetTestDatabaseConfig())
	require.NoError(t, err)
	defer op.Close()

	// Create some test tables
	_, _ = op.Pool().Exec(ctx, "CREATE TABLE IF NOT EXISTS drop_test1 (id SERIAL PRIMARY KEY)")
	_, _ = op.Pool().Exec(ctx, "CREATE TABLE IF NOT EXISTS drop_test2 (id SERIAL PRIMARY KEY)")

	// Drop all tables
	err = op.DropAllTables(ctx)
	require.NoError(t, err)

	// Verify tables are gone
	exists1, _ := op.TableExists(ctx, "drop_test1")
	exists2, _ := op.TableExists(ctx, "drop_test2")
	assert.False(t, exists1, "drop_test1 should be dropped")
	assert.False(t, exists2, "drop_test2 should be dropped")
}

func TestPgxOperator_MaterializedViews(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	op := iodb.NewPgxOperator()
	ctx := context.Background()

	err := op.Connect(ctx, iotesting.GetTestDatabaseConfig())
	require.NoError(t, err)
	defer op.Close()

	// Start from a clean slate with a minimal fact table.
	require.NoError(t, op.DropMaterializedViews(ctx))
	require.NoError(t, op.DropAllTables(ctx))

	_, err = op.Pool().Exec(ctx, `
		CREATE TABLE sales_facts (
			id SERIAL PRIMARY KEY,
			dataset VARCHAR(50),
			route VARCHAR(100),
			sales_date DATE,
			crt_box DOUBLE PRECISION
		)`)
	require.NoError(t, err)

	_, err = op.Pool().Exec(ctx, `
		INSERT INTO sales_facts (dataset, route, sales_date, crt_box)
		VALUES ('dispatch', 'A', '2024-01-01', 2.0),
		       ('dispatch', 'A', '2024-01-01', 4.0),
		       ('dispatch', 'B', '2024-01-01', NULL)`)
	require.NoError(t, err)

	err = op.CreateMaterializedViews(ctx)
	require.NoError(t, err)

	var total float64
	var records int
	err = op.Pool().QueryRow(ctx, `
		SELECT total_crt_box, records FROM route_daily_totals
		WHERE route = 'A'`).Scan(&total, &records)
	require.NoError(t, err)
	assert.InDelta(t, 6.0, total, 1e-9)
	assert.Equal(t, 2, records)

	// NULL ratios count as zero in totals but still count as records.
	err = op.Pool().QueryRow(ctx, `
		SELECT total_crt_box, records FROM route_daily_totals
		WHERE route = 'B'`).Scan(&total, &records)
	require.NoError(t, err)
	assert.InDelta(t, 0.0, total, 1e-9)
	assert.Equal(t, 1, records)

	// Refresh picks up new fact rows.
	_, err = op.Pool().Exec(ctx, `
		INSERT INTO sales_facts (dataset, route, sales_date, crt_box)
		VALUES ('dispatch', 'A', '2024-01-01', 1.0)`)
	require.NoError(t, err)

	err = op.RefreshMaterializedViews(ctx)
	require.NoError(t, err)

	err = op.Pool().QueryRow(ctx, `
		SELECT total_crt_box FROM route_daily_totals
		WHERE route = 'A'`).Scan(&total)
	require.NoError(t, err)
	assert.InDelta(t, 7.0, total, 1e-9)

	// Clean up
	_ = op.DropMaterializedViews(ctx)
	_ = op.DropAllTables(ctx)
}
