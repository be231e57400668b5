package ioschema

import (
	"context"
	"testing"

	"github.com/dispatchlab/crtbox/internal/iodb"
	"github.com/dispatchlab/crtbox/internal/iotesting"
	"github.com/dispatchlab/crtbox/pkg/lifecycle"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestManager_ImplementsInterface verifies manager
// implements lifecycle.SchemaManager interface.
func TestManager_ImplementsInterface(t *testing.T) {
	op := iodb.NewPgxOperator()
	var _ lifecycle.SchemaManager = NewManager(op)
}

// TestNewManager_CreatesManager verifies manager creation.
func TestNewManager_CreatesManager(t *testing.T) {
	op := iodb.NewPgxOperator()
	mgr := NewManager(op)
	require.NotNil(t, mgr)
}

// TestManager_NotConnected verifies schema operations fail
// without a database connection.
func TestManager_NotConnected(t *testing.T) {
	op := iodb.NewPgxOperator()
	mgr := NewManager(op)

	cfg := iotesting.GetTestConfig()
	ctx := context.Background()

	err := mgr.Create(ctx, cfg)
	assert.Error(t, err)

	err = mgr.Migrate(ctx, cfg)
	assert.Error(t, err)
}

// TestManager_Create verifies schema creation against a live
// database.
func TestManager_Create(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	op := iodb.NewPgxOperator()
	ctx := context.Background()
	cfg := iotesting.GetTestConfig()

	err := op.Connect(ctx, &cfg.Database)
	require.NoError(t, err)
	defer op.Close()

	require.NoError(t, op.DropMaterializedViews(ctx))
	require.NoError(t, op.DropAllTables(ctx))

	mgr := NewManager(op)
	err = mgr.Create(ctx, cfg)
	require.NoError(t, err)

	exists, err := op.TableExists(ctx, "sales_facts")
	require.NoError(t, err)
	assert.True(t, exists, "sales_facts table should exist after Create")

	exists, err = op.TableExists(ctx, "publications")
	require.NoError(t, err)
	assert.True(t, exists, "publications table should exist after Create")

	// AutoMigrate is idempotent
	err = mgr.Migrate(ctx, cfg)
	assert.NoError(t, err)

	_ = op.DropAllTables(ctx)
}
