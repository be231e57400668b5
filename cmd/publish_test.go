package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestGetPublishCmd_Exists verifies getPublishCmd returns
// a valid command.
func TestGetPublishCmd_Exists(t *testing.T) {
	cmd := getPublishCmd()
	require.NotNil(t, cmd, "Publish command should exist")
	assert.Equal(t, "publish", cmd.Use,
		"Command name should be publish")
}

// TestGetPublishCmd_LongDescription verifies long
// description.
func TestGetPublishCmd_LongDescription(t *testing.T) {
	cmd := getPublishCmd()

	assert.NotEmpty(t, cmd.Long,
		"Long description should not be empty")
	assert.Contains(t, cmd.Long, "PostgreSQL",
		"Long description should mention PostgreSQL")
	assert.Contains(t, cmd.Long, "GORM AutoMigrate",
		"Long description should mention GORM")
	assert.Contains(t, cmd.Long, "route_daily_totals",
		"Long description should mention the view")
}

// TestGetPublishCmd_HasRunE verifies run function is set.
func TestGetPublishCmd_HasRunE(t *testing.T) {
	cmd := getPublishCmd()

	assert.NotNil(t, cmd.RunE,
		"RunE should be set")
}

// TestGetPublishCmd_Flags verifies the command flags.
func TestGetPublishCmd_Flags(t *testing.T) {
	cmd := getPublishCmd()

	dropFlag := cmd.Flags().Lookup("drop")
	require.NotNil(t, dropFlag, "--drop flag should exist")
	assert.Equal(t, "d", dropFlag.Shorthand)
	assert.Equal(t, "false", dropFlag.DefValue)

	forceFlag := cmd.Flags().Lookup("force")
	require.NotNil(t, forceFlag, "--force flag should exist")
	assert.Equal(t, "f", forceFlag.Shorthand)

	sourceFlag := cmd.Flags().Lookup("source")
	require.NotNil(t, sourceFlag, "--source flag should exist")
}
