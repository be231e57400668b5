package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestGetFetchCmd_Exists verifies getFetchCmd returns
// a valid command.
func TestGetFetchCmd_Exists(t *testing.T) {
	cmd := getFetchCmd()
	require.NotNil(t, cmd, "Fetch command should exist")
	assert.Equal(t, "fetch", cmd.Use,
		"Command name should be fetch")
}

// TestGetFetchCmd_ShortDescription verifies short
// description.
func TestGetFetchCmd_ShortDescription(t *testing.T) {
	cmd := getFetchCmd()

	assert.NotEmpty(t, cmd.Short,
		"Short description should not be empty")
	assert.Contains(t, cmd.Short, "Download",
		"Short description should mention download")
}

// TestGetFetchCmd_HasRunE verifies run function is set.
func TestGetFetchCmd_HasRunE(t *testing.T) {
	cmd := getFetchCmd()

	assert.NotNil(t, cmd.RunE,
		"RunE should be set")
}

// TestGetFetchCmd_Flags verifies the command flags.
func TestGetFetchCmd_Flags(t *testing.T) {
	cmd := getFetchCmd()

	forceFlag := cmd.Flags().Lookup("force")
	require.NotNil(t, forceFlag, "--force flag should exist")
	assert.Equal(t, "f", forceFlag.Shorthand)
	assert.Equal(t, "false", forceFlag.DefValue)

	refreshFlag := cmd.Flags().Lookup("refresh")
	require.NotNil(t, refreshFlag, "--refresh flag should exist")
	assert.Equal(t, "r", refreshFlag.Shorthand)

	sourceFlag := cmd.Flags().Lookup("source")
	require.NotNil(t, sourceFlag, "--source flag should exist")
	assert.Equal(t, "s", sourceFlag.Shorthand)
}
