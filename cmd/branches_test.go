package cmd

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/d365fo-tools/recweaver/internal/config"
)

func TestBranchesCmd_RequiresDevOps(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "recweaver.yaml")

	settings := config.Default()
	settings.DevOps.Enabled = false

	require.NoError(t, config.Write(configPath, settings))

	cmd := newRootCmd()
	cmd.AddCommand(newBranchesCmd())
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})

	cmd.SetArgs([]string{"branches", "-c", configPath})
	err := cmd.Execute()
	require.Error(t, err)

	assert.Contains(t, err.Error(), "devops integration is not enabled")
}
