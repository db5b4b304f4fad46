package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	settings, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)

	assert.Equal(t, Default(), settings)
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "recweaver.yaml")

	content := `logger:
  level: DEBUG
devops:
  enabled: true
  organization: contoso
  project: d365-tests
  repository: recorded-tests
save_destination: local_and_devops
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	settings, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "DEBUG", settings.Logger.Level)
	assert.True(t, settings.DevOps.Enabled)
	assert.Equal(t, "contoso", settings.DevOps.Organization)
	assert.Equal(t, SaveLocalAndDevOps, settings.SaveDestination)

	// Values absent from the file keep their defaults.
	assert.Equal(t, "main", settings.DevOps.Branch)
	assert.Equal(t, "chromium", settings.Recording.Browser)
}

func TestLoad_MalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "recweaver.yaml")
	require.NoError(t, os.WriteFile(path, []byte("logger: [not a map"), 0o600))

	_, err := Load(path)
	require.Error(t, err)

	assert.Contains(t, err.Error(), "failed to parse settings")
}

func TestWriteLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "recweaver.yaml")

	settings := Default()
	settings.DevOps.Enabled = true
	settings.DevOps.Organization = "contoso"
	settings.Recording.TestTimeoutMS = 30000

	require.NoError(t, Write(path, settings))

	loaded, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, settings, loaded)
}
