// Package config loads and persists the application settings file.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	yaml "gopkg.in/yaml.v2"
)

// SaveDestination selects where finished test scripts are delivered.
type SaveDestination string

const (
	// SaveLocal saves only to the local output directory.
	SaveLocal SaveDestination = "local"
	// SaveDevOps pushes only to the Azure DevOps repository.
	SaveDevOps SaveDestination = "devops"
	// SaveLocalAndDevOps delivers to both destinations.
	SaveLocalAndDevOps SaveDestination = "local_and_devops"
)

// Settings is the root of the YAML settings file. It is loaded once and
// passed explicitly into constructors; there is no ambient global state.
type Settings struct {
	Logger          Logger               `yaml:"logger"`
	KeyVault        KeyVaultSettings     `yaml:"keyvault"`
	DevOps          DevOpsSettings       `yaml:"devops"`
	Recording       RecordingSettings    `yaml:"recording"`
	LocalStorage    LocalStorageSettings `yaml:"local_storage"`
	SaveDestination SaveDestination      `yaml:"save_destination"`
}

// Logger configures structured logging.
type Logger struct {
	Level string `yaml:"level"`
}

// KeyVaultSettings configures the Azure Key Vault collaborator.
type KeyVaultSettings struct {
	VaultURL     string `yaml:"vault_url"`
	TenantID     string `yaml:"tenant_id"`
	ClientID     string `yaml:"client_id"`
	ClientSecret string `yaml:"client_secret"`

	// Secret names in the vault.
	DevOpsPATSecret string `yaml:"devops_pat_secret"`
}

// DevOpsSettings configures the Azure DevOps Git repository.
type DevOpsSettings struct {
	Enabled      bool   `yaml:"enabled"`
	Organization string `yaml:"organization"`
	Project      string `yaml:"project"`
	Repository   string `yaml:"repository"`
	Branch       string `yaml:"branch"`
	TargetFolder string `yaml:"target_folder"`

	UseKeyVaultPAT bool   `yaml:"use_keyvault_pat"`
	PAT            string `yaml:"pat"`
}

// RecordingSettings configures the external recorder and the generated test.
type RecordingSettings struct {
	Browser        string `yaml:"browser"`
	ViewportWidth  int    `yaml:"viewport_width"`
	ViewportHeight int    `yaml:"viewport_height"`

	AddRetry            bool `yaml:"add_retry"`
	RetryCount          int  `yaml:"retry_count"`
	TestTimeoutMS       int  `yaml:"test_timeout_ms"`
	ScreenshotOnFailure bool `yaml:"screenshot_on_failure"`
}

// LocalStorageSettings configures the local filesystem writer.
type LocalStorageSettings struct {
	OutputDirectory string `yaml:"output_directory"`
}

// Default returns the settings applied when no file or value is present.
func Default() Settings {
	return Settings{
		Logger: Logger{Level: "INFO"},
		KeyVault: KeyVaultSettings{
			DevOpsPATSecret: "devops-pat",
		},
		DevOps: DevOpsSettings{
			Branch:         "main",
			TargetFolder:   "/tests/recorded",
			UseKeyVaultPAT: true,
		},
		Recording: RecordingSettings{
			Browser:             "chromium",
			ViewportWidth:       1920,
			ViewportHeight:      1080,
			AddRetry:            true,
			RetryCount:          2,
			TestTimeoutMS:       15000,
			ScreenshotOnFailure: true,
		},
		LocalStorage:    LocalStorageSettings{OutputDirectory: "recorded-tests"},
		SaveDestination: SaveLocal,
	}
}

// Load reads the settings file at path, layered over Default. A missing file
// is not an error; defaults are returned.
func Load(path string) (Settings, error) {
	settings := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return settings, nil
		}

		return settings, fmt.Errorf("failed to read settings %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &settings); err != nil {
		return settings, fmt.Errorf("failed to parse settings %s: %w", path, err)
	}

	return settings, nil
}

// Write persists the settings to path, creating parent directories.
func Write(path string, settings Settings) error {
	data, err := yaml.Marshal(settings)
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create settings directory: %w", err)
		}
	}

	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write settings %s: %w", path, err)
	}

	return nil
}
