package adapter

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/hashicorp/go-hclog"

	"github.com/d365fo-tools/recweaver/internal/config"
)

const (
	vaultAuthorityURL = "https://login.microsoftonline.com"
	vaultScope        = "https://vault.azure.net/.default"
	vaultAPIVersion   = "7.4"
)

// KeyVaultClient fetches secrets from Azure Key Vault. The pipeline core
// never sees credentials; this collaborator only resolves the DevOps PAT at
// the output boundary.
type KeyVaultClient interface {
	GetSecret(ctx context.Context, name string) (string, error)
}

type keyVaultClient struct {
	http         *resty.Client
	authorityURL string
	settings     config.KeyVaultSettings
	log          hclog.Logger

	mu    sync.Mutex
	token string
	cache map[string]string
}

// NewKeyVaultClient constructs a KeyVaultClient using client-credentials
// authentication against the configured tenant.
func NewKeyVaultClient(settings config.KeyVaultSettings, log hclog.Logger) KeyVaultClient {
	return newKeyVaultClient(vaultAuthorityURL, settings, log)
}

func newKeyVaultClient(authorityURL string, settings config.KeyVaultSettings, log hclog.Logger) KeyVaultClient {
	client := resty.New().
		SetTimeout(30 * time.Second).
		SetRetryCount(2).
		SetLogger(newHclogAdapter(log))

	return &keyVaultClient{
		http:         client,
		authorityURL: authorityURL,
		settings:     settings,
		log:          log,
		cache:        make(map[string]string),
	}
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
}

type secretResponse struct {
	Value string `json:"value"`
}

func (c *keyVaultClient) GetSecret(ctx context.Context, name string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if value, ok := c.cache[name]; ok {
		return value, nil
	}

	if c.token == "" {
		token, err := c.fetchToken(ctx)
		if err != nil {
			return "", err
		}

		c.token = token
	}

	var secret secretResponse

	resp, err := c.http.R().
		SetContext(ctx).
		SetAuthToken(c.token).
		SetQueryParam("api-version", vaultAPIVersion).
		SetResult(&secret).
		Get(strings.TrimSuffix(c.settings.VaultURL, "/") + "/secrets/" + name)
	if err != nil {
		return "", fmt.Errorf("failed to fetch secret %s: %w", name, err)
	}

	if resp.IsError() {
		return "", fmt.Errorf("failed to fetch secret %s: %s", name, resp.Status())
	}

	c.cache[name] = secret.Value

	return secret.Value, nil
}

func (c *keyVaultClient) fetchToken(ctx context.Context) (string, error) {
	var token tokenResponse

	resp, err := c.http.R().
		SetContext(ctx).
		SetFormData(map[string]string{
			"grant_type":    "client_credentials",
			"client_id":     c.settings.ClientID,
			"client_secret": c.settings.ClientSecret,
			"scope":         vaultScope,
		}).
		SetResult(&token).
		Post(c.authorityURL + "/" + c.settings.TenantID + "/oauth2/v2.0/token")
	if err != nil {
		return "", fmt.Errorf("failed to authenticate with key vault: %w", err)
	}

	if resp.IsError() {
		return "", fmt.Errorf("failed to authenticate with key vault: %s", resp.Status())
	}

	return token.AccessToken, nil
}
