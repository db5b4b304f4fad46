package adapter

import (
	"context"
	"fmt"
	"net/http"
	"path"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/hashicorp/go-hclog"

	"github.com/d365fo-tools/recweaver/internal/config"
)

const (
	devOpsBaseURL     = "https://dev.azure.com"
	devOpsAPIVersion  = "7.0"
	devOpsHTTPTimeout = 30 * time.Second
)

// DevOpsClient talks to the Azure DevOps Git REST API: branch listing and
// pushing a finished test file as a single commit.
type DevOpsClient interface {
	Branches(ctx context.Context) ([]string, error)
	PushFile(ctx context.Context, fileName, content, message string) (commitID string, err error)
}

type devOpsClient struct {
	http     *resty.Client
	settings config.DevOpsSettings
	log      hclog.Logger
}

// NewDevOpsClient constructs a DevOpsClient authenticated with the provided
// personal access token.
func NewDevOpsClient(settings config.DevOpsSettings, pat string, log hclog.Logger) DevOpsClient {
	return newDevOpsClient(devOpsBaseURL, settings, pat, log)
}

func newDevOpsClient(baseURL string, settings config.DevOpsSettings, pat string, log hclog.Logger) DevOpsClient {
	client := resty.New().
		SetBaseURL(fmt.Sprintf("%s/%s/%s/_apis/git/repositories/%s",
			baseURL, settings.Organization, settings.Project, settings.Repository)).
		SetBasicAuth("", pat).
		SetTimeout(devOpsHTTPTimeout).
		SetRetryCount(2).
		SetRetryWaitTime(1 * time.Second).
		SetLogger(newHclogAdapter(log))

	return &devOpsClient{
		http:     client,
		settings: settings,
		log:      log,
	}
}

type refsResponse struct {
	Value []struct {
		Name     string `json:"name"`
		ObjectID string `json:"objectId"`
	} `json:"value"`
}

type pushResponse struct {
	Commits []struct {
		CommitID string `json:"commitId"`
	} `json:"commits"`
}

func (c *devOpsClient) Branches(ctx context.Context) ([]string, error) {
	var refs refsResponse

	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"filter":      "heads/",
			"api-version": devOpsAPIVersion,
		}).
		SetResult(&refs).
		Get("/refs")
	if err != nil {
		return nil, fmt.Errorf("failed to list branches: %w", err)
	}

	if resp.IsError() {
		return nil, fmt.Errorf("failed to list branches: %s", resp.Status())
	}

	branches := make([]string, 0, len(refs.Value))
	for _, ref := range refs.Value {
		branches = append(branches, strings.TrimPrefix(ref.Name, "refs/heads/"))
	}

	return branches, nil
}

// branchObjectID resolves the tip commit of the configured branch, required
// as oldObjectId for a push.
func (c *devOpsClient) branchObjectID(ctx context.Context) (string, error) {
	var refs refsResponse

	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"filter":      "heads/" + c.settings.Branch,
			"api-version": devOpsAPIVersion,
		}).
		SetResult(&refs).
		Get("/refs")
	if err != nil {
		return "", fmt.Errorf("failed to resolve branch %s: %w", c.settings.Branch, err)
	}

	if resp.IsError() {
		return "", fmt.Errorf("failed to resolve branch %s: %s", c.settings.Branch, resp.Status())
	}

	want := "refs/heads/" + c.settings.Branch
	for _, ref := range refs.Value {
		if ref.Name == want {
			return ref.ObjectID, nil
		}
	}

	return "", fmt.Errorf("branch %s not found", c.settings.Branch)
}

// fileExists checks whether the target path already exists on the branch,
// which decides between an add and an edit change type.
func (c *devOpsClient) fileExists(ctx context.Context, filePath string) (bool, error) {
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"path":                      filePath,
			"versionDescriptor.version": c.settings.Branch,
			"api-version":               devOpsAPIVersion,
		}).
		Get("/items")
	if err != nil {
		return false, fmt.Errorf("failed to check %s: %w", filePath, err)
	}

	if resp.StatusCode() == http.StatusNotFound {
		return false, nil
	}

	if resp.IsError() {
		return false, fmt.Errorf("failed to check %s: %s", filePath, resp.Status())
	}

	return true, nil
}

func (c *devOpsClient) PushFile(ctx context.Context, fileName, content, message string) (string, error) {
	filePath := path.Join(c.settings.TargetFolder, fileName)
	if !strings.HasPrefix(filePath, "/") {
		filePath = "/" + filePath
	}

	oldObjectID, err := c.branchObjectID(ctx)
	if err != nil {
		return "", err
	}

	exists, err := c.fileExists(ctx, filePath)
	if err != nil {
		return "", err
	}

	changeType := "add"
	if exists {
		changeType = "edit"
	}

	body := map[string]interface{}{
		"refUpdates": []map[string]string{
			{"name": "refs/heads/" + c.settings.Branch, "oldObjectId": oldObjectID},
		},
		"commits": []map[string]interface{}{
			{
				"comment": message,
				"changes": []map[string]interface{}{
					{
						"changeType": changeType,
						"item":       map[string]string{"path": filePath},
						"newContent": map[string]string{
							"content":     content,
							"contentType": "rawtext",
						},
					},
				},
			},
		},
	}

	var push pushResponse

	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParam("api-version", devOpsAPIVersion).
		SetBody(body).
		SetResult(&push).
		Post("/pushes")
	if err != nil {
		return "", fmt.Errorf("failed to push %s: %w", filePath, err)
	}

	if resp.IsError() {
		return "", fmt.Errorf("failed to push %s: %s", filePath, resp.Status())
	}

	if len(push.Commits) == 0 {
		return "", fmt.Errorf("push of %s returned no commit", filePath)
	}

	c.log.Info("pushed test file", "path", filePath, "branch", c.settings.Branch, "commit", push.Commits[0].CommitID)

	return push.Commits[0].CommitID, nil
}

// hclogAdapter forwards resty log messages onto hclog.
type hclogAdapter struct {
	log hclog.Logger
}

func newHclogAdapter(log hclog.Logger) resty.Logger {
	return &hclogAdapter{log: log}
}

func (a *hclogAdapter) Errorf(format string, v ...interface{}) {
	a.log.Error(fmt.Sprintf(format, v...))
}

func (a *hclogAdapter) Warnf(format string, v ...interface{}) {
	a.log.Warn(fmt.Sprintf(format, v...))
}

func (a *hclogAdapter) Debugf(format string, v ...interface{}) {
	a.log.Debug(fmt.Sprintf(format, v...))
}
