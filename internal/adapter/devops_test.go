package adapter

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/hashicorp/go-hclog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/d365fo-tools/recweaver/internal/config"
)

func devOpsTestSettings() config.DevOpsSettings {
	return config.DevOpsSettings{
		Enabled:      true,
		Organization: "contoso",
		Project:      "d365-tests",
		Repository:   "recorded-tests",
		Branch:       "main",
		TargetFolder: "/tests/recorded",
	}
}

func TestDevOpsClient_Branches(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/contoso/d365-tests/_apis/git/repositories/recorded-tests/refs", r.URL.Path)
		assert.Equal(t, "heads/", r.URL.Query().Get("filter"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"value": [
			{"name": "refs/heads/main", "objectId": "aaa"},
			{"name": "refs/heads/feature/login-tests", "objectId": "bbb"}
		]}`))
	}))
	defer server.Close()

	client := newDevOpsClient(server.URL, devOpsTestSettings(), "pat", hclog.NewNullLogger())

	branches, err := client.Branches(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{"main", "feature/login-tests"}, branches)
}

func TestDevOpsClient_PushFile_AddsNewFile(t *testing.T) {
	var pushBody map[string]interface{}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		switch {
		case r.URL.Path == "/contoso/d365-tests/_apis/git/repositories/recorded-tests/refs":
			_, _ = w.Write([]byte(`{"value": [{"name": "refs/heads/main", "objectId": "tip123"}]}`))
		case r.URL.Path == "/contoso/d365-tests/_apis/git/repositories/recorded-tests/items":
			w.WriteHeader(http.StatusNotFound)
		case r.URL.Path == "/contoso/d365-tests/_apis/git/repositories/recorded-tests/pushes":
			require.NoError(t, json.NewDecoder(r.Body).Decode(&pushBody))
			_, _ = w.Write([]byte(`{"commits": [{"commitId": "deadbeef"}]}`))
		default:
			t.Errorf("unexpected request: %s", r.URL.Path)
			w.WriteHeader(http.StatusInternalServerError)
		}
	}))
	defer server.Close()

	client := newDevOpsClient(server.URL, devOpsTestSettings(), "pat", hclog.NewNullLogger())

	commitID, err := client.PushFile(context.Background(), "test_create_customer_20260826_143000.py", "content", "Add recorded test")
	require.NoError(t, err)

	assert.Equal(t, "deadbeef", commitID)

	refUpdates := pushBody["refUpdates"].([]interface{})
	require.Len(t, refUpdates, 1)
	assert.Equal(t, "tip123", refUpdates[0].(map[string]interface{})["oldObjectId"])

	commits := pushBody["commits"].([]interface{})
	require.Len(t, commits, 1)

	changes := commits[0].(map[string]interface{})["changes"].([]interface{})
	require.Len(t, changes, 1)

	change := changes[0].(map[string]interface{})
	assert.Equal(t, "add", change["changeType"])
	assert.Equal(t, "/tests/recorded/test_create_customer_20260826_143000.py",
		change["item"].(map[string]interface{})["path"])
}

func TestDevOpsClient_PushFile_EditsExistingFile(t *testing.T) {
	var changeType string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		switch {
		case r.URL.Path == "/contoso/d365-tests/_apis/git/repositories/recorded-tests/refs":
			_, _ = w.Write([]byte(`{"value": [{"name": "refs/heads/main", "objectId": "tip123"}]}`))
		case r.URL.Path == "/contoso/d365-tests/_apis/git/repositories/recorded-tests/items":
			_, _ = w.Write([]byte(`{}`))
		case r.URL.Path == "/contoso/d365-tests/_apis/git/repositories/recorded-tests/pushes":
			var body struct {
				Commits []struct {
					Changes []struct {
						ChangeType string `json:"changeType"`
					} `json:"changes"`
				} `json:"commits"`
			}
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			changeType = body.Commits[0].Changes[0].ChangeType
			_, _ = w.Write([]byte(`{"commits": [{"commitId": "cafebabe"}]}`))
		}
	}))
	defer server.Close()

	client := newDevOpsClient(server.URL, devOpsTestSettings(), "pat", hclog.NewNullLogger())

	commitID, err := client.PushFile(context.Background(), "test_existing.py", "content", "Update recorded test")
	require.NoError(t, err)

	assert.Equal(t, "cafebabe", commitID)
	assert.Equal(t, "edit", changeType)
}

func TestDevOpsClient_PushFile_UnknownBranch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"value": []}`))
	}))
	defer server.Close()

	client := newDevOpsClient(server.URL, devOpsTestSettings(), "pat", hclog.NewNullLogger())

	_, err := client.PushFile(context.Background(), "test.py", "content", "msg")
	require.Error(t, err)

	assert.Contains(t, err.Error(), "branch main not found")
}
