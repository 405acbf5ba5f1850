package omni

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// branchListServer serves two pages of model records, the match on page two.
func branchListServer(t *testing.T) (*httptest.Server, *[]string) {
	t.Helper()
	cursors := &[]string{}

	handler := func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/v1/models", r.URL.Path)
		cursor := r.URL.Query().Get("cursor")
		*cursors = append(*cursors, cursor)

		var page modelsPage
		switch cursor {
		case "":
			page.Records = []modelRecord{
				{ID: "base", Name: "main", ModelKind: "MODEL", BaseModelID: ""},
				{ID: "other-branch", Name: "feature-x", ModelKind: "BRANCH", BaseModelID: "other-model"},
			}
			page.PageInfo.NextCursor = "page-2"
		case "page-2":
			page.Records = []modelRecord{
				{ID: "branch-42", Name: "feature-x", ModelKind: "BRANCH", BaseModelID: "model-1"},
			}
		default:
			t.Errorf("unexpected cursor %q", cursor)
		}

		w.Header().Set("Content-Type", "application/json")
		require.NoError(t, json.NewEncoder(w).Encode(page))
	}

	return httptest.NewServer(http.HandlerFunc(handler)), cursors
}

// TestResolveBranch_Paginates tests cursor pagination until the match
func TestResolveBranch_Paginates(t *testing.T) {
	server, cursors := branchListServer(t)
	defer server.Close()

	cfg := testConfig(server.URL)
	cfg.BranchName = "feature-x"
	client := NewClient(cfg)

	id, err := client.ResolveBranch(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "branch-42", id)
	assert.Equal(t, []string{"", "page-2"}, *cursors)
}

// TestResolveBranch_ExplicitID tests that a configured id skips the lookup
func TestResolveBranch_ExplicitID(t *testing.T) {
	cfg := testConfig("http://unreachable.invalid")
	cfg.BranchID = "branch-7"
	cfg.BranchName = "ignored"
	client := NewClient(cfg)

	id, err := client.ResolveBranch(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "branch-7", id)
}

// TestResolveBranch_NoBranchConfigured tests the default-branch path
func TestResolveBranch_NoBranchConfigured(t *testing.T) {
	client := NewClient(testConfig("http://unreachable.invalid"))

	id, err := client.ResolveBranch(context.Background())
	require.NoError(t, err)
	assert.Empty(t, id)
}

// TestResolveBranch_NotFound tests that an unmatched name is not an error
func TestResolveBranch_NotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"records": [], "pageInfo": {}}`))
	}))
	defer server.Close()

	cfg := testConfig(server.URL)
	cfg.BranchName = "missing"
	client := NewClient(cfg)

	id, err := client.ResolveBranch(context.Background())
	require.NoError(t, err)
	assert.Empty(t, id)
}

// TestResolveBranch_LookupFailure tests that API failures propagate
func TestResolveBranch_LookupFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	cfg := testConfig(server.URL)
	cfg.BranchName = "feature-x"
	client := NewClient(cfg)

	_, err := client.ResolveBranch(context.Background())
	require.Error(t, err)

	var apiErr *APIError
	assert.ErrorAs(t, err, &apiErr)
}
