package omni

import (
	"context"
	"net/url"

	"github.com/custodia-labs/omnivet-cli/internal/logger"
)

// branchKind marks branch records in the model listing.
const branchKind = "BRANCH"

// modelRecord is one entry of the model listing endpoint.
type modelRecord struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	ModelKind   string `json:"modelKind"`
	BaseModelID string `json:"baseModelId"`
}

// modelsPage is one page of the cursor-paginated model listing.
type modelsPage struct {
	Records  []modelRecord `json:"records"`
	PageInfo struct {
		NextCursor string `json:"nextCursor"`
	} `json:"pageInfo"`
}

// ResolveBranch returns the branch id validation should run against.
//
// An explicitly configured branch id wins without any lookup. Otherwise
// a configured branch name is matched against the model listing, paging
// with the cursor from pageInfo.nextCursor until found or exhausted. A
// name that matches nothing resolves to empty, which callers treat as
// the default branch.
func (c *Client) ResolveBranch(ctx context.Context) (string, error) {
	if c.cfg.BranchID != "" {
		return c.cfg.BranchID, nil
	}
	if c.cfg.BranchName == "" {
		return "", nil
	}

	cursor := ""
	for {
		// Check context cancellation between pages.
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		default:
		}

		params := url.Values{}
		if cursor != "" {
			params.Set("cursor", cursor)
		}

		var page modelsPage
		if err := c.getJSON(ctx, "/api/v1/models", params, &page); err != nil {
			return "", err
		}

		for _, record := range page.Records {
			if record.ModelKind != branchKind {
				continue
			}
			if record.BaseModelID != c.cfg.ModelID {
				continue
			}
			if record.Name != c.cfg.BranchName {
				continue
			}
			logger.Info("Resolved branch %q to id %s", c.cfg.BranchName, record.ID)
			return record.ID, nil
		}

		cursor = page.PageInfo.NextCursor
		if cursor == "" {
			logger.Warn("No matching Omni branch found for %q, using default", c.cfg.BranchName)
			return "", nil
		}
	}
}
