package services

import "github.com/custodia-labs/omnivet-cli/internal/core/domain"

// Partition splits current and previous issues into new, existing, and
// resolved by ID.
//
// New and Existing together cover current exactly, in current's order.
// Resolved contains the previous issues whose ID is no longer present,
// in previous's order. Comparison is by ID only: equal IDs mean the same
// issue, whatever the raw payloads look like.
func Partition(current, previous []domain.NormalizedIssue) domain.DiffResult {
	previousIDs := idSet(previous)
	currentIDs := idSet(current)

	result := domain.DiffResult{
		New:      []domain.NormalizedIssue{},
		Existing: []domain.NormalizedIssue{},
		Resolved: []domain.NormalizedIssue{},
	}

	for _, issue := range current {
		if _, ok := previousIDs[issue.ID]; ok {
			result.Existing = append(result.Existing, issue)
		} else {
			result.New = append(result.New, issue)
		}
	}
	for _, issue := range previous {
		if _, ok := currentIDs[issue.ID]; !ok {
			result.Resolved = append(result.Resolved, issue)
		}
	}
	return result
}

func idSet(issues []domain.NormalizedIssue) map[string]struct{} {
	ids := make(map[string]struct{}, len(issues))
	for _, issue := range issues {
		ids[issue.ID] = struct{}{}
	}
	return ids
}
