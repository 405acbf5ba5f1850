package services

import (
	"strings"

	"github.com/custodia-labs/omnivet-cli/internal/core/domain"
	"github.com/custodia-labs/omnivet-cli/internal/logger"
)

// flatIssueKeys are top-level keys whose list value is taken verbatim as
// the issue list, in priority order.
var flatIssueKeys = []string{"issues", "validation_issues", "errors"}

// containerKeys are top-level keys tried as a last resort, in priority
// order, when no dedicated issue list is present.
var containerKeys = []string{"content", "documents", "items", "results"}

// locateRule is one step of the extraction cascade. extract reports
// whether the rule claimed the payload; a claiming rule's result is
// final, even when empty.
type locateRule struct {
	name    string
	extract func(payload any, explicitPath string) ([]domain.RawIssue, bool)
}

// locateRules is evaluated in order; the first claiming rule wins.
// Keeping the cascade as a flat list keeps the priority order explicit
// and each rule independently testable.
var locateRules = []locateRule{
	{name: "explicit-path", extract: byExplicitPath},
	{name: "payload-is-list", extract: payloadIsList},
	{name: "non-object", extract: nonObject},
	{name: "flat-issue-keys", extract: byFlatIssueKeys},
	{name: "document-tree", extract: byDocumentTree},
	{name: "container-keys", extract: byContainerKeys},
}

// Locate returns the best-effort issue list inside payload.
//
// explicitPath, when non-empty, is a dotted field path descending nested
// objects only; a path that resolves to a list wins outright, even when
// that list is empty. A path that cannot be resolved is skipped, not an
// error. Locate never fails: a payload with nothing extractable yields
// an empty list.
func Locate(payload any, explicitPath string) []domain.RawIssue {
	for _, rule := range locateRules {
		if issues, ok := rule.extract(payload, explicitPath); ok {
			logger.Debug("locator: rule %q matched with %d issues", rule.name, len(issues))
			return issues
		}
	}
	return []domain.RawIssue{}
}

// byExplicitPath descends payload along the dotted path, objects only.
func byExplicitPath(payload any, explicitPath string) ([]domain.RawIssue, bool) {
	if explicitPath == "" {
		return nil, false
	}
	current := payload
	for _, part := range strings.Split(explicitPath, ".") {
		obj, ok := current.(map[string]any)
		if !ok {
			return nil, false
		}
		current, ok = obj[part]
		if !ok {
			return nil, false
		}
	}
	list, ok := current.([]any)
	if !ok {
		return nil, false
	}
	return list, true
}

func payloadIsList(payload any, _ string) ([]domain.RawIssue, bool) {
	list, ok := payload.([]any)
	return list, ok
}

// nonObject terminates the cascade for scalar payloads: nothing below
// this rule can extract from them.
func nonObject(payload any, _ string) ([]domain.RawIssue, bool) {
	if _, ok := payload.(map[string]any); ok {
		return nil, false
	}
	return []domain.RawIssue{}, true
}

func byFlatIssueKeys(payload any, _ string) ([]domain.RawIssue, bool) {
	return firstListValue(payload, flatIssueKeys)
}

func byDocumentTree(payload any, _ string) ([]domain.RawIssue, bool) {
	obj, ok := payload.(map[string]any)
	if !ok {
		return nil, false
	}
	if _, ok := obj["content"]; !ok {
		return nil, false
	}
	issues := collectContentIssues(obj)
	// Only a non-empty harvest claims the payload; otherwise the plain
	// container-key fallback still gets its chance.
	return issues, len(issues) > 0
}

func byContainerKeys(payload any, _ string) ([]domain.RawIssue, bool) {
	return firstListValue(payload, containerKeys)
}

// firstListValue returns the first of keys whose value in payload is a list.
func firstListValue(payload any, keys []string) ([]domain.RawIssue, bool) {
	obj, ok := payload.(map[string]any)
	if !ok {
		return nil, false
	}
	for _, key := range keys {
		if list, ok := obj[key].([]any); ok {
			return list, true
		}
	}
	return nil, false
}

// issueTypeDashboardFilter and issueTypeQuery tag extracted document-tree
// issues with their source.
const (
	issueTypeDashboardFilter = "dashboard_filter"
	issueTypeQuery           = "query"
)

// collectContentIssues walks the document tree under the "content" key.
//
// Ordering is preserved: documents in payload order, all dashboard-filter
// issues of a document before its query issues, queries in payload order,
// and issues within a query in payload order.
func collectContentIssues(payload map[string]any) []domain.RawIssue {
	issues := []domain.RawIssue{}
	content, ok := payload["content"].([]any)
	if !ok {
		return issues
	}

	for _, entry := range content {
		document, ok := entry.(map[string]any)
		if !ok {
			continue
		}
		context := documentContext(document)

		if filterIssues, ok := document["dashboard_filter_issues"].([]any); ok {
			for _, item := range filterIssues {
				issues = append(issues, harvestIssue(item, issueTypeDashboardFilter, context, nil))
			}
		}

		queries, ok := document["queries_and_issues"].([]any)
		if !ok {
			continue
		}
		for _, q := range queries {
			query, ok := q.(map[string]any)
			if !ok {
				continue
			}
			queryIssues, ok := query["issues"].([]any)
			if !ok {
				continue
			}
			queryContext := map[string]any{
				"query_name":            query["query_name"],
				"query_presentation_id": query["query_presentation_id"],
			}
			for _, item := range queryIssues {
				issues = append(issues, harvestIssue(item, issueTypeQuery, context, queryContext))
			}
		}
	}
	return issues
}

// documentContext captures the per-document fields attached to every
// issue harvested from that document.
func documentContext(document map[string]any) map[string]any {
	var folderName, folderPath any
	if folder, ok := document["folder"].(map[string]any); ok {
		folderName = folder["name"]
		folderPath = folder["path"]
	}
	return map[string]any{
		"document_id":   document["document_id"],
		"document_name": document["name"],
		"document_type": document["type"],
		"folder_name":   folderName,
		"folder_path":   folderPath,
	}
}

// harvestIssue builds the extracted issue record for one raw item.
// A string item is its own message; an object item contributes its
// "message" field; anything else is carried as the message verbatim.
func harvestIssue(item any, issueType string, context, extra map[string]any) map[string]any {
	var message any
	if obj, ok := item.(map[string]any); ok {
		message = obj["message"]
	} else {
		message = item
	}

	record := map[string]any{
		"message":    message,
		"raw_issue":  item,
		"issue_type": issueType,
	}
	for k, v := range context {
		record[k] = v
	}
	for k, v := range extra {
		record[k] = v
	}
	return record
}
