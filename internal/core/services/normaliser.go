package services

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/custodia-labs/omnivet-cli/internal/core/domain"
)

// summaryFallbackKeys are tried, in priority order, when an object issue
// carries no usable message.
var summaryFallbackKeys = []string{"title", "name", "path", "field"}

// issueView is the shape-specific behaviour of one raw issue. Raw issues
// are duck typed on the wire; here they collapse into three variants
// with a shared identity and summary capability.
type issueView interface {
	// identityInput is the byte string the content hash is computed over.
	identityInput() string

	// summarise is the one-line display form.
	summarise() string
}

// viewOf classifies a raw issue into its variant.
func viewOf(raw domain.RawIssue) issueView {
	switch v := raw.(type) {
	case string:
		return stringIssue(v)
	case map[string]any:
		return objectIssue(v)
	default:
		return opaqueIssue{value: v}
	}
}

// Normalise derives the stable identity and display summary for one raw
// issue. It is total: any value, however malformed, normalises.
//
// The identity is the SHA-256 hex digest of the issue's canonical form:
// the string itself for string issues, otherwise the sorted-key compact
// JSON serialisation, falling back to the default string representation
// when the value cannot be serialised. Structurally equal issues hash
// identically regardless of key insertion order.
func Normalise(raw domain.RawIssue) domain.NormalizedIssue {
	view := viewOf(raw)
	digest := sha256.Sum256([]byte(view.identityInput()))
	return domain.NormalizedIssue{
		ID:      hex.EncodeToString(digest[:]),
		Summary: view.summarise(),
		Raw:     raw,
	}
}

// NormaliseAll normalises a located issue list, preserving order and
// duplicates. Two equal raw issues yield two entries with one ID.
func NormaliseAll(raws []domain.RawIssue) []domain.NormalizedIssue {
	normalized := make([]domain.NormalizedIssue, 0, len(raws))
	for _, raw := range raws {
		normalized = append(normalized, Normalise(raw))
	}
	return normalized
}

// stringIssue is a raw issue that is a plain string.
type stringIssue string

func (s stringIssue) identityInput() string { return string(s) }
func (s stringIssue) summarise() string     { return string(s) }

// objectIssue is a raw issue that is a JSON object.
type objectIssue map[string]any

func (o objectIssue) identityInput() string {
	return canonicalJSON(map[string]any(o))
}

// summarise prefers the message field, prefixed with the document and
// query names when present; then the first non-empty fallback key; then
// the canonical serialisation.
func (o objectIssue) summarise() string {
	if message, ok := o.message(); ok {
		prefix := o.summaryPrefix()
		if prefix == "" {
			return message
		}
		return prefix + ": " + message
	}

	for _, key := range summaryFallbackKeys {
		if value, ok := o[key].(string); ok && strings.TrimSpace(value) != "" {
			return value
		}
	}

	return canonicalJSON(map[string]any(o))
}

// message returns the coerced message field, reporting whether it is usable.
// Non-string messages are coerced to their string representation; nil and
// blank messages are unusable.
func (o objectIssue) message() (string, bool) {
	value, present := o["message"]
	if !present || value == nil {
		return "", false
	}
	message, ok := value.(string)
	if !ok {
		message = fmt.Sprintf("%v", value)
	}
	if strings.TrimSpace(message) == "" {
		return "", false
	}
	return message, true
}

// summaryPrefix joins the non-empty document and query names with " / ".
func (o objectIssue) summaryPrefix() string {
	parts := []string{}
	for _, key := range []string{"document_name", "query_name"} {
		if value, ok := o[key].(string); ok && strings.TrimSpace(value) != "" {
			parts = append(parts, strings.TrimSpace(value))
		}
	}
	return strings.Join(parts, " / ")
}

// opaqueIssue is any raw issue that is neither a string nor an object:
// numbers, booleans, lists, null.
type opaqueIssue struct {
	value any
}

func (o opaqueIssue) identityInput() string { return canonicalJSON(o.value) }

func (o opaqueIssue) summarise() string { return fmt.Sprintf("%v", o.value) }

// canonicalJSON serialises v compactly with lexicographically sorted
// object keys at every level, which encoding/json guarantees for maps.
// A value that cannot be serialised degrades to its default string
// representation rather than failing.
func canonicalJSON(v any) string {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprintf("%v", v)
	}
	return string(data)
}
