package file

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writePayload(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "payload.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

// TestSource_FetchValidation tests reading a plain payload file
func TestSource_FetchValidation(t *testing.T) {
	source := NewSource(writePayload(t, `{"issues": ["a", "b"]}`))

	payload, err := source.FetchValidation(context.Background(), "")
	require.NoError(t, err)

	obj, ok := payload.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, []any{"a", "b"}, obj["issues"])
}

// TestSource_UnwrapsRawDump tests reading a raw-response dump back in
func TestSource_UnwrapsRawDump(t *testing.T) {
	source := NewSource(writePayload(t, `{"payload": {"issues": ["a"]}}`))

	payload, err := source.FetchValidation(context.Background(), "")
	require.NoError(t, err)

	obj, ok := payload.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, []any{"a"}, obj["issues"])
}

// TestSource_KeepsPayloadKeyWithSiblings tests that only a lone payload key unwraps
func TestSource_KeepsPayloadKeyWithSiblings(t *testing.T) {
	source := NewSource(writePayload(t, `{"payload": {}, "issues": ["a"]}`))

	payload, err := source.FetchValidation(context.Background(), "")
	require.NoError(t, err)

	obj, ok := payload.(map[string]any)
	require.True(t, ok)
	assert.Contains(t, obj, "issues")
}

// TestSource_MissingFile tests the error path
func TestSource_MissingFile(t *testing.T) {
	source := NewSource(filepath.Join(t.TempDir(), "nope.json"))

	_, err := source.FetchValidation(context.Background(), "")
	assert.Error(t, err)
}

// TestSource_ResolveBranch tests that local payloads use the default branch
func TestSource_ResolveBranch(t *testing.T) {
	source := NewSource("anything.json")

	id, err := source.ResolveBranch(context.Background())
	require.NoError(t, err)
	assert.Empty(t, id)
}
