package driven

import "context"

// ValidatorAPI supplies the content-validator payload for one model.
// The production implementation is the Omni HTTP connector; a file-backed
// implementation serves local payload dumps.
type ValidatorAPI interface {
	// ResolveBranch returns the branch id validation should run against.
	// An empty id means the model's default branch. A configured branch
	// name that matches nothing resolves to empty, not an error.
	ResolveBranch(ctx context.Context) (string, error)

	// FetchValidation retrieves the raw validation payload. The returned
	// value is the decoded JSON document, of whatever shape the endpoint
	// produced.
	FetchValidation(ctx context.Context, branchID string) (any, error)
}
