package omni

import (
	"errors"
	"strings"
	"time"
)

const (
	// DefaultAuthHeader carries the API key on every request.
	DefaultAuthHeader = "Authorization"

	// DefaultAuthScheme prefixes the API key in the auth header.
	DefaultAuthScheme = "Bearer"

	// DefaultTimeout bounds each HTTP request.
	DefaultTimeout = 60 * time.Second
)

// Config holds the connection settings for one Omni deployment.
type Config struct {
	// BaseURL is the deployment root, e.g. https://acme.omniapp.co.
	// A trailing slash is tolerated.
	BaseURL string

	// ModelID identifies the model whose content is validated.
	ModelID string

	// APIKey authenticates every request.
	APIKey string

	// UserID, when set, is passed as the userId query parameter so
	// validation runs with that user's permissions.
	UserID string

	// BranchID pins validation to a branch. Takes precedence over
	// BranchName.
	BranchID string

	// BranchName is resolved to a branch id via the model listing
	// endpoint when BranchID is empty.
	BranchName string

	// AuthHeader is the header carrying the credential.
	// Defaults to DefaultAuthHeader.
	AuthHeader string

	// AuthScheme prefixes the credential inside AuthHeader. An empty
	// scheme sends the bare key. Defaults to DefaultAuthScheme when
	// unset; use "-" to force no scheme.
	AuthScheme string

	// Timeout bounds each HTTP request. Defaults to DefaultTimeout.
	Timeout time.Duration
}

// withDefaults returns a copy of c with unset fields filled in.
func (c Config) withDefaults() Config {
	if c.AuthHeader == "" {
		c.AuthHeader = DefaultAuthHeader
	}
	if c.AuthScheme == "" {
		c.AuthScheme = DefaultAuthScheme
	}
	if c.AuthScheme == "-" {
		c.AuthScheme = ""
	}
	if c.Timeout <= 0 {
		c.Timeout = DefaultTimeout
	}
	c.BaseURL = strings.TrimRight(c.BaseURL, "/")
	return c
}

// Validate reports every missing required field in one error.
func (c Config) Validate() error {
	var errs []error
	if c.BaseURL == "" {
		errs = append(errs, ErrMissingBaseURL)
	}
	if c.ModelID == "" {
		errs = append(errs, ErrMissingModelID)
	}
	if c.APIKey == "" {
		errs = append(errs, ErrMissingAPIKey)
	}
	return errors.Join(errs...)
}

// authValue builds the header value for the configured scheme.
func (c Config) authValue() string {
	if c.AuthScheme == "" {
		return c.APIKey
	}
	return strings.TrimSpace(c.AuthScheme + " " + c.APIKey)
}

// usesBearerAuth reports whether the config matches the standard
// Authorization: Bearer layout that the oauth2 transport produces.
func (c Config) usesBearerAuth() bool {
	return c.AuthHeader == DefaultAuthHeader && c.AuthScheme == DefaultAuthScheme
}
