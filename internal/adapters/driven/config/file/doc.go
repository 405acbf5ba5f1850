// Package file loads optional omnivet settings from a TOML file.
//
// Settings supply defaults only: command-line flags and environment
// variables always take precedence. The file lives at
// ~/.omnivet/config.toml unless another directory is given, and its
// absence is not an error.
package file
