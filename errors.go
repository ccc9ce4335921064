package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"

	ghAPI "github.com/cli/go-gh/v2/pkg/api"
)

// Error kinds. Use errors.Is to test which kind a failure belongs to.
var (
	// ErrConfiguration indicates missing or invalid input. Fatal.
	ErrConfiguration = errors.New("invalid configuration")

	// ErrAuthentication indicates the access token was rejected. Fatal.
	ErrAuthentication = errors.New("authentication failed")

	// ErrNotFound indicates an unknown user or an endpoint the instance does not serve.
	ErrNotFound = errors.New("not found")

	// ErrTransient indicates a timeout or connection failure.
	ErrTransient = errors.New("network error")

	// ErrSourcesExhausted indicates every contribution source failed.
	ErrSourcesExhausted = errors.New("all contribution sources failed")

	// ErrUnknownUser is returned by the user lookup when the username does not exist.
	ErrUnknownUser = fmt.Errorf("unknown user: %w", ErrNotFound)

	// ErrBadCredential is returned by the user lookup when the token is rejected.
	ErrBadCredential = fmt.Errorf("bad credential: %w", ErrAuthentication)
)

// Wrap wraps an error with a message for better context.
func Wrap(err error, message string) error {
	return fmt.Errorf("%s: %w", message, err)
}

// Wrapf wraps an error with a formatted message for better context.
func Wrapf(err error, format string, args ...any) error {
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}

// ConfigError represents one invalid configuration parameter.
type ConfigError struct {
	Parameter string
	Value     any
	Err       error
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	if e.Value != nil && e.Value != "" {
		return fmt.Sprintf("%s = %v: %v", e.Parameter, e.Value, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Parameter, e.Err)
}

// Unwrap returns the underlying error for use with errors.Is and errors.As.
func (e *ConfigError) Unwrap() error {
	return e.Err
}

// Is makes every ConfigError match ErrConfiguration.
func (e *ConfigError) Is(target error) bool {
	return target == ErrConfiguration
}

// APIError represents a failed request against the Gitea API.
// Kind is one of the sentinel errors above, or nil for unclassified statuses.
type APIError struct {
	Endpoint   string
	StatusCode int
	Kind       error
	Err        error
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("GET %s: %d %s", e.Endpoint, e.StatusCode, http.StatusText(e.StatusCode))
	}
	return fmt.Sprintf("GET %s: %v", e.Endpoint, e.Err)
}

// Unwrap exposes both the error kind and the underlying cause.
func (e *APIError) Unwrap() []error {
	if e.Kind == nil {
		return []error{e.Err}
	}
	return []error{e.Kind, e.Err}
}

// classifyError turns a transport or HTTP error into an *APIError tagged
// with its kind.
func classifyError(endpoint string, err error) error {
	if err == nil {
		return nil
	}

	apiErr := &APIError{Endpoint: endpoint, Err: err}

	var httpErr *ghAPI.HTTPError
	var netErr net.Error
	switch {
	case errors.As(err, &httpErr):
		apiErr.StatusCode = httpErr.StatusCode
		switch httpErr.StatusCode {
		case http.StatusNotFound:
			apiErr.Kind = ErrNotFound
		case http.StatusUnauthorized, http.StatusForbidden:
			apiErr.Kind = ErrAuthentication
		}
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		apiErr.Kind = ErrTransient
	case errors.As(err, &netErr):
		apiErr.Kind = ErrTransient
	}

	return apiErr
}

// remediationTips are printed under every fatal error.
var remediationTips = []string{
	"Make sure a .env file exists or the GITTEA_* variables are set",
	"Check the Gitea URL (for example: https://git.example.com)",
	"Confirm the access token is valid and has read permission",
	"Verify that the username exists",
}
