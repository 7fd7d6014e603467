package oauth_library

import (
	"fmt"
	"net/url"
	"strings"

	oauth "github.com/giantswarm/mcp-oauth"
)

// CallbackResult represents the result of an OAuth authorization callback.
// It holds either Code and State on success, or the error triple from the
// redirect. Use Err() to get a typed error for error responses.
type CallbackResult = oauth.CallbackResult

// SilentAuthError represents an error from a silent authentication attempt
// (prompt=none) that requires falling back to interactive login.
type SilentAuthError = oauth.SilentAuthError

// ParseCallbackQuery creates a CallbackResult from OAuth redirect query
// parameters.
func ParseCallbackQuery(code, state, errorCode, errorDescription, errorURI string) *CallbackResult {
	return oauth.ParseCallbackQuery(code, state, errorCode, errorDescription, errorURI)
}

// IsSilentAuthError returns true if the error indicates silent
// authentication failed and interactive login is required.
func IsSilentAuthError(err error) bool {
	return oauth.IsSilentAuthError(err)
}

// ExtractAuthCode pulls the authorization code out of whatever the user
// pasted back after the consent screen: a bare code, the full redirect
// URL, or just its query string. OAuth error responses carried in the
// input come back as typed errors.
func ExtractAuthCode(input string) (string, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return "", fmt.Errorf("no authorization code provided")
	}

	// A bare code has no redirect structure around it.
	if !strings.Contains(input, "://") &&
		!strings.Contains(input, "code=") && !strings.Contains(input, "error=") {
		return input, nil
	}

	raw := input
	if u, err := url.Parse(input); err == nil && u.RawQuery != "" {
		raw = u.RawQuery
	}
	values, err := url.ParseQuery(raw)
	if err != nil {
		return "", fmt.Errorf("failed to parse callback parameters: %w", err)
	}

	result := ParseCallbackQuery(
		values.Get("code"),
		values.Get("state"),
		values.Get("error"),
		values.Get("error_description"),
		values.Get("error_uri"),
	)
	if err := result.Err(); err != nil {
		return "", err
	}
	if result.Code == "" {
		return "", fmt.Errorf("callback parameters contain no authorization code")
	}
	return result.Code, nil
}
