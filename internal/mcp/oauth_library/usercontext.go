package oauth_library

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"golang.org/x/oauth2"

	"github.com/giantswarm/mcp-oauth/storage"
)

// GoogleUserInfo is the subset of Google's userinfo response the server
// cares about.
type GoogleUserInfo struct {
	// Sub is the unique Google user ID
	Sub string `json:"sub"`

	// Email is the user's email address
	Email string `json:"email"`

	// EmailVerified indicates if the email is verified
	EmailVerified bool `json:"email_verified"`

	// Name is the user's full name
	Name string `json:"name"`
}

// contextKey is the type for context keys
type contextKey string

// userContextKey is the key for storing the user info in the request context
const userContextKey contextKey = "oauth_user"

// ContextWithUser returns a context carrying the authenticated user info.
func ContextWithUser(ctx context.Context, userInfo *GoogleUserInfo) context.Context {
	return context.WithValue(ctx, userContextKey, userInfo)
}

// GetUserFromContext retrieves the Google user info from the request context
func GetUserFromContext(ctx context.Context) (*GoogleUserInfo, bool) {
	userInfo, ok := ctx.Value(userContextKey).(*GoogleUserInfo)
	return userInfo, ok
}

const userinfoEndpoint = "https://openidconnect.googleapis.com/v1/userinfo"

// UserInfoMiddleware validates bearer tokens against Google's userinfo
// endpoint and stores the resulting user in the request context.
type UserInfoMiddleware struct {
	// Resource is advertised in WWW-Authenticate challenges.
	Resource string

	// HTTPClient is used for userinfo requests. Defaults to a client with a
	// 10 second timeout.
	HTTPClient *http.Client

	// TokenStore, when set, receives each validated token keyed by the
	// user's email so Google API clients can look it up later.
	TokenStore storage.TokenStore
}

// Wrap returns a handler that authenticates the request before calling next.
func (m *UserInfoMiddleware) Wrap(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			m.writeUnauthorized(w, "missing_token", "Missing Authorization header")
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
			m.writeUnauthorized(w, "invalid_token", "Invalid Authorization header format")
			return
		}

		token := &oauth2.Token{
			AccessToken: parts[1],
			TokenType:   "Bearer",
		}
		userInfo, err := m.fetchUserInfo(r.Context(), token)
		if err != nil {
			m.writeUnauthorized(w, "invalid_token", "Token validation failed")
			return
		}

		if m.TokenStore != nil && userInfo.Email != "" {
			// Best effort: a save failure should not reject the request
			_ = m.TokenStore.SaveToken(r.Context(), userInfo.Email, token)
		}

		next.ServeHTTP(w, r.WithContext(ContextWithUser(r.Context(), userInfo)))
	})
}

func (m *UserInfoMiddleware) fetchUserInfo(ctx context.Context, token *oauth2.Token) (*GoogleUserInfo, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, userinfoEndpoint, nil)
	if err != nil {
		return nil, err
	}
	token.SetAuthHeader(req)

	client := m.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("userinfo request failed with status %d", resp.StatusCode)
	}

	var userInfo GoogleUserInfo
	if err := json.NewDecoder(resp.Body).Decode(&userInfo); err != nil {
		return nil, fmt.Errorf("failed to decode user info: %w", err)
	}
	return &userInfo, nil
}

func (m *UserInfoMiddleware) writeUnauthorized(w http.ResponseWriter, errorCode, description string) {
	w.Header().Set("WWW-Authenticate", fmt.Sprintf(
		`Bearer realm="%s", error="%s"`, m.Resource, errorCode))
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	json.NewEncoder(w).Encode(map[string]string{
		"error":             errorCode,
		"error_description": description,
	})
}
