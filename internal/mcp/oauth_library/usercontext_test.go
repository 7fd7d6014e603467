package oauth_library

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/giantswarm/mcp-oauth/storage/memory"
)

// userinfoStub answers every request with a fixed userinfo response
type userinfoStub struct {
	status int
	body   string
}

func (s *userinfoStub) RoundTrip(*http.Request) (*http.Response, error) {
	return &http.Response{
		StatusCode: s.status,
		Body:       io.NopCloser(bytes.NewBufferString(s.body)),
		Header:     make(http.Header),
	}, nil
}

func newStubMiddleware(status int, body string) *UserInfoMiddleware {
	return &UserInfoMiddleware{
		Resource:   "https://mcp.example.com",
		HTTPClient: &http.Client{Transport: &userinfoStub{status: status, body: body}},
	}
}

func TestUserInfoMiddleware_MissingToken(t *testing.T) {
	m := newStubMiddleware(http.StatusOK, `{}`)
	handler := m.Wrap(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not be called without a token")
	}))

	req := httptest.NewRequest(http.MethodPost, "/mcp", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Header().Get("WWW-Authenticate"), "missing_token")
}

func TestUserInfoMiddleware_MalformedHeader(t *testing.T) {
	m := newStubMiddleware(http.StatusOK, `{}`)
	handler := m.Wrap(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not be called with a malformed header")
	}))

	req := httptest.NewRequest(http.MethodPost, "/mcp", nil)
	req.Header.Set("Authorization", "not-a-bearer-token")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestUserInfoMiddleware_InvalidToken(t *testing.T) {
	m := newStubMiddleware(http.StatusUnauthorized, `{"error": "invalid_token"}`)
	handler := m.Wrap(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not be called for a rejected token")
	}))

	req := httptest.NewRequest(http.MethodPost, "/mcp", nil)
	req.Header.Set("Authorization", "Bearer bad-token")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestUserInfoMiddleware_ValidToken(t *testing.T) {
	m := newStubMiddleware(http.StatusOK,
		`{"sub": "123", "email": "user@example.com", "email_verified": true, "name": "Test User"}`)

	var seen *GoogleUserInfo
	handler := m.Wrap(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, ok := GetUserFromContext(r.Context())
		require.True(t, ok)
		seen = user
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodPost, "/mcp", nil)
	req.Header.Set("Authorization", "Bearer good-token")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, seen)
	assert.Equal(t, "user@example.com", seen.Email)
	assert.Equal(t, "Test User", seen.Name)
}

func TestUserInfoMiddleware_SavesTokenToStore(t *testing.T) {
	store := memory.New()
	defer store.Stop()

	m := newStubMiddleware(http.StatusOK, `{"sub": "123", "email": "user@example.com"}`)
	m.TokenStore = store

	handler := m.Wrap(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodPost, "/mcp", nil)
	req.Header.Set("Authorization", "Bearer good-token")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	token, err := store.GetToken(req.Context(), "user@example.com")
	require.NoError(t, err)
	assert.Equal(t, "good-token", token.AccessToken)
}
