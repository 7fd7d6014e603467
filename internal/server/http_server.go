package server

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/giantswarm/mcp-oauth/storage"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/docsmith/workspace-mcp/internal/instrumentation"
	"github.com/docsmith/workspace-mcp/internal/mcp/oauth_library"
)

// OAuthConfig configures the OAuth-protected HTTP transport
type OAuthConfig struct {
	// BaseURL is the externally visible base URL of this server
	BaseURL string

	// DisableStreaming serves plain JSON responses instead of SSE streams
	DisableStreaming bool

	// TokenStore receives validated bearer tokens keyed by user email so
	// that Google API clients can reuse them
	TokenStore storage.TokenStore

	// TLSCertFile and TLSKeyFile enable TLS when both are set
	TLSCertFile string
	TLSKeyFile  string
}

// OAuthHTTPServer wraps an MCP server with Google OAuth bearer-token
// authentication for the streamable HTTP transport. Tokens are validated
// against Google's userinfo endpoint and the authenticated user is made
// available to tool handlers via the request context.
type OAuthHTTPServer struct {
	mcpServer        *mcpserver.MCPServer
	httpServer       *http.Server
	serverType       string // "streamable-http"
	baseURL          string
	disableStreaming bool
	tlsCertFile      string
	tlsKeyFile       string

	metrics       *instrumentation.Metrics
	healthChecker *HealthChecker
	sessions      *SessionIDManager
	middleware    *oauth_library.UserInfoMiddleware
}

// NewOAuthHTTPServer creates a new OAuth-protected HTTP server for MCP
func NewOAuthHTTPServer(mcpServer *mcpserver.MCPServer, serverType string, config OAuthConfig) (*OAuthHTTPServer, error) {
	if config.BaseURL == "" {
		return nil, fmt.Errorf("base URL is required")
	}

	return &OAuthHTTPServer{
		mcpServer:        mcpServer,
		serverType:       serverType,
		baseURL:          config.BaseURL,
		disableStreaming: config.DisableStreaming,
		tlsCertFile:      config.TLSCertFile,
		tlsKeyFile:       config.TLSKeyFile,
		sessions:         NewSessionIDManager(),
		middleware: &oauth_library.UserInfoMiddleware{
			Resource:   config.BaseURL,
			TokenStore: config.TokenStore,
		},
	}, nil
}

// SetMetrics attaches instrumentation metrics to the HTTP server.
// Must be called before Start.
func (s *OAuthHTTPServer) SetMetrics(metrics *instrumentation.Metrics) {
	s.metrics = metrics
}

// SetHealthChecker attaches a health checker whose endpoints are registered
// alongside the MCP endpoint. Must be called before Start.
func (s *OAuthHTTPServer) SetHealthChecker(hc *HealthChecker) {
	s.healthChecker = hc
}

// Sessions returns the session manager tracking authenticated accounts
func (s *OAuthHTTPServer) Sessions() *SessionIDManager {
	return s.sessions
}

// Start starts the OAuth-protected HTTP server
func (s *OAuthHTTPServer) Start(addr string) error {
	if err := validateHTTPSRequirement(s.baseURL); err != nil {
		return err
	}

	mux := http.NewServeMux()

	if s.healthChecker != nil {
		s.healthChecker.RegisterHealthEndpoints(mux)
	}

	switch s.serverType {
	case "streamable-http":
		var streamable http.Handler
		if s.disableStreaming {
			streamable = mcpserver.NewStreamableHTTPServer(s.mcpServer,
				mcpserver.WithEndpointPath("/mcp"),
				mcpserver.WithDisableStreaming(true),
			)
		} else {
			streamable = mcpserver.NewStreamableHTTPServer(s.mcpServer,
				mcpserver.WithEndpointPath("/mcp"),
			)
		}

		// Outermost: request metrics. Then auth result metrics, token
		// validation, and session tracking before the MCP handler runs.
		handler := s.instrumentationMiddleware(
			s.oauthInstrumentationWrapper(
				s.middleware.Wrap(
					s.sessionTrackingMiddleware(streamable))))
		mux.Handle("/mcp", handler)

	default:
		return fmt.Errorf("unsupported server type: %s", s.serverType)
	}

	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	if s.tlsCertFile != "" && s.tlsKeyFile != "" {
		return s.httpServer.ListenAndServeTLS(s.tlsCertFile, s.tlsKeyFile)
	}
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully shuts down the server
func (s *OAuthHTTPServer) Shutdown(ctx context.Context) error {
	if s.sessions != nil {
		s.sessions.Stop()
	}
	if s.httpServer != nil {
		return s.httpServer.Shutdown(ctx)
	}
	return nil
}

// sessionTrackingMiddleware records which Google account a bearer token
// belongs to. Runs after token validation, so the user is in the context.
func (s *OAuthHTTPServer) sessionTrackingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if user, ok := oauth_library.GetUserFromContext(r.Context()); ok && user.Email != "" {
			if sessionID, err := s.sessions.ResolveSessionID(r); err == nil {
				s.sessions.SetAccountForSession(sessionID, user.Email)
			}
		}
		next.ServeHTTP(w, r)
	})
}

// instrumentationMiddleware records HTTP request metrics
func (s *OAuthHTTPServer) instrumentationMiddleware(next http.Handler) http.Handler {
	if s.metrics == nil {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rw := newResponseWriter(w)

		next.ServeHTTP(rw, r)

		s.metrics.RecordHTTPRequest(r.Context(), r.Method, r.URL.Path, rw.statusCode, time.Since(start))
	})
}

// oauthInstrumentationWrapper records authentication outcomes based on the
// response status of the wrapped auth middleware
func (s *OAuthHTTPServer) oauthInstrumentationWrapper(next http.Handler) http.Handler {
	if s.metrics == nil {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rw := newResponseWriter(w)

		next.ServeHTTP(rw, r)

		result := instrumentation.StatusSuccess
		if rw.statusCode == http.StatusUnauthorized || rw.statusCode == http.StatusForbidden {
			result = instrumentation.StatusError
		}
		s.metrics.RecordOAuthAuth(r.Context(), result)
	})
}

// responseWriter captures the status code written by downstream handlers
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func newResponseWriter(w http.ResponseWriter) *responseWriter {
	return &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// validateHTTPSRequirement ensures OAuth 2.1 HTTPS compliance
// Allows HTTP only for loopback addresses (localhost, 127.0.0.1, ::1)
func validateHTTPSRequirement(baseURL string) error {
	if baseURL == "" {
		return fmt.Errorf("base URL cannot be empty")
	}

	// Parse URL to properly validate scheme and host
	u, err := url.Parse(baseURL)
	if err != nil {
		return fmt.Errorf("invalid base URL: %w", err)
	}

	// Allow HTTP only for loopback addresses
	if u.Scheme == "http" {
		host := u.Hostname()
		if host != "localhost" && host != "127.0.0.1" && host != "::1" {
			return fmt.Errorf("OAuth 2.1 requires HTTPS for production (got: %s). Use HTTPS or localhost for development", baseURL)
		}
	} else if u.Scheme != "https" {
		return fmt.Errorf("invalid URL scheme: %s. Must be http (localhost only) or https", u.Scheme)
	}

	return nil
}
