// Package server provides the MCP server context, session management,
// and the OAuth-protected HTTP transport for the workspace-mcp server.
//
// # Key Components
//
// ServerContext manages Google API clients with lazy initialization and caching.
// It supports multiple accounts and can use different token providers:
//   - FileTokenProvider: For STDIO transport, reads tokens from disk
//   - OAuth TokenProvider: For HTTP transport, tokens come from the OAuth flow
//
// OAuthHTTPServer wraps an MCP server with bearer-token authentication for
// the streamable HTTP transport. Tokens are validated against Google's
// userinfo endpoint, and the authenticated user is attached to the request
// context so tool handlers can resolve the acting account.
//
// SessionIDManager handles multi-account session tracking for HTTP transport.
// It maps Bearer tokens to Google accounts, enabling multiple users to share
// a single MCP server instance.
//
// HealthChecker exposes /healthz and /readyz endpoints for Kubernetes probes,
// and MetricsServer serves Prometheus metrics on a separate listener.
package server
