package docs_tools

import (
	"context"
	"fmt"

	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/docsmith/workspace-mcp/internal/docs"
	"github.com/docsmith/workspace-mcp/internal/server"
)

// getDocsClient retrieves or creates a docs client for the specified account
func getDocsClient(ctx context.Context, account string, sc *server.ServerContext) (*docs.Client, error) {
	client := sc.DocsClientForAccount(account)
	if client == nil {
		// Check if token exists before trying to create client
		if !docs.HasTokenForAccount(account) {
			authURL, err := docs.GetAuthURLForAccount(account)
			if err != nil {
				return nil, fmt.Errorf("no Google OAuth token for account %s and OAuth is not configured: %w", account, err)
			}
			return nil, fmt.Errorf(`Google OAuth token not found for account "%s". To authorize access:

1. Visit this URL in your browser:
   %s

2. Sign in with your Google account
3. Grant access to Google Workspace services (Docs, Drive, Sheets, Slides, Calendar)
4. Copy the authorization code

5. Provide the authorization code to your AI agent
   The agent will use the google_save_auth_code tool with account="%s" to complete authentication.

Note: You only need to authorize once. The tokens will be automatically refreshed.`, account, authURL, account)
		}

		var err error
		client, err = docs.NewClientForAccount(ctx, account)
		if err != nil {
			return nil, fmt.Errorf("failed to create Docs client for account %s: %w", account, err)
		}
		sc.SetDocsClientForAccount(account, client)
	}
	return client, nil
}

// RegisterDocsTools registers all Google Docs-related tools with the MCP server.
// Mutating tools are skipped when readOnly is true.
func RegisterDocsTools(s *mcpserver.MCPServer, sc *server.ServerContext, readOnly bool) error {
	if err := RegisterReadTools(s, sc); err != nil {
		return fmt.Errorf("failed to register document read tools: %w", err)
	}

	if !readOnly {
		if err := RegisterEditTools(s, sc); err != nil {
			return fmt.Errorf("failed to register document edit tools: %w", err)
		}
		if err := RegisterFormatTools(s, sc); err != nil {
			return fmt.Errorf("failed to register document format tools: %w", err)
		}
	}

	return nil
}

// optString returns the string value for key, or the empty string when
// absent or not a string.
func optString(args map[string]interface{}, key string) string {
	if v, ok := args[key].(string); ok {
		return v
	}
	return ""
}

// requireString returns the string value for key, or an error when absent
// or empty.
func requireString(args map[string]interface{}, key string) (string, error) {
	v, ok := args[key].(string)
	if !ok || v == "" {
		return "", fmt.Errorf("%s is required", key)
	}
	return v, nil
}

// optInt64 returns a pointer to the numeric value for key, or nil when
// absent. JSON numbers arrive as float64.
func optInt64(args map[string]interface{}, key string) *int64 {
	if v, ok := args[key].(float64); ok {
		n := int64(v)
		return &n
	}
	return nil
}

// optFloat returns a pointer to the numeric value for key, or nil when absent.
func optFloat(args map[string]interface{}, key string) *float64 {
	if v, ok := args[key].(float64); ok {
		return &v
	}
	return nil
}

// optBool returns the boolean value for key, or false when absent.
func optBool(args map[string]interface{}, key string) bool {
	if v, ok := args[key].(bool); ok {
		return v
	}
	return false
}

// optBoolPtr returns a pointer to the boolean value for key, or nil when
// absent. Used for sparse style attributes where explicit false matters.
func optBoolPtr(args map[string]interface{}, key string) *bool {
	if v, ok := args[key].(bool); ok {
		return &v
	}
	return nil
}

// optStringPtr returns a pointer to the string value for key, or nil when
// absent or empty.
func optStringPtr(args map[string]interface{}, key string) *string {
	if v, ok := args[key].(string); ok && v != "" {
		return &v
	}
	return nil
}
