package resources

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/docsmith/workspace-mcp/internal/mcp/oauth_library"
	"github.com/docsmith/workspace-mcp/internal/server"
)

// RegisterUserResources registers session-specific user resources
// These resources provide information about the current authenticated user
func RegisterUserResources(s *mcpserver.MCPServer, sc *server.ServerContext) error {
	// Register user profile resource
	profileResource := mcp.NewResource(
		"user://profile",
		"Current User Profile",
		mcp.WithResourceDescription("Information about the currently authenticated Google account"),
		mcp.WithMIMEType("application/json"),
	)

	s.AddResource(profileResource, func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		return handleUserProfile(ctx, request, sc)
	})

	// Register storage quota resource
	storageResource := mcp.NewResource(
		"user://drive/storage",
		"Drive Storage Quota",
		mcp.WithResourceDescription("Google Drive storage usage and limits for the current user"),
		mcp.WithMIMEType("application/json"),
	)

	s.AddResource(storageResource, func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		return handleStorageQuota(ctx, request, sc)
	})

	return nil
}

// extractAccountFromContext extracts the user's email from OAuth context
// Falls back to "default" for STDIO transport or if no OAuth context is available
func extractAccountFromContext(ctx context.Context) string {
	// Try to get user info from OAuth context (HTTP transport)
	if userInfo, ok := oauth_library.GetUserFromContext(ctx); ok {
		return userInfo.Email
	}
	// Fallback to default for STDIO transport
	return "default"
}

// handleUserProfile returns information about the current user's account
func handleUserProfile(ctx context.Context, request mcp.ReadResourceRequest, sc *server.ServerContext) ([]mcp.ResourceContents, error) {
	account := extractAccountFromContext(ctx)

	driveClient := sc.DriveClientForAccount(account)
	if driveClient == nil {
		return nil, fmt.Errorf("no Drive client available for account: %s", account)
	}

	about, err := driveClient.GetAbout(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get user profile: %w", err)
	}

	profileData := map[string]interface{}{
		"account":     account,
		"email":       about.EmailAddress,
		"displayName": about.DisplayName,
		"description": "User profile for Google Workspace",
	}

	return marshalResource(request.Params.URI, profileData)
}

// handleStorageQuota returns Drive storage usage for the current user
func handleStorageQuota(ctx context.Context, request mcp.ReadResourceRequest, sc *server.ServerContext) ([]mcp.ResourceContents, error) {
	account := extractAccountFromContext(ctx)

	driveClient := sc.DriveClientForAccount(account)
	if driveClient == nil {
		return nil, fmt.Errorf("no Drive client available for account: %s", account)
	}

	about, err := driveClient.GetAbout(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get storage quota: %w", err)
	}

	quotaData := map[string]interface{}{
		"account":      account,
		"limit":        about.StorageLimit,
		"usage":        about.StorageUsage,
		"usageInDrive": about.StorageUsageInDrive,
		"usageInTrash": about.StorageUsageInTrash,
		"description":  "Drive storage figures in bytes. A zero limit means unlimited.",
	}

	return marshalResource(request.Params.URI, quotaData)
}

func marshalResource(uri string, data map[string]interface{}) ([]mcp.ResourceContents, error) {
	jsonData, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal resource data: %w", err)
	}

	return []mcp.ResourceContents{
		&mcp.TextResourceContents{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(jsonData),
		},
	}, nil
}
