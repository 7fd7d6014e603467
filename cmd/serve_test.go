package cmd

import (
	"context"
	"log/slog"
	"testing"
)

func TestResolveBaseURL(t *testing.T) {
	tests := []struct {
		name     string
		baseURL  string
		addr     string
		expected string
	}{
		{
			name:     "explicit base URL wins",
			baseURL:  "https://mcp.example.com",
			addr:     ":8080",
			expected: "https://mcp.example.com",
		},
		{
			name:     "port-only addr falls back to localhost",
			baseURL:  "",
			addr:     ":8080",
			expected: "http://localhost:8080",
		},
		{
			name:     "host and port addr used verbatim",
			baseURL:  "",
			addr:     "127.0.0.1:9000",
			expected: "http://127.0.0.1:9000",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := resolveBaseURL(tt.baseURL, tt.addr)
			if result != tt.expected {
				t.Errorf("resolveBaseURL(%q, %q) = %q, want %q",
					tt.baseURL, tt.addr, result, tt.expected)
			}
		})
	}
}

func TestResolveBaseURLFromEnv(t *testing.T) {
	t.Setenv("MCP_BASE_URL", "https://env.example.com")

	result := resolveBaseURL("", ":8080")
	if result != "https://env.example.com" {
		t.Errorf("resolveBaseURL with MCP_BASE_URL = %q, want https://env.example.com", result)
	}

	// Flag still takes precedence over the environment
	result = resolveBaseURL("https://flag.example.com", ":8080")
	if result != "https://flag.example.com" {
		t.Errorf("resolveBaseURL with flag and env = %q, want https://flag.example.com", result)
	}
}

func TestGetCategoryFromToolName(t *testing.T) {
	tests := []struct {
		tool     string
		expected string
	}{
		{"docs_insert_text", "Google Docs Tools"},
		{"drive_list_files", "Google Drive Tools"},
		{"sheets_read_range", "Google Sheets Tools"},
		{"slides_add_slide", "Google Slides Tools"},
		{"calendar_list_events", "Google Calendar Tools"},
		{"google_get_auth_url", "Authentication Tools"},
		{"unknown_tool", "Other"},
	}

	for _, tt := range tests {
		if got := getCategoryFromToolName(tt.tool); got != tt.expected {
			t.Errorf("getCategoryFromToolName(%q) = %q, want %q", tt.tool, got, tt.expected)
		}
	}
}

func TestSetupLogging(t *testing.T) {
	ctx := context.Background()

	logger := setupLogging(false)
	if logger.Enabled(ctx, slog.LevelDebug) {
		t.Error("debug level should be disabled without --debug")
	}
	if !logger.Enabled(ctx, slog.LevelInfo) {
		t.Error("info level should always be enabled")
	}

	logger = setupLogging(true)
	if !logger.Enabled(ctx, slog.LevelDebug) {
		t.Error("debug level should be enabled with --debug")
	}
	if slog.Default() != logger {
		t.Error("setupLogging should install the logger as the default")
	}
}
