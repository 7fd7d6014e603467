package google

// DefaultOAuthScopes are the Google OAuth scopes required for full MCP functionality.
// These scopes are used consistently across the application for OAuth configurations.
//
// The scopes provide access to:
//   - Google Docs: full access (read and batchUpdate)
//   - Google Drive: full access (list, copy, export, metadata)
//   - Google Sheets: full access
//   - Google Slides: full access
//   - Google Calendar: full access
var DefaultOAuthScopes = []string{
	// OpenID Connect scopes (required for user info)
	"openid",
	"https://www.googleapis.com/auth/userinfo.email",

	// Google Docs scope
	"https://www.googleapis.com/auth/documents",

	// Google Drive scope
	"https://www.googleapis.com/auth/drive",

	// Google Sheets scope
	"https://www.googleapis.com/auth/spreadsheets",

	// Google Slides scope
	"https://www.googleapis.com/auth/presentations",

	// Google Calendar scope
	"https://www.googleapis.com/auth/calendar",
}
