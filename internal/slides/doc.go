// Package slides provides a client for interacting with the Google Slides API.
//
// Supported operations:
//   - Creating presentations
//   - Getting a presentation's slide inventory with text content
//   - Adding slides with a predefined layout
//   - Replacing text across the whole presentation
//
// The client supports multi-account functionality. Each client instance is
// bound to a specific account, and OAuth tokens come from the unified
// google package token storage.
package slides
