// Package docs_tools provides MCP tools for working with Google Docs.
//
// Read tools retrieve document content as Markdown, plain text, or raw
// JSON, list tabs, and report document structure with index ranges so
// that callers can address content by UTF-16 offset. Edit tools insert,
// append, delete, and replace text, insert tables and images, run
// find-and-replace (with a dry-run mode), and apply raw batchUpdate
// requests. Format tools style characters and paragraphs, targeting a
// range either by explicit indexes or by locating a text occurrence.
//
// Edit and format tools are only registered when the server is not in
// read-only mode. All tools accept an optional account parameter for
// multi-account setups and an optional tab parameter for tabbed
// documents.
package docs_tools
