// Package slides_tools provides MCP tools for working with Google Slides.
//
// The tools create presentations, fetch a presentation with each
// slide's text content, add slides from predefined layouts, and run
// presentation-wide text replacement for filling template
// placeholders.
//
// Mutating tools are only registered when the server is not in
// read-only mode.
package slides_tools
